package service

import (
	"context"

	"inkpulse/internal/models"
	"inkpulse/internal/repository"
	"inkpulse/internal/validation"

	"golang.org/x/crypto/bcrypt"
)

type UserService struct {
	userRepo repository.UserRepository
}

type RegisterInput struct {
	Name     string
	Email    string
	Password string
}

// UpdateProfileInput carries the profile-setup fields, keyed by email.
// Empty strings leave the stored value untouched.
type UpdateProfileInput struct {
	Email           string
	Name            string
	Niche           string
	Bio             string
	ProfilePic      string
	ProfileComplete *bool
}

func NewUserService(userRepo repository.UserRepository) *UserService {
	return &UserService{userRepo: userRepo}
}

func (s *UserService) Register(ctx context.Context, in RegisterInput) (*models.User, error) {
	var fields []models.FieldError
	if err := validation.ValidateName(in.Name); err != nil {
		fields = append(fields, models.FieldError{Field: "name", Message: err.Error()})
	}
	if err := validation.ValidateEmail(in.Email); err != nil {
		fields = append(fields, models.FieldError{Field: "email", Message: err.Error()})
	}
	if err := validation.ValidatePassword(in.Password); err != nil {
		fields = append(fields, models.FieldError{Field: "password", Message: err.Error()})
	}
	if len(fields) > 0 {
		return nil, models.NewValidationError("Invalid user fields", fields...)
	}

	existing, err := s.userRepo.GetByEmail(ctx, in.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, models.NewValidationError("Invalid user fields",
			models.FieldError{Field: "email", Message: "email is already registered"})
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, models.NewInternalError(err)
	}

	user := &models.User{Name: in.Name, Email: in.Email, Password: string(hashed)}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *UserService) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	if email == "" {
		return nil, models.NewValidationError("Invalid user fields",
			models.FieldError{Field: "email", Message: "email is required"})
	}
	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, models.NewNotFoundError("User", email)
	}
	return user, nil
}

func (s *UserService) GetByID(ctx context.Context, id uint) (*models.User, error) {
	return s.userRepo.GetByID(ctx, id)
}

func (s *UserService) UpdateProfile(ctx context.Context, in UpdateProfileInput) (*models.User, error) {
	user, err := s.GetByEmail(ctx, in.Email)
	if err != nil {
		return nil, err
	}

	const maxBioLen = 500
	const maxNicheLen = 50

	if in.Name != "" {
		if err := validation.ValidateName(in.Name); err != nil {
			return nil, models.NewValidationError("Invalid user fields",
				models.FieldError{Field: "name", Message: err.Error()})
		}
		user.Name = in.Name
	}
	if in.Niche != "" {
		if len(in.Niche) > maxNicheLen {
			return nil, models.NewValidationError("Invalid user fields",
				models.FieldError{Field: "niche", Message: "niche too long (max 50 characters)"})
		}
		user.Niche = in.Niche
	}
	if in.Bio != "" {
		if len(in.Bio) > maxBioLen {
			return nil, models.NewValidationError("Invalid user fields",
				models.FieldError{Field: "bio", Message: "bio too long (max 500 characters)"})
		}
		user.Bio = in.Bio
	}
	if in.ProfilePic != "" {
		user.ProfilePic = in.ProfilePic
	}
	if in.ProfileComplete != nil {
		user.ProfileComplete = *in.ProfileComplete
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *UserService) DeleteByEmail(ctx context.Context, email string) error {
	if email == "" {
		return models.NewValidationError("Invalid user fields",
			models.FieldError{Field: "email", Message: "email is required"})
	}
	return s.userRepo.DeleteByEmail(ctx, email)
}
