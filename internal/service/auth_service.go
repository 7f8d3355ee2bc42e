package service

import (
	"context"
	"crypto/rand"
	"fmt"
	"math/big"

	"inkpulse/internal/cache"
	"inkpulse/internal/mail"
	"inkpulse/internal/models"
	"inkpulse/internal/repository"
	"inkpulse/internal/validation"

	"golang.org/x/crypto/bcrypt"
)

// AuthService implements the password-reset OTP flow. Codes live in
// Redis under otp:{email} for ten minutes and are single-use.
type AuthService struct {
	userRepo repository.UserRepository
	cache    *cache.Cache
	mailer   mail.Mailer
}

func NewAuthService(userRepo repository.UserRepository, c *cache.Cache, mailer mail.Mailer) *AuthService {
	return &AuthService{userRepo: userRepo, cache: c, mailer: mailer}
}

func generateOTP() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1000000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}

// RequestOTP generates a reset code for a known user, stores it and
// mails it. Unknown emails get NotFound.
func (s *AuthService) RequestOTP(ctx context.Context, email string) error {
	if email == "" {
		return models.NewValidationError("Invalid auth fields",
			models.FieldError{Field: "email", Message: "email is required"})
	}

	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return err
	}
	if user == nil {
		return models.NewNotFoundError("User", email)
	}

	code, err := generateOTP()
	if err != nil {
		return models.NewInternalError(err)
	}

	if err := s.cache.SetString(ctx, cache.OTPKey(email), code, cache.OTPTTL); err != nil {
		return models.NewInternalError(err)
	}

	if err := s.mailer.Send(email, "Your Inkpulse password reset code", mail.OTPBody(code)); err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

// VerifyOTP checks the code and, on match, re-hashes the password and
// consumes the code.
func (s *AuthService) VerifyOTP(ctx context.Context, email, otp, newPassword string) error {
	var fields []models.FieldError
	if email == "" {
		fields = append(fields, models.FieldError{Field: "email", Message: "email is required"})
	}
	if otp == "" {
		fields = append(fields, models.FieldError{Field: "otp", Message: "otp is required"})
	}
	if err := validation.ValidatePassword(newPassword); err != nil {
		fields = append(fields, models.FieldError{Field: "newPassword", Message: err.Error()})
	}
	if len(fields) > 0 {
		return models.NewValidationError("Invalid auth fields", fields...)
	}

	stored, found, err := s.cache.GetString(ctx, cache.OTPKey(email))
	if err != nil {
		return models.NewInternalError(err)
	}
	if !found || stored != otp {
		// Expired and wrong codes are indistinguishable to the caller.
		return models.NewValidationError("Invalid or expired OTP")
	}

	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return err
	}
	if user == nil {
		return models.NewNotFoundError("User", email)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return models.NewInternalError(err)
	}
	if err := s.userRepo.UpdatePassword(ctx, user.ID, string(hashed)); err != nil {
		return err
	}

	s.cache.Invalidate(ctx, cache.OTPKey(email))
	return nil
}
