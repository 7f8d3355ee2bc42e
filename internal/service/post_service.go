// Package service holds the business logic between HTTP handlers and
// repositories.
package service

import (
	"context"
	"errors"
	"strings"

	"inkpulse/internal/models"
	"inkpulse/internal/repository"
	"inkpulse/internal/validation"

	"gorm.io/gorm"
)

const (
	maxTitleLen   = 300
	maxContentLen = 50000 // 50K characters
	maxTags       = 10
	maxTagLen     = 50
	trendingLimit = 5
)

type PostService struct {
	postRepo repository.PostRepository
	userRepo repository.UserRepository
}

type CreatePostInput struct {
	AuthorID uint
	Title    string
	Content  string
	Tags     []string
	PostPic  string
	Status   string
}

// UpdatePostInput carries partial fields; empty strings and nil slices
// leave the stored value untouched. Status in particular stays as-is
// unless explicitly provided, so an edit never implicitly publishes.
type UpdatePostInput struct {
	PostID  uint
	Title   string
	Content string
	Tags    []string
	PostPic string
	Status  string
}

func NewPostService(postRepo repository.PostRepository, userRepo repository.UserRepository) *PostService {
	return &PostService{postRepo: postRepo, userRepo: userRepo}
}

func validatePostFields(title, content string, tags []string) []models.FieldError {
	var fields []models.FieldError

	switch {
	case strings.TrimSpace(title) == "":
		fields = append(fields, models.FieldError{Field: "title", Message: "title is required"})
	case len(title) > maxTitleLen:
		fields = append(fields, models.FieldError{Field: "title", Message: "title too long (max 300 characters)"})
	}

	switch {
	case strings.TrimSpace(content) == "":
		fields = append(fields, models.FieldError{Field: "content", Message: "content is required"})
	case len(content) > maxContentLen:
		fields = append(fields, models.FieldError{Field: "content", Message: "content too long (max 50000 characters)"})
	}

	if len(tags) > maxTags {
		fields = append(fields, models.FieldError{Field: "tags", Message: "too many tags (max 10)"})
	} else {
		for _, tag := range tags {
			if strings.TrimSpace(tag) == "" || len(tag) > maxTagLen {
				fields = append(fields, models.FieldError{Field: "tags", Message: "tags must be non-empty and at most 50 characters"})
				break
			}
		}
	}

	return fields
}

func (s *PostService) CreatePost(ctx context.Context, in CreatePostInput) (*models.Post, error) {
	fields := validatePostFields(in.Title, in.Content, in.Tags)

	if in.AuthorID == 0 {
		fields = append(fields, models.FieldError{Field: "author", Message: "author is required"})
	}

	status := in.Status
	if status == "" {
		status = models.PostStatusDraft
	}
	if status != models.PostStatusDraft && status != models.PostStatusPublished {
		fields = append(fields, models.FieldError{Field: "status", Message: "status must be draft or published"})
	}

	if len(fields) > 0 {
		return nil, models.NewValidationError("Invalid post fields", fields...)
	}

	// The schema carries no foreign keys; the author reference is checked
	// here instead.
	if _, err := s.userRepo.GetByID(ctx, in.AuthorID); err != nil {
		var appErr *models.AppError
		if errors.As(err, &appErr) && appErr.Code == "NOT_FOUND" {
			return nil, models.NewValidationError("Invalid post fields",
				models.FieldError{Field: "author", Message: "author does not exist"})
		}
		return nil, err
	}

	post := &models.Post{
		Title:    in.Title,
		Content:  validation.SanitizeHTML(in.Content),
		Tags:     in.Tags,
		PostPic:  in.PostPic,
		AuthorID: in.AuthorID,
		Status:   status,
	}
	if err := s.postRepo.Create(ctx, post); err != nil {
		return nil, models.NewInternalError(err)
	}

	return post, nil
}

func (s *PostService) GetPost(ctx context.Context, id uint, currentUserID uint) (*models.Post, bool, error) {
	post, fromCache, err := s.postRepo.GetByID(ctx, id, currentUserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, false, models.NewNotFoundError("Post", id)
		}
		return nil, false, models.NewInternalError(err)
	}
	return post, fromCache, nil
}

func (s *PostService) ListPosts(ctx context.Context, currentUserID uint) ([]*models.Post, bool, error) {
	posts, fromCache, err := s.postRepo.ListPublished(ctx, currentUserID)
	if err != nil {
		return nil, false, models.NewInternalError(err)
	}
	return posts, fromCache, nil
}

func (s *PostService) UpdatePost(ctx context.Context, in UpdatePostInput) (*models.Post, error) {
	// The base record comes from the store, not the cache: a stale cached
	// copy must never become the state that Save writes back.
	post, err := s.postRepo.GetForWrite(ctx, in.PostID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Post", in.PostID)
		}
		return nil, models.NewInternalError(err)
	}

	if in.Title != "" {
		if len(in.Title) > maxTitleLen {
			return nil, models.NewValidationError("Invalid post fields",
				models.FieldError{Field: "title", Message: "title too long (max 300 characters)"})
		}
		post.Title = in.Title
	}
	if in.Content != "" {
		if len(in.Content) > maxContentLen {
			return nil, models.NewValidationError("Invalid post fields",
				models.FieldError{Field: "content", Message: "content too long (max 50000 characters)"})
		}
		post.Content = validation.SanitizeHTML(in.Content)
	}
	if in.Tags != nil {
		if fields := validatePostFields("x", "x", in.Tags); len(fields) > 0 {
			return nil, models.NewValidationError("Invalid post fields", fields...)
		}
		post.Tags = in.Tags
	}
	if in.PostPic != "" {
		post.PostPic = in.PostPic
	}
	if in.Status != "" {
		if in.Status != models.PostStatusDraft && in.Status != models.PostStatusPublished {
			return nil, models.NewValidationError("Invalid post fields",
				models.FieldError{Field: "status", Message: "status must be draft or published"})
		}
		post.Status = in.Status
	}

	if err := s.postRepo.Update(ctx, post); err != nil {
		return nil, models.NewInternalError(err)
	}
	return post, nil
}

// DeletePost removes the post and returns the removed record.
func (s *PostService) DeletePost(ctx context.Context, id uint) (*models.Post, error) {
	post, err := s.postRepo.GetForWrite(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Post", id)
		}
		return nil, models.NewInternalError(err)
	}

	if err := s.postRepo.Delete(ctx, id); err != nil {
		return nil, models.NewInternalError(err)
	}
	return post, nil
}

// ToggleLike flips the caller's like on the post and reports the new
// state. Two sequential calls always round-trip.
func (s *PostService) ToggleLike(ctx context.Context, userID, postID uint) (liked bool, likesCount int, err error) {
	if _, _, err := s.postRepo.GetByID(ctx, postID, userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, 0, models.NewNotFoundError("Post", postID)
		}
		return false, 0, models.NewInternalError(err)
	}

	isLiked, err := s.postRepo.IsLiked(ctx, userID, postID)
	if err != nil {
		return false, 0, models.NewInternalError(err)
	}

	if isLiked {
		err = s.postRepo.Unlike(ctx, userID, postID)
	} else {
		err = s.postRepo.Like(ctx, userID, postID)
	}
	if err != nil {
		return false, 0, models.NewInternalError(err)
	}

	post, _, err := s.postRepo.GetByID(ctx, postID, userID)
	if err != nil {
		return false, 0, models.NewInternalError(err)
	}
	return !isLiked, post.LikesCount, nil
}

// Trending returns the most-liked published posts, capped at five.
func (s *PostService) Trending(ctx context.Context) ([]*models.Post, error) {
	posts, err := s.postRepo.Trending(ctx, trendingLimit)
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return posts, nil
}

// Drafts lists the caller's unpublished posts, newest first.
func (s *PostService) Drafts(ctx context.Context, authorID uint) ([]*models.Post, error) {
	posts, err := s.postRepo.ListDraftsByAuthor(ctx, authorID)
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return posts, nil
}
