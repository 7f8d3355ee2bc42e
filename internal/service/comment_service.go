package service

import (
	"context"
	"errors"
	"strings"

	"inkpulse/internal/models"
	"inkpulse/internal/repository"

	"gorm.io/gorm"
)

const maxCommentLen = 5000

type CommentService struct {
	commentRepo repository.CommentRepository
}

func NewCommentService(commentRepo repository.CommentRepository) *CommentService {
	return &CommentService{commentRepo: commentRepo}
}

// CreateComment stores a comment against a post ID without checking the
// post exists. Comments survive their post; orphans are allowed.
func (s *CommentService) CreateComment(ctx context.Context, postID, userID uint, content string) (*models.Comment, error) {
	var fields []models.FieldError
	if postID == 0 {
		fields = append(fields, models.FieldError{Field: "postId", Message: "postId is required"})
	}
	if userID == 0 {
		fields = append(fields, models.FieldError{Field: "userId", Message: "userId is required"})
	}
	if strings.TrimSpace(content) == "" {
		fields = append(fields, models.FieldError{Field: "content", Message: "content is required"})
	} else if len(content) > maxCommentLen {
		fields = append(fields, models.FieldError{Field: "content", Message: "content too long (max 5000 characters)"})
	}
	if len(fields) > 0 {
		return nil, models.NewValidationError("Invalid comment fields", fields...)
	}

	comment := &models.Comment{PostID: postID, UserID: userID, Content: content}
	if err := s.commentRepo.Create(ctx, comment); err != nil {
		return nil, models.NewInternalError(err)
	}
	return comment, nil
}

// ListComments returns every comment on the post, newest first, with the
// author preloaded. Zero comments is a normal empty result.
func (s *CommentService) ListComments(ctx context.Context, postID uint) ([]*models.Comment, error) {
	if postID == 0 {
		return nil, models.NewValidationError("Invalid comment fields",
			models.FieldError{Field: "postId", Message: "postId is required"})
	}
	comments, err := s.commentRepo.ListByPost(ctx, postID)
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	if comments == nil {
		comments = []*models.Comment{}
	}
	return comments, nil
}

// DeleteComment removes the comment and returns the removed record.
func (s *CommentService) DeleteComment(ctx context.Context, id uint) (*models.Comment, error) {
	if id == 0 {
		return nil, models.NewValidationError("Invalid comment fields",
			models.FieldError{Field: "commentId", Message: "commentId is required"})
	}

	comment, err := s.commentRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Comment", id)
		}
		return nil, models.NewInternalError(err)
	}

	if err := s.commentRepo.Delete(ctx, id); err != nil {
		return nil, models.NewInternalError(err)
	}
	return comment, nil
}
