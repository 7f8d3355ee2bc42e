package service

import (
	"context"
	"testing"

	"inkpulse/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateComment_Validation(t *testing.T) {
	svc := NewCommentService(noopCommentRepo())
	ctx := context.Background()

	tests := []struct {
		name    string
		postID  uint
		userID  uint
		content string
	}{
		{"Missing PostID", 0, 1, "hi"},
		{"Missing UserID", 1, 0, "hi"},
		{"Empty Content", 1, 1, "   "},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.CreateComment(ctx, tt.postID, tt.userID, tt.content)
			assertAppError(t, err, "VALIDATION_ERROR")
		})
	}
}

func TestCreateComment_NoPostExistenceCheck(t *testing.T) {
	var stored *models.Comment
	comments := noopCommentRepo()
	comments.createFn = func(_ context.Context, c *models.Comment) error {
		c.ID = 11
		stored = c
		return nil
	}
	svc := NewCommentService(comments)

	// The referenced post does not need to exist.
	created, err := svc.CreateComment(context.Background(), 424242, 1, "into the void")
	require.NoError(t, err)
	assert.Equal(t, uint(11), created.ID)
	require.NotNil(t, stored)
	assert.Equal(t, uint(424242), stored.PostID)
}

func TestListComments_EmptyIsNotAnError(t *testing.T) {
	svc := NewCommentService(noopCommentRepo())

	comments, err := svc.ListComments(context.Background(), 5)
	require.NoError(t, err)
	assert.NotNil(t, comments)
	assert.Empty(t, comments)
}

func TestListComments_RequiresPostID(t *testing.T) {
	svc := NewCommentService(noopCommentRepo())

	_, err := svc.ListComments(context.Background(), 0)
	assertAppError(t, err, "VALIDATION_ERROR")
}

func TestDeleteComment_ReturnsRemovedRecord(t *testing.T) {
	comments := noopCommentRepo()
	comments.getByIDFn = func(_ context.Context, id uint) (*models.Comment, error) {
		return &models.Comment{ID: id, Content: "bye"}, nil
	}
	svc := NewCommentService(comments)

	removed, err := svc.DeleteComment(context.Background(), 9)
	require.NoError(t, err)
	assert.Equal(t, "bye", removed.Content)
}

func TestDeleteComment_NotFound(t *testing.T) {
	svc := NewCommentService(noopCommentRepo())

	_, err := svc.DeleteComment(context.Background(), 9)
	assertAppError(t, err, "NOT_FOUND")
}
