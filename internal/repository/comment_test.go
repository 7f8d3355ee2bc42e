package repository

import (
	"context"
	"testing"

	"inkpulse/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCommentRepository_CreateAndListByPost(t *testing.T) {
	db := setupTestDB(t)
	repo := NewCommentRepository(db)
	ctx := context.Background()

	author := seedAuthor(t, db)
	post := seedPost(t, db, author.ID, models.PostStatusPublished)

	first := &models.Comment{PostID: post.ID, UserID: author.ID, Content: "first"}
	second := &models.Comment{PostID: post.ID, UserID: author.ID, Content: "second"}
	require.NoError(t, repo.Create(ctx, first))
	require.NoError(t, repo.Create(ctx, second))

	comments, err := repo.ListByPost(ctx, post.ID)
	require.NoError(t, err)
	require.Len(t, comments, 2)
	require.NotNil(t, comments[0].User)
	assert.Equal(t, "Nia", comments[0].User.Name)
}

func TestCommentRepository_CreateForMissingPost(t *testing.T) {
	db := setupTestDB(t)
	repo := NewCommentRepository(db)
	ctx := context.Background()

	author := seedAuthor(t, db)

	// No post with this ID exists; the comment is stored anyway.
	comment := &models.Comment{PostID: 424242, UserID: author.ID, Content: "shouting into the void"}
	require.NoError(t, repo.Create(ctx, comment))
	assert.NotZero(t, comment.ID)

	comments, err := repo.ListByPost(ctx, 424242)
	require.NoError(t, err)
	assert.Len(t, comments, 1)
}

func TestCommentRepository_ListByPost_Empty(t *testing.T) {
	db := setupTestDB(t)
	repo := NewCommentRepository(db)

	comments, err := repo.ListByPost(context.Background(), 1)
	require.NoError(t, err)
	assert.Empty(t, comments)
}

func TestCommentRepository_Delete(t *testing.T) {
	db := setupTestDB(t)
	repo := NewCommentRepository(db)
	ctx := context.Background()

	author := seedAuthor(t, db)
	post := seedPost(t, db, author.ID, models.PostStatusPublished)

	comment := &models.Comment{PostID: post.ID, UserID: author.ID, Content: "going away"}
	require.NoError(t, repo.Create(ctx, comment))
	require.NoError(t, repo.Delete(ctx, comment.ID))

	comments, err := repo.ListByPost(ctx, post.ID)
	require.NoError(t, err)
	assert.Empty(t, comments)
}
