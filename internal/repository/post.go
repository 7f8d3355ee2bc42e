// Package repository provides data access layer implementations for the application.
package repository

import (
	"context"

	"inkpulse/internal/cache"
	"inkpulse/internal/models"

	"gorm.io/gorm"
)

// PostRepository defines the interface for post data operations
type PostRepository interface {
	Create(ctx context.Context, post *models.Post) error
	GetByID(ctx context.Context, id uint, currentUserID uint) (*models.Post, bool, error)
	GetForWrite(ctx context.Context, id uint) (*models.Post, error)
	ListPublished(ctx context.Context, currentUserID uint) ([]*models.Post, bool, error)
	ListDraftsByAuthor(ctx context.Context, authorID uint) ([]*models.Post, error)
	Trending(ctx context.Context, limit int) ([]*models.Post, error)
	Update(ctx context.Context, post *models.Post) error
	Delete(ctx context.Context, id uint) error
	IsLiked(ctx context.Context, userID, postID uint) (bool, error)
	Like(ctx context.Context, userID, postID uint) error
	Unlike(ctx context.Context, userID, postID uint) error
}

// postRepository implements PostRepository
type postRepository struct {
	db    *gorm.DB
	cache *cache.Cache
}

// NewPostRepository creates a new post repository
func NewPostRepository(db *gorm.DB, c *cache.Cache) PostRepository {
	return &postRepository{db: db, cache: c}
}

func (r *postRepository) Create(ctx context.Context, post *models.Post) error {
	err := r.db.WithContext(ctx).Create(post).Error
	if err == nil {
		r.cache.Invalidate(ctx, cache.PostKey(post.ID), cache.PostsListKey)
	}
	return err
}

// GetByID returns the post and whether it was served from cache. Only
// anonymous reads go through the cache: the liked flag is per-viewer.
func (r *postRepository) GetByID(ctx context.Context, id uint, currentUserID uint) (*models.Post, bool, error) {
	var post models.Post

	fetch := func() error {
		return r.applyPostDetails(r.db.WithContext(ctx), currentUserID).
			Preload("Author").
			First(&post, id).Error
	}

	if currentUserID == 0 {
		fromCache, err := r.cache.Aside(ctx, cache.PostKey(id), &post, cache.PostTTL, fetch)
		if err != nil {
			return nil, false, err
		}
		return &post, fromCache, nil
	}

	if err := fetch(); err != nil {
		return nil, false, err
	}
	return &post, false, nil
}

// GetForWrite loads the post straight from the store, never the cache.
// Write paths base their state on this record; a cached copy is derived
// data and must not become the source of a Save.
func (r *postRepository) GetForWrite(ctx context.Context, id uint) (*models.Post, error) {
	var post models.Post
	err := r.applyPostDetails(r.db.WithContext(ctx), 0).
		Preload("Author").
		First(&post, id).Error
	if err != nil {
		return nil, err
	}
	return &post, nil
}

func (r *postRepository) ListPublished(ctx context.Context, currentUserID uint) ([]*models.Post, bool, error) {
	var posts []*models.Post

	fetch := func() error {
		return r.applyPostDetails(r.db.WithContext(ctx), currentUserID).
			Preload("Author").
			Where("status = ?", models.PostStatusPublished).
			Order("created_at DESC").
			Find(&posts).Error
	}

	if currentUserID == 0 {
		fromCache, err := r.cache.Aside(ctx, cache.PostsListKey, &posts, cache.PostsListTTL, fetch)
		if err != nil {
			return nil, false, err
		}
		return posts, fromCache, nil
	}

	if err := fetch(); err != nil {
		return nil, false, err
	}
	return posts, false, nil
}

func (r *postRepository) ListDraftsByAuthor(ctx context.Context, authorID uint) ([]*models.Post, error) {
	var posts []*models.Post
	err := r.applyPostDetails(r.db.WithContext(ctx), authorID).
		Where("author_id = ? AND status = ?", authorID, models.PostStatusDraft).
		Order("updated_at DESC").
		Find(&posts).Error
	if err != nil {
		return nil, err
	}
	return posts, nil
}

func (r *postRepository) Trending(ctx context.Context, limit int) ([]*models.Post, error) {
	var posts []*models.Post
	err := r.applyPostDetails(r.db.WithContext(ctx), 0).
		Preload("Author").
		Where("status = ?", models.PostStatusPublished).
		Order("likes_count DESC, created_at DESC").
		Limit(limit).
		Find(&posts).Error
	if err != nil {
		return nil, err
	}
	return posts, nil
}

// applyPostDetails adds subqueries to fetch the like count and liked status in a single query.
func (r *postRepository) applyPostDetails(db *gorm.DB, currentUserID uint) *gorm.DB {
	selectQuery := "posts.*, " +
		"(SELECT COUNT(*) FROM likes WHERE likes.post_id = posts.id) as likes_count"

	if currentUserID != 0 {
		return db.Select(selectQuery+", EXISTS(SELECT 1 FROM likes WHERE likes.post_id = posts.id AND likes.user_id = ?) as liked", currentUserID)
	}

	return db.Select(selectQuery + ", false as liked")
}

func (r *postRepository) Update(ctx context.Context, post *models.Post) error {
	if err := r.db.WithContext(ctx).Save(post).Error; err != nil {
		return err
	}
	r.cache.Invalidate(ctx, cache.PostKey(post.ID), cache.PostsListKey)
	return nil
}

func (r *postRepository) Delete(ctx context.Context, id uint) error {
	if err := r.db.WithContext(ctx).Delete(&models.Post{}, id).Error; err != nil {
		return err
	}
	r.cache.Invalidate(ctx, cache.PostKey(id), cache.PostsListKey)
	return nil
}

func (r *postRepository) IsLiked(ctx context.Context, userID, postID uint) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.Like{}).
		Where("user_id = ? AND post_id = ?", userID, postID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *postRepository) Like(ctx context.Context, userID, postID uint) error {
	// INSERT ... ON CONFLICT DO NOTHING is atomic; concurrent toggles of the
	// same pair collapse into a single row instead of a duplicate key error.
	result := r.db.WithContext(ctx).Exec(
		`INSERT INTO likes (user_id, post_id, created_at)
		 VALUES (?, ?, CURRENT_TIMESTAMP)
		 ON CONFLICT (user_id, post_id) DO NOTHING`,
		userID, postID,
	)
	if result.Error == nil {
		r.cache.Invalidate(ctx, cache.PostKey(postID), cache.PostsListKey)
	}
	return result.Error
}

func (r *postRepository) Unlike(ctx context.Context, userID, postID uint) error {
	// Likes are hard deleted; a removed like leaves no tombstone.
	err := r.db.WithContext(ctx).Unscoped().Where("user_id = ? AND post_id = ?", userID, postID).Delete(&models.Like{}).Error
	if err == nil {
		r.cache.Invalidate(ctx, cache.PostKey(postID), cache.PostsListKey)
	}
	return err
}
