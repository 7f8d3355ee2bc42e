package models

import "time"

// Like records one user's like on one post. The (user_id, post_id) pair
// is unique, so toggling is an atomic insert-or-ignore / hard delete and
// duplicate likes cannot occur.
type Like struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;uniqueIndex:idx_like_user_post" json:"userId"`
	PostID    uint      `gorm:"not null;uniqueIndex:idx_like_user_post" json:"postId"`
	CreatedAt time.Time `json:"createdAt"`
}
