package models

import (
	"time"

	"gorm.io/gorm"
)

// Post status values.
const (
	PostStatusDraft     = "draft"
	PostStatusPublished = "published"
)

// Post is a rich-text article. Content holds sanitized HTML; raw editor
// output must never reach this struct.
type Post struct {
	ID       uint     `gorm:"primaryKey" json:"id"`
	Title    string   `gorm:"not null" json:"title"`
	Content  string   `gorm:"not null" json:"content"`
	Tags     []string `gorm:"serializer:json" json:"tags"`
	PostPic  string   `json:"postPic,omitempty"`
	AuthorID uint     `gorm:"not null;index" json:"author"`
	Author   *User    `gorm:"foreignKey:AuthorID" json:"authorInfo,omitempty"`
	Status   string   `gorm:"not null;default:draft" json:"status"`
	// LikesCount is not persisted; computed at query time
	LikesCount int `gorm:"->" json:"likesCount"`
	// Liked indicates whether the current requesting user liked this post (computed)
	Liked     bool           `gorm:"->" json:"liked"`
	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}
