package models

import (
	"time"

	"gorm.io/gorm"
)

// Comment is a reader's response to a post. Comments are created and
// deleted, never edited. PostID and UserID are application-level
// references; the schema does not enforce them.
type Comment struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	PostID    uint           `gorm:"not null;index" json:"postId"`
	UserID    uint           `gorm:"not null" json:"userId"`
	User      *User          `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Content   string         `gorm:"not null" json:"content"`
	CreatedAt time.Time      `json:"createdAt"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}
