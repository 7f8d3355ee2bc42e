// Package models contains data structures for the application's domain models.
package models

import (
	"time"

	"gorm.io/gorm"
)

// User represents an Inkpulse account. Password is empty for accounts
// created through an external identity provider.
type User struct {
	ID              uint           `gorm:"primaryKey" json:"id"`
	Name            string         `gorm:"not null" json:"name"`
	Email           string         `gorm:"unique;not null" json:"email"`
	Password        string         `json:"-"`
	ProfilePic      string         `json:"profilePic,omitempty"`
	Niche           string         `json:"niche,omitempty"`
	Bio             string         `json:"bio,omitempty"`
	ProfileComplete bool           `json:"profileComplete"`
	CreatedAt       time.Time      `json:"createdAt"`
	UpdatedAt       time.Time      `json:"updatedAt"`
	DeletedAt       gorm.DeletedAt `gorm:"index" json:"-"`
	Posts           []Post         `gorm:"foreignKey:AuthorID" json:"posts,omitempty"`
}
