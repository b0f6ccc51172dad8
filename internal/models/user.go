package models

import (
	"time"

	"github.com/google/uuid"
)

// User is a registered account. Password is empty for Google-only accounts.
type User struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Email        string    `gorm:"not null;size:255;uniqueIndex" json:"email"`
	Name         string    `gorm:"size:100" json:"name"`
	AvatarURL    string    `gorm:"size:500" json:"avatar_url"`
	Password     string    `gorm:"size:255" json:"-"`
	GoogleID     *string   `gorm:"size:255;index" json:"-"`
	AuthProvider string    `gorm:"size:50;default:'email'" json:"-"`
	Role         string    `gorm:"size:20;default:'user'" json:"role"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
