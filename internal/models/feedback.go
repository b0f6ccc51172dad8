package models

import (
	"time"

	"github.com/google/uuid"
)

// Feedback is one rating+comment per (author, prompt) pair. The composite
// unique index is the authority on duplicates, not a prior read.
type Feedback struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	AuthorID  uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_feedback_author_prompt" json:"author_id"`
	PromptID  uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_feedback_author_prompt;index" json:"prompt_id"`
	Rating    int       `gorm:"not null" json:"rating"`
	Comment   string    `gorm:"type:text" json:"comment"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	Author    User      `gorm:"foreignKey:AuthorID" json:"-"`
	Prompt    Prompt    `gorm:"foreignKey:PromptID" json:"-"`
}
