package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Prompt is a user-authored prompt. RemixOf points at the prompt it was
// remixed from; RemixCount is the denormalized number of remixes made of it.
type Prompt struct {
	ID         uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	AuthorID   uuid.UUID      `gorm:"type:uuid;not null;index" json:"author_id"`
	Title      string         `gorm:"not null;size:200" json:"title"`
	Content    string         `gorm:"type:text;not null" json:"content"`
	Tags       datatypes.JSON `gorm:"type:jsonb;default:'[]'" json:"tags"`
	// No column default: gorm omits zero-valued fields carrying a default
	// tag from the INSERT, which would silently flip private prompts public.
	Public     bool           `gorm:"index" json:"public"`
	RemixOf    *uuid.UUID     `gorm:"type:uuid;index" json:"remix_of,omitempty"`
	RemixCount int            `gorm:"default:0" json:"remix_count"`
	ImageURL   string         `gorm:"size:500" json:"image_url,omitempty"`
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
	Author     User           `gorm:"foreignKey:AuthorID" json:"-"`
}
