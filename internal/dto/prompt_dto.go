package dto

import "github.com/google/uuid"

type CreatePromptRequest struct {
	Title    string     `json:"title"`
	Content  string     `json:"content"`
	Tags     []string   `json:"tags,omitempty"`
	Public   bool       `json:"public"`
	RemixOf  *uuid.UUID `json:"remix_of,omitempty"`
	ImageURL string     `json:"image_url,omitempty"`
}

type UpdatePromptRequest struct {
	Title    *string   `json:"title,omitempty"`
	Content  *string   `json:"content,omitempty"`
	Tags     *[]string `json:"tags,omitempty"`
	Public   *bool     `json:"public,omitempty"`
	ImageURL *string   `json:"image_url,omitempty"`
}
