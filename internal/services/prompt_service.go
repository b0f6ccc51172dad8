package services

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/imharishpatil/Prompthub-sub000/internal/dto"
	"github.com/imharishpatil/Prompthub-sub000/internal/models"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

var (
	ErrPromptNotFound = errors.New("prompt not found")
	ErrNotAuthorized  = errors.New("not authorized")
)

// PromptService handles prompt CRUD, remixing, and feed queries.
type PromptService struct {
	db *gorm.DB
}

func NewPromptService(db *gorm.DB) *PromptService {
	return &PromptService{db: db}
}

func (s *PromptService) CreatePrompt(authorID uuid.UUID, req *dto.CreatePromptRequest) (*models.Prompt, error) {
	if req.Title == "" {
		return nil, errors.New("title is required")
	}
	if req.Content == "" {
		return nil, errors.New("content is required")
	}
	if len(req.Title) > 200 {
		return nil, errors.New("title must be under 200 characters")
	}

	tags, err := marshalTags(req.Tags)
	if err != nil {
		return nil, err
	}

	prompt := &models.Prompt{
		ID:       uuid.New(),
		AuthorID: authorID,
		Title:    req.Title,
		Content:  req.Content,
		Tags:     tags,
		Public:   req.Public,
		ImageURL: req.ImageURL,
	}

	if req.RemixOf == nil {
		if err := s.db.Create(prompt).Error; err != nil {
			return nil, fmt.Errorf("failed to create prompt: %w", err)
		}
		return prompt, nil
	}

	// A remix references its parent and bumps the parent's counter; both
	// happen in one transaction so the counter cannot drift from the row.
	parentID := *req.RemixOf
	err = s.db.Transaction(func(tx *gorm.DB) error {
		var parent models.Prompt
		if err := tx.Where("id = ?", parentID).First(&parent).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrPromptNotFound
			}
			return err
		}

		prompt.RemixOf = &parentID
		if err := tx.Create(prompt).Error; err != nil {
			return err
		}

		return tx.Model(&models.Prompt{}).Where("id = ?", parentID).
			Update("remix_count", gorm.Expr("remix_count + 1")).Error
	})
	if err != nil {
		return nil, err
	}

	return prompt, nil
}

// GetPrompt returns a prompt by id. Private prompts are only visible to their
// author; anyone else gets the same not-found as a missing row.
func (s *PromptService) GetPrompt(promptID, callerID uuid.UUID) (*models.Prompt, error) {
	var prompt models.Prompt
	if err := s.db.Where("id = ?", promptID).First(&prompt).Error; err != nil {
		return nil, ErrPromptNotFound
	}

	if !prompt.Public && prompt.AuthorID != callerID {
		return nil, ErrPromptNotFound
	}

	return &prompt, nil
}

func (s *PromptService) GetFeed(page, limit int) ([]models.Prompt, int64, error) {
	var prompts []models.Prompt
	var total int64

	offset := (page - 1) * limit

	query := s.db.Model(&models.Prompt{}).Where("public = ?", true)
	query.Count(&total)

	err := query.Order("created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&prompts).Error

	return prompts, total, err
}

func (s *PromptService) GetByTag(tag string, page, limit int) ([]models.Prompt, int64, error) {
	var prompts []models.Prompt
	var total int64

	needle, err := json.Marshal([]string{tag})
	if err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * limit

	query := s.db.Model(&models.Prompt{}).
		Where("public = ?", true).
		Where("tags @> ?", datatypes.JSON(needle))
	query.Count(&total)

	err = query.Order("created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&prompts).Error

	return prompts, total, err
}

func (s *PromptService) GetByAuthor(authorID uuid.UUID, page, limit int) ([]models.Prompt, int64, error) {
	var prompts []models.Prompt
	var total int64

	offset := (page - 1) * limit

	query := s.db.Model(&models.Prompt{}).
		Where("author_id = ? AND public = ?", authorID, true)
	query.Count(&total)

	err := query.Order("created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&prompts).Error

	return prompts, total, err
}

func (s *PromptService) GetMyPrompts(userID uuid.UUID, page, limit int) ([]models.Prompt, int64, error) {
	var prompts []models.Prompt
	var total int64

	offset := (page - 1) * limit

	query := s.db.Model(&models.Prompt{}).Where("author_id = ?", userID)
	query.Count(&total)

	err := query.Order("created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&prompts).Error

	return prompts, total, err
}

func (s *PromptService) UpdatePrompt(callerID, promptID uuid.UUID, req *dto.UpdatePromptRequest) (*models.Prompt, error) {
	var prompt models.Prompt
	if err := s.db.Where("id = ?", promptID).First(&prompt).Error; err != nil {
		return nil, ErrPromptNotFound
	}

	if prompt.AuthorID != callerID {
		return nil, ErrNotAuthorized
	}

	updates := map[string]interface{}{}
	if req.Title != nil {
		if *req.Title == "" {
			return nil, errors.New("title cannot be empty")
		}
		updates["title"] = *req.Title
	}
	if req.Content != nil {
		if *req.Content == "" {
			return nil, errors.New("content cannot be empty")
		}
		updates["content"] = *req.Content
	}
	if req.Tags != nil {
		tags, err := marshalTags(*req.Tags)
		if err != nil {
			return nil, err
		}
		updates["tags"] = tags
	}
	if req.Public != nil {
		updates["public"] = *req.Public
	}
	if req.ImageURL != nil {
		updates["image_url"] = *req.ImageURL
	}
	if len(updates) == 0 {
		return &prompt, nil
	}

	if err := s.db.Model(&prompt).Updates(updates).Error; err != nil {
		return nil, fmt.Errorf("failed to update prompt: %w", err)
	}

	return &prompt, nil
}

// DeletePrompt removes the prompt and its feedback in one transaction.
// The parent's remix counter is not decremented; it counts remixes ever made.
func (s *PromptService) DeletePrompt(callerID, promptID uuid.UUID) error {
	var prompt models.Prompt
	if err := s.db.Where("id = ?", promptID).First(&prompt).Error; err != nil {
		return ErrPromptNotFound
	}

	if prompt.AuthorID != callerID {
		return ErrNotAuthorized
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("prompt_id = ?", promptID).Delete(&models.Feedback{}).Error; err != nil {
			return err
		}
		return tx.Delete(&prompt).Error
	})
}

func marshalTags(tags []string) (datatypes.JSON, error) {
	if tags == nil {
		tags = []string{}
	}
	if len(tags) > 10 {
		return nil, errors.New("at most 10 tags allowed")
	}
	for _, t := range tags {
		if t == "" || len(t) > 50 {
			return nil, errors.New("tags must be 1-50 characters")
		}
	}
	b, err := json.Marshal(tags)
	if err != nil {
		return nil, fmt.Errorf("failed to encode tags: %w", err)
	}
	return datatypes.JSON(b), nil
}
