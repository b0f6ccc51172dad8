package services

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/imharishpatil/Prompthub-sub000/internal/dto"
	"github.com/imharishpatil/Prompthub-sub000/internal/models"
	"gorm.io/gorm"
)

var (
	ErrFeedbackNotFound  = errors.New("feedback not found")
	ErrDuplicateFeedback = errors.New("feedback already submitted for this prompt")
	ErrInvalidRating     = errors.New("rating must be between 1 and 5")
)

// FeedbackService handles ratings and comments on prompts.
type FeedbackService struct {
	db         *gorm.DB
	moderation *ModerationService
}

func NewFeedbackService(db *gorm.DB, moderation *ModerationService) *FeedbackService {
	return &FeedbackService{db: db, moderation: moderation}
}

func (s *FeedbackService) CreateFeedback(authorID, promptID uuid.UUID, req *dto.CreateFeedbackRequest) (*models.Feedback, error) {
	if req.Rating < 1 || req.Rating > 5 {
		return nil, ErrInvalidRating
	}
	if len(req.Comment) > 2000 {
		return nil, errors.New("comment must be under 2000 characters")
	}

	if s.moderation != nil && req.Comment != "" {
		if ok, reason := s.moderation.FilterContent(req.Comment); !ok {
			return nil, errors.New(s.moderation.GetRejectionMessage(reason))
		}
	}

	var prompt models.Prompt
	if err := s.db.Where("id = ?", promptID).First(&prompt).Error; err != nil {
		return nil, ErrPromptNotFound
	}
	if !prompt.Public && prompt.AuthorID != authorID {
		return nil, ErrPromptNotFound
	}

	feedback := &models.Feedback{
		ID:       uuid.New(),
		AuthorID: authorID,
		PromptID: promptID,
		Rating:   req.Rating,
		Comment:  req.Comment,
	}

	// The (author_id, prompt_id) unique index decides duplicates, so two
	// concurrent submissions cannot both land.
	if err := s.db.Create(feedback).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrDuplicateFeedback
		}
		return nil, fmt.Errorf("failed to create feedback: %w", err)
	}

	return feedback, nil
}

func (s *FeedbackService) GetForPrompt(promptID uuid.UUID, page, limit int) ([]models.Feedback, int64, error) {
	var feedback []models.Feedback
	var total int64

	offset := (page - 1) * limit

	query := s.db.Model(&models.Feedback{}).Where("prompt_id = ?", promptID)
	query.Count(&total)

	err := query.Order("created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&feedback).Error

	return feedback, total, err
}

// RatingSummary returns the average rating and rating count for a prompt.
func (s *FeedbackService) RatingSummary(promptID uuid.UUID) (float64, int64, error) {
	var result struct {
		Avg   float64
		Count int64
	}

	err := s.db.Model(&models.Feedback{}).
		Select("COALESCE(AVG(rating), 0) as avg, COUNT(*) as count").
		Where("prompt_id = ?", promptID).
		Scan(&result).Error

	return result.Avg, result.Count, err
}

func (s *FeedbackService) DeleteFeedback(callerID, feedbackID uuid.UUID) error {
	var feedback models.Feedback
	if err := s.db.Where("id = ?", feedbackID).First(&feedback).Error; err != nil {
		return ErrFeedbackNotFound
	}

	if feedback.AuthorID != callerID {
		return ErrNotAuthorized
	}

	return s.db.Delete(&feedback).Error
}
