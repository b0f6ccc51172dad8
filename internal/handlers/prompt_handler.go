package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/imharishpatil/Prompthub-sub000/internal/dto"
	"github.com/imharishpatil/Prompthub-sub000/internal/identity"
	"github.com/imharishpatil/Prompthub-sub000/internal/services"
)

type PromptHandler struct {
	service *services.PromptService
}

func NewPromptHandler(service *services.PromptService) *PromptHandler {
	return &PromptHandler{service: service}
}

func (h *PromptHandler) Create(c *fiber.Ctx) error {
	userID, err := identity.UserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Error: true, Message: "Unauthorized"})
	}

	var req dto.CreatePromptRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: true, Message: "Invalid request body"})
	}

	prompt, err := h.service.CreatePrompt(userID, &req)
	if err != nil {
		if errors.Is(err, services.ErrPromptNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Error: true, Message: "Remix source not found"})
		}
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: true, Message: err.Error()})
	}

	return c.Status(fiber.StatusCreated).JSON(prompt)
}

func (h *PromptHandler) GetFeed(c *fiber.Ctx) error {
	page, limit := pagination(c)

	tag := c.Query("tag")
	author := c.Query("author")

	var err error
	switch {
	case tag != "":
		prompts, total, e := h.service.GetByTag(tag, page, limit)
		if e == nil {
			return c.JSON(paginated(c, "prompts", prompts, total, page, limit))
		}
		err = e
	case author != "":
		authorID, e := uuid.Parse(author)
		if e != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: true, Message: "Invalid author ID"})
		}
		prompts, total, e := h.service.GetByAuthor(authorID, page, limit)
		if e == nil {
			return c.JSON(paginated(c, "prompts", prompts, total, page, limit))
		}
		err = e
	default:
		prompts, total, e := h.service.GetFeed(page, limit)
		if e == nil {
			return c.JSON(paginated(c, "prompts", prompts, total, page, limit))
		}
		err = e
	}

	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Error: true, Message: err.Error()})
}

func (h *PromptHandler) GetByID(c *fiber.Ctx) error {
	promptID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: true, Message: "Invalid prompt ID"})
	}

	// Anonymous callers see public prompts only.
	callerID, _ := identity.UserID(c)

	prompt, err := h.service.GetPrompt(promptID, callerID)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Error: true, Message: err.Error()})
	}

	return c.JSON(fiber.Map{"data": prompt})
}

func (h *PromptHandler) GetMine(c *fiber.Ctx) error {
	userID, err := identity.UserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Error: true, Message: "Unauthorized"})
	}

	page, limit := pagination(c)

	prompts, total, err := h.service.GetMyPrompts(userID, page, limit)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Error: true, Message: err.Error()})
	}

	return c.JSON(paginated(c, "prompts", prompts, total, page, limit))
}

func (h *PromptHandler) Update(c *fiber.Ctx) error {
	userID, err := identity.UserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Error: true, Message: "Unauthorized"})
	}

	promptID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: true, Message: "Invalid prompt ID"})
	}

	var req dto.UpdatePromptRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: true, Message: "Invalid request body"})
	}

	prompt, err := h.service.UpdatePrompt(userID, promptID, &req)
	if err != nil {
		return ownershipError(c, err)
	}

	return c.JSON(fiber.Map{"data": prompt})
}

func (h *PromptHandler) Delete(c *fiber.Ctx) error {
	userID, err := identity.UserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Error: true, Message: "Unauthorized"})
	}

	promptID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: true, Message: "Invalid prompt ID"})
	}

	if err := h.service.DeletePrompt(userID, promptID); err != nil {
		return ownershipError(c, err)
	}

	return c.JSON(fiber.Map{"success": true, "message": "Prompt deleted"})
}

// ownershipError maps guard failures to status codes. NotFound and
// NotAuthorized stay distinguishable.
func ownershipError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, services.ErrPromptNotFound), errors.Is(err, services.ErrFeedbackNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Error: true, Message: err.Error()})
	case errors.Is(err, services.ErrNotAuthorized):
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Error: true, Message: err.Error()})
	default:
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: true, Message: err.Error()})
	}
}

func pagination(c *fiber.Ctx) (int, int) {
	page := c.QueryInt("page", 1)
	limit := c.QueryInt("limit", 20)
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 50 {
		limit = 20
	}
	return page, limit
}

func paginated(c *fiber.Ctx, key string, items interface{}, total int64, page, limit int) fiber.Map {
	return fiber.Map{
		"data": fiber.Map{
			key: items,
			"pagination": fiber.Map{
				"page":        page,
				"limit":       limit,
				"total":       total,
				"total_pages": (total + int64(limit) - 1) / int64(limit),
			},
		},
	}
}
