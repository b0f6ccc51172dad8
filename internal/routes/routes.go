package routes

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/imharishpatil/Prompthub-sub000/internal/config"
	"github.com/imharishpatil/Prompthub-sub000/internal/handlers"
	"github.com/imharishpatil/Prompthub-sub000/internal/middleware"
	"gorm.io/gorm"
)

func Setup(
	app *fiber.App,
	cfg *config.Config,
	db *gorm.DB,
	authHandler *handlers.AuthHandler,
	promptHandler *handlers.PromptHandler,
	feedbackHandler *handlers.FeedbackHandler,
	moderationHandler *handlers.ModerationHandler,
	healthHandler *handlers.HealthHandler,
) {
	api := app.Group("/api")

	// General API rate limiter: 60 req/min per IP
	api.Use(limiter.New(limiter.Config{
		Max:               60,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
	}))

	api.Get("/health", healthHandler.Check)

	// Auth — stricter rate limit: 10 req/min per IP
	auth := api.Group("/auth")
	auth.Use(limiter.New(limiter.Config{
		Max:               10,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
	}))
	auth.Post("/signup", authHandler.Signup)
	auth.Post("/login", authHandler.Login)
	auth.Post("/refresh", authHandler.Refresh)
	auth.Post("/google", authHandler.GoogleSignIn)

	// Every route below runs behind the bearer verifier, which degrades to
	// anonymous instead of rejecting; the handlers decide what anonymous
	// callers may do.
	auth.Post("/logout", authHandler.Logout)
	auth.Put("/profile", authHandler.UpdateProfile)
	auth.Delete("/account", authHandler.DeleteAccount)

	// Prompts
	api.Get("/prompts", promptHandler.GetFeed)
	api.Get("/prompts/my/list", promptHandler.GetMine)
	api.Get("/prompts/:id", promptHandler.GetByID)
	api.Post("/prompts", promptHandler.Create)
	api.Put("/prompts/:id", promptHandler.Update)
	api.Delete("/prompts/:id", promptHandler.Delete)

	// Feedback
	api.Get("/prompts/:id/feedback", feedbackHandler.GetForPrompt)
	api.Post("/prompts/:id/feedback", feedbackHandler.Create)
	api.Delete("/feedback/:id", feedbackHandler.Delete)

	// Reports
	api.Post("/reports", moderationHandler.CreateReport)

	// Admin moderation panel
	admin := api.Group("/admin", middleware.AdminRequired(db, cfg))
	admin.Get("/moderation/reports", moderationHandler.ListReports)
	admin.Put("/moderation/reports/:id", moderationHandler.ActionReport)
}
