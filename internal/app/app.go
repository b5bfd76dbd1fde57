// Package app assembles the HTTP application from its repositories, services
// and handlers.
package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"reviewhub/internal/config"
	"reviewhub/internal/handlers"
	"reviewhub/internal/mailer"
	"reviewhub/internal/middleware"
	"reviewhub/internal/models"
	"reviewhub/internal/repositories"
	"reviewhub/internal/services"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"gorm.io/gorm"
)

// Options are the external dependencies of the application.
type Options struct {
	Config *config.Config
	DB     *gorm.DB
	Mail   mailer.Sender
	Logger *slog.Logger
	// AccessLog enables fiber's request logger.
	AccessLog bool
}

// New wires repositories, services and handlers into a fiber app serving
// /api/v1 and /health.
func New(opts Options) *fiber.App {
	cfg, db, log := opts.Config, opts.DB, opts.Logger

	// --- Repositories ---
	userRepo := repositories.NewGORMUserRepository(db)
	codeRepo := repositories.NewGORMConfirmationCodeRepository(db)
	categoryRepo := repositories.NewGORMCategoryRepository(db)
	genreRepo := repositories.NewGORMGenreRepository(db)
	titleRepo := repositories.NewGORMTitleRepository(db)
	reviewRepo := repositories.NewGORMReviewRepository(db)
	commentRepo := repositories.NewGORMCommentRepository(db)

	// --- Services ---
	authService := services.NewAuthService(userRepo, codeRepo, opts.Mail, services.AuthConfig{
		JWTSecret: cfg.JWTSecret,
		TokenTTL:  cfg.AccessTokenTTL,
		CodeTTL:   cfg.ConfirmationCodeTTL,
	}, log)
	userService := services.NewUserService(userRepo)
	catalogService := services.NewCatalogService(categoryRepo, genreRepo)
	titleService := services.NewTitleService(titleRepo, categoryRepo, genreRepo)
	reviewService := services.NewReviewService(titleRepo, reviewRepo)
	commentService := services.NewCommentService(titleRepo, reviewRepo, commentRepo)

	// --- Handlers ---
	pager := handlers.Paginator{DefaultSize: cfg.PageSize, MaxSize: cfg.MaxPageSize}
	routes := []interface{ RegisterRoutes(fiber.Router) }{
		handlers.NewAuthHandler(authService),
		handlers.NewUserHandler(userService, pager),
		handlers.NewCatalogHandler(catalogService, pager),
		handlers.NewTitleHandler(titleService, pager),
		handlers.NewReviewHandler(reviewService, commentService, pager),
	}

	app := fiber.New(fiber.Config{
		AppName:      "reviewhub",
		ErrorHandler: errorHandler(log),
	})

	// --- Middleware ---
	app.Use(recover.New())
	if opts.AccessLog {
		app.Use(logger.New())
	}

	app.Get("/health", healthCheck(db, log))

	apiV1 := app.Group("/api/v1", middleware.Authenticate(authService, userRepo, log))
	for _, h := range routes {
		h.RegisterRoutes(apiV1)
	}

	return app
}

// errorHandler renders *fiber.Error with its own status and logs anything else
// as an internal error.
func errorHandler(log *slog.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		var fe *fiber.Error
		if errors.As(err, &fe) {
			return c.Status(fe.Code).JSON(fiber.Map{"message": fe.Message})
		}

		log.ErrorContext(c.UserContext(), "request failed",
			slog.String("method", c.Method()),
			slog.String("path", c.Path()),
			slog.Any("error", err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Internal server error",
		})
	}
}

// SeedAdmin makes sure a superuser with the given username exists. A new one is
// created pending and activates through the normal signup and token flow with
// the same username and email.
func SeedAdmin(ctx context.Context, users repositories.UserRepository, username, email string, log *slog.Logger) error {
	if username == "" {
		return nil
	}

	user, err := users.GetByUsername(ctx, username)
	switch {
	case errors.Is(err, repositories.ErrNotFound):
		user = &models.User{Username: username, Email: email, Role: models.RoleAdmin, IsSuperuser: true}
		if err := users.Create(ctx, user); err != nil {
			return fmt.Errorf("failed to seed admin %s: %w", username, err)
		}
		log.Info("seeded admin user", slog.String("username", username))
		return nil
	case err != nil:
		return fmt.Errorf("failed to look up admin %s: %w", username, err)
	}

	if user.IsSuperuser && user.Role == models.RoleAdmin {
		return nil
	}
	user.Role = models.RoleAdmin
	user.IsSuperuser = true
	if err := users.Update(ctx, user); err != nil {
		return fmt.Errorf("failed to promote admin %s: %w", username, err)
	}
	log.Info("promoted admin user", slog.String("username", username))
	return nil
}
