package middleware

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"reviewhub/internal/models"
	"reviewhub/internal/permissions"
	"reviewhub/internal/repositories"

	"github.com/dgrijalva/jwt-go"
	"github.com/gofiber/fiber/v2"
)

const actorKey = "actor"

// TokenValidator parses a bearer token into its claims.
type TokenValidator interface {
	ValidateToken(tokenString string) (jwt.MapClaims, error)
}

// UserLoader reloads the user a token was issued to.
type UserLoader interface {
	GetByID(ctx context.Context, id string) (*models.User, error)
}

// Authenticate resolves the bearer token, if any, to the current user and
// stores it for Actor. Requests without an Authorization header pass through
// anonymously; a malformed or invalid token is rejected with 401.
func Authenticate(tokens TokenValidator, users UserLoader, logger *slog.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get(fiber.HeaderAuthorization)
		if authHeader == "" {
			return c.Next()
		}

		// Expected format: "Bearer <token>"
		parts := strings.SplitN(authHeader, " ", 2)
		if !(len(parts) == 2 && parts[0] == "Bearer") {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"message": "Authorization header format must be 'Bearer <token>'",
			})
		}

		claims, err := tokens.ValidateToken(parts[1])
		if err != nil {
			logger.Debug("JWT validation failed", slog.Any("error", err))
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"message": "Invalid or expired token",
			})
		}

		userID, _ := claims["user_id"].(string)
		user, err := users.GetByID(c.UserContext(), userID)
		if err != nil {
			if !errors.Is(err, repositories.ErrNotFound) {
				return err
			}
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"message": "User not found",
			})
		}

		c.Locals(actorKey, user)
		return c.Next()
	}
}

// Actor returns the authenticated user of the request, or nil if anonymous.
func Actor(c *fiber.Ctx) *models.User {
	user, _ := c.Locals(actorKey).(*models.User)
	return user
}

// Authorize rejects requests the policy does not allow for the request method.
func Authorize(policy permissions.Policy) fiber.Handler {
	return func(c *fiber.Ctx) error {
		err := policy.Allow(Actor(c), permissions.ActionFor(c.Method()))
		switch {
		case err == nil:
			return c.Next()
		case errors.Is(err, permissions.ErrUnauthenticated):
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": err.Error()})
		case errors.Is(err, permissions.ErrForbidden):
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"message": err.Error()})
		}
		return err
	}
}
