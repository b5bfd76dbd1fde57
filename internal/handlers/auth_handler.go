package handlers

import (
	"reviewhub/internal/services"
	"reviewhub/internal/validation"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// AuthHandler handles HTTP requests for signup and token issuance.
type AuthHandler struct {
	authService *services.AuthService
	validate    *validator.Validate
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(authService *services.AuthService) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		validate:    validation.New(),
	}
}

// RegisterRoutes registers the authentication routes with the Fiber app.
func (h *AuthHandler) RegisterRoutes(router fiber.Router) {
	authRoutes := router.Group("/auth")
	authRoutes.Post("/signup", h.HandleSignup)
	authRoutes.Post("/token", h.HandleToken)
}

// SignupRequest represents the request body for signup.
type SignupRequest struct {
	Username string `json:"username" validate:"required,max=150,username"`
	Email    string `json:"email" validate:"required,email,max=254"`
}

// HandleSignup registers the user and mails a confirmation code. The response
// does not depend on whether the mail went out.
func (h *AuthHandler) HandleSignup(c *fiber.Ctx) error {
	var req SignupRequest
	if err := bind(c, h.validate, &req); err != nil {
		return respondError(c, err)
	}

	user, err := h.authService.Signup(c.UserContext(), req.Username, req.Email)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(SignupRequest{Username: user.Username, Email: user.Email})
}

// TokenRequest represents the request body for token issuance.
type TokenRequest struct {
	Username         string `json:"username" validate:"required"`
	ConfirmationCode string `json:"confirmation_code" validate:"required"`
}

// HandleToken exchanges a confirmation code for an access token.
func (h *AuthHandler) HandleToken(c *fiber.Ctx) error {
	var req TokenRequest
	if err := bind(c, h.validate, &req); err != nil {
		return respondError(c, err)
	}

	token, err := h.authService.IssueToken(c.UserContext(), req.Username, req.ConfirmationCode)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"token": token})
}
