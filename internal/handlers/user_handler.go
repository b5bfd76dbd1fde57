package handlers

import (
	"reviewhub/internal/middleware"
	"reviewhub/internal/models"
	"reviewhub/internal/permissions"
	"reviewhub/internal/services"
	"reviewhub/internal/validation"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// UserHandler serves admin user management and /users/me.
type UserHandler struct {
	userService *services.UserService
	pager       Paginator
	validate    *validator.Validate
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(userService *services.UserService, pager Paginator) *UserHandler {
	return &UserHandler{userService: userService, pager: pager, validate: validation.New()}
}

// RegisterRoutes registers the user routes. /me is mounted before /:username so
// the alias wins.
func (h *UserHandler) RegisterRoutes(router fiber.Router) {
	users := router.Group("/users")

	self := middleware.Authorize(permissions.Authenticated)
	users.Get("/me", self, h.GetMe)
	users.Patch("/me", self, h.UpdateMe)

	admin := middleware.Authorize(permissions.AdminOnly)
	users.Get("/", admin, h.List)
	users.Post("/", admin, h.Create)
	users.Get("/:username", admin, h.Get)
	users.Patch("/:username", admin, h.Update)
	users.Delete("/:username", admin, h.Delete)
}

// CreateUserRequest is the body of POST /users.
type CreateUserRequest struct {
	Username  string      `json:"username" validate:"required,max=150,username"`
	Email     string      `json:"email" validate:"required,email,max=254"`
	FirstName string      `json:"first_name" validate:"max=150"`
	LastName  string      `json:"last_name" validate:"max=150"`
	Bio       string      `json:"bio"`
	Role      models.Role `json:"role" validate:"omitempty,oneof=user moderator admin"`
}

// UpdateUserRequest is the body of PATCH /users/:username.
type UpdateUserRequest struct {
	Username  *string      `json:"username" validate:"omitempty,max=150,username"`
	Email     *string      `json:"email" validate:"omitempty,email,max=254"`
	FirstName *string      `json:"first_name" validate:"omitempty,max=150"`
	LastName  *string      `json:"last_name" validate:"omitempty,max=150"`
	Bio       *string      `json:"bio"`
	Role      *models.Role `json:"role" validate:"omitempty,oneof=user moderator admin"`
}

// UpdateMeRequest is the body of PATCH /users/me. It has no role field, so a
// submitted role is dropped while decoding.
type UpdateMeRequest struct {
	Username  *string `json:"username" validate:"omitempty,max=150,username"`
	Email     *string `json:"email" validate:"omitempty,email,max=254"`
	FirstName *string `json:"first_name" validate:"omitempty,max=150"`
	LastName  *string `json:"last_name" validate:"omitempty,max=150"`
	Bio       *string `json:"bio"`
}

func (h *UserHandler) List(c *fiber.Ctx) error {
	page, err := h.pager.Page(c)
	if err != nil {
		return respondError(c, err)
	}
	users, total, err := h.userService.List(c.UserContext(), c.Query("search"), page)
	if err != nil {
		return respondError(c, err)
	}
	return h.pager.Respond(c, page, total, nonNilUsers(users))
}

func (h *UserHandler) Create(c *fiber.Ctx) error {
	var req CreateUserRequest
	if err := bind(c, h.validate, &req); err != nil {
		return respondError(c, err)
	}

	user := &models.User{
		Username:  req.Username,
		Email:     req.Email,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Bio:       req.Bio,
		Role:      req.Role,
	}
	if err := h.userService.Create(c.UserContext(), user); err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(user)
}

func (h *UserHandler) Get(c *fiber.Ctx) error {
	user, err := h.userService.Get(c.UserContext(), c.Params("username"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(user)
}

func (h *UserHandler) Update(c *fiber.Ctx) error {
	var req UpdateUserRequest
	if err := bind(c, h.validate, &req); err != nil {
		return respondError(c, err)
	}

	user, err := h.userService.Update(c.UserContext(), c.Params("username"), services.UserPatch{
		Username:  req.Username,
		Email:     req.Email,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Bio:       req.Bio,
		Role:      req.Role,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(user)
}

func (h *UserHandler) Delete(c *fiber.Ctx) error {
	if err := h.userService.Delete(c.UserContext(), c.Params("username")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (h *UserHandler) GetMe(c *fiber.Ctx) error {
	return c.JSON(middleware.Actor(c))
}

func (h *UserHandler) UpdateMe(c *fiber.Ctx) error {
	var req UpdateMeRequest
	if err := bind(c, h.validate, &req); err != nil {
		return respondError(c, err)
	}

	user, err := h.userService.UpdateMe(c.UserContext(), middleware.Actor(c), services.UserPatch{
		Username:  req.Username,
		Email:     req.Email,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Bio:       req.Bio,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(user)
}
