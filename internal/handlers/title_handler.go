package handlers

import (
	"strconv"

	"reviewhub/internal/middleware"
	"reviewhub/internal/permissions"
	"reviewhub/internal/repositories"
	"reviewhub/internal/services"
	"reviewhub/internal/validation"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// TitleHandler serves /titles.
type TitleHandler struct {
	titles   *services.TitleService
	pager    Paginator
	validate *validator.Validate
}

// NewTitleHandler creates a new TitleHandler.
func NewTitleHandler(titles *services.TitleService, pager Paginator) *TitleHandler {
	return &TitleHandler{titles: titles, pager: pager, validate: validation.New()}
}

// RegisterRoutes registers the title routes. The policy is attached per route
// because a group middleware would also cover the nested review routes.
func (h *TitleHandler) RegisterRoutes(router fiber.Router) {
	policy := middleware.Authorize(permissions.ReadOnlyUnlessAdmin)
	titles := router.Group("/titles")
	titles.Get("/", policy, h.List)
	titles.Post("/", policy, h.Create)
	titles.Get("/:title_id", policy, h.Get)
	titles.Patch("/:title_id", policy, h.Update)
	titles.Delete("/:title_id", policy, h.Delete)
}

// TitleRequest is the body for creating or patching a title. Genres and the
// category are given by slug.
type TitleRequest struct {
	Name        *string  `json:"name" validate:"omitempty,max=256"`
	Year        *int     `json:"year" validate:"omitempty,titleyear"`
	Description *string  `json:"description"`
	Genre       []string `json:"genre" validate:"omitempty,dive,slug"`
	Category    *string  `json:"category"`
}

func (r TitleRequest) input() services.TitleInput {
	return services.TitleInput{
		Name:        r.Name,
		Year:        r.Year,
		Description: r.Description,
		Genre:       r.Genre,
		Category:    r.Category,
	}
}

// List supports the category, genre, name and year filters, combined with AND.
func (h *TitleHandler) List(c *fiber.Ctx) error {
	page, err := h.pager.Page(c)
	if err != nil {
		return respondError(c, err)
	}

	filter := repositories.TitleFilter{
		Category: c.Query("category"),
		Genre:    c.Query("genre"),
		Name:     c.Query("name"),
	}
	if raw := c.Query("year"); raw != "" {
		year, err := strconv.Atoi(raw)
		if err != nil {
			return respondError(c, validation.NewError("year", "enter a whole number"))
		}
		filter.Year = &year
	}

	titles, total, err := h.titles.List(c.UserContext(), filter, page)
	if err != nil {
		return respondError(c, err)
	}
	return h.pager.Respond(c, page, total, newTitleResponses(titles))
}

func (h *TitleHandler) Create(c *fiber.Ctx) error {
	var req TitleRequest
	if err := bind(c, h.validate, &req); err != nil {
		return respondError(c, err)
	}
	title, err := h.titles.Create(c.UserContext(), req.input())
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(newTitleResponse(title))
}

func (h *TitleHandler) Get(c *fiber.Ctx) error {
	id, err := paramID(c, "title_id")
	if err != nil {
		return respondError(c, err)
	}
	title, err := h.titles.Get(c.UserContext(), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(newTitleResponse(title))
}

func (h *TitleHandler) Update(c *fiber.Ctx) error {
	id, err := paramID(c, "title_id")
	if err != nil {
		return respondError(c, err)
	}
	var req TitleRequest
	if err := bind(c, h.validate, &req); err != nil {
		return respondError(c, err)
	}
	title, err := h.titles.Update(c.UserContext(), id, req.input())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(newTitleResponse(title))
}

func (h *TitleHandler) Delete(c *fiber.Ctx) error {
	id, err := paramID(c, "title_id")
	if err != nil {
		return respondError(c, err)
	}
	if err := h.titles.Delete(c.UserContext(), id); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
