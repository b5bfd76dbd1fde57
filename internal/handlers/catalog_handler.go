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

// CatalogHandler serves /categories and /genres. Both support list, create and
// delete only.
type CatalogHandler struct {
	catalog  *services.CatalogService
	pager    Paginator
	validate *validator.Validate
}

// NewCatalogHandler creates a new CatalogHandler.
func NewCatalogHandler(catalog *services.CatalogService, pager Paginator) *CatalogHandler {
	return &CatalogHandler{catalog: catalog, pager: pager, validate: validation.New()}
}

// RegisterRoutes registers the category and genre routes.
func (h *CatalogHandler) RegisterRoutes(router fiber.Router) {
	policy := middleware.Authorize(permissions.ReadOnlyUnlessAdmin)

	categories := router.Group("/categories")
	categories.Get("/", policy, h.ListCategories)
	categories.Post("/", policy, h.CreateCategory)
	categories.Delete("/:slug", policy, h.DeleteCategory)

	genres := router.Group("/genres")
	genres.Get("/", policy, h.ListGenres)
	genres.Post("/", policy, h.CreateGenre)
	genres.Delete("/:slug", policy, h.DeleteGenre)
}

// CatalogEntryRequest is the body for creating a category or a genre.
type CatalogEntryRequest struct {
	Name string `json:"name" validate:"required,max=256"`
	Slug string `json:"slug" validate:"required,max=50,slug"`
}

func (h *CatalogHandler) ListCategories(c *fiber.Ctx) error {
	page, err := h.pager.Page(c)
	if err != nil {
		return respondError(c, err)
	}
	list, total, err := h.catalog.ListCategories(c.UserContext(), c.Query("search"), page)
	if err != nil {
		return respondError(c, err)
	}
	if list == nil {
		list = []models.Category{}
	}
	return h.pager.Respond(c, page, total, list)
}

func (h *CatalogHandler) CreateCategory(c *fiber.Ctx) error {
	var req CatalogEntryRequest
	if err := bind(c, h.validate, &req); err != nil {
		return respondError(c, err)
	}
	category := &models.Category{Name: req.Name, Slug: req.Slug}
	if err := h.catalog.CreateCategory(c.UserContext(), category); err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(category)
}

func (h *CatalogHandler) DeleteCategory(c *fiber.Ctx) error {
	if err := h.catalog.DeleteCategory(c.UserContext(), c.Params("slug")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (h *CatalogHandler) ListGenres(c *fiber.Ctx) error {
	page, err := h.pager.Page(c)
	if err != nil {
		return respondError(c, err)
	}
	list, total, err := h.catalog.ListGenres(c.UserContext(), c.Query("search"), page)
	if err != nil {
		return respondError(c, err)
	}
	if list == nil {
		list = []models.Genre{}
	}
	return h.pager.Respond(c, page, total, list)
}

func (h *CatalogHandler) CreateGenre(c *fiber.Ctx) error {
	var req CatalogEntryRequest
	if err := bind(c, h.validate, &req); err != nil {
		return respondError(c, err)
	}
	genre := &models.Genre{Name: req.Name, Slug: req.Slug}
	if err := h.catalog.CreateGenre(c.UserContext(), genre); err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(genre)
}

func (h *CatalogHandler) DeleteGenre(c *fiber.Ctx) error {
	if err := h.catalog.DeleteGenre(c.UserContext(), c.Params("slug")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
