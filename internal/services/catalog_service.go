package services

import (
	"context"
	"fmt"

	"reviewhub/internal/models"
	"reviewhub/internal/repositories"
	"reviewhub/internal/validation"
)

// CatalogService manages the category and genre lookup tables. Neither can be
// renamed once created, so slugs are stable.
type CatalogService struct {
	categories repositories.CategoryRepository
	genres     repositories.GenreRepository
}

// NewCatalogService creates a new CatalogService.
func NewCatalogService(categories repositories.CategoryRepository, genres repositories.GenreRepository) *CatalogService {
	return &CatalogService{categories: categories, genres: genres}
}

func (s *CatalogService) ListCategories(ctx context.Context, search string, page repositories.Page) ([]models.Category, int64, error) {
	return s.categories.List(ctx, search, page)
}

func (s *CatalogService) CreateCategory(ctx context.Context, category *models.Category) error {
	if _, err := s.categories.GetBySlug(ctx, category.Slug); err == nil {
		return validation.NewError("slug", "category with this slug already exists")
	} else if !isNotFound(err) {
		return err
	}
	if err := s.categories.Create(ctx, category); err != nil {
		if isDuplicate(err) {
			return validation.NewError("name", "category with this name already exists")
		}
		return err
	}
	return nil
}

func (s *CatalogService) DeleteCategory(ctx context.Context, slug string) error {
	return s.categories.Delete(ctx, slug)
}

func (s *CatalogService) ListGenres(ctx context.Context, search string, page repositories.Page) ([]models.Genre, int64, error) {
	return s.genres.List(ctx, search, page)
}

func (s *CatalogService) CreateGenre(ctx context.Context, genre *models.Genre) error {
	if _, err := s.genres.GetBySlug(ctx, genre.Slug); err == nil {
		return validation.NewError("slug", "genre with this slug already exists")
	} else if !isNotFound(err) {
		return err
	}
	if err := s.genres.Create(ctx, genre); err != nil {
		if isDuplicate(err) {
			return validation.NewError("name", "genre with this name already exists")
		}
		return err
	}
	return nil
}

func (s *CatalogService) DeleteGenre(ctx context.Context, slug string) error {
	return s.genres.Delete(ctx, slug)
}

// resolveCategory maps a slug to its category; an empty slug means none.
func resolveCategory(ctx context.Context, categories repositories.CategoryRepository, slug string) (*models.Category, error) {
	if slug == "" {
		return nil, nil
	}
	category, err := categories.GetBySlug(ctx, slug)
	if isNotFound(err) {
		return nil, validation.NewError("category", fmt.Sprintf("object with slug=%s does not exist", slug))
	}
	if err != nil {
		return nil, err
	}
	return category, nil
}

// resolveGenres maps slugs to genres, ignoring repeats. Every slug must exist.
func resolveGenres(ctx context.Context, genres repositories.GenreRepository, slugs []string) ([]models.Genre, error) {
	seen := make(map[string]bool, len(slugs))
	unique := make([]string, 0, len(slugs))
	for _, slug := range slugs {
		if !seen[slug] {
			seen[slug] = true
			unique = append(unique, slug)
		}
	}

	found, err := genres.GetBySlugs(ctx, unique)
	if err != nil {
		return nil, err
	}
	if len(found) == len(unique) {
		return found, nil
	}

	known := make(map[string]bool, len(found))
	for _, g := range found {
		known[g.Slug] = true
	}
	for _, slug := range unique {
		if !known[slug] {
			return nil, validation.NewError("genre", fmt.Sprintf("object with slug=%s does not exist", slug))
		}
	}
	return found, nil
}
