package services

import (
	"context"

	"reviewhub/internal/models"
	"reviewhub/internal/repositories"
	"reviewhub/internal/validation"
)

// TitleInput carries the writable title fields. For PATCH, nil fields are left
// alone; a nil Genre keeps the current genres and an empty Category clears it.
type TitleInput struct {
	Name        *string
	Year        *int
	Description *string
	Genre       []string
	Category    *string
}

// TitleService manages titles and resolves their genre and category slugs.
type TitleService struct {
	titles     repositories.TitleRepository
	categories repositories.CategoryRepository
	genres     repositories.GenreRepository
}

// NewTitleService creates a new TitleService.
func NewTitleService(
	titles repositories.TitleRepository,
	categories repositories.CategoryRepository,
	genres repositories.GenreRepository,
) *TitleService {
	return &TitleService{titles: titles, categories: categories, genres: genres}
}

func (s *TitleService) List(ctx context.Context, filter repositories.TitleFilter, page repositories.Page) ([]models.Title, int64, error) {
	return s.titles.List(ctx, filter, page)
}

func (s *TitleService) Get(ctx context.Context, id uint) (*models.Title, error) {
	return s.titles.GetByID(ctx, id)
}

// Create stores a new title. Name, year and genre are required.
func (s *TitleService) Create(ctx context.Context, in TitleInput) (*models.Title, error) {
	verr := &validation.Error{}
	if in.Name == nil {
		verr.Add("name", "this field is required")
	}
	if in.Year == nil {
		verr.Add("year", "this field is required")
	}
	if in.Genre == nil {
		verr.Add("genre", "this field is required")
	}
	if !verr.Empty() {
		return nil, verr
	}

	title := &models.Title{}
	if err := s.apply(ctx, title, in); err != nil {
		return nil, err
	}
	if err := s.titles.Create(ctx, title); err != nil {
		return nil, err
	}
	return s.titles.GetByID(ctx, title.ID)
}

// Update applies a partial update to the title.
func (s *TitleService) Update(ctx context.Context, id uint, in TitleInput) (*models.Title, error) {
	title, err := s.titles.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.apply(ctx, title, in); err != nil {
		return nil, err
	}
	if err := s.titles.Update(ctx, title, in.Genre != nil); err != nil {
		return nil, err
	}
	return s.titles.GetByID(ctx, id)
}

func (s *TitleService) Delete(ctx context.Context, id uint) error {
	return s.titles.Delete(ctx, id)
}

func (s *TitleService) apply(ctx context.Context, title *models.Title, in TitleInput) error {
	if in.Year != nil {
		if err := validation.ValidateYear(*in.Year); err != nil {
			return err
		}
		title.Year = *in.Year
	}
	if in.Name != nil {
		title.Name = *in.Name
	}
	if in.Description != nil {
		title.Description = *in.Description
	}
	if in.Category != nil {
		category, err := resolveCategory(ctx, s.categories, *in.Category)
		if err != nil {
			return err
		}
		title.Category = category
		title.CategoryID = nil
		if category != nil {
			title.CategoryID = &category.ID
		}
	}
	if in.Genre != nil {
		genres, err := resolveGenres(ctx, s.genres, in.Genre)
		if err != nil {
			return err
		}
		title.Genres = genres
	}
	return nil
}
