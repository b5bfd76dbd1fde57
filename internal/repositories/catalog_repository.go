package repositories

import (
	"context"
	"fmt"

	"reviewhub/internal/models"

	"gorm.io/gorm"
)

// CategoryRepository defines the interface for category data access.
type CategoryRepository interface {
	List(ctx context.Context, search string, page Page) ([]models.Category, int64, error)
	GetBySlug(ctx context.Context, slug string) (*models.Category, error)
	Create(ctx context.Context, category *models.Category) error
	Delete(ctx context.Context, slug string) error
}

// GenreRepository defines the interface for genre data access.
type GenreRepository interface {
	List(ctx context.Context, search string, page Page) ([]models.Genre, int64, error)
	GetBySlug(ctx context.Context, slug string) (*models.Genre, error)
	GetBySlugs(ctx context.Context, slugs []string) ([]models.Genre, error)
	Create(ctx context.Context, genre *models.Genre) error
	Delete(ctx context.Context, slug string) error
}

// GORMCategoryRepository is a GORM implementation of CategoryRepository.
type GORMCategoryRepository struct {
	db *gorm.DB
}

func NewGORMCategoryRepository(db *gorm.DB) *GORMCategoryRepository {
	return &GORMCategoryRepository{db: db}
}

func (r *GORMCategoryRepository) List(ctx context.Context, search string, page Page) ([]models.Category, int64, error) {
	var list []models.Category
	total, err := listByName(r.db.WithContext(ctx).Model(&models.Category{}), search, page, &list)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list categories: %w", err)
	}
	return list, total, nil
}

func (r *GORMCategoryRepository) GetBySlug(ctx context.Context, slug string) (*models.Category, error) {
	var category models.Category
	if err := r.db.WithContext(ctx).First(&category, "slug = ?", slug).Error; err != nil {
		return nil, fmt.Errorf("category %s: %w", slug, translate(err))
	}
	return &category, nil
}

func (r *GORMCategoryRepository) Create(ctx context.Context, category *models.Category) error {
	if err := r.db.WithContext(ctx).Create(category).Error; err != nil {
		return fmt.Errorf("failed to create category: %w", translate(err))
	}
	return nil
}

// Delete removes a category and detaches it from its titles.
func (r *GORMCategoryRepository) Delete(ctx context.Context, slug string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var category models.Category
		if err := tx.First(&category, "slug = ?", slug).Error; err != nil {
			return fmt.Errorf("category %s: %w", slug, translate(err))
		}
		if err := tx.Exec("UPDATE titles SET category_id = NULL WHERE category_id = ?", category.ID).Error; err != nil {
			return fmt.Errorf("failed to detach category %s: %w", slug, err)
		}
		if err := tx.Delete(&category).Error; err != nil {
			return fmt.Errorf("failed to delete category %s: %w", slug, err)
		}
		return nil
	})
}

// GORMGenreRepository is a GORM implementation of GenreRepository.
type GORMGenreRepository struct {
	db *gorm.DB
}

func NewGORMGenreRepository(db *gorm.DB) *GORMGenreRepository {
	return &GORMGenreRepository{db: db}
}

func (r *GORMGenreRepository) List(ctx context.Context, search string, page Page) ([]models.Genre, int64, error) {
	var list []models.Genre
	total, err := listByName(r.db.WithContext(ctx).Model(&models.Genre{}), search, page, &list)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list genres: %w", err)
	}
	return list, total, nil
}

func (r *GORMGenreRepository) GetBySlug(ctx context.Context, slug string) (*models.Genre, error) {
	var genre models.Genre
	if err := r.db.WithContext(ctx).First(&genre, "slug = ?", slug).Error; err != nil {
		return nil, fmt.Errorf("genre %s: %w", slug, translate(err))
	}
	return &genre, nil
}

// GetBySlugs returns the genres matching slugs; missing slugs are simply absent.
func (r *GORMGenreRepository) GetBySlugs(ctx context.Context, slugs []string) ([]models.Genre, error) {
	var list []models.Genre
	if len(slugs) == 0 {
		return list, nil
	}
	if err := r.db.WithContext(ctx).Where("slug IN ?", slugs).Order("name").Find(&list).Error; err != nil {
		return nil, fmt.Errorf("failed to get genres by slug: %w", err)
	}
	return list, nil
}

func (r *GORMGenreRepository) Create(ctx context.Context, genre *models.Genre) error {
	if err := r.db.WithContext(ctx).Create(genre).Error; err != nil {
		return fmt.Errorf("failed to create genre: %w", translate(err))
	}
	return nil
}

// Delete removes a genre and its title links.
func (r *GORMGenreRepository) Delete(ctx context.Context, slug string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var genre models.Genre
		if err := tx.First(&genre, "slug = ?", slug).Error; err != nil {
			return fmt.Errorf("genre %s: %w", slug, translate(err))
		}
		if err := tx.Exec("DELETE FROM title_genres WHERE genre_id = ?", genre.ID).Error; err != nil {
			return fmt.Errorf("failed to unlink genre %s: %w", slug, err)
		}
		if err := tx.Delete(&genre).Error; err != nil {
			return fmt.Errorf("failed to delete genre %s: %w", slug, err)
		}
		return nil
	})
}

// listByName counts and pages a name-searchable lookup table.
func listByName(q *gorm.DB, search string, page Page, dest interface{}) (int64, error) {
	if search != "" {
		q = q.Where(containsLike("name"), likePattern(search))
	}
	q = q.Session(&gorm.Session{})

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return 0, err
	}
	if err := q.Scopes(page.scope).Order("name").Order("id").Find(dest).Error; err != nil {
		return 0, err
	}
	return total, nil
}
