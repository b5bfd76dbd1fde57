package repositories

import (
	"context"
	"fmt"

	"reviewhub/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// TitleFilter narrows a title listing; zero fields are ignored and the rest AND together.
type TitleFilter struct {
	Category string
	Genre    string
	Name     string
	Year     *int
}

// TitleRepository defines the interface for title data access.
type TitleRepository interface {
	List(ctx context.Context, filter TitleFilter, page Page) ([]models.Title, int64, error)
	GetByID(ctx context.Context, id uint) (*models.Title, error)
	Exists(ctx context.Context, id uint) (bool, error)
	Create(ctx context.Context, title *models.Title) error
	Update(ctx context.Context, title *models.Title, replaceGenres bool) error
	Delete(ctx context.Context, id uint) error
}

// ratingColumn averages review scores per title; NULL when there are none.
const ratingColumn = "titles.*, (SELECT CAST(AVG(reviews.score) AS FLOAT) FROM reviews WHERE reviews.title_id = titles.id) AS rating"

// GORMTitleRepository is a GORM implementation of TitleRepository.
type GORMTitleRepository struct {
	db *gorm.DB
}

func NewGORMTitleRepository(db *gorm.DB) *GORMTitleRepository {
	return &GORMTitleRepository{db: db}
}

func (r *GORMTitleRepository) List(ctx context.Context, filter TitleFilter, page Page) ([]models.Title, int64, error) {
	q := r.db.WithContext(ctx).Model(&models.Title{})
	if filter.Category != "" {
		q = q.Where("titles.category_id IN (SELECT id FROM categories WHERE slug = ?)", filter.Category)
	}
	if filter.Genre != "" {
		q = q.Where("EXISTS (SELECT 1 FROM title_genres tg JOIN genres g ON g.id = tg.genre_id WHERE tg.title_id = titles.id AND g.slug = ?)", filter.Genre)
	}
	if filter.Name != "" {
		q = q.Where(containsLike("titles.name"), likePattern(filter.Name))
	}
	if filter.Year != nil {
		q = q.Where("titles.year = ?", *filter.Year)
	}
	q = q.Session(&gorm.Session{})

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count titles: %w", err)
	}

	var titles []models.Title
	err := q.Select(ratingColumn).
		Scopes(page.scope, withCatalog).
		Order("titles.name").Order("titles.id").
		Find(&titles).Error
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list titles: %w", err)
	}
	return titles, total, nil
}

// GetByID loads a title with its genres, category and rating.
func (r *GORMTitleRepository) GetByID(ctx context.Context, id uint) (*models.Title, error) {
	var title models.Title
	err := r.db.WithContext(ctx).Model(&models.Title{}).
		Select(ratingColumn).
		Scopes(withCatalog).
		Where("titles.id = ?", id).
		First(&title).Error
	if err != nil {
		return nil, fmt.Errorf("title with ID %d: %w", id, translate(err))
	}
	return &title, nil
}

func (r *GORMTitleRepository) Exists(ctx context.Context, id uint) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.Title{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return false, fmt.Errorf("failed to check title %d: %w", id, err)
	}
	return count > 0, nil
}

// Create inserts title and links it to title.Genres, which must already exist.
func (r *GORMTitleRepository) Create(ctx context.Context, title *models.Title) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Create(title).Error; err != nil {
			return fmt.Errorf("failed to create title: %w", translate(err))
		}
		return linkGenres(tx, title.ID, title.Genres)
	})
}

// Update saves title's columns and, when replaceGenres is set, swaps its genre links
// for title.Genres.
func (r *GORMTitleRepository) Update(ctx context.Context, title *models.Title, replaceGenres bool) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Save(title).Error; err != nil {
			return fmt.Errorf("failed to update title %d: %w", title.ID, translate(err))
		}
		if !replaceGenres {
			return nil
		}
		if err := tx.Exec("DELETE FROM title_genres WHERE title_id = ?", title.ID).Error; err != nil {
			return fmt.Errorf("failed to unlink genres of title %d: %w", title.ID, err)
		}
		return linkGenres(tx, title.ID, title.Genres)
	})
}

// Delete removes a title with its reviews and their comments.
func (r *GORMTitleRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		reviews := tx.Model(&models.Review{}).Select("id").Where("title_id = ?", id)
		if err := tx.Where("review_id IN (?)", reviews).Delete(&models.Comment{}).Error; err != nil {
			return fmt.Errorf("failed to delete comments of title %d: %w", id, err)
		}
		if err := tx.Where("title_id = ?", id).Delete(&models.Review{}).Error; err != nil {
			return fmt.Errorf("failed to delete reviews of title %d: %w", id, err)
		}
		if err := tx.Exec("DELETE FROM title_genres WHERE title_id = ?", id).Error; err != nil {
			return fmt.Errorf("failed to unlink genres of title %d: %w", id, err)
		}
		res := tx.Delete(&models.Title{}, "id = ?", id)
		if res.Error != nil {
			return fmt.Errorf("failed to delete title %d: %w", id, res.Error)
		}
		if res.RowsAffected == 0 {
			return fmt.Errorf("title with ID %d: %w", id, ErrNotFound)
		}
		return nil
	})
}

func withCatalog(db *gorm.DB) *gorm.DB {
	return db.Preload("Category").Preload("Genres", func(db *gorm.DB) *gorm.DB {
		return db.Order("genres.name")
	})
}

func linkGenres(tx *gorm.DB, titleID uint, genres []models.Genre) error {
	if len(genres) == 0 {
		return nil
	}
	rows := make([]map[string]interface{}, 0, len(genres))
	for _, g := range genres {
		rows = append(rows, map[string]interface{}{"title_id": titleID, "genre_id": g.ID})
	}
	if err := tx.Table("title_genres").Create(rows).Error; err != nil {
		return fmt.Errorf("failed to link genres to title %d: %w", titleID, err)
	}
	return nil
}
