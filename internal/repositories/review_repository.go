package repositories

import (
	"context"
	"fmt"

	"reviewhub/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ReviewRepository defines the interface for review data access.
type ReviewRepository interface {
	ListByTitle(ctx context.Context, titleID uint, page Page) ([]models.Review, int64, error)
	GetByID(ctx context.Context, id uint) (*models.Review, error)
	ExistsForAuthor(ctx context.Context, titleID uint, authorID string) (bool, error)
	Create(ctx context.Context, review *models.Review) error
	Update(ctx context.Context, review *models.Review) error
	Delete(ctx context.Context, id uint) error
}

// GORMReviewRepository is a GORM implementation of ReviewRepository.
type GORMReviewRepository struct {
	db *gorm.DB
}

func NewGORMReviewRepository(db *gorm.DB) *GORMReviewRepository {
	return &GORMReviewRepository{db: db}
}

func (r *GORMReviewRepository) ListByTitle(ctx context.Context, titleID uint, page Page) ([]models.Review, int64, error) {
	q := r.db.WithContext(ctx).Model(&models.Review{}).Where("title_id = ?", titleID).Session(&gorm.Session{})

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count reviews of title %d: %w", titleID, err)
	}

	var reviews []models.Review
	err := q.Preload("Author").Preload("Title").
		Scopes(page.scope).
		Order("pub_date DESC").Order("id DESC").
		Find(&reviews).Error
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list reviews of title %d: %w", titleID, err)
	}
	return reviews, total, nil
}

func (r *GORMReviewRepository) GetByID(ctx context.Context, id uint) (*models.Review, error) {
	var review models.Review
	if err := r.db.WithContext(ctx).Preload("Author").Preload("Title").First(&review, id).Error; err != nil {
		return nil, fmt.Errorf("review with ID %d: %w", id, translate(err))
	}
	return &review, nil
}

func (r *GORMReviewRepository) ExistsForAuthor(ctx context.Context, titleID uint, authorID string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Review{}).
		Where("title_id = ? AND author_id = ?", titleID, authorID).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("failed to check review of title %d: %w", titleID, err)
	}
	return count > 0, nil
}

// Create inserts a review. A second review for the same title and author
// fails with ErrDuplicate even if a caller's pre-check raced.
func (r *GORMReviewRepository) Create(ctx context.Context, review *models.Review) error {
	if err := r.db.WithContext(ctx).Omit(clause.Associations).Create(review).Error; err != nil {
		return fmt.Errorf("failed to create review: %w", translate(err))
	}
	return nil
}

func (r *GORMReviewRepository) Update(ctx context.Context, review *models.Review) error {
	err := r.db.WithContext(ctx).Model(review).
		Select("text", "score").
		Updates(map[string]interface{}{"text": review.Text, "score": review.Score}).Error
	if err != nil {
		return fmt.Errorf("failed to update review %d: %w", review.ID, translate(err))
	}
	return nil
}

// Delete removes a review and its comments.
func (r *GORMReviewRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("review_id = ?", id).Delete(&models.Comment{}).Error; err != nil {
			return fmt.Errorf("failed to delete comments of review %d: %w", id, err)
		}
		res := tx.Delete(&models.Review{}, id)
		if res.Error != nil {
			return fmt.Errorf("failed to delete review %d: %w", id, res.Error)
		}
		if res.RowsAffected == 0 {
			return fmt.Errorf("review with ID %d: %w", id, ErrNotFound)
		}
		return nil
	})
}
