package repositories

import (
	"context"
	"fmt"

	"reviewhub/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// CommentRepository defines the interface for comment data access.
type CommentRepository interface {
	ListByReview(ctx context.Context, reviewID uint, page Page) ([]models.Comment, int64, error)
	GetByID(ctx context.Context, id uint) (*models.Comment, error)
	Create(ctx context.Context, comment *models.Comment) error
	Update(ctx context.Context, comment *models.Comment) error
	Delete(ctx context.Context, id uint) error
}

// GORMCommentRepository is a GORM implementation of CommentRepository.
type GORMCommentRepository struct {
	db *gorm.DB
}

func NewGORMCommentRepository(db *gorm.DB) *GORMCommentRepository {
	return &GORMCommentRepository{db: db}
}

func (r *GORMCommentRepository) ListByReview(ctx context.Context, reviewID uint, page Page) ([]models.Comment, int64, error) {
	q := r.db.WithContext(ctx).Model(&models.Comment{}).Where("review_id = ?", reviewID).Session(&gorm.Session{})

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count comments of review %d: %w", reviewID, err)
	}

	var comments []models.Comment
	err := q.Preload("Author").
		Scopes(page.scope).
		Order("pub_date").Order("id").
		Find(&comments).Error
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list comments of review %d: %w", reviewID, err)
	}
	return comments, total, nil
}

func (r *GORMCommentRepository) GetByID(ctx context.Context, id uint) (*models.Comment, error) {
	var comment models.Comment
	if err := r.db.WithContext(ctx).Preload("Author").First(&comment, id).Error; err != nil {
		return nil, fmt.Errorf("comment with ID %d: %w", id, translate(err))
	}
	return &comment, nil
}

func (r *GORMCommentRepository) Create(ctx context.Context, comment *models.Comment) error {
	if err := r.db.WithContext(ctx).Omit(clause.Associations).Create(comment).Error; err != nil {
		return fmt.Errorf("failed to create comment: %w", translate(err))
	}
	return nil
}

func (r *GORMCommentRepository) Update(ctx context.Context, comment *models.Comment) error {
	err := r.db.WithContext(ctx).Model(comment).Update("text", comment.Text).Error
	if err != nil {
		return fmt.Errorf("failed to update comment %d: %w", comment.ID, err)
	}
	return nil
}

func (r *GORMCommentRepository) Delete(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&models.Comment{}, id)
	if res.Error != nil {
		return fmt.Errorf("failed to delete comment %d: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("comment with ID %d: %w", id, ErrNotFound)
	}
	return nil
}
