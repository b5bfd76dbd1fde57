package repositories

import (
	"context"
	"fmt"
	"time"

	"reviewhub/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ConfirmationCodeRepository stores hashed signup codes.
type ConfirmationCodeRepository interface {
	// Replace voids the user's outstanding codes and stores code in their place.
	Replace(ctx context.Context, code *models.ConfirmationCode) error
	// Latest returns the newest code of the user that is outstanding at t.
	Latest(ctx context.Context, userID string, t time.Time) (*models.ConfirmationCode, error)
	// Consume marks a code used; it fails with ErrNotFound if it already was.
	Consume(ctx context.Context, id uint, t time.Time) error
}

// GORMConfirmationCodeRepository is a GORM implementation of ConfirmationCodeRepository.
type GORMConfirmationCodeRepository struct {
	db *gorm.DB
}

func NewGORMConfirmationCodeRepository(db *gorm.DB) *GORMConfirmationCodeRepository {
	return &GORMConfirmationCodeRepository{db: db}
}

func (r *GORMConfirmationCodeRepository) Replace(ctx context.Context, code *models.ConfirmationCode) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := revoke(tx, code.UserID, time.Now()); err != nil {
			return err
		}
		if err := tx.Omit(clause.Associations).Create(code).Error; err != nil {
			return fmt.Errorf("failed to store confirmation code: %w", err)
		}
		return nil
	})
}

func (r *GORMConfirmationCodeRepository) Latest(ctx context.Context, userID string, t time.Time) (*models.ConfirmationCode, error) {
	var code models.ConfirmationCode
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND consumed_at IS NULL AND expires_at > ?", userID, t).
		Order("created_at DESC").Order("id DESC").
		First(&code).Error
	if err != nil {
		return nil, fmt.Errorf("confirmation code of user %s: %w", userID, translate(err))
	}
	return &code, nil
}

func (r *GORMConfirmationCodeRepository) Consume(ctx context.Context, id uint, t time.Time) error {
	res := r.db.WithContext(ctx).Model(&models.ConfirmationCode{}).
		Where("id = ? AND consumed_at IS NULL", id).
		Update("consumed_at", t)
	if res.Error != nil {
		return fmt.Errorf("failed to consume confirmation code %d: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("confirmation code %d: %w", id, ErrNotFound)
	}
	return nil
}

func revoke(db *gorm.DB, userID string, t time.Time) error {
	err := db.Model(&models.ConfirmationCode{}).
		Where("user_id = ? AND consumed_at IS NULL", userID).
		Update("consumed_at", t).Error
	if err != nil {
		return fmt.Errorf("failed to revoke codes of user %s: %w", userID, err)
	}
	return nil
}
