package models

import "time"

// ConfirmationCode is a hashed, expiring, single-use code mailed at signup.
type ConfirmationCode struct {
	ID         uint      `gorm:"primaryKey"`
	UserID     string    `gorm:"type:varchar(36);not null;index"`
	CodeHash   string    `gorm:"type:varchar(255);not null"`
	ExpiresAt  time.Time `gorm:"not null"`
	ConsumedAt *time.Time
	CreatedAt  time.Time

	User User `gorm:"constraint:OnDelete:CASCADE;"`
}

// Outstanding reports whether the code can still be exchanged at t.
func (c *ConfirmationCode) Outstanding(t time.Time) bool {
	return c.ConsumedAt == nil && t.Before(c.ExpiresAt)
}

// All lists every persisted model in migration order.
func All() []interface{} {
	return []interface{}{
		&User{},
		&Category{},
		&Genre{},
		&Title{},
		&Review{},
		&Comment{},
		&ConfirmationCode{},
	}
}
