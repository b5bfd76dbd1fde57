package models

import "time"

// Review is a user's scored opinion of a title. A user reviews a title at most once.
type Review struct {
	ID        uint      `gorm:"primaryKey"`
	TitleID   uint      `gorm:"not null;uniqueIndex:idx_review_title_author"`
	AuthorID  string    `gorm:"type:varchar(36);not null;uniqueIndex:idx_review_title_author;index"`
	Text      string    `gorm:"type:text;not null"`
	Score     int       `gorm:"not null;check:score >= 1 AND score <= 10"`
	CreatedAt time.Time `gorm:"column:pub_date;autoCreateTime;<-:create"`

	Title  Title `gorm:"constraint:OnDelete:CASCADE;"`
	Author User  `gorm:"foreignKey:AuthorID;constraint:OnDelete:CASCADE;"`
}

// Comment is a reply to a review.
type Comment struct {
	ID        uint      `gorm:"primaryKey"`
	ReviewID  uint      `gorm:"not null;index"`
	AuthorID  string    `gorm:"type:varchar(36);not null;index"`
	Text      string    `gorm:"type:text;not null"`
	CreatedAt time.Time `gorm:"column:pub_date;autoCreateTime;<-:create"`

	Review Review `gorm:"constraint:OnDelete:CASCADE;"`
	Author User   `gorm:"foreignKey:AuthorID;constraint:OnDelete:CASCADE;"`
}
