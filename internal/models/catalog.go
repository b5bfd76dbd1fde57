package models

// Category groups titles by kind (film, book, music...).
type Category struct {
	ID   uint   `json:"-" gorm:"primaryKey"`
	Name string `json:"name" gorm:"uniqueIndex;type:varchar(256);not null"`
	Slug string `json:"slug" gorm:"uniqueIndex;type:varchar(50);not null"`
}

// Genre tags titles; a title can carry many genres.
type Genre struct {
	ID   uint   `json:"-" gorm:"primaryKey"`
	Name string `json:"name" gorm:"uniqueIndex;type:varchar(256);not null"`
	Slug string `json:"slug" gorm:"uniqueIndex;type:varchar(50);not null"`
}
