package models

import (
	"time"
)

// Product is the model for the 'products' table.
// Pointers for nullable columns keep the JSON clean.
type Product struct {
	ID          uint    `json:"id" gorm:"primaryKey"`
	Name        string  `json:"name" gorm:"size:255;not null"`
	Slug        string  `json:"slug" gorm:"size:255;not null;uniqueIndex"`
	Price       float64 `json:"price" gorm:"not null"`
	Description *string `json:"description"`
	Image       *string `json:"image" gorm:"size:255"`
	// No gorm default here: the handler decides, so an explicit
	// "unavailable" on create is not silently flipped back to true.
	IsAvailable bool `json:"isAvailable" gorm:"not null"`

	CategoryID uint      `json:"categoryId" gorm:"index;not null"`
	Category   *Category `json:"category,omitempty" gorm:"foreignKey:CategoryID"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// ProductSummary is the trimmed row embedded in a category detail
// response (id, name, price, image, availability only).
type ProductSummary struct {
	ID          uint    `json:"id"`
	Name        string  `json:"name"`
	Price       float64 `json:"price"`
	Image       *string `json:"image"`
	IsAvailable bool    `json:"isAvailable"`
}
