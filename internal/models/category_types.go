package models

import (
	"time"
)

// Category is the model for the 'categories' table.
// Categories form a tree via ParentID, but the menu only ever uses
// two levels (top-level menus and their subcategories).
type Category struct {
	ID       uint   `json:"id" gorm:"primaryKey"`
	Name     string `json:"name" gorm:"size:100;not null"`
	Slug     string `json:"slug" gorm:"size:120;not null;uniqueIndex"`
	ParentID *uint  `json:"parentId" gorm:"index"`

	Parent   *Category  `json:"-" gorm:"foreignKey:ParentID"`
	Children []Category `json:"children,omitempty" gorm:"foreignKey:ParentID"`
	Products []Product  `json:"products,omitempty" gorm:"foreignKey:CategoryID"`

	// Virtual field, populated by the handlers for annotated listings.
	ProductCount int64 `json:"productCount" gorm:"-"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// --- API Input Structs ---

type CreateCategoryInput struct {
	Name     string `json:"name" binding:"required"`
	ParentID *uint  `json:"parentId"` // Pointer allows sending null for root categories
}

// UpdateCategoryInput carries merge-patch fields: only non-nil fields
// mutate the stored record. Sending parentId 0 detaches the category
// from its parent (makes it a root category).
type UpdateCategoryInput struct {
	Name     *string `json:"name"`
	ParentID *uint   `json:"parentId"`
}
