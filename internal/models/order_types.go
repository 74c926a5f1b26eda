package models

import (
	"time"
)

// Order statuses. The status field is freely settable by an admin:
// there is deliberately no transition graph (COMPLETED back to PENDING
// is allowed), only membership in this fixed set is enforced.
const (
	OrderStatusPending    = "PENDING"
	OrderStatusProcessing = "PROCESSING"
	OrderStatusCompleted  = "COMPLETED"
	OrderStatusCancelled  = "CANCELLED"
)

// ValidOrderStatus reports whether s is one of the four order statuses.
func ValidOrderStatus(s string) bool {
	switch s {
	case OrderStatusPending, OrderStatusProcessing, OrderStatusCompleted, OrderStatusCancelled:
		return true
	}
	return false
}

// Order is the model for the 'orders' table.
// Total always equals the sum of item price * quantity at creation
// time, computed server-side from catalog prices.
type Order struct {
	ID      uint    `json:"id" gorm:"primaryKey"`
	UserID  uint    `json:"userId" gorm:"index;not null"`
	User    *User   `json:"user,omitempty" gorm:"foreignKey:UserID"`
	Status  string  `json:"status" gorm:"size:20;not null;default:'PENDING'"`
	Total   float64 `json:"total" gorm:"not null"`
	Address string  `json:"address" gorm:"type:text;not null"`

	OrderItems []OrderItem `json:"orderItems" gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// OrderItem is the model for the 'order_items' table.
// Price is a snapshot of the product's price at order time and never
// changes afterwards, even if the product is repriced.
type OrderItem struct {
	ID        uint     `json:"id" gorm:"primaryKey"`
	OrderID   uint     `json:"orderId" gorm:"index;not null"`
	ProductID uint     `json:"productId" gorm:"index;not null"`
	Product   *Product `json:"product,omitempty" gorm:"foreignKey:ProductID"`
	Quantity  int      `json:"quantity" gorm:"not null"`
	Price     float64  `json:"price" gorm:"not null"`

	CreatedAt time.Time `json:"createdAt"`
}

// --- API Input Structs ---

// Item fields are range-checked by the handler so a bad quantity gets
// its own error message.
type OrderItemInput struct {
	ProductID uint `json:"productId"`
	Quantity  int  `json:"quantity"`
}

type CreateOrderInput struct {
	Items   []OrderItemInput `json:"items" binding:"required,min=1"`
	Address string           `json:"address" binding:"required"`
}

type UpdateOrderStatusInput struct {
	Status string `json:"status" binding:"required"`
}
