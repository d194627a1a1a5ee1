package models

import (
	"time"

	"github.com/google/uuid"
)

// OrderStatus is the lifecycle state of an order.
type OrderStatus string

const (
	OrderPlaced        OrderStatus = "PLACED"
	OrderOutOfDelivery OrderStatus = "OUTOFDELIVERY"
	OrderDelivered     OrderStatus = "DELIVERED"
	OrderCancelled     OrderStatus = "CANCELLED"
)

// Valid reports whether s is one of the known order statuses.
func (s OrderStatus) Valid() bool {
	switch s {
	case OrderPlaced, OrderOutOfDelivery, OrderDelivered, OrderCancelled:
		return true
	}
	return false
}

// Terminal reports whether no further transition is permitted from s.
func (s OrderStatus) Terminal() bool {
	return s == OrderDelivered || s == OrderCancelled
}

type Order struct {
	ID            uuid.UUID   `gorm:"type:uuid;primaryKey" json:"id"`
	UserID        uuid.UUID   `gorm:"type:uuid;not null;index" json:"user_id"`
	ProductID     uuid.UUID   `gorm:"type:uuid;not null" json:"product_id"`
	Quantity      int         `gorm:"not null" json:"quantity"`
	TotalAmount   int         `gorm:"not null" json:"total_amount"`
	Status        OrderStatus `gorm:"type:varchar(20);not null;default:'PLACED'" json:"status"`
	DeliveryBoyID *uuid.UUID  `gorm:"type:uuid;index" json:"delivery_boy_id,omitempty"`
	AddressID     *uuid.UUID  `gorm:"type:uuid" json:"address_id,omitempty"`
	CreatedAt     time.Time   `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time   `gorm:"autoUpdateTime" json:"updated_at"`
}

// OrderOtp is the durable delivery-confirmation code. At most one row exists
// per order; regeneration replaces the previous row.
type OrderOtp struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	OrderID   uuid.UUID `gorm:"type:uuid;uniqueIndex;not null" json:"order_id"`
	Otp       string    `gorm:"type:varchar(8);not null" json:"-"`
	ExpiresAt time.Time `gorm:"not null;index" json:"expires_at"`
	CreatedBy uuid.UUID `gorm:"type:uuid;not null" json:"created_by"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}
