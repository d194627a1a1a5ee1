package models

import (
	"time"

	"github.com/google/uuid"
)

type Product struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Title       string    `gorm:"not null;index" json:"title"`
	Description string    `json:"description"`
	Price       int       `gorm:"not null" json:"price"`
	OldPrice    int       `json:"old_price"`
	Images      string    `gorm:"type:text" json:"images"` // comma separated image URLs
	Category    string    `gorm:"type:varchar(100);index" json:"category"`
	IsSpotlight bool      `gorm:"default:false" json:"is_spotlight"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	Stock *Stock `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE" json:"stock,omitempty"`
}

// Stock tracks the current inventory level of a single product. Every change
// to CurrentStock appends exactly one StockHistory row.
type Stock struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	ProductID    uuid.UUID `gorm:"type:uuid;uniqueIndex;not null" json:"product_id"`
	CurrentStock int       `gorm:"not null;default:0" json:"current_stock"`
	CreatedAt    time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	History []StockHistory `gorm:"foreignKey:StockID;constraint:OnDelete:CASCADE" json:"history,omitempty"`
}

// StockHistory is an append-only audit row. UpdatedBy is nil for
// system-initiated changes (restock on order cancellation).
type StockHistory struct {
	ID           uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	StockID      uuid.UUID  `gorm:"type:uuid;not null;index" json:"stock_id"`
	FromQuantity int        `gorm:"not null" json:"from_quantity"`
	ToQuantity   int        `gorm:"not null" json:"to_quantity"`
	UpdatedBy    *uuid.UUID `gorm:"type:uuid" json:"updated_by,omitempty"`
	CreatedAt    time.Time  `gorm:"autoCreateTime" json:"created_at"`
}

// Wishlist links a user to a saved product.
type Wishlist struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_wishlist_user_product" json:"user_id"`
	ProductID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_wishlist_user_product" json:"product_id"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

// Banner is a promotional image shown on the storefront home screen.
type Banner struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Title     string    `json:"title"`
	ImageURL  string    `gorm:"not null" json:"image_url"`
	Active    bool      `gorm:"default:true" json:"active"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

// Offer is a storefront promotion managed from the back office.
type Offer struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Title       string    `gorm:"not null" json:"title"`
	Description string    `json:"description"`
	Discount    int       `gorm:"not null" json:"discount"` // percent
	Active      bool      `gorm:"default:true" json:"active"`
	ExpiresAt   time.Time `json:"expires_at"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"created_at"`
}
