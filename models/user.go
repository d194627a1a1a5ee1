package models

import (
	"time"

	"github.com/google/uuid"
)

// Role is the access level attached to a user account.
type Role string

const (
	RoleUser        Role = "USER"
	RoleAdmin       Role = "ADMIN"
	RoleDeliveryBoy Role = "DELIVERY_BOY"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleUser, RoleAdmin, RoleDeliveryBoy:
		return true
	}
	return false
}

// User model
type User struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Email         string    `gorm:"unique;not null" json:"email"`
	Password      string    `gorm:"not null" json:"-"`
	Name          string    `gorm:"not null" json:"name"`
	EmailVerified bool      `gorm:"default:false" json:"email_verified"`
	Role          Role      `gorm:"type:varchar(20);default:'USER'" json:"role"`
	CreatedAt     time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	Addresses []Address  `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	Wishlist  []Wishlist `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
}

// Address holds a delivery address belonging to a user.
type Address struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id"`
	Line1     string    `gorm:"not null" json:"line1"`
	Line2     string    `json:"line2"`
	City      string    `gorm:"not null" json:"city"`
	State     string    `json:"state"`
	Pincode   string    `gorm:"not null" json:"pincode"`
	Phone     string    `gorm:"not null" json:"phone"`
	IsDefault bool      `gorm:"default:false" json:"is_default"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}
