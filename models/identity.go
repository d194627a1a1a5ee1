package models

import "github.com/google/uuid"

// Identity is the authenticated caller resolved from the session token.
type Identity struct {
	UserID uuid.UUID
	Name   string
	Email  string
	Role   Role
}
