package models

import (
	"time"

	"github.com/google/uuid"
)

// User is an identity record (PostgreSQL users table). The directory core
// only ever consumes its id and admin flag; everything else is account data.
type User struct {
	ID        uuid.UUID `json:"id"`
	CreatedAt time.Time `json:"created_at"`

	Email        string `json:"email"`
	Name         string `json:"name"`
	PasswordHash string `json:"-"` // Never returned in JSON
	IsAdmin      bool   `json:"is_admin"`
	IsActive     bool   `json:"is_active"`
}
