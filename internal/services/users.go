package services

import (
	"database/sql"

	"github.com/google/uuid"

	"github.com/launchboard/launchboard-backend/internal/database"
	"github.com/launchboard/launchboard-backend/internal/models"
)

// GetUserByID retrieves an active user by id. Returns (nil, nil) when the
// user does not exist or is deactivated.
func GetUserByID(userID string) (*models.User, error) {
	parsedID, err := uuid.Parse(userID)
	if err != nil {
		return nil, err
	}

	var user models.User
	err = database.PostgresDB.QueryRow(`
		SELECT id, email, COALESCE(name, ''), password_hash, is_admin, created_at
		FROM users WHERE id = $1 AND is_active = TRUE
	`, parsedID).Scan(&user.ID, &user.Email, &user.Name, &user.PasswordHash, &user.IsAdmin, &user.CreatedAt)

	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}

	user.IsActive = true
	return &user, nil
}

// GetUserByEmail retrieves an active user by email (case-insensitive).
// Returns (nil, nil) when no such user exists.
func GetUserByEmail(email string) (*models.User, error) {
	var user models.User
	err := database.PostgresDB.QueryRow(`
		SELECT id, email, COALESCE(name, ''), password_hash, is_admin, created_at
		FROM users WHERE LOWER(email) = LOWER($1) AND is_active = TRUE
	`, email).Scan(&user.ID, &user.Email, &user.Name, &user.PasswordHash, &user.IsAdmin, &user.CreatedAt)

	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}

	user.IsActive = true
	return &user, nil
}

// CreateUser inserts a new identity record and returns its id.
func CreateUser(email, name, passwordHash string) (uuid.UUID, error) {
	var id uuid.UUID
	err := database.PostgresDB.QueryRow(`
		INSERT INTO users (email, name, password_hash)
		VALUES ($1, $2, $3)
		RETURNING id
	`, email, name, passwordHash).Scan(&id)
	if err != nil {
		return uuid.Nil, err
	}
	return id, nil
}

// IsAdmin reports whether userID belongs to an active admin account.
func IsAdmin(userID string) (bool, error) {
	user, err := GetUserByID(userID)
	if err != nil || user == nil {
		return false, err
	}
	return user.IsAdmin, nil
}
