package models

import (
	"time"
)

// User defines the staff user model based on the 'users' table
type User struct {
	ID           int64     `json:"id" db:"id"`                 // Unique identifier for the user
	Username     string    `json:"username" db:"username"`     // Login name, unique
	Email        string    `json:"email" db:"email"`           // User's email address, unique
	PasswordHash string    `json:"-" db:"password_hash"`       // Hashed password (never serialized)
	FullName     string    `json:"fullName" db:"full_name"`    // Display name
	Role         Role      `json:"role" db:"role"`             // admin or registrar
	CreatedAt    time.Time `json:"createdAt" db:"created_at"`  // Timestamp when the user was created
}
