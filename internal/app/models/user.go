package models

import (
	"time"
)

// User defines the user model based on the 'users' table
type User struct {
	ID                int64     `json:"id" db:"id" example:"1"`                           // Unique identifier for the user
	Name              string    `json:"name" db:"name" example:"Youssef"`                 // Display name
	Email             string    `json:"email" db:"email" example:"user@example.com"`      // Unique email address
	Password          string    `json:"-" db:"password"`                                  // Bcrypt hash (excluded from JSON)
	Phone             string    `json:"phone" db:"phone" example:"+216 20 123 456"`       // Phone number
	Role              Role      `json:"role" db:"role" example:"user"`                    // Role (user or admin)
	IsVerified        bool      `json:"isVerified" db:"is_verified" example:"true"`       // Whether the email address has been confirmed
	VerificationToken *string   `json:"-" db:"verification_token"`                        // Single-use email verification token (nullable)
	CreatedAt         time.Time `json:"createdAt" db:"created_at"`                        // Timestamp when the account was created
	UpdatedAt         time.Time `json:"updatedAt" db:"updated_at"`                        // Timestamp when the account was last updated

	Articles       []*Article       `json:"articles,omitempty"`       // Relation, no db tag
	Participations []*Participation `json:"participations,omitempty"` // Relation, no db tag
}
