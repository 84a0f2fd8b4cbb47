package models

import (
	"time"
)

// Participation defines a single user's contribution to a challenge,
// based on the 'participations' table.
type Participation struct {
	ID             int64     `json:"id" db:"id"`
	UserID         int64     `json:"-" db:"user_id"`
	DefiID         int64     `json:"-" db:"defi_id"`
	Quantity       float64   `json:"quantite" db:"quantity" example:"5"` // Contributed quantity, always > 0
	ParticipatedAt time.Time `json:"dateParticipation" db:"participated_at"`

	User *User `json:"user,omitempty"` // Relation, no db tag
	Defi *Defi `json:"defi,omitempty"` // Relation, no db tag
}
