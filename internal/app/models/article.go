package models

import (
	"time"
)

// Article defines a marketplace listing based on the 'articles' table.
// JSON field names follow the French wire format the frontend consumes.
type Article struct {
	ID          string        `json:"id" db:"id"`                                       // UUID primary key
	Title       string        `json:"titre" db:"title" example:"Chaise en bois"`        // Listing title (required)
	Description string        `json:"description" db:"description"`                     // Free-form description
	Category    string        `json:"categorie" db:"category" example:"meubles"`        // Category label
	Condition   string        `json:"etat" db:"condition" example:"bon"`                // Item condition
	Location    string        `json:"localisation" db:"location" example:"Tunis Centre"`// Pickup location
	Status      ArticleStatus `json:"statut" db:"status" example:"sale"`                // sale, exchange, giveaway or sold
	Price       *float64      `json:"prix" db:"price"`                                  // Asking price (nullable)
	ExchangeFor *string       `json:"souhaitEchange" db:"exchange_for"`                 // Desired counterpart for exchanges (nullable)
	Photo       *string       `json:"photo" db:"photo"`                                 // Relative path of the uploaded photo (nullable)
	UserID      int64         `json:"-" db:"user_id"`                                   // Owning user
	CreatedAt   time.Time     `json:"dateCreation" db:"created_at"`                     // Timestamp when the listing was created

	Owner *User `json:"utilisateur,omitempty"` // Relation, no db tag
}
