package dto

// CreateDefiRequest represents a challenge creation request. The running
// amount and status are always initialized server-side, whatever the caller
// sends. Cause is accepted under both its long and short field names.
type CreateDefiRequest struct {
	Title       string   `json:"titre" binding:"required"`
	Description string   `json:"description"`
	Sponsor     string   `json:"sponsor"`
	Cause       string   `json:"causeHumanitaire"`
	CauseAlias  string   `json:"cause"`
	Target      float64  `json:"objectif" binding:"required,gt=0"`
	Unit        string   `json:"unite"`
	Reward      float64  `json:"recompense"`
	Deadline    *string  `json:"dateLimite"` // ISO date, parsed by the service
}

// CauseName returns the humanitarian cause, preferring the long field name
func (r *CreateDefiRequest) CauseName() string {
	if r.Cause != "" {
		return r.Cause
	}
	return r.CauseAlias
}

// UpdateDefiRequest represents a partial challenge update. When the merge
// touches the accounting fields, status is re-derived in both directions.
type UpdateDefiRequest struct {
	Title         *string  `json:"titre,omitempty"`
	Description   *string  `json:"description,omitempty"`
	Sponsor       *string  `json:"sponsor,omitempty"`
	Cause         *string  `json:"causeHumanitaire,omitempty"`
	Target        *float64 `json:"objectif,omitempty"`
	Unit          *string  `json:"unite,omitempty"`
	Reward        *float64 `json:"recompense,omitempty"`
	CurrentAmount *float64 `json:"montantActuel,omitempty"`
	Deadline      *string  `json:"dateLimite,omitempty"`
}

// ParticiperRequest represents a contribution to a challenge through the
// challenge-scoped endpoint.
type ParticiperRequest struct {
	UserID   int64   `json:"userId" binding:"required"`
	Quantity float64 `json:"quantite" binding:"required"`
}
