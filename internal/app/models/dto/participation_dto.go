package dto

// CreateParticipationRequest represents a contribution created through the
// top-level participations endpoint.
type CreateParticipationRequest struct {
	UserID   int64   `json:"userId" binding:"required"`
	DefiID   int64   `json:"defiId" binding:"required"`
	Quantity float64 `json:"quantite" binding:"required"`
}
