// Package models contains the database entities of the application.
package models

// Role defines the user role
type Role string

const (
	// RoleUser is the default role for registered accounts
	RoleUser Role = "user"
	// RoleAdmin grants access to the moderation panel
	RoleAdmin Role = "admin"
)

// ArticleStatus defines the lifecycle state of a listing
type ArticleStatus string

const (
	// ArticleStatusSale marks an article offered for sale
	ArticleStatusSale ArticleStatus = "sale"
	// ArticleStatusExchange marks an article offered for exchange
	ArticleStatusExchange ArticleStatus = "exchange"
	// ArticleStatusGiveaway marks an article offered for free
	ArticleStatusGiveaway ArticleStatus = "giveaway"
	// ArticleStatusSold marks an article that has already been sold or traded
	ArticleStatusSold ArticleStatus = "sold"
)

// DefiStatus defines the completion state of a challenge
type DefiStatus string

const (
	// DefiStatusInProgress is the initial state of a challenge
	DefiStatusInProgress DefiStatus = "en_cours"
	// DefiStatusComplete is reached once the collected amount meets the target
	DefiStatusComplete DefiStatus = "complete"
)

// ComputeDefiStatus derives the challenge status from its accounting fields.
// Status is a pure function of currentAmount vs target, applied after every
// mutation (create, update, participate, remove).
func ComputeDefiStatus(currentAmount, target float64) DefiStatus {
	if target > 0 && currentAmount >= target {
		return DefiStatusComplete
	}
	return DefiStatusInProgress
}
