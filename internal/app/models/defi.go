package models

import (
	"time"
)

// Defi defines a sponsored challenge based on the 'defis' table.
// A challenge collects contributions toward a numeric target; once the
// accumulated amount reaches the target the sponsor pays the reward to the
// humanitarian cause.
type Defi struct {
	ID            int64      `json:"id" db:"id"`
	Title         string     `json:"titre" db:"title" example:"Collecte de plastique"` // Challenge title
	Description   string     `json:"description" db:"description"`
	Sponsor       string     `json:"sponsor" db:"sponsor" example:"EcoCorp"`           // Sponsoring company
	Cause         string     `json:"causeHumanitaire" db:"cause"`                      // Humanitarian cause receiving the reward
	Target        float64    `json:"objectif" db:"target" example:"20"`                // Collection target
	Unit          string     `json:"unite" db:"unit" example:"kg"`                     // Unit of the target (kg, pieces, ...)
	Reward        float64    `json:"recompense" db:"reward" example:"500"`             // Reward paid out on completion
	CurrentAmount float64    `json:"montantActuel" db:"current_amount"`                // Running sum of live participation quantities
	Deadline      *time.Time `json:"dateLimite" db:"deadline"`                         // Deadline date (nullable)
	Status        DefiStatus `json:"statut" db:"status" example:"en_cours"`            // en_cours or complete

	Participations []*Participation `json:"participations,omitempty"` // Relation, no db tag
}
