package models

import "time"

// TournamentStatus matches the tournament_status ENUM in the database.
type TournamentStatus string

const (
	StatusSoon         TournamentStatus = "soon"
	StatusRegistration TournamentStatus = "registration"
	StatusActive       TournamentStatus = "active"
	StatusCompleted    TournamentStatus = "completed"
	StatusCanceled     TournamentStatus = "canceled"
)

func (s TournamentStatus) IsValid() bool {
	switch s {
	case StatusSoon, StatusRegistration, StatusActive, StatusCompleted, StatusCanceled:
		return true
	}
	return false
}

type Tournament struct {
	ID           int              `json:"id" db:"id"`
	Name         string           `json:"name" db:"name"`
	Season       string           `json:"season" db:"season"`
	Description  *string          `json:"description,omitempty" db:"description"`
	Status       TournamentStatus `json:"status" db:"status"`
	MatchdayCount int             `json:"matchday_count" db:"matchday_count"`
	CreatedAt    time.Time        `json:"created_at" db:"created_at"`

	Categories []Category `json:"categories,omitempty" db:"-"`
}

type Category struct {
	ID           int    `json:"id" db:"id"`
	TournamentID int    `json:"tournament_id" db:"tournament_id"`
	Name         string `json:"name" db:"name"`
}
