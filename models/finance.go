package models

import "time"

// Every monetary amount in this package is stored in integer cents. The only
// place a value is divided by 100 is the presentation layer.

// ManualCharge is an administrator-entered charge against a team. A nil
// Matchday makes the charge global: it is included in the balance of every
// matchday query for the team.
type ManualCharge struct {
	ID           int       `json:"id" db:"id"`
	TournamentID int       `json:"tournament_id" db:"tournament_id"`
	TeamID       int       `json:"team_id" db:"team_id"`
	Matchday     *int      `json:"matchday,omitempty" db:"matchday"`
	AmountCents  int64     `json:"amount_cents" db:"amount_cents"`
	Description  *string   `json:"description,omitempty" db:"description"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
}

// Payment reduces a team's balance for a tournament. Append-only: duplicate
// submissions create duplicate rows and are settled by the administrator, not
// deduplicated here.
type Payment struct {
	ID           int       `json:"id" db:"id"`
	TournamentID int       `json:"tournament_id" db:"tournament_id"`
	TeamID       int       `json:"team_id" db:"team_id"`
	Matchday     int       `json:"matchday" db:"matchday"`
	AmountCents  int64     `json:"amount_cents" db:"amount_cents"`
	Description  *string   `json:"description,omitempty" db:"description"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
}

// Tariff is the per-card price configuration. A nil CategoryID marks the
// tournament-wide default row, used when a team's category has no row of its
// own.
type Tariff struct {
	ID           int   `json:"id" db:"id"`
	TournamentID int   `json:"tournament_id" db:"tournament_id"`
	CategoryID   *int  `json:"category_id,omitempty" db:"category_id"`
	YellowCents  int64 `json:"yellow_cents" db:"yellow_cents"`
	RedCents     int64 `json:"red_cents" db:"red_cents"`
}
