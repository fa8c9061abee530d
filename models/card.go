package models

import "time"

// CardKind matches the card_kind ENUM in the database.
type CardKind string

const (
	CardYellow CardKind = "yellow"
	CardRed    CardKind = "red"
)

func (k CardKind) IsValid() bool {
	return k == CardYellow || k == CardRed
}

// Card is a sanction issued during a match. Tournament and matchday are
// denormalized from the match at creation time so the settlement queries can
// accumulate cards per team without joining through matches.
type Card struct {
	ID           int       `json:"id" db:"id"`
	TournamentID int       `json:"tournament_id" db:"tournament_id"`
	MatchID      int       `json:"match_id" db:"match_id"`
	Matchday     int       `json:"matchday" db:"matchday"`
	TeamID       int       `json:"team_id" db:"team_id"`
	PlayerID     int       `json:"player_id" db:"player_id"`
	Kind         CardKind  `json:"kind" db:"kind"`
	Minute       *int      `json:"minute,omitempty" db:"minute"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`

	Player *Player `json:"player,omitempty" db:"-"`
}
