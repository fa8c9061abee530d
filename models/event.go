package models

import "time"

type Goal struct {
	ID        int       `json:"id" db:"id"`
	MatchID   int       `json:"match_id" db:"match_id"`
	TeamID    int       `json:"team_id" db:"team_id"`
	PlayerID  int       `json:"player_id" db:"player_id"`
	Minute    *int      `json:"minute,omitempty" db:"minute"`
	OwnGoal   bool      `json:"own_goal" db:"own_goal"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`

	Player *Player `json:"player,omitempty" db:"-"`
}

type Substitution struct {
	ID          int       `json:"id" db:"id"`
	MatchID     int       `json:"match_id" db:"match_id"`
	TeamID      int       `json:"team_id" db:"team_id"`
	PlayerOutID int       `json:"player_out_id" db:"player_out_id"`
	PlayerInID  int       `json:"player_in_id" db:"player_in_id"`
	Minute      *int      `json:"minute,omitempty" db:"minute"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
}

// CallUp is one row of a team's match roster.
type CallUp struct {
	ID        int       `json:"id" db:"id"`
	MatchID   int       `json:"match_id" db:"match_id"`
	TeamID    int       `json:"team_id" db:"team_id"`
	PlayerID  int       `json:"player_id" db:"player_id"`
	IsCaptain bool      `json:"is_captain" db:"is_captain"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`

	Player *Player `json:"player,omitempty" db:"-"`
}
