package models

import "time"

// MatchStatus matches the match_status ENUM in the database.
type MatchStatus string

const (
	MatchStatusScheduled  MatchStatus = "scheduled"
	MatchStatusInProgress MatchStatus = "in_progress"
	MatchStatusCompleted  MatchStatus = "completed"
	MatchStatusCanceled   MatchStatus = "canceled"
)

func (s MatchStatus) IsValid() bool {
	switch s {
	case MatchStatusScheduled, MatchStatusInProgress, MatchStatusCompleted, MatchStatusCanceled:
		return true
	}
	return false
}

type Match struct {
	ID           int         `json:"id" db:"id"`
	TournamentID int         `json:"tournament_id" db:"tournament_id"`
	Matchday     int         `json:"matchday" db:"matchday"`
	LocalTeamID  int         `json:"local_team_id" db:"local_team_id"`
	VisitTeamID  int         `json:"visit_team_id" db:"visit_team_id"`
	Kickoff      time.Time   `json:"kickoff" db:"kickoff"`
	Status       MatchStatus `json:"status" db:"status"`
	LocalGoals   *int        `json:"local_goals,omitempty" db:"local_goals"`
	VisitGoals   *int        `json:"visit_goals,omitempty" db:"visit_goals"`
	CreatedAt    time.Time   `json:"created_at" db:"created_at"`

	LocalTeam *Team `json:"local_team,omitempty" db:"-"`
	VisitTeam *Team `json:"visit_team,omitempty" db:"-"`

	Goals         []Goal         `json:"goals,omitempty" db:"-"`
	Cards         []Card         `json:"cards,omitempty" db:"-"`
	Substitutions []Substitution `json:"substitutions,omitempty" db:"-"`
	Signatures    []Signature    `json:"signatures,omitempty" db:"-"`
}
