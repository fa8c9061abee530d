package models

import "time"

type Player struct {
	ID          int        `json:"id" db:"id"`
	TeamID      int        `json:"team_id" db:"team_id"`
	FirstName   string     `json:"first_name" db:"first_name"`
	LastName    string     `json:"last_name" db:"last_name"`
	BirthDate   *time.Time `json:"birth_date,omitempty" db:"birth_date"`
	ShirtNumber *int       `json:"shirt_number,omitempty" db:"shirt_number"`
	CreatedAt   time.Time  `json:"created_at" db:"created_at"`

	Team *Team `json:"team,omitempty" db:"-"`

	PhotoKey *string `json:"-" db:"photo_key"`
	PhotoURL *string `json:"photo_url,omitempty" db:"-"`
}
