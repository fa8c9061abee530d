package repositories

import (
	"context"
	"database/sql"
	"errors"

	"github.com/lib/pq"
	"github.com/ligafc/league-admin/models"
)

var (
	ErrPlayerNotFound       = errors.New("player not found")
	ErrPlayerTeamInvalid    = errors.New("player team conflict or invalid")
	ErrPlayerNumberConflict = errors.New("shirt number already taken in team")
)

type PlayerRepository interface {
	Create(ctx context.Context, player *models.Player) error
	GetByID(ctx context.Context, id int) (*models.Player, error)
	ListByTeam(ctx context.Context, teamID int) ([]*models.Player, error)
	Update(ctx context.Context, player *models.Player) error
	UpdatePhotoKey(ctx context.Context, id int, photoKey *string) error
	Delete(ctx context.Context, id int) error
}

type postgresPlayerRepository struct {
	db *sql.DB
}

func NewPostgresPlayerRepository(db *sql.DB) PlayerRepository {
	return &postgresPlayerRepository{db: db}
}

func (r *postgresPlayerRepository) Create(ctx context.Context, player *models.Player) error {
	query := `
		INSERT INTO players (team_id, first_name, last_name, birth_date, shirt_number)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at`

	err := r.db.QueryRowContext(ctx, query,
		player.TeamID,
		player.FirstName,
		player.LastName,
		player.BirthDate,
		player.ShirtNumber,
	).Scan(&player.ID, &player.CreatedAt)

	return r.mapPlayerError(err)
}

func (r *postgresPlayerRepository) GetByID(ctx context.Context, id int) (*models.Player, error) {
	query := `
		SELECT id, team_id, first_name, last_name, birth_date, shirt_number, photo_key, created_at
		FROM players
		WHERE id = $1`

	player := &models.Player{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&player.ID,
		&player.TeamID,
		&player.FirstName,
		&player.LastName,
		&player.BirthDate,
		&player.ShirtNumber,
		&player.PhotoKey,
		&player.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrPlayerNotFound
		}
		return nil, err
	}
	return player, nil
}

func (r *postgresPlayerRepository) ListByTeam(ctx context.Context, teamID int) ([]*models.Player, error) {
	query := `
		SELECT id, team_id, first_name, last_name, birth_date, shirt_number, photo_key, created_at
		FROM players
		WHERE team_id = $1
		ORDER BY shirt_number NULLS LAST, last_name`

	rows, err := r.db.QueryContext(ctx, query, teamID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	players := make([]*models.Player, 0)
	for rows.Next() {
		var player models.Player
		if scanErr := rows.Scan(
			&player.ID,
			&player.TeamID,
			&player.FirstName,
			&player.LastName,
			&player.BirthDate,
			&player.ShirtNumber,
			&player.PhotoKey,
			&player.CreatedAt,
		); scanErr != nil {
			return nil, scanErr
		}
		players = append(players, &player)
	}
	return players, rows.Err()
}

func (r *postgresPlayerRepository) Update(ctx context.Context, player *models.Player) error {
	query := `
		UPDATE players
		SET team_id = $1, first_name = $2, last_name = $3, birth_date = $4, shirt_number = $5
		WHERE id = $6`

	result, err := r.db.ExecContext(ctx, query,
		player.TeamID,
		player.FirstName,
		player.LastName,
		player.BirthDate,
		player.ShirtNumber,
		player.ID,
	)
	if err != nil {
		return r.mapPlayerError(err)
	}
	return affectedOrErr(result, ErrPlayerNotFound)
}

func (r *postgresPlayerRepository) UpdatePhotoKey(ctx context.Context, id int, photoKey *string) error {
	result, err := r.db.ExecContext(ctx, `UPDATE players SET photo_key = $1 WHERE id = $2`, photoKey, id)
	if err != nil {
		return err
	}
	return affectedOrErr(result, ErrPlayerNotFound)
}

func (r *postgresPlayerRepository) Delete(ctx context.Context, id int) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM players WHERE id = $1`, id)
	if err != nil {
		return err
	}
	return affectedOrErr(result, ErrPlayerNotFound)
}

func (r *postgresPlayerRepository) mapPlayerError(err error) error {
	if err == nil {
		return nil
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch pqErr.Code {
		case "23505":
			if pqErr.Constraint == "players_team_id_shirt_number_key" {
				return ErrPlayerNumberConflict
			}
		case "23503":
			if pqErr.Constraint == "players_team_id_fkey" {
				return ErrPlayerTeamInvalid
			}
		}
	}
	return err
}
