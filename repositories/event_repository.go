package repositories

import (
	"context"
	"database/sql"
	"errors"

	"github.com/lib/pq"
	"github.com/ligafc/league-admin/models"
)

var (
	ErrGoalNotFound          = errors.New("goal not found")
	ErrSubstitutionNotFound  = errors.New("substitution not found")
	ErrCallUpNotFound        = errors.New("call-up not found")
	ErrCallUpPlayerConflict  = errors.New("player already called up for this match")
	ErrEventReferenceInvalid = errors.New("event match, team or player invalid")
)

type GoalRepository interface {
	Create(ctx context.Context, goal *models.Goal) error
	ListByMatch(ctx context.Context, matchID int) ([]*models.Goal, error)
	Delete(ctx context.Context, id int) error
}

type SubstitutionRepository interface {
	Create(ctx context.Context, sub *models.Substitution) error
	ListByMatch(ctx context.Context, matchID int) ([]*models.Substitution, error)
	Delete(ctx context.Context, id int) error
}

type CallUpRepository interface {
	Create(ctx context.Context, callUp *models.CallUp) error
	ListByMatchTeam(ctx context.Context, matchID, teamID int) ([]*models.CallUp, error)
	SetCaptain(ctx context.Context, matchID, teamID, playerID int) error
	Delete(ctx context.Context, id int) error
}

func mapEventError(err error) error {
	if err == nil {
		return nil
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch pqErr.Code {
		case "23503":
			return ErrEventReferenceInvalid
		case "23505":
			if pqErr.Constraint == "callups_match_id_player_id_key" {
				return ErrCallUpPlayerConflict
			}
		}
	}
	return err
}

type postgresGoalRepository struct {
	db *sql.DB
}

func NewPostgresGoalRepository(db *sql.DB) GoalRepository {
	return &postgresGoalRepository{db: db}
}

func (r *postgresGoalRepository) Create(ctx context.Context, goal *models.Goal) error {
	query := `
		INSERT INTO goals (match_id, team_id, player_id, minute, own_goal)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at`

	err := r.db.QueryRowContext(ctx, query,
		goal.MatchID,
		goal.TeamID,
		goal.PlayerID,
		goal.Minute,
		goal.OwnGoal,
	).Scan(&goal.ID, &goal.CreatedAt)
	return mapEventError(err)
}

func (r *postgresGoalRepository) ListByMatch(ctx context.Context, matchID int) ([]*models.Goal, error) {
	query := `
		SELECT id, match_id, team_id, player_id, minute, own_goal, created_at
		FROM goals
		WHERE match_id = $1
		ORDER BY minute NULLS LAST, created_at`

	rows, err := r.db.QueryContext(ctx, query, matchID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	goals := make([]*models.Goal, 0)
	for rows.Next() {
		var goal models.Goal
		if scanErr := rows.Scan(
			&goal.ID,
			&goal.MatchID,
			&goal.TeamID,
			&goal.PlayerID,
			&goal.Minute,
			&goal.OwnGoal,
			&goal.CreatedAt,
		); scanErr != nil {
			return nil, scanErr
		}
		goals = append(goals, &goal)
	}
	return goals, rows.Err()
}

func (r *postgresGoalRepository) Delete(ctx context.Context, id int) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM goals WHERE id = $1`, id)
	if err != nil {
		return err
	}
	return affectedOrErr(result, ErrGoalNotFound)
}

type postgresSubstitutionRepository struct {
	db *sql.DB
}

func NewPostgresSubstitutionRepository(db *sql.DB) SubstitutionRepository {
	return &postgresSubstitutionRepository{db: db}
}

func (r *postgresSubstitutionRepository) Create(ctx context.Context, sub *models.Substitution) error {
	query := `
		INSERT INTO substitutions (match_id, team_id, player_out_id, player_in_id, minute)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at`

	err := r.db.QueryRowContext(ctx, query,
		sub.MatchID,
		sub.TeamID,
		sub.PlayerOutID,
		sub.PlayerInID,
		sub.Minute,
	).Scan(&sub.ID, &sub.CreatedAt)
	return mapEventError(err)
}

func (r *postgresSubstitutionRepository) ListByMatch(ctx context.Context, matchID int) ([]*models.Substitution, error) {
	query := `
		SELECT id, match_id, team_id, player_out_id, player_in_id, minute, created_at
		FROM substitutions
		WHERE match_id = $1
		ORDER BY minute NULLS LAST, created_at`

	rows, err := r.db.QueryContext(ctx, query, matchID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	subs := make([]*models.Substitution, 0)
	for rows.Next() {
		var sub models.Substitution
		if scanErr := rows.Scan(
			&sub.ID,
			&sub.MatchID,
			&sub.TeamID,
			&sub.PlayerOutID,
			&sub.PlayerInID,
			&sub.Minute,
			&sub.CreatedAt,
		); scanErr != nil {
			return nil, scanErr
		}
		subs = append(subs, &sub)
	}
	return subs, rows.Err()
}

func (r *postgresSubstitutionRepository) Delete(ctx context.Context, id int) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM substitutions WHERE id = $1`, id)
	if err != nil {
		return err
	}
	return affectedOrErr(result, ErrSubstitutionNotFound)
}

type postgresCallUpRepository struct {
	db *sql.DB
}

func NewPostgresCallUpRepository(db *sql.DB) CallUpRepository {
	return &postgresCallUpRepository{db: db}
}

func (r *postgresCallUpRepository) Create(ctx context.Context, callUp *models.CallUp) error {
	query := `
		INSERT INTO callups (match_id, team_id, player_id, is_captain)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at`

	err := r.db.QueryRowContext(ctx, query,
		callUp.MatchID,
		callUp.TeamID,
		callUp.PlayerID,
		callUp.IsCaptain,
	).Scan(&callUp.ID, &callUp.CreatedAt)
	return mapEventError(err)
}

func (r *postgresCallUpRepository) ListByMatchTeam(ctx context.Context, matchID, teamID int) ([]*models.CallUp, error) {
	query := `
		SELECT cu.id, cu.match_id, cu.team_id, cu.player_id, cu.is_captain, cu.created_at,
			p.id, p.team_id, p.first_name, p.last_name, p.birth_date, p.shirt_number, p.photo_key, p.created_at
		FROM callups cu
		JOIN players p ON cu.player_id = p.id
		WHERE cu.match_id = $1 AND cu.team_id = $2
		ORDER BY p.shirt_number NULLS LAST`

	rows, err := r.db.QueryContext(ctx, query, matchID, teamID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	callUps := make([]*models.CallUp, 0)
	for rows.Next() {
		var cu models.CallUp
		var p models.Player
		if scanErr := rows.Scan(
			&cu.ID,
			&cu.MatchID,
			&cu.TeamID,
			&cu.PlayerID,
			&cu.IsCaptain,
			&cu.CreatedAt,
			&p.ID,
			&p.TeamID,
			&p.FirstName,
			&p.LastName,
			&p.BirthDate,
			&p.ShirtNumber,
			&p.PhotoKey,
			&p.CreatedAt,
		); scanErr != nil {
			return nil, scanErr
		}
		cu.Player = &p
		callUps = append(callUps, &cu)
	}
	return callUps, rows.Err()
}

// SetCaptain clears any previous captain of the team for the match before
// marking the new one, so a match roster never has two captains.
func (r *postgresCallUpRepository) SetCaptain(ctx context.Context, matchID, teamID, playerID int) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		`UPDATE callups SET is_captain = FALSE WHERE match_id = $1 AND team_id = $2`,
		matchID, teamID)
	if err != nil {
		return err
	}

	result, err := tx.ExecContext(ctx,
		`UPDATE callups SET is_captain = TRUE WHERE match_id = $1 AND team_id = $2 AND player_id = $3`,
		matchID, teamID, playerID)
	if err != nil {
		return err
	}
	if err := affectedOrErr(result, ErrCallUpNotFound); err != nil {
		return err
	}

	return tx.Commit()
}

func (r *postgresCallUpRepository) Delete(ctx context.Context, id int) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM callups WHERE id = $1`, id)
	if err != nil {
		return err
	}
	return affectedOrErr(result, ErrCallUpNotFound)
}
