package repositories

import (
	"context"
	"database/sql"
	"errors"
	"strconv"
	"strings"

	"github.com/lib/pq"
	"github.com/ligafc/league-admin/models"
)

var (
	ErrMatchNotFound          = errors.New("match not found")
	ErrMatchTeamInvalid       = errors.New("match team conflict or invalid")
	ErrMatchTournamentInvalid = errors.New("match tournament conflict or invalid")
)

type MatchRepository interface {
	Create(ctx context.Context, match *models.Match) error
	GetByID(ctx context.Context, id int) (*models.Match, error)
	ListByTournament(ctx context.Context, tournamentID int, matchday *int, status *models.MatchStatus) ([]*models.Match, error)
	UpdateStatusScore(ctx context.Context, id int, status models.MatchStatus, localGoals, visitGoals *int) error
	Delete(ctx context.Context, id int) error
}

type postgresMatchRepository struct {
	db *sql.DB
}

func NewPostgresMatchRepository(db *sql.DB) MatchRepository {
	return &postgresMatchRepository{db: db}
}

func (r *postgresMatchRepository) Create(ctx context.Context, match *models.Match) error {
	query := `
		INSERT INTO matches (tournament_id, matchday, local_team_id, visit_team_id, kickoff, status)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at`

	err := r.db.QueryRowContext(ctx, query,
		match.TournamentID,
		match.Matchday,
		match.LocalTeamID,
		match.VisitTeamID,
		match.Kickoff,
		match.Status,
	).Scan(&match.ID, &match.CreatedAt)

	return r.handleMatchError(err)
}

func (r *postgresMatchRepository) GetByID(ctx context.Context, id int) (*models.Match, error) {
	query := `
		SELECT id, tournament_id, matchday, local_team_id, visit_team_id, kickoff, status, local_goals, visit_goals, created_at
		FROM matches
		WHERE id = $1`

	match := &models.Match{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&match.ID,
		&match.TournamentID,
		&match.Matchday,
		&match.LocalTeamID,
		&match.VisitTeamID,
		&match.Kickoff,
		&match.Status,
		&match.LocalGoals,
		&match.VisitGoals,
		&match.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrMatchNotFound
		}
		return nil, err
	}
	return match, nil
}

func (r *postgresMatchRepository) ListByTournament(ctx context.Context, tournamentID int, matchday *int, status *models.MatchStatus) ([]*models.Match, error) {
	var queryBuilder strings.Builder
	queryBuilder.WriteString(`
		SELECT id, tournament_id, matchday, local_team_id, visit_team_id, kickoff, status, local_goals, visit_goals, created_at
		FROM matches
		WHERE tournament_id = $1`)

	args := []interface{}{tournamentID}
	placeholderIndex := 2

	if matchday != nil {
		queryBuilder.WriteString(" AND matchday = $")
		queryBuilder.WriteString(strconv.Itoa(placeholderIndex))
		args = append(args, *matchday)
		placeholderIndex++
	}

	if status != nil {
		queryBuilder.WriteString(" AND status = $")
		queryBuilder.WriteString(strconv.Itoa(placeholderIndex))
		args = append(args, *status)
		placeholderIndex++
	}

	queryBuilder.WriteString(" ORDER BY matchday ASC, kickoff ASC")

	rows, err := r.db.QueryContext(ctx, queryBuilder.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	matches := make([]*models.Match, 0)
	for rows.Next() {
		var match models.Match
		if scanErr := rows.Scan(
			&match.ID,
			&match.TournamentID,
			&match.Matchday,
			&match.LocalTeamID,
			&match.VisitTeamID,
			&match.Kickoff,
			&match.Status,
			&match.LocalGoals,
			&match.VisitGoals,
			&match.CreatedAt,
		); scanErr != nil {
			return nil, scanErr
		}
		matches = append(matches, &match)
	}
	return matches, rows.Err()
}

func (r *postgresMatchRepository) UpdateStatusScore(ctx context.Context, id int, status models.MatchStatus, localGoals, visitGoals *int) error {
	query := `
		UPDATE matches
		SET status = $1, local_goals = $2, visit_goals = $3
		WHERE id = $4`

	result, err := r.db.ExecContext(ctx, query, status, localGoals, visitGoals, id)
	if err != nil {
		return r.handleMatchError(err)
	}
	return affectedOrErr(result, ErrMatchNotFound)
}

func (r *postgresMatchRepository) Delete(ctx context.Context, id int) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM matches WHERE id = $1`, id)
	if err != nil {
		return err
	}
	return affectedOrErr(result, ErrMatchNotFound)
}

func (r *postgresMatchRepository) handleMatchError(err error) error {
	if err == nil {
		return nil
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == "23503" {
		switch pqErr.Constraint {
		case "matches_tournament_id_fkey":
			return ErrMatchTournamentInvalid
		case "matches_local_team_id_fkey", "matches_visit_team_id_fkey":
			return ErrMatchTeamInvalid
		}
	}
	return err
}
