package repositories

import (
	"context"
	"database/sql"
	"errors"

	"github.com/lib/pq"
	"github.com/ligafc/league-admin/models"
)

var (
	ErrChargeNotFound    = errors.New("manual charge not found")
	ErrChargeTeamInvalid = errors.New("manual charge team or tournament invalid")
)

type ChargeRepository interface {
	Create(ctx context.Context, charge *models.ManualCharge) error
	// ListByTeamUpToMatchday returns the team's charges with
	// matchday <= the given one plus every global charge (matchday IS NULL).
	ListByTeamUpToMatchday(ctx context.Context, tournamentID, teamID, matchday int) ([]*models.ManualCharge, error)
	Delete(ctx context.Context, id int) error
}

type postgresChargeRepository struct {
	db *sql.DB
}

func NewPostgresChargeRepository(db *sql.DB) ChargeRepository {
	return &postgresChargeRepository{db: db}
}

func (r *postgresChargeRepository) Create(ctx context.Context, charge *models.ManualCharge) error {
	query := `
		INSERT INTO manual_charges (tournament_id, team_id, matchday, amount_cents, description)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at`

	err := r.db.QueryRowContext(ctx, query,
		charge.TournamentID,
		charge.TeamID,
		charge.Matchday,
		charge.AmountCents,
		charge.Description,
	).Scan(&charge.ID, &charge.CreatedAt)

	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23503" {
			return ErrChargeTeamInvalid
		}
		return err
	}
	return nil
}

func (r *postgresChargeRepository) ListByTeamUpToMatchday(ctx context.Context, tournamentID, teamID, matchday int) ([]*models.ManualCharge, error) {
	query := `
		SELECT id, tournament_id, team_id, matchday, amount_cents, description, created_at
		FROM manual_charges
		WHERE tournament_id = $1 AND team_id = $2 AND (matchday IS NULL OR matchday <= $3)
		ORDER BY matchday NULLS FIRST, created_at`

	rows, err := r.db.QueryContext(ctx, query, tournamentID, teamID, matchday)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	charges := make([]*models.ManualCharge, 0)
	for rows.Next() {
		var charge models.ManualCharge
		if scanErr := rows.Scan(
			&charge.ID,
			&charge.TournamentID,
			&charge.TeamID,
			&charge.Matchday,
			&charge.AmountCents,
			&charge.Description,
			&charge.CreatedAt,
		); scanErr != nil {
			return nil, scanErr
		}
		charges = append(charges, &charge)
	}
	return charges, rows.Err()
}

func (r *postgresChargeRepository) Delete(ctx context.Context, id int) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM manual_charges WHERE id = $1`, id)
	if err != nil {
		return err
	}
	return affectedOrErr(result, ErrChargeNotFound)
}
