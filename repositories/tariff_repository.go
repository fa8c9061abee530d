package repositories

import (
	"context"
	"database/sql"
	"errors"

	"github.com/ligafc/league-admin/models"
)

var ErrTariffNotFound = errors.New("tariff not found")

type TariffRepository interface {
	Upsert(ctx context.Context, tariff *models.Tariff) error
	// GetForCategory resolves the card prices for a category within a
	// tournament: the category-specific row wins, otherwise the
	// tournament-wide default row (category_id IS NULL). ErrTariffNotFound
	// when neither exists.
	GetForCategory(ctx context.Context, tournamentID, categoryID int) (*models.Tariff, error)
	ListByTournament(ctx context.Context, tournamentID int) ([]*models.Tariff, error)
}

type postgresTariffRepository struct {
	db *sql.DB
}

func NewPostgresTariffRepository(db *sql.DB) TariffRepository {
	return &postgresTariffRepository{db: db}
}

func (r *postgresTariffRepository) Upsert(ctx context.Context, tariff *models.Tariff) error {
	// COALESCE(category_id, 0) backs the unique index so there is at most one
	// default row per tournament.
	query := `
		INSERT INTO tariffs (tournament_id, category_id, yellow_cents, red_cents)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (tournament_id, COALESCE(category_id, 0))
		DO UPDATE SET yellow_cents = EXCLUDED.yellow_cents, red_cents = EXCLUDED.red_cents
		RETURNING id`

	return r.db.QueryRowContext(ctx, query,
		tariff.TournamentID,
		tariff.CategoryID,
		tariff.YellowCents,
		tariff.RedCents,
	).Scan(&tariff.ID)
}

func (r *postgresTariffRepository) GetForCategory(ctx context.Context, tournamentID, categoryID int) (*models.Tariff, error) {
	query := `
		SELECT id, tournament_id, category_id, yellow_cents, red_cents
		FROM tariffs
		WHERE tournament_id = $1 AND (category_id = $2 OR category_id IS NULL)
		ORDER BY category_id NULLS LAST
		LIMIT 1`

	tariff := &models.Tariff{}
	err := r.db.QueryRowContext(ctx, query, tournamentID, categoryID).Scan(
		&tariff.ID,
		&tariff.TournamentID,
		&tariff.CategoryID,
		&tariff.YellowCents,
		&tariff.RedCents,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrTariffNotFound
		}
		return nil, err
	}
	return tariff, nil
}

func (r *postgresTariffRepository) ListByTournament(ctx context.Context, tournamentID int) ([]*models.Tariff, error) {
	query := `
		SELECT id, tournament_id, category_id, yellow_cents, red_cents
		FROM tariffs
		WHERE tournament_id = $1
		ORDER BY category_id NULLS FIRST`

	rows, err := r.db.QueryContext(ctx, query, tournamentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	tariffs := make([]*models.Tariff, 0)
	for rows.Next() {
		var tariff models.Tariff
		if scanErr := rows.Scan(
			&tariff.ID,
			&tariff.TournamentID,
			&tariff.CategoryID,
			&tariff.YellowCents,
			&tariff.RedCents,
		); scanErr != nil {
			return nil, scanErr
		}
		tariffs = append(tariffs, &tariff)
	}
	return tariffs, rows.Err()
}
