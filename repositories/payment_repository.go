package repositories

import (
	"context"
	"database/sql"
	"errors"

	"github.com/lib/pq"
	"github.com/ligafc/league-admin/models"
)

var (
	ErrPaymentNotFound    = errors.New("payment not found")
	ErrPaymentTeamInvalid = errors.New("payment team or tournament invalid")
)

type PaymentRepository interface {
	// Create appends a payment row. There is deliberately no update: the
	// payment log is append-only and balances are always recomputed from it.
	Create(ctx context.Context, payment *models.Payment) error
	ListByTeamUpToMatchday(ctx context.Context, tournamentID, teamID, matchday int) ([]*models.Payment, error)
	Delete(ctx context.Context, id int) error
}

type postgresPaymentRepository struct {
	db *sql.DB
}

func NewPostgresPaymentRepository(db *sql.DB) PaymentRepository {
	return &postgresPaymentRepository{db: db}
}

func (r *postgresPaymentRepository) Create(ctx context.Context, payment *models.Payment) error {
	query := `
		INSERT INTO payments (tournament_id, team_id, matchday, amount_cents, description)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at`

	err := r.db.QueryRowContext(ctx, query,
		payment.TournamentID,
		payment.TeamID,
		payment.Matchday,
		payment.AmountCents,
		payment.Description,
	).Scan(&payment.ID, &payment.CreatedAt)

	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23503" {
			return ErrPaymentTeamInvalid
		}
		return err
	}
	return nil
}

func (r *postgresPaymentRepository) ListByTeamUpToMatchday(ctx context.Context, tournamentID, teamID, matchday int) ([]*models.Payment, error) {
	query := `
		SELECT id, tournament_id, team_id, matchday, amount_cents, description, created_at
		FROM payments
		WHERE tournament_id = $1 AND team_id = $2 AND matchday <= $3
		ORDER BY matchday, created_at`

	rows, err := r.db.QueryContext(ctx, query, tournamentID, teamID, matchday)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	payments := make([]*models.Payment, 0)
	for rows.Next() {
		var payment models.Payment
		if scanErr := rows.Scan(
			&payment.ID,
			&payment.TournamentID,
			&payment.TeamID,
			&payment.Matchday,
			&payment.AmountCents,
			&payment.Description,
			&payment.CreatedAt,
		); scanErr != nil {
			return nil, scanErr
		}
		payments = append(payments, &payment)
	}
	return payments, rows.Err()
}

func (r *postgresPaymentRepository) Delete(ctx context.Context, id int) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM payments WHERE id = $1`, id)
	if err != nil {
		return err
	}
	return affectedOrErr(result, ErrPaymentNotFound)
}
