package repositories

import (
	"context"
	"database/sql"
	"errors"

	"github.com/lib/pq"
	"github.com/ligafc/league-admin/models"
)

var (
	ErrCardNotFound      = errors.New("card not found")
	ErrCardMatchInvalid  = errors.New("card match conflict or invalid")
	ErrCardPlayerInvalid = errors.New("card player conflict or invalid")
)

type CardRepository interface {
	Create(ctx context.Context, card *models.Card) error
	GetByID(ctx context.Context, id int) (*models.Card, error)
	ListByMatch(ctx context.Context, matchID int) ([]*models.Card, error)
	// ListByTeamUpToMatchday returns every card of the team in the tournament
	// with matchday <= the given one. Settlement totals are cumulative, so
	// this is the only card query the calculator needs.
	ListByTeamUpToMatchday(ctx context.Context, tournamentID, teamID, matchday int) ([]*models.Card, error)
	Delete(ctx context.Context, id int) error
}

type postgresCardRepository struct {
	db *sql.DB
}

func NewPostgresCardRepository(db *sql.DB) CardRepository {
	return &postgresCardRepository{db: db}
}

func (r *postgresCardRepository) Create(ctx context.Context, card *models.Card) error {
	query := `
		INSERT INTO cards (tournament_id, match_id, matchday, team_id, player_id, kind, minute)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at`

	err := r.db.QueryRowContext(ctx, query,
		card.TournamentID,
		card.MatchID,
		card.Matchday,
		card.TeamID,
		card.PlayerID,
		card.Kind,
		card.Minute,
	).Scan(&card.ID, &card.CreatedAt)

	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23503" {
			switch pqErr.Constraint {
			case "cards_match_id_fkey":
				return ErrCardMatchInvalid
			case "cards_player_id_fkey":
				return ErrCardPlayerInvalid
			}
		}
		return err
	}
	return nil
}

func (r *postgresCardRepository) GetByID(ctx context.Context, id int) (*models.Card, error) {
	query := `
		SELECT id, tournament_id, match_id, matchday, team_id, player_id, kind, minute, created_at
		FROM cards
		WHERE id = $1`

	card := &models.Card{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&card.ID,
		&card.TournamentID,
		&card.MatchID,
		&card.Matchday,
		&card.TeamID,
		&card.PlayerID,
		&card.Kind,
		&card.Minute,
		&card.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrCardNotFound
		}
		return nil, err
	}
	return card, nil
}

func (r *postgresCardRepository) ListByMatch(ctx context.Context, matchID int) ([]*models.Card, error) {
	query := `
		SELECT id, tournament_id, match_id, matchday, team_id, player_id, kind, minute, created_at
		FROM cards
		WHERE match_id = $1
		ORDER BY created_at`

	return r.queryCards(ctx, query, matchID)
}

func (r *postgresCardRepository) ListByTeamUpToMatchday(ctx context.Context, tournamentID, teamID, matchday int) ([]*models.Card, error) {
	query := `
		SELECT id, tournament_id, match_id, matchday, team_id, player_id, kind, minute, created_at
		FROM cards
		WHERE tournament_id = $1 AND team_id = $2 AND matchday <= $3
		ORDER BY matchday, created_at`

	return r.queryCards(ctx, query, tournamentID, teamID, matchday)
}

func (r *postgresCardRepository) Delete(ctx context.Context, id int) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM cards WHERE id = $1`, id)
	if err != nil {
		return err
	}
	return affectedOrErr(result, ErrCardNotFound)
}

func (r *postgresCardRepository) queryCards(ctx context.Context, query string, args ...interface{}) ([]*models.Card, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	cards := make([]*models.Card, 0)
	for rows.Next() {
		var card models.Card
		if scanErr := rows.Scan(
			&card.ID,
			&card.TournamentID,
			&card.MatchID,
			&card.Matchday,
			&card.TeamID,
			&card.PlayerID,
			&card.Kind,
			&card.Minute,
			&card.CreatedAt,
		); scanErr != nil {
			return nil, scanErr
		}
		cards = append(cards, &card)
	}
	return cards, rows.Err()
}
