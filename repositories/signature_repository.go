package repositories

import (
	"context"
	"database/sql"
	"errors"

	"github.com/lib/pq"
	"github.com/ligafc/league-admin/models"
)

var (
	ErrSignatureNotFound     = errors.New("signature not found")
	ErrSignatureRoleConflict = errors.New("signature for this role already recorded")
	ErrSignatureMatchInvalid = errors.New("signature match conflict or invalid")
)

type SignatureRepository interface {
	Create(ctx context.Context, signature *models.Signature) error
	ListByMatch(ctx context.Context, matchID int) ([]*models.Signature, error)
	Delete(ctx context.Context, id int) error
}

type postgresSignatureRepository struct {
	db *sql.DB
}

func NewPostgresSignatureRepository(db *sql.DB) SignatureRepository {
	return &postgresSignatureRepository{db: db}
}

func (r *postgresSignatureRepository) Create(ctx context.Context, signature *models.Signature) error {
	query := `
		INSERT INTO signatures (match_id, role, signer_name, image_key)
		VALUES ($1, $2, $3, $4)
		RETURNING id, signed_at`

	err := r.db.QueryRowContext(ctx, query,
		signature.MatchID,
		signature.Role,
		signature.SignerName,
		signature.ImageKey,
	).Scan(&signature.ID, &signature.SignedAt)

	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) {
			switch pqErr.Code {
			case "23505":
				if pqErr.Constraint == "signatures_match_id_role_key" {
					return ErrSignatureRoleConflict
				}
			case "23503":
				if pqErr.Constraint == "signatures_match_id_fkey" {
					return ErrSignatureMatchInvalid
				}
			}
		}
		return err
	}
	return nil
}

func (r *postgresSignatureRepository) ListByMatch(ctx context.Context, matchID int) ([]*models.Signature, error) {
	query := `
		SELECT id, match_id, role, signer_name, image_key, signed_at
		FROM signatures
		WHERE match_id = $1
		ORDER BY signed_at`

	rows, err := r.db.QueryContext(ctx, query, matchID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	signatures := make([]*models.Signature, 0)
	for rows.Next() {
		var s models.Signature
		if scanErr := rows.Scan(
			&s.ID,
			&s.MatchID,
			&s.Role,
			&s.SignerName,
			&s.ImageKey,
			&s.SignedAt,
		); scanErr != nil {
			return nil, scanErr
		}
		signatures = append(signatures, &s)
	}
	return signatures, rows.Err()
}

func (r *postgresSignatureRepository) Delete(ctx context.Context, id int) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM signatures WHERE id = $1`, id)
	if err != nil {
		return err
	}
	return affectedOrErr(result, ErrSignatureNotFound)
}
