package repositories

import (
	"database/sql"
	"fmt"
)

func checkRowsAffected(result sql.Result) (int64, error) {
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to check affected rows: %w", err)
	}
	return rowsAffected, nil
}

// affectedOrErr maps a zero-row update/delete to the given not-found error.
func affectedOrErr(result sql.Result, notFoundError error) error {
	rowsAffected, err := checkRowsAffected(result)
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return notFoundError
	}
	return nil
}
