package implementation

import (
	"errors"

	"doc-assistant-be/internal/repository/contract"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

const pgUniqueViolation = "23505"

// translateError maps driver-level unique violations onto contract.ErrDuplicateKey.
// Gorm translates most dialects itself when TranslateError is on; the pgconn
// check covers connections opened without it.
func translateError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return contract.ErrDuplicateKey
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
		return contract.ErrDuplicateKey
	}
	return err
}
