package repositories

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	"identity/pkg/utils"
)

const pgUniqueViolation = "23505"

// storeError classifies every store failure as persistence; duplicates get a clearer message.
func storeError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return utils.PersistenceMsg("duplicate record", err)
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
		return utils.PersistenceMsg("duplicate record", err)
	}
	return utils.Persistence(err)
}

// firstOrNil follows the repository convention of nil, nil for a miss.
func firstOrNil[T any](result *gorm.DB, dest *T) (*T, error) {
	if err := result.Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, storeError(err)
	}
	return dest, nil
}
