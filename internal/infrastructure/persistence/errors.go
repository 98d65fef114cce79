package persistence

import (
	"errors"

	"github.com/distributor/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// translateError maps GORM errors onto domain errors. It relies on the
// dialect translating constraint violations (gorm.Config.TranslateError).
func translateError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return shared.ErrNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return shared.ErrAlreadyExists
	case errors.Is(err, gorm.ErrForeignKeyViolated):
		return shared.ErrInvalidReference
	default:
		return err
	}
}

func optimisticLockError(entity string) error {
	return shared.NewDomainError("OPTIMISTIC_LOCK_ERROR", entity+" was modified by another transaction")
}
