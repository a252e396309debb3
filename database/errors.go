package database

import (
	"errors"

	"github.com/rpupo63/ambitious-journal-backend/errs"
	"gorm.io/gorm"
)

// translate maps gorm's translated driver errors onto the errs sentinels the
// services match on. The connection is opened with TranslateError enabled.
func translate(err error, entity string) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return errs.NewNotFound(entity)
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return errs.NewAlreadyExists(entity)
	case errors.Is(err, gorm.ErrForeignKeyViolated):
		return errs.NewForeignKeyConstraintError(entity, "a missing row", err)
	}
	return err
}
