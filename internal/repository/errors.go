package repository

import (
	"errors"
	"strings"

	"github.com/linskybing/robolab-go/pkg/apperr"
	"gorm.io/gorm"
)

// translate maps gorm errors onto the application error taxonomy.
func translate(op string, err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return apperr.ErrNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey), isUniqueViolation(err):
		return apperr.ErrConflict
	default:
		return apperr.Store(op, err)
	}
}

// modernc sqlite errors are not translated by the gorm dialector.
func isUniqueViolation(err error) bool {
	msg := err.Error()
	return strings.Contains(msg, "UNIQUE constraint failed") ||
		strings.Contains(msg, "duplicate key value violates unique constraint")
}
