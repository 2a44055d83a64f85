package persistence

import (
	"errors"
	"strings"

	"github.com/state244/hub/internal/domain/shared"
	"gorm.io/gorm"
)

// translateError maps driver errors onto domain errors. Unique violations
// become conflicts carrying msg, missing rows become ErrNotFound and values
// too long for their column become invalid input.
func translateError(err error, msg string) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return shared.ErrNotFound
	}
	if isDuplicateKey(err) {
		return shared.NewConflictError(msg)
	}
	if isValueTooLong(err) {
		return shared.NewInvalidInputError("value too long")
	}
	return err
}

// isValueTooLong matches Postgres SQLSTATE 22001
func isValueTooLong(err error) bool {
	s := err.Error()
	return strings.Contains(s, "SQLSTATE 22001") ||
		strings.Contains(s, "value too long for type")
}

func isDuplicateKey(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	s := err.Error()
	return strings.Contains(s, "UNIQUE constraint failed") ||
		strings.Contains(s, "duplicate key")
}

// notFoundAs names the missing resource when err is a missing row
func notFoundAs(err error, resource string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return shared.NewNotFoundError(resource)
	}
	return err
}
