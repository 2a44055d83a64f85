package persistence

import (
	"errors"
	"testing"

	"github.com/state244/hub/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func TestTranslateError(t *testing.T) {
	assert.NoError(t, translateError(nil, "x"))
	assert.ErrorIs(t, translateError(gorm.ErrRecordNotFound, "x"), shared.ErrNotFound)
	assert.ErrorIs(t, translateError(gorm.ErrDuplicatedKey, "tag taken"), shared.ErrAlreadyExists)
	assert.ErrorIs(t, translateError(errors.New("UNIQUE constraint failed: alliances.tag"), "tag taken"), shared.ErrAlreadyExists)

	tooLong := errors.New(`ERROR: value too long for type character varying(32) (SQLSTATE 22001)`)
	assert.ErrorIs(t, translateError(tooLong, "x"), shared.ErrInvalidInput)

	other := errors.New("connection reset")
	assert.Equal(t, other, translateError(other, "x"))
}
