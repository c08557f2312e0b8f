package persistence

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/warehouse/backend/internal/domain/shared"
	"gorm.io/gorm"
)

func TestErrorMapping(t *testing.T) {
	dup := shared.NewDomainError(shared.CodeDuplicateNumber, "taken")

	t.Run("unique violation maps to the given error", func(t *testing.T) {
		assert.Same(t, dup, duplicate(gorm.ErrDuplicatedKey, "create receipt", dup))
	})

	t.Run("foreign key violation maps to not found", func(t *testing.T) {
		err := duplicate(gorm.ErrForeignKeyViolated, "create receipt", dup)
		assert.ErrorIs(t, err, shared.ErrNotFound)

		err = reference(gorm.ErrForeignKeyViolated, "insert receipt lines")
		var domainErr *shared.DomainError
		assert.True(t, errors.As(err, &domainErr))
		assert.Equal(t, shared.CodeNotFound, domainErr.Code)
	})

	t.Run("other errors are wrapped with the operation", func(t *testing.T) {
		cause := errors.New("connection reset")
		err := reference(cause, "insert receipt lines")
		assert.ErrorIs(t, err, cause)
		assert.Contains(t, err.Error(), "insert receipt lines")
		assert.False(t, errors.Is(err, shared.ErrNotFound))
	})

	t.Run("record not found maps to not found", func(t *testing.T) {
		assert.ErrorIs(t, notFound(gorm.ErrRecordNotFound, "find receipt"), shared.ErrNotFound)
	})
}
