package persistence

import (
	"errors"
	"fmt"

	"github.com/warehouse/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// notFound maps gorm.ErrRecordNotFound to shared.ErrNotFound and wraps anything else.
func notFound(err error, op string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return shared.ErrNotFound
	}
	return fmt.Errorf("%s: %w", op, err)
}

// duplicate maps a translated unique violation to dup and everything else through reference.
func duplicate(err error, op string, dup error) error {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return dup
	}
	return reference(err, op)
}

// reference maps a translated foreign key violation to a NOT_FOUND domain error
// and wraps anything else.
func reference(err error, op string) error {
	if errors.Is(err, gorm.ErrForeignKeyViolated) {
		return shared.NewDomainError(shared.CodeNotFound, "Referenced entity not found")
	}
	return fmt.Errorf("%s: %w", op, err)
}

func exists(db *gorm.DB, model any, query string, args ...any) (bool, error) {
	var count int64
	if err := db.Model(model).Where(query, args...).Limit(1).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}
