package inventory

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/warehouse/backend/internal/domain/shared"
)

// MaxDocumentNumberLength bounds the document number
const MaxDocumentNumberLength = 50

func normalizeNumber(number string) (string, error) {
	number = strings.TrimSpace(number)
	if number == "" {
		return "", shared.NewDomainError(shared.CodeInvalidInput, "Document number cannot be empty")
	}
	if utf8.RuneCountInString(number) > MaxDocumentNumberLength {
		return "", shared.NewDomainError(shared.CodeInvalidInput,
			fmt.Sprintf("Document number cannot exceed %d characters", MaxDocumentNumberLength))
	}
	return number, nil
}

func validateDate(date time.Time) error {
	if date.IsZero() {
		return shared.NewDomainError(shared.CodeInvalidInput, "Document date is required")
	}
	return nil
}

// DuplicateNumberError reports that number is held by another document
func DuplicateNumberError(number string) error {
	return shared.NewDomainError(shared.CodeDuplicateNumber,
		fmt.Sprintf("Document with number '%s' already exists", number))
}
