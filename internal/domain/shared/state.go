package shared

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// EntityState is the lifecycle state of master data (resources, units, clients)
type EntityState string

const (
	EntityStateActive   EntityState = "ACTIVE"
	EntityStateArchived EntityState = "ARCHIVED"
)

// IsValid checks if the state is a known value
func (s EntityState) IsValid() bool {
	switch s {
	case EntityStateActive, EntityStateArchived:
		return true
	}
	return false
}

// String returns the string representation
func (s EntityState) String() string {
	return string(s)
}

// NormalizeName trims a master-data name and checks it is non-empty and within maxLen runes.
func NormalizeName(field, name string, maxLen int) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", NewDomainError(CodeInvalidInput, fmt.Sprintf("%s cannot be empty", field))
	}
	if utf8.RuneCountInString(name) > maxLen {
		return "", NewDomainError(CodeInvalidInput, fmt.Sprintf("%s cannot exceed %d characters", field, maxLen))
	}
	return name, nil
}
