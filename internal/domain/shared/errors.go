package shared

// DomainError represents a domain-level error
type DomainError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Error implements the error interface
func (e *DomainError) Error() string {
	return e.Message
}

// Is reports whether target carries the same error code, so a contextual
// error built with NewDomainError matches its sentinel through errors.Is.
func (e *DomainError) Is(target error) bool {
	t, ok := target.(*DomainError)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

// NewDomainError creates a new domain error
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
	}
}

// Error codes
const (
	CodeNotFound            = "NOT_FOUND"
	CodeAlreadyExists       = "ALREADY_EXISTS"
	CodeInvalidInput        = "INVALID_INPUT"
	CodeConcurrencyConflict = "CONCURRENCY_CONFLICT"
	CodeInvalidState        = "INVALID_STATE"
	CodeInsufficientStock   = "INSUFFICIENT_STOCK"
	CodeDuplicateNumber     = "DUPLICATE_NUMBER"
	CodeEmptyDocument       = "EMPTY_DOCUMENT"
	CodeAlreadySigned       = "ALREADY_SIGNED"
	CodeInUse               = "IN_USE"
)

// Common domain errors
var (
	ErrNotFound            = NewDomainError(CodeNotFound, "Resource not found")
	ErrAlreadyExists       = NewDomainError(CodeAlreadyExists, "Resource already exists")
	ErrInvalidInput        = NewDomainError(CodeInvalidInput, "Invalid input provided")
	ErrConcurrencyConflict = NewDomainError(CodeConcurrencyConflict, "Resource was modified by another process")
	ErrInvalidState        = NewDomainError(CodeInvalidState, "Operation not allowed in current state")
	ErrInsufficientStock   = NewDomainError(CodeInsufficientStock, "Insufficient stock available")
	ErrDuplicateNumber     = NewDomainError(CodeDuplicateNumber, "Document number already exists")
	ErrEmptyDocument       = NewDomainError(CodeEmptyDocument, "Document must contain at least one line")
	ErrAlreadySigned       = NewDomainError(CodeAlreadySigned, "Document is already signed")
	ErrInUse               = NewDomainError(CodeInUse, "Resource is referenced and cannot be deleted")
)
