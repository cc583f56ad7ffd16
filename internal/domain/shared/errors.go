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

// NewDomainError creates a new domain error
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
	}
}

// Common domain errors
var (
	ErrNotFound           = NewDomainError("NOT_FOUND", "Resource not found")
	ErrEmptyCart          = NewDomainError("EMPTY_CART", "Cart has no items")
	ErrInvalidReference   = NewDomainError("INVALID_REFERENCE", "Operation requires a concrete entity reference")
	ErrPersistenceFailure = NewDomainError("PERSISTENCE_FAILURE", "Failed to persist data")
)

// ValidationError is a field-keyed validation failure. The form that produced
// it stays open; Fields maps field name to a human-readable message.
type ValidationError struct {
	Fields map[string]string `json:"fields"`
}

// Error implements the error interface
func (e *ValidationError) Error() string {
	return "validation failed"
}

// NewValidationError creates a validation error from a field error map
func NewValidationError(fields map[string]string) *ValidationError {
	return &ValidationError{Fields: fields}
}
