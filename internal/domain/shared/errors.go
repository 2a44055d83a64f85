package shared

import "fmt"

// DomainError represents a domain-level error
type DomainError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Error implements the error interface
func (e *DomainError) Error() string {
	return e.Message
}

// Is matches any DomainError carrying the same code, so a
// NewNotFoundError("alliance") satisfies errors.Is(err, ErrNotFound).
func (e *DomainError) Is(target error) bool {
	t, ok := target.(*DomainError)
	return ok && t.Code == e.Code
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
	ErrNotFound      = NewDomainError("NOT_FOUND", "Resource not found")
	ErrAlreadyExists = NewDomainError("ALREADY_EXISTS", "Resource already exists")
	ErrInvalidInput  = NewDomainError("INVALID_INPUT", "Invalid input provided")
	ErrUnauthorized  = NewDomainError("UNAUTHORIZED", "Not authorized to perform this action")
	ErrForbidden     = NewDomainError("FORBIDDEN", "Access to this resource is forbidden")
	ErrInvalidState  = NewDomainError("INVALID_STATE", "Operation not allowed in current state")
	ErrRateLimited   = NewDomainError("RATE_LIMITED", "Rate limit exceeded")
	ErrUnavailable   = NewDomainError("UNAVAILABLE", "Service is not configured")
)

// NewNotFoundError reports a missing resource by name
func NewNotFoundError(resource string) *DomainError {
	return NewDomainError(ErrNotFound.Code, fmt.Sprintf("%s not found", resource))
}

// NewInvalidInputError reports a validation failure
func NewInvalidInputError(format string, args ...any) *DomainError {
	return NewDomainError(ErrInvalidInput.Code, fmt.Sprintf(format, args...))
}

// NewInvalidStateError reports a transition the current state does not allow
func NewInvalidStateError(format string, args ...any) *DomainError {
	return NewDomainError(ErrInvalidState.Code, fmt.Sprintf(format, args...))
}

// NewForbiddenError reports a caller that lacks the role or scope for an action
func NewForbiddenError(message string) *DomainError {
	return NewDomainError(ErrForbidden.Code, message)
}

// NewConflictError reports a duplicate key
func NewConflictError(message string) *DomainError {
	return NewDomainError(ErrAlreadyExists.Code, message)
}

// NewRateLimitError reports an exhausted quota
func NewRateLimitError(message string) *DomainError {
	return NewDomainError(ErrRateLimited.Code, message)
}
