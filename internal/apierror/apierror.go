// Package apierror provides standardized error response structures for the API.
// All errors returned to clients go through this package to ensure consistency
// and to prevent leaking internal details (stack traces, DB errors, etc.).
package apierror

// APIError is the canonical error envelope for all 4xx/5xx HTTP responses.
type APIError struct {
	Detail string `json:"detail"`
}

func New(msg string) *APIError {
	return &APIError{Detail: msg}
}

// ValidationError wraps multiple field errors. It implements error so that
// services can return it directly and handlers can surface the per-field
// messages with a 422 via errors.As.
type ValidationError struct {
	Detail string            `json:"detail"`
	Fields map[string]string `json:"fields"`
}

func NewValidation(fields map[string]string) *ValidationError {
	return &ValidationError{Detail: "Error de validacion", Fields: fields}
}

// NewValidationField builds a single-field validation error, the common case
// for business rules checked after binding (uniqueness, money precision, etc.).
func NewValidationField(field, msg string) *ValidationError {
	return NewValidation(map[string]string{field: msg})
}

func (e *ValidationError) Error() string { return e.Detail }
