package apperror

import "errors"

// Kind classifies an error so callers can tell failures apart without string matching.
type Kind string

const (
	KindNotFound         Kind = "not_found"
	KindInvalidWindow    Kind = "invalid_window"
	KindInvalidInput     Kind = "invalid_input"
	KindCapacityExceeded Kind = "capacity_exceeded"
	KindConflict         Kind = "conflict"
	KindStorage          Kind = "storage_error"
	KindTimeout          Kind = "timeout"
	KindUnauthorized     Kind = "unauthorized"
	KindInternal         Kind = "internal"
)

// AppError is a custom error type that includes an HTTP status code and a stable error kind.
type AppError struct {
	Code    int    // HTTP Status Code (e.g., 400, 404)
	Kind    Kind   // Stable machine-readable classification
	Message string // User-facing error message
	Err     error  // The underlying error, if any (not exposed to user)
}

func (e *AppError) Error() string {
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// New creates a new AppError with a status code, kind and message.
func New(code int, kind Kind, message string) *AppError {
	return &AppError{
		Code:    code,
		Kind:    kind,
		Message: message,
	}
}

// Wrap creates a new AppError wrapping an existing error.
func Wrap(err error, code int, kind Kind, message string) *AppError {
	return &AppError{
		Code:    code,
		Kind:    kind,
		Message: message,
		Err:     err,
	}
}

// Detailer is implemented by errors that carry structured data the caller should display,
// such as the reservation a new booking collided with.
type Detailer interface {
	Details() any
}

// KindOf returns the kind of the first AppError in err's chain, or KindInternal.
func KindOf(err error) Kind {
	if err == nil {
		return ""
	}
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return KindInternal
}

// IsRetryable reports whether err is a storage fault. Validation and conflict failures
// never succeed on retry.
func IsRetryable(err error) bool {
	return KindOf(err) == KindStorage
}
