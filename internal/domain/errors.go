package domain

import "errors"

// Search flow errors
var (
	ErrEmptyQuery = errors.New("empty query")
	ErrNotFound   = errors.New("movie not found")
	ErrTransport  = errors.New("transport error")
)

// Location flow errors
var (
	ErrPermissionDenied = errors.New("location permission denied")
	ErrFixUnavailable   = errors.New("location fix unavailable")
)

// TransportError wraps a network or decode failure of the lookup service
type TransportError struct {
	Err error
}

func (e *TransportError) Error() string {
	return "transport error: " + e.Err.Error()
}

func (e *TransportError) Unwrap() []error {
	return []error{ErrTransport, e.Err}
}

// NotFoundError carries the message the lookup service gave for a miss
type NotFoundError struct {
	Reason string
}

func (e *NotFoundError) Error() string {
	if e.Reason == "" {
		return ErrNotFound.Error()
	}
	return ErrNotFound.Error() + ": " + e.Reason
}

func (e *NotFoundError) Unwrap() error {
	return ErrNotFound
}

// ErrorKind names the failure kind for display and logs
func ErrorKind(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrEmptyQuery):
		return "EmptyQuery"
	case errors.Is(err, ErrNotFound):
		return "NotFound"
	case errors.Is(err, ErrTransport):
		return "TransportError"
	case errors.Is(err, ErrPermissionDenied):
		return "PermissionDenied"
	case errors.Is(err, ErrFixUnavailable):
		return "FixUnavailable"
	default:
		return "Unknown"
	}
}
