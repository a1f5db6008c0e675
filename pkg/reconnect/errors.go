package reconnect

import "errors"

// Reconnect errors.
var (
	// ErrGaveUp is returned when the configured backoff's
	// MaxElapsedTime elapses without a successful reconnect.
	ErrGaveUp = errors.New("reconnect: gave up")
)
