package holidaze

import (
	"errors"
	"fmt"
)

var (
	// ErrAuthRequired marks a mutation attempted without a bearer token.
	// The client refuses locally; no request is sent.
	ErrAuthRequired = errors.New("holidaze: authentication required")
	// ErrNotFound marks an operation against a booking the store no longer
	// has. Deletes of already-deleted bookings surface this instead of
	// pretending success.
	ErrNotFound = errors.New("holidaze: booking not found")
	// ErrVenueNotFound marks a fetch of an unknown venue.
	ErrVenueNotFound = errors.New("holidaze: venue not found")
)

// RemoteError is a non-2xx answer from the booking store. Message carries
// the server-supplied text when the error payload had one, else a generic
// per-operation fallback. Transport failures are wrapped into the same shape
// so callers see a single failure class per operation.
type RemoteError struct {
	Op         string
	StatusCode int
	Message    string
}

func (e *RemoteError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("holidaze: %s failed (%d): %s", e.Op, e.StatusCode, e.Message)
	}
	return fmt.Sprintf("holidaze: %s failed: %s", e.Op, e.Message)
}
