package session

import "errors"

// Session errors.
var (
	// ErrNotOpen is returned when a service request is sent before Open succeeds.
	ErrNotOpen = errors.New("session: not open")

	// ErrAlreadyOpen is returned by a second call to Open.
	ErrAlreadyOpen = errors.New("session: already open")

	// ErrNoMatchingUserTokenPolicy is returned when the server's endpoint
	// advertises no UserTokenPolicy compatible with the configured Identity.
	ErrNoMatchingUserTokenPolicy = errors.New("session: no matching user token policy")

	// ErrContinuationPointLoop is returned when ManagedBrowse exceeds its
	// iteration bound without exhausting a continuation point, which
	// would otherwise spin forever against a misbehaving server.
	ErrContinuationPointLoop = errors.New("session: browse continuation did not terminate")

	// ErrUnexpectedResponse is returned when a response's concrete type
	// does not match the request that was sent.
	ErrUnexpectedResponse = errors.New("session: unexpected response type")
)
