package securechannel

import "errors"

// Secure channel errors.
var (
	// ErrNotOpen is returned when a request is sent before Open succeeds.
	ErrNotOpen = errors.New("securechannel: not open")

	// ErrAlreadyOpen is returned by a second call to Open.
	ErrAlreadyOpen = errors.New("securechannel: already open")

	// ErrClosed is returned once the channel has been closed.
	ErrClosed = errors.New("securechannel: closed")

	// ErrUnexpectedMessageType is returned when a chunk's message type
	// does not match what the current exchange expects.
	ErrUnexpectedMessageType = errors.New("securechannel: unexpected message type")

	// ErrTooManyChunks names a message split over more chunks than the
	// negotiated max chunk count. Reassembly in this layer does not
	// count chunks and does not return it.
	ErrTooManyChunks = errors.New("securechannel: too many chunks for one message")

	// ErrMessageTooLarge is raised when a reassembled message exceeds
	// the negotiated MaxMessageSize.
	ErrMessageTooLarge = errors.New("securechannel: reassembled message too large")

	// ErrCertificateRequired is returned when a non-None security policy
	// is configured without a local certificate and key or without the
	// server's public key.
	ErrCertificateRequired = errors.New("securechannel: security policy requires a local certificate and private key")

	// ErrUnexpectedResponse is returned when a response's concrete type
	// does not match what the caller expected for its request.
	ErrUnexpectedResponse = errors.New("securechannel: unexpected response type")

	// ErrAborted is returned when the peer aborts an in-progress chunked message.
	ErrAborted = errors.New("securechannel: message aborted by peer")
)
