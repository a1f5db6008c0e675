package transport

import "errors"

// Transport errors.
var (
	// ErrClosed names an operation attempted on a closed transport. No
	// function in this package returns it.
	ErrClosed = errors.New("transport: closed")

	// ErrInvalidAddress names an invalid peer address. No function in
	// this package returns it.
	ErrInvalidAddress = errors.New("transport: invalid address")

	// ErrHandshakeFailed is returned when the Hello/Acknowledge exchange
	// does not complete, or the server answers with an Error message.
	ErrHandshakeFailed = errors.New("transport: handshake failed")

	// ErrUnknownMessageType is returned when a received frame's 3-byte
	// type does not match any of HEL/ACK/ERR/OPN/MSG/CLO.
	ErrUnknownMessageType = errors.New("transport: unknown message type")

	// ErrChunkTooLarge names an outbound chunk larger than the
	// negotiated send buffer size. WriteChunks does not check chunk
	// sizes and does not return it.
	ErrChunkTooLarge = errors.New("transport: chunk exceeds negotiated size")

	// ErrTooManyChunks names a message over the negotiated max chunk
	// count. This package does not reassemble messages and does not
	// return it.
	ErrTooManyChunks = errors.New("transport: exceeded max chunk count")

	// ErrMessageTooLarge names a message over the negotiated max message
	// size. This package does not reassemble messages and does not
	// return it.
	ErrMessageTooLarge = errors.New("transport: message too large")

	// ErrAborted names a message the peer aborted (chunk flag 'A').
	// This package hands abort chunks up as ordinary frames and does
	// not return it.
	ErrAborted = errors.New("transport: message aborted by peer")
)
