package securechannel

import (
	"io"

	"github.com/backkem/go-opcua/pkg/transport"
	"github.com/backkem/go-opcua/pkg/ua"
)

// receiveLoop reads chunks off the transport until it closes, merges
// them per request id, and routes each completed message to the
// pending call that sent the matching request.
func (sc *SecureChannel) receiveLoop() {
	for {
		f, err := sc.conn.ReadChunk()
		if err != nil {
			sc.failAllPending(err)
			if err != io.EOF && sc.log != nil {
				sc.log.Debugf("secure channel read loop ended: %v", err)
			}
			return
		}
		if err := sc.handleFrame(f); err != nil && sc.log != nil {
			sc.log.Warnf("secure channel dropped a chunk: %v", err)
		}
	}
}

func (sc *SecureChannel) handleFrame(f transport.Frame) error {
	switch f.Type {
	case transport.MessageTypeOpenChannel:
		return sc.handleChunk(f, sc.recvAsymmetric)
	case transport.MessageTypeMessage:
		return sc.handleChunk(f, sc.recvSymmetric)
	case transport.MessageTypeCloseChannel:
		return nil
	case transport.MessageTypeError:
		d := ua.NewDecoder(f.Body)
		te, err := d.TransportError("Error")
		if err != nil {
			return err
		}
		sc.failAllPending(&channelError{status: te.Error, reason: te.Reason})
		return nil
	default:
		return ErrUnexpectedMessageType
	}
}

// handleChunk reassembles one logical message from one or more
// physical chunks using decode to unwrap each chunk's security
// envelope, then dispatches the completed body to its pending caller.
func (sc *SecureChannel) handleChunk(f transport.Frame, decode func(transport.Frame) (ua.SequenceHeader, []byte, error)) error {
	if f.Chunk == transport.ChunkAbort {
		seqHeader, data, err := decode(f)
		if err != nil {
			return err
		}

		sc.reassembleMu.Lock()
		delete(sc.reassemble, seqHeader.RequestID)
		sc.reassembleMu.Unlock()

		sc.failPending(seqHeader.RequestID, abortError(data))
		return nil
	}

	seqHeader, data, err := decode(f)
	if err != nil {
		return err
	}

	sc.reassembleMu.Lock()
	buf := append(sc.reassemble[seqHeader.RequestID], data...)
	if max := sc.conn.MaxMessageSize; max > 0 && uint64(len(buf)) > uint64(max) {
		delete(sc.reassemble, seqHeader.RequestID)
		sc.reassembleMu.Unlock()
		sc.failPending(seqHeader.RequestID, ErrMessageTooLarge)
		return ErrMessageTooLarge
	}
	if f.Chunk == transport.ChunkIntermediate {
		sc.reassemble[seqHeader.RequestID] = buf
		sc.reassembleMu.Unlock()
		return nil
	}
	delete(sc.reassemble, seqHeader.RequestID)
	sc.reassembleMu.Unlock()

	msg, err := ua.DecodeServiceBody(ua.NewDecoder(buf))
	if err != nil {
		return err
	}
	sc.dispatch(seqHeader.RequestID, msg)
	return nil
}

func (sc *SecureChannel) dispatch(reqID uint32, msg interface{}) {
	sc.pendingMu.Lock()
	p, ok := sc.pending[reqID]
	sc.pendingMu.Unlock()
	if !ok {
		if sc.log != nil {
			sc.log.Warnf("secure channel: no pending caller for request id %d", reqID)
		}
		return
	}
	select {
	case p.resp <- msg:
	default:
	}
}

// failPending delivers err to the single caller waiting on reqID, if
// any, the same no-caller/non-blocking-send behavior as dispatch.
func (sc *SecureChannel) failPending(reqID uint32, err error) {
	sc.pendingMu.Lock()
	p, ok := sc.pending[reqID]
	sc.pendingMu.Unlock()
	if !ok {
		if sc.log != nil {
			sc.log.Warnf("secure channel: no pending caller for aborted request id %d", reqID)
		}
		return
	}
	select {
	case p.err <- err:
	default:
	}
}

// abortError decodes the Part 6 §6.7.3 abort-chunk body (ErrorCode
// UInt32, Reason String) for diagnostics, falling back to the bare
// sentinel if the body is missing or malformed.
func abortError(data []byte) error {
	d := ua.NewDecoder(data)
	status, err := d.Uint32("Abort.ErrorCode")
	if err != nil {
		return ErrAborted
	}
	reason, err := d.String("Abort.Reason")
	if err != nil || reason == "" {
		return &channelError{status: ua.StatusCode(status)}
	}
	return &channelError{status: ua.StatusCode(status), reason: reason}
}

func (sc *SecureChannel) failAllPending(err error) {
	sc.pendingMu.Lock()
	defer sc.pendingMu.Unlock()
	for id, p := range sc.pending {
		select {
		case p.err <- err:
		default:
		}
		delete(sc.pending, id)
	}
}

// channelError wraps a transport-level Error message's StatusCode and
// reason text as a Go error.
type channelError struct {
	status ua.StatusCode
	reason string
}

func (e *channelError) Error() string {
	if e.reason != "" {
		return "securechannel: " + e.status.String() + ": " + e.reason
	}
	return "securechannel: " + e.status.String()
}
