package transport

import (
	"context"
	"encoding/binary"
	"fmt"
	"io"
	"net"
	"sync"

	"github.com/backkem/go-opcua/pkg/ua"
	"github.com/pion/logging"
)

// defaultBufferSize is offered in Hello when the caller does not
// override it; it matches what most server stacks advertise back.
const defaultBufferSize = 64 * 1024

// Conn is a single TCP connection carrying the OPC UA binary
// transport protocol: one Hello/Acknowledge handshake followed by any
// number of chunked OPN/MSG/CLO exchanges (spec.md §4.2). A Conn
// serializes writes behind a mutex; reads are the caller's
// responsibility to serialize (the secure channel owns the single
// read loop).
type Conn struct {
	nc     net.Conn
	log    logging.LeveledLogger

	writeMu sync.Mutex

	// Negotiated during the handshake; the minimum of what each side offered.
	ReceiveBufferSize uint32
	SendBufferSize    uint32
	MaxMessageSize    uint32
	MaxChunkCount     uint32

	closed bool
	mu     sync.Mutex
}

// NewConn wraps an already-established net.Conn without performing the
// Hello/Acknowledge handshake, for a server-side listener or an
// in-memory net.Pipe() pair in tests (the teacher's transport package
// keeps an analogous pipe-backed constructor for its own e2e tests).
// Callers are responsible for negotiating ReceiveBufferSize/
// SendBufferSize/MaxMessageSize/MaxChunkCount themselves if needed.
func NewConn(nc net.Conn, logFactory logging.LoggerFactory) *Conn {
	c := &Conn{nc: nc, SendBufferSize: defaultBufferSize, ReceiveBufferSize: defaultBufferSize}
	if logFactory != nil {
		c.log = logFactory.NewLogger("transport")
	}
	return c
}

// Dial opens a TCP connection to addr and performs the Hello/
// Acknowledge handshake. endpointURL is echoed to the server in Hello
// and is typically the opc.tcp:// URL the caller is connecting to.
func Dial(ctx context.Context, addr, endpointURL string, logFactory logging.LoggerFactory) (*Conn, error) {
	var d net.Dialer
	nc, err := d.DialContext(ctx, "tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("transport: dial %s: %w", addr, err)
	}

	c := &Conn{nc: nc}
	if logFactory != nil {
		c.log = logFactory.NewLogger("transport")
	}
	if err := c.handshake(endpointURL); err != nil {
		nc.Close()
		return nil, err
	}
	return c, nil
}

func (c *Conn) handshake(endpointURL string) error {
	hello := ua.Hello{
		ProtocolVersion:   0,
		ReceiveBufferSize: defaultBufferSize,
		SendBufferSize:    defaultBufferSize,
		MaxMessageSize:    4 * 1024 * 1024,
		MaxChunkCount:     512,
		EndpointURL:       endpointURL,
	}
	e := ua.NewEncoder()
	e.Hello(hello)
	if err := c.writeFrame(Frame{Type: MessageTypeHello, Chunk: ChunkFinal, Body: e.Bytes()}); err != nil {
		return fmt.Errorf("transport: %w: %v", ErrHandshakeFailed, err)
	}

	f, err := c.readFrame()
	if err != nil {
		return fmt.Errorf("transport: %w: %v", ErrHandshakeFailed, err)
	}
	switch f.Type {
	case MessageTypeAcknowledge:
		d := ua.NewDecoder(f.Body)
		ack, err := d.Acknowledge("Acknowledge")
		if err != nil {
			return fmt.Errorf("transport: %w: %v", ErrHandshakeFailed, err)
		}
		c.ReceiveBufferSize = ack.ReceiveBufferSize
		c.SendBufferSize = ack.SendBufferSize
		c.MaxMessageSize = ack.MaxMessageSize
		c.MaxChunkCount = ack.MaxChunkCount
		if c.log != nil {
			c.log.Debugf("handshake complete: send=%d recv=%d maxMsg=%d maxChunks=%d",
				c.SendBufferSize, c.ReceiveBufferSize, c.MaxMessageSize, c.MaxChunkCount)
		}
		return nil
	case MessageTypeError:
		d := ua.NewDecoder(f.Body)
		te, err := d.TransportError("Error")
		if err != nil {
			return fmt.Errorf("transport: %w: malformed error frame", ErrHandshakeFailed)
		}
		return fmt.Errorf("transport: %w: server returned %s: %s", ErrHandshakeFailed, te.Error, te.Reason)
	default:
		return fmt.Errorf("transport: %w: unexpected message type %s", ErrHandshakeFailed, f.Type)
	}
}

// writeFrame writes one physical chunk, serialized against concurrent
// writers. Per spec.md §5, only one outstanding write is allowed at a
// time per transport.
func (c *Conn) writeFrame(f Frame) error {
	c.writeMu.Lock()
	defer c.writeMu.Unlock()
	_, err := c.nc.Write(f.marshal())
	return err
}

// readFrame reads exactly one physical chunk.
func (c *Conn) readFrame() (Frame, error) {
	hdr := make([]byte, headerLen)
	if _, err := io.ReadFull(c.nc, hdr); err != nil {
		return Frame{}, err
	}
	t, chunk, totalSize, _, consumed, err := parseHeader(hdr)
	if err != nil {
		return Frame{}, err
	}
	if t != MessageTypeHello && t != MessageTypeAcknowledge && t != MessageTypeError &&
		t != MessageTypeOpenChannel && t != MessageTypeMessage && t != MessageTypeCloseChannel {
		return Frame{}, ErrUnknownMessageType
	}

	var channelID uint32
	if t.hasChannelID() {
		chBuf := make([]byte, 4)
		if _, err := io.ReadFull(c.nc, chBuf); err != nil {
			return Frame{}, err
		}
		channelID = binary.LittleEndian.Uint32(chBuf)
		consumed += 4
	}
	if totalSize < uint32(consumed) {
		return Frame{}, fmt.Errorf("transport: declared size %d shorter than header", totalSize)
	}

	bodyLen := int(totalSize) - consumed
	body := make([]byte, bodyLen)
	if bodyLen > 0 {
		if _, err := io.ReadFull(c.nc, body); err != nil {
			return Frame{}, err
		}
	}
	return Frame{Type: t, Chunk: chunk, SecureChannelID: channelID, Body: body}, nil
}

// WriteChunks writes a pre-split sequence of chunk payloads back to
// back, flagging all but the last ChunkIntermediate and the last
// ChunkFinal. Each element of chunks is already sized to fit within
// MaxBodyPerChunk and, for OPN/MSG/CLO, already signed and encrypted
// by the secure channel — this call only frames and writes them.
func (c *Conn) WriteChunks(msgType MessageType, channelID uint32, chunks [][]byte) error {
	for i, body := range chunks {
		flag := ChunkIntermediate
		if i == len(chunks)-1 {
			flag = ChunkFinal
		}
		if err := c.writeFrame(Frame{Type: msgType, Chunk: flag, SecureChannelID: channelID, Body: body}); err != nil {
			return err
		}
	}
	return nil
}

// ReadChunk reads and returns exactly one chunk frame.
func (c *Conn) ReadChunk() (Frame, error) { return c.readFrame() }

// MaxBodyPerChunk returns the largest payload a single outbound chunk
// may carry given the negotiated SendBufferSize and the fixed header
// overhead for msgType.
func (c *Conn) MaxBodyPerChunk(msgType MessageType) int {
	overhead := headerLen
	if msgType.hasChannelID() {
		overhead += 4
	}
	n := int(c.SendBufferSize) - overhead
	if n < 1 {
		n = 1
	}
	return n
}

// Close closes the underlying socket; Close is idempotent. A read or
// write error does not close the socket or mark the Conn closed.
func (c *Conn) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return nil
	}
	c.closed = true
	return c.nc.Close()
}
