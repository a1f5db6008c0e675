package transport

import (
	"bytes"
	"context"
	"io"
	"net"
	"testing"
	"time"

	"github.com/backkem/go-opcua/pkg/ua"
)

// serveHandshake plays the server side of Hello/Acknowledge over an
// in-memory pipe, returning once it has replied.
func serveHandshake(t *testing.T, nc net.Conn, ack ua.Acknowledge) {
	t.Helper()
	hdr := make([]byte, headerLen)
	if _, err := io.ReadFull(nc, hdr); err != nil {
		t.Errorf("server: read header: %v", err)
		return
	}
	ty, _, size, _, consumed, err := parseHeader(hdr)
	if err != nil {
		t.Errorf("server: parse header: %v", err)
		return
	}
	if ty != MessageTypeHello {
		t.Errorf("server: got message type %s, want HEL", ty)
		return
	}
	body := make([]byte, int(size)-consumed)
	if _, err := io.ReadFull(nc, body); err != nil {
		t.Errorf("server: read body: %v", err)
		return
	}

	e := ua.NewEncoder()
	e.Acknowledge(ack)
	f := Frame{Type: MessageTypeAcknowledge, Chunk: ChunkFinal, Body: e.Bytes()}
	if _, err := nc.Write(f.marshal()); err != nil {
		t.Errorf("server: write ack: %v", err)
	}
}

func TestDialHandshake(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	defer ln.Close()

	done := make(chan struct{})
	go func() {
		defer close(done)
		nc, err := ln.Accept()
		if err != nil {
			return
		}
		defer nc.Close()
		serveHandshake(t, nc, ua.Acknowledge{
			ProtocolVersion:   0,
			ReceiveBufferSize: 8192,
			SendBufferSize:    8192,
			MaxMessageSize:    1 << 20,
			MaxChunkCount:     128,
		})
	}()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	c, err := Dial(ctx, ln.Addr().String(), "opc.tcp://localhost:4840/test", nil)
	if err != nil {
		t.Fatalf("Dial() error = %v", err)
	}
	defer c.Close()

	if c.SendBufferSize != 8192 || c.ReceiveBufferSize != 8192 {
		t.Errorf("negotiated sizes = %d/%d, want 8192/8192", c.SendBufferSize, c.ReceiveBufferSize)
	}
	if c.MaxChunkCount != 128 {
		t.Errorf("MaxChunkCount = %d, want 128", c.MaxChunkCount)
	}

	<-done
}

func TestDialHandshakeError(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	defer ln.Close()

	go func() {
		nc, err := ln.Accept()
		if err != nil {
			return
		}
		defer nc.Close()
		hdr := make([]byte, headerLen)
		if _, err := io.ReadFull(nc, hdr); err != nil {
			return
		}
		_, _, size, _, consumed, err := parseHeader(hdr)
		if err != nil {
			return
		}
		body := make([]byte, int(size)-consumed)
		io.ReadFull(nc, body)

		e := ua.NewEncoder()
		e.TransportError(ua.TransportError{Error: ua.StatusBadDecodingError, Reason: "bad endpoint"})
		f := Frame{Type: MessageTypeError, Chunk: ChunkFinal, Body: e.Bytes()}
		nc.Write(f.marshal())
	}()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	_, err = Dial(ctx, ln.Addr().String(), "opc.tcp://localhost:4840/test", nil)
	if err == nil {
		t.Fatal("want error, got nil")
	}
}

func TestConnChunkRoundtrip(t *testing.T) {
	client, server := net.Pipe()
	defer client.Close()
	defer server.Close()

	cc := &Conn{nc: client, SendBufferSize: 64}
	sc := &Conn{nc: server}

	body := bytes.Repeat([]byte{0xAB}, 10)
	go func() {
		if err := cc.WriteChunks(MessageTypeMessage, 7, [][]byte{body}); err != nil {
			t.Errorf("WriteChunks: %v", err)
		}
	}()

	f, err := sc.ReadChunk()
	if err != nil {
		t.Fatalf("ReadChunk: %v", err)
	}
	if f.Type != MessageTypeMessage || f.Chunk != ChunkFinal || f.SecureChannelID != 7 {
		t.Fatalf("got %+v", f)
	}
	if !bytes.Equal(f.Body, body) {
		t.Fatalf("body mismatch: got % X want % X", f.Body, body)
	}
}

func TestConnMaxBodyPerChunk(t *testing.T) {
	c := &Conn{SendBufferSize: 100}
	if got := c.MaxBodyPerChunk(MessageTypeMessage); got != 100-headerLen-4 {
		t.Fatalf("got %d", got)
	}
	if got := c.MaxBodyPerChunk(MessageTypeHello); got != 100-headerLen {
		t.Fatalf("got %d", got)
	}
}
