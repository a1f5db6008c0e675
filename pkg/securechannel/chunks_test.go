package securechannel

import (
	"bytes"
	"net"
	"testing"

	"github.com/backkem/go-opcua/pkg/transport"
	"github.com/backkem/go-opcua/pkg/ua"
)

// noneChannelPair returns two SecureChannels wired to opposite ends of
// an in-memory pipe under SecurityPolicyNone, skipping the OPN
// handshake entirely: chunks.go's sign/encrypt step is a no-op under
// None, so this is enough to exercise sendSymmetric/recvSymmetric and
// sendAsymmetric/recvAsymmetric's framing and header round-trip.
func noneChannelPair(t *testing.T) (*SecureChannel, *SecureChannel) {
	t.Helper()
	client, server := net.Pipe()
	t.Cleanup(func() { client.Close(); server.Close() })

	cfg := &Config{}
	p, err := cfg.policy()
	if err != nil {
		t.Fatalf("policy: %v", err)
	}

	a := &SecureChannel{cfg: cfg, conn: transport.NewConn(client, nil), policy: p}
	b := &SecureChannel{cfg: cfg, conn: transport.NewConn(server, nil), policy: p}
	return a, b
}

func TestSendRecvSymmetricRoundTrip(t *testing.T) {
	a, b := noneChannelPair(t)

	body := []byte("hello opc ua")
	seq := ua.SequenceHeader{SequenceNumber: 42, RequestID: 7}

	done := make(chan error, 1)
	go func() { done <- a.sendSymmetric(transport.MessageTypeMessage, seq, body) }()

	f, err := b.conn.ReadChunk()
	if err != nil {
		t.Fatalf("ReadChunk: %v", err)
	}
	if err := <-done; err != nil {
		t.Fatalf("sendSymmetric: %v", err)
	}

	gotSeq, gotBody, err := b.recvSymmetric(f)
	if err != nil {
		t.Fatalf("recvSymmetric: %v", err)
	}
	if gotSeq != seq {
		t.Fatalf("SequenceHeader: got %+v, want %+v", gotSeq, seq)
	}
	if !bytes.Equal(gotBody, body) {
		t.Fatalf("body: got %q, want %q", gotBody, body)
	}
}

func TestSendRecvAsymmetricRoundTripNone(t *testing.T) {
	a, b := noneChannelPair(t)

	body := []byte("open secure channel body")
	seq := ua.SequenceHeader{SequenceNumber: 1, RequestID: 1}

	done := make(chan error, 1)
	go func() { done <- a.sendAsymmetric(seq, body) }()

	f, err := b.conn.ReadChunk()
	if err != nil {
		t.Fatalf("ReadChunk: %v", err)
	}
	if err := <-done; err != nil {
		t.Fatalf("sendAsymmetric: %v", err)
	}

	gotSeq, gotBody, err := b.recvAsymmetric(f)
	if err != nil {
		t.Fatalf("recvAsymmetric: %v", err)
	}
	if gotSeq != seq {
		t.Fatalf("SequenceHeader: got %+v, want %+v", gotSeq, seq)
	}
	if !bytes.Equal(gotBody, body) {
		t.Fatalf("body: got %q, want %q", gotBody, body)
	}
}

func TestNextSequenceNumberWrapsPastZero(t *testing.T) {
	sc := &SecureChannel{sequenceNumber: 0xFFFFFFFF}
	if got := sc.nextSequenceNumber(); got != 1 {
		t.Fatalf("nextSequenceNumber after wrap: got %d, want 1", got)
	}
}

func TestNextRequestIDAndHandleStartAtOne(t *testing.T) {
	sc := &SecureChannel{}
	if got := sc.nextRequestID(); got != 1 {
		t.Fatalf("first nextRequestID: got %d, want 1", got)
	}
	if got := sc.nextRequestHandle(); got != 1 {
		t.Fatalf("first nextRequestHandle: got %d, want 1", got)
	}
}
