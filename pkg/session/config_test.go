package session

import (
	"testing"
	"time"
)

func TestBatchLimit(t *testing.T) {
	if got := batchLimit(0); got != 1000 {
		t.Fatalf("batchLimit(0): got %d, want 1000", got)
	}
	if got := batchLimit(42); got != 42 {
		t.Fatalf("batchLimit(42): got %d, want 42", got)
	}
}

func TestConfigSessionTimeoutDefault(t *testing.T) {
	var c Config
	want := float64((30 * time.Minute) / time.Millisecond)
	if got := c.sessionTimeoutMS(); got != want {
		t.Fatalf("sessionTimeoutMS default: got %v, want %v", got, want)
	}

	c.RequestedSessionTimeout = 5 * time.Minute
	want = float64((5 * time.Minute) / time.Millisecond)
	if got := c.sessionTimeoutMS(); got != want {
		t.Fatalf("sessionTimeoutMS override: got %v, want %v", got, want)
	}
}

func TestConfigRequestTimeoutDefault(t *testing.T) {
	var c Config
	if got := c.requestTimeout(); got != 10*time.Second {
		t.Fatalf("requestTimeout default: got %v, want 10s", got)
	}
	c.RequestTimeout = 2 * time.Second
	if got := c.requestTimeout(); got != 2*time.Second {
		t.Fatalf("requestTimeout override: got %v, want 2s", got)
	}
}
