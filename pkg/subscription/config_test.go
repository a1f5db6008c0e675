package subscription

import (
	"testing"
	"time"
)

func TestConfigDefaults(t *testing.T) {
	var c Config
	if got := c.publishingIntervalMS(); got != 1000 {
		t.Fatalf("publishingIntervalMS default: got %v, want 1000", got)
	}
	if got := c.lifetimeCount(); got != 10000 {
		t.Fatalf("lifetimeCount default: got %v, want 10000", got)
	}
	if got := c.maxKeepAliveCount(); got != 10 {
		t.Fatalf("maxKeepAliveCount default: got %v, want 10", got)
	}
	if got := c.maxKeepAliveMisses(); got != 3 {
		t.Fatalf("maxKeepAliveMisses default: got %v, want 3", got)
	}
	if got := c.maxPendingAcks(); got != 1000 {
		t.Fatalf("maxPendingAcks default: got %v, want 1000", got)
	}
}

func TestConfigOverrides(t *testing.T) {
	c := Config{
		PublishingInterval:         500 * time.Millisecond,
		RequestedLifetimeCount:     20,
		RequestedMaxKeepAliveCount: 5,
		MaxKeepAliveMisses:         1,
		MaxPendingAcks:             50,
	}
	if got := c.publishingIntervalMS(); got != 500 {
		t.Fatalf("publishingIntervalMS: got %v, want 500", got)
	}
	if got := c.lifetimeCount(); got != 20 {
		t.Fatalf("lifetimeCount: got %v, want 20", got)
	}
	if got := c.maxKeepAliveCount(); got != 5 {
		t.Fatalf("maxKeepAliveCount: got %v, want 5", got)
	}
	if got := c.maxKeepAliveMisses(); got != 1 {
		t.Fatalf("maxKeepAliveMisses: got %v, want 1", got)
	}
	if got := c.maxPendingAcks(); got != 50 {
		t.Fatalf("maxPendingAcks: got %v, want 50", got)
	}
}

func TestPublishTimeoutScalesWithKeepAlive(t *testing.T) {
	c := Config{
		PublishingInterval:         1 * time.Second,
		RequestedMaxKeepAliveCount: 4,
	}
	got := c.publishTimeout()
	want := 4*time.Second + 30*time.Second
	if got != want {
		t.Fatalf("publishTimeout: got %v, want %v", got, want)
	}
}
