package reconnect

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"
)

var errDown = errors.New("still down")

func fastConfig() *Config {
	return &Config{
		InitialInterval: time.Millisecond,
		MaxInterval:     5 * time.Millisecond,
	}
}

func TestReconnectSucceedsAfterFailures(t *testing.T) {
	r := New(fastConfig())

	var attempts int32
	connect := func(ctx context.Context) error {
		if atomic.AddInt32(&attempts, 1) < 3 {
			return errDown
		}
		return nil
	}

	if err := r.Reconnect(context.Background(), connect); err != nil {
		t.Fatalf("Reconnect: got %v, want nil", err)
	}
	if got := atomic.LoadInt32(&attempts); got != 3 {
		t.Fatalf("attempts: got %d, want 3", got)
	}
}

func TestReconnectGivesUpAfterMaxElapsedTime(t *testing.T) {
	cfg := fastConfig()
	cfg.MaxElapsedTime = 10 * time.Millisecond
	r := New(cfg)

	connect := func(ctx context.Context) error { return errDown }

	err := r.Reconnect(context.Background(), connect)
	if !errors.Is(err, ErrGaveUp) {
		t.Fatalf("Reconnect: got %v, want ErrGaveUp", err)
	}
}

func TestReconnectRespectsContextCancellation(t *testing.T) {
	r := New(fastConfig())

	ctx, cancel := context.WithCancel(context.Background())
	connect := func(ctx context.Context) error { return errDown }

	done := make(chan error, 1)
	go func() { done <- r.Reconnect(ctx, connect) }()

	cancel()
	select {
	case err := <-done:
		if !errors.Is(err, context.Canceled) {
			t.Fatalf("Reconnect: got %v, want context.Canceled", err)
		}
	case <-time.After(time.Second):
		t.Fatal("Reconnect did not return after context cancellation")
	}
}

func TestRunReconnectsOnLostAndCallsOnReconnected(t *testing.T) {
	r := New(fastConfig())

	lost := make(chan error, 1)
	var reconnected int32
	connect := func(ctx context.Context) error { return nil }
	onReconnected := func() { atomic.AddInt32(&reconnected, 1) }

	ctx, cancel := context.WithCancel(context.Background())
	runDone := make(chan error, 1)
	go func() { runDone <- r.Run(ctx, lost, connect, onReconnected) }()

	lost <- errDown

	deadline := time.After(time.Second)
	for atomic.LoadInt32(&reconnected) == 0 {
		select {
		case <-deadline:
			t.Fatal("onReconnected was not called")
		case <-time.After(time.Millisecond):
		}
	}

	cancel()
	select {
	case err := <-runDone:
		if !errors.Is(err, context.Canceled) {
			t.Fatalf("Run: got %v, want context.Canceled", err)
		}
	case <-time.After(time.Second):
		t.Fatal("Run did not return after context cancellation")
	}
}

func TestRunReturnsErrGaveUpFromReconnect(t *testing.T) {
	cfg := fastConfig()
	cfg.MaxElapsedTime = 10 * time.Millisecond
	r := New(cfg)

	lost := make(chan error, 1)
	connect := func(ctx context.Context) error { return errDown }

	lost <- errDown
	err := r.Run(context.Background(), lost, connect, nil)
	if !errors.Is(err, ErrGaveUp) {
		t.Fatalf("Run: got %v, want ErrGaveUp", err)
	}
}
