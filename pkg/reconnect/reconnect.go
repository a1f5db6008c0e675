package reconnect

import (
	"context"
	"time"

	"github.com/cenkalti/backoff"
	"github.com/pion/logging"
)

// ConnectFunc re-establishes whatever layers were lost (transport,
// secure channel, session, subscriptions) and reports success or
// failure for one attempt.
type ConnectFunc func(ctx context.Context) error

// Reconnector retries a ConnectFunc on a capped exponential backoff.
type Reconnector struct {
	cfg *Config
	log logging.LeveledLogger
}

// New builds a Reconnector from cfg.
func New(cfg *Config) *Reconnector {
	r := &Reconnector{cfg: cfg}
	if cfg.LoggerFactory != nil {
		r.log = cfg.LoggerFactory.NewLogger("reconnect")
	}
	return r
}

// Reconnect calls connect, retrying on a fresh backoff schedule until
// it succeeds, ctx is canceled, or the schedule's MaxElapsedTime
// elapses (ErrGaveUp).
func (r *Reconnector) Reconnect(ctx context.Context, connect ConnectFunc) error {
	b := r.cfg.newBackOff()

	for {
		err := connect(ctx)
		if err == nil {
			return nil
		}
		if r.log != nil {
			r.log.Warnf("reconnect attempt failed: %v", err)
		}

		d := b.NextBackOff()
		if d == backoff.Stop {
			return ErrGaveUp
		}

		timer := time.NewTimer(d)
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}
	}
}

// Run watches lost for connection-loss notifications (client.go wires
// it to a subscription's status-change callback) and calls Reconnect in response to each one, invoking
// onReconnected after a successful reconnect. It returns when ctx is
// done or a Reconnect call gives up.
func (r *Reconnector) Run(ctx context.Context, lost <-chan error, connect ConnectFunc, onReconnected func()) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case err := <-lost:
			if r.log != nil {
				r.log.Infof("connection lost, reconnecting: %v", err)
			}
			if err := r.Reconnect(ctx, connect); err != nil {
				return err
			}
			if onReconnected != nil {
				onReconnected()
			}
		}
	}
}
