// Package reconnect drives transport and session re-establishment
// with a capped exponential backoff after a subscription reports the
// connection lost (spec.md §2/§4).
//
// OPC UA carries no equivalent of Matter's two-phase MRP retransmit
// schedule (linear then exponential, keyed to session idle/active
// intervals): a client that loses its connection just needs to retry
// the handshake with a generic capped backoff, which is exactly what
// cenkalti/backoff.ExponentialBackOff computes.
package reconnect

import (
	"time"

	"github.com/cenkalti/backoff"
	"github.com/pion/logging"
)

// Config parameterizes the backoff schedule between reconnect
// attempts. Zero values fall back to cenkalti/backoff's own
// defaults, except MaxElapsedTime, whose zero value here means retry
// forever rather than backoff's usual 15-minute default.
type Config struct {
	InitialInterval time.Duration
	MaxInterval     time.Duration

	// MaxElapsedTime bounds how long Reconnect keeps retrying before
	// giving up with ErrGaveUp. Zero means retry forever.
	MaxElapsedTime time.Duration

	LoggerFactory logging.LoggerFactory
}

func (c *Config) newBackOff() *backoff.ExponentialBackOff {
	b := backoff.NewExponentialBackOff()
	if c.InitialInterval > 0 {
		b.InitialInterval = c.InitialInterval
	}
	if c.MaxInterval > 0 {
		b.MaxInterval = c.MaxInterval
	}
	b.MaxElapsedTime = c.MaxElapsedTime
	b.Reset()
	return b
}
