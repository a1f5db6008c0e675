// Package subscription implements the OPC UA subscription layer:
// CreateSubscription/DeleteSubscriptions (ModifySubscription is not
// wrapped), monitored item registration keyed by client handle, and
// the Publish loop that
// routes DataChange/Event notifications back to their callbacks
// (spec.md §4.6).
package subscription

import (
	"time"

	"github.com/pion/logging"
)

// Config carries the publishing parameters Create asks the server
// for; the server may revise any of them (reflected in Subscription's
// Revised* fields after Create returns).
type Config struct {
	PublishingInterval         time.Duration
	RequestedLifetimeCount     uint32
	RequestedMaxKeepAliveCount uint32
	MaxNotificationsPerPublish uint32
	PublishingEnabled          bool
	Priority                   byte

	// MaxKeepAliveMisses bounds how many consecutive keep-alive
	// intervals may pass with no successful Publish response before
	// the subscription reports itself lost to StatusChange.
	MaxKeepAliveMisses int

	// MaxPendingAcks bounds the queue of SubscriptionAcknowledgements
	// awaiting piggyback on the next PublishRequest (spec.md §4.6); once
	// full, the oldest pending ack is dropped to make room for the
	// newest rather than growing without bound.
	MaxPendingAcks int

	LoggerFactory logging.LoggerFactory
}

func (c *Config) publishingIntervalMS() float64 {
	if c.PublishingInterval <= 0 {
		return 1000
	}
	return float64(c.PublishingInterval / time.Millisecond)
}

func (c *Config) lifetimeCount() uint32 {
	if c.RequestedLifetimeCount == 0 {
		return 10000
	}
	return c.RequestedLifetimeCount
}

func (c *Config) maxKeepAliveCount() uint32 {
	if c.RequestedMaxKeepAliveCount == 0 {
		return 10
	}
	return c.RequestedMaxKeepAliveCount
}

func (c *Config) maxNotificationsPerPublish() uint32 {
	return c.MaxNotificationsPerPublish
}

func (c *Config) maxKeepAliveMisses() int {
	if c.MaxKeepAliveMisses <= 0 {
		return 3
	}
	return c.MaxKeepAliveMisses
}

// maxPendingAcks bounds how many unacknowledged sequence numbers
// queueAck will hold before evicting the oldest.
func (c *Config) maxPendingAcks() int {
	if c.MaxPendingAcks <= 0 {
		return 1000
	}
	return c.MaxPendingAcks
}

// publishTimeout bounds how long one Publish round-trip may take: a
// keep-alive interval's worth of publishing intervals, plus headroom,
// since the server legitimately holds the request open until it has
// something to report or the keep-alive fires.
func (c *Config) publishTimeout() time.Duration {
	interval := time.Duration(c.publishingIntervalMS()) * time.Millisecond
	return interval*time.Duration(c.maxKeepAliveCount()) + 30*time.Second
}
