// Package session implements the OPC UA session layer above a secure
// channel: CreateSession/ActivateSession/Close, identity assembly, and
// the Read/Write/Browse/Call/HistoryRead/RegisterNodes/
// TranslateBrowsePaths service wrappers a client calls once it has a
// session (spec.md §4.5).
package session

import (
	"time"

	"github.com/backkem/go-opcua/pkg/ua"
	"github.com/pion/logging"
)

// Config carries everything Open needs to create and activate a
// session on an already-open secure channel.
type Config struct {
	ClientDescription       ua.ApplicationDescription
	SessionName             string
	RequestedSessionTimeout time.Duration
	Identity                Identity

	// Auto-batch limits. A server normally advertises these via its
	// OperationLimits object; this client takes them as configuration
	// instead of discovering them dynamically (see DESIGN.md), so a
	// caller that knows a server's limits can set them directly.
	MaxNodesPerRead          uint32
	MaxNodesPerWrite         uint32
	MaxNodesPerBrowse        uint32
	MaxMonitoredItemsPerCall uint32

	RequestTimeout time.Duration
	LoggerFactory  logging.LoggerFactory
}

func (c *Config) sessionTimeoutMS() float64 {
	if c.RequestedSessionTimeout <= 0 {
		return float64((30 * time.Minute) / time.Millisecond)
	}
	return float64(c.RequestedSessionTimeout / time.Millisecond)
}

func (c *Config) requestTimeout() time.Duration {
	if c.RequestTimeout <= 0 {
		return 10 * time.Second
	}
	return c.RequestTimeout
}

func batchLimit(configured uint32) int {
	if configured == 0 {
		return 1000
	}
	return int(configured)
}
