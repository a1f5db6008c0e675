// Package opcua is the thin object-graph root wiring Transport →
// SecureChannel → Session → Subscription into the Client most callers
// actually want to hold, analogous to the real gopcua opcua.Client
// (spec.md's dataflow diagram requires exactly this much glue; it is
// not the fluent config builder or node-cache facade spec.md excludes).
package opcua

import (
	"crypto/rsa"
	"time"

	"github.com/backkem/go-opcua/pkg/crypto"
	"github.com/backkem/go-opcua/pkg/reconnect"
	"github.com/backkem/go-opcua/pkg/securechannel"
	"github.com/backkem/go-opcua/pkg/session"
	"github.com/backkem/go-opcua/pkg/ua"
	"github.com/pion/logging"
)

// Config composes every layer's own config struct, the way the
// teacher's pkg/matter/config.go's NodeConfig composes its managers'
// settings into one value a caller fills in.
type Config struct {
	// EndpointURL is the opc.tcp:// address to dial, and is echoed
	// into Hello and GetEndpointsRequest. CreateSessionRequest carries
	// the EndpointURL of the endpoint GetEndpoints returned.
	EndpointURL string

	// ApplicationName/ApplicationURI/ProductURI identify this client
	// in CreateSessionRequest.ClientDescription.
	ApplicationName string
	ApplicationURI  string
	ProductURI      string

	SecurityPolicyURI string
	SecurityMode      ua.MessageSecurityMode
	LocalCertificate  []byte
	LocalPrivateKey   *rsa.PrivateKey
	RemoteCertificate []byte
	RemotePublicKey   *rsa.PublicKey

	SessionName             string
	RequestedSessionTimeout time.Duration
	Identity                session.Identity

	MaxNodesPerRead          uint32
	MaxNodesPerWrite         uint32
	MaxNodesPerBrowse        uint32
	MaxMonitoredItemsPerCall uint32

	RequestTimeout    time.Duration
	ChannelLifetime   time.Duration
	DialTimeout       time.Duration

	Reconnect *reconnect.Config

	LoggerFactory logging.LoggerFactory
}

func (c *Config) dialTimeout() time.Duration {
	if c.DialTimeout <= 0 {
		return 10 * time.Second
	}
	return c.DialTimeout
}

func (c *Config) channelConfig() *securechannel.Config {
	return &securechannel.Config{
		SecurityPolicyURI: c.SecurityPolicyURI,
		SecurityMode:      c.securityMode(),
		LocalCertificate:  c.LocalCertificate,
		LocalPrivateKey:   c.LocalPrivateKey,
		RemoteCertificate: c.RemoteCertificate,
		RemotePublicKey:   c.RemotePublicKey,
		RequestedLifetime: c.ChannelLifetime,
		RequestTimeout:    c.RequestTimeout,
		LoggerFactory:     c.LoggerFactory,
	}
}

func (c *Config) securityMode() ua.MessageSecurityMode {
	if c.SecurityMode == ua.MessageSecurityModeInvalid {
		return ua.MessageSecurityModeNone
	}
	return c.SecurityMode
}

func (c *Config) sessionConfig() *session.Config {
	return &session.Config{
		ClientDescription: ua.ApplicationDescription{
			ApplicationURI:  c.ApplicationURI,
			ProductURI:      c.ProductURI,
			ApplicationName: ua.LocalizedText{Text: c.ApplicationName},
			ApplicationType: ua.ApplicationTypeClient,
		},
		SessionName:              c.SessionName,
		RequestedSessionTimeout:  c.RequestedSessionTimeout,
		Identity:                 c.Identity,
		MaxNodesPerRead:          c.MaxNodesPerRead,
		MaxNodesPerWrite:         c.MaxNodesPerWrite,
		MaxNodesPerBrowse:        c.MaxNodesPerBrowse,
		MaxMonitoredItemsPerCall: c.MaxMonitoredItemsPerCall,
		RequestTimeout:           c.RequestTimeout,
		LoggerFactory:            c.LoggerFactory,
	}
}

// noneChannelConfig builds the throwaway SecurityPolicyNone channel
// config GetEndpoints/FindServers dial before a real policy is known
// (spec.md §9 supplement).
func noneChannelConfig(requestTimeout time.Duration, logFactory logging.LoggerFactory) *securechannel.Config {
	return &securechannel.Config{
		SecurityPolicyURI: crypto.SecurityPolicyNone,
		SecurityMode:      ua.MessageSecurityModeNone,
		RequestTimeout:    requestTimeout,
		LoggerFactory:     logFactory,
	}
}
