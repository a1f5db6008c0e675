// Package securechannel implements the OPC UA secure channel layer
// that sits between the raw TCP transport and the session/subscription
// services above it: OpenSecureChannel/renew/CloseSecureChannel, chunk
// sign+encrypt/verify+decrypt, and request/response correlation by
// sequence-header RequestID (spec.md §4.3-4.5).
package securechannel

import (
	"crypto/rsa"
	"time"

	"github.com/backkem/go-opcua/pkg/crypto"
	"github.com/backkem/go-opcua/pkg/ua"
	"github.com/pion/logging"
)

// Config carries everything a SecureChannel needs to open and maintain
// itself; the caller (client.go) fills this in from its own Config
// before the channel opens, ahead of any GetEndpoints call.
type Config struct {
	SecurityPolicyURI string
	SecurityMode      ua.MessageSecurityMode

	// LocalCertificate/LocalPrivateKey identify this client under any
	// policy other than None. RemotePublicKey is the server
	// certificate's extracted key, used to encrypt the asymmetric OPN
	// exchange and verify the server's signature.
	LocalCertificate []byte
	LocalPrivateKey  *rsa.PrivateKey
	RemoteCertificate []byte
	RemotePublicKey   *rsa.PublicKey

	// RequestedLifetime is the channel lifetime this client asks for
	// in OpenSecureChannelRequest; the server may revise it down.
	RequestedLifetime time.Duration

	// RequestTimeout bounds how long SendRequest waits for a matching
	// response before giving up.
	RequestTimeout time.Duration

	LoggerFactory logging.LoggerFactory
}

func (c *Config) policy() (*crypto.SecurityPolicy, error) {
	uri := c.SecurityPolicyURI
	if uri == "" {
		uri = crypto.SecurityPolicyNone
	}
	return crypto.LookupPolicy(uri)
}

func (c *Config) requestedLifetimeMS() uint32 {
	if c.RequestedLifetime <= 0 {
		return uint32(30 * time.Minute / time.Millisecond)
	}
	return uint32(c.RequestedLifetime / time.Millisecond)
}

func (c *Config) requestTimeout() time.Duration {
	if c.RequestTimeout <= 0 {
		return 10 * time.Second
	}
	return c.RequestTimeout
}
