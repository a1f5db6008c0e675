package opcua

import (
	"context"
	"fmt"
	"sync"

	"github.com/backkem/go-opcua/pkg/reconnect"
	"github.com/backkem/go-opcua/pkg/securechannel"
	"github.com/backkem/go-opcua/pkg/session"
	"github.com/backkem/go-opcua/pkg/subscription"
	"github.com/backkem/go-opcua/pkg/transport"
	"github.com/backkem/go-opcua/pkg/ua"
	"github.com/pion/logging"
)

// Client is the connected OPC UA client: one transport connection,
// one secure channel, and one session, plus whatever subscriptions
// have been created on top of it. A lost connection is detected from
// a subscription's status-change callback (the secure channel closing
// does not by itself signal a loss), and is repaired in place by the
// configured Reconnector when cfg.Reconnect is set.
type Client struct {
	cfg *Config
	log logging.LeveledLogger

	mu   sync.RWMutex
	conn *transport.Conn
	sc   *securechannel.SecureChannel
	sess *session.Session

	subsMu sync.Mutex
	subs   []*subscription.Subscription

	reconnector *reconnect.Reconnector
	lost        chan error
}

// Connect dials cfg.EndpointURL, opens a secure channel under cfg's
// security policy, and creates a session, returning a ready-to-use
// Client.
func Connect(ctx context.Context, cfg *Config) (*Client, error) {
	c := &Client{cfg: cfg, lost: make(chan error, 1)}
	if cfg.LoggerFactory != nil {
		c.log = cfg.LoggerFactory.NewLogger("opcua")
	}
	if cfg.Reconnect != nil {
		c.reconnector = reconnect.New(cfg.Reconnect)
	}

	if err := c.dial(ctx); err != nil {
		return nil, err
	}

	if c.reconnector != nil {
		go c.reconnector.Run(context.Background(), c.lost, c.dial, func() {
			if c.log != nil {
				c.log.Infof("reconnected")
			}
		})
	}

	return c, nil
}

// dial performs the full transport+channel+session handshake and
// replaces the Client's current layers on success. It is also the
// ConnectFunc passed to the Reconnector.
func (c *Client) dial(ctx context.Context) error {
	dialCtx, cancel := context.WithTimeout(ctx, c.cfg.dialTimeout())
	defer cancel()

	conn, err := transport.Dial(dialCtx, endpointAddr(c.cfg.EndpointURL), c.cfg.EndpointURL, c.cfg.LoggerFactory)
	if err != nil {
		return err
	}

	sc, err := securechannel.New(c.cfg.channelConfig(), conn)
	if err != nil {
		conn.Close()
		return err
	}
	if err := sc.Open(ctx); err != nil {
		conn.Close()
		return err
	}

	endpoint, err := c.resolveEndpoint(ctx, sc)
	if err != nil {
		sc.Close(ctx)
		return err
	}

	sess, err := session.Open(ctx, sc, c.cfg.sessionConfig(), endpoint)
	if err != nil {
		sc.Close(ctx)
		return err
	}

	c.mu.Lock()
	c.conn, c.sc, c.sess = conn, sc, sess
	c.mu.Unlock()
	return nil
}

// resolveEndpoint re-fetches the endpoint description matching
// cfg.SecurityPolicyURI over the channel just opened, since Session
// needs the server's UserTokenPolicy list to build an identity token.
func (c *Client) resolveEndpoint(ctx context.Context, sc *securechannel.SecureChannel) (ua.EndpointDescription, error) {
	endpoints, err := getEndpointsOn(ctx, sc, c.cfg.EndpointURL)
	if err != nil {
		return ua.EndpointDescription{}, err
	}
	wantPolicy := c.cfg.SecurityPolicyURI
	if wantPolicy == "" {
		wantPolicy = "http://opcfoundation.org/UA/SecurityPolicy#None"
	}
	for _, ep := range endpoints {
		if ep.SecurityPolicyURI == wantPolicy && ep.SecurityMode == c.cfg.securityMode() {
			return ep, nil
		}
	}
	return ua.EndpointDescription{}, fmt.Errorf("opcua: no endpoint matching policy %s mode %d", wantPolicy, c.cfg.securityMode())
}

func (c *Client) session() *session.Session {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.sess
}

// Read wraps session.Session.Read.
func (c *Client) Read(ctx context.Context, timestamps ua.TimestampsToReturn, nodesToRead []ua.ReadValueId) ([]ua.DataValue, error) {
	return c.session().Read(ctx, timestamps, nodesToRead)
}

// Write wraps session.Session.Write.
func (c *Client) Write(ctx context.Context, nodesToWrite []ua.WriteValue) ([]ua.StatusCode, error) {
	return c.session().Write(ctx, nodesToWrite)
}

// Browse wraps session.Session.Browse.
func (c *Client) Browse(ctx context.Context, view ua.ViewDescription, maxRefsPerNode uint32, nodesToBrowse []ua.BrowseDescription) ([]ua.BrowseResult, error) {
	return c.session().Browse(ctx, view, maxRefsPerNode, nodesToBrowse)
}

// ManagedBrowse wraps session.Session.ManagedBrowse.
func (c *Client) ManagedBrowse(ctx context.Context, view ua.ViewDescription, maxRefsPerNode uint32, nodesToBrowse []ua.BrowseDescription) ([]ua.BrowseResult, error) {
	return c.session().ManagedBrowse(ctx, view, maxRefsPerNode, nodesToBrowse)
}

// Call wraps session.Session.Call.
func (c *Client) Call(ctx context.Context, methodsToCall []ua.CallMethodRequest) ([]ua.CallMethodResult, error) {
	return c.session().Call(ctx, methodsToCall)
}

// HistoryReadRaw wraps session.Session.HistoryReadRaw.
func (c *Client) HistoryReadRaw(ctx context.Context, details ua.ReadRawModifiedDetails, timestamps ua.TimestampsToReturn, release bool, nodesToRead []ua.HistoryReadValueId) ([]ua.HistoryReadResult, error) {
	return c.session().HistoryReadRaw(ctx, details, timestamps, release, nodesToRead)
}

// Subscribe creates a subscription on the client's current session.
// Its status-change callback is wired into the Client's own
// reconnect signal so a lost subscription triggers reconnection.
func (c *Client) Subscribe(ctx context.Context, subCfg *subscription.Config) (*subscription.Subscription, error) {
	sub, err := subscription.Create(ctx, c.session(), subCfg, c.onSubscriptionLost)
	if err != nil {
		return nil, err
	}
	c.subsMu.Lock()
	c.subs = append(c.subs, sub)
	c.subsMu.Unlock()
	return sub, nil
}

func (c *Client) onSubscriptionLost(err error) {
	select {
	case c.lost <- err:
	default:
	}
}

// DetachSession returns this client's live session identifiers
// without closing the session server-side, for handing off to a
// fresh Client via Reattach (spec.md §9 supplement).
func (c *Client) DetachSession() (sessionID, authToken ua.NodeId) {
	return c.session().Detach()
}

// Close tears down the session, secure channel, and transport
// connection, in that order, best-effort.
func (c *Client) Close(ctx context.Context) error {
	c.mu.RLock()
	sess, sc := c.sess, c.sc
	c.mu.RUnlock()

	var err error
	if sess != nil {
		err = sess.Close(ctx, true)
	}
	if sc != nil {
		if cerr := sc.Close(ctx); err == nil {
			err = cerr
		}
	}
	return err
}
