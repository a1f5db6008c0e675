package session

import (
	"context"
	"crypto/rand"
	"sync"
	"time"

	"github.com/backkem/go-opcua/pkg/securechannel"
	"github.com/backkem/go-opcua/pkg/ua"
	"github.com/pion/logging"
)

// Session owns one CreateSession/ActivateSession pair layered over a
// securechannel.SecureChannel: identity assembly, the attribute/view/
// method/history service wrappers, and auto-batching against the
// configured MaxNodesPerX limits (spec.md §4.5).
type Session struct {
	cfg *Config
	sc  *securechannel.SecureChannel
	log logging.LeveledLogger

	mu                sync.RWMutex
	sessionID         ua.NodeId
	authToken         ua.NodeId
	serverNonce       []byte
	serverCertificate []byte
	endpoint          ua.EndpointDescription

	maxRead          int
	maxWrite         int
	maxBrowse        int
	maxMonitoredItem int

	closeOnce sync.Once
}

// Open creates and activates a session on an already-open secure
// channel, selecting the UserTokenPolicy off endpoint that matches
// cfg.Identity and copying its PolicyID verbatim into the identity
// token, per endpoint.go's UserTokenPolicy invariant.
func Open(ctx context.Context, sc *securechannel.SecureChannel, cfg *Config, endpoint ua.EndpointDescription) (*Session, error) {
	identity := cfg.Identity
	if identity == nil {
		identity = AnonymousIdentity{}
	}

	s := &Session{
		cfg:              cfg,
		sc:               sc,
		endpoint:         endpoint,
		maxRead:          batchLimit(cfg.MaxNodesPerRead),
		maxWrite:         batchLimit(cfg.MaxNodesPerWrite),
		maxBrowse:        batchLimit(cfg.MaxNodesPerBrowse),
		maxMonitoredItem: batchLimit(cfg.MaxMonitoredItemsPerCall),
	}
	if cfg.LoggerFactory != nil {
		s.log = cfg.LoggerFactory.NewLogger("session")
	}

	clientNonce := make([]byte, 32)
	if _, err := rand.Read(clientNonce); err != nil {
		return nil, err
	}

	createResp, err := s.createSession(ctx, clientNonce)
	if err != nil {
		return nil, err
	}
	s.sessionID = createResp.SessionID
	s.authToken = createResp.AuthenticationToken
	s.serverNonce = createResp.ServerNonce
	s.serverCertificate = createResp.ServerCertificate

	policy, ok := matchingPolicy(endpoint.UserIdentityTokens, identity.tokenType())
	if !ok {
		return nil, ErrNoMatchingUserTokenPolicy
	}

	token, err := identity.buildToken(policy, endpoint.SecurityPolicyURI, s.serverCertificate, s.serverNonce)
	if err != nil {
		return nil, err
	}

	activateResp, err := s.activateSession(ctx, token)
	if err != nil {
		return nil, err
	}
	if len(activateResp.ServerNonce) > 0 {
		s.mu.Lock()
		s.serverNonce = activateResp.ServerNonce
		s.mu.Unlock()
	}

	if s.log != nil {
		s.log.Debugf("session %s activated", s.sessionID)
	}
	return s, nil
}

// Reattach wraps an already-created-and-activated session (sessionID,
// authToken) on a fresh secure channel, for the DetachSession use case:
// a session outlives the client/channel that created it and a new
// client picks it back up without repeating CreateSession/
// ActivateSession (spec.md §9 supplement).
func Reattach(sc *securechannel.SecureChannel, cfg *Config, endpoint ua.EndpointDescription, sessionID, authToken ua.NodeId) *Session {
	s := &Session{
		cfg:              cfg,
		sc:               sc,
		endpoint:         endpoint,
		sessionID:        sessionID,
		authToken:        authToken,
		maxRead:          batchLimit(cfg.MaxNodesPerRead),
		maxWrite:         batchLimit(cfg.MaxNodesPerWrite),
		maxBrowse:        batchLimit(cfg.MaxNodesPerBrowse),
		maxMonitoredItem: batchLimit(cfg.MaxMonitoredItemsPerCall),
	}
	if cfg.LoggerFactory != nil {
		s.log = cfg.LoggerFactory.NewLogger("session")
	}
	return s
}

// Detach returns the identifiers needed to Reattach this session from
// a different client without closing it server-side.
func (s *Session) Detach() (sessionID, authToken ua.NodeId) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.sessionID, s.authToken
}

// SessionID returns the server-assigned session id.
func (s *Session) SessionID() ua.NodeId {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.sessionID
}

func matchingPolicy(policies []ua.UserTokenPolicy, want ua.UserTokenType) (ua.UserTokenPolicy, bool) {
	for _, p := range policies {
		if p.TokenType == want {
			return p, true
		}
	}
	return ua.UserTokenPolicy{}, false
}

// Send encodes body under typeID and sends it over the session's
// secure channel, for use by pkg/subscription, which issues
// subscription/monitored-item/publish requests against this same
// session rather than duplicating request plumbing.
func (s *Session) Send(ctx context.Context, typeID uint32, encodeBody func(*ua.Encoder)) (interface{}, error) {
	return s.sc.SendRequest(ctx, typeID, encodeBody)
}

// NewRequestHeader builds a RequestHeader carrying this session's
// AuthenticationToken, for callers outside the package assembling
// their own request types (pkg/subscription).
func (s *Session) NewRequestHeader() ua.RequestHeader {
	return s.requestHeader()
}

func (s *Session) requestHeader() ua.RequestHeader {
	return ua.RequestHeader{
		AuthenticationToken: s.authToken,
		Timestamp:           ua.NewDateTime(time.Now()),
		RequestHandle:       s.sc.NextRequestHandle(),
		TimeoutHint:         uint32(s.cfg.requestTimeout() / time.Millisecond),
	}
}

func (s *Session) createSession(ctx context.Context, clientNonce []byte) (ua.CreateSessionResponse, error) {
	req := ua.CreateSessionRequest{
		RequestHeader:           s.requestHeader(),
		ClientDescription:       s.cfg.ClientDescription,
		ServerURI:               s.endpoint.Server.ApplicationURI,
		EndpointURL:             s.endpoint.EndpointURL,
		SessionName:             s.cfg.SessionName,
		ClientNonce:             clientNonce,
		RequestedSessionTimeout: s.cfg.sessionTimeoutMS(),
	}
	v, err := s.sc.SendRequest(ctx, ua.ServiceIDCreateSessionRequest, func(e *ua.Encoder) {
		e.CreateSessionRequest(req)
	})
	if err != nil {
		return ua.CreateSessionResponse{}, err
	}
	resp, ok := v.(ua.CreateSessionResponse)
	if !ok {
		return ua.CreateSessionResponse{}, ErrUnexpectedResponse
	}
	if !resp.ResponseHeader.ServiceResult.IsGood() {
		return ua.CreateSessionResponse{}, resp.ResponseHeader.ServiceResult
	}
	return resp, nil
}

func (s *Session) activateSession(ctx context.Context, token ua.ExtensionObject) (ua.ActivateSessionResponse, error) {
	req := ua.ActivateSessionRequest{
		RequestHeader:     s.requestHeader(),
		UserIdentityToken: token,
	}
	v, err := s.sc.SendRequest(ctx, ua.ServiceIDActivateSessionRequest, func(e *ua.Encoder) {
		e.ActivateSessionRequest(req)
	})
	if err != nil {
		return ua.ActivateSessionResponse{}, err
	}
	resp, ok := v.(ua.ActivateSessionResponse)
	if !ok {
		return ua.ActivateSessionResponse{}, ErrUnexpectedResponse
	}
	if !resp.ResponseHeader.ServiceResult.IsGood() {
		return ua.ActivateSessionResponse{}, resp.ResponseHeader.ServiceResult
	}
	return resp, nil
}

// Close ends the session; deleteSubscriptions asks the server to tear
// down any subscriptions owned by it as well.
func (s *Session) Close(ctx context.Context, deleteSubscriptions bool) error {
	var err error
	s.closeOnce.Do(func() {
		req := ua.CloseSessionRequest{
			RequestHeader:       s.requestHeader(),
			DeleteSubscriptions: deleteSubscriptions,
		}
		var v interface{}
		v, err = s.sc.SendRequest(ctx, ua.ServiceIDCloseSessionRequest, func(e *ua.Encoder) {
			e.CloseSessionRequest(req)
		})
		if err != nil {
			return
		}
		if _, ok := v.(ua.CloseSessionResponse); !ok {
			err = ErrUnexpectedResponse
		}
	})
	return err
}
