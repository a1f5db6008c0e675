package securechannel

import (
	"context"
	"crypto/rand"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/backkem/go-opcua/pkg/crypto"
	"github.com/backkem/go-opcua/pkg/transport"
	"github.com/backkem/go-opcua/pkg/ua"
	"github.com/pion/logging"
)

// state tracks the channel's lifecycle. Renewing is a transient state
// entered while a renew OpenSecureChannel exchange is in flight; the
// channel keeps serving requests under the old token until the new one
// arrives.
type state int32

const (
	stateClosed state = iota
	stateOpening
	stateOpen
	stateRenewing
	stateClosing
	stateFaulted
)

// pending is a request awaiting its correlated response.
type pending struct {
	resp chan interface{}
	err  chan error
}

// SecureChannel owns one OPC UA secure channel over one transport.Conn:
// the OpenSecureChannel handshake, token renewal, per-chunk
// sign/encrypt or verify/decrypt, and response correlation for
// everything layered above it (pkg/session, pkg/subscription).
type SecureChannel struct {
	cfg  *Config
	conn *transport.Conn
	log  logging.LeveledLogger

	policy *crypto.SecurityPolicy

	state int32 // atomic state

	channelID uint32
	token     ua.ChannelSecurityToken
	tokenMu   sync.RWMutex

	sendKeys crypto.DerivedKeys // keys for chunks we send
	recvKeys crypto.DerivedKeys // keys for chunks we receive

	sequenceNumber uint32
	requestID      uint32
	requestHandle  uint32
	seqMu          sync.Mutex

	pendingMu sync.Mutex
	pending   map[uint32]*pending

	reassembleMu sync.Mutex
	reassemble   map[uint32][]byte

	closeOnce sync.Once
	closed    chan struct{}
}

// New wraps conn with a closed SecureChannel; call Open to perform the
// initial OpenSecureChannel exchange.
func New(cfg *Config, conn *transport.Conn) (*SecureChannel, error) {
	p, err := cfg.policy()
	if err != nil {
		return nil, err
	}
	if !p.IsNone() && (cfg.LocalCertificate == nil || cfg.LocalPrivateKey == nil || cfg.RemotePublicKey == nil) {
		return nil, ErrCertificateRequired
	}
	sc := &SecureChannel{
		cfg:        cfg,
		conn:       conn,
		policy:     p,
		pending:    make(map[uint32]*pending),
		reassemble: make(map[uint32][]byte),
		closed:     make(chan struct{}),
	}
	if cfg.LoggerFactory != nil {
		sc.log = cfg.LoggerFactory.NewLogger("securechannel")
	}
	return sc, nil
}

func (sc *SecureChannel) getState() state { return state(atomic.LoadInt32(&sc.state)) }
func (sc *SecureChannel) setState(s state) { atomic.StoreInt32(&sc.state, int32(s)) }

// ChannelID returns the server-assigned secure channel id, valid once
// Open has returned successfully.
func (sc *SecureChannel) ChannelID() uint32 { return sc.channelID }

// AuthenticationToken-less requests (OpenSecureChannel itself, and any
// request issued before a session exists) use this null token.
var nullNodeID ua.NodeId

// Open performs the first OpenSecureChannel exchange, starts the
// receive loop, and returns once the channel is ready to carry service
// requests.
func (sc *SecureChannel) Open(ctx context.Context) error {
	if sc.getState() != stateClosed {
		return ErrAlreadyOpen
	}
	sc.setState(stateOpening)

	go sc.receiveLoop()

	if err := sc.openSecureChannel(ctx, ua.SecurityTokenRequestIssue); err != nil {
		sc.setState(stateFaulted)
		return err
	}
	sc.setState(stateOpen)
	go sc.monitorToken()
	return nil
}

// openSecureChannel runs one OPN exchange (issue or renew) over the
// asymmetric algorithm suite, as Part 6 §5.5.2 requires regardless of
// the negotiated SecurityMode, then derives the symmetric keys the
// rest of the channel's chunks will use.
func (sc *SecureChannel) openSecureChannel(ctx context.Context, requestType ua.SecurityTokenRequestType) error {
	clientNonce := make([]byte, sc.policy.EncryptionKeyLength)
	if !sc.policy.IsNone() {
		if _, err := rand.Read(clientNonce); err != nil {
			return err
		}
	}

	reqID := sc.nextRequestID()
	handle := sc.nextRequestHandle()

	req := ua.OpenSecureChannelRequest{
		RequestHeader: ua.RequestHeader{
			AuthenticationToken: nullNodeID,
			Timestamp:           ua.NewDateTime(time.Now()),
			RequestHandle:       handle,
			TimeoutHint:         uint32(sc.cfg.requestTimeout() / time.Millisecond),
		},
		ClientProtocolVersion: 0,
		RequestType:           requestType,
		SecurityMode:          sc.cfg.SecurityMode,
		ClientNonce:           clientNonce,
		RequestedLifetime:     sc.cfg.requestedLifetimeMS(),
	}

	e := ua.NewEncoder()
	ua.EncodeServiceBody(e, ua.ServiceIDOpenSecureChannelRequest, func(e *ua.Encoder) {
		e.OpenSecureChannelRequest(req)
	})
	seqHeader := ua.SequenceHeader{SequenceNumber: sc.nextSequenceNumber(), RequestID: reqID}

	p := sc.registerPending(reqID)
	defer sc.unregisterPending(reqID)

	if err := sc.sendAsymmetric(seqHeader, e.Bytes()); err != nil {
		return err
	}

	select {
	case v := <-p.resp:
		resp, ok := v.(ua.OpenSecureChannelResponse)
		if !ok {
			return ErrUnexpectedResponse
		}
		if !resp.ResponseHeader.ServiceResult.IsGood() {
			return fmt.Errorf("securechannel: OpenSecureChannel failed: %s", resp.ResponseHeader.ServiceResult)
		}
		sc.channelID = resp.SecurityToken.ChannelID
		sc.tokenMu.Lock()
		sc.token = resp.SecurityToken
		sc.tokenMu.Unlock()
		if !sc.policy.IsNone() {
			sc.sendKeys = crypto.DeriveKeys(sc.policy, resp.ServerNonce, clientNonce)
			sc.recvKeys = crypto.DeriveKeys(sc.policy, clientNonce, resp.ServerNonce)
		}
		if sc.log != nil {
			sc.log.Debugf("secure channel %d open, token %d, lifetime %dms",
				sc.channelID, resp.SecurityToken.TokenID, resp.SecurityToken.RevisedLifetime)
		}
		return nil
	case err := <-p.err:
		return err
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(sc.cfg.requestTimeout()):
		return fmt.Errorf("securechannel: OpenSecureChannel timed out")
	}
}

// monitorToken renews the channel's symmetric token once 75% of its
// revised lifetime has elapsed (spec.md §4.5), for as long as the
// channel stays open.
func (sc *SecureChannel) monitorToken() {
	for {
		sc.tokenMu.RLock()
		lifetime := time.Duration(sc.token.RevisedLifetime) * time.Millisecond
		createdAt := sc.token.CreatedAt.Time()
		sc.tokenMu.RUnlock()

		renewAt := createdAt.Add(lifetime * 3 / 4)
		wait := time.Until(renewAt)
		if wait < time.Second {
			wait = time.Second
		}

		select {
		case <-time.After(wait):
		case <-sc.closed:
			return
		}
		if sc.getState() != stateOpen {
			continue
		}
		sc.setState(stateRenewing)
		ctx, cancel := context.WithTimeout(context.Background(), sc.cfg.requestTimeout())
		err := sc.openSecureChannel(ctx, ua.SecurityTokenRequestRenew)
		cancel()
		if err != nil {
			if sc.log != nil {
				sc.log.Errorf("secure channel token renewal failed: %v", err)
			}
			sc.setState(stateFaulted)
			return
		}
		sc.setState(stateOpen)
	}
}

// Close sends CloseSecureChannelRequest (which the server does not
// answer) and releases the underlying transport.
func (sc *SecureChannel) Close(ctx context.Context) error {
	var err error
	sc.closeOnce.Do(func() {
		sc.setState(stateClosing)
		close(sc.closed)

		req := ua.CloseSecureChannelRequest{
			RequestHeader: ua.RequestHeader{
				AuthenticationToken: nullNodeID,
				Timestamp:           ua.NewDateTime(time.Now()),
				RequestHandle:       sc.nextRequestHandle(),
			},
		}
		e := ua.NewEncoder()
		ua.EncodeServiceBody(e, ua.ServiceIDCloseSecureChannelRequest, func(e *ua.Encoder) {
			e.CloseSecureChannelRequest(req)
		})
		seqHeader := ua.SequenceHeader{SequenceNumber: sc.nextSequenceNumber(), RequestID: sc.nextRequestID()}
		_ = sc.sendSymmetric(transport.MessageTypeCloseChannel, seqHeader, e.Bytes())

		sc.setState(stateClosed)
		err = sc.conn.Close()
	})
	return err
}

func (sc *SecureChannel) nextSequenceNumber() uint32 {
	sc.seqMu.Lock()
	defer sc.seqMu.Unlock()
	sc.sequenceNumber++
	if sc.sequenceNumber == 0 {
		sc.sequenceNumber = 1
	}
	return sc.sequenceNumber
}

func (sc *SecureChannel) nextRequestID() uint32 {
	sc.seqMu.Lock()
	defer sc.seqMu.Unlock()
	sc.requestID++
	if sc.requestID == 0 {
		sc.requestID = 1
	}
	return sc.requestID
}

func (sc *SecureChannel) nextRequestHandle() uint32 {
	sc.seqMu.Lock()
	defer sc.seqMu.Unlock()
	sc.requestHandle++
	if sc.requestHandle == 0 {
		sc.requestHandle = 1
	}
	return sc.requestHandle
}

// NextRequestHandle exposes request-handle assignment to callers
// (pkg/session) building RequestHeader values for ordinary service
// requests sent over SendRequest.
func (sc *SecureChannel) NextRequestHandle() uint32 { return sc.nextRequestHandle() }

func (sc *SecureChannel) registerPending(reqID uint32) *pending {
	p := &pending{resp: make(chan interface{}, 1), err: make(chan error, 1)}
	sc.pendingMu.Lock()
	sc.pending[reqID] = p
	sc.pendingMu.Unlock()
	return p
}

func (sc *SecureChannel) unregisterPending(reqID uint32) {
	sc.pendingMu.Lock()
	delete(sc.pending, reqID)
	sc.pendingMu.Unlock()
}

// SendRequest encodes body under typeID, sends it as a single MSG
// chunk signed/encrypted per the negotiated SecurityMode (a body is
// not split across several chunks), and blocks
// until the correlated response arrives, ctx is cancelled, or the
// channel's RequestTimeout elapses.
func (sc *SecureChannel) SendRequest(ctx context.Context, typeID uint32, encodeBody func(*ua.Encoder)) (interface{}, error) {
	if sc.getState() != stateOpen && sc.getState() != stateRenewing {
		return nil, ErrNotOpen
	}

	e := ua.NewEncoder()
	ua.EncodeServiceBody(e, typeID, encodeBody)

	reqID := sc.nextRequestID()
	seqHeader := ua.SequenceHeader{SequenceNumber: sc.nextSequenceNumber(), RequestID: reqID}

	p := sc.registerPending(reqID)
	defer sc.unregisterPending(reqID)

	if err := sc.sendSymmetric(transport.MessageTypeMessage, seqHeader, e.Bytes()); err != nil {
		return nil, err
	}

	// A caller-supplied deadline (pkg/subscription's Publish loop needs
	// one far longer than an ordinary request's RequestTimeout) governs
	// instead of the channel's own timeout; only apply the fixed
	// timeout when ctx carries none.
	var timeout <-chan time.Time
	if _, hasDeadline := ctx.Deadline(); !hasDeadline {
		timer := time.NewTimer(sc.cfg.requestTimeout())
		defer timer.Stop()
		timeout = timer.C
	}

	select {
	case v := <-p.resp:
		return v, nil
	case err := <-p.err:
		return nil, err
	case <-ctx.Done():
		return nil, ctx.Err()
	case <-timeout:
		return nil, fmt.Errorf("securechannel: request timed out")
	case <-sc.closed:
		return nil, ErrClosed
	}
}
