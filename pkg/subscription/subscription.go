package subscription

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/backkem/go-opcua/pkg/session"
	"github.com/backkem/go-opcua/pkg/ua"
	"github.com/pion/logging"
)

// Subscription owns one server-side subscription: its monitored item
// registry keyed by client handle, and the Publish loop that keeps
// exactly one PublishRequest outstanding and routes whatever
// notifications come back (spec.md §4.6).
type Subscription struct {
	sess *session.Session
	cfg  *Config
	log  logging.LeveledLogger

	id                        uint32
	revisedPublishingInterval float64
	revisedLifetimeCount      uint32
	revisedMaxKeepAliveCount  uint32

	mu               sync.Mutex
	items            map[uint32]*monitoredItem
	nextClientHandle uint32

	ackMu       sync.Mutex
	pendingAcks []ua.SubscriptionAcknowledgement

	// onStatusChange is called from the publish loop when the server
	// reports the subscription lost (StatusChangeNotification, or a
	// Publish response whose ServiceResult is bad) or when
	// keep-alives stop arriving — the usual trigger for
	// pkg/reconnect to re-establish everything above the transport.
	onStatusChange func(error)

	keepAliveMisses int32

	stopOnce sync.Once
	stopCh   chan struct{}
}

// Create asks sess's server to create a subscription with cfg's
// requested parameters and starts its Publish loop. onStatusChange,
// if non-nil, is invoked from the publish loop when the subscription
// is lost.
func Create(ctx context.Context, sess *session.Session, cfg *Config, onStatusChange func(error)) (*Subscription, error) {
	req := ua.CreateSubscriptionRequest{
		RequestHeader:               sess.NewRequestHeader(),
		RequestedPublishingInterval: cfg.publishingIntervalMS(),
		RequestedLifetimeCount:      cfg.lifetimeCount(),
		RequestedMaxKeepAliveCount:  cfg.maxKeepAliveCount(),
		MaxNotificationsPerPublish:  cfg.maxNotificationsPerPublish(),
		PublishingEnabled:           cfg.PublishingEnabled,
		Priority:                    cfg.Priority,
	}
	v, err := sess.Send(ctx, ua.ServiceIDCreateSubscriptionRequest, func(e *ua.Encoder) {
		e.CreateSubscriptionRequest(req)
	})
	if err != nil {
		return nil, err
	}
	resp, ok := v.(ua.CreateSubscriptionResponse)
	if !ok {
		return nil, ErrUnexpectedResponse
	}
	if !resp.ResponseHeader.ServiceResult.IsGood() {
		return nil, resp.ResponseHeader.ServiceResult
	}

	s := &Subscription{
		sess:                      sess,
		cfg:                       cfg,
		id:                        resp.SubscriptionID,
		revisedPublishingInterval: resp.RevisedPublishingInterval,
		revisedLifetimeCount:      resp.RevisedLifetimeCount,
		revisedMaxKeepAliveCount:  resp.RevisedMaxKeepAliveCount,
		items:                     make(map[uint32]*monitoredItem),
		onStatusChange:            onStatusChange,
		stopCh:                    make(chan struct{}),
	}
	if cfg.LoggerFactory != nil {
		s.log = cfg.LoggerFactory.NewLogger("subscription")
	}

	go s.publishLoop()
	return s, nil
}

// ID returns the server-assigned subscription id.
func (s *Subscription) ID() uint32 { return s.id }

// AddMonitoredItems registers one or more items and wires their
// notification handlers, returning the server's per-item result in
// request order.
func (s *Subscription) AddMonitoredItems(ctx context.Context, timestamps ua.TimestampsToReturn, reqs []MonitoredItemRequest) ([]ua.MonitoredItemCreateResult, error) {
	items := make([]ua.MonitoredItemCreateRequest, len(reqs))
	handles := make([]uint32, len(reqs))
	for i, r := range reqs {
		handle := atomic.AddUint32(&s.nextClientHandle, 1)
		handles[i] = handle
		params := r.Parameters
		params.ClientHandle = handle
		items[i] = ua.MonitoredItemCreateRequest{
			ItemToMonitor: ua.ReadValueId{
				NodeID:      r.NodeID,
				AttributeID: r.AttributeID,
				IndexRange:  r.IndexRange,
			},
			MonitoringMode:      r.Mode,
			RequestedParameters: params,
		}
	}

	req := ua.CreateMonitoredItemsRequest{
		RequestHeader:      s.sess.NewRequestHeader(),
		SubscriptionID:     s.id,
		TimestampsToReturn: timestamps,
		ItemsToCreate:      items,
	}
	v, err := s.sess.Send(ctx, ua.ServiceIDCreateMonitoredItemsRequest, func(e *ua.Encoder) {
		e.CreateMonitoredItemsRequest(req)
	})
	if err != nil {
		return nil, err
	}
	resp, ok := v.(ua.CreateMonitoredItemsResponse)
	if !ok {
		return nil, ErrUnexpectedResponse
	}
	if !resp.ResponseHeader.ServiceResult.IsGood() {
		return nil, resp.ResponseHeader.ServiceResult
	}

	s.mu.Lock()
	for i, res := range resp.Results {
		if i >= len(reqs) {
			break
		}
		if !res.StatusCode.IsGood() {
			continue
		}
		s.items[handles[i]] = &monitoredItem{
			clientHandle:    handles[i],
			monitoredItemID: res.MonitoredItemID,
			dataChange:      reqs[i].DataChange,
			event:           reqs[i].Event,
		}
	}
	s.mu.Unlock()

	return resp.Results, nil
}

// RemoveMonitoredItems deletes the items named by clientHandles.
func (s *Subscription) RemoveMonitoredItems(ctx context.Context, clientHandles []uint32) error {
	s.mu.Lock()
	ids := make([]uint32, 0, len(clientHandles))
	for _, h := range clientHandles {
		item, ok := s.items[h]
		if !ok {
			s.mu.Unlock()
			return ErrNotFound
		}
		ids = append(ids, item.monitoredItemID)
	}
	s.mu.Unlock()

	req := ua.DeleteMonitoredItemsRequest{
		RequestHeader:    s.sess.NewRequestHeader(),
		SubscriptionID:   s.id,
		MonitoredItemIDs: ids,
	}
	v, err := s.sess.Send(ctx, ua.ServiceIDDeleteMonitoredItemsRequest, func(e *ua.Encoder) {
		e.DeleteMonitoredItemsRequest(req)
	})
	if err != nil {
		return err
	}
	resp, ok := v.(ua.DeleteMonitoredItemsResponse)
	if !ok {
		return ErrUnexpectedResponse
	}
	if !resp.ResponseHeader.ServiceResult.IsGood() {
		return resp.ResponseHeader.ServiceResult
	}

	s.mu.Lock()
	for _, h := range clientHandles {
		delete(s.items, h)
	}
	s.mu.Unlock()
	return nil
}

// Delete stops the publish loop and deletes the subscription
// server-side.
func (s *Subscription) Delete(ctx context.Context) error {
	s.stopOnce.Do(func() { close(s.stopCh) })

	req := ua.DeleteSubscriptionsRequest{
		RequestHeader:   s.sess.NewRequestHeader(),
		SubscriptionIDs: []uint32{s.id},
	}
	v, err := s.sess.Send(ctx, ua.ServiceIDDeleteSubscriptionsRequest, func(e *ua.Encoder) {
		e.DeleteSubscriptionsRequest(req)
	})
	if err != nil {
		return err
	}
	if _, ok := v.(ua.DeleteSubscriptionsResponse); !ok {
		return ErrUnexpectedResponse
	}
	return nil
}

// Republish asks the server to resend a NotificationMessage this
// client missed (spec.md §9 supplement), for use when a gap is
// noticed in AvailableSequenceNumbers.
func (s *Subscription) Republish(ctx context.Context, retransmitSequenceNumber uint32) (ua.NotificationMessage, error) {
	req := ua.RepublishRequest{
		RequestHeader:            s.sess.NewRequestHeader(),
		SubscriptionID:           s.id,
		RetransmitSequenceNumber: retransmitSequenceNumber,
	}
	v, err := s.sess.Send(ctx, ua.ServiceIDRepublishRequest, func(e *ua.Encoder) {
		e.RepublishRequest(req)
	})
	if err != nil {
		return ua.NotificationMessage{}, err
	}
	resp, ok := v.(ua.RepublishResponse)
	if !ok {
		return ua.NotificationMessage{}, ErrUnexpectedResponse
	}
	if !resp.ResponseHeader.ServiceResult.IsGood() {
		return ua.NotificationMessage{}, resp.ResponseHeader.ServiceResult
	}
	return resp.NotificationMessage, nil
}
