package subscription

import (
	"context"
	"sync/atomic"

	"github.com/backkem/go-opcua/pkg/ua"
)

// publishLoop keeps exactly one PublishRequest outstanding for the
// life of the subscription, draining pending acks into each one and
// dispatching whatever NotificationMessage comes back. It exits when
// stopCh closes or the server reports the subscription lost.
func (s *Subscription) publishLoop() {
	for {
		select {
		case <-s.stopCh:
			return
		default:
		}

		ctx, cancel := context.WithTimeout(context.Background(), s.cfg.publishTimeout())
		resp, err := s.publish(ctx)
		cancel()

		if err != nil {
			select {
			case <-s.stopCh:
				return
			default:
			}
			if atomic.AddInt32(&s.keepAliveMisses, 1) >= int32(s.cfg.maxKeepAliveMisses()) {
				s.reportLost(err)
				return
			}
			continue
		}

		if !resp.ResponseHeader.ServiceResult.IsGood() {
			s.reportLost(resp.ResponseHeader.ServiceResult)
			return
		}

		if len(resp.NotificationMessage.NotificationData) == 0 {
			// Keep-alive: no data, reset the miss counter.
			atomic.StoreInt32(&s.keepAliveMisses, 0)
		} else {
			atomic.StoreInt32(&s.keepAliveMisses, 0)
			if lost := s.dispatch(resp.NotificationMessage); lost {
				return
			}
		}

		s.queueAck(ua.SubscriptionAcknowledgement{
			SubscriptionID: resp.SubscriptionID,
			SequenceNumber: resp.NotificationMessage.SequenceNumber,
		})
	}
}

func (s *Subscription) publish(ctx context.Context) (ua.PublishResponse, error) {
	req := ua.PublishRequest{
		RequestHeader:                s.sess.NewRequestHeader(),
		SubscriptionAcknowledgements: s.drainAcks(),
	}
	v, err := s.sess.Send(ctx, ua.ServiceIDPublishRequest, func(e *ua.Encoder) {
		e.PublishRequest(req)
	})
	if err != nil {
		return ua.PublishResponse{}, err
	}
	resp, ok := v.(ua.PublishResponse)
	if !ok {
		return ua.PublishResponse{}, ErrUnexpectedResponse
	}
	return resp, nil
}

// dispatch decodes and routes one NotificationMessage's data, and
// reports whether the subscription should stop (a StatusChange with
// a bad status arrived).
func (s *Subscription) dispatch(msg ua.NotificationMessage) bool {
	for _, eo := range msg.NotificationData {
		v, err := ua.DecodeService(eo)
		if err != nil {
			if s.log != nil {
				s.log.Warnf("subscription %d: undecodable notification: %v", s.id, err)
			}
			continue
		}
		switch n := v.(type) {
		case ua.DataChangeNotification:
			s.dispatchDataChange(n)
		case ua.EventNotificationList:
			s.dispatchEvents(n)
		case ua.StatusChangeNotification:
			if !n.Status.IsGood() {
				s.reportLost(n.Status)
				return true
			}
		}
	}
	return false
}

func (s *Subscription) dispatchDataChange(n ua.DataChangeNotification) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, mi := range n.MonitoredItems {
		item, ok := s.items[mi.ClientHandle]
		if !ok || item.dataChange == nil {
			continue
		}
		item.dataChange(mi)
	}
}

func (s *Subscription) dispatchEvents(l ua.EventNotificationList) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, ev := range l.Events {
		item, ok := s.items[ev.ClientHandle]
		if !ok || item.event == nil {
			continue
		}
		item.event(ev)
	}
}

// queueAck appends ack to the pending queue, evicting the oldest
// entry first once the queue reaches cfg.maxPendingAcks() (spec.md
// §4.6: "bounded at N, oldest-first eviction"). An evicted ack is for
// a sequence number the server will simply re-deliver or drop on its
// own retention window; it is never retried by the client.
func (s *Subscription) queueAck(ack ua.SubscriptionAcknowledgement) {
	s.ackMu.Lock()
	defer s.ackMu.Unlock()
	s.pendingAcks = append(s.pendingAcks, ack)
	if max := s.cfg.maxPendingAcks(); len(s.pendingAcks) > max {
		s.pendingAcks = s.pendingAcks[len(s.pendingAcks)-max:]
	}
}

func (s *Subscription) drainAcks() []ua.SubscriptionAcknowledgement {
	s.ackMu.Lock()
	defer s.ackMu.Unlock()
	if len(s.pendingAcks) == 0 {
		return nil
	}
	acks := s.pendingAcks
	s.pendingAcks = nil
	return acks
}

func (s *Subscription) reportLost(err error) {
	if s.log != nil {
		s.log.Warnf("subscription %d lost: %v", s.id, err)
	}
	if s.onStatusChange != nil {
		s.onStatusChange(err)
	}
}
