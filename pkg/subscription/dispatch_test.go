package subscription

import (
	"testing"

	"github.com/backkem/go-opcua/pkg/ua"
)

func newTestSubscription() *Subscription {
	return &Subscription{
		id:    1,
		cfg:   &Config{},
		items: make(map[uint32]*monitoredItem),
	}
}

func extensionObject(t *testing.T, encode func(e *ua.Encoder), serviceID uint32) ua.ExtensionObject {
	t.Helper()
	e := ua.NewEncoder()
	encode(e)
	return ua.ExtensionObject{
		TypeID:   ua.NewNumericNodeID(0, serviceID),
		Encoding: ua.ExtensionObjectBinary,
		Body:     e.Bytes(),
	}
}

func TestDispatchDataChangeRoutesByClientHandle(t *testing.T) {
	s := newTestSubscription()

	var got ua.MonitoredItemNotification
	var calls int
	s.items[7] = &monitoredItem{
		clientHandle: 7,
		dataChange: func(n ua.MonitoredItemNotification) {
			calls++
			got = n
		},
	}
	// No handler registered for handle 9: must not panic and must be ignored.
	s.items[9] = &monitoredItem{clientHandle: 9}

	s.dispatchDataChange(ua.DataChangeNotification{
		MonitoredItems: []ua.MonitoredItemNotification{
			{ClientHandle: 7, Value: ua.DataValue{}},
			{ClientHandle: 9, Value: ua.DataValue{}},
			{ClientHandle: 42, Value: ua.DataValue{}}, // unknown handle, must be ignored
		},
	})

	if calls != 1 {
		t.Fatalf("dataChange calls: got %d, want 1", calls)
	}
	if got.ClientHandle != 7 {
		t.Fatalf("routed ClientHandle: got %d, want 7", got.ClientHandle)
	}
}

func TestDispatchEventsRoutesByClientHandle(t *testing.T) {
	s := newTestSubscription()

	var calls int
	s.items[3] = &monitoredItem{
		clientHandle: 3,
		event: func(ua.EventFieldList) {
			calls++
		},
	}

	s.dispatchEvents(ua.EventNotificationList{
		Events: []ua.EventFieldList{
			{ClientHandle: 3},
			{ClientHandle: 999}, // unknown handle
		},
	})

	if calls != 1 {
		t.Fatalf("event calls: got %d, want 1", calls)
	}
}

func TestDispatchStatusChangeGoodIsNotLost(t *testing.T) {
	s := newTestSubscription()
	var lostErr error
	s.onStatusChange = func(err error) { lostErr = err }

	eo := extensionObject(t, func(e *ua.Encoder) {
		e.StatusChangeNotification(ua.StatusChangeNotification{Status: ua.StatusGood})
	}, ua.ServiceIDStatusChangeNotification)

	stopped := s.dispatch(ua.NotificationMessage{NotificationData: []ua.ExtensionObject{eo}})
	if stopped {
		t.Fatal("dispatch reported stop on a good StatusChangeNotification")
	}
	if lostErr != nil {
		t.Fatalf("onStatusChange called unexpectedly: %v", lostErr)
	}
}

func TestDispatchStatusChangeBadReportsLost(t *testing.T) {
	s := newTestSubscription()
	var lostErr error
	s.onStatusChange = func(err error) { lostErr = err }

	eo := extensionObject(t, func(e *ua.Encoder) {
		e.StatusChangeNotification(ua.StatusChangeNotification{Status: ua.StatusBadTimeout})
	}, ua.ServiceIDStatusChangeNotification)

	stopped := s.dispatch(ua.NotificationMessage{NotificationData: []ua.ExtensionObject{eo}})
	if !stopped {
		t.Fatal("dispatch did not report stop on a bad StatusChangeNotification")
	}
	if lostErr != ua.StatusBadTimeout {
		t.Fatalf("onStatusChange err: got %v, want StatusBadTimeout", lostErr)
	}
}

func TestQueueAndDrainAcks(t *testing.T) {
	s := newTestSubscription()

	if acks := s.drainAcks(); acks != nil {
		t.Fatalf("drainAcks on empty: got %v, want nil", acks)
	}

	s.queueAck(ua.SubscriptionAcknowledgement{SubscriptionID: 1, SequenceNumber: 10})
	s.queueAck(ua.SubscriptionAcknowledgement{SubscriptionID: 1, SequenceNumber: 11})

	acks := s.drainAcks()
	if len(acks) != 2 {
		t.Fatalf("drainAcks: got %d acks, want 2", len(acks))
	}
	if acks[0].SequenceNumber != 10 || acks[1].SequenceNumber != 11 {
		t.Fatalf("drainAcks order: got %v", acks)
	}

	if acks := s.drainAcks(); acks != nil {
		t.Fatalf("drainAcks after drain: got %v, want nil", acks)
	}
}

// TestQueueAckEvictsOldestWhenFull exercises spec.md §4.6's "bounded
// at N, oldest-first eviction" requirement: with the queue capped at
// 2, a third ack must push out the oldest rather than growing the
// queue unbounded.
func TestQueueAckEvictsOldestWhenFull(t *testing.T) {
	s := newTestSubscription()
	s.cfg = &Config{MaxPendingAcks: 2}

	s.queueAck(ua.SubscriptionAcknowledgement{SequenceNumber: 1})
	s.queueAck(ua.SubscriptionAcknowledgement{SequenceNumber: 2})
	s.queueAck(ua.SubscriptionAcknowledgement{SequenceNumber: 3})

	acks := s.drainAcks()
	if len(acks) != 2 {
		t.Fatalf("drainAcks: got %d acks, want 2", len(acks))
	}
	if acks[0].SequenceNumber != 2 || acks[1].SequenceNumber != 3 {
		t.Fatalf("drainAcks after eviction: got %v, want [2 3]", acks)
	}
}

func TestReportLostInvokesCallback(t *testing.T) {
	s := newTestSubscription()
	var got error
	s.onStatusChange = func(err error) { got = err }

	s.reportLost(ua.StatusBadTimeout)

	if got != ua.StatusBadTimeout {
		t.Fatalf("onStatusChange: got %v, want StatusBadTimeout", got)
	}
}

func TestReportLostNilCallbackDoesNotPanic(t *testing.T) {
	s := newTestSubscription()
	s.reportLost(ua.StatusBadTimeout)
}
