package subscription

import "github.com/backkem/go-opcua/pkg/ua"

// DataChangeHandler receives one DataChange notification for the
// MonitoredItem it was registered against.
type DataChangeHandler func(ua.MonitoredItemNotification)

// EventHandler receives one Event occurrence for the MonitoredItem it
// was registered against.
type EventHandler func(ua.EventFieldList)

// MonitoredItemRequest describes one item to add via AddMonitoredItems.
// Exactly one of DataChange or Event should be set, matching whatever
// AttributeID/Filter the caller configured in Parameters.
type MonitoredItemRequest struct {
	NodeID        ua.NodeId
	AttributeID   ua.AttributeID
	IndexRange    string
	Mode          ua.MonitoringMode
	Parameters    ua.MonitoringParameters
	DataChange    DataChangeHandler
	Event         EventHandler
}

// monitoredItem is the subscription's bookkeeping for one registered
// item, keyed by ClientHandle in Subscription.items.
type monitoredItem struct {
	clientHandle    uint32
	monitoredItemID uint32
	dataChange      DataChangeHandler
	event           EventHandler
}
