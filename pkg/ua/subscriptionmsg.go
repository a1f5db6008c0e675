package ua

// CreateSubscriptionRequest asks the server to create a new
// subscription with the requested publishing parameters; the server
// may revise any of them (spec.md §4.6).
type CreateSubscriptionRequest struct {
	RequestHeader                 RequestHeader
	RequestedPublishingInterval   float64
	RequestedLifetimeCount        uint32
	RequestedMaxKeepAliveCount    uint32
	MaxNotificationsPerPublish    uint32
	PublishingEnabled             bool
	Priority                      byte
}

func (d *Decoder) CreateSubscriptionRequest(field string) (CreateSubscriptionRequest, error) {
	var r CreateSubscriptionRequest
	var err error
	if r.RequestHeader, err = d.RequestHeader(field + ".RequestHeader"); err != nil {
		return r, err
	}
	if r.RequestedPublishingInterval, err = d.Float64(field + ".RequestedPublishingInterval"); err != nil {
		return r, err
	}
	if r.RequestedLifetimeCount, err = d.Uint32(field + ".RequestedLifetimeCount"); err != nil {
		return r, err
	}
	if r.RequestedMaxKeepAliveCount, err = d.Uint32(field + ".RequestedMaxKeepAliveCount"); err != nil {
		return r, err
	}
	if r.MaxNotificationsPerPublish, err = d.Uint32(field + ".MaxNotificationsPerPublish"); err != nil {
		return r, err
	}
	if r.PublishingEnabled, err = d.Bool(field + ".PublishingEnabled"); err != nil {
		return r, err
	}
	r.Priority, err = d.Byte(field + ".Priority")
	return r, err
}

func (e *Encoder) CreateSubscriptionRequest(r CreateSubscriptionRequest) {
	e.RequestHeader(r.RequestHeader)
	e.Float64(r.RequestedPublishingInterval)
	e.Uint32(r.RequestedLifetimeCount)
	e.Uint32(r.RequestedMaxKeepAliveCount)
	e.Uint32(r.MaxNotificationsPerPublish)
	e.Bool(r.PublishingEnabled)
	e.Byte(r.Priority)
}

// CreateSubscriptionResponse carries the server-assigned subscription
// id plus the revised (possibly clamped) publishing parameters.
type CreateSubscriptionResponse struct {
	ResponseHeader           ResponseHeader
	SubscriptionID           uint32
	RevisedPublishingInterval float64
	RevisedLifetimeCount     uint32
	RevisedMaxKeepAliveCount uint32
}

func (d *Decoder) CreateSubscriptionResponse(field string) (CreateSubscriptionResponse, error) {
	var r CreateSubscriptionResponse
	var err error
	if r.ResponseHeader, err = d.ResponseHeader(field + ".ResponseHeader"); err != nil {
		return r, err
	}
	if r.SubscriptionID, err = d.Uint32(field + ".SubscriptionId"); err != nil {
		return r, err
	}
	if r.RevisedPublishingInterval, err = d.Float64(field + ".RevisedPublishingInterval"); err != nil {
		return r, err
	}
	if r.RevisedLifetimeCount, err = d.Uint32(field + ".RevisedLifetimeCount"); err != nil {
		return r, err
	}
	r.RevisedMaxKeepAliveCount, err = d.Uint32(field + ".RevisedMaxKeepAliveCount")
	return r, err
}

func (e *Encoder) CreateSubscriptionResponse(r CreateSubscriptionResponse) {
	e.ResponseHeader(r.ResponseHeader)
	e.Uint32(r.SubscriptionID)
	e.Float64(r.RevisedPublishingInterval)
	e.Uint32(r.RevisedLifetimeCount)
	e.Uint32(r.RevisedMaxKeepAliveCount)
}

// ModifySubscriptionRequest changes a subscription's publishing
// parameters after creation.
type ModifySubscriptionRequest struct {
	RequestHeader               RequestHeader
	SubscriptionID              uint32
	RequestedPublishingInterval float64
	RequestedLifetimeCount      uint32
	RequestedMaxKeepAliveCount  uint32
	MaxNotificationsPerPublish  uint32
	Priority                    byte
}

func (d *Decoder) ModifySubscriptionRequest(field string) (ModifySubscriptionRequest, error) {
	var r ModifySubscriptionRequest
	var err error
	if r.RequestHeader, err = d.RequestHeader(field + ".RequestHeader"); err != nil {
		return r, err
	}
	if r.SubscriptionID, err = d.Uint32(field + ".SubscriptionId"); err != nil {
		return r, err
	}
	if r.RequestedPublishingInterval, err = d.Float64(field + ".RequestedPublishingInterval"); err != nil {
		return r, err
	}
	if r.RequestedLifetimeCount, err = d.Uint32(field + ".RequestedLifetimeCount"); err != nil {
		return r, err
	}
	if r.RequestedMaxKeepAliveCount, err = d.Uint32(field + ".RequestedMaxKeepAliveCount"); err != nil {
		return r, err
	}
	if r.MaxNotificationsPerPublish, err = d.Uint32(field + ".MaxNotificationsPerPublish"); err != nil {
		return r, err
	}
	r.Priority, err = d.Byte(field + ".Priority")
	return r, err
}

func (e *Encoder) ModifySubscriptionRequest(r ModifySubscriptionRequest) {
	e.RequestHeader(r.RequestHeader)
	e.Uint32(r.SubscriptionID)
	e.Float64(r.RequestedPublishingInterval)
	e.Uint32(r.RequestedLifetimeCount)
	e.Uint32(r.RequestedMaxKeepAliveCount)
	e.Uint32(r.MaxNotificationsPerPublish)
	e.Byte(r.Priority)
}

// ModifySubscriptionResponse carries the revised publishing
// parameters, mirroring CreateSubscriptionResponse.
type ModifySubscriptionResponse struct {
	ResponseHeader            ResponseHeader
	RevisedPublishingInterval float64
	RevisedLifetimeCount      uint32
	RevisedMaxKeepAliveCount  uint32
}

func (d *Decoder) ModifySubscriptionResponse(field string) (ModifySubscriptionResponse, error) {
	var r ModifySubscriptionResponse
	var err error
	if r.ResponseHeader, err = d.ResponseHeader(field + ".ResponseHeader"); err != nil {
		return r, err
	}
	if r.RevisedPublishingInterval, err = d.Float64(field + ".RevisedPublishingInterval"); err != nil {
		return r, err
	}
	if r.RevisedLifetimeCount, err = d.Uint32(field + ".RevisedLifetimeCount"); err != nil {
		return r, err
	}
	r.RevisedMaxKeepAliveCount, err = d.Uint32(field + ".RevisedMaxKeepAliveCount")
	return r, err
}

func (e *Encoder) ModifySubscriptionResponse(r ModifySubscriptionResponse) {
	e.ResponseHeader(r.ResponseHeader)
	e.Float64(r.RevisedPublishingInterval)
	e.Uint32(r.RevisedLifetimeCount)
	e.Uint32(r.RevisedMaxKeepAliveCount)
}

// DeleteSubscriptionsRequest deletes one or more subscriptions;
// deletion is best-effort from the session's perspective on Close,
// per spec.md §4.6.
type DeleteSubscriptionsRequest struct {
	RequestHeader   RequestHeader
	SubscriptionIDs []uint32
}

func (d *Decoder) DeleteSubscriptionsRequest(field string) (DeleteSubscriptionsRequest, error) {
	var r DeleteSubscriptionsRequest
	var err error
	if r.RequestHeader, err = d.RequestHeader(field + ".RequestHeader"); err != nil {
		return r, err
	}
	r.SubscriptionIDs, err = DecodeArray(d, field+".SubscriptionIds", d.Uint32)
	return r, err
}

func (e *Encoder) DeleteSubscriptionsRequest(r DeleteSubscriptionsRequest) {
	e.RequestHeader(r.RequestHeader)
	EncodeArray(e, r.SubscriptionIDs, e.Uint32)
}

// DeleteSubscriptionsResponse returns one StatusCode per requested
// subscription id.
type DeleteSubscriptionsResponse struct {
	ResponseHeader  ResponseHeader
	Results         []StatusCode
	DiagnosticInfos []DiagnosticInfo
}

func (d *Decoder) DeleteSubscriptionsResponse(field string) (DeleteSubscriptionsResponse, error) {
	var r DeleteSubscriptionsResponse
	var err error
	if r.ResponseHeader, err = d.ResponseHeader(field + ".ResponseHeader"); err != nil {
		return r, err
	}
	if r.Results, err = DecodeArray(d, field+".Results", d.StatusCode); err != nil {
		return r, err
	}
	r.DiagnosticInfos, err = DecodeArray(d, field+".DiagnosticInfos", d.DiagnosticInfo)
	return r, err
}

func (e *Encoder) DeleteSubscriptionsResponse(r DeleteSubscriptionsResponse) {
	e.ResponseHeader(r.ResponseHeader)
	EncodeArray(e, r.Results, e.StatusCode)
	EncodeArray(e, r.DiagnosticInfos, e.DiagnosticInfo)
}

// MonitoringMode controls whether a MonitoredItem samples, reports,
// or is disabled.
type MonitoringMode int32

const (
	MonitoringModeDisabled MonitoringMode = 0
	MonitoringModeSampling MonitoringMode = 1
	MonitoringModeReporting MonitoringMode = 2
)

// MonitoringParameters configures sampling and queueing for one
// monitored item. ClientHandle is the key the publish loop uses to
// route incoming notifications back to this item (spec.md §4.6).
type MonitoringParameters struct {
	ClientHandle     uint32
	SamplingInterval float64
	Filter           ExtensionObject
	QueueSize        uint32
	DiscardOldest    bool
}

func (d *Decoder) MonitoringParameters(field string) (MonitoringParameters, error) {
	var p MonitoringParameters
	var err error
	if p.ClientHandle, err = d.Uint32(field + ".ClientHandle"); err != nil {
		return p, err
	}
	if p.SamplingInterval, err = d.Float64(field + ".SamplingInterval"); err != nil {
		return p, err
	}
	if p.Filter, err = d.ExtensionObject(field + ".Filter"); err != nil {
		return p, err
	}
	if p.QueueSize, err = d.Uint32(field + ".QueueSize"); err != nil {
		return p, err
	}
	p.DiscardOldest, err = d.Bool(field + ".DiscardOldest")
	return p, err
}

func (e *Encoder) MonitoringParameters(p MonitoringParameters) {
	e.Uint32(p.ClientHandle)
	e.Float64(p.SamplingInterval)
	e.ExtensionObject(p.Filter)
	e.Uint32(p.QueueSize)
	e.Bool(p.DiscardOldest)
}

// MonitoredItemCreateRequest requests monitoring of one node
// attribute.
type MonitoredItemCreateRequest struct {
	ItemToMonitor   ReadValueId
	MonitoringMode  MonitoringMode
	RequestedParameters MonitoringParameters
}

func (d *Decoder) MonitoredItemCreateRequest(field string) (MonitoredItemCreateRequest, error) {
	var r MonitoredItemCreateRequest
	var err error
	if r.ItemToMonitor, err = d.ReadValueId(field + ".ItemToMonitor"); err != nil {
		return r, err
	}
	m, err := d.Int32(field + ".MonitoringMode")
	if err != nil {
		return r, err
	}
	r.MonitoringMode = MonitoringMode(m)
	r.RequestedParameters, err = d.MonitoringParameters(field + ".RequestedParameters")
	return r, err
}

func (e *Encoder) MonitoredItemCreateRequest(r MonitoredItemCreateRequest) {
	e.ReadValueId(r.ItemToMonitor)
	e.Int32(int32(r.MonitoringMode))
	e.MonitoringParameters(r.RequestedParameters)
}

// MonitoredItemCreateResult is one MonitoredItemCreateRequest's
// outcome, carrying the server-assigned MonitoredItemId used by
// DeleteMonitoredItems.
type MonitoredItemCreateResult struct {
	StatusCode                  StatusCode
	MonitoredItemID              uint32
	RevisedSamplingInterval      float64
	RevisedQueueSize             uint32
	FilterResult                ExtensionObject
}

func (d *Decoder) MonitoredItemCreateResult(field string) (MonitoredItemCreateResult, error) {
	var r MonitoredItemCreateResult
	var err error
	if r.StatusCode, err = d.StatusCode(field + ".StatusCode"); err != nil {
		return r, err
	}
	if r.MonitoredItemID, err = d.Uint32(field + ".MonitoredItemId"); err != nil {
		return r, err
	}
	if r.RevisedSamplingInterval, err = d.Float64(field + ".RevisedSamplingInterval"); err != nil {
		return r, err
	}
	if r.RevisedQueueSize, err = d.Uint32(field + ".RevisedQueueSize"); err != nil {
		return r, err
	}
	r.FilterResult, err = d.ExtensionObject(field + ".FilterResult")
	return r, err
}

func (e *Encoder) MonitoredItemCreateResult(r MonitoredItemCreateResult) {
	e.StatusCode(r.StatusCode)
	e.Uint32(r.MonitoredItemID)
	e.Float64(r.RevisedSamplingInterval)
	e.Uint32(r.RevisedQueueSize)
	e.ExtensionObject(r.FilterResult)
}

// CreateMonitoredItemsRequest adds one or more monitored items to an
// existing subscription.
type CreateMonitoredItemsRequest struct {
	RequestHeader      RequestHeader
	SubscriptionID     uint32
	TimestampsToReturn TimestampsToReturn
	ItemsToCreate      []MonitoredItemCreateRequest
}

func (d *Decoder) CreateMonitoredItemsRequest(field string) (CreateMonitoredItemsRequest, error) {
	var r CreateMonitoredItemsRequest
	var err error
	if r.RequestHeader, err = d.RequestHeader(field + ".RequestHeader"); err != nil {
		return r, err
	}
	if r.SubscriptionID, err = d.Uint32(field + ".SubscriptionId"); err != nil {
		return r, err
	}
	t, err := d.Int32(field + ".TimestampsToReturn")
	if err != nil {
		return r, err
	}
	r.TimestampsToReturn = TimestampsToReturn(t)
	r.ItemsToCreate, err = DecodeArray(d, field+".ItemsToCreate", d.MonitoredItemCreateRequest)
	return r, err
}

func (e *Encoder) CreateMonitoredItemsRequest(r CreateMonitoredItemsRequest) {
	e.RequestHeader(r.RequestHeader)
	e.Uint32(r.SubscriptionID)
	e.Int32(int32(r.TimestampsToReturn))
	EncodeArray(e, r.ItemsToCreate, e.MonitoredItemCreateRequest)
}

// CreateMonitoredItemsResponse returns one MonitoredItemCreateResult
// per requested item, in order.
type CreateMonitoredItemsResponse struct {
	ResponseHeader  ResponseHeader
	Results         []MonitoredItemCreateResult
	DiagnosticInfos []DiagnosticInfo
}

func (d *Decoder) CreateMonitoredItemsResponse(field string) (CreateMonitoredItemsResponse, error) {
	var r CreateMonitoredItemsResponse
	var err error
	if r.ResponseHeader, err = d.ResponseHeader(field + ".ResponseHeader"); err != nil {
		return r, err
	}
	if r.Results, err = DecodeArray(d, field+".Results", d.MonitoredItemCreateResult); err != nil {
		return r, err
	}
	r.DiagnosticInfos, err = DecodeArray(d, field+".DiagnosticInfos", d.DiagnosticInfo)
	return r, err
}

func (e *Encoder) CreateMonitoredItemsResponse(r CreateMonitoredItemsResponse) {
	e.ResponseHeader(r.ResponseHeader)
	EncodeArray(e, r.Results, e.MonitoredItemCreateResult)
	EncodeArray(e, r.DiagnosticInfos, e.DiagnosticInfo)
}

// DeleteMonitoredItemsRequest removes monitored items by the
// server-assigned id returned from CreateMonitoredItems.
type DeleteMonitoredItemsRequest struct {
	RequestHeader   RequestHeader
	SubscriptionID  uint32
	MonitoredItemIDs []uint32
}

func (d *Decoder) DeleteMonitoredItemsRequest(field string) (DeleteMonitoredItemsRequest, error) {
	var r DeleteMonitoredItemsRequest
	var err error
	if r.RequestHeader, err = d.RequestHeader(field + ".RequestHeader"); err != nil {
		return r, err
	}
	if r.SubscriptionID, err = d.Uint32(field + ".SubscriptionId"); err != nil {
		return r, err
	}
	r.MonitoredItemIDs, err = DecodeArray(d, field+".MonitoredItemIds", d.Uint32)
	return r, err
}

func (e *Encoder) DeleteMonitoredItemsRequest(r DeleteMonitoredItemsRequest) {
	e.RequestHeader(r.RequestHeader)
	e.Uint32(r.SubscriptionID)
	EncodeArray(e, r.MonitoredItemIDs, e.Uint32)
}

// DeleteMonitoredItemsResponse returns one StatusCode per requested
// item id.
type DeleteMonitoredItemsResponse struct {
	ResponseHeader  ResponseHeader
	Results         []StatusCode
	DiagnosticInfos []DiagnosticInfo
}

func (d *Decoder) DeleteMonitoredItemsResponse(field string) (DeleteMonitoredItemsResponse, error) {
	var r DeleteMonitoredItemsResponse
	var err error
	if r.ResponseHeader, err = d.ResponseHeader(field + ".ResponseHeader"); err != nil {
		return r, err
	}
	if r.Results, err = DecodeArray(d, field+".Results", d.StatusCode); err != nil {
		return r, err
	}
	r.DiagnosticInfos, err = DecodeArray(d, field+".DiagnosticInfos", d.DiagnosticInfo)
	return r, err
}

func (e *Encoder) DeleteMonitoredItemsResponse(r DeleteMonitoredItemsResponse) {
	e.ResponseHeader(r.ResponseHeader)
	EncodeArray(e, r.Results, e.StatusCode)
	EncodeArray(e, r.DiagnosticInfos, e.DiagnosticInfo)
}

// SubscriptionAcknowledgement acknowledges one delivered
// NotificationMessage so the server can release its resend buffer
// (spec.md §4.6).
type SubscriptionAcknowledgement struct {
	SubscriptionID uint32
	SequenceNumber uint32
}

func (d *Decoder) SubscriptionAcknowledgement(field string) (SubscriptionAcknowledgement, error) {
	var a SubscriptionAcknowledgement
	var err error
	if a.SubscriptionID, err = d.Uint32(field + ".SubscriptionId"); err != nil {
		return a, err
	}
	a.SequenceNumber, err = d.Uint32(field + ".SequenceNumber")
	return a, err
}

func (e *Encoder) SubscriptionAcknowledgement(a SubscriptionAcknowledgement) {
	e.Uint32(a.SubscriptionID)
	e.Uint32(a.SequenceNumber)
}

// PublishRequest carries the client's pending acks; its response
// arrives asynchronously associated to a subscription by the server,
// making publish() the natural suspension point for subscription
// delivery (spec.md §5).
type PublishRequest struct {
	RequestHeader                RequestHeader
	SubscriptionAcknowledgements []SubscriptionAcknowledgement
}

func (d *Decoder) PublishRequest(field string) (PublishRequest, error) {
	var r PublishRequest
	var err error
	if r.RequestHeader, err = d.RequestHeader(field + ".RequestHeader"); err != nil {
		return r, err
	}
	r.SubscriptionAcknowledgements, err = DecodeArray(d, field+".SubscriptionAcknowledgements", d.SubscriptionAcknowledgement)
	return r, err
}

func (e *Encoder) PublishRequest(r PublishRequest) {
	e.RequestHeader(r.RequestHeader)
	EncodeArray(e, r.SubscriptionAcknowledgements, e.SubscriptionAcknowledgement)
}

// NotificationMessage is the payload of a PublishResponse: zero
// notification-data items means a keep-alive (spec.md §4.6).
type NotificationMessage struct {
	SequenceNumber   uint32
	PublishTime      DateTime
	NotificationData []ExtensionObject
}

func (d *Decoder) NotificationMessage(field string) (NotificationMessage, error) {
	var n NotificationMessage
	var err error
	if n.SequenceNumber, err = d.Uint32(field + ".SequenceNumber"); err != nil {
		return n, err
	}
	if n.PublishTime, err = d.DateTime(field + ".PublishTime"); err != nil {
		return n, err
	}
	n.NotificationData, err = DecodeArray(d, field+".NotificationData", d.ExtensionObject)
	return n, err
}

func (e *Encoder) NotificationMessage(n NotificationMessage) {
	e.Uint32(n.SequenceNumber)
	e.DateTime(n.PublishTime)
	EncodeArray(e, n.NotificationData, e.ExtensionObject)
}

// MonitoredItemNotification is one (clientHandle, value) pair within
// a DataChangeNotification.
type MonitoredItemNotification struct {
	ClientHandle uint32
	Value        DataValue
}

func (d *Decoder) MonitoredItemNotification(field string) (MonitoredItemNotification, error) {
	var m MonitoredItemNotification
	var err error
	if m.ClientHandle, err = d.Uint32(field + ".ClientHandle"); err != nil {
		return m, err
	}
	m.Value, err = d.DataValue(field + ".Value")
	return m, err
}

func (e *Encoder) MonitoredItemNotification(m MonitoredItemNotification) {
	e.Uint32(m.ClientHandle)
	e.DataValue(m.Value)
}

// DataChangeNotification is the decoded body of a NotificationData
// ExtensionObject whose typeId identifies a data-change report
// (spec.md §4.6 step 3).
type DataChangeNotification struct {
	MonitoredItems  []MonitoredItemNotification
	DiagnosticInfos []DiagnosticInfo
}

func (d *Decoder) DataChangeNotification(field string) (DataChangeNotification, error) {
	var n DataChangeNotification
	var err error
	if n.MonitoredItems, err = DecodeArray(d, field+".MonitoredItems", d.MonitoredItemNotification); err != nil {
		return n, err
	}
	n.DiagnosticInfos, err = DecodeArray(d, field+".DiagnosticInfos", d.DiagnosticInfo)
	return n, err
}

func (e *Encoder) DataChangeNotification(n DataChangeNotification) {
	EncodeArray(e, n.MonitoredItems, e.MonitoredItemNotification)
	EncodeArray(e, n.DiagnosticInfos, e.DiagnosticInfo)
}

// EventFieldList is one event occurrence's selected field values,
// keyed to a MonitoredItem by ClientHandle.
type EventFieldList struct {
	ClientHandle uint32
	EventFields  []Variant
}

func (d *Decoder) EventFieldList(field string) (EventFieldList, error) {
	var l EventFieldList
	var err error
	if l.ClientHandle, err = d.Uint32(field + ".ClientHandle"); err != nil {
		return l, err
	}
	l.EventFields, err = DecodeArray(d, field+".EventFields", d.Variant)
	return l, err
}

func (e *Encoder) EventFieldList(l EventFieldList) {
	e.Uint32(l.ClientHandle)
	EncodeArray(e, l.EventFields, e.Variant)
}

// EventNotificationList is the decoded body of a NotificationData
// ExtensionObject whose typeId identifies an event report.
type EventNotificationList struct {
	Events []EventFieldList
}

func (d *Decoder) EventNotificationList(field string) (EventNotificationList, error) {
	evs, err := DecodeArray(d, field+".Events", d.EventFieldList)
	return EventNotificationList{Events: evs}, err
}

func (e *Encoder) EventNotificationList(l EventNotificationList) {
	EncodeArray(e, l.Events, e.EventFieldList)
}

// StatusChangeNotification reports a subscription-level status
// change (e.g. StatusBadTimeout on server-side subscription loss).
type StatusChangeNotification struct {
	Status           StatusCode
	DiagnosticInfo   DiagnosticInfo
}

func (d *Decoder) StatusChangeNotification(field string) (StatusChangeNotification, error) {
	var s StatusChangeNotification
	var err error
	if s.Status, err = d.StatusCode(field + ".Status"); err != nil {
		return s, err
	}
	s.DiagnosticInfo, err = d.DiagnosticInfo(field + ".DiagnosticInfo")
	return s, err
}

func (e *Encoder) StatusChangeNotification(s StatusChangeNotification) {
	e.StatusCode(s.Status)
	e.DiagnosticInfo(s.DiagnosticInfo)
}

// PublishResponse delivers a NotificationMessage for one subscription
// plus the set of subscriptions that still have notifications
// pending (so the client knows whether to publish again immediately).
type PublishResponse struct {
	ResponseHeader           ResponseHeader
	SubscriptionID           uint32
	AvailableSequenceNumbers []uint32
	MoreNotifications        bool
	NotificationMessage      NotificationMessage
	Results                  []StatusCode
	DiagnosticInfos          []DiagnosticInfo
}

func (d *Decoder) PublishResponse(field string) (PublishResponse, error) {
	var r PublishResponse
	var err error
	if r.ResponseHeader, err = d.ResponseHeader(field + ".ResponseHeader"); err != nil {
		return r, err
	}
	if r.SubscriptionID, err = d.Uint32(field + ".SubscriptionId"); err != nil {
		return r, err
	}
	if r.AvailableSequenceNumbers, err = DecodeArray(d, field+".AvailableSequenceNumbers", d.Uint32); err != nil {
		return r, err
	}
	if r.MoreNotifications, err = d.Bool(field + ".MoreNotifications"); err != nil {
		return r, err
	}
	if r.NotificationMessage, err = d.NotificationMessage(field + ".NotificationMessage"); err != nil {
		return r, err
	}
	if r.Results, err = DecodeArray(d, field+".Results", d.StatusCode); err != nil {
		return r, err
	}
	r.DiagnosticInfos, err = DecodeArray(d, field+".DiagnosticInfos", d.DiagnosticInfo)
	return r, err
}

func (e *Encoder) PublishResponse(r PublishResponse) {
	e.ResponseHeader(r.ResponseHeader)
	e.Uint32(r.SubscriptionID)
	EncodeArray(e, r.AvailableSequenceNumbers, e.Uint32)
	e.Bool(r.MoreNotifications)
	e.NotificationMessage(r.NotificationMessage)
	EncodeArray(e, r.Results, e.StatusCode)
	EncodeArray(e, r.DiagnosticInfos, e.DiagnosticInfo)
}

// RepublishRequest asks the server to resend a NotificationMessage
// the client never received (spec.md §9 supplement).
type RepublishRequest struct {
	RequestHeader  RequestHeader
	SubscriptionID uint32
	RetransmitSequenceNumber uint32
}

func (d *Decoder) RepublishRequest(field string) (RepublishRequest, error) {
	var r RepublishRequest
	var err error
	if r.RequestHeader, err = d.RequestHeader(field + ".RequestHeader"); err != nil {
		return r, err
	}
	if r.SubscriptionID, err = d.Uint32(field + ".SubscriptionId"); err != nil {
		return r, err
	}
	r.RetransmitSequenceNumber, err = d.Uint32(field + ".RetransmitSequenceNumber")
	return r, err
}

func (e *Encoder) RepublishRequest(r RepublishRequest) {
	e.RequestHeader(r.RequestHeader)
	e.Uint32(r.SubscriptionID)
	e.Uint32(r.RetransmitSequenceNumber)
}

// RepublishResponse carries the resent NotificationMessage.
type RepublishResponse struct {
	ResponseHeader       ResponseHeader
	NotificationMessage  NotificationMessage
}

func (d *Decoder) RepublishResponse(field string) (RepublishResponse, error) {
	var r RepublishResponse
	var err error
	if r.ResponseHeader, err = d.ResponseHeader(field + ".ResponseHeader"); err != nil {
		return r, err
	}
	r.NotificationMessage, err = d.NotificationMessage(field + ".NotificationMessage")
	return r, err
}

func (e *Encoder) RepublishResponse(r RepublishResponse) {
	e.ResponseHeader(r.ResponseHeader)
	e.NotificationMessage(r.NotificationMessage)
}
