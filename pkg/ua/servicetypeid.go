package ua

// Binary encoding numeric identifiers for the service messages this
// client speaks, taken from the standard OPC UA namespace-0 NodeIds
// (Part 6 Opc.Ua.NodeIds). These are the ids that travel as the
// ExtensionObject TypeId wrapping every MSG body (spec.md §4.4
// service dispatch).
const (
	ServiceIDFindServersRequest  uint32 = 422
	ServiceIDFindServersResponse uint32 = 425
	ServiceIDGetEndpointsRequest  uint32 = 428
	ServiceIDGetEndpointsResponse uint32 = 431

	ServiceIDOpenSecureChannelRequest  uint32 = 446
	ServiceIDOpenSecureChannelResponse uint32 = 449
	ServiceIDCloseSecureChannelRequest uint32 = 452
	ServiceIDCloseSecureChannelResponse uint32 = 455

	ServiceIDCreateSessionRequest  uint32 = 461
	ServiceIDCreateSessionResponse uint32 = 464
	ServiceIDActivateSessionRequest  uint32 = 467
	ServiceIDActivateSessionResponse uint32 = 470
	ServiceIDCloseSessionRequest  uint32 = 473
	ServiceIDCloseSessionResponse uint32 = 476

	ServiceIDBrowseRequest  uint32 = 527
	ServiceIDBrowseResponse uint32 = 530
	ServiceIDBrowseNextRequest  uint32 = 533
	ServiceIDBrowseNextResponse uint32 = 536
	ServiceIDTranslateBrowsePathsToNodeIdsRequest  uint32 = 554
	ServiceIDTranslateBrowsePathsToNodeIdsResponse uint32 = 557
	ServiceIDRegisterNodesRequest  uint32 = 560
	ServiceIDRegisterNodesResponse uint32 = 563
	ServiceIDUnregisterNodesRequest  uint32 = 566
	ServiceIDUnregisterNodesResponse uint32 = 569

	ServiceIDHistoryReadRequest  uint32 = 664
	ServiceIDHistoryReadResponse uint32 = 667

	ServiceIDReadRequest  uint32 = 631
	ServiceIDReadResponse uint32 = 634
	ServiceIDWriteRequest  uint32 = 673
	ServiceIDWriteResponse uint32 = 676

	ServiceIDCallRequest  uint32 = 712
	ServiceIDCallResponse uint32 = 715

	ServiceIDCreateMonitoredItemsRequest  uint32 = 751
	ServiceIDCreateMonitoredItemsResponse uint32 = 754
	ServiceIDDeleteMonitoredItemsRequest  uint32 = 781
	ServiceIDDeleteMonitoredItemsResponse uint32 = 784

	ServiceIDCreateSubscriptionRequest  uint32 = 787
	ServiceIDCreateSubscriptionResponse uint32 = 790
	ServiceIDModifySubscriptionRequest  uint32 = 793
	ServiceIDModifySubscriptionResponse uint32 = 796
	ServiceIDDeleteSubscriptionsRequest  uint32 = 845
	ServiceIDDeleteSubscriptionsResponse uint32 = 848

	ServiceIDPublishRequest  uint32 = 826
	ServiceIDPublishResponse uint32 = 829
	ServiceIDRepublishRequest  uint32 = 832
	ServiceIDRepublishResponse uint32 = 835

	ServiceIDDataChangeNotification uint32 = 811
	ServiceIDEventNotificationList  uint32 = 916
	ServiceIDStatusChangeNotification uint32 = 819

	// Identity token TypeIds, for the ExtensionObject wrapping
	// ActivateSessionRequest.UserIdentityToken (spec.md §4.5).
	ServiceIDAnonymousIdentityTokenBinary uint32 = 321
	ServiceIDUserNameIdentityTokenBinary  uint32 = 324
	ServiceIDX509IdentityTokenBinary      uint32 = 327

	// ServiceIDReadRawModifiedDetailsBinary is the TypeId for the
	// ExtensionObject wrapping HistoryReadRequest.HistoryReadDetails in
	// the raw-read case this client implements.
	ServiceIDReadRawModifiedDetailsBinary uint32 = 626
)

// ServiceDecoder decodes a service message body given its numeric
// type id; servers always address these in namespace 0, so this
// table keys directly on the Numeric identifier rather than the full
// NodeId.
var serviceDecoders = map[uint32]func(*Decoder, string) (interface{}, error){
	ServiceIDOpenSecureChannelRequest:  func(d *Decoder, f string) (interface{}, error) { return d.OpenSecureChannelRequest(f) },
	ServiceIDOpenSecureChannelResponse: func(d *Decoder, f string) (interface{}, error) { return d.OpenSecureChannelResponse(f) },
	ServiceIDCloseSecureChannelRequest: func(d *Decoder, f string) (interface{}, error) { return d.CloseSecureChannelRequest(f) },

	ServiceIDCreateSessionRequest:    func(d *Decoder, f string) (interface{}, error) { return d.CreateSessionRequest(f) },
	ServiceIDCreateSessionResponse:   func(d *Decoder, f string) (interface{}, error) { return d.CreateSessionResponse(f) },
	ServiceIDActivateSessionRequest:  func(d *Decoder, f string) (interface{}, error) { return d.ActivateSessionRequest(f) },
	ServiceIDActivateSessionResponse: func(d *Decoder, f string) (interface{}, error) { return d.ActivateSessionResponse(f) },
	ServiceIDCloseSessionRequest:     func(d *Decoder, f string) (interface{}, error) { return d.CloseSessionRequest(f) },
	ServiceIDCloseSessionResponse:    func(d *Decoder, f string) (interface{}, error) { return d.CloseSessionResponse(f) },

	ServiceIDReadRequest:  func(d *Decoder, f string) (interface{}, error) { return d.ReadRequest(f) },
	ServiceIDReadResponse: func(d *Decoder, f string) (interface{}, error) { return d.ReadResponse(f) },
	ServiceIDWriteRequest:  func(d *Decoder, f string) (interface{}, error) { return d.WriteRequest(f) },
	ServiceIDWriteResponse: func(d *Decoder, f string) (interface{}, error) { return d.WriteResponse(f) },

	ServiceIDBrowseRequest:      func(d *Decoder, f string) (interface{}, error) { return d.BrowseRequest(f) },
	ServiceIDBrowseResponse:     func(d *Decoder, f string) (interface{}, error) { return d.BrowseResponse(f) },
	ServiceIDBrowseNextRequest:  func(d *Decoder, f string) (interface{}, error) { return d.BrowseNextRequest(f) },
	ServiceIDBrowseNextResponse: func(d *Decoder, f string) (interface{}, error) { return d.BrowseNextResponse(f) },
	ServiceIDTranslateBrowsePathsToNodeIdsRequest:  func(d *Decoder, f string) (interface{}, error) { return d.TranslateBrowsePathsToNodeIdsRequest(f) },
	ServiceIDTranslateBrowsePathsToNodeIdsResponse: func(d *Decoder, f string) (interface{}, error) { return d.TranslateBrowsePathsToNodeIdsResponse(f) },
	ServiceIDRegisterNodesRequest:    func(d *Decoder, f string) (interface{}, error) { return d.RegisterNodesRequest(f) },
	ServiceIDRegisterNodesResponse:   func(d *Decoder, f string) (interface{}, error) { return d.RegisterNodesResponse(f) },
	ServiceIDUnregisterNodesRequest:  func(d *Decoder, f string) (interface{}, error) { return d.UnregisterNodesRequest(f) },
	ServiceIDUnregisterNodesResponse: func(d *Decoder, f string) (interface{}, error) { return d.UnregisterNodesResponse(f) },

	ServiceIDCallRequest:  func(d *Decoder, f string) (interface{}, error) { return d.CallRequest(f) },
	ServiceIDCallResponse: func(d *Decoder, f string) (interface{}, error) { return d.CallResponse(f) },

	ServiceIDHistoryReadRequest:  func(d *Decoder, f string) (interface{}, error) { return d.HistoryReadRequest(f) },
	ServiceIDHistoryReadResponse: func(d *Decoder, f string) (interface{}, error) { return d.HistoryReadResponse(f) },

	ServiceIDCreateSubscriptionRequest:    func(d *Decoder, f string) (interface{}, error) { return d.CreateSubscriptionRequest(f) },
	ServiceIDCreateSubscriptionResponse:   func(d *Decoder, f string) (interface{}, error) { return d.CreateSubscriptionResponse(f) },
	ServiceIDModifySubscriptionRequest:    func(d *Decoder, f string) (interface{}, error) { return d.ModifySubscriptionRequest(f) },
	ServiceIDModifySubscriptionResponse:   func(d *Decoder, f string) (interface{}, error) { return d.ModifySubscriptionResponse(f) },
	ServiceIDDeleteSubscriptionsRequest:   func(d *Decoder, f string) (interface{}, error) { return d.DeleteSubscriptionsRequest(f) },
	ServiceIDDeleteSubscriptionsResponse:  func(d *Decoder, f string) (interface{}, error) { return d.DeleteSubscriptionsResponse(f) },
	ServiceIDCreateMonitoredItemsRequest:  func(d *Decoder, f string) (interface{}, error) { return d.CreateMonitoredItemsRequest(f) },
	ServiceIDCreateMonitoredItemsResponse: func(d *Decoder, f string) (interface{}, error) { return d.CreateMonitoredItemsResponse(f) },
	ServiceIDDeleteMonitoredItemsRequest:  func(d *Decoder, f string) (interface{}, error) { return d.DeleteMonitoredItemsRequest(f) },
	ServiceIDDeleteMonitoredItemsResponse: func(d *Decoder, f string) (interface{}, error) { return d.DeleteMonitoredItemsResponse(f) },
	ServiceIDPublishRequest:   func(d *Decoder, f string) (interface{}, error) { return d.PublishRequest(f) },
	ServiceIDPublishResponse:  func(d *Decoder, f string) (interface{}, error) { return d.PublishResponse(f) },
	ServiceIDRepublishRequest:  func(d *Decoder, f string) (interface{}, error) { return d.RepublishRequest(f) },
	ServiceIDRepublishResponse: func(d *Decoder, f string) (interface{}, error) { return d.RepublishResponse(f) },

	ServiceIDDataChangeNotification:   func(d *Decoder, f string) (interface{}, error) { return d.DataChangeNotification(f) },
	ServiceIDEventNotificationList:    func(d *Decoder, f string) (interface{}, error) { return d.EventNotificationList(f) },
	ServiceIDStatusChangeNotification: func(d *Decoder, f string) (interface{}, error) { return d.StatusChangeNotification(f) },

	ServiceIDFindServersRequest:   func(d *Decoder, f string) (interface{}, error) { return d.FindServersRequest(f) },
	ServiceIDFindServersResponse:  func(d *Decoder, f string) (interface{}, error) { return d.FindServersResponse(f) },
	ServiceIDGetEndpointsRequest:  func(d *Decoder, f string) (interface{}, error) { return d.GetEndpointsRequest(f) },
	ServiceIDGetEndpointsResponse: func(d *Decoder, f string) (interface{}, error) { return d.GetEndpointsResponse(f) },
}

// DecodeService decodes an ExtensionObject-wrapped service message by
// its binary TypeId, dispatching through serviceDecoders. Unknown
// type ids return ErrUnknownType so the caller (normally the secure
// channel's read path) can fall back to dynamic structure decode.
func DecodeService(eo ExtensionObject) (interface{}, error) {
	if eo.TypeID.Namespace != 0 || eo.TypeID.Type != NodeIDTypeNumeric {
		return nil, decodeErr("ServiceBody.TypeId", 0, ErrUnknownType)
	}
	fn, ok := serviceDecoders[eo.TypeID.Numeric]
	if !ok {
		return nil, decodeErr("ServiceBody.TypeId", 0, ErrUnknownType)
	}
	return fn(NewDecoder(eo.Body), "ServiceBody")
}

// DecodeServiceBody decodes a top-level OPC UA Secure Conversation
// message body (Part 6 §4.4): a binary TypeId NodeId directly
// followed by the service's own fields, with no intervening
// ExtensionObject encoding byte or length-prefixed body. This is what
// a secure channel decodes after sign verification/decryption, not the
// nested ExtensionObject form DecodeService handles.
func DecodeServiceBody(d *Decoder) (interface{}, error) {
	typeID, err := d.NodeId("ServiceBody.TypeId")
	if err != nil {
		return nil, err
	}
	if typeID.Namespace != 0 || typeID.Type != NodeIDTypeNumeric {
		return nil, decodeErr("ServiceBody.TypeId", 0, ErrUnknownType)
	}
	fn, ok := serviceDecoders[typeID.Numeric]
	if !ok {
		return nil, decodeErr("ServiceBody.TypeId", 0, ErrUnknownType)
	}
	return fn(d, "ServiceBody")
}

// EncodeServiceBody writes the TypeId NodeId for typeID followed by
// the bytes encodeFn writes for the service's own fields.
func EncodeServiceBody(e *Encoder, typeID uint32, encodeFn func(*Encoder)) {
	e.NodeId(NewNumericNodeID(0, typeID))
	encodeFn(e)
}
