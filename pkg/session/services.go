package session

import (
	"context"

	"github.com/backkem/go-opcua/pkg/ua"
)

// maxManagedBrowseIterations bounds ManagedBrowse's BrowseNext loop so
// a misbehaving server that keeps returning a continuation point
// cannot spin the client forever (spec.md §4.5).
const maxManagedBrowseIterations = 1000

func chunk[T any](items []T, size int) [][]T {
	if size <= 0 || len(items) <= size {
		return [][]T{items}
	}
	var out [][]T
	for i := 0; i < len(items); i += size {
		end := i + size
		if end > len(items) {
			end = len(items)
		}
		out = append(out, items[i:end])
	}
	return out
}

// Read auto-batches nodesToRead against the configured MaxNodesPerRead
// limit, issuing one ReadRequest per batch and concatenating results
// in request order.
func (s *Session) Read(ctx context.Context, timestamps ua.TimestampsToReturn, nodesToRead []ua.ReadValueId) ([]ua.DataValue, error) {
	var results []ua.DataValue
	for _, batch := range chunk(nodesToRead, s.maxRead) {
		req := ua.ReadRequest{
			RequestHeader:      s.requestHeader(),
			TimestampsToReturn: timestamps,
			NodesToRead:        batch,
		}
		v, err := s.sc.SendRequest(ctx, ua.ServiceIDReadRequest, func(e *ua.Encoder) { e.ReadRequest(req) })
		if err != nil {
			return nil, err
		}
		resp, ok := v.(ua.ReadResponse)
		if !ok {
			return nil, ErrUnexpectedResponse
		}
		if !resp.ResponseHeader.ServiceResult.IsGood() {
			return nil, resp.ResponseHeader.ServiceResult
		}
		results = append(results, resp.Results...)
	}
	return results, nil
}

// Write auto-batches nodesToWrite against MaxNodesPerWrite.
func (s *Session) Write(ctx context.Context, nodesToWrite []ua.WriteValue) ([]ua.StatusCode, error) {
	var results []ua.StatusCode
	for _, batch := range chunk(nodesToWrite, s.maxWrite) {
		req := ua.WriteRequest{
			RequestHeader: s.requestHeader(),
			NodesToWrite:  batch,
		}
		v, err := s.sc.SendRequest(ctx, ua.ServiceIDWriteRequest, func(e *ua.Encoder) { e.WriteRequest(req) })
		if err != nil {
			return nil, err
		}
		resp, ok := v.(ua.WriteResponse)
		if !ok {
			return nil, ErrUnexpectedResponse
		}
		if !resp.ResponseHeader.ServiceResult.IsGood() {
			return nil, resp.ResponseHeader.ServiceResult
		}
		results = append(results, resp.Results...)
	}
	return results, nil
}

// Browse auto-batches nodesToBrowse against MaxNodesPerBrowse. Callers
// that want continuation points followed to completion should use
// ManagedBrowse instead.
func (s *Session) Browse(ctx context.Context, view ua.ViewDescription, maxRefsPerNode uint32, nodesToBrowse []ua.BrowseDescription) ([]ua.BrowseResult, error) {
	var results []ua.BrowseResult
	for _, batch := range chunk(nodesToBrowse, s.maxBrowse) {
		req := ua.BrowseRequest{
			RequestHeader:                 s.requestHeader(),
			View:                          view,
			RequestedMaxReferencesPerNode: maxRefsPerNode,
			NodesToBrowse:                 batch,
		}
		v, err := s.sc.SendRequest(ctx, ua.ServiceIDBrowseRequest, func(e *ua.Encoder) { e.BrowseRequest(req) })
		if err != nil {
			return nil, err
		}
		resp, ok := v.(ua.BrowseResponse)
		if !ok {
			return nil, ErrUnexpectedResponse
		}
		if !resp.ResponseHeader.ServiceResult.IsGood() {
			return nil, resp.ResponseHeader.ServiceResult
		}
		results = append(results, resp.Results...)
	}
	return results, nil
}

// BrowseNext continues one or more BrowseResults' continuation points.
// release true discards the continuation points instead of returning
// more references.
func (s *Session) BrowseNext(ctx context.Context, release bool, continuationPoints [][]byte) ([]ua.BrowseResult, error) {
	req := ua.BrowseNextRequest{
		RequestHeader:             s.requestHeader(),
		ReleaseContinuationPoints: release,
		ContinuationPoints:        continuationPoints,
	}
	v, err := s.sc.SendRequest(ctx, ua.ServiceIDBrowseNextRequest, func(e *ua.Encoder) { e.BrowseNextRequest(req) })
	if err != nil {
		return nil, err
	}
	resp, ok := v.(ua.BrowseNextResponse)
	if !ok {
		return nil, ErrUnexpectedResponse
	}
	if !resp.ResponseHeader.ServiceResult.IsGood() {
		return nil, resp.ResponseHeader.ServiceResult
	}
	return resp.Results, nil
}

// ManagedBrowse browses nodesToBrowse and transparently follows every
// result's continuation point via BrowseNext until none remain,
// returning the fully accumulated reference list per input node. It
// gives up and releases any still-open continuation points after
// maxManagedBrowseIterations rounds rather than looping forever
// against a server that never exhausts them.
func (s *Session) ManagedBrowse(ctx context.Context, view ua.ViewDescription, maxRefsPerNode uint32, nodesToBrowse []ua.BrowseDescription) ([]ua.BrowseResult, error) {
	results, err := s.Browse(ctx, view, maxRefsPerNode, nodesToBrowse)
	if err != nil {
		return nil, err
	}

	pending := make(map[int][]byte)
	for i, r := range results {
		if len(r.ContinuationPoint) > 0 {
			pending[i] = r.ContinuationPoint
		}
	}

	for iter := 0; len(pending) > 0; iter++ {
		if iter >= maxManagedBrowseIterations {
			s.releaseContinuationPoints(ctx, pending)
			return results, ErrContinuationPointLoop
		}

		idx := make([]int, 0, len(pending))
		cps := make([][]byte, 0, len(pending))
		for i, cp := range pending {
			idx = append(idx, i)
			cps = append(cps, cp)
		}

		next, err := s.BrowseNext(ctx, false, cps)
		if err != nil {
			s.releaseContinuationPoints(ctx, pending)
			return nil, err
		}

		pending = make(map[int][]byte)
		for j, r := range next {
			i := idx[j]
			results[i].References = append(results[i].References, r.References...)
			results[i].StatusCode = r.StatusCode
			if len(r.ContinuationPoint) > 0 {
				pending[i] = r.ContinuationPoint
			}
		}
	}
	return results, nil
}

func (s *Session) releaseContinuationPoints(ctx context.Context, pending map[int][]byte) {
	if len(pending) == 0 {
		return
	}
	cps := make([][]byte, 0, len(pending))
	for _, cp := range pending {
		cps = append(cps, cp)
	}
	_, _ = s.BrowseNext(ctx, true, cps)
}

// TranslateBrowsePaths resolves symbolic browse paths to NodeIds.
func (s *Session) TranslateBrowsePaths(ctx context.Context, browsePaths []ua.BrowsePath) ([]ua.BrowsePathResult, error) {
	req := ua.TranslateBrowsePathsToNodeIdsRequest{
		RequestHeader: s.requestHeader(),
		BrowsePaths:   browsePaths,
	}
	v, err := s.sc.SendRequest(ctx, ua.ServiceIDTranslateBrowsePathsToNodeIdsRequest, func(e *ua.Encoder) {
		e.TranslateBrowsePathsToNodeIdsRequest(req)
	})
	if err != nil {
		return nil, err
	}
	resp, ok := v.(ua.TranslateBrowsePathsToNodeIdsResponse)
	if !ok {
		return nil, ErrUnexpectedResponse
	}
	if !resp.ResponseHeader.ServiceResult.IsGood() {
		return nil, resp.ResponseHeader.ServiceResult
	}
	return resp.Results, nil
}

// RegisterNodes asks the server for optimized aliases of frequently
// accessed nodes.
func (s *Session) RegisterNodes(ctx context.Context, nodesToRegister []ua.NodeId) ([]ua.NodeId, error) {
	req := ua.RegisterNodesRequest{
		RequestHeader:   s.requestHeader(),
		NodesToRegister: nodesToRegister,
	}
	v, err := s.sc.SendRequest(ctx, ua.ServiceIDRegisterNodesRequest, func(e *ua.Encoder) { e.RegisterNodesRequest(req) })
	if err != nil {
		return nil, err
	}
	resp, ok := v.(ua.RegisterNodesResponse)
	if !ok {
		return nil, ErrUnexpectedResponse
	}
	if !resp.ResponseHeader.ServiceResult.IsGood() {
		return nil, resp.ResponseHeader.ServiceResult
	}
	return resp.RegisteredNodeIDs, nil
}

// UnregisterNodes releases aliases obtained from RegisterNodes.
func (s *Session) UnregisterNodes(ctx context.Context, nodesToUnregister []ua.NodeId) error {
	req := ua.UnregisterNodesRequest{
		RequestHeader:     s.requestHeader(),
		NodesToUnregister: nodesToUnregister,
	}
	v, err := s.sc.SendRequest(ctx, ua.ServiceIDUnregisterNodesRequest, func(e *ua.Encoder) { e.UnregisterNodesRequest(req) })
	if err != nil {
		return err
	}
	if _, ok := v.(ua.UnregisterNodesResponse); !ok {
		return ErrUnexpectedResponse
	}
	return nil
}

// Call invokes one or more methods in a single round-trip.
func (s *Session) Call(ctx context.Context, methodsToCall []ua.CallMethodRequest) ([]ua.CallMethodResult, error) {
	req := ua.CallRequest{
		RequestHeader: s.requestHeader(),
		MethodsToCall: methodsToCall,
	}
	v, err := s.sc.SendRequest(ctx, ua.ServiceIDCallRequest, func(e *ua.Encoder) { e.CallRequest(req) })
	if err != nil {
		return nil, err
	}
	resp, ok := v.(ua.CallResponse)
	if !ok {
		return nil, ErrUnexpectedResponse
	}
	if !resp.ResponseHeader.ServiceResult.IsGood() {
		return nil, resp.ResponseHeader.ServiceResult
	}
	return resp.Results, nil
}

// HistoryReadRaw reads raw historical values for one or more nodes
// over a time range, the one historical service this client implements.
func (s *Session) HistoryReadRaw(ctx context.Context, details ua.ReadRawModifiedDetails, timestamps ua.TimestampsToReturn, release bool, nodesToRead []ua.HistoryReadValueId) ([]ua.HistoryReadResult, error) {
	e := ua.NewEncoder()
	e.ReadRawModifiedDetails(details)
	req := ua.HistoryReadRequest{
		RequestHeader: s.requestHeader(),
		HistoryReadDetails: ua.ExtensionObject{
			TypeID:   ua.NewNumericNodeID(0, ua.ServiceIDReadRawModifiedDetailsBinary),
			Encoding: ua.ExtensionObjectBinary,
			Body:     e.Bytes(),
		},
		TimestampsToReturn:        timestamps,
		ReleaseContinuationPoints: release,
		NodesToRead:               nodesToRead,
	}
	v, err := s.sc.SendRequest(ctx, ua.ServiceIDHistoryReadRequest, func(e *ua.Encoder) { e.HistoryReadRequest(req) })
	if err != nil {
		return nil, err
	}
	resp, ok := v.(ua.HistoryReadResponse)
	if !ok {
		return nil, ErrUnexpectedResponse
	}
	if !resp.ResponseHeader.ServiceResult.IsGood() {
		return nil, resp.ResponseHeader.ServiceResult
	}
	return resp.Results, nil
}
