package ua

// BrowseDirection restricts Browse to forward, inverse, or both
// reference directions.
type BrowseDirection int32

const (
	BrowseDirectionForward BrowseDirection = 0
	BrowseDirectionInverse BrowseDirection = 1
	BrowseDirectionBoth    BrowseDirection = 2
)

// NodeClassMask is a bitmask over OPC UA node classes, used to filter
// Browse results.
type NodeClassMask uint32

// BrowseResultMask selects which ReferenceDescription fields a Browse
// call populates.
type BrowseResultMask uint32

// BrowseDescription names one node to browse from, with direction,
// reference-type, and result filters.
type BrowseDescription struct {
	NodeID          NodeId
	BrowseDirection BrowseDirection
	ReferenceTypeID NodeId
	IncludeSubtypes bool
	NodeClassMask   NodeClassMask
	ResultMask      BrowseResultMask
}

func (d *Decoder) BrowseDescription(field string) (BrowseDescription, error) {
	var b BrowseDescription
	var err error
	if b.NodeID, err = d.NodeId(field + ".NodeId"); err != nil {
		return b, err
	}
	dir, err := d.Int32(field + ".BrowseDirection")
	if err != nil {
		return b, err
	}
	b.BrowseDirection = BrowseDirection(dir)
	if b.ReferenceTypeID, err = d.NodeId(field + ".ReferenceTypeId"); err != nil {
		return b, err
	}
	if b.IncludeSubtypes, err = d.Bool(field + ".IncludeSubtypes"); err != nil {
		return b, err
	}
	mask, err := d.Uint32(field + ".NodeClassMask")
	if err != nil {
		return b, err
	}
	b.NodeClassMask = NodeClassMask(mask)
	rmask, err := d.Uint32(field + ".ResultMask")
	if err != nil {
		return b, err
	}
	b.ResultMask = BrowseResultMask(rmask)
	return b, nil
}

func (e *Encoder) BrowseDescription(b BrowseDescription) {
	e.NodeId(b.NodeID)
	e.Int32(int32(b.BrowseDirection))
	e.NodeId(b.ReferenceTypeID)
	e.Bool(b.IncludeSubtypes)
	e.Uint32(uint32(b.NodeClassMask))
	e.Uint32(uint32(b.ResultMask))
}

// ReferenceDescription describes one reference found by Browse.
type ReferenceDescription struct {
	ReferenceTypeID NodeId
	IsForward       bool
	NodeID          ExpandedNodeId
	BrowseName      QualifiedName
	DisplayName     LocalizedText
	NodeClass       int32
	TypeDefinition  ExpandedNodeId
}

func (d *Decoder) ReferenceDescription(field string) (ReferenceDescription, error) {
	var r ReferenceDescription
	var err error
	if r.ReferenceTypeID, err = d.NodeId(field + ".ReferenceTypeId"); err != nil {
		return r, err
	}
	if r.IsForward, err = d.Bool(field + ".IsForward"); err != nil {
		return r, err
	}
	if r.NodeID, err = d.ExpandedNodeId(field + ".NodeId"); err != nil {
		return r, err
	}
	if r.BrowseName, err = d.QualifiedName(field + ".BrowseName"); err != nil {
		return r, err
	}
	if r.DisplayName, err = d.LocalizedText(field + ".DisplayName"); err != nil {
		return r, err
	}
	if r.NodeClass, err = d.Int32(field + ".NodeClass"); err != nil {
		return r, err
	}
	r.TypeDefinition, err = d.ExpandedNodeId(field + ".TypeDefinition")
	return r, err
}

func (e *Encoder) ReferenceDescription(r ReferenceDescription) {
	e.NodeId(r.ReferenceTypeID)
	e.Bool(r.IsForward)
	e.ExpandedNodeId(r.NodeID)
	e.QualifiedName(r.BrowseName)
	e.LocalizedText(r.DisplayName)
	e.Int32(r.NodeClass)
	e.ExpandedNodeId(r.TypeDefinition)
}

// BrowseResult is one BrowseDescription's outcome: a status, an
// optional continuation point for BrowseNext when the server could
// not return every reference in one response, and the references
// found so far.
type BrowseResult struct {
	StatusCode        StatusCode
	ContinuationPoint []byte
	References        []ReferenceDescription
}

func (d *Decoder) BrowseResult(field string) (BrowseResult, error) {
	var r BrowseResult
	var err error
	if r.StatusCode, err = d.StatusCode(field + ".StatusCode"); err != nil {
		return r, err
	}
	if r.ContinuationPoint, err = d.ByteString(field + ".ContinuationPoint"); err != nil {
		return r, err
	}
	r.References, err = DecodeArray(d, field+".References", d.ReferenceDescription)
	return r, err
}

func (e *Encoder) BrowseResult(r BrowseResult) {
	e.StatusCode(r.StatusCode)
	e.ByteString(r.ContinuationPoint)
	EncodeArray(e, r.References, e.ReferenceDescription)
}

// ViewDescription optionally restricts Browse to a named view at a
// point in time; the zero value means "no view restriction".
type ViewDescription struct {
	ViewID    NodeId
	Timestamp DateTime
	ViewVersion uint32
}

func (d *Decoder) ViewDescription(field string) (ViewDescription, error) {
	var v ViewDescription
	var err error
	if v.ViewID, err = d.NodeId(field + ".ViewId"); err != nil {
		return v, err
	}
	if v.Timestamp, err = d.DateTime(field + ".Timestamp"); err != nil {
		return v, err
	}
	v.ViewVersion, err = d.Uint32(field + ".ViewVersion")
	return v, err
}

func (e *Encoder) ViewDescription(v ViewDescription) {
	e.NodeId(v.ViewID)
	e.DateTime(v.Timestamp)
	e.Uint32(v.ViewVersion)
}

// BrowseRequest browses references from one or more starting nodes.
type BrowseRequest struct {
	RequestHeader                RequestHeader
	View                         ViewDescription
	RequestedMaxReferencesPerNode uint32
	NodesToBrowse                []BrowseDescription
}

func (d *Decoder) BrowseRequest(field string) (BrowseRequest, error) {
	var r BrowseRequest
	var err error
	if r.RequestHeader, err = d.RequestHeader(field + ".RequestHeader"); err != nil {
		return r, err
	}
	if r.View, err = d.ViewDescription(field + ".View"); err != nil {
		return r, err
	}
	if r.RequestedMaxReferencesPerNode, err = d.Uint32(field + ".RequestedMaxReferencesPerNode"); err != nil {
		return r, err
	}
	r.NodesToBrowse, err = DecodeArray(d, field+".NodesToBrowse", d.BrowseDescription)
	return r, err
}

func (e *Encoder) BrowseRequest(r BrowseRequest) {
	e.RequestHeader(r.RequestHeader)
	e.ViewDescription(r.View)
	e.Uint32(r.RequestedMaxReferencesPerNode)
	EncodeArray(e, r.NodesToBrowse, e.BrowseDescription)
}

// BrowseResponse returns one BrowseResult per requested node.
type BrowseResponse struct {
	ResponseHeader  ResponseHeader
	Results         []BrowseResult
	DiagnosticInfos []DiagnosticInfo
}

func (d *Decoder) BrowseResponse(field string) (BrowseResponse, error) {
	var r BrowseResponse
	var err error
	if r.ResponseHeader, err = d.ResponseHeader(field + ".ResponseHeader"); err != nil {
		return r, err
	}
	if r.Results, err = DecodeArray(d, field+".Results", d.BrowseResult); err != nil {
		return r, err
	}
	r.DiagnosticInfos, err = DecodeArray(d, field+".DiagnosticInfos", d.DiagnosticInfo)
	return r, err
}

func (e *Encoder) BrowseResponse(r BrowseResponse) {
	e.ResponseHeader(r.ResponseHeader)
	EncodeArray(e, r.Results, e.BrowseResult)
	EncodeArray(e, r.DiagnosticInfos, e.DiagnosticInfo)
}

// BrowseNextRequest continues a previous Browse using its
// continuation points; ReleaseContinuationPoints true discards them
// instead of returning more data (spec.md §4.5 ManagedBrowse).
type BrowseNextRequest struct {
	RequestHeader              RequestHeader
	ReleaseContinuationPoints  bool
	ContinuationPoints         [][]byte
}

func (d *Decoder) BrowseNextRequest(field string) (BrowseNextRequest, error) {
	var r BrowseNextRequest
	var err error
	if r.RequestHeader, err = d.RequestHeader(field + ".RequestHeader"); err != nil {
		return r, err
	}
	if r.ReleaseContinuationPoints, err = d.Bool(field + ".ReleaseContinuationPoints"); err != nil {
		return r, err
	}
	r.ContinuationPoints, err = DecodeArray(d, field+".ContinuationPoints", d.ByteString)
	return r, err
}

func (e *Encoder) BrowseNextRequest(r BrowseNextRequest) {
	e.RequestHeader(r.RequestHeader)
	e.Bool(r.ReleaseContinuationPoints)
	EncodeArray(e, r.ContinuationPoints, e.ByteString)
}

// BrowseNextResponse mirrors BrowseResponse.
type BrowseNextResponse struct {
	ResponseHeader  ResponseHeader
	Results         []BrowseResult
	DiagnosticInfos []DiagnosticInfo
}

func (d *Decoder) BrowseNextResponse(field string) (BrowseNextResponse, error) {
	var r BrowseNextResponse
	var err error
	if r.ResponseHeader, err = d.ResponseHeader(field + ".ResponseHeader"); err != nil {
		return r, err
	}
	if r.Results, err = DecodeArray(d, field+".Results", d.BrowseResult); err != nil {
		return r, err
	}
	r.DiagnosticInfos, err = DecodeArray(d, field+".DiagnosticInfos", d.DiagnosticInfo)
	return r, err
}

func (e *Encoder) BrowseNextResponse(r BrowseNextResponse) {
	e.ResponseHeader(r.ResponseHeader)
	EncodeArray(e, r.Results, e.BrowseResult)
	EncodeArray(e, r.DiagnosticInfos, e.DiagnosticInfo)
}

// RelativePathElement names one hop of a RelativePath used by
// TranslateBrowsePathsToNodeIds.
type RelativePathElement struct {
	ReferenceTypeID NodeId
	IsInverse       bool
	IncludeSubtypes bool
	TargetName      QualifiedName
}

func (d *Decoder) RelativePathElement(field string) (RelativePathElement, error) {
	var e2 RelativePathElement
	var err error
	if e2.ReferenceTypeID, err = d.NodeId(field + ".ReferenceTypeId"); err != nil {
		return e2, err
	}
	if e2.IsInverse, err = d.Bool(field + ".IsInverse"); err != nil {
		return e2, err
	}
	if e2.IncludeSubtypes, err = d.Bool(field + ".IncludeSubtypes"); err != nil {
		return e2, err
	}
	e2.TargetName, err = d.QualifiedName(field + ".TargetName")
	return e2, err
}

func (e *Encoder) RelativePathElement(r RelativePathElement) {
	e.NodeId(r.ReferenceTypeID)
	e.Bool(r.IsInverse)
	e.Bool(r.IncludeSubtypes)
	e.QualifiedName(r.TargetName)
}

// RelativePath is a named path from a starting node: a sequence of
// reference-type hops.
type RelativePath struct {
	Elements []RelativePathElement
}

func (d *Decoder) RelativePath(field string) (RelativePath, error) {
	els, err := DecodeArray(d, field+".Elements", d.RelativePathElement)
	return RelativePath{Elements: els}, err
}

func (e *Encoder) RelativePath(p RelativePath) { EncodeArray(e, p.Elements, e.RelativePathElement) }

// BrowsePath names a starting node plus a RelativePath to translate
// into concrete target NodeIds.
type BrowsePath struct {
	StartingNode NodeId
	RelativePath RelativePath
}

func (d *Decoder) BrowsePath(field string) (BrowsePath, error) {
	var p BrowsePath
	var err error
	if p.StartingNode, err = d.NodeId(field + ".StartingNode"); err != nil {
		return p, err
	}
	p.RelativePath, err = d.RelativePath(field + ".RelativePath")
	return p, err
}

func (e *Encoder) BrowsePath(p BrowsePath) {
	e.NodeId(p.StartingNode)
	e.RelativePath(p.RelativePath)
}

// BrowsePathTarget is one resolved target of a BrowsePath; RemainingPathIndex
// is 0xFFFFFFFF when the path was fully resolved.
type BrowsePathTarget struct {
	TargetID           ExpandedNodeId
	RemainingPathIndex uint32
}

func (d *Decoder) BrowsePathTarget(field string) (BrowsePathTarget, error) {
	var t BrowsePathTarget
	var err error
	if t.TargetID, err = d.ExpandedNodeId(field + ".TargetId"); err != nil {
		return t, err
	}
	t.RemainingPathIndex, err = d.Uint32(field + ".RemainingPathIndex")
	return t, err
}

func (e *Encoder) BrowsePathTarget(t BrowsePathTarget) {
	e.ExpandedNodeId(t.TargetID)
	e.Uint32(t.RemainingPathIndex)
}

// BrowsePathResult is one BrowsePath's outcome.
type BrowsePathResult struct {
	StatusCode StatusCode
	Targets    []BrowsePathTarget
}

func (d *Decoder) BrowsePathResult(field string) (BrowsePathResult, error) {
	var r BrowsePathResult
	var err error
	if r.StatusCode, err = d.StatusCode(field + ".StatusCode"); err != nil {
		return r, err
	}
	r.Targets, err = DecodeArray(d, field+".Targets", d.BrowsePathTarget)
	return r, err
}

func (e *Encoder) BrowsePathResult(r BrowsePathResult) {
	e.StatusCode(r.StatusCode)
	EncodeArray(e, r.Targets, e.BrowsePathTarget)
}

// TranslateBrowsePathsToNodeIdsRequest resolves one or more symbolic
// browse paths to concrete NodeIds.
type TranslateBrowsePathsToNodeIdsRequest struct {
	RequestHeader RequestHeader
	BrowsePaths   []BrowsePath
}

func (d *Decoder) TranslateBrowsePathsToNodeIdsRequest(field string) (TranslateBrowsePathsToNodeIdsRequest, error) {
	var r TranslateBrowsePathsToNodeIdsRequest
	var err error
	if r.RequestHeader, err = d.RequestHeader(field + ".RequestHeader"); err != nil {
		return r, err
	}
	r.BrowsePaths, err = DecodeArray(d, field+".BrowsePaths", d.BrowsePath)
	return r, err
}

func (e *Encoder) TranslateBrowsePathsToNodeIdsRequest(r TranslateBrowsePathsToNodeIdsRequest) {
	e.RequestHeader(r.RequestHeader)
	EncodeArray(e, r.BrowsePaths, e.BrowsePath)
}

// TranslateBrowsePathsToNodeIdsResponse returns one BrowsePathResult
// per requested BrowsePath.
type TranslateBrowsePathsToNodeIdsResponse struct {
	ResponseHeader  ResponseHeader
	Results         []BrowsePathResult
	DiagnosticInfos []DiagnosticInfo
}

func (d *Decoder) TranslateBrowsePathsToNodeIdsResponse(field string) (TranslateBrowsePathsToNodeIdsResponse, error) {
	var r TranslateBrowsePathsToNodeIdsResponse
	var err error
	if r.ResponseHeader, err = d.ResponseHeader(field + ".ResponseHeader"); err != nil {
		return r, err
	}
	if r.Results, err = DecodeArray(d, field+".Results", d.BrowsePathResult); err != nil {
		return r, err
	}
	r.DiagnosticInfos, err = DecodeArray(d, field+".DiagnosticInfos", d.DiagnosticInfo)
	return r, err
}

func (e *Encoder) TranslateBrowsePathsToNodeIdsResponse(r TranslateBrowsePathsToNodeIdsResponse) {
	e.ResponseHeader(r.ResponseHeader)
	EncodeArray(e, r.Results, e.BrowsePathResult)
	EncodeArray(e, r.DiagnosticInfos, e.DiagnosticInfo)
}

// RegisterNodesRequest asks the server for optimized aliases of
// frequently accessed nodes (subject to auto-batching).
type RegisterNodesRequest struct {
	RequestHeader  RequestHeader
	NodesToRegister []NodeId
}

func (d *Decoder) RegisterNodesRequest(field string) (RegisterNodesRequest, error) {
	var r RegisterNodesRequest
	var err error
	if r.RequestHeader, err = d.RequestHeader(field + ".RequestHeader"); err != nil {
		return r, err
	}
	r.NodesToRegister, err = DecodeArray(d, field+".NodesToRegister", d.NodeId)
	return r, err
}

func (e *Encoder) RegisterNodesRequest(r RegisterNodesRequest) {
	e.RequestHeader(r.RequestHeader)
	EncodeArray(e, r.NodesToRegister, e.NodeId)
}

// RegisterNodesResponse returns one registered NodeId alias per
// requested node, in order.
type RegisterNodesResponse struct {
	ResponseHeader   ResponseHeader
	RegisteredNodeIDs []NodeId
}

func (d *Decoder) RegisterNodesResponse(field string) (RegisterNodesResponse, error) {
	var r RegisterNodesResponse
	var err error
	if r.ResponseHeader, err = d.ResponseHeader(field + ".ResponseHeader"); err != nil {
		return r, err
	}
	r.RegisteredNodeIDs, err = DecodeArray(d, field+".RegisteredNodeIds", d.NodeId)
	return r, err
}

func (e *Encoder) RegisterNodesResponse(r RegisterNodesResponse) {
	e.ResponseHeader(r.ResponseHeader)
	EncodeArray(e, r.RegisteredNodeIDs, e.NodeId)
}

// UnregisterNodesRequest releases aliases obtained from RegisterNodes.
type UnregisterNodesRequest struct {
	RequestHeader     RequestHeader
	NodesToUnregister []NodeId
}

func (d *Decoder) UnregisterNodesRequest(field string) (UnregisterNodesRequest, error) {
	var r UnregisterNodesRequest
	var err error
	if r.RequestHeader, err = d.RequestHeader(field + ".RequestHeader"); err != nil {
		return r, err
	}
	r.NodesToUnregister, err = DecodeArray(d, field+".NodesToUnregister", d.NodeId)
	return r, err
}

func (e *Encoder) UnregisterNodesRequest(r UnregisterNodesRequest) {
	e.RequestHeader(r.RequestHeader)
	EncodeArray(e, r.NodesToUnregister, e.NodeId)
}

// UnregisterNodesResponse has no fields beyond the response header.
type UnregisterNodesResponse struct {
	ResponseHeader ResponseHeader
}

func (d *Decoder) UnregisterNodesResponse(field string) (UnregisterNodesResponse, error) {
	h, err := d.ResponseHeader(field + ".ResponseHeader")
	return UnregisterNodesResponse{ResponseHeader: h}, err
}

func (e *Encoder) UnregisterNodesResponse(r UnregisterNodesResponse) {
	e.ResponseHeader(r.ResponseHeader)
}
