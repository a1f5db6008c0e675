package ua

// ReadRawModifiedDetails selects a plain (non-modified) time-ranged
// raw history read; this client does not implement the Modified
// variant (spec.md Non-goals: historical update beyond read).
type ReadRawModifiedDetails struct {
	IsReadModified   bool
	StartTime        DateTime
	EndTime          DateTime
	NumValuesPerNode uint32
	ReturnBounds     bool
}

func (d *Decoder) ReadRawModifiedDetails(field string) (ReadRawModifiedDetails, error) {
	var r ReadRawModifiedDetails
	var err error
	if r.IsReadModified, err = d.Bool(field + ".IsReadModified"); err != nil {
		return r, err
	}
	if r.StartTime, err = d.DateTime(field + ".StartTime"); err != nil {
		return r, err
	}
	if r.EndTime, err = d.DateTime(field + ".EndTime"); err != nil {
		return r, err
	}
	if r.NumValuesPerNode, err = d.Uint32(field + ".NumValuesPerNode"); err != nil {
		return r, err
	}
	r.ReturnBounds, err = d.Bool(field + ".ReturnBounds")
	return r, err
}

func (e *Encoder) ReadRawModifiedDetails(r ReadRawModifiedDetails) {
	e.Bool(r.IsReadModified)
	e.DateTime(r.StartTime)
	e.DateTime(r.EndTime)
	e.Uint32(r.NumValuesPerNode)
	e.Bool(r.ReturnBounds)
}

// HistoryReadValueId names one node (and optional continuation point)
// to read history for.
type HistoryReadValueId struct {
	NodeID            NodeId
	IndexRange        string
	DataEncoding      QualifiedName
	ContinuationPoint []byte
}

func (d *Decoder) HistoryReadValueId(field string) (HistoryReadValueId, error) {
	var h HistoryReadValueId
	var err error
	if h.NodeID, err = d.NodeId(field + ".NodeId"); err != nil {
		return h, err
	}
	if h.IndexRange, err = d.String(field + ".IndexRange"); err != nil {
		return h, err
	}
	if h.DataEncoding, err = d.QualifiedName(field + ".DataEncoding"); err != nil {
		return h, err
	}
	h.ContinuationPoint, err = d.ByteString(field + ".ContinuationPoint")
	return h, err
}

func (e *Encoder) HistoryReadValueId(h HistoryReadValueId) {
	e.NodeId(h.NodeID)
	e.String(h.IndexRange)
	e.QualifiedName(h.DataEncoding)
	e.ByteString(h.ContinuationPoint)
}

// HistoryData is the decoded body of a HistoryReadResult's HistoryData
// ExtensionObject for the raw-read case: a flat list of DataValues.
type HistoryData struct {
	DataValues []DataValue
}

func (d *Decoder) HistoryData(field string) (HistoryData, error) {
	vals, err := DecodeArray(d, field+".DataValues", d.DataValue)
	return HistoryData{DataValues: vals}, err
}

func (e *Encoder) HistoryData(h HistoryData) { EncodeArray(e, h.DataValues, e.DataValue) }

// HistoryReadResult is one HistoryReadValueId's outcome.
type HistoryReadResult struct {
	StatusCode        StatusCode
	ContinuationPoint []byte
	HistoryData       ExtensionObject
}

func (d *Decoder) HistoryReadResult(field string) (HistoryReadResult, error) {
	var r HistoryReadResult
	var err error
	if r.StatusCode, err = d.StatusCode(field + ".StatusCode"); err != nil {
		return r, err
	}
	if r.ContinuationPoint, err = d.ByteString(field + ".ContinuationPoint"); err != nil {
		return r, err
	}
	r.HistoryData, err = d.ExtensionObject(field + ".HistoryData")
	return r, err
}

func (e *Encoder) HistoryReadResult(r HistoryReadResult) {
	e.StatusCode(r.StatusCode)
	e.ByteString(r.ContinuationPoint)
	e.ExtensionObject(r.HistoryData)
}

// HistoryReadRequest reads raw historical values for one or more
// nodes over a time range (spec.md §1: "historical ... read", the one
// historical service this client implements).
type HistoryReadRequest struct {
	RequestHeader      RequestHeader
	HistoryReadDetails ExtensionObject
	TimestampsToReturn TimestampsToReturn
	ReleaseContinuationPoints bool
	NodesToRead        []HistoryReadValueId
}

func (d *Decoder) HistoryReadRequest(field string) (HistoryReadRequest, error) {
	var r HistoryReadRequest
	var err error
	if r.RequestHeader, err = d.RequestHeader(field + ".RequestHeader"); err != nil {
		return r, err
	}
	if r.HistoryReadDetails, err = d.ExtensionObject(field + ".HistoryReadDetails"); err != nil {
		return r, err
	}
	t, err := d.Int32(field + ".TimestampsToReturn")
	if err != nil {
		return r, err
	}
	r.TimestampsToReturn = TimestampsToReturn(t)
	if r.ReleaseContinuationPoints, err = d.Bool(field + ".ReleaseContinuationPoints"); err != nil {
		return r, err
	}
	r.NodesToRead, err = DecodeArray(d, field+".NodesToRead", d.HistoryReadValueId)
	return r, err
}

func (e *Encoder) HistoryReadRequest(r HistoryReadRequest) {
	e.RequestHeader(r.RequestHeader)
	e.ExtensionObject(r.HistoryReadDetails)
	e.Int32(int32(r.TimestampsToReturn))
	e.Bool(r.ReleaseContinuationPoints)
	EncodeArray(e, r.NodesToRead, e.HistoryReadValueId)
}

// HistoryReadResponse returns one HistoryReadResult per requested
// node, in order.
type HistoryReadResponse struct {
	ResponseHeader  ResponseHeader
	Results         []HistoryReadResult
	DiagnosticInfos []DiagnosticInfo
}

func (d *Decoder) HistoryReadResponse(field string) (HistoryReadResponse, error) {
	var r HistoryReadResponse
	var err error
	if r.ResponseHeader, err = d.ResponseHeader(field + ".ResponseHeader"); err != nil {
		return r, err
	}
	if r.Results, err = DecodeArray(d, field+".Results", d.HistoryReadResult); err != nil {
		return r, err
	}
	r.DiagnosticInfos, err = DecodeArray(d, field+".DiagnosticInfos", d.DiagnosticInfo)
	return r, err
}

func (e *Encoder) HistoryReadResponse(r HistoryReadResponse) {
	e.ResponseHeader(r.ResponseHeader)
	EncodeArray(e, r.Results, e.HistoryReadResult)
	EncodeArray(e, r.DiagnosticInfos, e.DiagnosticInfo)
}
