package ua

// TimestampsToReturn selects which timestamps a Read/HistoryRead
// response populates (OPC UA Part 4).
type TimestampsToReturn int32

const (
	TimestampsToReturnSource TimestampsToReturn = 0
	TimestampsToReturnServer TimestampsToReturn = 1
	TimestampsToReturnBoth   TimestampsToReturn = 2
	TimestampsToReturnNeither TimestampsToReturn = 3
)

// AttributeID enumerates the node attributes Read/Write operate on
// (OPC UA Part 4, the subset this client names directly).
type AttributeID uint32

const (
	AttributeIDNodeId     AttributeID = 1
	AttributeIDNodeClass  AttributeID = 2
	AttributeIDBrowseName AttributeID = 3
	AttributeIDDisplayName AttributeID = 4
	AttributeIDValue      AttributeID = 13
	AttributeIDDataType   AttributeID = 14
	AttributeIDDataTypeDefinition AttributeID = 25
)

// ReadValueId names one attribute of one node to read or write, with
// an optional index range for array-valued attributes.
type ReadValueId struct {
	NodeID       NodeId
	AttributeID  AttributeID
	IndexRange   string
	DataEncoding QualifiedName
}

func (d *Decoder) ReadValueId(field string) (ReadValueId, error) {
	var r ReadValueId
	var err error
	if r.NodeID, err = d.NodeId(field + ".NodeId"); err != nil {
		return r, err
	}
	aid, err := d.Uint32(field + ".AttributeId")
	if err != nil {
		return r, err
	}
	r.AttributeID = AttributeID(aid)
	if r.IndexRange, err = d.String(field + ".IndexRange"); err != nil {
		return r, err
	}
	r.DataEncoding, err = d.QualifiedName(field + ".DataEncoding")
	return r, err
}

func (e *Encoder) ReadValueId(r ReadValueId) {
	e.NodeId(r.NodeID)
	e.Uint32(uint32(r.AttributeID))
	e.String(r.IndexRange)
	e.QualifiedName(r.DataEncoding)
}

// ReadRequest reads one or more node attributes in a single
// round-trip, subject to the server's MaxNodesPerRead limit and the
// session's auto-batching (spec.md §4.5).
type ReadRequest struct {
	RequestHeader      RequestHeader
	MaxAge             float64
	TimestampsToReturn TimestampsToReturn
	NodesToRead        []ReadValueId
}

func (d *Decoder) ReadRequest(field string) (ReadRequest, error) {
	var r ReadRequest
	var err error
	if r.RequestHeader, err = d.RequestHeader(field + ".RequestHeader"); err != nil {
		return r, err
	}
	if r.MaxAge, err = d.Float64(field + ".MaxAge"); err != nil {
		return r, err
	}
	t, err := d.Int32(field + ".TimestampsToReturn")
	if err != nil {
		return r, err
	}
	r.TimestampsToReturn = TimestampsToReturn(t)
	r.NodesToRead, err = DecodeArray(d, field+".NodesToRead", d.ReadValueId)
	return r, err
}

func (e *Encoder) ReadRequest(r ReadRequest) {
	e.RequestHeader(r.RequestHeader)
	e.Float64(r.MaxAge)
	e.Int32(int32(r.TimestampsToReturn))
	EncodeArray(e, r.NodesToRead, e.ReadValueId)
}

// ReadResponse returns one DataValue per requested ReadValueId, in
// the same order.
type ReadResponse struct {
	ResponseHeader ResponseHeader
	Results        []DataValue
	DiagnosticInfos []DiagnosticInfo
}

func (d *Decoder) ReadResponse(field string) (ReadResponse, error) {
	var r ReadResponse
	var err error
	if r.ResponseHeader, err = d.ResponseHeader(field + ".ResponseHeader"); err != nil {
		return r, err
	}
	if r.Results, err = DecodeArray(d, field+".Results", d.DataValue); err != nil {
		return r, err
	}
	r.DiagnosticInfos, err = DecodeArray(d, field+".DiagnosticInfos", d.DiagnosticInfo)
	return r, err
}

func (e *Encoder) ReadResponse(r ReadResponse) {
	e.ResponseHeader(r.ResponseHeader)
	EncodeArray(e, r.Results, e.DataValue)
	EncodeArray(e, r.DiagnosticInfos, e.DiagnosticInfo)
}

// WriteValue names one attribute of one node to write, with the new
// value and an optional index range.
type WriteValue struct {
	NodeID      NodeId
	AttributeID AttributeID
	IndexRange  string
	Value       DataValue
}

func (d *Decoder) WriteValue(field string) (WriteValue, error) {
	var w WriteValue
	var err error
	if w.NodeID, err = d.NodeId(field + ".NodeId"); err != nil {
		return w, err
	}
	aid, err := d.Uint32(field + ".AttributeId")
	if err != nil {
		return w, err
	}
	w.AttributeID = AttributeID(aid)
	if w.IndexRange, err = d.String(field + ".IndexRange"); err != nil {
		return w, err
	}
	w.Value, err = d.DataValue(field + ".Value")
	return w, err
}

func (e *Encoder) WriteValue(w WriteValue) {
	e.NodeId(w.NodeID)
	e.Uint32(uint32(w.AttributeID))
	e.String(w.IndexRange)
	e.DataValue(w.Value)
}

// WriteRequest writes one or more node attributes in a single
// round-trip, subject to auto-batching.
type WriteRequest struct {
	RequestHeader RequestHeader
	NodesToWrite  []WriteValue
}

func (d *Decoder) WriteRequest(field string) (WriteRequest, error) {
	var r WriteRequest
	var err error
	if r.RequestHeader, err = d.RequestHeader(field + ".RequestHeader"); err != nil {
		return r, err
	}
	r.NodesToWrite, err = DecodeArray(d, field+".NodesToWrite", d.WriteValue)
	return r, err
}

func (e *Encoder) WriteRequest(r WriteRequest) {
	e.RequestHeader(r.RequestHeader)
	EncodeArray(e, r.NodesToWrite, e.WriteValue)
}

// WriteResponse returns one StatusCode per WriteValue, in order.
type WriteResponse struct {
	ResponseHeader  ResponseHeader
	Results         []StatusCode
	DiagnosticInfos []DiagnosticInfo
}

func (d *Decoder) WriteResponse(field string) (WriteResponse, error) {
	var r WriteResponse
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

func (e *Encoder) WriteResponse(r WriteResponse) {
	e.ResponseHeader(r.ResponseHeader)
	EncodeArray(e, r.Results, e.StatusCode)
	EncodeArray(e, r.DiagnosticInfos, e.DiagnosticInfo)
}
