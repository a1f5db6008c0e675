package ua

// CallMethodRequest invokes one method node with a positional
// argument list.
type CallMethodRequest struct {
	ObjectID       NodeId
	MethodID       NodeId
	InputArguments []Variant
}

func (d *Decoder) CallMethodRequest(field string) (CallMethodRequest, error) {
	var r CallMethodRequest
	var err error
	if r.ObjectID, err = d.NodeId(field + ".ObjectId"); err != nil {
		return r, err
	}
	if r.MethodID, err = d.NodeId(field + ".MethodId"); err != nil {
		return r, err
	}
	r.InputArguments, err = DecodeArray(d, field+".InputArguments", d.Variant)
	return r, err
}

func (e *Encoder) CallMethodRequest(r CallMethodRequest) {
	e.NodeId(r.ObjectID)
	e.NodeId(r.MethodID)
	EncodeArray(e, r.InputArguments, e.Variant)
}

// CallMethodResult is one CallMethodRequest's outcome: an overall
// status plus a per-argument status array and the output values.
type CallMethodResult struct {
	StatusCode            StatusCode
	InputArgumentResults   []StatusCode
	InputArgumentDiagnosticInfos []DiagnosticInfo
	OutputArguments        []Variant
}

func (d *Decoder) CallMethodResult(field string) (CallMethodResult, error) {
	var r CallMethodResult
	var err error
	if r.StatusCode, err = d.StatusCode(field + ".StatusCode"); err != nil {
		return r, err
	}
	if r.InputArgumentResults, err = DecodeArray(d, field+".InputArgumentResults", d.StatusCode); err != nil {
		return r, err
	}
	if r.InputArgumentDiagnosticInfos, err = DecodeArray(d, field+".InputArgumentDiagnosticInfos", d.DiagnosticInfo); err != nil {
		return r, err
	}
	r.OutputArguments, err = DecodeArray(d, field+".OutputArguments", d.Variant)
	return r, err
}

func (e *Encoder) CallMethodResult(r CallMethodResult) {
	e.StatusCode(r.StatusCode)
	EncodeArray(e, r.InputArgumentResults, e.StatusCode)
	EncodeArray(e, r.InputArgumentDiagnosticInfos, e.DiagnosticInfo)
	EncodeArray(e, r.OutputArguments, e.Variant)
}

// CallRequest invokes one or more methods in a single round-trip.
type CallRequest struct {
	RequestHeader RequestHeader
	MethodsToCall []CallMethodRequest
}

func (d *Decoder) CallRequest(field string) (CallRequest, error) {
	var r CallRequest
	var err error
	if r.RequestHeader, err = d.RequestHeader(field + ".RequestHeader"); err != nil {
		return r, err
	}
	r.MethodsToCall, err = DecodeArray(d, field+".MethodsToCall", d.CallMethodRequest)
	return r, err
}

func (e *Encoder) CallRequest(r CallRequest) {
	e.RequestHeader(r.RequestHeader)
	EncodeArray(e, r.MethodsToCall, e.CallMethodRequest)
}

// CallResponse returns one CallMethodResult per requested method
// call, in order.
type CallResponse struct {
	ResponseHeader  ResponseHeader
	Results         []CallMethodResult
	DiagnosticInfos []DiagnosticInfo
}

func (d *Decoder) CallResponse(field string) (CallResponse, error) {
	var r CallResponse
	var err error
	if r.ResponseHeader, err = d.ResponseHeader(field + ".ResponseHeader"); err != nil {
		return r, err
	}
	if r.Results, err = DecodeArray(d, field+".Results", d.CallMethodResult); err != nil {
		return r, err
	}
	r.DiagnosticInfos, err = DecodeArray(d, field+".DiagnosticInfos", d.DiagnosticInfo)
	return r, err
}

func (e *Encoder) CallResponse(r CallResponse) {
	e.ResponseHeader(r.ResponseHeader)
	EncodeArray(e, r.Results, e.CallMethodResult)
	EncodeArray(e, r.DiagnosticInfos, e.DiagnosticInfo)
}
