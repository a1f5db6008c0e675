package ua

// GetEndpointsRequest asks a server (or discovery endpoint) for the
// endpoints it exposes, optionally filtered by locale and transport
// profile. This is a session-less service: it is sent over a secure
// channel opened with SecurityPolicyNone before CreateSession
// (spec.md §9 supplement).
type GetEndpointsRequest struct {
	RequestHeader       RequestHeader
	EndpointURL         string
	LocaleIDs           []string
	ProfileURIs         []string
}

func (d *Decoder) GetEndpointsRequest(field string) (GetEndpointsRequest, error) {
	var r GetEndpointsRequest
	var err error
	if r.RequestHeader, err = d.RequestHeader(field + ".RequestHeader"); err != nil {
		return r, err
	}
	if r.EndpointURL, err = d.String(field + ".EndpointUrl"); err != nil {
		return r, err
	}
	if r.LocaleIDs, err = DecodeArray(d, field+".LocaleIds", d.String); err != nil {
		return r, err
	}
	r.ProfileURIs, err = DecodeArray(d, field+".ProfileUris", d.String)
	return r, err
}

func (e *Encoder) GetEndpointsRequest(r GetEndpointsRequest) {
	e.RequestHeader(r.RequestHeader)
	e.String(r.EndpointURL)
	EncodeArray(e, r.LocaleIDs, e.String)
	EncodeArray(e, r.ProfileURIs, e.String)
}

// GetEndpointsResponse lists every endpoint the server is willing to
// accept connections on, each with its own security policy and user
// token policies (spec.md §4.5 identity-token assembly depends on
// this response).
type GetEndpointsResponse struct {
	ResponseHeader ResponseHeader
	Endpoints      []EndpointDescription
}

func (d *Decoder) GetEndpointsResponse(field string) (GetEndpointsResponse, error) {
	var r GetEndpointsResponse
	var err error
	if r.ResponseHeader, err = d.ResponseHeader(field + ".ResponseHeader"); err != nil {
		return r, err
	}
	r.Endpoints, err = DecodeArray(d, field+".Endpoints", d.EndpointDescription)
	return r, err
}

func (e *Encoder) GetEndpointsResponse(r GetEndpointsResponse) {
	e.ResponseHeader(r.ResponseHeader)
	EncodeArray(e, r.Endpoints, e.EndpointDescription)
}

// FindServersRequest asks a discovery endpoint which server
// applications it knows about, as ApplicationDescriptions (one server
// may expose several endpoints; FindServers precedes GetEndpoints in
// the usual discovery sequence).
type FindServersRequest struct {
	RequestHeader  RequestHeader
	EndpointURL    string
	LocaleIDs      []string
	ServerURIs     []string
}

func (d *Decoder) FindServersRequest(field string) (FindServersRequest, error) {
	var r FindServersRequest
	var err error
	if r.RequestHeader, err = d.RequestHeader(field + ".RequestHeader"); err != nil {
		return r, err
	}
	if r.EndpointURL, err = d.String(field + ".EndpointUrl"); err != nil {
		return r, err
	}
	if r.LocaleIDs, err = DecodeArray(d, field+".LocaleIds", d.String); err != nil {
		return r, err
	}
	r.ServerURIs, err = DecodeArray(d, field+".ServerUris", d.String)
	return r, err
}

func (e *Encoder) FindServersRequest(r FindServersRequest) {
	e.RequestHeader(r.RequestHeader)
	e.String(r.EndpointURL)
	EncodeArray(e, r.LocaleIDs, e.String)
	EncodeArray(e, r.ServerURIs, e.String)
}

// FindServersResponse lists the matching server ApplicationDescriptions.
type FindServersResponse struct {
	ResponseHeader ResponseHeader
	Servers        []ApplicationDescription
}

func (d *Decoder) FindServersResponse(field string) (FindServersResponse, error) {
	var r FindServersResponse
	var err error
	if r.ResponseHeader, err = d.ResponseHeader(field + ".ResponseHeader"); err != nil {
		return r, err
	}
	r.Servers, err = DecodeArray(d, field+".Servers", d.ApplicationDescription)
	return r, err
}

func (e *Encoder) FindServersResponse(r FindServersResponse) {
	e.ResponseHeader(r.ResponseHeader)
	EncodeArray(e, r.Servers, e.ApplicationDescription)
}
