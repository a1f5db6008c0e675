package ua

// CreateSessionRequest opens a new session on an established secure
// channel (spec.md §4.5).
type CreateSessionRequest struct {
	RequestHeader           RequestHeader
	ClientDescription       ApplicationDescription
	ServerURI               string
	EndpointURL             string
	SessionName             string
	ClientNonce             []byte
	ClientCertificate       []byte
	RequestedSessionTimeout float64
	MaxResponseMessageSize  uint32
}

func (d *Decoder) CreateSessionRequest(field string) (CreateSessionRequest, error) {
	var r CreateSessionRequest
	var err error
	if r.RequestHeader, err = d.RequestHeader(field + ".RequestHeader"); err != nil {
		return r, err
	}
	if r.ClientDescription, err = d.ApplicationDescription(field + ".ClientDescription"); err != nil {
		return r, err
	}
	if r.ServerURI, err = d.String(field + ".ServerUri"); err != nil {
		return r, err
	}
	if r.EndpointURL, err = d.String(field + ".EndpointUrl"); err != nil {
		return r, err
	}
	if r.SessionName, err = d.String(field + ".SessionName"); err != nil {
		return r, err
	}
	if r.ClientNonce, err = d.ByteString(field + ".ClientNonce"); err != nil {
		return r, err
	}
	if r.ClientCertificate, err = d.ByteString(field + ".ClientCertificate"); err != nil {
		return r, err
	}
	if r.RequestedSessionTimeout, err = d.Float64(field + ".RequestedSessionTimeout"); err != nil {
		return r, err
	}
	r.MaxResponseMessageSize, err = d.Uint32(field + ".MaxResponseMessageSize")
	return r, err
}

func (e *Encoder) CreateSessionRequest(r CreateSessionRequest) {
	e.RequestHeader(r.RequestHeader)
	e.ApplicationDescription(r.ClientDescription)
	e.String(r.ServerURI)
	e.String(r.EndpointURL)
	e.String(r.SessionName)
	e.ByteString(r.ClientNonce)
	e.ByteString(r.ClientCertificate)
	e.Float64(r.RequestedSessionTimeout)
	e.Uint32(r.MaxResponseMessageSize)
}

// CreateSessionResponse delivers the session's opaque identifiers,
// the server's endpoint descriptions, and its nonce/certificate
// (spec.md §4.5).
type CreateSessionResponse struct {
	ResponseHeader             ResponseHeader
	SessionID                  NodeId
	AuthenticationToken        NodeId
	RevisedSessionTimeout      float64
	ServerNonce                []byte
	ServerCertificate          []byte
	ServerEndpoints            []EndpointDescription
	ServerSignature            SignatureData
	MaxRequestMessageSize      uint32
}

func (d *Decoder) CreateSessionResponse(field string) (CreateSessionResponse, error) {
	var r CreateSessionResponse
	var err error
	if r.ResponseHeader, err = d.ResponseHeader(field + ".ResponseHeader"); err != nil {
		return r, err
	}
	if r.SessionID, err = d.NodeId(field + ".SessionId"); err != nil {
		return r, err
	}
	if r.AuthenticationToken, err = d.NodeId(field + ".AuthenticationToken"); err != nil {
		return r, err
	}
	if r.RevisedSessionTimeout, err = d.Float64(field + ".RevisedSessionTimeout"); err != nil {
		return r, err
	}
	if r.ServerNonce, err = d.ByteString(field + ".ServerNonce"); err != nil {
		return r, err
	}
	if r.ServerCertificate, err = d.ByteString(field + ".ServerCertificate"); err != nil {
		return r, err
	}
	r.ServerEndpoints, err = DecodeArray(d, field+".ServerEndpoints", d.EndpointDescription)
	if err != nil {
		return r, err
	}
	// SoftwareCertificates array is parsed but not retained; no client
	// in this stack consumes signed software certificates.
	if _, err = DecodeArray(d, field+".ServerSoftwareCertificates", func(f string) (struct{}, error) {
		_, e1 := d.ByteString(f + ".CertificateData")
		if e1 != nil {
			return struct{}{}, e1
		}
		_, e2 := d.ByteString(f + ".Signature")
		return struct{}{}, e2
	}); err != nil {
		return r, err
	}
	if r.ServerSignature, err = d.SignatureData(field + ".ServerSignature"); err != nil {
		return r, err
	}
	r.MaxRequestMessageSize, err = d.Uint32(field + ".MaxRequestMessageSize")
	return r, err
}

func (e *Encoder) CreateSessionResponse(r CreateSessionResponse) {
	e.ResponseHeader(r.ResponseHeader)
	e.NodeId(r.SessionID)
	e.NodeId(r.AuthenticationToken)
	e.Float64(r.RevisedSessionTimeout)
	e.ByteString(r.ServerNonce)
	e.ByteString(r.ServerCertificate)
	EncodeArray(e, r.ServerEndpoints, e.EndpointDescription)
	e.Int32(-1) // ServerSoftwareCertificates: never emitted by this client.
	e.SignatureData(r.ServerSignature)
	e.Uint32(r.MaxRequestMessageSize)
}

// ActivateSessionRequest attaches an identity to a created session
// (spec.md §4.5). UserIdentityToken is carried as an ExtensionObject
// since its concrete type depends on the chosen UserTokenPolicy.
type ActivateSessionRequest struct {
	RequestHeader     RequestHeader
	ClientSignature   SignatureData
	LocaleIDs         []string
	UserIdentityToken ExtensionObject
	UserTokenSignature SignatureData
}

func (d *Decoder) ActivateSessionRequest(field string) (ActivateSessionRequest, error) {
	var r ActivateSessionRequest
	var err error
	if r.RequestHeader, err = d.RequestHeader(field + ".RequestHeader"); err != nil {
		return r, err
	}
	if r.ClientSignature, err = d.SignatureData(field + ".ClientSignature"); err != nil {
		return r, err
	}
	// ClientSoftwareCertificates: always empty on write, skipped on read
	// by this client since no signed software certificates are issued.
	if _, err = DecodeArray(d, field+".ClientSoftwareCertificates", func(f string) (struct{}, error) {
		if _, e1 := d.ByteString(f + ".CertificateData"); e1 != nil {
			return struct{}{}, e1
		}
		_, e2 := d.ByteString(f + ".Signature")
		return struct{}{}, e2
	}); err != nil {
		return r, err
	}
	if r.LocaleIDs, err = DecodeArray(d, field+".LocaleIds", d.String); err != nil {
		return r, err
	}
	if r.UserIdentityToken, err = d.ExtensionObject(field + ".UserIdentityToken"); err != nil {
		return r, err
	}
	r.UserTokenSignature, err = d.SignatureData(field + ".UserTokenSignature")
	return r, err
}

func (e *Encoder) ActivateSessionRequest(r ActivateSessionRequest) {
	e.RequestHeader(r.RequestHeader)
	e.SignatureData(r.ClientSignature)
	e.Int32(-1) // ClientSoftwareCertificates
	EncodeArray(e, r.LocaleIDs, e.String)
	e.ExtensionObject(r.UserIdentityToken)
	e.SignatureData(r.UserTokenSignature)
}

// arrayLenOnly reads an array's length prefix and returns the element
// count; the elements themselves are left unread.
func (d *Decoder) arrayLenOnly(field string) (int, error) {
	n, present, err := d.arrayLen(field)
	if err != nil || !present {
		return 0, err
	}
	return n, nil
}

// ActivateSessionResponse confirms activation and, on the first
// activation after CreateSession, carries a fresh server nonce for
// subsequent token renewal.
type ActivateSessionResponse struct {
	ResponseHeader ResponseHeader
	ServerNonce    []byte
	Results        []StatusCode
}

func (d *Decoder) ActivateSessionResponse(field string) (ActivateSessionResponse, error) {
	var r ActivateSessionResponse
	var err error
	if r.ResponseHeader, err = d.ResponseHeader(field + ".ResponseHeader"); err != nil {
		return r, err
	}
	if r.ServerNonce, err = d.ByteString(field + ".ServerNonce"); err != nil {
		return r, err
	}
	r.Results, err = DecodeArray(d, field+".Results", d.StatusCode)
	return r, err
}

func (e *Encoder) ActivateSessionResponse(r ActivateSessionResponse) {
	e.ResponseHeader(r.ResponseHeader)
	e.ByteString(r.ServerNonce)
	EncodeArray(e, r.Results, e.StatusCode)
}

// CloseSessionRequest ends a session; DeleteSubscriptions controls
// whether the server also tears down the session's subscriptions.
type CloseSessionRequest struct {
	RequestHeader      RequestHeader
	DeleteSubscriptions bool
}

func (d *Decoder) CloseSessionRequest(field string) (CloseSessionRequest, error) {
	var r CloseSessionRequest
	var err error
	if r.RequestHeader, err = d.RequestHeader(field + ".RequestHeader"); err != nil {
		return r, err
	}
	r.DeleteSubscriptions, err = d.Bool(field + ".DeleteSubscriptions")
	return r, err
}

func (e *Encoder) CloseSessionRequest(r CloseSessionRequest) {
	e.RequestHeader(r.RequestHeader)
	e.Bool(r.DeleteSubscriptions)
}

// CloseSessionResponse has no fields beyond the response header.
type CloseSessionResponse struct {
	ResponseHeader ResponseHeader
}

func (d *Decoder) CloseSessionResponse(field string) (CloseSessionResponse, error) {
	h, err := d.ResponseHeader(field + ".ResponseHeader")
	return CloseSessionResponse{ResponseHeader: h}, err
}

func (e *Encoder) CloseSessionResponse(r CloseSessionResponse) { e.ResponseHeader(r.ResponseHeader) }
