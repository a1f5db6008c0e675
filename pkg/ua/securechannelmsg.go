package ua

// Hello is the client's first message on a new TCP connection
// (spec.md §4.2).
type Hello struct {
	ProtocolVersion   uint32
	ReceiveBufferSize uint32
	SendBufferSize    uint32
	MaxMessageSize    uint32
	MaxChunkCount     uint32
	EndpointURL       string
}

func (d *Decoder) Hello(field string) (Hello, error) {
	var h Hello
	var err error
	if h.ProtocolVersion, err = d.Uint32(field + ".ProtocolVersion"); err != nil {
		return h, err
	}
	if h.ReceiveBufferSize, err = d.Uint32(field + ".ReceiveBufferSize"); err != nil {
		return h, err
	}
	if h.SendBufferSize, err = d.Uint32(field + ".SendBufferSize"); err != nil {
		return h, err
	}
	if h.MaxMessageSize, err = d.Uint32(field + ".MaxMessageSize"); err != nil {
		return h, err
	}
	if h.MaxChunkCount, err = d.Uint32(field + ".MaxChunkCount"); err != nil {
		return h, err
	}
	h.EndpointURL, err = d.String(field + ".EndpointUrl")
	return h, err
}

func (e *Encoder) Hello(h Hello) {
	e.Uint32(h.ProtocolVersion)
	e.Uint32(h.ReceiveBufferSize)
	e.Uint32(h.SendBufferSize)
	e.Uint32(h.MaxMessageSize)
	e.Uint32(h.MaxChunkCount)
	e.String(h.EndpointURL)
}

// Acknowledge is the server's reply to Hello, carrying the negotiated
// (minimum-of-both-sides) buffer and message limits.
type Acknowledge struct {
	ProtocolVersion   uint32
	ReceiveBufferSize uint32
	SendBufferSize    uint32
	MaxMessageSize    uint32
	MaxChunkCount     uint32
}

func (d *Decoder) Acknowledge(field string) (Acknowledge, error) {
	var a Acknowledge
	var err error
	if a.ProtocolVersion, err = d.Uint32(field + ".ProtocolVersion"); err != nil {
		return a, err
	}
	if a.ReceiveBufferSize, err = d.Uint32(field + ".ReceiveBufferSize"); err != nil {
		return a, err
	}
	if a.SendBufferSize, err = d.Uint32(field + ".SendBufferSize"); err != nil {
		return a, err
	}
	if a.MaxMessageSize, err = d.Uint32(field + ".MaxMessageSize"); err != nil {
		return a, err
	}
	a.MaxChunkCount, err = d.Uint32(field + ".MaxChunkCount")
	return a, err
}

func (e *Encoder) Acknowledge(a Acknowledge) {
	e.Uint32(a.ProtocolVersion)
	e.Uint32(a.ReceiveBufferSize)
	e.Uint32(a.SendBufferSize)
	e.Uint32(a.MaxMessageSize)
	e.Uint32(a.MaxChunkCount)
}

// TransportError is the server's fatal-failure reply to Hello or any
// later message, carrying a StatusCode and diagnostic text.
type TransportError struct {
	Error  StatusCode
	Reason string
}

func (d *Decoder) TransportError(field string) (TransportError, error) {
	var t TransportError
	var err error
	if t.Error, err = d.StatusCode(field + ".Error"); err != nil {
		return t, err
	}
	t.Reason, err = d.String(field + ".Reason")
	return t, err
}

func (e *Encoder) TransportError(t TransportError) {
	e.StatusCode(t.Error)
	e.String(t.Reason)
}

// SecurityTokenRequestType distinguishes issuing a fresh token from
// renewing the current one.
type SecurityTokenRequestType int32

const (
	SecurityTokenRequestIssue  SecurityTokenRequestType = 0
	SecurityTokenRequestRenew SecurityTokenRequestType = 1
)

// OpenSecureChannelRequest asks the server to issue or renew a secure
// channel token (spec.md §4.4).
type OpenSecureChannelRequest struct {
	RequestHeader   RequestHeader
	ClientProtocolVersion uint32
	RequestType     SecurityTokenRequestType
	SecurityMode    MessageSecurityMode
	ClientNonce     []byte
	RequestedLifetime uint32
}

func (d *Decoder) OpenSecureChannelRequest(field string) (OpenSecureChannelRequest, error) {
	var r OpenSecureChannelRequest
	var err error
	if r.RequestHeader, err = d.RequestHeader(field + ".RequestHeader"); err != nil {
		return r, err
	}
	if r.ClientProtocolVersion, err = d.Uint32(field + ".ClientProtocolVersion"); err != nil {
		return r, err
	}
	t, err := d.Int32(field + ".RequestType")
	if err != nil {
		return r, err
	}
	r.RequestType = SecurityTokenRequestType(t)
	m, err := d.Int32(field + ".SecurityMode")
	if err != nil {
		return r, err
	}
	r.SecurityMode = MessageSecurityMode(m)
	if r.ClientNonce, err = d.ByteString(field + ".ClientNonce"); err != nil {
		return r, err
	}
	r.RequestedLifetime, err = d.Uint32(field + ".RequestedLifetime")
	return r, err
}

func (e *Encoder) OpenSecureChannelRequest(r OpenSecureChannelRequest) {
	e.RequestHeader(r.RequestHeader)
	e.Uint32(r.ClientProtocolVersion)
	e.Int32(int32(r.RequestType))
	e.Int32(int32(r.SecurityMode))
	e.ByteString(r.ClientNonce)
	e.Uint32(r.RequestedLifetime)
}

// ChannelSecurityToken identifies the symmetric key material in force
// for a secure channel, and when it expires.
type ChannelSecurityToken struct {
	ChannelID       uint32
	TokenID         uint32
	CreatedAt       DateTime
	RevisedLifetime uint32
}

func (d *Decoder) ChannelSecurityToken(field string) (ChannelSecurityToken, error) {
	var t ChannelSecurityToken
	var err error
	if t.ChannelID, err = d.Uint32(field + ".ChannelId"); err != nil {
		return t, err
	}
	if t.TokenID, err = d.Uint32(field + ".TokenId"); err != nil {
		return t, err
	}
	if t.CreatedAt, err = d.DateTime(field + ".CreatedAt"); err != nil {
		return t, err
	}
	t.RevisedLifetime, err = d.Uint32(field + ".RevisedLifetime")
	return t, err
}

func (e *Encoder) ChannelSecurityToken(t ChannelSecurityToken) {
	e.Uint32(t.ChannelID)
	e.Uint32(t.TokenID)
	e.DateTime(t.CreatedAt)
	e.Uint32(t.RevisedLifetime)
}

// OpenSecureChannelResponse carries the issued/renewed token and the
// server's nonce, from which symmetric keys are derived.
type OpenSecureChannelResponse struct {
	ResponseHeader        ResponseHeader
	ServerProtocolVersion uint32
	SecurityToken         ChannelSecurityToken
	ServerNonce           []byte
}

func (d *Decoder) OpenSecureChannelResponse(field string) (OpenSecureChannelResponse, error) {
	var r OpenSecureChannelResponse
	var err error
	if r.ResponseHeader, err = d.ResponseHeader(field + ".ResponseHeader"); err != nil {
		return r, err
	}
	if r.ServerProtocolVersion, err = d.Uint32(field + ".ServerProtocolVersion"); err != nil {
		return r, err
	}
	if r.SecurityToken, err = d.ChannelSecurityToken(field + ".SecurityToken"); err != nil {
		return r, err
	}
	r.ServerNonce, err = d.ByteString(field + ".ServerNonce")
	return r, err
}

func (e *Encoder) OpenSecureChannelResponse(r OpenSecureChannelResponse) {
	e.ResponseHeader(r.ResponseHeader)
	e.Uint32(r.ServerProtocolVersion)
	e.ChannelSecurityToken(r.SecurityToken)
	e.ByteString(r.ServerNonce)
}

// CloseSecureChannelRequest tears down a secure channel; the server
// sends no response body.
type CloseSecureChannelRequest struct {
	RequestHeader RequestHeader
}

func (d *Decoder) CloseSecureChannelRequest(field string) (CloseSecureChannelRequest, error) {
	h, err := d.RequestHeader(field + ".RequestHeader")
	return CloseSecureChannelRequest{RequestHeader: h}, err
}

func (e *Encoder) CloseSecureChannelRequest(r CloseSecureChannelRequest) {
	e.RequestHeader(r.RequestHeader)
}
