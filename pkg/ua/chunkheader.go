package ua

// AsymmetricSecurityHeader is the security header carried by every OPN
// chunk (Part 6 §6.7.2). SenderCertificate is the sender's own
// certificate (empty under SecurityPolicyNone);
// ReceiverCertificateThumbprint identifies which of the receiver's
// certificates the sender is securing the message for.
type AsymmetricSecurityHeader struct {
	SecurityPolicyURI             string
	SenderCertificate              []byte
	ReceiverCertificateThumbprint []byte
}

func (d *Decoder) AsymmetricSecurityHeader(field string) (AsymmetricSecurityHeader, error) {
	var h AsymmetricSecurityHeader
	var err error
	if h.SecurityPolicyURI, err = d.String(field + ".SecurityPolicyUri"); err != nil {
		return h, err
	}
	if h.SenderCertificate, err = d.ByteString(field + ".SenderCertificate"); err != nil {
		return h, err
	}
	h.ReceiverCertificateThumbprint, err = d.ByteString(field + ".ReceiverCertificateThumbprint")
	return h, err
}

func (e *Encoder) AsymmetricSecurityHeader(h AsymmetricSecurityHeader) {
	e.String(h.SecurityPolicyURI)
	e.ByteString(h.SenderCertificate)
	e.ByteString(h.ReceiverCertificateThumbprint)
}

// SymmetricSecurityHeader is the 4-byte security header carried by
// every MSG/CLO chunk once a secure channel is open: the id of the
// ChannelSecurityToken whose derived keys sign/encrypt this chunk.
type SymmetricSecurityHeader struct {
	TokenID uint32
}

func (d *Decoder) SymmetricSecurityHeader(field string) (SymmetricSecurityHeader, error) {
	tokenID, err := d.Uint32(field + ".TokenId")
	return SymmetricSecurityHeader{TokenID: tokenID}, err
}

func (e *Encoder) SymmetricSecurityHeader(h SymmetricSecurityHeader) {
	e.Uint32(h.TokenID)
}

// SequenceHeader precedes the service body in every chunk
// (Part 6 §6.7.2); RequestID is what secure-channel-layer reassembly
// and response correlation key on.
type SequenceHeader struct {
	SequenceNumber uint32
	RequestID      uint32
}

func (d *Decoder) SequenceHeader(field string) (SequenceHeader, error) {
	var h SequenceHeader
	var err error
	if h.SequenceNumber, err = d.Uint32(field + ".SequenceNumber"); err != nil {
		return h, err
	}
	h.RequestID, err = d.Uint32(field + ".RequestId")
	return h, err
}

func (e *Encoder) SequenceHeader(h SequenceHeader) {
	e.Uint32(h.SequenceNumber)
	e.Uint32(h.RequestID)
}
