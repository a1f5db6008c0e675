package ua

// ApplicationType enumerates the role an ApplicationDescription
// describes (OPC UA Part 4).
type ApplicationType int32

const (
	ApplicationTypeServer      ApplicationType = 0
	ApplicationTypeClient      ApplicationType = 1
	ApplicationTypeClientAndServer ApplicationType = 2
	ApplicationTypeDiscoveryServer ApplicationType = 3
)

// ApplicationDescription identifies an application instance, sent by
// the client during CreateSession and returned by FindServers/
// GetEndpoints (spec.md §4.5, §9 supplement).
type ApplicationDescription struct {
	ApplicationURI      string
	ProductURI          string
	ApplicationName     LocalizedText
	ApplicationType     ApplicationType
	GatewayServerURI    string
	DiscoveryProfileURI string
	DiscoveryURLs       []string
}

func (d *Decoder) ApplicationDescription(field string) (ApplicationDescription, error) {
	var a ApplicationDescription
	var err error
	if a.ApplicationURI, err = d.String(field + ".ApplicationUri"); err != nil {
		return a, err
	}
	if a.ProductURI, err = d.String(field + ".ProductUri"); err != nil {
		return a, err
	}
	if a.ApplicationName, err = d.LocalizedText(field + ".ApplicationName"); err != nil {
		return a, err
	}
	t, err := d.Int32(field + ".ApplicationType")
	if err != nil {
		return a, err
	}
	a.ApplicationType = ApplicationType(t)
	if a.GatewayServerURI, err = d.String(field + ".GatewayServerUri"); err != nil {
		return a, err
	}
	if a.DiscoveryProfileURI, err = d.String(field + ".DiscoveryProfileUri"); err != nil {
		return a, err
	}
	a.DiscoveryURLs, err = DecodeArray(d, field+".DiscoveryUrls", d.String)
	return a, err
}

func (e *Encoder) ApplicationDescription(a ApplicationDescription) {
	e.String(a.ApplicationURI)
	e.String(a.ProductURI)
	e.LocalizedText(a.ApplicationName)
	e.Int32(int32(a.ApplicationType))
	e.String(a.GatewayServerURI)
	e.String(a.DiscoveryProfileURI)
	EncodeArray(e, a.DiscoveryURLs, e.String)
}

// UserTokenType enumerates identity token kinds (OPC UA Part 4).
type UserTokenType int32

const (
	UserTokenTypeAnonymous UserTokenType = 0
	UserTokenTypeUserName  UserTokenType = 1
	UserTokenTypeCertificate UserTokenType = 2
	UserTokenTypeIssuedToken UserTokenType = 3
)

// UserTokenPolicy describes one identity-token option a server
// endpoint accepts. Its PolicyID MUST be copied back verbatim into the
// matching identity token on ActivateSession (spec.md §4.5) — a client
// must never hard-code a policy id string.
type UserTokenPolicy struct {
	PolicyID          string
	TokenType         UserTokenType
	IssuedTokenType   string
	IssuerEndpointURL string
	SecurityPolicyURI string
}

func (d *Decoder) UserTokenPolicy(field string) (UserTokenPolicy, error) {
	var p UserTokenPolicy
	var err error
	if p.PolicyID, err = d.String(field + ".PolicyId"); err != nil {
		return p, err
	}
	t, err := d.Int32(field + ".TokenType")
	if err != nil {
		return p, err
	}
	p.TokenType = UserTokenType(t)
	if p.IssuedTokenType, err = d.String(field + ".IssuedTokenType"); err != nil {
		return p, err
	}
	if p.IssuerEndpointURL, err = d.String(field + ".IssuerEndpointUrl"); err != nil {
		return p, err
	}
	if p.SecurityPolicyURI, err = d.String(field + ".SecurityPolicyUri"); err != nil {
		return p, err
	}
	return p, nil
}

func (e *Encoder) UserTokenPolicy(p UserTokenPolicy) {
	e.String(p.PolicyID)
	e.Int32(int32(p.TokenType))
	e.String(p.IssuedTokenType)
	e.String(p.IssuerEndpointURL)
	e.String(p.SecurityPolicyURI)
}

// MessageSecurityMode enumerates the per-message protection level
// negotiated by OpenSecureChannel (spec.md §4.4).
type MessageSecurityMode int32

const (
	MessageSecurityModeInvalid MessageSecurityMode = 0
	MessageSecurityModeNone    MessageSecurityMode = 1
	MessageSecurityModeSign    MessageSecurityMode = 2
	MessageSecurityModeSignAndEncrypt MessageSecurityMode = 3
)

// EndpointDescription describes one reachable endpoint returned by
// GetEndpoints, including its security policy and the user token
// policies it accepts.
type EndpointDescription struct {
	EndpointURL         string
	Server              ApplicationDescription
	ServerCertificate   []byte
	SecurityMode        MessageSecurityMode
	SecurityPolicyURI   string
	UserIdentityTokens  []UserTokenPolicy
	TransportProfileURI string
	SecurityLevel       byte
}

func (d *Decoder) EndpointDescription(field string) (EndpointDescription, error) {
	var ep EndpointDescription
	var err error
	if ep.EndpointURL, err = d.String(field + ".EndpointUrl"); err != nil {
		return ep, err
	}
	if ep.Server, err = d.ApplicationDescription(field + ".Server"); err != nil {
		return ep, err
	}
	if ep.ServerCertificate, err = d.ByteString(field + ".ServerCertificate"); err != nil {
		return ep, err
	}
	m, err := d.Int32(field + ".SecurityMode")
	if err != nil {
		return ep, err
	}
	ep.SecurityMode = MessageSecurityMode(m)
	if ep.SecurityPolicyURI, err = d.String(field + ".SecurityPolicyUri"); err != nil {
		return ep, err
	}
	ep.UserIdentityTokens, err = DecodeArray(d, field+".UserIdentityTokens", d.UserTokenPolicy)
	if err != nil {
		return ep, err
	}
	if ep.TransportProfileURI, err = d.String(field + ".TransportProfileUri"); err != nil {
		return ep, err
	}
	if ep.SecurityLevel, err = d.Byte(field + ".SecurityLevel"); err != nil {
		return ep, err
	}
	return ep, nil
}

func (e *Encoder) EndpointDescription(ep EndpointDescription) {
	e.String(ep.EndpointURL)
	e.ApplicationDescription(ep.Server)
	e.ByteString(ep.ServerCertificate)
	e.Int32(int32(ep.SecurityMode))
	e.String(ep.SecurityPolicyURI)
	EncodeArray(e, ep.UserIdentityTokens, e.UserTokenPolicy)
	e.String(ep.TransportProfileURI)
	e.Byte(ep.SecurityLevel)
}

// SignatureData carries a signature over a certificate+nonce, used to
// prove possession of the private key matching the client certificate
// in CreateSession/ActivateSession.
type SignatureData struct {
	Algorithm string
	Signature []byte
}

func (d *Decoder) SignatureData(field string) (SignatureData, error) {
	var s SignatureData
	var err error
	if s.Algorithm, err = d.String(field + ".Algorithm"); err != nil {
		return s, err
	}
	s.Signature, err = d.ByteString(field + ".Signature")
	return s, err
}

func (e *Encoder) SignatureData(s SignatureData) {
	e.String(s.Algorithm)
	e.ByteString(s.Signature)
}

// AnonymousIdentityToken is the identity token for anonymous logon.
// PolicyID must be copied from the server's matching UserTokenPolicy.
type AnonymousIdentityToken struct {
	PolicyID string
}

func (d *Decoder) AnonymousIdentityToken(field string) (AnonymousIdentityToken, error) {
	id, err := d.String(field + ".PolicyId")
	return AnonymousIdentityToken{PolicyID: id}, err
}

func (e *Encoder) AnonymousIdentityToken(t AnonymousIdentityToken) { e.String(t.PolicyID) }

// UserNameIdentityToken is the identity token for username/password
// logon. Password is pre-encrypted by the caller per the selected
// UserTokenPolicy's security policy before this value is built
// (spec.md §4.3, §4.5).
type UserNameIdentityToken struct {
	PolicyID            string
	UserName            string
	Password            []byte
	EncryptionAlgorithm string
}

func (d *Decoder) UserNameIdentityToken(field string) (UserNameIdentityToken, error) {
	var t UserNameIdentityToken
	var err error
	if t.PolicyID, err = d.String(field + ".PolicyId"); err != nil {
		return t, err
	}
	if t.UserName, err = d.String(field + ".UserName"); err != nil {
		return t, err
	}
	if t.Password, err = d.ByteString(field + ".Password"); err != nil {
		return t, err
	}
	t.EncryptionAlgorithm, err = d.String(field + ".EncryptionAlgorithm")
	return t, err
}

func (e *Encoder) UserNameIdentityToken(t UserNameIdentityToken) {
	e.String(t.PolicyID)
	e.String(t.UserName)
	e.ByteString(t.Password)
	e.String(t.EncryptionAlgorithm)
}

// X509IdentityToken is the identity token for certificate-based
// logon; proof of possession travels in the ActivateSession request's
// UserTokenSignature, not in this struct.
type X509IdentityToken struct {
	PolicyID        string
	CertificateData []byte
}

func (d *Decoder) X509IdentityToken(field string) (X509IdentityToken, error) {
	var t X509IdentityToken
	var err error
	if t.PolicyID, err = d.String(field + ".PolicyId"); err != nil {
		return t, err
	}
	t.CertificateData, err = d.ByteString(field + ".CertificateData")
	return t, err
}

func (e *Encoder) X509IdentityToken(t X509IdentityToken) {
	e.String(t.PolicyID)
	e.ByteString(t.CertificateData)
}
