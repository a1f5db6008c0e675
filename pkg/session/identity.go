package session

import (
	"github.com/backkem/go-opcua/pkg/crypto"
	"github.com/backkem/go-opcua/pkg/ua"
)

// Identity builds the UserIdentityToken ExtensionObject to send with
// ActivateSession, given the server-selected UserTokenPolicy this
// client matched against its own capabilities. The PolicyID it reads
// off policy is always copied verbatim, never hard-coded (spec.md §4.5
// and endpoint.go's UserTokenPolicy doc comment).
type Identity interface {
	// tokenType reports the UserTokenType this identity can satisfy, so
	// Open can pick the matching UserTokenPolicy off the endpoint.
	tokenType() ua.UserTokenType
	buildToken(policy ua.UserTokenPolicy, channelSecurityPolicyURI string, serverCertificate, serverNonce []byte) (ua.ExtensionObject, error)
}

// AnonymousIdentity requests anonymous logon.
type AnonymousIdentity struct{}

func (AnonymousIdentity) tokenType() ua.UserTokenType { return ua.UserTokenTypeAnonymous }

func (AnonymousIdentity) buildToken(policy ua.UserTokenPolicy, _ string, _, _ []byte) (ua.ExtensionObject, error) {
	e := ua.NewEncoder()
	e.AnonymousIdentityToken(ua.AnonymousIdentityToken{PolicyID: policy.PolicyID})
	return ua.ExtensionObject{
		TypeID:   ua.NewNumericNodeID(0, ua.ServiceIDAnonymousIdentityTokenBinary),
		Encoding: ua.ExtensionObjectBinary,
		Body:     e.Bytes(),
	}, nil
}

// UserNameIdentity requests username/password logon. Password is
// encrypted against the chosen UserTokenPolicy's own SecurityPolicyURI
// (falling back to the secure channel's policy when the policy leaves
// it blank, as Part 4 §7.36.3 allows), never sent in the clear unless
// that policy is None.
type UserNameIdentity struct {
	UserName string
	Password string
}

func (UserNameIdentity) tokenType() ua.UserTokenType { return ua.UserTokenTypeUserName }

func (u UserNameIdentity) buildToken(policy ua.UserTokenPolicy, channelSecurityPolicyURI string, serverCertificate, serverNonce []byte) (ua.ExtensionObject, error) {
	secURI := policy.SecurityPolicyURI
	if secURI == "" {
		secURI = channelSecurityPolicyURI
	}

	var (
		password []byte
		algURI   string
	)
	if secURI == "" || secURI == crypto.SecurityPolicyNone {
		password = []byte(u.Password)
	} else {
		pub, err := crypto.PublicKeyFromDER(serverCertificate)
		if err != nil {
			return ua.ExtensionObject{}, err
		}
		useSha256 := secURI == crypto.SecurityPolicyAes128Sha256RsaOaep || secURI == crypto.SecurityPolicyAes256Sha256RsaPss
		password, err = crypto.EncryptPassword(pub, []byte(u.Password), serverNonce, useSha256)
		if err != nil {
			return ua.ExtensionObject{}, err
		}
		if useSha256 {
			algURI = "http://opcfoundation.org/UA/security/rsa-oaep-sha2-256"
		} else {
			algURI = "http://www.w3.org/2001/04/xmlenc#rsa-oaep-mgf1p"
		}
	}

	e := ua.NewEncoder()
	e.UserNameIdentityToken(ua.UserNameIdentityToken{
		PolicyID:            policy.PolicyID,
		UserName:            u.UserName,
		Password:            password,
		EncryptionAlgorithm: algURI,
	})
	return ua.ExtensionObject{
		TypeID:   ua.NewNumericNodeID(0, ua.ServiceIDUserNameIdentityTokenBinary),
		Encoding: ua.ExtensionObjectBinary,
		Body:     e.Bytes(),
	}, nil
}
