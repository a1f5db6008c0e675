package crypto

import "errors"

// ErrUnsupportedPolicy is returned for a SecurityPolicyURI this client
// does not implement.
var ErrUnsupportedPolicy = errors.New("crypto: unsupported security policy")

// Well-known SecurityPolicyURI values from OPC UA Part 7 Annex A. None,
// Basic256Sha256, Aes128Sha256RsaOaep and Aes256Sha256RsaPss are the
// policies implemented; the RSA-OAEP/PSS asymmetric suite is shared across all
// non-None policies for OpenSecureChannel and is implemented
// separately in rsa.go.
const (
	SecurityPolicyNone           = "http://opcfoundation.org/UA/SecurityPolicy#None"
	SecurityPolicyBasic256Sha256 = "http://opcfoundation.org/UA/SecurityPolicy#Basic256Sha256"
	SecurityPolicyAes128Sha256RsaOaep = "http://opcfoundation.org/UA/SecurityPolicy#Aes128Sha256RsaOaep"
	SecurityPolicyAes256Sha256RsaPss  = "http://opcfoundation.org/UA/SecurityPolicy#Aes256Sha256RsaPss"
)

// SecurityPolicy bundles the symmetric-algorithm parameters Part 7
// Annex A.3 assigns to a SecurityPolicyURI: the signature/signing-key
// length and the encryption key/block size used for MSG chunk
// sign+encrypt once a secure channel's symmetric keys are derived.
type SecurityPolicy struct {
	URI                 string
	SigningKeyLength    int
	EncryptionKeyLength int
	BlockSize           int // AES block size, also the IV length
	SignatureSize       int // HMAC output size appended to each chunk
}

var policies = map[string]*SecurityPolicy{
	SecurityPolicyNone: {
		URI: SecurityPolicyNone,
	},
	SecurityPolicyBasic256Sha256: {
		URI:                 SecurityPolicyBasic256Sha256,
		SigningKeyLength:    32,
		EncryptionKeyLength: 32,
		BlockSize:           16,
		SignatureSize:       32,
	},
	SecurityPolicyAes128Sha256RsaOaep: {
		URI:                 SecurityPolicyAes128Sha256RsaOaep,
		SigningKeyLength:    32,
		EncryptionKeyLength: 16,
		BlockSize:           16,
		SignatureSize:       32,
	},
	SecurityPolicyAes256Sha256RsaPss: {
		URI:                 SecurityPolicyAes256Sha256RsaPss,
		SigningKeyLength:    32,
		EncryptionKeyLength: 32,
		BlockSize:           16,
		SignatureSize:       32,
	},
}

// LookupPolicy returns the SecurityPolicy for uri, or
// ErrUnsupportedPolicy if this client does not implement it.
func LookupPolicy(uri string) (*SecurityPolicy, error) {
	p, ok := policies[uri]
	if !ok {
		return nil, ErrUnsupportedPolicy
	}
	return p, nil
}

// IsNone reports whether p is the None policy, under which MSG chunks
// carry no signature and no encryption.
func (p *SecurityPolicy) IsNone() bool { return p.URI == SecurityPolicyNone }
