// Certificate handling is deliberately thin: this client consumes a
// server's DER-encoded ApplicationInstanceCertificate exactly as it
// arrives in EndpointDescription.ServerCertificate or
// OpenSecureChannelResponse, extracting only the RSA public key
// needed for asymmetric encryption and signature verification. File
// loading, PEM plumbing, and trust-list/revocation checking are out
// of scope for this client.

package crypto

import (
	"crypto/rsa"
	"crypto/sha1"
	"crypto/x509"
	"errors"
)

var ErrNotRSAKey = errors.New("crypto: certificate does not hold an RSA public key")

// PublicKeyFromDER parses a DER-encoded X.509 certificate and returns
// its RSA public key.
func PublicKeyFromDER(der []byte) (*rsa.PublicKey, error) {
	cert, err := x509.ParseCertificate(der)
	if err != nil {
		return nil, err
	}
	pub, ok := cert.PublicKey.(*rsa.PublicKey)
	if !ok {
		return nil, ErrNotRSAKey
	}
	return pub, nil
}

// Thumbprint returns the SHA-1 thumbprint of a DER-encoded
// certificate, the form used to address a certificate in a
// X509IdentityToken or as a NodeId's Opaque identifier for some
// server implementations.
func Thumbprint(der []byte) [20]byte {
	return sha1.Sum(der)
}
