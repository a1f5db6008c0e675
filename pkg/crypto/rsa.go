// RSA operations used by the asymmetric algorithm suite: OAEP
// encryption of the client/server nonces exchanged during
// OpenSecureChannel's asymmetric phase, OAEP encryption of
// password-based identity tokens, and PKCS#1 v1.5/PSS signing of the
// ClientSignature/ServerSignature fields in CreateSession/
// ActivateSession.

package crypto

import (
	"crypto"
	"crypto/rand"
	"crypto/rsa"
	"crypto/sha1"
	"crypto/sha256"
	"errors"
)

var ErrKeyTooSmall = errors.New("crypto: RSA key too small for this operation")

// EncryptOAEPSha1 encrypts plaintext with RSA-OAEP/SHA-1, the padding
// scheme Basic256Sha256 specifies for asymmetric encryption (Part 7
// Annex A.3).
func EncryptOAEPSha1(pub *rsa.PublicKey, plaintext []byte) ([]byte, error) {
	return rsa.EncryptOAEP(sha1.New(), rand.Reader, pub, plaintext, nil)
}

// DecryptOAEPSha1 is the server-certificate-holder's counterpart;
// included for symmetry and for tests, not used by a client that
// never holds the private key of its own certificate in this
// implementation's scope.
func DecryptOAEPSha1(priv *rsa.PrivateKey, ciphertext []byte) ([]byte, error) {
	return rsa.DecryptOAEP(sha1.New(), rand.Reader, priv, ciphertext, nil)
}

// EncryptOAEPSha256 encrypts plaintext with RSA-OAEP/SHA-256, used by
// the Aes128Sha256RsaOaep and Aes256Sha256RsaPss policies.
func EncryptOAEPSha256(pub *rsa.PublicKey, plaintext []byte) ([]byte, error) {
	return rsa.EncryptOAEP(sha256.New(), rand.Reader, pub, plaintext, nil)
}

// DecryptOAEPSha256 is the counterpart to EncryptOAEPSha256; included
// for symmetry and for tests, not used by a client that never holds
// the private key of its own certificate in this implementation's
// scope.
func DecryptOAEPSha256(priv *rsa.PrivateKey, ciphertext []byte) ([]byte, error) {
	return rsa.DecryptOAEP(sha256.New(), rand.Reader, priv, ciphertext, nil)
}

// EncryptPassword encrypts a UserNameIdentityToken's Password field
// per Part 4 §7.36.3: plaintext is the password's UTF-8 bytes prefixed
// with its own uint32 length, followed by the server nonce, then
// RSA-OAEP encrypted with the server certificate's public key. The
// plaintext buffer is zeroed before returning, since it briefly holds
// the cleartext password.
func EncryptPassword(pub *rsa.PublicKey, password, serverNonce []byte, oaepSha256 bool) ([]byte, error) {
	plain := make([]byte, 4+len(password)+len(serverNonce))
	plain[0] = byte(len(password))
	plain[1] = byte(len(password) >> 8)
	plain[2] = byte(len(password) >> 16)
	plain[3] = byte(len(password) >> 24)
	copy(plain[4:], password)
	copy(plain[4+len(password):], serverNonce)
	defer zero(plain)

	if oaepSha256 {
		return EncryptOAEPSha256(pub, plain)
	}
	return EncryptOAEPSha1(pub, plain)
}

func zero(b []byte) {
	for i := range b {
		b[i] = 0
	}
}

// SignPKCS1v15SHA256 produces the ClientSignature/ServerSignature
// bytes (signature over serverCert||serverNonce or the equivalent
// client-side data) under Basic256Sha256 and the RsaOaep policy.
func SignPKCS1v15SHA256(priv *rsa.PrivateKey, data []byte) ([]byte, error) {
	h := sha256.Sum256(data)
	return rsa.SignPKCS1v15(rand.Reader, priv, crypto.SHA256, h[:])
}

// VerifyPKCS1v15SHA256 verifies a ClientSignature/ServerSignature.
func VerifyPKCS1v15SHA256(pub *rsa.PublicKey, data, sig []byte) error {
	h := sha256.Sum256(data)
	return rsa.VerifyPKCS1v15(pub, crypto.SHA256, h[:], sig)
}

// SignPSSSHA256 produces a signature under the Aes256Sha256RsaPss
// policy, which uses RSASSA-PSS instead of PKCS#1 v1.5.
func SignPSSSHA256(priv *rsa.PrivateKey, data []byte) ([]byte, error) {
	h := sha256.Sum256(data)
	return rsa.SignPSS(rand.Reader, priv, crypto.SHA256, h[:], nil)
}

// VerifyPSSSHA256 verifies a RsaPss-policy signature.
func VerifyPSSSHA256(pub *rsa.PublicKey, data, sig []byte) error {
	h := sha256.Sum256(data)
	return rsa.VerifyPSS(pub, crypto.SHA256, h[:], sig, nil)
}
