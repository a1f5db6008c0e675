// Package crypto provides the cryptographic primitives the secure
// channel layer needs: the P_SHA256 key derivation function, AES-CBC
// sign+encrypt for Basic256Sha256, and the RSA operations used during
// OpenSecureChannel and password-protected identity tokens.
package crypto

import (
	"crypto/hmac"
	"crypto/sha256"
)

// PSHA256 implements the P_hash(secret, seed) pseudo-random function
// from RFC 2246 §5, instantiated with HMAC-SHA256, as required by OPC
// UA Part 6 §6.2.4 to derive the signing/encryption/IV keys for a
// secure channel from the two nonces exchanged in OpenSecureChannel.
//
//	A(0) = seed
//	A(i) = HMAC_SHA256(secret, A(i-1))
//	P_SHA256(secret, seed) = HMAC(secret, A(1)+seed) || HMAC(secret, A(2)+seed) || ...
//
// length bytes are returned, truncating the final HMAC block if
// length is not a multiple of 32.
func PSHA256(secret, seed []byte, length int) []byte {
	out := make([]byte, 0, length+sha256.Size)
	a := seed
	for len(out) < length {
		a = hmacSum(secret, a)
		out = append(out, hmacSum(secret, append(append([]byte{}, a...), seed...))...)
	}
	return out[:length]
}

func hmacSum(key, data []byte) []byte {
	h := hmac.New(sha256.New, key)
	h.Write(data)
	return h.Sum(nil)
}

// DerivedKeys holds the signing key, encryption key, and initialization
// vector derived for one direction of a secure channel.
type DerivedKeys struct {
	SigningKey []byte
	EncryptKey []byte
	IV         []byte
}

// DeriveKeys runs PSHA256(secret, seed) and slices the output into the
// signing key, encryption key, and IV sizes policy specifies. secret
// is the remote party's nonce, seed is the local party's nonce (or
// vice versa for the other direction), per Part 6 Table 33.
func DeriveKeys(policy *SecurityPolicy, secret, seed []byte) DerivedKeys {
	total := policy.SigningKeyLength + policy.EncryptionKeyLength + policy.BlockSize
	block := PSHA256(secret, seed, total)
	return DerivedKeys{
		SigningKey: block[:policy.SigningKeyLength],
		EncryptKey: block[policy.SigningKeyLength : policy.SigningKeyLength+policy.EncryptionKeyLength],
		IV:         block[policy.SigningKeyLength+policy.EncryptionKeyLength:],
	}
}
