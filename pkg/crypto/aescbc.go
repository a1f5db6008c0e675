// AES-CBC encrypt/decrypt and HMAC-SHA256 sign/verify for the
// symmetric algorithm suite OPC UA Part 7 assigns to Basic256Sha256
// and the Aes*RsaOaep/RsaPss policies: AES-CBC with PKCS#7 padding for
// confidentiality, HMAC-SHA256 for chunk integrity (Part 6 §6.2.3).

package crypto

import (
	"bytes"
	"crypto/aes"
	"crypto/cipher"
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"errors"
)

var (
	ErrInvalidBlockSize   = errors.New("aescbc: ciphertext is not a multiple of the block size")
	ErrInvalidPadding     = errors.New("aescbc: invalid PKCS#7 padding")
	ErrSignatureMismatch  = errors.New("aescbc: signature verification failed")
)

// EncryptCBC pads plaintext with PKCS#7 to a multiple of the AES block
// size, generates a random IV, and returns iv||ciphertext. key must be
// 16 or 32 bytes.
func EncryptCBC(key, plaintext []byte) ([]byte, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}
	padded := pkcs7Pad(plaintext, block.BlockSize())

	iv := make([]byte, block.BlockSize())
	if _, err := rand.Read(iv); err != nil {
		return nil, err
	}
	out := make([]byte, len(iv)+len(padded))
	copy(out, iv)
	cipher.NewCBCEncrypter(block, iv).CryptBlocks(out[len(iv):], padded)
	return out, nil
}

// DecryptCBC reverses EncryptCBC: in is iv||ciphertext, and the
// returned plaintext has its PKCS#7 padding stripped.
func DecryptCBC(key, in []byte) ([]byte, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}
	bs := block.BlockSize()
	if len(in) < bs || (len(in)-bs)%bs != 0 {
		return nil, ErrInvalidBlockSize
	}
	iv, ciphertext := in[:bs], in[bs:]
	out := make([]byte, len(ciphertext))
	cipher.NewCBCDecrypter(block, iv).CryptBlocks(out, ciphertext)
	return pkcs7Unpad(out, bs)
}

// EncryptCBCWithIV is EncryptCBC with an explicit IV, used by the
// secure channel when the IV is itself derived from the channel's
// keys instead of chosen at random per-message (Part 6 Table 33).
func EncryptCBCWithIV(key, iv, plaintext []byte) ([]byte, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}
	padded := pkcs7Pad(plaintext, block.BlockSize())
	out := make([]byte, len(padded))
	cipher.NewCBCEncrypter(block, iv).CryptBlocks(out, padded)
	return out, nil
}

// DecryptCBCWithIV is the counterpart to EncryptCBCWithIV: ciphertext
// carries no embedded IV, it is supplied separately.
func DecryptCBCWithIV(key, iv, ciphertext []byte) ([]byte, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}
	bs := block.BlockSize()
	if len(ciphertext)%bs != 0 {
		return nil, ErrInvalidBlockSize
	}
	out := make([]byte, len(ciphertext))
	cipher.NewCBCDecrypter(block, iv).CryptBlocks(out, ciphertext)
	return pkcs7Unpad(out, bs)
}

func pkcs7Pad(data []byte, blockSize int) []byte {
	padLen := blockSize - len(data)%blockSize
	padding := bytes.Repeat([]byte{byte(padLen)}, padLen)
	return append(append([]byte{}, data...), padding...)
}

func pkcs7Unpad(data []byte, blockSize int) ([]byte, error) {
	if len(data) == 0 || len(data)%blockSize != 0 {
		return nil, ErrInvalidPadding
	}
	padLen := int(data[len(data)-1])
	if padLen == 0 || padLen > blockSize || padLen > len(data) {
		return nil, ErrInvalidPadding
	}
	for _, b := range data[len(data)-padLen:] {
		if int(b) != padLen {
			return nil, ErrInvalidPadding
		}
	}
	return data[:len(data)-padLen], nil
}

// SignHMACSHA256 computes the HMAC-SHA256 signature appended to an
// outbound OPN/MSG/CLO chunk under Basic256Sha256.
func SignHMACSHA256(key, data []byte) []byte {
	h := hmac.New(sha256.New, key)
	h.Write(data)
	return h.Sum(nil)
}

// VerifyHMACSHA256 recomputes the signature over data and compares it
// in constant time to sig, returning ErrSignatureMismatch on failure.
func VerifyHMACSHA256(key, data, sig []byte) error {
	if !hmac.Equal(SignHMACSHA256(key, data), sig) {
		return ErrSignatureMismatch
	}
	return nil
}
