package crypto

import "errors"

// ErrAsymmetricBlockSize is returned for a zero/negative block size or
// a ciphertext whose length isn't a multiple of the RSA key's block
// size.
var ErrAsymmetricBlockSize = errors.New("crypto: invalid asymmetric block size")

// EncryptAsymmetricBlocks implements Part 6 §6.7.4's scheme for
// asymmetric OPN chunk encryption: plaintext is PKCS#7-padded to a
// multiple of plainBlockSize (the largest amount an RSA-OAEP call
// against the peer's key can take), split into plainBlockSize pieces,
// and each piece is encrypted independently with encryptBlock. The
// resulting ciphertext blocks are concatenated into the single OPN
// chunk body.
func EncryptAsymmetricBlocks(plaintext []byte, plainBlockSize int, encryptBlock func([]byte) ([]byte, error)) ([]byte, error) {
	if plainBlockSize <= 0 {
		return nil, ErrAsymmetricBlockSize
	}
	padded := pkcs7Pad(plaintext, plainBlockSize)
	out := make([]byte, 0, len(padded)*2)
	for i := 0; i < len(padded); i += plainBlockSize {
		block, err := encryptBlock(padded[i : i+plainBlockSize])
		if err != nil {
			return nil, err
		}
		out = append(out, block...)
	}
	return out, nil
}

// DecryptAsymmetricBlocks reverses EncryptAsymmetricBlocks: ciphertext
// is split into cipherBlockSize pieces (the RSA key's modulus size),
// each decrypted with decryptBlock, concatenated, then PKCS#7-unpadded
// against plainBlockSize.
func DecryptAsymmetricBlocks(ciphertext []byte, cipherBlockSize, plainBlockSize int, decryptBlock func([]byte) ([]byte, error)) ([]byte, error) {
	if cipherBlockSize <= 0 || len(ciphertext)%cipherBlockSize != 0 {
		return nil, ErrAsymmetricBlockSize
	}
	out := make([]byte, 0, len(ciphertext))
	for i := 0; i < len(ciphertext); i += cipherBlockSize {
		block, err := decryptBlock(ciphertext[i : i+cipherBlockSize])
		if err != nil {
			return nil, err
		}
		out = append(out, block...)
	}
	return pkcs7Unpad(out, plainBlockSize)
}
