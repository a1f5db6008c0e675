package securechannel

import (
	"crypto/rsa"
	"crypto/sha1"
	"crypto/sha256"
	"fmt"

	"github.com/backkem/go-opcua/pkg/crypto"
	"github.com/backkem/go-opcua/pkg/transport"
	"github.com/backkem/go-opcua/pkg/ua"
)

func (sc *SecureChannel) useSha256OAEP() bool {
	return sc.cfg.SecurityPolicyURI == crypto.SecurityPolicyAes128Sha256RsaOaep ||
		sc.cfg.SecurityPolicyURI == crypto.SecurityPolicyAes256Sha256RsaPss
}

func (sc *SecureChannel) signAsymmetric(data []byte) ([]byte, error) {
	if sc.cfg.SecurityPolicyURI == crypto.SecurityPolicyAes256Sha256RsaPss {
		return crypto.SignPSSSHA256(sc.cfg.LocalPrivateKey, data)
	}
	return crypto.SignPKCS1v15SHA256(sc.cfg.LocalPrivateKey, data)
}

func (sc *SecureChannel) verifyAsymmetric(data, sig []byte) error {
	pub := sc.cfg.RemotePublicKey
	if sc.cfg.SecurityPolicyURI == crypto.SecurityPolicyAes256Sha256RsaPss {
		return crypto.VerifyPSSSHA256(pub, data, sig)
	}
	return crypto.VerifyPKCS1v15SHA256(pub, data, sig)
}

func (sc *SecureChannel) oaepOverhead() int {
	if sc.useSha256OAEP() {
		return 2*sha256.Size + 2
	}
	return 2*sha1.Size + 2
}

func (sc *SecureChannel) oaepEncrypt(pub *rsa.PublicKey, block []byte) ([]byte, error) {
	if sc.useSha256OAEP() {
		return crypto.EncryptOAEPSha256(pub, block)
	}
	return crypto.EncryptOAEPSha1(pub, block)
}

func (sc *SecureChannel) oaepDecrypt(priv *rsa.PrivateKey, block []byte) ([]byte, error) {
	if sc.useSha256OAEP() {
		return crypto.DecryptOAEPSha256(priv, block)
	}
	return crypto.DecryptOAEPSha1(priv, block)
}

// sendAsymmetric frames, signs and encrypts one OpenSecureChannel
// chunk using the peer's certificate (Part 6 §5.5.2: OPN always uses
// the asymmetric algorithm suite, independent of SecurityMode).
func (sc *SecureChannel) sendAsymmetric(seqHeader ua.SequenceHeader, body []byte) error {
	secHeader := ua.AsymmetricSecurityHeader{
		SecurityPolicyURI: sc.policyURI(),
	}
	if !sc.policy.IsNone() {
		secHeader.SenderCertificate = sc.cfg.LocalCertificate
		thumb := crypto.Thumbprint(sc.cfg.RemoteCertificate)
		secHeader.ReceiverCertificateThumbprint = thumb[:]
	}

	he := ua.NewEncoder()
	he.AsymmetricSecurityHeader(secHeader)
	secHeaderBytes := he.Bytes()

	se := ua.NewEncoder()
	se.SequenceHeader(seqHeader)
	seqHeaderBytes := se.Bytes()

	var chunkBody []byte
	if sc.policy.IsNone() {
		chunkBody = append(append([]byte{}, secHeaderBytes...), append(seqHeaderBytes, body...)...)
	} else {
		signed := append(append([]byte{}, secHeaderBytes...), append(seqHeaderBytes, body...)...)
		sig, err := sc.signAsymmetric(signed)
		if err != nil {
			return fmt.Errorf("securechannel: sign OPN chunk: %w", err)
		}
		toEncrypt := append(append(seqHeaderBytes, body...), sig...)
		plainBlockSize := sc.cfg.RemotePublicKey.Size() - sc.oaepOverhead()
		ciphertext, err := crypto.EncryptAsymmetricBlocks(toEncrypt, plainBlockSize, func(b []byte) ([]byte, error) {
			return sc.oaepEncrypt(sc.cfg.RemotePublicKey, b)
		})
		if err != nil {
			return fmt.Errorf("securechannel: encrypt OPN chunk: %w", err)
		}
		chunkBody = append(append([]byte{}, secHeaderBytes...), ciphertext...)
	}

	return sc.conn.WriteChunks(transport.MessageTypeOpenChannel, sc.channelID, [][]byte{chunkBody})
}

// recvAsymmetric reverses sendAsymmetric for an incoming OPN chunk,
// returning the decoded SequenceHeader and the service body bytes.
func (sc *SecureChannel) recvAsymmetric(f transport.Frame) (ua.SequenceHeader, []byte, error) {
	d := ua.NewDecoder(f.Body)
	secHeader, err := d.AsymmetricSecurityHeader("SecurityHeader")
	if err != nil {
		return ua.SequenceHeader{}, nil, err
	}
	rest := f.Body[d.Pos():]

	if sc.policy.IsNone() {
		sd := ua.NewDecoder(rest)
		seqHeader, err := sd.SequenceHeader("SequenceHeader")
		if err != nil {
			return ua.SequenceHeader{}, nil, err
		}
		return seqHeader, rest[sd.Pos():], nil
	}

	cipherBlockSize := sc.cfg.LocalPrivateKey.Size()
	plainBlockSize := cipherBlockSize - sc.oaepOverhead()
	plaintext, err := crypto.DecryptAsymmetricBlocks(rest, cipherBlockSize, plainBlockSize, func(b []byte) ([]byte, error) {
		return sc.oaepDecrypt(sc.cfg.LocalPrivateKey, b)
	})
	if err != nil {
		return ua.SequenceHeader{}, nil, fmt.Errorf("securechannel: decrypt OPN chunk: %w", err)
	}

	sigSize := sc.cfg.RemotePublicKey.Size()
	if len(plaintext) < sigSize {
		return ua.SequenceHeader{}, nil, ErrUnexpectedMessageType
	}
	signedBody, sig := plaintext[:len(plaintext)-sigSize], plaintext[len(plaintext)-sigSize:]

	signed := append(append([]byte{}, f.Body[:d.Pos()]...), signedBody...)
	if err := sc.verifyAsymmetric(signed, sig); err != nil {
		return ua.SequenceHeader{}, nil, err
	}

	sd := ua.NewDecoder(signedBody)
	seqHeader, err := sd.SequenceHeader("SequenceHeader")
	if err != nil {
		return ua.SequenceHeader{}, nil, err
	}
	if secHeader.SecurityPolicyURI != sc.policyURI() {
		return ua.SequenceHeader{}, nil, ErrUnexpectedMessageType
	}
	return seqHeader, signedBody[sd.Pos():], nil
}

// sendSymmetric frames, signs and encrypts one MSG/CLO chunk using the
// channel's derived symmetric keys (spec.md §4.5).
func (sc *SecureChannel) sendSymmetric(msgType transport.MessageType, seqHeader ua.SequenceHeader, body []byte) error {
	sc.tokenMu.RLock()
	tokenID := sc.token.TokenID
	sc.tokenMu.RUnlock()

	he := ua.NewEncoder()
	he.SymmetricSecurityHeader(ua.SymmetricSecurityHeader{TokenID: tokenID})
	secHeaderBytes := he.Bytes()

	se := ua.NewEncoder()
	se.SequenceHeader(seqHeader)
	seqHeaderBytes := se.Bytes()

	var chunkBody []byte
	if sc.policy.IsNone() {
		chunkBody = append(append([]byte{}, secHeaderBytes...), append(seqHeaderBytes, body...)...)
	} else {
		signed := append(append([]byte{}, secHeaderBytes...), append(seqHeaderBytes, body...)...)
		sig := crypto.SignHMACSHA256(sc.sendKeys.SigningKey, signed)
		toEncrypt := append(append(seqHeaderBytes, body...), sig...)
		ciphertext, err := crypto.EncryptCBCWithIV(sc.sendKeys.EncryptKey, sc.sendKeys.IV, toEncrypt)
		if err != nil {
			return fmt.Errorf("securechannel: encrypt chunk: %w", err)
		}
		chunkBody = append(append([]byte{}, secHeaderBytes...), ciphertext...)
	}

	return sc.conn.WriteChunks(msgType, sc.channelID, [][]byte{chunkBody})
}

// recvSymmetric reverses sendSymmetric for an incoming MSG/CLO chunk.
func (sc *SecureChannel) recvSymmetric(f transport.Frame) (ua.SequenceHeader, []byte, error) {
	d := ua.NewDecoder(f.Body)
	if _, err := d.SymmetricSecurityHeader("SecurityHeader"); err != nil {
		return ua.SequenceHeader{}, nil, err
	}
	secHeaderBytes := f.Body[:d.Pos()]
	rest := f.Body[d.Pos():]

	if sc.policy.IsNone() {
		sd := ua.NewDecoder(rest)
		seqHeader, err := sd.SequenceHeader("SequenceHeader")
		if err != nil {
			return ua.SequenceHeader{}, nil, err
		}
		return seqHeader, rest[sd.Pos():], nil
	}

	plaintext, err := crypto.DecryptCBCWithIV(sc.recvKeys.EncryptKey, sc.recvKeys.IV, rest)
	if err != nil {
		return ua.SequenceHeader{}, nil, fmt.Errorf("securechannel: decrypt chunk: %w", err)
	}
	sigSize := sc.policy.SignatureSize
	if len(plaintext) < sigSize {
		return ua.SequenceHeader{}, nil, ErrUnexpectedMessageType
	}
	signedBody, sig := plaintext[:len(plaintext)-sigSize], plaintext[len(plaintext)-sigSize:]

	signed := append(append([]byte{}, secHeaderBytes...), signedBody...)
	if err := crypto.VerifyHMACSHA256(sc.recvKeys.SigningKey, signed, sig); err != nil {
		return ua.SequenceHeader{}, nil, err
	}

	sd := ua.NewDecoder(signedBody)
	seqHeader, err := sd.SequenceHeader("SequenceHeader")
	if err != nil {
		return ua.SequenceHeader{}, nil, err
	}
	return seqHeader, signedBody[sd.Pos():], nil
}

func (sc *SecureChannel) policyURI() string {
	if sc.cfg.SecurityPolicyURI == "" {
		return crypto.SecurityPolicyNone
	}
	return sc.cfg.SecurityPolicyURI
}
