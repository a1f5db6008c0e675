package crypto

import (
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"crypto/x509/pkix"
	"math/big"
	"testing"
	"time"
)

func selfSignedDER(t *testing.T) ([]byte, *rsa.PrivateKey) {
	t.Helper()
	priv, err := rsa.GenerateKey(rand.Reader, 2048)
	if err != nil {
		t.Fatal(err)
	}
	tmpl := &x509.Certificate{
		SerialNumber: big.NewInt(1),
		Subject:      pkix.Name{CommonName: "test"},
		NotBefore:    time.Unix(0, 0),
		NotAfter:     time.Unix(0, 0).Add(24 * time.Hour),
	}
	der, err := x509.CreateCertificate(rand.Reader, tmpl, tmpl, &priv.PublicKey, priv)
	if err != nil {
		t.Fatal(err)
	}
	return der, priv
}

func TestPublicKeyFromDER(t *testing.T) {
	der, priv := selfSignedDER(t)
	pub, err := PublicKeyFromDER(der)
	if err != nil {
		t.Fatal(err)
	}
	if pub.N.Cmp(priv.PublicKey.N) != 0 {
		t.Fatal("extracted public key does not match")
	}
}

func TestThumbprint(t *testing.T) {
	der, _ := selfSignedDER(t)
	a := Thumbprint(der)
	b := Thumbprint(der)
	if a != b {
		t.Fatal("thumbprint not deterministic")
	}
}
