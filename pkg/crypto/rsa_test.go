package crypto

import (
	"crypto/rand"
	"crypto/rsa"
	"testing"
)

func testKey(t *testing.T) *rsa.PrivateKey {
	t.Helper()
	k, err := rsa.GenerateKey(rand.Reader, 2048)
	if err != nil {
		t.Fatalf("GenerateKey: %v", err)
	}
	return k
}

func TestEncryptDecryptOAEPSha1Roundtrip(t *testing.T) {
	priv := testKey(t)
	plain := []byte("nonce bytes exchanged in OpenSecureChannel")
	ct, err := EncryptOAEPSha1(&priv.PublicKey, plain)
	if err != nil {
		t.Fatal(err)
	}
	pt, err := DecryptOAEPSha1(priv, ct)
	if err != nil {
		t.Fatal(err)
	}
	if string(pt) != string(plain) {
		t.Fatalf("got %q want %q", pt, plain)
	}
}

func TestEncryptPasswordSucceeds(t *testing.T) {
	priv := testKey(t)
	_, err := EncryptPassword(&priv.PublicKey, []byte("hunter2"), []byte("server-nonce-000"), false)
	if err != nil {
		t.Fatal(err)
	}
}

func TestSignVerifyPKCS1v15(t *testing.T) {
	priv := testKey(t)
	data := []byte("serverCert||serverNonce")
	sig, err := SignPKCS1v15SHA256(priv, data)
	if err != nil {
		t.Fatal(err)
	}
	if err := VerifyPKCS1v15SHA256(&priv.PublicKey, data, sig); err != nil {
		t.Fatalf("verify: %v", err)
	}
	if err := VerifyPKCS1v15SHA256(&priv.PublicKey, []byte("tampered"), sig); err == nil {
		t.Fatal("want verification failure for tampered data")
	}
}

func TestSignVerifyPSS(t *testing.T) {
	priv := testKey(t)
	data := []byte("serverCert||serverNonce")
	sig, err := SignPSSSHA256(priv, data)
	if err != nil {
		t.Fatal(err)
	}
	if err := VerifyPSSSHA256(&priv.PublicKey, data, sig); err != nil {
		t.Fatalf("verify: %v", err)
	}
}
