package crypto

import (
	"bytes"
	"testing"
)

func TestEncryptDecryptCBCRoundtrip(t *testing.T) {
	key := bytes.Repeat([]byte{0x42}, 32)
	for _, plain := range [][]byte{
		[]byte(""),
		[]byte("short"),
		bytes.Repeat([]byte{0x01}, 16),
		bytes.Repeat([]byte{0x02}, 100),
	} {
		ct, err := EncryptCBC(key, plain)
		if err != nil {
			t.Fatalf("EncryptCBC: %v", err)
		}
		pt, err := DecryptCBC(key, ct)
		if err != nil {
			t.Fatalf("DecryptCBC: %v", err)
		}
		if !bytes.Equal(pt, plain) {
			t.Fatalf("roundtrip mismatch: got %v want %v", pt, plain)
		}
	}
}

func TestEncryptCBCWithIVDeterministic(t *testing.T) {
	key := bytes.Repeat([]byte{0x11}, 16)
	iv := bytes.Repeat([]byte{0x22}, 16)
	plain := []byte("deterministic message")

	ct1, err := EncryptCBCWithIV(key, iv, plain)
	if err != nil {
		t.Fatal(err)
	}
	ct2, err := EncryptCBCWithIV(key, iv, plain)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(ct1, ct2) {
		t.Fatal("same key/iv/plaintext produced different ciphertext")
	}

	pt, err := DecryptCBCWithIV(key, iv, ct1)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(pt, plain) {
		t.Fatalf("got %q want %q", pt, plain)
	}
}

func TestDecryptCBCBadPadding(t *testing.T) {
	key := bytes.Repeat([]byte{0x33}, 16)
	ct, err := EncryptCBC(key, []byte("hello"))
	if err != nil {
		t.Fatal(err)
	}
	ct[len(ct)-1] ^= 0xFF // corrupt the last padding byte
	if _, err := DecryptCBC(key, ct); err == nil {
		t.Fatal("want padding error")
	}
}

func TestSignVerifyHMACSHA256(t *testing.T) {
	key := []byte("signing-key")
	data := []byte("chunk body bytes")
	sig := SignHMACSHA256(key, data)
	if err := VerifyHMACSHA256(key, data, sig); err != nil {
		t.Fatalf("VerifyHMACSHA256: %v", err)
	}
	sig[0] ^= 0xFF
	if err := VerifyHMACSHA256(key, data, sig); err == nil {
		t.Fatal("want ErrSignatureMismatch for tampered signature")
	}
}
