package crypto

import "testing"

func TestPSHA256Length(t *testing.T) {
	secret := []byte("client-nonce")
	seed := []byte("server-nonce")
	for _, n := range []int{1, 31, 32, 33, 96, 100} {
		out := PSHA256(secret, seed, n)
		if len(out) != n {
			t.Fatalf("length %d: got %d bytes", n, len(out))
		}
	}
}

func TestPSHA256Deterministic(t *testing.T) {
	a := PSHA256([]byte("s"), []byte("z"), 64)
	b := PSHA256([]byte("s"), []byte("z"), 64)
	if string(a) != string(b) {
		t.Fatal("PSHA256 is not deterministic for identical inputs")
	}
	c := PSHA256([]byte("s"), []byte("y"), 64)
	if string(a) == string(c) {
		t.Fatal("different seeds produced identical output")
	}
}

func TestDeriveKeysBasic256Sha256(t *testing.T) {
	policy, err := LookupPolicy(SecurityPolicyBasic256Sha256)
	if err != nil {
		t.Fatal(err)
	}
	k := DeriveKeys(policy, []byte("remote-nonce-bytes-000000000000"), []byte("local-nonce-bytes-0000000000000"))
	if len(k.SigningKey) != 32 || len(k.EncryptKey) != 32 || len(k.IV) != 16 {
		t.Fatalf("got signing=%d encrypt=%d iv=%d", len(k.SigningKey), len(k.EncryptKey), len(k.IV))
	}
}
