package crypto

import (
	"testing"
)

func TestDerivePrivKey(t *testing.T) {
	seed := []byte("0123456789abcdef0123456789abcdef")

	a, err := DerivePrivKey(seed, "m/44'/234'/0'")
	if err != nil {
		t.Fatalf("cannot derive: %+v", err)
	}
	b, err := DerivePrivKey(seed, "m/44'/234'/0'")
	if err != nil {
		t.Fatalf("cannot derive: %+v", err)
	}
	if !a.PublicKey().Equals(b.PublicKey()) {
		t.Fatal("same seed and path must derive the same key")
	}

	c, err := DerivePrivKey(seed, "m/44'/234'/1'")
	if err != nil {
		t.Fatalf("cannot derive: %+v", err)
	}
	if a.PublicKey().Equals(c.PublicKey()) {
		t.Fatal("different path must derive a different key")
	}
}

func TestDerivePrivKeyHex(t *testing.T) {
	if _, err := DerivePrivKeyHex("not-hex", "m/44'/234'/0'"); err == nil {
		t.Fatal("malformed seed must be rejected")
	}

	const hexSeed = "30313233343536373839616263646566" // "0123456789abcdef"
	got, err := DerivePrivKeyHex(hexSeed, "m/44'/234'/0'")
	if err != nil {
		t.Fatalf("cannot derive: %+v", err)
	}
	want, err := DerivePrivKey([]byte("0123456789abcdef"), "m/44'/234'/0'")
	if err != nil {
		t.Fatalf("cannot derive: %+v", err)
	}
	if !got.PublicKey().Equals(want.PublicKey()) {
		t.Fatal("hex seed must derive the same key as its raw form")
	}
}
