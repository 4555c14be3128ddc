package crypto

import (
	"bytes"

	"github.com/quorumsig/quorum"
	"github.com/quorumsig/quorum/errors"
	"golang.org/x/crypto/ed25519"
)

const (
	// PubKeySize is the size of a serialized public key.
	PubKeySize = ed25519.PublicKeySize
	// PrivKeySize is the size of a serialized private key.
	PrivKeySize = ed25519.PrivateKeySize
	// SignatureSize is the size of a signature.
	SignatureSize = ed25519.SignatureSize
	// SeedSize is the size of a private key seed.
	SeedSize = ed25519.SeedSize
)

// SchemeEd25519 tags authorization data of a single ed25519 key when
// deriving an account address.
const SchemeEd25519 byte = 0x00

// PublicKey is a raw ed25519 public key.
type PublicKey []byte

// Signature is a raw ed25519 signature over a message.
type Signature []byte

// PrivateKey is a raw ed25519 private key. It is owned exclusively by
// its key holder and never leaves the process.
type PrivateKey []byte

// PubKey represents a public key we can verify signatures with.
type PubKey interface {
	Verify(message []byte, sig Signature) bool
	Address() quorum.Address
}

// Signer is the functionality we use from a private key.
// No serializing to support hardware devices as well.
type Signer interface {
	Sign(message []byte) (Signature, error)
	PublicKey() PublicKey
}

var _ PubKey = PublicKey(nil)
var _ Signer = PrivateKey(nil)

// Verify verifies the signature was created with this message and
// public key.
func (p PublicKey) Verify(message []byte, sig Signature) bool {
	if len(p) != PubKeySize || len(sig) != SignatureSize {
		return false
	}
	return ed25519.Verify(ed25519.PublicKey(p), message, sig)
}

// Address returns the account address controlled by this single key.
func (p PublicKey) Address() quorum.Address {
	data := make([]byte, 0, 1+len(p))
	data = append(data, SchemeEd25519)
	data = append(data, p...)
	return quorum.NewAddress(data)
}

// Equals checks if two public keys hold the same key material.
func (p PublicKey) Equals(o PublicKey) bool {
	return bytes.Equal(p, o)
}

// Validate returns an error if the public key is not the proper size.
func (p PublicKey) Validate() error {
	if len(p) == 0 {
		return errors.Wrap(errors.ErrEmpty, "public key")
	}
	if len(p) != PubKeySize {
		return errors.Wrapf(errors.ErrInput, "public key length %d", len(p))
	}
	return nil
}

// Clone returns an independent copy of the public key.
func (p PublicKey) Clone() PublicKey {
	cpy := make(PublicKey, len(p))
	copy(cpy, p)
	return cpy
}

// Validate returns an error if the signature is not the proper size.
func (s Signature) Validate() error {
	if len(s) == 0 {
		return errors.Wrap(errors.ErrEmpty, "signature")
	}
	if len(s) != SignatureSize {
		return errors.Wrapf(errors.ErrInput, "signature length %d", len(s))
	}
	return nil
}

// Clone returns an independent copy of the signature.
func (s Signature) Clone() Signature {
	cpy := make(Signature, len(s))
	copy(cpy, s)
	return cpy
}

// Sign returns a matching signature for this private key
func (p PrivateKey) Sign(message []byte) (Signature, error) {
	if len(p) != PrivKeySize {
		return nil, errors.Wrapf(errors.ErrInput, "private key length %d", len(p))
	}
	return Signature(ed25519.Sign(ed25519.PrivateKey(p), message)), nil
}

// PublicKey returns the corresponding PublicKey
func (p PrivateKey) PublicKey() PublicKey {
	pub := ed25519.PrivateKey(p).Public().(ed25519.PublicKey)
	return PublicKey(pub)
}

// GenPrivKeyEd25519 returns a random new private key
// (TODO: look at sources of randomness, other than default crypto/rand)
func GenPrivKeyEd25519() PrivateKey {
	_, priv, err := ed25519.GenerateKey(nil)
	if err != nil {
		panic(err)
	}
	return PrivateKey(priv)
}

// PrivKeyEd25519FromSeed will deterministically generate a private key
// from a given seed. Use if you have a strong source of external
// randomness, or for deterministic keys in test cases.
func PrivKeyEd25519FromSeed(seed []byte) PrivateKey {
	return PrivateKey(ed25519.NewKeyFromSeed(seed))
}
