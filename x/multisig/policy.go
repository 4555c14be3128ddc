package multisig

import (
	"bytes"
	"sort"

	"github.com/quorumsig/quorum"
	"github.com/quorumsig/quorum/crypto"
	"github.com/quorumsig/quorum/errors"
)

const (
	// SchemeMultiEd25519 tags multisig authorization data when deriving
	// an account address.
	SchemeMultiEd25519 byte = 0x01

	// MaxKeys is the maximum number of keys a policy can hold. It is the
	// capacity of the aggregate signature bitmap.
	MaxKeys = 32
)

// Policy is an ordered list of public keys and the minimum number of
// distinct signers required to authorize a transaction. It is immutable
// after construction.
//
// The order of keys is semantically significant: the index position is
// the signer identity, not the key value. Two policies holding the same
// keys in a different order derive different account addresses.
type Policy struct {
	keys      []crypto.PublicKey
	threshold uint8
}

// NewPolicy returns a policy over the given keys in the given order.
// It requires 1 <= threshold <= len(keys) <= MaxKeys and well-formed
// keys. The key slice is copied, so the caller cannot mutate the policy
// afterwards.
func NewPolicy(keys []crypto.PublicKey, threshold uint8) (Policy, error) {
	switch n := len(keys); {
	case n == 0:
		return Policy{}, errors.Wrap(ErrInvalidPolicy, "no keys")
	case n > MaxKeys:
		return Policy{}, errors.Wrapf(ErrInvalidPolicy, "%d keys exceeds the maximum of %d", n, MaxKeys)
	}
	if threshold == 0 {
		return Policy{}, errors.Wrap(ErrInvalidPolicy, "zero threshold")
	}
	if int(threshold) > len(keys) {
		return Policy{}, errors.Wrapf(ErrInvalidPolicy, "threshold %d greater than %d keys", threshold, len(keys))
	}

	cpy := make([]crypto.PublicKey, len(keys))
	for i, k := range keys {
		if err := k.Validate(); err != nil {
			return Policy{}, errors.Wrapf(err, "key %d", i)
		}
		cpy[i] = k.Clone()
	}
	return Policy{keys: cpy, threshold: threshold}, nil
}

// NewSortedPolicy returns a policy with the keys in the canonical order:
// lexicographic by raw key bytes. Use it when independent parties must
// derive the same account address from a bare key set without agreeing
// on an order first. Duplicated keys are rejected, as under a canonical
// order a duplicate can only be a configuration mistake.
func NewSortedPolicy(keys []crypto.PublicKey, threshold uint8) (Policy, error) {
	cpy := make([]crypto.PublicKey, len(keys))
	for i, k := range keys {
		cpy[i] = k.Clone()
	}
	sort.Slice(cpy, func(i, j int) bool {
		return bytes.Compare(cpy[i], cpy[j]) < 0
	})
	for i := 1; i < len(cpy); i++ {
		if cpy[i].Equals(cpy[i-1]) {
			return Policy{}, errors.Wrapf(ErrInvalidPolicy, "duplicated key %s", cpy[i].Address())
		}
	}
	return NewPolicy(cpy, threshold)
}

// N returns the number of keys in the policy.
func (p Policy) N() int {
	return len(p.keys)
}

// Threshold returns the minimum number of distinct signers required.
func (p Policy) Threshold() uint8 {
	return p.threshold
}

// Key returns the public key at the given signer index.
func (p Policy) Key(index uint8) (crypto.PublicKey, error) {
	if int(index) >= len(p.keys) {
		return nil, errors.Wrapf(errors.ErrInput, "signer index %d outside of %d keys", index, len(p.keys))
	}
	return p.keys[index].Clone(), nil
}

// Keys returns a copy of the ordered key list.
func (p Policy) Keys() []crypto.PublicKey {
	cpy := make([]crypto.PublicKey, len(p.keys))
	for i, k := range p.keys {
		cpy[i] = k.Clone()
	}
	return cpy
}

// Validate returns an error unless the policy holds between 1 and
// MaxKeys well formed keys and a threshold within their count.
func (p Policy) Validate() error {
	if len(p.keys) == 0 || p.threshold == 0 {
		return errors.Wrap(ErrInvalidPolicy, "uninitialized policy")
	}
	if len(p.keys) > MaxKeys {
		return errors.Wrapf(ErrInvalidPolicy, "%d keys exceeds the maximum of %d", len(p.keys), MaxKeys)
	}
	if int(p.threshold) > len(p.keys) {
		return errors.Wrapf(ErrInvalidPolicy, "threshold %d greater than %d keys", p.threshold, len(p.keys))
	}
	for i, k := range p.keys {
		if err := k.Validate(); err != nil {
			return errors.Wrapf(err, "key %d", i)
		}
	}
	return nil
}

// Address derives the account address controlled by this policy. The
// derivation commits to the scheme tag, every key in order and the
// threshold, so anyone holding the policy can recompute the address
// offline and any permutation of keys yields a different address.
func (p Policy) Address() quorum.Address {
	data := make([]byte, 0, 1+len(p.keys)*crypto.PubKeySize+1)
	data = append(data, SchemeMultiEd25519)
	for _, k := range p.keys {
		data = append(data, k...)
	}
	data = append(data, p.threshold)
	return quorum.NewAddress(data)
}

// Equals checks if two policies hold the same keys in the same order
// with the same threshold.
func (p Policy) Equals(o Policy) bool {
	if p.threshold != o.threshold || len(p.keys) != len(o.keys) {
		return false
	}
	for i := range p.keys {
		if !p.keys[i].Equals(o.keys[i]) {
			return false
		}
	}
	return true
}
