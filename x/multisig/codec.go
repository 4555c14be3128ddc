package multisig

import (
	"github.com/quorumsig/quorum/crypto"
	"github.com/quorumsig/quorum/errors"
)

// The authenticator wire format is fixed:
//
//	scheme     1 byte, SchemeMultiEd25519
//	key count  1 byte
//	keys       32 bytes each, policy order
//	threshold  1 byte
//	bitmap     4 bytes, bit i marks signer index i
//	sig count  1 byte
//	signatures 64 bytes each, ascending signer index order
//
// Every value has exactly one encoding, so authenticator bytes can be
// hashed and compared directly.

// Marshal serializes the authenticator into its wire format.
func (a Authenticator) Marshal() ([]byte, error) {
	if err := a.Validate(); err != nil {
		return nil, err
	}

	size := 1 + 1 + a.policy.N()*crypto.PubKeySize + 1 + BitmapSize + 1 + len(a.agg.sigs)*crypto.SignatureSize
	out := make([]byte, 0, size)

	out = append(out, SchemeMultiEd25519)
	out = append(out, byte(a.policy.N()))
	for _, k := range a.policy.keys {
		out = append(out, k...)
	}
	out = append(out, a.policy.threshold)
	out = append(out, a.agg.bitmap[:]...)
	out = append(out, byte(len(a.agg.sigs)))
	for _, s := range a.agg.sigs {
		out = append(out, s...)
	}
	return out, nil
}

// UnmarshalAuthenticator deserializes an authenticator from its wire
// format. Truncated input, trailing bytes or a bitmap that does not
// align with the signature list fail with ErrEncodingMismatch.
func UnmarshalAuthenticator(data []byte) (Authenticator, error) {
	if len(data) < 2 {
		return Authenticator{}, errors.Wrap(errors.ErrEncodingMismatch, "truncated authenticator")
	}
	if data[0] != SchemeMultiEd25519 {
		return Authenticator{}, errors.Wrapf(errors.ErrEncodingMismatch, "unknown scheme %d", data[0])
	}
	nkeys := int(data[1])
	at := 2

	if len(data) < at+nkeys*crypto.PubKeySize+1+BitmapSize+1 {
		return Authenticator{}, errors.Wrap(errors.ErrEncodingMismatch, "truncated authenticator")
	}
	keys := make([]crypto.PublicKey, nkeys)
	for i := range keys {
		keys[i] = crypto.PublicKey(data[at : at+crypto.PubKeySize]).Clone()
		at += crypto.PubKeySize
	}
	threshold := data[at]
	at++

	var agg AggregateSignature
	copy(agg.bitmap[:], data[at:at+BitmapSize])
	at += BitmapSize

	nsigs := int(data[at])
	at++
	if agg.Count() != nsigs {
		return Authenticator{}, errors.Wrapf(errors.ErrEncodingMismatch, "bitmap holds %d signers but %d signatures encoded", agg.Count(), nsigs)
	}
	if len(data) != at+nsigs*crypto.SignatureSize {
		return Authenticator{}, errors.Wrapf(errors.ErrEncodingMismatch, "authenticator length %d", len(data))
	}
	agg.sigs = make([]crypto.Signature, nsigs)
	for i := range agg.sigs {
		agg.sigs[i] = crypto.Signature(data[at : at+crypto.SignatureSize]).Clone()
		at += crypto.SignatureSize
	}

	policy, err := NewPolicy(keys, threshold)
	if err != nil {
		return Authenticator{}, err
	}
	return NewAuthenticator(policy, agg)
}
