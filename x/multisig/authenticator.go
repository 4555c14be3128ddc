package multisig

import (
	"math/bits"

	"github.com/quorumsig/quorum/crypto"
	"github.com/quorumsig/quorum/errors"
)

// BitmapSize is the size of the signer bitmap in bytes. One bit per
// possible signer index, so it covers MaxKeys positions.
const BitmapSize = MaxKeys / 8

// AggregateSignature is a bitmap indexed collection of signatures. Bit i
// of the bitmap marks that signer index i contributed, and signatures
// are stored aligned in ascending index order.
type AggregateSignature struct {
	bitmap [BitmapSize]byte
	sigs   []crypto.Signature
}

// Count returns the number of signers present in the bitmap.
func (a AggregateSignature) Count() int {
	n := 0
	for _, b := range a.bitmap {
		n += bits.OnesCount8(b)
	}
	return n
}

// Has returns true if the given signer index contributed a signature.
func (a AggregateSignature) Has(index uint8) bool {
	if index >= MaxKeys {
		return false
	}
	return a.bitmap[index/8]&(0x80>>(index%8)) != 0
}

// Bitmap returns the raw signer bitmap. Bit i, most significant first
// within each byte, marks signer index i.
func (a AggregateSignature) Bitmap() [BitmapSize]byte {
	return a.bitmap
}

// Signatures returns a copy of the signatures in ascending signer index
// order.
func (a AggregateSignature) Signatures() []crypto.Signature {
	cpy := make([]crypto.Signature, len(a.sigs))
	for i, s := range a.sigs {
		cpy[i] = s.Clone()
	}
	return cpy
}

// Validate returns an error unless the bitmap and the signature list
// align one to one and every signature is well formed.
func (a AggregateSignature) Validate() error {
	if a.Count() != len(a.sigs) {
		return errors.Wrapf(errors.ErrState, "bitmap holds %d signers but %d signatures present", a.Count(), len(a.sigs))
	}
	for i, s := range a.sigs {
		if err := s.Validate(); err != nil {
			return errors.Wrapf(err, "signature %d", i)
		}
	}
	return nil
}

// indexes returns the signer indexes present in the bitmap, ascending.
func (a AggregateSignature) indexes() []uint8 {
	idx := make([]uint8, 0, len(a.sigs))
	for i := uint8(0); i < MaxKeys; i++ {
		if a.Has(i) {
			idx = append(idx, i)
		}
	}
	return idx
}

func (a *AggregateSignature) set(index uint8, sig crypto.Signature) {
	a.bitmap[index/8] |= 0x80 >> (index % 8)

	// Keep the signature list aligned with ascending index order.
	at := 0
	for i := uint8(0); i < index; i++ {
		if a.Has(i) {
			at++
		}
	}
	a.sigs = append(a.sigs, nil)
	copy(a.sigs[at+1:], a.sigs[at:])
	a.sigs[at] = sig.Clone()
}

func (a AggregateSignature) clone() AggregateSignature {
	cpy := AggregateSignature{bitmap: a.bitmap}
	cpy.sigs = make([]crypto.Signature, len(a.sigs))
	for i, s := range a.sigs {
		cpy.sigs[i] = s.Clone()
	}
	return cpy
}

// Authenticator combines a policy with an aggregate signature into the
// verifiable proof that a transaction was authorized. It is the object
// shipped inside a signed transaction and checked by every relying
// party.
type Authenticator struct {
	policy Policy
	agg    AggregateSignature
}

// NewAuthenticator returns an authenticator after checking that the
// aggregate structurally fits the policy. It does not verify signatures;
// call Verify with the signing message for that.
func NewAuthenticator(policy Policy, agg AggregateSignature) (Authenticator, error) {
	a := Authenticator{policy: policy, agg: agg.clone()}
	if err := a.Validate(); err != nil {
		return Authenticator{}, err
	}
	return a, nil
}

// Policy returns the policy this authenticator was assembled under.
func (a Authenticator) Policy() Policy {
	return a.policy
}

// Aggregate returns a copy of the aggregate signature.
func (a Authenticator) Aggregate() AggregateSignature {
	return a.agg.clone()
}

// Validate checks the structural invariants: a valid policy, an aligned
// aggregate and no bitmap entry outside of the policy key list.
func (a Authenticator) Validate() error {
	if err := a.policy.Validate(); err != nil {
		return err
	}
	if err := a.agg.Validate(); err != nil {
		return err
	}
	for _, idx := range a.agg.indexes() {
		if int(idx) >= a.policy.N() {
			return errors.Wrapf(errors.ErrState, "bitmap signer %d outside of %d policy keys", idx, a.policy.N())
		}
	}
	return nil
}

// Verify checks that the aggregate signature authorizes the given
// signing message under the policy. It fails closed: an aggregate below
// the threshold returns ErrThresholdNotMet and a single signature that
// does not verify under its key invalidates the whole authenticator.
func (a Authenticator) Verify(message []byte) error {
	if err := a.Validate(); err != nil {
		return err
	}
	if got := a.agg.Count(); got < int(a.policy.Threshold()) {
		return errors.Wrapf(ErrThresholdNotMet, "%d of %d required signatures", got, a.policy.Threshold())
	}
	for i, idx := range a.agg.indexes() {
		key := a.policy.keys[idx]
		if !key.Verify(message, a.agg.sigs[i]) {
			return errors.Wrapf(ErrSignatureMismatch, "signer %d", idx)
		}
	}
	return nil
}
