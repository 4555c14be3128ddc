package multisig

import (
	"sync"

	"github.com/quorumsig/quorum/crypto"
	"github.com/quorumsig/quorum/errors"
)

// Collector gathers signatures from individual key holders for a single
// signing message under a single policy. Signatures are transient here:
// once aggregated into an Authenticator the collector can be dropped.
//
// A collector is safe for concurrent use. Key holders sign on their own
// and only the admission of a signature is serialized, so the bitmap and
// the signature list always mutate together and a concurrent reader
// never observes a partially applied add.
type Collector struct {
	mu      sync.Mutex
	policy  Policy
	message []byte
	agg     AggregateSignature
}

// NewCollector returns a collector bound to the given policy and signing
// message. Every added signature is checked against this exact message,
// which ties the collected authorization to one transaction encoding.
func NewCollector(policy Policy, message []byte) (*Collector, error) {
	if err := policy.Validate(); err != nil {
		return nil, err
	}
	if len(message) == 0 {
		return nil, errors.Wrap(errors.ErrEmpty, "signing message")
	}
	msg := make([]byte, len(message))
	copy(msg, message)
	return &Collector{policy: policy, message: msg}, nil
}

// Add admits the signature of the key holder at the given policy index.
// It fails with ErrDuplicateSigner if that index was already admitted
// and with ErrSignatureMismatch if the signature does not verify under
// the key at that index. A failed add leaves the aggregate unchanged.
func (c *Collector) Add(index uint8, sig crypto.Signature) error {
	key, err := c.policy.Key(index)
	if err != nil {
		return err
	}
	if err := sig.Validate(); err != nil {
		return err
	}
	if !key.Verify(c.message, sig) {
		return errors.Wrapf(ErrSignatureMismatch, "signer %d", index)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	// Duplicate detection happens only under the lock, so of two
	// concurrent adds for the same index exactly one is admitted.
	if c.agg.Has(index) {
		return errors.Wrapf(ErrDuplicateSigner, "signer %d", index)
	}
	c.agg.set(index, sig)
	return nil
}

// Collected returns the number of signatures admitted so far.
func (c *Collector) Collected() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.agg.Count()
}

// Missing returns how many more signatures are required to meet the
// policy threshold.
func (c *Collector) Missing() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	if missing := int(c.policy.Threshold()) - c.agg.Count(); missing > 0 {
		return missing
	}
	return 0
}

// Aggregate returns a snapshot of the signatures collected so far.
func (c *Collector) Aggregate() AggregateSignature {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.agg.clone()
}

// Authenticator packs the collected signatures into a verifiable
// authenticator. It fails with ErrThresholdNotMet while fewer per-index
// signatures than the policy threshold were admitted.
func (c *Collector) Authenticator() (Authenticator, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if got := c.agg.Count(); got < int(c.policy.Threshold()) {
		return Authenticator{}, errors.Wrapf(ErrThresholdNotMet, "%d of %d required signatures", got, c.policy.Threshold())
	}
	return NewAuthenticator(c.policy, c.agg)
}
