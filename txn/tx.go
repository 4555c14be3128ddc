package txn

import (
	"time"

	"github.com/quorumsig/quorum"
	"github.com/quorumsig/quorum/errors"
	"github.com/quorumsig/quorum/x/multisig"
	"golang.org/x/crypto/sha3"
)

// RawTransaction is a transaction before authorization. Build it once
// per submission attempt and treat it as immutable: signatures are
// computed over its exact canonical bytes, so any change invalidates
// every signature already collected.
//
// Expiration is an absolute unix timestamp in seconds, never a
// duration. Whether it already passed is checked at submission time,
// not baked into the encoding.
type RawTransaction struct {
	Sender         quorum.Address
	SequenceNumber uint64
	Payload        Payload
	MaxGas         uint64
	GasPrice       uint64
	Expiration     int64
	ChainID        uint8
}

// Validate returns an error if the transaction is structurally unusable.
func (tx *RawTransaction) Validate() error {
	if err := tx.Sender.Validate(); err != nil {
		return errors.Wrap(err, "sender")
	}
	if tx.MaxGas == 0 {
		return errors.Wrap(errors.ErrInput, "zero max gas")
	}
	if tx.Expiration <= 0 {
		return errors.Wrap(errors.ErrInput, "expiration timestamp must be set")
	}
	return nil
}

// Expired returns true if the transaction is no longer valid at the
// given moment.
func (tx *RawTransaction) Expired(now time.Time) bool {
	return tx.Expiration <= now.Unix()
}

// SignedTransaction is the terminal artifact of the authorization flow:
// a raw transaction together with the authenticator proving the policy
// approved it. It is consumed exactly once by submission.
type SignedTransaction struct {
	Tx            RawTransaction
	Authenticator multisig.Authenticator
}

// Verify recomputes the signing message of the carried transaction and
// checks the authenticator against it. The signing message is always
// recomputed, never cached, so it cannot drift from the transaction
// bytes being authorized.
func (st *SignedTransaction) Verify() error {
	msg, err := st.Tx.SigningMessage()
	if err != nil {
		return err
	}
	return st.Authenticator.Verify(msg)
}

// ID returns the transaction identifier: the digest of the canonical
// signed transaction bytes. The ledger derives the same identifier, so
// it can be computed before submission and used to poll afterwards.
func (st *SignedTransaction) ID() ([]byte, error) {
	bz, err := st.Marshal()
	if err != nil {
		return nil, err
	}
	h := sha3.Sum256(bz)
	return h[:], nil
}
