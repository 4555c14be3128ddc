// Package quorumtest provides deterministic fixtures shared by tests
// across the module: seed derived key holders, ready made policies and
// transactions. Nothing here is safe for production keys.
package quorumtest

import (
	"time"

	"github.com/quorumsig/quorum/crypto"
	"github.com/quorumsig/quorum/txn"
	"github.com/quorumsig/quorum/x/multisig"
)

// NewKey returns a fresh random key holder.
func NewKey() crypto.PrivateKey {
	return crypto.GenPrivKeyEd25519()
}

// NewKeyFromSeed returns a key holder derived from a single seed byte.
// The same byte always derives the same key, so tests can name their
// signers without sharing fixtures.
func NewKeyFromSeed(seed byte) crypto.PrivateKey {
	raw := make([]byte, crypto.SeedSize)
	for i := range raw {
		raw[i] = seed
	}
	return crypto.PrivKeyEd25519FromSeed(raw)
}

// TwoOfThree returns a deterministic 2-of-3 policy together with its
// three key holders, in policy order.
func TwoOfThree() (multisig.Policy, []crypto.PrivateKey) {
	holders := []crypto.PrivateKey{
		NewKeyFromSeed(0xa1),
		NewKeyFromSeed(0xb0),
		NewKeyFromSeed(0xc4),
	}
	keys := make([]crypto.PublicKey, len(holders))
	for i, h := range holders {
		keys[i] = h.PublicKey()
	}
	policy, err := multisig.NewPolicy(keys, 2)
	if err != nil {
		panic(err)
	}
	return policy, holders
}

// Transfer returns a transfer transaction from the policy account with
// fixed gas settings and a far future expiration.
func Transfer(policy multisig.Policy, amount uint64) *txn.RawTransaction {
	recipient := NewKeyFromSeed(0xee).PublicKey().Address()
	return &txn.RawTransaction{
		Sender:         policy.Address(),
		SequenceNumber: 0,
		Payload:        txn.NewTransferPayload(recipient, amount),
		MaxGas:         2000,
		GasPrice:       100,
		Expiration:     time.Now().Add(10 * time.Minute).Unix(),
		ChainID:        4,
	}
}

// Authorize signs the transaction with the given holders at their policy
// indexes and returns the assembled signed transaction.
func Authorize(policy multisig.Policy, tx *txn.RawTransaction, signers map[uint8]crypto.PrivateKey) (*txn.SignedTransaction, error) {
	msg, err := tx.SigningMessage()
	if err != nil {
		return nil, err
	}
	coll, err := multisig.NewCollector(policy, msg)
	if err != nil {
		return nil, err
	}
	for index, holder := range signers {
		sig, err := holder.Sign(msg)
		if err != nil {
			return nil, err
		}
		if err := coll.Add(index, sig); err != nil {
			return nil, err
		}
	}
	auth, err := coll.Authenticator()
	if err != nil {
		return nil, err
	}
	return &txn.SignedTransaction{Tx: *tx, Authenticator: auth}, nil
}
