package client

import (
	cmn "github.com/tendermint/tendermint/libs/common"
)

// TransactionID is the hash used to identify the transaction. It is
// computed locally from the canonical signed transaction bytes, so the
// same identifier can be used to re-poll a submission whose confirmation
// timed out.
type TransactionID = cmn.HexBytes

// TxStatus is the ledger-side state of a submitted transaction.
type TxStatus string

const (
	// StatusPending means the ledger knows the transaction but did not
	// resolve it yet.
	StatusPending TxStatus = "pending"
	// StatusConfirmed is a terminal success.
	StatusConfirmed TxStatus = "confirmed"
	// StatusRejected is a terminal failure.
	StatusRejected TxStatus = "rejected"
)

// CommitResult is the terminal state of a submitted transaction.
// Err is only set when the ledger rejected the transaction.
type CommitResult struct {
	ID     TransactionID
	Status TxStatus
	Err    error
}

// AccountState is the ledger view of an account: the sequence number the
// next transaction must carry and the current balance. It is consumed to
// build transactions and to confirm post-submission state, never by the
// signing or verification core.
type AccountState struct {
	SequenceNumber uint64 `json:"sequence_number"`
	Balance        uint64 `json:"balance"`
}

// txStatusResponse is the wire form of the transaction status query.
type txStatusResponse struct {
	Status TxStatus `json:"status"`
	Reason string   `json:"reason,omitempty"`
}

// submitResponse is the wire form of a transaction submission result.
type submitResponse struct {
	Hash string `json:"hash"`
}

// rejectionResponse is the structured rejection the ledger returns on a
// refused submission: bad sequence number, insufficient balance,
// expired, chain id mismatch.
type rejectionResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// chainResponse is the wire form of the chain descriptor.
type chainResponse struct {
	ChainID uint8 `json:"chain_id"`
}
