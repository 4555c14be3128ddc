package client

import (
	"github.com/quorumsig/quorum/errors"
)

// client reserves error codes 140 ~ 149.
var (
	// ErrLedgerRejected is returned when the ledger service explicitly
	// refused a transaction, or when a local pre-flight check proves the
	// ledger would: an expired transaction is never dispatched.
	ErrLedgerRejected = errors.Register(140, "ledger rejected")

	// ErrConfirmationTimeout is returned when the ledger did not resolve
	// a transaction in time. It is not a proof of failure: the ledger
	// may still confirm later and the same transaction identifier can be
	// re-polled.
	ErrConfirmationTimeout = errors.Register(141, "confirmation timeout")
)
