package multisig

import (
	"github.com/quorumsig/quorum/errors"
)

// multisig reserves error codes 120 ~ 129.
var (
	// ErrInvalidPolicy is returned when a threshold and key list do not
	// form a usable policy.
	ErrInvalidPolicy = errors.Register(120, "invalid policy")

	// ErrSignatureMismatch is returned when a signature does not verify
	// for the claimed signer index and message.
	ErrSignatureMismatch = errors.Register(121, "signature mismatch")

	// ErrDuplicateSigner is returned when a signer index was already
	// admitted. One key holder's approval counts once.
	ErrDuplicateSigner = errors.Register(122, "duplicate signer")

	// ErrThresholdNotMet is returned when an aggregate carries fewer
	// signatures than the policy threshold requires.
	ErrThresholdNotMet = errors.Register(123, "threshold not met")
)
