/*
Package multisig implements K-of-N threshold authorization over ed25519
keys.

A Policy is an ordered list of public keys together with a threshold.
The position of a key in the list is the signer identity, so the same
key set in a different order is a different policy and controls a
different account address.

A Collector gathers signatures from individual key holders for one
signing message, rejecting duplicates and signatures that do not verify.
Once enough are collected they are packed into a bitmap indexed
AggregateSignature and combined with the policy into an Authenticator.

The Authenticator is the object a relying party verifies. Verification
is fail closed: fewer valid signatures than the threshold, or a single
invalid signature, invalidates the whole authenticator. The per-add
checks the Collector performs are a convenience for the coordinating
party, never a substitute for verifying the assembled object.
*/
package multisig
