/*
Package quorum defines the primitives shared by every part of the
threshold-signature transaction pipeline.

The root package is kept intentionally small: it holds the Address type
that identifies accounts on the ledger and nothing else. Key material
lives in crypto, the authorization policy and signature aggregation in
x/multisig, the canonical transaction encoding in txn, and the ledger
boundary in client.
*/
package quorum
