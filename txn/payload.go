package txn

import (
	"encoding/binary"

	"github.com/quorumsig/quorum"
)

// Payload is the opaque encoded call a transaction executes. The
// authorization core never inspects it, only commits to its exact bytes.
type Payload []byte

// EntryCall names a function exposed by an on-ledger module together
// with its already encoded arguments.
type EntryCall struct {
	Module   string
	Function string
	Args     [][]byte
}

// Encode serializes the call into canonical payload bytes: length
// prefixed module and function names, then the argument count and each
// length prefixed argument.
func (c EntryCall) Encode() Payload {
	size := 4 + len(c.Module) + 4 + len(c.Function) + 4
	for _, a := range c.Args {
		size += 4 + len(a)
	}
	out := make([]byte, 0, size)
	out = appendBytes(out, []byte(c.Module))
	out = appendBytes(out, []byte(c.Function))

	var buf [4]byte
	binary.LittleEndian.PutUint32(buf[:], uint32(len(c.Args)))
	out = append(out, buf[:]...)
	for _, a := range c.Args {
		out = appendBytes(out, a)
	}
	return out
}

// NewTransferPayload builds the payload moving the given amount of coins
// to the recipient account.
func NewTransferPayload(recipient quorum.Address, amount uint64) Payload {
	var amt [8]byte
	binary.LittleEndian.PutUint64(amt[:], amount)
	return EntryCall{
		Module:   "coin",
		Function: "transfer",
		Args:     [][]byte{recipient, amt[:]},
	}.Encode()
}
