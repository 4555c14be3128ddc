package txn

import (
	"encoding/binary"

	"github.com/quorumsig/quorum"
	"github.com/quorumsig/quorum/errors"
	"github.com/quorumsig/quorum/x/multisig"
	"golang.org/x/crypto/sha3"
)

// EncodingV1 is the version tag leading every canonical transaction
// encoding. Any change to field order or width breaks every existing
// signature, so the format is versioned explicitly.
const EncodingV1 byte = 0x01

// The canonical transaction encoding is little-endian with a fixed
// field order and no padding:
//
//	version          1 byte, EncodingV1
//	sender           32 bytes
//	sequence number  u64
//	payload          u32 length prefix + bytes
//	max gas          u64
//	gas price        u64
//	expiration       u64, unix seconds
//	chain id         1 byte
//
// Two encoders given identical field values emit byte identical output.
// Signatures are computed over these bytes, so a divergent encoding
// silently breaks every signature.

// signingDomain separates raw transaction signatures from any other
// message class this system might sign.
var signingDomain = sha3.Sum256([]byte("QUORUM::RawTransaction"))

// Marshal serializes the transaction into its canonical encoding.
func (tx *RawTransaction) Marshal() ([]byte, error) {
	if err := tx.Validate(); err != nil {
		return nil, err
	}

	out := make([]byte, 0, 1+quorum.AddressLength+8+4+len(tx.Payload)+8+8+8+1)
	out = append(out, EncodingV1)
	out = append(out, tx.Sender...)
	out = appendUint64(out, tx.SequenceNumber)
	out = appendBytes(out, tx.Payload)
	out = appendUint64(out, tx.MaxGas)
	out = appendUint64(out, tx.GasPrice)
	out = appendUint64(out, uint64(tx.Expiration))
	out = append(out, tx.ChainID)
	return out, nil
}

// UnmarshalRawTransaction decodes a canonical transaction encoding.
// Unknown versions, truncated input and trailing bytes fail with
// ErrEncodingMismatch: decoded bytes must round-trip exactly.
func UnmarshalRawTransaction(data []byte) (*RawTransaction, error) {
	if len(data) < 1 {
		return nil, errors.Wrap(errors.ErrEncodingMismatch, "empty input")
	}
	if data[0] != EncodingV1 {
		return nil, errors.Wrapf(errors.ErrEncodingMismatch, "unknown encoding version %d", data[0])
	}
	at := 1

	if len(data) < at+quorum.AddressLength {
		return nil, errors.Wrap(errors.ErrEncodingMismatch, "truncated sender")
	}
	sender := quorum.Address(data[at : at+quorum.AddressLength]).Clone()
	at += quorum.AddressLength

	seq, at, err := readUint64(data, at)
	if err != nil {
		return nil, errors.Wrap(err, "sequence number")
	}
	payload, at, err := readBytes(data, at)
	if err != nil {
		return nil, errors.Wrap(err, "payload")
	}
	maxGas, at, err := readUint64(data, at)
	if err != nil {
		return nil, errors.Wrap(err, "max gas")
	}
	gasPrice, at, err := readUint64(data, at)
	if err != nil {
		return nil, errors.Wrap(err, "gas price")
	}
	expiration, at, err := readUint64(data, at)
	if err != nil {
		return nil, errors.Wrap(err, "expiration")
	}
	if len(data) < at+1 {
		return nil, errors.Wrap(errors.ErrEncodingMismatch, "truncated chain id")
	}
	chainID := data[at]
	at++

	if at != len(data) {
		return nil, errors.Wrapf(errors.ErrEncodingMismatch, "%d trailing bytes", len(data)-at)
	}

	return &RawTransaction{
		Sender:         sender,
		SequenceNumber: seq,
		Payload:        payload,
		MaxGas:         maxGas,
		GasPrice:       gasPrice,
		Expiration:     int64(expiration),
		ChainID:        chainID,
	}, nil
}

// SigningMessage returns the exact bytes key holders sign: the fixed
// domain separation tag followed by the canonical transaction encoding.
func (tx *RawTransaction) SigningMessage() ([]byte, error) {
	bz, err := tx.Marshal()
	if err != nil {
		return nil, err
	}
	out := make([]byte, 0, len(signingDomain)+len(bz))
	out = append(out, signingDomain[:]...)
	out = append(out, bz...)
	return out, nil
}

// Marshal serializes the signed transaction: the length prefixed
// canonical transaction bytes followed by the authenticator wire format.
func (st *SignedTransaction) Marshal() ([]byte, error) {
	tx, err := st.Tx.Marshal()
	if err != nil {
		return nil, err
	}
	auth, err := st.Authenticator.Marshal()
	if err != nil {
		return nil, err
	}
	out := make([]byte, 0, 4+len(tx)+len(auth))
	out = appendBytes(out, tx)
	out = append(out, auth...)
	return out, nil
}

// UnmarshalSignedTransaction decodes the wire form produced by Marshal.
func UnmarshalSignedTransaction(data []byte) (*SignedTransaction, error) {
	txBytes, at, err := readBytes(data, 0)
	if err != nil {
		return nil, errors.Wrap(err, "transaction")
	}
	tx, err := UnmarshalRawTransaction(txBytes)
	if err != nil {
		return nil, err
	}
	auth, err := multisig.UnmarshalAuthenticator(data[at:])
	if err != nil {
		return nil, err
	}
	return &SignedTransaction{Tx: *tx, Authenticator: auth}, nil
}

func appendUint64(out []byte, v uint64) []byte {
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], v)
	return append(out, buf[:]...)
}

func appendBytes(out, raw []byte) []byte {
	var buf [4]byte
	binary.LittleEndian.PutUint32(buf[:], uint32(len(raw)))
	out = append(out, buf[:]...)
	return append(out, raw...)
}

func readUint64(data []byte, at int) (uint64, int, error) {
	if len(data) < at+8 {
		return 0, at, errors.Wrap(errors.ErrEncodingMismatch, "truncated u64")
	}
	return binary.LittleEndian.Uint64(data[at : at+8]), at + 8, nil
}

func readBytes(data []byte, at int) ([]byte, int, error) {
	if len(data) < at+4 {
		return nil, at, errors.Wrap(errors.ErrEncodingMismatch, "truncated length prefix")
	}
	size := int(binary.LittleEndian.Uint32(data[at : at+4]))
	at += 4
	if len(data) < at+size {
		return nil, at, errors.Wrap(errors.ErrEncodingMismatch, "truncated value")
	}
	raw := make([]byte, size)
	copy(raw, data[at:at+size])
	return raw, at + size, nil
}
