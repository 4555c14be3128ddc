package crypto

import (
	"encoding/hex"

	"github.com/quorumsig/quorum/errors"
	"github.com/stellar/go/exp/crypto/derivation"
)

// DerivePrivKey returns the ed25519 private key derived from a master
// seed and a SLIP-0010 path, for example "m/44'/234'/0'". Key holders
// that share a wallet seed can recreate every policy key offline.
func DerivePrivKey(seed []byte, path string) (PrivateKey, error) {
	k, err := derivation.DeriveForPath(path, seed)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrInput, "derive path %q: %s", path, err)
	}
	return PrivKeyEd25519FromSeed(k.Key), nil
}

// DerivePrivKeyHex works like DerivePrivKey but accepts the seed in the
// hex form that wallets usually export.
func DerivePrivKeyHex(hexSeed, path string) (PrivateKey, error) {
	seed, err := hex.DecodeString(hexSeed)
	if err != nil {
		return nil, errors.Wrap(errors.ErrInput, "malformed hex seed")
	}
	return DerivePrivKey(seed, path)
}
