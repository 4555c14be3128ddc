package multisig

import (
	"testing"

	"github.com/quorumsig/quorum/crypto"
	"github.com/quorumsig/quorum/errors"
	"github.com/quorumsig/quorum/quorumtest/assert"
)

func testKeys(t testing.TB, n int) []crypto.PublicKey {
	t.Helper()
	keys := make([]crypto.PublicKey, n)
	for i := range keys {
		seed := make([]byte, crypto.SeedSize)
		seed[0] = byte(i + 1)
		keys[i] = crypto.PrivKeyEd25519FromSeed(seed).PublicKey()
	}
	return keys
}

func TestNewPolicy(t *testing.T) {
	cases := map[string]struct {
		keys      []crypto.PublicKey
		threshold uint8
		wantErr   *errors.Error
	}{
		"valid 2 of 3": {
			keys:      testKeys(t, 3),
			threshold: 2,
		},
		"valid 1 of 1": {
			keys:      testKeys(t, 1),
			threshold: 1,
		},
		"valid 32 of 32": {
			keys:      testKeys(t, 32),
			threshold: 32,
		},
		"no keys": {
			keys:      nil,
			threshold: 1,
			wantErr:   ErrInvalidPolicy,
		},
		"too many keys": {
			keys:      testKeys(t, 33),
			threshold: 2,
			wantErr:   ErrInvalidPolicy,
		},
		"zero threshold": {
			keys:      testKeys(t, 3),
			threshold: 0,
			wantErr:   ErrInvalidPolicy,
		},
		"threshold above key count": {
			keys:      testKeys(t, 3),
			threshold: 4,
			wantErr:   ErrInvalidPolicy,
		},
		"malformed key": {
			keys:      []crypto.PublicKey{{0x01, 0x02}},
			threshold: 1,
			wantErr:   errors.ErrInput,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			if _, err := NewPolicy(tc.keys, tc.threshold); !tc.wantErr.Is(err) {
				t.Fatalf("unexpected error: %+v", err)
			}
		})
	}
}

func TestPolicyAddressDeterministic(t *testing.T) {
	keys := testKeys(t, 3)

	a, err := NewPolicy(keys, 2)
	assert.Nil(t, err)
	b, err := NewPolicy(keys, 2)
	assert.Nil(t, err)
	assert.Equal(t, a.Address(), b.Address())
}

func TestPolicyAddressDependsOnOrderAndThreshold(t *testing.T) {
	keys := testKeys(t, 3)

	base, err := NewPolicy(keys, 2)
	if err != nil {
		t.Fatalf("cannot create policy: %+v", err)
	}

	permuted, err := NewPolicy([]crypto.PublicKey{keys[1], keys[0], keys[2]}, 2)
	if err != nil {
		t.Fatalf("cannot create policy: %+v", err)
	}
	if base.Address().Equals(permuted.Address()) {
		t.Fatal("permuting key order must change the address")
	}

	stricter, err := NewPolicy(keys, 3)
	if err != nil {
		t.Fatalf("cannot create policy: %+v", err)
	}
	if base.Address().Equals(stricter.Address()) {
		t.Fatal("changing the threshold must change the address")
	}

	// A single key account with the same first key is a different scheme
	// and must not collide either.
	single := keys[0].Address()
	if base.Address().Equals(single) {
		t.Fatal("multisig address must not collide with a single key address")
	}
}

func TestPolicyImmutable(t *testing.T) {
	keys := testKeys(t, 3)
	policy, err := NewPolicy(keys, 2)
	if err != nil {
		t.Fatalf("cannot create policy: %+v", err)
	}
	addr := policy.Address()

	// Mutating the input slice or any accessor result must not leak into
	// the policy.
	keys[0][0] ^= 0xff
	got := policy.Keys()
	got[1][0] ^= 0xff
	if !policy.Address().Equals(addr) {
		t.Fatal("policy must be immutable after construction")
	}
}

func TestNewSortedPolicy(t *testing.T) {
	keys := testKeys(t, 3)

	a, err := NewSortedPolicy([]crypto.PublicKey{keys[0], keys[1], keys[2]}, 2)
	if err != nil {
		t.Fatalf("cannot create policy: %+v", err)
	}
	b, err := NewSortedPolicy([]crypto.PublicKey{keys[2], keys[0], keys[1]}, 2)
	if err != nil {
		t.Fatalf("cannot create policy: %+v", err)
	}
	if !a.Address().Equals(b.Address()) {
		t.Fatal("canonical ordering must make the address permutation independent")
	}

	if _, err := NewSortedPolicy([]crypto.PublicKey{keys[0], keys[0]}, 1); !ErrInvalidPolicy.Is(err) {
		t.Fatalf("duplicated keys must be rejected, got %+v", err)
	}
}

func TestPolicyKey(t *testing.T) {
	keys := testKeys(t, 3)
	policy, err := NewPolicy(keys, 2)
	assert.Nil(t, err)

	k, err := policy.Key(2)
	assert.Nil(t, err)
	assert.Equal(t, keys[2], k)

	_, err = policy.Key(3)
	assert.IsErr(t, errors.ErrInput, err)
}
