package quorum

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/quorumsig/quorum/errors"
)

func TestNewAddressIsDeterministic(t *testing.T) {
	data := []byte("authorization data")
	a := NewAddress(data)
	b := NewAddress(data)
	if !a.Equals(b) {
		t.Fatalf("same data must derive the same address: %s != %s", a, b)
	}
	if len(a) != AddressLength {
		t.Fatalf("unexpected address length: %d", len(a))
	}

	c := NewAddress([]byte("authorization datb"))
	if a.Equals(c) {
		t.Fatal("different data must derive different addresses")
	}
}

func TestNewAddressNil(t *testing.T) {
	if a := NewAddress(nil); a != nil {
		t.Fatalf("nil data must derive no address, got %s", a)
	}
}

func TestAddressClone(t *testing.T) {
	a := NewAddress([]byte("clone me"))
	b := a.Clone()
	if !a.Equals(b) {
		t.Fatal("clone differs from original")
	}
	b[0]++
	if a.Equals(b) {
		t.Fatal("mutating the clone must not affect the original")
	}
}

func TestAddressValidate(t *testing.T) {
	cases := map[string]struct {
		a       Address
		wantErr *errors.Error
	}{
		"derived address": {
			a: NewAddress([]byte("data")),
		},
		"nil": {
			a:       nil,
			wantErr: errors.ErrEmpty,
		},
		"empty": {
			a:       Address{},
			wantErr: errors.ErrEmpty,
		},
		"too short": {
			a:       make(Address, AddressLength-1),
			wantErr: errors.ErrInput,
		},
		"too long": {
			a:       make(Address, AddressLength+1),
			wantErr: errors.ErrInput,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			err := tc.a.Validate()
			if tc.wantErr == nil {
				if err != nil {
					t.Fatalf("unexpected error: %+v", err)
				}
			} else if !tc.wantErr.Is(err) {
				t.Fatalf("unexpected error: %+v", err)
			}
		})
	}
}

func TestAddressUnmarshalJSON(t *testing.T) {
	addr := NewAddress([]byte("json"))

	cases := map[string]struct {
		json     string
		wantErr  *errors.Error
		anyErr   bool
		wantAddr Address
	}{
		"default is hex": {
			json:     `"` + addr.String() + `"`,
			wantAddr: addr,
		},
		"hex prefix": {
			json:     `"hex:` + addr.String() + `"`,
			wantAddr: addr,
		},
		"empty string zeroes the address": {
			json:     `""`,
			wantAddr: nil,
		},
		"invalid hex": {
			json:   `"hex:zzzz"`,
			anyErr: true,
		},
		"wrong length": {
			json:    `"hex:c0ffee"`,
			wantErr: errors.ErrInput,
		},
		"unknown format": {
			json:    `"base64:AAAA"`,
			wantErr: errors.ErrType,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			var a Address
			err := json.Unmarshal([]byte(tc.json), &a)
			switch {
			case tc.anyErr:
				if err == nil {
					t.Fatal("want an error")
				}
			case tc.wantErr != nil:
				if !tc.wantErr.Is(err) {
					t.Fatalf("unexpected error: %+v", err)
				}
			case err != nil:
				t.Fatalf("unexpected error: %+v", err)
			default:
				if !a.Equals(tc.wantAddr) {
					t.Fatalf("unexpected address: %s", a)
				}
			}
		})
	}
}

func TestAddressJSONRoundTrip(t *testing.T) {
	addr := NewAddress([]byte("round trip"))
	raw, err := json.Marshal(addr)
	if err != nil {
		t.Fatalf("cannot marshal: %+v", err)
	}
	var restored Address
	if err := json.Unmarshal(raw, &restored); err != nil {
		t.Fatalf("cannot unmarshal: %+v", err)
	}
	if !addr.Equals(restored) {
		t.Fatalf("round trip changed the address: %s != %s", addr, restored)
	}
}

func TestAddressBech32RoundTrip(t *testing.T) {
	addr := NewAddress([]byte("display"))
	enc, err := addr.Bech32("quorum")
	if err != nil {
		t.Fatalf("cannot encode: %+v", err)
	}

	raw, err := json.Marshal("bech32:" + enc)
	if err != nil {
		t.Fatalf("cannot marshal: %+v", err)
	}
	var restored Address
	if err := json.Unmarshal(raw, &restored); err != nil {
		t.Fatalf("cannot unmarshal: %+v", err)
	}
	if !bytes.Equal(addr, restored) {
		t.Fatalf("round trip changed the address: %s != %s", addr, restored)
	}
}
