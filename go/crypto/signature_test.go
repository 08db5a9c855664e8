// Copyright (c) 2024 Fantom Foundation
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at fantom.foundation/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

package crypto

import (
	"errors"
	"testing"

	"github.com/lumen-chain/lumen/go/lumen"
	"pgregory.net/rand"
)

const testSeed = "38621fc10a1e56089192360454da6277ce6289bc8f6ef29f34c62a0267940e50"

func TestKeyFromSeed_DerivesKnownAddress(t *testing.T) {
	_, address, err := KeyFromSeed(testSeed)
	if err != nil {
		t.Fatalf("failed to derive key: %v", err)
	}
	if want, got := "LCFDZPMMHQTNPX64NQR2D5GBJVITHC2M7VFVFLP24YVRKOSI5CSDV4SS", address.String(); want != got {
		t.Errorf("unexpected address, wanted %v, got %v", want, got)
	}
}

func TestKeyFromSeed_RejectsInvalidSeeds(t *testing.T) {
	tests := map[string]string{
		"not hex":   "zz",
		"too short": "0102",
		"empty":     "",
	}
	for name, seed := range tests {
		t.Run(name, func(t *testing.T) {
			if _, _, err := KeyFromSeed(seed); err == nil {
				t.Errorf("expected error for seed %q", seed)
			}
		})
	}
}

func TestVerifySignature(t *testing.T) {
	private, address, err := KeyFromSeed(testSeed)
	if err != nil {
		t.Fatalf("failed to derive key: %v", err)
	}
	digest := Hash([]byte("message"))
	signature := Sign(private, digest[:])

	other := Hash([]byte("other message"))
	_, stranger, err := GenerateKey(rand.New(1))
	if err != nil {
		t.Fatalf("failed to generate key: %v", err)
	}

	tests := map[string]struct {
		address   lumen.Address
		digest    []byte
		signature []byte
		want      bool
	}{
		"valid":           {address, digest[:], signature, true},
		"other digest":    {address, other[:], signature, false},
		"other signer":    {stranger, digest[:], signature, false},
		"short signature": {address, digest[:], signature[:10], false},
		"empty signature": {address, digest[:], nil, false},
	}
	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			got, err := VerifySignature(test.address, test.digest, test.signature)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != test.want {
				t.Errorf("unexpected result, wanted %v, got %v", test.want, got)
			}
		})
	}
}

func TestVerifySignature_InvalidAddressIsAnError(t *testing.T) {
	if _, err := VerifySignature(lumen.Address{}, nil, nil); !errors.Is(err, ErrInvalidAddress) {
		t.Errorf("expected invalid address error, got %v", err)
	}
}

func TestGenerateKey_ProducesDistinctValidAddresses(t *testing.T) {
	r := rand.New(42)
	seen := map[lumen.Address]bool{}
	for i := 0; i < 16; i++ {
		_, address, err := GenerateKey(r)
		if err != nil {
			t.Fatalf("failed to generate key: %v", err)
		}
		if err := ValidateAddress(address); err != nil {
			t.Errorf("generated address is invalid: %v", err)
		}
		if seen[address] {
			t.Errorf("duplicate address generated: %v", address)
		}
		seen[address] = true
	}
}
