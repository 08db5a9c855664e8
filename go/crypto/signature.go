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
	"crypto/ed25519"
	"encoding/hex"
	"fmt"
	"io"

	"github.com/lumen-chain/lumen/go/lumen"
)

// GenerateKey creates a new key pair using entropy from rand.
func GenerateKey(rand io.Reader) (ed25519.PrivateKey, lumen.Address, error) {
	public, private, err := ed25519.GenerateKey(rand)
	if err != nil {
		return nil, lumen.Address{}, err
	}
	return private, AddressFromPubKey(public), nil
}

// KeyFromSeed derives a key pair from a hex-encoded 32-byte seed.
func KeyFromSeed(seed string) (ed25519.PrivateKey, lumen.Address, error) {
	raw, err := hex.DecodeString(seed)
	if err != nil {
		return nil, lumen.Address{}, fmt.Errorf("invalid seed: %w", err)
	}
	if len(raw) != ed25519.SeedSize {
		return nil, lumen.Address{}, fmt.Errorf("invalid seed length, wanted %d bytes, got %d", ed25519.SeedSize, len(raw))
	}
	private := ed25519.NewKeyFromSeed(raw)
	return private, AddressFromPubKey(private.Public().(ed25519.PublicKey)), nil
}

// Sign returns the signature of digest using the given private key.
func Sign(privateKey ed25519.PrivateKey, digest []byte) []byte {
	return ed25519.Sign(privateKey, digest)
}

// VerifySignature checks an ed25519 signature of digest against the public
// key embedded in address. An invalid address is an error; a well-formed
// signature that does not verify is reported as false.
func VerifySignature(address lumen.Address, digest, signature []byte) (bool, error) {
	publicKey, err := PubKey(address)
	if err != nil {
		return false, err
	}
	if len(signature) != ed25519.SignatureSize {
		return false, nil
	}
	return ed25519.Verify(publicKey, digest, signature), nil
}
