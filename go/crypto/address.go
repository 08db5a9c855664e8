// Copyright (c) 2024 Fantom Foundation
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at fantom.foundation/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

// Package crypto provides the identity primitives of the runtime: account
// addresses derived from ed25519 public keys, method identifiers, argument
// digests and signature checks.
package crypto

import (
	"crypto/ed25519"
	"fmt"

	"github.com/lumen-chain/lumen/go/lumen"
)

// versionByte base32-encodes to a leading 'L'.
const versionByte byte = 11 << 3

const (
	ErrInvalidAddress  = lumen.ConstError("invalid address")
	ErrInvalidChecksum = lumen.ConstError("invalid checksum")
)

// AddressFromPubKey derives the address of the given ed25519 public key.
func AddressFromPubKey(publicKey ed25519.PublicKey) lumen.Address {
	var res lumen.Address
	res[0] = versionByte
	copy(res[1:33], publicKey)
	checksum := crc16(res[:33])
	res[33] = byte(checksum)
	res[34] = byte(checksum >> 8)
	return res
}

// AddressFromString parses the base32 text form of an address and checks
// its version and checksum.
func AddressFromString(text string) (lumen.Address, error) {
	var res lumen.Address
	if err := res.UnmarshalText([]byte(text)); err != nil {
		return lumen.Address{}, fmt.Errorf("%w: %v", ErrInvalidAddress, err)
	}
	if err := ValidateAddress(res); err != nil {
		return lumen.Address{}, err
	}
	return res, nil
}

// AddressFromBytes converts a raw byte string into a validated address.
func AddressFromBytes(data []byte) (lumen.Address, error) {
	if len(data) != lumen.AddressLength {
		return lumen.Address{}, fmt.Errorf("%w: wanted %d bytes, got %d", ErrInvalidAddress, lumen.AddressLength, len(data))
	}
	res := lumen.Address(data)
	if err := ValidateAddress(res); err != nil {
		return lumen.Address{}, err
	}
	return res, nil
}

// MustAddressFromString is like AddressFromString but panics on invalid
// input. It is intended for constants in tests and fixtures.
func MustAddressFromString(text string) lumen.Address {
	res, err := AddressFromString(text)
	if err != nil {
		panic(err)
	}
	return res
}

// ValidateAddress checks the version byte and the checksum of an address.
func ValidateAddress(address lumen.Address) error {
	if address[0] != versionByte {
		return fmt.Errorf("%w: unexpected address version %x", ErrInvalidAddress, address[0])
	}
	want := uint16(address[33]) | uint16(address[34])<<8
	if got := crc16(address[:33]); want != got {
		return fmt.Errorf("%w: %w", ErrInvalidAddress, ErrInvalidChecksum)
	}
	return nil
}

// PubKey extracts the ed25519 public key embedded in a valid address.
func PubKey(address lumen.Address) (ed25519.PublicKey, error) {
	if err := ValidateAddress(address); err != nil {
		return nil, err
	}
	return ed25519.PublicKey(append([]byte(nil), address[1:33]...)), nil
}
