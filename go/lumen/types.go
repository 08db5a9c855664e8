// Copyright (c) 2024 Fantom Foundation
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at fantom.foundation/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

package lumen

import (
	"encoding/base32"
	"encoding/hex"
	"fmt"
	"strings"
)

// AddressLength is the number of bytes of an account address: a version
// byte, a 32-byte ed25519 public key and a 2-byte checksum.
const AddressLength = 35

// Address identifies an account. Its text form is the standard base32
// encoding of its bytes. Structural validation (version and checksum) is
// provided by the crypto package.
type Address [AddressLength]byte

// Hash represents a 256-bit (32 bytes) digest.
type Hash [32]byte

// MethodID is the 4-byte identifier of a function or event, derived from
// its name.
type MethodID [4]byte

// Data represents the input or output of contract invocations.
type Data []byte

// Gas represents the type used to represent Gas values.
type Gas int64

// Code names the contract implementation bound to an account. Contracts
// are native implementations registered under a code name.
type Code string

// Failure is the word returned across a call boundary when the invoked
// method reported ErrFailure. It is the two's complement form of -1.
const Failure = ^uint64(0)

var addressEncoding = base32.StdEncoding

func (a Address) String() string {
	return addressEncoding.EncodeToString(a[:])
}

func (a Address) MarshalText() ([]byte, error) {
	return []byte(a.String()), nil
}

func (a *Address) UnmarshalText(data []byte) error {
	decoded, err := addressEncoding.DecodeString(strings.TrimSpace(string(data)))
	if err != nil {
		return fmt.Errorf("invalid address encoding %q: %w", data, err)
	}
	if want, got := AddressLength, len(decoded); want != got {
		return fmt.Errorf("invalid address length, wanted %d bytes, got %d", want, got)
	}
	copy(a[:], decoded)
	return nil
}

func (h Hash) String() string {
	return fmt.Sprintf("0x%x", h[:])
}

func (h Hash) MarshalText() ([]byte, error) {
	return bytesToText(h[:])
}

func (h *Hash) UnmarshalText(data []byte) error {
	return textToBytes(h[:], data)
}

func (m MethodID) String() string {
	return fmt.Sprintf("0x%x", m[:])
}

func (d Data) String() string {
	return fmt.Sprintf("0x%x", []byte(d))
}

func bytesToText(data []byte) ([]byte, error) {
	return []byte(fmt.Sprintf("0x%x", data)), nil
}

func textToBytes(trg []byte, data []byte) error {
	s := string(data)
	if !strings.HasPrefix(s, "0x") {
		return fmt.Errorf("invalid format, does not start with 0x: %v", s)
	}
	data, err := hex.DecodeString(s[2:])
	if err != nil {
		return err
	}
	if want, got := len(trg), len(data); want != got {
		return fmt.Errorf("invalid format, wanted %d bytes, got %d", want, got)
	}
	copy(trg[:], data)
	return nil
}
