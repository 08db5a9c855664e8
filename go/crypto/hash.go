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
	"github.com/ethereum/go-ethereum/rlp"
	"github.com/lumen-chain/lumen/go/lumen"
	"golang.org/x/crypto/blake2b"
)

// GetMethodID returns the first four bytes of the blake2b-256 digest of a
// function or event name.
func GetMethodID(name string) lumen.MethodID {
	var id lumen.MethodID
	hash := blake2b.Sum256([]byte(name))
	copy(id[:], hash[:len(id)])
	return id
}

// Hash returns the blake2b-256 digest of data.
func Hash(data []byte) lumen.Hash {
	return blake2b.Sum256(data)
}

// HashArgs computes the digest of a list of argument fields: blake2b-256 of
// their rlp list encoding. This is the digest contracts obtain from the
// argument hashing host call and the one signers of delegated actions sign.
func HashArgs(fields [][]byte) (lumen.Hash, error) {
	if fields == nil {
		fields = [][]byte{}
	}
	encoded, err := rlp.EncodeToBytes(fields)
	if err != nil {
		return lumen.Hash{}, err
	}
	return Hash(encoded), nil
}

// NewDeploymentAddress returns the address of a contract deployed by the
// given sender at the given sender nonce.
func NewDeploymentAddress(sender lumen.Address, nonce uint64) lumen.Address {
	// Encoding a fixed-size array and an integer cannot fail.
	encoded, _ := rlp.EncodeToBytes([]any{sender, nonce})
	hash := blake2b.Sum256(encoded)
	return AddressFromPubKey(hash[:])
}
