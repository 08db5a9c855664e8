// Copyright (c) 2024 Fantom Foundation
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at fantom.foundation/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

// Package vm defines the interface between natively implemented contracts
// and the host executing them.
package vm

import (
	"github.com/lumen-chain/lumen/go/abi"
	"github.com/lumen-chain/lumen/go/lumen"
)

//go:generate mockgen -source host.go -destination host_mock.go -package vm

// Host is the view a contract has of the chain while one of its methods is
// executed. Every call frame has its own Host; all state access is scoped
// to the contract of that frame.
type Host interface {
	// ContractAddress is the address of the executing contract.
	ContractAddress() lumen.Address
	// Caller is the account that started the frame: the transaction sender
	// for the top-level frame, the invoking contract for nested frames.
	Caller() lumen.Address
	// Creator is the account that deployed the executing contract.
	Creator() lumen.Address

	BlockHeight() uint64
	BlockTime() uint64

	// SetStorage writes a value into the namespace of the executing
	// contract, replacing any previous value.
	SetStorage(key, value []byte) error
	// StorageSize returns the length of the value stored under key, 0 if
	// there is none.
	StorageSize(key []byte) int
	// GetStorage returns the value stored under key or lumen.ErrNotFound.
	GetStorage(key []byte) ([]byte, error)

	// MethodBind resolves a method exported by a remote contract and makes
	// it callable under localName in this frame.
	MethodBind(remote lumen.Address, remoteName, localName string) error
	// Invoke runs a bound method in a new frame with a copy of the given
	// arguments and returns its result.
	Invoke(localName string, args *abi.Buffer) (uint64, error)

	// ArgsHash computes the blake2b-256 digest of the rlp list of the
	// recorded fields of the buffer.
	ArgsHash(args *abi.Buffer) (lumen.Hash, error)
	// VerifyEd25519 checks a signature over digest against the public key
	// embedded in the address.
	VerifyEd25519(address lumen.Address, digest, signature []byte) (bool, error)

	// Emit records an event declared in the header of the executing
	// contract. The values must match the declared parameter types.
	Emit(name string, values ...any) error
}
