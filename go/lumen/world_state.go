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

//go:generate mockgen -source world_state.go -destination world_state_mock.go -package lumen

// WorldState is an interface to access and manipulate the state of the chain.
// The state is a collection of accounts, each with a nonce, an optional
// contract (its code name and creator) and a storage namespace.
type WorldState interface {
	AccountExists(Address) bool

	// CreateAccount binds a contract implementation to the given address.
	CreateAccount(addr Address, creator Address, code Code)
	GetCreator(Address) Address
	GetCode(Address) Code

	GetNonce(Address) uint64
	SetNonce(Address, uint64)

	// GetStorage returns the value stored under key in the namespace of the
	// given account. The flag is false if no value was ever written, which
	// distinguishes absent keys from empty values.
	GetStorage(addr Address, key []byte) ([]byte, bool)
	SetStorage(addr Address, key []byte, value []byte)
}

// TransactionContext is an interface to access and manipulate the world
// state within a transaction. All modifications, including emitted events,
// are buffered in the context and can be snapshot and restored.
type TransactionContext interface {
	WorldState

	CreateSnapshot() Snapshot
	RestoreSnapshot(Snapshot)

	EmitEvent(Event)
	GetEvents() []Event
}

// Snapshot is a type used to represent a snapshot of the world state in a
// transaction context.
type Snapshot int
