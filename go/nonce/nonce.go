// Copyright (c) 2024 Fantom Foundation
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at fantom.foundation/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

// Package nonce records which nonces of an account have been used for
// delegated actions, so that a signed message is accepted only once.
package nonce

import (
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/lumen-chain/lumen/go/lumen"
)

const ErrReplay = lumen.ConstError("nonce already consumed")

// Store is the contract storage the registry lives in.
type Store interface {
	GetStorage(key []byte) ([]byte, error)
	SetStorage(key, value []byte) error
}

var keyPrefix = []byte("nonce:")

func key(address lumen.Address, nonce uint32) []byte {
	res := make([]byte, 0, len(keyPrefix)+lumen.AddressLength+4)
	res = append(res, keyPrefix...)
	res = append(res, address[:]...)
	return binary.BigEndian.AppendUint32(res, nonce)
}

// Consumed reports whether the nonce was already used by the account.
func Consumed(store Store, address lumen.Address, nonce uint32) (bool, error) {
	_, err := store.GetStorage(key(address, nonce))
	if errors.Is(err, lumen.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// Consume marks the nonce as used. Consuming a nonce twice fails with
// ErrReplay.
func Consume(store Store, address lumen.Address, nonce uint32) error {
	consumed, err := Consumed(store, address, nonce)
	if err != nil {
		return err
	}
	if consumed {
		return fmt.Errorf("%w: %d for %v", ErrReplay, nonce, address)
	}
	return store.SetStorage(key(address, nonce), []byte{1})
}
