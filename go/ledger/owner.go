// Copyright (c) 2024 Fantom Foundation
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at fantom.foundation/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

package ledger

import (
	"errors"
	"fmt"

	"github.com/lumen-chain/lumen/go/lumen"
)

const ErrNotOwner = lumen.ConstError("caller is not the owner")

// OwnerKey is the storage key of the account allowed to administrate a
// token.
var OwnerKey = []byte("OWNER")

// Owner returns the recorded owner. The flag is false if none is set.
func Owner(store Store) (lumen.Address, bool, error) {
	data, err := store.GetStorage(OwnerKey)
	if errors.Is(err, lumen.ErrNotFound) {
		return lumen.Address{}, false, nil
	}
	if err != nil {
		return lumen.Address{}, false, err
	}
	if len(data) != lumen.AddressLength {
		return lumen.Address{}, false, fmt.Errorf("corrupted owner record of %d bytes", len(data))
	}
	return lumen.Address(data), true, nil
}

func SetOwner(store Store, owner lumen.Address) error {
	return store.SetStorage(OwnerKey, owner[:])
}

// EnsureGenesisOwner records the given account as owner unless an owner
// is already set, and returns the owner in effect.
func EnsureGenesisOwner(store Store, creator lumen.Address) (lumen.Address, error) {
	owner, found, err := Owner(store)
	if err != nil || found {
		return owner, err
	}
	return creator, SetOwner(store, creator)
}

// CheckOwner fails with ErrNotOwner unless the account is the recorded
// owner.
func CheckOwner(store Store, account lumen.Address) error {
	owner, found, err := Owner(store)
	if err != nil {
		return err
	}
	if !found || owner != account {
		return ErrNotOwner
	}
	return nil
}
