// Copyright (c) 2024 Fantom Foundation
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at fantom.foundation/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

package vm

import (
	"fmt"
	"strings"
	"sync"

	"github.com/lumen-chain/lumen/go/lumen"
	"golang.org/x/exp/maps"
)

// Contracts become deployable by registering them under a code name. The
// code name is what a deployment transaction carries and what is stored in
// the account of a deployed contract. Packages providing contracts register
// them in their init functions.

// GetContract performs a lookup for the given code name (case-insensitive).
func GetContract(code lumen.Code) (Contract, bool) {
	contractRegistryLock.Lock()
	defer contractRegistryLock.Unlock()
	res, found := contractRegistry[normalize(code)]
	return res, found
}

// GetAllRegisteredContracts obtains all registered contracts.
func GetAllRegisteredContracts() map[lumen.Code]Contract {
	contractRegistryLock.Lock()
	defer contractRegistryLock.Unlock()
	return maps.Clone(contractRegistry)
}

// RegisterContract registers a contract under the given code name. The name
// is not case-sensitive. Registering a nil contract, an empty name or a
// name that is already taken is an error.
func RegisterContract(code lumen.Code, contract Contract) error {
	key := normalize(code)
	if key == "" {
		return fmt.Errorf("invalid initialization: empty contract code name")
	}
	if contract == nil {
		return fmt.Errorf("invalid initialization: cannot register nil-contract using `%s`", key)
	}
	contractRegistryLock.Lock()
	defer contractRegistryLock.Unlock()
	if _, found := contractRegistry[key]; found {
		return fmt.Errorf("%w: `%s`", ErrContractRegistered, key)
	}
	contractRegistry[key] = contract
	return nil
}

// MustRegisterContract is RegisterContract for use in init functions.
func MustRegisterContract(code lumen.Code, contract Contract) {
	if err := RegisterContract(code, contract); err != nil {
		panic(err)
	}
}

func normalize(code lumen.Code) lumen.Code {
	return lumen.Code(strings.ToLower(string(code)))
}

var contractRegistry = map[lumen.Code]Contract{}

var contractRegistryLock sync.Mutex
