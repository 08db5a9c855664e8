// Copyright (c) 2024 Fantom Foundation
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at fantom.foundation/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

// Package gas defines the cost model of contract execution.
package gas

import (
	"fmt"
	"strings"

	"github.com/lumen-chain/lumen/go/lumen"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

// Policy prices the host operations a contract performs.
type Policy interface {
	// GetCostForStorage prices writing a value of the given size.
	GetCostForStorage(size int) lumen.Gas
	// GetCostForContract prices deploying a contract with the given code
	// and initialization input size.
	GetCostForContract(size int) lumen.Gas
	// GetCostForEvent prices emitting an event with the given encoded size.
	GetCostForEvent(size int) lumen.Gas
	// GetCostForCall prices a cross-contract invocation.
	GetCostForCall() lumen.Gas
	// GetCostForHash prices hashing arguments of the given total size.
	GetCostForHash(size int) lumen.Gas
	// GetCostForVerify prices a signature verification.
	GetCostForVerify() lumen.Gas
}

// FreePolicy charges nothing.
type FreePolicy struct{}

func (FreePolicy) GetCostForStorage(int) lumen.Gas  { return 0 }
func (FreePolicy) GetCostForContract(int) lumen.Gas { return 0 }
func (FreePolicy) GetCostForEvent(int) lumen.Gas    { return 0 }
func (FreePolicy) GetCostForCall() lumen.Gas        { return 0 }
func (FreePolicy) GetCostForHash(int) lumen.Gas     { return 0 }
func (FreePolicy) GetCostForVerify() lumen.Gas      { return 0 }

// Costs of the alpha policy.
const (
	GasCall       lumen.Gas = 10
	GasHashWord   lumen.Gas = 1
	GasVerify     lumen.Gas = 100
	hashWordBytes           = 32
)

// AlphaPolicy charges one unit per byte of stored, deployed or emitted data
// and fixed costs for calls and cryptographic operations.
type AlphaPolicy struct{}

func (AlphaPolicy) GetCostForStorage(size int) lumen.Gas  { return lumen.Gas(size) }
func (AlphaPolicy) GetCostForContract(size int) lumen.Gas { return lumen.Gas(size) }
func (AlphaPolicy) GetCostForEvent(size int) lumen.Gas    { return lumen.Gas(size) }
func (AlphaPolicy) GetCostForCall() lumen.Gas             { return GasCall }
func (AlphaPolicy) GetCostForVerify() lumen.Gas           { return GasVerify }

func (AlphaPolicy) GetCostForHash(size int) lumen.Gas {
	words := (size + hashWordBytes - 1) / hashWordBytes
	return GasHashWord * lumen.Gas(1+words)
}

var policies = map[string]Policy{
	"free":  FreePolicy{},
	"alpha": AlphaPolicy{},
}

// GetPolicy looks up a policy by its name (case-insensitive).
func GetPolicy(name string) (Policy, error) {
	if res, found := policies[strings.ToLower(name)]; found {
		return res, nil
	}
	return nil, fmt.Errorf("unknown gas policy %q, supported: %v", name, PolicyNames())
}

// PolicyNames lists the names of all known policies.
func PolicyNames() []string {
	res := maps.Keys(policies)
	slices.Sort(res)
	return res
}
