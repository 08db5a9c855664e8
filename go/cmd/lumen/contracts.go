// Copyright (c) 2024 Fantom Foundation
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at fantom.foundation/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

package main

import (
	"fmt"
	"slices"

	"github.com/lumen-chain/lumen/go/lumen"
	"github.com/lumen-chain/lumen/go/vm"
	"github.com/urfave/cli/v2"
	"golang.org/x/exp/maps"
)

var ContractsCmd = cli.Command{
	Action: doContracts,
	Name:   "contracts",
	Usage:  "Lists the contracts that can be deployed",
}

func doContracts(context *cli.Context) error {
	contracts := vm.GetAllRegisteredContracts()
	codes := maps.Keys(contracts)
	slices.Sort(codes)

	out := context.App.Writer
	for _, code := range codes {
		fmt.Fprintf(out, "%s\n", code)
		header := contracts[code].Header()
		for _, function := range header.Functions() {
			fmt.Fprintf(out, "  func  %v\n", function)
		}
		for _, event := range header.Events() {
			fmt.Fprintf(out, "  event %v\n", event)
		}
	}
	return nil
}

// lookupContract finds the implementation of a code name.
func lookupContract(code lumen.Code) (vm.Contract, error) {
	contract, found := vm.GetContract(code)
	if !found {
		return nil, fmt.Errorf("unknown contract %q, use one of: %v", code, maps.Keys(vm.GetAllRegisteredContracts()))
	}
	return contract, nil
}
