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

	"github.com/lumen-chain/lumen/go/abi"
)

// Contract is a natively implemented contract. Its header declares the
// exported functions and the events it may emit.
type Contract interface {
	Header() *abi.Header
	// Call runs the given function, which is part of the header, with
	// arguments already checked against its parameters. A result equal to
	// lumen.Failure reports a failed execution.
	Call(host Host, function *abi.Function, args *abi.Buffer) (uint64, error)
}

// Method is an exported function together with its implementation.
type Method struct {
	abi.Function
	Run func(Host, *abi.Buffer) (uint64, error)
}

type methodTable struct {
	header  *abi.Header
	methods map[string]func(Host, *abi.Buffer) (uint64, error)
}

// NewContract builds a contract from a method table and the declaration of
// its events.
func NewContract(methods []Method, events []abi.Event) (Contract, error) {
	functions := make([]abi.Function, 0, len(methods))
	table := make(map[string]func(Host, *abi.Buffer) (uint64, error), len(methods))
	for _, m := range methods {
		if m.Run == nil {
			return nil, fmt.Errorf("method %s has no implementation", m.Name)
		}
		functions = append(functions, m.Function)
		table[m.Name] = m.Run
	}
	header, err := abi.NewHeader(functions, events)
	if err != nil {
		return nil, err
	}
	return &methodTable{header: header, methods: table}, nil
}

func MustNewContract(methods []Method, events []abi.Event) Contract {
	c, err := NewContract(methods, events)
	if err != nil {
		panic(err)
	}
	return c
}

func (c *methodTable) Header() *abi.Header {
	return c.header
}

func (c *methodTable) Call(host Host, function *abi.Function, args *abi.Buffer) (uint64, error) {
	run, found := c.methods[function.Name]
	if !found {
		return 0, fmt.Errorf("%w: %s", ErrMethodNotFound, function.Name)
	}
	return run(host, args)
}
