// Copyright (c) 2024 Fantom Foundation
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at fantom.foundation/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

package floria

import (
	"encoding/binary"
	"fmt"

	"github.com/lumen-chain/lumen/go/abi"
	"github.com/lumen-chain/lumen/go/crypto"
	"github.com/lumen-chain/lumen/go/lumen"
	"github.com/lumen-chain/lumen/go/vm"
)

// Contracts used by the tests of this package.

const (
	counterCode  lumen.Code = "floria-test-counter"
	plainCode    lumen.Code = "floria-test-plain"
	mutatorCode  lumen.Code = "floria-test-mutator"
	countKey                = "count"
	callerKey               = "caller"
	markerKey               = "marker"
	incremented             = "Incremented"
	testMaxDepth            = 4
	childFailed             = 1000
)

var testSender = crypto.MustAddressFromString("LADSUJQLIKT4WBBLGLJ6Q36DEBJ6KFBQIIABD6B3ZWF7NIE4RIZURI53")

func init() {
	vm.MustRegisterContract(counterCode, newCounterContract())
	vm.MustRegisterContract(plainCode, vm.MustNewContract([]vm.Method{
		{
			Function: abi.Function{Name: "ping"},
			Run:      func(vm.Host, *abi.Buffer) (uint64, error) { return 1, nil },
		},
	}, nil))
	vm.MustRegisterContract(mutatorCode, vm.MustNewContract([]vm.Method{
		{
			Function: abi.Function{Name: "mutate", Parameters: []abi.Parameter{abi.ArrayParam("values", abi.Uint8)}},
			Run: func(_ vm.Host, args *abi.Buffer) (uint64, error) {
				return 0, args.SetSize(0, 0)
			},
		},
	}, nil))
}

func readCount(host vm.Host) uint64 {
	data, err := host.GetStorage([]byte(countKey))
	if err != nil {
		return 0
	}
	return binary.LittleEndian.Uint64(data)
}

func writeCount(host vm.Host, count uint64) error {
	return host.SetStorage([]byte(countKey), binary.LittleEndian.AppendUint64(nil, count))
}

func increment(host vm.Host, _ *abi.Buffer) (uint64, error) {
	count := readCount(host) + 1
	if err := writeCount(host, count); err != nil {
		return 0, err
	}
	caller := host.Caller()
	if err := host.SetStorage([]byte(callerKey), caller[:]); err != nil {
		return 0, err
	}
	if err := host.Emit(incremented, count); err != nil {
		return 0, err
	}
	return count, nil
}

func newCounterContract() vm.Contract {
	return vm.MustNewContract([]vm.Method{
		{
			Function: abi.Function{Name: InitMethod, Parameters: []abi.Parameter{abi.Param("start", abi.Uint64)}},
			Run: func(host vm.Host, args *abi.Buffer) (uint64, error) {
				start, err := args.Uint64(0)
				if err != nil {
					return 0, err
				}
				return 0, writeCount(host, start)
			},
		},
		{
			Function: abi.Function{Name: "increment"},
			Run:      increment,
		},
		{
			Function: abi.Function{Name: "fail_after_write"},
			Run: func(host vm.Host, args *abi.Buffer) (uint64, error) {
				if _, err := increment(host, args); err != nil {
					return 0, err
				}
				return lumen.Failure, nil
			},
		},
		{
			Function: abi.Function{Name: "error_after_write"},
			Run: func(host vm.Host, args *abi.Buffer) (uint64, error) {
				if _, err := increment(host, args); err != nil {
					return 0, err
				}
				return 0, fmt.Errorf("broken")
			},
		},
		{
			Function: abi.Function{Name: "call_remote", Parameters: []abi.Parameter{
				abi.Param("target", abi.Address),
				abi.Param("method", abi.Uint8),
			}},
			Run: callRemote,
		},
		{
			Function: abi.Function{Name: "dive", Parameters: []abi.Parameter{abi.Param("remaining", abi.Uint32)}},
			Run: func(host vm.Host, args *abi.Buffer) (uint64, error) {
				remaining, err := args.Uint32(0)
				if err != nil {
					return 0, err
				}
				if remaining == 0 {
					return 0, nil
				}
				if err := host.MethodBind(host.ContractAddress(), "dive", "self"); err != nil {
					return 0, err
				}
				next := abi.NewBuffer()
				next.WriteUint32(remaining - 1)
				res, err := host.Invoke("self", next)
				if err != nil {
					return 0, err
				}
				return res + 1, nil
			},
		},
		{
			Function: abi.Function{Name: "unbound"},
			Run: func(host vm.Host, args *abi.Buffer) (uint64, error) {
				return host.Invoke("missing", args)
			},
		},
		{
			Function: abi.Function{Name: "swallow_unbound"},
			Run: swallow(func(host vm.Host) error {
				_, err := host.Invoke("missing", abi.NewBuffer())
				return err
			}),
		},
		{
			Function: abi.Function{Name: "swallow_bind"},
			Run: swallow(func(host vm.Host) error {
				return host.MethodBind(testSender, "increment", "remote")
			}),
		},
		{
			Function: abi.Function{Name: "swallow_emit"},
			Run: swallow(func(host vm.Host) error {
				return host.Emit("NotDeclared")
			}),
		},
		{
			Function: abi.Function{Name: "swallow_nested_error"},
			Run: swallow(func(host vm.Host) error {
				if err := host.MethodBind(host.ContractAddress(), "error_after_write", "remote"); err != nil {
					return err
				}
				_, err := host.Invoke("remote", abi.NewBuffer())
				return err
			}),
		},
		{
			Function: abi.Function{Name: "swallow_panic"},
			Run: swallow(func(host vm.Host) error {
				if err := host.MethodBind(host.ContractAddress(), "panic", "remote"); err != nil {
					return err
				}
				_, err := host.Invoke("remote", abi.NewBuffer())
				return err
			}),
		},
		{
			Function: abi.Function{Name: "panic"},
			Run: func(vm.Host, *abi.Buffer) (uint64, error) {
				panic("boom")
			},
		},
		{
			Function: abi.Function{Name: "invoke_without_args"},
			Run: func(host vm.Host, _ *abi.Buffer) (uint64, error) {
				if err := host.MethodBind(host.ContractAddress(), "increment", "inc"); err != nil {
					return 0, err
				}
				return host.Invoke("inc", nil)
			},
		},
		{
			Function: abi.Function{Name: "emit_unknown"},
			Run: func(host vm.Host, args *abi.Buffer) (uint64, error) {
				return 0, host.Emit("NotDeclared")
			},
		},
	}, []abi.Event{
		{Name: incremented, Parameters: []abi.Parameter{abi.Param("count", abi.Uint64)}},
	})
}

// swallow marks the contract's storage, runs the action and drops its
// error.
func swallow(action func(vm.Host) error) func(vm.Host, *abi.Buffer) (uint64, error) {
	return func(host vm.Host, _ *abi.Buffer) (uint64, error) {
		if err := host.SetStorage([]byte(markerKey), []byte{1}); err != nil {
			return 0, err
		}
		_ = action(host)
		return 0, nil
	}
}

var remoteMethods = []string{"increment", "fail_after_write", "error_after_write"}

// callRemote marks its own storage, then invokes a method of the target.
func callRemote(host vm.Host, args *abi.Buffer) (uint64, error) {
	target, err := args.Address(0)
	if err != nil {
		return 0, err
	}
	method, err := args.Uint8(1)
	if err != nil {
		return 0, err
	}
	if err := host.SetStorage([]byte(markerKey), []byte{1}); err != nil {
		return 0, err
	}
	if err := host.MethodBind(target, remoteMethods[method], "remote"); err != nil {
		return 0, err
	}
	res, err := host.Invoke("remote", abi.NewBuffer())
	if err != nil {
		return 0, err
	}
	if res == lumen.Failure {
		return childFailed, nil
	}
	return res, nil
}
