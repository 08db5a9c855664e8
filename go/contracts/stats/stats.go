// Copyright (c) 2024 Fantom Foundation
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at fantom.foundation/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

// Package stats implements statistics on top of a calc contract, which is
// configured at deployment and called through method bindings.
package stats

import (
	"errors"
	"fmt"
	"math"

	"github.com/lumen-chain/lumen/go/abi"
	"github.com/lumen-chain/lumen/go/contracts/calc"
	"github.com/lumen-chain/lumen/go/lumen"
	"github.com/lumen-chain/lumen/go/mathlib"
	"github.com/lumen-chain/lumen/go/vm"
)

const (
	Code lumen.Code = "stats"

	AddressCheckedEvent = "address_checked"

	ErrNotConfigured = lumen.ConstError("math contract not configured")
)

var mathKey = []byte("math")

// Local names under which the calc methods are bound.
const (
	localMean      = "get_mean"
	localSquares   = "sum_of_squares"
	localRoot      = "sqroot"
	localXor       = "address_xor"
	localParity    = "matched_parity"
	unboundAverage = "get_average"
)

var (
	valuesParam  = abi.ArrayParam("values", abi.Int32)
	addressParam = abi.Param("address", abi.Address)
)

func init() {
	vm.MustRegisterContract(Code, vm.MustNewContract([]vm.Method{
		{Function: abi.Function{Name: "init", Parameters: []abi.Parameter{abi.Param("math", abi.Address)}}, Run: initialize},
		{Function: abi.Function{Name: "variance", Parameters: []abi.Parameter{valuesParam}}, Run: variance},
		{Function: abi.Function{Name: "hypotenuse", Parameters: []abi.Parameter{abi.Param("a", abi.Int32), abi.Param("b", abi.Int32)}}, Run: hypotenuse},
		{Function: abi.Function{Name: "xor_checksum", Parameters: []abi.Parameter{addressParam}}, Run: xorChecksum},
		{Function: abi.Function{Name: "mod_invoke", Parameters: []abi.Parameter{addressParam}}, Run: modInvoke},
		{Function: abi.Function{Name: "mod_emit", Parameters: []abi.Parameter{addressParam}}, Run: modEmit},
		{Function: abi.Function{Name: "mean", Parameters: []abi.Parameter{valuesParam}}, Run: recursiveMean},
		{Function: abi.Function{Name: "average", Parameters: []abi.Parameter{valuesParam}}, Run: average},
		{Function: abi.Function{Name: "parity", Parameters: []abi.Parameter{abi.Param("a", abi.Int32), abi.Param("b", abi.Int32)}}, Run: parity},
	}, []abi.Event{
		{Name: AddressCheckedEvent, Parameters: []abi.Parameter{
			abi.Param("contract", abi.Address),
			abi.Param("checksum", abi.Uint8),
		}},
	}))
}

// initialize records the calc contract if called by the creator.
func initialize(host vm.Host, args *abi.Buffer) (uint64, error) {
	address, err := args.Address(0)
	if err != nil {
		return 0, err
	}
	if host.Caller() != host.Creator() {
		return 0, nil
	}
	return 0, host.SetStorage(mathKey, address[:])
}

func mathContract(host vm.Host) (lumen.Address, error) {
	data, err := host.GetStorage(mathKey)
	if errors.Is(err, lumen.ErrNotFound) {
		return lumen.Address{}, ErrNotConfigured
	}
	if err != nil {
		return lumen.Address{}, err
	}
	if len(data) != lumen.AddressLength {
		return lumen.Address{}, fmt.Errorf("corrupted math contract record of %d bytes", len(data))
	}
	return lumen.Address(data), nil
}

// bind binds calc methods given as pairs of remote and local names.
func bind(host vm.Host, names ...string) error {
	address, err := mathContract(host)
	if err != nil {
		return err
	}
	for i := 0; i+1 < len(names); i += 2 {
		if err := host.MethodBind(address, names[i], names[i+1]); err != nil {
			return err
		}
	}
	return nil
}

// errFailed signals a failed nested call to the method wrapper.
var errFailed = errors.New("nested call failed")

func invoke(host vm.Host, name string, args *abi.Buffer) (uint64, error) {
	res, err := host.Invoke(name, args)
	if err != nil {
		return 0, err
	}
	if res == lumen.Failure {
		return 0, errFailed
	}
	return res, nil
}

func finish(res uint64, err error) (uint64, error) {
	if errors.Is(err, errFailed) {
		return lumen.Failure, nil
	}
	return res, err
}

func variance(host vm.Host, args *abi.Buffer) (uint64, error) {
	return finish(computeVariance(host, args))
}

func computeVariance(host vm.Host, args *abi.Buffer) (uint64, error) {
	values, err := args.Int32Array(0)
	if err != nil {
		return 0, err
	}
	err = bind(host,
		calc.MeanFunction.Name, localMean,
		calc.SumOfSquaresFunction.Name, localSquares,
		calc.SquareRootFunction.Name, localRoot,
	)
	if err != nil {
		return 0, err
	}
	word, err := invoke(host, localMean, args)
	if err != nil {
		return 0, err
	}
	mean := int64(mathlib.FromWord(word))

	deviations := make([]int32, len(values))
	for i, v := range values {
		d := int64(v) - mean
		if d < math.MinInt32 || d > math.MaxInt32 {
			return 0, fmt.Errorf("deviation %d out of range", d)
		}
		deviations[i] = int32(d)
	}
	input := abi.NewBuffer()
	input.WriteInt32Array(deviations)
	sum, err := invoke(host, localSquares, input)
	if err != nil {
		return 0, err
	}
	return sum / uint64(len(values)), nil
}

func hypotenuse(host vm.Host, args *abi.Buffer) (uint64, error) {
	return finish(computeHypotenuse(host, args))
}

func computeHypotenuse(host vm.Host, args *abi.Buffer) (uint64, error) {
	a, err := args.Int32(0)
	if err != nil {
		return 0, err
	}
	b, err := args.Int32(1)
	if err != nil {
		return 0, err
	}
	err = bind(host,
		calc.SumOfSquaresFunction.Name, localSquares,
		calc.SquareRootFunction.Name, localRoot,
	)
	if err != nil {
		return 0, err
	}
	sides := abi.NewBuffer()
	sides.WriteInt32Array([]int32{a, b})
	sum, err := invoke(host, localSquares, sides)
	if err != nil {
		return 0, err
	}
	if sum > math.MaxInt32 {
		return 0, fmt.Errorf("squared sum %d exceeds square root input range", sum)
	}
	root := abi.NewBuffer()
	root.WriteInt32(int32(sum))
	return invoke(host, localRoot, root)
}

func checksum(host vm.Host, address lumen.Address) (uint64, error) {
	if err := bind(host, calc.AddressXorFunction.Name, localXor); err != nil {
		return 0, err
	}
	input := abi.NewBuffer()
	input.WriteAddress(address)
	return invoke(host, localXor, input)
}

func xorChecksum(host vm.Host, args *abi.Buffer) (uint64, error) {
	address, err := args.Address(0)
	if err != nil {
		return 0, err
	}
	res, err := checksum(host, address)
	if err != nil {
		return finish(res, err)
	}
	return res, host.Emit(AddressCheckedEvent, address, uint8(res))
}

// modInvoke passes a corrupted address to the calc contract.
func modInvoke(host vm.Host, args *abi.Buffer) (uint64, error) {
	address, err := args.Address(0)
	if err != nil {
		return 0, err
	}
	address[0] = 0
	res, err := checksum(host, address)
	if err != nil {
		return finish(res, err)
	}
	return res, host.Emit(AddressCheckedEvent, address, uint8(res))
}

// modEmit emits a corrupted address.
func modEmit(host vm.Host, args *abi.Buffer) (uint64, error) {
	address, err := args.Address(0)
	if err != nil {
		return 0, err
	}
	res, err := checksum(host, address)
	if err != nil {
		return finish(res, err)
	}
	address[0] = 0
	return res, host.Emit(AddressCheckedEvent, address, uint8(res))
}

// recursiveMean binds its own mean method and calls it, recursing until
// the call depth limit stops it.
func recursiveMean(host vm.Host, args *abi.Buffer) (uint64, error) {
	if err := host.MethodBind(host.ContractAddress(), "mean", localMean); err != nil {
		return 0, err
	}
	return host.Invoke(localMean, args)
}

// average calls a method that is never bound.
func average(host vm.Host, args *abi.Buffer) (uint64, error) {
	return host.Invoke(unboundAverage, args)
}

// parity calls matched_parity with a single argument.
func parity(host vm.Host, args *abi.Buffer) (uint64, error) {
	a, err := args.Int32(0)
	if err != nil {
		return 0, err
	}
	if err := bind(host, calc.MatchedParityFunction.Name, localParity); err != nil {
		return 0, err
	}
	input := abi.NewBuffer()
	input.WriteInt32(a)
	return host.Invoke(localParity, input)
}
