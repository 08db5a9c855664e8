// Copyright (c) 2024 Fantom Foundation
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at fantom.foundation/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

// Package calc exposes the deterministic math library as a contract.
package calc

import (
	"github.com/lumen-chain/lumen/go/abi"
	"github.com/lumen-chain/lumen/go/lumen"
	"github.com/lumen-chain/lumen/go/mathlib"
	"github.com/lumen-chain/lumen/go/vm"
)

const Code lumen.Code = "calc"

var (
	valuesParam = abi.ArrayParam("values", abi.Int32)

	MeanFunction          = abi.Function{Name: "mean", Parameters: []abi.Parameter{valuesParam}}
	SumOfSquaresFunction  = abi.Function{Name: "sum_of_squares", Parameters: []abi.Parameter{valuesParam}}
	SquareRootFunction    = abi.Function{Name: "square_root", Parameters: []abi.Parameter{abi.Param("value", abi.Int32)}}
	AddressXorFunction    = abi.Function{Name: "address_xor", Parameters: []abi.Parameter{abi.Param("address", abi.Address)}}
	MatchedParityFunction = abi.Function{Name: "matched_parity", Parameters: []abi.Parameter{
		abi.Param("a", abi.Int32),
		abi.Param("b", abi.Int32),
	}}
)

func init() {
	vm.MustRegisterContract(Code, vm.MustNewContract([]vm.Method{
		{Function: MeanFunction, Run: mean},
		{Function: SumOfSquaresFunction, Run: sumOfSquares},
		{Function: SquareRootFunction, Run: squareRoot},
		{Function: AddressXorFunction, Run: addressXor},
		{Function: MatchedParityFunction, Run: matchedParity},
	}, nil))
}

func mean(_ vm.Host, args *abi.Buffer) (uint64, error) {
	values, err := args.Int32Array(0)
	if err != nil {
		return 0, err
	}
	res, err := mathlib.Mean(values)
	if err != nil {
		return 0, err
	}
	return mathlib.Word(res), nil
}

func sumOfSquares(_ vm.Host, args *abi.Buffer) (uint64, error) {
	values, err := args.Int32Array(0)
	if err != nil {
		return 0, err
	}
	return mathlib.SumOfSquares(values)
}

func squareRoot(_ vm.Host, args *abi.Buffer) (uint64, error) {
	value, err := args.Int32(0)
	if err != nil {
		return 0, err
	}
	return mathlib.Sqrt(int64(value))
}

func addressXor(_ vm.Host, args *abi.Buffer) (uint64, error) {
	address, err := args.Address(0)
	if err != nil {
		return 0, err
	}
	return uint64(mathlib.XorFold(address[:])), nil
}

func matchedParity(_ vm.Host, args *abi.Buffer) (uint64, error) {
	a, err := args.Int32(0)
	if err != nil {
		return 0, err
	}
	b, err := args.Int32(1)
	if err != nil {
		return 0, err
	}
	if mathlib.MatchedParity(a, b) {
		return 1, nil
	}
	return 0, nil
}
