// Copyright (c) 2024 Fantom Foundation
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at fantom.foundation/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

// Package mathlib provides the deterministic integer arithmetic offered to
// contracts. No operation depends on floating point hardware.
package mathlib

import (
	"fmt"

	"github.com/holiman/uint256"
	"github.com/lumen-chain/lumen/go/lumen"
)

const (
	ErrDivisionByZero = lumen.ConstError("division by zero")
	ErrOverflow       = lumen.ConstError("arithmetic overflow")
	ErrNegativeRoot   = lumen.ConstError("square root of negative number")
)

// Mean returns the arithmetic mean of the values, truncated toward zero.
func Mean(values []int32) (int32, error) {
	if len(values) == 0 {
		return 0, ErrDivisionByZero
	}
	sum := int64(0)
	for _, v := range values {
		sum += int64(v)
	}
	return int32(sum / int64(len(values))), nil
}

// SumOfSquares returns the sum of the squared values. The sum is computed
// in 256 bits and must fit into 64.
func SumOfSquares(values []int32) (uint64, error) {
	sum := new(uint256.Int)
	square := new(uint256.Int)
	for _, v := range values {
		abs := int64(v)
		if abs < 0 {
			abs = -abs
		}
		square.SetUint64(uint64(abs))
		square.Mul(square, square)
		sum.Add(sum, square)
	}
	if !sum.IsUint64() {
		return 0, fmt.Errorf("%w: sum of squares of %d values", ErrOverflow, len(values))
	}
	return sum.Uint64(), nil
}

// Sqrt returns the integer square root of x, the largest r with r*r <= x.
func Sqrt(x int64) (uint64, error) {
	if x < 0 {
		return 0, fmt.Errorf("%w: %d", ErrNegativeRoot, x)
	}
	return SqrtUint64(uint64(x)), nil
}

// SqrtUint64 is Sqrt for unsigned inputs.
func SqrtUint64(x uint64) uint64 {
	return new(uint256.Int).Sqrt(uint256.NewInt(x)).Uint64()
}

// XorFold combines all bytes with exclusive or.
func XorFold(data []byte) uint8 {
	res := uint8(0)
	for _, b := range data {
		res ^= b
	}
	return res
}

// MatchedParity reports whether both values have the same remainder
// modulo 2, using truncated division. A negative odd number thus does
// not match a positive one.
func MatchedParity(a, b int32) bool {
	return a%2 == b%2
}

// Word converts a signed 32-bit result into the result word of a method.
// The value is zero-extended, so no 32-bit result collides with
// lumen.Failure.
func Word(v int32) uint64 {
	return uint64(uint32(v))
}

// FromWord is the inverse of Word.
func FromWord(w uint64) int32 {
	return int32(uint32(w))
}
