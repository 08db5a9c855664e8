// Copyright (c) 2024 Fantom Foundation
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at fantom.foundation/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

package mathlib

import (
	"errors"
	"math"
	"testing"

	"github.com/lumen-chain/lumen/go/lumen"
	"pgregory.net/rand"
)

func TestMean(t *testing.T) {
	tests := map[string]struct {
		values []int32
		want   int32
	}{
		"even":           {[]int32{4, 6, 8, 10}, 7},
		"single":         {[]int32{-5}, -5},
		"truncates up":   {[]int32{-1, -2}, -1},
		"truncates down": {[]int32{1, 2}, 1},
		"extremes":       {[]int32{math.MaxInt32, math.MaxInt32}, math.MaxInt32},
		"mixed extremes": {[]int32{math.MinInt32, math.MaxInt32}, 0},
	}
	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			got, err := Mean(test.values)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if test.want != got {
				t.Errorf("unexpected mean, wanted %d, got %d", test.want, got)
			}
		})
	}
}

func TestMean_EmptyInputIsDivisionByZero(t *testing.T) {
	if _, err := Mean(nil); !errors.Is(err, ErrDivisionByZero) {
		t.Errorf("expected division by zero, got %v", err)
	}
}

func TestSumOfSquares(t *testing.T) {
	tests := map[string]struct {
		values []int32
		want   uint64
	}{
		"empty":     {nil, 0},
		"small":     {[]int32{1, 2, 3}, 14},
		"negatives": {[]int32{-3, 4}, 25},
		"min int":   {[]int32{math.MinInt32}, 1 << 62},
		"three min": {[]int32{math.MinInt32, math.MinInt32, math.MinInt32}, 3 << 62},
	}
	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			got, err := SumOfSquares(test.values)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if test.want != got {
				t.Errorf("unexpected sum, wanted %d, got %d", test.want, got)
			}
		})
	}
}

func TestSumOfSquares_OverflowIsReported(t *testing.T) {
	values := []int32{math.MinInt32, math.MinInt32, math.MinInt32, math.MinInt32}
	if _, err := SumOfSquares(values); !errors.Is(err, ErrOverflow) {
		t.Errorf("expected overflow, got %v", err)
	}
}

func TestSqrt(t *testing.T) {
	tests := map[int64]uint64{
		0:             0,
		1:             1,
		15:            3,
		16:            4,
		25:            5,
		math.MaxInt64: 3037000499,
	}
	for x, want := range tests {
		got, err := Sqrt(x)
		if err != nil {
			t.Fatalf("unexpected error for %d: %v", x, err)
		}
		if want != got {
			t.Errorf("unexpected root of %d, wanted %d, got %d", x, want, got)
		}
	}
}

func TestSqrt_NegativeInputIsAnError(t *testing.T) {
	if _, err := Sqrt(-1); !errors.Is(err, ErrNegativeRoot) {
		t.Errorf("expected negative root error, got %v", err)
	}
}

func TestSqrt_IsFloorOfRoot(t *testing.T) {
	rnd := rand.New(1)
	for i := 0; i < 10_000; i++ {
		x := rnd.Uint64()
		r := SqrtUint64(x)
		if r > math.MaxUint32 {
			t.Fatalf("root %d of %d out of range", r, x)
		}
		if r*r > x {
			t.Fatalf("root %d of %d is too large", r, x)
		}
		if r < math.MaxUint32 && (r+1)*(r+1) <= x {
			t.Fatalf("root %d of %d is too small", r, x)
		}
	}
}

func TestXorFold(t *testing.T) {
	if got := XorFold(nil); got != 0 {
		t.Errorf("fold of nothing should be zero, got %d", got)
	}
	if got := XorFold([]byte{0x0f, 0xf0, 0x01}); got != 0xfe {
		t.Errorf("unexpected fold %x", got)
	}
}

func TestXorFold_DoubledInputCancels(t *testing.T) {
	rnd := rand.New(2)
	for i := 0; i < 100; i++ {
		var address lumen.Address
		rnd.Read(address[:])
		doubled := append(address[:], address[:]...)
		if got := XorFold(doubled); got != 0 {
			t.Fatalf("xor of doubled input should be zero, got %d", got)
		}
	}
}

func TestMatchedParity(t *testing.T) {
	tests := map[string]struct {
		a, b int32
		want bool
	}{
		"both even":         {2, 4, true},
		"both odd":          {3, 5, true},
		"mixed":             {2, 3, false},
		"negative odd":      {-3, -5, true},
		"negative and odd":  {-1, 1, false},
		"zero and negative": {0, -2, true},
	}
	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			if got := MatchedParity(test.a, test.b); test.want != got {
				t.Errorf("unexpected parity match for %d, %d: %v", test.a, test.b, got)
			}
		})
	}
}

func TestWord_RoundTripsAndAvoidsFailure(t *testing.T) {
	for _, v := range []int32{0, 1, -1, math.MinInt32, math.MaxInt32} {
		w := Word(v)
		if w == lumen.Failure {
			t.Errorf("%d collides with the failure word", v)
		}
		if got := FromWord(w); got != v {
			t.Errorf("round trip failed, wanted %d, got %d", v, got)
		}
	}
}
