// Copyright (c) 2024 Fantom Foundation
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at fantom.foundation/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

package gas

import (
	"errors"
	"testing"

	"github.com/lumen-chain/lumen/go/lumen"
)

func TestFreePolicy_ChargesNothing(t *testing.T) {
	p := FreePolicy{}
	costs := []lumen.Gas{
		p.GetCostForStorage(100),
		p.GetCostForContract(100),
		p.GetCostForEvent(100),
		p.GetCostForCall(),
		p.GetCostForHash(100),
		p.GetCostForVerify(),
	}
	for i, cost := range costs {
		if cost != 0 {
			t.Errorf("cost %d should be zero, got %d", i, cost)
		}
	}
}

func TestAlphaPolicy_ChargesBySize(t *testing.T) {
	p := AlphaPolicy{}
	for _, size := range []int{0, 1, 33, 1024} {
		if want, got := lumen.Gas(size), p.GetCostForStorage(size); want != got {
			t.Errorf("unexpected storage cost for %d, wanted %d, got %d", size, want, got)
		}
		if want, got := lumen.Gas(size), p.GetCostForContract(size); want != got {
			t.Errorf("unexpected contract cost for %d, wanted %d, got %d", size, want, got)
		}
		if want, got := lumen.Gas(size), p.GetCostForEvent(size); want != got {
			t.Errorf("unexpected event cost for %d, wanted %d, got %d", size, want, got)
		}
	}
}

func TestAlphaPolicy_HashCostIsPerWord(t *testing.T) {
	tests := map[int]lumen.Gas{
		0:  1,
		1:  2,
		32: 2,
		33: 3,
		64: 3,
	}
	p := AlphaPolicy{}
	for size, want := range tests {
		if got := p.GetCostForHash(size); want != got {
			t.Errorf("unexpected hash cost for %d bytes, wanted %d, got %d", size, want, got)
		}
	}
}

func TestGetPolicy_IsCaseInsensitive(t *testing.T) {
	for _, name := range []string{"free", "FREE", "Alpha", "alpha"} {
		if _, err := GetPolicy(name); err != nil {
			t.Errorf("failed to get policy %q: %v", name, err)
		}
	}
}

func TestGetPolicy_UnknownNameIsAnError(t *testing.T) {
	if _, err := GetPolicy("beta"); err == nil {
		t.Errorf("expected an error for an unknown policy")
	}
}

func TestMeter_ChargesUntilLimit(t *testing.T) {
	m := NewMeter(10)
	if err := m.Charge(4); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := m.Charge(6); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if want, got := lumen.Gas(10), m.Used(); want != got {
		t.Errorf("unexpected used gas, wanted %d, got %d", want, got)
	}
	if err := m.Charge(1); !errors.Is(err, ErrOutOfGas) {
		t.Errorf("expected out of gas, got %v", err)
	}
	if want, got := lumen.Gas(0), m.Remaining(); want != got {
		t.Errorf("unexpected remaining gas, wanted %d, got %d", want, got)
	}
}

func TestMeter_ExhaustsOnOverrun(t *testing.T) {
	m := NewMeter(10)
	if err := m.Charge(11); !errors.Is(err, ErrOutOfGas) {
		t.Fatalf("expected out of gas, got %v", err)
	}
	if want, got := lumen.Gas(10), m.Used(); want != got {
		t.Errorf("meter should be exhausted, wanted %d used, got %d", want, got)
	}
}

func TestMeter_ZeroLimitIsUnlimited(t *testing.T) {
	m := NewMeter(0)
	if err := m.Charge(1 << 40); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if want, got := lumen.Gas(-1), m.Remaining(); want != got {
		t.Errorf("unexpected remaining gas, wanted %d, got %d", want, got)
	}
}

func TestMeter_NegativeChargeIsRejected(t *testing.T) {
	m := NewMeter(0)
	if err := m.Charge(-1); err == nil {
		t.Errorf("expected an error for a negative charge")
	}
}
