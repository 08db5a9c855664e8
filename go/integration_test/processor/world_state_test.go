// Copyright (c) 2024 Fantom Foundation
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at fantom.foundation/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

package processor

import (
	"fmt"
	"slices"
	"strings"
	"testing"

	"github.com/lumen-chain/lumen/go/lumen"
)

func TestWorldState_Equal(t *testing.T) {

	tests := map[string]struct {
		a, b WorldState
	}{
		"both_nil": {},
		"left_hand_side_nil": {
			b: WorldState{},
		},
		"zero_accounts_are_ignored": {
			a: WorldState{
				{1}: Account{},
			},
			b: WorldState{
				{2}: Account{},
			},
		},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			if !test.a.Equal(test.b) {
				t.Errorf("world states %v and %v are expected to be equivalent, but they are not", test.a, test.b)
			}
		})
	}
}

func TestWorldState_ClonesAreIndependent(t *testing.T) {
	addr := lumen.Address{1}
	original := WorldState{
		addr: Account{Storage: Storage{
			"key": {0x01},
		}},
	}

	clone := original.Clone()
	clone[addr].Storage["key"][0] = 0x02

	if original[addr].Storage["key"][0] != 0x01 {
		t.Errorf("expected the original account to be independent from its clone")
	}
}

func TestWorldState_Diff(t *testing.T) {
	tests := map[string]struct {
		a, b     WorldState
		expected []string
	}{
		"both_nil": {},
		"identical": {
			a: WorldState{},
			b: WorldState{},
		},
		"different_accounts": {
			a:        WorldState{{1}: Account{Nonce: 1}},
			b:        WorldState{{1}: Account{Nonce: 2}},
			expected: []string{fmt.Sprintf("%v/different nonce: 1 != 2", lumen.Address{1})},
		},
		"extra_accounts": {
			a: WorldState{
				{1}: Account{Nonce: 1},
			},
			b: WorldState{
				{1}: Account{Nonce: 1},
				{2}: Account{Code: "calc"},
			},
			expected: []string{fmt.Sprintf(`%v/different code: "" != "calc"`, lumen.Address{2})},
		},
	}
	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			diffs := test.a.Diff(test.b)
			slices.Sort(test.expected)
			want := strings.Join(test.expected, ",")
			slices.Sort(diffs)
			got := strings.Join(diffs, ",")

			if want != got {
				t.Errorf("expected diffs [%v], but got [%v]", want, got)
			}
		})
	}
}

func TestAccount_NotEqual(t *testing.T) {
	tests := map[string]struct {
		a, b Account
	}{
		"different_nonce": {
			a: Account{Nonce: 4},
			b: Account{Nonce: 5},
		},
		"different_creator": {
			a: Account{Creator: lumen.Address{1}},
			b: Account{Creator: lumen.Address{2}},
		},
		"different_code": {
			a: Account{Code: "calc"},
			b: Account{Code: "stats"},
		},
		"different_storage": {
			a: Account{Storage: Storage{"k": {0x01}}},
			b: Account{Storage: Storage{"k": {0x02}}},
		},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			if test.a.Equal(&test.b) {
				t.Errorf("expected accounts %v and %v to be not equal", test.a, test.b)
			}
		})
	}
}

func TestAccount_Clone(t *testing.T) {
	a := Account{
		Nonce:   4,
		Creator: lumen.Address{7},
		Code:    "token",
		Storage: Storage{"a": {1}, "b": {}},
	}
	clone := a.Clone()
	if !a.Equal(&clone) {
		t.Errorf("expected account %v and its clone %v to be equal", a, clone)
	}
}

func TestStorage_EmptyValuesAreNotIgnored(t *testing.T) {
	tests := map[string]struct {
		a, b  Storage
		equal bool
	}{
		"both_nil":         {nil, nil, true},
		"nil_and_empty":    {nil, Storage{}, true},
		"same_values":      {Storage{"k": {1}}, Storage{"k": {1}}, true},
		"empty_vs_absent":  {Storage{"k": {}}, Storage{}, false},
		"absent_vs_empty":  {Storage{}, Storage{"k": {}}, false},
		"different_values": {Storage{"k": {1}}, Storage{"k": {2}}, false},
	}
	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			if want, got := test.equal, test.a.Equal(test.b); want != got {
				t.Errorf("unexpected equality of %v and %v, wanted %v, got %v", test.a, test.b, want, got)
			}
		})
	}
}

func TestStorage_Diff(t *testing.T) {
	a := Storage{"k": {1}, "x": {}}
	b := Storage{"k": {2}, "y": {3}}
	diffs := a.Diff("p/", b)
	slices.Sort(diffs)
	want := []string{
		"p/different value for key 6b: 01 != 02",
		"p/key 78 only present on one side",
		"p/key 79 only present on one side",
	}
	if !slices.Equal(want, diffs) {
		t.Errorf("unexpected diffs, wanted %v, got %v", want, diffs)
	}
}
