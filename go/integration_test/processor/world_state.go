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
	"bytes"
	"fmt"
	"maps"

	"github.com/lumen-chain/lumen/go/lumen"
)

// ----------------------------------------------------------------------------
// WorldState
// ----------------------------------------------------------------------------

// WorldState provides a utility function to model the world state of a chain
// for testing. It is mainly intended to be used to define pre/post states of
// test scenarios for transaction processors.
type WorldState map[lumen.Address]Account

func (s WorldState) Equal(other WorldState) bool {
	return equalMapsIgnoringZero(s, other, func(a, b Account) bool {
		return a.Equal(&b)
	})
}

func (s WorldState) Clone() WorldState {
	if s == nil {
		return nil
	}
	res := make(WorldState, len(s))
	for k, v := range s {
		res[k] = v.Clone()
	}
	return res
}

func (s WorldState) Diff(other WorldState) []string {
	return diffMaps("", s, other, func(address lumen.Address, a, b Account) []string {
		if a.Equal(&b) {
			return nil
		}
		return a.Diff(fmt.Sprintf("%v/", address), &b)
	})
}

// ----------------------------------------------------------------------------
// Account
// ----------------------------------------------------------------------------

// Account represents an account in the world state. The default account is
// an empty account, that is ignored by the world state.
type Account struct {
	Nonce   uint64
	Creator lumen.Address
	Code    lumen.Code
	Storage Storage
}

func (a *Account) Equal(other *Account) bool {
	return a.Nonce == other.Nonce &&
		a.Creator == other.Creator &&
		a.Code == other.Code &&
		a.Storage.Equal(other.Storage)
}

func (a *Account) Clone() Account {
	return Account{
		Nonce:   a.Nonce,
		Creator: a.Creator,
		Code:    a.Code,
		Storage: a.Storage.Clone(),
	}
}

func (a *Account) Diff(prefix string, other *Account) []string {
	var res []string
	if a.Nonce != other.Nonce {
		res = append(res, fmt.Sprintf("different nonce: %v != %v", a.Nonce, other.Nonce))
	}
	if a.Creator != other.Creator {
		res = append(res, fmt.Sprintf("different creator: %v != %v", a.Creator, other.Creator))
	}
	if a.Code != other.Code {
		res = append(res, fmt.Sprintf("different code: %q != %q", a.Code, other.Code))
	}
	res = append(res, a.Storage.Diff(prefix+"Storage/", other.Storage)...)
	for i, diff := range res {
		res[i] = prefix + diff
	}
	return res
}

// ----------------------------------------------------------------------------
// Storage
// ----------------------------------------------------------------------------

// Storage represents the storage of an account in the world state. Unlike
// accounts, entries holding an empty value are present and are not ignored.
type Storage map[string][]byte

func (s Storage) Equal(other Storage) bool {
	if len(s) != len(other) {
		return false
	}
	for k, v := range s {
		w, found := other[k]
		if !found || !bytes.Equal(v, w) {
			return false
		}
	}
	return true
}

func (s Storage) Clone() Storage {
	if s == nil {
		return nil
	}
	res := maps.Clone(s)
	for k, v := range res {
		res[k] = bytes.Clone(v)
	}
	return res
}

func (s Storage) Diff(prefix string, other Storage) []string {
	var diffs []string
	for k, v := range s {
		w, found := other[k]
		if !found {
			diffs = append(diffs, fmt.Sprintf("%skey %x only present on one side", prefix, k))
		} else if !bytes.Equal(v, w) {
			diffs = append(diffs, fmt.Sprintf("%sdifferent value for key %x: %x != %x", prefix, k, v, w))
		}
	}
	for k := range other {
		if _, found := s[k]; !found {
			diffs = append(diffs, fmt.Sprintf("%skey %x only present on one side", prefix, k))
		}
	}
	return diffs
}

// ----------------------------------------------------------------------------
// Helpers
// ----------------------------------------------------------------------------

// equalMapsIgnoringZero compares two maps, ignoring zero-valued entries.
func equalMapsIgnoringZero[K comparable, V any](a, b map[K]V, equal func(V, V) bool) bool {
	for k, v := range a {
		if !equal(v, b[k]) {
			return false
		}
	}
	for k, v := range b {
		if !equal(v, a[k]) {
			return false
		}
	}
	return true
}

// diffMaps compares two maps and returns a list of differences.
func diffMaps[K comparable, V any](prefix string, a, b map[K]V, diff func(K, V, V) []string) []string {
	var diffs []string
	for k, v := range a {
		diffs = append(diffs, diff(k, v, b[k])...)
	}
	for k, v := range b {
		if _, overlap := a[k]; !overlap {
			diffs = append(diffs, diff(k, a[k], v)...)
		}
	}
	for i, diff := range diffs {
		diffs[i] = prefix + diff
	}
	return diffs
}
