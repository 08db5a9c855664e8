// Copyright (c) 2024 Fantom Foundation
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at fantom.foundation/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

package lumen

// ConstError is an error type that can be used to define immutable
// error constants.
type ConstError string

func (e ConstError) Error() string {
	return string(e)
}

const (
	// ErrFailure is the Go form of the negative sentinel a contract method
	// returns to signal a failed operation without raising a trap.
	ErrFailure = ConstError("method reported failure")

	// ErrNotFound is returned by storage lookups for absent keys.
	ErrNotFound = ConstError("not found")
)
