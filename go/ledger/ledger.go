// Copyright (c) 2024 Fantom Foundation
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at fantom.foundation/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

// Package ledger keeps token balances in the storage of a contract.
package ledger

import (
	"encoding/binary"
	"errors"
	"fmt"
	"math"

	"github.com/lumen-chain/lumen/go/lumen"
)

//go:generate mockgen -source ledger.go -destination ledger_mock.go -package ledger

const (
	ErrInsufficientFunds = lumen.ConstError("insufficient funds")
	ErrBalanceOverflow   = lumen.ConstError("balance overflow")
	ErrCorruptedBalance  = lumen.ConstError("corrupted balance record")
)

// Store is the contract storage the ledger operates on. A vm.Host
// satisfies it.
type Store interface {
	GetStorage(key []byte) ([]byte, error)
	SetStorage(key, value []byte) error
}

// Direction selects whether a balance change adds or removes funds.
type Direction int

const (
	Credit Direction = iota
	Debit
)

func (d Direction) String() string {
	switch d {
	case Credit:
		return "credit"
	case Debit:
		return "debit"
	}
	return fmt.Sprintf("Direction(%d)", int(d))
}

const balanceSize = 8

// Balance returns the balance of an account; accounts without a record
// hold nothing. Balances are stored as 8-byte little-endian values keyed
// by the address bytes.
func Balance(store Store, address lumen.Address) (uint64, error) {
	data, err := store.GetStorage(address[:])
	if errors.Is(err, lumen.ErrNotFound) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	if len(data) != balanceSize {
		return 0, fmt.Errorf("%w: %d bytes for %v", ErrCorruptedBalance, len(data), address)
	}
	return binary.LittleEndian.Uint64(data), nil
}

// ChangeBalance applies a credit or debit to an account. Nothing is
// written if the debit exceeds the balance or the credit overflows it.
func ChangeBalance(store Store, address lumen.Address, amount uint64, direction Direction) error {
	balance, err := Balance(store, address)
	if err != nil {
		return err
	}
	switch direction {
	case Credit:
		if balance > math.MaxUint64-amount {
			return fmt.Errorf("%w: %d + %d", ErrBalanceOverflow, balance, amount)
		}
		balance += amount
	case Debit:
		if balance < amount {
			return fmt.Errorf("%w: %d < %d", ErrInsufficientFunds, balance, amount)
		}
		balance -= amount
	default:
		return fmt.Errorf("invalid direction %v", direction)
	}
	return store.SetStorage(address[:], binary.LittleEndian.AppendUint64(nil, balance))
}

// Mint credits new funds to an account.
func Mint(store Store, to lumen.Address, amount uint64) error {
	return ChangeBalance(store, to, amount, Credit)
}

// Transfer moves funds between accounts. Either both balances change or
// none does.
func Transfer(store Store, from, to lumen.Address, amount uint64) error {
	if err := ChangeBalance(store, from, amount, Debit); err != nil {
		return err
	}
	if err := ChangeBalance(store, to, amount, Credit); err != nil {
		if restoreErr := ChangeBalance(store, from, amount, Credit); restoreErr != nil {
			return errors.Join(err, restoreErr)
		}
		return err
	}
	return nil
}
