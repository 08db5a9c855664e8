// Copyright (c) 2024 Fantom Foundation
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at fantom.foundation/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

package ledger

import (
	"bytes"
	"errors"
	"math"
	"testing"

	"github.com/lumen-chain/lumen/go/lumen"
	"go.uber.org/mock/gomock"
	"pgregory.net/rand"
)

type memStore map[string][]byte

func (s memStore) GetStorage(key []byte) ([]byte, error) {
	value, found := s[string(key)]
	if !found {
		return nil, lumen.ErrNotFound
	}
	return bytes.Clone(value), nil
}

func (s memStore) SetStorage(key, value []byte) error {
	s[string(key)] = bytes.Clone(value)
	return nil
}

var (
	alice = lumen.Address{1}
	bob   = lumen.Address{2}
)

func balanceOf(t *testing.T, store Store, address lumen.Address) uint64 {
	t.Helper()
	balance, err := Balance(store, address)
	if err != nil {
		t.Fatalf("failed to read balance: %v", err)
	}
	return balance
}

func TestBalance_MissingAccountHoldsNothing(t *testing.T) {
	if got := balanceOf(t, memStore{}, alice); got != 0 {
		t.Errorf("unexpected balance %d", got)
	}
}

func TestBalance_IsStoredLittleEndianUnderAddress(t *testing.T) {
	store := memStore{}
	if err := Mint(store, alice, 0x0102); err != nil {
		t.Fatalf("failed to mint: %v", err)
	}
	want := []byte{0x02, 0x01, 0, 0, 0, 0, 0, 0}
	if got := store[string(alice[:])]; !bytes.Equal(want, got) {
		t.Errorf("unexpected record, wanted %x, got %x", want, got)
	}
}

func TestBalance_CorruptedRecordIsAnError(t *testing.T) {
	store := memStore{string(alice[:]): {1, 2, 3}}
	if _, err := Balance(store, alice); !errors.Is(err, ErrCorruptedBalance) {
		t.Errorf("expected corrupted balance error, got %v", err)
	}
}

func TestChangeBalance(t *testing.T) {
	tests := map[string]struct {
		initial   uint64
		amount    uint64
		direction Direction
		want      uint64
		err       error
	}{
		"credit":           {10, 5, Credit, 15, nil},
		"debit":            {10, 4, Debit, 6, nil},
		"debit everything": {10, 10, Debit, 0, nil},
		"overdraw":         {10, 11, Debit, 10, ErrInsufficientFunds},
		"credit to max":    {math.MaxUint64 - 1, 1, Credit, math.MaxUint64, nil},
		"overflow":         {math.MaxUint64, 1, Credit, math.MaxUint64, ErrBalanceOverflow},
		"zero debit":       {0, 0, Debit, 0, nil},
	}
	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			store := memStore{}
			if err := Mint(store, alice, test.initial); err != nil {
				t.Fatalf("failed to mint: %v", err)
			}
			err := ChangeBalance(store, alice, test.amount, test.direction)
			if !errors.Is(err, test.err) {
				t.Errorf("unexpected error, wanted %v, got %v", test.err, err)
			}
			if got := balanceOf(t, store, alice); test.want != got {
				t.Errorf("unexpected balance, wanted %d, got %d", test.want, got)
			}
		})
	}
}

func TestChangeBalance_FailedDebitDoesNotWrite(t *testing.T) {
	ctrl := gomock.NewController(t)
	store := NewMockStore(ctrl)
	store.EXPECT().GetStorage(alice[:]).Return(nil, lumen.ErrNotFound)

	if err := ChangeBalance(store, alice, 1, Debit); !errors.Is(err, ErrInsufficientFunds) {
		t.Errorf("expected insufficient funds, got %v", err)
	}
}

func TestChangeBalance_StorageErrorsArePropagated(t *testing.T) {
	ctrl := gomock.NewController(t)
	store := NewMockStore(ctrl)
	injected := errors.New("injected")
	store.EXPECT().GetStorage(alice[:]).Return(nil, injected)

	if err := ChangeBalance(store, alice, 1, Credit); !errors.Is(err, injected) {
		t.Errorf("expected injected error, got %v", err)
	}
}

func TestTransfer_MovesFunds(t *testing.T) {
	store := memStore{}
	if err := Mint(store, alice, 100); err != nil {
		t.Fatalf("failed to mint: %v", err)
	}
	if err := Transfer(store, alice, bob, 30); err != nil {
		t.Fatalf("failed to transfer: %v", err)
	}
	if got := balanceOf(t, store, alice); got != 70 {
		t.Errorf("unexpected sender balance %d", got)
	}
	if got := balanceOf(t, store, bob); got != 30 {
		t.Errorf("unexpected receiver balance %d", got)
	}
}

func TestTransfer_ToSelfKeepsBalance(t *testing.T) {
	store := memStore{}
	if err := Mint(store, alice, 100); err != nil {
		t.Fatalf("failed to mint: %v", err)
	}
	if err := Transfer(store, alice, alice, 60); err != nil {
		t.Fatalf("failed to transfer: %v", err)
	}
	if got := balanceOf(t, store, alice); got != 100 {
		t.Errorf("unexpected balance %d", got)
	}
}

func TestTransfer_InsufficientFundsChangesNothing(t *testing.T) {
	store := memStore{}
	if err := Mint(store, alice, 10); err != nil {
		t.Fatalf("failed to mint: %v", err)
	}
	if err := Transfer(store, alice, bob, 11); !errors.Is(err, ErrInsufficientFunds) {
		t.Errorf("expected insufficient funds, got %v", err)
	}
	if got := balanceOf(t, store, alice); got != 10 {
		t.Errorf("unexpected sender balance %d", got)
	}
	if _, found := store[string(bob[:])]; found {
		t.Errorf("receiver balance should not be written")
	}
}

func TestTransfer_CreditOverflowRestoresDebit(t *testing.T) {
	store := memStore{}
	if err := Mint(store, alice, 10); err != nil {
		t.Fatalf("failed to mint: %v", err)
	}
	if err := Mint(store, bob, math.MaxUint64); err != nil {
		t.Fatalf("failed to mint: %v", err)
	}
	if err := Transfer(store, alice, bob, 5); !errors.Is(err, ErrBalanceOverflow) {
		t.Errorf("expected overflow, got %v", err)
	}
	if got := balanceOf(t, store, alice); got != 10 {
		t.Errorf("debit was not restored, balance is %d", got)
	}
}

func TestTransfer_RandomTransfersPreserveSupply(t *testing.T) {
	rnd := rand.New(42)
	accounts := []lumen.Address{{1}, {2}, {3}, {4}}
	store := memStore{}
	const supply = 1_000_000
	if err := Mint(store, accounts[0], supply); err != nil {
		t.Fatalf("failed to mint: %v", err)
	}
	for i := 0; i < 1000; i++ {
		from := accounts[rnd.Intn(len(accounts))]
		to := accounts[rnd.Intn(len(accounts))]
		amount := rnd.Uint64n(supply / 10)
		err := Transfer(store, from, to, amount)
		if err != nil && !errors.Is(err, ErrInsufficientFunds) {
			t.Fatalf("unexpected error: %v", err)
		}
	}
	total := uint64(0)
	for _, account := range accounts {
		total += balanceOf(t, store, account)
	}
	if total != supply {
		t.Errorf("supply changed, wanted %d, got %d", uint64(supply), total)
	}
}

func TestOwner_GenesisOwnerIsSetOnce(t *testing.T) {
	store := memStore{}
	if _, found, err := Owner(store); err != nil || found {
		t.Fatalf("unexpected owner before genesis: %v, %v", found, err)
	}
	owner, err := EnsureGenesisOwner(store, alice)
	if err != nil || owner != alice {
		t.Fatalf("unexpected genesis owner %v, %v", owner, err)
	}
	owner, err = EnsureGenesisOwner(store, bob)
	if err != nil || owner != alice {
		t.Errorf("genesis owner should not be replaced, got %v, %v", owner, err)
	}
	if err := CheckOwner(store, alice); err != nil {
		t.Errorf("alice should be the owner: %v", err)
	}
	if err := CheckOwner(store, bob); !errors.Is(err, ErrNotOwner) {
		t.Errorf("bob should not be the owner: %v", err)
	}
}

func TestOwner_SetOwnerReplacesOwner(t *testing.T) {
	store := memStore{}
	if err := SetOwner(store, alice); err != nil {
		t.Fatalf("failed to set owner: %v", err)
	}
	if err := SetOwner(store, bob); err != nil {
		t.Fatalf("failed to set owner: %v", err)
	}
	if owner, found, err := Owner(store); err != nil || !found || owner != bob {
		t.Errorf("unexpected owner %v, %v, %v", owner, found, err)
	}
}

func TestCheckOwner_NoOwnerIsNotOwner(t *testing.T) {
	if err := CheckOwner(memStore{}, alice); !errors.Is(err, ErrNotOwner) {
		t.Errorf("expected not owner, got %v", err)
	}
}

func TestDirection_String(t *testing.T) {
	if Credit.String() != "credit" || Debit.String() != "debit" || Direction(7).String() != "Direction(7)" {
		t.Errorf("unexpected direction names")
	}
}
