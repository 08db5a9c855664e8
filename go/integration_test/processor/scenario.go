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
	"slices"
	"strings"
	"testing"

	"github.com/lumen-chain/lumen/go/lumen"
)

// Scenario represents a test scenario for a transaction processor. A scenario
// consists of a world state before and after the operation, a transaction to
// be executed, block chain parameters, and the expected receipt.
//
// The Error field of the expected receipt is matched as a substring; an
// empty expectation accepts any error description.
type Scenario struct {
	Before      WorldState
	After       WorldState
	Parameters  lumen.BlockParameters
	Transaction lumen.Transaction
	Receipt     lumen.Receipt
}

func (s *Scenario) Run(t *testing.T, processor lumen.Processor) {
	t.Helper()

	context := newScenarioContext(s.Before)
	receipt, err := processor.Run(s.Parameters, s.Transaction, context)
	if err != nil {
		t.Fatalf("failed to run transaction: %v", err)
	}

	// check the world state after the operation
	if want, got := s.After, context.current; !want.Equal(got) {
		diff := strings.Join(got.Diff(want), "\n\t")
		t.Fatalf("unexpected world state after the operation: \n\t%v", diff)
	}

	// check the receipt
	if want, got := s.Receipt.Success, receipt.Success; want != got {
		t.Errorf("unexpected success, want %v, got %v (%s)", want, got, receipt.Error)
	}
	if want, got := s.Receipt.Code, receipt.Code; want != got {
		t.Errorf("unexpected receipt code, want %v, got %v", want, got)
	}
	if want, got := s.Receipt.Result, receipt.Result; want != got {
		t.Errorf("unexpected result, want %d, got %d", want, got)
	}
	if want, got := s.Receipt.GasUsed, receipt.GasUsed; want != got {
		t.Errorf("unexpected gas used, want %v, got %v", want, got)
	}
	if want, got := s.Receipt.Error, receipt.Error; !strings.Contains(got, want) {
		t.Errorf("unexpected error, want %q, got %q", want, got)
	}

	wantedCreatedContract := s.Receipt.ContractAddress
	gotCreatedContract := receipt.ContractAddress
	if wantedCreatedContract == nil && gotCreatedContract != nil {
		t.Errorf("unexpected created contract address, want nil, got %v", gotCreatedContract)
	}
	if wantedCreatedContract != nil && gotCreatedContract == nil {
		t.Errorf("unexpected created contract address, want %v, got nil", wantedCreatedContract)
	}
	if wantedCreatedContract != nil && gotCreatedContract != nil {
		if want, got := *wantedCreatedContract, *gotCreatedContract; want != got {
			t.Errorf("unexpected created contract address, want %v, got %v", want, got)
		}
	}

	if len(receipt.Events) != len(s.Receipt.Events) {
		t.Fatalf("unexpected receipt events: %v", receipt.Events)
	}
	for i, want := range s.Receipt.Events {
		got := receipt.Events[i]
		if want, got := want.Contract, got.Contract; want != got {
			t.Errorf("unexpected event contract, want %v, got %v", want, got)
		}
		if want, got := want.Name, got.Name; want != got {
			t.Errorf("unexpected event name, want %v, got %v", want, got)
		}
		if want, got := want.Args, got.Args; !bytes.Equal(want, got) {
			t.Errorf("unexpected event data, want %x, got %x", want, got)
		}
	}
}

func (s *Scenario) Clone() Scenario {
	return Scenario{
		Before:      s.Before.Clone(),
		After:       s.After.Clone(),
		Parameters:  s.Parameters,
		Transaction: s.Transaction,
		Receipt:     s.Receipt,
	}
}

// ----------------------------------------------------------------------------

// scenarioContext implements the lumen.TransactionContext interface
// facilitating the interaction with a test-case specific context.
type scenarioContext struct {
	current WorldState
	events  []lumen.Event
	undo    []func()
}

func NewScenarioContext() *scenarioContext {
	return newScenarioContext(WorldState{})
}

func newScenarioContext(initial WorldState) *scenarioContext {
	current := initial.Clone()
	if current == nil {
		current = WorldState{}
	}
	return &scenarioContext{current: current}
}

func (c *scenarioContext) update(addr lumen.Address, modify func(*Account)) {
	original, present := c.current[addr]
	modified := original.Clone()
	modify(&modified)
	c.current[addr] = modified
	c.undo = append(c.undo, func() {
		if present {
			c.current[addr] = original
		} else {
			delete(c.current, addr)
		}
	})
}

func (c *scenarioContext) AccountExists(addr lumen.Address) bool {
	account := c.current[addr]
	return account.Nonce != 0 || account.Code != "" || len(account.Storage) != 0
}

func (c *scenarioContext) CreateAccount(addr lumen.Address, creator lumen.Address, code lumen.Code) {
	c.update(addr, func(a *Account) {
		a.Creator = creator
		a.Code = code
	})
}

func (c *scenarioContext) GetCreator(addr lumen.Address) lumen.Address {
	return c.current[addr].Creator
}

func (c *scenarioContext) GetCode(addr lumen.Address) lumen.Code {
	return c.current[addr].Code
}

func (c *scenarioContext) GetNonce(addr lumen.Address) uint64 {
	return c.current[addr].Nonce
}

func (c *scenarioContext) SetNonce(addr lumen.Address, value uint64) {
	c.update(addr, func(a *Account) { a.Nonce = value })
}

func (c *scenarioContext) GetStorage(addr lumen.Address, key []byte) ([]byte, bool) {
	value, found := c.current[addr].Storage[string(key)]
	return bytes.Clone(value), found
}

func (c *scenarioContext) SetStorage(addr lumen.Address, key []byte, value []byte) {
	if value == nil {
		value = []byte{}
	}
	c.update(addr, func(a *Account) {
		if a.Storage == nil {
			a.Storage = Storage{}
		}
		a.Storage[string(key)] = bytes.Clone(value)
	})
}

func (c *scenarioContext) CreateSnapshot() lumen.Snapshot {
	return lumen.Snapshot(len(c.undo))
}

func (c *scenarioContext) RestoreSnapshot(snapshot lumen.Snapshot) {
	for len(c.undo) > int(snapshot) {
		c.undo[len(c.undo)-1]()
		c.undo = c.undo[:len(c.undo)-1]
	}
}

func (c *scenarioContext) EmitEvent(event lumen.Event) {
	size := len(c.events)
	event.Args = bytes.Clone(event.Args)
	c.events = append(c.events, event)
	c.undo = append(c.undo, func() { c.events = c.events[:size] })
}

func (c *scenarioContext) GetEvents() []lumen.Event {
	return slices.Clone(c.events)
}
