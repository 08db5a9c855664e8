// Copyright (c) 2024 Fantom Foundation
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at fantom.foundation/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

package state

import (
	"bytes"
	"fmt"
	"slices"

	"github.com/ethereum/go-ethereum/rlp"
	"github.com/lumen-chain/lumen/go/lumen"
)

// StateDB is the transaction-scoped view on a Database. It implements
// lumen.TransactionContext: all modifications, including emitted events,
// are buffered in memory and recorded in an undo journal, so that they can
// be rolled back to any snapshot. Buffered changes are only written to the
// Database by Commit.
//
// Interface methods cannot report backend failures. The first such failure
// is memorized and reported by Error and Commit.
type StateDB struct {
	db       *Database
	accounts map[lumen.Address]account
	storage  map[slot][]byte
	events   []lumen.Event
	undo     []func()
	err      error
}

type slot struct {
	address lumen.Address
	key     string
}

// New creates an empty transaction view on the given database.
func New(db *Database) *StateDB {
	return &StateDB{
		db:       db,
		accounts: map[lumen.Address]account{},
		storage:  map[slot][]byte{},
	}
}

func (s *StateDB) setError(err error) {
	if s.err == nil {
		s.err = err
	}
}

// Error returns the first backend failure observed by this view.
func (s *StateDB) Error() error {
	return s.err
}

func (s *StateDB) getAccount(address lumen.Address) (account, bool) {
	if res, found := s.accounts[address]; found {
		return res, true
	}
	res, found, err := s.db.getAccount(address)
	if err != nil {
		s.setError(err)
	}
	return res, found
}

func (s *StateDB) setAccount(address lumen.Address, modified account) {
	original, dirty := s.accounts[address]
	s.accounts[address] = modified
	s.undo = append(s.undo, func() {
		if dirty {
			s.accounts[address] = original
		} else {
			delete(s.accounts, address)
		}
	})
}

func (s *StateDB) AccountExists(address lumen.Address) bool {
	_, found := s.getAccount(address)
	return found
}

func (s *StateDB) CreateAccount(address lumen.Address, creator lumen.Address, code lumen.Code) {
	modified, _ := s.getAccount(address)
	modified.Creator = creator
	modified.Code = code
	s.setAccount(address, modified)
}

func (s *StateDB) GetCreator(address lumen.Address) lumen.Address {
	res, _ := s.getAccount(address)
	return res.Creator
}

func (s *StateDB) GetCode(address lumen.Address) lumen.Code {
	res, _ := s.getAccount(address)
	return res.Code
}

func (s *StateDB) GetNonce(address lumen.Address) uint64 {
	res, _ := s.getAccount(address)
	return res.Nonce
}

func (s *StateDB) SetNonce(address lumen.Address, nonce uint64) {
	modified, _ := s.getAccount(address)
	modified.Nonce = nonce
	s.setAccount(address, modified)
}

func (s *StateDB) GetStorage(address lumen.Address, key []byte) ([]byte, bool) {
	if value, found := s.storage[slot{address, string(key)}]; found {
		return bytes.Clone(value), true
	}
	value, found, err := s.db.GetStorage(address, key)
	if err != nil {
		s.setError(err)
	}
	return value, found
}

func (s *StateDB) SetStorage(address lumen.Address, key []byte, value []byte) {
	id := slot{address, string(key)}
	original, dirty := s.storage[id]
	if value == nil {
		value = []byte{}
	}
	s.storage[id] = bytes.Clone(value)
	s.undo = append(s.undo, func() {
		if dirty {
			s.storage[id] = original
		} else {
			delete(s.storage, id)
		}
	})
}

func (s *StateDB) CreateSnapshot() lumen.Snapshot {
	return lumen.Snapshot(len(s.undo))
}

func (s *StateDB) RestoreSnapshot(snapshot lumen.Snapshot) {
	for len(s.undo) > int(snapshot) {
		s.undo[len(s.undo)-1]()
		s.undo = s.undo[:len(s.undo)-1]
	}
}

func (s *StateDB) EmitEvent(event lumen.Event) {
	size := len(s.events)
	event.Args = bytes.Clone(event.Args)
	s.events = append(s.events, event)
	s.undo = append(s.undo, func() { s.events = s.events[:size] })
}

func (s *StateDB) GetEvents() []lumen.Event {
	return slices.Clone(s.events)
}

// Commit writes all buffered modifications to the database in a single
// batch and resets the view. Events are dropped; they are reported through
// the receipt of the transaction.
func (s *StateDB) Commit() error {
	if s.err != nil {
		return s.err
	}
	batch := s.db.store.NewBatch()
	for address, acc := range s.accounts {
		data, err := rlp.EncodeToBytes(&acc)
		if err != nil {
			return fmt.Errorf("failed to encode account %v: %w", address, err)
		}
		if err := batch.Put(accountKey(address), data); err != nil {
			return err
		}
	}
	for id, value := range s.storage {
		if err := batch.Put(storageKey(id.address, []byte(id.key)), value); err != nil {
			return err
		}
	}
	if err := batch.Write(); err != nil {
		return fmt.Errorf("failed to write state: %w", err)
	}
	if s.db.cache != nil {
		for address, acc := range s.accounts {
			s.db.cache.Add(address, acc)
		}
	}
	s.Discard()
	return nil
}

// Discard drops all buffered modifications and events.
func (s *StateDB) Discard() {
	s.accounts = map[lumen.Address]account{}
	s.storage = map[slot][]byte{}
	s.events = nil
	s.undo = nil
}
