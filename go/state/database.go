// Copyright (c) 2024 Fantom Foundation
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at fantom.foundation/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

// Package state implements durable contract storage on top of a key-value
// store and the transaction-scoped, journaled view used during execution.
package state

import (
	"errors"
	"fmt"

	"github.com/ethereum/go-ethereum/ethdb"
	"github.com/ethereum/go-ethereum/ethdb/leveldb"
	"github.com/ethereum/go-ethereum/ethdb/memorydb"
	"github.com/ethereum/go-ethereum/rlp"
	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/lumen-chain/lumen/go/lumen"
)

// Keys of the underlying store:
//
//	'a' | address         -> rlp(account)
//	's' | address | key   -> value
//
// Addresses have a fixed length, so storage keys of different contracts
// never collide.
const (
	accountPrefix = 'a'
	storagePrefix = 's'
)

// DatabaseConfig contains the configuration options of a Database.
type DatabaseConfig struct {
	// CacheSize is the number of account records kept in memory. If set to
	// 0, a default size is used. If negative, no cache is used.
	CacheSize int
}

const defaultCacheSize = 1 << 14

// account is the persistent record of an account.
type account struct {
	Nonce   uint64
	Creator lumen.Address
	Code    lumen.Code
}

// Database provides access to committed state. It is safe for concurrent
// reads; writes are applied through StateDB.Commit.
type Database struct {
	store ethdb.KeyValueStore
	cache *lru.Cache[lumen.Address, account]
}

// NewDatabase creates a Database on top of the given store.
func NewDatabase(store ethdb.KeyValueStore, config DatabaseConfig) (*Database, error) {
	if config.CacheSize == 0 {
		config.CacheSize = defaultCacheSize
	}
	var cache *lru.Cache[lumen.Address, account]
	if config.CacheSize > 0 {
		var err error
		cache, err = lru.New[lumen.Address, account](config.CacheSize)
		if err != nil {
			return nil, err
		}
	}
	return &Database{
		store: store,
		cache: cache,
	}, nil
}

// NewMemoryDatabase creates a Database backed by an in-memory store.
func NewMemoryDatabase() *Database {
	res, err := NewDatabase(memorydb.New(), DatabaseConfig{})
	if err != nil {
		panic(fmt.Sprintf("failed to create in-memory database: %v", err))
	}
	return res
}

// OpenLevelDB opens or creates a LevelDB backed Database in the given
// directory.
func OpenLevelDB(path string, config DatabaseConfig) (*Database, error) {
	store, err := leveldb.New(path, 16, 16, "lumen/db/", false)
	if err != nil {
		return nil, fmt.Errorf("failed to open database at %s: %w", path, err)
	}
	res, err := NewDatabase(store, config)
	if err != nil {
		return nil, fmt.Errorf("failed to open database at %s: %w", path, errors.Join(err, store.Close()))
	}
	return res, nil
}

// Close releases the underlying store.
func (d *Database) Close() error {
	return d.store.Close()
}

// HasAccount reports whether a committed account record exists.
func (d *Database) HasAccount(address lumen.Address) (bool, error) {
	_, found, err := d.getAccount(address)
	return found, err
}

// GetStorage returns a committed storage value of a contract.
func (d *Database) GetStorage(address lumen.Address, key []byte) ([]byte, bool, error) {
	return d.get(storageKey(address, key))
}

func (d *Database) getAccount(address lumen.Address) (account, bool, error) {
	if d.cache != nil {
		if res, found := d.cache.Get(address); found {
			return res, true, nil
		}
	}
	data, found, err := d.get(accountKey(address))
	if err != nil || !found {
		return account{}, false, err
	}
	var res account
	if err := rlp.DecodeBytes(data, &res); err != nil {
		return account{}, false, fmt.Errorf("corrupted account record %v: %w", address, err)
	}
	if d.cache != nil {
		d.cache.Add(address, res)
	}
	return res, true, nil
}

// get distinguishes absent keys from empty values, which backends report
// in different ways.
func (d *Database) get(key []byte) ([]byte, bool, error) {
	found, err := d.store.Has(key)
	if err != nil || !found {
		return nil, false, err
	}
	data, err := d.store.Get(key)
	if err != nil {
		return nil, false, err
	}
	return data, true, nil
}

func accountKey(address lumen.Address) []byte {
	res := make([]byte, 0, 1+lumen.AddressLength)
	res = append(res, accountPrefix)
	return append(res, address[:]...)
}

func storageKey(address lumen.Address, key []byte) []byte {
	res := make([]byte, 0, 1+lumen.AddressLength+len(key))
	res = append(res, storagePrefix)
	res = append(res, address[:]...)
	return append(res, key...)
}
