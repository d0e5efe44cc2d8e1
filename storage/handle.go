// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage

import (
	"github.com/syndtr/goleveldb/leveldb"
	ldb_util "github.com/syndtr/goleveldb/leveldb/util"

	"github.com/qitcoin/coinsdb/fault"
)

// PoolHandle - read access to the records of one kind
type PoolHandle struct {
	prefix   byte
	limit    []byte
	database *Database
}

// Element - a binary data item
type Element struct {
	Key   []byte
	Value []byte
}

// prepend the prefix onto the key
func (p *PoolHandle) prefixKey(key []byte) []byte {
	prefixedKey := make([]byte, 1, len(key)+1)
	prefixedKey[0] = p.prefix
	return append(prefixedKey, key...)
}

// Prefix - the kind byte of this pool
func (p *PoolHandle) Prefix() byte {
	return p.prefix
}

// Get - read a value for a given key
//
// a missing key is not an error, the value is nil
func (p *PoolHandle) Get(key []byte) ([]byte, error) {
	db := p.database.handle()
	if nil == db {
		return nil, fault.ErrDatabaseIsNotSet
	}
	value, err := db.Get(p.prefixKey(key), nil)
	if leveldb.ErrNotFound == err {
		return nil, nil
	}
	return value, err
}

// Has - check if a key exists
func (p *PoolHandle) Has(key []byte) (bool, error) {
	db := p.database.handle()
	if nil == db {
		return false, fault.ErrDatabaseIsNotSet
	}
	return db.Has(p.prefixKey(key), nil)
}

// LastElement - get the last element in a pool
func (p *PoolHandle) LastElement() (Element, bool, error) {
	db := p.database.handle()
	if nil == db {
		return Element{}, false, fault.ErrDatabaseIsNotSet
	}

	maxRange := ldb_util.Range{
		Start: []byte{p.prefix}, // Start of key range, included in the range
		Limit: p.limit,          // Limit of key range, excluded from the range
	}
	iter := db.NewIterator(&maxRange, nil)

	found := false
	result := Element{}
	if iter.Last() {
		result = copyElement(iter.Key(), iter.Value())
		found = true
	}
	iter.Release()
	return result, found, iter.Error()
}

// EstimateSize - approximate bytes on disk used by the pool
func (p *PoolHandle) EstimateSize() (int64, error) {
	db := p.database.handle()
	if nil == db {
		return 0, fault.ErrDatabaseIsNotSet
	}
	sizes, err := db.SizeOf([]ldb_util.Range{{
		Start: []byte{p.prefix},
		Limit: p.limit,
	}})
	if nil != err {
		return 0, err
	}
	return sizes.Sum(), nil
}

// contents of iterator slices must not be modified, and are
// only valid until the next call to Next
func copyElement(key []byte, value []byte) Element {
	dataKey := make([]byte, len(key)-1) // strip the prefix
	copy(dataKey, key[1:])              // ...

	dataValue := make([]byte, len(value))
	copy(dataValue, value)

	return Element{
		Key:   dataKey,
		Value: dataValue,
	}
}
