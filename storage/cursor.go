// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage

import (
	"github.com/syndtr/goleveldb/leveldb"
	"github.com/syndtr/goleveldb/leveldb/util"

	"github.com/qitcoin/coinsdb/fault"
)

// FetchCursor - cursor structure
//
// all reads through one cursor see the database as it was when the
// cursor was created, Release must be called when done
type FetchCursor struct {
	pool     *PoolHandle
	maxRange util.Range
	snapshot *leveldb.Snapshot
	err      error
}

// NewFetchCursor - initialise a cursor to the start of a key range
func (p *PoolHandle) NewFetchCursor() *FetchCursor {
	cursor := &FetchCursor{
		pool: p,
		maxRange: util.Range{
			Start: []byte{p.prefix}, // Start of key range, included in the range
			Limit: p.limit,          // Limit of key range, excluded from the range
		},
	}

	db := p.database.handle()
	if nil == db {
		cursor.err = fault.ErrDatabaseIsNotSet
		return cursor
	}
	cursor.snapshot, cursor.err = db.GetSnapshot()
	return cursor
}

// Seek - move cursor to specific key position
func (cursor *FetchCursor) Seek(key []byte) *FetchCursor {
	cursor.maxRange.Start = cursor.pool.prefixKey(key)
	return cursor
}

// Prefix - restrict the cursor to keys starting with prefix
func (cursor *FetchCursor) Prefix(prefix []byte) *FetchCursor {
	cursor.maxRange = *util.BytesPrefix(cursor.pool.prefixKey(prefix))
	if nil == cursor.maxRange.Limit {
		cursor.maxRange.Limit = cursor.pool.limit
	}
	return cursor
}

// Release - drop the point in time view
func (cursor *FetchCursor) Release() {
	if nil != cursor && nil != cursor.snapshot {
		cursor.snapshot.Release()
		cursor.snapshot = nil
		cursor.err = fault.ErrInvalidCursor
	}
}

// Fetch - return some elements starting from key
func (cursor *FetchCursor) Fetch(count int) ([]Element, error) {
	if nil == cursor {
		return nil, fault.ErrInvalidCursor
	}
	if count <= 0 {
		return nil, fault.ErrInvalidCount
	}
	if nil != cursor.err {
		return nil, cursor.err
	}

	iter := cursor.snapshot.NewIterator(&cursor.maxRange, nil)

	results := make([]Element, 0, count)
	n := 0
iterating:
	for iter.Next() {
		results = append(results, copyElement(iter.Key(), iter.Value()))
		n += 1
		if n >= count {
			break iterating
		}
	}
	iter.Release()
	err := iter.Error()

	if n > 0 {
		cursor.maxRange.Start = nextKey(cursor.pool.prefixKey(results[n-1].Key))
	}
	return results, err
}

// Map - run a function on all elements in the range
//
// iteration stops at the first error returned by f
func (cursor *FetchCursor) Map(f func(key []byte, value []byte) error) error {
	if nil == cursor {
		return fault.ErrInvalidCursor
	}
	if nil != cursor.err {
		return cursor.err
	}

	iter := cursor.snapshot.NewIterator(&cursor.maxRange, nil)

	var err error
iterating:
	for iter.Next() {
		e := copyElement(iter.Key(), iter.Value())
		err = f(e.Key, e.Value)
		if nil != err {
			break iterating
		}
	}
	iter.Release()
	if nil == err {
		err = iter.Error()
	}
	return err
}

// the smallest key greater than key
func nextKey(key []byte) []byte {
	next := make([]byte, len(key)+1)
	copy(next, key)
	return next
}
