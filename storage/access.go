// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage

import (
	"github.com/syndtr/goleveldb/leveldb"
	ldb_opt "github.com/syndtr/goleveldb/leveldb/opt"

	"github.com/qitcoin/coinsdb/fault"
	"github.com/qitcoin/coinsdb/record"
)

// Batch - the single writer of a database
//
// writes accumulate in memory until Flush, each flush is one atomic
// LevelDB write; Commit flushes the remainder with sync and ends the
// batch
type Batch struct {
	database *Database
	batch    *leveldb.Batch
	cache    Cache
	flushes  int
	done     bool
}

func newBatch(d *Database, c Cache) *Batch {
	return &Batch{
		database: d,
		batch:    new(leveldb.Batch),
		cache:    c,
	}
}

func batchKey(kind record.Kind, key []byte) []byte {
	prefixedKey := make([]byte, 1, len(key)+1)
	prefixedKey[0] = byte(kind)
	return append(prefixedKey, key...)
}

// Put - store a key/value pair
func (b *Batch) Put(kind record.Kind, key []byte, value []byte) {
	k := batchKey(kind, key)
	b.cache.Set(dbPut, string(k), value)
	b.batch.Put(k, value)
}

// Delete - remove a key
func (b *Batch) Delete(kind record.Kind, key []byte) {
	k := batchKey(kind, key)
	b.cache.Set(dbDelete, string(k), nil)
	b.batch.Delete(k)
}

// Get - read a key, pending writes of this batch take precedence
func (b *Batch) Get(kind record.Kind, key []byte) ([]byte, error) {
	k := batchKey(kind, key)
	value, op, found := b.cache.Get(string(k))
	if found {
		if dbDelete == op {
			return nil, nil
		}
		return value, nil
	}

	db := b.database.handle()
	if nil == db {
		return nil, fault.ErrDatabaseIsNotSet
	}
	value, err := db.Get(k, nil)
	if leveldb.ErrNotFound == err {
		return nil, nil
	}
	return value, err
}

// Has - check a key, pending writes of this batch take precedence
func (b *Batch) Has(kind record.Kind, key []byte) (bool, error) {
	k := batchKey(kind, key)
	_, op, found := b.cache.Get(string(k))
	if found {
		return dbPut == op, nil
	}

	db := b.database.handle()
	if nil == db {
		return false, fault.ErrDatabaseIsNotSet
	}
	return db.Has(k, nil)
}

// SizeEstimate - bytes of the unflushed chunk
func (b *Batch) SizeEstimate() int {
	return len(b.batch.Dump())
}

// Len - operations in the unflushed chunk
func (b *Batch) Len() int {
	return b.batch.Len()
}

// Flushes - number of chunks written so far
func (b *Batch) Flushes() int {
	return b.flushes
}

// Flush - write the current chunk as one atomic write and start a new one
func (b *Batch) Flush() error {
	return b.write(false)
}

// Commit - write the final chunk with sync and end the batch
func (b *Batch) Commit() error {
	if b.done {
		return fault.ErrBatchNotInUse
	}
	err := b.write(true)
	b.finish()
	return err
}

// Abort - drop the unflushed chunk and end the batch
//
// chunks already flushed stay written
func (b *Batch) Abort() {
	if b.done {
		return
	}
	b.finish()
}

func (b *Batch) write(sync bool) error {
	if b.done {
		return fault.ErrBatchNotInUse
	}

	db := b.database.handle()
	if nil == db {
		return fault.ErrDatabaseIsNotSet
	}
	err := db.Write(b.batch, &ldb_opt.WriteOptions{Sync: sync})
	if nil != err {
		return err
	}
	b.batch.Reset()
	b.cache.Clear()
	b.flushes += 1
	return nil
}

func (b *Batch) finish() {
	b.batch.Reset()
	b.cache.Clear()
	b.done = true
	b.database.release()
}
