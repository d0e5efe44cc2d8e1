// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage

import (
	"fmt"
	"sync"

	"github.com/syndtr/goleveldb/leveldb"
	ldb_opt "github.com/syndtr/goleveldb/leveldb/opt"
	ldb_storage "github.com/syndtr/goleveldb/leveldb/storage"

	"github.com/bitmark-inc/logger"

	"github.com/qitcoin/coinsdb/fault"
	"github.com/qitcoin/coinsdb/record"
)

// pool access modes
const (
	ReadOnly  = true
	ReadWrite = false
)

// minimum cache given to LevelDB
const minimumCacheSize = 8 << 20

// Database - one LevelDB instance split into pools
type Database struct {
	sync.Mutex
	db       *leveldb.DB
	readOnly bool
	inUse    bool
	pools    map[record.Kind]*PoolHandle
	log      *logger.L
}

// Open - open up a database directory, creating it unless readOnly
func Open(path string, readOnly bool, cacheSize int) (*Database, error) {
	if cacheSize < minimumCacheSize {
		cacheSize = minimumCacheSize
	}
	opt := &ldb_opt.Options{
		ErrorIfExist:       false,
		ErrorIfMissing:     readOnly,
		ReadOnly:           readOnly,
		BlockCacheCapacity: cacheSize / 2,
		WriteBuffer:        cacheSize / 4,
	}

	db, err := leveldb.OpenFile(path, opt)
	if nil != err {
		return nil, fmt.Errorf("open: %q: %w", path, err)
	}
	d := newDatabase(db, readOnly)
	d.log.Infof("opened: %q  read only: %t  cache: %d", path, readOnly, cacheSize)
	return d, nil
}

// OpenMemory - a database that lives only as long as the process
func OpenMemory() (*Database, error) {
	db, err := leveldb.Open(ldb_storage.NewMemStorage(), nil)
	if nil != err {
		return nil, err
	}
	return newDatabase(db, ReadWrite), nil
}

func newDatabase(db *leveldb.DB, readOnly bool) *Database {
	d := &Database{
		db:       db,
		readOnly: readOnly,
		pools:    make(map[record.Kind]*PoolHandle),
		log:      logger.New("storage"),
	}
	return d
}

// Close - close the database connection
func (d *Database) Close() error {
	d.Lock()
	defer d.Unlock()

	if nil == d.db {
		return nil
	}
	err := d.db.Close()
	d.db = nil
	d.log.Info("closed")
	d.log.Flush()
	return err
}

// IsReadOnly - true if writes are rejected
func (d *Database) IsReadOnly() bool {
	return d.readOnly
}

// Pool - the pool holding records of one kind
func (d *Database) Pool(kind record.Kind) *PoolHandle {
	d.Lock()
	defer d.Unlock()

	if p, ok := d.pools[kind]; ok {
		return p
	}

	prefix := byte(kind)
	limit := []byte(nil)
	if prefix < 255 {
		limit = []byte{prefix + 1}
	}
	p := &PoolHandle{
		prefix:   prefix,
		limit:    limit,
		database: d,
	}
	d.pools[kind] = p
	return p
}

// Begin - start the single write batch
func (d *Database) Begin() (*Batch, error) {
	d.Lock()
	defer d.Unlock()

	if nil == d.db {
		return nil, fault.ErrDatabaseIsNotSet
	}
	if d.readOnly {
		return nil, fault.ErrDatabaseIsReadOnly
	}
	if d.inUse {
		return nil, fault.ErrBatchInUse
	}
	d.inUse = true
	return newBatch(d, newCache()), nil
}

func (d *Database) release() {
	d.Lock()
	d.inUse = false
	d.Unlock()
}

// Version - stored version record, false if none
func (d *Database) Version() (uint32, bool, error) {
	buffer, err := d.Pool(record.Version).Get(record.SingletonKey())
	if nil != err || nil == buffer {
		return 0, false, err
	}
	version, err := record.UnpackUint32(buffer)
	if nil != err {
		return 0, false, err
	}
	return version, true, nil
}

// handle returns nil once closed
func (d *Database) handle() *leveldb.DB {
	d.Lock()
	defer d.Unlock()
	return d.db
}
