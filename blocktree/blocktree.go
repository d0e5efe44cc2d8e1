// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package blocktree - block index and block file metadata
//
// the records are owned by the chain state manager, this package only
// persists them and serves the block lookups the staking snapshot
// needs
package blocktree

import (
	"sort"

	"github.com/bitmark-inc/logger"
	"github.com/btcsuite/btcd/chaincfg/chainhash"

	"github.com/qitcoin/coinsdb/fault"
	"github.com/qitcoin/coinsdb/record"
	"github.com/qitcoin/coinsdb/staking"
	"github.com/qitcoin/coinsdb/storage"
)

// Tree - block tree database
type Tree struct {
	db  *storage.Database
	log *logger.L
}

// New - block tree over an open database
func New(db *storage.Database) *Tree {
	return &Tree{
		db:  db,
		log: logger.New("blocktree"),
	}
}

// ReadBlockFileInfo - summary of a block file, false if unknown
func (t *Tree) ReadBlockFileInfo(file uint32) (*record.BlockFileInfo, bool, error) {
	buffer, err := t.db.Pool(record.BlockFiles).Get(record.FileKey(file))
	if nil != err || nil == buffer {
		return nil, false, err
	}
	info, err := record.UnpackBlockFileInfo(buffer)
	if nil != err {
		return nil, false, err
	}
	return info, true, nil
}

// WriteReindexing - set or clear the reindex in progress marker
func (t *Tree) WriteReindexing(reindexing bool) error {
	b, err := t.db.Begin()
	if nil != err {
		return err
	}
	if reindexing {
		b.Put(record.Reindex, record.SingletonKey(), record.PackUint32(1))
	} else {
		b.Delete(record.Reindex, record.SingletonKey())
	}
	return b.Commit()
}

// ReadReindexing - true if a reindex was started and not finished
func (t *Tree) ReadReindexing() (bool, error) {
	return t.db.Pool(record.Reindex).Has(record.SingletonKey())
}

// ReadLastBlockFile - number of the last block file, false if none
func (t *Tree) ReadLastBlockFile() (uint32, bool, error) {
	buffer, err := t.db.Pool(record.LastBlockFile).Get(record.SingletonKey())
	if nil != err || nil == buffer {
		return 0, false, err
	}
	file, err := record.UnpackUint32(buffer)
	if nil != err {
		return 0, false, err
	}
	return file, true, nil
}

// WriteBatchSync - write file infos, the last file and block entries atomically
func (t *Tree) WriteBatchSync(files map[uint32]*record.BlockFileInfo, lastFile uint32, blocks []*record.BlockEntry) error {
	for _, block := range blocks {
		if err := block.Validate(); nil != err {
			t.log.Errorf("block: %s  invalid: %s", block.Hash, err)
			return err
		}
	}

	b, err := t.db.Begin()
	if nil != err {
		return err
	}

	numbers := make([]uint32, 0, len(files))
	for n := range files {
		numbers = append(numbers, n)
	}
	sort.Slice(numbers, func(i, j int) bool { return numbers[i] < numbers[j] })

	for _, n := range numbers {
		b.Put(record.BlockFiles, record.FileKey(n), files[n].Pack())
	}
	b.Put(record.LastBlockFile, record.SingletonKey(), record.PackUint32(lastFile))
	for _, block := range blocks {
		b.Put(record.BlockIndex, record.HashKey(block.Hash), block.Pack())
	}

	t.log.Debugf("write files: %d  last: %d  blocks: %d", len(files), lastFile, len(blocks))
	return b.Commit()
}

// WriteFlag - persist a named boolean
func (t *Tree) WriteFlag(name string, value bool) error {
	b, err := t.db.Begin()
	if nil != err {
		return err
	}
	b.Put(record.Flag, record.FlagKey(name), record.PackBool(value))
	return b.Commit()
}

// ReadFlag - value of a named boolean, false in second result if never written
func (t *Tree) ReadFlag(name string) (bool, bool, error) {
	buffer, err := t.db.Pool(record.Flag).Get(record.FlagKey(name))
	if nil != err || nil == buffer {
		return false, false, err
	}
	value, err := record.UnpackBool(buffer)
	if nil != err {
		return false, false, err
	}
	return value, true, nil
}

// Entry - stored block index entry
func (t *Tree) Entry(hash chainhash.Hash) (*record.BlockEntry, error) {
	buffer, err := t.db.Pool(record.BlockIndex).Get(record.HashKey(hash))
	if nil != err {
		return nil, err
	}
	if nil == buffer {
		return nil, fault.ErrBlockNotFound
	}
	return record.UnpackBlockEntry(hash, buffer)
}

// Block - staking.ChainView lookup
func (t *Tree) Block(hash chainhash.Hash) (staking.BlockInfo, error) {
	entry, err := t.Entry(hash)
	if nil != err {
		return staking.BlockInfo{}, err
	}
	return staking.BlockInfo{
		Hash:            entry.Hash,
		Prev:            entry.Prev,
		Height:          entry.Height,
		RewardRecipient: entry.RewardRecipient,
	}, nil
}

// LoadBlockIndex - pass every stored entry to insert in key order
//
// stops with fault.ErrInterrupted once shutdown is closed
func (t *Tree) LoadBlockIndex(insert func(*record.BlockEntry) error, shutdown <-chan struct{}) error {
	cursor := t.db.Pool(record.BlockIndex).NewFetchCursor()
	defer cursor.Release()

	n := 0
	err := cursor.Map(func(key []byte, value []byte) error {
		select {
		case <-shutdown:
			return fault.ErrInterrupted
		default:
		}

		hash, err := record.ParseHashKey(key)
		if nil != err {
			return err
		}
		entry, err := record.UnpackBlockEntry(hash, value)
		if nil != err {
			t.log.Criticalf("block: %s  failed to decode: %s", hash, err)
			return err
		}
		n += 1
		return insert(entry)
	})
	if nil != err {
		return err
	}
	t.log.Infof("loaded block index entries: %d", n)
	return nil
}

// verify interface
var _ staking.ChainView = (*Tree)(nil)
