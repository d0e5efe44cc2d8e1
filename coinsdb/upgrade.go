// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package coinsdb

import (
	"bytes"

	"github.com/qitcoin/coinsdb/coin"
	"github.com/qitcoin/coinsdb/counter"
	"github.com/qitcoin/coinsdb/fault"
	"github.com/qitcoin/coinsdb/index"
	"github.com/qitcoin/coinsdb/record"
	"github.com/qitcoin/coinsdb/storage"
)

// progress reported while rebuilding stops short of completion
const maximumRebuildProgress = 90

// Upgrade - rebuild every secondary index from the coin records
//
// does nothing if the stored version is current; the version record
// is erased in the first chunk and written in the last, so an
// interrupted upgrade starts again from the beginning next time
//
// progress receives percentages in steps of ten, ending with 100
func (s *Store) Upgrade(shutdown <-chan struct{}, progress func(percent int)) (bool, error) {
	version, found, err := s.db.Version()
	if nil != err {
		return false, err
	}
	if found && Version == version {
		return false, nil
	}
	if nil == progress {
		progress = func(int) {}
	}

	s.log.Infof("upgrading coin database from version: %d  to: %d", version, Version)
	progress(0)

	b, err := s.db.Begin()
	if nil != err {
		return false, err
	}

	// the erased version record goes out with the first chunk
	s.mustUpgrade = true
	b.Delete(record.Version, record.SingletonKey())

	var removed counter.Counter
	for _, kind := range record.IndexKinds {
		cursor := s.db.Pool(kind).NewFetchCursor()
		err := cursor.Map(func(key []byte, value []byte) error {
			if isShutdown(shutdown) {
				return fault.ErrInterrupted
			}
			b.Delete(kind, key)
			removed.Increment()
			return s.flushIfFull(b)
		})
		cursor.Release()
		if nil != err {
			b.Abort()
			s.log.Warnf("upgrade stopped while removing indices: %s", err)
			return true, err
		}
	}

	added, err := s.rebuild(b, shutdown, progress)
	if nil != err {
		b.Abort()
		s.log.Warnf("upgrade stopped while adding indices: %s", err)
		return true, err
	}

	b.Put(record.Version, record.SingletonKey(), record.PackUint32(Version))
	err = b.Commit()
	if nil != err {
		return true, err
	}
	s.mustUpgrade = false
	s.tagVersion = false

	progress(100)
	s.log.Infof("upgrade done  removed: %d  added: %d", removed.Uint64(), added)
	return true, nil
}

// write the index records of every coin
//
// coin keys start with a uniformly distributed hash, so the first
// key byte measures progress
func (s *Store) rebuild(b *storage.Batch, shutdown <-chan struct{}, progress func(int)) (uint64, error) {
	var added counter.Counter
	reported := 0

	cursor := s.db.Pool(record.Coin).NewFetchCursor()
	defer cursor.Release()

	err := cursor.Map(func(key []byte, value []byte) error {
		if isShutdown(shutdown) {
			return fault.ErrInterrupted
		}
		o, err := record.ParseCoinKey(key)
		if nil != err {
			return err
		}
		c, err := record.PackedCoin(value).Unpack()
		if nil != err {
			s.log.Criticalf("cannot parse coin: %s  error: %s", o, err)
			return err
		}
		for _, op := range index.Entries(o, c) {
			b.Put(op.Kind, op.Key, op.Value)
			added.Increment()
		}

		percent := int(key[0]) * 100 / 256
		if percent > maximumRebuildProgress {
			percent = maximumRebuildProgress
		}
		if percent/10 > reported/10 {
			reported = percent
			progress(percent)
			s.log.Infof("upgrade progress: %d%%", percent)
		}
		return s.flushIfFull(b)
	})
	return added.Uint64(), err
}

// CheckIndexes - reconcile every index record against the coin records
//
// returns the number of coins checked
func (s *Store) CheckIndexes(shutdown <-chan struct{}) (int, error) {
	coins := 0

	cursor := s.db.Pool(record.Coin).NewFetchCursor()
	err := cursor.Map(func(key []byte, value []byte) error {
		if isShutdown(shutdown) {
			return fault.ErrInterrupted
		}
		o, err := record.ParseCoinKey(key)
		if nil != err {
			return err
		}
		c, err := record.PackedCoin(value).Unpack()
		if nil != err {
			return err
		}
		for _, op := range index.Entries(o, c) {
			stored, err := s.db.Pool(op.Kind).Get(op.Key)
			if nil != err {
				return err
			}
			if nil == stored {
				s.log.Criticalf("coin: %s  missing %s index entry", o, op.Kind)
				return fault.ErrMissingIndexEntry
			}
			if !bytes.Equal(stored, op.Value) {
				s.log.Criticalf("coin: %s  %s index value mismatch", o, op.Kind)
				return fault.ErrIndexValueMismatch
			}
		}
		coins += 1
		return nil
	})
	cursor.Release()
	if nil != err {
		return coins, err
	}

	for _, kind := range record.IndexKinds {
		cursor := s.db.Pool(kind).NewFetchCursor()
		err := cursor.Map(func(key []byte, value []byte) error {
			if isShutdown(shutdown) {
				return fault.ErrInterrupted
			}
			return s.checkEntry(kind, key)
		})
		cursor.Release()
		if nil != err {
			return coins, err
		}
	}

	s.log.Infof("checked indices of %d coins", coins)
	return coins, nil
}

// an index record must be one of the records its coin implies
func (s *Store) checkEntry(kind record.Kind, key []byte) error {
	_, o, err := record.ParseIndexKey(key)
	if nil != err {
		return err
	}
	c, err := s.Get(o)
	if fault.ErrCoinNotFound == err {
		s.log.Criticalf("%s index entry for missing coin: %s", kind, o)
		return fault.ErrIndexEntryWithoutCoin
	}
	if nil != err {
		return err
	}
	if !implies(o, c, kind, key) {
		s.log.Criticalf("%s index entry not implied by coin: %s", kind, o)
		return fault.ErrIndexEntryWithoutCoin
	}
	return nil
}

func implies(o coin.OutPoint, c *coin.Coin, kind record.Kind, key []byte) bool {
	for _, op := range index.Entries(o, c) {
		if op.Kind == kind && bytes.Equal(op.Key, key) {
			return true
		}
	}
	return false
}

func isShutdown(shutdown <-chan struct{}) bool {
	select {
	case <-shutdown:
		return true
	default:
		return false
	}
}
