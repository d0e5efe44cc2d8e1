// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package coinsdb

import (
	"github.com/btcsuite/btcd/chaincfg/chainhash"

	"github.com/qitcoin/coinsdb/coin"
	"github.com/qitcoin/coinsdb/fault"
	"github.com/qitcoin/coinsdb/index"
	"github.com/qitcoin/coinsdb/record"
	"github.com/qitcoin/coinsdb/storage"
)

const mib = 1 << 20

// Commit - write the dirty changes and move the tip to newTip
//
// the tip record is replaced by a head blocks marker in the first
// chunk and only restored in the last one, so a commit cut short
// after a partial flush is visible as MidCommit and is completed by
// calling Commit again with the same changes
//
// returns the number of dirty changes written
func (s *Store) Commit(changes coin.Changes, newTip chainhash.Hash) (int, error) {
	if (chainhash.Hash{}) == newTip {
		return 0, fault.ErrNullTip
	}
	if err := s.checkVersion(); nil != err {
		return 0, err
	}
	if err := changes.Validate(); nil != err {
		return 0, err
	}

	prevTip, err := s.previousTip(newTip)
	if nil != err {
		return 0, err
	}

	b, err := s.db.Begin()
	if nil != err {
		return 0, err
	}

	b.Delete(record.BestBlock, record.SingletonKey())
	b.Put(record.HeadBlocks, record.SingletonKey(), record.PackHashes([]chainhash.Hash{newTip, prevTip}))
	if s.tagVersion {
		b.Put(record.Version, record.SingletonKey(), record.PackUint32(Version))
	}

	count := 0
	for _, ch := range changes {
		if !ch.Dirty {
			continue
		}
		err := s.writeChange(b, ch)
		if nil != err {
			b.Abort()
			return 0, err
		}
		count += 1

		err = s.flushIfFull(b)
		if nil != err {
			b.Abort()
			return 0, err
		}
	}

	err = s.snapshot(b, newTip)
	if nil != err {
		b.Abort()
		return 0, err
	}

	b.Delete(record.HeadBlocks, record.SingletonKey())
	b.Put(record.BestBlock, record.SingletonKey(), record.PackHash(newTip))

	s.log.Debugf("writing final batch of %.2f MiB", float64(b.SizeEstimate())/mib)
	err = b.Commit()
	if nil != err {
		s.log.Errorf("commit error: %s", err)
		return 0, err
	}
	s.tagVersion = false

	s.log.Infof("committed %d changed coins (out of %d)  tip: %s", count, len(changes), newTip)
	return count, nil
}

// the tip the marker must name as the one being replaced
func (s *Store) previousTip(newTip chainhash.Hash) (chainhash.Hash, error) {
	state, err := s.TipState()
	if nil != err {
		return chainhash.Hash{}, err
	}

	switch st := state.(type) {
	case Clean:
		return st.Tip, nil
	case MidCommit:
		if st.NewTip != newTip {
			s.log.Criticalf("interrupted commit was to: %s  not: %s", st.NewTip, newTip)
			return chainhash.Hash{}, fault.ErrHeadBlocksMismatch
		}
		s.log.Warnf("completing interrupted commit from: %s  to: %s", st.PrevTip, st.NewTip)
		return st.PrevTip, nil
	default:
		return chainhash.Hash{}, fault.ErrRecordInvalidKey
	}
}

// primary record and its index records go into the same chunk
func (s *Store) writeChange(b *storage.Batch, ch coin.Change) error {
	key := record.CoinKey(ch.OutPoint)

	before := ch.Before
	if ch.IsSpent() && nil == before {
		buffer, err := b.Get(record.Coin, key)
		if nil != err {
			return err
		}
		if nil != buffer {
			before, err = record.PackedCoin(buffer).Unpack()
			if nil != err {
				return err
			}
		}
	}

	if ch.IsSpent() {
		b.Delete(record.Coin, key)
	} else {
		b.Put(record.Coin, key, record.PackCoin(ch.After))
	}
	apply(b, index.Derive(ch.OutPoint, before, ch.After))
	return nil
}

func apply(b *storage.Batch, ops []index.Op) {
	for _, op := range ops {
		if op.Erase {
			b.Delete(op.Kind, op.Key)
		} else {
			b.Put(op.Kind, op.Key, op.Value)
		}
	}
}

func (s *Store) flushIfFull(b *storage.Batch) error {
	if b.SizeEstimate() <= s.batchSize {
		return nil
	}
	return s.flush(b)
}

func (s *Store) flush(b *storage.Batch) error {
	s.log.Debugf("writing partial batch of %.2f MiB", float64(b.SizeEstimate())/mib)
	err := b.Flush()
	if nil != err {
		s.log.Errorf("partial flush error: %s", err)
		return err
	}
	if nil != s.flushHook {
		return s.flushHook(b.Flushes())
	}
	return nil
}

// take the staking snapshot when the new tip ends an epoch
func (s *Store) snapshot(b *storage.Batch, newTip chainhash.Hash) error {
	if nil == s.chain {
		return nil
	}
	tip, err := s.chain.Block(newTip)
	if nil != err {
		return err
	}
	if !s.params.IsEpochBoundary(tip.Height) {
		return nil
	}

	// the engine reads the database, not the batch
	err = s.flush(b)
	if nil != err {
		return err
	}

	_, err = s.engine.Snapshot(tip, &commitSink{store: s, batch: b}, s.shutdown)
	return err
}

// routes snapshot records into the open commit
type commitSink struct {
	store *Store
	batch *storage.Batch
}

func (c *commitSink) WriteCoin(o coin.OutPoint, cn *coin.Coin) error {
	c.batch.Put(record.Coin, record.CoinKey(o), record.PackCoin(cn))
	apply(c.batch, index.Entries(o, cn))
	return c.store.flushIfFull(c.batch)
}

func (c *commitSink) Put(kind record.Kind, key []byte, value []byte) error {
	c.batch.Put(kind, key, value)
	return c.store.flushIfFull(c.batch)
}
