// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package coinsdb - the unspent coin set with its secondary indices
//
// all mutation goes through Commit so that every live coin always
// has exactly the index records implied by its owner and payload
package coinsdb

import (
	"github.com/bitmark-inc/logger"
	"github.com/btcsuite/btcd/chaincfg/chainhash"

	"github.com/qitcoin/coinsdb/chain"
	"github.com/qitcoin/coinsdb/coin"
	"github.com/qitcoin/coinsdb/fault"
	"github.com/qitcoin/coinsdb/record"
	"github.com/qitcoin/coinsdb/staking"
	"github.com/qitcoin/coinsdb/storage"
)

// Version - layout version written by Upgrade
const Version = uint32(1)

// DefaultBatchSize - bytes accumulated before a partial flush
const DefaultBatchSize = 16 << 20

// Options - tuning for a store
type Options struct {
	BatchSize int             // zero selects DefaultBatchSize
	Shutdown  <-chan struct{} // closed to interrupt a running snapshot
}

// Store - coin database
type Store struct {
	db        *storage.Database
	params    *chain.Params
	chain     staking.ChainView
	engine    *staking.Engine
	batchSize int
	shutdown  <-chan struct{}
	log       *logger.L

	// indices predate Version, only Upgrade may run
	mustUpgrade bool
	// empty store, the first commit writes the version record
	tagVersion bool

	// called after each partial flush of a commit
	flushHook func(flushes int) error
}

// Open - create a store over an open database
//
// chainView may be nil, in which case commits never take staking
// snapshots
func Open(db *storage.Database, params *chain.Params, chainView staking.ChainView, options Options) (*Store, error) {
	if nil == db {
		return nil, fault.ErrDatabaseIsNotSet
	}
	if nil == params {
		return nil, fault.ErrInvalidChain
	}
	if err := params.Validate(); nil != err {
		return nil, err
	}

	batchSize := options.BatchSize
	if batchSize < 0 {
		return nil, fault.ErrZeroBatchSize
	}
	if 0 == batchSize {
		batchSize = DefaultBatchSize
	}

	log := logger.New("coinsdb")

	version, found, err := db.Version()
	if nil != err {
		return nil, err
	}
	if found && version > Version {
		log.Criticalf("database version: %d  supported: %d", version, Version)
		return nil, fault.ErrDatabaseVersion
	}

	s := &Store{
		db:        db,
		params:    params,
		chain:     chainView,
		engine:    staking.New(db, params, chainView),
		batchSize: batchSize,
		shutdown:  options.Shutdown,
		log:       log,
	}

	if !found {
		empty, err := isEmpty(db)
		if nil != err {
			return nil, err
		}
		s.tagVersion = empty
		s.mustUpgrade = !empty
	} else if version < Version {
		s.mustUpgrade = true
	}

	if s.mustUpgrade {
		log.Criticalf("database version: %d  found: %t  current version: %d", version, found, Version)
		if db.IsReadOnly() {
			return nil, fault.ErrUpgradeRequired
		}
	}

	log.Infof("chain: %s  version: %d  found: %t  batch size: %d", params.Name, version, found, batchSize)
	return s, nil
}

// MustUpgrade - true until Upgrade has rebuilt the indices of an old database
func (s *Store) MustUpgrade() bool {
	return s.mustUpgrade
}

// the index queries and commits need indices of the current version
func (s *Store) checkVersion() error {
	if s.mustUpgrade {
		return fault.ErrUpgradeRequired
	}
	return nil
}

// no coin, index or tip record at all
func isEmpty(db *storage.Database) (bool, error) {
	kinds := append([]record.Kind{record.Coin, record.BestBlock, record.HeadBlocks}, record.IndexKinds...)
	for _, kind := range kinds {
		_, found, err := db.Pool(kind).LastElement()
		if nil != err {
			return false, err
		}
		if found {
			return false, nil
		}
	}
	return true, nil
}

// Get - a live coin
func (s *Store) Get(o coin.OutPoint) (*coin.Coin, error) {
	buffer, err := s.db.Pool(record.Coin).Get(record.CoinKey(o))
	if nil != err {
		return nil, err
	}
	if nil == buffer {
		return nil, fault.ErrCoinNotFound
	}
	return record.PackedCoin(buffer).Unpack()
}

// Exists - true if the outpoint holds a live coin
func (s *Store) Exists(o coin.OutPoint) (bool, error) {
	return s.db.Pool(record.Coin).Has(record.CoinKey(o))
}

// BestTip - hash of the block the coin set reflects, false if none
func (s *Store) BestTip() (chainhash.Hash, bool, error) {
	buffer, err := s.db.Pool(record.BestBlock).Get(record.SingletonKey())
	if nil != err || nil == buffer {
		return chainhash.Hash{}, false, err
	}
	tip, err := record.UnpackHash(buffer)
	if nil != err {
		return chainhash.Hash{}, false, err
	}
	return tip, true, nil
}

// HeadBlocks - the in-progress commit marker, empty when clean
func (s *Store) HeadBlocks() ([]chainhash.Hash, error) {
	buffer, err := s.db.Pool(record.HeadBlocks).Get(record.SingletonKey())
	if nil != err || nil == buffer {
		return nil, err
	}
	return record.UnpackHashes(buffer)
}

// TipState - result of the startup recovery check
type TipState interface {
	tipState()
}

// Clean - no commit was interrupted, Tip is null on an empty store
type Clean struct {
	Tip chainhash.Hash
}

// MidCommit - a commit moving PrevTip to NewTip did not finish
type MidCommit struct {
	NewTip  chainhash.Hash
	PrevTip chainhash.Hash
}

func (Clean) tipState()     {}
func (MidCommit) tipState() {}

// TipState - classify the stored tip records
func (s *Store) TipState() (TipState, error) {
	tip, found, err := s.BestTip()
	if nil != err {
		return nil, err
	}
	if found {
		return Clean{Tip: tip}, nil
	}

	heads, err := s.HeadBlocks()
	if nil != err {
		return nil, err
	}
	switch len(heads) {
	case 0:
		return Clean{}, nil
	case 2:
		return MidCommit{NewTip: heads[0], PrevTip: heads[1]}, nil
	default:
		s.log.Criticalf("head blocks marker has %d entries", len(heads))
		return nil, fault.ErrRecordInvalidLength
	}
}

// StakingPools - enabled pools of the snapshot taken at epoch
func (s *Store) StakingPools(epoch chainhash.Hash) ([]record.StakingPool, error) {
	return s.engine.Pools(epoch)
}

// StakingPoolUsers - users of one pool in the snapshot taken at epoch
func (s *Store) StakingPoolUsers(epoch chainhash.Hash, pool coin.AccountID) ([]record.StakingPoolUser, error) {
	return s.engine.Users(epoch, pool)
}

// EstimateSize - approximate bytes on disk used by coin records
func (s *Store) EstimateSize() (int64, error) {
	return s.db.Pool(record.Coin).EstimateSize()
}
