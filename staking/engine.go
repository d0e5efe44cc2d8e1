// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package staking

import (
	"sort"

	"github.com/bitmark-inc/logger"
	"github.com/btcsuite/btcd/chaincfg/chainhash"

	"github.com/qitcoin/coinsdb/chain"
	"github.com/qitcoin/coinsdb/coin"
	"github.com/qitcoin/coinsdb/fault"
	"github.com/qitcoin/coinsdb/record"
	"github.com/qitcoin/coinsdb/storage"
)

// Engine - computes and reads staking snapshots
type Engine struct {
	db     *storage.Database
	params *chain.Params
	chain  ChainView
	log    *logger.L
}

type userStatus struct {
	stake        uint64
	withdrawable uint64
}

// pool -> user -> status
type poolUsers map[coin.AccountID]map[coin.AccountID]*userStatus

// New - create an engine over a database
func New(db *storage.Database, params *chain.Params, chainView ChainView) *Engine {
	return &Engine{
		db:     db,
		params: params,
		chain:  chainView,
		log:    logger.New("staking"),
	}
}

// Snapshot - write the snapshot of the epoch ending at tip
//
// returns false without writing anything unless tip is an epoch
// boundary; the staking coins of the current commit must already be
// flushed to the database
func (e *Engine) Snapshot(tip BlockInfo, sink Sink, shutdown <-chan struct{}) (bool, error) {
	if !e.params.IsEpochBoundary(tip.Height) {
		return false, nil
	}

	e.log.Infof("begin snapshot for epoch: %d  hash: %s", tip.Height, tip.Hash)

	enabled, users, err := e.scan(tip.Height, shutdown)
	if nil != err {
		return false, err
	}

	if e.params.HasPreviousEpoch(tip.Height) {
		err := e.foldPrevious(tip, users)
		if nil != err {
			return false, err
		}
	}

	err = e.write(tip, enabled, users, sink)
	if nil != err {
		return false, err
	}
	return true, nil
}

// scan the staking receive index
func (e *Engine) scan(height uint32, shutdown <-chan struct{}) (map[coin.AccountID]coin.OutPoint, poolUsers, error) {
	enabled := make(map[coin.AccountID]coin.OutPoint)
	users := make(poolUsers)

	coins := e.db.Pool(record.Coin)
	cursor := e.db.Pool(record.StakingReceiveIndex).NewFetchCursor()
	defer cursor.Release()

	err := cursor.Map(func(key []byte, value []byte) error {
		select {
		case <-shutdown:
			return fault.ErrInterrupted
		default:
		}

		receiver, outpoint, err := record.ParseIndexKey(key)
		if nil != err {
			return err
		}
		buffer, err := coins.Get(record.CoinKey(outpoint))
		if nil != err {
			return err
		}
		if nil == buffer {
			e.log.Criticalf("staking index entry without coin: %s", outpoint)
			return fault.ErrIndexEntryWithoutCoin
		}
		c, err := record.PackedCoin(buffer).Unpack()
		if nil != err {
			return err
		}
		payload := c.Staking()
		if nil == payload || payload.Receiver != receiver || !c.HasOwner() {
			e.log.Criticalf("staking index entry for non staking coin: %s", outpoint)
			return fault.ErrNotStakingCoin
		}

		e.log.Debugf("staking coin: from: %s  to: %s  amount: %d", c.Owner, receiver, payload.Amount)

		if c.OwnedBy(e.params.StakingGenesisID) {
			if c.Value >= e.params.InitialStakingPoolAmount(c.Height) {
				enabled[receiver] = outpoint
			}
			return nil
		}

		if payload.Unlocked(c.Height, height) {
			return nil
		}

		pool, ok := users[receiver]
		if !ok {
			pool = make(map[coin.AccountID]*userStatus)
			users[receiver] = pool
		}
		u, ok := pool[*c.Owner]
		if !ok {
			u = &userStatus{}
			pool[*c.Owner] = u
		}
		u.stake, err = add(u.stake, payload.Amount)
		return err
	})
	if nil != err {
		return nil, nil, err
	}

	for poolID := range users {
		if _, ok := enabled[poolID]; !ok {
			delete(users, poolID)
		}
	}
	return enabled, users, nil
}

// carry forward withdrawable amounts and add the previous epoch rewards
func (e *Engine) foldPrevious(tip BlockInfo, users poolUsers) error {

	rewards := make(map[coin.AccountID]uint64)
	block := tip
	for i := uint32(0); i < e.params.EpochBlocks; i += 1 {
		r, err := add(rewards[block.RewardRecipient], e.params.StakingPoolSubsidy(block.Height))
		if nil != err {
			return err
		}
		rewards[block.RewardRecipient] = r

		block, err = e.chain.Block(block.Prev)
		if nil != err {
			return err
		}
	}
	previous := block.Hash

	prevPools, err := e.Pools(previous)
	if nil != err {
		return err
	}
	if 0 == len(prevPools) {
		e.log.Debugf("no snapshot for previous epoch: %s", previous)
		return nil
	}
	prevStake := make(map[coin.AccountID]uint64, len(prevPools))
	for _, p := range prevPools {
		prevStake[p.PoolID] = p.StakeAmount
	}

	coins := e.db.Pool(record.Coin)

	for _, poolID := range sortedPools(users) {
		current := users[poolID]

		prevUsers, err := e.Users(previous, poolID)
		if nil != err {
			return err
		}

		for _, prev := range prevUsers {
			u, ok := current[prev.AccountID]
			if !ok {
				continue
			}

			if prev.WithdrawableAmount >= e.params.MinWithdrawableAmount {
				withdraw := WithdrawOutPoint(previous, poolID, prev.AccountID)
				unclaimed, err := coins.Has(record.CoinKey(withdraw))
				if nil != err {
					return err
				}
				if unclaimed {
					u.withdrawable = prev.WithdrawableAmount
				}
			} else {
				u.withdrawable = prev.WithdrawableAmount
			}

			reward, err := UserReward(rewards[poolID], prev.StakeAmount, prevStake[poolID])
			if nil != err {
				e.log.Criticalf("pool: %s  user: %s  stake: %d exceeds pool stake: %d", poolID, prev.AccountID, prev.StakeAmount, prevStake[poolID])
				return err
			}
			u.withdrawable, err = add(u.withdrawable, reward)
			if nil != err {
				return err
			}
		}
		e.log.Debugf("pool: %s  previous stake: %d  reward: %d", poolID, prevStake[poolID], rewards[poolID])
	}
	return nil
}

// persist the new generation
func (e *Engine) write(tip BlockInfo, enabled map[coin.AccountID]coin.OutPoint, users poolUsers, sink Sink) error {

	userCount := 0
	pools := make([]record.StakingPool, 0, len(users))

	for _, poolID := range sortedPools(users) {
		current := users[poolID]

		total := uint64(0)
		list := make([]record.StakingPoolUser, 0, len(current))
		for userID, u := range current {
			list = append(list, record.StakingPoolUser{
				AccountID:          userID,
				StakeAmount:        u.stake,
				WithdrawableAmount: u.withdrawable,
			})
			var err error
			total, err = add(total, u.stake)
			if nil != err {
				return err
			}
		}
		record.SortUsers(list)

		for _, u := range list {
			if u.WithdrawableAmount < e.params.MinWithdrawableAmount {
				continue
			}
			owner := u.AccountID
			c := &coin.Coin{
				Value:  u.WithdrawableAmount,
				Height: tip.Height,
				Owner:  &owner,
			}
			err := sink.WriteCoin(WithdrawOutPoint(tip.Hash, poolID, u.AccountID), c)
			if nil != err {
				return err
			}
		}

		err := sink.Put(record.StakingPoolUsers, record.PoolUsersKey(tip.Hash, poolID), record.PackUsers(list))
		if nil != err {
			return err
		}
		userCount += len(list)

		pools = append(pools, record.StakingPool{
			PoolID:      poolID,
			Genesis:     enabled[poolID],
			StakeAmount: total,
		})
		e.log.Infof("pool: %s  stake: %d  users: %d", poolID, total, len(list))
	}
	record.SortPools(pools)

	err := sink.Put(record.StakingPools, record.HashKey(tip.Hash), record.PackPools(pools))
	if nil != err {
		return err
	}
	e.log.Infof("snapshot epoch: %d  pools: %d  users: %d", tip.Height, len(pools), userCount)
	return nil
}

// Pools - the enabled pools of a snapshot, nil if there is none
func (e *Engine) Pools(epoch chainhash.Hash) ([]record.StakingPool, error) {
	buffer, err := e.db.Pool(record.StakingPools).Get(record.HashKey(epoch))
	if nil != err || nil == buffer {
		return nil, err
	}
	return record.UnpackPools(buffer)
}

// Users - the users of one pool in a snapshot, nil if there is none
func (e *Engine) Users(epoch chainhash.Hash, pool coin.AccountID) ([]record.StakingPoolUser, error) {
	buffer, err := e.db.Pool(record.StakingPoolUsers).Get(record.PoolUsersKey(epoch, pool))
	if nil != err || nil == buffer {
		return nil, err
	}
	return record.UnpackUsers(buffer)
}

// deterministic iteration order over pools
func sortedPools(users poolUsers) []coin.AccountID {
	ids := make([]coin.AccountID, 0, len(users))
	for id := range users {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool {
		return ids[i].Compare(ids[j]) < 0
	})
	return ids
}
