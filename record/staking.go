// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package record

import (
	"bytes"
	"sort"

	"github.com/btcsuite/btcd/chaincfg/chainhash"

	"github.com/qitcoin/coinsdb/coin"
	"github.com/qitcoin/coinsdb/util"
)

// smallest encodings, used to bound list counts
const (
	minimumPoolSize = coin.AccountIDSize + chainhash.HashSize + 2
	minimumUserSize = coin.AccountIDSize + 2
)

// StakingPool - one enabled pool of an epoch snapshot
type StakingPool struct {
	PoolID      coin.AccountID `json:"poolId"`
	Genesis     coin.OutPoint  `json:"genesis"`
	StakeAmount uint64         `json:"stakeAmount,string"`
}

// StakingPoolUser - one depositor of a pool in an epoch snapshot
type StakingPoolUser struct {
	AccountID          coin.AccountID `json:"accountId"`
	StakeAmount        uint64         `json:"stakeAmount,string"`
	WithdrawableAmount uint64         `json:"withdrawableAmount,string"`
}

// SortPools - stake descending then pool id ascending
func SortPools(pools []StakingPool) {
	sort.Slice(pools, func(i, j int) bool {
		if pools[i].StakeAmount == pools[j].StakeAmount {
			return bytes.Compare(pools[i].PoolID[:], pools[j].PoolID[:]) < 0
		}
		return pools[i].StakeAmount > pools[j].StakeAmount
	})
}

// SortUsers - stake descending then account id ascending
func SortUsers(users []StakingPoolUser) {
	sort.Slice(users, func(i, j int) bool {
		if users[i].StakeAmount == users[j].StakeAmount {
			return bytes.Compare(users[i].AccountID[:], users[j].AccountID[:]) < 0
		}
		return users[i].StakeAmount > users[j].StakeAmount
	})
}

// PackPools - staking pools value
func PackPools(pools []StakingPool) []byte {
	buffer := util.ToVarint64(uint64(len(pools)))
	for _, p := range pools {
		buffer = append(buffer, p.PoolID[:]...)
		buffer = append(buffer, p.Genesis.Hash[:]...)
		buffer = util.AppendVarint64(buffer, uint64(p.Genesis.Index))
		buffer = util.AppendVarint64(buffer, p.StakeAmount)
	}
	return buffer
}

// UnpackPools - inverse of PackPools
func UnpackPools(buffer []byte) ([]StakingPool, error) {
	r := newReader(buffer)
	n := r.count(minimumPoolSize)
	pools := make([]StakingPool, 0, n)
	for i := 0; i < n; i += 1 {
		p := StakingPool{}
		p.PoolID = r.account()
		p.Genesis.Hash = r.hash()
		p.Genesis.Index = r.uint32()
		p.StakeAmount = r.varint()
		pools = append(pools, p)
	}
	if err := r.finish(); nil != err {
		return nil, err
	}
	return pools, nil
}

// PackUsers - staking pool users value
func PackUsers(users []StakingPoolUser) []byte {
	buffer := util.ToVarint64(uint64(len(users)))
	for _, u := range users {
		buffer = append(buffer, u.AccountID[:]...)
		buffer = util.AppendVarint64(buffer, u.StakeAmount)
		buffer = util.AppendVarint64(buffer, u.WithdrawableAmount)
	}
	return buffer
}

// UnpackUsers - inverse of PackUsers
func UnpackUsers(buffer []byte) ([]StakingPoolUser, error) {
	r := newReader(buffer)
	n := r.count(minimumUserSize)
	users := make([]StakingPoolUser, 0, n)
	for i := 0; i < n; i += 1 {
		u := StakingPoolUser{}
		u.AccountID = r.account()
		u.StakeAmount = r.varint()
		u.WithdrawableAmount = r.varint()
		users = append(users, u)
	}
	if err := r.finish(); nil != err {
		return nil, err
	}
	return users, nil
}
