// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package staking_test

import (
	"testing"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/stretchr/testify/assert"

	"github.com/qitcoin/coinsdb/coin"
	"github.com/qitcoin/coinsdb/fault"
	"github.com/qitcoin/coinsdb/staking"
)

func TestUserReward(t *testing.T) {
	tests := []struct {
		reward   uint64
		user     uint64
		pool     uint64
		expected uint64
	}{
		{1000, 300, 1000, 300},
		{1000, 1, 3, 333},
		{1000, 0, 3, 0},
		{1000, 3, 0, 0},
		{0, 3, 3, 0},
		{1 << 63, 3, 4, 6917529027641081856},
		{0xffffffffffffffff, 0xfffffffffffffffe, 0xffffffffffffffff, 0xfffffffffffffffe},
	}

	for i, test := range tests {
		r, err := staking.UserReward(test.reward, test.user, test.pool)
		assert.Nil(t, err, "%d: error", i)
		assert.Equal(t, test.expected, r, "%d: reward", i)
	}

	_, err := staking.UserReward(1000, 4, 3)
	assert.Equal(t, fault.ErrRewardOverflow, err, "user above pool")
}

func TestRewardConservation(t *testing.T) {
	stakes := []uint64{1, 7, 300, 700, 12345, 99999999}
	total := uint64(0)
	for _, s := range stakes {
		total += s
	}

	for _, reward := range []uint64{0, 1, 999, 1875000000, 18750000000} {
		sum := uint64(0)
		for _, s := range stakes {
			r, err := staking.UserReward(reward, s, total)
			assert.Nil(t, err, "error")
			sum += r
		}
		assert.True(t, sum <= reward, "reward %d over distributed: %d", reward, sum)
		assert.True(t, reward-sum < uint64(len(stakes)), "reward %d remainder: %d", reward, reward-sum)
	}
}

func TestWithdrawOutPoint(t *testing.T) {
	epoch := chainhash.Hash{1}
	a := staking.WithdrawOutPoint(epoch, coin.AccountID{2}, coin.AccountID{3})
	b := staking.WithdrawOutPoint(epoch, coin.AccountID{2}, coin.AccountID{3})
	c := staking.WithdrawOutPoint(epoch, coin.AccountID{3}, coin.AccountID{2})
	d := staking.WithdrawOutPoint(chainhash.Hash{2}, coin.AccountID{2}, coin.AccountID{3})

	assert.Equal(t, a, b, "deterministic")
	assert.NotEqual(t, a, c, "pool and user are not interchangeable")
	assert.NotEqual(t, a, d, "epoch matters")
	assert.Equal(t, uint32(0), a.Index, "index")
	assert.False(t, a.IsNull(), "hash")
}
