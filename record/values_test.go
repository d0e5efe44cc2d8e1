// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package record_test

import (
	"testing"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/stretchr/testify/assert"

	"github.com/qitcoin/coinsdb/coin"
	"github.com/qitcoin/coinsdb/fault"
	"github.com/qitcoin/coinsdb/record"
)

func TestAmount(t *testing.T) {
	for _, amount := range []uint64{0, 1, 127, 128, 0xffffffffffffffff} {
		a, err := record.UnpackAmount(record.PackAmount(amount))
		assert.Nil(t, err, "unpack error")
		assert.Equal(t, amount, a, "amount")
	}

	_, err := record.UnpackAmount([]byte{0x80})
	assert.Equal(t, fault.ErrRecordTruncated, err, "truncated")

	_, err = record.UnpackAmount([]byte{0x01, 0x01})
	assert.Equal(t, fault.ErrRecordTrailingData, err, "trailing")
}

func TestBindPlotterValue(t *testing.T) {
	v := record.BindPlotterValue{PlotterID: 1234567890123, Height: 99}
	u, err := record.UnpackBindPlotterValue(v.Pack())
	assert.Nil(t, err, "unpack error")
	assert.Equal(t, v, u, "value")
}

func TestHeadBlocks(t *testing.T) {
	hashes := []chainhash.Hash{{1}, {2}}
	h, err := record.UnpackHashes(record.PackHashes(hashes))
	assert.Nil(t, err, "unpack error")
	assert.Equal(t, hashes, h, "hashes")

	empty, err := record.UnpackHashes(record.PackHashes(nil))
	assert.Nil(t, err, "unpack error")
	assert.Equal(t, 0, len(empty), "empty")

	_, err = record.UnpackHashes(record.PackHashes([]chainhash.Hash{{1}, {2}, {3}}))
	assert.Equal(t, fault.ErrRecordInvalidLength, err, "three hashes")

	packed := record.PackHashes(hashes)
	_, err = record.UnpackHashes(packed[:len(packed)-1])
	assert.True(t, fault.IsErrRecord(err), "truncated")
}

func TestUint32AndBool(t *testing.T) {
	v, err := record.UnpackUint32(record.PackUint32(0xffffffff))
	assert.Nil(t, err, "unpack error")
	assert.Equal(t, uint32(0xffffffff), v, "value")

	_, err = record.UnpackUint32(record.PackAmount(0x100000000))
	assert.Equal(t, fault.ErrRecordInvalidLength, err, "too large")

	b, err := record.UnpackBool(record.PackBool(true))
	assert.Nil(t, err, "unpack error")
	assert.True(t, b, "true")

	b, err = record.UnpackBool(record.PackBool(false))
	assert.Nil(t, err, "unpack error")
	assert.False(t, b, "false")

	_, err = record.UnpackBool([]byte{'x'})
	assert.Equal(t, fault.ErrRecordInvalidFlag, err, "bad flag")
}

func TestPoolsAndUsers(t *testing.T) {
	pools := []record.StakingPool{
		{PoolID: coin.AccountID{2}, Genesis: coin.NewOutPoint(chainhash.Hash{9}, 1), StakeAmount: 10},
		{PoolID: coin.AccountID{1}, Genesis: coin.NewOutPoint(chainhash.Hash{8}, 0), StakeAmount: 10},
		{PoolID: coin.AccountID{3}, Genesis: coin.NewOutPoint(chainhash.Hash{7}, 2), StakeAmount: 1000},
	}
	record.SortPools(pools)
	assert.Equal(t, coin.AccountID{3}, pools[0].PoolID, "largest first")
	assert.Equal(t, coin.AccountID{1}, pools[1].PoolID, "tie by id")
	assert.Equal(t, coin.AccountID{2}, pools[2].PoolID, "tie by id")

	p, err := record.UnpackPools(record.PackPools(pools))
	assert.Nil(t, err, "unpack error")
	assert.Equal(t, pools, p, "pools")

	users := []record.StakingPoolUser{
		{AccountID: coin.AccountID{7}, StakeAmount: 300, WithdrawableAmount: 5},
		{AccountID: coin.AccountID{6}, StakeAmount: 700},
	}
	record.SortUsers(users)
	assert.Equal(t, uint64(700), users[0].StakeAmount, "descending")

	u, err := record.UnpackUsers(record.PackUsers(users))
	assert.Nil(t, err, "unpack error")
	assert.Equal(t, users, u, "users")

	_, err = record.UnpackUsers([]byte{0x7f})
	assert.Equal(t, fault.ErrRecordInvalidLength, err, "impossible count")
}
