// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package staking

import (
	"math/bits"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"golang.org/x/crypto/sha3"

	"github.com/qitcoin/coinsdb/coin"
	"github.com/qitcoin/coinsdb/fault"
)

// WithdrawOutPoint - where the claimable coin of a user is written
//
// SHA3-256(epoch hash ++ pool ++ user), output index zero
func WithdrawOutPoint(epoch chainhash.Hash, pool coin.AccountID, user coin.AccountID) coin.OutPoint {
	buffer := make([]byte, 0, chainhash.HashSize+2*coin.AccountIDSize)
	buffer = append(buffer, epoch[:]...)
	buffer = append(buffer, pool[:]...)
	buffer = append(buffer, user[:]...)
	return coin.NewOutPoint(chainhash.Hash(sha3.Sum256(buffer)), 0)
}

// UserReward - reward * userStake / poolStake truncated
//
// the product is formed in 128 bits so it cannot overflow
func UserReward(reward uint64, userStake uint64, poolStake uint64) (uint64, error) {
	if 0 == poolStake || 0 == reward || 0 == userStake {
		return 0, nil
	}
	if userStake > poolStake {
		return 0, fault.ErrRewardOverflow
	}
	hi, lo := bits.Mul64(reward, userStake)
	quotient, _ := bits.Div64(hi, lo, poolStake)
	return quotient, nil
}

// checked addition of amounts
func add(a uint64, b uint64) (uint64, error) {
	sum, carry := bits.Add64(a, b, 0)
	if 0 != carry {
		return 0, fault.ErrStakeOverflow
	}
	return sum, nil
}
