// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package staking

import (
	"github.com/btcsuite/btcd/chaincfg/chainhash"

	"github.com/qitcoin/coinsdb/coin"
	"github.com/qitcoin/coinsdb/record"
)

// BlockInfo - the parts of a block header the engine needs
type BlockInfo struct {
	Hash            chainhash.Hash
	Prev            chainhash.Hash
	Height          uint32
	RewardRecipient coin.AccountID // account paid by the miner reward output
}

// ChainView - read access to the block index
type ChainView interface {
	Block(hash chainhash.Hash) (BlockInfo, error)
}

// Sink - receives the records of a snapshot
//
// WriteCoin must also write the coin's index records
type Sink interface {
	WriteCoin(o coin.OutPoint, c *coin.Coin) error
	Put(kind record.Kind, key []byte, value []byte) error
}
