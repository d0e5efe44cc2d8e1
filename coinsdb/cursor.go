// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package coinsdb

import (
	"github.com/qitcoin/coinsdb/coin"
	"github.com/qitcoin/coinsdb/record"
	"github.com/qitcoin/coinsdb/storage"
)

// CoinEntry - one live coin
type CoinEntry struct {
	OutPoint coin.OutPoint
	Coin     *coin.Coin
}

// CoinCursor - iterates live coins in key order
type CoinCursor struct {
	cursor *storage.FetchCursor
}

// IndexEntry - one index record carrying an amount
type IndexEntry struct {
	Account  coin.AccountID
	OutPoint coin.OutPoint
	Amount   uint64
}

// IndexCursor - iterates the index records of one account
//
// on a database needing an upgrade every Fetch fails
type IndexCursor struct {
	cursor *storage.FetchCursor
	err    error
}

// Cursor - all live coins as of now
func (s *Store) Cursor() *CoinCursor {
	return &CoinCursor{
		cursor: s.db.Pool(record.Coin).NewFetchCursor(),
	}
}

// Fetch - the next count coins, empty at the end
func (c *CoinCursor) Fetch(count int) ([]CoinEntry, error) {
	elements, err := c.cursor.Fetch(count)
	if nil != err {
		return nil, err
	}
	entries := make([]CoinEntry, 0, len(elements))
	for _, e := range elements {
		o, err := record.ParseCoinKey(e.Key)
		if nil != err {
			return nil, err
		}
		cn, err := record.PackedCoin(e.Value).Unpack()
		if nil != err {
			return nil, err
		}
		entries = append(entries, CoinEntry{OutPoint: o, Coin: cn})
	}
	return entries, nil
}

// Release - end the cursor
func (c *CoinCursor) Release() {
	c.cursor.Release()
}

// AccountCursor - coins owned by account
func (s *Store) AccountCursor(account coin.AccountID) *IndexCursor {
	return s.indexCursor(record.AccountIndex, account)
}

// PointSendCursor - point coins sent by account
func (s *Store) PointSendCursor(account coin.AccountID) *IndexCursor {
	return s.indexCursor(record.PointSendIndex, account)
}

// PointReceiveCursor - point coins received by account, amounts are the point amounts
func (s *Store) PointReceiveCursor(account coin.AccountID) *IndexCursor {
	return s.indexCursor(record.PointReceiveIndex, account)
}

// StakingSendCursor - staking coins sent by account
func (s *Store) StakingSendCursor(account coin.AccountID) *IndexCursor {
	return s.indexCursor(record.StakingSendIndex, account)
}

// StakingReceiveCursor - staking coins received by account, amounts are the staked amounts
func (s *Store) StakingReceiveCursor(account coin.AccountID) *IndexCursor {
	return s.indexCursor(record.StakingReceiveIndex, account)
}

func (s *Store) indexCursor(kind record.Kind, account coin.AccountID) *IndexCursor {
	if err := s.checkVersion(); nil != err {
		return &IndexCursor{err: err}
	}
	return &IndexCursor{
		cursor: s.db.Pool(kind).NewFetchCursor().Prefix(record.AccountPrefix(account)),
	}
}

// Fetch - the next count entries, empty at the end
func (c *IndexCursor) Fetch(count int) ([]IndexEntry, error) {
	if nil != c.err {
		return nil, c.err
	}
	elements, err := c.cursor.Fetch(count)
	if nil != err {
		return nil, err
	}
	entries := make([]IndexEntry, 0, len(elements))
	for _, e := range elements {
		account, o, err := record.ParseIndexKey(e.Key)
		if nil != err {
			return nil, err
		}
		amount, err := record.UnpackAmount(e.Value)
		if nil != err {
			return nil, err
		}
		entries = append(entries, IndexEntry{
			Account:  account,
			OutPoint: o,
			Amount:   amount,
		})
	}
	return entries, nil
}

// Release - end the cursor
func (c *IndexCursor) Release() {
	if nil != c.cursor {
		c.cursor.Release()
	}
}
