// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package coinsdb

import (
	"math/bits"

	"github.com/qitcoin/coinsdb/coin"
	"github.com/qitcoin/coinsdb/fault"
	"github.com/qitcoin/coinsdb/record"
)

// BalanceRequest - optional categories to compute
type BalanceRequest struct {
	BindPlotter    bool
	PointSend      bool
	PointReceive   bool
	StakingSend    bool
	StakingReceive bool
}

// Balance - per category amounts of one account
//
// Available is always computed, unrequested categories are zero
type Balance struct {
	Available      uint64 `json:"available"`
	BindPlotter    uint64 `json:"bindPlotter"`
	PointSend      uint64 `json:"pointSend"`
	PointReceive   uint64 `json:"pointReceive"`
	StakingSend    uint64 `json:"stakingSend"`
	StakingReceive uint64 `json:"stakingReceive"`
}

// persisted index entries of one category: outpoint -> counted amount
type selection map[coin.OutPoint]uint64

// amount a live overlay coin adds to a category of account, false if
// the coin does not belong to it
type matcher func(c *coin.Coin, account coin.AccountID) (uint64, bool)

// Balance - amounts of an account with uncommitted changes applied
//
// an overlay change only counts against the persisted state: a spent
// coin is subtracted when its index entry is stored, a live coin is
// added when it is not
func (s *Store) Balance(account coin.AccountID, request BalanceRequest, overlay coin.Changes) (Balance, error) {
	if err := s.checkVersion(); nil != err {
		return Balance{}, err
	}
	if err := overlay.Validate(); nil != err {
		return Balance{}, err
	}

	result := Balance{}

	categories := []struct {
		wanted bool
		kind   record.Kind
		amount func([]byte) (uint64, error)
		match  matcher
		total  *uint64
	}{
		{true, record.AccountIndex, record.UnpackAmount, matchAvailable, &result.Available},
		{request.BindPlotter, record.BindPlotterIndex, s.lockAmount, s.matchBindPlotter, &result.BindPlotter},
		{request.PointSend, record.PointSendIndex, record.UnpackAmount, matchPointSend, &result.PointSend},
		{request.PointReceive, record.PointReceiveIndex, record.UnpackAmount, matchPointReceive, &result.PointReceive},
		{request.StakingSend, record.StakingSendIndex, record.UnpackAmount, matchStakingSend, &result.StakingSend},
		{request.StakingReceive, record.StakingReceiveIndex, record.UnpackAmount, matchStakingReceive, &result.StakingReceive},
	}

	for _, category := range categories {
		if !category.wanted {
			continue
		}
		selected, err := s.selectAccount(category.kind, account, category.amount)
		if nil != err {
			return Balance{}, err
		}
		total, err := s.reconcile(category.kind, account, selected, overlay, category.match)
		if nil != err {
			return Balance{}, err
		}
		*category.total = total
	}
	return result, nil
}

// scan the persisted entries of one account in one index
func (s *Store) selectAccount(kind record.Kind, account coin.AccountID, amount func([]byte) (uint64, error)) (selection, error) {
	selected := make(selection)

	cursor := s.db.Pool(kind).NewFetchCursor().Prefix(record.AccountPrefix(account))
	defer cursor.Release()

	err := cursor.Map(func(key []byte, value []byte) error {
		_, o, err := record.ParseIndexKey(key)
		if nil != err {
			return err
		}
		n, err := amount(value)
		if nil != err {
			return err
		}
		selected[o] = n
		return nil
	})
	if nil != err {
		return nil, err
	}
	return selected, nil
}

func (s *Store) reconcile(kind record.Kind, account coin.AccountID, selected selection, overlay coin.Changes, match matcher) (uint64, error) {
	total := uint64(0)
	for _, n := range selected {
		var err error
		total, err = s.add(kind, account, total, n)
		if nil != err {
			return 0, err
		}
	}

	for _, ch := range overlay {
		if !ch.Dirty {
			continue
		}
		if n, ok := selected[ch.OutPoint]; ok {
			if !ch.IsSpent() {
				continue
			}
			if n > total {
				s.log.Criticalf("%s balance of: %s  is negative after spending: %s", kind, account, ch.OutPoint)
				return 0, fault.ErrNegativeBalance
			}
			total -= n
		} else if !ch.IsSpent() {
			if n, ok := match(ch.After, account); ok {
				var err error
				total, err = s.add(kind, account, total, n)
				if nil != err {
					return 0, err
				}
			}
		}
	}
	return total, nil
}

func (s *Store) add(kind record.Kind, account coin.AccountID, a uint64, b uint64) (uint64, error) {
	sum, carry := bits.Add64(a, b, 0)
	if 0 != carry {
		s.log.Criticalf("%s balance of: %s  overflows", kind, account)
		return 0, fault.ErrBalanceOverflow
	}
	return sum, nil
}

// each bind plotter entry locks a fixed amount
func (s *Store) lockAmount(value []byte) (uint64, error) {
	_, err := record.UnpackBindPlotterValue(value)
	if nil != err {
		return 0, err
	}
	return s.params.BindPlotterLockAmount, nil
}

func matchAvailable(c *coin.Coin, account coin.AccountID) (uint64, bool) {
	return c.Value, c.OwnedBy(account)
}

func (s *Store) matchBindPlotter(c *coin.Coin, account coin.AccountID) (uint64, bool) {
	return s.params.BindPlotterLockAmount, nil != c.BindPlotter() && c.OwnedBy(account)
}

func matchPointSend(c *coin.Coin, account coin.AccountID) (uint64, bool) {
	return c.Value, nil != c.Point() && c.OwnedBy(account)
}

func matchPointReceive(c *coin.Coin, account coin.AccountID) (uint64, bool) {
	p := c.Point()
	if nil == p || !c.HasOwner() || p.Receiver != account {
		return 0, false
	}
	return p.Amount, true
}

func matchStakingSend(c *coin.Coin, account coin.AccountID) (uint64, bool) {
	return c.Value, nil != c.Staking() && c.OwnedBy(account)
}

func matchStakingReceive(c *coin.Coin, account coin.AccountID) (uint64, bool) {
	p := c.Staking()
	if nil == p || !c.HasOwner() || p.Receiver != account {
		return 0, false
	}
	return p.Amount, true
}
