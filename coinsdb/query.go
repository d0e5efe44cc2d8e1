// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package coinsdb

import (
	"sort"

	"github.com/qitcoin/coinsdb/coin"
	"github.com/qitcoin/coinsdb/fault"
	"github.com/qitcoin/coinsdb/record"
)

// BindPlotterInfo - one live bind plotter coin
type BindPlotterInfo struct {
	Account   coin.AccountID `json:"account"`
	PlotterID uint64         `json:"plotterId"`
	Height    uint32         `json:"height"`
}

// AccountBalance - an account and an amount
type AccountBalance struct {
	Account coin.AccountID `json:"account"`
	Amount  uint64         `json:"amount"`
}

// AccountBindPlotterEntries - bind plotter coins of an account
//
// plotterID zero selects every plotter
func (s *Store) AccountBindPlotterEntries(account coin.AccountID, plotterID uint64) (map[coin.OutPoint]BindPlotterInfo, error) {
	if err := s.checkVersion(); nil != err {
		return nil, err
	}
	cursor := s.db.Pool(record.BindPlotterIndex).NewFetchCursor().Prefix(record.AccountPrefix(account))
	defer cursor.Release()

	return collectBindPlotter(cursor.Map, func(info BindPlotterInfo) bool {
		return 0 == plotterID || info.PlotterID == plotterID
	})
}

// BindPlotterEntries - bind plotter coins of any account for one plotter
func (s *Store) BindPlotterEntries(plotterID uint64) (map[coin.OutPoint]BindPlotterInfo, error) {
	if err := s.checkVersion(); nil != err {
		return nil, err
	}
	cursor := s.db.Pool(record.BindPlotterIndex).NewFetchCursor()
	defer cursor.Release()

	return collectBindPlotter(cursor.Map, func(info BindPlotterInfo) bool {
		return info.PlotterID == plotterID
	})
}

func collectBindPlotter(scan func(func([]byte, []byte) error) error, wanted func(BindPlotterInfo) bool) (map[coin.OutPoint]BindPlotterInfo, error) {
	entries := make(map[coin.OutPoint]BindPlotterInfo)
	err := scan(func(key []byte, value []byte) error {
		account, o, err := record.ParseIndexKey(key)
		if nil != err {
			return err
		}
		v, err := record.UnpackBindPlotterValue(value)
		if nil != err {
			return err
		}
		info := BindPlotterInfo{
			Account:   account,
			PlotterID: v.PlotterID,
			Height:    v.Height,
		}
		if wanted(info) {
			entries[o] = info
		}
		return nil
	})
	if nil != err {
		return nil, err
	}
	return entries, nil
}

// TopStakingAccounts - the n accounts receiving the most stake
//
// sorted by amount descending then account ascending, the overlay is
// applied the same way as for Balance
func (s *Store) TopStakingAccounts(n int, overlay coin.Changes) ([]AccountBalance, error) {
	if err := s.checkVersion(); nil != err {
		return nil, err
	}
	if n <= 0 {
		return nil, fault.ErrNegativeTopCount
	}
	if err := overlay.Validate(); nil != err {
		return nil, err
	}

	type receipt struct {
		receiver coin.AccountID
		amount   uint64
	}
	selected := make(map[coin.OutPoint]receipt)
	totals := make(map[coin.AccountID]uint64)

	cursor := s.db.Pool(record.StakingReceiveIndex).NewFetchCursor()
	defer cursor.Release()

	err := cursor.Map(func(key []byte, value []byte) error {
		receiver, o, err := record.ParseIndexKey(key)
		if nil != err {
			return err
		}
		amount, err := record.UnpackAmount(value)
		if nil != err {
			return err
		}
		selected[o] = receipt{receiver: receiver, amount: amount}
		totals[receiver], err = s.add(record.StakingReceiveIndex, receiver, totals[receiver], amount)
		return err
	})
	if nil != err {
		return nil, err
	}

	for _, ch := range overlay {
		if !ch.Dirty {
			continue
		}
		if r, ok := selected[ch.OutPoint]; ok {
			if !ch.IsSpent() {
				continue
			}
			total := totals[r.receiver]
			if r.amount > total {
				s.log.Criticalf("staking total of: %s  is negative after spending: %s", r.receiver, ch.OutPoint)
				return nil, fault.ErrNegativeBalance
			}
			total -= r.amount
			if 0 == total {
				delete(totals, r.receiver)
			} else {
				totals[r.receiver] = total
			}
		} else if !ch.IsSpent() {
			p := ch.After.Staking()
			if nil != p && ch.After.HasOwner() {
				total, err := s.add(record.StakingReceiveIndex, p.Receiver, totals[p.Receiver], p.Amount)
				if nil != err {
					return nil, err
				}
				totals[p.Receiver] = total
			}
		}
	}

	list := make([]AccountBalance, 0, len(totals))
	for account, amount := range totals {
		list = append(list, AccountBalance{Account: account, Amount: amount})
	}
	sort.Slice(list, func(i, j int) bool {
		if list[i].Amount == list[j].Amount {
			return list[i].Account.Compare(list[j].Account) < 0
		}
		return list[i].Amount > list[j].Amount
	})
	if len(list) > n {
		list = list[:n]
	}
	return list, nil
}
