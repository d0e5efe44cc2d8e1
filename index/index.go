// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package index - derive secondary index records from coins
//
// nothing here touches storage: the caller applies the returned
// operations in the same batch chunk as the coin record itself
package index

import (
	"github.com/qitcoin/coinsdb/coin"
	"github.com/qitcoin/coinsdb/record"
)

// Op - one index write or erase
type Op struct {
	Kind  record.Kind
	Key   []byte
	Value []byte // nil when Erase
	Erase bool
}

// Entries - every index record implied by a live coin
//
// a coin without an owner has no index records at all
func Entries(o coin.OutPoint, c *coin.Coin) []Op {
	if !c.HasOwner() {
		return nil
	}
	owner := *c.Owner

	ops := make([]Op, 0, 3)
	ops = append(ops, Op{
		Kind:  record.AccountIndex,
		Key:   record.IndexKey(owner, o),
		Value: record.PackAmount(c.Value),
	})

	switch p := c.Payload.(type) {
	case *coin.BindPlotter:
		v := record.BindPlotterValue{
			PlotterID: p.PlotterID,
			Height:    c.Height,
		}
		ops = append(ops, Op{
			Kind:  record.BindPlotterIndex,
			Key:   record.IndexKey(owner, o),
			Value: v.Pack(),
		})
	case *coin.Point:
		ops = append(ops,
			Op{
				Kind:  record.PointSendIndex,
				Key:   record.IndexKey(owner, o),
				Value: record.PackAmount(c.Value),
			},
			Op{
				Kind:  record.PointReceiveIndex,
				Key:   record.IndexKey(p.Receiver, o),
				Value: record.PackAmount(p.Amount),
			},
		)
	case *coin.Staking:
		ops = append(ops,
			Op{
				Kind:  record.StakingSendIndex,
				Key:   record.IndexKey(owner, o),
				Value: record.PackAmount(c.Value),
			},
			Op{
				Kind:  record.StakingReceiveIndex,
				Key:   record.IndexKey(p.Receiver, o),
				Value: record.PackAmount(p.Amount),
			},
		)
	}
	return ops
}

// Derive - operations taking the indices from before to after
//
// erasures of before come first so a key present in both states ends
// up written
func Derive(o coin.OutPoint, before *coin.Coin, after *coin.Coin) []Op {
	erase := Entries(o, before)
	write := Entries(o, after)

	ops := make([]Op, 0, len(erase)+len(write))
	for _, e := range erase {
		ops = append(ops, Op{
			Kind:  e.Kind,
			Key:   e.Key,
			Erase: true,
		})
	}
	return append(ops, write...)
}
