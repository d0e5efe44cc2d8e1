// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package record

import (
	"github.com/qitcoin/coinsdb/coin"
	"github.com/qitcoin/coinsdb/fault"
	"github.com/qitcoin/coinsdb/util"
)

// PackedCoin - stored coin
//
// layout:
//   varint  height << 1 | coinbase
//   varint  value
//   byte    1 if owner follows
//   [20]    owner
//   byte    payload type
//   ...     payload fields
type PackedCoin []byte

// PackCoin - encode a live coin
func PackCoin(c *coin.Coin) PackedCoin {
	code := uint64(c.Height) << 1
	if c.Coinbase {
		code |= 1
	}
	buffer := util.ToVarint64(code)
	buffer = util.AppendVarint64(buffer, c.Value)
	if c.HasOwner() {
		buffer = append(buffer, 1)
		buffer = append(buffer, c.Owner[:]...)
	} else {
		buffer = append(buffer, 0)
	}

	switch p := c.Payload.(type) {
	case *coin.BindPlotter:
		buffer = append(buffer, byte(coin.BindPlotterPayload))
		buffer = util.AppendVarint64(buffer, p.PlotterID)
	case *coin.Point:
		buffer = append(buffer, byte(coin.PointPayload))
		buffer = append(buffer, p.Receiver[:]...)
		buffer = util.AppendVarint64(buffer, p.Amount)
	case *coin.Staking:
		buffer = append(buffer, byte(coin.StakingPayload))
		buffer = append(buffer, p.Receiver[:]...)
		buffer = util.AppendVarint64(buffer, p.Amount)
		buffer = util.AppendVarint64(buffer, uint64(p.LockBlocks))
	default:
		buffer = append(buffer, byte(coin.NoPayload))
	}
	return buffer
}

// Unpack - decode a stored coin
func (record PackedCoin) Unpack() (*coin.Coin, error) {
	r := newReader(record)

	code := r.varint()
	if code>>1 > 0xffffffff {
		return nil, fault.ErrRecordInvalidLength
	}
	c := &coin.Coin{
		Height:   uint32(code >> 1),
		Coinbase: 1 == code&1,
		Value:    r.varint(),
	}

	switch r.u8() {
	case 0:
	case 1:
		owner := r.account()
		c.Owner = &owner
	default:
		r.fail(fault.ErrRecordInvalidFlag)
	}

	switch coin.PayloadType(r.u8()) {
	case coin.NoPayload:
	case coin.BindPlotterPayload:
		c.Payload = &coin.BindPlotter{
			PlotterID: r.varint(),
		}
	case coin.PointPayload:
		c.Payload = &coin.Point{
			Receiver: r.account(),
			Amount:   r.varint(),
		}
	case coin.StakingPayload:
		c.Payload = &coin.Staking{
			Receiver:   r.account(),
			Amount:     r.varint(),
			LockBlocks: r.uint32(),
		}
	default:
		r.fail(fault.ErrRecordUnknownPayload)
	}

	if err := r.finish(); nil != err {
		return nil, err
	}
	return c, nil
}
