// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package coin

// PayloadType - tag stored with the coin
type PayloadType uint8

// payload tags, values are persisted
const (
	NoPayload          PayloadType = 0
	BindPlotterPayload PayloadType = 1
	PointPayload       PayloadType = 2
	StakingPayload     PayloadType = 3
)

// Payload - optional semantic extension of a coin
type Payload interface {
	Type() PayloadType
}

// BindPlotter - binds a plotter to the owning account
type BindPlotter struct {
	PlotterID uint64
}

// Point - lends amount of the owner's capacity to receiver
type Point struct {
	Receiver AccountID
	Amount   uint64
}

// Staking - deposits amount to the receiver pool for at least LockBlocks
type Staking struct {
	Receiver   AccountID
	Amount     uint64
	LockBlocks uint32
}

// Type - interface method
func (p *BindPlotter) Type() PayloadType { return BindPlotterPayload }
func (p *Point) Type() PayloadType       { return PointPayload }
func (p *Staking) Type() PayloadType     { return StakingPayload }

// Unlocked - true if the lock window has expired as of height
func (p *Staking) Unlocked(created uint32, height uint32) bool {
	return uint64(created)+uint64(p.LockBlocks) < uint64(height)
}
