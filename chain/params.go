// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package chain

import (
	"github.com/qitcoin/coinsdb/coin"
	"github.com/qitcoin/coinsdb/fault"
)

// Coin - base units in one coin
const Coin = uint64(100000000)

// maximum number of halvings before the subsidy reaches zero
const maxHalvings = 64

// Params - consensus parameters consumed by the coin store
type Params struct {
	Name                     string
	StakingActiveHeight      uint32
	EpochBlocks              uint32
	StakingGenesisID         coin.AccountID
	SubsidyHalvingInterval   uint32
	InitialSubsidy           uint64
	StakingPoolRewardPercent uint64
	InitialPoolAmount        uint64
	MinWithdrawableAmount    uint64
	BindPlotterLockAmount    uint64
}

// the designated sender of staking pool registrations
var stakingGenesisID = coin.AccountID{0x0f}

var qitcoinParams = Params{
	Name:                     Qitcoin,
	StakingActiveHeight:      654201,
	EpochBlocks:              100,
	StakingGenesisID:         stakingGenesisID,
	SubsidyHalvingInterval:   700000,
	InitialSubsidy:           75 * Coin,
	StakingPoolRewardPercent: 25,
	InitialPoolAmount:        20000 * Coin,
	MinWithdrawableAmount:    Coin,
	BindPlotterLockAmount:    Coin / 10,
}

var testingParams = Params{
	Name:                     Testing,
	StakingActiveHeight:      101,
	EpochBlocks:              100,
	StakingGenesisID:         stakingGenesisID,
	SubsidyHalvingInterval:   700000,
	InitialSubsidy:           75 * Coin,
	StakingPoolRewardPercent: 25,
	InitialPoolAmount:        20000 * Coin,
	MinWithdrawableAmount:    Coin,
	BindPlotterLockAmount:    Coin / 10,
}

var localParams = Params{
	Name:                     Local,
	StakingActiveHeight:      101,
	EpochBlocks:              10,
	StakingGenesisID:         stakingGenesisID,
	SubsidyHalvingInterval:   350000,
	InitialSubsidy:           75 * Coin,
	StakingPoolRewardPercent: 25,
	InitialPoolAmount:        100 * Coin,
	MinWithdrawableAmount:    Coin,
	BindPlotterLockAmount:    Coin / 10,
}

// ParamsFor - a private copy of the parameters of a named chain
func ParamsFor(name string) (*Params, error) {
	var p Params
	switch name {
	case Qitcoin:
		p = qitcoinParams
	case Testing:
		p = testingParams
	case Local:
		p = localParams
	default:
		return nil, fault.ErrInvalidChain
	}
	return &p, nil
}

// Validate - reject parameter sets the snapshot logic cannot use
func (p *Params) Validate() error {
	if 0 == p.EpochBlocks {
		return fault.ErrZeroEpochLength
	}
	if 0 == p.SubsidyHalvingInterval {
		return fault.ErrUnsupportedChainParams
	}
	if p.StakingPoolRewardPercent > 100 {
		return fault.ErrUnsupportedChainParams
	}
	return nil
}

func (p *Params) halvings(height uint32) uint32 {
	return height / p.SubsidyHalvingInterval
}

// InitialStakingPoolAmount - minimum value of a pool registration coin created at height
func (p *Params) InitialStakingPoolAmount(height uint32) uint64 {
	h := p.halvings(height)
	if h >= maxHalvings {
		return 0
	}
	return p.InitialPoolAmount >> h
}

// BlockSubsidy - mined amount of the block at height
func (p *Params) BlockSubsidy(height uint32) uint64 {
	h := p.halvings(height)
	if h >= maxHalvings {
		return 0
	}
	return p.InitialSubsidy >> h
}

// StakingPoolSubsidy - share of the block subsidy paid to the block's pool
func (p *Params) StakingPoolSubsidy(height uint32) uint64 {
	if height < p.StakingActiveHeight {
		return 0
	}
	return p.BlockSubsidy(height) / 100 * p.StakingPoolRewardPercent
}

// IsEpochBoundary - true if committing height must produce a staking snapshot
func (p *Params) IsEpochBoundary(height uint32) bool {
	if uint64(height) < uint64(p.StakingActiveHeight)+2*uint64(p.EpochBlocks) {
		return false
	}
	return 0 == height%p.EpochBlocks
}

// HasPreviousEpoch - true if a snapshot taken at height has a predecessor to fold in
func (p *Params) HasPreviousEpoch(height uint32) bool {
	return uint64(height) >= uint64(p.StakingActiveHeight)+3*uint64(p.EpochBlocks)
}
