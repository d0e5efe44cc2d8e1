// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package record

// Kind - first byte of every key
type Kind byte

// record kinds, values are persisted
const (
	Coin                Kind = 'C'
	AccountIndex        Kind = 'c'
	BindPlotterIndex    Kind = 'r'
	PointSendIndex      Kind = 'P'
	PointReceiveIndex   Kind = 'p'
	StakingSendIndex    Kind = 'S'
	StakingReceiveIndex Kind = 's'
	StakingPools        Kind = 'T'
	StakingPoolUsers    Kind = 't'
	BestBlock           Kind = 'B'
	HeadBlocks          Kind = 'H'
	Version             Kind = 'V'
	BlockFiles          Kind = 'f'
	BlockIndex          Kind = 'b'
	Flag                Kind = 'F'
	Reindex             Kind = 'R'
	LastBlockFile       Kind = 'l'
)

// IndexKinds - every secondary index kind, in upgrade order
var IndexKinds = []Kind{
	AccountIndex,
	BindPlotterIndex,
	PointSendIndex,
	PointReceiveIndex,
	StakingSendIndex,
	StakingReceiveIndex,
}

// IsIndex - true for kinds derived from the coin records
func (k Kind) IsIndex() bool {
	for _, i := range IndexKinds {
		if i == k {
			return true
		}
	}
	return false
}

// String - printable form
func (k Kind) String() string {
	switch k {
	case Coin:
		return "coin"
	case AccountIndex:
		return "account"
	case BindPlotterIndex:
		return "bind-plotter"
	case PointSendIndex:
		return "point-send"
	case PointReceiveIndex:
		return "point-receive"
	case StakingSendIndex:
		return "staking-send"
	case StakingReceiveIndex:
		return "staking-receive"
	case StakingPools:
		return "staking-pools"
	case StakingPoolUsers:
		return "staking-pool-users"
	case BestBlock:
		return "best-block"
	case HeadBlocks:
		return "head-blocks"
	case Version:
		return "version"
	case BlockFiles:
		return "block-files"
	case BlockIndex:
		return "block-index"
	case Flag:
		return "flag"
	case Reindex:
		return "reindex"
	case LastBlockFile:
		return "last-block-file"
	default:
		return "unknown"
	}
}
