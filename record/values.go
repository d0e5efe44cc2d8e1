// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package record

import (
	"github.com/btcsuite/btcd/chaincfg/chainhash"

	"github.com/qitcoin/coinsdb/fault"
	"github.com/qitcoin/coinsdb/util"
)

// maximum entries in the head blocks marker
const maximumHeadBlocks = 2

// PackAmount - value of account, point and staking index entries
func PackAmount(amount uint64) []byte {
	return util.ToVarint64(amount)
}

// UnpackAmount - inverse of PackAmount
func UnpackAmount(buffer []byte) (uint64, error) {
	r := newReader(buffer)
	amount := r.varint()
	if err := r.finish(); nil != err {
		return 0, err
	}
	return amount, nil
}

// BindPlotterValue - value of a bind plotter index entry
type BindPlotterValue struct {
	PlotterID uint64
	Height    uint32
}

// Pack - encode
func (v BindPlotterValue) Pack() []byte {
	buffer := util.ToVarint64(v.PlotterID)
	return util.AppendVarint64(buffer, uint64(v.Height))
}

// UnpackBindPlotterValue - inverse of Pack
func UnpackBindPlotterValue(buffer []byte) (BindPlotterValue, error) {
	r := newReader(buffer)
	v := BindPlotterValue{
		PlotterID: r.varint(),
		Height:    r.uint32(),
	}
	if err := r.finish(); nil != err {
		return BindPlotterValue{}, err
	}
	return v, nil
}

// PackHash - best block value
func PackHash(h chainhash.Hash) []byte {
	return append([]byte{}, h[:]...)
}

// UnpackHash - inverse of PackHash
func UnpackHash(buffer []byte) (chainhash.Hash, error) {
	r := newReader(buffer)
	h := r.hash()
	if err := r.finish(); nil != err {
		return chainhash.Hash{}, err
	}
	return h, nil
}

// PackHashes - head blocks value
func PackHashes(hashes []chainhash.Hash) []byte {
	buffer := util.ToVarint64(uint64(len(hashes)))
	for _, h := range hashes {
		buffer = append(buffer, h[:]...)
	}
	return buffer
}

// UnpackHashes - inverse of PackHashes
func UnpackHashes(buffer []byte) ([]chainhash.Hash, error) {
	r := newReader(buffer)
	n := r.count(chainhash.HashSize)
	if n > maximumHeadBlocks {
		return nil, fault.ErrRecordInvalidLength
	}
	hashes := make([]chainhash.Hash, 0, n)
	for i := 0; i < n; i += 1 {
		hashes = append(hashes, r.hash())
	}
	if err := r.finish(); nil != err {
		return nil, err
	}
	return hashes, nil
}

// PackUint32 - version, reindex and last block file values
func PackUint32(value uint32) []byte {
	return util.ToVarint64(uint64(value))
}

// UnpackUint32 - inverse of PackUint32
func UnpackUint32(buffer []byte) (uint32, error) {
	r := newReader(buffer)
	value := r.uint32()
	if err := r.finish(); nil != err {
		return 0, err
	}
	return value, nil
}

// PackBool - flag value
func PackBool(value bool) []byte {
	if value {
		return []byte{'1'}
	}
	return []byte{'0'}
}

// UnpackBool - inverse of PackBool
func UnpackBool(buffer []byte) (bool, error) {
	if 1 != len(buffer) {
		return false, fault.ErrRecordInvalidLength
	}
	switch buffer[0] {
	case '1':
		return true, nil
	case '0':
		return false, nil
	default:
		return false, fault.ErrRecordInvalidFlag
	}
}
