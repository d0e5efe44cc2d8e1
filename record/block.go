// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package record

import (
	"github.com/btcsuite/btcd/chaincfg/chainhash"

	"github.com/qitcoin/coinsdb/coin"
	"github.com/qitcoin/coinsdb/fault"
	"github.com/qitcoin/coinsdb/util"
)

// byte limits of the proof of space and signature fields
const (
	FarmerPubKeySize    = 48
	PoolPubKeySize      = 48
	PoolPubKeyHashSize  = 32
	LocalPubKeySize     = 48
	MaximumProofSize    = 1024
	PoSSignatureSize    = 96
	BlockPubKeySize     = 33
	MaximumSignatureLen = 72
)

// flag bits of the stored block index
const (
	hasProofOfSpace = 1 << 0
	hasBlockPubKey  = 1 << 1
	knownFlags      = hasProofOfSpace | hasBlockPubKey
)

// ProofOfSpace - header substructure, opaque beyond its sizes
type ProofOfSpace struct {
	FarmerPubKey   []byte `json:"farmerPubKey"`
	PoolPubKey     []byte `json:"poolPubKey"`
	LocalPubKey    []byte `json:"localPubKey"`
	Proof          []byte `json:"proof"`
	PlotK          uint32 `json:"plotK"`
	Signature      []byte `json:"signature"`
	ScanIterations uint32 `json:"scanIterations"`
}

// IsNull - no proof of space in this header
func (p *ProofOfSpace) IsNull() bool {
	return 0 == len(p.FarmerPubKey) &&
		0 == len(p.PoolPubKey) &&
		0 == len(p.LocalPubKey) &&
		0 == len(p.Proof) &&
		0 == p.PlotK &&
		0 == len(p.Signature) &&
		0 == p.ScanIterations
}

// BlockEntry - stored header and position of one block
type BlockEntry struct {
	Hash            chainhash.Hash `json:"hash"` // the key, not part of the value
	Prev            chainhash.Hash `json:"prev"`
	Height          uint32         `json:"height"`
	Status          uint32         `json:"status"`
	TxCount         uint32         `json:"txCount"`
	File            uint32         `json:"file"`
	DataPos         uint32         `json:"dataPos"`
	UndoPos         uint32         `json:"undoPos"`
	Version         uint32         `json:"version"`
	MerkleRoot      chainhash.Hash `json:"merkleRoot"`
	Time            uint32         `json:"time"`
	BaseTarget      uint64         `json:"baseTarget,string"`
	Nonce           uint64         `json:"nonce,string"`
	PlotterID       uint64         `json:"plotterId,string"`
	RewardRecipient coin.AccountID `json:"rewardRecipient"`
	RewardValue     uint64         `json:"rewardValue,string"`
	PoS             ProofOfSpace   `json:"pos"`
	PubKey          []byte         `json:"pubKey"`
	Signature       []byte         `json:"signature"`
}

// Pack - encode the value part of a block index entry
func (b *BlockEntry) Pack() []byte {
	flags := byte(0)
	if !b.PoS.IsNull() {
		flags |= hasProofOfSpace
	}
	if 0 != len(b.PubKey) {
		flags |= hasBlockPubKey
	}

	buffer := make([]byte, 0, 256)
	buffer = append(buffer, flags)
	buffer = append(buffer, b.Prev[:]...)
	buffer = util.AppendVarint64(buffer, uint64(b.Height))
	buffer = util.AppendVarint64(buffer, uint64(b.Status))
	buffer = util.AppendVarint64(buffer, uint64(b.TxCount))
	buffer = util.AppendVarint64(buffer, uint64(b.File))
	buffer = util.AppendVarint64(buffer, uint64(b.DataPos))
	buffer = util.AppendVarint64(buffer, uint64(b.UndoPos))
	buffer = util.AppendVarint64(buffer, uint64(b.Version))
	buffer = append(buffer, b.MerkleRoot[:]...)
	buffer = util.AppendVarint64(buffer, uint64(b.Time))
	buffer = util.AppendVarint64(buffer, b.BaseTarget)
	buffer = util.AppendVarint64(buffer, b.Nonce)
	buffer = util.AppendVarint64(buffer, b.PlotterID)
	buffer = append(buffer, b.RewardRecipient[:]...)
	buffer = util.AppendVarint64(buffer, b.RewardValue)

	if 0 != flags&hasProofOfSpace {
		buffer = appendLimited(buffer, b.PoS.FarmerPubKey)
		buffer = appendLimited(buffer, b.PoS.PoolPubKey)
		buffer = appendLimited(buffer, b.PoS.LocalPubKey)
		buffer = appendLimited(buffer, b.PoS.Proof)
		buffer = util.AppendVarint64(buffer, uint64(b.PoS.PlotK))
		buffer = appendLimited(buffer, b.PoS.Signature)
		buffer = util.AppendVarint64(buffer, uint64(b.PoS.ScanIterations))
	}
	if 0 != flags&hasBlockPubKey {
		buffer = appendLimited(buffer, b.PubKey)
		buffer = appendLimited(buffer, b.Signature)
	}
	return buffer
}

// UnpackBlockEntry - decode the value stored under hash
func UnpackBlockEntry(hash chainhash.Hash, buffer []byte) (*BlockEntry, error) {
	r := newReader(buffer)

	flags := r.u8()
	if 0 != flags&^knownFlags {
		return nil, fault.ErrRecordInvalidFlag
	}

	b := &BlockEntry{Hash: hash}
	b.Prev = r.hash()
	b.Height = r.uint32()
	b.Status = r.uint32()
	b.TxCount = r.uint32()
	b.File = r.uint32()
	b.DataPos = r.uint32()
	b.UndoPos = r.uint32()
	b.Version = r.uint32()
	b.MerkleRoot = r.hash()
	b.Time = r.uint32()
	b.BaseTarget = r.varint()
	b.Nonce = r.varint()
	b.PlotterID = r.varint()
	b.RewardRecipient = r.account()
	b.RewardValue = r.varint()

	if 0 != flags&hasProofOfSpace {
		b.PoS.FarmerPubKey = r.limited(FarmerPubKeySize)
		b.PoS.PoolPubKey = r.limited(PoolPubKeySize)
		b.PoS.LocalPubKey = r.limited(LocalPubKeySize)
		b.PoS.Proof = r.limited(MaximumProofSize)
		b.PoS.PlotK = r.uint32()
		b.PoS.Signature = r.limited(PoSSignatureSize)
		b.PoS.ScanIterations = r.uint32()
	}
	if 0 != flags&hasBlockPubKey {
		b.PubKey = r.limited(BlockPubKeySize)
		b.Signature = r.limited(MaximumSignatureLen)
	}

	if err := r.finish(); nil != err {
		return nil, err
	}
	return b, nil
}

// BlockFileInfo - summary of one block file
type BlockFileInfo struct {
	Blocks      uint32 `json:"blocks"`
	Size        uint32 `json:"size"`
	UndoSize    uint32 `json:"undoSize"`
	HeightFirst uint32 `json:"heightFirst"`
	HeightLast  uint32 `json:"heightLast"`
	TimeFirst   uint64 `json:"timeFirst,string"`
	TimeLast    uint64 `json:"timeLast,string"`
}

// Pack - encode
func (f *BlockFileInfo) Pack() []byte {
	buffer := util.ToVarint64(uint64(f.Blocks))
	buffer = util.AppendVarint64(buffer, uint64(f.Size))
	buffer = util.AppendVarint64(buffer, uint64(f.UndoSize))
	buffer = util.AppendVarint64(buffer, uint64(f.HeightFirst))
	buffer = util.AppendVarint64(buffer, uint64(f.HeightLast))
	buffer = util.AppendVarint64(buffer, f.TimeFirst)
	return util.AppendVarint64(buffer, f.TimeLast)
}

// UnpackBlockFileInfo - inverse of Pack
func UnpackBlockFileInfo(buffer []byte) (*BlockFileInfo, error) {
	r := newReader(buffer)
	f := &BlockFileInfo{
		Blocks:      r.uint32(),
		Size:        r.uint32(),
		UndoSize:    r.uint32(),
		HeightFirst: r.uint32(),
		HeightLast:  r.uint32(),
		TimeFirst:   r.varint(),
		TimeLast:    r.varint(),
	}
	if err := r.finish(); nil != err {
		return nil, err
	}
	return f, nil
}

// Validate - field sizes must fit the stored limits
func (b *BlockEntry) Validate() error {
	limits := []struct {
		field   []byte
		maximum int
	}{
		{b.PoS.FarmerPubKey, FarmerPubKeySize},
		{b.PoS.PoolPubKey, PoolPubKeySize},
		{b.PoS.LocalPubKey, LocalPubKeySize},
		{b.PoS.Proof, MaximumProofSize},
		{b.PoS.Signature, PoSSignatureSize},
		{b.PubKey, BlockPubKeySize},
		{b.Signature, MaximumSignatureLen},
	}
	for _, l := range limits {
		if len(l.field) > l.maximum {
			return fault.ErrRecordInvalidLength
		}
	}
	if 0 == len(b.PubKey) && 0 != len(b.Signature) {
		return fault.ErrRecordInvalidLength
	}
	return nil
}
