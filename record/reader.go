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

// sequential decoder, the first failure sticks
type reader struct {
	buffer []byte
	n      int
	err    error
}

func newReader(buffer []byte) *reader {
	return &reader{buffer: buffer}
}

func (r *reader) fail(err error) {
	if nil == r.err {
		r.err = err
	}
}

func (r *reader) varint() uint64 {
	if nil != r.err {
		return 0
	}
	value, count := util.FromVarint64(r.buffer[r.n:])
	if 0 == count {
		r.fail(fault.ErrRecordTruncated)
		return 0
	}
	r.n += count
	return value
}

func (r *reader) uint32() uint32 {
	value := r.varint()
	if value > 0xffffffff {
		r.fail(fault.ErrRecordInvalidLength)
		return 0
	}
	return uint32(value)
}

func (r *reader) u8() byte {
	b := r.bytes(1)
	if nil == b {
		return 0
	}
	return b[0]
}

func (r *reader) bytes(length int) []byte {
	if nil != r.err {
		return nil
	}
	if r.n+length > len(r.buffer) {
		r.fail(fault.ErrRecordTruncated)
		return nil
	}
	b := r.buffer[r.n : r.n+length]
	r.n += length
	return b
}

// length prefixed byte string with an upper bound
func (r *reader) limited(maximum int) []byte {
	length := r.varint()
	if nil != r.err {
		return nil
	}
	if length > uint64(maximum) {
		r.fail(fault.ErrRecordInvalidLength)
		return nil
	}
	b := r.bytes(int(length))
	if nil == b {
		return nil
	}
	if 0 == len(b) {
		return nil
	}
	return append([]byte{}, b...)
}

func (r *reader) hash() chainhash.Hash {
	h := chainhash.Hash{}
	b := r.bytes(chainhash.HashSize)
	if nil != b {
		copy(h[:], b)
	}
	return h
}

func (r *reader) account() coin.AccountID {
	a := coin.AccountID{}
	b := r.bytes(coin.AccountIDSize)
	if nil != b {
		copy(a[:], b)
	}
	return a
}

// count of list elements, bounded by the remaining bytes
func (r *reader) count(elementMinimum int) int {
	n := r.varint()
	if nil != r.err {
		return 0
	}
	if n > uint64(len(r.buffer)-r.n)/uint64(elementMinimum) {
		r.fail(fault.ErrRecordInvalidLength)
		return 0
	}
	return int(n)
}

// finish - error if decoding failed or bytes remain
func (r *reader) finish() error {
	if nil != r.err {
		return r.err
	}
	if r.n != len(r.buffer) {
		return fault.ErrRecordTrailingData
	}
	return nil
}

func appendLimited(buffer []byte, b []byte) []byte {
	buffer = util.AppendVarint64(buffer, uint64(len(b)))
	return append(buffer, b...)
}
