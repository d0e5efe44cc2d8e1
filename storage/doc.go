// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package storage - maintain the on-disk data store
//
// maintain separate pools of a number of elements in key->value form
//
// This maintains a LevelDB database split into a series of tables.
// Each table is defined by a prefix byte, the record.Kind of the
// records it holds.
//
// Notes:
// 1. each separate pool has a single byte prefix
// 2. ++           = concatenation of byte data
// 3. txId         = transaction hash (32 bytes)
// 4. index        = output index as big endian uint32 (4 bytes)
// 5. account      = hash160 of the output script (20 bytes)
// 6. varint       = Varint64 value
//
// Coins:
//
//   C ++ txId ++ index            - live coin
//                                   data: see record.PackedCoin
//
// Secondary indices:
//
//   c ++ account ++ txId ++ index - coins owned by account
//                                   data: coin value(varint)
//   r ++ account ++ txId ++ index - bind plotter coins of account
//                                   data: plotter id(varint) ++ height(varint)
//   P ++ sender ++ txId ++ index  - point coins sent by account
//   p ++ receiver ++ txId ++ index- point coins received by account
//   S ++ sender ++ txId ++ index  - staking coins sent by account
//   s ++ receiver ++ txId ++ index- staking coins received by account (pool)
//                                   data: payload amount(varint)
//
// Staking snapshots:
//
//   T ++ epoch hash               - enabled pools
//   t ++ epoch hash ++ pool       - users of one pool
//
// Chain state:
//
//   B                             - best block hash
//   H                             - head blocks marker: count(varint) ++ [hash]
//   V                             - database version(varint)
//
// Block tree:
//
//   b ++ block hash               - block index entry
//   f ++ file(BE uint32)          - block file info
//   l                             - last block file number(varint)
//   R                             - reindex in progress(varint)
//   F ++ name                     - named flag '0' or '1'
package storage
