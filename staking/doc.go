// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package staking - staking pool epoch snapshots
//
// At every epoch boundary block the engine rebuilds the per pool and
// per user stake from the persisted staking coins, folds in the
// rewards earned during the previous epoch and writes a new snapshot
// generation keyed by the boundary block hash.  Snapshots are only
// ever appended, an existing generation is never rewritten.
//
// Users whose accumulated withdrawable amount reaches the minimum get
// a claimable coin at an outpoint derived from the epoch hash, the
// pool and the user.
package staking
