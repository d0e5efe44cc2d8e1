// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package coin - the unspent output data model
//
// A coin is identified by its outpoint (transaction id ++ output index)
// and carries a value, the height it was created at, a coinbase flag,
// an optional owning account and an optional payload.  The payload
// variant is fixed when the coin is created; only liveness changes.
//
// A Change describes one dirty outpoint of a pending commit:
//
//   Before == nil, After != nil  - coin created
//   Before != nil, After == nil  - coin spent
//   Before == nil, After == nil  - spend of a coin whose content is unknown
package coin
