// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package coin

import (
	"fmt"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
)

// OutPoint - globally unique coin identifier
type OutPoint struct {
	Hash  chainhash.Hash
	Index uint32
}

// NewOutPoint - construct an outpoint
func NewOutPoint(hash chainhash.Hash, index uint32) OutPoint {
	return OutPoint{
		Hash:  hash,
		Index: index,
	}
}

// IsNull - zero hash
func (o OutPoint) IsNull() bool {
	return o.Hash == chainhash.Hash{}
}

// String - txid:index
func (o OutPoint) String() string {
	return fmt.Sprintf("%s:%d", o.Hash, o.Index)
}
