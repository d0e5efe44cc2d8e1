// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package coin

import (
	"github.com/qitcoin/coinsdb/fault"
)

// Change - one entry of the in-memory write-back cache
type Change struct {
	OutPoint OutPoint
	Before   *Coin // nil if absent before
	After    *Coin // nil if spent or absent after
	Dirty    bool  // only dirty entries are written
}

// IsSpent - the outpoint does not hold a live coin after the change
func (c Change) IsSpent() bool {
	return nil == c.After
}

// Changes - ordered delta supplied to commit and balance queries
type Changes []Change

// Validate - each dirty outpoint may occur at most once
//
// callers must collapse spend-then-recreate sequences before handing
// the set over
func (cs Changes) Validate() error {
	seen := make(map[OutPoint]struct{}, len(cs))
	for _, c := range cs {
		if !c.Dirty {
			continue
		}
		if _, ok := seen[c.OutPoint]; ok {
			return fault.ErrDuplicateChange
		}
		seen[c.OutPoint] = struct{}{}
	}
	return nil
}

// Dirty - count of entries that will be written
func (cs Changes) Dirty() int {
	n := 0
	for _, c := range cs {
		if c.Dirty {
			n += 1
		}
	}
	return n
}
