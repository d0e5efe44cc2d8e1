// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package counter - record tallies shared between a long running scan
// and whatever reports its progress
package counter

import (
	"sync/atomic"
)

// Counter - a 64 bit unsigned tally safe for concurrent use
type Counter uint64

// Increment - add one record, returns the new value
func (c *Counter) Increment() uint64 {
	return atomic.AddUint64((*uint64)(c), 1)
}

// Add - add n records, returns the new value
func (c *Counter) Add(n uint64) uint64 {
	return atomic.AddUint64((*uint64)(c), n)
}

// Uint64 - current value
func (c *Counter) Uint64() uint64 {
	return atomic.LoadUint64((*uint64)(c))
}

// IsZero - true if nothing was counted
func (c *Counter) IsZero() bool {
	return 0 == c.Uint64()
}
