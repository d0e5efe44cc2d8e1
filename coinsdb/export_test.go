// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package coinsdb

// SetFlushHook - run hook after every partial flush of a commit
func SetFlushHook(s *Store, hook func(flushes int) error) {
	s.flushHook = hook
}
