// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package fault - error instances
//
// Provides a single instance of errors to allow easy comparison
// without having to resort to partial string matches
//
// The classes map onto the ways a coin database operation can end:
//
//   NotFoundError    - absent key, a normal outcome
//   RecordError      - stored bytes failed to decode, database is corrupt
//   ProcessError     - a physical read or write did not complete
//   InterruptError   - shutdown was requested during a long scan, retry later
//   ConsistencyError - a derived index or balance contradicts the coin set
//   InvalidError     - caller supplied bad arguments
//   ExistsError      - resource already present or in use
package fault
