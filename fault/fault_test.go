// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package fault_test

import (
	"fmt"
	"testing"

	"github.com/qitcoin/coinsdb/fault"
)

var (
	ErrConsistencyOne = fault.ConsistencyError("consistency one")
	ErrExistsOne      = fault.ExistsError("exists one")
	ErrInterruptOne   = fault.InterruptError("interrupt one")
	ErrInvalidOne     = fault.InvalidError("invalid one")
	ErrNotFoundOne    = fault.NotFoundError("not found one")
	ErrProcessOne     = fault.ProcessError("process one")
	ErrRecordOne      = fault.RecordError("record one")
)

// test that the various errors can be subclassed
func TestClasses(t *testing.T) {
	errorList := []struct {
		err         error
		consistency bool
		exists      bool
		interrupt   bool
		invalid     bool
		notFound    bool
		process     bool
		record      bool
	}{
		{ErrConsistencyOne, true, false, false, false, false, false, false},
		{ErrExistsOne, false, true, false, false, false, false, false},
		{ErrInterruptOne, false, false, true, false, false, false, false},
		{ErrInvalidOne, false, false, false, true, false, false, false},
		{ErrNotFoundOne, false, false, false, false, true, false, false},
		{ErrProcessOne, false, false, false, false, false, true, false},
		{ErrRecordOne, false, false, false, false, false, false, true},
		{fmt.Errorf("wrapped: %w", ErrRecordOne), false, false, false, false, false, false, true},
		{fault.ErrInterrupted, false, false, true, false, false, false, false},
		{fault.ErrNegativeBalance, true, false, false, false, false, false, false},
	}

	for i, e := range errorList {
		err := e.err
		if fault.IsErrConsistency(err) != e.consistency {
			t.Errorf("%d: expected 'consistency' == %v for err = %v", i, e.consistency, err)
		}
		if fault.IsErrExists(err) != e.exists {
			t.Errorf("%d: expected 'exists' == %v for err = %v", i, e.exists, err)
		}
		if fault.IsErrInterrupt(err) != e.interrupt {
			t.Errorf("%d: expected 'interrupt' == %v for err = %v", i, e.interrupt, err)
		}
		if fault.IsErrInvalid(err) != e.invalid {
			t.Errorf("%d: expected 'invalid' == %v for err = %v", i, e.invalid, err)
		}
		if fault.IsErrNotFound(err) != e.notFound {
			t.Errorf("%d: expected 'not found' == %v for err = %v", i, e.notFound, err)
		}
		if fault.IsErrProcess(err) != e.process {
			t.Errorf("%d: expected 'process' == %v for err = %v", i, e.process, err)
		}
		if fault.IsErrRecord(err) != e.record {
			t.Errorf("%d: expected 'record' == %v for err = %v", i, e.record, err)
		}
	}
}

func TestRecoverable(t *testing.T) {
	if !fault.IsRecoverable(fault.ErrCoinNotFound) {
		t.Errorf("not found must be recoverable")
	}
	if !fault.IsRecoverable(fault.ErrInterrupted) {
		t.Errorf("interrupted must be recoverable")
	}
	if fault.IsRecoverable(fault.ErrRecordTruncated) {
		t.Errorf("record error must not be recoverable")
	}
	if fault.IsRecoverable(fault.ErrNegativeBalance) {
		t.Errorf("consistency error must not be recoverable")
	}
}
