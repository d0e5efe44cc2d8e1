// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package fault

import (
	"errors"
)

// GenericError - error base
type GenericError string

// to allow for different classes of errors
type ConsistencyError GenericError
type ExistsError GenericError
type InterruptError GenericError
type InvalidError GenericError
type NotFoundError GenericError
type ProcessError GenericError
type RecordError GenericError

// common errors - keep in alphabetic order
var (
	ErrBalanceOverflow        = ConsistencyError("balance total overflow")
	ErrBatchInUse             = ExistsError("batch already in use")
	ErrBatchNotInUse          = InvalidError("batch is not in use")
	ErrBlockNotFound          = NotFoundError("block not found")
	ErrCoinNotFound           = NotFoundError("coin not found")
	ErrConfigurationNotTable  = InvalidError("configuration did not return a table")
	ErrDatabaseIsNotSet       = InvalidError("database is not set")
	ErrDatabaseIsReadOnly     = InvalidError("database is read only")
	ErrDatabaseVersion        = InvalidError("database version is newer than supported")
	ErrDuplicateChange        = InvalidError("duplicate outpoint in change set")
	ErrHeadBlocksMismatch     = ConsistencyError("head blocks marker does not match new tip")
	ErrIndexEntryWithoutCoin  = ConsistencyError("index entry without live coin")
	ErrIndexValueMismatch     = ConsistencyError("index value does not match coin")
	ErrInterrupted            = InterruptError("interrupted by shutdown request")
	ErrInvalidChain           = InvalidError("invalid chain")
	ErrInvalidCount           = InvalidError("invalid count")
	ErrInvalidCursor          = InvalidError("invalid cursor")
	ErrInvalidStructPointer   = InvalidError("invalid struct pointer")
	ErrMissingParameters      = InvalidError("missing parameters")
	ErrMissingIndexEntry      = ConsistencyError("live coin is missing an index entry")
	ErrNegativeBalance        = ConsistencyError("reconstructed balance is negative")
	ErrNotStakingCoin         = ConsistencyError("staking index refers to a non staking coin")
	ErrNullTip                = InvalidError("new tip must not be null")
	ErrRecordTruncated        = RecordError("record is truncated")
	ErrRecordTrailingData     = RecordError("record has trailing data")
	ErrRecordUnknownPayload   = RecordError("record has unknown payload type")
	ErrRecordInvalidFlag      = RecordError("record has an invalid flag byte")
	ErrRecordInvalidKey       = RecordError("record key is invalid")
	ErrRecordInvalidLength    = RecordError("record length is invalid")
	ErrRewardOverflow         = ConsistencyError("user stake exceeds pool stake")
	ErrStakeOverflow          = ConsistencyError("stake amount overflow")
	ErrUnknownCommand         = InvalidError("unknown command")
	ErrUpgradeRequired        = InvalidError("database indices must be upgraded")
	ErrWriteFailed            = ProcessError("database write failed")
	ErrZeroEpochLength        = InvalidError("epoch length must be positive")
	ErrZeroBatchSize          = InvalidError("batch size must be positive")
	ErrNegativeTopCount       = InvalidError("top count must be positive")
	ErrUnsupportedChainParams = InvalidError("chain parameters are not supported")
)

// the error interface base method
func (e GenericError) Error() string { return string(e) }

// the error interface methods
func (e ConsistencyError) Error() string { return string(e) }
func (e ExistsError) Error() string      { return string(e) }
func (e InterruptError) Error() string   { return string(e) }
func (e InvalidError) Error() string     { return string(e) }
func (e NotFoundError) Error() string    { return string(e) }
func (e ProcessError) Error() string     { return string(e) }
func (e RecordError) Error() string      { return string(e) }

// determine the class of an error
//
// wrapped errors (fmt.Errorf with %w) are unwrapped before the check
func IsErrConsistency(e error) bool { var t ConsistencyError; return errors.As(e, &t) }
func IsErrExists(e error) bool      { var t ExistsError; return errors.As(e, &t) }
func IsErrInterrupt(e error) bool   { var t InterruptError; return errors.As(e, &t) }
func IsErrInvalid(e error) bool     { var t InvalidError; return errors.As(e, &t) }
func IsErrNotFound(e error) bool    { var t NotFoundError; return errors.As(e, &t) }
func IsErrProcess(e error) bool     { var t ProcessError; return errors.As(e, &t) }
func IsErrRecord(e error) bool      { var t RecordError; return errors.As(e, &t) }

// IsRecoverable - only not found and interrupted outcomes can be retried locally
func IsRecoverable(e error) bool {
	return IsErrNotFound(e) || IsErrInterrupt(e)
}
