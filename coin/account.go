// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package coin

import (
	"bytes"
	"encoding/hex"

	"github.com/qitcoin/coinsdb/fault"
)

// AccountIDSize - bytes in an account identifier (hash160 of the script)
const AccountIDSize = 20

// AccountID - identifies the owner or receiver of a coin
type AccountID [AccountIDSize]byte

// IsNull - true if all bytes are zero
func (a AccountID) IsNull() bool {
	return a == AccountID{}
}

// Bytes - account as byte slice
func (a AccountID) Bytes() []byte {
	return a[:]
}

// Compare - byte-wise comparison, used for deterministic ordering
func (a AccountID) Compare(b AccountID) int {
	return bytes.Compare(a[:], b[:])
}

// String - hex representation for the fmt package
func (a AccountID) String() string {
	return hex.EncodeToString(a[:])
}

// GoString - representation for %#v
func (a AccountID) GoString() string {
	return "<account:" + hex.EncodeToString(a[:]) + ">"
}

// MarshalText - hex text
func (a AccountID) MarshalText() ([]byte, error) {
	buffer := make([]byte, hex.EncodedLen(AccountIDSize))
	hex.Encode(buffer, a[:])
	return buffer, nil
}

// UnmarshalText - convert hex text into an account
func (a *AccountID) UnmarshalText(s []byte) error {
	buffer := make([]byte, hex.DecodedLen(len(s)))
	byteCount, err := hex.Decode(buffer, s)
	if nil != err {
		return err
	}
	return AccountIDFromBytes(a, buffer[:byteCount])
}

// AccountIDFromBytes - convert and validate a byte slice to an account
func AccountIDFromBytes(a *AccountID, buffer []byte) error {
	if AccountIDSize != len(buffer) {
		return fault.ErrRecordInvalidLength
	}
	copy(a[:], buffer)
	return nil
}

// NewAccountID - account from hex string
func NewAccountID(s string) (AccountID, error) {
	a := AccountID{}
	err := a.UnmarshalText([]byte(s))
	return a, err
}
