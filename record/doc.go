// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package record - on-disk layout of every key and value
//
// Every key starts with a one byte kind (see Kind) that is added by
// the storage pool handle, the functions here only build and parse
// the remainder.  Integers inside keys are big endian so that keys
// sort in numeric order; integers inside values are Varint64.
//
// Any value or key that fails to decode gives a fault.RecordError.
package record
