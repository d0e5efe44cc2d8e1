// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package record

import (
	"encoding/binary"

	"github.com/btcsuite/btcd/chaincfg/chainhash"

	"github.com/qitcoin/coinsdb/coin"
	"github.com/qitcoin/coinsdb/fault"
)

// byte sizes of the keys
const (
	outPointKeySize  = chainhash.HashSize + 4
	indexKeySize     = coin.AccountIDSize + outPointKeySize
	poolUsersKeySize = chainhash.HashSize + coin.AccountIDSize
)

// CoinKey - hash ++ BE index
func CoinKey(o coin.OutPoint) []byte {
	key := make([]byte, outPointKeySize)
	copy(key, o.Hash[:])
	binary.BigEndian.PutUint32(key[chainhash.HashSize:], o.Index)
	return key
}

// ParseCoinKey - inverse of CoinKey
func ParseCoinKey(key []byte) (coin.OutPoint, error) {
	if outPointKeySize != len(key) {
		return coin.OutPoint{}, fault.ErrRecordInvalidKey
	}
	return parseOutPoint(key), nil
}

func parseOutPoint(key []byte) coin.OutPoint {
	o := coin.OutPoint{}
	copy(o.Hash[:], key[:chainhash.HashSize])
	o.Index = binary.BigEndian.Uint32(key[chainhash.HashSize:])
	return o
}

// IndexKey - account ++ hash ++ BE index, shared by every index kind
func IndexKey(account coin.AccountID, o coin.OutPoint) []byte {
	key := make([]byte, 0, indexKeySize)
	key = append(key, account[:]...)
	return append(key, CoinKey(o)...)
}

// ParseIndexKey - inverse of IndexKey
func ParseIndexKey(key []byte) (coin.AccountID, coin.OutPoint, error) {
	if indexKeySize != len(key) {
		return coin.AccountID{}, coin.OutPoint{}, fault.ErrRecordInvalidKey
	}
	account := coin.AccountID{}
	copy(account[:], key[:coin.AccountIDSize])
	return account, parseOutPoint(key[coin.AccountIDSize:]), nil
}

// AccountPrefix - prefix selecting all index entries of one account
func AccountPrefix(account coin.AccountID) []byte {
	return append([]byte{}, account[:]...)
}

// HashKey - key of records addressed by a block hash
func HashKey(h chainhash.Hash) []byte {
	return append([]byte{}, h[:]...)
}

// ParseHashKey - inverse of HashKey
func ParseHashKey(key []byte) (chainhash.Hash, error) {
	h := chainhash.Hash{}
	if chainhash.HashSize != len(key) {
		return h, fault.ErrRecordInvalidKey
	}
	copy(h[:], key)
	return h, nil
}

// PoolUsersKey - epoch hash ++ pool id
func PoolUsersKey(epoch chainhash.Hash, pool coin.AccountID) []byte {
	key := make([]byte, 0, poolUsersKeySize)
	key = append(key, epoch[:]...)
	return append(key, pool[:]...)
}

// ParsePoolUsersKey - inverse of PoolUsersKey
func ParsePoolUsersKey(key []byte) (chainhash.Hash, coin.AccountID, error) {
	h := chainhash.Hash{}
	a := coin.AccountID{}
	if poolUsersKeySize != len(key) {
		return h, a, fault.ErrRecordInvalidKey
	}
	copy(h[:], key[:chainhash.HashSize])
	copy(a[:], key[chainhash.HashSize:])
	return h, a, nil
}

// FileKey - BE block file number
func FileKey(file uint32) []byte {
	key := make([]byte, 4)
	binary.BigEndian.PutUint32(key, file)
	return key
}

// FlagKey - flag name
func FlagKey(name string) []byte {
	return []byte(name)
}

// SingletonKey - key of kinds holding one record
func SingletonKey() []byte {
	return []byte{}
}
