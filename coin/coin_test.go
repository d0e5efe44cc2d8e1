// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package coin_test

import (
	"testing"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/stretchr/testify/assert"

	"github.com/qitcoin/coinsdb/coin"
	"github.com/qitcoin/coinsdb/fault"
)

func TestAccountText(t *testing.T) {
	a, err := coin.NewAccountID("0f00000000000000000000000000000000000001")
	assert.Nil(t, err, "parse error")
	assert.Equal(t, byte(0x0f), a[0], "first byte")
	assert.Equal(t, byte(0x01), a[19], "last byte")
	assert.Equal(t, "0f00000000000000000000000000000000000001", a.String(), "string")
	assert.False(t, a.IsNull(), "null")

	_, err = coin.NewAccountID("0f00")
	assert.Equal(t, fault.ErrRecordInvalidLength, err, "short account")

	_, err = coin.NewAccountID("zz")
	assert.NotNil(t, err, "bad hex")
}

func TestAccountCompare(t *testing.T) {
	a := coin.AccountID{1}
	b := coin.AccountID{2}
	assert.Equal(t, -1, a.Compare(b), "a < b")
	assert.Equal(t, 1, b.Compare(a), "b > a")
	assert.Equal(t, 0, a.Compare(a), "a == a")
	assert.True(t, coin.AccountID{}.IsNull(), "null account")
}

func TestCoinAccessors(t *testing.T) {
	owner := coin.AccountID{9}
	receiver := coin.AccountID{8}

	c := &coin.Coin{
		Value:   1000,
		Height:  5,
		Owner:   &owner,
		Payload: &coin.Point{Receiver: receiver, Amount: 1000},
	}

	assert.True(t, c.HasOwner(), "owner")
	assert.True(t, c.OwnedBy(owner), "owned by")
	assert.False(t, c.OwnedBy(receiver), "owned by receiver")
	assert.NotNil(t, c.Point(), "point")
	assert.Nil(t, c.Staking(), "staking")
	assert.Nil(t, c.BindPlotter(), "bind plotter")

	null := coin.AccountID{}
	unowned := &coin.Coin{Value: 1, Owner: &null}
	assert.False(t, unowned.HasOwner(), "null owner")

	var missing *coin.Coin
	assert.False(t, missing.HasOwner(), "nil coin")
	assert.Nil(t, missing.Point(), "nil coin payload")
}

func TestCoinEqual(t *testing.T) {
	owner := coin.AccountID{9}
	same := owner
	a := &coin.Coin{Value: 1, Owner: &owner, Payload: &coin.BindPlotter{PlotterID: 7}}
	b := &coin.Coin{Value: 1, Owner: &same, Payload: &coin.BindPlotter{PlotterID: 7}}
	c := &coin.Coin{Value: 1, Owner: &same, Payload: &coin.BindPlotter{PlotterID: 8}}
	d := &coin.Coin{Value: 1, Owner: &same}

	assert.True(t, a.Equal(b), "equal")
	assert.False(t, a.Equal(c), "plotter differs")
	assert.False(t, a.Equal(d), "payload missing")
	assert.False(t, a.Equal(nil), "nil")
}

func TestStakingUnlocked(t *testing.T) {
	s := &coin.Staking{LockBlocks: 10}
	assert.False(t, s.Unlocked(100, 110), "at expiry")
	assert.True(t, s.Unlocked(100, 111), "after expiry")

	forever := &coin.Staking{LockBlocks: 0xffffffff}
	assert.False(t, forever.Unlocked(0xffffffff, 0xffffffff), "no wrap")
}

func TestValidateChanges(t *testing.T) {
	op := coin.NewOutPoint(chainhash.Hash{1}, 0)
	other := coin.NewOutPoint(chainhash.Hash{1}, 1)

	changes := coin.Changes{
		{OutPoint: op, After: &coin.Coin{Value: 1}, Dirty: true},
		{OutPoint: other, Dirty: true},
		{OutPoint: op, Dirty: false},
	}
	assert.Nil(t, changes.Validate(), "clean duplicate is ignored")
	assert.Equal(t, 2, changes.Dirty(), "dirty count")

	changes = append(changes, coin.Change{OutPoint: op, Dirty: true})
	assert.Equal(t, fault.ErrDuplicateChange, changes.Validate(), "duplicate")
}
