// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package coinsdb_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/qitcoin/coinsdb/coin"
	"github.com/qitcoin/coinsdb/coinsdb"
	"github.com/qitcoin/coinsdb/fault"
)

var everything = coinsdb.BalanceRequest{
	BindPlotter:    true,
	PointSend:      true,
	PointReceive:   true,
	StakingSend:    true,
	StakingReceive: true,
}

func balanceChanges() coin.Changes {
	return coin.Changes{
		create(outPoint(1, 0), plainCoin(alice, 100)),
		create(outPoint(1, 1), bindCoin(alice, 7, 20)),
		create(outPoint(1, 2), bindCoin(alice, 8, 21)),
		create(outPoint(1, 3), pointCoin(alice, bob, 500, 50)),
		create(outPoint(1, 4), stakingCoin(bob, pool, 300, 30, 100)),
		create(outPoint(1, 5), pointCoin(carol, alice, 70, 7)),
		create(outPoint(1, 6), &coin.Coin{Value: 999, Height: 3}),
		create(outPoint(1, 7), stakingCoin(alice, pool, 40, 31, 100)),
	}
}

func balances(t *testing.T, s *coinsdb.Store, overlay coin.Changes) map[coin.AccountID]coinsdb.Balance {
	result := make(map[coin.AccountID]coinsdb.Balance)
	for _, account := range []coin.AccountID{alice, bob, carol, pool} {
		b, err := s.Balance(account, everything, overlay)
		if nil != err {
			t.Fatalf("balance of %s error: %s", account, err)
		}
		result[account] = b
	}
	return result
}

func TestBalancePersisted(t *testing.T) {
	db, s := setup(t)
	defer db.Close()

	mustCommit(t, s, balanceChanges(), tipHash(1))

	lock := localParams(t).BindPlotterLockAmount
	assert.Equal(t, map[coin.AccountID]coinsdb.Balance{
		alice: {Available: 2640, BindPlotter: 2 * lock, PointSend: 500, PointReceive: 7, StakingSend: 40},
		bob:   {Available: 300, PointReceive: 50, StakingSend: 300},
		carol: {Available: 70, PointSend: 70},
		pool:  {StakingReceive: 340},
	}, balances(t, s, nil), "balances")
}

func TestBalanceUnrequested(t *testing.T) {
	db, s := setup(t)
	defer db.Close()

	mustCommit(t, s, balanceChanges(), tipHash(1))

	b, err := s.Balance(alice, coinsdb.BalanceRequest{PointSend: true}, nil)
	assert.Nil(t, err, "balance error")
	assert.Equal(t, coinsdb.Balance{Available: 2640, PointSend: 500}, b, "only requested categories")
}

func TestBalanceOverlayRoundTrip(t *testing.T) {
	changes := balanceChanges()

	persistedDB, persisted := setup(t)
	defer persistedDB.Close()
	mustCommit(t, persisted, changes, tipHash(1))
	expected := balances(t, persisted, nil)

	emptyDB, empty := setup(t)
	defer emptyDB.Close()
	assert.Equal(t, expected, balances(t, empty, changes), "overlay over empty store")

	halfDB, half := setup(t)
	defer halfDB.Close()
	mustCommit(t, half, changes[:4], tipHash(1))
	assert.Equal(t, expected, balances(t, half, changes[4:]), "overlay over half store")

	assert.Equal(t, expected, balances(t, persisted, changes), "overlay already persisted")
}

func TestBalanceOverlaySpend(t *testing.T) {
	changes := balanceChanges()
	spends := coin.Changes{
		spend(outPoint(1, 1), changes[1].After),
		{OutPoint: outPoint(1, 3), Dirty: true},
		spend(outPoint(1, 4), changes[4].After),
	}

	committedDB, committed := setup(t)
	defer committedDB.Close()
	mustCommit(t, committed, changes, tipHash(1))
	mustCommit(t, committed, spends, tipHash(2))
	expected := balances(t, committed, nil)

	db, s := setup(t)
	defer db.Close()
	mustCommit(t, s, changes, tipHash(1))

	assert.Equal(t, expected, balances(t, s, spends), "overlay spends")

	lock := localParams(t).BindPlotterLockAmount
	assert.Equal(t, coinsdb.Balance{Available: 1140, BindPlotter: lock, PointReceive: 7, StakingSend: 40}, expected[alice], "alice")
	assert.Equal(t, coinsdb.Balance{}, expected[bob], "bob")
}

func TestBalanceOverlayIgnoresClean(t *testing.T) {
	db, s := setup(t)
	defer db.Close()

	overlay := coin.Changes{
		{OutPoint: outPoint(1, 0), After: plainCoin(alice, 100)},
	}
	b, err := s.Balance(alice, everything, overlay)
	assert.Nil(t, err, "balance error")
	assert.Equal(t, coinsdb.Balance{}, b, "clean overlay entry counted")
}

func TestBalanceOverlayDuplicate(t *testing.T) {
	db, s := setup(t)
	defer db.Close()

	overlay := coin.Changes{
		create(outPoint(1, 0), plainCoin(alice, 100)),
		create(outPoint(1, 0), plainCoin(alice, 100)),
	}
	_, err := s.Balance(alice, everything, overlay)
	assert.Equal(t, fault.ErrDuplicateChange, err, "duplicate overlay")
}

func TestBalanceOverflow(t *testing.T) {
	db, s := setup(t)
	defer db.Close()

	half := uint64(math.MaxUint64/2 + 1)
	mustCommit(t, s, coin.Changes{
		create(outPoint(1, 0), plainCoin(alice, half)),
		create(outPoint(1, 1), plainCoin(alice, half)),
		create(outPoint(2, 0), plainCoin(bob, math.MaxUint64)),
	}, tipHash(1))

	_, err := s.Balance(alice, everything, nil)
	assert.Equal(t, fault.ErrBalanceOverflow, err, "persisted total")
	assert.True(t, fault.IsErrConsistency(err), "consistency class")

	b, err := s.Balance(bob, everything, nil)
	assert.Nil(t, err, "single coin")
	assert.Equal(t, uint64(math.MaxUint64), b.Available, "available")

	overlay := coin.Changes{
		create(outPoint(3, 0), plainCoin(bob, 1)),
	}
	_, err = s.Balance(bob, everything, overlay)
	assert.Equal(t, fault.ErrBalanceOverflow, err, "overlay total")
}
