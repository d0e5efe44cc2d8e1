// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package coinsdb_test

import (
	"io/ioutil"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/qitcoin/coinsdb/coinsdb"
	"github.com/qitcoin/coinsdb/fault"
	"github.com/qitcoin/coinsdb/record"
	"github.com/qitcoin/coinsdb/storage"
)

func writeVersion(t *testing.T, db *storage.Database, version uint32) {
	b, err := db.Begin()
	if nil != err {
		t.Fatalf("begin error: %s", err)
	}
	b.Put(record.Version, record.SingletonKey(), record.PackUint32(version))
	if err := b.Commit(); nil != err {
		t.Fatalf("commit error: %s", err)
	}
}

func TestOpenOlderVersion(t *testing.T) {
	db, err := storage.OpenMemory()
	assert.Nil(t, err, "open memory")
	defer db.Close()

	writeVersion(t, db, 0)

	s, err := coinsdb.Open(db, localParams(t), nil, coinsdb.Options{})
	assert.Nil(t, err, "writable open of an old database")
	assert.True(t, s.MustUpgrade(), "must upgrade")

	n, err := s.Commit(nil, tipHash(1))
	assert.Equal(t, fault.ErrUpgradeRequired, err, "commit")
	assert.Equal(t, 0, n, "changes written")
	_, found, err := s.BestTip()
	assert.Nil(t, err, "best tip error")
	assert.False(t, found, "tip moved by refused commit")

	_, err = s.Balance(alice, coinsdb.BalanceRequest{}, nil)
	assert.Equal(t, fault.ErrUpgradeRequired, err, "balance")

	_, err = s.TopStakingAccounts(3, nil)
	assert.Equal(t, fault.ErrUpgradeRequired, err, "top staking")

	_, err = s.BindPlotterEntries(1)
	assert.Equal(t, fault.ErrUpgradeRequired, err, "bind plotter")

	cursor := s.AccountCursor(alice)
	_, err = cursor.Fetch(10)
	assert.Equal(t, fault.ErrUpgradeRequired, err, "account cursor")
	cursor.Release()

	upgraded, err := s.Upgrade(nil, nil)
	assert.Nil(t, err, "upgrade error")
	assert.True(t, upgraded, "upgraded")
	assert.False(t, s.MustUpgrade(), "still must upgrade")

	mustCommit(t, s, balanceChanges(), tipHash(1))
	balance, err := s.Balance(alice, coinsdb.BalanceRequest{}, nil)
	assert.Nil(t, err, "balance after upgrade")
	assert.Equal(t, uint64(2640), balance.Available, "available")
}

func TestOpenMissingVersion(t *testing.T) {
	db, err := storage.OpenMemory()
	assert.Nil(t, err, "open memory")
	defer db.Close()

	live := liveCoins()
	writeRawCoins(t, db, live)

	s, err := coinsdb.Open(db, localParams(t), nil, coinsdb.Options{})
	assert.Nil(t, err, "open")
	assert.True(t, s.MustUpgrade(), "coins without a version record")

	_, err = s.Commit(nil, tipHash(1))
	assert.Equal(t, fault.ErrUpgradeRequired, err, "commit")

	_, err = s.Upgrade(nil, nil)
	assert.Nil(t, err, "upgrade error")
	assert.Equal(t, expectedIndexes(live), dump(t, db, record.IndexKinds...), "rebuilt indices")
	assert.False(t, s.MustUpgrade(), "still must upgrade")
}

func TestOpenEmptyTagsVersion(t *testing.T) {
	db, s := setup(t)
	defer db.Close()

	assert.False(t, s.MustUpgrade(), "empty store must upgrade")
	_, found, err := db.Version()
	assert.Nil(t, err, "version error")
	assert.False(t, found, "version written by open")

	mustCommit(t, s, balanceChanges(), tipHash(1))

	version, found, err := db.Version()
	assert.Nil(t, err, "version error")
	assert.True(t, found, "version written by first commit")
	assert.Equal(t, coinsdb.Version, version, "version")

	again, err := coinsdb.Open(db, localParams(t), nil, coinsdb.Options{})
	assert.Nil(t, err, "reopen")
	assert.False(t, again.MustUpgrade(), "reopened store must upgrade")
}

func TestOpenReadOnlyOlderVersion(t *testing.T) {
	dir, err := ioutil.TempDir("", "coinsdb")
	assert.Nil(t, err, "temp dir")
	defer os.RemoveAll(dir)

	db, err := storage.Open(dir, storage.ReadWrite, 0)
	assert.Nil(t, err, "open writable")
	writeVersion(t, db, 0)
	assert.Nil(t, db.Close(), "close")

	db, err = storage.Open(dir, storage.ReadOnly, 0)
	assert.Nil(t, err, "open read only")
	defer db.Close()

	_, err = coinsdb.Open(db, localParams(t), nil, coinsdb.Options{})
	assert.Equal(t, fault.ErrUpgradeRequired, err, "read only open of an old database")
}
