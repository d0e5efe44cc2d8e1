// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage_test

import (
	"os"
	"testing"

	"github.com/bitmark-inc/logger"

	"github.com/qitcoin/coinsdb/record"
	"github.com/qitcoin/coinsdb/storage"
)

const (
	testingDirName = "testing"
	testKind       = record.Flag
)

func setupTestLogger() {
	removeFiles()
	_ = os.Mkdir(testingDirName, 0700)

	logging := logger.Configuration{
		Directory: testingDirName,
		File:      "testing.log",
		Size:      1048576,
		Count:     10,
		Console:   false,
		Levels: map[string]string{
			logger.DefaultTag: "critical",
		},
	}

	// start logging
	_ = logger.Initialise(logging)
}

func removeFiles() {
	_ = os.RemoveAll(testingDirName)
}

func TestMain(m *testing.M) {
	setupTestLogger()
	rc := m.Run()
	logger.Finalise()
	removeFiles()
	os.Exit(rc)
}

// configure for testing
func setup(t *testing.T) *storage.Database {
	db, err := storage.OpenMemory()
	if nil != err {
		t.Fatalf("storage open error: %s", err)
	}
	return db
}

// a string data item
type stringElement struct {
	key   string
	value string
}

// make an element array
func makeElements(input []stringElement) []storage.Element {
	output := make([]storage.Element, 0, len(input))
	for _, e := range input {
		output = append(output, storage.Element{
			Key:   []byte(e.key),
			Value: []byte(e.value),
		})
	}
	return output
}

// this is the expected order
var expectedElements = makeElements([]stringElement{
	{"key-five", "data-five"},
	{"key-four", "data-four"},
	{"key-one", "data-one(NEW)"},
	{"key-seven", "data-seven"},
	{"key-six", "data-six"},
	{"key-three", "data-three"},
	{"key-two", "data-two"},
})

// load the sample data through a batch
func loadSample(t *testing.T, db *storage.Database) {
	b, err := db.Begin()
	if nil != err {
		t.Fatalf("begin error: %s", err)
	}

	put := func(key string, data string) {
		b.Put(testKind, []byte(key), []byte(data))
	}
	del := func(key string) {
		b.Delete(testKind, []byte(key))
	}

	put("key-one", "data-one")
	put("key-two", "data-two")
	put("key-remove-me", "to be deleted")
	del("key-remove-me")
	put("key-three", "data-three")
	put("key-one", "data-one")     // duplicate
	put("key-three", "data-three") // duplicate
	put("key-four", "data-four")
	put("key-delete-this", "to be deleted")
	put("key-five", "data-five")
	put("key-six", "data-six")
	del("key-delete-this")
	put("key-seven", "data-seven")
	put("key-one", "data-one(NEW)") // duplicate

	// neighbouring pools must not leak into the test pool
	b.Put(testKind-1, []byte("key-zzz"), []byte("other"))
	b.Put(testKind+1, []byte("key-aaa"), []byte("other"))

	if err := b.Commit(); nil != err {
		t.Fatalf("commit error: %s", err)
	}
}
