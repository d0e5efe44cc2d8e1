// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/bitmark-inc/exitwithstatus"
	"github.com/bitmark-inc/getoptions"
	"github.com/bitmark-inc/logger"

	"github.com/qitcoin/coinsdb/blocktree"
	"github.com/qitcoin/coinsdb/chain"
	"github.com/qitcoin/coinsdb/coinsdb"
	"github.com/qitcoin/coinsdb/storage"
)

// set by the linker: go build -ldflags "-X main.version=M.N" ./...
var version = "zero" // do not change this value

// main program
func main() {
	// ensure exit handler is first
	defer exitwithstatus.Handler()

	flags := []getoptions.Option{
		{Long: "help", HasArg: getoptions.NO_ARGUMENT, Short: 'h'},
		{Long: "verbose", HasArg: getoptions.NO_ARGUMENT, Short: 'v'},
		{Long: "quiet", HasArg: getoptions.NO_ARGUMENT, Short: 'q'},
		{Long: "version", HasArg: getoptions.NO_ARGUMENT, Short: 'V'},
		{Long: "config-file", HasArg: getoptions.REQUIRED_ARGUMENT, Short: 'c'},
	}

	program, options, arguments, err := getoptions.GetOS(flags)
	if nil != err {
		exitwithstatus.Message("%s: getoptions error: %s", program, err)
	}

	if len(options["version"]) > 0 {
		exitwithstatus.Message("%s: version: %s", program, version)
	}

	if len(options["help"]) > 0 || 0 == len(arguments) || "help" == arguments[0] {
		usage(program)
		exitwithstatus.Exit(1)
	}

	if 1 != len(options["config-file"]) {
		exitwithstatus.Message("%s: only one config-file option is required, %d were detected", program, len(options["config-file"]))
	}

	// read options and parse the configuration file
	configurationFile := options["config-file"][0]
	masterConfiguration, err := getConfiguration(configurationFile, map[string]string{
		"command": arguments[0],
	})
	if nil != err {
		exitwithstatus.Message("%s: failed to read configuration from: %q  error: %s", program, configurationFile, err)
	}

	// start logging
	if err = logger.Initialise(masterConfiguration.Logging); nil != err {
		exitwithstatus.Message("%s: logger setup failed with error: %s", program, err)
	}
	defer logger.Finalise()

	// create a logger channel for the main program
	log := logger.New("main")
	defer log.Info("shutting down…")
	log.Info("starting…")
	log.Infof("version: %s", version)
	log.Debugf("masterConfiguration: %v", masterConfiguration)

	params, err := chain.ParamsFor(masterConfiguration.Chain)
	if nil != err {
		exitwithstatus.Message("%s: chain: %q  error: %s", program, masterConfiguration.Chain, err)
	}

	readOnly := !isWriteCommand(arguments[0])
	database := masterConfiguration.Database

	blocksDB, err := storage.Open(database.Blocks, storage.ReadOnly, database.CacheSize)
	if nil != err {
		log.Criticalf("block database: %q  open error: %s", database.Blocks, err)
		exitwithstatus.Message("%s: block database: %q  open error: %s", program, database.Blocks, err)
	}
	defer blocksDB.Close()

	coinsDB, err := storage.Open(database.Coins, readOnly, database.CacheSize)
	if nil != err {
		log.Criticalf("coin database: %q  open error: %s", database.Coins, err)
		exitwithstatus.Message("%s: coin database: %q  open error: %s", program, database.Coins, err)
	}
	defer coinsDB.Close()

	// stop long scans on signal
	shutdown := make(chan struct{})
	ch := make(chan os.Signal, 1)
	signal.Notify(ch, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-ch
		log.Infof("received signal: %v", sig)
		close(shutdown)
	}()

	store, err := coinsdb.Open(coinsDB, params, blocktree.New(blocksDB), coinsdb.Options{
		BatchSize: database.BatchSize,
		Shutdown:  shutdown,
	})
	if nil != err {
		log.Criticalf("coin store error: %s", err)
		exitwithstatus.Message("%s: coin store error: %s", program, err)
	}

	err = processCommand(store, blocksDB, arguments, shutdown, log)
	if nil != err {
		log.Errorf("command: %q  error: %s", arguments[0], err)
		exitwithstatus.Message("%s: %s error: %s", program, arguments[0], err)
	}
}
