// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/bitmark-inc/logger"

	"github.com/qitcoin/coinsdb/chain"
	"github.com/qitcoin/coinsdb/coinsdb"
	"github.com/qitcoin/coinsdb/configuration"
	"github.com/qitcoin/coinsdb/util"
)

// relative names are resolved against data_directory
const (
	defaultDatabaseDirectory = "data"
	defaultCoinsDatabase     = "chainstate"
	defaultBlocksDatabase    = "blocks"
	defaultCacheSize         = 64 << 20

	defaultLogDirectory = "log"
	defaultLogFile      = "coinsdb.log"
	defaultLogCount     = 10
	defaultLogSize      = 1 << 20
)

type DatabaseType struct {
	Directory string `gluamapper:"directory" json:"directory"`
	Coins     string `gluamapper:"coins" json:"coins"`
	Blocks    string `gluamapper:"blocks" json:"blocks"`
	BatchSize int    `gluamapper:"batch_size" json:"batch_size"`
	CacheSize int    `gluamapper:"cache_size" json:"cache_size"`
}

type Configuration struct {
	DataDirectory string               `gluamapper:"data_directory" json:"data_directory"`
	Chain         string               `gluamapper:"chain" json:"chain"`
	Database      DatabaseType         `gluamapper:"database" json:"database"`
	Logging       logger.Configuration `gluamapper:"logging" json:"logging"`
}

func defaultConfiguration() *Configuration {
	return &Configuration{
		Chain: chain.Qitcoin,
		Database: DatabaseType{
			Directory: defaultDatabaseDirectory,
			Coins:     defaultCoinsDatabase,
			Blocks:    defaultBlocksDatabase,
			BatchSize: coinsdb.DefaultBatchSize,
			CacheSize: defaultCacheSize,
		},
		Logging: logger.Configuration{
			Directory: defaultLogDirectory,
			File:      defaultLogFile,
			Size:      defaultLogSize,
			Count:     defaultLogCount,
			Levels: map[string]string{
				"main":            "info",
				logger.DefaultTag: "critical",
			},
		},
	}
}

// read the Lua file over the defaults then check and resolve every path
//
// data_directory "." means the directory holding the file
func getConfiguration(fileName string, variables map[string]string) (*Configuration, error) {

	fileName, err := filepath.Abs(filepath.Clean(fileName))
	if nil != err {
		return nil, err
	}

	options := defaultConfiguration()
	err = configuration.ParseConfigurationFile(fileName, options, variables)
	if nil != err {
		return nil, err
	}

	options.Chain = strings.ToLower(options.Chain)
	if !chain.Valid(options.Chain) {
		return nil, fmt.Errorf("chain: %q is not one of: %s", options.Chain, strings.Join(chain.Names(), ", "))
	}
	if options.Database.BatchSize <= 0 {
		return nil, fmt.Errorf("database: batch_size: %d must be positive", options.Database.BatchSize)
	}

	err = options.resolvePaths(filepath.Dir(fileName))
	if nil != err {
		return nil, err
	}
	return options, nil
}

func (options *Configuration) resolvePaths(configDirectory string) error {

	switch options.DataDirectory {
	case "", "~":
		return fmt.Errorf("data_directory: %q is not usable", options.DataDirectory)
	case ".":
		options.DataDirectory = configDirectory
	}
	options.DataDirectory = filepath.Clean(options.DataDirectory)

	// the data directory is never created here
	info, err := os.Stat(options.DataDirectory)
	if nil != err {
		return err
	}
	if !info.IsDir() {
		return fmt.Errorf("data_directory: %q is not a directory", options.DataDirectory)
	}

	for _, name := range []string{
		options.Database.Coins,
		options.Database.Blocks,
		options.Logging.File,
	} {
		if "." != filepath.Dir(name) {
			return fmt.Errorf("file: %q must be a plain name", name)
		}
	}

	options.Database.Directory = util.EnsureAbsolute(options.DataDirectory, options.Database.Directory)
	options.Logging.Directory = util.EnsureAbsolute(options.DataDirectory, options.Logging.Directory)
	for _, d := range []string{options.Database.Directory, options.Logging.Directory} {
		if err := util.EnsureDirectory(d, 0700); nil != err {
			return err
		}
	}

	options.Database.Coins = filepath.Join(options.Database.Directory, options.Database.Coins)
	options.Database.Blocks = filepath.Join(options.Database.Directory, options.Database.Blocks)
	return nil
}
