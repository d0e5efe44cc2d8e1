// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/btcsuite/btcd/chaincfg/chainhash"

	"github.com/bitmark-inc/logger"

	"github.com/qitcoin/coinsdb/background"
	"github.com/qitcoin/coinsdb/blocktree"
	"github.com/qitcoin/coinsdb/coin"
	"github.com/qitcoin/coinsdb/coinsdb"
	"github.com/qitcoin/coinsdb/fault"
	"github.com/qitcoin/coinsdb/storage"
)

type command struct {
	name      string
	arguments string
	write     bool
	help      string
}

var commands = []command{
	{"upgrade", "", true, "rebuild all secondary indices if the database version is old"},
	{"check", "", false, "verify every index record against the coin records"},
	{"tip", "", false, "show the best block or an interrupted commit"},
	{"balance", "ACCOUNT", false, "all balance categories of an account"},
	{"plotter", "PLOTTER-ID [ACCOUNT]", false, "live bind plotter coins"},
	{"pools", "EPOCH", false, "staking pools of an epoch snapshot"},
	{"users", "EPOCH POOL", false, "users of one staking pool in an epoch snapshot"},
	{"top", "COUNT", false, "accounts receiving the most stake"},
	{"size", "", false, "estimated size of the coin records"},
}

func usage(program string) {
	fmt.Fprintf(os.Stderr, "usage: %s [--help] [--verbose] [--quiet] --config-file=FILE command [arguments...]\n", program)
	fmt.Fprintf(os.Stderr, "commands:\n")
	for _, c := range commands {
		fmt.Fprintf(os.Stderr, "  %-8s %-21s - %s\n", c.name, c.arguments, c.help)
	}
}

func isWriteCommand(name string) bool {
	for _, c := range commands {
		if c.name == name {
			return c.write
		}
	}
	return false
}

func processCommand(store *coinsdb.Store, blocksDB *storage.Database, arguments []string, shutdown <-chan struct{}, log *logger.L) error {

	name := arguments[0]
	arguments = arguments[1:]

	switch name {

	case "upgrade":
		u := &upgrader{store: store, log: log}
		err := runInBackground(u, shutdown)
		if nil != err {
			return err
		}
		printJson("upgrade", u)

	case "check":
		c := &checker{store: store}
		err := runInBackground(c, shutdown)
		if nil != err {
			return err
		}
		printJson("check", c)

	case "tip":
		return showTip(store, blocktree.New(blocksDB))

	case "balance":
		if 1 != len(arguments) {
			return fault.ErrMissingParameters
		}
		account, err := coin.NewAccountID(arguments[0])
		if nil != err {
			return err
		}
		request := coinsdb.BalanceRequest{
			BindPlotter:    true,
			PointSend:      true,
			PointReceive:   true,
			StakingSend:    true,
			StakingReceive: true,
		}
		balance, err := store.Balance(account, request, nil)
		if nil != err {
			return err
		}
		printJson(account.String(), balance)

	case "plotter":
		if len(arguments) < 1 || len(arguments) > 2 {
			return fault.ErrMissingParameters
		}
		plotterID, err := strconv.ParseUint(arguments[0], 10, 64)
		if nil != err {
			return err
		}
		var entries map[coin.OutPoint]coinsdb.BindPlotterInfo
		if 2 == len(arguments) {
			account, err := coin.NewAccountID(arguments[1])
			if nil != err {
				return err
			}
			entries, err = store.AccountBindPlotterEntries(account, plotterID)
			if nil != err {
				return err
			}
		} else {
			entries, err = store.BindPlotterEntries(plotterID)
			if nil != err {
				return err
			}
		}
		display := make(map[string]coinsdb.BindPlotterInfo, len(entries))
		for o, info := range entries {
			display[o.String()] = info
		}
		printJson("plotter", display)

	case "pools":
		if 1 != len(arguments) {
			return fault.ErrMissingParameters
		}
		epoch, err := chainhash.NewHashFromStr(arguments[0])
		if nil != err {
			return err
		}
		pools, err := store.StakingPools(*epoch)
		if nil != err {
			return err
		}
		display := make([]poolInfo, len(pools))
		for i, p := range pools {
			display[i] = poolInfo{
				PoolID:      p.PoolID,
				Genesis:     p.Genesis.String(),
				StakeAmount: p.StakeAmount,
			}
		}
		printJson("pools", display)

	case "users":
		if 2 != len(arguments) {
			return fault.ErrMissingParameters
		}
		epoch, err := chainhash.NewHashFromStr(arguments[0])
		if nil != err {
			return err
		}
		pool, err := coin.NewAccountID(arguments[1])
		if nil != err {
			return err
		}
		users, err := store.StakingPoolUsers(*epoch, pool)
		if nil != err {
			return err
		}
		printJson("users", users)

	case "top":
		if 1 != len(arguments) {
			return fault.ErrMissingParameters
		}
		n, err := strconv.Atoi(arguments[0])
		if nil != err {
			return err
		}
		top, err := store.TopStakingAccounts(n, nil)
		if nil != err {
			return err
		}
		printJson("top", top)

	case "size":
		size, err := store.EstimateSize()
		if nil != err {
			return err
		}
		fmt.Printf("coin records: %d bytes\n", size)

	default:
		return fault.ErrUnknownCommand
	}
	return nil
}

type poolInfo struct {
	PoolID      coin.AccountID `json:"poolId"`
	Genesis     string         `json:"genesis"`
	StakeAmount uint64         `json:"stakeAmount,string"`
}

type tipInfo struct {
	State   string `json:"state"`
	Tip     string `json:"tip,omitempty"`
	Height  uint32 `json:"height,omitempty"`
	NewTip  string `json:"newTip,omitempty"`
	PrevTip string `json:"prevTip,omitempty"`
}

func showTip(store *coinsdb.Store, tree *blocktree.Tree) error {
	state, err := store.TipState()
	if nil != err {
		return err
	}

	info := tipInfo{}
	switch st := state.(type) {
	case coinsdb.Clean:
		info.State = "clean"
		if (chainhash.Hash{}) != st.Tip {
			info.Tip = st.Tip.String()
			entry, err := tree.Entry(st.Tip)
			if nil == err {
				info.Height = entry.Height
			} else if !fault.IsErrNotFound(err) {
				return err
			}
		}
	case coinsdb.MidCommit:
		info.State = "interrupted commit"
		info.NewTip = st.NewTip.String()
		info.PrevTip = st.PrevTip.String()
	}
	printJson("tip", info)
	return nil
}

// run one scan, stopping it early on signal
func runInBackground(p background.Process, shutdown <-chan struct{}) error {
	processes := background.Start(background.Processes{p}, nil)

	done := make(chan struct{})
	go func() {
		processes.Wait()
		close(done)
	}()

	select {
	case <-done:
	case <-shutdown:
		processes.Stop()
	}

	if r, ok := p.(interface{ Err() error }); ok {
		return r.Err()
	}
	return nil
}

type upgrader struct {
	store    *coinsdb.Store
	log      *logger.L
	Upgraded bool `json:"upgraded"`
	err      error
}

func (u *upgrader) Run(args interface{}, shutdown <-chan struct{}) {
	u.Upgraded, u.err = u.store.Upgrade(shutdown, func(percent int) {
		u.log.Infof("upgrade: %d%%", percent)
		fmt.Fprintf(os.Stderr, "\rupgrade: %3d%%", percent)
		if 100 == percent {
			fmt.Fprintf(os.Stderr, "\n")
		}
	})
}

func (u *upgrader) Err() error {
	return u.err
}

type checker struct {
	store *coinsdb.Store
	Coins int `json:"coins"`
	err   error
}

func (c *checker) Run(args interface{}, shutdown <-chan struct{}) {
	c.Coins, c.err = c.store.CheckIndexes(shutdown)
}

func (c *checker) Err() error {
	return c.err
}
