// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package background_test

import (
	"fmt"

	"github.com/qitcoin/coinsdb/background"
)

type job struct {
	name string
}

func (j *job) Run(args interface{}, shutdown <-chan struct{}) {
	fmt.Printf("%s: %v\n", j.name, args)
}

func Example() {
	p := background.Start(background.Processes{&job{name: "upgrade"}}, "coins")
	p.Wait()

	// Output:
	// upgrade: coins
}
