// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package chain

// names of all chains
const (
	Qitcoin = "qitcoin"
	Testing = "testing"
	Local   = "local"
)

// Names - every chain with parameters, main chain first
func Names() []string {
	return []string{Qitcoin, Testing, Local}
}

// Valid - true if ParamsFor accepts the name
func Valid(name string) bool {
	for _, n := range Names() {
		if n == name {
			return true
		}
	}
	return false
}
