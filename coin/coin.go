// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package coin

// Coin - an unspent transaction output
type Coin struct {
	Value    uint64
	Height   uint32
	Coinbase bool
	Owner    *AccountID // nil for outputs not paying to an account
	Payload  Payload    // nil for plain coins
}

// HasOwner - true if the coin pays to a non null account
func (c *Coin) HasOwner() bool {
	return nil != c && nil != c.Owner && !c.Owner.IsNull()
}

// OwnedBy - true if the coin pays to account
func (c *Coin) OwnedBy(account AccountID) bool {
	return c.HasOwner() && *c.Owner == account
}

// BindPlotter - payload as bind plotter, nil otherwise
func (c *Coin) BindPlotter() *BindPlotter {
	if nil == c {
		return nil
	}
	p, _ := c.Payload.(*BindPlotter)
	return p
}

// Point - payload as point, nil otherwise
func (c *Coin) Point() *Point {
	if nil == c {
		return nil
	}
	p, _ := c.Payload.(*Point)
	return p
}

// Staking - payload as staking, nil otherwise
func (c *Coin) Staking() *Staking {
	if nil == c {
		return nil
	}
	p, _ := c.Payload.(*Staking)
	return p
}

// Equal - deep comparison
func (c *Coin) Equal(other *Coin) bool {
	if nil == c || nil == other {
		return c == other
	}
	if c.Value != other.Value || c.Height != other.Height || c.Coinbase != other.Coinbase {
		return false
	}
	if c.HasOwner() != other.HasOwner() {
		return false
	}
	if c.HasOwner() && *c.Owner != *other.Owner {
		return false
	}
	return payloadEqual(c.Payload, other.Payload)
}

func payloadEqual(a Payload, b Payload) bool {
	switch pa := a.(type) {
	case nil:
		return nil == b
	case *BindPlotter:
		pb, ok := b.(*BindPlotter)
		return ok && *pa == *pb
	case *Point:
		pb, ok := b.(*Point)
		return ok && *pa == *pb
	case *Staking:
		pb, ok := b.(*Staking)
		return ok && *pa == *pb
	default:
		return false
	}
}
