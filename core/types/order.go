// Copyright (C) 2023 Gobalsky Labs Limited
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as
// published by the Free Software Foundation, either version 3 of the
// License, or (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU Affero General Public License for more details.
//
// You should have received a copy of the GNU Affero General Public License
// along with this program.  If not, see <http://www.gnu.org/licenses/>.

package types

import (
	"fmt"

	"code.vegaprotocol.io/marketsim/libs/num"
)

// Order is a limit order intent emitted by an agent. Once submitted, any
// unmatched remainder rests on the book, so the same struct doubles as the
// resting entry with Remaining tracking the open size.
type Order struct {
	ID     uint64
	Ticker string
	Party  string
	Side   Side
	Price  num.Decimal
	// Size is the original order size, Remaining the still-open portion.
	Size      uint64
	Remaining uint64
}

// NewOrder builds an order intent with Remaining primed to the full size.
func NewOrder(id uint64, ticker, party string, side Side, price num.Decimal, size uint64) *Order {
	return &Order{
		ID:        id,
		Ticker:    ticker,
		Party:     party,
		Side:      side,
		Price:     price,
		Size:      size,
		Remaining: size,
	}
}

// Aggressiveness is the signed ranking value used to order a book side:
// the price for a buy, the negated price for a sell. Higher sorts first.
func (o *Order) Aggressiveness() num.Decimal {
	if o.Side == SideSell {
		return o.Price.Neg()
	}
	return o.Price
}

// Clone returns an independent copy of the order.
func (o *Order) Clone() *Order {
	cpy := *o
	return &cpy
}

func (o *Order) String() string {
	return fmt.Sprintf("order{id:%d ticker:%s party:%s side:%s price:%s size:%d remaining:%d}",
		o.ID, o.Ticker, o.Party, o.Side, o.Price.String(), o.Size, o.Remaining)
}

// BookEntry is the read-only view of a resting order exposed to agents and
// display collaborators through book snapshots.
type BookEntry struct {
	OrderID uint64
	Party   string
	Price   num.Decimal
	Size    uint64
}

// MarketDepth lists the resting entries of one product, best-first on both
// sides.
type MarketDepth struct {
	Bids []BookEntry
	Asks []BookEntry
}

// BestBid returns the most aggressive bid, if any.
func (d MarketDepth) BestBid() (BookEntry, bool) {
	if len(d.Bids) == 0 {
		return BookEntry{}, false
	}
	return d.Bids[0], true
}

// BestAsk returns the most aggressive ask, if any.
func (d MarketDepth) BestAsk() (BookEntry, bool) {
	if len(d.Asks) == 0 {
		return BookEntry{}, false
	}
	return d.Asks[0], true
}

// Mid returns the average of best bid and best ask, and false when either
// side is empty.
func (d MarketDepth) Mid() (num.Decimal, bool) {
	bid, okBid := d.BestBid()
	ask, okAsk := d.BestAsk()
	if !okBid || !okAsk {
		return num.DecimalZero(), false
	}
	two := num.DecimalFromInt64(2)
	return bid.Price.Add(ask.Price).Div(two), true
}

// BookSnapshot is the per-product read-only view of the whole exchange.
type BookSnapshot map[string]MarketDepth
