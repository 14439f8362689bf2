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

package matching

import (
	"code.vegaprotocol.io/marketsim/core/types"
	"code.vegaprotocol.io/marketsim/libs/num"
	"code.vegaprotocol.io/marketsim/logging"
)

// OrderBook is the price-time priority book of a single product.
type OrderBook struct {
	log    *logging.Logger
	ticker string
	buy    *OrderBookSide
	sell   *OrderBookSide
	// ordersByID indexes the resting orders for O(1) cancellation lookup.
	ordersByID map[uint64]*types.Order
}

// NewOrderBook instantiates an empty book for the given ticker.
func NewOrderBook(log *logging.Logger, ticker string) *OrderBook {
	return &OrderBook{
		log:        log,
		ticker:     ticker,
		buy:        newSide(log, types.SideBuy),
		sell:       newSide(log, types.SideSell),
		ordersByID: map[uint64]*types.Order{},
	}
}

// SubmitOrder crosses the order against the opposite side and rests any
// remainder. It returns the trades and the resting orders fully filled in
// the process.
func (b *OrderBook) SubmitOrder(o *types.Order) ([]*types.Trade, []*types.Order) {
	opposite := b.sideFor(o.Side.Opposite())
	trades, filled := opposite.uncross(o)
	for _, f := range filled {
		delete(b.ordersByID, f.ID)
	}
	if o.Remaining > 0 {
		b.sideFor(o.Side).addOrder(o)
		b.ordersByID[o.ID] = o
	}
	return trades, filled
}

// CancelOrder removes a resting order by id. Unknown or already removed ids
// return ErrOrderNotFound, the book is left untouched.
func (b *OrderBook) CancelOrder(id uint64) (*types.Order, error) {
	o, ok := b.ordersByID[id]
	if !ok {
		return nil, types.ErrOrderNotFound
	}
	order, err := b.sideFor(o.Side).RemoveOrder(o)
	if err != nil {
		return nil, err
	}
	delete(b.ordersByID, id)
	return order, nil
}

// MidPrice returns the midpoint of the best bid and best ask, or false when
// either side of the book is empty.
func (b *OrderBook) MidPrice() (num.Decimal, bool) {
	bid, _, err := b.buy.BestPriceAndVolume()
	if err != nil {
		return num.DecimalZero(), false
	}
	ask, _, err := b.sell.BestPriceAndVolume()
	if err != nil {
		return num.DecimalZero(), false
	}
	two := num.DecimalFromInt64(2)
	return bid.Add(ask).Div(two), true
}

// Depth returns the read-only best-first view of both sides.
func (b *OrderBook) Depth() types.MarketDepth {
	return types.MarketDepth{
		Bids: b.buy.Entries(),
		Asks: b.sell.Entries(),
	}
}

func (b *OrderBook) sideFor(side types.Side) *OrderBookSide {
	if side == types.SideBuy {
		return b.buy
	}
	return b.sell
}
