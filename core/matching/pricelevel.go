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
)

// PriceLevel holds the resting orders at a single price, in strict arrival
// order. Orders at equal aggressiveness therefore trade FIFO.
type PriceLevel struct {
	price  num.Decimal
	orders []*types.Order
	volume uint64
}

// NewPriceLevel instantiates a new empty price level for the given price.
func NewPriceLevel(price num.Decimal) *PriceLevel {
	return &PriceLevel{
		price:  price,
		orders: []*types.Order{},
	}
}

func (l *PriceLevel) addOrder(o *types.Order) {
	l.orders = append(l.orders, o)
	l.volume += o.Remaining
}

func (l *PriceLevel) removeOrder(index int) {
	l.volume -= l.orders[index].Remaining
	copy(l.orders[index:], l.orders[index+1:])
	l.orders[len(l.orders)-1] = nil
	l.orders = l.orders[:len(l.orders)-1]
}

// uncross consumes resting orders FIFO against the aggressor until either the
// aggressor or the level is exhausted. Trades are priced at the level price,
// never at the aggressor's limit. It returns the trades and the resting
// orders that were fully filled and removed.
func (l *PriceLevel) uncross(agg *types.Order) ([]*types.Trade, []*types.Order) {
	var (
		trades []*types.Trade
		filled []*types.Order
	)
	for agg.Remaining > 0 && len(l.orders) > 0 {
		resting := l.orders[0]
		size := agg.Remaining
		if resting.Remaining < size {
			size = resting.Remaining
		}

		trades = append(trades, &types.Trade{
			Ticker:           agg.Ticker,
			Price:            l.price,
			Size:             size,
			Aggressor:        agg.Side,
			AggressorOrderID: agg.ID,
			AggressorParty:   agg.Party,
			RestingOrderID:   resting.ID,
			RestingParty:     resting.Party,
		})

		agg.Remaining -= size
		resting.Remaining -= size
		l.volume -= size

		if resting.Remaining == 0 {
			filled = append(filled, resting)
			copy(l.orders, l.orders[1:])
			l.orders[len(l.orders)-1] = nil
			l.orders = l.orders[:len(l.orders)-1]
		}
	}
	return trades, filled
}
