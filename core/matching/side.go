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
	"sort"

	"code.vegaprotocol.io/marketsim/core/types"
	"code.vegaprotocol.io/marketsim/libs/num"
	"code.vegaprotocol.io/marketsim/logging"

	"github.com/pkg/errors"
)

// crossTolerance absorbs tick-grid representation noise when deciding
// whether a resting price crosses an aggressive order.
var crossTolerance = num.MustDecimalFromString("0.000001")

// ErrNoOrdersOnSide signals an empty book side when asking for the best price.
var ErrNoOrdersOnSide = errors.New("no orders on the book side")

// OrderBookSide represents one side of a book, either buy or sell. Levels are
// kept sorted with the best level at the end of the slice: ascending prices
// for buys, descending for sells. Within a level orders queue FIFO, which
// together gives non-increasing aggressiveness with arrival order preserved.
type OrderBookSide struct {
	log    *logging.Logger
	side   types.Side
	levels []*PriceLevel
}

func newSide(log *logging.Logger, side types.Side) *OrderBookSide {
	return &OrderBookSide{
		log:    log,
		side:   side,
		levels: []*PriceLevel{},
	}
}

func (s *OrderBookSide) addOrder(o *types.Order) {
	s.getPriceLevel(o.Price).addOrder(o)
}

// BestPriceAndVolume returns the top of book price and volume,
// or an error if the side is empty.
func (s *OrderBookSide) BestPriceAndVolume() (num.Decimal, uint64, error) {
	if len(s.levels) == 0 {
		return num.DecimalZero(), 0, ErrNoOrdersOnSide
	}
	best := s.levels[len(s.levels)-1]
	return best.price, best.volume, nil
}

// RemoveOrder removes the given resting order from the side.
func (s *OrderBookSide) RemoveOrder(o *types.Order) (*types.Order, error) {
	// first locate the price level of the order
	i := s.levelIndex(o.Price)
	if i >= len(s.levels) || !s.levels[i].price.Equal(o.Price) {
		return nil, types.ErrOrderNotFound
	}

	// a level can hold several orders, scan for the matching id
	oidx := -1
	for idx, order := range s.levels[i].orders {
		if order.ID == o.ID {
			oidx = idx
			break
		}
	}
	if oidx == -1 {
		return nil, types.ErrOrderNotFound
	}

	order := s.levels[i].orders[oidx]
	s.levels[i].removeOrder(oidx)
	if len(s.levels[i].orders) == 0 {
		s.levels = s.levels[:i+copy(s.levels[i:], s.levels[i+1:])]
	}
	return order, nil
}

// uncross trades the aggressor against this side, best level first, stopping
// at the first level that no longer crosses. Returns the trades and the fully
// filled resting orders removed from the side.
func (s *OrderBookSide) uncross(agg *types.Order) ([]*types.Trade, []*types.Order) {
	var (
		trades []*types.Trade
		filled []*types.Order
	)
	for agg.Remaining > 0 && len(s.levels) > 0 {
		best := s.levels[len(s.levels)-1]
		if !s.crosses(best.price, agg.Price) {
			break
		}
		lvlTrades, lvlFilled := best.uncross(agg)
		trades = append(trades, lvlTrades...)
		filled = append(filled, lvlFilled...)
		if len(best.orders) == 0 {
			s.levels[len(s.levels)-1] = nil
			s.levels = s.levels[:len(s.levels)-1]
		}
	}
	return trades, filled
}

// crosses reports whether a resting level at levelPrice trades against an
// aggressive order limited at aggPrice. A buy crosses resting asks at or
// below its limit, a sell crosses resting bids at or above it, both within
// the tick tolerance.
func (s *OrderBookSide) crosses(levelPrice, aggPrice num.Decimal) bool {
	if s.side == types.SideSell {
		return levelPrice.LessThanOrEqual(aggPrice.Add(crossTolerance))
	}
	return levelPrice.GreaterThanOrEqual(aggPrice.Sub(crossTolerance))
}

// Entries exposes the resting orders of the side best-first, as read-only
// book entries for snapshots.
func (s *OrderBookSide) Entries() []types.BookEntry {
	entries := make([]types.BookEntry, 0, len(s.levels))
	for i := len(s.levels) - 1; i >= 0; i-- {
		for _, o := range s.levels[i].orders {
			entries = append(entries, types.BookEntry{
				OrderID: o.ID,
				Party:   o.Party,
				Price:   o.Price,
				Size:    o.Remaining,
			})
		}
	}
	return entries
}

// levelIndex returns the slice position where a level with the given price
// sits, or should be inserted.
func (s *OrderBookSide) levelIndex(price num.Decimal) int {
	if s.side == types.SideBuy {
		// buy side levels are ordered ascending
		return sort.Search(len(s.levels), func(i int) bool { return s.levels[i].price.GreaterThanOrEqual(price) })
	}
	// sell side levels are ordered descending
	return sort.Search(len(s.levels), func(i int) bool { return s.levels[i].price.LessThanOrEqual(price) })
}

func (s *OrderBookSide) getPriceLevel(price num.Decimal) *PriceLevel {
	i := s.levelIndex(price)
	if i < len(s.levels) && s.levels[i].price.Equal(price) {
		return s.levels[i]
	}

	// insert a new level, keeping the slice sorted
	level := NewPriceLevel(price)
	s.levels = append(s.levels, nil)
	copy(s.levels[i+1:], s.levels[i:])
	s.levels[i] = level
	return level
}
