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

	"github.com/pkg/errors"
)

// Engine owns one order book per product and routes submissions and
// cancellations. It also owns the run-wide immutable trade log.
type Engine struct {
	Config
	log *logging.Logger

	books map[string]*OrderBook
	// tickers keeps a deterministic iteration order over the books.
	tickers []string

	// seenIDs remembers every order id ever submitted; reuse is a caller bug.
	seenIDs map[uint64]struct{}
	// location routes a resting order id to its book for cancellation.
	location map[uint64]string

	trades []*types.Trade
}

// NewEngine instantiates the matching engine with no books.
func NewEngine(log *logging.Logger, config Config) *Engine {
	log = log.Named(namedLogger)
	log.SetLevel(config.Level.Get())
	return &Engine{
		Config:   config,
		log:      log,
		books:    map[string]*OrderBook{},
		seenIDs:  map[uint64]struct{}{},
		location: map[uint64]string{},
	}
}

// CreateBook opens an empty book for the ticker, a no-op if it exists.
func (e *Engine) CreateBook(ticker string) {
	if _, exists := e.books[ticker]; exists {
		return
	}
	e.books[ticker] = NewOrderBook(e.log, ticker)
	e.tickers = append(e.tickers, ticker)
}

// SubmitOrder validates id uniqueness, crosses the order and rests any
// remainder. The returned trades carry the loop number and their position in
// the trade log.
func (e *Engine) SubmitOrder(loop uint64, o *types.Order) ([]*types.Trade, error) {
	book, ok := e.books[o.Ticker]
	if !ok {
		return nil, errors.Wrapf(types.ErrUnknownProduct, "ticker %s", o.Ticker)
	}
	if _, seen := e.seenIDs[o.ID]; seen {
		return nil, errors.Wrapf(types.ErrDuplicateOrderID, "id %d", o.ID)
	}
	e.seenIDs[o.ID] = struct{}{}

	trades, filled := book.SubmitOrder(o)
	for _, f := range filled {
		delete(e.location, f.ID)
	}
	if o.Remaining > 0 {
		e.location[o.ID] = o.Ticker
	}

	for _, t := range trades {
		t.LoopNumber = loop
		t.SeqNum = uint64(len(e.trades))
		e.trades = append(e.trades, t)
	}

	if bool(e.LogOrderSubmitDebug) && e.log.IsDebug() {
		e.log.Debug("order submitted",
			logging.OrderID(o.ID),
			logging.Ticker(o.Ticker),
			logging.Party(o.Party),
			logging.Uint64("remaining", o.Remaining),
			logging.Int("trades", len(trades)))
	}
	return trades, nil
}

// CancelOrder removes the resting order with the given id. Unknown ids are
// tolerated and reported as false.
func (e *Engine) CancelOrder(id uint64) bool {
	ticker, ok := e.location[id]
	if !ok {
		return false
	}
	if _, err := e.books[ticker].CancelOrder(id); err != nil {
		// the location index and the book disagree, that is a bug
		e.log.Panic("resting order index out of sync",
			logging.OrderID(id),
			logging.Ticker(ticker),
			logging.Error(err))
	}
	delete(e.location, id)
	if bool(e.LogOrderCancelDebug) && e.log.IsDebug() {
		e.log.Debug("order cancelled", logging.OrderID(id), logging.Ticker(ticker))
	}
	return true
}

// MidPrice returns the mid of the ticker's book, or false when the ticker is
// unknown or either side is unquoted.
func (e *Engine) MidPrice(ticker string) (num.Decimal, bool) {
	book, ok := e.books[ticker]
	if !ok {
		return num.DecimalZero(), false
	}
	return book.MidPrice()
}

// BookSnapshot returns the read-only per-product view of all books,
// best-first on both sides.
func (e *Engine) BookSnapshot() types.BookSnapshot {
	snap := make(types.BookSnapshot, len(e.tickers))
	for _, ticker := range e.tickers {
		snap[ticker] = e.books[ticker].Depth()
	}
	return snap
}

// TradeLog returns the append-only log of all trades of the run.
func (e *Engine) TradeLog() []*types.Trade {
	return e.trades
}
