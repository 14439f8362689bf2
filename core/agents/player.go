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

package agents

import (
	"code.vegaprotocol.io/marketsim/core/idgeneration"
	"code.vegaprotocol.io/marketsim/core/types"
	"code.vegaprotocol.io/marketsim/libs/num"
)

// WatcherPlayer is the reference player implementation: it records the mid
// price series it observes and never trades. Evaluated strategies replace
// it with their own Player implementation.
type WatcherPlayer struct {
	name     string
	products []*types.Product
	seq      *idgeneration.Sequence

	mids map[string][]num.Decimal
}

// NewWatcherPlayer creates a passive player for the given products.
func NewWatcherPlayer(name string, products []*types.Product) *WatcherPlayer {
	mids := make(map[string][]num.Decimal, len(products))
	for _, p := range products {
		mids[p.Ticker] = nil
	}
	return &WatcherPlayer{
		name:     name,
		products: products,
		mids:     mids,
	}
}

func (w *WatcherPlayer) Name() string {
	return w.name
}

func (w *WatcherPlayer) SetIDSequence(seq *idgeneration.Sequence) {
	w.seq = seq
}

func (w *WatcherPlayer) ActTurn(book types.BookSnapshot) []types.Message {
	for _, p := range w.products {
		if mid, ok := book[p.Ticker].Mid(); ok {
			w.mids[p.Ticker] = append(w.mids[p.Ticker], mid)
		}
	}
	return nil
}

func (w *WatcherPlayer) ProcessTrades(trades []*types.Trade) {}

// Mids returns the mid price series observed for ticker so far.
func (w *WatcherPlayer) Mids(ticker string) []num.Decimal {
	return w.mids[ticker]
}
