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

package game

import "code.vegaprotocol.io/marketsim/core/types"

// anonymiseTrades redacts every identity not belonging to the party. The
// originals stay untouched, house agents observe them unredacted.
func anonymiseTrades(trades []*types.Trade, party string) []*types.Trade {
	out := make([]*types.Trade, 0, len(trades))
	for _, t := range trades {
		out = append(out, t.Anonymise(party))
	}
	return out
}

// anonymiseSnapshot redacts the owner and order id of every resting entry
// that does not belong to the party. Prices and sizes are public.
func anonymiseSnapshot(snap types.BookSnapshot, party string) types.BookSnapshot {
	out := make(types.BookSnapshot, len(snap))
	for ticker, depth := range snap {
		out[ticker] = types.MarketDepth{
			Bids: anonymiseSide(depth.Bids, party),
			Asks: anonymiseSide(depth.Asks, party),
		}
	}
	return out
}

func anonymiseSide(entries []types.BookEntry, party string) []types.BookEntry {
	out := make([]types.BookEntry, len(entries))
	for i, e := range entries {
		if e.Party != party {
			e.Party = types.AnonymisedParty
			e.OrderID = types.AnonymisedOrderID
		}
		out[i] = e
	}
	return out
}
