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

// AnonymisedParty replaces a counterparty name in trades shown to player
// agents, AnonymisedOrderID the matching order id.
const (
	AnonymisedParty   = "anonymised"
	AnonymisedOrderID = uint64(0)
)

// Trade records a single match. Trades are appended to the engine trade log
// and never mutated; the price is always the resting entry's price.
type Trade struct {
	Ticker string
	Price  num.Decimal
	Size   uint64
	// Aggressor is the direction of the aggressive order.
	Aggressor        Side
	AggressorOrderID uint64
	AggressorParty   string
	RestingOrderID   uint64
	RestingParty     string
	// LoopNumber is the turn the trade happened in, SeqNum its position in
	// the run-wide trade log. Together they are the trade timestamp of this
	// clockless simulation.
	LoopNumber uint64
	SeqNum     uint64
}

// Clone returns an independent copy of the trade.
func (t *Trade) Clone() *Trade {
	cpy := *t
	return &cpy
}

// Anonymise redacts every identity in the trade that does not belong to the
// given party. The aggressor direction is always preserved.
func (t *Trade) Anonymise(party string) *Trade {
	cpy := t.Clone()
	if cpy.AggressorParty != party {
		cpy.AggressorParty = AnonymisedParty
		cpy.AggressorOrderID = AnonymisedOrderID
	}
	if cpy.RestingParty != party {
		cpy.RestingParty = AnonymisedParty
		cpy.RestingOrderID = AnonymisedOrderID
	}
	return cpy
}

func (t *Trade) String() string {
	return fmt.Sprintf("trade{ticker:%s price:%s size:%d aggressor:%s agg-party:%s rest-party:%s}",
		t.Ticker, t.Price.String(), t.Size, t.Aggressor, t.AggressorParty, t.RestingParty)
}
