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

// Package analytics estimates the final worth of a ledger after a run.
package analytics

import (
	"code.vegaprotocol.io/marketsim/core/positions"
	"code.vegaprotocol.io/marketsim/core/types"
	"code.vegaprotocol.io/marketsim/libs/num"

	"github.com/pkg/errors"
)

// ErrNoCloseOutPrice is returned when a residual position cannot be marked
// because the side it would trade against is empty.
var ErrNoCloseOutPrice = errors.New("no close-out price available")

// LadderParams describes the market maker quoting ladder used to estimate
// the market impact of closing a residual position.
type LadderParams struct {
	// LevelSpacing is the price distance between two quoted levels.
	LevelSpacing num.Decimal `json:"levelSpacing"`
	// LevelSize is the quoted size per level.
	LevelSize uint64 `json:"levelSize"`
}

// impactStep is how far the close-out walks the ladder per unit traded.
func (p LadderParams) impactStep() num.Decimal {
	return p.LevelSpacing.Div(num.DecimalFromUint64(p.LevelSize))
}

// CloseOutValue marks a ledger to market: cash plus the estimated proceeds
// of unwinding every residual position against the quoting ladder. The
// first unit trades at the touch, the last one impactStep away, and the
// whole position is valued at the average of the two.
func CloseOutValue(ledger *positions.Ledger, book types.BookSnapshot, ladders map[string]LadderParams) (num.Decimal, error) {
	cash := ledger.Cash()
	for ticker, pos := range ledger.Positions() {
		if pos == 0 {
			continue
		}
		ladder, ok := ladders[ticker]
		if !ok {
			return num.DecimalZero(), errors.Wrapf(ErrNoCloseOutPrice, "no ladder parameters for %s", ticker)
		}
		depth := book[ticker]

		var first num.Decimal
		if pos > 0 {
			ask, ok := depth.BestAsk()
			if !ok {
				return num.DecimalZero(), errors.Wrapf(ErrNoCloseOutPrice, "no asks for %s", ticker)
			}
			first = ask.Price
		} else {
			bid, ok := depth.BestBid()
			if !ok {
				return num.DecimalZero(), errors.Wrapf(ErrNoCloseOutPrice, "no bids for %s", ticker)
			}
			first = bid.Price
		}

		// selling walks the ladder down, buying back walks it up
		var worst num.Decimal
		if pos > 0 {
			worst = first.Sub(ladder.impactStep())
		} else {
			worst = first.Add(ladder.impactStep())
		}
		mark := first.Add(worst).Div(num.MustDecimalFromString("2"))
		cash = cash.Add(num.DecimalFromInt64(pos).Mul(mark))
	}
	return cash, nil
}
