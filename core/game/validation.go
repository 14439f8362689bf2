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

import (
	"code.vegaprotocol.io/marketsim/core/types"

	"github.com/pkg/errors"
)

// validateOrder checks one order intent against its product. A failed check
// must leave book and ledgers untouched, so every check runs before any
// engine call.
func (g *Game) validateOrder(party string, order *types.Order) error {
	if order == nil || order.Size == 0 {
		return types.ErrInvalidOrderSize
	}
	product, ok := g.byTicker[order.Ticker]
	if !ok {
		return errors.Wrapf(types.ErrUnknownProduct, "ticker %s", order.Ticker)
	}
	if !product.OnTick(order.Price) {
		return errors.Wrapf(types.ErrTickSizeViolation,
			"order %d price %s is not a multiple of %s", order.ID, order.Price.String(), product.TickSize.String())
	}
	if !product.InBounds(order.Price) {
		return errors.Wrapf(types.ErrPriceOutOfBounds,
			"order %d price %s", order.ID, order.Price.String())
	}
	return g.checkPositionLimit(party, order)
}

// checkPositionLimit is an extension point. Soft mode admits everything,
// hard mode rejects everything; exempt agents bypass the check in both
// modes.
func (g *Game) checkPositionLimit(party string, order *types.Order) error {
	if _, exempt := g.exemptNames[party]; exempt {
		return nil
	}
	if g.limitMode == PositionLimitHard {
		return errors.Wrapf(types.ErrPositionLimitExceeded, "order %d", order.ID)
	}
	return nil
}

// validateConversion is a stub: every conversion request is accepted.
func (g *Game) validateConversion(req *types.ConversionRequest) bool {
	return true
}
