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
	"code.vegaprotocol.io/marketsim/libs/num"
)

// tickTolerance absorbs representation noise when checking that a price sits
// on the tick grid.
var tickTolerance = num.MustDecimalFromString("0.000001")

// Product is the static metadata of one tradable instrument. Products are
// immutable after creation; validation and price rounding consult them.
type Product struct {
	Ticker string
	// TickSize is the minimum price variation, every order price must be an
	// integer multiple of it.
	TickSize num.Decimal
	LotSize  uint64
	MinPrice num.Decimal
	// MaxPrice of zero means no upper bound.
	MaxPrice num.Decimal
	// PositionLimit is the per-product cap carried from the scenario. The
	// orchestrator's stub policy ignores the magnitude: hard mode rejects
	// every non-exempt order, soft mode admits everything.
	PositionLimit uint64
	// Conversions maps a target ticker to the conversion ratio, consulted by
	// the external conversion collaborator.
	Conversions map[string]num.Decimal
}

// NewProduct creates a product with the minimal mandatory metadata.
func NewProduct(ticker string, tickSize num.Decimal) *Product {
	return &Product{
		Ticker:      ticker,
		TickSize:    tickSize,
		LotSize:     1,
		MinPrice:    num.DecimalZero(),
		Conversions: map[string]num.Decimal{},
	}
}

// SnapToTick rounds the price to the nearest multiple of the tick size.
func (p *Product) SnapToTick(price num.Decimal) num.Decimal {
	return price.Div(p.TickSize).Round(0).Mul(p.TickSize)
}

// OnTick reports whether the price is an integer multiple of the tick size,
// within tolerance.
func (p *Product) OnTick(price num.Decimal) bool {
	ratio := price.Div(p.TickSize)
	return ratio.Sub(ratio.Round(0)).Abs().LessThanOrEqual(tickTolerance)
}

// InBounds reports whether the price sits inside the product price bounds.
func (p *Product) InBounds(price num.Decimal) bool {
	if price.LessThan(p.MinPrice) {
		return false
	}
	if !p.MaxPrice.IsZero() && price.GreaterThan(p.MaxPrice) {
		return false
	}
	return true
}

func (p *Product) String() string {
	return p.Ticker
}
