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
	"math/rand"

	"code.vegaprotocol.io/marketsim/core/types"
	"code.vegaprotocol.io/marketsim/libs/num"
)

// Per-ticker parameter lookups with a fallback default, scenario files only
// need to list the tickers they tune.

func decimalParam(m map[string]num.Decimal, ticker string, def num.Decimal) num.Decimal {
	if v, ok := m[ticker]; ok {
		return v
	}
	return def
}

func uintParam(m map[string]uint64, ticker string, def uint64) uint64 {
	if v, ok := m[ticker]; ok {
		return v
	}
	return def
}

func floatParam(m map[string]float64, ticker string, def float64) float64 {
	if v, ok := m[ticker]; ok {
		return v
	}
	return def
}

// pickSide draws a direction from a two-outcome weighted choice where the
// buy weight and its complement always sum to one. Weights outside [0, 1]
// saturate into an unconditional pick.
func pickSide(rng *rand.Rand, buyWeight num.Decimal) types.Side {
	w, _ := buyWeight.Float64()
	if rng.Float64() < w {
		return types.SideBuy
	}
	return types.SideSell
}

// sampleExponentialSize draws an order size from an exponential distribution
// whose mean shrinks as the spread (in ticks) widens, capped at maxSize and
// floored at one unit.
func sampleExponentialSize(rng *rand.Rand, factor, spreadTicks num.Decimal, maxSize uint64) uint64 {
	floor := num.MustDecimalFromString("0.000001")
	mean := factor.Div(num.MaxD(spreadTicks, floor))
	mean = num.MinD(mean, num.DecimalFromUint64(maxSize))
	m, _ := mean.Float64()
	size := int64(rng.ExpFloat64() * m)
	if size < 1 {
		return 1
	}
	return uint64(size)
}

// sampleNormalSize draws an order size from a normal distribution, floored
// at one unit.
func sampleNormalSize(rng *rand.Rand, mean, stddev float64) uint64 {
	size := int64(rng.NormFloat64()*stddev + mean)
	if size < 1 {
		return 1
	}
	return uint64(size)
}
