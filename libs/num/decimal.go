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

package num

import (
	"github.com/shopspring/decimal"
)

// Decimal is the numeric type used for all prices, cash balances and market
// state values. Sizes remain plain integers.
type Decimal = decimal.Decimal

var (
	dzero = decimal.Zero
	d1    = decimal.NewFromInt(1)
)

func DecimalZero() Decimal {
	return dzero
}

func DecimalOne() Decimal {
	return d1
}

func DecimalFromFloat(f float64) Decimal {
	return decimal.NewFromFloat(f)
}

func DecimalFromInt64(i int64) Decimal {
	return decimal.NewFromInt(i)
}

func DecimalFromUint64(u uint64) Decimal {
	return decimal.NewFromInt(int64(u))
}

func DecimalFromString(s string) (Decimal, error) {
	return decimal.NewFromString(s)
}

func MustDecimalFromString(s string) Decimal {
	d, err := DecimalFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

// MaxD returns the largest of the two decimals.
func MaxD(a, b Decimal) Decimal {
	if a.GreaterThan(b) {
		return a
	}
	return b
}

// MinD returns the smallest of the two decimals.
func MinD(a, b Decimal) Decimal {
	if a.LessThan(b) {
		return a
	}
	return b
}

// ClampD bounds v to the [min, max] interval.
func ClampD(v, min, max Decimal) Decimal {
	if v.LessThan(min) {
		return min
	}
	if v.GreaterThan(max) {
		return max
	}
	return v
}
