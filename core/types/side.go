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

// Side is the direction of an order, buy or sell.
type Side int8

const (
	SideUnspecified Side = iota
	SideBuy
	SideSell
)

// Sign maps the side onto the signed position/cash convention:
// +1 for a buy, -1 for a sell.
func (s Side) Sign() int64 {
	switch s {
	case SideBuy:
		return 1
	case SideSell:
		return -1
	}
	return 0
}

// Opposite returns the other side of the book.
func (s Side) Opposite() Side {
	switch s {
	case SideBuy:
		return SideSell
	case SideSell:
		return SideBuy
	}
	return SideUnspecified
}

func (s Side) String() string {
	switch s {
	case SideBuy:
		return "Buy"
	case SideSell:
		return "Sell"
	}
	return "Unspecified"
}
