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

import "errors"

var (
	// ErrDuplicateOrderID means an order id was submitted twice. Ids are
	// caller-assigned from disjoint ranges, so this is a programming error
	// and fatal to the run.
	ErrDuplicateOrderID = errors.New("duplicate order id")

	// ErrTickSizeViolation rejects an order priced off the tick grid.
	ErrTickSizeViolation = errors.New("order price is not a multiple of the tick size")

	// ErrPriceOutOfBounds rejects an order priced outside the product bounds.
	ErrPriceOutOfBounds = errors.New("order price is outside the product price bounds")

	// ErrPositionLimitExceeded rejects an order under the position limit
	// policy in force.
	ErrPositionLimitExceeded = errors.New("order would exceed the position limit")

	// ErrInvalidOrderSize rejects a zero-size order.
	ErrInvalidOrderSize = errors.New("order size must be positive")

	// ErrUnknownProduct rejects an order for a ticker with no book.
	ErrUnknownProduct = errors.New("unknown product")

	// ErrOrderNotFound signals a cancellation for an id that is not resting.
	ErrOrderNotFound = errors.New("order not found")
)
