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

package types_test

import (
	"testing"

	"code.vegaprotocol.io/marketsim/core/types"
	"code.vegaprotocol.io/marketsim/libs/num"

	"github.com/stretchr/testify/assert"
)

func d(s string) num.Decimal {
	return num.MustDecimalFromString(s)
}

func TestSnapToTick(t *testing.T) {
	p := types.NewProduct("UEC", d("0.1"))

	assert.True(t, p.SnapToTick(d("100.04")).Equal(d("100")))
	assert.True(t, p.SnapToTick(d("100.06")).Equal(d("100.1")))
	assert.True(t, p.SnapToTick(d("100.1")).Equal(d("100.1")))
	assert.True(t, p.SnapToTick(d("0.04")).Equal(d("0")))
}

func TestOnTick(t *testing.T) {
	p := types.NewProduct("UEC", d("0.1"))

	assert.True(t, p.OnTick(d("100")))
	assert.True(t, p.OnTick(d("100.1")))
	assert.False(t, p.OnTick(d("100.05")))
	// within the comparison tolerance still counts as on tick
	assert.True(t, p.OnTick(d("100.10000001")))
}

func TestInBounds(t *testing.T) {
	p := types.NewProduct("UEC", d("0.1"))
	p.MinPrice = d("10")
	p.MaxPrice = d("1000")

	assert.True(t, p.InBounds(d("10")))
	assert.True(t, p.InBounds(d("500")))
	assert.True(t, p.InBounds(d("1000")))
	assert.False(t, p.InBounds(d("9.9")))
	assert.False(t, p.InBounds(d("1000.1")))

	t.Run("zero max price means unbounded above", func(t *testing.T) {
		open := types.NewProduct("UEC", d("0.1"))
		assert.True(t, open.InBounds(d("1000000")))
		assert.False(t, open.InBounds(d("-0.1")))
	})
}

func TestAggressiveness(t *testing.T) {
	buy := types.NewOrder(1, "UEC", "a", types.SideBuy, d("100"), 1)
	sell := types.NewOrder(2, "UEC", "a", types.SideSell, d("100"), 1)

	assert.True(t, buy.Aggressiveness().Equal(d("100")))
	assert.True(t, sell.Aggressiveness().Equal(d("-100")))
}

func TestTradeAnonymise(t *testing.T) {
	trade := &types.Trade{
		Ticker:           "UEC",
		Price:            d("100"),
		Size:             5,
		Aggressor:        types.SideBuy,
		AggressorOrderID: 11,
		AggressorParty:   "whale",
		RestingOrderID:   22,
		RestingParty:     "player",
	}

	t.Run("own side preserved, counterparty redacted", func(t *testing.T) {
		anon := trade.Anonymise("player")
		assert.Equal(t, types.AnonymisedParty, anon.AggressorParty)
		assert.Equal(t, types.AnonymisedOrderID, anon.AggressorOrderID)
		assert.Equal(t, "player", anon.RestingParty)
		assert.EqualValues(t, 22, anon.RestingOrderID)
		assert.Equal(t, types.SideBuy, anon.Aggressor)
	})

	t.Run("third party trades fully redacted", func(t *testing.T) {
		anon := trade.Anonymise("someone-else")
		assert.Equal(t, types.AnonymisedParty, anon.AggressorParty)
		assert.Equal(t, types.AnonymisedParty, anon.RestingParty)
		assert.Equal(t, types.AnonymisedOrderID, anon.AggressorOrderID)
		assert.Equal(t, types.AnonymisedOrderID, anon.RestingOrderID)
	})

	t.Run("original untouched", func(t *testing.T) {
		trade.Anonymise("nobody")
		assert.Equal(t, "whale", trade.AggressorParty)
		assert.Equal(t, "player", trade.RestingParty)
	})
}
