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

package matching_test

import (
	"testing"

	"code.vegaprotocol.io/marketsim/core/matching"
	"code.vegaprotocol.io/marketsim/core/types"
	"code.vegaprotocol.io/marketsim/libs/num"
	"code.vegaprotocol.io/marketsim/logging"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testTicker = "UEC"

func getTestEngine(t *testing.T) *matching.Engine {
	t.Helper()
	engine := matching.NewEngine(logging.NewTestLogger(), matching.NewDefaultConfig())
	engine.CreateBook(testTicker)
	return engine
}

func price(t *testing.T, s string) num.Decimal {
	t.Helper()
	d, err := num.DecimalFromString(s)
	require.NoError(t, err)
	return d
}

func TestSubmitOrderFIFOAtSamePrice(t *testing.T) {
	engine := getTestEngine(t)

	_, err := engine.SubmitOrder(0, types.NewOrder(1, testTicker, "sellerA", types.SideSell, price(t, "100"), 10))
	require.NoError(t, err)
	_, err = engine.SubmitOrder(0, types.NewOrder(2, testTicker, "sellerB", types.SideSell, price(t, "100"), 10))
	require.NoError(t, err)

	trades, err := engine.SubmitOrder(0, types.NewOrder(3, testTicker, "buyer", types.SideBuy, price(t, "100"), 15))
	require.NoError(t, err)
	require.Len(t, trades, 2)

	// time priority: the earlier resting order fills first and fully
	assert.EqualValues(t, 1, trades[0].RestingOrderID)
	assert.EqualValues(t, 10, trades[0].Size)
	assert.EqualValues(t, 2, trades[1].RestingOrderID)
	assert.EqualValues(t, 5, trades[1].Size)
	for _, tr := range trades {
		assert.True(t, tr.Price.Equal(price(t, "100")))
		assert.Equal(t, types.SideBuy, tr.Aggressor)
		assert.Equal(t, "buyer", tr.AggressorParty)
	}

	// the second sell remains with the unmatched 5 units
	depth := engine.BookSnapshot()[testTicker]
	require.Len(t, depth.Asks, 1)
	assert.EqualValues(t, 2, depth.Asks[0].OrderID)
	assert.EqualValues(t, 5, depth.Asks[0].Size)
	assert.Empty(t, depth.Bids)
}

func TestTradesPricedAtRestingPrice(t *testing.T) {
	engine := getTestEngine(t)

	_, err := engine.SubmitOrder(0, types.NewOrder(1, testTicker, "seller", types.SideSell, price(t, "99.5"), 10))
	require.NoError(t, err)

	// buyer pays its limit only if the resting price demands it
	trades, err := engine.SubmitOrder(0, types.NewOrder(2, testTicker, "buyer", types.SideBuy, price(t, "101"), 10))
	require.NoError(t, err)
	require.Len(t, trades, 1)
	assert.True(t, trades[0].Price.Equal(price(t, "99.5")))
}

func TestCrossingStopsAtFirstNonCrossingLevel(t *testing.T) {
	engine := getTestEngine(t)

	_, err := engine.SubmitOrder(0, types.NewOrder(1, testTicker, "seller", types.SideSell, price(t, "100"), 5))
	require.NoError(t, err)
	_, err = engine.SubmitOrder(0, types.NewOrder(2, testTicker, "seller", types.SideSell, price(t, "101"), 5))
	require.NoError(t, err)

	trades, err := engine.SubmitOrder(0, types.NewOrder(3, testTicker, "buyer", types.SideBuy, price(t, "100.5"), 10))
	require.NoError(t, err)
	require.Len(t, trades, 1)
	assert.True(t, trades[0].Price.Equal(price(t, "100")))

	// the remainder rests as the new best bid
	depth := engine.BookSnapshot()[testTicker]
	require.Len(t, depth.Bids, 1)
	assert.EqualValues(t, 3, depth.Bids[0].OrderID)
	assert.EqualValues(t, 5, depth.Bids[0].Size)
	require.Len(t, depth.Asks, 1)
	assert.EqualValues(t, 2, depth.Asks[0].OrderID)
}

func TestSizeConservation(t *testing.T) {
	engine := getTestEngine(t)

	_, err := engine.SubmitOrder(0, types.NewOrder(1, testTicker, "seller", types.SideSell, price(t, "100"), 7))
	require.NoError(t, err)
	_, err = engine.SubmitOrder(0, types.NewOrder(2, testTicker, "seller", types.SideSell, price(t, "100"), 4))
	require.NoError(t, err)

	agg := types.NewOrder(3, testTicker, "buyer", types.SideBuy, price(t, "100"), 20)
	trades, err := engine.SubmitOrder(0, agg)
	require.NoError(t, err)

	var traded uint64
	for _, tr := range trades {
		traded += tr.Size
	}
	assert.EqualValues(t, 11, traded)
	assert.EqualValues(t, 9, agg.Remaining)
	assert.EqualValues(t, 20, traded+agg.Remaining)
}

func TestBookSideOrdering(t *testing.T) {
	engine := getTestEngine(t)

	// insert bids out of price order, with a duplicate price in the middle
	_, err := engine.SubmitOrder(0, types.NewOrder(1, testTicker, "b", types.SideBuy, price(t, "99"), 1))
	require.NoError(t, err)
	_, err = engine.SubmitOrder(0, types.NewOrder(2, testTicker, "b", types.SideBuy, price(t, "101"), 1))
	require.NoError(t, err)
	_, err = engine.SubmitOrder(0, types.NewOrder(3, testTicker, "b", types.SideBuy, price(t, "100"), 1))
	require.NoError(t, err)
	_, err = engine.SubmitOrder(0, types.NewOrder(4, testTicker, "b", types.SideBuy, price(t, "100"), 1))
	require.NoError(t, err)

	bids := engine.BookSnapshot()[testTicker].Bids
	require.Len(t, bids, 4)
	assert.EqualValues(t, 2, bids[0].OrderID)
	// FIFO within the 100 level
	assert.EqualValues(t, 3, bids[1].OrderID)
	assert.EqualValues(t, 4, bids[2].OrderID)
	assert.EqualValues(t, 1, bids[3].OrderID)
}

func TestDuplicateOrderID(t *testing.T) {
	engine := getTestEngine(t)

	_, err := engine.SubmitOrder(0, types.NewOrder(1, testTicker, "seller", types.SideSell, price(t, "100"), 10))
	require.NoError(t, err)

	_, err = engine.SubmitOrder(0, types.NewOrder(1, testTicker, "seller", types.SideSell, price(t, "101"), 10))
	require.ErrorIs(t, err, types.ErrDuplicateOrderID)

	// an id stays burned even after the order is gone
	ok := engine.CancelOrder(1)
	require.True(t, ok)
	_, err = engine.SubmitOrder(0, types.NewOrder(1, testTicker, "seller", types.SideSell, price(t, "101"), 10))
	require.ErrorIs(t, err, types.ErrDuplicateOrderID)
}

func TestCancelOrder(t *testing.T) {
	engine := getTestEngine(t)

	_, err := engine.SubmitOrder(0, types.NewOrder(1, testTicker, "seller", types.SideSell, price(t, "100"), 10))
	require.NoError(t, err)
	_, err = engine.SubmitOrder(0, types.NewOrder(2, testTicker, "seller", types.SideSell, price(t, "100"), 10))
	require.NoError(t, err)

	assert.True(t, engine.CancelOrder(1))
	depth := engine.BookSnapshot()[testTicker]
	require.Len(t, depth.Asks, 1)
	assert.EqualValues(t, 2, depth.Asks[0].OrderID)

	// cancelling again is a tolerated no-op
	assert.False(t, engine.CancelOrder(1))
	assert.False(t, engine.CancelOrder(42))
	assert.Len(t, engine.BookSnapshot()[testTicker].Asks, 1)
}

func TestCancelFullyFilledOrder(t *testing.T) {
	engine := getTestEngine(t)

	_, err := engine.SubmitOrder(0, types.NewOrder(1, testTicker, "seller", types.SideSell, price(t, "100"), 10))
	require.NoError(t, err)
	trades, err := engine.SubmitOrder(0, types.NewOrder(2, testTicker, "buyer", types.SideBuy, price(t, "100"), 10))
	require.NoError(t, err)
	require.Len(t, trades, 1)

	assert.False(t, engine.CancelOrder(1))
}

func TestCrossingTolerance(t *testing.T) {
	engine := getTestEngine(t)

	_, err := engine.SubmitOrder(0, types.NewOrder(1, testTicker, "seller", types.SideSell, price(t, "100.0000005"), 10))
	require.NoError(t, err)

	// within epsilon of the resting price still crosses
	trades, err := engine.SubmitOrder(0, types.NewOrder(2, testTicker, "buyer", types.SideBuy, price(t, "100"), 10))
	require.NoError(t, err)
	require.Len(t, trades, 1)
	assert.True(t, trades[0].Price.Equal(price(t, "100.0000005")))
}

func TestUnknownProduct(t *testing.T) {
	engine := getTestEngine(t)

	_, err := engine.SubmitOrder(0, types.NewOrder(1, "NOPE", "seller", types.SideSell, price(t, "100"), 10))
	require.ErrorIs(t, err, types.ErrUnknownProduct)
}

func TestMidPrice(t *testing.T) {
	engine := getTestEngine(t)

	// empty book, no mid
	_, ok := engine.MidPrice(testTicker)
	assert.False(t, ok)

	// a one-sided book still has no mid
	_, err := engine.SubmitOrder(0, types.NewOrder(1, testTicker, "b", types.SideBuy, price(t, "99"), 10))
	require.NoError(t, err)
	_, ok = engine.MidPrice(testTicker)
	assert.False(t, ok)

	_, err = engine.SubmitOrder(0, types.NewOrder(2, testTicker, "s", types.SideSell, price(t, "101"), 10))
	require.NoError(t, err)
	mid, ok := engine.MidPrice(testTicker)
	require.True(t, ok)
	assert.True(t, mid.Equal(price(t, "100")))

	// the mid follows the best levels, not the depth
	_, err = engine.SubmitOrder(0, types.NewOrder(3, testTicker, "b", types.SideBuy, price(t, "100"), 1))
	require.NoError(t, err)
	mid, ok = engine.MidPrice(testTicker)
	require.True(t, ok)
	assert.True(t, mid.Equal(price(t, "100.5")))

	_, ok = engine.MidPrice("NOPE")
	assert.False(t, ok)
}

func TestTradeLogSequence(t *testing.T) {
	engine := getTestEngine(t)

	_, err := engine.SubmitOrder(3, types.NewOrder(1, testTicker, "s", types.SideSell, price(t, "100"), 5))
	require.NoError(t, err)
	_, err = engine.SubmitOrder(3, types.NewOrder(2, testTicker, "s", types.SideSell, price(t, "100"), 5))
	require.NoError(t, err)
	_, err = engine.SubmitOrder(4, types.NewOrder(3, testTicker, "b", types.SideBuy, price(t, "100"), 10))
	require.NoError(t, err)

	log := engine.TradeLog()
	require.Len(t, log, 2)
	for i, tr := range log {
		assert.EqualValues(t, i, tr.SeqNum)
		assert.EqualValues(t, 4, tr.LoopNumber)
	}
}
