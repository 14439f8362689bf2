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

package agents_test

import (
	"math/rand"
	"testing"

	"code.vegaprotocol.io/marketsim/core/agents"
	"code.vegaprotocol.io/marketsim/core/idgeneration"
	"code.vegaprotocol.io/marketsim/core/marketstate"
	"code.vegaprotocol.io/marketsim/core/types"
	"code.vegaprotocol.io/marketsim/libs/num"
	"code.vegaprotocol.io/marketsim/logging"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testBook(bidPrice, askPrice string, size uint64) types.BookSnapshot {
	depth := types.MarketDepth{}
	if bidPrice != "" {
		depth.Bids = []types.BookEntry{{OrderID: 900, Party: "mm", Price: d(bidPrice), Size: size}}
	}
	if askPrice != "" {
		depth.Asks = []types.BookEntry{{OrderID: 901, Party: "mm", Price: d(askPrice), Size: size}}
	}
	return types.BookSnapshot{"UEC": depth}
}

func onlyOrders(msgs []types.Message) []*types.Order {
	var out []*types.Order
	for _, m := range msgs {
		if m.Type == types.MessageTypeOrder {
			out = append(out, m.Order)
		}
	}
	return out
}

func onlyCancels(msgs []types.Message) []uint64 {
	var out []uint64
	for _, m := range msgs {
		if m.Type == types.MessageTypeCancel {
			out = append(out, m.CancelID)
		}
	}
	return out
}

func getTestNoiseTrader(t *testing.T, cfg agents.NoiseTraderConfig) *agents.NoiseTrader {
	t.Helper()
	products := []*types.Product{types.NewProduct("UEC", d("0.1"))}
	trader := agents.NewNoiseTrader(logging.NewTestLogger(), cfg, products, rand.New(rand.NewSource(7)))
	trader.SetIDSequence(idgeneration.NewAllocator(1000).NextRange())
	return trader
}

func TestNoiseTraderCorrectsPositiveRealisation(t *testing.T) {
	trader := getTestNoiseTrader(t, agents.NoiseTraderConfig{Name: "noise"})
	state := marketstate.New([]string{"UEC"})
	state.SetRealisation("UEC", d("0.5"))

	msgs := trader.ActTurn(testBook("99", "101", 20), state, 0)
	orders := onlyOrders(msgs)
	require.Len(t, orders, 1)
	assert.Equal(t, types.SideBuy, orders[0].Side)
	assert.True(t, orders[0].Price.Equal(d("101")))
}

func TestNoiseTraderCorrectsNegativeRealisation(t *testing.T) {
	trader := getTestNoiseTrader(t, agents.NoiseTraderConfig{Name: "noise"})
	state := marketstate.New([]string{"UEC"})
	state.SetRealisation("UEC", d("-0.5"))

	msgs := trader.ActTurn(testBook("99", "101", 20), state, 0)
	orders := onlyOrders(msgs)
	require.Len(t, orders, 1)
	assert.Equal(t, types.SideSell, orders[0].Side)
	assert.True(t, orders[0].Price.Equal(d("99")))
}

func TestNoiseTraderAggressiveFlow(t *testing.T) {
	trader := getTestNoiseTrader(t, agents.NoiseTraderConfig{
		Name:               "noise",
		MaxSize:            map[string]uint64{"UEC": 50},
		Bias:               map[string]num.Decimal{"UEC": num.DecimalOne()},
		SentimentInfluence: map[string]num.Decimal{"UEC": d("0.02")},
		Frequency:          1.0,
	})
	state := marketstate.New([]string{"UEC"})

	msgs := trader.ActTurn(testBook("99", "101", 20), state, 0)
	orders := onlyOrders(msgs)
	require.Len(t, orders, 1)
	// certain buy, priced through the ask and snapped to tick
	assert.Equal(t, types.SideBuy, orders[0].Side)
	assert.True(t, orders[0].Price.Equal(d("111.1")))
	// buying pushes sentiment down by the influence
	assert.True(t, state.Sentiment("UEC").Equal(d("-0.02")))
}

func TestNoiseTraderMutedBelowSentimentThreshold(t *testing.T) {
	trader := getTestNoiseTrader(t, agents.NoiseTraderConfig{
		Name:               "noise",
		SentimentThreshold: map[string]num.Decimal{"UEC": d("0.3")},
		Frequency:          1.0,
	})
	state := marketstate.New([]string{"UEC"})
	state.SetSentiment("UEC", d("0.1"))

	msgs := trader.ActTurn(testBook("99", "101", 20), state, 0)
	assert.Empty(t, onlyOrders(msgs))
}

func TestNoiseTraderSeedsBidSideOnOneSidedBook(t *testing.T) {
	trader := getTestNoiseTrader(t, agents.NoiseTraderConfig{
		Name:      "noise",
		MaxSize:   map[string]uint64{"UEC": 50},
		Frequency: 1.0,
	})
	state := marketstate.New([]string{"UEC"})

	msgs := trader.ActTurn(testBook("", "101", 20), state, 0)
	orders := onlyOrders(msgs)
	require.Len(t, orders, 1)
	assert.Equal(t, types.SideBuy, orders[0].Side)
	assert.True(t, orders[0].Price.Equal(d("101")))
}

func TestNoiseTraderCancelsPreviousOrders(t *testing.T) {
	trader := getTestNoiseTrader(t, agents.NoiseTraderConfig{
		Name:      "noise",
		MaxSize:   map[string]uint64{"UEC": 50},
		Bias:      map[string]num.Decimal{"UEC": num.DecimalOne()},
		Frequency: 1.0,
	})
	state := marketstate.New([]string{"UEC"})

	first := trader.ActTurn(testBook("99", "101", 20), state, 0)
	firstOrders := onlyOrders(first)
	require.Len(t, firstOrders, 1)
	assert.Empty(t, onlyCancels(first))

	second := trader.ActTurn(testBook("99", "101", 20), state, 1)
	cancels := onlyCancels(second)
	require.Len(t, cancels, 1)
	assert.Equal(t, firstOrders[0].ID, cancels[0])
}

func TestNoiseTraderTracksOwnPosition(t *testing.T) {
	trader := getTestNoiseTrader(t, agents.NoiseTraderConfig{Name: "noise"})
	state := marketstate.New([]string{"UEC"})

	trader.ProcessTrades([]*types.Trade{
		{Ticker: "UEC", Size: 10, Aggressor: types.SideBuy, AggressorParty: "noise", RestingParty: "mm"},
		{Ticker: "UEC", Size: 4, Aggressor: types.SideBuy, AggressorParty: "mm", RestingParty: "noise"},
		{Ticker: "UEC", Size: 2, Aggressor: types.SideSell, AggressorParty: "a", RestingParty: "b"},
	}, state)
	assert.EqualValues(t, 6, trader.Position("UEC"))
}
