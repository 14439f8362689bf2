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

func getTestTaker(t *testing.T, cfg agents.TakerConfig) *agents.Taker {
	t.Helper()
	products := []*types.Product{types.NewProduct("UEC", d("0.1"))}
	taker := agents.NewTaker(logging.NewTestLogger(), cfg, products, rand.New(rand.NewSource(13)))
	taker.SetIDSequence(idgeneration.NewAllocator(1000).NextRange())
	return taker
}

func deepBook() types.BookSnapshot {
	return types.BookSnapshot{"UEC": types.MarketDepth{
		Bids: []types.BookEntry{{OrderID: 900, Party: "mm", Price: d("99"), Size: 20}},
		Asks: []types.BookEntry{
			{OrderID: 901, Party: "mm", Price: d("101"), Size: 10},
			{OrderID: 902, Party: "mm", Price: d("102"), Size: 15},
			{OrderID: 903, Party: "mm", Price: d("103"), Size: 5},
		},
	}}
}

func TestTakerSweepsDepthAndShiftsRealisation(t *testing.T) {
	taker := getTestTaker(t, agents.TakerConfig{
		Name:               "taker",
		Bias:               map[string]num.Decimal{"UEC": num.DecimalOne()},
		Frequency:          map[string]float64{"UEC": 1.0},
		MaxLevels:          map[string]uint64{"UEC": 2},
		SentimentInfluence: map[string]num.Decimal{"UEC": d("0.02")},
	})
	state := marketstate.New([]string{"UEC"})

	msgs := taker.ActTurn(deepBook(), state, 0)
	orders := onlyOrders(msgs)
	require.Len(t, orders, 1)
	// priced at the deepest level the sweep reaches, not the touch
	assert.Equal(t, types.SideBuy, orders[0].Side)
	assert.True(t, orders[0].Price.Equal(d("102")))
	assert.GreaterOrEqual(t, orders[0].Size, uint64(1))

	assert.True(t, state.Realisation("UEC").Equal(num.DecimalOne()))
	assert.True(t, state.Sentiment("UEC").Equal(d("-0.02")))
}

func TestTakerWaitsForRealisationToSettle(t *testing.T) {
	taker := getTestTaker(t, agents.TakerConfig{
		Name:      "taker",
		Frequency: map[string]float64{"UEC": 1.0},
	})
	state := marketstate.New([]string{"UEC"})
	state.SetRealisation("UEC", d("1"))

	msgs := taker.ActTurn(deepBook(), state, 0)
	assert.Empty(t, onlyOrders(msgs))
}

func TestTakerStandsAsideOnStretchedSentiment(t *testing.T) {
	taker := getTestTaker(t, agents.TakerConfig{
		Name:      "taker",
		Frequency: map[string]float64{"UEC": 1.0},
	})
	state := marketstate.New([]string{"UEC"})
	state.SetSentiment("UEC", d("0.2"))

	msgs := taker.ActTurn(deepBook(), state, 0)
	assert.Empty(t, onlyOrders(msgs))
}

func TestTakerCancelsPreviousSweep(t *testing.T) {
	taker := getTestTaker(t, agents.TakerConfig{
		Name:      "taker",
		Bias:      map[string]num.Decimal{"UEC": num.DecimalOne()},
		Frequency: map[string]float64{"UEC": 1.0},
	})
	state := marketstate.New([]string{"UEC"})

	first := taker.ActTurn(deepBook(), state, 0)
	firstOrders := onlyOrders(first)
	require.Len(t, firstOrders, 1)

	// realisation is now nonzero so the second turn only cancels
	second := taker.ActTurn(deepBook(), state, 1)
	assert.Empty(t, onlyOrders(second))
	cancels := onlyCancels(second)
	require.Len(t, cancels, 1)
	assert.Equal(t, firstOrders[0].ID, cancels[0])
}

func TestTakerNeedsACounterSide(t *testing.T) {
	taker := getTestTaker(t, agents.TakerConfig{
		Name:      "taker",
		Bias:      map[string]num.Decimal{"UEC": num.DecimalOne()},
		Frequency: map[string]float64{"UEC": 1.0},
	})
	state := marketstate.New([]string{"UEC"})

	msgs := taker.ActTurn(testBook("", "101", 20), state, 0)
	assert.Empty(t, onlyOrders(msgs))
}
