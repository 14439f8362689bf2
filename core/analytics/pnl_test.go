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

package analytics_test

import (
	"testing"

	"code.vegaprotocol.io/marketsim/core/analytics"
	"code.vegaprotocol.io/marketsim/core/positions"
	"code.vegaprotocol.io/marketsim/core/types"
	"code.vegaprotocol.io/marketsim/libs/num"
	"code.vegaprotocol.io/marketsim/logging"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func d(s string) num.Decimal {
	return num.MustDecimalFromString(s)
}

var testLadders = map[string]analytics.LadderParams{
	// impact step: 1.0 / 20 = 0.05
	"UEC": {LevelSpacing: d("1"), LevelSize: 20},
}

func ledgerWithTrade(t *testing.T, aggressor types.Side, size uint64, price string) *positions.Ledger {
	t.Helper()
	engine := positions.NewEngine(logging.NewTestLogger(), positions.NewDefaultConfig(), []string{"UEC"})
	engine.RegisterParty("player")
	engine.RegisterParty("other")
	engine.ApplyTrade(&types.Trade{
		Ticker:         "UEC",
		Price:          d(price),
		Size:           size,
		Aggressor:      aggressor,
		AggressorParty: "player",
		RestingParty:   "other",
	})
	return engine.Ledger("player")
}

func book(bid, ask string) types.BookSnapshot {
	depth := types.MarketDepth{}
	if bid != "" {
		depth.Bids = []types.BookEntry{{OrderID: 1, Party: "mm", Price: d(bid), Size: 100}}
	}
	if ask != "" {
		depth.Asks = []types.BookEntry{{OrderID: 2, Party: "mm", Price: d(ask), Size: 100}}
	}
	return types.BookSnapshot{"UEC": depth}
}

func TestCloseOutFlatPositionIsCash(t *testing.T) {
	engine := positions.NewEngine(logging.NewTestLogger(), positions.NewDefaultConfig(), []string{"UEC"})
	engine.RegisterParty("player")

	value, err := analytics.CloseOutValue(engine.Ledger("player"), book("99", "101"), testLadders)
	require.NoError(t, err)
	assert.True(t, value.IsZero())
}

func TestCloseOutLongPosition(t *testing.T) {
	// bought 10 at 100: cash -1000, position +10
	ledger := ledgerWithTrade(t, types.SideBuy, 10, "100")

	// unwind against the ask touch 101: worst 100.95, mark 100.975
	value, err := analytics.CloseOutValue(ledger, book("99", "101"), testLadders)
	require.NoError(t, err)
	assert.True(t, value.Equal(d("9.75")), "got %s", value.String())
}

func TestCloseOutShortPosition(t *testing.T) {
	// sold 10 at 100: cash +1000, position -10
	ledger := ledgerWithTrade(t, types.SideSell, 10, "100")

	// buy back against the bid touch 99: worst 99.05, mark 99.025
	value, err := analytics.CloseOutValue(ledger, book("99", "101"), testLadders)
	require.NoError(t, err)
	assert.True(t, value.Equal(d("9.75")), "got %s", value.String())
}

func TestCloseOutFailsOnEmptySide(t *testing.T) {
	ledger := ledgerWithTrade(t, types.SideBuy, 10, "100")

	_, err := analytics.CloseOutValue(ledger, book("99", ""), testLadders)
	assert.ErrorIs(t, err, analytics.ErrNoCloseOutPrice)
}

func TestCloseOutFailsWithoutLadder(t *testing.T) {
	ledger := ledgerWithTrade(t, types.SideBuy, 10, "100")

	_, err := analytics.CloseOutValue(ledger, book("99", "101"), nil)
	assert.ErrorIs(t, err, analytics.ErrNoCloseOutPrice)
}
