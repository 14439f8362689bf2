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
	"code.vegaprotocol.io/marketsim/core/idgeneration"
	"code.vegaprotocol.io/marketsim/core/marketstate"
	"code.vegaprotocol.io/marketsim/core/types"
	"code.vegaprotocol.io/marketsim/libs/num"
	"code.vegaprotocol.io/marketsim/logging"
)

// Market maker realisation decay thresholds: realisation only decays once it
// has built up past the trigger, and small residues snap back to zero.
var (
	mmRealisationTrigger  = num.MustDecimalFromString("0.01")
	mmRealisationSnapLow  = num.MustDecimalFromString("-0.05")
	mmRealisationSnapHigh = num.MustDecimalFromString("0.001")

	defaultRealisationEffect = num.MustDecimalFromString("0.005")
	defaultAskFloor          = num.DecimalFromInt64(10)
)

// MarketMakerConfig parameterises one market maker, per ticker.
type MarketMakerConfig struct {
	Name string `json:"name"`
	// BaseMid is the anchor mid price to quote around.
	BaseMid map[string]num.Decimal `json:"baseMid"`
	// LevelSpacingTicks is the distance between two quote levels, in ticks.
	LevelSpacingTicks map[string]uint64 `json:"levelSpacingTicks"`
	// LevelSize is the constant quoted size per level, and the inventory
	// unit of the mid skew.
	LevelSize map[string]uint64 `json:"levelSize"`
	// InitialWidthTicks is the extra half-width added to both sides, in ticks.
	InitialWidthTicks map[string]uint64 `json:"initialWidthTicks"`
	// LevelCount is how many price levels are quoted on each side.
	LevelCount uint64 `json:"levelCount"`
	// RealisationEffect scales how much of its own flow the maker counts as
	// absorbed corrective pressure. Defaults to 0.005.
	RealisationEffect map[string]num.Decimal `json:"realisationEffect"`
	// AskFloor is the lowest ask ever quoted. Defaults to 10.
	AskFloor num.Decimal `json:"askFloor"`
}

// MarketMaker quotes a symmetric ladder around a mid price skewed against its
// own inventory: holding longs pushes the quotes down, shorts push them up,
// encouraging mean-reverting inventory.
type MarketMaker struct {
	log *logging.Logger
	cfg MarketMakerConfig

	products []*types.Product
	seq      *idgeneration.Sequence

	positions  map[string]int64
	sentOrders map[string][]uint64
}

// NewMarketMaker instantiates a market maker for the given products.
func NewMarketMaker(log *logging.Logger, cfg MarketMakerConfig, products []*types.Product) *MarketMaker {
	if cfg.AskFloor.IsZero() {
		cfg.AskFloor = defaultAskFloor
	}
	m := &MarketMaker{
		log:        log.Named("agent." + cfg.Name),
		cfg:        cfg,
		products:   products,
		positions:  make(map[string]int64, len(products)),
		sentOrders: make(map[string][]uint64, len(products)),
	}
	for _, p := range products {
		m.positions[p.Ticker] = 0
		m.sentOrders[p.Ticker] = nil
	}
	return m
}

func (m *MarketMaker) Name() string {
	return m.cfg.Name
}

func (m *MarketMaker) SetIDSequence(seq *idgeneration.Sequence) {
	m.seq = seq
}

// ActTurn pulls all resting quotes and re-quotes the full ladder around the
// inventory-skewed mid.
func (m *MarketMaker) ActTurn(book types.BookSnapshot, state *marketstate.Store, loop uint64) []types.Message {
	var out []types.Message
	for _, p := range m.products {
		ticker := p.Ticker
		spacing := num.DecimalFromUint64(uintParam(m.cfg.LevelSpacingTicks, ticker, 1)).Mul(p.TickSize)
		width := num.DecimalFromUint64(uintParam(m.cfg.InitialWidthTicks, ticker, 0)).Mul(p.TickSize)
		levelSize := uintParam(m.cfg.LevelSize, ticker, 1)

		// skew the mid against inventory: one level spacing per levelSize
		// units of position
		skew := num.DecimalFromInt64(m.positions[ticker]).
			Div(num.DecimalFromUint64(levelSize)).
			Mul(spacing)
		mid := p.SnapToTick(decimalParam(m.cfg.BaseMid, ticker, num.DecimalZero()).Sub(skew))

		for _, id := range m.sentOrders[ticker] {
			out = append(out, types.NewCancelMessage(id))
		}
		m.sentOrders[ticker] = nil

		for i := uint64(0); i < m.cfg.LevelCount; i++ {
			offset := num.DecimalFromUint64(i).Mul(spacing).Add(width)

			bidPrice := mid.Sub(offset)
			if bidPrice.IsPositive() {
				bidPrice = p.SnapToTick(bidPrice)
				id := m.seq.NextID()
				out = append(out, types.NewOrderMessage(
					types.NewOrder(id, ticker, m.cfg.Name, types.SideBuy, bidPrice, levelSize)))
				m.sentOrders[ticker] = append(m.sentOrders[ticker], id)
			}

			askPrice := p.SnapToTick(num.MaxD(m.cfg.AskFloor, mid.Add(offset)))
			id := m.seq.NextID()
			out = append(out, types.NewOrderMessage(
				types.NewOrder(id, ticker, m.cfg.Name, types.SideSell, askPrice, levelSize)))
			m.sentOrders[ticker] = append(m.sentOrders[ticker], id)
		}
	}
	return out
}

// ProcessTrades tracks the maker's own inventory and decays realisation:
// maker buys absorb negative pressure, maker sells absorb positive pressure,
// and near-zero residues snap to zero.
func (m *MarketMaker) ProcessTrades(trades []*types.Trade, state *marketstate.Store) {
	for _, t := range trades {
		var dir int64
		switch m.cfg.Name {
		case t.AggressorParty:
			dir = t.Aggressor.Sign()
		case t.RestingParty:
			dir = -t.Aggressor.Sign()
		default:
			continue
		}
		m.positions[t.Ticker] += dir * int64(t.Size)

		effect := decimalParam(m.cfg.RealisationEffect, t.Ticker, defaultRealisationEffect)
		absorbed := num.DecimalFromUint64(t.Size).Mul(effect)
		real := state.Realisation(t.Ticker)
		if dir > 0 && real.LessThanOrEqual(mmRealisationTrigger.Neg()) {
			state.AddRealisation(t.Ticker, absorbed)
		} else if dir < 0 && real.GreaterThanOrEqual(mmRealisationTrigger) {
			state.AddRealisation(t.Ticker, absorbed.Neg())
		}

		real = state.Realisation(t.Ticker)
		if real.GreaterThan(mmRealisationSnapLow) && real.LessThan(mmRealisationSnapHigh) {
			state.SetRealisation(t.Ticker, num.DecimalZero())
		}
	}
}

// Position exposes the maker's tracked inventory, used by tests.
func (m *MarketMaker) Position(ticker string) int64 {
	return m.positions[ticker]
}
