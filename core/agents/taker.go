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

	"code.vegaprotocol.io/marketsim/core/idgeneration"
	"code.vegaprotocol.io/marketsim/core/marketstate"
	"code.vegaprotocol.io/marketsim/core/types"
	"code.vegaprotocol.io/marketsim/libs/num"
	"code.vegaprotocol.io/marketsim/logging"
)

// Each sweep leaves one full unit of realisation pressure behind.
var takerRealisationEffect = num.DecimalOne()

// spreadPadding keeps the sizing denominator away from zero when the sweep
// price sits on the opposite touch.
var spreadPadding = num.MustDecimalFromString("10")

// TakerConfig parameterises one taker.
type TakerConfig struct {
	Name string `json:"name"`
	// Bias is the base probability of buying. Defaults to 0.5.
	Bias map[string]num.Decimal `json:"bias"`
	// SizingFactor scales the size relative to swept depth. Defaults to 1.
	SizingFactor map[string]num.Decimal `json:"sizingFactor"`
	// SentimentInfluence is how much each sweep moves sentiment against the
	// sweep direction.
	SentimentInfluence map[string]num.Decimal `json:"sentimentInfluence"`
	// Frequency is the per-turn probability of sweeping a ticker.
	// Defaults to 0.01.
	Frequency map[string]float64 `json:"frequency"`
	// MaxLevels is how many levels deep a sweep reaches. Defaults to 3.
	MaxLevels map[string]uint64 `json:"maxLevels"`
}

// Taker fires rarely, and only into a calm market with no outstanding
// realisation pressure. It sweeps several levels in one aggressive order
// priced at the deepest swept level, sized against the depth it consumes,
// and leaves realisation pressure behind for the noise flow to work off.
type Taker struct {
	log *logging.Logger
	cfg TakerConfig
	rng *rand.Rand

	products []*types.Product
	seq      *idgeneration.Sequence

	positions  map[string]int64
	sentOrders []uint64
}

// NewTaker instantiates a taker for the given products.
func NewTaker(log *logging.Logger, cfg TakerConfig, products []*types.Product, rng *rand.Rand) *Taker {
	positions := make(map[string]int64, len(products))
	for _, p := range products {
		positions[p.Ticker] = 0
	}
	return &Taker{
		log:       log.Named("agent." + cfg.Name),
		cfg:       cfg,
		rng:       rng,
		products:  products,
		positions: positions,
	}
}

func (k *Taker) Name() string {
	return k.cfg.Name
}

func (k *Taker) SetIDSequence(seq *idgeneration.Sequence) {
	k.seq = seq
}

func (k *Taker) ActTurn(book types.BookSnapshot, state *marketstate.Store, loop uint64) []types.Message {
	var out []types.Message
	for _, id := range k.sentOrders {
		out = append(out, types.NewCancelMessage(id))
	}
	k.sentOrders = nil

	for _, p := range k.products {
		ticker := p.Ticker
		if k.rng.Float64() > floatParam(k.cfg.Frequency, ticker, 0.01) {
			continue
		}
		if !state.Realisation(ticker).IsZero() {
			continue
		}
		if state.Sentiment(ticker).Abs().GreaterThan(sentimentGate) {
			continue
		}

		depth := book[ticker]
		side := pickSide(k.rng, decimalParam(k.cfg.Bias, ticker, num.MustDecimalFromString("0.5")))
		maxLevels := uintParam(k.cfg.MaxLevels, ticker, 3)
		influence := decimalParam(k.cfg.SentimentInfluence, ticker, num.DecimalZero())

		var (
			swept   []types.BookEntry
			counter types.BookEntry
			okC     bool
		)
		if side == types.SideBuy {
			swept = depth.Asks
			counter, okC = depth.BestBid()
		} else {
			swept = depth.Bids
			counter, okC = depth.BestAsk()
		}
		if uint64(len(swept)) > maxLevels {
			swept = swept[:maxLevels]
		}
		var density uint64
		var price num.Decimal
		for _, lvl := range swept {
			density += lvl.Size
			price = lvl.Price
		}
		if density == 0 || !okC {
			continue
		}

		spreadTicks := price.Sub(counter.Price).Abs().Div(p.TickSize).Add(spreadPadding)
		mean := num.DecimalFromUint64(density).
			Mul(decimalParam(k.cfg.SizingFactor, ticker, num.DecimalOne())).
			Div(spreadTicks)
		size := sampleNormalSize(k.rng, mean.InexactFloat64(), 1)

		order := types.NewOrder(k.seq.NextID(), ticker, k.cfg.Name, side, price, size)
		out = append(out, types.NewOrderMessage(order))
		k.sentOrders = append(k.sentOrders, order.ID)

		if side == types.SideBuy {
			state.AddSentiment(ticker, influence.Neg())
			state.AddRealisation(ticker, takerRealisationEffect)
		} else {
			state.AddSentiment(ticker, influence)
			state.AddRealisation(ticker, takerRealisationEffect.Neg())
		}
	}
	return out
}

func (k *Taker) ProcessTrades(trades []*types.Trade, state *marketstate.Store) {
	for _, t := range trades {
		switch {
		case t.AggressorParty == k.cfg.Name:
			k.positions[t.Ticker] += t.Aggressor.Sign() * int64(t.Size)
		case t.RestingParty == k.cfg.Name:
			k.positions[t.Ticker] -= t.Aggressor.Sign() * int64(t.Size)
		}
	}
}

// Position reports the taker's own view of its holding in ticker.
func (k *Taker) Position(ticker string) int64 {
	return k.positions[ticker]
}

// OnConversion satisfies ConversionObserver. Takers request no conversions
// so results are ignored.
func (k *Taker) OnConversion(result types.ConversionResult) {}
