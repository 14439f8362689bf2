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

// sentimentGate is the minimum absolute sentiment before a reverter wakes up.
var (
	sentimentGate  = num.MustDecimalFromString("0.05")
	reverterTiltX2 = num.MustDecimalFromString("2")
)

// ReverterConfig parameterises one reverter.
type ReverterConfig struct {
	Name string `json:"name"`
	// MaxSize caps the mean of the sampled order size, per ticker.
	// Defaults to 50.
	MaxSize map[string]uint64 `json:"maxSize"`
	// Bias is the base probability of buying. Defaults to 0.5.
	Bias map[string]num.Decimal `json:"bias"`
	// SizingFactor scales the size sampled from the spread. Defaults to 1.
	SizingFactor map[string]num.Decimal `json:"sizingFactor"`
	// SentimentInfluence is how much each trade moves sentiment against the
	// trade direction.
	SentimentInfluence map[string]num.Decimal `json:"sentimentInfluence"`
	// Frequency is the per-turn probability of trading a ticker.
	// Defaults to 0.01.
	Frequency map[string]float64 `json:"frequency"`
}

// Reverter trades only when sentiment is already stretched, and its
// direction weight doubles the sentiment tilt, so it leans hard into the
// prevailing mood and, through the influence it leaves behind, pulls
// sentiment back towards zero.
type Reverter struct {
	log *logging.Logger
	cfg ReverterConfig
	rng *rand.Rand

	products []*types.Product
	seq      *idgeneration.Sequence

	positions map[string]int64
}

// NewReverter instantiates a reverter for the given products.
func NewReverter(log *logging.Logger, cfg ReverterConfig, products []*types.Product, rng *rand.Rand) *Reverter {
	positions := make(map[string]int64, len(products))
	for _, p := range products {
		positions[p.Ticker] = 0
	}
	return &Reverter{
		log:       log.Named("agent." + cfg.Name),
		cfg:       cfg,
		rng:       rng,
		products:  products,
		positions: positions,
	}
}

func (r *Reverter) Name() string {
	return r.cfg.Name
}

func (r *Reverter) SetIDSequence(seq *idgeneration.Sequence) {
	r.seq = seq
}

func (r *Reverter) ActTurn(book types.BookSnapshot, state *marketstate.Store, loop uint64) []types.Message {
	var out []types.Message
	for _, p := range r.products {
		ticker := p.Ticker
		sentiment := state.Sentiment(ticker)
		if sentiment.Abs().LessThan(sentimentGate) {
			continue
		}
		if r.rng.Float64() > floatParam(r.cfg.Frequency, ticker, 0.01) {
			continue
		}
		tilt := sentiment.Mul(reverterTiltX2)
		buyWeight := decimalParam(r.cfg.Bias, ticker, num.MustDecimalFromString("0.5")).Add(tilt)
		side := pickSide(r.rng, buyWeight)

		depth := book[ticker]
		bid, okBid := depth.BestBid()
		ask, okAsk := depth.BestAsk()
		if !okBid || !okAsk {
			continue
		}
		spreadTicks := ask.Price.Sub(bid.Price).Div(p.TickSize)
		size := sampleExponentialSize(r.rng,
			decimalParam(r.cfg.SizingFactor, ticker, num.DecimalOne()),
			spreadTicks,
			uintParam(r.cfg.MaxSize, ticker, 50))
		influence := decimalParam(r.cfg.SentimentInfluence, ticker, num.DecimalZero())

		var order *types.Order
		if side == types.SideBuy {
			price := p.SnapToTick(ask.Price.Mul(crossUpFactor))
			order = types.NewOrder(r.seq.NextID(), ticker, r.cfg.Name, types.SideBuy, price, size)
			state.AddSentiment(ticker, influence.Neg())
		} else {
			price := p.SnapToTick(bid.Price.Mul(crossDownFactor))
			order = types.NewOrder(r.seq.NextID(), ticker, r.cfg.Name, types.SideSell, price, size)
			state.AddSentiment(ticker, influence)
		}
		out = append(out, types.NewOrderMessage(order))
	}
	return out
}

func (r *Reverter) ProcessTrades(trades []*types.Trade, state *marketstate.Store) {
	for _, t := range trades {
		switch {
		case t.AggressorParty == r.cfg.Name:
			r.positions[t.Ticker] += t.Aggressor.Sign() * int64(t.Size)
		case t.RestingParty == r.cfg.Name:
			r.positions[t.Ticker] -= t.Aggressor.Sign() * int64(t.Size)
		}
	}
}

// Position reports the reverter's own view of its holding in ticker.
func (r *Reverter) Position(ticker string) int64 {
	return r.positions[ticker]
}
