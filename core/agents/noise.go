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

// realisationThreshold is the pressure level at which noise flow turns into
// corrective orders against the touch.
var realisationThreshold = num.MustDecimalFromString("0.01")

// Aggressive limit prices are set well through the touch so the order crosses
// whatever is there.
var (
	crossUpFactor   = num.MustDecimalFromString("1.1")
	crossDownFactor = num.MustDecimalFromString("0.9")
)

// NoiseTraderConfig parameterises one noise trader.
type NoiseTraderConfig struct {
	Name string `json:"name"`
	// MaxSize caps the mean of the sampled order size, per ticker.
	MaxSize map[string]uint64 `json:"maxSize"`
	// Bias is the base probability of buying. Defaults to 0.5.
	Bias map[string]num.Decimal `json:"bias"`
	// SentimentThreshold mutes the trader while |sentiment| stays below it.
	SentimentThreshold map[string]num.Decimal `json:"sentimentThreshold"`
	// SentimentEffect scales how strongly sentiment tilts the direction.
	SentimentEffect map[string]num.Decimal `json:"sentimentEffect"`
	// SentimentInfluence is how much each trade moves sentiment against the
	// trade direction.
	SentimentInfluence map[string]num.Decimal `json:"sentimentInfluence"`
	// SizingFactor scales the size sampled from the spread. Defaults to 1.
	SizingFactor num.Decimal `json:"sizingFactor"`
	// Frequency is the per-turn probability of trading a ticker. Defaults to 1.
	Frequency float64 `json:"frequency"`
	// KeepOrders leaves last turn's orders resting instead of pulling them
	// at the start of the next turn.
	KeepOrders bool `json:"keepOrders"`
}

// NoiseTrader emits uninformed aggressive flow: direction tilted by
// sentiment, size shrinking as the spread widens. When realisation pressure
// builds up it instead emits corrective orders against the touch, which is
// the mechanism that resolves accumulated pressure back to zero.
type NoiseTrader struct {
	log *logging.Logger
	cfg NoiseTraderConfig
	rng *rand.Rand

	products []*types.Product
	seq      *idgeneration.Sequence

	positions  map[string]int64
	sentOrders []uint64
}

// NewNoiseTrader instantiates a noise trader for the given products.
func NewNoiseTrader(log *logging.Logger, cfg NoiseTraderConfig, products []*types.Product, rng *rand.Rand) *NoiseTrader {
	if cfg.SizingFactor.IsZero() {
		cfg.SizingFactor = num.DecimalOne()
	}
	if cfg.Frequency == 0 {
		cfg.Frequency = 1.0
	}
	positions := make(map[string]int64, len(products))
	for _, p := range products {
		positions[p.Ticker] = 0
	}
	return &NoiseTrader{
		log:       log.Named("agent." + cfg.Name),
		cfg:       cfg,
		rng:       rng,
		products:  products,
		positions: positions,
	}
}

func (n *NoiseTrader) Name() string {
	return n.cfg.Name
}

func (n *NoiseTrader) SetIDSequence(seq *idgeneration.Sequence) {
	n.seq = seq
}

func (n *NoiseTrader) ActTurn(book types.BookSnapshot, state *marketstate.Store, loop uint64) []types.Message {
	var out []types.Message
	if !n.cfg.KeepOrders {
		for _, id := range n.sentOrders {
			out = append(out, types.NewCancelMessage(id))
		}
		n.sentOrders = nil
	}

	for _, p := range n.products {
		ticker := p.Ticker
		depth := book[ticker]

		// corrective flow takes priority once pressure has built up
		if msg, ok := n.correctiveOrder(p, depth, state.Realisation(ticker)); ok {
			out = append(out, msg)
			continue
		}

		if n.rng.Float64() > n.cfg.Frequency {
			continue
		}
		sentiment := state.Sentiment(ticker)
		if sentiment.Abs().LessThan(decimalParam(n.cfg.SentimentThreshold, ticker, num.DecimalZero())) {
			continue
		}

		bid, okBid := depth.BestBid()
		ask, okAsk := depth.BestAsk()
		switch {
		case okBid && okAsk:
			spread := ask.Price.Sub(bid.Price)
			if !spread.IsPositive() {
				continue
			}
			spreadTicks := spread.Div(p.TickSize)
			tilt := sentiment.Mul(decimalParam(n.cfg.SentimentEffect, ticker, num.DecimalZero()))
			buyWeight := decimalParam(n.cfg.Bias, ticker, num.MustDecimalFromString("0.5")).Add(tilt)
			size := sampleExponentialSize(n.rng, n.cfg.SizingFactor, spreadTicks, uintParam(n.cfg.MaxSize, ticker, 1))
			influence := decimalParam(n.cfg.SentimentInfluence, ticker, num.DecimalZero())

			var order *types.Order
			if pickSide(n.rng, buyWeight) == types.SideSell {
				price := p.SnapToTick(bid.Price.Mul(crossDownFactor))
				order = types.NewOrder(n.seq.NextID(), ticker, n.cfg.Name, types.SideSell, price, size)
				state.AddSentiment(ticker, influence)
			} else {
				price := p.SnapToTick(ask.Price.Mul(crossUpFactor))
				order = types.NewOrder(n.seq.NextID(), ticker, n.cfg.Name, types.SideBuy, price, size)
				state.AddSentiment(ticker, influence.Neg())
			}
			out = append(out, types.NewOrderMessage(order))
			n.sentOrders = append(n.sentOrders, order.ID)

		case okAsk:
			// one-sided book: lift the best ask to seed a bid side
			size := sampleExponentialSize(n.rng, n.cfg.SizingFactor, ask.Price.Div(p.TickSize), uintParam(n.cfg.MaxSize, ticker, 1))
			order := types.NewOrder(n.seq.NextID(), ticker, n.cfg.Name, types.SideBuy, ask.Price, size)
			out = append(out, types.NewOrderMessage(order))
			n.sentOrders = append(n.sentOrders, order.ID)
		}
	}
	return out
}

// correctiveOrder trades against the touch when realisation pressure is past
// the threshold: positive pressure lifts the best ask, negative pressure
// hits the best bid, sized near the resting size.
func (n *NoiseTrader) correctiveOrder(p *types.Product, depth types.MarketDepth, realisation num.Decimal) (types.Message, bool) {
	if realisation.GreaterThan(realisationThreshold) {
		if ask, ok := depth.BestAsk(); ok {
			size := sampleNormalSize(n.rng, float64(ask.Size), 2)
			order := types.NewOrder(n.seq.NextID(), p.Ticker, n.cfg.Name, types.SideBuy, ask.Price, size)
			n.sentOrders = append(n.sentOrders, order.ID)
			return types.NewOrderMessage(order), true
		}
	}
	if realisation.LessThan(realisationThreshold.Neg()) {
		if bid, ok := depth.BestBid(); ok {
			size := sampleNormalSize(n.rng, float64(bid.Size), 2)
			order := types.NewOrder(n.seq.NextID(), p.Ticker, n.cfg.Name, types.SideSell, bid.Price, size)
			n.sentOrders = append(n.sentOrders, order.ID)
			return types.NewOrderMessage(order), true
		}
	}
	return types.Message{}, false
}

func (n *NoiseTrader) ProcessTrades(trades []*types.Trade, state *marketstate.Store) {
	for _, t := range trades {
		switch {
		case t.AggressorParty == n.cfg.Name:
			n.positions[t.Ticker] += t.Aggressor.Sign() * int64(t.Size)
		case t.RestingParty == n.cfg.Name:
			n.positions[t.Ticker] -= t.Aggressor.Sign() * int64(t.Size)
		}
	}
}

// Position reports the trader's own view of its holding in ticker.
func (n *NoiseTrader) Position(ticker string) int64 {
	return n.positions[ticker]
}
