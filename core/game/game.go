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

// Package game drives the turn-based simulation loop. All engine mutation
// happens here, in a fixed agent visitation order that is part of the
// observable contract of a run.
package game

import (
	"code.vegaprotocol.io/marketsim/core/agents"
	"code.vegaprotocol.io/marketsim/core/history"
	"code.vegaprotocol.io/marketsim/core/idgeneration"
	"code.vegaprotocol.io/marketsim/core/marketstate"
	"code.vegaprotocol.io/marketsim/core/matching"
	"code.vegaprotocol.io/marketsim/core/positions"
	"code.vegaprotocol.io/marketsim/core/types"
	"code.vegaprotocol.io/marketsim/libs/num"
	"code.vegaprotocol.io/marketsim/logging"

	"github.com/pkg/errors"
)

// Converter is the external collaborator performing instrument conversions.
type Converter interface {
	Convert(req *types.ConversionRequest) types.ConversionResult
}

// acceptAllConverter is the stub conversion collaborator: every request is
// accepted and has no effect.
type acceptAllConverter struct{}

func (acceptAllConverter) Convert(req *types.ConversionRequest) types.ConversionResult {
	return types.ConversionResult{Request: *req, Accepted: true}
}

// Rejection records a single order intent refused by validation. Rejections
// never halt the run.
type Rejection struct {
	Loop    uint64
	Party   string
	OrderID uint64
	Err     error
}

// participant is a registered agent. Exactly one of house and player is set;
// the distinction is resolved once, at registration.
type participant struct {
	name   string
	house  agents.House
	player agents.Player
}

// Game is the turn orchestrator. It owns every engine and the shared market
// state, and is their single writer.
type Game struct {
	Config
	log *logging.Logger

	products    []*types.Product
	byTicker    map[string]*types.Product
	tickers     []string
	limitMode   PositionLimitMode
	exemptNames map[string]struct{}

	matching  *matching.Engine
	positions *positions.Engine
	state     *marketstate.Store
	alloc     *idgeneration.Allocator
	converter Converter

	// participants keeps strict registration order; reordering agents
	// changes simulation outcomes.
	participants []*participant

	history    *history.Record
	rejections []Rejection
}

// New creates a game over the given products with empty books and no agents.
func New(log *logging.Logger, config Config, products []*types.Product, limitMode PositionLimitMode, exempt []string) *Game {
	log = log.Named(namedLogger)
	log.SetLevel(config.Level.Get())

	tickers := make([]string, 0, len(products))
	byTicker := make(map[string]*types.Product, len(products))
	for _, p := range products {
		tickers = append(tickers, p.Ticker)
		byTicker[p.Ticker] = p
	}
	exemptNames := make(map[string]struct{}, len(exempt))
	for _, name := range exempt {
		exemptNames[name] = struct{}{}
	}

	g := &Game{
		Config:      config,
		log:         log,
		products:    products,
		byTicker:    byTicker,
		tickers:     tickers,
		limitMode:   limitMode,
		exemptNames: exemptNames,
		matching:    matching.NewEngine(log, config.Matching),
		positions:   positions.NewEngine(log, config.Positions, tickers),
		state:       marketstate.New(tickers),
		alloc:       idgeneration.NewAllocator(0),
		converter:   acceptAllConverter{},
	}
	for _, t := range tickers {
		g.matching.CreateBook(t)
	}
	return g
}

// SetConverter swaps in a real conversion collaborator.
func (g *Game) SetConverter(c Converter) {
	g.converter = c
}

// RegisterHouse adds a house agent at the back of the visitation order and
// hands it a private id range.
func (g *Game) RegisterHouse(h agents.House) {
	h.SetIDSequence(g.alloc.NextRange())
	g.positions.RegisterParty(h.Name())
	g.participants = append(g.participants, &participant{name: h.Name(), house: h})
}

// RegisterPlayer adds a player agent at the back of the visitation order.
// Players see anonymised books and trades and never touch the shared state.
func (g *Game) RegisterPlayer(p agents.Player) {
	p.SetIDSequence(g.alloc.NextRange())
	g.positions.RegisterParty(p.Name())
	g.participants = append(g.participants, &participant{name: p.Name(), player: p})
}

// Run plays the given number of loops and returns the run history.
func (g *Game) Run(iterations uint64) *history.Record {
	parties := make([]string, 0, len(g.participants))
	for _, pt := range g.participants {
		parties = append(parties, pt.name)
	}
	g.history = history.New(g.tickers, parties)

	for loop := uint64(0); loop < iterations; loop++ {
		g.playLoop(loop)
	}
	return g.history
}

// History returns the run record, nil before Run was called.
func (g *Game) History() *history.Record {
	return g.history
}

// Rejections returns every order intent refused by validation over the run.
func (g *Game) Rejections() []Rejection {
	return g.rejections
}

// State returns the shared sentiment/realisation store.
func (g *Game) State() *marketstate.Store {
	return g.state
}

// Positions returns the ledger engine.
func (g *Game) Positions() *positions.Engine {
	return g.positions
}

// BookSnapshot returns the current unredacted book view.
func (g *Game) BookSnapshot() types.BookSnapshot {
	return g.matching.BookSnapshot()
}

// TradeLog returns the append-only run-wide trade log.
func (g *Game) TradeLog() []*types.Trade {
	return g.matching.TradeLog()
}

// playLoop visits every agent once. Within a loop the book and the shared
// state are live: agent k+1 observes the effects of agent k.
func (g *Game) playLoop(loop uint64) {
	for _, pt := range g.participants {
		var msgs []types.Message
		if pt.player != nil {
			msgs = pt.player.ActTurn(anonymiseSnapshot(g.matching.BookSnapshot(), pt.name))
		} else {
			msgs = pt.house.ActTurn(g.matching.BookSnapshot(), g.state, loop)
		}
		for i := range msgs {
			g.processMessage(loop, pt, &msgs[i])
		}
	}
	g.recordState(loop)
}

func (g *Game) processMessage(loop uint64, pt *participant, msg *types.Message) {
	switch msg.Type {
	case types.MessageTypeOrder:
		g.processOrder(loop, pt, msg.Order)
	case types.MessageTypeCancel:
		// unknown ids are tolerated, cancellation is idempotent
		g.matching.CancelOrder(msg.CancelID)
	case types.MessageTypeConversion:
		if !g.validateConversion(msg.Conversion) {
			return
		}
		result := g.converter.Convert(msg.Conversion)
		var observer agents.ConversionObserver
		if pt.player != nil {
			observer, _ = pt.player.(agents.ConversionObserver)
		} else {
			observer, _ = pt.house.(agents.ConversionObserver)
		}
		if observer != nil {
			observer.OnConversion(result)
		}
	default:
		g.log.Warn("dropping message of unknown type",
			logging.Party(pt.name),
			logging.String("type", msg.Type.String()))
	}
}

// processOrder validates, submits, settles and fans out one order intent. A
// validation failure rejects only this intent and leaves book and ledgers
// untouched.
func (g *Game) processOrder(loop uint64, pt *participant, order *types.Order) {
	if err := g.validateOrder(pt.name, order); err != nil {
		g.reject(loop, pt.name, order.ID, err)
		return
	}
	trades, err := g.matching.SubmitOrder(loop, order)
	if err != nil {
		if errors.Is(err, types.ErrDuplicateOrderID) {
			// caller-assigned ids must be globally unique, this is an
			// id-allocation bug, not a market condition
			g.log.Panic("duplicate order id submitted",
				logging.Party(pt.name),
				logging.OrderID(order.ID),
				logging.Error(err))
		}
		g.reject(loop, pt.name, order.ID, err)
		return
	}
	if len(trades) == 0 {
		return
	}
	for _, t := range trades {
		g.positions.ApplyTrade(t)
	}
	for _, other := range g.participants {
		if other.player != nil {
			other.player.ProcessTrades(anonymiseTrades(trades, other.name))
			continue
		}
		other.house.ProcessTrades(trades, g.state)
	}
}

func (g *Game) reject(loop uint64, party string, orderID uint64, err error) {
	g.rejections = append(g.rejections, Rejection{
		Loop:    loop,
		Party:   party,
		OrderID: orderID,
		Err:     err,
	})
	if bool(g.LogRejectedOrderDebug) && g.log.IsDebug() {
		g.log.Debug("order rejected",
			logging.Loop(loop),
			logging.Party(party),
			logging.OrderID(orderID),
			logging.Error(err))
	}
}

// recordState appends the end-of-loop row: per-instrument mid when both
// sides are quoted, sentiment, realisation, and every ledger.
func (g *Game) recordState(loop uint64) {
	row := &history.Row{
		Loop:        loop,
		Mids:        map[string]num.Decimal{},
		Sentiment:   g.state.SentimentSnapshot(),
		Realisation: g.state.RealisationSnapshot(),
		Positions:   map[string]map[string]int64{},
		Cash:        map[string]num.Decimal{},
	}
	for _, t := range g.tickers {
		if mid, ok := g.matching.MidPrice(t); ok {
			row.Mids[t] = mid
		}
	}
	for _, pt := range g.participants {
		ledger := g.positions.Ledger(pt.name)
		row.Positions[pt.name] = ledger.Positions()
		row.Cash[pt.name] = ledger.Cash()
	}
	g.history.Append(row)
}
