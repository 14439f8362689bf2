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

package positions

import (
	"fmt"

	"code.vegaprotocol.io/marketsim/core/types"
	"code.vegaprotocol.io/marketsim/libs/num"
	"code.vegaprotocol.io/marketsim/logging"
)

// Ledger tracks one agent's signed position per instrument and its cash
// balance. Only the orchestrator mutates it, through the engine.
type Ledger struct {
	party     string
	positions map[string]int64
	cash      num.Decimal
}

// Party returns the agent the ledger belongs to.
func (l *Ledger) Party() string {
	return l.party
}

// Position returns the signed position held in the instrument.
func (l *Ledger) Position(ticker string) int64 {
	return l.positions[ticker]
}

// Cash returns the cash balance.
func (l *Ledger) Cash() num.Decimal {
	return l.cash
}

// Positions returns a copy of all instrument positions.
func (l *Ledger) Positions() map[string]int64 {
	cpy := make(map[string]int64, len(l.positions))
	for k, v := range l.positions {
		cpy[k] = v
	}
	return cpy
}

func (l *Ledger) String() string {
	return fmt.Sprintf("ledger{party:%s cash:%s positions:%v}", l.party, l.cash.String(), l.positions)
}

// Engine keeps the ledgers of every registered agent and settles trades into
// them. Cash and position deltas are exact inverses across the two
// counterparties, so instrument positions always sum to zero.
type Engine struct {
	Config
	log *logging.Logger

	ledgers map[string]*Ledger
	// parties keeps registration order for deterministic iteration.
	parties []string
	tickers []string
}

// NewEngine instantiates the position engine for the given instruments.
func NewEngine(log *logging.Logger, config Config, tickers []string) *Engine {
	log = log.Named(namedLogger)
	log.SetLevel(config.Level.Get())
	return &Engine{
		Config:  config,
		log:     log,
		ledgers: map[string]*Ledger{},
		tickers: append([]string{}, tickers...),
	}
}

// RegisterParty opens a zeroed ledger for the agent, a no-op if present.
func (e *Engine) RegisterParty(party string) {
	if _, exists := e.ledgers[party]; exists {
		return
	}
	positions := make(map[string]int64, len(e.tickers))
	for _, t := range e.tickers {
		positions[t] = 0
	}
	e.ledgers[party] = &Ledger{
		party:     party,
		positions: positions,
		cash:      num.DecimalZero(),
	}
	e.parties = append(e.parties, party)
}

// ApplyTrade settles a trade into both counterparties' ledgers. The
// aggressor moves position by its signed size and pays size*price; the
// resting counterparty takes the exact inverse.
func (e *Engine) ApplyTrade(t *types.Trade) {
	agg, ok := e.ledgers[t.AggressorParty]
	if !ok {
		e.log.Panic("trade for unregistered aggressor", logging.Party(t.AggressorParty))
	}
	rest, ok := e.ledgers[t.RestingParty]
	if !ok {
		e.log.Panic("trade for unregistered resting party", logging.Party(t.RestingParty))
	}

	signedSize := t.Aggressor.Sign() * int64(t.Size)
	notional := num.DecimalFromInt64(signedSize).Mul(t.Price)

	agg.positions[t.Ticker] += signedSize
	agg.cash = agg.cash.Sub(notional)
	rest.positions[t.Ticker] -= signedSize
	rest.cash = rest.cash.Add(notional)

	if bool(e.LogTradeDebug) && e.log.IsDebug() {
		e.log.Debug("trade settled",
			logging.Ticker(t.Ticker),
			logging.Party(t.AggressorParty),
			logging.Int64("signed-size", signedSize),
			logging.Decimal("notional", notional))
	}
}

// Ledger returns the ledger of the agent, or nil when not registered.
func (e *Engine) Ledger(party string) *Ledger {
	return e.ledgers[party]
}

// Parties returns all registered agents in registration order.
func (e *Engine) Parties() []string {
	return e.parties
}
