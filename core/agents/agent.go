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

// Package agents holds the agent capability contracts and the house trading
// policies driven by the turn orchestrator.
package agents

import (
	"code.vegaprotocol.io/marketsim/core/idgeneration"
	"code.vegaprotocol.io/marketsim/core/marketstate"
	"code.vegaprotocol.io/marketsim/core/types"
)

// House is the capability contract of a house agent. House agents share the
// sentiment/realisation store and see trades unredacted.
type House interface {
	// Name is the unique registration name of the agent.
	Name() string
	// SetIDSequence hands the agent its private order-id range at
	// registration time.
	SetIDSequence(seq *idgeneration.Sequence)
	// ActTurn consumes the current book view and the shared state, and emits
	// the agent's intents for this turn. The agent may mutate the store; it
	// is the only writer while the call runs.
	ActTurn(book types.BookSnapshot, state *marketstate.Store, loop uint64) []types.Message
	// ProcessTrades observes every trade of a submission, with write access
	// to the realisation state.
	ProcessTrades(trades []*types.Trade, state *marketstate.Store)
}

// Player is the restricted capability contract of an evaluated agent: no
// shared state, anonymized trades. The narrower signature is the enforced
// anti-leakage boundary.
type Player interface {
	Name() string
	SetIDSequence(seq *idgeneration.Sequence)
	ActTurn(book types.BookSnapshot) []types.Message
	ProcessTrades(trades []*types.Trade)
}

// ConversionObserver is an optional capability: agents implementing it are
// told the outcome of their conversion requests.
type ConversionObserver interface {
	OnConversion(result types.ConversionResult)
}
