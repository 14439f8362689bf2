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

package config

import (
	"encoding/json"
	"math/rand"
	"os"

	"code.vegaprotocol.io/marketsim/core/agents"
	"code.vegaprotocol.io/marketsim/core/analytics"
	"code.vegaprotocol.io/marketsim/core/game"
	"code.vegaprotocol.io/marketsim/core/types"
	"code.vegaprotocol.io/marketsim/libs/num"
	"code.vegaprotocol.io/marketsim/logging"

	"github.com/pkg/errors"
)

// Agent type discriminators accepted in a scenario file.
const (
	AgentTypeMarketMaker = "marketMaker"
	AgentTypeNoise       = "noise"
	AgentTypeReverter    = "reverter"
	AgentTypeTaker       = "taker"
	AgentTypePlayer      = "player"
)

// ErrInvalidScenario covers structural problems in a scenario file.
var ErrInvalidScenario = errors.New("invalid scenario")

// ProductEntry describes one instrument of the scenario.
type ProductEntry struct {
	Ticker   string      `json:"ticker"`
	TickSize num.Decimal `json:"tickSize"`
	LotSize  uint64      `json:"lotSize"`
	MinPrice num.Decimal `json:"minPrice"`
	// MaxPrice zero means unbounded.
	MaxPrice num.Decimal `json:"maxPrice"`
	// PositionLimit zero means no limit.
	PositionLimit uint64 `json:"positionLimit"`
	// Conversions maps a target ticker to the conversion rate.
	Conversions map[string]num.Decimal `json:"conversions"`
}

// AgentEntry describes one agent of the scenario. Type selects which of the
// policy configs applies; agents are registered in file order, and that
// order is part of the scenario's observable behaviour.
type AgentEntry struct {
	Type string `json:"type"`

	MarketMaker *agents.MarketMakerConfig `json:"marketMaker,omitempty"`
	Noise       *agents.NoiseTraderConfig `json:"noise,omitempty"`
	Reverter    *agents.ReverterConfig    `json:"reverter,omitempty"`
	Taker       *agents.TakerConfig       `json:"taker,omitempty"`
	// PlayerName registers the reference watcher player under that name.
	// External strategies are registered programmatically instead.
	PlayerName string `json:"playerName,omitempty"`
}

// Scenario is the JSON run definition: instruments, agent roster and the
// run length. Two runs of the same scenario produce identical histories.
type Scenario struct {
	Seed              int64          `json:"seed"`
	Iterations        uint64         `json:"iterations"`
	PositionLimitMode string         `json:"positionLimitMode"`
	ExemptAgents      []string       `json:"exemptAgents"`
	Products          []ProductEntry `json:"products"`
	Agents            []AgentEntry   `json:"agents"`
}

// ReadScenario loads and validates a scenario file.
func ReadScenario(path string) (*Scenario, error) {
	buf, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "reading scenario %s", path)
	}
	s := &Scenario{}
	if err := json.Unmarshal(buf, s); err != nil {
		return nil, errors.Wrapf(err, "parsing scenario %s", path)
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

// Validate checks the structural invariants of the scenario.
func (s *Scenario) Validate() error {
	if s.Iterations == 0 {
		return errors.Wrap(ErrInvalidScenario, "iterations must be positive")
	}
	if len(s.Products) == 0 {
		return errors.Wrap(ErrInvalidScenario, "at least one product is required")
	}
	seen := map[string]struct{}{}
	for _, p := range s.Products {
		if p.Ticker == "" {
			return errors.Wrap(ErrInvalidScenario, "product without ticker")
		}
		if _, dup := seen[p.Ticker]; dup {
			return errors.Wrapf(ErrInvalidScenario, "duplicate product %s", p.Ticker)
		}
		seen[p.Ticker] = struct{}{}
		if !p.TickSize.IsPositive() {
			return errors.Wrapf(ErrInvalidScenario, "product %s needs a positive tick size", p.Ticker)
		}
	}
	if _, err := game.ParsePositionLimitMode(s.PositionLimitMode); err != nil {
		return err
	}
	for i, a := range s.Agents {
		switch a.Type {
		case AgentTypeMarketMaker:
			if a.MarketMaker == nil {
				return errors.Wrapf(ErrInvalidScenario, "agent %d: missing marketMaker config", i)
			}
		case AgentTypeNoise:
			if a.Noise == nil {
				return errors.Wrapf(ErrInvalidScenario, "agent %d: missing noise config", i)
			}
		case AgentTypeReverter:
			if a.Reverter == nil {
				return errors.Wrapf(ErrInvalidScenario, "agent %d: missing reverter config", i)
			}
		case AgentTypeTaker:
			if a.Taker == nil {
				return errors.Wrapf(ErrInvalidScenario, "agent %d: missing taker config", i)
			}
		case AgentTypePlayer:
			if a.PlayerName == "" {
				return errors.Wrapf(ErrInvalidScenario, "agent %d: missing player name", i)
			}
		default:
			return errors.Wrapf(ErrInvalidScenario, "agent %d: unknown type %q", i, a.Type)
		}
	}
	return nil
}

// BuildProducts materialises the scenario instruments.
func (s *Scenario) BuildProducts() []*types.Product {
	products := make([]*types.Product, 0, len(s.Products))
	for _, e := range s.Products {
		p := types.NewProduct(e.Ticker, e.TickSize)
		if e.LotSize > 0 {
			p.LotSize = e.LotSize
		}
		p.MinPrice = e.MinPrice
		p.MaxPrice = e.MaxPrice
		p.PositionLimit = e.PositionLimit
		for to, rate := range e.Conversions {
			p.Conversions[to] = rate
		}
		products = append(products, p)
	}
	return products
}

// Build wires the whole run: products, engines, agents in file order, all
// randomness drawn from one seeded source.
func (s *Scenario) Build(log *logging.Logger, cfg Config) (*game.Game, error) {
	mode, err := game.ParsePositionLimitMode(s.PositionLimitMode)
	if err != nil {
		return nil, err
	}
	products := s.BuildProducts()
	rng := rand.New(rand.NewSource(s.Seed))

	g := game.New(log, cfg.Game, products, mode, s.ExemptAgents)
	for _, entry := range s.Agents {
		switch entry.Type {
		case AgentTypeMarketMaker:
			g.RegisterHouse(agents.NewMarketMaker(log, *entry.MarketMaker, products))
		case AgentTypeNoise:
			g.RegisterHouse(agents.NewNoiseTrader(log, *entry.Noise, products, rng))
		case AgentTypeReverter:
			g.RegisterHouse(agents.NewReverter(log, *entry.Reverter, products, rng))
		case AgentTypeTaker:
			g.RegisterHouse(agents.NewTaker(log, *entry.Taker, products, rng))
		case AgentTypePlayer:
			g.RegisterPlayer(agents.NewWatcherPlayer(entry.PlayerName, products))
		}
	}
	return g, nil
}

// Ladders derives the close-out ladder parameters from the first market
// maker of the roster, the agent whose quotes the close-out trades against.
func (s *Scenario) Ladders() map[string]analytics.LadderParams {
	for _, entry := range s.Agents {
		if entry.Type != AgentTypeMarketMaker {
			continue
		}
		mm := entry.MarketMaker
		ladders := make(map[string]analytics.LadderParams, len(s.Products))
		for _, p := range s.Products {
			spacing, okS := mm.LevelSpacingTicks[p.Ticker]
			size, okZ := mm.LevelSize[p.Ticker]
			if !okS || !okZ || size == 0 {
				continue
			}
			ladders[p.Ticker] = analytics.LadderParams{
				LevelSpacing: p.TickSize.Mul(num.DecimalFromUint64(spacing)),
				LevelSize:    size,
			}
		}
		return ladders
	}
	return nil
}
