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

package marketstate

import (
	"code.vegaprotocol.io/marketsim/libs/num"
)

var (
	sentimentMin = num.MustDecimalFromString("-0.5")
	sentimentMax = num.MustDecimalFromString("0.5")
)

// Store is the single authoritative holder of the shared house-agent state:
// per-ticker sentiment and realisation. The orchestrator hands it to one
// house agent at a time, so within a loop agent k+1 observes what agent k
// wrote. Player agents never see it. No locking: one writer at any instant.
type Store struct {
	sentiment   map[string]num.Decimal
	realisation map[string]num.Decimal
	tickers     []string
}

// New creates the store with zero sentiment and realisation for each ticker.
func New(tickers []string) *Store {
	s := &Store{
		sentiment:   make(map[string]num.Decimal, len(tickers)),
		realisation: make(map[string]num.Decimal, len(tickers)),
		tickers:     append([]string{}, tickers...),
	}
	for _, t := range tickers {
		s.sentiment[t] = num.DecimalZero()
		s.realisation[t] = num.DecimalZero()
	}
	return s
}

// Sentiment returns the current sentiment of the ticker.
func (s *Store) Sentiment(ticker string) num.Decimal {
	return s.sentiment[ticker]
}

// SetSentiment writes the sentiment of the ticker, clamped to [-0.5, 0.5].
func (s *Store) SetSentiment(ticker string, v num.Decimal) {
	s.sentiment[ticker] = num.ClampD(v, sentimentMin, sentimentMax)
}

// AddSentiment shifts the sentiment of the ticker, clamping the result.
func (s *Store) AddSentiment(ticker string, delta num.Decimal) {
	s.SetSentiment(ticker, s.sentiment[ticker].Add(delta))
}

// Realisation returns the unresolved directional pressure of the ticker.
func (s *Store) Realisation(ticker string) num.Decimal {
	return s.realisation[ticker]
}

// SetRealisation writes the realisation of the ticker. Realisation is
// unbounded, it accumulates and decays through agent flow.
func (s *Store) SetRealisation(ticker string, v num.Decimal) {
	s.realisation[ticker] = v
}

// AddRealisation shifts the realisation of the ticker.
func (s *Store) AddRealisation(ticker string, delta num.Decimal) {
	s.realisation[ticker] = s.realisation[ticker].Add(delta)
}

// Tickers returns the tickers tracked by the store, in creation order.
func (s *Store) Tickers() []string {
	return s.tickers
}

// SentimentSnapshot returns a copy of the sentiment map for recording.
func (s *Store) SentimentSnapshot() map[string]num.Decimal {
	cpy := make(map[string]num.Decimal, len(s.sentiment))
	for k, v := range s.sentiment {
		cpy[k] = v
	}
	return cpy
}

// RealisationSnapshot returns a copy of the realisation map for recording.
func (s *Store) RealisationSnapshot() map[string]num.Decimal {
	cpy := make(map[string]num.Decimal, len(s.realisation))
	for k, v := range s.realisation {
		cpy[k] = v
	}
	return cpy
}
