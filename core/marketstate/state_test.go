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

package marketstate_test

import (
	"testing"

	"code.vegaprotocol.io/marketsim/core/marketstate"
	"code.vegaprotocol.io/marketsim/libs/num"

	"github.com/stretchr/testify/assert"
)

func d(s string) num.Decimal {
	return num.MustDecimalFromString(s)
}

func TestSentimentClampedOnWrite(t *testing.T) {
	store := marketstate.New([]string{"UEC"})

	store.SetSentiment("UEC", d("0.7"))
	assert.True(t, store.Sentiment("UEC").Equal(d("0.5")))

	store.SetSentiment("UEC", d("-0.7"))
	assert.True(t, store.Sentiment("UEC").Equal(d("-0.5")))

	store.SetSentiment("UEC", d("0.3"))
	assert.True(t, store.Sentiment("UEC").Equal(d("0.3")))
}

func TestAddSentimentAccumulatesAndClamps(t *testing.T) {
	store := marketstate.New([]string{"UEC"})

	store.AddSentiment("UEC", d("0.2"))
	store.AddSentiment("UEC", d("0.2"))
	assert.True(t, store.Sentiment("UEC").Equal(d("0.4")))

	store.AddSentiment("UEC", d("0.4"))
	assert.True(t, store.Sentiment("UEC").Equal(d("0.5")))

	store.AddSentiment("UEC", d("-2"))
	assert.True(t, store.Sentiment("UEC").Equal(d("-0.5")))
}

func TestRealisationUnbounded(t *testing.T) {
	store := marketstate.New([]string{"UEC"})

	store.AddRealisation("UEC", d("3"))
	store.AddRealisation("UEC", d("-7.5"))
	assert.True(t, store.Realisation("UEC").Equal(d("-4.5")))
}

func TestSnapshotsAreCopies(t *testing.T) {
	store := marketstate.New([]string{"UEC", "ABC"})
	store.SetSentiment("UEC", d("0.1"))

	snap := store.SentimentSnapshot()
	snap["UEC"] = d("0.4")
	assert.True(t, store.Sentiment("UEC").Equal(d("0.1")))
}
