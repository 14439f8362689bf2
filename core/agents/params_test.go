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
	"testing"

	"code.vegaprotocol.io/marketsim/core/types"
	"code.vegaprotocol.io/marketsim/libs/num"

	"github.com/stretchr/testify/assert"
)

func TestPickSideSaturatedWeights(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	for i := 0; i < 100; i++ {
		assert.Equal(t, types.SideBuy, pickSide(rng, num.DecimalOne()))
		assert.Equal(t, types.SideSell, pickSide(rng, num.DecimalZero()))
	}
}

func TestSampleExponentialSizeBounds(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	factor := num.MustDecimalFromString("1000")
	for i := 0; i < 1000; i++ {
		size := sampleExponentialSize(rng, factor, num.MustDecimalFromString("5"), 50)
		assert.GreaterOrEqual(t, size, uint64(1))
	}
}

func TestSampleExponentialSizeZeroSpread(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	// a degenerate spread must not divide by zero
	size := sampleExponentialSize(rng, num.DecimalOne(), num.DecimalZero(), 10)
	assert.GreaterOrEqual(t, size, uint64(1))
}

func TestSampleNormalSizeFloorsAtOne(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	for i := 0; i < 1000; i++ {
		assert.GreaterOrEqual(t, sampleNormalSize(rng, -5, 1), uint64(1))
	}
}

func TestParamLookupDefaults(t *testing.T) {
	vals := map[string]num.Decimal{"UEC": num.MustDecimalFromString("0.3")}
	assert.True(t, decimalParam(vals, "UEC", num.DecimalZero()).Equal(num.MustDecimalFromString("0.3")))
	assert.True(t, decimalParam(vals, "ABC", num.DecimalOne()).Equal(num.DecimalOne()))
	assert.True(t, decimalParam(nil, "ABC", num.DecimalOne()).Equal(num.DecimalOne()))

	sizes := map[string]uint64{"UEC": 50}
	assert.EqualValues(t, 50, uintParam(sizes, "UEC", 1))
	assert.EqualValues(t, 1, uintParam(sizes, "ABC", 1))

	freqs := map[string]float64{"UEC": 0.2}
	assert.EqualValues(t, 0.2, floatParam(freqs, "UEC", 0.01))
	assert.EqualValues(t, 0.01, floatParam(freqs, "ABC", 0.01))
}
