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

package game

import (
	"code.vegaprotocol.io/marketsim/core/matching"
	"code.vegaprotocol.io/marketsim/core/positions"
	"code.vegaprotocol.io/marketsim/libs/config/encoding"
	"code.vegaprotocol.io/marketsim/logging"
)

// namedLogger is the identifier for package and should ideally match the package name
// this is simply emitted as a hierarchical label e.g. 'game.matching'.
const namedLogger = "game"

// Config is the configuration of the game package and its engines.
type Config struct {
	Level encoding.LogLevel `long:"log-level"`

	LogRejectedOrderDebug encoding.Bool `long:"log-rejected-order-debug"`

	Matching  matching.Config
	Positions positions.Config
}

// NewDefaultConfig creates an instance of the package specific configuration.
func NewDefaultConfig() Config {
	return Config{
		Level:                 encoding.LogLevel{Level: logging.InfoLevel},
		LogRejectedOrderDebug: false,
		Matching:              matching.NewDefaultConfig(),
		Positions:             positions.NewDefaultConfig(),
	}
}
