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

package matching

import (
	"code.vegaprotocol.io/marketsim/libs/config/encoding"
	"code.vegaprotocol.io/marketsim/logging"
)

// namedLogger is the identifier for package and should ideally match the package name
// this is simply emitted as a hierarchical label e.g. 'game.matching'.
const namedLogger = "matching"

// Config is the configuration of the matching package.
type Config struct {
	Level encoding.LogLevel `long:"log-level"`

	LogOrderSubmitDebug encoding.Bool `long:"log-order-submit-debug"`
	LogOrderCancelDebug encoding.Bool `long:"log-order-cancel-debug"`
}

// NewDefaultConfig creates an instance of the package specific configuration.
func NewDefaultConfig() Config {
	return Config{
		Level:               encoding.LogLevel{Level: logging.InfoLevel},
		LogOrderSubmitDebug: false,
		LogOrderCancelDebug: false,
	}
}
