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

// Package config holds the application configuration and the scenario
// definition loaded at startup.
package config

import (
	"code.vegaprotocol.io/marketsim/core/game"
	"code.vegaprotocol.io/marketsim/logging"

	"github.com/BurntSushi/toml"
	"github.com/pkg/errors"
)

// Config aggregates every package configuration of the simulator.
type Config struct {
	Logging logging.Config
	Game    game.Config
}

// NewDefaultConfig returns the configuration used when no file is given.
func NewDefaultConfig() Config {
	return Config{
		Logging: logging.NewDefaultConfig(),
		Game:    game.NewDefaultConfig(),
	}
}

// Read decodes a TOML configuration file over the defaults, so a partial
// file only overrides what it names.
func Read(path string) (Config, error) {
	cfg := NewDefaultConfig()
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return Config{}, errors.Wrapf(err, "reading config %s", path)
	}
	return cfg, nil
}
