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

import "github.com/pkg/errors"

// PositionLimitMode selects the position-limit policy applied during order
// validation. The limit check itself is an extension point: soft mode
// permits every order, hard mode rejects every order.
type PositionLimitMode int8

const (
	// PositionLimitSoft admits every order regardless of position.
	PositionLimitSoft PositionLimitMode = iota
	// PositionLimitHard rejects every order from a non-exempt agent.
	PositionLimitHard
)

// ErrUnknownPositionLimitMode is returned when parsing an unrecognised mode.
var ErrUnknownPositionLimitMode = errors.New("unknown position limit mode")

func (m PositionLimitMode) String() string {
	if m == PositionLimitHard {
		return "HARD"
	}
	return "SOFT"
}

// ParsePositionLimitMode parses SOFT or HARD, case-sensitive.
func ParsePositionLimitMode(s string) (PositionLimitMode, error) {
	switch s {
	case "", "SOFT":
		return PositionLimitSoft, nil
	case "HARD":
		return PositionLimitHard, nil
	}
	return PositionLimitSoft, errors.Wrap(ErrUnknownPositionLimitMode, s)
}
