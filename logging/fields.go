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

package logging

import (
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// Typed field helpers so that callers never import zap directly.

func String(key, val string) zap.Field {
	return zap.String(key, val)
}

func Strings(key string, val []string) zap.Field {
	return zap.Strings(key, val)
}

func Int(key string, val int) zap.Field {
	return zap.Int(key, val)
}

func Int64(key string, val int64) zap.Field {
	return zap.Int64(key, val)
}

func Uint64(key string, val uint64) zap.Field {
	return zap.Uint64(key, val)
}

func Float64(key string, val float64) zap.Field {
	return zap.Float64(key, val)
}

func Bool(key string, val bool) zap.Field {
	return zap.Bool(key, val)
}

func Decimal(key string, val decimal.Decimal) zap.Field {
	return zap.String(key, val.String())
}

func Error(val error) zap.Field {
	return zap.Error(val)
}

func OrderID(id uint64) zap.Field {
	return zap.Uint64("order-id", id)
}

func Ticker(t string) zap.Field {
	return zap.String("ticker", t)
}

func Party(p string) zap.Field {
	return zap.String("party", p)
}

func Loop(n uint64) zap.Field {
	return zap.Uint64("loop", n)
}
