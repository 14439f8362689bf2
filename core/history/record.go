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

// Package history keeps the append-only per-loop record of a run and
// serialises it for external analytics.
package history

import (
	"encoding/csv"
	"io"
	"strconv"

	"code.vegaprotocol.io/marketsim/libs/num"

	"github.com/pkg/errors"
)

// Row is the state captured at the end of one loop. A ticker missing from
// Mids had an empty side when the row was taken.
type Row struct {
	Loop        uint64
	Mids        map[string]num.Decimal
	Sentiment   map[string]num.Decimal
	Realisation map[string]num.Decimal
	// Positions is party -> ticker -> signed position.
	Positions map[string]map[string]int64
	Cash      map[string]num.Decimal
}

// Record is the run history, one row per loop. Column naming is stable for
// a given set of tickers and parties, so two runs of the same scenario
// serialise identically.
type Record struct {
	tickers []string
	parties []string
	rows    []*Row
}

// New creates an empty record for the given instruments and agents, both in
// their registration order.
func New(tickers, parties []string) *Record {
	return &Record{
		tickers: append([]string{}, tickers...),
		parties: append([]string{}, parties...),
	}
}

// Append adds the row for the next loop.
func (r *Record) Append(row *Row) {
	r.rows = append(r.rows, row)
}

// Rows returns all captured rows in loop order.
func (r *Record) Rows() []*Row {
	return r.rows
}

// Columns returns the stable header: Loop, then per ticker the mid,
// sentiment and realisation columns, then per party its per-ticker
// positions and cash.
func (r *Record) Columns() []string {
	cols := []string{"Loop"}
	for _, t := range r.tickers {
		cols = append(cols, t, "Sentiment_"+t, "Realisation_"+t)
	}
	for _, p := range r.parties {
		for _, t := range r.tickers {
			cols = append(cols, p+"_"+t)
		}
		cols = append(cols, p+"_Cash")
	}
	return cols
}

// WriteCSV serialises the record. A missing mid is written as an empty cell.
func (r *Record) WriteCSV(w io.Writer) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(r.Columns()); err != nil {
		return errors.Wrap(err, "writing header")
	}
	for _, row := range r.rows {
		rec := make([]string, 0, 1+3*len(r.tickers)+len(r.parties)*(len(r.tickers)+1))
		rec = append(rec, strconv.FormatUint(row.Loop, 10))
		for _, t := range r.tickers {
			if mid, ok := row.Mids[t]; ok {
				rec = append(rec, mid.String())
			} else {
				rec = append(rec, "")
			}
			rec = append(rec, row.Sentiment[t].String(), row.Realisation[t].String())
		}
		for _, p := range r.parties {
			for _, t := range r.tickers {
				rec = append(rec, strconv.FormatInt(row.Positions[p][t], 10))
			}
			rec = append(rec, row.Cash[p].String())
		}
		if err := cw.Write(rec); err != nil {
			return errors.Wrapf(err, "writing row for loop %d", row.Loop)
		}
	}
	cw.Flush()
	return errors.Wrap(cw.Error(), "flushing csv")
}
