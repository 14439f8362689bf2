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

package history

import (
	"fmt"
	"io"

	"code.vegaprotocol.io/marketsim/core/types"

	"github.com/fatih/color"
)

var (
	bidColour    = color.New(color.FgGreen)
	askColour    = color.New(color.FgRed)
	headerColour = color.New(color.Bold)
)

// PrintBook writes a two-sided ladder per instrument, bids on the left in
// green, asks on the right in red, both best-first.
func PrintBook(w io.Writer, tickers []string, snap types.BookSnapshot) {
	for _, ticker := range tickers {
		depth, ok := snap[ticker]
		if !ok {
			continue
		}
		headerColour.Fprintf(w, "Order book for %s\n", ticker)
		headerColour.Fprintf(w, "%-16s %8s %10s | %-10s %8s %-16s\n",
			"Party (Bid)", "Size", "Price", "Price", "Size", "Party (Ask)")

		rows := len(depth.Bids)
		if len(depth.Asks) > rows {
			rows = len(depth.Asks)
		}
		for i := 0; i < rows; i++ {
			if i < len(depth.Bids) {
				b := depth.Bids[i]
				bidColour.Fprintf(w, "%-16s %8d %10s", b.Party, b.Size, b.Price.String())
			} else {
				fmt.Fprintf(w, "%-16s %8s %10s", "", "", "")
			}
			fmt.Fprint(w, " | ")
			if i < len(depth.Asks) {
				a := depth.Asks[i]
				askColour.Fprintf(w, "%-10s %8d %-16s", a.Price.String(), a.Size, a.Party)
			}
			fmt.Fprintln(w)
		}
		fmt.Fprintln(w)
	}
}
