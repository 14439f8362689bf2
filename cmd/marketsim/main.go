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

package main

import (
	"fmt"
	"os"

	"code.vegaprotocol.io/marketsim/config"
	"code.vegaprotocol.io/marketsim/core/analytics"
	"code.vegaprotocol.io/marketsim/core/history"
	"code.vegaprotocol.io/marketsim/logging"

	"github.com/jessevdk/go-flags"
)

type options struct {
	Scenario  string   `short:"s" long:"scenario" description:"Path to the scenario JSON file" required:"true"`
	Config    string   `short:"c" long:"config" description:"Path to a TOML configuration file overriding the defaults"`
	Output    string   `short:"o" long:"output" description:"Write the run history CSV to this file"`
	PrintBook bool     `long:"print-book" description:"Print the final order books"`
	PnL       []string `long:"pnl" description:"Estimate the close-out value of the named agent's ledger (repeatable)"`
	Debug     bool     `long:"debug" description:"Force the dev logger regardless of the configured environment"`
}

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, "marketsim:", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	var opts options
	if _, err := flags.ParseArgs(&opts, args); err != nil {
		return err
	}

	cfg := config.NewDefaultConfig()
	if opts.Config != "" {
		var err error
		if cfg, err = config.Read(opts.Config); err != nil {
			return err
		}
	}
	if opts.Debug {
		cfg.Logging.Environment = "dev"
	}

	log := logging.NewLoggerFromEnv(cfg.Logging.Environment)
	defer log.Sync()

	scenario, err := config.ReadScenario(opts.Scenario)
	if err != nil {
		return err
	}

	g, err := scenario.Build(log, cfg)
	if err != nil {
		return err
	}

	log.Info("starting run",
		logging.String("scenario", opts.Scenario),
		logging.Uint64("iterations", scenario.Iterations),
		logging.Int64("seed", scenario.Seed))
	record := g.Run(scenario.Iterations)
	log.Info("run finished",
		logging.Int("trades", len(g.TradeLog())),
		logging.Int("rejections", len(g.Rejections())))

	if opts.Output != "" {
		f, err := os.Create(opts.Output)
		if err != nil {
			return err
		}
		defer f.Close()
		if err := record.WriteCSV(f); err != nil {
			return err
		}
		log.Info("run history written", logging.String("path", opts.Output))
	}

	if opts.PrintBook {
		tickers := make([]string, 0, len(scenario.Products))
		for _, p := range scenario.Products {
			tickers = append(tickers, p.Ticker)
		}
		history.PrintBook(os.Stdout, tickers, g.BookSnapshot())
	}

	ladders := scenario.Ladders()
	for _, party := range opts.PnL {
		ledger := g.Positions().Ledger(party)
		if ledger == nil {
			log.Warn("no ledger for agent", logging.Party(party))
			continue
		}
		value, err := analytics.CloseOutValue(ledger, g.BookSnapshot(), ladders)
		if err != nil {
			log.Warn("close-out value unavailable", logging.Party(party), logging.Error(err))
			continue
		}
		fmt.Printf("%s close-out value: %s\n", party, value.String())
	}
	return nil
}
