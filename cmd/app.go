// Package cmd implements the CLI application to inspect a portfolio and its
// tax position.
package cmd

import (
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"os"

	"github.com/bkrogh/depotskat"
	"github.com/google/subcommands"
	"github.com/rs/zerolog"
)

// Register the subcommands.
// A main package will call Register() to allow subcommands, and Execute() on
// the user-selected one.
func Register(c *subcommands.Commander) {
	c.Register(&reportCmd{}, "reports")
	c.Register(&statsCmd{}, "reports")
	c.Register(&holdingsCmd{}, "reports")
	c.Register(&historyCmd{}, "reports")
	c.Register(&fmtCmd{}, "data")
	c.Register(&packCmd{}, "data")
}

// as a CLI application, it has a very short lived lifecycle, so it is ok to
// use global variables.

var ledgerFile = flag.String("ledger-file", "transactions.jsonl", "Path to the ledger file containing raw rows (JSONL format)")
var quotesFile = flag.String("quotes-file", "quotes.jsonl", "Path to the quotes file (JSONL format)")
var configFile = flag.String("config-file", "depotskat.json", "Path to the tax configuration file (JSON)")
var verbose = flag.Bool("v", false, "Enable debug logging")

// DecodeLedger loads and classifies the raw rows of the app ledger file.
func DecodeLedger() ([]depotskat.Transaction, error) {
	f, err := os.Open(*ledgerFile)
	if err != nil {
		return nil, fmt.Errorf("cannot open ledger %q: %w", *ledgerFile, err)
	}
	defer f.Close()
	rows, err := depotskat.DecodeRows(f)
	if err != nil {
		return nil, fmt.Errorf("cannot read ledger %q: %w", *ledgerFile, err)
	}
	return depotskat.ClassifyRows(rows), nil
}

// DecodeQuotes loads the app quotes file. A missing file yields an empty
// store; the engine then falls back to transaction prices.
func DecodeQuotes() (*depotskat.Quotes, error) {
	f, err := os.Open(*quotesFile)
	if errors.Is(err, fs.ErrNotExist) {
		fmt.Fprintf(os.Stderr, "warning: quotes file %q does not exist, valuations fall back to trade prices\n", *quotesFile)
		return depotskat.NewQuotes(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("cannot open quotes %q: %w", *quotesFile, err)
	}
	defer f.Close()
	quotes, err := depotskat.DecodeQuotes(f)
	if err != nil {
		return nil, fmt.Errorf("cannot read quotes %q: %w", *quotesFile, err)
	}
	return quotes, nil
}

// LoadConfig reads the tax configuration file and attaches the app logger.
// A missing file is not an error: the engine defaults apply.
func LoadConfig() (depotskat.Config, error) {
	var cfg depotskat.Config
	data, err := os.ReadFile(*configFile)
	if errors.Is(err, fs.ErrNotExist) {
		fmt.Fprintf(os.Stderr, "warning: config file %q does not exist, using default tax parameters\n", *configFile)
	} else if err != nil {
		return cfg, fmt.Errorf("cannot open config %q: %w", *configFile, err)
	} else if err := json.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("cannot parse config %q: %w", *configFile, err)
	}
	log := newLogger()
	cfg.Logger = &log
	return cfg, nil
}

func newLogger() zerolog.Logger {
	level := zerolog.WarnLevel
	if *verbose {
		level = zerolog.DebugLevel
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
		Level(level).
		With().Timestamp().Logger()
}

// ComputeResult loads everything and runs the engine once.
func ComputeResult() (*depotskat.Result, error) {
	txs, err := DecodeLedger()
	if err != nil {
		return nil, err
	}
	quotes, err := DecodeQuotes()
	if err != nil {
		return nil, err
	}
	cfg, err := LoadConfig()
	if err != nil {
		return nil, err
	}
	return depotskat.Compute(txs, quotes, cfg)
}
