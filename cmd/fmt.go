package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"slices"
	"strings"

	"github.com/bkrogh/depotskat"
	"github.com/google/subcommands"
)

// fmtCmd holds the flags for the 'fmt' subcommand.
type fmtCmd struct{}

func (*fmtCmd) Name() string { return "fmt" }
func (*fmtCmd) Synopsis() string {
	return "validates and formats the ledger file into a canonical form"
}
func (*fmtCmd) Usage() string {
	return `depotskat fmt

  Validates and formats the ledger file. This command reads all rows, reports
  the ones that would be skipped by classification, sorts them by date, and
  writes them back in a canonical JSONL format.
`
}

func (*fmtCmd) SetFlags(f *flag.FlagSet) {}

func (c *fmtCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	in, err := os.Open(*ledgerFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: could not open ledger: %v\n", err)
		return subcommands.ExitFailure
	}
	rows, err := depotskat.DecodeRows(in)
	in.Close()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: could not read ledger: %v\n", err)
		return subcommands.ExitFailure
	}

	skipped := 0
	for _, r := range rows {
		if _, ok := depotskat.ClassifyRow(r); !ok {
			skipped++
		}
	}
	if skipped > 0 {
		fmt.Fprintf(os.Stderr, "Warning: %d row(s) will be skipped by classification.\n", skipped)
	}

	// ISO dates sort correctly as strings; the stable sort keeps same-day
	// rows in their original order.
	slices.SortStableFunc(rows, func(a, b depotskat.Row) int {
		return strings.Compare(a.Date, b.Date)
	})

	out, err := os.Create(*ledgerFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: could not rewrite ledger: %v\n", err)
		return subcommands.ExitFailure
	}
	defer out.Close()
	if err := depotskat.EncodeRows(out, rows); err != nil {
		fmt.Fprintf(os.Stderr, "Error: could not write ledger: %v\n", err)
		return subcommands.ExitFailure
	}

	fmt.Fprintf(os.Stderr, "Formatted %d row(s) in %s.\n", len(rows), *ledgerFile)
	return subcommands.ExitSuccess
}
