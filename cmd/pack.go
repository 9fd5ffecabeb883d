package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/bkrogh/depotskat"
	"github.com/google/subcommands"
)

// packCmd holds the flags for the 'pack' subcommand.
type packCmd struct{}

func (*packCmd) Name() string { return "pack" }
func (*packCmd) Synopsis() string {
	return "compacts the quotes file into packed per-ticker histories"
}
func (*packCmd) Usage() string {
	return `depotskat pack

  Rewrites the quotes file with one packed line per ticker. Single-point
  lines accumulated by imports are folded into their ticker's history, which
  shrinks a multi-year daily quotes file to a fraction of its size.
`
}

func (*packCmd) SetFlags(f *flag.FlagSet) {}

func (c *packCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	in, err := os.Open(*quotesFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: could not open quotes: %v\n", err)
		return subcommands.ExitFailure
	}
	quotes, err := depotskat.DecodeQuotes(in)
	in.Close()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: could not read quotes: %v\n", err)
		return subcommands.ExitFailure
	}

	out, err := os.Create(*quotesFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: could not rewrite quotes: %v\n", err)
		return subcommands.ExitFailure
	}
	defer out.Close()
	if err := depotskat.EncodeQuotes(out, quotes); err != nil {
		fmt.Fprintf(os.Stderr, "Error: could not write quotes: %v\n", err)
		return subcommands.ExitFailure
	}

	fmt.Fprintf(os.Stderr, "Packed quotes into %s.\n", *quotesFile)
	return subcommands.ExitSuccess
}
