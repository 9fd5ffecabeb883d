package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/google/subcommands"
)

// statsCmd holds the flags for the 'stats' subcommand.
type statsCmd struct{}

func (*statsCmd) Name() string     { return "stats" }
func (*statsCmd) Synopsis() string { return "display per-year performance statistics" }
func (*statsCmd) Usage() string {
	return `depotskat stats

  Displays the per-year time-weighted return, absolute gain, net invested
  capital, cash flow and annualized volatility, most recent year first.
`
}

func (*statsCmd) SetFlags(f *flag.FlagSet) {}

func (c *statsCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	res, err := ComputeResult()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}

	var md strings.Builder
	fmt.Fprintf(&md, "# Yearly statistics\n\n")
	fmt.Fprintf(&md, "| Year | Return | Gain | Net invested | Flow | Volatility |\n|---|---:|---:|---:|---:|---:|\n")
	for _, s := range res.YearlyStats {
		fmt.Fprintf(&md, "| %d | %s | %s | %s | %s | %s |\n",
			s.Year, s.Return.SignedString(), s.Gain.SignedString(),
			s.NetInvested.SignedString(), s.Flow.SignedString(), s.Volatility)
	}
	printMarkdown(md.String())
	return subcommands.ExitSuccess
}
