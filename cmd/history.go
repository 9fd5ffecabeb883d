package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/bkrogh/depotskat"
	"github.com/google/subcommands"
)

// historyCmd holds the flags for the 'history' subcommand.
type historyCmd struct {
	ticker string
	last   int
}

func (*historyCmd) Name() string     { return "history" }
func (*historyCmd) Synopsis() string { return "display the daily valuation series" }
func (*historyCmd) Usage() string {
	return `depotskat history [-t <ticker>] [-n <days>]

  Displays the day-by-day valuation of the whole portfolio, or of a single
  ticker with -t: market value, net invested capital, net value after the
  estimated tax, and the growth index since inception.
`
}

func (c *historyCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.ticker, "t", "", "Restrict the series to one ticker.")
	f.IntVar(&c.last, "n", 30, "Number of most recent days to show. 0 shows all.")
}

func (c *historyCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	res, err := ComputeResult()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}

	points := res.Series
	title := "Portfolio history"
	if c.ticker != "" {
		series, ok := res.PerTicker[c.ticker]
		if !ok {
			fmt.Fprintf(os.Stderr, "no history for ticker %q\n", c.ticker)
			return subcommands.ExitUsageError
		}
		points = series.Points
		title = "History of " + c.ticker
	}
	if c.last > 0 && len(points) > c.last {
		points = points[len(points)-c.last:]
	}

	var md strings.Builder
	fmt.Fprintf(&md, "# %s\n\n", title)
	fmt.Fprintf(&md, "| Date | Value | Invested | Net value | Growth |\n|---|---:|---:|---:|---:|\n")
	for _, p := range points {
		fmt.Fprintf(&md, "| %s | %s | %s | %s | %s |\n",
			p.Date,
			depotskat.M(p.Value, depotskat.BaseCurrency),
			depotskat.M(p.Invested, depotskat.BaseCurrency),
			depotskat.M(p.NetValue, depotskat.BaseCurrency),
			p.Growth.SignedString())
	}
	printMarkdown(md.String())
	return subcommands.ExitSuccess
}
