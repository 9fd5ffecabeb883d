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

// holdingsCmd holds the flags for the 'holdings' subcommand.
type holdingsCmd struct{}

func (*holdingsCmd) Name() string     { return "holdings" }
func (*holdingsCmd) Synopsis() string { return "display current positions and the liquidation estimate" }
func (*holdingsCmd) Usage() string {
	return `depotskat holdings

  Displays the open positions with their average cost, the portfolio overview
  as of today, and the estimated outcome of selling everything now.
`
}

func (*holdingsCmd) SetFlags(f *flag.FlagSet) {}

func (c *holdingsCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	res, err := ComputeResult()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}

	keys := make([]depotskat.PositionKey, 0, len(res.Positions))
	for key := range res.Positions {
		keys = append(keys, key)
	}
	slices.SortFunc(keys, func(a, b depotskat.PositionKey) int {
		if c := strings.Compare(a.Ticker, b.Ticker); c != 0 {
			return c
		}
		return strings.Compare(a.Account, b.Account)
	})

	var md strings.Builder
	ov := res.Overview
	fmt.Fprintf(&md, "# Holdings as of %s\n\n", ov.Date)

	fmt.Fprintf(&md, "| Ticker | Account | Quantity | Avg cost | Total cost |\n|---|---|---:|---:|---:|\n")
	for _, key := range keys {
		p := res.Positions[key]
		fmt.Fprintf(&md, "| %s | %s | %s | %s | %s |\n",
			key.Ticker, key.Account, p.Quantity, p.AverageCost, p.AccumulatedCost)
	}
	fmt.Fprintf(&md, "\n")

	fmt.Fprintf(&md, "| Overview | |\n|---|---:|\n")
	fmt.Fprintf(&md, "| Market value | %s |\n", ov.TotalValue)
	fmt.Fprintf(&md, "| Cost basis | %s |\n", ov.TotalCost)
	fmt.Fprintf(&md, "| Unrealized gain | %s |\n", ov.UnrealizedGain.SignedString())
	fmt.Fprintf(&md, "| All-time gain | %s |\n", ov.AllTimeGain.SignedString())
	fmt.Fprintf(&md, "| Tax paid | %s |\n", ov.TaxPaid)
	fmt.Fprintf(&md, "| Effective tax rate | %s |\n", ov.EffectiveTaxRate)
	fmt.Fprintf(&md, "\n")

	fmt.Fprintf(&md, "## If sold today\n\n")
	fmt.Fprintf(&md, "| | |\n|---|---:|\n")
	fmt.Fprintf(&md, "| Gross proceeds | %s |\n", ov.Liquidation.GrossValue)
	for _, item := range ov.Liquidation.Items {
		fmt.Fprintf(&md, "| %s | %s |\n", item.Label, item.Amount.SignedString())
	}
	fmt.Fprintf(&md, "| Estimated tax | %s |\n", ov.Liquidation.EstimatedTax)
	fmt.Fprintf(&md, "| **Net proceeds** | **%s** |\n", ov.Liquidation.NetProceeds)

	printMarkdown(md.String())
	return subcommands.ExitSuccess
}
