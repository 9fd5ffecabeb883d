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

// reportCmd holds the flags for the 'report' subcommand.
type reportCmd struct {
	year int
}

func (*reportCmd) Name() string     { return "report" }
func (*reportCmd) Synopsis() string { return "display the yearly tax report(s)" }
func (*reportCmd) Usage() string {
	return `depotskat report [-y <year>]

  Computes the yearly tax reports from the ledger and displays them: share
  income and its bracketed tax, capital income, the favored account, loss
  carry-forward state, and the itemized sales and dividends behind the
  numbers. Without -y, every year in range is shown.
`
}

func (c *reportCmd) SetFlags(f *flag.FlagSet) {
	f.IntVar(&c.year, "y", 0, "Report a single year. Defaults to all years.")
}

func (c *reportCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	res, err := ComputeResult()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}

	years := res.Years()
	if c.year != 0 {
		if _, ok := res.Reports[c.year]; !ok {
			fmt.Fprintf(os.Stderr, "no report for year %d\n", c.year)
			return subcommands.ExitUsageError
		}
		years = []int{c.year}
	}

	var md strings.Builder
	for _, year := range years {
		renderReport(&md, res.Reports[year])
	}
	printMarkdown(md.String())
	return subcommands.ExitSuccess
}

func renderReport(md *strings.Builder, r *depotskat.YearlyReport) {
	fmt.Fprintf(md, "# Tax report %d\n\n", r.Year)

	fmt.Fprintf(md, "| | |\n|---|---:|\n")
	fmt.Fprintf(md, "| Realized stock gains | %s |\n", r.StockGain.SignedString())
	fmt.Fprintf(md, "| ETF inventory gains | %s |\n", r.ETFGain.SignedString())
	fmt.Fprintf(md, "| Dividends, domestic | %s |\n", r.DividendDomestic.SignedString())
	fmt.Fprintf(md, "| Dividends, foreign | %s |\n", r.DividendForeign.SignedString())
	fmt.Fprintf(md, "| Withheld dividend tax | %s |\n", r.WithheldDividendTax.SignedString())
	fmt.Fprintf(md, "| Capital income | %s |\n", r.CapitalIncome.SignedString())
	fmt.Fprintf(md, "| Favored account gain | %s |\n", r.FavoredGain.SignedString())
	fmt.Fprintf(md, "\n")

	fmt.Fprintf(md, "| Carry-forward | General | Favored |\n|---|---:|---:|\n")
	fmt.Fprintf(md, "| Taxable | %s | %s |\n", r.TaxableGain, r.FavoredTaxable)
	fmt.Fprintf(md, "| Utilized loss | %s | %s |\n", r.UtilizedLoss, r.UtilizedFavoredLoss)
	fmt.Fprintf(md, "| Carried loss | %s | %s |\n", r.CarriedLoss, r.CarriedFavoredLoss)
	fmt.Fprintf(md, "\n")

	fmt.Fprintf(md, "| Liability | |\n|---|---:|\n")
	fmt.Fprintf(md, "| Share income tax | %s |\n", r.ShareTax)
	fmt.Fprintf(md, "| Capital income tax | %s |\n", r.CapitalTax)
	fmt.Fprintf(md, "| Favored account tax | %s |\n", r.FavoredTax)
	fmt.Fprintf(md, "| **Total** | **%s** |\n", r.TotalTax)
	if !r.PaidTax.IsZero() || !r.PaidFavoredTax.IsZero() {
		fmt.Fprintf(md, "| Paid | %s |\n", r.PaidTax.Add(r.PaidFavoredTax))
	}
	fmt.Fprintf(md, "\n")

	if len(r.StockSales) > 0 {
		fmt.Fprintf(md, "## Sales\n\n")
		fmt.Fprintf(md, "| Date | Ticker | Account | Qty | Proceeds | Cost | Gain |\n|---|---|---|---:|---:|---:|---:|\n")
		for _, s := range r.StockSales {
			fmt.Fprintf(md, "| %s | %s | %s | %s | %s | %s | %s |\n",
				s.Date, s.Ticker, s.Account, s.Quantity, s.Proceeds, s.Cost, s.Gain.SignedString())
		}
		fmt.Fprintf(md, "\n")
	}

	if len(r.Dividends) > 0 {
		fmt.Fprintf(md, "## Dividends\n\n")
		fmt.Fprintf(md, "| Date | Ticker | Gross | Withheld | Foreign |\n|---|---|---:|---:|---|\n")
		for _, d := range r.Dividends {
			foreign := ""
			if d.Foreign {
				foreign = "yes"
			}
			fmt.Fprintf(md, "| %s | %s | %s | %s | %s |\n", d.Date, d.Ticker, d.Gross, d.Withheld, foreign)
		}
		fmt.Fprintf(md, "\n")
	}

	if len(r.ETFSummaries) > 0 {
		fmt.Fprintf(md, "## Inventory positions\n\n")
		fmt.Fprintf(md, "| Ticker | Account | Primo | Ultimo | Net flows | Gain |\n|---|---|---:|---:|---:|---:|\n")
		for _, s := range r.ETFSummaries {
			fmt.Fprintf(md, "| %s | %s | %s | %s | %s | %s |\n",
				s.Key.Ticker, s.Key.Account, s.StartValue, s.EndValue, s.NetFlows.SignedString(), s.Gain.SignedString())
		}
		fmt.Fprintf(md, "\n")
	}
}
