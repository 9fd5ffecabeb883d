package depotskat

import (
	"maps"
	"slices"

	"github.com/bkrogh/depotskat/date"
)

// YearlyReport aggregates one calendar year's taxable amounts, the per-regime
// loss carry-forward state, and the itemized breakdowns behind them. Reports
// are created empty for every year in range and mutated by the pipeline
// stages in chronological order; carry-forward fields are only final after
// all years have been processed.
type YearlyReport struct {
	Year int

	// Tax-form line items.
	StockGain        Money // realized gains under the realization regime
	ETFGain          Money // inventory ETF gains outside the favored account
	CapitalIncome    Money // interest and other capital income
	DividendDomestic Money
	DividendForeign  Money
	WithheldDividendTax Money
	FavoredGain      Money // inventory gain inside the favored account

	// Out-of-band tax payments matched to this year.
	PaidTax        Money
	PaidFavoredTax Money

	// Loss carry-forward, general share-income regime.
	TaxableGain  Money
	UtilizedLoss Money
	CarriedLoss  Money

	// Loss carry-forward, favored-account regime.
	FavoredTaxable      Money
	UtilizedFavoredLoss Money
	CarriedFavoredLoss  Money

	// Liability.
	ShareTax   Money // bracketed tax on taxable share income
	CapitalTax Money // flat tax on capital income
	FavoredTax Money // flat tax on the favored-account taxable gain
	TotalTax   Money

	// Itemized breakdowns.
	StockSales   []StockSale
	Dividends    []DividendLine
	ETFSummaries []ETFYearSummary
}

// StockSale is one realized disposal.
type StockSale struct {
	Date     date.Date
	Ticker   string
	Account  string
	Quantity Quantity
	Proceeds Money
	Cost     Money
	Gain     Money
}

// DividendLine is one dividend receipt, gross of withheld tax.
type DividendLine struct {
	Date     date.Date
	Ticker   string
	Gross    Money
	Withheld Money
	Foreign  bool
}

// ETFYearSummary is one inventory-basis position settled for one year.
type ETFYearSummary struct {
	Year       int
	Key        PositionKey
	StartValue Money // primo: value at January 1st
	EndValue   Money // ultimo: value at December 31st
	NetFlows   Money
	Gain       Money
	Favored    bool
}

func newYearlyReport(year int) *YearlyReport {
	z := M(0, BaseCurrency)
	return &YearlyReport{
		Year:      year,
		StockGain: z, ETFGain: z, CapitalIncome: z,
		DividendDomestic: z, DividendForeign: z, WithheldDividendTax: z,
		FavoredGain: z, PaidTax: z, PaidFavoredTax: z,
		TaxableGain: z, UtilizedLoss: z, CarriedLoss: z,
		FavoredTaxable: z, UtilizedFavoredLoss: z, CarriedFavoredLoss: z,
		ShareTax: z, CapitalTax: z, FavoredTax: z, TotalTax: z,
	}
}

// shareIncome is the general-regime gain of the year: realized stock gains,
// inventory ETF gains and gross dividends.
func (r *YearlyReport) shareIncome() Money {
	return r.StockGain.Add(r.ETFGain).Add(r.DividendDomestic).Add(r.DividendForeign)
}

// newReportRange creates one empty report for every year from the first
// transaction year through the current year.
func newReportRange(txs []Transaction, today date.Date) map[int]*YearlyReport {
	reports := make(map[int]*YearlyReport)
	for _, tx := range txs {
		if _, ok := reports[tx.Date.Year()]; !ok {
			reports[tx.Date.Year()] = newYearlyReport(tx.Date.Year())
		}
	}
	if _, ok := reports[today.Year()]; !ok {
		reports[today.Year()] = newYearlyReport(today.Year())
	}
	return reports
}

// reportYears returns the report years in ascending order.
func reportYears(reports map[int]*YearlyReport) []int {
	return slices.Sorted(maps.Keys(reports))
}
