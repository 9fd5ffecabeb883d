package depotskat

import (
	"fmt"

	"github.com/bkrogh/depotskat/date"
)

// Overview is the portfolio's state on the as-of date: current totals, tax
// exposure and the "sell everything today" liquidation estimate.
type Overview struct {
	Date             date.Date
	TotalValue       Money
	TotalCost        Money
	UnrealizedGain   Money // realization-basis positions only; inventory gains settle yearly
	EstimatedTax     Money // tax owed if everything were sold today
	NetValue         Money
	AllTimeGain      Money // historical report gains plus current unrealized
	TaxPaid          Money // matched out-of-band payments across all years
	EffectiveTaxRate Percent
	Liquidation      Liquidation
}

// Liquidation itemizes the sell-everything-today estimate.
type Liquidation struct {
	GrossValue   Money
	EstimatedTax Money
	NetProceeds  Money
	Items        []TaxCostItem
}

// TaxCostItem is one line of the liquidation tax breakdown.
type TaxCostItem struct {
	Label  string
	Amount Money
}

// buildOverview converges the ledger, the yearly reports and the simulator's
// final point into the current snapshot.
func buildOverview(ledger *costLedger, reports map[int]*YearlyReport, points []DailyPoint, detail taxDetail, res *resolver, cfg *Config, today date.Date) Overview {
	totalValue := M(0, BaseCurrency)
	totalCost := M(0, BaseCurrency)
	unrealized := M(0, BaseCurrency)
	for key, pos := range ledger.positions() {
		// Prices are quoted in the instrument currency; convert at today's rate.
		mv := M(pos.Quantity.AsFloat()*res.price(key.Ticker, today)*res.rate(ledger.currencyOf(key), today), BaseCurrency)
		totalValue = totalValue.Add(mv)
		totalCost = totalCost.Add(pos.AccumulatedCost)
		// Inventory positions settle their gain into the current-year report;
		// only realization positions carry an unsettled unrealized gain.
		if ledger.regimeFor(key) == Realization {
			unrealized = unrealized.Add(mv.Sub(pos.AccumulatedCost))
		}
	}

	// The simulator's final point carries the live tax estimate.
	var estimated, net Money
	if len(points) > 0 {
		last := points[len(points)-1]
		estimated = M(last.Value-last.NetValue, BaseCurrency)
		net = M(last.NetValue, BaseCurrency)
	} else {
		estimated = M(0, BaseCurrency)
		net = totalValue
	}

	historic := M(0, BaseCurrency)
	taxPaid := M(0, BaseCurrency)
	taxDue := M(0, BaseCurrency)
	for _, year := range reportYears(reports) {
		r := reports[year]
		historic = historic.Add(r.shareIncome()).Add(r.FavoredGain).Add(r.CapitalIncome)
		taxPaid = taxPaid.Add(r.PaidTax).Add(r.PaidFavoredTax)
		taxDue = taxDue.Add(r.TotalTax)
	}
	allTime := historic.Add(unrealized)

	var effective Percent
	if allTime.IsPositive() {
		effective = Percent(taxDue.Add(estimated).Div(Q(allTime.AsFloat())).AsFloat() * 100)
	}

	items := []TaxCostItem{
		{Label: fmt.Sprintf("share income, bracketed %.0f%%/%.0f%%", cfg.LowRate*100, cfg.HighRate*100),
			Amount: M(detail.generalTax, BaseCurrency)},
		{Label: fmt.Sprintf("favored account, flat %.0f%%", cfg.FavoredRate*100),
			Amount: M(detail.favoredTax, BaseCurrency)},
	}
	if detail.favoredLoss > 0 {
		items = append(items, TaxCostItem{
			Label:  "favored-account loss carried against the estimate",
			Amount: M(-detail.favoredLoss, BaseCurrency),
		})
	}

	return Overview{
		Date:             today,
		TotalValue:       totalValue,
		TotalCost:        totalCost,
		UnrealizedGain:   unrealized,
		EstimatedTax:     estimated,
		NetValue:         net,
		AllTimeGain:      allTime,
		TaxPaid:          taxPaid,
		EffectiveTaxRate: effective,
		Liquidation: Liquidation{
			GrossValue:   totalValue,
			EstimatedTax: estimated,
			NetProceeds:  net,
			Items:        items,
		},
	}
}
