package depotskat

import "github.com/bkrogh/depotskat/date"

// settleInventory runs the mark-to-market year engine over every
// inventory-basis position: for each year, the taxable gain is the change in
// market value between January 1st and December 31st, corrected for the
// signed trade cash flows of the year. A single running quantity per
// position is carried across years.
func settleInventory(txs []Transaction, ledger *costLedger, res *resolver, reports map[int]*YearlyReport, favoredAccount string, today date.Date) {
	for _, key := range ledger.inventoryKeys() {
		settlePosition(key, txs, ledger, res, reports, favoredAccount, today)
	}
}

func settlePosition(key PositionKey, txs []Transaction, ledger *costLedger, res *resolver, reports map[int]*YearlyReport, favoredAccount string, today date.Date) {
	var trades []Transaction
	for _, tx := range txs {
		if tx.isTrade() && tx.Ticker == key.Ticker && tx.Account == key.Account {
			trades = append(trades, tx)
		}
	}
	if len(trades) == 0 {
		return
	}

	currency := ledger.currencyOf(key)
	favored := favoredAccount != "" && key.Account == favoredAccount

	qty := 0.0
	next := 0
	for year := trades[0].Date.Year(); year <= today.Year(); year++ {
		startQty := qty
		flows := 0.0
		for next < len(trades) && trades[next].Date.Year() == year {
			tx := trades[next]
			qty += tx.Quantity
			// Signed trade cash flow, net of commission: a buy adds the cost
			// of the purchase, a sell subtracts the net proceeds.
			flows += tx.gross() + tx.Commission
			next++
		}

		boy, eoy := date.BoY(year), date.EoY(year)
		startValue := startQty * res.price(key.Ticker, boy) * res.rate(currency, boy)
		endValue := qty * res.price(key.Ticker, eoy) * res.rate(currency, eoy)
		if startValue == endValue && flows == 0 {
			continue // nothing moved, no report line
		}

		gain := M(endValue-startValue-flows, BaseCurrency)
		r := ensureReport(reports, year)
		if favored {
			r.FavoredGain = r.FavoredGain.Add(gain)
		} else {
			r.ETFGain = r.ETFGain.Add(gain)
		}
		r.ETFSummaries = append(r.ETFSummaries, ETFYearSummary{
			Year:       year,
			Key:        key,
			StartValue: M(startValue, BaseCurrency),
			EndValue:   M(endValue, BaseCurrency),
			NetFlows:   M(flows, BaseCurrency),
			Gain:       gain,
			Favored:    favored,
		})
	}
}

// ensureReport returns the report for a year, creating it when an inventory
// position accrues value in a year without transactions.
func ensureReport(reports map[int]*YearlyReport, year int) *YearlyReport {
	r, ok := reports[year]
	if !ok {
		r = newYearlyReport(year)
		reports[year] = r
	}
	return r
}
