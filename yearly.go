package depotskat

import (
	"math"
	"slices"

	"github.com/bkrogh/depotskat/date"
	"gonum.org/v1/gonum/stat"
)

// YearStat summarizes one calendar year's performance.
type YearStat struct {
	Year        int
	Return      Percent
	Gain        Money   // endValue - startValue - netInvested
	NetInvested Money   // trade value plus commissions, dividends net of tax
	Flow        Money   // pure cash transfers into/out of the portfolio
	Volatility  Percent // annualized, from the daily growth series
}

// lastPointAtOrBefore returns the latest point dated on or before 'day'.
func lastPointAtOrBefore(points []DailyPoint, day date.Date) (DailyPoint, bool) {
	i, found := slices.BinarySearchFunc(points, day, func(p DailyPoint, d date.Date) int {
		return p.Date.Compare(d)
	})
	if found {
		return points[i], true
	}
	if i == 0 {
		return DailyPoint{}, false
	}
	return points[i-1], true
}

// yearlyStats derives per-year return, absolute gain and net flows from the
// daily series and the transaction list. Years come out in descending order.
func yearlyStats(points []DailyPoint, txs []Transaction, years []int) []YearStat {
	stats := make([]YearStat, 0, len(years))
	for i := len(years) - 1; i >= 0; i-- {
		year := years[i]
		end, ok := lastPointAtOrBefore(points, date.EoY(year))
		if !ok || end.Date.Year() < year {
			// No series data yet for that year.
			stats = append(stats, YearStat{
				Year: year,
				Gain: M(0, BaseCurrency), NetInvested: netInvested(txs, year),
				Flow: pureFlow(txs, year),
			})
			continue
		}
		start, hasStart := lastPointAtOrBefore(points, date.BoY(year).Add(-1))

		startGrowth, startValue := 0.0, 0.0
		if hasStart {
			startGrowth = float64(start.Growth)
			startValue = start.Value
		}
		ret := Percent(0)
		if denom := 1 + startGrowth/100; denom != 0 {
			ret = Percent(((1+float64(end.Growth)/100)/denom - 1) * 100)
		}

		invested := netInvested(txs, year)
		gain := M(end.Value-startValue, BaseCurrency).Sub(invested)

		stats = append(stats, YearStat{
			Year:        year,
			Return:      ret,
			Gain:        gain,
			NetInvested: invested,
			Flow:        pureFlow(txs, year),
			Volatility:  volatility(points, year),
		})
	}
	return stats
}

// netInvested sums the year's security-directed cash: buys add their cost,
// sells subtract net proceeds, dividends net of tax flow out.
func netInvested(txs []Transaction, year int) Money {
	total := 0.0
	for _, tx := range txs {
		if tx.Date.Year() != year {
			continue
		}
		switch tx.Op {
		case Buy:
			total += tx.gross() + tx.Commission
		case Sell:
			total += tx.gross() + tx.Commission
		case Dividend:
			total -= tx.amount() - tx.WithheldTax
		}
	}
	return M(total, BaseCurrency)
}

// pureFlow tallies plain cash transfers into and out of the portfolio.
func pureFlow(txs []Transaction, year int) Money {
	total := 0.0
	for _, tx := range txs {
		if tx.Date.Year() == year && tx.Op == Transfer {
			total += tx.amount()
		}
	}
	return M(total, BaseCurrency)
}

// volatility is the annualized standard deviation of the year's daily
// growth-index returns. The series is calendar-day (weekends carry the last
// price forward), so annualization uses 365 days, not trading days.
func volatility(points []DailyPoint, year int) Percent {
	var returns []float64
	prev := math.NaN()
	for _, p := range points {
		if p.Date.Year() != year {
			continue
		}
		g := 1 + float64(p.Growth)/100
		if !math.IsNaN(prev) && prev != 0 {
			returns = append(returns, g/prev-1)
		}
		prev = g
	}
	if len(returns) < 2 {
		return 0
	}
	return Percent(stat.StdDev(returns, nil) * math.Sqrt(365) * 100)
}
