package depotskat

import (
	"time"

	"github.com/bkrogh/depotskat/date"
)

// DailyPoint is one retained day of the valuation replay.
type DailyPoint struct {
	Date     date.Date
	Value    float64 // total asset value, base currency
	Invested float64 // cumulative net invested capital
	NetValue float64 // value minus the estimated unrealized tax
	Growth   Percent // TWR growth since inception (0 = flat)
}

// HoldingSeries is the daily replay of a single ticker.
type HoldingSeries struct {
	Ticker string
	Points []DailyPoint
}

const positionEpsilon = 1e-9

// shadowPos is the simulator's view of one position: the nominal cost basis,
// and a separate tax cost basis that resets to market value at each year
// boundary for inventory-basis positions.
type shadowPos struct {
	qty      float64
	cost     float64
	taxCost  float64
	regime   TaxRegime
	favored  bool
	currency string
}

// taxDetail is the estimated tax exposure of the final simulated day,
// itemized for the liquidation breakdown.
type taxDetail struct {
	favoredUnrealized float64
	generalUnrealized float64
	favoredLoss       float64
	favoredTax        float64
	generalTax        float64
}

// simulate replays every calendar day from 'from' through 'to' over the
// transactions selected by accept, and returns the retained daily points
// plus the final day's tax detail.
// The growth index uses a mid-day flow adjustment (Dietz-style) so deposits
// and withdrawals do not show up as phantom returns.
func simulate(txs []Transaction, res *resolver, cfg *Config, from, to date.Date, accept func(Transaction) bool) ([]DailyPoint, taxDetail) {
	positions := make(map[PositionKey]*shadowPos)
	var points []DailyPoint

	growth := 1.0
	prev := 0.0
	invested := 0.0
	favoredLoss := 0.0
	next := 0
	var detail taxDetail

	for day := range from.Days(to) {
		// Year boundary: settle inventory positions against their tax cost
		// and reset it to market, mirroring the yearly tax engine.
		if day.Month() == time.January && day.Day() == 1 {
			for key, p := range positions {
				if p.regime != Inventory || p.qty < positionEpsilon {
					continue
				}
				mv := p.qty * res.price(key.Ticker, day) * res.rate(p.currency, day)
				yearGain := mv - p.taxCost
				if p.favored {
					if yearGain < 0 {
						favoredLoss += -yearGain
					} else {
						used := min(favoredLoss, yearGain)
						favoredLoss -= used
					}
				}
				p.taxCost = mv
			}
		}

		// Apply the day's transactions and accumulate its net cash flow.
		flow := 0.0
		for ; next < len(txs) && !txs[next].Date.After(day); next++ {
			tx := txs[next]
			if !accept(tx) {
				continue
			}
			switch tx.Op {
			case Buy:
				cost := tx.gross() + tx.Commission
				p := ensureShadow(positions, tx, cfg)
				p.qty += tx.Quantity
				p.cost += cost
				p.taxCost += cost
				flow += cost
			case Sell:
				p := ensureShadow(positions, tx, cfg)
				sold := -tx.Quantity
				proceeds := -tx.gross() - tx.Commission
				flow -= proceeds
				if p.qty > positionEpsilon {
					frac := min(sold, p.qty) / p.qty
					p.cost -= p.cost * frac
					p.taxCost -= p.taxCost * frac
				}
				p.qty = max(0, p.qty-sold)
			case Dividend:
				flow -= tx.amount() - tx.WithheldTax
			}
		}
		invested += flow

		// Value the open positions and estimate the day's tax exposure.
		value := 0.0
		favoredUnrealized := 0.0
		generalUnrealized := 0.0
		open := false
		for key, p := range positions {
			if p.qty < positionEpsilon {
				continue
			}
			open = true
			mv := p.qty * res.price(key.Ticker, day) * res.rate(p.currency, day)
			value += mv
			basis := p.cost
			if p.regime == Inventory {
				basis = p.taxCost
			}
			if p.favored {
				favoredUnrealized += mv - basis
			} else {
				generalUnrealized += mv - basis
			}
		}
		favoredTax := cfg.FavoredRate * max(0, favoredUnrealized-favoredLoss)
		limit, _ := cfg.bracketLimit(day.Year())
		generalTax := bracketTaxF(generalUnrealized, limit, cfg.LowRate, cfg.HighRate)
		estimated := favoredTax + generalTax
		detail = taxDetail{
			favoredUnrealized: favoredUnrealized,
			generalUnrealized: generalUnrealized,
			favoredLoss:       favoredLoss,
			favoredTax:        favoredTax,
			generalTax:        generalTax,
		}

		// Time-weighted return, compounded daily with the flow at mid-day.
		adjustedStart := prev + 0.5*flow
		if adjustedStart > 1 {
			dailyReturn := (value - prev - flow) / adjustedStart
			growth *= 1 + dailyReturn
		}
		prev = value

		// Skip the flat run before the first holding.
		if growth == 1.0 && !open {
			continue
		}
		points = append(points, DailyPoint{
			Date:     day,
			Value:    value,
			Invested: invested,
			NetValue: value - estimated,
			Growth:   Percent((growth - 1) * 100),
		})
	}
	return points, detail
}

func ensureShadow(positions map[PositionKey]*shadowPos, tx Transaction, cfg *Config) *shadowPos {
	key := PositionKey{Ticker: tx.Ticker, Account: tx.Account}
	p, ok := positions[key]
	if !ok {
		regime := regimeOf(tx.Category, tx.Account, cfg.FavoredAccount)
		p = &shadowPos{
			regime:   regime,
			favored:  cfg.FavoredAccount != "" && tx.Account == cfg.FavoredAccount,
			currency: tx.Currency,
		}
		positions[key] = p
	}
	return p
}

// simulateAll runs the full-portfolio replay from the first transaction
// through the as-of date.
func simulateAll(txs []Transaction, res *resolver, cfg *Config, to date.Date) ([]DailyPoint, taxDetail) {
	if len(txs) == 0 {
		return nil, taxDetail{}
	}
	return simulate(txs, res, cfg, txs[0].Date, to, func(tx Transaction) bool {
		return tx.isTrade() || (tx.Op == Dividend && tx.Ticker != "")
	})
}

// simulatePerTicker replays each ticker in isolation with the identical
// per-day logic, producing one series per ticker.
func simulatePerTicker(txs []Transaction, tickers []string, res *resolver, cfg *Config, to date.Date) map[string]*HoldingSeries {
	out := make(map[string]*HoldingSeries, len(tickers))
	for _, ticker := range tickers {
		var from date.Date
		for _, tx := range txs {
			if tx.Ticker == ticker {
				from = tx.Date
				break
			}
		}
		if from.IsZero() {
			continue
		}
		points, _ := simulate(txs, res, cfg, from, to, func(tx Transaction) bool {
			return tx.Ticker == ticker && (tx.isTrade() || tx.Op == Dividend)
		})
		out[ticker] = &HoldingSeries{Ticker: ticker, Points: points}
	}
	return out
}
