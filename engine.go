package depotskat

import (
	"fmt"
	"slices"

	"github.com/bkrogh/depotskat/date"
	"github.com/rs/zerolog"
)

// Default Danish tax parameters, used when the configuration leaves them zero.
const (
	DefaultLowRate      = 0.27 // share income below the bracket limit
	DefaultHighRate     = 0.42 // share income above the bracket limit
	DefaultCapitalRate  = 0.37 // flat capital-income tax
	DefaultFavoredRate  = 0.17 // flat rate of the favored (ASK-style) account
	DefaultBracketLimit = 61000.0
)

// Config parameterizes one computation. The zero value is usable: defaults
// fill in the standard rates and the engine warns about missing per-year
// bracket limits instead of failing.
type Config struct {
	FavoredAccount     string             // account id taxed at the favored flat rate
	AccountCurrency    map[string]string  // account id -> currency, informational
	MarriedFilingJoint bool               // doubles the bracket limit
	BracketLimit       map[int]float64    // year -> progression threshold, base currency
	LowRate            float64
	HighRate           float64
	CapitalRate        float64
	FavoredRate        float64
	AsOf               date.Date       // end of the replay; zero means today
	Logger             *zerolog.Logger // nil disables logging
}

// normalized returns a copy with every unset field defaulted.
func (c Config) normalized() Config {
	if c.LowRate == 0 {
		c.LowRate = DefaultLowRate
	}
	if c.HighRate == 0 {
		c.HighRate = DefaultHighRate
	}
	if c.CapitalRate == 0 {
		c.CapitalRate = DefaultCapitalRate
	}
	if c.FavoredRate == 0 {
		c.FavoredRate = DefaultFavoredRate
	}
	if c.AsOf.IsZero() {
		c.AsOf = date.Today()
	}
	return c
}

func (c Config) logger() zerolog.Logger {
	if c.Logger == nil {
		return zerolog.Nop()
	}
	return *c.Logger
}

// bracketLimit returns the bracket threshold for a year, doubled when filing
// jointly. A missing year falls back to the most recent configured earlier
// year, then to the built-in default, and describes itself in the warning.
func (c Config) bracketLimit(year int) (limit float64, warning string) {
	limit, ok := c.BracketLimit[year]
	if !ok {
		best := 0
		for y, v := range c.BracketLimit {
			if y < year && y > best {
				best, limit = y, v
			}
		}
		if best == 0 {
			limit = DefaultBracketLimit
		}
		warning = fmt.Sprintf("no bracket limit configured for %d, using %.0f", year, limit)
	}
	if c.MarriedFilingJoint {
		limit *= 2
	}
	return limit, warning
}

func (c Config) validate() error {
	if c.LowRate < 0 || c.HighRate < 0 || c.CapitalRate < 0 || c.FavoredRate < 0 {
		return fmt.Errorf("tax rates must not be negative")
	}
	if c.HighRate < c.LowRate {
		return fmt.Errorf("high bracket rate %.2f below low rate %.2f", c.HighRate, c.LowRate)
	}
	return nil
}

// Result is everything one computation derives. It is exclusively owned by
// the caller; the inputs are never mutated.
type Result struct {
	Positions   map[PositionKey]Position
	Reports     map[int]*YearlyReport
	Series      []DailyPoint
	PerTicker   map[string]*HoldingSeries
	YearlyStats []YearStat
	Overview    Overview
	Warnings    []string
}

// Years returns the report years in ascending order.
func (r *Result) Years() []int { return reportYears(r.Reports) }

// Compute is the portfolio valuation and tax engine: a pure function from
// (transactions, quotes, configuration) to (positions, yearly tax reports,
// daily series, warnings). Given identical inputs it returns identical
// outputs; it performs no I/O and keeps no state across invocations.
func Compute(transactions []Transaction, quotes *Quotes, cfg Config) (*Result, error) {
	cfg = cfg.normalized()
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	if quotes == nil {
		quotes = NewQuotes()
	}
	log := cfg.logger()

	// The inputs are borrowed: sort a copy.
	txs := slices.Clone(transactions)
	SortTransactions(txs)
	today := cfg.AsOf

	res := newResolver(quotes, txs)
	reports := newReportRange(txs, today)
	ledger := newCostLedger(cfg.FavoredAccount, cfg.AccountCurrency)

	var warnings []string

	// Cost-basis pass: realized gains, dividends, capital income, paid tax.
	for _, tx := range txs {
		r := ensureReport(reports, tx.Date.Year())
		switch tx.Op {
		case Buy, Sell:
			if s, ok := ledger.applyTrade(tx); ok {
				r.StockGain = r.StockGain.Add(s.gain)
				r.StockSales = append(r.StockSales, StockSale{
					Date:     tx.Date,
					Ticker:   s.key.Ticker,
					Account:  s.key.Account,
					Quantity: s.quantity,
					Proceeds: s.proceeds,
					Cost:     s.cost,
					Gain:     s.gain,
				})
			}
		case Dividend:
			gross := M(tx.amount(), BaseCurrency)
			withheld := M(tx.WithheldTax, BaseCurrency)
			foreign := tx.Currency != "" && tx.Currency != BaseCurrency
			if foreign {
				r.DividendForeign = r.DividendForeign.Add(gross)
			} else {
				r.DividendDomestic = r.DividendDomestic.Add(gross)
			}
			r.WithheldDividendTax = r.WithheldDividendTax.Add(withheld)
			r.Dividends = append(r.Dividends, DividendLine{
				Date:     tx.Date,
				Ticker:   tx.Ticker,
				Gross:    gross,
				Withheld: withheld,
				Foreign:  foreign,
			})
		case Interest:
			r.CapitalIncome = r.CapitalIncome.Add(M(tx.amount(), BaseCurrency))
		case Transfer:
			if tx.PaidTaxYear == 0 {
				continue
			}
			target, ok := reports[tx.PaidTaxYear]
			if !ok {
				warnings = append(warnings, fmt.Sprintf(
					"tax payment on %s references year %d, which has no report", tx.Date, tx.PaidTaxYear))
				continue
			}
			paid := M(tx.amount(), BaseCurrency).Abs()
			if tx.PaidTaxFavored {
				target.PaidFavoredTax = target.PaidFavoredTax.Add(paid)
			} else {
				target.PaidTax = target.PaidTax.Add(paid)
			}
		}
	}

	// Inventory settlement, then the cross-year loss pass.
	settleInventory(txs, ledger, res, reports, cfg.FavoredAccount, today)
	warnings = append(warnings, applyCarryForward(reports, &cfg)...)

	// Daily replay, total and per ticker.
	points, detail := simulateAll(txs, res, &cfg, today)
	perTicker := simulatePerTicker(txs, ledger.tickers(), res, &cfg, today)

	stats := yearlyStats(points, txs, reportYears(reports))
	overview := buildOverview(ledger, reports, points, detail, res, &cfg, today)

	for _, ticker := range res.missedTickers() {
		warnings = append(warnings, fmt.Sprintf("no price found for %s, valued at 0", ticker))
	}
	warnings = dedupe(warnings)
	for _, w := range warnings {
		log.Warn().Msg(w)
	}
	log.Debug().
		Int("transactions", len(txs)).
		Int("years", len(reports)).
		Int("days", len(points)).
		Msg("computation finished")

	return &Result{
		Positions:   ledger.positions(),
		Reports:     reports,
		Series:      points,
		PerTicker:   perTicker,
		YearlyStats: stats,
		Overview:    overview,
		Warnings:    warnings,
	}, nil
}

func dedupe(list []string) []string {
	seen := make(map[string]struct{}, len(list))
	out := list[:0]
	for _, s := range list {
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	return out
}
