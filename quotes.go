package depotskat

import (
	"iter"
	"maps"
	"slices"

	"github.com/bkrogh/depotskat/date"
)

// BaseCurrency is the account base currency all tax amounts are expressed in.
const BaseCurrency = "DKK"

// FxTicker returns the pair ticker under which the rate from a foreign
// currency into the base currency is stored, e.g. "USDDKK=X".
func FxTicker(currency string) string { return currency + BaseCurrency + "=X" }

// Quotes holds the daily price and FX-rate histories supplied by the
// market-data collaborator. Pair tickers (see FxTicker) share the same store.
type Quotes struct {
	histories map[string]*date.History
}

// NewQuotes returns an empty quote store.
func NewQuotes() *Quotes {
	return &Quotes{histories: make(map[string]*date.History)}
}

// Append records a closing price for a ticker on a day, replacing any
// existing point on that day.
func (q *Quotes) Append(ticker string, on date.Date, close float64) {
	h, ok := q.histories[ticker]
	if !ok {
		h = &date.History{}
		q.histories[ticker] = h
	}
	h.Append(on, close)
}

// History returns the price history for a ticker, or nil when unknown.
func (q *Quotes) History(ticker string) *date.History { return q.histories[ticker] }

// Has reports whether any price is known for the ticker.
func (q *Quotes) Has(ticker string) bool {
	h, ok := q.histories[ticker]
	return ok && h.Len() > 0
}

// Tickers iterates over all known tickers in lexical order.
func (q *Quotes) Tickers() iter.Seq[string] {
	return func(yield func(string) bool) {
		for _, t := range slices.Sorted(maps.Keys(q.histories)) {
			if !yield(t) {
				return
			}
		}
	}
}

// PriceAsOf returns the price on a day, or the latest prior one.
func (q *Quotes) PriceAsOf(ticker string, on date.Date) (float64, bool) {
	h, ok := q.histories[ticker]
	if !ok {
		return 0, false
	}
	return h.ValueAsOf(on)
}

// resolver answers every price and FX question during one computation.
// It layers the supplied quote histories over per-ticker trade-price
// histories derived from the transactions, so a missing market point falls
// back to the latest prior transaction price, and finally to zero.
type resolver struct {
	quotes *Quotes
	trades map[string]*date.History // ticker -> price seen on trades
	missed map[string]struct{}      // tickers that resolved to zero at least once
}

func newResolver(quotes *Quotes, txs []Transaction) *resolver {
	r := &resolver{
		quotes: quotes,
		trades: make(map[string]*date.History),
		missed: make(map[string]struct{}),
	}
	for _, tx := range txs {
		if !tx.isTrade() || tx.Price == 0 {
			continue
		}
		h, ok := r.trades[tx.Ticker]
		if !ok {
			h = &date.History{}
			r.trades[tx.Ticker] = h
		}
		h.Append(tx.Date, tx.Price)
	}
	return r
}

// price resolves a ticker price on a day: exact or prior market point, then
// prior transaction price, then zero.
func (r *resolver) price(ticker string, on date.Date) float64 {
	if v, ok := r.quotes.PriceAsOf(ticker, on); ok {
		return v
	}
	if h, ok := r.trades[ticker]; ok {
		if v, ok := h.ValueAsOf(on); ok {
			return v
		}
	}
	r.missed[ticker] = struct{}{}
	return 0
}

// rate resolves the FX rate from a currency into the base currency.
// The base currency, an unknown pair and a zero rate all resolve to 1 so a
// missing rate never collapses a valuation.
func (r *resolver) rate(currency string, on date.Date) float64 {
	if currency == "" || currency == BaseCurrency {
		return 1
	}
	v, ok := r.quotes.PriceAsOf(FxTicker(currency), on)
	if !ok || v == 0 {
		return 1
	}
	return v
}

// missedTickers returns the tickers whose price resolved to zero, sorted.
func (r *resolver) missedTickers() []string {
	return slices.Sorted(maps.Keys(r.missed))
}
