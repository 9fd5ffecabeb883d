package depotskat

import (
	"maps"
	"slices"
)

// pool is a running quantity and accumulated cost. Average cost is always
// cost/quantity, and zero when the pool is empty.
type pool struct {
	qty  Quantity
	cost Money
}

func (p *pool) avg() Money { return p.cost.Div(p.qty) }

func (p *pool) add(qty Quantity, cost Money) {
	p.qty = p.qty.Add(qty)
	p.cost = p.cost.Add(cost)
}

// remove takes a sold quantity out of the pool at average cost and returns
// the cost of the sale. A sale exceeding the tracked quantity empties the
// pool instead of corrupting it.
func (p *pool) remove(qty Quantity) (costOfSale Money) {
	if qty.GreaterThan(p.qty) {
		qty = p.qty
	}
	costOfSale = p.avg().Mul(qty)
	p.qty = p.qty.Sub(qty)
	p.cost = p.cost.Sub(costOfSale)
	if p.qty.IsZero() {
		p.cost = M(0, p.cost.Currency())
	}
	return costOfSale
}

// costLedger maintains the two cost-basis models side by side: global
// per-ticker pools for realization assets, and local per-position pools for
// inventory assets. It is owned by a single computation and threaded through
// it explicitly.
type costLedger struct {
	favoredAccount  string
	accountCurrency map[string]string        // account id -> display currency
	global          map[string]*pool         // realization: shared across accounts holding the ticker
	held            map[PositionKey]Quantity // realization: per-account quantity
	local           map[PositionKey]*pool    // inventory: per-position pool
	regimes         map[PositionKey]TaxRegime
	currencies      map[PositionKey]string // instrument currency of the position
}

func newCostLedger(favoredAccount string, accountCurrency map[string]string) *costLedger {
	return &costLedger{
		favoredAccount:  favoredAccount,
		accountCurrency: accountCurrency,
		global:          make(map[string]*pool),
		held:            make(map[PositionKey]Quantity),
		local:           make(map[PositionKey]*pool),
		regimes:         make(map[PositionKey]TaxRegime),
		currencies:      make(map[PositionKey]string),
	}
}

// accountCurrencyOf returns the display currency of an account, defaulting
// to the base currency.
func (l *costLedger) accountCurrencyOf(account string) string {
	if cur, ok := l.accountCurrency[account]; ok && cur != "" {
		return cur
	}
	return BaseCurrency
}

// regime returns the position's regime, deciding and recording it on first sight.
func (l *costLedger) regime(tx Transaction) TaxRegime {
	key := PositionKey{Ticker: tx.Ticker, Account: tx.Account}
	if r, ok := l.regimes[key]; ok {
		return r
	}
	r := regimeOf(tx.Category, tx.Account, l.favoredAccount)
	l.regimes[key] = r
	l.currencies[key] = tx.Currency
	return r
}

// sale describes one realized disposal under the realization regime.
type sale struct {
	key      PositionKey
	quantity Quantity
	proceeds Money
	cost     Money
	gain     Money
}

// applyTrade applies a buy or sell to the ledger. For realization-basis
// sells it returns the realized sale; for everything else ok is false.
func (l *costLedger) applyTrade(tx Transaction) (s sale, ok bool) {
	if !tx.isTrade() {
		return sale{}, false
	}
	key := PositionKey{Ticker: tx.Ticker, Account: tx.Account}
	regime := l.regime(tx)
	qty := Q(tx.Quantity).Abs()
	gross := M(tx.gross(), BaseCurrency).Abs()
	commission := M(tx.Commission, BaseCurrency)

	switch regime {
	case Realization:
		g, ok := l.global[tx.Ticker]
		if !ok {
			g = &pool{cost: M(0, BaseCurrency)}
			l.global[tx.Ticker] = g
		}
		if tx.Op == Buy {
			g.add(qty, gross.Add(commission))
			l.held[key] = l.held[key].Add(qty)
			return sale{}, false
		}
		// Sell: realized gain against the global average cost. The pool
		// shrinks by the cost of the sale, not by the proceeds.
		proceeds := gross.Sub(commission)
		cost := g.remove(qty)
		l.held[key] = l.held[key].Sub(qty)
		if l.held[key].IsNegative() {
			l.held[key] = Q(0)
		}
		return sale{
			key:      key,
			quantity: qty,
			proceeds: proceeds,
			cost:     cost,
			gain:     proceeds.Sub(cost),
		}, true

	case Inventory:
		p, ok := l.local[key]
		if !ok {
			p = &pool{cost: M(0, BaseCurrency)}
			l.local[key] = p
		}
		if tx.Op == Buy {
			p.add(qty, gross.Add(commission))
		} else {
			p.remove(qty)
		}
		return sale{}, false
	}
	return sale{}, false
}

// positions derives the final position map. Realization positions share the
// now-synchronized global average cost of their ticker; inventory positions
// carry their own.
func (l *costLedger) positions() map[PositionKey]Position {
	out := make(map[PositionKey]Position, len(l.held)+len(l.local))
	for key, qty := range l.held {
		if qty.IsZero() {
			continue
		}
		avg := M(0, BaseCurrency)
		if g, ok := l.global[key.Ticker]; ok {
			avg = g.avg()
		}
		out[key] = Position{
			Key:             key,
			Quantity:        qty,
			AverageCost:     avg,
			AccumulatedCost: avg.Mul(qty),
			Currency:        l.accountCurrencyOf(key.Account),
		}
	}
	for key, p := range l.local {
		if p.qty.IsZero() {
			continue
		}
		out[key] = Position{
			Key:             key,
			Quantity:        p.qty,
			AverageCost:     p.avg(),
			AccumulatedCost: p.cost,
			Currency:        l.accountCurrencyOf(key.Account),
		}
	}
	return out
}

// inventoryKeys returns all inventory-basis position keys in stable order.
func (l *costLedger) inventoryKeys() []PositionKey {
	keys := make([]PositionKey, 0, len(l.regimes))
	for key, r := range l.regimes {
		if r == Inventory {
			keys = append(keys, key)
		}
	}
	slices.SortFunc(keys, func(a, b PositionKey) int {
		if a.Ticker != b.Ticker {
			if a.Ticker < b.Ticker {
				return -1
			}
			return 1
		}
		if a.Account < b.Account {
			return -1
		}
		if a.Account > b.Account {
			return 1
		}
		return 0
	})
	return keys
}

// currencyOf returns the instrument currency recorded for a position.
func (l *costLedger) currencyOf(key PositionKey) string { return l.currencies[key] }

// regimeFor returns the regime recorded for a position key.
func (l *costLedger) regimeFor(key PositionKey) TaxRegime { return l.regimes[key] }

// globalPools exposes a copy of the realization pools for invariant checks.
func (l *costLedger) globalPools() map[string]pool {
	out := make(map[string]pool, len(l.global))
	for t, p := range l.global {
		out[t] = *p
	}
	return out
}

// tickers returns all tickers the ledger has seen, sorted.
func (l *costLedger) tickers() []string {
	seen := make(map[string]struct{})
	for key := range l.regimes {
		if key.Ticker != "" {
			seen[key.Ticker] = struct{}{}
		}
	}
	return slices.Sorted(maps.Keys(seen))
}
