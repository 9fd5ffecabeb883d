package depotskat

import (
	"sort"

	"github.com/bkrogh/depotskat/date"
)

// Operation is the kind of a transaction.
type Operation int

const (
	Unknown Operation = iota
	Buy
	Sell
	Dividend
	Interest
	Transfer
)

func (o Operation) String() string {
	switch o {
	case Buy:
		return "buy"
	case Sell:
		return "sell"
	case Dividend:
		return "dividend"
	case Interest:
		return "interest"
	case Transfer:
		return "transfer"
	default:
		return "unknown"
	}
}

// AssetCategory is the broad asset class of a transaction.
type AssetCategory int

const (
	Stock AssetCategory = iota
	ETF
	Cash
)

func (c AssetCategory) String() string {
	switch c {
	case ETF:
		return "etf"
	case Cash:
		return "cash"
	default:
		return "stock"
	}
}

// Transaction is an immutable input record. Amount fields are raw numbers in
// the instrument currency; Fx converts them into the account currency.
// Quantity is signed: positive acquires or flows in, negative disposes or
// flows out.
type Transaction struct {
	Date           date.Date
	Op             Operation
	Category       AssetCategory
	Ticker         string // empty for pure cash rows
	Quantity       float64
	Price          float64
	Fx             float64 // rate to account currency; 0 is treated as 1
	Commission     float64 // in account currency
	WithheldTax    float64 // in account currency
	Currency       string
	Account        string
	Note           string
	PaidTaxYear    int  // out-of-band tax payment for that report year, 0 if none
	PaidTaxFavored bool // the payment settles the favored-account tax bill
}

// fx returns the FX rate to the account currency, never zero.
func (t Transaction) fx() float64 {
	if t.Fx == 0 {
		return 1
	}
	return t.Fx
}

// gross is the signed trade value in account currency, excluding commission.
func (t Transaction) gross() float64 {
	return t.Quantity * t.Price * t.fx()
}

// amount is the signed cash amount in account currency for non-trade rows,
// where the quantity field carries the amount and the price is often unset.
func (t Transaction) amount() float64 {
	p := t.Price
	if p == 0 {
		p = 1
	}
	return t.Quantity * p * t.fx()
}

// isTrade reports whether the transaction moves a security position.
func (t Transaction) isTrade() bool {
	return (t.Op == Buy || t.Op == Sell) && t.Ticker != ""
}

// opOrder ranks same-day transactions so buys land before sells and cost
// pools are filled before they are drawn from.
func (t Transaction) opOrder() int {
	switch t.Op {
	case Buy:
		return 0
	case Sell:
		return 2
	default:
		return 1
	}
}

// SortTransactions sorts transactions chronologically. Same-day ties are
// broken buy-before-sell, then original input order (the sort is stable).
func SortTransactions(txs []Transaction) {
	sort.SliceStable(txs, func(i, j int) bool {
		if c := txs[i].Date.Compare(txs[j].Date); c != 0 {
			return c < 0
		}
		return txs[i].opOrder() < txs[j].opOrder()
	})
}

// PositionKey identifies a position by ticker and account.
type PositionKey struct {
	Ticker  string
	Account string
}

// Position is a derived holding, keyed by ticker and account.
type Position struct {
	Key             PositionKey
	Quantity        Quantity
	AccumulatedCost Money
	AverageCost     Money
	Currency        string // account currency
}
