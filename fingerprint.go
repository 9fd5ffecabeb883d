package depotskat

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"maps"
	"slices"

	"github.com/vmihailenco/msgpack/v5"
)

// fpInput is the canonical, order-stable form of one computation's inputs.
// Go map iteration is randomized, so maps are flattened into sorted slices
// before hashing.
type fpInput struct {
	Transactions []fpTx
	Quotes       []fpQuote
	Favored      string
	Joint        bool
	Limits       []fpLimit
	Rates        [4]float64
	AsOf         string
}

type fpTx struct {
	Date     string
	Op       int
	Category int
	Ticker   string
	Quantity float64
	Price    float64
	Fx       float64
	Comm     float64
	Withheld float64
	Currency string
	Account  string
	Note     string
	TaxYear  int
	Favored  bool
}

type fpQuote struct {
	Ticker string
	Packed string
}

type fpLimit struct {
	Year  int
	Limit float64
}

// Fingerprint returns a stable content hash of (transactions, quotes,
// configuration). Callers that recompute on every input change can memoize
// full Compute results on this key instead of re-running per keystroke.
func Fingerprint(transactions []Transaction, quotes *Quotes, cfg Config) (string, error) {
	cfg = cfg.normalized()
	in := fpInput{
		Favored: cfg.FavoredAccount,
		Joint:   cfg.MarriedFilingJoint,
		Rates:   [4]float64{cfg.LowRate, cfg.HighRate, cfg.CapitalRate, cfg.FavoredRate},
		AsOf:    cfg.AsOf.String(),
	}
	for _, tx := range transactions {
		in.Transactions = append(in.Transactions, fpTx{
			Date:     tx.Date.String(),
			Op:       int(tx.Op),
			Category: int(tx.Category),
			Ticker:   tx.Ticker,
			Quantity: tx.Quantity,
			Price:    tx.Price,
			Fx:       tx.Fx,
			Comm:     tx.Commission,
			Withheld: tx.WithheldTax,
			Currency: tx.Currency,
			Account:  tx.Account,
			Note:     tx.Note,
			TaxYear:  tx.PaidTaxYear,
			Favored:  tx.PaidTaxFavored,
		})
	}
	if quotes != nil {
		for ticker := range quotes.Tickers() {
			packed, err := Compress(quotes.History(ticker))
			if err != nil {
				return "", fmt.Errorf("cannot fingerprint %s history: %w", ticker, err)
			}
			in.Quotes = append(in.Quotes, fpQuote{Ticker: ticker, Packed: packed})
		}
	}
	for _, year := range slices.Sorted(maps.Keys(cfg.BracketLimit)) {
		in.Limits = append(in.Limits, fpLimit{Year: year, Limit: cfg.BracketLimit[year]})
	}

	raw, err := msgpack.Marshal(&in)
	if err != nil {
		return "", fmt.Errorf("cannot serialize fingerprint input: %w", err)
	}
	sum := sha256.Sum256(raw)
	return hex.EncodeToString(sum[:]), nil
}
