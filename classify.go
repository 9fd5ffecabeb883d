package depotskat

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/bkrogh/depotskat/date"
)

// Row is a raw, untyped input row as delivered by the grid or an import.
type Row struct {
	Date           string
	Type           string // "Stock", "ETF", "Cash", "Dividend", "Option", or empty
	Ticker         string
	Quantity       float64
	Price          float64
	Fx             float64
	Commission     float64
	WithheldTax    float64
	Currency       string
	Account        string
	Note           string
	PaidTaxYear    int // structured paid-tax linkage, preferred over note scanning
	PaidTaxFavored bool
}

// keyword lists used to sub-classify cash rows by their free-text note.
var (
	dividendWords = []string{"udbytte", "dividend"}
	interestWords = []string{"rente", "interest"}
)

// paidTaxYearRe finds a four-digit year in a note, the legacy way of linking
// a cash withdrawal to a specific year's tax bill.
var paidTaxYearRe = regexp.MustCompile(`\b(19|20)\d{2}\b`)

// favoredWordRe matches "ask" only as a whole word, so notes mentioning
// "task" or "basket" do not route a payment to the favored account.
var favoredWordRe = regexp.MustCompile(`\bask\b`)

func noteContains(note string, words []string) bool {
	lower := strings.ToLower(note)
	for _, w := range words {
		if strings.Contains(lower, w) {
			return true
		}
	}
	return false
}

// ClassifyRow normalizes a raw row into a typed Transaction. The boolean is
// false when the row must be skipped: no parseable date, or an Option row.
// Ambiguous rows are never an error; they come back as Unknown and later
// stages ignore them.
func ClassifyRow(r Row) (Transaction, bool) {
	on, err := date.Parse(r.Date)
	if err != nil {
		return Transaction{}, false
	}
	if strings.EqualFold(r.Type, "Option") {
		return Transaction{}, false
	}

	tx := Transaction{
		Date:           on,
		Op:             Unknown,
		Category:       Stock,
		Ticker:         r.Ticker,
		Quantity:       r.Quantity,
		Price:          r.Price,
		Fx:             r.Fx,
		Commission:     r.Commission,
		WithheldTax:    r.WithheldTax,
		Currency:       r.Currency,
		Account:        r.Account,
		Note:           r.Note,
		PaidTaxYear:    r.PaidTaxYear,
		PaidTaxFavored: r.PaidTaxFavored,
	}

	// The explicit type tag is trusted when present.
	switch {
	case strings.EqualFold(r.Type, "ETF"):
		tx.Category = ETF
		tx.Op = tradeOp(r.Quantity)
	case strings.EqualFold(r.Type, "Stock"):
		tx.Category = Stock
		tx.Op = tradeOp(r.Quantity)
	case strings.EqualFold(r.Type, "Dividend"):
		tx.Category = Cash
		tx.Op = Dividend
	case strings.EqualFold(r.Type, "Cash"):
		tx.Category = Cash
		tx.Op = classifyCash(r)
	case r.Ticker != "" && r.Quantity != 0:
		// No tag, but a ticker and a quantity: infer the trade from the sign.
		tx.Op = tradeOp(r.Quantity)
	}

	if tx.Op == Transfer && tx.PaidTaxYear == 0 {
		// Legacy-import shim: attribute the withdrawal from the note text.
		tx.PaidTaxYear, tx.PaidTaxFavored = scanPaidTaxNote(r.Note)
	}
	return tx, true
}

// ClassifyRows normalizes a list of raw rows, dropping the unusable ones,
// and returns the transactions sorted for deterministic processing.
func ClassifyRows(rows []Row) []Transaction {
	txs := make([]Transaction, 0, len(rows))
	for _, r := range rows {
		if tx, ok := ClassifyRow(r); ok {
			txs = append(txs, tx)
		}
	}
	SortTransactions(txs)
	return txs
}

func tradeOp(quantity float64) Operation {
	switch {
	case quantity > 0:
		return Buy
	case quantity < 0:
		return Sell
	default:
		return Unknown
	}
}

// classifyCash sub-classifies a cash row by scanning its note.
func classifyCash(r Row) Operation {
	switch {
	case noteContains(r.Note, dividendWords):
		return Dividend
	case noteContains(r.Note, interestWords):
		return Interest
	default:
		return Transfer
	}
}

// scanPaidTaxNote extracts a (year, favored) paid-tax attribution from a
// free-text note. It only fires on notes that mention tax at all.
func scanPaidTaxNote(note string) (year int, favored bool) {
	lower := strings.ToLower(note)
	if !strings.Contains(lower, "skat") && !strings.Contains(lower, "tax") {
		return 0, false
	}
	m := paidTaxYearRe.FindString(note)
	if m == "" {
		return 0, false
	}
	year, _ = strconv.Atoi(m)
	favored = strings.Contains(lower, "aktiesparekonto") || favoredWordRe.MatchString(lower)
	return year, favored
}
