package depotskat

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/bkrogh/depotskat/date"
)

// This file is the JSONL boundary of the engine: one raw row or one quote
// entry per line, human-readable and diff-friendly. The engine itself owns
// no file format; these helpers exist for the CLI and for imports.

// jrow is the persisted form of a raw input row.
type jrow struct {
	Date        string  `json:"date"`
	Type        string  `json:"type,omitempty"`
	Ticker      string  `json:"ticker,omitempty"`
	Quantity    float64 `json:"quantity,omitempty"`
	Price       float64 `json:"price,omitempty"`
	Fx          float64 `json:"fx,omitempty"`
	Commission  float64 `json:"commission,omitempty"`
	WithheldTax float64 `json:"withheldTax,omitempty"`
	Currency    string  `json:"currency,omitempty"`
	Account     string  `json:"account,omitempty"`
	Note        string  `json:"note,omitempty"`
	TaxYear     int     `json:"paidTaxForYear,omitempty"`
	TaxFavored  bool    `json:"paidTaxFavored,omitempty"`
}

// DecodeRows reads raw rows from a JSONL stream. Blank lines are skipped.
func DecodeRows(r io.Reader) ([]Row, error) {
	var rows []Row
	scanner := bufio.NewScanner(r)
	line := 0
	for scanner.Scan() {
		line++
		txt := strings.TrimSpace(scanner.Text())
		if txt == "" {
			continue
		}
		var j jrow
		if err := json.Unmarshal([]byte(txt), &j); err != nil {
			return nil, fmt.Errorf("format error on line %d: %w", line, err)
		}
		rows = append(rows, Row{
			Date:           j.Date,
			Type:           j.Type,
			Ticker:         j.Ticker,
			Quantity:       j.Quantity,
			Price:          j.Price,
			Fx:             j.Fx,
			Commission:     j.Commission,
			WithheldTax:    j.WithheldTax,
			Currency:       j.Currency,
			Account:        j.Account,
			Note:           j.Note,
			PaidTaxYear:    j.TaxYear,
			PaidTaxFavored: j.TaxFavored,
		})
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read error: %w", err)
	}
	return rows, nil
}

// EncodeRows writes raw rows as JSONL.
func EncodeRows(w io.Writer, rows []Row) error {
	for _, r := range rows {
		j := jrow{
			Date:        r.Date,
			Type:        r.Type,
			Ticker:      r.Ticker,
			Quantity:    r.Quantity,
			Price:       r.Price,
			Fx:          r.Fx,
			Commission:  r.Commission,
			WithheldTax: r.WithheldTax,
			Currency:    r.Currency,
			Account:     r.Account,
			Note:        r.Note,
			TaxYear:     r.PaidTaxYear,
			TaxFavored:  r.PaidTaxFavored,
		}
		data, err := json.Marshal(j)
		if err != nil {
			return fmt.Errorf("cannot marshal row: %w", err)
		}
		if _, err := w.Write(append(data, '\n')); err != nil {
			return fmt.Errorf("cannot write row: %w", err)
		}
	}
	return nil
}

// jquote is one persisted quote line: either a whole packed history for a
// ticker, or a single (date, close) point.
type jquote struct {
	Ticker string  `json:"ticker"`
	Packed string  `json:"packed,omitempty"`
	On     string  `json:"on,omitempty"`
	Close  float64 `json:"close,omitempty"`
}

// DecodeQuotes reads a quotes JSONL stream, accepting both packed-history
// lines and single-point lines.
func DecodeQuotes(r io.Reader) (*Quotes, error) {
	quotes := NewQuotes()
	scanner := bufio.NewScanner(r)
	line := 0
	for scanner.Scan() {
		line++
		txt := strings.TrimSpace(scanner.Text())
		if txt == "" {
			continue
		}
		var j jquote
		if err := json.Unmarshal([]byte(txt), &j); err != nil {
			return nil, fmt.Errorf("format error on line %d: %w", line, err)
		}
		if j.Ticker == "" {
			return nil, fmt.Errorf("format error on line %d: missing ticker", line)
		}
		if j.Packed != "" {
			h, err := Decompress(j.Packed)
			if err != nil {
				return nil, fmt.Errorf("format error on line %d: %w", line, err)
			}
			for on, v := range h.Values() {
				quotes.Append(j.Ticker, on, v)
			}
			continue
		}
		on, err := date.Parse(j.On)
		if err != nil {
			return nil, fmt.Errorf("format error on line %d: %w", line, err)
		}
		quotes.Append(j.Ticker, on, j.Close)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read error: %w", err)
	}
	return quotes, nil
}

// EncodeQuotes writes every ticker's history as one packed line.
func EncodeQuotes(w io.Writer, quotes *Quotes) error {
	for ticker := range quotes.Tickers() {
		packed, err := Compress(quotes.History(ticker))
		if err != nil {
			return fmt.Errorf("cannot pack %s: %w", ticker, err)
		}
		data, err := json.Marshal(jquote{Ticker: ticker, Packed: packed})
		if err != nil {
			return fmt.Errorf("cannot marshal %s: %w", ticker, err)
		}
		if _, err := w.Write(append(data, '\n')); err != nil {
			return fmt.Errorf("cannot write %s: %w", ticker, err)
		}
	}
	return nil
}
