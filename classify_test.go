package depotskat

import "testing"

func TestClassifyRowSkips(t *testing.T) {
	if _, ok := ClassifyRow(Row{Date: "not a date", Ticker: "NOVO.CO", Quantity: 1}); ok {
		t.Error("a row without a parseable date must be skipped")
	}
	if _, ok := ClassifyRow(Row{Date: "2024-01-02", Type: "Option", Ticker: "NOVO.CO"}); ok {
		t.Error("option rows must be skipped")
	}
}

func TestClassifyRow(t *testing.T) {
	tests := []struct {
		name string
		row  Row
		op   Operation
		cat  AssetCategory
	}{
		{"tagged stock buy", Row{Date: "2024-01-02", Type: "Stock", Ticker: "NOVO.CO", Quantity: 10}, Buy, Stock},
		{"tagged etf sell", Row{Date: "2024-01-02", Type: "ETF", Ticker: "EUNL.DE", Quantity: -5}, Sell, ETF},
		{"tagged dividend", Row{Date: "2024-01-02", Type: "Dividend", Ticker: "NOVO.CO", Quantity: 50}, Dividend, Cash},
		{"cash dividend by note", Row{Date: "2024-01-02", Type: "Cash", Note: "Udbytte NOVO NORDISK"}, Dividend, Cash},
		{"cash interest by note", Row{Date: "2024-01-02", Type: "Cash", Note: "Renter for marts"}, Interest, Cash},
		{"plain cash is a transfer", Row{Date: "2024-01-02", Type: "Cash", Note: "indbetaling", Quantity: 5000}, Transfer, Cash},
		{"untagged trade by sign", Row{Date: "2024-01-02", Ticker: "NOVO.CO", Quantity: 3}, Buy, Stock},
		{"untagged sell by sign", Row{Date: "2024-01-02", Ticker: "NOVO.CO", Quantity: -3}, Sell, Stock},
		{"nothing to go on", Row{Date: "2024-01-02", Note: "?"}, Unknown, Stock},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			tx, ok := ClassifyRow(tc.row)
			if !ok {
				t.Fatal("row was skipped")
			}
			if tx.Op != tc.op {
				t.Errorf("op = %s, want %s", tx.Op, tc.op)
			}
			if tx.Category != tc.cat {
				t.Errorf("category = %s, want %s", tx.Category, tc.cat)
			}
		})
	}
}

func TestClassifyPaidTaxNote(t *testing.T) {
	tx, ok := ClassifyRow(Row{Date: "2024-03-01", Type: "Cash", Quantity: -600, Note: "Betalt skat 2023"})
	if !ok || tx.Op != Transfer {
		t.Fatalf("tx = %+v, ok = %v", tx, ok)
	}
	if tx.PaidTaxYear != 2023 {
		t.Errorf("paid tax year = %d, want 2023", tx.PaidTaxYear)
	}
	if tx.PaidTaxFavored {
		t.Error("favored = true, want false")
	}

	tx, _ = ClassifyRow(Row{Date: "2024-03-01", Type: "Cash", Quantity: -100, Note: "Skat 2023, aktiesparekonto"})
	if tx.PaidTaxYear != 2023 || !tx.PaidTaxFavored {
		t.Errorf("favored payment: year = %d, favored = %v", tx.PaidTaxYear, tx.PaidTaxFavored)
	}

	// "ask" only counts as a whole word.
	tx, _ = ClassifyRow(Row{Date: "2024-03-01", Type: "Cash", Quantity: -100, Note: "Skat 2023 ASK"})
	if tx.PaidTaxYear != 2023 || !tx.PaidTaxFavored {
		t.Errorf("ASK payment: year = %d, favored = %v", tx.PaidTaxYear, tx.PaidTaxFavored)
	}
	tx, _ = ClassifyRow(Row{Date: "2024-03-01", Type: "Cash", Quantity: -100, Note: "skat 2023 basket fund task"})
	if tx.PaidTaxFavored {
		t.Error("substring 'ask' inside another word must not mark the payment favored")
	}

	// A year in the note without any tax wording is not a payment.
	tx, _ = ClassifyRow(Row{Date: "2024-03-01", Type: "Cash", Quantity: -100, Note: "gave 2023"})
	if tx.PaidTaxYear != 0 {
		t.Errorf("paid tax year = %d, want 0", tx.PaidTaxYear)
	}

	// The structured field wins over note scanning.
	tx, _ = ClassifyRow(Row{Date: "2024-03-01", Type: "Cash", Quantity: -100, Note: "skat 2019", PaidTaxYear: 2022, PaidTaxFavored: true})
	if tx.PaidTaxYear != 2022 || !tx.PaidTaxFavored {
		t.Errorf("structured payment: year = %d, favored = %v", tx.PaidTaxYear, tx.PaidTaxFavored)
	}
}

func TestClassifyRowsSorts(t *testing.T) {
	rows := []Row{
		{Date: "2024-02-01", Ticker: "NOVO.CO", Quantity: -5},
		{Date: "bad date"},
		{Date: "2024-01-02", Ticker: "NOVO.CO", Quantity: 10},
		{Date: "2024-02-01", Ticker: "NOVO.CO", Quantity: 5},
	}
	txs := ClassifyRows(rows)
	if len(txs) != 3 {
		t.Fatalf("classified %d rows, want 3", len(txs))
	}
	if txs[0].Date != day("2024-01-02") {
		t.Errorf("first tx on %s, want 2024-01-02", txs[0].Date)
	}
	// Same day: the buy lands before the sell.
	if txs[1].Op != Buy || txs[2].Op != Sell {
		t.Errorf("same-day order = %s, %s, want buy, sell", txs[1].Op, txs[2].Op)
	}
}
