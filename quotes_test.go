package depotskat

import (
	"slices"
	"testing"
)

func TestFxTicker(t *testing.T) {
	if got := FxTicker("USD"); got != "USDDKK=X" {
		t.Errorf("FxTicker(USD) = %q, want USDDKK=X", got)
	}
}

func TestResolverPriceFallback(t *testing.T) {
	quotes := NewQuotes()
	quotes.Append("NOVO.CO", day("2024-01-10"), 100)
	txs := []Transaction{buyTx("2024-01-05", "NOVO.CO", 10, 95, "broker")}
	res := newResolver(quotes, txs)

	// Exact market point.
	if got := res.price("NOVO.CO", day("2024-01-10")); got != 100 {
		t.Errorf("exact price = %.2f, want 100", got)
	}
	// Prior market point carries forward.
	if got := res.price("NOVO.CO", day("2024-01-12")); got != 100 {
		t.Errorf("carried price = %.2f, want 100", got)
	}
	// Before any market point: the trade price fills in.
	if got := res.price("NOVO.CO", day("2024-01-08")); got != 95 {
		t.Errorf("trade-price fallback = %.2f, want 95", got)
	}
	// Before everything: zero, and the ticker is flagged.
	if got := res.price("NOVO.CO", day("2024-01-02")); got != 0 {
		t.Errorf("unresolvable price = %.2f, want 0", got)
	}
	if got := res.missedTickers(); !slices.Equal(got, []string{"NOVO.CO"}) {
		t.Errorf("missed tickers = %v, want [NOVO.CO]", got)
	}
}

func TestResolverRate(t *testing.T) {
	quotes := NewQuotes()
	quotes.Append(FxTicker("USD"), day("2024-01-10"), 6.9)
	quotes.Append(FxTicker("SEK"), day("2024-01-10"), 0)
	res := newResolver(quotes, nil)

	if got := res.rate(BaseCurrency, day("2024-01-10")); got != 1 {
		t.Errorf("base currency rate = %.2f, want 1", got)
	}
	if got := res.rate("", day("2024-01-10")); got != 1 {
		t.Errorf("empty currency rate = %.2f, want 1", got)
	}
	if got := res.rate("NOK", day("2024-01-10")); got != 1 {
		t.Errorf("unknown pair rate = %.2f, want 1", got)
	}
	// A stored zero must not collapse valuations.
	if got := res.rate("SEK", day("2024-01-10")); got != 1 {
		t.Errorf("zero-stored rate = %.2f, want 1", got)
	}
	if got := res.rate("USD", day("2024-01-15")); got != 6.9 {
		t.Errorf("USD rate = %.2f, want 6.9", got)
	}
}

func TestQuotesOverwriteSameDay(t *testing.T) {
	quotes := NewQuotes()
	quotes.Append("NOVO.CO", day("2024-01-10"), 100)
	quotes.Append("NOVO.CO", day("2024-01-10"), 102)
	if got, ok := quotes.PriceAsOf("NOVO.CO", day("2024-01-10")); !ok || got != 102 {
		t.Errorf("price = %.2f, %v, want 102", got, ok)
	}
	if quotes.History("NOVO.CO").Len() != 1 {
		t.Errorf("history length = %d, want 1", quotes.History("NOVO.CO").Len())
	}
}
