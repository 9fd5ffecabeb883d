package depotskat

import "testing"

func TestRealizedGain(t *testing.T) {
	l := newCostLedger("", nil)

	buy := buyTx("2024-01-10", "NOVO.CO", 10, 100, "broker")
	buy.Commission = 20
	if _, ok := l.applyTrade(buy); ok {
		t.Fatal("a buy must not realize a sale")
	}

	sell := sellTx("2024-03-01", "NOVO.CO", 10, 150, "broker")
	sell.Commission = 20
	s, ok := l.applyTrade(sell)
	if !ok {
		t.Fatal("a realization-basis sell must realize a sale")
	}

	// Proceeds 1500-20, cost 1000+20: gain 460.
	if want := dkk(460); !s.gain.Equal(want) {
		t.Errorf("gain = %s, want %s", s.gain, want)
	}
	if want := dkk(1480); !s.proceeds.Equal(want) {
		t.Errorf("proceeds = %s, want %s", s.proceeds, want)
	}

	p := l.globalPools()["NOVO.CO"]
	if !p.qty.IsZero() {
		t.Errorf("pool quantity after full disposal = %s, want 0", p.qty)
	}
	if !p.cost.IsZero() {
		t.Errorf("pool cost after full disposal = %s, want 0", p.cost)
	}
}

func TestGlobalAveragingAcrossAccounts(t *testing.T) {
	l := newCostLedger("", nil)
	l.applyTrade(buyTx("2024-01-10", "MAERSK-B.CO", 10, 100, "nordnet"))
	l.applyTrade(buyTx("2024-01-20", "MAERSK-B.CO", 10, 200, "saxo"))

	// The pool averages across both accounts: 3000 / 20 = 150 apiece.
	s, ok := l.applyTrade(sellTx("2024-02-01", "MAERSK-B.CO", 5, 250, "nordnet"))
	if !ok {
		t.Fatal("expected a realized sale")
	}
	if want := dkk(750); !s.cost.Equal(want) {
		t.Errorf("cost of sale = %s, want %s", s.cost, want)
	}
	if want := dkk(500); !s.gain.Equal(want) {
		t.Errorf("gain = %s, want %s", s.gain, want)
	}

	p := l.globalPools()["MAERSK-B.CO"]
	if want := Q(15); !p.qty.Equal(want) {
		t.Errorf("pool quantity = %s, want %s", p.qty, want)
	}
	if want := dkk(2250); !p.cost.Equal(want) {
		t.Errorf("pool cost = %s, want %s", p.cost, want)
	}

	pos := l.positions()
	a := pos[PositionKey{Ticker: "MAERSK-B.CO", Account: "nordnet"}]
	if want := Q(5); !a.Quantity.Equal(want) {
		t.Errorf("nordnet quantity = %s, want %s", a.Quantity, want)
	}
	if want := dkk(150); !a.AverageCost.Equal(want) {
		t.Errorf("nordnet average cost = %s, want %s", a.AverageCost, want)
	}
	b := pos[PositionKey{Ticker: "MAERSK-B.CO", Account: "saxo"}]
	if want := dkk(1500); !b.AccumulatedCost.Equal(want) {
		t.Errorf("saxo accumulated cost = %s, want %s", b.AccumulatedCost, want)
	}
}

func TestPoolInvariant(t *testing.T) {
	l := newCostLedger("", nil)
	l.applyTrade(buyTx("2024-01-02", "DSV.CO", 8, 125, "broker"))
	l.applyTrade(buyTx("2024-01-09", "DSV.CO", 4, 200, "broker"))
	l.applyTrade(sellTx("2024-02-01", "DSV.CO", 3, 210, "broker"))

	// averageCost * quantity == accumulatedCost must hold after any sequence.
	p := l.globalPools()["DSV.CO"]
	if got := p.avg().Mul(p.qty); !got.Equal(p.cost) {
		t.Errorf("avg*qty = %s, pool cost = %s", got, p.cost)
	}
}

func TestOversellEmptiesPool(t *testing.T) {
	l := newCostLedger("", nil)
	l.applyTrade(buyTx("2024-01-02", "GN.CO", 5, 100, "broker"))

	s, ok := l.applyTrade(sellTx("2024-01-10", "GN.CO", 8, 100, "broker"))
	if !ok {
		t.Fatal("expected a realized sale")
	}
	// Only the tracked 5 shares can carry cost.
	if want := dkk(500); !s.cost.Equal(want) {
		t.Errorf("cost of oversell = %s, want %s", s.cost, want)
	}
	p := l.globalPools()["GN.CO"]
	if !p.qty.IsZero() || !p.cost.IsZero() {
		t.Errorf("pool after oversell = %s @ %s, want empty", p.qty, p.cost)
	}
	if got := l.positions()[PositionKey{Ticker: "GN.CO", Account: "broker"}]; !got.Quantity.IsZero() {
		t.Errorf("held quantity after oversell = %s, want 0", got.Quantity)
	}
}

func TestInventoryPoolsStayLocal(t *testing.T) {
	l := newCostLedger("ask", nil)
	l.applyTrade(etfBuyTx("2024-01-02", "EUNL.DE", 10, 100, "nordnet"))
	l.applyTrade(etfBuyTx("2024-01-02", "EUNL.DE", 10, 300, "saxo"))

	pos := l.positions()
	a := pos[PositionKey{Ticker: "EUNL.DE", Account: "nordnet"}]
	b := pos[PositionKey{Ticker: "EUNL.DE", Account: "saxo"}]
	if want := dkk(100); !a.AverageCost.Equal(want) {
		t.Errorf("nordnet average cost = %s, want %s (no cross-account averaging)", a.AverageCost, want)
	}
	if want := dkk(300); !b.AverageCost.Equal(want) {
		t.Errorf("saxo average cost = %s, want %s", b.AverageCost, want)
	}

	// An inventory sell never produces a realized sale.
	if _, ok := l.applyTrade(etfSellTx("2024-02-01", "EUNL.DE", 5, 200, "nordnet")); ok {
		t.Error("inventory-basis sell must not realize a sale")
	}
}

func TestFavoredAccountIsInventory(t *testing.T) {
	l := newCostLedger("ask", nil)
	// A plain stock inside the favored account is still inventory-taxed.
	l.applyTrade(buyTx("2024-01-02", "NOVO.CO", 10, 100, "ask"))
	if _, ok := l.applyTrade(sellTx("2024-02-01", "NOVO.CO", 10, 150, "ask")); ok {
		t.Error("favored-account sell must not realize a sale")
	}
	keys := l.inventoryKeys()
	if len(keys) != 1 || keys[0] != (PositionKey{Ticker: "NOVO.CO", Account: "ask"}) {
		t.Errorf("inventory keys = %v", keys)
	}
}
