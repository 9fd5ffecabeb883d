package depotskat

// BracketTax computes the two-tier marginal tax on an amount: the low rate
// applies up to the limit, the high rate above it. Non-positive amounts owe
// nothing.
func BracketTax(amount, limit Money, lowRate, highRate float64) Money {
	if !amount.IsPositive() {
		return M(0, amount.Currency())
	}
	if amount.LessThanOrEqual(limit) {
		return amount.Mul(Q(lowRate))
	}
	below := limit.Mul(Q(lowRate))
	above := amount.Sub(limit).Mul(Q(highRate))
	return below.Add(above)
}

// bracketTaxF is the float64 twin of BracketTax used by the daily simulator,
// where valuations are already in the float domain.
func bracketTaxF(amount, limit, lowRate, highRate float64) float64 {
	if amount <= 0 {
		return 0
	}
	if amount <= limit {
		return amount * lowRate
	}
	return limit*lowRate + (amount-limit)*highRate
}

// lossPool nets a running loss balance against a year's gain. A losing year
// grows the balance; a winning year is offset up to the balance.
type lossPool struct {
	balance Money
}

// settle applies the pool to a year gain and returns the taxable remainder
// plus the utilized and carried amounts to record on the report.
func (p *lossPool) settle(gain Money) (taxable, utilized, carried Money) {
	zero := M(0, gain.Currency())
	if gain.IsNegative() {
		p.balance = p.balance.Add(gain.Abs())
		return zero, zero, p.balance
	}
	utilized = p.balance
	if gain.LessThan(utilized) {
		utilized = gain
	}
	p.balance = p.balance.Sub(utilized)
	return gain.Sub(utilized), utilized, p.balance
}

// applyCarryForward runs the single forward pass over all years in ascending
// order, maintaining one loss balance per regime, then derives each year's
// tax liability. Returned warnings flag configuration gaps.
func applyCarryForward(reports map[int]*YearlyReport, cfg *Config) []string {
	var warnings []string
	var general, favored lossPool

	for _, year := range reportYears(reports) {
		r := reports[year]

		r.TaxableGain, r.UtilizedLoss, r.CarriedLoss = general.settle(r.shareIncome())
		r.FavoredTaxable, r.UtilizedFavoredLoss, r.CarriedFavoredLoss = favored.settle(r.FavoredGain)

		limit, warn := cfg.bracketLimit(year)
		if warn != "" {
			warnings = append(warnings, warn)
		}
		r.ShareTax = BracketTax(r.TaxableGain, M(limit, BaseCurrency), cfg.LowRate, cfg.HighRate)
		if r.CapitalIncome.IsPositive() {
			r.CapitalTax = r.CapitalIncome.Mul(Q(cfg.CapitalRate))
		}
		r.FavoredTax = r.FavoredTaxable.Mul(Q(cfg.FavoredRate))
		r.TotalTax = r.ShareTax.Add(r.CapitalTax).Add(r.FavoredTax)
	}
	return warnings
}
