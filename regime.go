package depotskat

import "fmt"

// TaxRegime selects the cost-basis accounting model for a position. It is
// chosen once, when the position is first seen, and never changes.
type TaxRegime int

const (
	// Realization taxes gains only on sale, against a global per-ticker
	// average-cost pool shared across accounts.
	Realization TaxRegime = iota
	// Inventory taxes gains yearly on the mark-to-market change, with a cost
	// pool local to the position.
	Inventory
)

func (r TaxRegime) String() string {
	switch r {
	case Realization:
		return "realization"
	case Inventory:
		return "inventory"
	default:
		return "unknown"
	}
}

// ParseTaxRegime parses a string into a TaxRegime.
func ParseTaxRegime(s string) (TaxRegime, error) {
	switch s {
	case "realization":
		return Realization, nil
	case "inventory":
		return Inventory, nil
	default:
		return 0, fmt.Errorf("unknown tax regime: %q", s)
	}
}

// regimeOf returns the regime for a position: everything inside the favored
// account and every ETF outside it is taxed on inventory basis, the rest on
// realization basis.
func regimeOf(category AssetCategory, account, favoredAccount string) TaxRegime {
	if favoredAccount != "" && account == favoredAccount {
		return Inventory
	}
	if category == ETF {
		return Inventory
	}
	return Realization
}
