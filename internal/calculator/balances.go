package calculator

import "sort"

// UnitChargeForBalance represents an issued unit charge with the minimal
// information needed for balance calculations.
type UnitChargeForBalance struct {
	UnitID     string
	Amount     int64
	PaidAmount int64
	Overdue    bool
}

// UnitBalance is the collection state of one unit across all its charges.
type UnitBalance struct {
	UnitID       string
	TotalCharged int64
	TotalPaid    int64
	Outstanding  int64 // never negative; overpayment on one charge does not offset another
	OverdueCount int
}

// BuildingBalance aggregates every unit of a building.
type BuildingBalance struct {
	TotalCharged   int64
	TotalPaid      int64
	Outstanding    int64
	CollectionRate float64 // TotalPaid / TotalCharged, 0 when nothing was charged
}

// SummarizeUnitBalances aggregates unit charges per unit.
//
// The result is sorted so the largest debtor comes first; ties are broken by
// unit ID to keep the output deterministic.
func SummarizeUnitBalances(charges []UnitChargeForBalance) ([]UnitBalance, BuildingBalance) {
	byUnit := make(map[string]*UnitBalance)
	var order []string

	for _, c := range charges {
		bal, exists := byUnit[c.UnitID]
		if !exists {
			bal = &UnitBalance{UnitID: c.UnitID}
			byUnit[c.UnitID] = bal
			order = append(order, c.UnitID)
		}

		bal.TotalCharged += c.Amount
		bal.TotalPaid += c.PaidAmount
		if c.PaidAmount < c.Amount {
			bal.Outstanding += c.Amount - c.PaidAmount
		}
		if c.Overdue {
			bal.OverdueCount++
		}
	}

	balances := make([]UnitBalance, 0, len(order))
	var building BuildingBalance
	for _, id := range order {
		bal := byUnit[id]
		balances = append(balances, *bal)
		building.TotalCharged += bal.TotalCharged
		building.TotalPaid += bal.TotalPaid
		building.Outstanding += bal.Outstanding
	}
	if building.TotalCharged > 0 {
		building.CollectionRate = float64(building.TotalPaid) / float64(building.TotalCharged)
	}

	sort.SliceStable(balances, func(i, j int) bool {
		if balances[i].Outstanding != balances[j].Outstanding {
			return balances[i].Outstanding > balances[j].Outstanding
		}
		return balances[i].UnitID < balances[j].UnitID
	})

	return balances, building
}
