package calculator

import (
	"math"
	"testing"
)

func TestSummarizeUnitBalances(t *testing.T) {
	charges := []UnitChargeForBalance{
		{UnitID: "U1", Amount: 500_000, PaidAmount: 500_000},
		{UnitID: "U2", Amount: 800_000, PaidAmount: 300_000, Overdue: true},
		{UnitID: "U1", Amount: 500_000, PaidAmount: 0},
		{UnitID: "U3", Amount: 200_000, PaidAmount: 250_000},
		{UnitID: "U2", Amount: 800_000, PaidAmount: 0, Overdue: true},
	}

	balances, building := SummarizeUnitBalances(charges)

	if len(balances) != 3 {
		t.Fatalf("expected 3 unit balances, got %d", len(balances))
	}

	// Largest debtor first
	if balances[0].UnitID != "U2" {
		t.Errorf("first debtor = %s, want U2", balances[0].UnitID)
	}
	if balances[0].Outstanding != 1_300_000 {
		t.Errorf("U2 outstanding = %d, want 1300000", balances[0].Outstanding)
	}
	if balances[0].OverdueCount != 2 {
		t.Errorf("U2 overdue = %d, want 2", balances[0].OverdueCount)
	}
	if balances[1].UnitID != "U1" || balances[1].Outstanding != 500_000 {
		t.Errorf("second = %s/%d, want U1/500000", balances[1].UnitID, balances[1].Outstanding)
	}

	// Overpayment does not produce negative outstanding
	if balances[2].UnitID != "U3" || balances[2].Outstanding != 0 {
		t.Errorf("third = %s/%d, want U3/0", balances[2].UnitID, balances[2].Outstanding)
	}

	if building.TotalCharged != 2_800_000 {
		t.Errorf("building charged = %d, want 2800000", building.TotalCharged)
	}
	if building.TotalPaid != 1_050_000 {
		t.Errorf("building paid = %d, want 1050000", building.TotalPaid)
	}
	if building.Outstanding != 1_800_000 {
		t.Errorf("building outstanding = %d, want 1800000", building.Outstanding)
	}
	if math.Abs(building.CollectionRate-0.375) > 0.0001 {
		t.Errorf("collection rate = %v, want 0.375", building.CollectionRate)
	}
}

func TestSummarizeUnitBalancesEmpty(t *testing.T) {
	balances, building := SummarizeUnitBalances(nil)
	if len(balances) != 0 {
		t.Errorf("expected no balances, got %d", len(balances))
	}
	if building.CollectionRate != 0 {
		t.Errorf("collection rate = %v, want 0", building.CollectionRate)
	}
}
