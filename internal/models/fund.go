package models

// Expense is money spent from the building fund.
type Expense struct {
	ID         string
	BuildingID string
	Title      string
	Category   string
	Amount     int64
	SpentAt    int64
	Note       string
	CreatedAt  int64
}

// FundTransactionKind classifies a ledger entry.
type FundTransactionKind string

const (
	FundIncome     FundTransactionKind = "income"
	FundExpense    FundTransactionKind = "expense"
	FundAdjustment FundTransactionKind = "adjustment"
)

// FundTransaction is one entry in a building's fund ledger.
// Income and expense amounts are positive; adjustments are signed.
type FundTransaction struct {
	ID          string
	BuildingID  string
	Kind        FundTransactionKind
	Amount      int64
	Description string

	// RefType and RefID point at the payment or expense that produced the entry.
	RefType string
	RefID   string

	CreatedAt int64
}

// Signed returns the entry's effect on the fund balance.
func (t *FundTransaction) Signed() int64 {
	if t.Kind == FundExpense {
		return -t.Amount
	}
	return t.Amount
}

// FundSummary aggregates a building's ledger.
type FundSummary struct {
	BuildingID   string
	TotalIncome  int64
	TotalExpense int64
	Adjustments  int64
	Balance      int64
}
