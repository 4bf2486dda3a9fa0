package api

type Expense struct {
	ID           string `json:"id"`
	BuildingID   string `json:"building_id"`
	Title        string `json:"title"`
	Category     string `json:"category"`
	Amount       int64  `json:"amount"`
	AmountLabel  string `json:"amount_label"`
	SpentAt      int64  `json:"spent_at"`
	SpentAtLabel string `json:"spent_at_label"`
	Note         string `json:"note,omitempty"`
}

type FundTransaction struct {
	ID           string `json:"id"`
	Kind         string `json:"kind"`
	Amount       int64  `json:"amount"`
	AmountLabel  string `json:"amount_label"`
	Description  string `json:"description"`
	RefType      string `json:"ref_type,omitempty"`
	RefID        string `json:"ref_id,omitempty"`
	CreatedAt    int64  `json:"created_at"`
	RelativeTime string `json:"relative_time"`
}

type CreateExpenseRequest struct {
	BuildingID string `json:"building_id" validate:"required"`
	Title      string `json:"title" validate:"required,max=200"`
	Category   string `json:"category" validate:"max=60"`
	Amount     int64  `json:"amount" validate:"gt=0,lte=10000000000000"`
	SpentAt    int64  `json:"spent_at" validate:"gte=0"`
	Note       string `json:"note" validate:"max=1000"`
}

type CreateExpenseResponse struct {
	Expense *Expense `json:"expense"`
}

type ListExpensesRequest struct {
	BuildingID string `json:"building_id" validate:"required"`
}

type ListExpensesResponse struct {
	Expenses []*Expense `json:"expenses"`
}

type DeleteExpenseRequest struct {
	ExpenseID string `json:"expense_id" validate:"required"`
}

type DeleteExpenseResponse struct{}

type AdjustFundRequest struct {
	BuildingID  string `json:"building_id" validate:"required"`
	Amount      int64  `json:"amount" validate:"ne=0,gte=-10000000000000,lte=10000000000000"`
	Description string `json:"description" validate:"required,max=200"`
}

type AdjustFundResponse struct {
	Transaction *FundTransaction `json:"transaction"`
}

type GetFundSummaryRequest struct {
	BuildingID string `json:"building_id" validate:"required"`
}

type GetFundSummaryResponse struct {
	TotalIncome  int64  `json:"total_income"`
	TotalExpense int64  `json:"total_expense"`
	Adjustments  int64  `json:"adjustments"`
	Balance      int64  `json:"balance"`
	BalanceLabel string `json:"balance_label"`
}

type ListTransactionsRequest struct {
	BuildingID string `json:"building_id" validate:"required"`
}

type ListTransactionsResponse struct {
	Transactions []*FundTransaction `json:"transactions"`
}
