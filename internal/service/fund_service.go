package service

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"connectrpc.com/connect"

	"github.com/mmynk/saakhtemaan/internal/models"
	"github.com/mmynk/saakhtemaan/internal/persian"
	"github.com/mmynk/saakhtemaan/internal/storage"
	"github.com/mmynk/saakhtemaan/pkg/api"
)

// FundService keeps the building fund: expenses, adjustments and the ledger.
type FundService struct {
	tenancy
	now func() time.Time
}

// NewFundService creates a new FundService with the given storage backend.
func NewFundService(store storage.Store) *FundService {
	return &FundService{tenancy: tenancy{store: store}, now: time.Now}
}

// CreateExpense records money spent and debits the fund.
func (s *FundService) CreateExpense(ctx context.Context, req *connect.Request[api.CreateExpenseRequest]) (*connect.Response[api.CreateExpenseResponse], error) {
	if _, err := s.building(ctx, req.Msg.BuildingID); err != nil {
		return nil, toConnectError(err)
	}

	expense := &models.Expense{
		BuildingID: req.Msg.BuildingID,
		Title:      strings.TrimSpace(req.Msg.Title),
		Category:   req.Msg.Category,
		Amount:     req.Msg.Amount,
		SpentAt:    req.Msg.SpentAt,
		Note:       req.Msg.Note,
	}
	if expense.SpentAt == 0 {
		expense.SpentAt = s.now().Unix()
	}
	if err := s.store.CreateExpense(ctx, expense); err != nil {
		slog.Error("CreateExpense: failed to store expense", "building_id", req.Msg.BuildingID, "error", err)
		return nil, toConnectError(err)
	}

	slog.Info("Expense recorded", "expense_id", expense.ID, "amount", expense.Amount)
	return connect.NewResponse(&api.CreateExpenseResponse{Expense: toAPIExpense(expense)}), nil
}

// ListExpenses returns a building's expenses, newest first.
func (s *FundService) ListExpenses(ctx context.Context, req *connect.Request[api.ListExpensesRequest]) (*connect.Response[api.ListExpensesResponse], error) {
	if _, err := s.building(ctx, req.Msg.BuildingID); err != nil {
		return nil, toConnectError(err)
	}
	expenses, err := s.store.ListExpenses(ctx, req.Msg.BuildingID)
	if err != nil {
		return nil, toConnectError(err)
	}

	resp := &api.ListExpensesResponse{Expenses: make([]*api.Expense, 0, len(expenses))}
	for _, e := range expenses {
		resp.Expenses = append(resp.Expenses, toAPIExpense(e))
	}
	return connect.NewResponse(resp), nil
}

// DeleteExpense removes an expense and its ledger entry.
func (s *FundService) DeleteExpense(ctx context.Context, req *connect.Request[api.DeleteExpenseRequest]) (*connect.Response[api.DeleteExpenseResponse], error) {
	expense, err := s.store.GetExpense(ctx, req.Msg.ExpenseID)
	if err != nil {
		return nil, toConnectError(err)
	}
	if _, err := s.building(ctx, expense.BuildingID); err != nil {
		return nil, toConnectError(err)
	}
	if err := s.store.DeleteExpense(ctx, expense.ID); err != nil {
		return nil, toConnectError(err)
	}
	slog.Info("Expense deleted", "expense_id", expense.ID)
	return connect.NewResponse(&api.DeleteExpenseResponse{}), nil
}

// AdjustFund books a signed correction, e.g. the opening balance.
func (s *FundService) AdjustFund(ctx context.Context, req *connect.Request[api.AdjustFundRequest]) (*connect.Response[api.AdjustFundResponse], error) {
	if _, err := s.building(ctx, req.Msg.BuildingID); err != nil {
		return nil, toConnectError(err)
	}

	now := s.now()
	txn := &models.FundTransaction{
		BuildingID:  req.Msg.BuildingID,
		Kind:        models.FundAdjustment,
		Amount:      req.Msg.Amount,
		Description: strings.TrimSpace(req.Msg.Description),
		CreatedAt:   now.Unix(),
	}
	if err := s.store.CreateFundTransaction(ctx, txn); err != nil {
		return nil, toConnectError(err)
	}

	slog.Info("Fund adjusted", "building_id", txn.BuildingID, "amount", txn.Amount)
	return connect.NewResponse(&api.AdjustFundResponse{Transaction: toAPIFundTransaction(txn, now)}), nil
}

// GetFundSummary returns the fund balance with income and expense totals.
func (s *FundService) GetFundSummary(ctx context.Context, req *connect.Request[api.GetFundSummaryRequest]) (*connect.Response[api.GetFundSummaryResponse], error) {
	if _, err := s.building(ctx, req.Msg.BuildingID); err != nil {
		return nil, toConnectError(err)
	}
	summary, err := s.store.GetFundSummary(ctx, req.Msg.BuildingID)
	if err != nil {
		return nil, toConnectError(err)
	}

	return connect.NewResponse(&api.GetFundSummaryResponse{
		TotalIncome:  summary.TotalIncome,
		TotalExpense: summary.TotalExpense,
		Adjustments:  summary.Adjustments,
		Balance:      summary.Balance,
		BalanceLabel: persian.FormatPrice(summary.Balance),
	}), nil
}

// ListTransactions returns the fund ledger, newest first.
func (s *FundService) ListTransactions(ctx context.Context, req *connect.Request[api.ListTransactionsRequest]) (*connect.Response[api.ListTransactionsResponse], error) {
	if _, err := s.building(ctx, req.Msg.BuildingID); err != nil {
		return nil, toConnectError(err)
	}
	txns, err := s.store.ListFundTransactions(ctx, req.Msg.BuildingID)
	if err != nil {
		return nil, toConnectError(err)
	}

	now := s.now()
	resp := &api.ListTransactionsResponse{Transactions: make([]*api.FundTransaction, 0, len(txns))}
	for _, t := range txns {
		resp.Transactions = append(resp.Transactions, toAPIFundTransaction(t, now))
	}
	return connect.NewResponse(resp), nil
}
