package apiconnect

import (
	"context"
	"net/http"

	"connectrpc.com/connect"

	"github.com/mmynk/saakhtemaan/pkg/api"
)

// FundServiceName is the fully-qualified name of the FundService.
const FundServiceName = "saakhtemaan.v1.FundService"

// Procedure paths of the FundService.
const (
	FundServiceCreateExpenseProcedure    = "/saakhtemaan.v1.FundService/CreateExpense"
	FundServiceListExpensesProcedure     = "/saakhtemaan.v1.FundService/ListExpenses"
	FundServiceDeleteExpenseProcedure    = "/saakhtemaan.v1.FundService/DeleteExpense"
	FundServiceAdjustFundProcedure       = "/saakhtemaan.v1.FundService/AdjustFund"
	FundServiceGetFundSummaryProcedure   = "/saakhtemaan.v1.FundService/GetFundSummary"
	FundServiceListTransactionsProcedure = "/saakhtemaan.v1.FundService/ListTransactions"
)

// FundServiceHandler is implemented by the server.
// FundService keeps the building fund ledger: expenses, adjustments and balance.
type FundServiceHandler interface {
	CreateExpense(context.Context, *connect.Request[api.CreateExpenseRequest]) (*connect.Response[api.CreateExpenseResponse], error)
	ListExpenses(context.Context, *connect.Request[api.ListExpensesRequest]) (*connect.Response[api.ListExpensesResponse], error)
	DeleteExpense(context.Context, *connect.Request[api.DeleteExpenseRequest]) (*connect.Response[api.DeleteExpenseResponse], error)
	AdjustFund(context.Context, *connect.Request[api.AdjustFundRequest]) (*connect.Response[api.AdjustFundResponse], error)
	GetFundSummary(context.Context, *connect.Request[api.GetFundSummaryRequest]) (*connect.Response[api.GetFundSummaryResponse], error)
	ListTransactions(context.Context, *connect.Request[api.ListTransactionsRequest]) (*connect.Response[api.ListTransactionsResponse], error)
}

// NewFundServiceHandler builds an HTTP handler from the service implementation.
// It returns the path on which to mount the handler and the handler itself.
func NewFundServiceHandler(svc FundServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = handlerOptions(opts)
	return mount("/"+FundServiceName+"/",
		unary(FundServiceCreateExpenseProcedure, svc.CreateExpense, opts),
		unary(FundServiceListExpensesProcedure, svc.ListExpenses, opts),
		unary(FundServiceDeleteExpenseProcedure, svc.DeleteExpense, opts),
		unary(FundServiceAdjustFundProcedure, svc.AdjustFund, opts),
		unary(FundServiceGetFundSummaryProcedure, svc.GetFundSummary, opts),
		unary(FundServiceListTransactionsProcedure, svc.ListTransactions, opts),
	)
}

// FundServiceClient is a client for the FundService.
type FundServiceClient struct {
	createExpense    *connect.Client[api.CreateExpenseRequest, api.CreateExpenseResponse]
	listExpenses     *connect.Client[api.ListExpensesRequest, api.ListExpensesResponse]
	deleteExpense    *connect.Client[api.DeleteExpenseRequest, api.DeleteExpenseResponse]
	adjustFund       *connect.Client[api.AdjustFundRequest, api.AdjustFundResponse]
	getFundSummary   *connect.Client[api.GetFundSummaryRequest, api.GetFundSummaryResponse]
	listTransactions *connect.Client[api.ListTransactionsRequest, api.ListTransactionsResponse]
}

// NewFundServiceClient constructs a client for the FundService. baseURL is the
// server root, e.g. http://localhost:8080.
func NewFundServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) *FundServiceClient {
	return &FundServiceClient{
		createExpense:    client[api.CreateExpenseRequest, api.CreateExpenseResponse](httpClient, baseURL, FundServiceCreateExpenseProcedure, opts),
		listExpenses:     client[api.ListExpensesRequest, api.ListExpensesResponse](httpClient, baseURL, FundServiceListExpensesProcedure, opts),
		deleteExpense:    client[api.DeleteExpenseRequest, api.DeleteExpenseResponse](httpClient, baseURL, FundServiceDeleteExpenseProcedure, opts),
		adjustFund:       client[api.AdjustFundRequest, api.AdjustFundResponse](httpClient, baseURL, FundServiceAdjustFundProcedure, opts),
		getFundSummary:   client[api.GetFundSummaryRequest, api.GetFundSummaryResponse](httpClient, baseURL, FundServiceGetFundSummaryProcedure, opts),
		listTransactions: client[api.ListTransactionsRequest, api.ListTransactionsResponse](httpClient, baseURL, FundServiceListTransactionsProcedure, opts),
	}
}

// CreateExpense calls saakhtemaan.v1.FundService.CreateExpense.
func (c *FundServiceClient) CreateExpense(ctx context.Context, req *connect.Request[api.CreateExpenseRequest]) (*connect.Response[api.CreateExpenseResponse], error) {
	return c.createExpense.CallUnary(ctx, req)
}

// ListExpenses calls saakhtemaan.v1.FundService.ListExpenses.
func (c *FundServiceClient) ListExpenses(ctx context.Context, req *connect.Request[api.ListExpensesRequest]) (*connect.Response[api.ListExpensesResponse], error) {
	return c.listExpenses.CallUnary(ctx, req)
}

// DeleteExpense calls saakhtemaan.v1.FundService.DeleteExpense.
func (c *FundServiceClient) DeleteExpense(ctx context.Context, req *connect.Request[api.DeleteExpenseRequest]) (*connect.Response[api.DeleteExpenseResponse], error) {
	return c.deleteExpense.CallUnary(ctx, req)
}

// AdjustFund calls saakhtemaan.v1.FundService.AdjustFund.
func (c *FundServiceClient) AdjustFund(ctx context.Context, req *connect.Request[api.AdjustFundRequest]) (*connect.Response[api.AdjustFundResponse], error) {
	return c.adjustFund.CallUnary(ctx, req)
}

// GetFundSummary calls saakhtemaan.v1.FundService.GetFundSummary.
func (c *FundServiceClient) GetFundSummary(ctx context.Context, req *connect.Request[api.GetFundSummaryRequest]) (*connect.Response[api.GetFundSummaryResponse], error) {
	return c.getFundSummary.CallUnary(ctx, req)
}

// ListTransactions calls saakhtemaan.v1.FundService.ListTransactions.
func (c *FundServiceClient) ListTransactions(ctx context.Context, req *connect.Request[api.ListTransactionsRequest]) (*connect.Response[api.ListTransactionsResponse], error) {
	return c.listTransactions.CallUnary(ctx, req)
}
