package apiconnect

import (
	"context"
	"net/http"

	"connectrpc.com/connect"

	"github.com/mmynk/saakhtemaan/pkg/api"
)

// PaymentServiceName is the fully-qualified name of the PaymentService.
const PaymentServiceName = "saakhtemaan.v1.PaymentService"

// Procedure paths of the PaymentService.
const (
	PaymentServiceRecordPaymentProcedure   = "/saakhtemaan.v1.PaymentService/RecordPayment"
	PaymentServiceListPaymentsProcedure    = "/saakhtemaan.v1.PaymentService/ListPayments"
	PaymentServiceGetUnitBalancesProcedure = "/saakhtemaan.v1.PaymentService/GetUnitBalances"
)

// PaymentServiceHandler is implemented by the server.
// PaymentService records resident payments and reports unit balances.
type PaymentServiceHandler interface {
	RecordPayment(context.Context, *connect.Request[api.RecordPaymentRequest]) (*connect.Response[api.RecordPaymentResponse], error)
	ListPayments(context.Context, *connect.Request[api.ListPaymentsRequest]) (*connect.Response[api.ListPaymentsResponse], error)
	GetUnitBalances(context.Context, *connect.Request[api.GetUnitBalancesRequest]) (*connect.Response[api.GetUnitBalancesResponse], error)
}

// NewPaymentServiceHandler builds an HTTP handler from the service implementation.
// It returns the path on which to mount the handler and the handler itself.
func NewPaymentServiceHandler(svc PaymentServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = handlerOptions(opts)
	return mount("/"+PaymentServiceName+"/",
		unary(PaymentServiceRecordPaymentProcedure, svc.RecordPayment, opts),
		unary(PaymentServiceListPaymentsProcedure, svc.ListPayments, opts),
		unary(PaymentServiceGetUnitBalancesProcedure, svc.GetUnitBalances, opts),
	)
}

// PaymentServiceClient is a client for the PaymentService.
type PaymentServiceClient struct {
	recordPayment   *connect.Client[api.RecordPaymentRequest, api.RecordPaymentResponse]
	listPayments    *connect.Client[api.ListPaymentsRequest, api.ListPaymentsResponse]
	getUnitBalances *connect.Client[api.GetUnitBalancesRequest, api.GetUnitBalancesResponse]
}

// NewPaymentServiceClient constructs a client for the PaymentService. baseURL is the
// server root, e.g. http://localhost:8080.
func NewPaymentServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) *PaymentServiceClient {
	return &PaymentServiceClient{
		recordPayment:   client[api.RecordPaymentRequest, api.RecordPaymentResponse](httpClient, baseURL, PaymentServiceRecordPaymentProcedure, opts),
		listPayments:    client[api.ListPaymentsRequest, api.ListPaymentsResponse](httpClient, baseURL, PaymentServiceListPaymentsProcedure, opts),
		getUnitBalances: client[api.GetUnitBalancesRequest, api.GetUnitBalancesResponse](httpClient, baseURL, PaymentServiceGetUnitBalancesProcedure, opts),
	}
}

// RecordPayment calls saakhtemaan.v1.PaymentService.RecordPayment.
func (c *PaymentServiceClient) RecordPayment(ctx context.Context, req *connect.Request[api.RecordPaymentRequest]) (*connect.Response[api.RecordPaymentResponse], error) {
	return c.recordPayment.CallUnary(ctx, req)
}

// ListPayments calls saakhtemaan.v1.PaymentService.ListPayments.
func (c *PaymentServiceClient) ListPayments(ctx context.Context, req *connect.Request[api.ListPaymentsRequest]) (*connect.Response[api.ListPaymentsResponse], error) {
	return c.listPayments.CallUnary(ctx, req)
}

// GetUnitBalances calls saakhtemaan.v1.PaymentService.GetUnitBalances.
func (c *PaymentServiceClient) GetUnitBalances(ctx context.Context, req *connect.Request[api.GetUnitBalancesRequest]) (*connect.Response[api.GetUnitBalancesResponse], error) {
	return c.getUnitBalances.CallUnary(ctx, req)
}
