package apiconnect

import (
	"context"
	"net/http"

	"connectrpc.com/connect"

	"github.com/mmynk/saakhtemaan/pkg/api"
)

// ChargeServiceName is the fully-qualified name of the ChargeService.
const ChargeServiceName = "saakhtemaan.v1.ChargeService"

// Procedure paths of the ChargeService.
const (
	ChargeServicePreviewAllocationProcedure = "/saakhtemaan.v1.ChargeService/PreviewAllocation"
	ChargeServiceCreateChargeProcedure      = "/saakhtemaan.v1.ChargeService/CreateCharge"
	ChargeServiceUpdateChargeItemsProcedure = "/saakhtemaan.v1.ChargeService/UpdateChargeItems"
	ChargeServiceGetChargeProcedure         = "/saakhtemaan.v1.ChargeService/GetCharge"
	ChargeServiceListChargesProcedure       = "/saakhtemaan.v1.ChargeService/ListCharges"
	ChargeServiceIssueChargeProcedure       = "/saakhtemaan.v1.ChargeService/IssueCharge"
	ChargeServiceDeleteChargeProcedure      = "/saakhtemaan.v1.ChargeService/DeleteCharge"
	ChargeServiceListUnitChargesProcedure   = "/saakhtemaan.v1.ChargeService/ListUnitCharges"
)

// ChargeServiceHandler is implemented by the server.
// ChargeService drafts, previews and issues monthly charges.
type ChargeServiceHandler interface {
	PreviewAllocation(context.Context, *connect.Request[api.PreviewAllocationRequest]) (*connect.Response[api.PreviewAllocationResponse], error)
	CreateCharge(context.Context, *connect.Request[api.CreateChargeRequest]) (*connect.Response[api.CreateChargeResponse], error)
	UpdateChargeItems(context.Context, *connect.Request[api.UpdateChargeItemsRequest]) (*connect.Response[api.UpdateChargeItemsResponse], error)
	GetCharge(context.Context, *connect.Request[api.GetChargeRequest]) (*connect.Response[api.GetChargeResponse], error)
	ListCharges(context.Context, *connect.Request[api.ListChargesRequest]) (*connect.Response[api.ListChargesResponse], error)
	IssueCharge(context.Context, *connect.Request[api.IssueChargeRequest]) (*connect.Response[api.IssueChargeResponse], error)
	DeleteCharge(context.Context, *connect.Request[api.DeleteChargeRequest]) (*connect.Response[api.DeleteChargeResponse], error)
	ListUnitCharges(context.Context, *connect.Request[api.ListUnitChargesRequest]) (*connect.Response[api.ListUnitChargesResponse], error)
}

// NewChargeServiceHandler builds an HTTP handler from the service implementation.
// It returns the path on which to mount the handler and the handler itself.
func NewChargeServiceHandler(svc ChargeServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = handlerOptions(opts)
	return mount("/"+ChargeServiceName+"/",
		unary(ChargeServicePreviewAllocationProcedure, svc.PreviewAllocation, opts),
		unary(ChargeServiceCreateChargeProcedure, svc.CreateCharge, opts),
		unary(ChargeServiceUpdateChargeItemsProcedure, svc.UpdateChargeItems, opts),
		unary(ChargeServiceGetChargeProcedure, svc.GetCharge, opts),
		unary(ChargeServiceListChargesProcedure, svc.ListCharges, opts),
		unary(ChargeServiceIssueChargeProcedure, svc.IssueCharge, opts),
		unary(ChargeServiceDeleteChargeProcedure, svc.DeleteCharge, opts),
		unary(ChargeServiceListUnitChargesProcedure, svc.ListUnitCharges, opts),
	)
}

// ChargeServiceClient is a client for the ChargeService.
type ChargeServiceClient struct {
	previewAllocation *connect.Client[api.PreviewAllocationRequest, api.PreviewAllocationResponse]
	createCharge      *connect.Client[api.CreateChargeRequest, api.CreateChargeResponse]
	updateChargeItems *connect.Client[api.UpdateChargeItemsRequest, api.UpdateChargeItemsResponse]
	getCharge         *connect.Client[api.GetChargeRequest, api.GetChargeResponse]
	listCharges       *connect.Client[api.ListChargesRequest, api.ListChargesResponse]
	issueCharge       *connect.Client[api.IssueChargeRequest, api.IssueChargeResponse]
	deleteCharge      *connect.Client[api.DeleteChargeRequest, api.DeleteChargeResponse]
	listUnitCharges   *connect.Client[api.ListUnitChargesRequest, api.ListUnitChargesResponse]
}

// NewChargeServiceClient constructs a client for the ChargeService. baseURL is the
// server root, e.g. http://localhost:8080.
func NewChargeServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) *ChargeServiceClient {
	return &ChargeServiceClient{
		previewAllocation: client[api.PreviewAllocationRequest, api.PreviewAllocationResponse](httpClient, baseURL, ChargeServicePreviewAllocationProcedure, opts),
		createCharge:      client[api.CreateChargeRequest, api.CreateChargeResponse](httpClient, baseURL, ChargeServiceCreateChargeProcedure, opts),
		updateChargeItems: client[api.UpdateChargeItemsRequest, api.UpdateChargeItemsResponse](httpClient, baseURL, ChargeServiceUpdateChargeItemsProcedure, opts),
		getCharge:         client[api.GetChargeRequest, api.GetChargeResponse](httpClient, baseURL, ChargeServiceGetChargeProcedure, opts),
		listCharges:       client[api.ListChargesRequest, api.ListChargesResponse](httpClient, baseURL, ChargeServiceListChargesProcedure, opts),
		issueCharge:       client[api.IssueChargeRequest, api.IssueChargeResponse](httpClient, baseURL, ChargeServiceIssueChargeProcedure, opts),
		deleteCharge:      client[api.DeleteChargeRequest, api.DeleteChargeResponse](httpClient, baseURL, ChargeServiceDeleteChargeProcedure, opts),
		listUnitCharges:   client[api.ListUnitChargesRequest, api.ListUnitChargesResponse](httpClient, baseURL, ChargeServiceListUnitChargesProcedure, opts),
	}
}

// PreviewAllocation calls saakhtemaan.v1.ChargeService.PreviewAllocation.
func (c *ChargeServiceClient) PreviewAllocation(ctx context.Context, req *connect.Request[api.PreviewAllocationRequest]) (*connect.Response[api.PreviewAllocationResponse], error) {
	return c.previewAllocation.CallUnary(ctx, req)
}

// CreateCharge calls saakhtemaan.v1.ChargeService.CreateCharge.
func (c *ChargeServiceClient) CreateCharge(ctx context.Context, req *connect.Request[api.CreateChargeRequest]) (*connect.Response[api.CreateChargeResponse], error) {
	return c.createCharge.CallUnary(ctx, req)
}

// UpdateChargeItems calls saakhtemaan.v1.ChargeService.UpdateChargeItems.
func (c *ChargeServiceClient) UpdateChargeItems(ctx context.Context, req *connect.Request[api.UpdateChargeItemsRequest]) (*connect.Response[api.UpdateChargeItemsResponse], error) {
	return c.updateChargeItems.CallUnary(ctx, req)
}

// GetCharge calls saakhtemaan.v1.ChargeService.GetCharge.
func (c *ChargeServiceClient) GetCharge(ctx context.Context, req *connect.Request[api.GetChargeRequest]) (*connect.Response[api.GetChargeResponse], error) {
	return c.getCharge.CallUnary(ctx, req)
}

// ListCharges calls saakhtemaan.v1.ChargeService.ListCharges.
func (c *ChargeServiceClient) ListCharges(ctx context.Context, req *connect.Request[api.ListChargesRequest]) (*connect.Response[api.ListChargesResponse], error) {
	return c.listCharges.CallUnary(ctx, req)
}

// IssueCharge calls saakhtemaan.v1.ChargeService.IssueCharge.
func (c *ChargeServiceClient) IssueCharge(ctx context.Context, req *connect.Request[api.IssueChargeRequest]) (*connect.Response[api.IssueChargeResponse], error) {
	return c.issueCharge.CallUnary(ctx, req)
}

// DeleteCharge calls saakhtemaan.v1.ChargeService.DeleteCharge.
func (c *ChargeServiceClient) DeleteCharge(ctx context.Context, req *connect.Request[api.DeleteChargeRequest]) (*connect.Response[api.DeleteChargeResponse], error) {
	return c.deleteCharge.CallUnary(ctx, req)
}

// ListUnitCharges calls saakhtemaan.v1.ChargeService.ListUnitCharges.
func (c *ChargeServiceClient) ListUnitCharges(ctx context.Context, req *connect.Request[api.ListUnitChargesRequest]) (*connect.Response[api.ListUnitChargesResponse], error) {
	return c.listUnitCharges.CallUnary(ctx, req)
}
