package apiconnect

import (
	"context"
	"net/http"

	"connectrpc.com/connect"

	"github.com/mmynk/saakhtemaan/pkg/api"
)

// BuildingServiceName is the fully-qualified name of the BuildingService.
const BuildingServiceName = "saakhtemaan.v1.BuildingService"

// Procedure paths of the BuildingService.
const (
	BuildingServiceCreateBuildingProcedure = "/saakhtemaan.v1.BuildingService/CreateBuilding"
	BuildingServiceGetBuildingProcedure    = "/saakhtemaan.v1.BuildingService/GetBuilding"
	BuildingServiceListBuildingsProcedure  = "/saakhtemaan.v1.BuildingService/ListBuildings"
	BuildingServiceDeleteBuildingProcedure = "/saakhtemaan.v1.BuildingService/DeleteBuilding"
	BuildingServiceCreateUnitProcedure     = "/saakhtemaan.v1.BuildingService/CreateUnit"
	BuildingServiceUpdateUnitProcedure     = "/saakhtemaan.v1.BuildingService/UpdateUnit"
	BuildingServiceListUnitsProcedure      = "/saakhtemaan.v1.BuildingService/ListUnits"
	BuildingServiceDeleteUnitProcedure     = "/saakhtemaan.v1.BuildingService/DeleteUnit"
	BuildingServiceAddResidentProcedure    = "/saakhtemaan.v1.BuildingService/AddResident"
	BuildingServiceListResidentsProcedure  = "/saakhtemaan.v1.BuildingService/ListResidents"
	BuildingServiceRemoveResidentProcedure = "/saakhtemaan.v1.BuildingService/RemoveResident"
)

// BuildingServiceHandler is implemented by the server.
// BuildingService manages buildings, their units and residents.
type BuildingServiceHandler interface {
	CreateBuilding(context.Context, *connect.Request[api.CreateBuildingRequest]) (*connect.Response[api.CreateBuildingResponse], error)
	GetBuilding(context.Context, *connect.Request[api.GetBuildingRequest]) (*connect.Response[api.GetBuildingResponse], error)
	ListBuildings(context.Context, *connect.Request[api.ListBuildingsRequest]) (*connect.Response[api.ListBuildingsResponse], error)
	DeleteBuilding(context.Context, *connect.Request[api.DeleteBuildingRequest]) (*connect.Response[api.DeleteBuildingResponse], error)
	CreateUnit(context.Context, *connect.Request[api.CreateUnitRequest]) (*connect.Response[api.CreateUnitResponse], error)
	UpdateUnit(context.Context, *connect.Request[api.UpdateUnitRequest]) (*connect.Response[api.UpdateUnitResponse], error)
	ListUnits(context.Context, *connect.Request[api.ListUnitsRequest]) (*connect.Response[api.ListUnitsResponse], error)
	DeleteUnit(context.Context, *connect.Request[api.DeleteUnitRequest]) (*connect.Response[api.DeleteUnitResponse], error)
	AddResident(context.Context, *connect.Request[api.AddResidentRequest]) (*connect.Response[api.AddResidentResponse], error)
	ListResidents(context.Context, *connect.Request[api.ListResidentsRequest]) (*connect.Response[api.ListResidentsResponse], error)
	RemoveResident(context.Context, *connect.Request[api.RemoveResidentRequest]) (*connect.Response[api.RemoveResidentResponse], error)
}

// NewBuildingServiceHandler builds an HTTP handler from the service implementation.
// It returns the path on which to mount the handler and the handler itself.
func NewBuildingServiceHandler(svc BuildingServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = handlerOptions(opts)
	return mount("/"+BuildingServiceName+"/",
		unary(BuildingServiceCreateBuildingProcedure, svc.CreateBuilding, opts),
		unary(BuildingServiceGetBuildingProcedure, svc.GetBuilding, opts),
		unary(BuildingServiceListBuildingsProcedure, svc.ListBuildings, opts),
		unary(BuildingServiceDeleteBuildingProcedure, svc.DeleteBuilding, opts),
		unary(BuildingServiceCreateUnitProcedure, svc.CreateUnit, opts),
		unary(BuildingServiceUpdateUnitProcedure, svc.UpdateUnit, opts),
		unary(BuildingServiceListUnitsProcedure, svc.ListUnits, opts),
		unary(BuildingServiceDeleteUnitProcedure, svc.DeleteUnit, opts),
		unary(BuildingServiceAddResidentProcedure, svc.AddResident, opts),
		unary(BuildingServiceListResidentsProcedure, svc.ListResidents, opts),
		unary(BuildingServiceRemoveResidentProcedure, svc.RemoveResident, opts),
	)
}

// BuildingServiceClient is a client for the BuildingService.
type BuildingServiceClient struct {
	createBuilding *connect.Client[api.CreateBuildingRequest, api.CreateBuildingResponse]
	getBuilding    *connect.Client[api.GetBuildingRequest, api.GetBuildingResponse]
	listBuildings  *connect.Client[api.ListBuildingsRequest, api.ListBuildingsResponse]
	deleteBuilding *connect.Client[api.DeleteBuildingRequest, api.DeleteBuildingResponse]
	createUnit     *connect.Client[api.CreateUnitRequest, api.CreateUnitResponse]
	updateUnit     *connect.Client[api.UpdateUnitRequest, api.UpdateUnitResponse]
	listUnits      *connect.Client[api.ListUnitsRequest, api.ListUnitsResponse]
	deleteUnit     *connect.Client[api.DeleteUnitRequest, api.DeleteUnitResponse]
	addResident    *connect.Client[api.AddResidentRequest, api.AddResidentResponse]
	listResidents  *connect.Client[api.ListResidentsRequest, api.ListResidentsResponse]
	removeResident *connect.Client[api.RemoveResidentRequest, api.RemoveResidentResponse]
}

// NewBuildingServiceClient constructs a client for the BuildingService. baseURL is the
// server root, e.g. http://localhost:8080.
func NewBuildingServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) *BuildingServiceClient {
	return &BuildingServiceClient{
		createBuilding: client[api.CreateBuildingRequest, api.CreateBuildingResponse](httpClient, baseURL, BuildingServiceCreateBuildingProcedure, opts),
		getBuilding:    client[api.GetBuildingRequest, api.GetBuildingResponse](httpClient, baseURL, BuildingServiceGetBuildingProcedure, opts),
		listBuildings:  client[api.ListBuildingsRequest, api.ListBuildingsResponse](httpClient, baseURL, BuildingServiceListBuildingsProcedure, opts),
		deleteBuilding: client[api.DeleteBuildingRequest, api.DeleteBuildingResponse](httpClient, baseURL, BuildingServiceDeleteBuildingProcedure, opts),
		createUnit:     client[api.CreateUnitRequest, api.CreateUnitResponse](httpClient, baseURL, BuildingServiceCreateUnitProcedure, opts),
		updateUnit:     client[api.UpdateUnitRequest, api.UpdateUnitResponse](httpClient, baseURL, BuildingServiceUpdateUnitProcedure, opts),
		listUnits:      client[api.ListUnitsRequest, api.ListUnitsResponse](httpClient, baseURL, BuildingServiceListUnitsProcedure, opts),
		deleteUnit:     client[api.DeleteUnitRequest, api.DeleteUnitResponse](httpClient, baseURL, BuildingServiceDeleteUnitProcedure, opts),
		addResident:    client[api.AddResidentRequest, api.AddResidentResponse](httpClient, baseURL, BuildingServiceAddResidentProcedure, opts),
		listResidents:  client[api.ListResidentsRequest, api.ListResidentsResponse](httpClient, baseURL, BuildingServiceListResidentsProcedure, opts),
		removeResident: client[api.RemoveResidentRequest, api.RemoveResidentResponse](httpClient, baseURL, BuildingServiceRemoveResidentProcedure, opts),
	}
}

// CreateBuilding calls saakhtemaan.v1.BuildingService.CreateBuilding.
func (c *BuildingServiceClient) CreateBuilding(ctx context.Context, req *connect.Request[api.CreateBuildingRequest]) (*connect.Response[api.CreateBuildingResponse], error) {
	return c.createBuilding.CallUnary(ctx, req)
}

// GetBuilding calls saakhtemaan.v1.BuildingService.GetBuilding.
func (c *BuildingServiceClient) GetBuilding(ctx context.Context, req *connect.Request[api.GetBuildingRequest]) (*connect.Response[api.GetBuildingResponse], error) {
	return c.getBuilding.CallUnary(ctx, req)
}

// ListBuildings calls saakhtemaan.v1.BuildingService.ListBuildings.
func (c *BuildingServiceClient) ListBuildings(ctx context.Context, req *connect.Request[api.ListBuildingsRequest]) (*connect.Response[api.ListBuildingsResponse], error) {
	return c.listBuildings.CallUnary(ctx, req)
}

// DeleteBuilding calls saakhtemaan.v1.BuildingService.DeleteBuilding.
func (c *BuildingServiceClient) DeleteBuilding(ctx context.Context, req *connect.Request[api.DeleteBuildingRequest]) (*connect.Response[api.DeleteBuildingResponse], error) {
	return c.deleteBuilding.CallUnary(ctx, req)
}

// CreateUnit calls saakhtemaan.v1.BuildingService.CreateUnit.
func (c *BuildingServiceClient) CreateUnit(ctx context.Context, req *connect.Request[api.CreateUnitRequest]) (*connect.Response[api.CreateUnitResponse], error) {
	return c.createUnit.CallUnary(ctx, req)
}

// UpdateUnit calls saakhtemaan.v1.BuildingService.UpdateUnit.
func (c *BuildingServiceClient) UpdateUnit(ctx context.Context, req *connect.Request[api.UpdateUnitRequest]) (*connect.Response[api.UpdateUnitResponse], error) {
	return c.updateUnit.CallUnary(ctx, req)
}

// ListUnits calls saakhtemaan.v1.BuildingService.ListUnits.
func (c *BuildingServiceClient) ListUnits(ctx context.Context, req *connect.Request[api.ListUnitsRequest]) (*connect.Response[api.ListUnitsResponse], error) {
	return c.listUnits.CallUnary(ctx, req)
}

// DeleteUnit calls saakhtemaan.v1.BuildingService.DeleteUnit.
func (c *BuildingServiceClient) DeleteUnit(ctx context.Context, req *connect.Request[api.DeleteUnitRequest]) (*connect.Response[api.DeleteUnitResponse], error) {
	return c.deleteUnit.CallUnary(ctx, req)
}

// AddResident calls saakhtemaan.v1.BuildingService.AddResident.
func (c *BuildingServiceClient) AddResident(ctx context.Context, req *connect.Request[api.AddResidentRequest]) (*connect.Response[api.AddResidentResponse], error) {
	return c.addResident.CallUnary(ctx, req)
}

// ListResidents calls saakhtemaan.v1.BuildingService.ListResidents.
func (c *BuildingServiceClient) ListResidents(ctx context.Context, req *connect.Request[api.ListResidentsRequest]) (*connect.Response[api.ListResidentsResponse], error) {
	return c.listResidents.CallUnary(ctx, req)
}

// RemoveResident calls saakhtemaan.v1.BuildingService.RemoveResident.
func (c *BuildingServiceClient) RemoveResident(ctx context.Context, req *connect.Request[api.RemoveResidentRequest]) (*connect.Response[api.RemoveResidentResponse], error) {
	return c.removeResident.CallUnary(ctx, req)
}
