package service

import (
	"context"
	"log/slog"
	"strings"

	"connectrpc.com/connect"

	"github.com/mmynk/saakhtemaan/internal/models"
	"github.com/mmynk/saakhtemaan/internal/storage"
	"github.com/mmynk/saakhtemaan/pkg/api"
)

// BuildingService manages buildings, their units and residents.
type BuildingService struct {
	tenancy
}

// NewBuildingService creates a new BuildingService with the given storage backend.
func NewBuildingService(store storage.Store) *BuildingService {
	return &BuildingService{tenancy: tenancy{store: store}}
}

// CreateBuilding registers a building under the calling manager.
func (s *BuildingService) CreateBuilding(ctx context.Context, req *connect.Request[api.CreateBuildingRequest]) (*connect.Response[api.CreateBuildingResponse], error) {
	userID, err := currentUser(ctx)
	if err != nil {
		return nil, err
	}

	building := &models.Building{
		ManagerID: userID,
		Name:      strings.TrimSpace(req.Msg.Name),
		Address:   strings.TrimSpace(req.Msg.Address),
	}
	if err := s.store.CreateBuilding(ctx, building); err != nil {
		slog.Error("CreateBuilding: failed to store building", "error", err)
		return nil, toConnectError(err)
	}

	slog.Info("Building created", "building_id", building.ID, "manager_id", userID)
	return connect.NewResponse(&api.CreateBuildingResponse{Building: toAPIBuilding(building, 0)}), nil
}

// GetBuilding returns one building with its unit count.
func (s *BuildingService) GetBuilding(ctx context.Context, req *connect.Request[api.GetBuildingRequest]) (*connect.Response[api.GetBuildingResponse], error) {
	building, err := s.building(ctx, req.Msg.BuildingID)
	if err != nil {
		return nil, toConnectError(err)
	}
	units, err := s.store.ListUnits(ctx, building.ID)
	if err != nil {
		return nil, toConnectError(err)
	}
	return connect.NewResponse(&api.GetBuildingResponse{Building: toAPIBuilding(building, len(units))}), nil
}

// ListBuildings returns the calling manager's buildings.
func (s *BuildingService) ListBuildings(ctx context.Context, req *connect.Request[api.ListBuildingsRequest]) (*connect.Response[api.ListBuildingsResponse], error) {
	userID, err := currentUser(ctx)
	if err != nil {
		return nil, err
	}

	buildings, err := s.store.ListBuildingsByManager(ctx, userID)
	if err != nil {
		return nil, toConnectError(err)
	}

	resp := &api.ListBuildingsResponse{Buildings: make([]*api.Building, 0, len(buildings))}
	for _, b := range buildings {
		units, err := s.store.ListUnits(ctx, b.ID)
		if err != nil {
			return nil, toConnectError(err)
		}
		resp.Buildings = append(resp.Buildings, toAPIBuilding(b, len(units)))
	}
	return connect.NewResponse(resp), nil
}

// DeleteBuilding removes a building with all of its data.
func (s *BuildingService) DeleteBuilding(ctx context.Context, req *connect.Request[api.DeleteBuildingRequest]) (*connect.Response[api.DeleteBuildingResponse], error) {
	if _, err := s.building(ctx, req.Msg.BuildingID); err != nil {
		return nil, toConnectError(err)
	}
	if err := s.store.DeleteBuilding(ctx, req.Msg.BuildingID); err != nil {
		return nil, toConnectError(err)
	}
	slog.Info("Building deleted", "building_id", req.Msg.BuildingID)
	return connect.NewResponse(&api.DeleteBuildingResponse{}), nil
}

// CreateUnit adds a unit to a building. Unit numbers are unique per building.
func (s *BuildingService) CreateUnit(ctx context.Context, req *connect.Request[api.CreateUnitRequest]) (*connect.Response[api.CreateUnitResponse], error) {
	if _, err := s.building(ctx, req.Msg.BuildingID); err != nil {
		return nil, toConnectError(err)
	}

	unit := &models.Unit{BuildingID: req.Msg.BuildingID}
	applyUnitInput(unit, req.Msg.Unit)
	if err := s.store.CreateUnit(ctx, unit); err != nil {
		return nil, toConnectError(err)
	}
	return connect.NewResponse(&api.CreateUnitResponse{Unit: toAPIUnit(unit)}), nil
}

// UpdateUnit edits a unit. Already issued unit charges keep their amounts.
func (s *BuildingService) UpdateUnit(ctx context.Context, req *connect.Request[api.UpdateUnitRequest]) (*connect.Response[api.UpdateUnitResponse], error) {
	unit, err := s.unit(ctx, req.Msg.UnitID)
	if err != nil {
		return nil, toConnectError(err)
	}

	applyUnitInput(unit, req.Msg.Unit)
	if err := s.store.UpdateUnit(ctx, unit); err != nil {
		return nil, toConnectError(err)
	}
	return connect.NewResponse(&api.UpdateUnitResponse{Unit: toAPIUnit(unit)}), nil
}

// ListUnits returns the building roster ordered by floor.
func (s *BuildingService) ListUnits(ctx context.Context, req *connect.Request[api.ListUnitsRequest]) (*connect.Response[api.ListUnitsResponse], error) {
	if _, err := s.building(ctx, req.Msg.BuildingID); err != nil {
		return nil, toConnectError(err)
	}
	units, err := s.store.ListUnits(ctx, req.Msg.BuildingID)
	if err != nil {
		return nil, toConnectError(err)
	}

	resp := &api.ListUnitsResponse{Units: make([]*api.Unit, 0, len(units))}
	for _, u := range units {
		resp.Units = append(resp.Units, toAPIUnit(u))
	}
	return connect.NewResponse(resp), nil
}

// DeleteUnit removes a unit.
func (s *BuildingService) DeleteUnit(ctx context.Context, req *connect.Request[api.DeleteUnitRequest]) (*connect.Response[api.DeleteUnitResponse], error) {
	if _, err := s.unit(ctx, req.Msg.UnitID); err != nil {
		return nil, toConnectError(err)
	}
	if err := s.store.DeleteUnit(ctx, req.Msg.UnitID); err != nil {
		return nil, toConnectError(err)
	}
	return connect.NewResponse(&api.DeleteUnitResponse{}), nil
}

// AddResident registers a person living in a unit.
func (s *BuildingService) AddResident(ctx context.Context, req *connect.Request[api.AddResidentRequest]) (*connect.Response[api.AddResidentResponse], error) {
	if _, err := s.unit(ctx, req.Msg.UnitID); err != nil {
		return nil, toConnectError(err)
	}

	resident := &models.Resident{
		UnitID:   req.Msg.UnitID,
		FullName: strings.TrimSpace(req.Msg.FullName),
		Phone:    req.Msg.Phone,
		Role:     models.ResidentRole(req.Msg.Role),
	}
	if err := s.store.CreateResident(ctx, resident); err != nil {
		return nil, toConnectError(err)
	}
	return connect.NewResponse(&api.AddResidentResponse{Resident: toAPIResident(resident)}), nil
}

// ListResidents returns the residents of a unit.
func (s *BuildingService) ListResidents(ctx context.Context, req *connect.Request[api.ListResidentsRequest]) (*connect.Response[api.ListResidentsResponse], error) {
	if _, err := s.unit(ctx, req.Msg.UnitID); err != nil {
		return nil, toConnectError(err)
	}
	residents, err := s.store.ListResidents(ctx, req.Msg.UnitID)
	if err != nil {
		return nil, toConnectError(err)
	}

	resp := &api.ListResidentsResponse{Residents: make([]*api.Resident, 0, len(residents))}
	for _, r := range residents {
		resp.Residents = append(resp.Residents, toAPIResident(r))
	}
	return connect.NewResponse(resp), nil
}

// RemoveResident deletes a resident.
func (s *BuildingService) RemoveResident(ctx context.Context, req *connect.Request[api.RemoveResidentRequest]) (*connect.Response[api.RemoveResidentResponse], error) {
	resident, err := s.store.GetResident(ctx, req.Msg.ResidentID)
	if err != nil {
		return nil, toConnectError(err)
	}
	if _, err := s.unit(ctx, resident.UnitID); err != nil {
		return nil, toConnectError(err)
	}
	if err := s.store.DeleteResident(ctx, resident.ID); err != nil {
		return nil, toConnectError(err)
	}
	return connect.NewResponse(&api.RemoveResidentResponse{}), nil
}
