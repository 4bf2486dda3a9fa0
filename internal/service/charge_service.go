package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"connectrpc.com/connect"

	"github.com/mmynk/saakhtemaan/internal/calculator"
	"github.com/mmynk/saakhtemaan/internal/events"
	"github.com/mmynk/saakhtemaan/internal/models"
	"github.com/mmynk/saakhtemaan/internal/persian"
	"github.com/mmynk/saakhtemaan/internal/storage"
	"github.com/mmynk/saakhtemaan/pkg/api"
)

// DefaultDueIn is how long residents have to pay when no due date is given.
const DefaultDueIn = 10 * 24 * time.Hour

// ChargeService drafts, previews and issues monthly charges.
type ChargeService struct {
	tenancy
	publisher events.Publisher
	now       func() time.Time
}

// NewChargeService creates a new ChargeService. publisher may be nil.
func NewChargeService(store storage.Store, publisher events.Publisher) *ChargeService {
	return &ChargeService{
		tenancy:   tenancy{store: store},
		publisher: publisher,
		now:       time.Now,
	}
}

// allocate runs the calculator over the building's current roster.
func (s *ChargeService) allocate(ctx context.Context, buildingID string, items []models.ChargeItem) (*calculator.Allocation, map[string]string, error) {
	units, err := s.store.ListUnits(ctx, buildingID)
	if err != nil {
		return nil, nil, err
	}
	calcItems, calcUnits := calculatorInput(items, units)
	alloc, err := calculator.Allocate(calcItems, calcUnits)
	if err != nil {
		return nil, nil, err
	}

	numbers := make(map[string]string, len(units))
	for _, u := range units {
		numbers[u.ID] = u.Number
	}
	return alloc, numbers, nil
}

// PreviewAllocation shows how draft items would divide across the building
// without storing anything.
func (s *ChargeService) PreviewAllocation(ctx context.Context, req *connect.Request[api.PreviewAllocationRequest]) (*connect.Response[api.PreviewAllocationResponse], error) {
	slog.Debug("PreviewAllocation request", "building_id", req.Msg.BuildingID, "items", len(req.Msg.Items))

	if _, err := s.building(ctx, req.Msg.BuildingID); err != nil {
		return nil, toConnectError(err)
	}

	alloc, numbers, err := s.allocate(ctx, req.Msg.BuildingID, toModelItems(req.Msg.Items))
	if err != nil {
		slog.Warn("PreviewAllocation: allocation failed", "building_id", req.Msg.BuildingID, "error", err)
		return nil, toConnectError(err)
	}

	return connect.NewResponse(&api.PreviewAllocationResponse{
		Allocations:    toAPIAllocations(alloc, numbers),
		ItemsTotal:     alloc.ItemsTotal,
		Total:          alloc.Total,
		OverCollection: alloc.OverCollection(),
	}), nil
}

// CreateCharge stores a draft charge.
func (s *ChargeService) CreateCharge(ctx context.Context, req *connect.Request[api.CreateChargeRequest]) (*connect.Response[api.CreateChargeResponse], error) {
	if _, err := s.building(ctx, req.Msg.BuildingID); err != nil {
		return nil, toConnectError(err)
	}

	year, month := req.Msg.PeriodYear, req.Msg.PeriodMonth
	if year == 0 || month == 0 {
		cy, cm := persian.CurrentPeriod(s.now())
		if year == 0 {
			year = cy
		}
		if month == 0 {
			month = cm
		}
	}

	charge := &models.Charge{
		BuildingID:  req.Msg.BuildingID,
		Title:       strings.TrimSpace(req.Msg.Title),
		PeriodYear:  year,
		PeriodMonth: month,
		Status:      models.ChargeStatusDraft,
		Items:       toModelItems(req.Msg.Items),
	}
	if err := s.store.CreateCharge(ctx, charge); err != nil {
		slog.Error("CreateCharge: failed to store charge", "building_id", req.Msg.BuildingID, "error", err)
		return nil, toConnectError(err)
	}

	slog.Info("Charge drafted", "charge_id", charge.ID, "building_id", charge.BuildingID,
		"period", fmt.Sprintf("%d/%02d", charge.PeriodYear, charge.PeriodMonth))
	return connect.NewResponse(&api.CreateChargeResponse{Charge: toAPICharge(charge)}), nil
}

// UpdateChargeItems replaces the items of a draft charge.
func (s *ChargeService) UpdateChargeItems(ctx context.Context, req *connect.Request[api.UpdateChargeItemsRequest]) (*connect.Response[api.UpdateChargeItemsResponse], error) {
	if _, err := s.charge(ctx, req.Msg.ChargeID); err != nil {
		return nil, toConnectError(err)
	}
	if err := s.store.UpdateChargeItems(ctx, req.Msg.ChargeID, toModelItems(req.Msg.Items)); err != nil {
		return nil, toConnectError(err)
	}

	charge, err := s.store.GetCharge(ctx, req.Msg.ChargeID)
	if err != nil {
		return nil, toConnectError(err)
	}
	return connect.NewResponse(&api.UpdateChargeItemsResponse{Charge: toAPICharge(charge)}), nil
}

// GetCharge returns a charge with its items.
func (s *ChargeService) GetCharge(ctx context.Context, req *connect.Request[api.GetChargeRequest]) (*connect.Response[api.GetChargeResponse], error) {
	charge, err := s.charge(ctx, req.Msg.ChargeID)
	if err != nil {
		return nil, toConnectError(err)
	}
	return connect.NewResponse(&api.GetChargeResponse{Charge: toAPICharge(charge)}), nil
}

// ListCharges returns a building's charges, newest period first.
func (s *ChargeService) ListCharges(ctx context.Context, req *connect.Request[api.ListChargesRequest]) (*connect.Response[api.ListChargesResponse], error) {
	if _, err := s.building(ctx, req.Msg.BuildingID); err != nil {
		return nil, toConnectError(err)
	}
	charges, err := s.store.ListCharges(ctx, req.Msg.BuildingID)
	if err != nil {
		return nil, toConnectError(err)
	}

	resp := &api.ListChargesResponse{Charges: make([]*api.Charge, 0, len(charges))}
	for _, c := range charges {
		// the list query leaves items out; load them for the totals
		full, err := s.store.GetCharge(ctx, c.ID)
		if err != nil {
			return nil, toConnectError(err)
		}
		resp.Charges = append(resp.Charges, toAPICharge(full))
	}
	return connect.NewResponse(resp), nil
}

// IssueCharge allocates a draft charge over the current roster, stores one
// unit charge per unit and freezes the charge.
func (s *ChargeService) IssueCharge(ctx context.Context, req *connect.Request[api.IssueChargeRequest]) (*connect.Response[api.IssueChargeResponse], error) {
	charge, err := s.charge(ctx, req.Msg.ChargeID)
	if err != nil {
		return nil, toConnectError(err)
	}
	if charge.Status != models.ChargeStatusDraft {
		return nil, connect.NewError(connect.CodeFailedPrecondition,
			fmt.Errorf("charge %s is already %s", charge.ID, charge.Status))
	}

	alloc, numbers, err := s.allocate(ctx, charge.BuildingID, charge.Items)
	if err != nil {
		slog.Warn("IssueCharge: allocation failed", "charge_id", charge.ID, "error", err)
		return nil, toConnectError(err)
	}

	now := s.now()
	dueDate := req.Msg.DueDate
	if dueDate == 0 {
		from := now
		if start := persian.PeriodStart(charge.PeriodYear, charge.PeriodMonth, now.Location()); start.After(now) {
			from = start
		}
		dueDate = from.Add(DefaultDueIn).Unix()
	}

	unitCharges := make([]*models.UnitCharge, 0, len(alloc.Units))
	for _, ua := range alloc.Units {
		unitCharges = append(unitCharges, &models.UnitCharge{
			UnitID: ua.UnitID,
			Amount: ua.Total,
			Status: models.UnitChargePending,
		})
	}
	if err := s.store.IssueCharge(ctx, charge.ID, dueDate, now.Unix(), unitCharges); err != nil {
		slog.Error("IssueCharge: failed to store unit charges", "charge_id", charge.ID, "error", err)
		return nil, toConnectError(err)
	}

	charge.Status = models.ChargeStatusIssued
	charge.DueDate = dueDate
	charge.IssuedAt = now.Unix()

	resp := &api.IssueChargeResponse{
		Charge:         toAPICharge(charge),
		UnitCharges:    make([]*api.UnitCharge, 0, len(unitCharges)),
		OverCollection: alloc.OverCollection(),
	}
	for _, uc := range unitCharges {
		resp.UnitCharges = append(resp.UnitCharges, toAPIUnitCharge(uc, numbers))
	}

	slog.Info("Charge issued", "charge_id", charge.ID, "units", len(unitCharges),
		"total", alloc.Total, "over_collection", alloc.OverCollection())
	publish(ctx, s.publisher, events.ChargeIssued{
		ChargeID:   charge.ID,
		BuildingID: charge.BuildingID,
		Title:      charge.Title,
		Period:     persian.JalaliPeriod(charge.PeriodYear, charge.PeriodMonth),
		Total:      alloc.Total,
		UnitCount:  len(unitCharges),
		DueDate:    dueDate,
		Timestamp:  now,
	})

	return connect.NewResponse(resp), nil
}

// DeleteCharge removes a draft charge.
func (s *ChargeService) DeleteCharge(ctx context.Context, req *connect.Request[api.DeleteChargeRequest]) (*connect.Response[api.DeleteChargeResponse], error) {
	if _, err := s.charge(ctx, req.Msg.ChargeID); err != nil {
		return nil, toConnectError(err)
	}
	if err := s.store.DeleteCharge(ctx, req.Msg.ChargeID); err != nil {
		return nil, toConnectError(err)
	}
	return connect.NewResponse(&api.DeleteChargeResponse{}), nil
}

// ListUnitCharges returns the per-unit amounts of an issued charge.
func (s *ChargeService) ListUnitCharges(ctx context.Context, req *connect.Request[api.ListUnitChargesRequest]) (*connect.Response[api.ListUnitChargesResponse], error) {
	charge, err := s.charge(ctx, req.Msg.ChargeID)
	if err != nil {
		return nil, toConnectError(err)
	}
	unitCharges, err := s.store.ListUnitChargesByCharge(ctx, charge.ID)
	if err != nil {
		return nil, toConnectError(err)
	}
	numbers, err := s.unitNumbers(ctx, charge.BuildingID)
	if err != nil {
		return nil, toConnectError(err)
	}

	resp := &api.ListUnitChargesResponse{UnitCharges: make([]*api.UnitCharge, 0, len(unitCharges))}
	for _, uc := range unitCharges {
		resp.UnitCharges = append(resp.UnitCharges, toAPIUnitCharge(uc, numbers))
	}
	return connect.NewResponse(resp), nil
}
