package service

import (
	"context"
	"log/slog"
	"time"

	"connectrpc.com/connect"

	"github.com/mmynk/saakhtemaan/internal/calculator"
	"github.com/mmynk/saakhtemaan/internal/events"
	"github.com/mmynk/saakhtemaan/internal/middleware"
	"github.com/mmynk/saakhtemaan/internal/models"
	"github.com/mmynk/saakhtemaan/internal/persian"
	"github.com/mmynk/saakhtemaan/internal/storage"
	"github.com/mmynk/saakhtemaan/pkg/api"
)

// PaymentService records payments and reports who still owes what.
type PaymentService struct {
	tenancy
	publisher events.Publisher
	now       func() time.Time
}

// NewPaymentService creates a new PaymentService. publisher may be nil.
func NewPaymentService(store storage.Store, publisher events.Publisher) *PaymentService {
	return &PaymentService{
		tenancy:   tenancy{store: store},
		publisher: publisher,
		now:       time.Now,
	}
}

// RecordPayment applies a payment to a unit charge and credits the fund.
// Payments above the outstanding amount are rejected.
func (s *PaymentService) RecordPayment(ctx context.Context, req *connect.Request[api.RecordPaymentRequest]) (*connect.Response[api.RecordPaymentResponse], error) {
	uc, err := s.store.GetUnitCharge(ctx, req.Msg.UnitChargeID)
	if err != nil {
		return nil, toConnectError(err)
	}
	charge, err := s.charge(ctx, uc.ChargeID)
	if err != nil {
		return nil, toConnectError(err)
	}

	payment := &models.Payment{
		UnitChargeID: uc.ID,
		UnitID:       uc.UnitID,
		BuildingID:   charge.BuildingID,
		Amount:       req.Msg.Amount,
		Method:       models.PaymentMethod(req.Msg.Method),
		Reference:    req.Msg.Reference,
		PaidAt:       req.Msg.PaidAt,
		RecordedBy:   middleware.GetUserID(ctx),
	}
	now := s.now()
	if payment.PaidAt == 0 {
		payment.PaidAt = now.Unix()
	}

	updated, err := s.store.RecordPayment(ctx, payment, now)
	if err != nil {
		slog.Warn("RecordPayment failed", "unit_charge_id", uc.ID, "amount", req.Msg.Amount, "error", err)
		return nil, toConnectError(err)
	}

	numbers, err := s.unitNumbers(ctx, charge.BuildingID)
	if err != nil {
		return nil, toConnectError(err)
	}

	slog.Info("Payment recorded", "payment_id", payment.ID, "unit_charge_id", uc.ID,
		"amount", payment.Amount, "status", updated.Status)
	publish(ctx, s.publisher, events.PaymentRecorded{
		PaymentID:    payment.ID,
		UnitChargeID: updated.ID,
		UnitID:       updated.UnitID,
		BuildingID:   charge.BuildingID,
		Amount:       payment.Amount,
		Outstanding:  updated.Outstanding(),
		Status:       string(updated.Status),
		Timestamp:    s.now(),
	})

	return connect.NewResponse(&api.RecordPaymentResponse{
		Payment:    toAPIPayment(payment),
		UnitCharge: toAPIUnitCharge(updated, numbers),
	}), nil
}

// ListPayments returns a building's payments, newest first.
func (s *PaymentService) ListPayments(ctx context.Context, req *connect.Request[api.ListPaymentsRequest]) (*connect.Response[api.ListPaymentsResponse], error) {
	if _, err := s.building(ctx, req.Msg.BuildingID); err != nil {
		return nil, toConnectError(err)
	}
	payments, err := s.store.ListPaymentsByBuilding(ctx, req.Msg.BuildingID)
	if err != nil {
		return nil, toConnectError(err)
	}

	resp := &api.ListPaymentsResponse{Payments: make([]*api.Payment, 0, len(payments))}
	for _, p := range payments {
		resp.Payments = append(resp.Payments, toAPIPayment(p))
	}
	return connect.NewResponse(resp), nil
}

// GetUnitBalances reports what each unit owes across all issued charges,
// largest debtor first.
func (s *PaymentService) GetUnitBalances(ctx context.Context, req *connect.Request[api.GetUnitBalancesRequest]) (*connect.Response[api.GetUnitBalancesResponse], error) {
	if _, err := s.building(ctx, req.Msg.BuildingID); err != nil {
		return nil, toConnectError(err)
	}

	balances, totals, numbers, err := UnitBalances(ctx, s.store, req.Msg.BuildingID, s.now())
	if err != nil {
		return nil, toConnectError(err)
	}

	resp := &api.GetUnitBalancesResponse{
		Balances:       make([]*api.UnitBalance, 0, len(balances)),
		TotalCharged:   totals.TotalCharged,
		TotalPaid:      totals.TotalPaid,
		Outstanding:    totals.Outstanding,
		CollectionRate: totals.CollectionRate,
	}
	for _, b := range balances {
		resp.Balances = append(resp.Balances, &api.UnitBalance{
			UnitID:           b.UnitID,
			UnitNumber:       numbers[b.UnitID],
			TotalCharged:     b.TotalCharged,
			TotalPaid:        b.TotalPaid,
			Outstanding:      b.Outstanding,
			OutstandingLabel: persian.FormatPrice(b.Outstanding),
			OverdueCount:     b.OverdueCount,
		})
	}
	return connect.NewResponse(resp), nil
}

// UnitBalances loads a building's unit charges and summarizes them per unit.
// It also returns the unit numbers for display. Callers check tenancy.
func UnitBalances(ctx context.Context, store storage.Store, buildingID string, now time.Time) ([]calculator.UnitBalance, calculator.BuildingBalance, map[string]string, error) {
	unitCharges, err := store.ListUnitChargesByBuilding(ctx, buildingID)
	if err != nil {
		return nil, calculator.BuildingBalance{}, nil, err
	}

	input := make([]calculator.UnitChargeForBalance, 0, len(unitCharges))
	for _, uc := range unitCharges {
		input = append(input, calculator.UnitChargeForBalance{
			UnitID:     uc.UnitID,
			Amount:     uc.Amount,
			PaidAmount: uc.PaidAmount,
			Overdue:    uc.DeriveStatus(now) == models.UnitChargeOverdue,
		})
	}
	balances, totals := calculator.SummarizeUnitBalances(input)

	numbers, err := tenancy{store: store}.unitNumbers(ctx, buildingID)
	if err != nil {
		return nil, calculator.BuildingBalance{}, nil, err
	}
	return balances, totals, numbers, nil
}
