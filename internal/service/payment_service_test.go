package service

import (
	"context"
	"testing"

	"connectrpc.com/connect"

	"github.com/mmynk/saakhtemaan/internal/events"
	"github.com/mmynk/saakhtemaan/pkg/api"
)

func TestRecordPaymentStatusProgression(t *testing.T) {
	env := setupTestServer(t)
	ctx := context.Background()
	token := env.registerManager(t, "manager@example.com")
	building, _ := env.seedBuilding(t, token, 50, 100, 50)

	issued := env.issueCharge(t, token, building.ID, 1_000_000, "area")
	uc := issued.UnitCharges[1] // 500,000

	steps := []struct {
		amount          int64
		wantStatus      string
		wantOutstanding int64
	}{
		{200_000, "partial", 300_000},
		{300_000, "paid", 0},
	}
	for _, step := range steps {
		resp, err := env.payment.RecordPayment(ctx, authed(token, &api.RecordPaymentRequest{
			UnitChargeID: uc.ID,
			Amount:       step.amount,
			Method:       "transfer",
			Reference:    "TRK-1",
		}))
		if err != nil {
			t.Fatalf("RecordPayment(%d) failed: %v", step.amount, err)
		}
		if resp.Msg.UnitCharge.Status != step.wantStatus {
			t.Errorf("after %d: expected %s, got %s", step.amount, step.wantStatus, resp.Msg.UnitCharge.Status)
		}
		if resp.Msg.UnitCharge.Outstanding != step.wantOutstanding {
			t.Errorf("after %d: expected outstanding %d, got %d", step.amount, step.wantOutstanding, resp.Msg.UnitCharge.Outstanding)
		}
		if resp.Msg.Payment.PaidAtLabel == "" {
			t.Error("expected paid-at label")
		}
	}

	t.Run("overpayment rejected", func(t *testing.T) {
		_, err := env.payment.RecordPayment(ctx, authed(token, &api.RecordPaymentRequest{
			UnitChargeID: uc.ID, Amount: 1, Method: "cash",
		}))
		assertCode(t, err, connect.CodeFailedPrecondition)
	})

	t.Run("zero amount rejected", func(t *testing.T) {
		_, err := env.payment.RecordPayment(ctx, authed(token, &api.RecordPaymentRequest{
			UnitChargeID: issued.UnitCharges[0].ID, Amount: 0, Method: "cash",
		}))
		assertCode(t, err, connect.CodeInvalidArgument)

		_, err = env.payment.RecordPayment(ctx, authed(token, &api.RecordPaymentRequest{
			UnitChargeID: issued.UnitCharges[0].ID, Amount: 10_000_000_000_001, Method: "cash",
		}))
		assertCode(t, err, connect.CodeInvalidArgument)
	})

	t.Run("fund credited", func(t *testing.T) {
		summary, err := env.fund.GetFundSummary(ctx, authed(token, &api.GetFundSummaryRequest{BuildingID: building.ID}))
		if err != nil {
			t.Fatalf("GetFundSummary failed: %v", err)
		}
		if summary.Msg.TotalIncome != 500_000 || summary.Msg.Balance != 500_000 {
			t.Errorf("unexpected summary %+v", summary.Msg)
		}
	})

	t.Run("payments listed", func(t *testing.T) {
		list, err := env.payment.ListPayments(ctx, authed(token, &api.ListPaymentsRequest{BuildingID: building.ID}))
		if err != nil {
			t.Fatalf("ListPayments failed: %v", err)
		}
		if len(list.Msg.Payments) != 2 {
			t.Errorf("expected 2 payments, got %d", len(list.Msg.Payments))
		}
	})

	t.Run("events", func(t *testing.T) {
		var payments int
		for _, msg := range env.publisher.messages() {
			if ev, ok := msg.(events.PaymentRecorded); ok {
				payments++
				if ev.UnitChargeID != uc.ID {
					t.Errorf("unexpected unit charge in event: %s", ev.UnitChargeID)
				}
			}
		}
		if payments != 2 {
			t.Errorf("expected 2 payment events, got %d", payments)
		}
	})
}

func TestRecordPaymentOtherManager(t *testing.T) {
	env := setupTestServer(t)
	ctx := context.Background()
	owner := env.registerManager(t, "owner@example.com")
	other := env.registerManager(t, "other@example.com")
	building, _ := env.seedBuilding(t, owner, 50)
	issued := env.issueCharge(t, owner, building.ID, 100_000, "equal")

	_, err := env.payment.RecordPayment(ctx, authed(other, &api.RecordPaymentRequest{
		UnitChargeID: issued.UnitCharges[0].ID, Amount: 100, Method: "cash",
	}))
	assertCode(t, err, connect.CodePermissionDenied)

	_, err = env.payment.RecordPayment(ctx, authed(owner, &api.RecordPaymentRequest{
		UnitChargeID: "missing", Amount: 100, Method: "cash",
	}))
	assertCode(t, err, connect.CodeNotFound)
}

func TestGetUnitBalances(t *testing.T) {
	env := setupTestServer(t)
	ctx := context.Background()
	token := env.registerManager(t, "manager@example.com")
	building, units := env.seedBuilding(t, token, 50, 100, 50)

	first := env.issueCharge(t, token, building.ID, 1_000_000, "area")
	env.issueCharge(t, token, building.ID, 300_000, "equal")

	// unit 1 pays its first charge in full
	_, err := env.payment.RecordPayment(ctx, authed(token, &api.RecordPaymentRequest{
		UnitChargeID: first.UnitCharges[0].ID, Amount: 250_000, Method: "card",
	}))
	if err != nil {
		t.Fatalf("RecordPayment failed: %v", err)
	}

	resp, err := env.payment.GetUnitBalances(ctx, authed(token, &api.GetUnitBalancesRequest{BuildingID: building.ID}))
	if err != nil {
		t.Fatalf("GetUnitBalances failed: %v", err)
	}

	if len(resp.Msg.Balances) != 3 {
		t.Fatalf("expected 3 balances, got %d", len(resp.Msg.Balances))
	}
	top := resp.Msg.Balances[0]
	if top.UnitID != units[1].ID || top.Outstanding != 600_000 {
		t.Errorf("expected unit 2 to owe the most (600,000), got %+v", top)
	}
	if top.UnitNumber != units[1].Number {
		t.Errorf("expected unit number %s, got %s", units[1].Number, top.UnitNumber)
	}
	last := resp.Msg.Balances[2]
	if last.UnitID != units[0].ID || last.Outstanding != 100_000 {
		t.Errorf("expected unit 1 to owe the least (100,000), got %+v", last)
	}

	if resp.Msg.TotalCharged != 1_300_000 || resp.Msg.TotalPaid != 250_000 || resp.Msg.Outstanding != 1_050_000 {
		t.Errorf("unexpected totals %+v", resp.Msg)
	}
	wantRate := 250_000.0 / 1_300_000.0
	if diff := resp.Msg.CollectionRate - wantRate; diff > 1e-9 || diff < -1e-9 {
		t.Errorf("expected collection rate %f, got %f", wantRate, resp.Msg.CollectionRate)
	}
}
