// Package service implements the Connect services of the management dashboard.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"connectrpc.com/connect"

	"github.com/mmynk/saakhtemaan/internal/auth"
	"github.com/mmynk/saakhtemaan/internal/calculator"
	"github.com/mmynk/saakhtemaan/internal/events"
	"github.com/mmynk/saakhtemaan/internal/middleware"
	"github.com/mmynk/saakhtemaan/internal/models"
	"github.com/mmynk/saakhtemaan/internal/storage"
)

// ErrForbidden is returned when a manager touches another manager's building.
var ErrForbidden = errors.New("building belongs to another manager")

// toConnectError maps domain and storage errors onto Connect codes.
func toConnectError(err error) error {
	var connectErr *connect.Error
	if errors.As(err, &connectErr) {
		return err
	}

	var zeroBasis *calculator.ZeroBasisError
	switch {
	case errors.Is(err, storage.ErrNotFound):
		return connect.NewError(connect.CodeNotFound, err)
	case errors.Is(err, ErrForbidden):
		return connect.NewError(connect.CodePermissionDenied, err)
	case errors.Is(err, storage.ErrConflict):
		return connect.NewError(connect.CodeFailedPrecondition, err)
	case errors.As(err, &zeroBasis):
		ce := connect.NewError(connect.CodeFailedPrecondition, err)
		ce.Meta().Set("X-Division-Method", string(zeroBasis.Method))
		ce.Meta().Set("X-Zero-Basis", zeroBasis.Basis)
		return ce
	case errors.Is(err, calculator.ErrNoUnits):
		return connect.NewError(connect.CodeFailedPrecondition, err)
	default:
		return connect.NewError(connect.CodeInternal, err)
	}
}

// currentUser returns the authenticated manager's ID.
func currentUser(ctx context.Context) (string, error) {
	userID := middleware.GetUserID(ctx)
	if userID == "" {
		return "", connect.NewError(connect.CodeUnauthenticated, auth.ErrMissingToken)
	}
	return userID, nil
}

// tenancy resolves records to their building and checks that the building
// belongs to the caller. Every building-scoped service embeds it.
type tenancy struct {
	store storage.Store
}

func (t tenancy) building(ctx context.Context, buildingID string) (*models.Building, error) {
	userID, err := currentUser(ctx)
	if err != nil {
		return nil, err
	}
	building, err := t.store.GetBuilding(ctx, buildingID)
	if err != nil {
		return nil, err
	}
	if building.ManagerID != userID {
		return nil, fmt.Errorf("building %s: %w", buildingID, ErrForbidden)
	}
	return building, nil
}

// OwnedBuilding returns the building if the caller manages it. It fails with
// storage.ErrNotFound or ErrForbidden.
func OwnedBuilding(ctx context.Context, store storage.Store, buildingID string) (*models.Building, error) {
	return tenancy{store: store}.building(ctx, buildingID)
}

func (t tenancy) unit(ctx context.Context, unitID string) (*models.Unit, error) {
	unit, err := t.store.GetUnit(ctx, unitID)
	if err != nil {
		return nil, err
	}
	if _, err := t.building(ctx, unit.BuildingID); err != nil {
		return nil, err
	}
	return unit, nil
}

func (t tenancy) charge(ctx context.Context, chargeID string) (*models.Charge, error) {
	charge, err := t.store.GetCharge(ctx, chargeID)
	if err != nil {
		return nil, err
	}
	if _, err := t.building(ctx, charge.BuildingID); err != nil {
		return nil, err
	}
	return charge, nil
}

// unitNumbers maps unit IDs to their door numbers for display.
func (t tenancy) unitNumbers(ctx context.Context, buildingID string) (map[string]string, error) {
	units, err := t.store.ListUnits(ctx, buildingID)
	if err != nil {
		return nil, err
	}
	numbers := make(map[string]string, len(units))
	for _, u := range units {
		numbers[u.ID] = u.Number
	}
	return numbers, nil
}

// publish sends an event; failures are logged and never fail the call.
func publish(ctx context.Context, publisher events.Publisher, msg events.Message) {
	if publisher == nil {
		return
	}
	if err := publisher.Publish(ctx, msg); err != nil {
		slog.Warn("Failed to publish event", "routing_key", msg.RoutingKey(), "error", err)
	}
}
