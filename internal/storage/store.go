// Package storage provides abstractions for persistent data storage.
package storage

import (
	"context"
	"errors"
	"time"

	"github.com/mmynk/saakhtemaan/internal/models"
)

var (
	// ErrNotFound is returned when the requested record does not exist.
	ErrNotFound = errors.New("not found")

	// ErrConflict is returned when a write is rejected because the record is
	// not in the expected state (e.g., editing an issued charge).
	ErrConflict = errors.New("conflicting state")
)

// UserStore persists manager accounts.
type UserStore interface {
	CreateUser(ctx context.Context, user *models.User) error
	// GetUserByEmail returns nil, nil when no user has the email.
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	GetUserByID(ctx context.Context, id string) (*models.User, error)
}

// BuildingStore persists buildings, units and residents.
type BuildingStore interface {
	CreateBuilding(ctx context.Context, building *models.Building) error
	GetBuilding(ctx context.Context, buildingID string) (*models.Building, error)
	ListBuildingsByManager(ctx context.Context, managerID string) ([]*models.Building, error)
	// DeleteBuilding removes the building and everything that hangs off it.
	DeleteBuilding(ctx context.Context, buildingID string) error

	CreateUnit(ctx context.Context, unit *models.Unit) error
	GetUnit(ctx context.Context, unitID string) (*models.Unit, error)
	UpdateUnit(ctx context.Context, unit *models.Unit) error
	// ListUnits returns the roster of a building ordered by floor, then number.
	ListUnits(ctx context.Context, buildingID string) ([]*models.Unit, error)
	DeleteUnit(ctx context.Context, unitID string) error

	CreateResident(ctx context.Context, resident *models.Resident) error
	GetResident(ctx context.Context, residentID string) (*models.Resident, error)
	ListResidents(ctx context.Context, unitID string) ([]*models.Resident, error)
	DeleteResident(ctx context.Context, residentID string) error
}

// ChargeStore persists monthly charges and their per-unit allocations.
type ChargeStore interface {
	CreateCharge(ctx context.Context, charge *models.Charge) error
	GetCharge(ctx context.Context, chargeID string) (*models.Charge, error)
	// ListCharges returns the building's charges, newest period first. Items are not loaded.
	ListCharges(ctx context.Context, buildingID string) ([]*models.Charge, error)
	// UpdateChargeItems replaces the items of a draft charge.
	// Returns ErrConflict if the charge is already issued.
	UpdateChargeItems(ctx context.Context, chargeID string, items []models.ChargeItem) error
	// DeleteCharge removes a draft charge. Returns ErrConflict if it is issued.
	DeleteCharge(ctx context.Context, chargeID string) error
	// IssueCharge marks a draft charge issued and persists its unit charges atomically.
	// Returns ErrConflict if the charge is already issued.
	IssueCharge(ctx context.Context, chargeID string, dueDate, issuedAt int64, unitCharges []*models.UnitCharge) error

	GetUnitCharge(ctx context.Context, unitChargeID string) (*models.UnitCharge, error)
	ListUnitChargesByCharge(ctx context.Context, chargeID string) ([]*models.UnitCharge, error)
	ListUnitChargesByBuilding(ctx context.Context, buildingID string) ([]*models.UnitCharge, error)
	// MarkOverdue flags every unpaid unit charge whose due date is before now.
	// Returns the number of unit charges changed.
	MarkOverdue(ctx context.Context, now time.Time) (int64, error)
}

// LedgerStore persists payments, expenses and the fund ledger.
type LedgerStore interface {
	// RecordPayment applies a payment to its unit charge, stores it and credits
	// the fund in one transaction. The unit charge status is derived as of at.
	// Returns ErrConflict if the amount exceeds what is outstanding.
	RecordPayment(ctx context.Context, payment *models.Payment, at time.Time) (*models.UnitCharge, error)
	ListPaymentsByBuilding(ctx context.Context, buildingID string) ([]*models.Payment, error)

	// CreateExpense stores the expense and debits the fund in one transaction.
	CreateExpense(ctx context.Context, expense *models.Expense) error
	GetExpense(ctx context.Context, expenseID string) (*models.Expense, error)
	ListExpenses(ctx context.Context, buildingID string) ([]*models.Expense, error)
	// DeleteExpense removes the expense together with its ledger entry.
	DeleteExpense(ctx context.Context, expenseID string) error

	CreateFundTransaction(ctx context.Context, txn *models.FundTransaction) error
	ListFundTransactions(ctx context.Context, buildingID string) ([]*models.FundTransaction, error)
	GetFundSummary(ctx context.Context, buildingID string) (*models.FundSummary, error)
}

// Store defines the interface for all storage operations.
// This abstraction allows swapping storage backends (SQLite, PostgreSQL, etc.)
// without changing the service layer.
type Store interface {
	UserStore
	BuildingStore
	ChargeStore
	LedgerStore

	// Close releases any resources held by the store.
	Close() error
}
