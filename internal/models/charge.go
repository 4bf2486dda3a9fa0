package models

import "time"

// DivisionMethod is the rule for splitting a shared cost across units.
type DivisionMethod string

const (
	DivisionEqual       DivisionMethod = "equal"
	DivisionArea        DivisionMethod = "area"
	DivisionCoefficient DivisionMethod = "coefficient"
	DivisionResidents   DivisionMethod = "residents"
	DivisionCustom      DivisionMethod = "custom"
)

// ChargeStatus is the lifecycle state of a monthly charge.
type ChargeStatus string

const (
	// ChargeStatusDraft charges can still be edited and previewed.
	ChargeStatusDraft ChargeStatus = "draft"
	// ChargeStatusIssued charges have unit charges attached; their items are frozen.
	ChargeStatusIssued ChargeStatus = "issued"
)

// Charge is a monthly charge drafted by a manager for one building.
type Charge struct {
	ID         string
	BuildingID string
	Title      string

	// PeriodYear and PeriodMonth are the Jalali billing period (e.g., 1405/7).
	PeriodYear  int
	PeriodMonth int

	// DueDate is the Unix timestamp after which unpaid unit charges become overdue.
	DueDate int64

	Status ChargeStatus
	Items  []ChargeItem

	CreatedAt int64
	IssuedAt  int64
}

// Total returns the sum of the charge's item amounts.
func (c *Charge) Total() int64 {
	var total int64
	for _, item := range c.Items {
		total += item.Amount
	}
	return total
}

// ChargeItem is one line of a monthly charge (e.g., elevator maintenance).
type ChargeItem struct {
	ID       string
	Title    string
	Amount   int64
	Category string
	Method   DivisionMethod
}

// UnitChargeStatus tracks collection of one unit's share of a charge.
type UnitChargeStatus string

const (
	UnitChargePending UnitChargeStatus = "pending"
	UnitChargePartial UnitChargeStatus = "partial"
	UnitChargePaid    UnitChargeStatus = "paid"
	UnitChargeOverdue UnitChargeStatus = "overdue"
)

// UnitCharge is the amount one unit owes for one issued charge.
type UnitCharge struct {
	ID         string
	ChargeID   string
	UnitID     string
	Amount     int64
	PaidAmount int64
	Status     UnitChargeStatus
	DueDate    int64
}

// Outstanding returns what is still owed, never negative.
func (uc *UnitCharge) Outstanding() int64 {
	if uc.PaidAmount >= uc.Amount {
		return 0
	}
	return uc.Amount - uc.PaidAmount
}

// DeriveStatus computes the status from the paid amount and the due date.
func (uc *UnitCharge) DeriveStatus(now time.Time) UnitChargeStatus {
	switch {
	case uc.PaidAmount >= uc.Amount:
		return UnitChargePaid
	case uc.DueDate > 0 && now.Unix() > uc.DueDate:
		return UnitChargeOverdue
	case uc.PaidAmount > 0:
		return UnitChargePartial
	default:
		return UnitChargePending
	}
}
