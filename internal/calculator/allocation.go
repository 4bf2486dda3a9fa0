package calculator

import (
	"errors"
	"fmt"
	"math"
)

// Method is the rule used to divide one item across units.
type Method string

const (
	MethodEqual       Method = "equal"
	MethodArea        Method = "area"
	MethodCoefficient Method = "coefficient"
	MethodResidents   Method = "residents"
	MethodCustom      Method = "custom"
)

// roundingTolerance absorbs float noise before the ceiling so that a share
// of 250000.00000000003 is charged as 250000, not 250001.
const roundingTolerance = 1e-6

// ErrNoUnits is returned when the unit roster is empty.
var ErrNoUnits = errors.New("at least one unit is required")

// ZeroBasisError reports a division method whose weight total is zero.
type ZeroBasisError struct {
	Method Method
	Basis  string  // the summed quantity: "totalArea", "totalCoefficient" or "totalResidents"
	Total  float64 // value of Basis, zero or negative
}

func (e *ZeroBasisError) Error() string {
	return fmt.Sprintf("cannot divide by %s: %s of all units is %g", e.Method, e.Basis, e.Total)
}

// Item represents a single charge line item.
type Item struct {
	ID     string
	Title  string
	Amount int64
	Method Method
}

// Unit carries the weights an item can be divided by.
type Unit struct {
	ID             string
	Area           float64
	Coefficient    float64
	ResidentsCount int
}

// ItemShare is one unit's unrounded share of one item.
type ItemShare struct {
	ItemID string
	Amount float64
}

// UnitAllocation is the calculated charge for one unit.
type UnitAllocation struct {
	UnitID string
	Shares []ItemShare // one per allocated item, in item order
	Raw    float64     // sum of Shares
	Total  int64       // Raw rounded up to a whole Toman
}

// Allocation is the result of dividing a set of items across a roster.
type Allocation struct {
	Units      []UnitAllocation // same order as the input units
	ItemsTotal int64            // sum of allocated item amounts
	Total      int64            // sum of unit totals
}

// OverCollection is how much the rounded unit totals exceed the item amounts.
// Each unit is rounded up independently, so this is between 0 and len(Units)-1
// per allocated item.
func (a *Allocation) OverCollection() int64 {
	return a.Total - a.ItemsTotal
}

// Allocate divides every item across the units and sums the shares per unit.
//
// Algorithm, per item with a positive amount:
//   - equal (and custom or anything unrecognised): amount / unitCount
//   - area: amount × unit.area / totalArea
//   - coefficient: amount × unit.coefficient / totalCoefficient
//   - residents: amount × unit.residents / totalResidents
//
// Each unit total is the ceiling of its summed raw shares. Items with a zero
// or negative amount are skipped and never trigger the zero-basis check.
func Allocate(items []Item, units []Unit) (*Allocation, error) {
	if len(units) == 0 {
		return nil, ErrNoUnits
	}

	var totalArea, totalCoefficient float64
	var totalResidents int
	for _, u := range units {
		totalArea += u.Area
		totalCoefficient += u.Coefficient
		totalResidents += u.ResidentsCount
	}

	result := &Allocation{Units: make([]UnitAllocation, len(units))}
	for i, u := range units {
		result.Units[i] = UnitAllocation{UnitID: u.ID}
	}

	for _, item := range items {
		if item.Amount <= 0 {
			continue
		}
		amount := float64(item.Amount)

		var weight func(Unit) float64
		var basis float64
		var basisName string
		switch item.Method {
		case MethodArea:
			weight, basis, basisName = func(u Unit) float64 { return u.Area }, totalArea, "totalArea"
		case MethodCoefficient:
			weight, basis, basisName = func(u Unit) float64 { return u.Coefficient }, totalCoefficient, "totalCoefficient"
		case MethodResidents:
			weight, basis, basisName = func(u Unit) float64 { return float64(u.ResidentsCount) }, float64(totalResidents), "totalResidents"
		default:
			weight, basis, basisName = func(Unit) float64 { return 1 }, float64(len(units)), "unitCount"
		}
		if basis <= 0 {
			return nil, &ZeroBasisError{Method: item.Method, Basis: basisName, Total: basis}
		}

		for i, u := range units {
			share := amount * weight(u) / basis
			alloc := &result.Units[i]
			alloc.Shares = append(alloc.Shares, ItemShare{ItemID: item.ID, Amount: share})
			alloc.Raw += share
		}
		result.ItemsTotal += item.Amount
	}

	for i := range result.Units {
		alloc := &result.Units[i]
		alloc.Total = int64(math.Ceil(alloc.Raw - roundingTolerance))
		if alloc.Total < 0 {
			alloc.Total = 0
		}
		result.Total += alloc.Total
	}

	return result, nil
}
