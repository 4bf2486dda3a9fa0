// Package models defines the core domain models for saakhtemaan.
//
// # Models
//
//   - User: a building manager account
//   - Building: a residential building owned by one manager
//   - Unit, Resident: the apartments of a building and the people living in them
//   - Charge, ChargeItem: a monthly charge drafted by the manager
//   - UnitCharge: one unit's share of an issued charge
//   - Payment: money received against a unit charge
//   - Expense, FundTransaction: the building fund ledger
//
// All monetary amounts are whole Toman stored as int64.
//
// # Design Principles
//
// 1. **Tenancy by building**: every record hangs off a building, and a building has exactly one manager
// 2. **Avoid circular references**: use ID strings instead of pointers for relationships
// 3. **Timestamps**: Unix seconds, converted to Jalali only for display
package models
