package models

// PaymentMethod is how a resident paid.
type PaymentMethod string

const (
	PaymentCash     PaymentMethod = "cash"
	PaymentCard     PaymentMethod = "card"
	PaymentTransfer PaymentMethod = "transfer"
	PaymentOnline   PaymentMethod = "online"
)

// Payment represents money received from a unit against a unit charge.
type Payment struct {
	// ID is the unique identifier for the payment (UUID format).
	ID string

	// UnitChargeID is the unit charge this payment settles (fully or partially).
	UnitChargeID string

	// UnitID and BuildingID are denormalized for listing and reports.
	UnitID     string
	BuildingID string

	// Amount is the paid amount in Toman.
	Amount int64

	Method PaymentMethod

	// Reference is an optional bank tracking code.
	Reference string

	// PaidAt is the Unix timestamp when the money was received.
	PaidAt int64

	// RecordedBy is the manager who entered this payment.
	RecordedBy string
}
