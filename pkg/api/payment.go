package api

type Payment struct {
	ID           string `json:"id"`
	UnitChargeID string `json:"unit_charge_id"`
	UnitID       string `json:"unit_id"`
	Amount       int64  `json:"amount"`
	AmountLabel  string `json:"amount_label"`
	Method       string `json:"method"`
	Reference    string `json:"reference,omitempty"`
	PaidAt       int64  `json:"paid_at"`
	PaidAtLabel  string `json:"paid_at_label"`
}

type UnitBalance struct {
	UnitID           string `json:"unit_id"`
	UnitNumber       string `json:"unit_number"`
	TotalCharged     int64  `json:"total_charged"`
	TotalPaid        int64  `json:"total_paid"`
	Outstanding      int64  `json:"outstanding"`
	OutstandingLabel string `json:"outstanding_label"`
	OverdueCount     int    `json:"overdue_count"`
}

type RecordPaymentRequest struct {
	UnitChargeID string `json:"unit_charge_id" validate:"required"`
	Amount       int64  `json:"amount" validate:"gt=0,lte=10000000000000"`
	Method       string `json:"method" validate:"required,oneof=cash card transfer online"`
	Reference    string `json:"reference" validate:"max=64"`
	// PaidAt is a Unix timestamp; zero means now.
	PaidAt int64 `json:"paid_at" validate:"gte=0"`
}

type RecordPaymentResponse struct {
	Payment    *Payment    `json:"payment"`
	UnitCharge *UnitCharge `json:"unit_charge"`
}

type ListPaymentsRequest struct {
	BuildingID string `json:"building_id" validate:"required"`
}

type ListPaymentsResponse struct {
	Payments []*Payment `json:"payments"`
}

type GetUnitBalancesRequest struct {
	BuildingID string `json:"building_id" validate:"required"`
}

type GetUnitBalancesResponse struct {
	Balances       []*UnitBalance `json:"balances"`
	TotalCharged   int64          `json:"total_charged"`
	TotalPaid      int64          `json:"total_paid"`
	Outstanding    int64          `json:"outstanding"`
	CollectionRate float64        `json:"collection_rate"`
}
