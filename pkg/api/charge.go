package api

// ChargeItem is one line of a charge. Amounts are never negative.
type ChargeItem struct {
	ID       string `json:"id,omitempty"`
	Title    string `json:"title" validate:"required,max=200"`
	Amount   int64  `json:"amount" validate:"gte=0,lte=10000000000000"`
	Category string `json:"category" validate:"max=60"`
	Method   string `json:"method" validate:"required,oneof=equal area coefficient residents custom"`
}

type Charge struct {
	ID          string        `json:"id"`
	BuildingID  string        `json:"building_id"`
	Title       string        `json:"title"`
	PeriodYear  int           `json:"period_year"`
	PeriodMonth int           `json:"period_month"`
	PeriodLabel string        `json:"period_label"`
	DueDate     int64         `json:"due_date"`
	Status      string        `json:"status"`
	Items       []*ChargeItem `json:"items,omitempty"`
	Total       int64         `json:"total"`
	TotalLabel  string        `json:"total_label"`
	CreatedAt   int64         `json:"created_at"`
	IssuedAt    int64         `json:"issued_at"`
}

// ItemShare is a unit's unrounded share of one item.
type ItemShare struct {
	ItemID string  `json:"item_id"`
	Amount float64 `json:"amount"`
}

type UnitAllocation struct {
	UnitID     string       `json:"unit_id"`
	UnitNumber string       `json:"unit_number"`
	Shares     []*ItemShare `json:"shares"`
	Raw        float64      `json:"raw"`
	Total      int64        `json:"total"`
	TotalLabel string       `json:"total_label"`
	ShortLabel string       `json:"short_label"`
}

type UnitCharge struct {
	ID           string `json:"id"`
	ChargeID     string `json:"charge_id"`
	UnitID       string `json:"unit_id"`
	UnitNumber   string `json:"unit_number"`
	Amount       int64  `json:"amount"`
	PaidAmount   int64  `json:"paid_amount"`
	Outstanding  int64  `json:"outstanding"`
	Status       string `json:"status"`
	DueDate      int64  `json:"due_date"`
	DueDateLabel string `json:"due_date_label"`
}

type PreviewAllocationRequest struct {
	BuildingID string        `json:"building_id" validate:"required"`
	Items      []*ChargeItem `json:"items" validate:"max=100,dive,required"`
}

type PreviewAllocationResponse struct {
	Allocations    []*UnitAllocation `json:"allocations"`
	ItemsTotal     int64             `json:"items_total"`
	Total          int64             `json:"total"`
	OverCollection int64             `json:"over_collection"`
}

type CreateChargeRequest struct {
	BuildingID string `json:"building_id" validate:"required"`
	Title      string `json:"title" validate:"required,max=200"`
	// A zero period year or month defaults to the current Jalali month.
	PeriodYear  int           `json:"period_year" validate:"omitempty,gte=1300,lte=1500"`
	PeriodMonth int           `json:"period_month" validate:"omitempty,gte=1,lte=12"`
	Items       []*ChargeItem `json:"items" validate:"max=100,dive,required"`
}

type CreateChargeResponse struct {
	Charge *Charge `json:"charge"`
}

type UpdateChargeItemsRequest struct {
	ChargeID string        `json:"charge_id" validate:"required"`
	Items    []*ChargeItem `json:"items" validate:"max=100,dive,required"`
}

type UpdateChargeItemsResponse struct {
	Charge *Charge `json:"charge"`
}

type GetChargeRequest struct {
	ChargeID string `json:"charge_id" validate:"required"`
}

type GetChargeResponse struct {
	Charge *Charge `json:"charge"`
}

type ListChargesRequest struct {
	BuildingID string `json:"building_id" validate:"required"`
}

type ListChargesResponse struct {
	Charges []*Charge `json:"charges"`
}

type IssueChargeRequest struct {
	ChargeID string `json:"charge_id" validate:"required"`
	// DueDate is a Unix timestamp; zero means ten days after issuing, or after
	// the period starts for a charge drafted ahead of time.
	DueDate int64 `json:"due_date" validate:"gte=0"`
}

type IssueChargeResponse struct {
	Charge         *Charge       `json:"charge"`
	UnitCharges    []*UnitCharge `json:"unit_charges"`
	OverCollection int64         `json:"over_collection"`
}

type DeleteChargeRequest struct {
	ChargeID string `json:"charge_id" validate:"required"`
}

type DeleteChargeResponse struct{}

type ListUnitChargesRequest struct {
	ChargeID string `json:"charge_id" validate:"required"`
}

type ListUnitChargesResponse struct {
	UnitCharges []*UnitCharge `json:"unit_charges"`
}
