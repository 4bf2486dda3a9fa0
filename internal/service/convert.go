package service

import (
	"time"

	"github.com/mmynk/saakhtemaan/internal/calculator"
	"github.com/mmynk/saakhtemaan/internal/models"
	"github.com/mmynk/saakhtemaan/internal/persian"
	"github.com/mmynk/saakhtemaan/pkg/api"
)

// dateLabel renders a Unix timestamp as a Jalali date, or "" for zero.
func dateLabel(ts int64) string {
	if ts == 0 {
		return ""
	}
	return persian.FormatJalaliDate(time.Unix(ts, 0))
}

func toAPIUser(u *models.User) *api.User {
	return &api.User{
		ID:          u.ID,
		Email:       u.Email,
		DisplayName: u.DisplayName,
		CreatedAt:   u.CreatedAt,
	}
}

func toAPIBuilding(b *models.Building, unitCount int) *api.Building {
	return &api.Building{
		ID:        b.ID,
		Name:      b.Name,
		Address:   b.Address,
		UnitCount: unitCount,
		CreatedAt: b.CreatedAt,
	}
}

func toAPIUnit(u *models.Unit) *api.Unit {
	return &api.Unit{
		ID:             u.ID,
		BuildingID:     u.BuildingID,
		Number:         u.Number,
		Floor:          u.Floor,
		Area:           u.Area,
		Coefficient:    u.Coefficient,
		ResidentsCount: u.ResidentsCount,
		OwnerName:      u.OwnerName,
	}
}

// applyUnitInput copies the editable fields onto a unit.
func applyUnitInput(u *models.Unit, in api.UnitInput) {
	u.Number = in.Number
	u.Floor = in.Floor
	u.Area = in.Area
	u.Coefficient = in.Coefficient
	u.ResidentsCount = in.ResidentsCount
	u.OwnerName = in.OwnerName
}

func toAPIResident(r *models.Resident) *api.Resident {
	return &api.Resident{
		ID:       r.ID,
		UnitID:   r.UnitID,
		FullName: r.FullName,
		Phone:    r.Phone,
		Role:     string(r.Role),
	}
}

func toModelItems(items []*api.ChargeItem) []models.ChargeItem {
	out := make([]models.ChargeItem, 0, len(items))
	for _, item := range items {
		out = append(out, models.ChargeItem{
			ID:       item.ID,
			Title:    item.Title,
			Amount:   item.Amount,
			Category: item.Category,
			Method:   models.DivisionMethod(item.Method),
		})
	}
	return out
}

func toAPICharge(c *models.Charge) *api.Charge {
	items := make([]*api.ChargeItem, 0, len(c.Items))
	for _, item := range c.Items {
		items = append(items, &api.ChargeItem{
			ID:       item.ID,
			Title:    item.Title,
			Amount:   item.Amount,
			Category: item.Category,
			Method:   string(item.Method),
		})
	}
	total := c.Total()
	return &api.Charge{
		ID:          c.ID,
		BuildingID:  c.BuildingID,
		Title:       c.Title,
		PeriodYear:  c.PeriodYear,
		PeriodMonth: c.PeriodMonth,
		PeriodLabel: persian.JalaliPeriod(c.PeriodYear, c.PeriodMonth),
		DueDate:     c.DueDate,
		Status:      string(c.Status),
		Items:       items,
		Total:       total,
		TotalLabel:  persian.FormatPrice(total),
		CreatedAt:   c.CreatedAt,
		IssuedAt:    c.IssuedAt,
	}
}

// calculatorInput converts stored items and the roster for Allocate.
func calculatorInput(items []models.ChargeItem, units []*models.Unit) ([]calculator.Item, []calculator.Unit) {
	calcItems := make([]calculator.Item, len(items))
	for i, item := range items {
		calcItems[i] = calculator.Item{
			ID:     item.ID,
			Title:  item.Title,
			Amount: item.Amount,
			Method: calculator.Method(item.Method),
		}
	}
	calcUnits := make([]calculator.Unit, len(units))
	for i, u := range units {
		calcUnits[i] = calculator.Unit{
			ID:             u.ID,
			Area:           u.Area,
			Coefficient:    u.Coefficient,
			ResidentsCount: u.ResidentsCount,
		}
	}
	return calcItems, calcUnits
}

func toAPIAllocations(alloc *calculator.Allocation, numbers map[string]string) []*api.UnitAllocation {
	out := make([]*api.UnitAllocation, 0, len(alloc.Units))
	for _, ua := range alloc.Units {
		shares := make([]*api.ItemShare, 0, len(ua.Shares))
		for _, s := range ua.Shares {
			shares = append(shares, &api.ItemShare{ItemID: s.ItemID, Amount: s.Amount})
		}
		out = append(out, &api.UnitAllocation{
			UnitID:     ua.UnitID,
			UnitNumber: numbers[ua.UnitID],
			Shares:     shares,
			Raw:        ua.Raw,
			Total:      ua.Total,
			TotalLabel: persian.FormatPrice(ua.Total),
			ShortLabel: persian.FormatPriceShort(ua.Total),
		})
	}
	return out
}

func toAPIUnitCharge(uc *models.UnitCharge, numbers map[string]string) *api.UnitCharge {
	return &api.UnitCharge{
		ID:           uc.ID,
		ChargeID:     uc.ChargeID,
		UnitID:       uc.UnitID,
		UnitNumber:   numbers[uc.UnitID],
		Amount:       uc.Amount,
		PaidAmount:   uc.PaidAmount,
		Outstanding:  uc.Outstanding(),
		Status:       string(uc.Status),
		DueDate:      uc.DueDate,
		DueDateLabel: dateLabel(uc.DueDate),
	}
}

func toAPIPayment(p *models.Payment) *api.Payment {
	return &api.Payment{
		ID:           p.ID,
		UnitChargeID: p.UnitChargeID,
		UnitID:       p.UnitID,
		Amount:       p.Amount,
		AmountLabel:  persian.FormatPrice(p.Amount),
		Method:       string(p.Method),
		Reference:    p.Reference,
		PaidAt:       p.PaidAt,
		PaidAtLabel:  dateLabel(p.PaidAt),
	}
}

func toAPIExpense(e *models.Expense) *api.Expense {
	return &api.Expense{
		ID:           e.ID,
		BuildingID:   e.BuildingID,
		Title:        e.Title,
		Category:     e.Category,
		Amount:       e.Amount,
		AmountLabel:  persian.FormatPrice(e.Amount),
		SpentAt:      e.SpentAt,
		SpentAtLabel: dateLabel(e.SpentAt),
		Note:         e.Note,
	}
}

func toAPIFundTransaction(t *models.FundTransaction, now time.Time) *api.FundTransaction {
	return &api.FundTransaction{
		ID:           t.ID,
		Kind:         string(t.Kind),
		Amount:       t.Amount,
		AmountLabel:  persian.FormatPrice(t.Amount),
		Description:  t.Description,
		RefType:      t.RefType,
		RefID:        t.RefID,
		CreatedAt:    t.CreatedAt,
		RelativeTime: persian.FormatRelativeTime(time.Unix(t.CreatedAt, 0), now),
	}
}
