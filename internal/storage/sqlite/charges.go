package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/mmynk/saakhtemaan/internal/models"
	"github.com/mmynk/saakhtemaan/internal/storage"
)

const chargeColumns = "id, building_id, title, period_year, period_month, due_date, status, created_at, issued_at"

func scanCharge(row scanner) (*models.Charge, error) {
	c := &models.Charge{}
	var status string
	err := row.Scan(&c.ID, &c.BuildingID, &c.Title, &c.PeriodYear, &c.PeriodMonth,
		&c.DueDate, &status, &c.CreatedAt, &c.IssuedAt)
	if err != nil {
		return nil, err
	}
	c.Status = models.ChargeStatus(status)
	return c, nil
}

// CreateCharge persists a new draft charge with its items.
func (s *SQLiteStore) CreateCharge(ctx context.Context, charge *models.Charge) error {
	if charge.ID == "" {
		charge.ID = uuid.New().String()
	}
	if charge.CreatedAt == 0 {
		charge.CreatedAt = now()
	}
	if charge.Status == "" {
		charge.Status = models.ChargeStatusDraft
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		"INSERT INTO charges ("+chargeColumns+") VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)",
		charge.ID, charge.BuildingID, charge.Title, charge.PeriodYear, charge.PeriodMonth,
		charge.DueDate, string(charge.Status), charge.CreatedAt, charge.IssuedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert charge: %w", err)
	}

	if err := insertChargeItems(ctx, tx, charge.ID, charge.Items); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// insertChargeItems stores items in order, assigning IDs to new ones.
func insertChargeItems(ctx context.Context, tx *sql.Tx, chargeID string, items []models.ChargeItem) error {
	for i := range items {
		item := &items[i]
		if item.ID == "" {
			item.ID = uuid.New().String()
		}
		_, err := tx.ExecContext(ctx,
			"INSERT INTO charge_items (id, charge_id, position, title, amount, category, method) VALUES (?, ?, ?, ?, ?, ?, ?)",
			item.ID, chargeID, i, item.Title, item.Amount, item.Category, string(item.Method),
		)
		if err != nil {
			return fmt.Errorf("failed to insert charge item: %w", err)
		}
	}
	return nil
}

// GetCharge retrieves a charge by ID, including its items in entry order.
func (s *SQLiteStore) GetCharge(ctx context.Context, chargeID string) (*models.Charge, error) {
	charge, err := scanCharge(s.db.QueryRowContext(ctx,
		"SELECT "+chargeColumns+" FROM charges WHERE id = ?", chargeID))
	if err != nil {
		return nil, notFound(err, "charge", chargeID)
	}

	rows, err := s.db.QueryContext(ctx,
		"SELECT id, title, amount, category, method FROM charge_items WHERE charge_id = ? ORDER BY position",
		chargeID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get charge items: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var item models.ChargeItem
		var method string
		if err := rows.Scan(&item.ID, &item.Title, &item.Amount, &item.Category, &method); err != nil {
			return nil, fmt.Errorf("failed to scan charge item: %w", err)
		}
		item.Method = models.DivisionMethod(method)
		charge.Items = append(charge.Items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate charge items: %w", err)
	}

	return charge, nil
}

// ListCharges returns the building's charges, newest period first.
func (s *SQLiteStore) ListCharges(ctx context.Context, buildingID string) ([]*models.Charge, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT "+chargeColumns+" FROM charges WHERE building_id = ? ORDER BY period_year DESC, period_month DESC, created_at DESC",
		buildingID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list charges: %w", err)
	}
	defer rows.Close()

	var charges []*models.Charge
	for rows.Next() {
		c, err := scanCharge(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan charge: %w", err)
		}
		charges = append(charges, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate charges: %w", err)
	}
	return charges, nil
}

// draftStatus reads a charge's status inside tx and rejects issued charges.
func draftStatus(ctx context.Context, tx *sql.Tx, chargeID string) error {
	var status string
	err := tx.QueryRowContext(ctx, "SELECT status FROM charges WHERE id = ?", chargeID).Scan(&status)
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("charge %s: %w", chargeID, storage.ErrNotFound)
	}
	if err != nil {
		return fmt.Errorf("failed to check charge status: %w", err)
	}
	if models.ChargeStatus(status) != models.ChargeStatusDraft {
		return fmt.Errorf("charge %s is %s: %w", chargeID, status, storage.ErrConflict)
	}
	return nil
}

// UpdateChargeItems replaces the items of a draft charge.
func (s *SQLiteStore) UpdateChargeItems(ctx context.Context, chargeID string, items []models.ChargeItem) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if err := draftStatus(ctx, tx, chargeID); err != nil {
		return err
	}

	if _, err := tx.ExecContext(ctx, "DELETE FROM charge_items WHERE charge_id = ?", chargeID); err != nil {
		return fmt.Errorf("failed to delete charge items: %w", err)
	}
	if err := insertChargeItems(ctx, tx, chargeID, items); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// DeleteCharge removes a draft charge.
func (s *SQLiteStore) DeleteCharge(ctx context.Context, chargeID string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if err := draftStatus(ctx, tx, chargeID); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, "DELETE FROM charges WHERE id = ?", chargeID); err != nil {
		return fmt.Errorf("failed to delete charge: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// IssueCharge flips a draft charge to issued and stores its unit charges.
func (s *SQLiteStore) IssueCharge(ctx context.Context, chargeID string, dueDate, issuedAt int64, unitCharges []*models.UnitCharge) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if err := draftStatus(ctx, tx, chargeID); err != nil {
		return err
	}

	_, err = tx.ExecContext(ctx,
		"UPDATE charges SET status = ?, due_date = ?, issued_at = ? WHERE id = ?",
		string(models.ChargeStatusIssued), dueDate, issuedAt, chargeID,
	)
	if err != nil {
		return fmt.Errorf("failed to update charge: %w", err)
	}

	for _, uc := range unitCharges {
		if uc.ID == "" {
			uc.ID = uuid.New().String()
		}
		uc.ChargeID = chargeID
		uc.DueDate = dueDate
		if uc.Status == "" {
			uc.Status = models.UnitChargePending
		}
		_, err = tx.ExecContext(ctx,
			"INSERT INTO unit_charges (id, charge_id, unit_id, amount, paid_amount, status, due_date) VALUES (?, ?, ?, ?, ?, ?, ?)",
			uc.ID, uc.ChargeID, uc.UnitID, uc.Amount, uc.PaidAmount, string(uc.Status), uc.DueDate,
		)
		if err != nil {
			return fmt.Errorf("failed to insert unit charge: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

const unitChargeColumns = "uc.id, uc.charge_id, uc.unit_id, uc.amount, uc.paid_amount, uc.status, uc.due_date"

func scanUnitCharge(row scanner) (*models.UnitCharge, error) {
	uc := &models.UnitCharge{}
	var status string
	if err := row.Scan(&uc.ID, &uc.ChargeID, &uc.UnitID, &uc.Amount, &uc.PaidAmount, &status, &uc.DueDate); err != nil {
		return nil, err
	}
	uc.Status = models.UnitChargeStatus(status)
	return uc, nil
}

// GetUnitCharge retrieves a unit charge by ID.
func (s *SQLiteStore) GetUnitCharge(ctx context.Context, unitChargeID string) (*models.UnitCharge, error) {
	uc, err := scanUnitCharge(s.db.QueryRowContext(ctx,
		"SELECT "+unitChargeColumns+" FROM unit_charges uc WHERE uc.id = ?", unitChargeID))
	if err != nil {
		return nil, notFound(err, "unit charge", unitChargeID)
	}
	return uc, nil
}

func (s *SQLiteStore) queryUnitCharges(ctx context.Context, query string, args ...any) ([]*models.UnitCharge, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list unit charges: %w", err)
	}
	defer rows.Close()

	var ucs []*models.UnitCharge
	for rows.Next() {
		uc, err := scanUnitCharge(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan unit charge: %w", err)
		}
		ucs = append(ucs, uc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate unit charges: %w", err)
	}
	return ucs, nil
}

// ListUnitChargesByCharge returns the unit charges of one charge in roster order.
func (s *SQLiteStore) ListUnitChargesByCharge(ctx context.Context, chargeID string) ([]*models.UnitCharge, error) {
	return s.queryUnitCharges(ctx,
		`SELECT `+unitChargeColumns+` FROM unit_charges uc
		 JOIN units u ON u.id = uc.unit_id
		 WHERE uc.charge_id = ? ORDER BY u.floor, u.number, u.id`,
		chargeID,
	)
}

// ListUnitChargesByBuilding returns every unit charge of a building's issued charges.
func (s *SQLiteStore) ListUnitChargesByBuilding(ctx context.Context, buildingID string) ([]*models.UnitCharge, error) {
	return s.queryUnitCharges(ctx,
		`SELECT `+unitChargeColumns+` FROM unit_charges uc
		 JOIN charges c ON c.id = uc.charge_id
		 WHERE c.building_id = ? ORDER BY c.period_year, c.period_month, uc.unit_id`,
		buildingID,
	)
}

// MarkOverdue flags unpaid unit charges whose due date has passed.
func (s *SQLiteStore) MarkOverdue(ctx context.Context, at time.Time) (int64, error) {
	res, err := s.db.ExecContext(ctx,
		`UPDATE unit_charges SET status = ?
		 WHERE due_date > 0 AND due_date < ? AND paid_amount < amount AND status != ?`,
		string(models.UnitChargeOverdue), at.Unix(), string(models.UnitChargeOverdue),
	)
	if err != nil {
		return 0, fmt.Errorf("failed to mark overdue: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to read affected rows: %w", err)
	}
	return n, nil
}
