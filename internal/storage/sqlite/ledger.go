package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/mmynk/saakhtemaan/internal/models"
	"github.com/mmynk/saakhtemaan/internal/storage"
)

const (
	refPayment = "payment"
	refExpense = "expense"
)

// RecordPayment applies a payment to its unit charge and credits the fund.
func (s *SQLiteStore) RecordPayment(ctx context.Context, payment *models.Payment, at time.Time) (*models.UnitCharge, error) {
	if payment.ID == "" {
		payment.ID = uuid.New().String()
	}
	if payment.PaidAt == 0 {
		payment.PaidAt = at.Unix()
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	uc, err := scanUnitCharge(tx.QueryRowContext(ctx,
		"SELECT "+unitChargeColumns+" FROM unit_charges uc WHERE uc.id = ?", payment.UnitChargeID))
	if err != nil {
		return nil, notFound(err, "unit charge", payment.UnitChargeID)
	}
	if payment.Amount > uc.Outstanding() {
		return nil, fmt.Errorf("payment of %d exceeds outstanding %d: %w",
			payment.Amount, uc.Outstanding(), storage.ErrConflict)
	}

	uc.PaidAmount += payment.Amount
	uc.Status = uc.DeriveStatus(at)
	payment.UnitID = uc.UnitID

	_, err = tx.ExecContext(ctx,
		"UPDATE unit_charges SET paid_amount = ?, status = ? WHERE id = ?",
		uc.PaidAmount, string(uc.Status), uc.ID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to update unit charge: %w", err)
	}

	_, err = tx.ExecContext(ctx,
		`INSERT INTO payments (id, unit_charge_id, unit_id, building_id, amount, method, reference, paid_at, recorded_by)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		payment.ID, payment.UnitChargeID, payment.UnitID, payment.BuildingID, payment.Amount,
		string(payment.Method), nullable(payment.Reference), payment.PaidAt, payment.RecordedBy,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to insert payment: %w", err)
	}

	err = insertFundTransaction(ctx, tx, &models.FundTransaction{
		BuildingID:  payment.BuildingID,
		Kind:        models.FundIncome,
		Amount:      payment.Amount,
		Description: "unit charge payment",
		RefType:     refPayment,
		RefID:       payment.ID,
		CreatedAt:   payment.PaidAt,
	})
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}
	return uc, nil
}

// ListPaymentsByBuilding returns the building's payments, newest first.
func (s *SQLiteStore) ListPaymentsByBuilding(ctx context.Context, buildingID string) ([]*models.Payment, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, unit_charge_id, unit_id, building_id, amount, method, reference, paid_at, recorded_by
		 FROM payments WHERE building_id = ? ORDER BY paid_at DESC, id`,
		buildingID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list payments: %w", err)
	}
	defer rows.Close()

	var payments []*models.Payment
	for rows.Next() {
		p := &models.Payment{}
		var method string
		var reference sql.NullString
		if err := rows.Scan(&p.ID, &p.UnitChargeID, &p.UnitID, &p.BuildingID, &p.Amount,
			&method, &reference, &p.PaidAt, &p.RecordedBy); err != nil {
			return nil, fmt.Errorf("failed to scan payment: %w", err)
		}
		p.Method = models.PaymentMethod(method)
		if reference.Valid {
			p.Reference = reference.String
		}
		payments = append(payments, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate payments: %w", err)
	}
	return payments, nil
}

// CreateExpense stores an expense and debits the fund.
func (s *SQLiteStore) CreateExpense(ctx context.Context, expense *models.Expense) error {
	if expense.ID == "" {
		expense.ID = uuid.New().String()
	}
	if expense.CreatedAt == 0 {
		expense.CreatedAt = now()
	}
	if expense.SpentAt == 0 {
		expense.SpentAt = expense.CreatedAt
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO expenses (id, building_id, title, category, amount, spent_at, note, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		expense.ID, expense.BuildingID, expense.Title, expense.Category, expense.Amount,
		expense.SpentAt, nullable(expense.Note), expense.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert expense: %w", err)
	}

	err = insertFundTransaction(ctx, tx, &models.FundTransaction{
		BuildingID:  expense.BuildingID,
		Kind:        models.FundExpense,
		Amount:      expense.Amount,
		Description: expense.Title,
		RefType:     refExpense,
		RefID:       expense.ID,
		CreatedAt:   expense.SpentAt,
	})
	if err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

const expenseColumns = "id, building_id, title, category, amount, spent_at, note, created_at"

func scanExpense(row scanner) (*models.Expense, error) {
	e := &models.Expense{}
	var note sql.NullString
	if err := row.Scan(&e.ID, &e.BuildingID, &e.Title, &e.Category, &e.Amount,
		&e.SpentAt, &note, &e.CreatedAt); err != nil {
		return nil, err
	}
	if note.Valid {
		e.Note = note.String
	}
	return e, nil
}

// GetExpense retrieves an expense by ID.
func (s *SQLiteStore) GetExpense(ctx context.Context, expenseID string) (*models.Expense, error) {
	e, err := scanExpense(s.db.QueryRowContext(ctx,
		"SELECT "+expenseColumns+" FROM expenses WHERE id = ?", expenseID))
	if err != nil {
		return nil, notFound(err, "expense", expenseID)
	}
	return e, nil
}

// ListExpenses returns the building's expenses, newest first.
func (s *SQLiteStore) ListExpenses(ctx context.Context, buildingID string) ([]*models.Expense, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT "+expenseColumns+" FROM expenses WHERE building_id = ? ORDER BY spent_at DESC, id",
		buildingID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list expenses: %w", err)
	}
	defer rows.Close()

	var expenses []*models.Expense
	for rows.Next() {
		e, err := scanExpense(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan expense: %w", err)
		}
		expenses = append(expenses, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate expenses: %w", err)
	}
	return expenses, nil
}

// DeleteExpense removes an expense and its ledger entry.
func (s *SQLiteStore) DeleteExpense(ctx context.Context, expenseID string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if err := execOne(ctx, tx, "expense", expenseID, "DELETE FROM expenses WHERE id = ?", expenseID); err != nil {
		return err
	}
	_, err = tx.ExecContext(ctx,
		"DELETE FROM fund_transactions WHERE ref_type = ? AND ref_id = ?", refExpense, expenseID)
	if err != nil {
		return fmt.Errorf("failed to delete fund transaction: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

func insertFundTransaction(ctx context.Context, tx *sql.Tx, txn *models.FundTransaction) error {
	if txn.ID == "" {
		txn.ID = uuid.New().String()
	}
	if txn.CreatedAt == 0 {
		txn.CreatedAt = now()
	}
	_, err := tx.ExecContext(ctx,
		`INSERT INTO fund_transactions (id, building_id, kind, amount, description, ref_type, ref_id, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		txn.ID, txn.BuildingID, string(txn.Kind), txn.Amount, txn.Description, txn.RefType, txn.RefID, txn.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert fund transaction: %w", err)
	}
	return nil
}

// CreateFundTransaction stores a standalone ledger entry, such as an adjustment.
func (s *SQLiteStore) CreateFundTransaction(ctx context.Context, txn *models.FundTransaction) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if err := insertFundTransaction(ctx, tx, txn); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// ListFundTransactions returns the building's ledger, newest first.
func (s *SQLiteStore) ListFundTransactions(ctx context.Context, buildingID string) ([]*models.FundTransaction, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, building_id, kind, amount, description, ref_type, ref_id, created_at
		 FROM fund_transactions WHERE building_id = ? ORDER BY created_at DESC, id`,
		buildingID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list fund transactions: %w", err)
	}
	defer rows.Close()

	var txns []*models.FundTransaction
	for rows.Next() {
		t := &models.FundTransaction{}
		var kind string
		if err := rows.Scan(&t.ID, &t.BuildingID, &kind, &t.Amount, &t.Description,
			&t.RefType, &t.RefID, &t.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan fund transaction: %w", err)
		}
		t.Kind = models.FundTransactionKind(kind)
		txns = append(txns, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate fund transactions: %w", err)
	}
	return txns, nil
}

// GetFundSummary totals the building's ledger by kind.
func (s *SQLiteStore) GetFundSummary(ctx context.Context, buildingID string) (*models.FundSummary, error) {
	summary := &models.FundSummary{BuildingID: buildingID}
	err := s.db.QueryRowContext(ctx,
		`SELECT
		    COALESCE(SUM(CASE WHEN kind = ? THEN amount END), 0),
		    COALESCE(SUM(CASE WHEN kind = ? THEN amount END), 0),
		    COALESCE(SUM(CASE WHEN kind = ? THEN amount END), 0)
		 FROM fund_transactions WHERE building_id = ?`,
		string(models.FundIncome), string(models.FundExpense), string(models.FundAdjustment), buildingID,
	).Scan(&summary.TotalIncome, &summary.TotalExpense, &summary.Adjustments)
	if err != nil {
		return nil, fmt.Errorf("failed to get fund summary: %w", err)
	}
	summary.Balance = summary.TotalIncome - summary.TotalExpense + summary.Adjustments
	return summary, nil
}
