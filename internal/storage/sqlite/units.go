package sqlite

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/mmynk/saakhtemaan/internal/models"
)

const unitColumns = "id, building_id, number, floor, area, coefficient, residents_count, owner_name, created_at"

type scanner interface {
	Scan(dest ...any) error
}

func scanUnit(row scanner) (*models.Unit, error) {
	u := &models.Unit{}
	err := row.Scan(&u.ID, &u.BuildingID, &u.Number, &u.Floor, &u.Area,
		&u.Coefficient, &u.ResidentsCount, &u.OwnerName, &u.CreatedAt)
	if err != nil {
		return nil, err
	}
	return u, nil
}

// CreateUnit persists a new unit.
func (s *SQLiteStore) CreateUnit(ctx context.Context, unit *models.Unit) error {
	if unit.ID == "" {
		unit.ID = uuid.New().String()
	}
	if unit.CreatedAt == 0 {
		unit.CreatedAt = now()
	}

	_, err := s.db.ExecContext(ctx,
		"INSERT INTO units ("+unitColumns+") VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)",
		unit.ID, unit.BuildingID, unit.Number, unit.Floor, unit.Area,
		unit.Coefficient, unit.ResidentsCount, unit.OwnerName, unit.CreatedAt,
	)
	if err != nil {
		return conflictOnUnique(fmt.Errorf("failed to insert unit: %w", err), "unit "+unit.Number)
	}
	return nil
}

// GetUnit retrieves a unit by ID.
func (s *SQLiteStore) GetUnit(ctx context.Context, unitID string) (*models.Unit, error) {
	u, err := scanUnit(s.db.QueryRowContext(ctx,
		"SELECT "+unitColumns+" FROM units WHERE id = ?", unitID))
	if err != nil {
		return nil, notFound(err, "unit", unitID)
	}
	return u, nil
}

// UpdateUnit overwrites the editable fields of a unit.
func (s *SQLiteStore) UpdateUnit(ctx context.Context, unit *models.Unit) error {
	err := execOne(ctx, s.db, "unit", unit.ID,
		`UPDATE units SET number = ?, floor = ?, area = ?, coefficient = ?, residents_count = ?, owner_name = ?
		 WHERE id = ?`,
		unit.Number, unit.Floor, unit.Area, unit.Coefficient, unit.ResidentsCount, unit.OwnerName, unit.ID,
	)
	return conflictOnUnique(err, "unit "+unit.Number)
}

// ListUnits returns the building's roster ordered by floor, then number.
func (s *SQLiteStore) ListUnits(ctx context.Context, buildingID string) ([]*models.Unit, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT "+unitColumns+" FROM units WHERE building_id = ? ORDER BY floor, number, id",
		buildingID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list units: %w", err)
	}
	defer rows.Close()

	var units []*models.Unit
	for rows.Next() {
		u, err := scanUnit(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan unit: %w", err)
		}
		units = append(units, u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate units: %w", err)
	}
	return units, nil
}

// DeleteUnit removes a unit and its residents.
func (s *SQLiteStore) DeleteUnit(ctx context.Context, unitID string) error {
	return execOne(ctx, s.db, "unit", unitID, "DELETE FROM units WHERE id = ?", unitID)
}

// CreateResident persists a new resident.
func (s *SQLiteStore) CreateResident(ctx context.Context, resident *models.Resident) error {
	if resident.ID == "" {
		resident.ID = uuid.New().String()
	}
	if resident.CreatedAt == 0 {
		resident.CreatedAt = now()
	}

	_, err := s.db.ExecContext(ctx,
		"INSERT INTO residents (id, unit_id, full_name, phone, role, created_at) VALUES (?, ?, ?, ?, ?, ?)",
		resident.ID, resident.UnitID, resident.FullName, resident.Phone, string(resident.Role), resident.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert resident: %w", err)
	}
	return nil
}

// GetResident retrieves a resident by ID.
func (s *SQLiteStore) GetResident(ctx context.Context, residentID string) (*models.Resident, error) {
	r := &models.Resident{}
	var role string
	err := s.db.QueryRowContext(ctx,
		"SELECT id, unit_id, full_name, phone, role, created_at FROM residents WHERE id = ?",
		residentID,
	).Scan(&r.ID, &r.UnitID, &r.FullName, &r.Phone, &role, &r.CreatedAt)
	if err != nil {
		return nil, notFound(err, "resident", residentID)
	}
	r.Role = models.ResidentRole(role)
	return r, nil
}

// ListResidents returns the residents of a unit in the order they were added.
func (s *SQLiteStore) ListResidents(ctx context.Context, unitID string) ([]*models.Resident, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT id, unit_id, full_name, phone, role, created_at FROM residents WHERE unit_id = ? ORDER BY created_at, full_name",
		unitID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list residents: %w", err)
	}
	defer rows.Close()

	var residents []*models.Resident
	for rows.Next() {
		r := &models.Resident{}
		var role string
		if err := rows.Scan(&r.ID, &r.UnitID, &r.FullName, &r.Phone, &role, &r.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan resident: %w", err)
		}
		r.Role = models.ResidentRole(role)
		residents = append(residents, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate residents: %w", err)
	}
	return residents, nil
}

// DeleteResident removes a resident by ID.
func (s *SQLiteStore) DeleteResident(ctx context.Context, residentID string) error {
	return execOne(ctx, s.db, "resident", residentID, "DELETE FROM residents WHERE id = ?", residentID)
}
