package sqlite

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/mmynk/saakhtemaan/internal/models"
)

// CreateBuilding persists a new building.
func (s *SQLiteStore) CreateBuilding(ctx context.Context, building *models.Building) error {
	if building.ID == "" {
		building.ID = uuid.New().String()
	}
	if building.CreatedAt == 0 {
		building.CreatedAt = now()
	}

	_, err := s.db.ExecContext(ctx,
		"INSERT INTO buildings (id, manager_id, name, address, created_at) VALUES (?, ?, ?, ?, ?)",
		building.ID, building.ManagerID, building.Name, building.Address, building.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert building: %w", err)
	}
	return nil
}

// GetBuilding retrieves a building by ID.
func (s *SQLiteStore) GetBuilding(ctx context.Context, buildingID string) (*models.Building, error) {
	b := &models.Building{}
	err := s.db.QueryRowContext(ctx,
		"SELECT id, manager_id, name, address, created_at FROM buildings WHERE id = ?",
		buildingID,
	).Scan(&b.ID, &b.ManagerID, &b.Name, &b.Address, &b.CreatedAt)
	if err != nil {
		return nil, notFound(err, "building", buildingID)
	}
	return b, nil
}

// ListBuildingsByManager returns the manager's buildings, oldest first.
func (s *SQLiteStore) ListBuildingsByManager(ctx context.Context, managerID string) ([]*models.Building, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT id, manager_id, name, address, created_at FROM buildings WHERE manager_id = ? ORDER BY created_at, name",
		managerID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list buildings: %w", err)
	}
	defer rows.Close()

	var buildings []*models.Building
	for rows.Next() {
		b := &models.Building{}
		if err := rows.Scan(&b.ID, &b.ManagerID, &b.Name, &b.Address, &b.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan building: %w", err)
		}
		buildings = append(buildings, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate buildings: %w", err)
	}
	return buildings, nil
}

// DeleteBuilding removes a building. Units, charges and ledger rows cascade.
func (s *SQLiteStore) DeleteBuilding(ctx context.Context, buildingID string) error {
	return execOne(ctx, s.db, "building", buildingID,
		"DELETE FROM buildings WHERE id = ?", buildingID)
}
