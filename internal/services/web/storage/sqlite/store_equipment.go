package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/mofahq/tasktracker/internal/services/web/storage"
	"github.com/mofahq/tasktracker/internal/tracker"
)

const equipmentColumns = `id, type, brand, model, serial_number, asset_tag,
	condition, status, specifications, notes, created_by, created_at, updated_at`

// PutEquipment upserts one device record.
func (s *Store) PutEquipment(ctx context.Context, equipment tracker.Equipment) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s == nil || s.sqlDB == nil {
		return fmt.Errorf("storage is not configured")
	}
	if strings.TrimSpace(equipment.ID) == "" {
		return fmt.Errorf("equipment id is required")
	}
	if strings.TrimSpace(equipment.SerialNumber) == "" {
		return fmt.Errorf("serial number is required")
	}
	if _, err := tracker.ParseEquipmentType(string(equipment.Type)); err != nil {
		return err
	}
	if _, err := tracker.ParseEquipmentStatus(string(equipment.Status)); err != nil {
		return err
	}
	if _, err := tracker.ParseEquipmentCondition(string(equipment.Condition)); err != nil {
		return err
	}

	_, err := s.sqlDB.ExecContext(
		ctx,
		`INSERT INTO equipment (`+equipmentColumns+`)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET
		   type = excluded.type,
		   brand = excluded.brand,
		   model = excluded.model,
		   serial_number = excluded.serial_number,
		   asset_tag = excluded.asset_tag,
		   condition = excluded.condition,
		   status = excluded.status,
		   specifications = excluded.specifications,
		   notes = excluded.notes,
		   updated_at = excluded.updated_at`,
		equipment.ID,
		string(equipment.Type),
		equipment.Brand,
		equipment.Model,
		equipment.SerialNumber,
		equipment.AssetTag,
		string(equipment.Condition),
		string(equipment.Status),
		equipment.Specifications,
		equipment.Notes,
		nullableText(equipment.CreatedBy),
		toMillis(equipment.CreatedAt),
		toMillis(equipment.UpdatedAt),
	)
	if err != nil {
		return fmt.Errorf("put equipment: %w", err)
	}
	return nil
}

// GetEquipment loads one device by id.
func (s *Store) GetEquipment(ctx context.Context, id string) (tracker.Equipment, error) {
	if err := ctx.Err(); err != nil {
		return tracker.Equipment{}, err
	}
	if s == nil || s.sqlDB == nil {
		return tracker.Equipment{}, fmt.Errorf("storage is not configured")
	}
	id = strings.TrimSpace(id)
	if id == "" {
		return tracker.Equipment{}, fmt.Errorf("equipment id is required")
	}

	row := s.sqlDB.QueryRowContext(
		ctx,
		`SELECT `+equipmentColumns+` FROM equipment WHERE id = ?`,
		id,
	)
	equipment, err := scanEquipment(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return tracker.Equipment{}, storage.ErrNotFound
		}
		return tracker.Equipment{}, fmt.Errorf("get equipment: %w", err)
	}
	return equipment, nil
}

// ListEquipment returns all devices ordered by serial number.
func (s *Store) ListEquipment(ctx context.Context) ([]tracker.Equipment, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if s == nil || s.sqlDB == nil {
		return nil, fmt.Errorf("storage is not configured")
	}

	rows, err := s.sqlDB.QueryContext(
		ctx,
		`SELECT `+equipmentColumns+` FROM equipment ORDER BY serial_number ASC`,
	)
	if err != nil {
		return nil, fmt.Errorf("list equipment: %w", err)
	}
	defer rows.Close()

	var devices []tracker.Equipment
	for rows.Next() {
		equipment, err := scanEquipment(rows)
		if err != nil {
			return nil, fmt.Errorf("list equipment: %w", err)
		}
		devices = append(devices, equipment)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list equipment: %w", err)
	}
	return devices, nil
}

// PutDirectorate upserts one directorate.
func (s *Store) PutDirectorate(ctx context.Context, directorate tracker.Directorate) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s == nil || s.sqlDB == nil {
		return fmt.Errorf("storage is not configured")
	}
	if strings.TrimSpace(directorate.ID) == "" {
		return fmt.Errorf("directorate id is required")
	}
	if strings.TrimSpace(directorate.Name) == "" {
		return fmt.Errorf("directorate name is required")
	}
	if strings.TrimSpace(directorate.Code) == "" {
		return fmt.Errorf("directorate code is required")
	}

	_, err := s.sqlDB.ExecContext(
		ctx,
		`INSERT INTO directorates (id, name, code, description, location, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET
		   name = excluded.name,
		   code = excluded.code,
		   description = excluded.description,
		   location = excluded.location,
		   updated_at = excluded.updated_at`,
		directorate.ID,
		directorate.Name,
		directorate.Code,
		directorate.Description,
		directorate.Location,
		toMillis(directorate.CreatedAt),
		toMillis(directorate.UpdatedAt),
	)
	if err != nil {
		return fmt.Errorf("put directorate: %w", err)
	}
	return nil
}

// ListDirectorates returns all directorates ordered by name.
func (s *Store) ListDirectorates(ctx context.Context) ([]tracker.Directorate, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if s == nil || s.sqlDB == nil {
		return nil, fmt.Errorf("storage is not configured")
	}

	rows, err := s.sqlDB.QueryContext(
		ctx,
		`SELECT id, name, code, description, location, created_at, updated_at
		 FROM directorates
		 ORDER BY name ASC`,
	)
	if err != nil {
		return nil, fmt.Errorf("list directorates: %w", err)
	}
	defer rows.Close()

	var directorates []tracker.Directorate
	for rows.Next() {
		var (
			directorate tracker.Directorate
			createdAt   int64
			updatedAt   int64
		)
		if err := rows.Scan(
			&directorate.ID,
			&directorate.Name,
			&directorate.Code,
			&directorate.Description,
			&directorate.Location,
			&createdAt,
			&updatedAt,
		); err != nil {
			return nil, fmt.Errorf("list directorates: %w", err)
		}
		directorate.CreatedAt = fromMillis(createdAt)
		directorate.UpdatedAt = fromMillis(updatedAt)
		directorates = append(directorates, directorate)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list directorates: %w", err)
	}
	return directorates, nil
}

// CountActiveAssignments returns active device assignment counts keyed by
// directorate id. Assignments without a directorate are omitted.
func (s *Store) CountActiveAssignments(ctx context.Context) (map[string]int, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if s == nil || s.sqlDB == nil {
		return nil, fmt.Errorf("storage is not configured")
	}

	rows, err := s.sqlDB.QueryContext(
		ctx,
		`SELECT directorate_id, COUNT(*)
		 FROM device_assignments
		 WHERE active = 1 AND directorate_id IS NOT NULL
		 GROUP BY directorate_id`,
	)
	if err != nil {
		return nil, fmt.Errorf("count active assignments: %w", err)
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var directorateID string
		var count int
		if err := rows.Scan(&directorateID, &count); err != nil {
			return nil, fmt.Errorf("count active assignments: %w", err)
		}
		counts[directorateID] = count
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("count active assignments: %w", err)
	}
	return counts, nil
}

func scanEquipment(row rowScanner) (tracker.Equipment, error) {
	var (
		equipment tracker.Equipment
		kind      string
		condition string
		status    string
		createdBy sql.NullString
		createdAt int64
		updatedAt int64
	)
	if err := row.Scan(
		&equipment.ID,
		&kind,
		&equipment.Brand,
		&equipment.Model,
		&equipment.SerialNumber,
		&equipment.AssetTag,
		&condition,
		&status,
		&equipment.Specifications,
		&equipment.Notes,
		&createdBy,
		&createdAt,
		&updatedAt,
	); err != nil {
		return tracker.Equipment{}, err
	}
	equipment.Type = tracker.EquipmentType(kind)
	equipment.Condition = tracker.EquipmentCondition(condition)
	equipment.Status = tracker.EquipmentStatus(status)
	equipment.CreatedBy = textPtr(createdBy)
	equipment.CreatedAt = fromMillis(createdAt)
	equipment.UpdatedAt = fromMillis(updatedAt)
	return equipment, nil
}
