package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/mofahq/tasktracker/internal/platform/id"
	"github.com/mofahq/tasktracker/internal/services/web/storage"
	"github.com/mofahq/tasktracker/internal/tracker"
)

const assignmentColumns = `id, equipment_id, directorate_id, assigned_to,
	room_number, issued_by, assigned_date, return_date, active, notes,
	created_at, updated_at`

// AssignDevice records an active assignment, marks the equipment assigned,
// and appends a history entry, all in one transaction.
func (s *Store) AssignDevice(ctx context.Context, assignment tracker.DeviceAssignment) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s == nil || s.sqlDB == nil {
		return fmt.Errorf("storage is not configured")
	}
	if strings.TrimSpace(assignment.ID) == "" {
		return fmt.Errorf("assignment id is required")
	}
	if strings.TrimSpace(assignment.EquipmentID) == "" {
		return fmt.Errorf("equipment id is required")
	}

	historyID, err := id.NewID()
	if err != nil {
		return fmt.Errorf("assign device: %w", err)
	}

	tx, err := s.sqlDB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("assign device: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(
		ctx,
		`INSERT INTO device_assignments (`+assignmentColumns+`)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, 1, ?, ?, ?)`,
		assignment.ID,
		assignment.EquipmentID,
		nullableText(assignment.DirectorateID),
		nullableText(assignment.AssignedTo),
		assignment.RoomNumber,
		nullableText(assignment.IssuedBy),
		toMillis(assignment.AssignedDate),
		nullableMillis(assignment.ReturnDate),
		assignment.Notes,
		toMillis(assignment.CreatedAt),
		toMillis(assignment.UpdatedAt),
	); err != nil {
		return fmt.Errorf("assign device: %w", err)
	}

	result, err := tx.ExecContext(
		ctx,
		`UPDATE equipment SET status = ?, updated_at = ? WHERE id = ?`,
		string(tracker.EquipmentAssigned),
		toMillis(assignment.AssignedDate),
		assignment.EquipmentID,
	)
	if err != nil {
		return fmt.Errorf("assign device: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("assign device: %w", err)
	}
	if affected == 0 {
		return storage.ErrNotFound
	}

	if _, err := tx.ExecContext(
		ctx,
		`INSERT INTO device_history
		   (id, equipment_id, assignment_id, action, to_directorate, to_room, performed_by, notes, timestamp)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		historyID,
		assignment.EquipmentID,
		assignment.ID,
		string(tracker.ActionAssigned),
		nullableText(assignment.DirectorateID),
		assignment.RoomNumber,
		nullableText(assignment.IssuedBy),
		assignment.Notes,
		toMillis(assignment.AssignedDate),
	); err != nil {
		return fmt.Errorf("assign device: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("assign device: %w", err)
	}
	return nil
}

// ReturnDevice closes an active assignment, marks the equipment available,
// and appends a history entry.
func (s *Store) ReturnDevice(ctx context.Context, assignmentID string, returnedAt time.Time) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s == nil || s.sqlDB == nil {
		return fmt.Errorf("storage is not configured")
	}
	assignmentID = strings.TrimSpace(assignmentID)
	if assignmentID == "" {
		return fmt.Errorf("assignment id is required")
	}

	historyID, err := id.NewID()
	if err != nil {
		return fmt.Errorf("return device: %w", err)
	}

	tx, err := s.sqlDB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("return device: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	row := tx.QueryRowContext(
		ctx,
		`SELECT equipment_id, directorate_id, room_number
		 FROM device_assignments
		 WHERE id = ? AND active = 1`,
		assignmentID,
	)
	var equipmentID string
	var directorateID sql.NullString
	var roomNumber string
	if err := row.Scan(&equipmentID, &directorateID, &roomNumber); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return storage.ErrNotFound
		}
		return fmt.Errorf("return device: %w", err)
	}

	if _, err := tx.ExecContext(
		ctx,
		`UPDATE device_assignments
		 SET active = 0, return_date = ?, updated_at = ?
		 WHERE id = ?`,
		toMillis(returnedAt),
		toMillis(returnedAt),
		assignmentID,
	); err != nil {
		return fmt.Errorf("return device: %w", err)
	}

	if _, err := tx.ExecContext(
		ctx,
		`UPDATE equipment SET status = ?, updated_at = ? WHERE id = ?`,
		string(tracker.EquipmentAvailable),
		toMillis(returnedAt),
		equipmentID,
	); err != nil {
		return fmt.Errorf("return device: %w", err)
	}

	if _, err := tx.ExecContext(
		ctx,
		`INSERT INTO device_history
		   (id, equipment_id, assignment_id, action, from_directorate, from_room, timestamp)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		historyID,
		equipmentID,
		assignmentID,
		string(tracker.ActionReturned),
		textPtrToAny(directorateID),
		roomNumber,
		toMillis(returnedAt),
	); err != nil {
		return fmt.Errorf("return device: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("return device: %w", err)
	}
	return nil
}

// ListAssignments returns assignments, newest first. An empty equipment id
// lists assignments for every device.
func (s *Store) ListAssignments(ctx context.Context, equipmentID string) ([]tracker.DeviceAssignment, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if s == nil || s.sqlDB == nil {
		return nil, fmt.Errorf("storage is not configured")
	}

	query := `SELECT ` + assignmentColumns + ` FROM device_assignments`
	var args []any
	if equipmentID = strings.TrimSpace(equipmentID); equipmentID != "" {
		query += ` WHERE equipment_id = ?`
		args = append(args, equipmentID)
	}
	query += ` ORDER BY assigned_date DESC, id ASC`

	rows, err := s.sqlDB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list assignments: %w", err)
	}
	defer rows.Close()

	var assignments []tracker.DeviceAssignment
	for rows.Next() {
		var (
			assignment    tracker.DeviceAssignment
			directorateID sql.NullString
			assignedTo    sql.NullString
			issuedBy      sql.NullString
			assignedDate  int64
			returnDate    sql.NullInt64
			createdAt     int64
			updatedAt     int64
		)
		if err := rows.Scan(
			&assignment.ID,
			&assignment.EquipmentID,
			&directorateID,
			&assignedTo,
			&assignment.RoomNumber,
			&issuedBy,
			&assignedDate,
			&returnDate,
			&assignment.Active,
			&assignment.Notes,
			&createdAt,
			&updatedAt,
		); err != nil {
			return nil, fmt.Errorf("list assignments: %w", err)
		}
		assignment.DirectorateID = textPtr(directorateID)
		assignment.AssignedTo = textPtr(assignedTo)
		assignment.IssuedBy = textPtr(issuedBy)
		assignment.AssignedDate = fromMillis(assignedDate)
		assignment.ReturnDate = timePtr(returnDate)
		assignment.CreatedAt = fromMillis(createdAt)
		assignment.UpdatedAt = fromMillis(updatedAt)
		assignments = append(assignments, assignment)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list assignments: %w", err)
	}
	return assignments, nil
}

// ListDeviceHistory returns history entries for one device, newest first.
func (s *Store) ListDeviceHistory(ctx context.Context, equipmentID string) ([]tracker.DeviceHistory, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if s == nil || s.sqlDB == nil {
		return nil, fmt.Errorf("storage is not configured")
	}
	equipmentID = strings.TrimSpace(equipmentID)
	if equipmentID == "" {
		return nil, fmt.Errorf("equipment id is required")
	}

	rows, err := s.sqlDB.QueryContext(
		ctx,
		`SELECT id, equipment_id, assignment_id, action,
		        from_directorate, to_directorate, from_room, to_room,
		        performed_by, notes, timestamp
		 FROM device_history
		 WHERE equipment_id = ?
		 ORDER BY timestamp DESC, id ASC`,
		equipmentID,
	)
	if err != nil {
		return nil, fmt.Errorf("list device history: %w", err)
	}
	defer rows.Close()

	var entries []tracker.DeviceHistory
	for rows.Next() {
		var (
			entry           tracker.DeviceHistory
			assignmentID    sql.NullString
			action          string
			fromDirectorate sql.NullString
			toDirectorate   sql.NullString
			performedBy     sql.NullString
			timestamp       int64
		)
		if err := rows.Scan(
			&entry.ID,
			&entry.EquipmentID,
			&assignmentID,
			&action,
			&fromDirectorate,
			&toDirectorate,
			&entry.FromRoom,
			&entry.ToRoom,
			&performedBy,
			&entry.Notes,
			&timestamp,
		); err != nil {
			return nil, fmt.Errorf("list device history: %w", err)
		}
		entry.AssignmentID = textPtr(assignmentID)
		entry.Action = tracker.DeviceHistoryAction(action)
		entry.FromDirectorate = textPtr(fromDirectorate)
		entry.ToDirectorate = textPtr(toDirectorate)
		entry.PerformedBy = textPtr(performedBy)
		entry.Timestamp = fromMillis(timestamp)
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list device history: %w", err)
	}
	return entries, nil
}

func textPtrToAny(value sql.NullString) any {
	if !value.Valid {
		return nil
	}
	return value.String
}
