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

const taskColumns = `id, title, description, category, priority, status,
	created_by, assigned_to, reported_by,
	created_at, updated_at, due_date, date_completed,
	room_number, estimated_minutes, actual_minutes, is_urgent`

// PutTask upserts one task record.
func (s *Store) PutTask(ctx context.Context, task tracker.Task) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s == nil || s.sqlDB == nil {
		return fmt.Errorf("storage is not configured")
	}
	if strings.TrimSpace(task.ID) == "" {
		return fmt.Errorf("task id is required")
	}
	if strings.TrimSpace(task.Title) == "" {
		return fmt.Errorf("task title is required")
	}
	if strings.TrimSpace(task.CreatedBy) == "" {
		return fmt.Errorf("task creator is required")
	}
	if _, err := tracker.ParseTaskStatus(string(task.Status)); err != nil {
		return err
	}
	if _, err := tracker.ParseTaskPriority(string(task.Priority)); err != nil {
		return err
	}
	if _, err := tracker.ParseTaskCategory(string(task.Category)); err != nil {
		return err
	}

	_, err := s.sqlDB.ExecContext(
		ctx,
		`INSERT INTO tasks (`+taskColumns+`)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET
		   title = excluded.title,
		   description = excluded.description,
		   category = excluded.category,
		   priority = excluded.priority,
		   status = excluded.status,
		   assigned_to = excluded.assigned_to,
		   reported_by = excluded.reported_by,
		   updated_at = excluded.updated_at,
		   due_date = excluded.due_date,
		   date_completed = excluded.date_completed,
		   room_number = excluded.room_number,
		   estimated_minutes = excluded.estimated_minutes,
		   actual_minutes = excluded.actual_minutes,
		   is_urgent = excluded.is_urgent`,
		task.ID,
		task.Title,
		task.Description,
		string(task.Category),
		string(task.Priority),
		string(task.Status),
		task.CreatedBy,
		nullableText(task.AssignedTo),
		nullableText(task.ReportedBy),
		toMillis(task.CreatedAt),
		toMillis(task.UpdatedAt),
		nullableMillis(task.DueDate),
		nullableMillis(task.DateCompleted),
		task.RoomNumber,
		nullableInt(task.EstimatedMinutes),
		nullableInt(task.ActualMinutes),
		task.IsUrgent,
	)
	if err != nil {
		return fmt.Errorf("put task: %w", err)
	}
	return nil
}

// GetTask loads one task by id.
func (s *Store) GetTask(ctx context.Context, id string) (tracker.Task, error) {
	if err := ctx.Err(); err != nil {
		return tracker.Task{}, err
	}
	if s == nil || s.sqlDB == nil {
		return tracker.Task{}, fmt.Errorf("storage is not configured")
	}
	id = strings.TrimSpace(id)
	if id == "" {
		return tracker.Task{}, fmt.Errorf("task id is required")
	}

	row := s.sqlDB.QueryRowContext(
		ctx,
		`SELECT `+taskColumns+` FROM tasks WHERE id = ?`,
		id,
	)
	task, err := scanTask(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return tracker.Task{}, storage.ErrNotFound
		}
		return tracker.Task{}, fmt.Errorf("get task: %w", err)
	}
	return task, nil
}

// ListTasks returns tasks matching the filter, newest first.
func (s *Store) ListTasks(ctx context.Context, filter storage.TaskFilter) ([]tracker.Task, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if s == nil || s.sqlDB == nil {
		return nil, fmt.Errorf("storage is not configured")
	}

	query := `SELECT ` + taskColumns + ` FROM tasks`
	var conds []string
	var args []any

	if search := strings.TrimSpace(filter.Search); search != "" {
		pattern := "%" + strings.ToLower(search) + "%"
		conds = append(conds, "(LOWER(title) LIKE ? OR LOWER(description) LIKE ?)")
		args = append(args, pattern, pattern)
	}
	if filter.Status != "" {
		conds = append(conds, "status = ?")
		args = append(args, string(filter.Status))
	}
	if filter.Priority != "" {
		conds = append(conds, "priority = ?")
		args = append(args, string(filter.Priority))
	}
	if filter.Category != "" {
		conds = append(conds, "category = ?")
		args = append(args, string(filter.Category))
	}
	if filter.AssignedTo != "" {
		conds = append(conds, "assigned_to = ?")
		args = append(args, filter.AssignedTo)
	}
	if filter.CreatedBy != "" {
		conds = append(conds, "created_by = ?")
		args = append(args, filter.CreatedBy)
	}
	if filter.InvolvingUser != "" {
		conds = append(conds, "(created_by = ? OR assigned_to = ? OR reported_by = ?)")
		args = append(args, filter.InvolvingUser, filter.InvolvingUser, filter.InvolvingUser)
	}
	if filter.UrgentOnly {
		conds = append(conds, "is_urgent = 1")
	}
	if filter.OverdueAt != nil {
		conds = append(conds, "due_date IS NOT NULL AND due_date < ? AND status NOT IN ('completed', 'cancelled')")
		args = append(args, toMillis(*filter.OverdueAt))
	}

	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}
	query += " ORDER BY created_at DESC, id ASC"

	rows, err := s.sqlDB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	defer rows.Close()

	var tasks []tracker.Task
	for rows.Next() {
		task, err := scanTask(rows)
		if err != nil {
			return nil, fmt.Errorf("list tasks: %w", err)
		}
		tasks = append(tasks, task)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	return tasks, nil
}

// DeleteTask removes one task by id.
func (s *Store) DeleteTask(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s == nil || s.sqlDB == nil {
		return fmt.Errorf("storage is not configured")
	}
	id = strings.TrimSpace(id)
	if id == "" {
		return fmt.Errorf("task id is required")
	}

	result, err := s.sqlDB.ExecContext(ctx, `DELETE FROM tasks WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete task: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete task: %w", err)
	}
	if affected == 0 {
		return storage.ErrNotFound
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTask(row rowScanner) (tracker.Task, error) {
	var (
		task             tracker.Task
		category         string
		priority         string
		status           string
		assignedTo       sql.NullString
		reportedBy       sql.NullString
		createdAt        int64
		updatedAt        int64
		dueDate          sql.NullInt64
		dateCompleted    sql.NullInt64
		estimatedMinutes sql.NullInt64
		actualMinutes    sql.NullInt64
	)
	if err := row.Scan(
		&task.ID,
		&task.Title,
		&task.Description,
		&category,
		&priority,
		&status,
		&task.CreatedBy,
		&assignedTo,
		&reportedBy,
		&createdAt,
		&updatedAt,
		&dueDate,
		&dateCompleted,
		&task.RoomNumber,
		&estimatedMinutes,
		&actualMinutes,
		&task.IsUrgent,
	); err != nil {
		return tracker.Task{}, err
	}
	task.Category = tracker.TaskCategory(category)
	task.Priority = tracker.TaskPriority(priority)
	task.Status = tracker.TaskStatus(status)
	task.AssignedTo = textPtr(assignedTo)
	task.ReportedBy = textPtr(reportedBy)
	task.CreatedAt = fromMillis(createdAt)
	task.UpdatedAt = fromMillis(updatedAt)
	task.DueDate = timePtr(dueDate)
	task.DateCompleted = timePtr(dateCompleted)
	task.EstimatedMinutes = intPtr(estimatedMinutes)
	task.ActualMinutes = intPtr(actualMinutes)
	return task, nil
}
