package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/mofahq/tasktracker/internal/services/web/storage"
	"github.com/mofahq/tasktracker/internal/tracker"
)

const issueColumns = `id, equipment_id, assignment_id, title, description,
	severity, status, reported_by, reported_at, resolved_by, resolved_at,
	resolution_notes, created_at, updated_at`

// PutIssue upserts one device issue.
func (s *Store) PutIssue(ctx context.Context, issue tracker.DeviceIssue) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s == nil || s.sqlDB == nil {
		return fmt.Errorf("storage is not configured")
	}
	if strings.TrimSpace(issue.ID) == "" {
		return fmt.Errorf("issue id is required")
	}
	if strings.TrimSpace(issue.EquipmentID) == "" {
		return fmt.Errorf("equipment id is required")
	}
	if strings.TrimSpace(issue.Title) == "" {
		return fmt.Errorf("issue title is required")
	}
	if _, err := tracker.ParseIssueSeverity(string(issue.Severity)); err != nil {
		return err
	}
	if _, err := tracker.ParseIssueStatus(string(issue.Status)); err != nil {
		return err
	}

	_, err := s.sqlDB.ExecContext(
		ctx,
		`INSERT INTO device_issues (`+issueColumns+`)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET
		   title = excluded.title,
		   description = excluded.description,
		   severity = excluded.severity,
		   status = excluded.status,
		   resolved_by = excluded.resolved_by,
		   resolved_at = excluded.resolved_at,
		   resolution_notes = excluded.resolution_notes,
		   updated_at = excluded.updated_at`,
		issue.ID,
		issue.EquipmentID,
		nullableText(issue.AssignmentID),
		issue.Title,
		issue.Description,
		string(issue.Severity),
		string(issue.Status),
		nullableText(issue.ReportedBy),
		toMillis(issue.ReportedAt),
		nullableText(issue.ResolvedBy),
		nullableMillis(issue.ResolvedAt),
		issue.ResolutionNotes,
		toMillis(issue.CreatedAt),
		toMillis(issue.UpdatedAt),
	)
	if err != nil {
		return fmt.Errorf("put issue: %w", err)
	}
	return nil
}

// GetIssue loads one device issue by id.
func (s *Store) GetIssue(ctx context.Context, id string) (tracker.DeviceIssue, error) {
	if err := ctx.Err(); err != nil {
		return tracker.DeviceIssue{}, err
	}
	if s == nil || s.sqlDB == nil {
		return tracker.DeviceIssue{}, fmt.Errorf("storage is not configured")
	}
	id = strings.TrimSpace(id)
	if id == "" {
		return tracker.DeviceIssue{}, fmt.Errorf("issue id is required")
	}

	row := s.sqlDB.QueryRowContext(
		ctx,
		`SELECT `+issueColumns+` FROM device_issues WHERE id = ?`,
		id,
	)
	issue, err := scanIssue(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return tracker.DeviceIssue{}, storage.ErrNotFound
		}
		return tracker.DeviceIssue{}, fmt.Errorf("get issue: %w", err)
	}
	return issue, nil
}

// ListIssues returns issues matching the filter, newest first.
func (s *Store) ListIssues(ctx context.Context, filter storage.IssueFilter) ([]tracker.DeviceIssue, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if s == nil || s.sqlDB == nil {
		return nil, fmt.Errorf("storage is not configured")
	}

	query := `SELECT ` + issueColumns + ` FROM device_issues`
	var conds []string
	var args []any

	if filter.EquipmentID != "" {
		conds = append(conds, "equipment_id = ?")
		args = append(args, filter.EquipmentID)
	}
	if filter.Status != "" {
		conds = append(conds, "status = ?")
		args = append(args, string(filter.Status))
	}
	if filter.Severity != "" {
		conds = append(conds, "severity = ?")
		args = append(args, string(filter.Severity))
	}

	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}
	query += " ORDER BY reported_at DESC, id ASC"

	rows, err := s.sqlDB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list issues: %w", err)
	}
	defer rows.Close()

	var issues []tracker.DeviceIssue
	for rows.Next() {
		issue, err := scanIssue(rows)
		if err != nil {
			return nil, fmt.Errorf("list issues: %w", err)
		}
		issues = append(issues, issue)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list issues: %w", err)
	}
	return issues, nil
}

// ResolveIssue stamps the resolver and resolution time and closes the issue.
func (s *Store) ResolveIssue(ctx context.Context, issueID string, resolvedBy string, resolvedAt time.Time) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s == nil || s.sqlDB == nil {
		return fmt.Errorf("storage is not configured")
	}
	issueID = strings.TrimSpace(issueID)
	if issueID == "" {
		return fmt.Errorf("issue id is required")
	}
	resolvedBy = strings.TrimSpace(resolvedBy)
	if resolvedBy == "" {
		return fmt.Errorf("resolver is required")
	}

	result, err := s.sqlDB.ExecContext(
		ctx,
		`UPDATE device_issues
		 SET status = ?, resolved_by = ?, resolved_at = ?, updated_at = ?
		 WHERE id = ?`,
		string(tracker.IssueResolved),
		resolvedBy,
		toMillis(resolvedAt),
		toMillis(resolvedAt),
		issueID,
	)
	if err != nil {
		return fmt.Errorf("resolve issue: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("resolve issue: %w", err)
	}
	if affected == 0 {
		return storage.ErrNotFound
	}
	return nil
}

func scanIssue(row rowScanner) (tracker.DeviceIssue, error) {
	var (
		issue        tracker.DeviceIssue
		assignmentID sql.NullString
		severity     string
		status       string
		reportedBy   sql.NullString
		reportedAt   int64
		resolvedBy   sql.NullString
		resolvedAt   sql.NullInt64
		createdAt    int64
		updatedAt    int64
	)
	if err := row.Scan(
		&issue.ID,
		&issue.EquipmentID,
		&assignmentID,
		&issue.Title,
		&issue.Description,
		&severity,
		&status,
		&reportedBy,
		&reportedAt,
		&resolvedBy,
		&resolvedAt,
		&issue.ResolutionNotes,
		&createdAt,
		&updatedAt,
	); err != nil {
		return tracker.DeviceIssue{}, err
	}
	issue.AssignmentID = textPtr(assignmentID)
	issue.Severity = tracker.IssueSeverity(severity)
	issue.Status = tracker.IssueStatus(status)
	issue.ReportedBy = textPtr(reportedBy)
	issue.ReportedAt = fromMillis(reportedAt)
	issue.ResolvedBy = textPtr(resolvedBy)
	issue.ResolvedAt = timePtr(resolvedAt)
	issue.CreatedAt = fromMillis(createdAt)
	issue.UpdatedAt = fromMillis(updatedAt)
	return issue, nil
}
