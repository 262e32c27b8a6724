package report

import (
	"encoding/csv"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/mofahq/tasktracker/internal/tracker"
)

// exportTimestampFormat renders timestamps in exported files.
const exportTimestampFormat = "2006-01-02 15:04"

// unassignedSentinel marks tasks with no assignee in exports.
const unassignedSentinel = "Unassigned"

// Column pairs a header with an accessor producing a cell's display value.
type Column[T any] struct {
	Header string
	Value  func(T) string
}

// Export is a serialized tabular report ready to hand to a transport.
type Export struct {
	Filename    string
	ContentType string
	Body        string
}

// WriteTable serializes records against a column schema: one header row,
// then one row per record.
func WriteTable[T any](records []T, schema []Column[T]) (string, error) {
	if len(schema) == 0 {
		return "", fmt.Errorf("column schema is required")
	}

	var buf strings.Builder
	writer := csv.NewWriter(&buf)

	headers := make([]string, len(schema))
	for i, column := range schema {
		headers[i] = column.Header
	}
	if err := writer.Write(headers); err != nil {
		return "", fmt.Errorf("write header row: %w", err)
	}

	row := make([]string, len(schema))
	for _, record := range records {
		for i, column := range schema {
			row[i] = column.Value(record)
		}
		if err := writer.Write(row); err != nil {
			return "", fmt.Errorf("write record row: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return "", fmt.Errorf("flush csv: %w", err)
	}
	return buf.String(), nil
}

// ExportTasks serializes tasks with related user names resolved from users.
func ExportTasks(tasks []tracker.Task, users map[string]tracker.User) (Export, error) {
	schema := []Column[tracker.Task]{
		{Header: "ID", Value: func(t tracker.Task) string { return t.ID }},
		{Header: "Title", Value: func(t tracker.Task) string { return t.Title }},
		{Header: "Description", Value: func(t tracker.Task) string { return t.Description }},
		{Header: "Status", Value: func(t tracker.Task) string { return t.Status.Label() }},
		{Header: "Priority", Value: func(t tracker.Task) string { return t.Priority.Label() }},
		{Header: "Category", Value: func(t tracker.Task) string { return t.Category.Label() }},
		{Header: "Assigned To", Value: func(t tracker.Task) string {
			if t.AssignedTo == nil {
				return unassignedSentinel
			}
			return userFullName(users, *t.AssignedTo)
		}},
		{Header: "Created By", Value: func(t tracker.Task) string {
			return userFullName(users, t.CreatedBy)
		}},
		{Header: "Due Date", Value: func(t tracker.Task) string { return formatOptionalTime(t.DueDate) }},
		{Header: "Created At", Value: func(t tracker.Task) string { return t.CreatedAt.Format(exportTimestampFormat) }},
		{Header: "Completed At", Value: func(t tracker.Task) string { return formatOptionalTime(t.DateCompleted) }},
	}

	body, err := WriteTable(tasks, schema)
	if err != nil {
		return Export{}, fmt.Errorf("export tasks: %w", err)
	}
	return Export{Filename: "tasks_export.csv", ContentType: "text/csv", Body: body}, nil
}

// ExportUsers serializes user account records.
func ExportUsers(users []tracker.User) (Export, error) {
	schema := []Column[tracker.User]{
		{Header: "ID", Value: func(u tracker.User) string { return u.ID }},
		{Header: "Username", Value: func(u tracker.User) string { return u.Username }},
		{Header: "First Name", Value: func(u tracker.User) string { return u.FirstName }},
		{Header: "Last Name", Value: func(u tracker.User) string { return u.LastName }},
		{Header: "Email", Value: func(u tracker.User) string { return u.Email }},
		{Header: "Department", Value: func(u tracker.User) string { return u.Department.Label() }},
		{Header: "Is Staff", Value: func(u tracker.User) string { return strconv.FormatBool(u.IsStaff) }},
		{Header: "Is Active", Value: func(u tracker.User) string { return strconv.FormatBool(u.IsActive) }},
		{Header: "Date Joined", Value: func(u tracker.User) string { return u.DateJoined.Format(exportTimestampFormat) }},
		{Header: "Last Login", Value: func(u tracker.User) string { return formatOptionalTime(u.LastLogin) }},
	}

	body, err := WriteTable(users, schema)
	if err != nil {
		return Export{}, fmt.Errorf("export users: %w", err)
	}
	return Export{Filename: "users_export.csv", ContentType: "text/csv", Body: body}, nil
}

// ExportPerformance serializes per-user performance statistics.
func ExportPerformance(stats []UserStats) (Export, error) {
	schema := []Column[UserStats]{
		{Header: "User", Value: func(s UserStats) string { return s.User.FullName() }},
		{Header: "Total Tasks", Value: func(s UserStats) string { return strconv.Itoa(s.Total) }},
		{Header: "Completed Tasks", Value: func(s UserStats) string { return strconv.Itoa(s.Completed) }},
		{Header: "Pending Tasks", Value: func(s UserStats) string { return strconv.Itoa(s.Pending) }},
		{Header: "In Progress Tasks", Value: func(s UserStats) string { return strconv.Itoa(s.InProgress) }},
		{Header: "Overdue Tasks", Value: func(s UserStats) string { return strconv.Itoa(s.Overdue) }},
		{Header: "Completion Rate (%)", Value: func(s UserStats) string {
			return strconv.FormatFloat(s.CompletionRate, 'f', -1, 64)
		}},
	}

	body, err := WriteTable(stats, schema)
	if err != nil {
		return Export{}, fmt.Errorf("export performance: %w", err)
	}
	return Export{Filename: "performance_export.csv", ContentType: "text/csv", Body: body}, nil
}

func formatOptionalTime(value *time.Time) string {
	if value == nil {
		return ""
	}
	return value.Format(exportTimestampFormat)
}

func userFullName(users map[string]tracker.User, userID string) string {
	user, ok := users[userID]
	if !ok {
		return ""
	}
	return user.FullName()
}
