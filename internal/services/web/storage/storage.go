package storage

import (
	"context"
	"errors"
	"time"

	"github.com/mofahq/tasktracker/internal/tracker"
)

// ErrNotFound indicates a requested record is missing.
var ErrNotFound = errors.New("record not found")

// TaskFilter narrows ListTasks results. Zero values mean "no constraint".
type TaskFilter struct {
	// Search matches a substring of the title or description,
	// case-insensitively.
	Search     string
	Status     tracker.TaskStatus
	Priority   tracker.TaskPriority
	Category   tracker.TaskCategory
	AssignedTo string
	CreatedBy  string
	// InvolvingUser keeps tasks the user created, was assigned, or reported.
	InvolvingUser string
	UrgentOnly    bool
	// OverdueAt keeps tasks whose due date has passed at the given instant
	// and whose status is neither completed nor cancelled.
	OverdueAt *time.Time
}

// IssueFilter narrows ListIssues results. Zero values mean "no constraint".
type IssueFilter struct {
	EquipmentID string
	Status      tracker.IssueStatus
	Severity    tracker.IssueSeverity
}

// TaskStore persists tasks.
type TaskStore interface {
	PutTask(ctx context.Context, task tracker.Task) error
	GetTask(ctx context.Context, id string) (tracker.Task, error)
	ListTasks(ctx context.Context, filter TaskFilter) ([]tracker.Task, error)
	DeleteTask(ctx context.Context, id string) error
}

// UserStore persists user accounts.
type UserStore interface {
	PutUser(ctx context.Context, user tracker.User) error
	GetUser(ctx context.Context, id string) (tracker.User, error)
	GetUserByUsername(ctx context.Context, username string) (tracker.User, error)
	ListUsers(ctx context.Context) ([]tracker.User, error)
}

// EquipmentStore persists equipment, directorates, assignments, and issues.
type EquipmentStore interface {
	PutEquipment(ctx context.Context, equipment tracker.Equipment) error
	GetEquipment(ctx context.Context, id string) (tracker.Equipment, error)
	ListEquipment(ctx context.Context) ([]tracker.Equipment, error)

	PutDirectorate(ctx context.Context, directorate tracker.Directorate) error
	ListDirectorates(ctx context.Context) ([]tracker.Directorate, error)
	// CountActiveAssignments returns the number of active device assignments
	// keyed by directorate id.
	CountActiveAssignments(ctx context.Context) (map[string]int, error)

	// AssignDevice records an active assignment, marks the equipment
	// assigned, and appends a history entry.
	AssignDevice(ctx context.Context, assignment tracker.DeviceAssignment) error
	// ReturnDevice deactivates the assignment, marks the equipment
	// available, and appends a history entry.
	ReturnDevice(ctx context.Context, assignmentID string, returnedAt time.Time) error
	ListAssignments(ctx context.Context, equipmentID string) ([]tracker.DeviceAssignment, error)
	ListDeviceHistory(ctx context.Context, equipmentID string) ([]tracker.DeviceHistory, error)

	PutIssue(ctx context.Context, issue tracker.DeviceIssue) error
	GetIssue(ctx context.Context, id string) (tracker.DeviceIssue, error)
	ListIssues(ctx context.Context, filter IssueFilter) ([]tracker.DeviceIssue, error)
	// ResolveIssue stamps the resolver and resolution time and closes the
	// issue.
	ResolveIssue(ctx context.Context, issueID string, resolvedBy string, resolvedAt time.Time) error
}

// Store is the full persistence contract for the tracker web service.
type Store interface {
	Close() error
	TaskStore
	UserStore
	EquipmentStore
}
