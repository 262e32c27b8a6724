package tracker

import (
	"fmt"
	"time"
)

// TaskStatus is the lifecycle state of a task.
type TaskStatus string

const (
	TaskPending    TaskStatus = "pending"
	TaskInProgress TaskStatus = "in_progress"
	TaskCompleted  TaskStatus = "completed"
	TaskCancelled  TaskStatus = "cancelled"
	TaskOnHold     TaskStatus = "on_hold"
)

// TaskStatusValues lists task statuses in display order.
func TaskStatusValues() []TaskStatus {
	return []TaskStatus{TaskPending, TaskInProgress, TaskCompleted, TaskCancelled, TaskOnHold}
}

// Label returns the display label for a task status.
func (s TaskStatus) Label() string {
	switch s {
	case TaskPending:
		return "Pending"
	case TaskInProgress:
		return "In Progress"
	case TaskCompleted:
		return "Completed"
	case TaskCancelled:
		return "Cancelled"
	case TaskOnHold:
		return "On Hold"
	}
	return string(s)
}

// ParseTaskStatus validates a stored status code.
func ParseTaskStatus(value string) (TaskStatus, error) {
	for _, status := range TaskStatusValues() {
		if string(status) == value {
			return status, nil
		}
	}
	return "", fmt.Errorf("unknown task status %q", value)
}

// TaskPriority ranks how urgently a task needs attention.
type TaskPriority string

const (
	PriorityLow    TaskPriority = "low"
	PriorityMedium TaskPriority = "medium"
	PriorityHigh   TaskPriority = "high"
	PriorityUrgent TaskPriority = "urgent"
)

// TaskPriorityValues lists task priorities from lowest to highest.
func TaskPriorityValues() []TaskPriority {
	return []TaskPriority{PriorityLow, PriorityMedium, PriorityHigh, PriorityUrgent}
}

// Label returns the display label for a task priority.
func (p TaskPriority) Label() string {
	switch p {
	case PriorityLow:
		return "Low"
	case PriorityMedium:
		return "Medium"
	case PriorityHigh:
		return "High"
	case PriorityUrgent:
		return "Urgent"
	}
	return string(p)
}

// ParseTaskPriority validates a stored priority code.
func ParseTaskPriority(value string) (TaskPriority, error) {
	for _, priority := range TaskPriorityValues() {
		if string(priority) == value {
			return priority, nil
		}
	}
	return "", fmt.Errorf("unknown task priority %q", value)
}

// TaskCategory classifies a task by the office function it belongs to.
type TaskCategory string

const (
	CategoryAdministrative TaskCategory = "administrative"
	CategoryConsular       TaskCategory = "consular"
	CategoryProtocol       TaskCategory = "protocol"
	CategoryEconomic       TaskCategory = "economic"
	CategoryPolitical      TaskCategory = "political"
	CategoryLegal          TaskCategory = "legal"
	CategorySecurity       TaskCategory = "security"
	CategoryIT             TaskCategory = "it"
	CategoryFinance        TaskCategory = "finance"
	CategoryHR             TaskCategory = "hr"
	CategoryOther          TaskCategory = "other"
)

// TaskCategoryValues lists task categories in display order.
func TaskCategoryValues() []TaskCategory {
	return []TaskCategory{
		CategoryAdministrative,
		CategoryConsular,
		CategoryProtocol,
		CategoryEconomic,
		CategoryPolitical,
		CategoryLegal,
		CategorySecurity,
		CategoryIT,
		CategoryFinance,
		CategoryHR,
		CategoryOther,
	}
}

// Label returns the display label for a task category.
func (c TaskCategory) Label() string {
	switch c {
	case CategoryAdministrative:
		return "Administrative"
	case CategoryConsular:
		return "Consular"
	case CategoryProtocol:
		return "Protocol"
	case CategoryEconomic:
		return "Economic"
	case CategoryPolitical:
		return "Political"
	case CategoryLegal:
		return "Legal"
	case CategorySecurity:
		return "Security"
	case CategoryIT:
		return "Information Technology"
	case CategoryFinance:
		return "Finance"
	case CategoryHR:
		return "Human Resources"
	case CategoryOther:
		return "Other"
	}
	return string(c)
}

// ParseTaskCategory validates a stored category code.
func ParseTaskCategory(value string) (TaskCategory, error) {
	for _, category := range TaskCategoryValues() {
		if string(category) == value {
			return category, nil
		}
	}
	return "", fmt.Errorf("unknown task category %q", value)
}

// Task is a unit of office work tracked through its lifecycle.
//
// CreatedBy is always set. AssignedTo and ReportedBy are optional user
// references. DateCompleted is stamped when the task first reaches the
// completed status and is deliberately not cleared if the task later
// regresses to an earlier status.
type Task struct {
	ID          string
	Title       string
	Description string
	Category    TaskCategory
	Priority    TaskPriority
	Status      TaskStatus

	CreatedBy  string
	AssignedTo *string
	ReportedBy *string

	CreatedAt     time.Time
	UpdatedAt     time.Time
	DueDate       *time.Time
	DateCompleted *time.Time

	RoomNumber       string
	EstimatedMinutes *int
	ActualMinutes    *int

	IsUrgent bool
}

// Overdue reports whether the task's due date has passed without the task
// reaching a terminal status.
func (t Task) Overdue(now time.Time) bool {
	if t.DueDate == nil {
		return false
	}
	if t.Status == TaskCompleted || t.Status == TaskCancelled {
		return false
	}
	return t.DueDate.Before(now)
}

// InvolvesUser reports whether the user created, is assigned to, or
// reported the task.
func (t Task) InvolvesUser(userID string) bool {
	if t.CreatedBy == userID {
		return true
	}
	if t.AssignedTo != nil && *t.AssignedTo == userID {
		return true
	}
	if t.ReportedBy != nil && *t.ReportedBy == userID {
		return true
	}
	return false
}
