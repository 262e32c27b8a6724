package report

import (
	"strings"
	"time"

	"github.com/mofahq/tasktracker/internal/tracker"
)

// TaskPredicate reports whether a task matches a filter condition.
type TaskPredicate func(tracker.Task) bool

// StatusIn matches tasks whose status is one of the given values.
func StatusIn(statuses ...tracker.TaskStatus) TaskPredicate {
	return func(task tracker.Task) bool {
		for _, status := range statuses {
			if task.Status == status {
				return true
			}
		}
		return false
	}
}

// DueBefore matches tasks with a due date strictly before t.
func DueBefore(t time.Time) TaskPredicate {
	return func(task tracker.Task) bool {
		return task.DueDate != nil && task.DueDate.Before(t)
	}
}

// TitleContains matches tasks whose title contains the substring,
// case-insensitively.
func TitleContains(substring string) TaskPredicate {
	needle := strings.ToLower(substring)
	return func(task tracker.Task) bool {
		return strings.Contains(strings.ToLower(task.Title), needle)
	}
}

// AssignedTo matches tasks assigned to the given user.
func AssignedTo(userID string) TaskPredicate {
	return func(task tracker.Task) bool {
		return task.AssignedTo != nil && *task.AssignedTo == userID
	}
}

// InvolvingUser matches tasks the user created, is assigned to, or reported.
func InvolvingUser(userID string) TaskPredicate {
	return func(task tracker.Task) bool {
		return task.InvolvesUser(userID)
	}
}

// FilterTasks keeps tasks matching every predicate.
func FilterTasks(tasks []tracker.Task, predicates ...TaskPredicate) []tracker.Task {
	var out []tracker.Task
	for _, task := range tasks {
		matched := true
		for _, predicate := range predicates {
			if !predicate(task) {
				matched = false
				break
			}
		}
		if matched {
			out = append(out, task)
		}
	}
	return out
}
