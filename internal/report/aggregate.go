package report

import (
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/mofahq/tasktracker/internal/tracker"
)

// GroupKey selects the task field a grouping aggregation counts by.
type GroupKey string

const (
	GroupByStatus   GroupKey = "status"
	GroupByPriority GroupKey = "priority"
	GroupByCategory GroupKey = "category"
)

// GroupCount is one bucket of a grouping aggregation.
type GroupCount struct {
	Key   string
	Label string
	Count int
}

// CountTasksBy groups tasks by the requested key and counts each distinct
// value that appears at least once. Buckets follow the enum's canonical
// order; absent values are not zero-filled.
func CountTasksBy(tasks []tracker.Task, key GroupKey) ([]GroupCount, error) {
	switch key {
	case GroupByStatus:
		counts := make(map[tracker.TaskStatus]int)
		for _, task := range tasks {
			counts[task.Status]++
		}
		var out []GroupCount
		for _, status := range tracker.TaskStatusValues() {
			if n := counts[status]; n > 0 {
				out = append(out, GroupCount{Key: string(status), Label: status.Label(), Count: n})
			}
		}
		return out, nil
	case GroupByPriority:
		counts := make(map[tracker.TaskPriority]int)
		for _, task := range tasks {
			counts[task.Priority]++
		}
		var out []GroupCount
		for _, priority := range tracker.TaskPriorityValues() {
			if n := counts[priority]; n > 0 {
				out = append(out, GroupCount{Key: string(priority), Label: priority.Label(), Count: n})
			}
		}
		return out, nil
	case GroupByCategory:
		counts := make(map[tracker.TaskCategory]int)
		for _, task := range tasks {
			counts[task.Category]++
		}
		var out []GroupCount
		for _, category := range tracker.TaskCategoryValues() {
			if n := counts[category]; n > 0 {
				out = append(out, GroupCount{Key: string(category), Label: category.Label(), Count: n})
			}
		}
		return out, nil
	}
	return nil, fmt.Errorf("unknown group key %q", key)
}

// CountEquipmentByStatus groups devices by availability status.
func CountEquipmentByStatus(equipment []tracker.Equipment) []GroupCount {
	counts := make(map[tracker.EquipmentStatus]int)
	for _, device := range equipment {
		counts[device.Status]++
	}
	var out []GroupCount
	for _, status := range tracker.EquipmentStatusValues() {
		if n := counts[status]; n > 0 {
			out = append(out, GroupCount{Key: string(status), Label: status.Label(), Count: n})
		}
	}
	return out
}

// CountUsersByDepartment groups users by department.
func CountUsersByDepartment(users []tracker.User) []GroupCount {
	counts := make(map[tracker.Department]int)
	for _, user := range users {
		counts[user.Department]++
	}
	var out []GroupCount
	for _, dept := range tracker.DepartmentValues() {
		if n := counts[dept]; n > 0 {
			out = append(out, GroupCount{Key: string(dept), Label: dept.Label(), Count: n})
		}
	}
	return out
}

// UserStats summarizes one user's task load.
//
// Total counts tasks where the user is creator, assignee, or reporter,
// deduplicated by task id. The status sub-counts are computed over the same
// set independently and are not required to sum to Total.
type UserStats struct {
	User tracker.User

	Total      int
	Completed  int
	Pending    int
	InProgress int
	Overdue    int

	// CompletionRate is Completed/Total as a percentage in [0, 100],
	// 0 when the user has no tasks.
	CompletionRate float64
}

// UserTaskStats derives task statistics for one user.
func UserTaskStats(user tracker.User, tasks []tracker.Task, now time.Time) UserStats {
	stats := UserStats{User: user}
	seen := make(map[string]bool)
	for _, task := range tasks {
		if !task.InvolvesUser(user.ID) || seen[task.ID] {
			continue
		}
		seen[task.ID] = true

		stats.Total++
		switch task.Status {
		case tracker.TaskCompleted:
			stats.Completed++
		case tracker.TaskPending:
			stats.Pending++
		case tracker.TaskInProgress:
			stats.InProgress++
		}
		if task.Overdue(now) {
			stats.Overdue++
		}
	}
	if stats.Total > 0 {
		stats.CompletionRate = round2(float64(stats.Completed) / float64(stats.Total) * 100)
	}
	return stats
}

// TeamPerformance computes per-user statistics for every user with at least
// one task, ordered by completed count descending. Ties break on username
// so the ordering is stable across runs.
func TeamPerformance(users []tracker.User, tasks []tracker.Task, now time.Time) []UserStats {
	var out []UserStats
	for _, user := range users {
		stats := UserTaskStats(user, tasks, now)
		if stats.Total == 0 {
			continue
		}
		out = append(out, stats)
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Completed != out[j].Completed {
			return out[i].Completed > out[j].Completed
		}
		return out[i].User.Username < out[j].User.Username
	})
	return out
}

// Performer is a user ranked by recent completions.
type Performer struct {
	User            tracker.User
	RecentCompleted int
}

// TopPerformers ranks users by tasks completed at or after since, keeping at
// most limit entries and dropping users with no recent completions.
func TopPerformers(users []tracker.User, tasks []tracker.Task, since time.Time, limit int) []Performer {
	var out []Performer
	for _, user := range users {
		count := 0
		for _, task := range tasks {
			if !task.InvolvesUser(user.ID) || task.Status != tracker.TaskCompleted {
				continue
			}
			if task.DateCompleted == nil || task.DateCompleted.Before(since) {
				continue
			}
			count++
		}
		if count > 0 {
			out = append(out, Performer{User: user, RecentCompleted: count})
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].RecentCompleted != out[j].RecentCompleted {
			return out[i].RecentCompleted > out[j].RecentCompleted
		}
		return out[i].User.Username < out[j].User.Username
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}

func round1(value float64) float64 {
	return math.Round(value*10) / 10
}

func round2(value float64) float64 {
	return math.Round(value*100) / 100
}
