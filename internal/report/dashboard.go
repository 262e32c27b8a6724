package report

import (
	"sort"
	"time"

	"github.com/mofahq/tasktracker/internal/tracker"
)

// dashboardRecentTasks caps the recent-task list on the dashboard.
const dashboardRecentTasks = 10

// trendMonths is how many months dashboards chart.
const trendMonths = 6

// Dashboard aggregates one task collection for the landing dashboard.
type Dashboard struct {
	TotalTasks      int
	PendingTasks    int
	InProgressTasks int
	CompletedTasks  int
	OverdueTasks    int
	UrgentTasks     int

	RecentTasks []tracker.Task

	TasksByStatus   []GroupCount
	TasksByPriority []GroupCount
	TasksByCategory []GroupCount

	// MonthlyCompleted charts completions over the trailing six months.
	MonthlyCompleted []TrendPoint

	CompletionPercentage float64
	InProgressPercentage float64
	PendingPercentage    float64
	OverduePercentage    float64

	AvgEstimatedMinutes int
	AvgActualMinutes    int
	AvgEstimatedHours   float64
	AvgActualHours      float64
}

// BuildDashboard computes dashboard statistics over the supplied tasks.
func BuildDashboard(tasks []tracker.Task, now time.Time, loc *time.Location) (Dashboard, error) {
	out := Dashboard{TotalTasks: len(tasks)}

	var completedAt []time.Time
	var estimatedSum, estimatedCount, actualSum, actualCount int
	for _, task := range tasks {
		switch task.Status {
		case tracker.TaskPending:
			out.PendingTasks++
		case tracker.TaskInProgress:
			out.InProgressTasks++
		case tracker.TaskCompleted:
			out.CompletedTasks++
		}
		if task.Overdue(now) {
			out.OverdueTasks++
		}
		if task.IsUrgent && (task.Status == tracker.TaskPending || task.Status == tracker.TaskInProgress) {
			out.UrgentTasks++
		}
		if task.Status == tracker.TaskCompleted && task.DateCompleted != nil {
			completedAt = append(completedAt, *task.DateCompleted)
		}
		if task.EstimatedMinutes != nil {
			estimatedSum += *task.EstimatedMinutes
			estimatedCount++
		}
		if task.ActualMinutes != nil {
			actualSum += *task.ActualMinutes
			actualCount++
		}
	}

	recent := make([]tracker.Task, len(tasks))
	copy(recent, tasks)
	sort.SliceStable(recent, func(i, j int) bool {
		return recent[i].CreatedAt.After(recent[j].CreatedAt)
	})
	if len(recent) > dashboardRecentTasks {
		recent = recent[:dashboardRecentTasks]
	}
	out.RecentTasks = recent

	var err error
	if out.TasksByStatus, err = CountTasksBy(tasks, GroupByStatus); err != nil {
		return Dashboard{}, err
	}
	if out.TasksByPriority, err = CountTasksBy(tasks, GroupByPriority); err != nil {
		return Dashboard{}, err
	}
	if out.TasksByCategory, err = CountTasksBy(tasks, GroupByCategory); err != nil {
		return Dashboard{}, err
	}

	trendStart := now.AddDate(0, -(trendMonths - 1), 0)
	if out.MonthlyCompleted, err = Trend(completedAt, trendStart, trendMonths, BucketMonth, loc); err != nil {
		return Dashboard{}, err
	}

	if out.TotalTasks > 0 {
		total := float64(out.TotalTasks)
		out.CompletionPercentage = round1(float64(out.CompletedTasks) / total * 100)
		out.InProgressPercentage = round1(float64(out.InProgressTasks) / total * 100)
		out.PendingPercentage = round1(float64(out.PendingTasks) / total * 100)
		out.OverduePercentage = round1(float64(out.OverdueTasks) / total * 100)
	}

	if estimatedCount > 0 {
		avg := float64(estimatedSum) / float64(estimatedCount)
		out.AvgEstimatedMinutes = int(avg)
		out.AvgEstimatedHours = round1(avg / 60)
	}
	if actualCount > 0 {
		avg := float64(actualSum) / float64(actualCount)
		out.AvgActualMinutes = int(avg)
		out.AvgActualHours = round1(avg / 60)
	}
	return out, nil
}

// TaskAnalytics aggregates the full task collection for the admin
// analytics report.
type TaskAnalytics struct {
	TotalTasks      int
	CompletedTasks  int
	PendingTasks    int
	InProgressTasks int
	OverdueTasks    int

	PriorityStats []GroupCount
	CategoryStats []GroupCount

	// MonthlyCreated charts task creation over the trailing six months.
	MonthlyCreated []TrendPoint
}

// BuildTaskAnalytics computes the task analytics report.
func BuildTaskAnalytics(tasks []tracker.Task, now time.Time, loc *time.Location) (TaskAnalytics, error) {
	out := TaskAnalytics{TotalTasks: len(tasks)}

	var created []time.Time
	for _, task := range tasks {
		switch task.Status {
		case tracker.TaskCompleted:
			out.CompletedTasks++
		case tracker.TaskPending:
			out.PendingTasks++
		case tracker.TaskInProgress:
			out.InProgressTasks++
		}
		if task.Overdue(now) {
			out.OverdueTasks++
		}
		created = append(created, task.CreatedAt)
	}

	var err error
	if out.PriorityStats, err = CountTasksBy(tasks, GroupByPriority); err != nil {
		return TaskAnalytics{}, err
	}
	if out.CategoryStats, err = CountTasksBy(tasks, GroupByCategory); err != nil {
		return TaskAnalytics{}, err
	}

	trendStart := now.AddDate(0, -(trendMonths - 1), 0)
	if out.MonthlyCreated, err = Trend(created, trendStart, trendMonths, BucketMonth, loc); err != nil {
		return TaskAnalytics{}, err
	}
	return out, nil
}
