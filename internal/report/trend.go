package report

import (
	"fmt"
	"time"

	"github.com/mofahq/tasktracker/internal/tracker"
)

// BucketSize is the calendar unit a trend is grouped by.
type BucketSize int

const (
	BucketDay BucketSize = iota
	BucketMonth
)

// TrendPoint is one bucket of a time series.
type TrendPoint struct {
	// Period is the bucket label: 2006-01-02 for days, 2006-01 for months.
	Period string
	Count  int
}

// Trend buckets timestamps into a zero-filled, chronologically ordered
// series of exactly buckets entries starting at the calendar unit that
// contains start. Bucket boundaries are evaluated in loc.
func Trend(times []time.Time, start time.Time, buckets int, size BucketSize, loc *time.Location) ([]TrendPoint, error) {
	if buckets < 0 {
		return nil, fmt.Errorf("bucket count must not be negative, got %d", buckets)
	}
	if loc == nil {
		return nil, fmt.Errorf("location is required")
	}

	var layout string
	var step func(time.Time, int) time.Time
	switch size {
	case BucketDay:
		layout = "2006-01-02"
		step = func(t time.Time, n int) time.Time { return t.AddDate(0, 0, n) }
	case BucketMonth:
		layout = "2006-01"
		step = func(t time.Time, n int) time.Time { return t.AddDate(0, n, 0) }
	default:
		return nil, fmt.Errorf("unknown bucket size %d", size)
	}

	counts := make(map[string]int, len(times))
	for _, value := range times {
		counts[value.In(loc).Format(layout)]++
	}

	origin := start.In(loc)
	if size == BucketMonth {
		origin = time.Date(origin.Year(), origin.Month(), 1, 0, 0, 0, 0, loc)
	}

	out := make([]TrendPoint, 0, buckets)
	for i := 0; i < buckets; i++ {
		label := step(origin, i).Format(layout)
		out = append(out, TrendPoint{Period: label, Count: counts[label]})
	}
	return out, nil
}

// MonthlyReport summarizes tasks created during the current calendar month.
type MonthlyReport struct {
	// Month is the report period, e.g. "March 2025".
	Month string

	Total      int
	Completed  int
	Pending    int
	InProgress int

	// CompletionRate is Completed/Total as a percentage, 0 when Total is 0.
	CompletionRate float64

	// AvgCompletionDays is the mean whole-day latency between creation and
	// completion, averaged over completed tasks that carry both timestamps;
	// 0 when there are none.
	AvgCompletionDays float64

	PriorityDist []GroupCount
	CategoryDist []GroupCount

	// DailyCreated covers the 1st of the month through today, zero-filled.
	DailyCreated []TrendPoint
}

// BuildMonthlyReport computes the monthly report for the month containing
// now, evaluated in loc.
func BuildMonthlyReport(tasks []tracker.Task, now time.Time, loc *time.Location) (MonthlyReport, error) {
	if loc == nil {
		return MonthlyReport{}, fmt.Errorf("location is required")
	}
	local := now.In(loc)
	startOfMonth := time.Date(local.Year(), local.Month(), 1, 0, 0, 0, 0, loc)

	var monthly []tracker.Task
	for _, task := range tasks {
		if !task.CreatedAt.Before(startOfMonth) {
			monthly = append(monthly, task)
		}
	}

	out := MonthlyReport{Month: local.Format("January 2006"), Total: len(monthly)}

	var latencyDays int
	var latencyCount int
	var created []time.Time
	for _, task := range monthly {
		created = append(created, task.CreatedAt)
		switch task.Status {
		case tracker.TaskCompleted:
			out.Completed++
		case tracker.TaskPending:
			out.Pending++
		case tracker.TaskInProgress:
			out.InProgress++
		}
		if task.Status == tracker.TaskCompleted && task.DateCompleted != nil {
			latencyDays += int(task.DateCompleted.Sub(task.CreatedAt).Hours() / 24)
			latencyCount++
		}
	}

	if out.Total > 0 {
		out.CompletionRate = round2(float64(out.Completed) / float64(out.Total) * 100)
	}
	if latencyCount > 0 {
		out.AvgCompletionDays = round1(float64(latencyDays) / float64(latencyCount))
	}

	var err error
	if out.PriorityDist, err = CountTasksBy(monthly, GroupByPriority); err != nil {
		return MonthlyReport{}, err
	}
	if out.CategoryDist, err = CountTasksBy(monthly, GroupByCategory); err != nil {
		return MonthlyReport{}, err
	}

	days := local.Day()
	if out.DailyCreated, err = Trend(created, startOfMonth, days, BucketDay, loc); err != nil {
		return MonthlyReport{}, err
	}
	return out, nil
}
