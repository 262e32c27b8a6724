package report

import (
	"strconv"
	"testing"
	"time"

	"github.com/mofahq/tasktracker/internal/tracker"
)

var testNow = time.Date(2025, time.March, 15, 12, 0, 0, 0, time.UTC)

func strPtr(s string) *string { return &s }

func timePtr(t time.Time) *time.Time { return &t }

func makeTask(id string, status tracker.TaskStatus) tracker.Task {
	return tracker.Task{
		ID:        id,
		Title:     "Task " + id,
		Category:  tracker.CategoryOther,
		Priority:  tracker.PriorityMedium,
		Status:    status,
		CreatedBy: "creator",
		CreatedAt: testNow.AddDate(0, 0, -7),
	}
}

func TestCountTasksByStatusSumsToCollectionSize(t *testing.T) {
	t.Parallel()

	statuses := []tracker.TaskStatus{
		tracker.TaskPending, tracker.TaskPending,
		tracker.TaskInProgress,
		tracker.TaskCompleted, tracker.TaskCompleted, tracker.TaskCompleted,
		tracker.TaskCancelled,
		tracker.TaskOnHold,
	}
	var tasks []tracker.Task
	for i, status := range statuses {
		tasks = append(tasks, makeTask(strconv.Itoa(i), status))
	}

	counts, err := CountTasksBy(tasks, GroupByStatus)
	if err != nil {
		t.Fatalf("CountTasksBy() error = %v", err)
	}

	sum := 0
	for _, bucket := range counts {
		sum += bucket.Count
	}
	if sum != len(tasks) {
		t.Fatalf("status counts sum = %d, want %d", sum, len(tasks))
	}
}

func TestCountTasksByOmitsAbsentValues(t *testing.T) {
	t.Parallel()

	tasks := []tracker.Task{
		makeTask("1", tracker.TaskPending),
		makeTask("2", tracker.TaskPending),
	}
	counts, err := CountTasksBy(tasks, GroupByStatus)
	if err != nil {
		t.Fatalf("CountTasksBy() error = %v", err)
	}
	if len(counts) != 1 {
		t.Fatalf("bucket count = %d, want 1", len(counts))
	}
	if counts[0].Key != "pending" || counts[0].Count != 2 {
		t.Fatalf("bucket = %+v, want pending=2", counts[0])
	}
	if counts[0].Label != "Pending" {
		t.Fatalf("label = %q, want %q", counts[0].Label, "Pending")
	}
}

func TestCountTasksByRejectsUnknownKey(t *testing.T) {
	t.Parallel()

	if _, err := CountTasksBy(nil, GroupKey("department")); err == nil {
		t.Fatal("expected error for unknown group key")
	}
}

func TestCountTasksByEmptyInput(t *testing.T) {
	t.Parallel()

	counts, err := CountTasksBy(nil, GroupByPriority)
	if err != nil {
		t.Fatalf("CountTasksBy() error = %v", err)
	}
	if len(counts) != 0 {
		t.Fatalf("bucket count = %d, want 0", len(counts))
	}
}

func TestUserTaskStatsUnionCountsTaskOnce(t *testing.T) {
	t.Parallel()

	user := tracker.User{ID: "u1", Username: "amara"}
	task := makeTask("t1", tracker.TaskPending)
	task.CreatedBy = "u1"
	task.AssignedTo = strPtr("u1")
	task.ReportedBy = strPtr("u1")

	stats := UserTaskStats(user, []tracker.Task{task}, testNow)
	if stats.Total != 1 {
		t.Fatalf("Total = %d, want 1", stats.Total)
	}
	if stats.Pending != 1 {
		t.Fatalf("Pending = %d, want 1", stats.Pending)
	}
}

func TestUserTaskStatsCompletionRateZeroSafe(t *testing.T) {
	t.Parallel()

	user := tracker.User{ID: "u1", Username: "amara"}
	stats := UserTaskStats(user, nil, testNow)
	if stats.CompletionRate != 0 {
		t.Fatalf("CompletionRate = %v, want 0", stats.CompletionRate)
	}
}

func TestUserTaskStatsCompletionRateBounds(t *testing.T) {
	t.Parallel()

	user := tracker.User{ID: "u1", Username: "amara"}
	var tasks []tracker.Task
	for i := 0; i < 3; i++ {
		task := makeTask(strconv.Itoa(i), tracker.TaskCompleted)
		task.AssignedTo = strPtr("u1")
		tasks = append(tasks, task)
	}

	stats := UserTaskStats(user, tasks, testNow)
	if stats.CompletionRate != 100 {
		t.Fatalf("CompletionRate = %v, want 100", stats.CompletionRate)
	}

	tasks = append(tasks, func() tracker.Task {
		task := makeTask("3", tracker.TaskPending)
		task.AssignedTo = strPtr("u1")
		return task
	}())
	stats = UserTaskStats(user, tasks, testNow)
	if stats.CompletionRate != 75 {
		t.Fatalf("CompletionRate = %v, want 75", stats.CompletionRate)
	}
	if stats.CompletionRate < 0 || stats.CompletionRate > 100 {
		t.Fatalf("CompletionRate = %v outside [0, 100]", stats.CompletionRate)
	}
}

func TestUserTaskStatsCountsOverdue(t *testing.T) {
	t.Parallel()

	user := tracker.User{ID: "u1", Username: "amara"}
	overdue := makeTask("t1", tracker.TaskInProgress)
	overdue.AssignedTo = strPtr("u1")
	overdue.DueDate = timePtr(testNow.AddDate(0, 0, -2))
	onTime := makeTask("t2", tracker.TaskPending)
	onTime.AssignedTo = strPtr("u1")
	onTime.DueDate = timePtr(testNow.AddDate(0, 0, 2))

	stats := UserTaskStats(user, []tracker.Task{overdue, onTime}, testNow)
	if stats.Overdue != 1 {
		t.Fatalf("Overdue = %d, want 1", stats.Overdue)
	}
}

func TestTeamPerformanceDropsIdleUsersAndSorts(t *testing.T) {
	t.Parallel()

	users := []tracker.User{
		{ID: "u1", Username: "amara"},
		{ID: "u2", Username: "kofi"},
		{ID: "u3", Username: "idle"},
	}
	var tasks []tracker.Task
	for i := 0; i < 2; i++ {
		task := makeTask("a"+strconv.Itoa(i), tracker.TaskCompleted)
		task.AssignedTo = strPtr("u1")
		tasks = append(tasks, task)
	}
	for i := 0; i < 3; i++ {
		task := makeTask("k"+strconv.Itoa(i), tracker.TaskCompleted)
		task.AssignedTo = strPtr("u2")
		tasks = append(tasks, task)
	}

	stats := TeamPerformance(users, tasks, testNow)
	if len(stats) != 2 {
		t.Fatalf("len(stats) = %d, want 2", len(stats))
	}
	if stats[0].User.ID != "u2" {
		t.Fatalf("stats[0].User.ID = %q, want %q", stats[0].User.ID, "u2")
	}
	if stats[1].User.ID != "u1" {
		t.Fatalf("stats[1].User.ID = %q, want %q", stats[1].User.ID, "u1")
	}
}

func TestTopPerformersWindowAndLimit(t *testing.T) {
	t.Parallel()

	users := []tracker.User{
		{ID: "u1", Username: "amara"},
		{ID: "u2", Username: "kofi"},
	}
	since := testNow.AddDate(0, 0, -30)

	recent := makeTask("t1", tracker.TaskCompleted)
	recent.AssignedTo = strPtr("u1")
	recent.DateCompleted = timePtr(testNow.AddDate(0, 0, -5))

	stale := makeTask("t2", tracker.TaskCompleted)
	stale.AssignedTo = strPtr("u2")
	stale.DateCompleted = timePtr(testNow.AddDate(0, 0, -45))

	performers := TopPerformers(users, []tracker.Task{recent, stale}, since, 5)
	if len(performers) != 1 {
		t.Fatalf("len(performers) = %d, want 1", len(performers))
	}
	if performers[0].User.ID != "u1" {
		t.Fatalf("performers[0].User.ID = %q, want %q", performers[0].User.ID, "u1")
	}
	if performers[0].RecentCompleted != 1 {
		t.Fatalf("RecentCompleted = %d, want 1", performers[0].RecentCompleted)
	}
}

func TestCountUsersByDepartment(t *testing.T) {
	t.Parallel()

	users := []tracker.User{
		{ID: "u1", Department: tracker.DeptIT},
		{ID: "u2", Department: tracker.DeptIT},
		{ID: "u3", Department: tracker.DeptFinance},
	}
	counts := CountUsersByDepartment(users)
	if len(counts) != 2 {
		t.Fatalf("bucket count = %d, want 2", len(counts))
	}
	// Finance precedes IT in canonical department order.
	if counts[0].Key != "Finance" || counts[0].Count != 1 {
		t.Fatalf("counts[0] = %+v, want Finance=1", counts[0])
	}
	if counts[1].Key != "IT" || counts[1].Count != 2 {
		t.Fatalf("counts[1] = %+v, want IT=2", counts[1])
	}
}
