package web

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/mofahq/tasktracker/internal/services/web/storage"
	"github.com/mofahq/tasktracker/internal/services/web/storage/sqlite"
	"github.com/mofahq/tasktracker/internal/tracker"
)

var handlerTestNow = time.Date(2025, time.March, 15, 12, 0, 0, 0, time.UTC)

func newTestHandler(t *testing.T) (*http.ServeMux, *sqlite.Store) {
	t.Helper()
	store, err := sqlite.Open(filepath.Join(t.TempDir(), "tracker.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() {
		if err := store.Close(); err != nil {
			t.Fatalf("close store: %v", err)
		}
	})

	h := &Handler{store: store, loc: time.UTC, now: func() time.Time { return handlerTestNow }}
	return h.routes(), store
}

func putTestUser(t *testing.T, store *sqlite.Store, user tracker.User) {
	t.Helper()
	if user.Department == "" {
		user.Department = tracker.DeptIT
	}
	if user.DateJoined.IsZero() {
		user.DateJoined = handlerTestNow.AddDate(-1, 0, 0)
	}
	user.IsActive = true
	if err := store.PutUser(context.Background(), user); err != nil {
		t.Fatalf("put user %s: %v", user.Username, err)
	}
}

func TestHomePage(t *testing.T) {
	mux, _ := newTestHandler(t)

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}
	if !strings.Contains(rec.Body.String(), "Task Tracker") {
		t.Fatalf("body missing page title: %q", rec.Body.String())
	}
}

func TestHealthEndpoint(t *testing.T) {
	mux, _ := newTestHandler(t)

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/up", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}
}

func TestTaskCreateAndDetail(t *testing.T) {
	mux, store := newTestHandler(t)
	putTestUser(t, store, tracker.User{ID: "u1", Username: "amara", FirstName: "Amara", LastName: "Mensah"})

	form := url.Values{
		"title":       {"Replace projector lamp"},
		"category":    {"it"},
		"priority":    {"high"},
		"due_date":    {"2025-03-20"},
		"assigned_to": {"u1"},
		"is_urgent":   {"on"},
	}
	req := httptest.NewRequest(http.MethodPost, "/tasks", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set(viewerHeader, "amara")
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	if rec.Code != http.StatusSeeOther {
		t.Fatalf("status = %d, want %d: %s", rec.Code, http.StatusSeeOther, rec.Body.String())
	}
	location := rec.Header().Get("Location")
	if !strings.HasPrefix(location, "/tasks/") {
		t.Fatalf("Location = %q, want /tasks/ prefix", location)
	}

	rec = httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, location, nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("detail status = %d, want %d", rec.Code, http.StatusOK)
	}
	body := rec.Body.String()
	for _, want := range []string{"Replace projector lamp", "High", "Information Technology", "Amara Mensah"} {
		if !strings.Contains(body, want) {
			t.Fatalf("detail body missing %q", want)
		}
	}
}

func TestTaskCreateRequiresViewer(t *testing.T) {
	mux, _ := newTestHandler(t)

	form := url.Values{"title": {"No viewer"}, "category": {"it"}}
	req := httptest.NewRequest(http.MethodPost, "/tasks", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusUnauthorized)
	}
}

func TestTaskCreateRejectsUnknownCategory(t *testing.T) {
	mux, store := newTestHandler(t)
	putTestUser(t, store, tracker.User{ID: "u1", Username: "amara"})

	form := url.Values{"title": {"Bad category"}, "category": {"janitorial"}}
	req := httptest.NewRequest(http.MethodPost, "/tasks", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set(viewerHeader, "amara")
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusBadRequest)
	}
	if !strings.Contains(rec.Body.String(), "janitorial") {
		t.Fatalf("body should name the rejected category: %q", rec.Body.String())
	}
}

func TestTaskCompletePreservesFirstCompletion(t *testing.T) {
	mux, store := newTestHandler(t)
	ctx := context.Background()
	putTestUser(t, store, tracker.User{ID: "u1", Username: "amara"})

	task := tracker.Task{
		ID: "t1", Title: "Patch server", CreatedBy: "u1",
		Category: tracker.CategoryIT, Priority: tracker.PriorityMedium,
		Status:    tracker.TaskPending,
		CreatedAt: handlerTestNow.AddDate(0, 0, -3),
		UpdatedAt: handlerTestNow.AddDate(0, 0, -3),
	}
	if err := store.PutTask(ctx, task); err != nil {
		t.Fatalf("put task: %v", err)
	}

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/tasks/t1/complete", nil))
	if rec.Code != http.StatusSeeOther {
		t.Fatalf("complete status = %d, want %d", rec.Code, http.StatusSeeOther)
	}

	completed, err := store.GetTask(ctx, "t1")
	if err != nil {
		t.Fatalf("get task: %v", err)
	}
	if completed.Status != tracker.TaskCompleted {
		t.Fatalf("Status = %q, want %q", completed.Status, tracker.TaskCompleted)
	}
	if completed.DateCompleted == nil || !completed.DateCompleted.Equal(handlerTestNow) {
		t.Fatalf("DateCompleted = %v, want %v", completed.DateCompleted, handlerTestNow)
	}

	// Regress the status through the update form; the completion stamp
	// must survive.
	form := url.Values{"status": {"pending"}}
	req := httptest.NewRequest(http.MethodPost, "/tasks/t1", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec = httptest.NewRecorder()
	mux.ServeHTTP(rec, req)
	if rec.Code != http.StatusSeeOther {
		t.Fatalf("update status = %d, want %d", rec.Code, http.StatusSeeOther)
	}

	regressed, err := store.GetTask(ctx, "t1")
	if err != nil {
		t.Fatalf("get task after regression: %v", err)
	}
	if regressed.Status != tracker.TaskPending {
		t.Fatalf("Status = %q, want %q", regressed.Status, tracker.TaskPending)
	}
	if regressed.DateCompleted == nil || !regressed.DateCompleted.Equal(handlerTestNow) {
		t.Fatalf("DateCompleted = %v, want preserved %v", regressed.DateCompleted, handlerTestNow)
	}
}

func TestTaskListRejectsUnknownStatus(t *testing.T) {
	mux, _ := newTestHandler(t)

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/tasks?status=done", nil))

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusBadRequest)
	}
}

func TestTaskDetailNotFound(t *testing.T) {
	mux, _ := newTestHandler(t)

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/tasks/missing", nil))

	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusNotFound)
	}
}

func TestReportsRequireAdmin(t *testing.T) {
	mux, store := newTestHandler(t)
	putTestUser(t, store, tracker.User{ID: "u1", Username: "amara"})
	putTestUser(t, store, tracker.User{ID: "u2", Username: "kofi", IsStaff: true})

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/reports/dashboard", nil))
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("anonymous status = %d, want %d", rec.Code, http.StatusUnauthorized)
	}

	req := httptest.NewRequest(http.MethodGet, "/reports/dashboard", nil)
	req.Header.Set(viewerHeader, "amara")
	rec = httptest.NewRecorder()
	mux.ServeHTTP(rec, req)
	if rec.Code != http.StatusForbidden {
		t.Fatalf("non-staff status = %d, want %d", rec.Code, http.StatusForbidden)
	}

	req = httptest.NewRequest(http.MethodGet, "/reports/dashboard", nil)
	req.Header.Set(viewerHeader, "kofi")
	rec = httptest.NewRecorder()
	mux.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("staff status = %d, want %d", rec.Code, http.StatusOK)
	}
}

func TestExportTasksCSV(t *testing.T) {
	mux, store := newTestHandler(t)
	ctx := context.Background()
	putTestUser(t, store, tracker.User{ID: "u1", Username: "amara", IsStaff: true})

	task := tracker.Task{
		ID: "t1", Title: "Unassigned export", CreatedBy: "u1",
		Category: tracker.CategoryIT, Priority: tracker.PriorityLow,
		Status:    tracker.TaskPending,
		CreatedAt: handlerTestNow, UpdatedAt: handlerTestNow,
	}
	if err := store.PutTask(ctx, task); err != nil {
		t.Fatalf("put task: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/exports/tasks.csv", nil)
	req.Header.Set(viewerHeader, "amara")
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}
	if got := rec.Header().Get("Content-Type"); got != "text/csv" {
		t.Fatalf("Content-Type = %q, want %q", got, "text/csv")
	}
	disposition := rec.Header().Get("Content-Disposition")
	if !strings.Contains(disposition, "tasks_export.csv") {
		t.Fatalf("Content-Disposition = %q, want filename", disposition)
	}
	if !strings.Contains(rec.Body.String(), "Unassigned") {
		t.Fatalf("body missing Unassigned sentinel: %q", rec.Body.String())
	}
}

func TestIssueReportAndResolve(t *testing.T) {
	mux, store := newTestHandler(t)
	ctx := context.Background()
	putTestUser(t, store, tracker.User{ID: "u1", Username: "amara"})

	equipment := tracker.Equipment{
		ID: "e1", Type: tracker.TypeRouter, Brand: "Cisco", Model: "C9200",
		SerialNumber: "SN-001", Condition: tracker.ConditionGood,
		Status:    tracker.EquipmentAvailable,
		CreatedAt: handlerTestNow, UpdatedAt: handlerTestNow,
	}
	if err := store.PutEquipment(ctx, equipment); err != nil {
		t.Fatalf("put equipment: %v", err)
	}

	form := url.Values{
		"equipment_id": {"e1"},
		"title":        {"Network port dead"},
		"severity":     {"high"},
	}
	req := httptest.NewRequest(http.MethodPost, "/issues", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set(viewerHeader, "amara")
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)
	if rec.Code != http.StatusSeeOther {
		t.Fatalf("report status = %d, want %d: %s", rec.Code, http.StatusSeeOther, rec.Body.String())
	}

	issues, err := store.ListIssues(ctx, storage.IssueFilter{EquipmentID: "e1"})
	if err != nil {
		t.Fatalf("list issues: %v", err)
	}
	if len(issues) != 1 {
		t.Fatalf("issue count = %d, want 1", len(issues))
	}

	req = httptest.NewRequest(http.MethodPost, "/issues/"+issues[0].ID+"/resolve", nil)
	req.Header.Set(viewerHeader, "amara")
	rec = httptest.NewRecorder()
	mux.ServeHTTP(rec, req)
	if rec.Code != http.StatusSeeOther {
		t.Fatalf("resolve status = %d, want %d", rec.Code, http.StatusSeeOther)
	}

	resolved, err := store.GetIssue(ctx, issues[0].ID)
	if err != nil {
		t.Fatalf("get issue: %v", err)
	}
	if resolved.Status != tracker.IssueResolved {
		t.Fatalf("Status = %q, want %q", resolved.Status, tracker.IssueResolved)
	}
}

func TestIssueListShowsRecurring(t *testing.T) {
	mux, store := newTestHandler(t)
	ctx := context.Background()

	equipment := tracker.Equipment{
		ID: "e1", Type: tracker.TypeRouter, Brand: "Cisco", Model: "C9200",
		SerialNumber: "SN-001", Condition: tracker.ConditionGood,
		Status:    tracker.EquipmentAvailable,
		CreatedAt: handlerTestNow, UpdatedAt: handlerTestNow,
	}
	if err := store.PutEquipment(ctx, equipment); err != nil {
		t.Fatalf("put equipment: %v", err)
	}
	for i, title := range []string{"Network failure", "Network timeout"} {
		issue := tracker.DeviceIssue{
			ID: "i" + string(rune('1'+i)), EquipmentID: "e1", Title: title,
			Severity: tracker.SeverityHigh, Status: tracker.IssueReported,
			ReportedAt: handlerTestNow, CreatedAt: handlerTestNow, UpdatedAt: handlerTestNow,
		}
		if err := store.PutIssue(ctx, issue); err != nil {
			t.Fatalf("put issue %d: %v", i, err)
		}
	}

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/issues", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}
	body := rec.Body.String()
	if !strings.Contains(body, "network") {
		t.Fatalf("body missing recurring pattern: %q", body)
	}
	if !strings.Contains(body, "Consider network infrastructure upgrade or configuration review") {
		t.Fatalf("body missing network suggestion: %q", body)
	}
}

func TestServerRequiresAddr(t *testing.T) {
	store, err := sqlite.Open(filepath.Join(t.TempDir(), "tracker.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	defer store.Close()

	if _, err := NewServer(store, Config{}); err == nil {
		t.Fatal("expected error for missing address")
	}
}
