package web

import (
	"log"
	"net/http"
	"time"

	"github.com/mofahq/tasktracker/internal/services/web/storage"
)

// Handler serves every tracker route over one store.
type Handler struct {
	store storage.Store
	loc   *time.Location
	now   func() time.Time
}

// NewHandler wires tracker routes onto a ServeMux.
func NewHandler(store storage.Store, loc *time.Location) http.Handler {
	if loc == nil {
		loc = time.Local
	}
	h := &Handler{store: store, loc: loc, now: time.Now}
	return h.routes()
}

func (h *Handler) routes() *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /{$}", h.handleHome)

	mux.HandleFunc("GET /tasks", h.handleTaskList)
	mux.HandleFunc("POST /tasks", h.handleTaskCreate)
	mux.HandleFunc("GET /tasks/{taskID}", h.handleTaskDetail)
	mux.HandleFunc("POST /tasks/{taskID}", h.handleTaskUpdate)
	mux.HandleFunc("POST /tasks/{taskID}/complete", h.handleTaskComplete)
	mux.HandleFunc("POST /tasks/{taskID}/delete", h.handleTaskDelete)

	mux.HandleFunc("GET /users", h.handleUserList)
	mux.HandleFunc("GET /users/{userID}", h.handleUserDetail)

	mux.HandleFunc("GET /equipment", h.handleEquipmentList)
	mux.HandleFunc("GET /equipment/dashboard", h.handleEquipmentDashboard)
	mux.HandleFunc("GET /equipment/{equipmentID}", h.handleEquipmentDetail)

	mux.HandleFunc("GET /issues", h.handleIssueList)
	mux.HandleFunc("POST /issues", h.handleIssueReport)
	mux.HandleFunc("POST /issues/{issueID}/resolve", h.handleIssueResolve)

	mux.HandleFunc("GET /directorates", h.handleDirectorateList)

	mux.HandleFunc("GET /reports/dashboard", h.requireAdmin(h.handleReportDashboard))
	mux.HandleFunc("GET /reports/analytics", h.requireAdmin(h.handleReportAnalytics))
	mux.HandleFunc("GET /reports/team", h.requireAdmin(h.handleReportTeam))
	mux.HandleFunc("GET /reports/monthly", h.requireAdmin(h.handleReportMonthly))

	mux.HandleFunc("GET /exports/tasks.csv", h.requireAdmin(h.handleExportTasks))
	mux.HandleFunc("GET /exports/users.csv", h.requireAdmin(h.handleExportUsers))
	mux.HandleFunc("GET /exports/performance.csv", h.requireAdmin(h.handleExportPerformance))

	mux.HandleFunc("GET /up", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	return mux
}

// render executes a page template, logging failures after headers are sent.
func (h *Handler) render(w http.ResponseWriter, name string, view any) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := templates.ExecuteTemplate(w, name, view); err != nil {
		log.Printf("render %s: %v", name, err)
	}
}

type errorView struct {
	Status  int
	Message string
}

func (h *Handler) renderError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := templates.ExecuteTemplate(w, "error.html", errorView{Status: status, Message: message}); err != nil {
		log.Printf("render error page: %v", err)
	}
}
