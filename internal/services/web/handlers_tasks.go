package web

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/mofahq/tasktracker/internal/platform/id"
	"github.com/mofahq/tasktracker/internal/services/web/storage"
	"github.com/mofahq/tasktracker/internal/tracker"
)

// dueDateFormat is the date-only layout task forms submit.
const dueDateFormat = "2006-01-02"

type taskRow struct {
	ID       string
	Title    string
	Status   string
	Priority string
	Category string
	Assignee string
	DueDate  string
	Overdue  bool
	Urgent   bool
}

type taskListView struct {
	Tasks []taskRow
	Query string
}

type taskDetailView struct {
	Task        tracker.Task
	Status      string
	Priority    string
	Category    string
	CreatedBy   string
	AssignedTo  string
	ReportedBy  string
	CreatedAt   string
	UpdatedAt   string
	DueDate     string
	CompletedAt string
	Overdue     bool
}

func (h *Handler) handleTaskList(w http.ResponseWriter, r *http.Request) {
	filter, err := taskFilterFromQuery(r, h.now())
	if err != nil {
		h.renderError(w, http.StatusBadRequest, err.Error())
		return
	}

	tasks, err := h.store.ListTasks(r.Context(), filter)
	if err != nil {
		h.renderError(w, http.StatusInternalServerError, "failed to load tasks")
		return
	}
	users, err := h.userIndex(r.Context())
	if err != nil {
		h.renderError(w, http.StatusInternalServerError, "failed to load users")
		return
	}

	now := h.now()
	view := taskListView{Query: strings.TrimSpace(r.URL.Query().Get("q"))}
	for _, task := range tasks {
		row := taskRow{
			ID:       task.ID,
			Title:    task.Title,
			Status:   task.Status.Label(),
			Priority: task.Priority.Label(),
			Category: task.Category.Label(),
			DueDate:  formatOptionalTime(task.DueDate),
			Overdue:  task.Overdue(now),
			Urgent:   task.IsUrgent,
		}
		if task.AssignedTo != nil {
			row.Assignee = users[*task.AssignedTo].FullName()
		}
		view.Tasks = append(view.Tasks, row)
	}
	h.render(w, "tasks.html", view)
}

func (h *Handler) handleTaskDetail(w http.ResponseWriter, r *http.Request) {
	taskID := strings.TrimSpace(r.PathValue("taskID"))
	task, err := h.store.GetTask(r.Context(), taskID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			h.renderError(w, http.StatusNotFound, "task not found")
			return
		}
		h.renderError(w, http.StatusInternalServerError, "failed to load task")
		return
	}
	users, err := h.userIndex(r.Context())
	if err != nil {
		h.renderError(w, http.StatusInternalServerError, "failed to load users")
		return
	}

	view := taskDetailView{
		Task:        task,
		Status:      task.Status.Label(),
		Priority:    task.Priority.Label(),
		Category:    task.Category.Label(),
		CreatedBy:   users[task.CreatedBy].FullName(),
		CreatedAt:   formatTime(task.CreatedAt),
		UpdatedAt:   formatTime(task.UpdatedAt),
		DueDate:     formatOptionalTime(task.DueDate),
		CompletedAt: formatOptionalTime(task.DateCompleted),
		Overdue:     task.Overdue(h.now()),
	}
	if task.AssignedTo != nil {
		view.AssignedTo = users[*task.AssignedTo].FullName()
	}
	if task.ReportedBy != nil {
		view.ReportedBy = users[*task.ReportedBy].FullName()
	}
	h.render(w, "task_detail.html", view)
}

func (h *Handler) handleTaskCreate(w http.ResponseWriter, r *http.Request) {
	creator, err := h.viewer(r)
	if err != nil {
		h.renderError(w, http.StatusUnauthorized, "sign in required")
		return
	}
	if err := r.ParseForm(); err != nil {
		h.renderError(w, http.StatusBadRequest, "invalid form data")
		return
	}

	now := h.now()
	task := tracker.Task{
		Title:       strings.TrimSpace(r.FormValue("title")),
		Description: strings.TrimSpace(r.FormValue("description")),
		Status:      tracker.TaskPending,
		Priority:    tracker.PriorityMedium,
		CreatedBy:   creator.ID,
		RoomNumber:  strings.TrimSpace(r.FormValue("room_number")),
		CreatedAt:   now,
		UpdatedAt:   now,
		IsUrgent:    formBool(r, "is_urgent"),
	}
	if task.Title == "" {
		h.renderError(w, http.StatusBadRequest, "title is required")
		return
	}

	task.Category, err = tracker.ParseTaskCategory(r.FormValue("category"))
	if err != nil {
		h.renderError(w, http.StatusBadRequest, err.Error())
		return
	}
	if value := r.FormValue("priority"); value != "" {
		if task.Priority, err = tracker.ParseTaskPriority(value); err != nil {
			h.renderError(w, http.StatusBadRequest, err.Error())
			return
		}
	}
	if value := r.FormValue("status"); value != "" {
		if task.Status, err = tracker.ParseTaskStatus(value); err != nil {
			h.renderError(w, http.StatusBadRequest, err.Error())
			return
		}
	}
	if err := h.applyTaskOptionals(r, &task); err != nil {
		h.renderError(w, http.StatusBadRequest, err.Error())
		return
	}
	if task.Status == tracker.TaskCompleted {
		task.DateCompleted = &now
	}

	task.ID, err = id.NewID()
	if err != nil {
		h.renderError(w, http.StatusInternalServerError, "failed to create task")
		return
	}
	if err := h.store.PutTask(r.Context(), task); err != nil {
		h.renderError(w, http.StatusInternalServerError, "failed to create task")
		return
	}
	http.Redirect(w, r, "/tasks/"+task.ID, http.StatusSeeOther)
}

func (h *Handler) handleTaskUpdate(w http.ResponseWriter, r *http.Request) {
	taskID := strings.TrimSpace(r.PathValue("taskID"))
	task, err := h.store.GetTask(r.Context(), taskID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			h.renderError(w, http.StatusNotFound, "task not found")
			return
		}
		h.renderError(w, http.StatusInternalServerError, "failed to load task")
		return
	}
	if err := r.ParseForm(); err != nil {
		h.renderError(w, http.StatusBadRequest, "invalid form data")
		return
	}

	if r.Form.Has("title") {
		title := strings.TrimSpace(r.FormValue("title"))
		if title == "" {
			h.renderError(w, http.StatusBadRequest, "title is required")
			return
		}
		task.Title = title
	}
	if r.Form.Has("description") {
		task.Description = strings.TrimSpace(r.FormValue("description"))
	}
	if r.Form.Has("room_number") {
		task.RoomNumber = strings.TrimSpace(r.FormValue("room_number"))
	}
	if r.Form.Has("is_urgent") {
		task.IsUrgent = formBool(r, "is_urgent")
	}
	if r.Form.Has("category") {
		if task.Category, err = tracker.ParseTaskCategory(r.FormValue("category")); err != nil {
			h.renderError(w, http.StatusBadRequest, err.Error())
			return
		}
	}
	if r.Form.Has("priority") {
		if task.Priority, err = tracker.ParseTaskPriority(r.FormValue("priority")); err != nil {
			h.renderError(w, http.StatusBadRequest, err.Error())
			return
		}
	}
	if r.Form.Has("status") {
		status, err := tracker.ParseTaskStatus(r.FormValue("status"))
		if err != nil {
			h.renderError(w, http.StatusBadRequest, err.Error())
			return
		}
		task.Status = status
		// The completion stamp survives status regressions; history views
		// rely on the first completion time.
		if status == tracker.TaskCompleted && task.DateCompleted == nil {
			completed := h.now()
			task.DateCompleted = &completed
		}
	}
	if err := h.applyTaskOptionals(r, &task); err != nil {
		h.renderError(w, http.StatusBadRequest, err.Error())
		return
	}

	task.UpdatedAt = h.now()
	if err := h.store.PutTask(r.Context(), task); err != nil {
		h.renderError(w, http.StatusInternalServerError, "failed to update task")
		return
	}
	http.Redirect(w, r, "/tasks/"+task.ID, http.StatusSeeOther)
}

func (h *Handler) handleTaskComplete(w http.ResponseWriter, r *http.Request) {
	taskID := strings.TrimSpace(r.PathValue("taskID"))
	task, err := h.store.GetTask(r.Context(), taskID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			h.renderError(w, http.StatusNotFound, "task not found")
			return
		}
		h.renderError(w, http.StatusInternalServerError, "failed to load task")
		return
	}

	now := h.now()
	task.Status = tracker.TaskCompleted
	if task.DateCompleted == nil {
		task.DateCompleted = &now
	}
	task.UpdatedAt = now
	if err := h.store.PutTask(r.Context(), task); err != nil {
		h.renderError(w, http.StatusInternalServerError, "failed to complete task")
		return
	}
	http.Redirect(w, r, "/tasks/"+task.ID, http.StatusSeeOther)
}

func (h *Handler) handleTaskDelete(w http.ResponseWriter, r *http.Request) {
	taskID := strings.TrimSpace(r.PathValue("taskID"))
	if err := h.store.DeleteTask(r.Context(), taskID); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			h.renderError(w, http.StatusNotFound, "task not found")
			return
		}
		h.renderError(w, http.StatusInternalServerError, "failed to delete task")
		return
	}
	http.Redirect(w, r, "/tasks", http.StatusSeeOther)
}

// applyTaskOptionals parses the nullable form fields shared by create and
// update: assignee, reporter, due date, and effort estimates.
func (h *Handler) applyTaskOptionals(r *http.Request, task *tracker.Task) error {
	if r.Form.Has("assigned_to") {
		task.AssignedTo = optionalFormValue(r, "assigned_to")
	}
	if r.Form.Has("reported_by") {
		task.ReportedBy = optionalFormValue(r, "reported_by")
	}
	if r.Form.Has("due_date") {
		raw := strings.TrimSpace(r.FormValue("due_date"))
		if raw == "" {
			task.DueDate = nil
		} else {
			due, err := time.ParseInLocation(dueDateFormat, raw, h.loc)
			if err != nil {
				return fmt.Errorf("invalid due date %q", raw)
			}
			task.DueDate = &due
		}
	}
	for _, field := range []struct {
		name   string
		target **int
	}{
		{"estimated_minutes", &task.EstimatedMinutes},
		{"actual_minutes", &task.ActualMinutes},
	} {
		if !r.Form.Has(field.name) {
			continue
		}
		raw := strings.TrimSpace(r.FormValue(field.name))
		if raw == "" {
			*field.target = nil
			continue
		}
		minutes, err := strconv.Atoi(raw)
		if err != nil || minutes < 0 {
			return fmt.Errorf("invalid %s %q", strings.ReplaceAll(field.name, "_", " "), raw)
		}
		*field.target = &minutes
	}
	return nil
}

// taskFilterFromQuery maps list query parameters onto a storage filter.
func taskFilterFromQuery(r *http.Request, now time.Time) (storage.TaskFilter, error) {
	query := r.URL.Query()
	filter := storage.TaskFilter{
		Search:        strings.TrimSpace(query.Get("q")),
		AssignedTo:    strings.TrimSpace(query.Get("assigned_to")),
		CreatedBy:     strings.TrimSpace(query.Get("created_by")),
		InvolvingUser: strings.TrimSpace(query.Get("involving")),
	}

	var err error
	if value := query.Get("status"); value != "" {
		if filter.Status, err = tracker.ParseTaskStatus(value); err != nil {
			return storage.TaskFilter{}, err
		}
	}
	if value := query.Get("priority"); value != "" {
		if filter.Priority, err = tracker.ParseTaskPriority(value); err != nil {
			return storage.TaskFilter{}, err
		}
	}
	if value := query.Get("category"); value != "" {
		if filter.Category, err = tracker.ParseTaskCategory(value); err != nil {
			return storage.TaskFilter{}, err
		}
	}
	if query.Get("urgent") == "1" {
		filter.UrgentOnly = true
	}
	if query.Get("overdue") == "1" {
		filter.OverdueAt = &now
	}
	return filter, nil
}

func (h *Handler) userIndex(ctx context.Context) (map[string]tracker.User, error) {
	users, err := h.store.ListUsers(ctx)
	if err != nil {
		return nil, err
	}
	index := make(map[string]tracker.User, len(users))
	for _, user := range users {
		index[user.ID] = user
	}
	return index, nil
}

func optionalFormValue(r *http.Request, name string) *string {
	value := strings.TrimSpace(r.FormValue(name))
	if value == "" {
		return nil
	}
	return &value
}

func formBool(r *http.Request, name string) bool {
	switch strings.ToLower(strings.TrimSpace(r.FormValue(name))) {
	case "1", "true", "on", "yes":
		return true
	}
	return false
}
