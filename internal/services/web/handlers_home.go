package web

import (
	"net/http"

	"github.com/mofahq/tasktracker/internal/report"
	"github.com/mofahq/tasktracker/internal/services/web/storage"
)

type homeView struct {
	Viewer string

	TotalTasks      string
	PendingTasks    string
	InProgressTasks string
	CompletedTasks  string
	OverdueTasks    string
	UrgentTasks     string

	CompletionPercentage string

	RecentTasks []taskRow
}

// handleHome renders the landing dashboard. A signed-in viewer sees their
// own task workload; without one the page covers every task.
func (h *Handler) handleHome(w http.ResponseWriter, r *http.Request) {
	filter := storage.TaskFilter{}
	view := homeView{}
	if user, err := h.viewer(r); err == nil {
		filter.InvolvingUser = user.ID
		view.Viewer = user.FullName()
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
	dashboard, err := report.BuildDashboard(tasks, now, h.loc)
	if err != nil {
		h.renderError(w, http.StatusInternalServerError, "failed to build dashboard")
		return
	}

	view.TotalTasks = formatCount(dashboard.TotalTasks)
	view.PendingTasks = formatCount(dashboard.PendingTasks)
	view.InProgressTasks = formatCount(dashboard.InProgressTasks)
	view.CompletedTasks = formatCount(dashboard.CompletedTasks)
	view.OverdueTasks = formatCount(dashboard.OverdueTasks)
	view.UrgentTasks = formatCount(dashboard.UrgentTasks)
	view.CompletionPercentage = formatPercent(dashboard.CompletionPercentage)

	for _, task := range dashboard.RecentTasks {
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
		view.RecentTasks = append(view.RecentTasks, row)
	}
	h.render(w, "home.html", view)
}
