package web

import (
	"errors"
	"net/http"
	"strings"

	"github.com/mofahq/tasktracker/internal/report"
	"github.com/mofahq/tasktracker/internal/services/web/storage"
	"github.com/mofahq/tasktracker/internal/tracker"
)

type userRow struct {
	ID         string
	Username   string
	FullName   string
	Email      string
	Department string
	Active     bool
}

type userListView struct {
	Users []userRow
}

type userDetailView struct {
	User       tracker.User
	FullName   string
	Department string
	Joined     string
	LastLogin  string

	Total          string
	Completed      string
	Pending        string
	InProgress     string
	Overdue        string
	CompletionRate string
}

func (h *Handler) handleUserList(w http.ResponseWriter, r *http.Request) {
	users, err := h.store.ListUsers(r.Context())
	if err != nil {
		h.renderError(w, http.StatusInternalServerError, "failed to load users")
		return
	}

	var view userListView
	for _, user := range users {
		view.Users = append(view.Users, userRow{
			ID:         user.ID,
			Username:   user.Username,
			FullName:   user.FullName(),
			Email:      user.Email,
			Department: user.Department.Label(),
			Active:     user.IsActive,
		})
	}
	h.render(w, "users.html", view)
}

func (h *Handler) handleUserDetail(w http.ResponseWriter, r *http.Request) {
	userID := strings.TrimSpace(r.PathValue("userID"))
	user, err := h.store.GetUser(r.Context(), userID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			h.renderError(w, http.StatusNotFound, "user not found")
			return
		}
		h.renderError(w, http.StatusInternalServerError, "failed to load user")
		return
	}

	tasks, err := h.store.ListTasks(r.Context(), storage.TaskFilter{InvolvingUser: user.ID})
	if err != nil {
		h.renderError(w, http.StatusInternalServerError, "failed to load tasks")
		return
	}

	stats := report.UserTaskStats(user, tasks, h.now())
	view := userDetailView{
		User:           user,
		FullName:       user.FullName(),
		Department:     user.Department.Label(),
		Joined:         formatTime(user.DateJoined),
		LastLogin:      formatOptionalTime(user.LastLogin),
		Total:          formatCount(stats.Total),
		Completed:      formatCount(stats.Completed),
		Pending:        formatCount(stats.Pending),
		InProgress:     formatCount(stats.InProgress),
		Overdue:        formatCount(stats.Overdue),
		CompletionRate: formatRate(stats.CompletionRate),
	}
	h.render(w, "user_detail.html", view)
}
