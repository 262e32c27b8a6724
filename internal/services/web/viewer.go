package web

import (
	"errors"
	"net/http"
	"strings"

	"github.com/mofahq/tasktracker/internal/services/web/storage"
	"github.com/mofahq/tasktracker/internal/tracker"
)

// viewerHeader carries the acting username. Session handling lives in a
// separate gateway; the tracker trusts the value this header arrives with.
const viewerHeader = "X-Tracker-User"

// viewer resolves the acting user from the request header.
func (h *Handler) viewer(r *http.Request) (tracker.User, error) {
	username := strings.TrimSpace(r.Header.Get(viewerHeader))
	if username == "" {
		return tracker.User{}, errors.New("no viewer header")
	}
	return h.store.GetUserByUsername(r.Context(), username)
}

// requireAdmin gates a handler behind staff or superuser status.
func (h *Handler) requireAdmin(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, err := h.viewer(r)
		if err != nil {
			if errors.Is(err, storage.ErrNotFound) {
				h.renderError(w, http.StatusForbidden, "unknown user")
				return
			}
			h.renderError(w, http.StatusUnauthorized, "sign in required")
			return
		}
		if !user.IsAdmin() {
			h.renderError(w, http.StatusForbidden, "administrator access required")
			return
		}
		next(w, r)
	}
}
