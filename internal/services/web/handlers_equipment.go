package web

import (
	"errors"
	"net/http"
	"strings"

	"github.com/mofahq/tasktracker/internal/platform/id"
	"github.com/mofahq/tasktracker/internal/report"
	"github.com/mofahq/tasktracker/internal/services/web/storage"
	"github.com/mofahq/tasktracker/internal/tracker"
)

type equipmentRow struct {
	ID          string
	DisplayName string
	AssetTag    string
	Condition   string
	Status      string
}

type equipmentListView struct {
	Equipment []equipmentRow
}

type assignmentRow struct {
	ID           string
	RoomNumber   string
	AssignedDate string
	ReturnDate   string
	Active       bool
}

type historyRow struct {
	Action    string
	FromRoom  string
	ToRoom    string
	Timestamp string
}

type issueRow struct {
	ID          string
	Equipment   string
	EquipmentID string
	Title       string
	Severity    string
	Status      string
	ReportedAt  string
	ResolvedAt  string
	Open        bool
}

type equipmentDetailView struct {
	Equipment   tracker.Equipment
	DisplayName string
	Type        string
	Condition   string
	Status      string
	CreatedAt   string

	Assignments []assignmentRow
	History     []historyRow
	Issues      []issueRow
}

type equipmentDashboardView struct {
	Total    string
	ByStatus []groupRow

	OpenIssues      string
	RecurringIssues []recurringRow
}

type recurringRow struct {
	Equipment  string
	IssueCount string
	Pattern    string
	Suggestion string
}

type groupRow struct {
	Label string
	Count string
}

func (h *Handler) handleEquipmentList(w http.ResponseWriter, r *http.Request) {
	devices, err := h.store.ListEquipment(r.Context())
	if err != nil {
		h.renderError(w, http.StatusInternalServerError, "failed to load equipment")
		return
	}

	var view equipmentListView
	for _, device := range devices {
		view.Equipment = append(view.Equipment, equipmentRow{
			ID:          device.ID,
			DisplayName: device.DisplayName(),
			AssetTag:    device.AssetTag,
			Condition:   device.Condition.Label(),
			Status:      device.Status.Label(),
		})
	}
	h.render(w, "equipment.html", view)
}

func (h *Handler) handleEquipmentDetail(w http.ResponseWriter, r *http.Request) {
	equipmentID := strings.TrimSpace(r.PathValue("equipmentID"))
	device, err := h.store.GetEquipment(r.Context(), equipmentID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			h.renderError(w, http.StatusNotFound, "equipment not found")
			return
		}
		h.renderError(w, http.StatusInternalServerError, "failed to load equipment")
		return
	}

	assignments, err := h.store.ListAssignments(r.Context(), device.ID)
	if err != nil {
		h.renderError(w, http.StatusInternalServerError, "failed to load assignments")
		return
	}
	history, err := h.store.ListDeviceHistory(r.Context(), device.ID)
	if err != nil {
		h.renderError(w, http.StatusInternalServerError, "failed to load device history")
		return
	}
	issues, err := h.store.ListIssues(r.Context(), storage.IssueFilter{EquipmentID: device.ID})
	if err != nil {
		h.renderError(w, http.StatusInternalServerError, "failed to load issues")
		return
	}

	view := equipmentDetailView{
		Equipment:   device,
		DisplayName: device.DisplayName(),
		Type:        device.Type.Label(),
		Condition:   device.Condition.Label(),
		Status:      device.Status.Label(),
		CreatedAt:   formatTime(device.CreatedAt),
	}
	for _, assignment := range assignments {
		view.Assignments = append(view.Assignments, assignmentRow{
			ID:           assignment.ID,
			RoomNumber:   assignment.RoomNumber,
			AssignedDate: formatTime(assignment.AssignedDate),
			ReturnDate:   formatOptionalTime(assignment.ReturnDate),
			Active:       assignment.Active,
		})
	}
	for _, entry := range history {
		view.History = append(view.History, historyRow{
			Action:    string(entry.Action),
			FromRoom:  entry.FromRoom,
			ToRoom:    entry.ToRoom,
			Timestamp: formatTime(entry.Timestamp),
		})
	}
	for _, issue := range issues {
		view.Issues = append(view.Issues, issueRow{
			ID:         issue.ID,
			Title:      issue.Title,
			Severity:   issue.Severity.Label(),
			Status:     issue.Status.Label(),
			ReportedAt: formatTime(issue.ReportedAt),
			ResolvedAt: formatOptionalTime(issue.ResolvedAt),
			Open:       issue.Open(),
		})
	}
	h.render(w, "equipment_detail.html", view)
}

func (h *Handler) handleEquipmentDashboard(w http.ResponseWriter, r *http.Request) {
	devices, err := h.store.ListEquipment(r.Context())
	if err != nil {
		h.renderError(w, http.StatusInternalServerError, "failed to load equipment")
		return
	}
	issues, err := h.store.ListIssues(r.Context(), storage.IssueFilter{})
	if err != nil {
		h.renderError(w, http.StatusInternalServerError, "failed to load issues")
		return
	}

	view := equipmentDashboardView{Total: formatCount(len(devices))}
	for _, group := range report.CountEquipmentByStatus(devices) {
		view.ByStatus = append(view.ByStatus, groupRow{Label: group.Label, Count: formatCount(group.Count)})
	}

	openIssues := 0
	for _, issue := range issues {
		if issue.Open() {
			openIssues++
		}
	}
	view.OpenIssues = formatCount(openIssues)

	for _, recurring := range report.DetectRecurringIssues(devices, issues) {
		view.RecurringIssues = append(view.RecurringIssues, recurringRow{
			Equipment:  recurring.Equipment.DisplayName(),
			IssueCount: formatCount(recurring.IssueCount),
			Pattern:    recurring.Pattern,
			Suggestion: recurring.Suggestion,
		})
	}
	h.render(w, "equipment_dashboard.html", view)
}

type issueListView struct {
	Issues    []issueRow
	Recurring []recurringRow
}

func (h *Handler) handleIssueList(w http.ResponseWriter, r *http.Request) {
	filter := storage.IssueFilter{}
	var err error
	if value := r.URL.Query().Get("status"); value != "" {
		if filter.Status, err = tracker.ParseIssueStatus(value); err != nil {
			h.renderError(w, http.StatusBadRequest, err.Error())
			return
		}
	}
	if value := r.URL.Query().Get("severity"); value != "" {
		if filter.Severity, err = tracker.ParseIssueSeverity(value); err != nil {
			h.renderError(w, http.StatusBadRequest, err.Error())
			return
		}
	}

	issues, err := h.store.ListIssues(r.Context(), filter)
	if err != nil {
		h.renderError(w, http.StatusInternalServerError, "failed to load issues")
		return
	}
	devices, err := h.store.ListEquipment(r.Context())
	if err != nil {
		h.renderError(w, http.StatusInternalServerError, "failed to load equipment")
		return
	}
	names := make(map[string]string, len(devices))
	for _, device := range devices {
		names[device.ID] = device.DisplayName()
	}

	var view issueListView
	for _, issue := range issues {
		view.Issues = append(view.Issues, issueRow{
			ID:          issue.ID,
			Equipment:   names[issue.EquipmentID],
			EquipmentID: issue.EquipmentID,
			Title:       issue.Title,
			Severity:    issue.Severity.Label(),
			Status:      issue.Status.Label(),
			ReportedAt:  formatTime(issue.ReportedAt),
			ResolvedAt:  formatOptionalTime(issue.ResolvedAt),
			Open:        issue.Open(),
		})
	}
	for _, recurring := range report.DetectRecurringIssues(devices, issues) {
		view.Recurring = append(view.Recurring, recurringRow{
			Equipment:  recurring.Equipment.DisplayName(),
			IssueCount: formatCount(recurring.IssueCount),
			Pattern:    recurring.Pattern,
			Suggestion: recurring.Suggestion,
		})
	}
	h.render(w, "issues.html", view)
}

func (h *Handler) handleIssueReport(w http.ResponseWriter, r *http.Request) {
	reporter, err := h.viewer(r)
	if err != nil {
		h.renderError(w, http.StatusUnauthorized, "sign in required")
		return
	}
	if err := r.ParseForm(); err != nil {
		h.renderError(w, http.StatusBadRequest, "invalid form data")
		return
	}

	now := h.now()
	issue := tracker.DeviceIssue{
		EquipmentID: strings.TrimSpace(r.FormValue("equipment_id")),
		Title:       strings.TrimSpace(r.FormValue("title")),
		Description: strings.TrimSpace(r.FormValue("description")),
		Severity:    tracker.SeverityMedium,
		Status:      tracker.IssueReported,
		ReportedBy:  &reporter.ID,
		ReportedAt:  now,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if issue.EquipmentID == "" {
		h.renderError(w, http.StatusBadRequest, "equipment id is required")
		return
	}
	if issue.Title == "" {
		h.renderError(w, http.StatusBadRequest, "title is required")
		return
	}
	if value := r.FormValue("severity"); value != "" {
		if issue.Severity, err = tracker.ParseIssueSeverity(value); err != nil {
			h.renderError(w, http.StatusBadRequest, err.Error())
			return
		}
	}

	if _, err := h.store.GetEquipment(r.Context(), issue.EquipmentID); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			h.renderError(w, http.StatusNotFound, "equipment not found")
			return
		}
		h.renderError(w, http.StatusInternalServerError, "failed to load equipment")
		return
	}

	issue.ID, err = id.NewID()
	if err != nil {
		h.renderError(w, http.StatusInternalServerError, "failed to report issue")
		return
	}
	if err := h.store.PutIssue(r.Context(), issue); err != nil {
		h.renderError(w, http.StatusInternalServerError, "failed to report issue")
		return
	}
	http.Redirect(w, r, "/equipment/"+issue.EquipmentID, http.StatusSeeOther)
}

func (h *Handler) handleIssueResolve(w http.ResponseWriter, r *http.Request) {
	resolver, err := h.viewer(r)
	if err != nil {
		h.renderError(w, http.StatusUnauthorized, "sign in required")
		return
	}

	issueID := strings.TrimSpace(r.PathValue("issueID"))
	if err := h.store.ResolveIssue(r.Context(), issueID, resolver.ID, h.now()); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			h.renderError(w, http.StatusNotFound, "issue not found")
			return
		}
		h.renderError(w, http.StatusInternalServerError, "failed to resolve issue")
		return
	}
	http.Redirect(w, r, "/issues", http.StatusSeeOther)
}

type directorateRow struct {
	Name          string
	Code          string
	Location      string
	ActiveDevices string
}

type directorateListView struct {
	Directorates []directorateRow
}

func (h *Handler) handleDirectorateList(w http.ResponseWriter, r *http.Request) {
	directorates, err := h.store.ListDirectorates(r.Context())
	if err != nil {
		h.renderError(w, http.StatusInternalServerError, "failed to load directorates")
		return
	}
	counts, err := h.store.CountActiveAssignments(r.Context())
	if err != nil {
		h.renderError(w, http.StatusInternalServerError, "failed to load assignment counts")
		return
	}

	var view directorateListView
	for _, directorate := range directorates {
		view.Directorates = append(view.Directorates, directorateRow{
			Name:          directorate.Name,
			Code:          directorate.Code,
			Location:      directorate.Location,
			ActiveDevices: formatCount(counts[directorate.ID]),
		})
	}
	h.render(w, "directorates.html", view)
}
