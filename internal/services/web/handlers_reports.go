package web

import (
	"net/http"

	"github.com/mofahq/tasktracker/internal/report"
	"github.com/mofahq/tasktracker/internal/services/web/storage"
)

// topPerformerWindowDays bounds the recent-completion ranking.
const topPerformerWindowDays = 30

// topPerformerLimit caps the ranking length.
const topPerformerLimit = 5

type trendRow struct {
	Period string
	Count  string
}

type reportDashboardView struct {
	TotalTasks      string
	PendingTasks    string
	InProgressTasks string
	CompletedTasks  string
	OverdueTasks    string
	UrgentTasks     string

	CompletionPercentage string
	InProgressPercentage string
	PendingPercentage    string
	OverduePercentage    string

	TasksByStatus   []groupRow
	TasksByPriority []groupRow
	TasksByCategory []groupRow

	MonthlyCompleted []trendRow

	AvgEstimatedMinutes string
	AvgActualMinutes    string
	AvgEstimatedHours   string
	AvgActualHours      string

	RecentTasks []taskRow
}

func (h *Handler) handleReportDashboard(w http.ResponseWriter, r *http.Request) {
	tasks, err := h.store.ListTasks(r.Context(), storage.TaskFilter{})
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

	view := reportDashboardView{
		TotalTasks:           formatCount(dashboard.TotalTasks),
		PendingTasks:         formatCount(dashboard.PendingTasks),
		InProgressTasks:      formatCount(dashboard.InProgressTasks),
		CompletedTasks:       formatCount(dashboard.CompletedTasks),
		OverdueTasks:         formatCount(dashboard.OverdueTasks),
		UrgentTasks:          formatCount(dashboard.UrgentTasks),
		CompletionPercentage: formatPercent(dashboard.CompletionPercentage),
		InProgressPercentage: formatPercent(dashboard.InProgressPercentage),
		PendingPercentage:    formatPercent(dashboard.PendingPercentage),
		OverduePercentage:    formatPercent(dashboard.OverduePercentage),
		TasksByStatus:        groupRows(dashboard.TasksByStatus),
		TasksByPriority:      groupRows(dashboard.TasksByPriority),
		TasksByCategory:      groupRows(dashboard.TasksByCategory),
		MonthlyCompleted:     trendRows(dashboard.MonthlyCompleted),
		AvgEstimatedMinutes:  formatCount(dashboard.AvgEstimatedMinutes),
		AvgActualMinutes:     formatCount(dashboard.AvgActualMinutes),
		AvgEstimatedHours:    printer.Sprintf("%.1f", dashboard.AvgEstimatedHours),
		AvgActualHours:       printer.Sprintf("%.1f", dashboard.AvgActualHours),
	}
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
	h.render(w, "report_dashboard.html", view)
}

type reportAnalyticsView struct {
	TotalTasks      string
	CompletedTasks  string
	PendingTasks    string
	InProgressTasks string
	OverdueTasks    string

	PriorityStats []groupRow
	CategoryStats []groupRow

	MonthlyCreated []trendRow
}

func (h *Handler) handleReportAnalytics(w http.ResponseWriter, r *http.Request) {
	tasks, err := h.store.ListTasks(r.Context(), storage.TaskFilter{})
	if err != nil {
		h.renderError(w, http.StatusInternalServerError, "failed to load tasks")
		return
	}

	analytics, err := report.BuildTaskAnalytics(tasks, h.now(), h.loc)
	if err != nil {
		h.renderError(w, http.StatusInternalServerError, "failed to build analytics")
		return
	}

	view := reportAnalyticsView{
		TotalTasks:      formatCount(analytics.TotalTasks),
		CompletedTasks:  formatCount(analytics.CompletedTasks),
		PendingTasks:    formatCount(analytics.PendingTasks),
		InProgressTasks: formatCount(analytics.InProgressTasks),
		OverdueTasks:    formatCount(analytics.OverdueTasks),
		PriorityStats:   groupRows(analytics.PriorityStats),
		CategoryStats:   groupRows(analytics.CategoryStats),
		MonthlyCreated:  trendRows(analytics.MonthlyCreated),
	}
	h.render(w, "report_analytics.html", view)
}

type performanceRow struct {
	Name           string
	Total          string
	Completed      string
	Pending        string
	InProgress     string
	Overdue        string
	CompletionRate string
}

type performerRow struct {
	Name            string
	RecentCompleted string
}

type reportTeamView struct {
	Members       []performanceRow
	TopPerformers []performerRow
	ByDepartment  []groupRow
}

func (h *Handler) handleReportTeam(w http.ResponseWriter, r *http.Request) {
	tasks, err := h.store.ListTasks(r.Context(), storage.TaskFilter{})
	if err != nil {
		h.renderError(w, http.StatusInternalServerError, "failed to load tasks")
		return
	}
	users, err := h.store.ListUsers(r.Context())
	if err != nil {
		h.renderError(w, http.StatusInternalServerError, "failed to load users")
		return
	}

	now := h.now()
	var view reportTeamView
	for _, stats := range report.TeamPerformance(users, tasks, now) {
		view.Members = append(view.Members, performanceRow{
			Name:           stats.User.FullName(),
			Total:          formatCount(stats.Total),
			Completed:      formatCount(stats.Completed),
			Pending:        formatCount(stats.Pending),
			InProgress:     formatCount(stats.InProgress),
			Overdue:        formatCount(stats.Overdue),
			CompletionRate: formatRate(stats.CompletionRate),
		})
	}

	since := now.AddDate(0, 0, -topPerformerWindowDays)
	for _, performer := range report.TopPerformers(users, tasks, since, topPerformerLimit) {
		view.TopPerformers = append(view.TopPerformers, performerRow{
			Name:            performer.User.FullName(),
			RecentCompleted: formatCount(performer.RecentCompleted),
		})
	}
	view.ByDepartment = groupRows(report.CountUsersByDepartment(users))
	h.render(w, "report_team.html", view)
}

type reportMonthlyView struct {
	Month string

	Total      string
	Completed  string
	Pending    string
	InProgress string

	CompletionRate    string
	AvgCompletionDays string

	PriorityDist []groupRow
	CategoryDist []groupRow
	DailyCreated []trendRow
}

func (h *Handler) handleReportMonthly(w http.ResponseWriter, r *http.Request) {
	tasks, err := h.store.ListTasks(r.Context(), storage.TaskFilter{})
	if err != nil {
		h.renderError(w, http.StatusInternalServerError, "failed to load tasks")
		return
	}

	monthly, err := report.BuildMonthlyReport(tasks, h.now(), h.loc)
	if err != nil {
		h.renderError(w, http.StatusInternalServerError, "failed to build monthly report")
		return
	}

	view := reportMonthlyView{
		Month:             monthly.Month,
		Total:             formatCount(monthly.Total),
		Completed:         formatCount(monthly.Completed),
		Pending:           formatCount(monthly.Pending),
		InProgress:        formatCount(monthly.InProgress),
		CompletionRate:    formatRate(monthly.CompletionRate),
		AvgCompletionDays: printer.Sprintf("%.1f", monthly.AvgCompletionDays),
		PriorityDist:      groupRows(monthly.PriorityDist),
		CategoryDist:      groupRows(monthly.CategoryDist),
		DailyCreated:      trendRows(monthly.DailyCreated),
	}
	h.render(w, "report_monthly.html", view)
}

func (h *Handler) handleExportTasks(w http.ResponseWriter, r *http.Request) {
	tasks, err := h.store.ListTasks(r.Context(), storage.TaskFilter{})
	if err != nil {
		h.renderError(w, http.StatusInternalServerError, "failed to load tasks")
		return
	}
	users, err := h.userIndex(r.Context())
	if err != nil {
		h.renderError(w, http.StatusInternalServerError, "failed to load users")
		return
	}

	export, err := report.ExportTasks(tasks, users)
	if err != nil {
		h.renderError(w, http.StatusInternalServerError, "failed to export tasks")
		return
	}
	writeExport(w, export)
}

func (h *Handler) handleExportUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.store.ListUsers(r.Context())
	if err != nil {
		h.renderError(w, http.StatusInternalServerError, "failed to load users")
		return
	}

	export, err := report.ExportUsers(users)
	if err != nil {
		h.renderError(w, http.StatusInternalServerError, "failed to export users")
		return
	}
	writeExport(w, export)
}

func (h *Handler) handleExportPerformance(w http.ResponseWriter, r *http.Request) {
	tasks, err := h.store.ListTasks(r.Context(), storage.TaskFilter{})
	if err != nil {
		h.renderError(w, http.StatusInternalServerError, "failed to load tasks")
		return
	}
	users, err := h.store.ListUsers(r.Context())
	if err != nil {
		h.renderError(w, http.StatusInternalServerError, "failed to load users")
		return
	}

	stats := report.TeamPerformance(users, tasks, h.now())
	export, err := report.ExportPerformance(stats)
	if err != nil {
		h.renderError(w, http.StatusInternalServerError, "failed to export performance")
		return
	}
	writeExport(w, export)
}

func writeExport(w http.ResponseWriter, export report.Export) {
	w.Header().Set("Content-Type", export.ContentType)
	w.Header().Set("Content-Disposition", `attachment; filename="`+export.Filename+`"`)
	_, _ = w.Write([]byte(export.Body))
}

func groupRows(groups []report.GroupCount) []groupRow {
	var out []groupRow
	for _, group := range groups {
		out = append(out, groupRow{Label: group.Label, Count: formatCount(group.Count)})
	}
	return out
}

func trendRows(points []report.TrendPoint) []trendRow {
	var out []trendRow
	for _, point := range points {
		out = append(out, trendRow{Period: point.Period, Count: formatCount(point.Count)})
	}
	return out
}
