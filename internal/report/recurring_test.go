package report

import (
	"testing"

	"github.com/mofahq/tasktracker/internal/tracker"
)

func makeDevice(id, serial string) tracker.Equipment {
	return tracker.Equipment{
		ID:           id,
		Type:         tracker.TypeLaptop,
		Brand:        "Dell",
		Model:        "Latitude",
		SerialNumber: serial,
	}
}

func makeIssue(equipmentID, title string) tracker.DeviceIssue {
	return tracker.DeviceIssue{
		EquipmentID: equipmentID,
		Title:       title,
		Severity:    tracker.SeverityMedium,
		Status:      tracker.IssueReported,
	}
}

func TestDetectRecurringIssuesIgnoresSingleIssue(t *testing.T) {
	t.Parallel()

	devices := []tracker.Equipment{makeDevice("e1", "SN-1")}
	issues := []tracker.DeviceIssue{makeIssue("e1", "Network failure")}

	if got := DetectRecurringIssues(devices, issues); len(got) != 0 {
		t.Fatalf("len(result) = %d, want 0", len(got))
	}
}

func TestDetectRecurringIssuesSharedKeyword(t *testing.T) {
	t.Parallel()

	devices := []tracker.Equipment{makeDevice("e1", "SN-1")}
	issues := []tracker.DeviceIssue{
		makeIssue("e1", "Network failure"),
		makeIssue("e1", "Network timeout"),
	}

	got := DetectRecurringIssues(devices, issues)
	if len(got) != 1 {
		t.Fatalf("len(result) = %d, want 1", len(got))
	}
	if got[0].IssueCount != 2 {
		t.Fatalf("IssueCount = %d, want 2", got[0].IssueCount)
	}
	if got[0].Pattern != "network" {
		t.Fatalf("Pattern = %q, want %q", got[0].Pattern, "network")
	}
	want := "Consider network infrastructure upgrade or configuration review"
	if got[0].Suggestion != want {
		t.Fatalf("Suggestion = %q, want %q", got[0].Suggestion, want)
	}
}

func TestDetectRecurringIssuesNoRepeatedKeyword(t *testing.T) {
	t.Parallel()

	devices := []tracker.Equipment{makeDevice("e1", "SN-1")}
	issues := []tracker.DeviceIssue{
		makeIssue("e1", "Screen flicker"),
		makeIssue("e1", "Keyboard unresponsive"),
	}

	got := DetectRecurringIssues(devices, issues)
	if len(got) != 1 {
		t.Fatalf("len(result) = %d, want 1", len(got))
	}
	if got[0].Pattern != "" {
		t.Fatalf("Pattern = %q, want empty", got[0].Pattern)
	}
	if got[0].Suggestion != genericSuggestion {
		t.Fatalf("Suggestion = %q, want generic fallback", got[0].Suggestion)
	}
}

func TestDetectRecurringIssuesDiscardsShortWords(t *testing.T) {
	t.Parallel()

	devices := []tracker.Equipment{makeDevice("e1", "SN-1")}
	// "wifi" repeats but is only four characters, so it never qualifies.
	issues := []tracker.DeviceIssue{
		makeIssue("e1", "wifi drop"),
		makeIssue("e1", "wifi down"),
	}

	got := DetectRecurringIssues(devices, issues)
	if len(got) != 1 {
		t.Fatalf("len(result) = %d, want 1", len(got))
	}
	if got[0].Pattern != "" {
		t.Fatalf("Pattern = %q, want empty", got[0].Pattern)
	}
}

func TestSuggestionTableFirstMatchWins(t *testing.T) {
	t.Parallel()

	devices := []tracker.Equipment{makeDevice("e1", "SN-1")}
	// The detected pattern contains both "network" and "hardware"; the
	// table lists network first, so the network remedy must win.
	issues := []tracker.DeviceIssue{
		makeIssue("e1", "network-hardware fault"),
		makeIssue("e1", "network-hardware fault again"),
	}

	got := DetectRecurringIssues(devices, issues)
	if len(got) != 1 {
		t.Fatalf("len(result) = %d, want 1", len(got))
	}
	if got[0].Pattern != "network-hardware" {
		t.Fatalf("Pattern = %q, want %q", got[0].Pattern, "network-hardware")
	}
	want := "Consider network infrastructure upgrade or configuration review"
	if got[0].Suggestion != want {
		t.Fatalf("Suggestion = %q, want %q", got[0].Suggestion, want)
	}
}

func TestDetectRecurringIssuesCaseInsensitiveTokens(t *testing.T) {
	t.Parallel()

	devices := []tracker.Equipment{makeDevice("e1", "SN-1")}
	issues := []tracker.DeviceIssue{
		makeIssue("e1", "POWER supply dead"),
		makeIssue("e1", "Power brick melted"),
	}

	got := DetectRecurringIssues(devices, issues)
	if len(got) != 1 {
		t.Fatalf("len(result) = %d, want 1", len(got))
	}
	if got[0].Pattern != "power" {
		t.Fatalf("Pattern = %q, want %q", got[0].Pattern, "power")
	}
	if got[0].Suggestion != "Check power supply and backup systems" {
		t.Fatalf("Suggestion = %q, want power remedy", got[0].Suggestion)
	}
}

func TestDetectRecurringIssuesOrdering(t *testing.T) {
	t.Parallel()

	devices := []tracker.Equipment{
		makeDevice("e1", "SN-1"),
		makeDevice("e2", "SN-2"),
	}
	issues := []tracker.DeviceIssue{
		makeIssue("e1", "printer jammed"),
		makeIssue("e1", "printer jammed"),
		makeIssue("e2", "printer jammed"),
		makeIssue("e2", "printer jammed"),
		makeIssue("e2", "printer jammed"),
	}

	got := DetectRecurringIssues(devices, issues)
	if len(got) != 2 {
		t.Fatalf("len(result) = %d, want 2", len(got))
	}
	if got[0].Equipment.ID != "e2" {
		t.Fatalf("result[0].Equipment.ID = %q, want %q (more issues first)", got[0].Equipment.ID, "e2")
	}
}
