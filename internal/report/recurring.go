package report

import (
	"sort"
	"strings"

	"github.com/mofahq/tasktracker/internal/tracker"
)

// recurringIssueThreshold is the issue count at which a device is reported.
const recurringIssueThreshold = 2

// minKeywordLength filters out short, uninformative title words.
const minKeywordLength = 5

// genericSuggestion applies when no keyword maps to a specific remedy.
const genericSuggestion = "Schedule comprehensive review and maintenance for this equipment"

// suggestionEntry maps a keyword substring to a canned remediation.
type suggestionEntry struct {
	keyword    string
	suggestion string
}

// suggestionTable is matched in order; the first keyword found as a
// substring of the detected pattern wins.
var suggestionTable = []suggestionEntry{
	{"network", "Consider network infrastructure upgrade or configuration review"},
	{"hardware", "Schedule hardware maintenance or replacement"},
	{"software", "Update software or review compatibility issues"},
	{"power", "Check power supply and backup systems"},
	{"performance", "Consider hardware upgrade or optimization"},
	{"repair", "Schedule comprehensive maintenance check"},
}

// RecurringIssue flags a device with repeated problem reports.
type RecurringIssue struct {
	Equipment  tracker.Equipment
	IssueCount int

	// Pattern is the most frequent significant title keyword, empty when
	// no keyword repeats.
	Pattern    string
	Suggestion string
}

// DetectRecurringIssues finds equipment with two or more reported issues
// and, where issue titles share a significant keyword, a suggested remedy.
//
// The keyword pass is a plain word-frequency heuristic: titles are
// lowercased and split on whitespace, words shorter than five characters
// are discarded, and the most frequent remaining word must occur at least
// twice to count as a pattern. Devices that clear the issue threshold
// without a repeated keyword are still reported, with a generic suggestion.
func DetectRecurringIssues(equipment []tracker.Equipment, issues []tracker.DeviceIssue) []RecurringIssue {
	byEquipment := make(map[string][]tracker.DeviceIssue)
	for _, issue := range issues {
		byEquipment[issue.EquipmentID] = append(byEquipment[issue.EquipmentID], issue)
	}

	var out []RecurringIssue
	for _, device := range equipment {
		deviceIssues := byEquipment[device.ID]
		if len(deviceIssues) < recurringIssueThreshold {
			continue
		}

		pattern, occurrences := dominantKeyword(deviceIssues)
		entry := RecurringIssue{Equipment: device, IssueCount: len(deviceIssues)}
		if occurrences >= 2 {
			entry.Pattern = pattern
			entry.Suggestion = suggestionFor(pattern)
		} else {
			entry.Suggestion = genericSuggestion
		}
		out = append(out, entry)
	}

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].IssueCount != out[j].IssueCount {
			return out[i].IssueCount > out[j].IssueCount
		}
		return out[i].Equipment.SerialNumber < out[j].Equipment.SerialNumber
	})
	return out
}

// dominantKeyword returns the most frequent significant word across issue
// titles and its occurrence count. Ties keep the word seen first, so the
// result is deterministic for a given issue order.
func dominantKeyword(issues []tracker.DeviceIssue) (string, int) {
	counts := make(map[string]int)
	var order []string
	for _, issue := range issues {
		for _, word := range strings.Fields(strings.ToLower(issue.Title)) {
			if len(word) < minKeywordLength {
				continue
			}
			if counts[word] == 0 {
				order = append(order, word)
			}
			counts[word]++
		}
	}

	best := ""
	bestCount := 0
	for _, word := range order {
		if counts[word] > bestCount {
			best = word
			bestCount = counts[word]
		}
	}
	return best, bestCount
}

// suggestionFor maps a detected pattern to a remediation sentence.
func suggestionFor(pattern string) string {
	for _, entry := range suggestionTable {
		if strings.Contains(pattern, entry.keyword) {
			return entry.suggestion
		}
	}
	return genericSuggestion
}
