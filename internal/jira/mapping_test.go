package jira

import (
	"testing"
	"time"

	"trak/internal/models"
)

func fixedClock() time.Time {
	return time.Date(2026, 2, 1, 12, 0, 0, 0, time.UTC)
}

func issueWith(issueType, status, priority string) Issue {
	return Issue{
		ID:   "10001",
		Key:  "ACME-12",
		Self: "https://acme.atlassian.net/rest/api/3/issue/10001",
		Fields: IssueFields{
			Summary:   "Ship the thing",
			IssueType: &NamedRef{Name: issueType},
			Status:    &NamedRef{Name: status},
			Priority:  &NamedRef{Name: priority},
			Created:   "2026-01-15T09:30:00.000+0000",
		},
	}
}

func TestMapIssueRoundTrip(t *testing.T) {
	// Round-trip: Story / In Progress / High.
	item := MapIssue(issueWith("Story", "In Progress", "High"), MapOptions{Now: fixedClock})

	if item.Type != "story" {
		t.Fatalf("type = %s, want story", item.Type)
	}
	if item.Status != "in-progress" {
		t.Fatalf("status = %s, want in-progress", item.Status)
	}
	if item.Priority != "high" {
		t.Fatalf("priority = %s, want high", item.Priority)
	}
	if item.Level != models.LevelStory {
		t.Fatalf("level = %d, want %d", item.Level, models.LevelStory)
	}
	if item.Jira == nil || item.Jira.IssueKey != "ACME-12" {
		t.Fatalf("jira link = %+v", item.Jira)
	}
}

func TestMapIssueTypeTable(t *testing.T) {
	cases := map[string]string{
		"Epic":     "epic",
		"Story":    "story",
		"Sub-task": "subtask",
		"Subtask":  "subtask",
		"Bug":      "task",
		"Spike":    "task",
	}
	for jiraType, want := range cases {
		item := MapIssue(issueWith(jiraType, "To Do", "Medium"), MapOptions{Now: fixedClock})
		if item.Type != want {
			t.Errorf("%s -> %s, want %s", jiraType, item.Type, want)
		}
	}
}

func TestMapStatusSubstring(t *testing.T) {
	cases := map[string]string{
		"Done":           "review",
		"Closed":         "review",
		"In Review":      "review",
		"In Progress":    "in-progress",
		"In Development": "in-progress",
		"To Do":          "pending",
		"Backlog":        "pending",
	}
	for jiraStatus, want := range cases {
		item := MapIssue(issueWith("Task", jiraStatus, "Medium"), MapOptions{StatusMapping: "substring", Now: fixedClock})
		if item.Status != want {
			t.Errorf("substring %q -> %s, want %s", jiraStatus, item.Status, want)
		}
	}
}

func TestMapStatusExact(t *testing.T) {
	cases := map[string]string{
		"To Do":       "pending",
		"In Progress": "in-progress",
		"Done":        "review",
		"Closed":      "review",
		// Exact match misses fall back to pending, unlike substring
		// which would catch "In Review".
		"In Review": "pending",
	}
	for jiraStatus, want := range cases {
		item := MapIssue(issueWith("Task", jiraStatus, "Medium"), MapOptions{StatusMapping: "exact", Now: fixedClock})
		if item.Status != want {
			t.Errorf("exact %q -> %s, want %s", jiraStatus, item.Status, want)
		}
	}
}

func TestMapPriorityDefaultsToMedium(t *testing.T) {
	issue := issueWith("Task", "To Do", "Highest")
	if item := MapIssue(issue, MapOptions{Now: fixedClock}); item.Priority != "medium" {
		t.Fatalf("unknown priority -> %s, want medium", item.Priority)
	}

	issue.Fields.Priority = nil
	if item := MapIssue(issue, MapOptions{Now: fixedClock}); item.Priority != "medium" {
		t.Fatalf("absent priority -> %s, want medium", item.Priority)
	}
}

func TestMapIssueNilRefs(t *testing.T) {
	// Jira omits the issuetype, status, and priority sub-objects on
	// some issues; mapping must not dereference them.
	issue := issueWith("Task", "To Do", "Low")
	issue.Fields.IssueType = nil
	issue.Fields.Status = nil
	issue.Fields.Priority = nil

	item := MapIssue(issue, MapOptions{Now: fixedClock})
	if item.Type != "task" {
		t.Fatalf("type = %s, want task", item.Type)
	}
	if item.Status != "pending" {
		t.Fatalf("status = %s, want pending", item.Status)
	}
	if item.Priority != "medium" {
		t.Fatalf("priority = %s, want medium", item.Priority)
	}
	if item.Jira == nil || item.Jira.IssueType != "" {
		t.Fatalf("jira link = %+v", item.Jira)
	}
}

func TestMapIssueDates(t *testing.T) {
	issue := issueWith("Task", "To Do", "Low")
	issue.Fields.DueDate = "2026-03-01"
	item := MapIssue(issue, MapOptions{Now: fixedClock})
	if item.StartDate != "2026-01-15" {
		t.Fatalf("startDate = %s", item.StartDate)
	}
	if item.EndDate != "2026-03-01" {
		t.Fatalf("endDate = %s", item.EndDate)
	}

	// Missing due date defaults to created + DefaultDueDays.
	issue.Fields.DueDate = ""
	item = MapIssue(issue, MapOptions{DefaultDueDays: 7, Now: fixedClock})
	if item.EndDate != "2026-01-22" {
		t.Fatalf("defaulted endDate = %s, want 2026-01-22", item.EndDate)
	}

	// The alternate variant's 30-day pad is just an option away.
	item = MapIssue(issue, MapOptions{DefaultDueDays: 30, Now: fixedClock})
	if item.EndDate != "2026-02-14" {
		t.Fatalf("defaulted endDate = %s, want 2026-02-14", item.EndDate)
	}

	// No created date at all: anchor on the clock.
	issue.Fields.Created = ""
	item = MapIssue(issue, MapOptions{DefaultDueDays: 7, Now: fixedClock})
	if item.StartDate != "2026-02-01" {
		t.Fatalf("startDate = %s, want 2026-02-01", item.StartDate)
	}
	if item.EndDate != "2026-02-08" {
		t.Fatalf("endDate = %s, want 2026-02-08", item.EndDate)
	}
}

func TestMapIssueHours(t *testing.T) {
	estimate := int64(7200)  // 2h
	spent := int64(5400)     // 1.5h rounds to 2
	issue := issueWith("Task", "To Do", "Low")
	issue.Fields.TimeOriginalEstimate = &estimate
	issue.Fields.TimeSpent = &spent

	item := MapIssue(issue, MapOptions{Now: fixedClock})
	if item.EstimatedHours != 2 {
		t.Fatalf("estimated = %v, want 2", item.EstimatedHours)
	}
	if item.ActualHours != 2 {
		t.Fatalf("actual = %v, want 2 (rounded)", item.ActualHours)
	}

	issue.Fields.TimeOriginalEstimate = nil
	issue.Fields.TimeSpent = nil
	item = MapIssue(issue, MapOptions{Now: fixedClock})
	if item.EstimatedHours != 0 || item.ActualHours != 0 {
		t.Fatalf("absent tracking should default to 0: %+v", item)
	}
}

func TestMapIssueAssignee(t *testing.T) {
	issue := issueWith("Task", "To Do", "Low")
	issue.Fields.Assignee = &UserRef{DisplayName: "Dana Developer"}
	item := MapIssue(issue, MapOptions{Now: fixedClock})
	if item.Assignee != "Dana Developer" {
		t.Fatalf("assignee = %s", item.Assignee)
	}
}
