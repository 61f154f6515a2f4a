package jira

import (
	"math"
	"strings"
	"time"

	"trak/internal/config"
	"trak/internal/models"
)

// MapOptions controls how Jira fields translate to work item fields.
type MapOptions struct {
	// StatusMapping is "substring" or "exact"; see config.JiraConfig.
	StatusMapping string
	// DefaultDueDays pads a missing due date from the creation date.
	DefaultDueDays int
	// Now anchors date defaults when the issue has no created date.
	Now func() time.Time
}

// OptionsFromConfig derives mapping options from the jira config
// section.
func OptionsFromConfig(cfg config.JiraConfig) MapOptions {
	return MapOptions{
		StatusMapping:  cfg.StatusMapping,
		DefaultDueDays: cfg.DefaultDueDays,
	}
}

// exactStatuses is the exact-match mapping table observed in the
// alternate server variant.
var exactStatuses = map[string]models.ItemStatus{
	"To Do":       models.StatusPending,
	"In Progress": models.StatusInProgress,
	"Done":        models.StatusReview,
	"Closed":      models.StatusReview,
}

// MapIssue translates a Jira issue into a work item draft. The draft is
// flat (no parent link); ImportBatch assigns ids.
func MapIssue(issue Issue, opts MapOptions) models.WorkItem {
	if opts.DefaultDueDays <= 0 {
		opts.DefaultDueDays = config.DefaultJiraDueDays
	}
	now := time.Now
	if opts.Now != nil {
		now = opts.Now
	}

	itemType := mapIssueType(refName(issue.Fields.IssueType))
	startDate := isoDate(issue.Fields.Created, now)
	endDate := isoDate(issue.Fields.DueDate, nil)
	if endDate == "" {
		endDate = addDays(startDate, opts.DefaultDueDays)
	}

	item := models.WorkItem{
		Name:           issue.Fields.Summary,
		Type:           string(itemType),
		Level:          models.LevelOf(itemType),
		Status:         string(mapStatus(refName(issue.Fields.Status), opts.StatusMapping)),
		Priority:       string(mapPriority(refName(issue.Fields.Priority))),
		StartDate:      startDate,
		EndDate:        endDate,
		EstimatedHours: secondsToHours(issue.Fields.TimeOriginalEstimate),
		ActualHours:    secondsToHours(issue.Fields.TimeSpent),
		Children:       []int64{},
		Comments:       []models.Comment{},
		Jira: &models.JiraLink{
			IssueKey:   issue.Key,
			IssueID:    issue.ID,
			IssueURL:   issue.Self,
			IssueType:  refName(issue.Fields.IssueType),
			LastSynced: now().UTC(),
			SyncStatus: "imported",
		},
	}
	if issue.Fields.Assignee != nil {
		item.Assignee = issue.Fields.Assignee.DisplayName
	}
	return item
}

// refName reads the name out of an optional sub-object. Jira omits
// issuetype, status, or priority on some issues, so every name access
// goes through here.
func refName(ref *NamedRef) string {
	if ref == nil {
		return ""
	}
	return ref.Name
}

// mapIssueType folds Jira issue types into the four-level hierarchy.
// Everything unrecognized, Bug included, lands on task.
func mapIssueType(name string) models.ItemType {
	switch strings.ToLower(name) {
	case "epic":
		return models.TypeEpic
	case "story":
		return models.TypeStory
	case "sub-task", "subtask":
		return models.TypeSubtask
	default:
		return models.TypeTask
	}
}

func mapStatus(name, mapping string) models.ItemStatus {
	if mapping == "exact" {
		if status, ok := exactStatuses[name]; ok {
			return status
		}
		return models.StatusPending
	}

	lower := strings.ToLower(name)
	switch {
	case strings.Contains(lower, "done"), strings.Contains(lower, "closed"), strings.Contains(lower, "review"):
		return models.StatusReview
	case strings.Contains(lower, "progress"), strings.Contains(lower, "development"):
		return models.StatusInProgress
	default:
		return models.StatusPending
	}
}

func mapPriority(name string) models.Priority {
	priority := models.Priority(strings.ToLower(strings.TrimSpace(name)))
	if !models.IsValidPriority(priority) {
		return models.PriorityMedium
	}
	return priority
}

// isoDate strips any time component from a Jira date. Missing values
// fall back to today when a clock is supplied, else stay empty.
func isoDate(raw string, now func() time.Time) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		if now == nil {
			return ""
		}
		return now().UTC().Format("2006-01-02")
	}
	if len(raw) >= 10 {
		return raw[:10]
	}
	return raw
}

func addDays(date string, days int) string {
	t, err := time.Parse("2006-01-02", date)
	if err != nil {
		return date
	}
	return t.AddDate(0, 0, days).Format("2006-01-02")
}

func secondsToHours(seconds *int64) float64 {
	if seconds == nil {
		return 0
	}
	return math.Round(float64(*seconds) / 3600)
}
