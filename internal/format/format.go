// Package format renders projects, items, and stats for the CLI.
package format

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"trak/internal/hierarchy"
	"trak/internal/models"
)

var (
	statusColors = map[string]func(format string, a ...interface{}) string{
		string(models.StatusPending):    color.New(color.FgHiBlack).SprintfFunc(),
		string(models.StatusInProgress): color.New(color.FgYellow).SprintfFunc(),
		string(models.StatusReview):     color.New(color.FgGreen).SprintfFunc(),
	}
	priorityColors = map[string]func(format string, a ...interface{}) string{
		string(models.PriorityLow):    color.New(color.FgHiBlack).SprintfFunc(),
		string(models.PriorityMedium): color.New(color.FgCyan).SprintfFunc(),
		string(models.PriorityHigh):   color.New(color.FgRed).SprintfFunc(),
	}
	headerColor = color.New(color.FgCyan, color.Bold).SprintfFunc()
)

func colorStatus(status string) string {
	if paint, ok := statusColors[status]; ok {
		return paint("%s", status)
	}
	return status
}

func colorPriority(priority string) string {
	if paint, ok := priorityColors[priority]; ok {
		return paint("%s", priority)
	}
	return priority
}

// ProjectLine renders one project for list output.
func ProjectLine(project models.Project) string {
	return fmt.Sprintf("%-5d %-30s %-12s %d items", project.ID, project.Name, project.Status, len(project.Items))
}

// WriteProject prints a project header with its item table.
func WriteProject(w io.Writer, project models.Project) {
	fmt.Fprintln(w, headerColor("%s (#%d)", project.Name, project.ID))
	if project.Description != "" {
		fmt.Fprintln(w, project.Description)
	}
	fmt.Fprintf(w, "status: %s", project.Status)
	if project.StartDate != "" || project.EndDate != "" {
		fmt.Fprintf(w, "  %s .. %s", project.StartDate, project.EndDate)
	}
	fmt.Fprintln(w)

	if len(project.Items) == 0 {
		fmt.Fprintln(w, "no items")
		return
	}
	fmt.Fprintln(w)
	for _, item := range project.Items {
		fmt.Fprintln(w, ItemLine(project.Items, item))
	}
}

// ItemLine renders one item with its rolled-up progress.
func ItemLine(items []models.WorkItem, item models.WorkItem) string {
	progress := hierarchy.ComputeProgress(items, item.ID)
	line := fmt.Sprintf("%-5d %-8s %-30s %-12s %5.1f%%",
		item.ID, item.Type, item.Name, colorStatus(item.Status), progress)
	if item.Priority != "" {
		line += "  " + colorPriority(item.Priority)
	}
	if item.Assignee != "" {
		line += "  @" + item.Assignee
	}
	if item.Jira != nil && item.Jira.IssueKey != "" {
		line += "  [" + item.Jira.IssueKey + "]"
	}
	return line
}

// WriteTree prints the item forest with indentation by level and
// rolled-up progress per node.
func WriteTree(w io.Writer, items []models.WorkItem) {
	for _, item := range items {
		if item.ParentID == nil {
			writeTreeNode(w, items, item, 0)
		}
	}
}

func writeTreeNode(w io.Writer, items []models.WorkItem, item models.WorkItem, depth int) {
	progress := hierarchy.ComputeProgress(items, item.ID)
	indent := strings.Repeat("  ", depth)
	fmt.Fprintf(w, "%s%s #%d %s (%.1f%%)\n", indent, item.Type, item.ID, item.Name, progress)

	for _, childID := range item.Children {
		child := hierarchy.FindItem(items, childID)
		if child == nil {
			continue
		}
		writeTreeNode(w, items, *child, depth+1)
	}
}

// WriteStats prints dashboard aggregates.
func WriteStats(w io.Writer, stats hierarchy.Stats) {
	fmt.Fprintf(w, "items:     %d\n", stats.TotalItems)
	fmt.Fprintf(w, "progress:  %.1f%%\n", stats.Progress)
	fmt.Fprintf(w, "estimated: %.1fh  actual: %.1fh\n", stats.EstimatedHours, stats.ActualHours)

	if len(stats.ByStatus) > 0 {
		fmt.Fprintf(w, "by status:")
		for _, status := range []string{"pending", "in-progress", "review"} {
			if count := stats.ByStatus[status]; count > 0 {
				fmt.Fprintf(w, " %s=%d", colorStatus(status), count)
			}
		}
		fmt.Fprintln(w)
	}
	if len(stats.ByType) > 0 {
		fmt.Fprintf(w, "by type:  ")
		for _, itemType := range []string{"epic", "story", "task", "subtask"} {
			if count := stats.ByType[itemType]; count > 0 {
				fmt.Fprintf(w, " %s=%d", itemType, count)
			}
		}
		fmt.Fprintln(w)
	}
}
