package format

import (
	"strings"
	"testing"

	"github.com/fatih/color"

	"trak/internal/hierarchy"
	"trak/internal/models"
)

func init() {
	color.NoColor = true
}

func sampleItems() []models.WorkItem {
	epicID := int64(1)
	storyID := int64(2)
	return []models.WorkItem{
		{ID: 1, Name: "Epic", Type: "epic", Level: 1, Status: "pending", Children: []int64{2}},
		{ID: 2, Name: "Story", Type: "story", Level: 2, Status: "pending", ParentID: &epicID, Children: []int64{3}},
		{ID: 3, Name: "Task", Type: "task", Level: 3, Status: "review", ParentID: &storyID},
	}
}

func TestWriteTree(t *testing.T) {
	var buf strings.Builder
	WriteTree(&buf, sampleItems())
	out := buf.String()

	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected 3 tree lines, got %d:\n%s", len(lines), out)
	}
	if !strings.HasPrefix(lines[0], "epic #1") {
		t.Fatalf("unexpected root line: %q", lines[0])
	}
	if !strings.HasPrefix(lines[1], "  story #2") {
		t.Fatalf("expected indented story, got %q", lines[1])
	}
	if !strings.HasPrefix(lines[2], "    task #3") {
		t.Fatalf("expected doubly indented task, got %q", lines[2])
	}
	// The leaf is in review, so every ancestor rolls up to 100%.
	for _, line := range lines {
		if !strings.Contains(line, "(100.0%)") {
			t.Fatalf("expected 100%% rollup on %q", line)
		}
	}
}

func TestItemLine(t *testing.T) {
	items := sampleItems()
	items[2].Assignee = "ada"
	items[2].Priority = "high"
	items[2].Jira = &models.JiraLink{IssueKey: "TRAK-9"}

	line := ItemLine(items, items[2])
	for _, want := range []string{"task", "Task", "review", "@ada", "high", "[TRAK-9]", "100.0%"} {
		if !strings.Contains(line, want) {
			t.Fatalf("expected %q in line %q", want, line)
		}
	}
}

func TestWriteStats(t *testing.T) {
	var buf strings.Builder
	WriteStats(&buf, hierarchy.Stats{
		TotalItems:     3,
		Progress:       75,
		EstimatedHours: 12,
		ActualHours:    6,
		ByStatus:       map[string]int{"pending": 2, "review": 1},
		ByType:         map[string]int{"epic": 1, "story": 2},
	})
	out := buf.String()

	for _, want := range []string{"items:     3", "75.0%", "12.0h", "pending=2", "review=1", "epic=1"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in output:\n%s", want, out)
		}
	}
}

func TestWriteProjectEmpty(t *testing.T) {
	var buf strings.Builder
	WriteProject(&buf, models.Project{ID: 1, Name: "Empty", Status: "planning"})
	if !strings.Contains(buf.String(), "no items") {
		t.Fatalf("expected empty-project marker, got:\n%s", buf.String())
	}
}
