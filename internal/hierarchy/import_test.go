package hierarchy

import (
	"testing"

	"trak/internal/models"
)

func TestImportBatchAppends(t *testing.T) {
	project := newProject()
	mustAdd(t, project, "Existing", "epic", nil)

	batch := []models.WorkItem{
		{Name: "Imported epic"},
		{Name: "Imported story", Type: "story", Level: 2},
	}
	ids, err := ImportBatch(project, batch)
	if err != nil {
		t.Fatalf("import: %v", err)
	}
	if len(ids) != 2 || ids[0] != 2 || ids[1] != 3 {
		t.Fatalf("ids = %v, want [2 3]", ids)
	}

	first := FindItem(project.Items, ids[0])
	if first.Type != "epic" || first.Level != 1 || first.Status != "pending" || first.Priority != "medium" {
		t.Fatalf("defaults not applied: %+v", first)
	}
	second := FindItem(project.Items, ids[1])
	if second.Type != "story" || second.Level != 2 {
		t.Fatalf("pre-leveled item not preserved: %+v", second)
	}
}

func TestImportBatchResultValidates(t *testing.T) {
	// Imported non-epic items stay unparented. The forest check must
	// accept that shape, or every story import would fail at save time.
	project := newProject()
	mustAdd(t, project, "Existing", "epic", nil)

	batch := []models.WorkItem{
		{Name: "Story", Type: "story", Level: 2},
		{Name: "Sub", Type: "subtask", Level: 4},
	}
	if _, err := ImportBatch(project, batch); err != nil {
		t.Fatalf("import: %v", err)
	}
	if err := ValidateForest(project.Items); err != nil {
		t.Fatalf("imported forest rejected: %v", err)
	}
}

func TestImportBatchIsNotIdempotent(t *testing.T) {
	// Running the same batch twice duplicates every item. That is the
	// documented behavior, not a bug to fix here.
	project := newProject()
	batch := []models.WorkItem{{Name: "Dup"}, {Name: "Dup 2"}}

	if _, err := ImportBatch(project, batch); err != nil {
		t.Fatalf("first import: %v", err)
	}
	if _, err := ImportBatch(project, batch); err != nil {
		t.Fatalf("second import: %v", err)
	}

	if len(project.Items) != 4 {
		t.Fatalf("expected 4 items after double import, got %d", len(project.Items))
	}
	names := map[string]int{}
	for _, item := range project.Items {
		names[item.Name]++
	}
	if names["Dup"] != 2 || names["Dup 2"] != 2 {
		t.Fatalf("expected two copies of each, got %v", names)
	}
}

func TestImportBatchRejectsBadRows(t *testing.T) {
	project := newProject()

	if _, err := ImportBatch(project, []models.WorkItem{{Name: ""}}); err == nil {
		t.Fatal("expected error for empty name")
	}
	if _, err := ImportBatch(project, []models.WorkItem{{Name: "X", Type: "bug"}}); err == nil {
		t.Fatal("expected error for invalid type")
	}
	if _, err := ImportBatch(project, []models.WorkItem{{Name: "X", Status: "done"}}); err == nil {
		t.Fatal("expected error for invalid status")
	}
	// A failed import applies nothing.
	if len(project.Items) != 0 {
		t.Fatalf("failed import mutated project: %d items", len(project.Items))
	}
}
