package models

import "testing"

func TestParseItemStatus(t *testing.T) {
	status, err := ParseItemStatus("  Review ")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if status != StatusReview {
		t.Fatalf("expected review, got %s", status)
	}

	if _, err := ParseItemStatus("done"); err == nil {
		t.Fatal("expected error for unknown status")
	}
	if _, err := ParseItemStatus(""); err == nil {
		t.Fatal("expected error for empty status")
	}
}

func TestParseItemType(t *testing.T) {
	itemType, err := ParseItemType("Epic")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if itemType != TypeEpic {
		t.Fatalf("expected epic, got %s", itemType)
	}

	if _, err := ParseItemType("bug"); err == nil {
		t.Fatal("expected error for unknown type")
	}
}

func TestLevelOf(t *testing.T) {
	cases := map[ItemType]int{
		TypeEpic:    1,
		TypeStory:   2,
		TypeTask:    3,
		TypeSubtask: 4,
	}
	for itemType, want := range cases {
		if got := LevelOf(itemType); got != want {
			t.Fatalf("LevelOf(%s) = %d, want %d", itemType, got, want)
		}
	}
	if LevelOf("bogus") != 0 {
		t.Fatal("expected 0 for unknown type")
	}
}

func TestParentTypeOf(t *testing.T) {
	if parent, ok := ParentTypeOf(TypeStory); !ok || parent != TypeEpic {
		t.Fatalf("story parent = %s/%v, want epic/true", parent, ok)
	}
	if parent, ok := ParentTypeOf(TypeSubtask); !ok || parent != TypeTask {
		t.Fatalf("subtask parent = %s/%v, want task/true", parent, ok)
	}
	if _, ok := ParentTypeOf(TypeEpic); ok {
		t.Fatal("epic must not have a parent type")
	}
}

func TestMigrateItems(t *testing.T) {
	legacy := WorkItem{ID: 1, Name: "Old task", Status: "in-progress", Priority: "high", Assignee: "sam"}
	modern := WorkItem{ID: 2, Name: "Story", Type: "story", Level: 2, Children: []int64{}, Status: "pending", Priority: "low"}

	items, migrated := MigrateItems([]WorkItem{legacy, modern})
	if migrated != 1 {
		t.Fatalf("expected 1 migrated, got %d", migrated)
	}

	got := items[0]
	if got.Type != string(TypeEpic) || got.Level != LevelEpic {
		t.Fatalf("legacy item not promoted to root epic: %+v", got)
	}
	if got.Status != "in-progress" || got.Priority != "high" || got.Assignee != "sam" {
		t.Fatalf("legacy fields not preserved: %+v", got)
	}
	if got.Children == nil || got.Comments == nil {
		t.Fatal("expected empty slices, not nil")
	}

	if items[1].Type != "story" || items[1].Level != 2 {
		t.Fatalf("modern item must pass through unchanged: %+v", items[1])
	}
}
