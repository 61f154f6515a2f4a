// Package hierarchy maintains the epic/story/task/subtask forest of a
// project and answers rollup queries over it. All operations are
// synchronous over the caller's in-memory item slice; a failed mutation
// leaves the slice untouched.
package hierarchy

import (
	"strings"

	"trak/internal/models"
)

// FindItem returns a pointer into items for the given id, or nil.
func FindItem(items []models.WorkItem, id int64) *models.WorkItem {
	for i := range items {
		if items[i].ID == id {
			return &items[i]
		}
	}
	return nil
}

// NextItemID returns the next free item id within a project.
func NextItemID(items []models.WorkItem) int64 {
	var max int64
	for i := range items {
		if items[i].ID > max {
			max = items[i].ID
		}
	}
	return max + 1
}

// AddItem validates draft, assigns an id and level, appends it to the
// project and links it under parentID when given. The returned pointer
// addresses the stored copy.
func AddItem(project *models.Project, draft models.WorkItem, parentID *int64) (*models.WorkItem, error) {
	if strings.TrimSpace(draft.Name) == "" {
		return nil, validationf("name is required")
	}

	itemType, err := models.ParseItemType(draft.Type)
	if err != nil {
		return nil, validationf("%v", err)
	}

	if draft.Status == "" {
		draft.Status = string(models.StatusPending)
	}
	status, err := models.ParseItemStatus(draft.Status)
	if err != nil {
		return nil, validationf("%v", err)
	}

	if draft.Priority == "" {
		draft.Priority = string(models.PriorityMedium)
	}
	priority, err := models.ParsePriority(draft.Priority)
	if err != nil {
		return nil, validationf("%v", err)
	}

	if draft.EstimatedHours < 0 || draft.ActualHours < 0 {
		return nil, validationf("hours cannot be negative")
	}

	wantParent, needsParent := models.ParentTypeOf(itemType)
	var parent *models.WorkItem
	if parentID != nil {
		parent = FindItem(project.Items, *parentID)
		if parent == nil {
			return nil, validationf("parent %d not found", *parentID)
		}
		if !needsParent {
			return nil, validationf("%s cannot have a parent", itemType)
		}
		if models.ItemType(parent.Type) != wantParent {
			return nil, validationf("%s must be nested under %s, not %s", itemType, wantParent, parent.Type)
		}
	} else if needsParent {
		return nil, validationf("%s requires a %s parent", itemType, wantParent)
	}

	item := draft
	item.ID = NextItemID(project.Items)
	item.Type = string(itemType)
	item.Status = string(status)
	item.Priority = string(priority)
	item.Name = strings.TrimSpace(draft.Name)
	item.Children = []int64{}
	if item.Comments == nil {
		item.Comments = []models.Comment{}
	}
	if parent != nil {
		id := parent.ID
		item.ParentID = &id
		item.Level = parent.Level + 1
	} else {
		item.ParentID = nil
		item.Level = models.LevelEpic
	}

	project.Items = append(project.Items, item)
	if parent != nil {
		// The append above may have reallocated; relocate the parent.
		stored := FindItem(project.Items, parent.ID)
		stored.Children = append(stored.Children, item.ID)
	}

	return FindItem(project.Items, item.ID), nil
}

// DeleteItem removes the item and its whole descendant subtree, then
// strips dangling references from surviving children lists. Deleting an
// unknown id is a no-op.
func DeleteItem(project *models.Project, id int64) {
	if FindItem(project.Items, id) == nil {
		return
	}

	doomed := descendantSet(project.Items, id)

	survivors := make([]models.WorkItem, 0, len(project.Items))
	for _, item := range project.Items {
		if doomed[item.ID] {
			continue
		}
		kept := make([]int64, 0, len(item.Children))
		for _, child := range item.Children {
			if !doomed[child] {
				kept = append(kept, child)
			}
		}
		item.Children = kept
		survivors = append(survivors, item)
	}
	project.Items = survivors
}

// MoveItem re-parents an item, carrying its whole subtree along. The
// new parent must match the item's required parent type; moving to the
// root (nil parentID) is only valid for epics. Levels of the item and
// every descendant are recomputed from the new position. All checks run
// before any mutation, so a rejected move leaves the project untouched.
func MoveItem(project *models.Project, id int64, parentID *int64) error {
	item := FindItem(project.Items, id)
	if item == nil {
		return validationf("item %d not found", id)
	}

	itemType := models.ItemType(item.Type)
	wantParent, needsParent := models.ParentTypeOf(itemType)

	var parent *models.WorkItem
	if parentID != nil {
		if *parentID == id {
			return validationf("item %d cannot be its own parent", id)
		}
		parent = FindItem(project.Items, *parentID)
		if parent == nil {
			return validationf("parent %d not found", *parentID)
		}
		if !needsParent {
			return validationf("%s cannot have a parent", itemType)
		}
		if models.ItemType(parent.Type) != wantParent {
			return validationf("%s must be nested under %s, not %s", itemType, wantParent, parent.Type)
		}
		if descendantSet(project.Items, id)[parent.ID] {
			return validationf("item %d cannot move under its own descendant %d", id, parent.ID)
		}
	} else if needsParent {
		return validationf("%s requires a %s parent", itemType, wantParent)
	}

	if item.ParentID != nil {
		if old := FindItem(project.Items, *item.ParentID); old != nil {
			old.Children = removeID(old.Children, id)
		}
	}

	if parent != nil {
		pid := parent.ID
		item.ParentID = &pid
		item.Level = parent.Level + 1
		parent.Children = append(parent.Children, id)
	} else {
		item.ParentID = nil
		item.Level = models.LevelEpic
	}
	relevelSubtree(project.Items, item)

	return nil
}

// relevelSubtree walks item's descendants and rewrites each level as
// parent level + 1. Visited tracking mirrors descendantSet.
func relevelSubtree(items []models.WorkItem, root *models.WorkItem) {
	visited := map[int64]bool{root.ID: true}
	queue := []*models.WorkItem{root}
	for len(queue) > 0 {
		next := queue[0]
		queue = queue[1:]
		for _, childID := range next.Children {
			child := FindItem(items, childID)
			if child == nil || visited[childID] {
				continue
			}
			visited[childID] = true
			child.Level = next.Level + 1
			queue = append(queue, child)
		}
	}
}

func removeID(ids []int64, id int64) []int64 {
	kept := make([]int64, 0, len(ids))
	for _, candidate := range ids {
		if candidate != id {
			kept = append(kept, candidate)
		}
	}
	return kept
}

// UpdateStatus sets the status of a single item. Parent rollups are
// computed, never stored, so nothing cascades.
func UpdateStatus(project *models.Project, id int64, rawStatus string) error {
	status, err := models.ParseItemStatus(rawStatus)
	if err != nil {
		return validationf("%v", err)
	}
	item := FindItem(project.Items, id)
	if item == nil {
		return validationf("item %d not found", id)
	}
	item.Status = string(status)
	return nil
}

// descendantSet returns the transitive closure of id over Children,
// including id itself. Visited tracking guards against reference cycles
// a corrupted import may have introduced.
func descendantSet(items []models.WorkItem, id int64) map[int64]bool {
	closure := map[int64]bool{}
	queue := []int64{id}
	for len(queue) > 0 {
		next := queue[0]
		queue = queue[1:]
		if closure[next] {
			continue
		}
		closure[next] = true
		if item := FindItem(items, next); item != nil {
			queue = append(queue, item.Children...)
		}
	}
	return closure
}
