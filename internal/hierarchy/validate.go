package hierarchy

import "trak/internal/models"

// ValidateForest checks the structural invariants of a project's item
// slice: unique ids, bidirectional parent/children consistency, child
// level = parent level + 1, and the strict type nesting order. Used by
// the server before persisting a client-supplied snapshot.
//
// Dangling child references are tolerated (rollups skip them), but a
// child whose ParentID is missing from its parent's Children list, or
// vice versa with a live target, is a hard error.
//
// Roots are normally epics at level 1. A non-epic root is accepted when
// its level matches its type's natural depth: that is the shape
// ImportBatch produces for pre-leveled external items, which stay
// unparented until someone moves them under an epic.
func ValidateForest(items []models.WorkItem) error {
	byID := make(map[int64]*models.WorkItem, len(items))
	for i := range items {
		item := &items[i]
		if _, dup := byID[item.ID]; dup {
			return validationf("duplicate item id %d", item.ID)
		}
		byID[item.ID] = item
	}

	for i := range items {
		item := &items[i]

		itemType := models.ItemType(item.Type)
		if !models.IsValidItemType(itemType) {
			return validationf("item %d: invalid type %q", item.ID, item.Type)
		}

		if item.ParentID == nil {
			if item.Level != models.LevelOf(itemType) {
				return validationf("item %d: root %s must have level %d, got %d", item.ID, item.Type, models.LevelOf(itemType), item.Level)
			}
		} else {
			parent, ok := byID[*item.ParentID]
			if !ok {
				return validationf("item %d: parent %d not found", item.ID, *item.ParentID)
			}
			want, _ := models.ParentTypeOf(itemType)
			if models.ItemType(parent.Type) != want {
				return validationf("item %d: %s nested under %s", item.ID, item.Type, parent.Type)
			}
			if item.Level != parent.Level+1 {
				return validationf("item %d: level %d under parent level %d", item.ID, item.Level, parent.Level)
			}
			if !containsID(parent.Children, item.ID) {
				return validationf("item %d: missing from parent %d children", item.ID, parent.ID)
			}
		}

		for _, childID := range item.Children {
			child, ok := byID[childID]
			if !ok {
				continue
			}
			if child.ParentID == nil || *child.ParentID != item.ID {
				return validationf("item %d: lists child %d which does not point back", item.ID, childID)
			}
		}
	}

	return nil
}

func containsID(ids []int64, id int64) bool {
	for _, candidate := range ids {
		if candidate == id {
			return true
		}
	}
	return false
}
