package models

// Early versions of the tracker stored a flat task list: no type, level,
// children or hour fields. MigrateItems upgrades such items in place to
// the hierarchical shape so the rest of the code never has to probe for
// missing fields.
//
// A legacy task has no parent, so it becomes a root item, and roots are
// epics by invariant. Status, priority, dates, assignee, comments and
// the jira link carry over unchanged.

// IsLegacyItem reports whether an item still has the flat pre-hierarchy
// shape.
func IsLegacyItem(item WorkItem) bool {
	return item.Type == "" || item.Level == 0
}

// MigrateItems returns items with every legacy entry upgraded, and the
// number of entries that were upgraded.
func MigrateItems(items []WorkItem) ([]WorkItem, int) {
	migrated := 0
	out := make([]WorkItem, len(items))
	for i, item := range items {
		if IsLegacyItem(item) {
			item = migrateItem(item)
			migrated++
		}
		out[i] = item
	}
	return out, migrated
}

func migrateItem(item WorkItem) WorkItem {
	item.Type = string(TypeEpic)
	item.Level = LevelEpic
	item.ParentID = nil
	if item.Children == nil {
		item.Children = []int64{}
	}
	if item.Status == "" {
		item.Status = string(StatusPending)
	}
	if item.Priority == "" {
		item.Priority = string(PriorityMedium)
	}
	if item.Comments == nil {
		item.Comments = []Comment{}
	}
	return item
}
