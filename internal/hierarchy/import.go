package hierarchy

import (
	"strings"

	"trak/internal/models"
)

// ImportBatch appends externally sourced items (spreadsheet rows, Jira
// issues) to the project and returns the ids assigned to them.
//
// Imports are strictly additive: nothing is merged by name or issue
// key, so running the same import twice produces two full copies. That
// matches the historical behavior and is asserted by tests rather than
// silently deduplicated.
func ImportBatch(project *models.Project, drafts []models.WorkItem) ([]int64, error) {
	for i, draft := range drafts {
		if strings.TrimSpace(draft.Name) == "" {
			return nil, validationf("import row %d: name is required", i+1)
		}
		if draft.Type != "" && !models.IsValidItemType(models.ItemType(draft.Type)) {
			return nil, validationf("import row %d: invalid type %q", i+1, draft.Type)
		}
		if draft.Status != "" && !models.IsValidItemStatus(models.ItemStatus(draft.Status)) {
			return nil, validationf("import row %d: invalid status %q", i+1, draft.Status)
		}
	}

	ids := make([]int64, 0, len(drafts))
	nextID := NextItemID(project.Items)
	for _, draft := range drafts {
		item := draft
		item.ID = nextID
		nextID++

		item.Name = strings.TrimSpace(item.Name)
		if item.Type == "" {
			item.Type = string(models.TypeEpic)
		}
		if item.Level == 0 {
			item.Level = models.LevelOf(models.ItemType(item.Type))
		}
		if item.Status == "" {
			item.Status = string(models.StatusPending)
		}
		if item.Priority == "" {
			item.Priority = string(models.PriorityMedium)
		}
		// Imported items arrive flat or pre-leveled; they are never
		// linked into an existing subtree here.
		item.ParentID = nil
		item.Children = []int64{}
		if item.Comments == nil {
			item.Comments = []models.Comment{}
		}

		project.Items = append(project.Items, item)
		ids = append(ids, item.ID)
	}

	return ids, nil
}
