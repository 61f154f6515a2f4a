package hierarchy

import "trak/internal/models"

// Leaf progress scores per status. Anything unrecognized counts as
// pending.
const (
	progressReview     = 100.0
	progressInProgress = 50.0
	progressPending    = 0.0
)

// Hours is a rollup of estimated and actual hours over a subtree.
type Hours struct {
	Estimated float64 `json:"estimated"`
	Actual    float64 `json:"actual"`
}

// ComputeProgress returns the completion percentage [0,100] for the
// subtree rooted at id.
//
// A leaf scores by status: review=100, in-progress=50, else 0. An
// internal node is the plain arithmetic mean of its direct children;
// deliberately NOT weighted by subtree size, so a two-child epic whose
// children are a single leaf and a ten-leaf story still averages the two
// equally. Child ids that resolve to nothing are skipped; a node whose
// children all dangle scores as a leaf.
func ComputeProgress(items []models.WorkItem, id int64) float64 {
	item := FindItem(items, id)
	if item == nil {
		return 0
	}
	return computeProgress(items, item, map[int64]bool{})
}

func computeProgress(items []models.WorkItem, item *models.WorkItem, seen map[int64]bool) float64 {
	if seen[item.ID] {
		return 0
	}
	seen[item.ID] = true

	var sum float64
	resolved := 0
	for _, childID := range item.Children {
		child := FindItem(items, childID)
		if child == nil {
			continue
		}
		sum += computeProgress(items, child, seen)
		resolved++
	}
	if resolved > 0 {
		return sum / float64(resolved)
	}

	switch models.ItemStatus(item.Status) {
	case models.StatusReview:
		return progressReview
	case models.StatusInProgress:
		return progressInProgress
	default:
		return progressPending
	}
}

// RollupHours returns estimated and actual hours for the subtree rooted
// at id. Unlike progress, hours SUM over children: an epic's hours are
// the total of everything under it, not an average.
func RollupHours(items []models.WorkItem, id int64) Hours {
	item := FindItem(items, id)
	if item == nil {
		return Hours{}
	}
	return rollupHours(items, item, map[int64]bool{})
}

func rollupHours(items []models.WorkItem, item *models.WorkItem, seen map[int64]bool) Hours {
	if seen[item.ID] {
		return Hours{}
	}
	seen[item.ID] = true

	var total Hours
	resolved := 0
	for _, childID := range item.Children {
		child := FindItem(items, childID)
		if child == nil {
			continue
		}
		childHours := rollupHours(items, child, seen)
		total.Estimated += childHours.Estimated
		total.Actual += childHours.Actual
		resolved++
	}
	if resolved > 0 {
		return total
	}

	return Hours{Estimated: item.EstimatedHours, Actual: item.ActualHours}
}

// Stats aggregates a project for the dashboard view.
type Stats struct {
	TotalItems     int            `json:"totalItems"`
	ByStatus       map[string]int `json:"byStatus"`
	ByType         map[string]int `json:"byType"`
	Progress       float64        `json:"progress"`
	EstimatedHours float64        `json:"estimatedHours"`
	ActualHours    float64        `json:"actualHours"`
}

// ProjectStats computes dashboard aggregates: item counts by status and
// type, the mean progress over root items, and total hours.
func ProjectStats(project *models.Project) Stats {
	stats := Stats{
		ByStatus: map[string]int{},
		ByType:   map[string]int{},
	}

	var progressSum float64
	roots := 0
	for _, item := range project.Items {
		stats.TotalItems++
		stats.ByStatus[item.Status]++
		stats.ByType[item.Type]++
		if item.ParentID == nil {
			progressSum += ComputeProgress(project.Items, item.ID)
			rolled := RollupHours(project.Items, item.ID)
			stats.EstimatedHours += rolled.Estimated
			stats.ActualHours += rolled.Actual
			roots++
		}
	}
	if roots > 0 {
		stats.Progress = progressSum / float64(roots)
	}

	return stats
}
