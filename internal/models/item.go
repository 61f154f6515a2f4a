package models

import (
	"time"

	"github.com/google/uuid"
)

// WorkItem is a single node in a project's epic/story/task/subtask tree.
// ParentID is nil for root items; Children holds the ids of items
// whose ParentID points back here. The two sides are kept consistent by
// the hierarchy package on every mutation.
type WorkItem struct {
	ID             int64     `json:"id"`
	Name           string    `json:"name"`
	Type           string    `json:"type"`
	Level          int       `json:"level"`
	ParentID       *int64    `json:"parentId"`
	Children       []int64   `json:"children"`
	Status         string    `json:"status"`
	Priority       string    `json:"priority"`
	Assignee       string    `json:"assignee,omitempty"`
	StartDate      string    `json:"startDate,omitempty"`
	EndDate        string    `json:"endDate,omitempty"`
	EstimatedHours float64   `json:"estimatedHours"`
	ActualHours    float64   `json:"actualHours"`
	Comments       []Comment `json:"comments"`
	Jira           *JiraLink `json:"jira"`
}

// Comment is an append-only note on a work item.
type Comment struct {
	ID           string    `json:"id"`
	Text         string    `json:"text"`
	Author       string    `json:"author"`
	Timestamp    time.Time `json:"timestamp"`
	PostedToJira bool      `json:"postedToJira"`
}

// NewComment builds a comment with a fresh id and the current time.
func NewComment(text, author string) Comment {
	return Comment{
		ID:        uuid.NewString(),
		Text:      text,
		Author:    author,
		Timestamp: time.Now().UTC(),
	}
}

// JiraLink records the remote issue a work item is bound to. It is set
// once on create/import and only touched again by re-sync.
type JiraLink struct {
	IssueKey   string    `json:"issueKey"`
	IssueID    string    `json:"issueId"`
	IssueURL   string    `json:"issueUrl"`
	IssueType  string    `json:"issueType"`
	LastSynced time.Time `json:"lastSynced"`
	SyncStatus string    `json:"syncStatus"`
}
