package api

import (
	"trak/internal/hierarchy"
	"trak/internal/models"
)

// HealthResponse is the liveness probe payload.
type HealthResponse struct {
	Status   string `json:"status"`
	Message  string `json:"message,omitempty"`
	Database string `json:"database,omitempty"`
}

// InfoResponse summarizes the server's store.
type InfoResponse struct {
	DBPath        string         `json:"db_path"`
	SchemaVersion int            `json:"schema_version"`
	TotalProjects int            `json:"total_projects"`
	StatusCounts  map[string]int `json:"status_counts"`
}

// ProjectCreateRequest creates a project. A zero ID asks the store to
// assign one; a non-zero ID is kept and collides with 409.
type ProjectCreateRequest struct {
	ID          int64             `json:"id,omitempty"`
	Name        string            `json:"name"`
	Description string            `json:"description,omitempty"`
	StartDate   string            `json:"startDate,omitempty"`
	EndDate     string            `json:"endDate,omitempty"`
	Status      string            `json:"status,omitempty"`
	Items       []models.WorkItem `json:"items,omitempty"`
}

// StatsResponse carries dashboard aggregates for one project.
type StatsResponse struct {
	ProjectID int64           `json:"projectId"`
	Stats     hierarchy.Stats `json:"stats"`
}

// HolidayResponse is one public holiday entry.
type HolidayResponse struct {
	Date string `json:"date"`
	Name string `json:"name"`
	Type string `json:"type"`
}

// JiraCreateIssueRequest asks the server-side Jira proxy to create an
// issue.
type JiraCreateIssueRequest struct {
	Summary   string `json:"summary"`
	IssueType string `json:"issueType"`
	Priority  string `json:"priority,omitempty"`
	DueDate   string `json:"duedate,omitempty"`
}

// JiraIssueRef identifies a created Jira issue.
type JiraIssueRef struct {
	Key string `json:"key"`
	ID  string `json:"id"`
	URL string `json:"self"`
}

// JiraCommentRequest posts a comment to a Jira issue via the proxy.
type JiraCommentRequest struct {
	IssueKey string `json:"issueKey"`
	Body     string `json:"body"`
}

// ErrorResponse is the error body the server returns.
type ErrorResponse struct {
	Error     string `json:"error"`
	Code      string `json:"code,omitempty"`
	ErrorCode int    `json:"error_code,omitempty"`
}
