package models

import "time"

// Project groups a forest of work items with its own schedule and status.
// JSON field names follow the browser client's wire contract
// (camelCase, items embedded).
type Project struct {
	ID          int64      `json:"id"`
	Name        string     `json:"name"`
	Description string     `json:"description,omitempty"`
	StartDate   string     `json:"startDate,omitempty"`
	EndDate     string     `json:"endDate,omitempty"`
	Status      string     `json:"status"`
	Items       []WorkItem `json:"items"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}
