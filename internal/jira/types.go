package jira

// Wire shapes for the Jira REST v3 endpoints this client touches. Only
// the fields the mapping consumes are declared.

// Issue is a Jira issue as returned by the search endpoint.
type Issue struct {
	ID     string      `json:"id"`
	Key    string      `json:"key"`
	Self   string      `json:"self"`
	Fields IssueFields `json:"fields"`
}

// IssueFields carries the subset of Jira fields trak maps.
type IssueFields struct {
	Summary              string    `json:"summary"`
	IssueType            *NamedRef `json:"issuetype"`
	Status               *NamedRef `json:"status"`
	Priority             *NamedRef `json:"priority"`
	Assignee             *UserRef  `json:"assignee"`
	Created              string    `json:"created"`
	DueDate              string    `json:"duedate"`
	TimeOriginalEstimate *int64    `json:"timeoriginalestimate"`
	TimeSpent            *int64    `json:"timespent"`
}

// NamedRef is Jira's ubiquitous {name: ...} sub-object.
type NamedRef struct {
	Name string `json:"name"`
}

// UserRef identifies a Jira user.
type UserRef struct {
	DisplayName  string `json:"displayName"`
	EmailAddress string `json:"emailAddress"`
}

// SearchResponse wraps the JQL search result.
type SearchResponse struct {
	Issues []Issue `json:"issues"`
	Total  int     `json:"total"`
}

// CreateIssueRequest is the body for issue creation.
type CreateIssueRequest struct {
	Fields CreateIssueFields `json:"fields"`
}

// CreateIssueFields is the fields block of an issue creation request.
type CreateIssueFields struct {
	Project   KeyRef    `json:"project"`
	Summary   string    `json:"summary"`
	IssueType NamedRef  `json:"issuetype"`
	Priority  *NamedRef `json:"priority,omitempty"`
	DueDate   string    `json:"duedate,omitempty"`
}

// KeyRef is Jira's {key: ...} project reference.
type KeyRef struct {
	Key string `json:"key"`
}

// IssueRef is the creation response.
type IssueRef struct {
	ID   string `json:"id"`
	Key  string `json:"key"`
	Self string `json:"self"`
}

// CommentRequest posts a comment body to an issue.
type CommentRequest struct {
	Body string `json:"body"`
}
