// Package jira talks to the Jira REST API and maps its issues onto
// trak work items. The gateway is an external collaborator: a failed
// call never blocks local state, it only costs the item its Jira link.
package jira

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"trak/internal/api"
	"trak/internal/config"
)

const (
	defaultTimeout   = 15 * time.Second
	searchMaxResults = 100

	// Jira Cloud throttles aggressively; pace well under its budget.
	requestsPerSecond = 5
	requestBurst      = 10
)

// Client is an authenticated Jira REST v3 client.
type Client struct {
	baseURL    string
	projectKey string
	authHeader string
	http       *http.Client
	limiter    *rate.Limiter
}

// NewClient builds a client from the jira config section.
func NewClient(cfg config.JiraConfig) (*Client, error) {
	if !cfg.Configured() {
		return nil, fmt.Errorf("jira is not configured (set jira.url, jira.email, jira.api_token, jira.project_key)")
	}

	credentials := base64.StdEncoding.EncodeToString([]byte(cfg.Email + ":" + cfg.APIToken))
	return &Client{
		baseURL:    strings.TrimRight(cfg.URL, "/"),
		projectKey: cfg.ProjectKey,
		authHeader: "Basic " + credentials,
		http:       &http.Client{Timeout: defaultTimeout},
		limiter:    rate.NewLimiter(rate.Limit(requestsPerSecond), requestBurst),
	}, nil
}

// ProjectKey returns the configured Jira project key.
func (c *Client) ProjectKey() string {
	return c.projectKey
}

// CreateIssue creates an issue and returns its reference.
func (c *Client) CreateIssue(ctx context.Context, req CreateIssueRequest) (IssueRef, error) {
	var ref IssueRef
	if req.Fields.Project.Key == "" {
		req.Fields.Project.Key = c.projectKey
	}
	if err := c.do(ctx, http.MethodPost, "/rest/api/3/issue", req, &ref); err != nil {
		return ref, err
	}
	return ref, nil
}

// SearchIssues returns the newest issues of the configured project.
func (c *Client) SearchIssues(ctx context.Context) ([]Issue, error) {
	jql := fmt.Sprintf("project=%s ORDER BY created DESC", c.projectKey)
	query := url.Values{}
	query.Set("jql", jql)
	query.Set("maxResults", fmt.Sprintf("%d", searchMaxResults))

	var resp SearchResponse
	if err := c.do(ctx, http.MethodGet, "/rest/api/3/search?"+query.Encode(), nil, &resp); err != nil {
		return nil, err
	}
	return resp.Issues, nil
}

// AddComment posts a plain-text comment on an issue.
func (c *Client) AddComment(ctx context.Context, issueKey, body string) error {
	if strings.TrimSpace(issueKey) == "" {
		return fmt.Errorf("issue key is required")
	}
	path := "/rest/api/3/issue/" + url.PathEscape(issueKey) + "/comment"
	return c.do(ctx, http.MethodPost, path, CommentRequest{Body: body}, nil)
}

// BrowseURL returns the human-facing URL for an issue key.
func (c *Client) BrowseURL(issueKey string) string {
	return c.baseURL + "/browse/" + issueKey
}

func (c *Client) do(ctx context.Context, method, path string, body any, out any) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return err
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", c.authHeader)
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return &api.GatewayError{Message: err.Error()}
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return decodeJiraError(resp)
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &api.GatewayError{Status: resp.StatusCode, Message: fmt.Sprintf("malformed jira response: %v", err)}
	}
	return nil
}

// decodeJiraError surfaces Jira's errorMessages array when present so
// the user sees the server-provided reason.
func decodeJiraError(resp *http.Response) error {
	var body struct {
		ErrorMessages []string          `json:"errorMessages"`
		Errors        map[string]string `json:"errors"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err == nil {
		messages := body.ErrorMessages
		for field, msg := range body.Errors {
			messages = append(messages, fmt.Sprintf("%s: %s", field, msg))
		}
		if len(messages) > 0 {
			return &api.GatewayError{Status: resp.StatusCode, Message: strings.Join(messages, "; ")}
		}
	}
	return &api.GatewayError{Status: resp.StatusCode, Message: resp.Status}
}
