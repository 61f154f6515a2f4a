package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	"trak/internal/models"
)

const (
	defaultHTTPTimeout = 10 * time.Second
	httpTimeoutEnvKey  = "TRAK_HTTP_TIMEOUT"
	apiTokenEnvKey     = "TRAK_API_TOKEN"
)

// Client is a simple HTTP client for the trak API.
type Client struct {
	baseURL   string
	http      *http.Client
	authToken string
}

// NewClient creates a new API client.
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL:   strings.TrimRight(baseURL, "/"),
		http:      &http.Client{Timeout: httpTimeoutFromEnv()},
		authToken: strings.TrimSpace(os.Getenv(apiTokenEnvKey)),
	}
}

// Ping checks whether the API server is reachable.
func (c *Client) Ping(ctx context.Context) error {
	return c.do(ctx, http.MethodGet, "/api/health", nil, nil)
}

// Health returns the liveness payload.
func (c *Client) Health(ctx context.Context) (HealthResponse, error) {
	var resp HealthResponse
	err := c.do(ctx, http.MethodGet, "/api/health", nil, &resp)
	return resp, err
}

func (c *Client) GetInfo(ctx context.Context) (InfoResponse, error) {
	var resp InfoResponse
	err := c.do(ctx, http.MethodGet, "/api/info", nil, &resp)
	return resp, err
}

func (c *Client) ListProjects(ctx context.Context) ([]models.Project, error) {
	var resp []models.Project
	err := c.do(ctx, http.MethodGet, "/api/projects", nil, &resp)
	return resp, err
}

func (c *Client) GetProject(ctx context.Context, id int64) (models.Project, error) {
	var resp models.Project
	err := c.do(ctx, http.MethodGet, "/api/projects/"+formatID(id), nil, &resp)
	return resp, err
}

func (c *Client) CreateProject(ctx context.Context, req ProjectCreateRequest) (models.Project, error) {
	var resp models.Project
	err := c.do(ctx, http.MethodPost, "/api/projects", req, &resp)
	return resp, err
}

// PutProject replaces a project server-side; upsert semantics.
func (c *Client) PutProject(ctx context.Context, project models.Project) (models.Project, error) {
	var resp models.Project
	err := c.do(ctx, http.MethodPut, "/api/projects/"+formatID(project.ID), project, &resp)
	return resp, err
}

func (c *Client) DeleteProject(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, "/api/projects/"+formatID(id), nil, nil)
}

func (c *Client) ReplaceAll(ctx context.Context, projects []models.Project) error {
	return c.do(ctx, http.MethodPut, "/api/projects", projects, nil)
}

func (c *Client) GetStats(ctx context.Context, id int64) (StatsResponse, error) {
	var resp StatsResponse
	err := c.do(ctx, http.MethodGet, "/api/stats/"+formatID(id), nil, &resp)
	return resp, err
}

func (c *Client) GetHolidays(ctx context.Context, year int) ([]HolidayResponse, error) {
	var resp []HolidayResponse
	err := c.do(ctx, http.MethodGet, "/api/holidays/"+strconv.Itoa(year), nil, &resp)
	return resp, err
}

// JiraCreateIssue creates an issue through the server-side proxy, which
// exists so browser clients dodge cross-origin restrictions; the CLI
// uses it to reuse the server's credentials.
func (c *Client) JiraCreateIssue(ctx context.Context, req JiraCreateIssueRequest) (JiraIssueRef, error) {
	var resp JiraIssueRef
	err := c.do(ctx, http.MethodPost, "/api/jira/create-issue", req, &resp)
	return resp, err
}

// JiraImportIssues fetches the configured project's issues mapped to
// work item drafts.
func (c *Client) JiraImportIssues(ctx context.Context) ([]models.WorkItem, error) {
	var resp []models.WorkItem
	err := c.do(ctx, http.MethodGet, "/api/jira/import-issues", nil, &resp)
	return resp, err
}

// JiraComment posts a comment on an issue through the proxy.
func (c *Client) JiraComment(ctx context.Context, req JiraCommentRequest) error {
	return c.do(ctx, http.MethodPost, "/api/jira/comment", req, nil)
}

func (c *Client) do(ctx context.Context, method, path string, body any, out any) error {
	endpoint := c.baseURL + path

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.authToken != "" {
		req.Header.Set("Authorization", "Bearer "+c.authToken)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return &GatewayError{Message: err.Error()}
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return decodeError(resp)
	}

	if out == nil {
		return nil
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &GatewayError{Status: resp.StatusCode, Message: fmt.Sprintf("malformed response: %v", err)}
	}
	return nil
}

func decodeError(resp *http.Response) error {
	var errResp ErrorResponse
	if err := json.NewDecoder(resp.Body).Decode(&errResp); err == nil && errResp.Error != "" {
		if errResp.Code != "" {
			return &GatewayError{Status: resp.StatusCode, Message: fmt.Sprintf("%s: %s", errResp.Code, errResp.Error)}
		}
		return &GatewayError{Status: resp.StatusCode, Message: errResp.Error}
	}
	return &GatewayError{Status: resp.StatusCode, Message: resp.Status}
}

func formatID(id int64) string {
	return strconv.FormatInt(id, 10)
}

func httpTimeoutFromEnv() time.Duration {
	value := strings.TrimSpace(os.Getenv(httpTimeoutEnvKey))
	if value == "" {
		return defaultHTTPTimeout
	}

	if duration, err := time.ParseDuration(value); err == nil && duration > 0 {
		return duration
	}
	if seconds, err := strconv.Atoi(value); err == nil && seconds > 0 {
		return time.Duration(seconds) * time.Second
	}

	return defaultHTTPTimeout
}
