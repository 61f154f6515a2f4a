package server

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"trak/internal/api"
	"trak/internal/hierarchy"
	"trak/internal/models"
)

func doJSON(t *testing.T, srv *Server, method, path string, payload any) *httptest.ResponseRecorder {
	t.Helper()
	var body *bytes.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		if err != nil {
			t.Fatalf("marshal payload: %v", err)
		}
		body = bytes.NewReader(raw)
	} else {
		body = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, body)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	srv.routes().ServeHTTP(w, req)
	return w
}

func createProject(t *testing.T, srv *Server, name string) models.Project {
	t.Helper()
	w := doJSON(t, srv, http.MethodPost, "/api/projects", api.ProjectCreateRequest{Name: name})
	if w.Code != http.StatusCreated {
		t.Fatalf("create project: expected 201, got %d (%s)", w.Code, w.Body.String())
	}
	var project models.Project
	if err := json.Unmarshal(w.Body.Bytes(), &project); err != nil {
		t.Fatalf("decode created project: %v", err)
	}
	return project
}

func TestCreateAndGetProject(t *testing.T) {
	srv := newTestServer(t)

	created := createProject(t, srv, "Website Redesign")
	if created.ID == 0 {
		t.Fatal("expected assigned project id")
	}
	if created.Status != string(models.ProjectPlanning) {
		t.Fatalf("expected default status planning, got %q", created.Status)
	}

	w := doJSON(t, srv, http.MethodGet, fmt.Sprintf("/api/projects/%d", created.ID), nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d (%s)", w.Code, w.Body.String())
	}
	var fetched models.Project
	if err := json.Unmarshal(w.Body.Bytes(), &fetched); err != nil {
		t.Fatalf("decode project: %v", err)
	}
	if fetched.Name != "Website Redesign" {
		t.Fatalf("unexpected name %q", fetched.Name)
	}
}

func TestCreateProjectValidation(t *testing.T) {
	srv := newTestServer(t)

	t.Run("missing name", func(t *testing.T) {
		w := doJSON(t, srv, http.MethodPost, "/api/projects", api.ProjectCreateRequest{})
		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", w.Code)
		}
		var errResp api.ErrorResponse
		if err := json.Unmarshal(w.Body.Bytes(), &errResp); err != nil {
			t.Fatalf("decode error: %v", err)
		}
		if errResp.ErrorCode != ErrCodeMissingRequired {
			t.Fatalf("expected error_code %d, got %d", ErrCodeMissingRequired, errResp.ErrorCode)
		}
	})

	t.Run("bad status", func(t *testing.T) {
		w := doJSON(t, srv, http.MethodPost, "/api/projects",
			api.ProjectCreateRequest{Name: "X", Status: "archived"})
		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", w.Code)
		}
	})

	t.Run("bad item type", func(t *testing.T) {
		w := doJSON(t, srv, http.MethodPost, "/api/projects", api.ProjectCreateRequest{
			Name: "X",
			Items: []models.WorkItem{
				{ID: 1, Name: "weird", Type: "milestone", Level: 1, Status: "pending"},
			},
		})
		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d (%s)", w.Code, w.Body.String())
		}
	})

	t.Run("malformed json", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/projects", bytes.NewReader([]byte("{nope")))
		w := httptest.NewRecorder()
		srv.routes().ServeHTTP(w, req)
		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", w.Code)
		}
	})
}

func TestCreateProjectIDCollision(t *testing.T) {
	srv := newTestServer(t)

	w := doJSON(t, srv, http.MethodPost, "/api/projects", api.ProjectCreateRequest{ID: 7, Name: "first"})
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d (%s)", w.Code, w.Body.String())
	}

	w = doJSON(t, srv, http.MethodPost, "/api/projects", api.ProjectCreateRequest{ID: 7, Name: "second"})
	if w.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d (%s)", w.Code, w.Body.String())
	}
	var errResp api.ErrorResponse
	if err := json.Unmarshal(w.Body.Bytes(), &errResp); err != nil {
		t.Fatalf("decode error: %v", err)
	}
	if errResp.ErrorCode != ErrCodeProjectIDExists {
		t.Fatalf("expected error_code %d, got %d", ErrCodeProjectIDExists, errResp.ErrorCode)
	}
}

func TestPutProjectUpserts(t *testing.T) {
	srv := newTestServer(t)

	// PUT to an id that does not exist yet creates it.
	w := doJSON(t, srv, http.MethodPut, "/api/projects/42",
		models.Project{Name: "Synced", Status: "in-progress"})
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d (%s)", w.Code, w.Body.String())
	}
	var saved models.Project
	if err := json.Unmarshal(w.Body.Bytes(), &saved); err != nil {
		t.Fatalf("decode project: %v", err)
	}
	if saved.ID != 42 {
		t.Fatalf("expected id 42, got %d", saved.ID)
	}

	// A second PUT replaces in place.
	w = doJSON(t, srv, http.MethodPut, "/api/projects/42",
		models.Project{Name: "Synced v2", Status: "completed"})
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d (%s)", w.Code, w.Body.String())
	}

	w = doJSON(t, srv, http.MethodGet, "/api/projects/42", nil)
	var fetched models.Project
	if err := json.Unmarshal(w.Body.Bytes(), &fetched); err != nil {
		t.Fatalf("decode project: %v", err)
	}
	if fetched.Name != "Synced v2" || fetched.Status != "completed" {
		t.Fatalf("unexpected project after upsert: %+v", fetched)
	}
}

func TestPutProjectAcceptsImportedItems(t *testing.T) {
	// Imports append non-epic items without a parent; saving the
	// project afterwards must not reject that shape.
	srv := newTestServer(t)
	created := createProject(t, srv, "inbox")

	drafts := []models.WorkItem{
		{Name: "Imported story", Type: "story", Level: 2},
		{Name: "Imported task", Type: "task", Level: 3},
	}
	if _, err := hierarchy.ImportBatch(&created, drafts); err != nil {
		t.Fatalf("import: %v", err)
	}

	path := fmt.Sprintf("/api/projects/%d", created.ID)
	w := doJSON(t, srv, http.MethodPut, path, created)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d (%s)", w.Code, w.Body.String())
	}

	w = doJSON(t, srv, http.MethodGet, path, nil)
	var fetched models.Project
	if err := json.Unmarshal(w.Body.Bytes(), &fetched); err != nil {
		t.Fatalf("decode project: %v", err)
	}
	if len(fetched.Items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(fetched.Items))
	}
	story := fetched.Items[0]
	if story.Type != "story" || story.Level != 2 || story.ParentID != nil {
		t.Fatalf("imported story mangled on round trip: %+v", story)
	}
}

func TestDeleteProjectIdempotent(t *testing.T) {
	srv := newTestServer(t)
	created := createProject(t, srv, "doomed")

	path := fmt.Sprintf("/api/projects/%d", created.ID)
	if w := doJSON(t, srv, http.MethodDelete, path, nil); w.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", w.Code)
	}
	// Deleting a missing project is still 204.
	if w := doJSON(t, srv, http.MethodDelete, path, nil); w.Code != http.StatusNoContent {
		t.Fatalf("expected 204 on repeat delete, got %d", w.Code)
	}
	if w := doJSON(t, srv, http.MethodGet, path, nil); w.Code != http.StatusNotFound {
		t.Fatalf("expected 404 after delete, got %d", w.Code)
	}
}

func TestGetProjectNotFound(t *testing.T) {
	srv := newTestServer(t)

	w := doJSON(t, srv, http.MethodGet, "/api/projects/999", nil)
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", w.Code)
	}
	var errResp api.ErrorResponse
	if err := json.Unmarshal(w.Body.Bytes(), &errResp); err != nil {
		t.Fatalf("decode error: %v", err)
	}
	if errResp.ErrorCode != ErrCodeProjectNotFound {
		t.Fatalf("expected error_code %d, got %d", ErrCodeProjectNotFound, errResp.ErrorCode)
	}
}

func TestGetProjectBadID(t *testing.T) {
	srv := newTestServer(t)

	w := doJSON(t, srv, http.MethodGet, "/api/projects/abc", nil)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
}

func TestReplaceAllProjects(t *testing.T) {
	srv := newTestServer(t)
	createProject(t, srv, "old one")
	createProject(t, srv, "old two")

	replacement := []models.Project{
		{ID: 1, Name: "new one", Status: "planning"},
	}
	w := doJSON(t, srv, http.MethodPut, "/api/projects", replacement)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d (%s)", w.Code, w.Body.String())
	}

	w = doJSON(t, srv, http.MethodGet, "/api/projects", nil)
	var projects []models.Project
	if err := json.Unmarshal(w.Body.Bytes(), &projects); err != nil {
		t.Fatalf("decode projects: %v", err)
	}
	if len(projects) != 1 || projects[0].Name != "new one" {
		t.Fatalf("unexpected projects after replace: %+v", projects)
	}
}

func TestStatsEndpoint(t *testing.T) {
	srv := newTestServer(t)

	epicID := int64(1)
	project := models.Project{
		Name:   "stats",
		Status: "in-progress",
		Items: []models.WorkItem{
			{ID: 1, Name: "Epic", Type: "epic", Level: 1, Status: "pending",
				Children: []int64{2, 3}, EstimatedHours: 0},
			{ID: 2, Name: "Story A", Type: "story", Level: 2, Status: "review",
				ParentID: &epicID, EstimatedHours: 8},
			{ID: 3, Name: "Story B", Type: "story", Level: 2, Status: "in-progress",
				ParentID: &epicID, EstimatedHours: 4},
		},
	}
	w := doJSON(t, srv, http.MethodPut, "/api/projects/5", project)
	if w.Code != http.StatusOK {
		t.Fatalf("seed project: expected 200, got %d (%s)", w.Code, w.Body.String())
	}

	w = doJSON(t, srv, http.MethodGet, "/api/stats/5", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d (%s)", w.Code, w.Body.String())
	}
	var resp api.StatsResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode stats: %v", err)
	}
	if resp.Stats.TotalItems != 3 {
		t.Fatalf("expected 3 items, got %d", resp.Stats.TotalItems)
	}
	// Epic progress is the mean of its stories: (100 + 50) / 2.
	if resp.Stats.Progress != 75 {
		t.Fatalf("expected progress 75, got %v", resp.Stats.Progress)
	}
	if resp.Stats.EstimatedHours != 12 {
		t.Fatalf("expected 12 estimated hours, got %v", resp.Stats.EstimatedHours)
	}
}

func TestHolidaysEndpoint(t *testing.T) {
	srv := newTestServer(t)

	w := doJSON(t, srv, http.MethodGet, "/api/holidays/2026", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	var holidays []api.HolidayResponse
	if err := json.Unmarshal(w.Body.Bytes(), &holidays); err != nil {
		t.Fatalf("decode holidays: %v", err)
	}
	if len(holidays) != 11 {
		t.Fatalf("expected 11 holidays, got %d", len(holidays))
	}

	w = doJSON(t, srv, http.MethodGet, "/api/holidays/12", nil)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for out-of-range year, got %d", w.Code)
	}
}

func TestLegacyItemsMigratedOnRead(t *testing.T) {
	srv := newTestServer(t)

	// Items without type or level are the legacy flat-task shape.
	w := doJSON(t, srv, http.MethodPut, "/api/projects/9", models.Project{
		Name: "legacy",
		Items: []models.WorkItem{
			{ID: 1, Name: "old task", Status: "pending"},
		},
	})
	if w.Code != http.StatusOK {
		t.Fatalf("seed legacy project: expected 200, got %d (%s)", w.Code, w.Body.String())
	}

	w = doJSON(t, srv, http.MethodGet, "/api/projects/9", nil)
	var fetched models.Project
	if err := json.Unmarshal(w.Body.Bytes(), &fetched); err != nil {
		t.Fatalf("decode project: %v", err)
	}
	if len(fetched.Items) != 1 {
		t.Fatalf("expected 1 item, got %d", len(fetched.Items))
	}
	if fetched.Items[0].Type != "epic" || fetched.Items[0].Level != 1 {
		t.Fatalf("expected legacy item promoted to root epic, got %+v", fetched.Items[0])
	}
}
