package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"trak/internal/api"
	"trak/internal/config"
	"trak/internal/store"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()
	t.Setenv(apiTokenEnvKey, "")

	dbPath := filepath.Join(t.TempDir(), "trak-test.db")
	projectStore, err := store.Open(dbPath)
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { _ = projectStore.Close() })

	return New("127.0.0.1:0", projectStore, dbPath, config.JiraConfig{}, nil)
}

func TestListenAddrRemoteGuard(t *testing.T) {
	t.Run("allows loopback", func(t *testing.T) {
		t.Setenv(allowRemoteEnvKey, "")
		addr, err := ListenAddr("http://127.0.0.1:7433")
		if err != nil {
			t.Fatalf("expected loopback to be allowed, got error: %v", err)
		}
		if addr != "127.0.0.1:7433" {
			t.Fatalf("unexpected addr: %s", addr)
		}
	})

	t.Run("blocks non-loopback by default", func(t *testing.T) {
		t.Setenv(allowRemoteEnvKey, "")
		_, err := ListenAddr("http://0.0.0.0:7433")
		if err == nil {
			t.Fatal("expected error for non-loopback listen host")
		}
	})

	t.Run("allows non-loopback when explicitly enabled", func(t *testing.T) {
		t.Setenv(allowRemoteEnvKey, "true")
		addr, err := ListenAddr("http://0.0.0.0:7433")
		if err != nil {
			t.Fatalf("expected allow-remote to permit host, got error: %v", err)
		}
		if addr != "0.0.0.0:7433" {
			t.Fatalf("unexpected addr: %s", addr)
		}
	})
}

func TestWithAuth(t *testing.T) {
	t.Run("denies missing token", func(t *testing.T) {
		srv := &Server{apiToken: "token"}
		nextCalled := false
		next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			nextCalled = true
			w.WriteHeader(http.StatusNoContent)
		})
		handler := srv.withAuth(next)

		req := httptest.NewRequest(http.MethodGet, "/api/projects", nil)
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, req)
		if w.Code != http.StatusUnauthorized {
			t.Fatalf("expected 401, got %d", w.Code)
		}
		var errResp api.ErrorResponse
		if err := json.Unmarshal(w.Body.Bytes(), &errResp); err != nil {
			t.Fatalf("decode error response: %v", err)
		}
		if errResp.ErrorCode != ErrCodeUnauthorized {
			t.Fatalf("expected error_code %d, got %d", ErrCodeUnauthorized, errResp.ErrorCode)
		}
		if nextCalled {
			t.Fatal("next handler should not be called")
		}
	})

	t.Run("allows valid token", func(t *testing.T) {
		srv := &Server{apiToken: "token"}
		next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNoContent)
		})
		handler := srv.withAuth(next)

		req := httptest.NewRequest(http.MethodGet, "/api/projects", nil)
		req.Header.Set("Authorization", "Bearer token")
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, req)
		if w.Code != http.StatusNoContent {
			t.Fatalf("expected 204, got %d", w.Code)
		}
	})

	t.Run("health stays open", func(t *testing.T) {
		srv := &Server{apiToken: "token"}
		next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNoContent)
		})
		handler := srv.withAuth(next)

		req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, req)
		if w.Code != http.StatusNoContent {
			t.Fatalf("expected 204, got %d", w.Code)
		}
	})
}

func TestHealthEndpoint(t *testing.T) {
	srv := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
	w := httptest.NewRecorder()
	srv.routes().ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	var resp api.HealthResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode health response: %v", err)
	}
	if resp.Status != "ok" || resp.Database != "SQLite" {
		t.Fatalf("unexpected health payload: %+v", resp)
	}
}

func TestInfoEndpoint(t *testing.T) {
	srv := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/api/info", nil)
	w := httptest.NewRecorder()
	srv.routes().ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d (%s)", w.Code, w.Body.String())
	}
	var resp api.InfoResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode info response: %v", err)
	}
	if resp.SchemaVersion < 1 {
		t.Fatalf("expected schema version >= 1, got %d", resp.SchemaVersion)
	}
	if resp.TotalProjects != 0 {
		t.Fatalf("expected empty store, got %d projects", resp.TotalProjects)
	}
}

func TestJiraEndpointsUnconfigured(t *testing.T) {
	srv := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/api/jira/import-issues", nil)
	w := httptest.NewRecorder()
	srv.routes().ServeHTTP(w, req)

	if w.Code != http.StatusNotImplemented {
		t.Fatalf("expected 501, got %d", w.Code)
	}
	var errResp api.ErrorResponse
	if err := json.Unmarshal(w.Body.Bytes(), &errResp); err != nil {
		t.Fatalf("decode error response: %v", err)
	}
	if errResp.ErrorCode != ErrCodeNotImplemented {
		t.Fatalf("expected error_code %d, got %d", ErrCodeNotImplemented, errResp.ErrorCode)
	}
}
