package config

import (
	"os"
	"path/filepath"
	"testing"
)

func withConfigDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("TRAK_CONFIG_DIR", dir)
	t.Setenv("TRAK_API_URL", "")
	t.Setenv("TRAK_DB", "")
	t.Setenv("TRAK_JIRA_TOKEN", "")
	return dir
}

func TestLoadDefaults(t *testing.T) {
	withConfigDir(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.APIURL != DefaultAPIURL {
		t.Fatalf("api_url = %s", cfg.APIURL)
	}
	if cfg.Jira.StatusMapping != "substring" {
		t.Fatalf("status_mapping = %s", cfg.Jira.StatusMapping)
	}
	if cfg.Jira.DefaultDueDays != 7 {
		t.Fatalf("default_due_days = %d", cfg.Jira.DefaultDueDays)
	}
	if cfg.Sync.IntervalSeconds != 10 {
		t.Fatalf("interval = %d", cfg.Sync.IntervalSeconds)
	}
	if cfg.DBPath == "" {
		t.Fatal("db path must default to cwd")
	}
}

func TestLoadFromFileAndEnvOverride(t *testing.T) {
	dir := withConfigDir(t)

	content := "api_url = \"http://10.0.0.1:9000\"\n\n[jira]\nurl = \"https://acme.atlassian.net\"\nemail = \"pm@acme.dev\"\napi_token = \"tok\"\nproject_key = \"ACME\"\nstatus_mapping = \"exact\"\ndefault_due_days = 30\n"
	if err := os.WriteFile(filepath.Join(dir, ".trak.toml"), []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.APIURL != "http://10.0.0.1:9000" {
		t.Fatalf("api_url = %s", cfg.APIURL)
	}
	if !cfg.Jira.Configured() {
		t.Fatal("jira should be configured")
	}
	if cfg.Jira.StatusMapping != "exact" || cfg.Jira.DefaultDueDays != 30 {
		t.Fatalf("jira = %+v", cfg.Jira)
	}

	t.Setenv("TRAK_API_URL", "http://127.0.0.1:7555")
	t.Setenv("TRAK_JIRA_TOKEN", "env-token")
	cfg, err = Load()
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if cfg.APIURL != "http://127.0.0.1:7555" {
		t.Fatalf("env override lost: %s", cfg.APIURL)
	}
	if cfg.Jira.APIToken != "env-token" {
		t.Fatalf("token override lost: %s", cfg.Jira.APIToken)
	}
}

func TestSetKeyRoundTrip(t *testing.T) {
	dir := withConfigDir(t)
	path := filepath.Join(dir, ".trak.toml")

	if err := SetKey(path, "jira.project_key", "ACME"); err != nil {
		t.Fatalf("set: %v", err)
	}
	if err := SetKey(path, "sync.interval_seconds", "30"); err != nil {
		t.Fatalf("set: %v", err)
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Jira.ProjectKey != "ACME" {
		t.Fatalf("project_key = %s", cfg.Jira.ProjectKey)
	}
	if cfg.Sync.IntervalSeconds != 30 {
		t.Fatalf("interval = %d", cfg.Sync.IntervalSeconds)
	}
}

func TestSetKeyRejectsBadValues(t *testing.T) {
	dir := withConfigDir(t)
	path := filepath.Join(dir, ".trak.toml")

	if err := SetKey(path, "bogus", "1"); err == nil {
		t.Fatal("expected unknown key error")
	}
	if err := SetKey(path, "jira.status_mapping", "fuzzy"); err == nil {
		t.Fatal("expected mapping validation error")
	}
	if err := SetKey(path, "sync.interval_seconds", "-1"); err == nil {
		t.Fatal("expected positive integer error")
	}
}
