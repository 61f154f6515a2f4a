package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
)

const (
	DefaultAPIURL     = "http://127.0.0.1:7433"
	DefaultDBFileName = ".trak.db"

	DefaultJiraStatusMapping = "substring"
	DefaultJiraDueDays       = 7
	DefaultSyncInterval      = 10

	configDirEnvKey          = "TRAK_CONFIG_DIR"
	trustProjectConfigEnvKey = "TRAK_TRUST_PROJECT_CONFIG"
)

// JiraConfig defines the Jira gateway connection and field mapping.
type JiraConfig struct {
	URL        string `toml:"url"`
	Email      string `toml:"email"`
	APIToken   string `toml:"api_token"`
	ProjectKey string `toml:"project_key"`
	// StatusMapping selects between the two observed mapping tables:
	// "substring" (done/closed/review, progress/development) or
	// "exact" (To Do, In Progress, Done, Closed).
	StatusMapping  string `toml:"status_mapping"`
	DefaultDueDays int    `toml:"default_due_days"`
}

// Configured reports whether enough is set to talk to Jira.
func (j JiraConfig) Configured() bool {
	return j.URL != "" && j.Email != "" && j.APIToken != "" && j.ProjectKey != ""
}

// SyncConfig defines remote polling behavior.
type SyncConfig struct {
	Enabled         bool `toml:"enabled"`
	IntervalSeconds int  `toml:"interval_seconds"`
}

// Config defines runtime configuration for trak.
type Config struct {
	APIURL                   string     `toml:"api_url"`
	DBPath                   string     `toml:"db_path"`
	Jira                     JiraConfig `toml:"jira"`
	Sync                     SyncConfig `toml:"sync"`
	TrustedProjectConfigPath string     `toml:"-"`
}

// Default returns default configuration values.
func Default() Config {
	return Config{
		APIURL: DefaultAPIURL,
		DBPath: "",
		Jira: JiraConfig{
			StatusMapping:  DefaultJiraStatusMapping,
			DefaultDueDays: DefaultJiraDueDays,
		},
		Sync: SyncConfig{
			Enabled:         false,
			IntervalSeconds: DefaultSyncInterval,
		},
	}
}

func loadFile(path string, cfg *Config) error {
	_, err := loadFileIfExists(path, cfg)
	return err
}

func loadFileIfExists(path string, cfg *Config) (bool, error) {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, err
	}
	if info.IsDir() {
		return false, nil
	}
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return false, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	return true, nil
}

func overrideConfigPath() (string, bool) {
	dir := strings.TrimSpace(os.Getenv(configDirEnvKey))
	if dir == "" {
		return "", false
	}
	return filepath.Join(dir, ".trak.toml"), true
}

func trustProjectConfig() bool {
	raw := strings.TrimSpace(os.Getenv(trustProjectConfigEnvKey))
	if raw == "" {
		return false
	}
	value, err := strconv.ParseBool(raw)
	if err != nil {
		return false
	}
	return value
}

var allowedKeys = []string{
	"api_url",
	"db_path",
	"jira.url",
	"jira.email",
	"jira.api_token",
	"jira.project_key",
	"jira.status_mapping",
	"jira.default_due_days",
	"sync.enabled",
	"sync.interval_seconds",
}

// AllowedKeys returns the set of valid config keys.
func AllowedKeys() []string {
	return allowedKeys
}

// IsAllowedKey checks if a key is a valid config key.
func IsAllowedKey(key string) bool {
	for _, k := range allowedKeys {
		if k == key {
			return true
		}
	}
	return false
}

// Get returns the value of a config key.
func (c *Config) Get(key string) (string, error) {
	switch key {
	case "api_url":
		return c.APIURL, nil
	case "db_path":
		return c.DBPath, nil
	case "jira.url":
		return c.Jira.URL, nil
	case "jira.email":
		return c.Jira.Email, nil
	case "jira.api_token":
		return c.Jira.APIToken, nil
	case "jira.project_key":
		return c.Jira.ProjectKey, nil
	case "jira.status_mapping":
		return c.Jira.StatusMapping, nil
	case "jira.default_due_days":
		return strconv.Itoa(c.Jira.DefaultDueDays), nil
	case "sync.enabled":
		return strconv.FormatBool(c.Sync.Enabled), nil
	case "sync.interval_seconds":
		return strconv.Itoa(c.Sync.IntervalSeconds), nil
	default:
		return "", fmt.Errorf("unknown key: %s", key)
	}
}

// GlobalPath returns the path to the global config file.
func GlobalPath() (string, error) {
	if path, ok := overrideConfigPath(); ok {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".trak.toml"), nil
}

// ProjectPath returns the path to the project config file.
func ProjectPath() (string, error) {
	if path, ok := overrideConfigPath(); ok {
		return path, nil
	}
	cwd, err := os.Getwd()
	if err != nil {
		return "", err
	}
	return filepath.Join(cwd, ".trak.toml"), nil
}

// SetKey reads the TOML file at path, sets key=value, and writes it back.
func SetKey(path, key, value string) error {
	if !IsAllowedKey(key) {
		return fmt.Errorf("unknown key: %s", key)
	}

	data := make(map[string]any)
	if _, err := os.Stat(path); err == nil {
		if _, err := toml.DecodeFile(path, &data); err != nil {
			return fmt.Errorf("parse %s: %w", path, err)
		}
	}

	parsedValue, err := parseSetValue(key, value)
	if err != nil {
		return err
	}
	if err := setNestedKey(data, strings.Split(key, "."), parsedValue); err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	return toml.NewEncoder(f).Encode(data)
}

// Load reads config from trusted files and applies env overrides.
func Load() (*Config, error) {
	cfg := Default()

	if overridePath, ok := overrideConfigPath(); ok {
		if err := loadFile(overridePath, &cfg); err != nil {
			return nil, err
		}
	} else {
		if home, err := os.UserHomeDir(); err == nil {
			if err := loadFile(filepath.Join(home, ".trak.toml"), &cfg); err != nil {
				return nil, err
			}
		}

		if trustProjectConfig() {
			if cwd, err := os.Getwd(); err == nil {
				projectPath := filepath.Join(cwd, ".trak.toml")
				info, statErr := os.Stat(projectPath)
				switch {
				case statErr == nil && !info.IsDir():
					if err := loadFile(projectPath, &cfg); err != nil {
						return nil, err
					}
					cfg.TrustedProjectConfigPath = projectPath
				case statErr != nil && !os.IsNotExist(statErr):
					return nil, statErr
				}
			}
		}
	}

	if cfg.DBPath == "" {
		if cwd, err := os.Getwd(); err == nil {
			cfg.DBPath = filepath.Join(cwd, DefaultDBFileName)
		}
	}

	if apiURL := os.Getenv("TRAK_API_URL"); apiURL != "" {
		cfg.APIURL = apiURL
	}
	if dbPath := os.Getenv("TRAK_DB"); dbPath != "" {
		cfg.DBPath = dbPath
	}
	if token := os.Getenv("TRAK_JIRA_TOKEN"); token != "" {
		cfg.Jira.APIToken = token
	}

	cfg.normalizeDefaults()

	return &cfg, nil
}

func parseSetValue(key, value string) (any, error) {
	value = strings.TrimSpace(value)
	switch key {
	case "jira.default_due_days", "sync.interval_seconds":
		parsed, err := strconv.Atoi(value)
		if err != nil || parsed <= 0 {
			return nil, fmt.Errorf("%s must be a positive integer", key)
		}
		return parsed, nil
	case "sync.enabled":
		parsed, err := strconv.ParseBool(value)
		if err != nil {
			return nil, fmt.Errorf("%s must be true or false", key)
		}
		return parsed, nil
	case "jira.status_mapping":
		switch value {
		case "substring", "exact":
			return value, nil
		default:
			return nil, fmt.Errorf("%s must be substring or exact", key)
		}
	default:
		return value, nil
	}
}

func setNestedKey(data map[string]any, parts []string, value any) error {
	if len(parts) == 0 {
		return fmt.Errorf("invalid config key")
	}
	if len(parts) == 1 {
		data[parts[0]] = value
		return nil
	}
	childRaw, ok := data[parts[0]]
	if !ok {
		child := map[string]any{}
		data[parts[0]] = child
		return setNestedKey(child, parts[1:], value)
	}
	child, ok := childRaw.(map[string]any)
	if !ok {
		return fmt.Errorf("cannot set nested key %q", strings.Join(parts, "."))
	}
	return setNestedKey(child, parts[1:], value)
}

func (c *Config) normalizeDefaults() {
	if c.Jira.StatusMapping != "exact" {
		c.Jira.StatusMapping = DefaultJiraStatusMapping
	}
	if c.Jira.DefaultDueDays <= 0 {
		c.Jira.DefaultDueDays = DefaultJiraDueDays
	}
	if c.Sync.IntervalSeconds <= 0 {
		c.Sync.IntervalSeconds = DefaultSyncInterval
	}
}
