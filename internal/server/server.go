package server

import (
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"trak/internal/config"
	"trak/internal/jira"
	"trak/internal/store"
)

const (
	apiTokenEnvKey          = "TRAK_API_TOKEN"
	allowRemoteEnvKey       = "TRAK_ALLOW_REMOTE"
	readHeaderTimeout       = 5 * time.Second
	readTimeout             = 30 * time.Second
	writeTimeout            = 60 * time.Second
	idleTimeout             = 60 * time.Second
	replaceConcurrencyLimit = 1
	jiraConcurrencyLimit    = 2
)

// Server wraps HTTP handlers for the trak API.
type Server struct {
	addr           string
	store          *store.Store
	dbPath         string
	service        *ProjectService
	jira           *jira.Client
	jiraOpts       jira.MapOptions
	logger         *slog.Logger
	apiToken       string
	replaceLimiter chan struct{}
	jiraLimiter    chan struct{}
}

// New creates a new server instance. The Jira proxy stays disabled when
// cfg.Jira is not fully configured; its endpoints then answer 501.
func New(addr string, projectStore *store.Store, dbPath string, cfg config.JiraConfig, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}

	var jiraClient *jira.Client
	if cfg.Configured() {
		client, err := jira.NewClient(cfg)
		if err != nil {
			logger.Warn("jira proxy disabled", "error", err)
		} else {
			jiraClient = client
		}
	}

	return &Server{
		addr:           addr,
		store:          projectStore,
		dbPath:         dbPath,
		service:        NewProjectService(projectStore),
		jira:           jiraClient,
		jiraOpts:       jira.OptionsFromConfig(cfg),
		logger:         logger,
		apiToken:       strings.TrimSpace(os.Getenv(apiTokenEnvKey)),
		replaceLimiter: make(chan struct{}, replaceConcurrencyLimit),
		jiraLimiter:    make(chan struct{}, jiraConcurrencyLimit),
	}
}

// ListenAndServe starts the HTTP server.
func (s *Server) ListenAndServe() error {
	s.log().Info("starting server", "addr", s.addr)
	server := &http.Server{
		Addr:              s.addr,
		Handler:           s.routes(),
		ReadHeaderTimeout: readHeaderTimeout,
		ReadTimeout:       readTimeout,
		WriteTimeout:      writeTimeout,
		IdleTimeout:       idleTimeout,
	}

	return server.ListenAndServe()
}

// ListenAddr converts a base API URL into a listen address. Non-loopback
// hosts are refused unless TRAK_ALLOW_REMOTE=true.
func ListenAddr(apiURL string) (string, error) {
	if apiURL == "" {
		return "", fmt.Errorf("api url is required")
	}
	if u, err := url.Parse(apiURL); err == nil && u.Host != "" {
		host := u.Hostname()
		if !isAllowedListenHost(host) {
			return "", fmt.Errorf("remote listen host %q requires %s=true", host, allowRemoteEnvKey)
		}
		return u.Host, nil
	}

	host, _, err := net.SplitHostPort(apiURL)
	if err == nil && !isAllowedListenHost(host) {
		return "", fmt.Errorf("remote listen host %q requires %s=true", host, allowRemoteEnvKey)
	}

	return apiURL, nil
}

func isAllowedListenHost(host string) bool {
	if host == "" {
		return true
	}
	if strings.EqualFold(strings.TrimSpace(os.Getenv(allowRemoteEnvKey)), "true") {
		return true
	}
	if host == "localhost" {
		return true
	}
	ip := net.ParseIP(host)
	return ip != nil && ip.IsLoopback()
}

func (s *Server) acquireLimiter(limiter chan struct{}, w http.ResponseWriter, r *http.Request, name string) bool {
	if limiter == nil {
		return true
	}
	select {
	case limiter <- struct{}{}:
		return true
	default:
		err := apiError{
			status:  http.StatusTooManyRequests,
			code:    "resource_exhausted",
			errCode: ErrCodeResourceExhausted,
			err:     fmt.Errorf("too many concurrent %s requests", name),
		}
		s.writeErrorReq(w, r, http.StatusTooManyRequests, err)
		return false
	}
}

func (s *Server) releaseLimiter(limiter chan struct{}) {
	if limiter == nil {
		return
	}
	select {
	case <-limiter:
	default:
	}
}

func (s *Server) withLimiter(w http.ResponseWriter, r *http.Request, limiter chan struct{}, name string, fn func()) {
	if !s.acquireLimiter(limiter, w, r, name) {
		return
	}
	defer s.releaseLimiter(limiter)
	fn()
}

func (s *Server) log() *slog.Logger {
	if s != nil && s.logger != nil {
		return s.logger
	}
	return slog.Default()
}
