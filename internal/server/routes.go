package server

import (
	"net/http"
)

func (s *Server) routes() http.Handler {
	mux := http.NewServeMux()

	// Health check and info.
	mux.HandleFunc("GET /api/health", s.handleHealth)
	mux.HandleFunc("GET /api/info", s.handleInfo)

	// Projects collection.
	mux.HandleFunc("GET /api/projects", s.handleListProjects)
	mux.HandleFunc("POST /api/projects", s.handleCreateProject)
	mux.HandleFunc("PUT /api/projects", s.handleReplaceAll)

	// Single project.
	mux.HandleFunc("GET /api/projects/{id}", s.handleGetProject)
	mux.HandleFunc("PUT /api/projects/{id}", s.handlePutProject)
	mux.HandleFunc("DELETE /api/projects/{id}", s.handleDeleteProject)

	// Dashboard aggregates.
	mux.HandleFunc("GET /api/stats/{id}", s.handleStats)
	mux.HandleFunc("GET /api/holidays/{year}", s.handleHolidays)

	// Jira proxy.
	mux.HandleFunc("POST /api/jira/create-issue", s.handleJiraCreateIssue)
	mux.HandleFunc("GET /api/jira/import-issues", s.handleJiraImportIssues)
	mux.HandleFunc("POST /api/jira/comment", s.handleJiraComment)

	return s.withRequestLogging(s.withAuth(mux))
}
