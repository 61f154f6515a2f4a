package server

import (
	"fmt"
	"net/http"
	"strings"

	"trak/internal/api"
	"trak/internal/jira"
	"trak/internal/models"
)

// The Jira endpoints proxy to the configured Jira Cloud site so that
// clients never need Jira credentials of their own. Unconfigured servers
// answer 501.

func (s *Server) jiraOrNotImplemented(w http.ResponseWriter, r *http.Request) bool {
	if s.jira == nil {
		s.writeErrorReq(w, r, http.StatusNotImplemented,
			notImplemented(fmt.Errorf("jira is not configured on this server")))
		return false
	}
	return true
}

func (s *Server) handleJiraCreateIssue(w http.ResponseWriter, r *http.Request) {
	if !s.jiraOrNotImplemented(w, r) {
		return
	}

	s.withLimiter(w, r, s.jiraLimiter, "jira", func() {
		var req api.JiraCreateIssueRequest
		if !s.decodeJSONReq(w, r, &req) {
			return
		}
		if strings.TrimSpace(req.Summary) == "" {
			s.writeErrorReq(w, r, http.StatusBadRequest,
				badRequestCode(fmt.Errorf("summary is required"), ErrCodeMissingRequired))
			return
		}
		if req.IssueType == "" {
			req.IssueType = "Task"
		}

		fields := jira.CreateIssueFields{
			Summary:   req.Summary,
			IssueType: jira.NamedRef{Name: req.IssueType},
			DueDate:   req.DueDate,
		}
		if req.Priority != "" {
			fields.Priority = &jira.NamedRef{Name: titleCase(req.Priority)}
		}

		ref, err := s.jira.CreateIssue(r.Context(), jira.CreateIssueRequest{Fields: fields})
		if err != nil {
			s.writeErrorReq(w, r, http.StatusBadGateway, badGateway(err))
			return
		}

		s.writeJSON(w, http.StatusCreated, api.JiraIssueRef{
			Key: ref.Key,
			ID:  ref.ID,
			URL: s.jira.BrowseURL(ref.Key),
		})
	})
}

func (s *Server) handleJiraImportIssues(w http.ResponseWriter, r *http.Request) {
	if !s.jiraOrNotImplemented(w, r) {
		return
	}

	s.withLimiter(w, r, s.jiraLimiter, "jira", func() {
		issues, err := s.jira.SearchIssues(r.Context())
		if err != nil {
			s.writeErrorReq(w, r, http.StatusBadGateway, badGateway(err))
			return
		}

		drafts := make([]models.WorkItem, 0, len(issues))
		for _, issue := range issues {
			drafts = append(drafts, jira.MapIssue(issue, s.jiraOpts))
		}
		s.writeJSON(w, http.StatusOK, drafts)
	})
}

func (s *Server) handleJiraComment(w http.ResponseWriter, r *http.Request) {
	if !s.jiraOrNotImplemented(w, r) {
		return
	}

	s.withLimiter(w, r, s.jiraLimiter, "jira", func() {
		var req api.JiraCommentRequest
		if !s.decodeJSONReq(w, r, &req) {
			return
		}
		if req.IssueKey == "" || strings.TrimSpace(req.Body) == "" {
			s.writeErrorReq(w, r, http.StatusBadRequest,
				badRequestCode(fmt.Errorf("issueKey and body are required"), ErrCodeMissingRequired))
			return
		}

		if err := s.jira.AddComment(r.Context(), req.IssueKey, req.Body); err != nil {
			s.writeErrorReq(w, r, http.StatusBadGateway, badGateway(err))
			return
		}
		w.WriteHeader(http.StatusNoContent)
	})
}

func titleCase(word string) string {
	if word == "" {
		return word
	}
	return strings.ToUpper(word[:1]) + strings.ToLower(word[1:])
}
