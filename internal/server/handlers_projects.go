package server

import (
	"net/http"

	"trak/internal/api"
	"trak/internal/models"
)

func (s *Server) handleListProjects(w http.ResponseWriter, r *http.Request) {
	projects, err := s.service.List(r.Context())
	if err != nil {
		s.writeStoreError(w, r, err)
		return
	}
	if projects == nil {
		projects = []models.Project{}
	}
	s.writeJSON(w, http.StatusOK, projects)
}

func (s *Server) handleCreateProject(w http.ResponseWriter, r *http.Request) {
	var req api.ProjectCreateRequest
	if !s.decodeJSONReq(w, r, &req) {
		return
	}

	project, err := s.service.Create(r.Context(), req)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusCreated, project)
}

func (s *Server) handleGetProject(w http.ResponseWriter, r *http.Request) {
	id, ok := s.pathIDOrBadRequest(w, r)
	if !ok {
		return
	}

	project, err := s.service.Get(r.Context(), id)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, project)
}

func (s *Server) handlePutProject(w http.ResponseWriter, r *http.Request) {
	id, ok := s.pathIDOrBadRequest(w, r)
	if !ok {
		return
	}

	var project models.Project
	if !s.decodeJSONReq(w, r, &project) {
		return
	}

	saved, err := s.service.Put(r.Context(), id, project)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, saved)
}

func (s *Server) handleDeleteProject(w http.ResponseWriter, r *http.Request) {
	id, ok := s.pathIDOrBadRequest(w, r)
	if !ok {
		return
	}

	if err := s.service.Delete(r.Context(), id); err != nil {
		s.writeStoreError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleReplaceAll(w http.ResponseWriter, r *http.Request) {
	s.withLimiter(w, r, s.replaceLimiter, "replace", func() {
		var projects []models.Project
		if !s.decodeJSONReq(w, r, &projects) {
			return
		}

		if err := s.service.ReplaceAll(r.Context(), projects); err != nil {
			s.writeServiceError(w, r, err)
			return
		}
		s.writeJSON(w, http.StatusOK, map[string]int{"count": len(projects)})
	})
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	id, ok := s.pathIDOrBadRequest(w, r)
	if !ok {
		return
	}

	stats, err := s.service.Stats(r.Context(), id)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, stats)
}
