package server

import (
	"net/http"

	"trak/internal/api"
)

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, api.HealthResponse{
		Status:   "ok",
		Message:  "trak api is running",
		Database: "SQLite",
	})
}

func (s *Server) handleInfo(w http.ResponseWriter, r *http.Request) {
	info, err := s.store.Info(r.Context())
	if err != nil {
		s.writeStoreError(w, r, err)
		return
	}

	resp := api.InfoResponse{
		DBPath:        s.dbPath,
		SchemaVersion: info.SchemaVersion,
		TotalProjects: info.TotalProjects,
		StatusCounts:  info.StatusCounts,
	}

	s.writeJSON(w, http.StatusOK, resp)
}
