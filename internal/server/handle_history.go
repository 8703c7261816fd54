package server

import (
	"net/http"
)

func (s *Server) handleRoundHistory(w http.ResponseWriter, r *http.Request) {
	items, err := s.history.RoundHistory(r.Context())
	if err != nil {
		s.serviceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"rounds": items})
}

func (s *Server) handleTiger5History(w http.ResponseWriter, r *http.Request) {
	items, err := s.history.Tiger5History(r.Context())
	if err != nil {
		s.serviceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"tiger5": items})
}

func (s *Server) handleSummary(w http.ResponseWriter, r *http.Request) {
	summary, err := s.history.Summary(r.Context())
	if err != nil {
		s.serviceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, summary)
}
