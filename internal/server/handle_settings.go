package server

import (
	"net/http"

	"golf-tracker/internal/domain"
)

func (s *Server) handleGetSettings(w http.ResponseWriter, r *http.Request) {
	settings, err := s.settings.Get(r.Context())
	if err != nil {
		s.serviceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, settings)
}

func (s *Server) handleSaveSettings(w http.ResponseWriter, r *http.Request) {
	var settings domain.Settings
	if err := readJSON(r, &settings); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := s.settings.Save(r.Context(), settings); err != nil {
		s.serviceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, settings)
}

func (s *Server) handleGetDistances(w http.ResponseWriter, r *http.Request) {
	distances, err := s.distances.ClubDistances(r.Context())
	if err != nil {
		s.serviceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"distances": distances})
}

type saveDistancesRequest struct {
	Distances []domain.ClubDistance `json:"distances"`
}

func (s *Server) handleSaveDistances(w http.ResponseWriter, r *http.Request) {
	var req saveDistancesRequest
	if err := readJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := s.distances.SaveClubDistances(r.Context(), req.Distances); err != nil {
		s.serviceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleGetWedgeChart(w http.ResponseWriter, r *http.Request) {
	entries, err := s.distances.WedgeChart(r.Context())
	if err != nil {
		s.serviceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"entries": entries})
}

type saveWedgeChartRequest struct {
	Entries []domain.WedgeChartEntry `json:"entries"`
}

func (s *Server) handleSaveWedgeChart(w http.ResponseWriter, r *http.Request) {
	var req saveWedgeChartRequest
	if err := readJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := s.distances.SaveWedgeChart(r.Context(), req.Entries); err != nil {
		s.serviceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
