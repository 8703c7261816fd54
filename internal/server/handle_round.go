package server

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"golf-tracker/internal/scoring"
	"golf-tracker/internal/service"
)

type startRoundRequest struct {
	CourseName  string   `json:"courseName"`
	CoursePar   int      `json:"coursePar"`
	PlayerNames []string `json:"playerNames"`
}

func (s *Server) handleBeginSetup(w http.ResponseWriter, r *http.Request) {
	if err := s.rounds.Begin(); err != nil {
		s.serviceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, s.rounds.State())
}

func (s *Server) handleStartRound(w http.ResponseWriter, r *http.Request) {
	var req startRoundRequest
	if err := readJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	state, err := s.rounds.Start(r.Context(), req.CourseName, req.CoursePar, req.PlayerNames)
	if err != nil {
		s.serviceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, state)
}

type submitHoleRequest struct {
	HolePar int           `json:"holePar"`
	Scores  map[int64]int `json:"scores"`
}

func (s *Server) handleSubmitHole(w http.ResponseWriter, r *http.Request) {
	var req submitHoleRequest
	if err := readJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	state, err := s.rounds.SubmitHole(r.Context(), req.HolePar, req.Scores)
	if err != nil {
		s.serviceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, state)
}

type recordMistakeRequest struct {
	Category string `json:"category"`
}

func (s *Server) handleRecordMistake(w http.ResponseWriter, r *http.Request) {
	var req recordMistakeRequest
	if err := readJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	state, err := s.rounds.RecordMistake(service.MistakeCategory(req.Category))
	if err != nil {
		s.serviceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, state)
}

func (s *Server) handleEndRound(w http.ResponseWriter, r *http.Request) {
	total, err := s.rounds.End(r.Context())
	if err != nil {
		s.serviceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"finalTotal": total,
		"display":    scoring.FormatRelative(total),
		"standing":   scoring.Classify(total).String(),
	})
}

func (s *Server) handleRetryPending(w http.ResponseWriter, r *http.Request) {
	total, err := s.rounds.RetryPending(r.Context())
	if err != nil {
		s.serviceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"finalTotal": total,
		"display":    scoring.FormatRelative(total),
	})
}

func (s *Server) handleAbandonRound(w http.ResponseWriter, r *http.Request) {
	if err := s.rounds.Abandon(r.Context()); err != nil {
		s.serviceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleRoundState(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.rounds.State())
}

func (s *Server) handleScorecard(w http.ResponseWriter, r *http.Request) {
	roundID, err := parseID(chi.URLParam(r, "roundID"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid round id")
		return
	}

	card, err := s.scorecards.Scorecard(r.Context(), roundID)
	if err != nil {
		s.serviceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, card)
}

type editScoresRequest struct {
	Edits []scoring.ScoreEdit `json:"edits"`
}

func (s *Server) handleEditScores(w http.ResponseWriter, r *http.Request) {
	roundID, err := parseID(chi.URLParam(r, "roundID"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid round id")
		return
	}

	var req editScoresRequest
	if err := readJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	total, err := s.scorecards.EditScores(r.Context(), roundID, req.Edits)
	if err != nil {
		s.serviceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"total":   total,
		"display": scoring.FormatRelative(total),
	})
}

func (s *Server) handleDeleteRound(w http.ResponseWriter, r *http.Request) {
	roundID, err := parseID(chi.URLParam(r, "roundID"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid round id")
		return
	}

	if err := s.scorecards.Delete(r.Context(), roundID); err != nil {
		s.serviceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func parseID(raw string) (int64, error) {
	return strconv.ParseInt(raw, 10, 64)
}
