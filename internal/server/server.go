// Package server exposes the tracker over JSON. It is deliberately thin:
// request decoding, error mapping and nothing else — every rule lives in the
// service and scoring packages.
package server

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"golf-tracker/internal/repository"
	"golf-tracker/internal/service"
)

type Server struct {
	rounds     *service.RoundService
	scorecards *service.ScorecardService
	history    *service.HistoryService
	settings   *service.SettingsService
	distances  *service.DistancesService
	logger     zerolog.Logger
}

func New(
	rounds *service.RoundService,
	scorecards *service.ScorecardService,
	history *service.HistoryService,
	settings *service.SettingsService,
	distances *service.DistancesService,
	logger zerolog.Logger,
) *Server {
	return &Server{
		rounds:     rounds,
		scorecards: scorecards,
		history:    history,
		settings:   settings,
		distances:  distances,
		logger:     logger,
	}
}

func (s *Server) Routes(r chi.Router) {
	r.Get("/healthz", s.handleHealth)

	r.Route("/api", func(r chi.Router) {
		r.Route("/rounds", func(r chi.Router) {
			r.Get("/", s.handleRoundHistory)
			r.Post("/", s.handleStartRound)
			r.Post("/setup", s.handleBeginSetup)

			r.Route("/current", func(r chi.Router) {
				r.Get("/", s.handleRoundState)
				r.Delete("/", s.handleAbandonRound)
				r.Post("/holes", s.handleSubmitHole)
				r.Post("/mistakes", s.handleRecordMistake)
				r.Post("/end", s.handleEndRound)
				r.Post("/retry-sync", s.handleRetryPending)
			})

			r.Route("/{roundID}", func(r chi.Router) {
				r.Get("/scorecard", s.handleScorecard)
				r.Patch("/scores", s.handleEditScores)
				r.Delete("/", s.handleDeleteRound)
			})
		})

		r.Get("/tiger5", s.handleTiger5History)
		r.Get("/summary", s.handleSummary)

		r.Get("/settings", s.handleGetSettings)
		r.Put("/settings", s.handleSaveSettings)

		r.Get("/distances", s.handleGetDistances)
		r.Put("/distances", s.handleSaveDistances)
		r.Get("/wedge-chart", s.handleGetWedgeChart)
		r.Put("/wedge-chart", s.handleSaveWedgeChart)
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// serviceError maps domain failures onto status codes.
func (s *Server) serviceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, repository.ErrNotFound):
		writeError(w, http.StatusNotFound, "not found")
	case errors.Is(err, service.ErrNoActiveRound),
		errors.Is(err, service.ErrNothingPending):
		writeError(w, http.StatusConflict, err.Error())
	case errors.Is(err, service.ErrRoundActive):
		writeError(w, http.StatusConflict, err.Error())
	case errors.Is(err, service.ErrInvalidPar),
		errors.Is(err, service.ErrTooManyPlayers),
		errors.Is(err, service.ErrUnknownMistake):
		writeError(w, http.StatusBadRequest, err.Error())
	default:
		s.logger.Error().Err(err).Msg("request failed")
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}
