// Package notify nudges the user to finish a round they started and then
// forgot about. The nudge is fire-and-forget: a failed or late delivery never
// touches round data.
package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	gonanoid "github.com/matoous/go-nanoid/v2"
	"github.com/rs/zerolog"
	"github.com/valyala/fasthttp"

	"golf-tracker/internal/config"
	"golf-tracker/internal/constants"
)

// Scheduler schedules a single delayed reminder. Cancel is best-effort and a
// no-op for empty or unknown tokens.
type Scheduler interface {
	Schedule(ctx context.Context, delay time.Duration) (string, error)
	Cancel(token string)
}

// WebhookScheduler delivers reminders as a JSON POST to a configured webhook.
// With no webhook configured the reminder is just logged when it fires.
type WebhookScheduler struct {
	webhookURL string
	client     *fasthttp.Client
	logger     zerolog.Logger

	mu     sync.Mutex
	timers map[string]*time.Timer
}

func NewWebhookScheduler(cfg *config.Config, logger zerolog.Logger) *WebhookScheduler {
	return &WebhookScheduler{
		webhookURL: cfg.ReminderWebhookURL,
		client: &fasthttp.Client{
			ReadTimeout:         constants.WebhookTimeout,
			WriteTimeout:        constants.WebhookTimeout,
			MaxIdleConnDuration: 1 * time.Minute,
		},
		logger: logger,
		timers: make(map[string]*time.Timer),
	}
}

func (s *WebhookScheduler) Schedule(ctx context.Context, delay time.Duration) (string, error) {
	token, err := gonanoid.New()
	if err != nil {
		return "", fmt.Errorf("failed to generate reminder token: %w", err)
	}

	s.mu.Lock()
	s.timers[token] = time.AfterFunc(delay, func() { s.fire(token) })
	s.mu.Unlock()

	s.logger.Info().Str("token", token).Dur("delay", delay).Msg("reminder scheduled")
	return token, nil
}

func (s *WebhookScheduler) Cancel(token string) {
	if token == "" {
		return
	}

	s.mu.Lock()
	timer, ok := s.timers[token]
	delete(s.timers, token)
	s.mu.Unlock()

	if ok {
		timer.Stop()
		s.logger.Debug().Str("token", token).Msg("reminder cancelled")
	}
}

func (s *WebhookScheduler) fire(token string) {
	s.mu.Lock()
	delete(s.timers, token)
	s.mu.Unlock()

	if s.webhookURL == "" {
		s.logger.Info().Str("token", token).Msg("round still open, reminder due")
		return
	}

	body, err := json.Marshal(map[string]string{
		"token":   token,
		"message": "You still have a round in progress. Don't forget to finish your scorecard!",
	})
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to marshal reminder payload")
		return
	}

	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseRequest(req)
	defer fasthttp.ReleaseResponse(resp)

	req.SetRequestURI(s.webhookURL)
	req.Header.SetMethod(fasthttp.MethodPost)
	req.Header.SetContentType("application/json")
	req.SetBody(body)

	if err := s.client.DoTimeout(req, resp, constants.WebhookTimeout); err != nil {
		s.logger.Warn().Err(err).Str("token", token).Msg("reminder delivery failed")
		return
	}
	if resp.StatusCode() >= 400 {
		s.logger.Warn().Int("status", resp.StatusCode()).Str("token", token).Msg("reminder webhook rejected")
		return
	}

	s.logger.Info().Str("token", token).Msg("reminder delivered")
}
