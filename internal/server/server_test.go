package server

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"golf-tracker/internal/database"
	"golf-tracker/internal/repository"
	"golf-tracker/internal/service"
)

type noopScheduler struct{}

func (noopScheduler) Schedule(ctx context.Context, delay time.Duration) (string, error) {
	return "noop", nil
}

func (noopScheduler) Cancel(token string) {}

func testRouter(t *testing.T) *chi.Mux {
	t.Helper()

	db, err := database.Open(":memory:", zerolog.Nop())
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	nop := zerolog.Nop()
	rounds := repository.NewRoundRepository(db, nop)
	tiger5 := repository.NewTiger5Repository(db, nop)
	settings := repository.NewSettingsRepository(db, nop)
	distances := repository.NewDistancesRepository(db, nop)

	srv := New(
		service.NewRoundService(rounds, tiger5, noopScheduler{}, nop),
		service.NewScorecardService(rounds, nop),
		service.NewHistoryService(rounds, tiger5, nop),
		service.NewSettingsService(settings, nop),
		service.NewDistancesService(distances, nop),
		nop,
	)

	r := chi.NewRouter()
	srv.Routes(r)
	return r
}

func doJSON(t *testing.T, r http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestHealth(t *testing.T) {
	r := testRouter(t)

	w := doJSON(t, r, http.MethodGet, "/healthz", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
}

func TestRoundFlowOverHTTP(t *testing.T) {
	r := testRouter(t)

	// Start a solo round.
	w := doJSON(t, r, http.MethodPost, "/api/rounds", map[string]any{
		"coursePar":   72,
		"playerNames": []string{"Sam"},
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("start: expected 201, got %d: %s", w.Code, w.Body.String())
	}

	var state service.RoundState
	if err := json.NewDecoder(w.Body).Decode(&state); err != nil {
		t.Fatalf("decode state: %v", err)
	}
	if state.Phase != "active" || len(state.Players) != 2 {
		t.Fatalf("state = %+v", state)
	}
	userID := state.Players[0].ID
	roundID := state.Round.ID

	// Submit two holes: +1 then +1.
	for i := 0; i < 2; i++ {
		w = doJSON(t, r, http.MethodPost, "/api/rounds/current/holes", map[string]any{
			"holePar": 4,
			"scores":  map[string]int{fmt.Sprint(userID): 5},
		})
		if w.Code != http.StatusOK {
			t.Fatalf("submit hole: expected 200, got %d: %s", w.Code, w.Body.String())
		}
	}

	// Record a mistake while over par.
	w = doJSON(t, r, http.MethodPost, "/api/rounds/current/mistakes", map[string]string{
		"category": "three_putt",
	})
	if w.Code != http.StatusOK {
		t.Fatalf("mistake: expected 200, got %d: %s", w.Code, w.Body.String())
	}

	// End the round.
	w = doJSON(t, r, http.MethodPost, "/api/rounds/current/end", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("end: expected 200, got %d: %s", w.Code, w.Body.String())
	}
	var ended struct {
		FinalTotal int    `json:"finalTotal"`
		Display    string `json:"display"`
	}
	json.NewDecoder(w.Body).Decode(&ended)
	if ended.FinalTotal != 2 || ended.Display != "+2" {
		t.Errorf("end response = %+v, want +2", ended)
	}

	// History lists the round.
	w = doJSON(t, r, http.MethodGet, "/api/rounds", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("history: expected 200, got %d", w.Code)
	}
	var history struct {
		Rounds []service.RoundHistoryItem `json:"rounds"`
	}
	json.NewDecoder(w.Body).Decode(&history)
	if len(history.Rounds) != 1 || history.Rounds[0].Display != "+2" {
		t.Errorf("history = %+v", history.Rounds)
	}

	// Over-par round produced a tiger5 tally.
	w = doJSON(t, r, http.MethodGet, "/api/tiger5", nil)
	var tiger struct {
		Tiger5 []service.Tiger5HistoryItem `json:"tiger5"`
	}
	json.NewDecoder(w.Body).Decode(&tiger)
	if len(tiger.Tiger5) != 1 || tiger.Tiger5[0].ThreePutts != 1 {
		t.Errorf("tiger5 = %+v", tiger.Tiger5)
	}

	// Scorecard and edit path.
	w = doJSON(t, r, http.MethodGet, fmt.Sprintf("/api/rounds/%d/scorecard", roundID), nil)
	if w.Code != http.StatusOK {
		t.Fatalf("scorecard: expected 200, got %d", w.Code)
	}
	var card service.Scorecard
	json.NewDecoder(w.Body).Decode(&card)
	if len(card.Players) != 2 {
		t.Fatalf("scorecard players = %d", len(card.Players))
	}
	scoreID := card.Players[0].Holes[0].ScoreID

	w = doJSON(t, r, http.MethodPatch, fmt.Sprintf("/api/rounds/%d/scores", roundID), map[string]any{
		"edits": []map[string]any{{"id": scoreID, "newScore": 4}},
	})
	if w.Code != http.StatusOK {
		t.Fatalf("edit: expected 200, got %d: %s", w.Code, w.Body.String())
	}
	var edited struct {
		Total int `json:"total"`
	}
	json.NewDecoder(w.Body).Decode(&edited)
	if edited.Total != 1 {
		t.Errorf("edited total = %d, want 1", edited.Total)
	}
}

func TestSubmitHoleWithoutRound(t *testing.T) {
	r := testRouter(t)

	w := doJSON(t, r, http.MethodPost, "/api/rounds/current/holes", map[string]any{"holePar": 4})
	if w.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d: %s", w.Code, w.Body.String())
	}
}

func TestScorecardNotFound(t *testing.T) {
	r := testRouter(t)

	w := doJSON(t, r, http.MethodGet, "/api/rounds/123/scorecard", nil)
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", w.Code)
	}
}

func TestSettingsRoundTrip(t *testing.T) {
	r := testRouter(t)

	w := doJSON(t, r, http.MethodGet, "/api/settings", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("get settings: expected 200, got %d", w.Code)
	}

	// Settings speak the same camelCase JSON as the rest of the API.
	var defaults map[string]any
	json.NewDecoder(w.Body).Decode(&defaults)
	if _, ok := defaults["notificationsEnabled"]; !ok {
		t.Errorf("settings keys = %+v, want camelCase notificationsEnabled", defaults)
	}
	if _, ok := defaults["NotificationsEnabled"]; ok {
		t.Errorf("settings keys = %+v, unexpected PascalCase field", defaults)
	}

	w = doJSON(t, r, http.MethodPut, "/api/settings", map[string]any{
		"theme":                "dark",
		"notificationsEnabled": false,
		"seenHomeGuide":        true,
	})
	if w.Code != http.StatusOK {
		t.Fatalf("save settings: expected 200, got %d: %s", w.Code, w.Body.String())
	}

	w = doJSON(t, r, http.MethodGet, "/api/settings", nil)
	var got map[string]any
	json.NewDecoder(w.Body).Decode(&got)
	if got["theme"] != "dark" || got["seenHomeGuide"] != true {
		t.Errorf("settings = %+v", got)
	}
}

func TestDistancesSeeded(t *testing.T) {
	r := testRouter(t)

	w := doJSON(t, r, http.MethodGet, "/api/distances", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	var got struct {
		Distances []map[string]any `json:"distances"`
	}
	json.NewDecoder(w.Body).Decode(&got)
	if len(got.Distances) == 0 {
		t.Error("expected seeded club distances")
	}
}

func TestInvalidParRejected(t *testing.T) {
	r := testRouter(t)

	w := doJSON(t, r, http.MethodPost, "/api/rounds", map[string]any{"coursePar": 72})
	if w.Code != http.StatusCreated {
		t.Fatalf("start: got %d", w.Code)
	}

	w = doJSON(t, r, http.MethodPost, "/api/rounds/current/holes", map[string]any{"holePar": 6})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d: %s", w.Code, w.Body.String())
	}
}
