package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"dynastytrade/internal/catalog"
	"dynastytrade/internal/middleware"
	"dynastytrade/internal/models"
	"dynastytrade/internal/prompts"
	"dynastytrade/internal/repositories"
	"dynastytrade/internal/sleeper"
	"dynastytrade/internal/testhelpers"
	"dynastytrade/internal/trades"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type tradeTestEnv struct {
	router   *chi.Mux
	users    *repositories.UserRepository
	leagues  *repositories.LeagueRepository
	sessions *repositories.SessionRepository
}

func newTradeEnv(t *testing.T) *tradeTestEnv {
	t.Helper()
	db := testhelpers.SetupTestDB(t)
	users := &repositories.UserRepository{DB: db}
	sessions := &repositories.SessionRepository{DB: db}
	leagues := &repositories.LeagueRepository{DB: db}

	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Path {
		case "/league/L1":
			w.Write([]byte(`{"name": "Test Dynasty", "total_rosters": 2, "season": "2025"}`))
		case "/league/L1/users":
			w.Write([]byte(`[{"user_id": "owner1", "display_name": "My Team"}, {"user_id": "owner2", "display_name": "Rival"}]`))
		case "/league/L1/rosters":
			w.Write([]byte(`[{"roster_id": 1, "owner_id": "owner1", "players": ["p1"]}, {"roster_id": 2, "owner_id": "owner2", "players": ["p2"]}]`))
		case "/players/nfl":
			w.Write([]byte(`{"p1": {"full_name": "Quarterback One", "position": "QB", "team": "SF"}, "p2": {"full_name": "Runner Two", "position": "RB", "team": "TEN"}}`))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	t.Cleanup(upstream.Close)

	promptManager, err := prompts.NewManager()
	if err != nil {
		t.Fatalf("failed to load prompt templates: %v", err)
	}

	client := sleeper.NewClient(upstream.URL, time.Second)
	sleeperService := sleeper.NewService(client, zap.NewNop())
	playerCatalog := catalog.NewCache(client, time.Hour, zap.NewNop())
	engine := trades.NewSuggestionEngine(nil, promptManager, zap.NewNop())
	calculator := trades.NewValueCalculator(nil, promptManager, zap.NewNop())

	handler := NewTradeHandler(users, leagues, sleeperService, playerCatalog, engine, calculator, zap.NewNop())

	router := chi.NewRouter()
	router.Route("/api/v1/trades", func(r chi.Router) {
		r.Use(middleware.SessionAuth(sessions))
		r.With(middleware.ValidateRequest[*models.SuggestTradesRequest]()).Post("/suggest", handler.SuggestHandler)
		r.With(middleware.ValidateRequest[*models.TradeValueRequest]()).Post("/value", handler.ValueHandler)
	})

	return &tradeTestEnv{router: router, users: users, leagues: leagues, sessions: sessions}
}

func (env *tradeTestEnv) signUp(t *testing.T, email string, plan models.Plan) (*models.User, string) {
	t.Helper()
	user := &models.User{Email: email, PasswordHash: "hash", Plan: plan}
	if err := env.users.CreateUser(user); err != nil {
		t.Fatalf("failed to seed user: %v", err)
	}
	session, err := env.sessions.CreateSession(user.ID, time.Hour)
	if err != nil {
		t.Fatalf("failed to create session: %v", err)
	}
	return user, session.Token
}

func (env *tradeTestEnv) connectLeague(t *testing.T, userID uint, teamID string) {
	t.Helper()
	if err := env.leagues.UpsertConnection(&models.LeagueConnection{
		UserID:           userID,
		LeagueID:         "L1",
		LeagueName:       "Test Dynasty",
		SelectedTeamID:   teamID,
		SelectedTeamName: "My Team",
	}); err != nil {
		t.Fatalf("failed to seed connection: %v", err)
	}
}

func (env *tradeTestEnv) suggest(t *testing.T, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	return authedPost(t, env.router, "/api/v1/trades/suggest", token, body)
}

func authedPost(t *testing.T, router http.Handler, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	payload, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("failed to marshal body: %v", err)
	}
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestSuggestHandler_FreeQuota(t *testing.T) {
	env := newTradeEnv(t)
	user, token := env.signUp(t, "free@example.com", models.PlanFree)
	env.connectLeague(t, user.ID, "owner1")

	body := map[string]string{"league_id": "L1", "strategy": "balanced"}

	for i := 1; i <= FreeTradeLimit; i++ {
		rec := env.suggest(t, token, body)
		if rec.Code != http.StatusOK {
			t.Fatalf("request %d: expected 200, got %d: %s", i, rec.Code, rec.Body.String())
		}
		var resp models.SuggestTradesResponse
		if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
			t.Fatalf("failed to decode response: %v", err)
		}
		if resp.TradeCount != i {
			t.Fatalf("request %d: expected trade count %d, got %d", i, i, resp.TradeCount)
		}
		if len(resp.Trades) == 0 {
			t.Fatalf("request %d: expected suggestions", i)
		}
	}

	// the sixth request is rejected before any work happens
	rec := env.suggest(t, token, body)
	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403 on request %d, got %d", FreeTradeLimit+1, rec.Code)
	}
	var errResp models.ErrorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &errResp); err != nil {
		t.Fatalf("failed to decode error: %v", err)
	}
	if errResp.Code != "limit_exceeded" {
		t.Fatalf("expected limit_exceeded, got %q", errResp.Code)
	}

	// the rejected request did not bump the counter
	got, err := env.users.GetUserByID(user.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.TradeCount != FreeTradeLimit {
		t.Fatalf("expected trade count %d, got %d", FreeTradeLimit, got.TradeCount)
	}
}

func TestSuggestHandler_ProPlanHasNoQuota(t *testing.T) {
	env := newTradeEnv(t)
	user, token := env.signUp(t, "pro@example.com", models.PlanPro)
	env.connectLeague(t, user.ID, "owner1")

	body := map[string]string{"league_id": "L1"}
	for i := 1; i <= FreeTradeLimit+2; i++ {
		if rec := env.suggest(t, token, body); rec.Code != http.StatusOK {
			t.Fatalf("request %d: expected 200, got %d", i, rec.Code)
		}
	}
}

func TestSuggestHandler_SetupGuards(t *testing.T) {
	env := newTradeEnv(t)

	t.Run("league not connected", func(t *testing.T) {
		_, token := env.signUp(t, "noleague@example.com", models.PlanFree)
		rec := env.suggest(t, token, map[string]string{"league_id": "L1"})
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
		var errResp models.ErrorResponse
		json.Unmarshal(rec.Body.Bytes(), &errResp)
		if errResp.Code != "league_not_connected" {
			t.Fatalf("expected league_not_connected, got %q", errResp.Code)
		}
	})

	t.Run("team not selected", func(t *testing.T) {
		user, token := env.signUp(t, "noteam@example.com", models.PlanFree)
		env.connectLeague(t, user.ID, "")
		rec := env.suggest(t, token, map[string]string{"league_id": "L1"})
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
		var errResp models.ErrorResponse
		json.Unmarshal(rec.Body.Bytes(), &errResp)
		if errResp.Code != "team_not_selected" {
			t.Fatalf("expected team_not_selected, got %q", errResp.Code)
		}
	})

	t.Run("unauthenticated", func(t *testing.T) {
		rec := env.suggest(t, "", map[string]string{"league_id": "L1"})
		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("expected 401, got %d", rec.Code)
		}
	})
}

func TestValueHandler(t *testing.T) {
	env := newTradeEnv(t)
	_, token := env.signUp(t, "value@example.com", models.PlanFree)

	rec := authedPost(t, env.router, "/api/v1/trades/value", token, map[string][]string{
		"teamA_players": {"Player One"},
		"teamB_players": {"Player Two", "Player Three"},
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp models.TradeValueResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Result.TeamAValue != 60 || resp.Result.TeamBValue != 126 {
		t.Fatalf("unexpected values: %+v", resp.Result)
	}
	if resp.Result.FairnessScore != 48 || resp.Result.Winner != "Team B" {
		t.Fatalf("unexpected score/winner: %+v", resp.Result)
	}
	if resp.RequestID == "" {
		t.Fatalf("expected a request id")
	}
}

func TestValueHandler_NoQuota(t *testing.T) {
	env := newTradeEnv(t)
	user, token := env.signUp(t, "heavy@example.com", models.PlanFree)

	for i := 0; i < FreeTradeLimit+3; i++ {
		rec := authedPost(t, env.router, "/api/v1/trades/value", token, map[string][]string{
			"teamA_players": {"A"}, "teamB_players": {"B"},
		})
		if rec.Code != http.StatusOK {
			t.Fatalf("valuation %d: expected 200, got %d", i, rec.Code)
		}
	}

	got, err := env.users.GetUserByID(user.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.TradeCount != 0 {
		t.Fatalf("valuations must not consume quota, got count %d", got.TradeCount)
	}
}

func TestValueHandler_Validation(t *testing.T) {
	env := newTradeEnv(t)
	_, token := env.signUp(t, "invalid@example.com", models.PlanFree)

	rec := authedPost(t, env.router, "/api/v1/trades/value", token, map[string][]string{
		"teamA_players": {"  "}, "teamB_players": {"B"},
	})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for blank players, got %d", rec.Code)
	}
}
