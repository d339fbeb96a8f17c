package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"dynastytrade/internal/middleware"
	"dynastytrade/internal/models"
	"dynastytrade/internal/repositories"
	"dynastytrade/internal/sleeper"
	"dynastytrade/internal/testhelpers"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type leagueTestEnv struct {
	router   *chi.Mux
	users    *repositories.UserRepository
	leagues  *repositories.LeagueRepository
	sessions *repositories.SessionRepository
}

func newLeagueEnv(t *testing.T, upstream http.Handler) *leagueTestEnv {
	t.Helper()
	db := testhelpers.SetupTestDB(t)
	users := &repositories.UserRepository{DB: db}
	sessions := &repositories.SessionRepository{DB: db}
	leagues := &repositories.LeagueRepository{DB: db}

	server := httptest.NewServer(upstream)
	t.Cleanup(server.Close)

	client := sleeper.NewClient(server.URL, time.Second)
	sleeperService := sleeper.NewService(client, zap.NewNop())
	handler := NewLeagueHandler(leagues, sleeperService, zap.NewNop())

	router := chi.NewRouter()
	router.Route("/api/v1/leagues", func(r chi.Router) {
		r.Use(middleware.SessionAuth(sessions))
		r.With(middleware.ValidateRequest[*models.ConnectLeagueRequest]()).Post("/connect", handler.ConnectHandler)
		r.Get("/", handler.ListHandler)
		r.Get("/{leagueID}", handler.GetHandler)
		r.With(middleware.ValidateRequest[*models.SelectTeamRequest]()).Post("/{leagueID}/team", handler.SelectTeamHandler)
	})

	return &leagueTestEnv{router: router, users: users, leagues: leagues, sessions: sessions}
}

func healthyUpstream() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Path {
		case "/league/L1":
			w.Write([]byte(`{"name": "Test Dynasty", "total_rosters": 2, "season": "2025"}`))
		case "/league/L1/users":
			w.Write([]byte(`[{"user_id": "owner1", "display_name": "My Team"}, {"user_id": "owner2", "display_name": "Rival"}]`))
		case "/league/L1/rosters":
			w.Write([]byte(`[{"roster_id": 1, "owner_id": "owner1", "players": ["p1"]}]`))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	})
}

func (env *leagueTestEnv) signUp(t *testing.T, email string) (*models.User, string) {
	t.Helper()
	user := &models.User{Email: email, PasswordHash: "hash", Plan: models.PlanFree}
	if err := env.users.CreateUser(user); err != nil {
		t.Fatalf("failed to seed user: %v", err)
	}
	session, err := env.sessions.CreateSession(user.ID, time.Hour)
	if err != nil {
		t.Fatalf("failed to create session: %v", err)
	}
	return user, session.Token
}

func TestConnectHandler(t *testing.T) {
	env := newLeagueEnv(t, healthyUpstream())
	user, token := env.signUp(t, "connect@example.com")

	rec := authedPost(t, env.router, "/api/v1/leagues/connect", token, map[string]string{"league_id": "L1"})
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp models.ConnectLeagueResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.League.Name != "Test Dynasty" || len(resp.League.Users) != 2 {
		t.Fatalf("unexpected league: %+v", resp.League)
	}

	conn, err := env.leagues.GetConnection(user.ID, "L1")
	if err != nil {
		t.Fatalf("expected persisted connection: %v", err)
	}
	if conn.LeagueName != "Test Dynasty" {
		t.Fatalf("unexpected connection: %+v", conn)
	}
}

func TestConnectHandler_UnknownLeague(t *testing.T) {
	env := newLeagueEnv(t, healthyUpstream())
	_, token := env.signUp(t, "unknown@example.com")

	rec := authedPost(t, env.router, "/api/v1/leagues/connect", token, map[string]string{"league_id": "missing"})
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
	var errResp models.ErrorResponse
	json.Unmarshal(rec.Body.Bytes(), &errResp)
	if errResp.Code != "league_not_found" {
		t.Fatalf("expected league_not_found, got %q", errResp.Code)
	}
}

func TestConnectHandler_ReconnectOverwrites(t *testing.T) {
	env := newLeagueEnv(t, healthyUpstream())
	user, token := env.signUp(t, "reconnect@example.com")

	for i := 0; i < 2; i++ {
		if rec := authedPost(t, env.router, "/api/v1/leagues/connect", token, map[string]string{"league_id": "L1"}); rec.Code != http.StatusOK {
			t.Fatalf("connect %d: expected 200, got %d", i, rec.Code)
		}
	}

	conns, err := env.leagues.ListConnections(user.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(conns) != 1 {
		t.Fatalf("expected a single connection after reconnect, got %d", len(conns))
	}
}

func TestSelectTeamHandler(t *testing.T) {
	env := newLeagueEnv(t, healthyUpstream())
	user, token := env.signUp(t, "select@example.com")

	if rec := authedPost(t, env.router, "/api/v1/leagues/connect", token, map[string]string{"league_id": "L1"}); rec.Code != http.StatusOK {
		t.Fatalf("failed to connect league: %d", rec.Code)
	}

	t.Run("valid member", func(t *testing.T) {
		rec := authedPost(t, env.router, "/api/v1/leagues/L1/team", token, map[string]string{"team_id": "owner1"})
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}

		conn, err := env.leagues.GetConnection(user.ID, "L1")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if conn.SelectedTeamID != "owner1" || conn.SelectedTeamName != "My Team" {
			t.Fatalf("unexpected selection: %+v", conn)
		}
	})

	t.Run("not a league member", func(t *testing.T) {
		rec := authedPost(t, env.router, "/api/v1/leagues/L1/team", token, map[string]string{"team_id": "stranger"})
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
		var errResp models.ErrorResponse
		json.Unmarshal(rec.Body.Bytes(), &errResp)
		if errResp.Code != "invalid_team" {
			t.Fatalf("expected invalid_team, got %q", errResp.Code)
		}
	})

	t.Run("league never connected", func(t *testing.T) {
		rec := authedPost(t, env.router, "/api/v1/leagues/L2/team", token, map[string]string{"team_id": "owner1"})
		if rec.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", rec.Code)
		}
	})
}

func TestGetAndListHandlers(t *testing.T) {
	env := newLeagueEnv(t, healthyUpstream())
	_, token := env.signUp(t, "list@example.com")

	if rec := authedPost(t, env.router, "/api/v1/leagues/connect", token, map[string]string{"league_id": "L1"}); rec.Code != http.StatusOK {
		t.Fatalf("failed to connect league: %d", rec.Code)
	}

	t.Run("get connected league", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/leagues/L1", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		rec := httptest.NewRecorder()
		env.router.ServeHTTP(rec, req)
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
	})

	t.Run("get unconnected league", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/leagues/L2", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		rec := httptest.NewRecorder()
		env.router.ServeHTTP(rec, req)
		if rec.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", rec.Code)
		}
	})

	t.Run("list", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/leagues/", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		rec := httptest.NewRecorder()
		env.router.ServeHTTP(rec, req)
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		var resp struct {
			Leagues []models.LeagueConnection `json:"leagues"`
		}
		if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
			t.Fatalf("failed to decode response: %v", err)
		}
		if len(resp.Leagues) != 1 {
			t.Fatalf("expected 1 league, got %d", len(resp.Leagues))
		}
	})
}
