package handlers

import (
	"net/http"

	"dynastytrade/internal/catalog"
	"dynastytrade/internal/middleware"
	"dynastytrade/internal/models"
	"dynastytrade/internal/repositories"
	"dynastytrade/internal/sleeper"
	"dynastytrade/internal/trades"
	"dynastytrade/internal/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// FreeTradeLimit is the number of suggestion generations included in the
// free tier per plan period.
const FreeTradeLimit = 5

// suggestion caps per plan
const (
	maxSuggestionsFree = 5
	maxSuggestionsPro  = 10
)

// TradeHandler runs the suggestion and valuation endpoints.
type TradeHandler struct {
	Users      *repositories.UserRepository
	Leagues    *repositories.LeagueRepository
	Sleeper    *sleeper.Service
	Catalog    *catalog.Cache
	Engine     *trades.SuggestionEngine
	Calculator *trades.ValueCalculator
	Logger     *zap.Logger
}

func NewTradeHandler(
	users *repositories.UserRepository,
	leagues *repositories.LeagueRepository,
	sleeperService *sleeper.Service,
	playerCatalog *catalog.Cache,
	engine *trades.SuggestionEngine,
	calculator *trades.ValueCalculator,
	logger *zap.Logger,
) *TradeHandler {
	return &TradeHandler{
		Users:      users,
		Leagues:    leagues,
		Sleeper:    sleeperService,
		Catalog:    playerCatalog,
		Engine:     engine,
		Calculator: calculator,
		Logger:     logger,
	}
}

// SuggestHandler generates trade suggestions for the user's selected team,
// enforcing the free-tier quota before any work and incrementing the usage
// counter only after a successful generation.
func (h *TradeHandler) SuggestHandler(w http.ResponseWriter, r *http.Request) {
	req := middleware.GetValidatedRequest[*models.SuggestTradesRequest](r)
	user := middleware.CurrentUser(r)

	if user.Plan == models.PlanFree && user.TradeCount >= FreeTradeLimit {
		utils.JSON(w, http.StatusForbidden, models.ErrorResponse{
			Code:    "limit_exceeded",
			Message: "You have reached the limit of 5 trades for free plan. Upgrade to Pro for unlimited trades.",
		})
		return
	}

	conn, err := h.Leagues.GetConnection(user.ID, req.LeagueID)
	if err != nil {
		utils.JSON(w, http.StatusBadRequest, models.ErrorResponse{
			Code: "league_not_connected", Message: "Please complete league setup first",
		})
		return
	}
	if conn.SelectedTeamID == "" {
		utils.JSON(w, http.StatusBadRequest, models.ErrorResponse{
			Code: "team_not_selected", Message: "Please select your team first",
		})
		return
	}

	league, err := h.Sleeper.GetLeague(r.Context(), req.LeagueID)
	if err != nil {
		utils.JSON(w, http.StatusNotFound, models.ErrorResponse{
			Code: "league_not_found", Message: "League data not found. Please reconnect to your league.",
		})
		return
	}

	roster := league.RosterForOwner(conn.SelectedTeamID)
	if roster == nil {
		utils.JSON(w, http.StatusNotFound, models.ErrorResponse{
			Code: "roster_not_found", Message: "Could not find your roster",
		})
		return
	}

	maxSuggestions := maxSuggestionsFree
	if user.Plan == models.PlanPro {
		maxSuggestions = maxSuggestionsPro
	}

	players := h.Catalog.Players(r.Context())
	suggestions := h.Engine.GenerateSuggestions(r.Context(), league, roster, players, req.Preferences(), maxSuggestions)

	if err := h.Users.IncrementTradeCount(user.ID); err != nil {
		h.Logger.Error("failed to increment trade count", zap.Uint("user_id", user.ID), zap.Error(err))
	} else {
		user.TradeCount++
	}

	utils.JSON(w, http.StatusOK, models.SuggestTradesResponse{
		Trades:     suggestions,
		RequestID:  uuid.New().String(),
		Plan:       user.Plan,
		TradeCount: user.TradeCount,
	})
}

// ValueHandler compares two proposed player lists. No quota applies.
func (h *TradeHandler) ValueHandler(w http.ResponseWriter, r *http.Request) {
	req := middleware.GetValidatedRequest[*models.TradeValueRequest](r)

	result := h.Calculator.CalculateTradeValue(r.Context(), req.TeamAPlayers, req.TeamBPlayers)

	utils.JSON(w, http.StatusOK, models.TradeValueResponse{
		Result:    result,
		RequestID: uuid.New().String(),
	})
}
