package handlers

import (
	"errors"
	"net/http"

	"dynastytrade/internal/middleware"
	"dynastytrade/internal/models"
	"dynastytrade/internal/repositories"
	"dynastytrade/internal/sleeper"
	"dynastytrade/internal/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// LeagueHandler connects external leagues and records team selection.
type LeagueHandler struct {
	Leagues *repositories.LeagueRepository
	Sleeper *sleeper.Service
	Logger  *zap.Logger
}

func NewLeagueHandler(leagues *repositories.LeagueRepository, sleeperService *sleeper.Service, logger *zap.Logger) *LeagueHandler {
	return &LeagueHandler{
		Leagues: leagues,
		Sleeper: sleeperService,
		Logger:  logger,
	}
}

// ConnectHandler fetches the league snapshot and upserts the user's
// connection to it.
func (h *LeagueHandler) ConnectHandler(w http.ResponseWriter, r *http.Request) {
	req := middleware.GetValidatedRequest[*models.ConnectLeagueRequest](r)
	user := middleware.CurrentUser(r)

	league, err := h.Sleeper.ConnectLeague(r.Context(), req.LeagueID)
	if err != nil {
		utils.JSON(w, http.StatusNotFound, models.ErrorResponse{
			Code:    "league_not_found",
			Message: "Failed to connect to league. Please check your league ID and ensure it exists.",
		})
		return
	}

	conn := &models.LeagueConnection{
		UserID:     user.ID,
		LeagueID:   league.LeagueID,
		LeagueName: league.Name,
	}
	if err := h.Leagues.UpsertConnection(conn); err != nil {
		h.Logger.Error("failed to save league connection",
			zap.Uint("user_id", user.ID), zap.String("league_id", league.LeagueID), zap.Error(err))
		utils.JSON(w, http.StatusInternalServerError, models.ErrorResponse{
			Code: "save_failed", Message: "Failed to save league connection",
		})
		return
	}

	utils.JSON(w, http.StatusOK, models.ConnectLeagueResponse{League: league})
}

// GetHandler serves the cached snapshot of a connected league, for team
// selection and roster browsing.
func (h *LeagueHandler) GetHandler(w http.ResponseWriter, r *http.Request) {
	user := middleware.CurrentUser(r)
	leagueID := chi.URLParam(r, "leagueID")

	if _, err := h.Leagues.GetConnection(user.ID, leagueID); err != nil {
		utils.JSON(w, http.StatusNotFound, models.ErrorResponse{
			Code: "league_not_connected", Message: "Please connect this league first",
		})
		return
	}

	league, err := h.Sleeper.GetLeague(r.Context(), leagueID)
	if err != nil {
		utils.JSON(w, http.StatusNotFound, models.ErrorResponse{
			Code: "league_not_found", Message: "League data not found. Please reconnect to your league.",
		})
		return
	}
	utils.JSON(w, http.StatusOK, models.ConnectLeagueResponse{League: league})
}

// ListHandler returns the user's saved league connections.
func (h *LeagueHandler) ListHandler(w http.ResponseWriter, r *http.Request) {
	user := middleware.CurrentUser(r)
	conns, err := h.Leagues.ListConnections(user.ID)
	if err != nil {
		h.Logger.Error("failed to list league connections", zap.Uint("user_id", user.ID), zap.Error(err))
		utils.JSON(w, http.StatusInternalServerError, models.ErrorResponse{
			Code: "list_failed", Message: "Failed to load league connections",
		})
		return
	}
	utils.JSON(w, http.StatusOK, map[string]any{"leagues": conns})
}

// SelectTeamHandler records which team in the league belongs to the user.
func (h *LeagueHandler) SelectTeamHandler(w http.ResponseWriter, r *http.Request) {
	req := middleware.GetValidatedRequest[*models.SelectTeamRequest](r)
	user := middleware.CurrentUser(r)
	leagueID := chi.URLParam(r, "leagueID")

	conn, err := h.Leagues.GetConnection(user.ID, leagueID)
	if err != nil {
		if errors.Is(err, repositories.ErrLeagueConnectionNotFound) {
			utils.JSON(w, http.StatusNotFound, models.ErrorResponse{
				Code: "league_not_connected", Message: "Please connect this league first",
			})
			return
		}
		utils.JSON(w, http.StatusInternalServerError, models.ErrorResponse{
			Code: "lookup_failed", Message: "Failed to load league connection",
		})
		return
	}

	league, err := h.Sleeper.GetLeague(r.Context(), leagueID)
	if err != nil {
		utils.JSON(w, http.StatusNotFound, models.ErrorResponse{
			Code: "league_not_found", Message: "League data not found. Please reconnect to your league.",
		})
		return
	}

	var member *models.LeagueUser
	for i := range league.Users {
		if league.Users[i].UserID == req.TeamID {
			member = &league.Users[i]
			break
		}
	}
	if member == nil {
		utils.JSON(w, http.StatusBadRequest, models.ErrorResponse{
			Code: "invalid_team", Message: "Invalid team selection",
		})
		return
	}

	if err := h.Leagues.UpdateSelectedTeam(user.ID, leagueID, member.UserID, member.DisplayName); err != nil {
		h.Logger.Error("failed to save team selection",
			zap.Uint("user_id", user.ID), zap.String("league_id", leagueID), zap.Error(err))
		utils.JSON(w, http.StatusInternalServerError, models.ErrorResponse{
			Code: "save_failed", Message: "Failed to save team selection",
		})
		return
	}

	conn.SelectedTeamID = member.UserID
	conn.SelectedTeamName = member.DisplayName
	utils.JSON(w, http.StatusOK, conn)
}
