package routers

import (
	"dynastytrade/internal/handlers"
	"dynastytrade/internal/middleware"
	"dynastytrade/internal/models"
	"dynastytrade/internal/repositories"

	"github.com/go-chi/chi/v5"
)

func LeagueRoutes(router *chi.Mux, leagueHandler *handlers.LeagueHandler, sessions *repositories.SessionRepository) {
	router.Route("/api/v1/leagues", func(r chi.Router) {
		r.Use(middleware.SessionAuth(sessions))
		r.With(middleware.ValidateRequest[*models.ConnectLeagueRequest]()).Post("/connect", leagueHandler.ConnectHandler)
		r.Get("/", leagueHandler.ListHandler)
		r.Get("/{leagueID}", leagueHandler.GetHandler)
		r.With(middleware.ValidateRequest[*models.SelectTeamRequest]()).Post("/{leagueID}/team", leagueHandler.SelectTeamHandler)
	})
}
