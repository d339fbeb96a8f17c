package routers

import (
	"dynastytrade/internal/handlers"
	"dynastytrade/internal/middleware"
	"dynastytrade/internal/models"
	"dynastytrade/internal/repositories"

	"github.com/go-chi/chi/v5"
)

func TradeRoutes(router *chi.Mux, tradeHandler *handlers.TradeHandler, sessions *repositories.SessionRepository) {
	router.Route("/api/v1/trades", func(r chi.Router) {
		r.Use(middleware.SessionAuth(sessions))
		r.With(middleware.ValidateRequest[*models.SuggestTradesRequest]()).Post("/suggest", tradeHandler.SuggestHandler)
		r.With(middleware.ValidateRequest[*models.TradeValueRequest]()).Post("/value", tradeHandler.ValueHandler)
	})
}
