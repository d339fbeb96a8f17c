package routers

import (
	"dynastytrade/internal/handlers"
	"dynastytrade/internal/middleware"
	"dynastytrade/internal/models"
	"dynastytrade/internal/repositories"

	"github.com/go-chi/chi/v5"
)

func AuthRoutes(router *chi.Mux, authHandler *handlers.AuthHandler, sessions *repositories.SessionRepository) {
	router.Route("/api/v1/auth", func(r chi.Router) {
		r.With(middleware.ValidateRequest[*models.RegisterRequest]()).Post("/register", authHandler.RegisterHandler) // User registration
		r.With(middleware.ValidateRequest[*models.LoginRequest]()).Post("/login", authHandler.LoginHandler)          // User login
		r.Post("/logout", authHandler.LogoutHandler)                                                                 // Destroy session
		r.With(middleware.SessionAuth(sessions)).Get("/me", authHandler.MeHandler)                                   // Current user
	})
}
