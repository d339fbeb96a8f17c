package routers

import (
	"dynastytrade/internal/handlers"
	"dynastytrade/internal/middleware"
	"dynastytrade/internal/models"
	"dynastytrade/internal/repositories"

	"github.com/go-chi/chi/v5"
)

func BillingRoutes(router *chi.Mux, billingHandler *handlers.BillingHandler, sessions *repositories.SessionRepository) {
	router.Route("/api/v1/billing", func(r chi.Router) {
		// Stripe calls the webhook directly, so it sits outside session auth.
		r.Post("/webhook", billingHandler.WebhookHandler)

		r.Group(func(r chi.Router) {
			r.Use(middleware.SessionAuth(sessions))
			r.Post("/checkout", billingHandler.CheckoutHandler)
			r.Get("/confirm", billingHandler.ConfirmHandler)
			r.With(middleware.ValidateRequest[*models.UpdatePlanRequest]()).Post("/plan", billingHandler.UpdatePlanHandler)
		})
	})
}
