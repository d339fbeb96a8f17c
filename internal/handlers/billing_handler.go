package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"dynastytrade/internal/billing"
	"dynastytrade/internal/middleware"
	"dynastytrade/internal/models"
	"dynastytrade/internal/repositories"
	"dynastytrade/internal/utils"

	"go.uber.org/zap"
)

// BillingHandler drives checkout, confirmation and plan changes.
type BillingHandler struct {
	Billing *billing.Service
	Users   *repositories.UserRepository
	Txns    *repositories.TransactionRepository
	Logger  *zap.Logger
}

func NewBillingHandler(billingService *billing.Service, users *repositories.UserRepository, txns *repositories.TransactionRepository, logger *zap.Logger) *BillingHandler {
	return &BillingHandler{
		Billing: billingService,
		Users:   users,
		Txns:    txns,
		Logger:  logger,
	}
}

// CheckoutHandler creates a hosted checkout session for the pro upgrade.
func (h *BillingHandler) CheckoutHandler(w http.ResponseWriter, r *http.Request) {
	user := middleware.CurrentUser(r)

	session, err := h.Billing.StartCheckout(r.Context(), user)
	if err != nil {
		utils.JSON(w, http.StatusServiceUnavailable, models.ErrorResponse{
			Code:    "billing_unavailable",
			Message: "Payment system temporarily unavailable. Please try again later.",
		})
		return
	}

	utils.JSON(w, http.StatusOK, models.CheckoutResponse{
		CheckoutURL: session.URL,
		SessionID:   session.ID,
	})
}

// ConfirmHandler verifies a completed checkout and applies the upgrade.
// Replaying a confirmation is safe.
func (h *BillingHandler) ConfirmHandler(w http.ResponseWriter, r *http.Request) {
	user := middleware.CurrentUser(r)
	sessionID := r.URL.Query().Get("session_id")
	if sessionID == "" {
		utils.JSON(w, http.StatusBadRequest, models.ErrorResponse{
			Code: "missing_session_id", Message: "session_id query parameter is required",
		})
		return
	}

	if err := h.Billing.ConfirmCheckout(r.Context(), user.ID, sessionID); err != nil {
		switch {
		case errors.Is(err, billing.ErrPaymentUnconfirmed):
			utils.JSON(w, http.StatusPaymentRequired, models.ErrorResponse{
				Code: "payment_unconfirmed", Message: "Payment verification failed. Please contact support if you were charged.",
			})
		case errors.Is(err, repositories.ErrTransactionNotFound):
			utils.JSON(w, http.StatusNotFound, models.ErrorResponse{
				Code: "transaction_not_found", Message: "Checkout session not found",
			})
		default:
			utils.JSON(w, http.StatusServiceUnavailable, models.ErrorResponse{
				Code: "billing_unavailable", Message: "Payment system temporarily unavailable. Please try again later.",
			})
		}
		return
	}

	refreshed, err := h.Users.GetUserByID(user.ID)
	if err != nil {
		refreshed = user
	}
	utils.JSON(w, http.StatusOK, models.PublicUser(refreshed))
}

// webhookEvent is the subset of the provider's notification payload the
// service cares about.
type webhookEvent struct {
	Type string `json:"type"`
	Data struct {
		Object struct {
			ID       string            `json:"id"`
			Metadata map[string]string `json:"metadata"`
		} `json:"object"`
	} `json:"data"`
}

// WebhookHandler processes asynchronous payment notifications. Processing is
// idempotent, so provider retries and duplicate deliveries are harmless.
func (h *BillingHandler) WebhookHandler(w http.ResponseWriter, r *http.Request) {
	var event webhookEvent
	if err := json.NewDecoder(r.Body).Decode(&event); err != nil {
		utils.JSON(w, http.StatusBadRequest, models.ErrorResponse{
			Code: "invalid_payload", Message: "Invalid webhook payload",
		})
		return
	}
	if event.Type != "checkout.session.completed" {
		w.WriteHeader(http.StatusOK)
		return
	}

	rawUserID := event.Data.Object.Metadata["user_id"]
	userID, err := strconv.ParseUint(rawUserID, 10, 64)
	if err != nil {
		h.Logger.Warn("webhook without usable user metadata", zap.String("session_id", event.Data.Object.ID))
		w.WriteHeader(http.StatusOK)
		return
	}

	if err := h.Billing.ConfirmCheckout(r.Context(), uint(userID), event.Data.Object.ID); err != nil {
		if errors.Is(err, billing.ErrPaymentUnconfirmed) || errors.Is(err, repositories.ErrTransactionNotFound) {
			// nothing to apply; acknowledge so the provider stops retrying
			w.WriteHeader(http.StatusOK)
			return
		}
		h.Logger.Error("webhook confirmation failed", zap.String("session_id", event.Data.Object.ID), zap.Error(err))
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusOK)
}

// UpdatePlanHandler changes the subscription tier directly. Any plan change
// resets the trade counter.
func (h *BillingHandler) UpdatePlanHandler(w http.ResponseWriter, r *http.Request) {
	req := middleware.GetValidatedRequest[*models.UpdatePlanRequest](r)
	user := middleware.CurrentUser(r)

	if err := h.Users.UpdatePlan(user.ID, models.Plan(req.Plan)); err != nil {
		h.Logger.Error("failed to update plan", zap.Uint("user_id", user.ID), zap.Error(err))
		utils.JSON(w, http.StatusInternalServerError, models.ErrorResponse{
			Code: "update_failed", Message: "Failed to update plan",
		})
		return
	}

	user.Plan = models.Plan(req.Plan)
	user.TradeCount = 0
	utils.JSON(w, http.StatusOK, models.PublicUser(user))
}
