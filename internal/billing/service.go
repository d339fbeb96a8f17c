package billing

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"dynastytrade/internal/models"
	"dynastytrade/internal/repositories"

	"go.uber.org/zap"
)

var (
	// ErrPaymentUnconfirmed means the provider has not marked the checkout
	// as paid; nothing is mutated and the caller may retry safely.
	ErrPaymentUnconfirmed = errors.New("payment not confirmed")

	// ErrBillingUnavailable means the payment provider is not configured or
	// the call to it failed.
	ErrBillingUnavailable = errors.New("payment system unavailable")
)

// Config carries checkout presentation and pricing.
type Config struct {
	AmountCents int64
	Currency    string
	ProductName string
	Description string
	SuccessURL  string
	CancelURL   string
}

// Service drives the pro-plan upgrade flow: create a hosted checkout,
// record the pending transaction, and on confirmed payment upgrade the plan.
type Service struct {
	provider CheckoutProvider
	users    *repositories.UserRepository
	txns     *repositories.TransactionRepository
	config   Config
	logger   *zap.Logger
}

func NewService(provider CheckoutProvider, users *repositories.UserRepository, txns *repositories.TransactionRepository, config Config, logger *zap.Logger) *Service {
	if config.Currency == "" {
		config.Currency = "usd"
	}
	return &Service{
		provider: provider,
		users:    users,
		txns:     txns,
		config:   config,
		logger:   logger,
	}
}

// StartCheckout creates a hosted checkout session for the user and records a
// pending ledger row.
func (s *Service) StartCheckout(ctx context.Context, user *models.User) (*CheckoutSession, error) {
	if s.provider == nil {
		return nil, ErrBillingUnavailable
	}

	session, err := s.provider.CreateCheckoutSession(ctx, CheckoutParams{
		CustomerEmail: user.Email,
		UserID:        strconv.FormatUint(uint64(user.ID), 10),
		AmountCents:   s.config.AmountCents,
		Currency:      s.config.Currency,
		ProductName:   s.config.ProductName,
		Description:   s.config.Description,
		SuccessURL:    s.config.SuccessURL,
		CancelURL:     s.config.CancelURL,
	})
	if err != nil {
		s.logger.Error("failed to create checkout session", zap.Uint("user_id", user.ID), zap.Error(err))
		return nil, fmt.Errorf("%w: %v", ErrBillingUnavailable, err)
	}

	txn := &models.Transaction{
		UserID:            user.ID,
		CheckoutSessionID: session.ID,
		AmountCents:       s.config.AmountCents,
		PlanType:          models.PlanPro,
		Status:            models.TransactionPending,
	}
	if err := s.txns.Create(txn); err != nil {
		s.logger.Error("failed to record transaction", zap.String("session_id", session.ID), zap.Error(err))
		return nil, err
	}

	s.logger.Info("checkout session created",
		zap.Uint("user_id", user.ID), zap.String("session_id", session.ID))
	return session, nil
}

// ConfirmCheckout verifies the checkout with the provider and, when paid,
// upgrades the user's plan and resets the trade counter. Confirming a
// session that was already completed is a no-op beyond leaving plan=pro:
// replayed notifications must not double-apply.
func (s *Service) ConfirmCheckout(ctx context.Context, userID uint, sessionID string) error {
	if s.provider == nil {
		return ErrBillingUnavailable
	}

	txn, err := s.txns.GetBySessionID(sessionID)
	if err != nil {
		return err
	}
	if txn.UserID != userID {
		return repositories.ErrTransactionNotFound
	}
	if txn.Status == models.TransactionCompleted {
		// replayed confirmation; the upgrade already happened
		return nil
	}

	session, err := s.provider.GetCheckoutSession(ctx, sessionID)
	if err != nil {
		s.logger.Error("failed to verify checkout session", zap.String("session_id", sessionID), zap.Error(err))
		return fmt.Errorf("%w: %v", ErrBillingUnavailable, err)
	}
	if session.PaymentStatus != PaymentStatusPaid {
		s.logger.Warn("checkout not paid",
			zap.String("session_id", sessionID), zap.String("payment_status", session.PaymentStatus))
		return ErrPaymentUnconfirmed
	}

	if err := s.txns.UpdateStatus(sessionID, models.TransactionCompleted, session.PaymentIntentID); err != nil {
		return err
	}
	if err := s.users.UpdatePlan(userID, models.PlanPro); err != nil {
		return err
	}

	s.logger.Info("plan upgraded to pro",
		zap.Uint("user_id", userID), zap.String("session_id", sessionID))
	return nil
}
