package models

import (
	"time"

	"gorm.io/gorm"
)

// Plan is a subscription tier controlling trade-generation quota.
type Plan string

const (
	PlanFree Plan = "free"
	PlanPro  Plan = "pro"
)

// ValidPlans contains all recognised subscription tiers.
var ValidPlans = map[Plan]bool{
	PlanFree: true,
	PlanPro:  true,
}

// User represents a registered account. Email is stored lowercased so
// uniqueness is case-insensitive.
type User struct {
	gorm.Model
	PublicID         string `gorm:"uniqueIndex;not null" json:"public_id"`
	Email            string `gorm:"uniqueIndex;not null" json:"email"`
	DisplayName      string `json:"display_name"`
	PasswordHash     string `gorm:"not null" json:"-"`
	Plan             Plan   `gorm:"not null;default:free" json:"plan"`
	TradeCount       int    `gorm:"not null;default:0" json:"trade_count"`
	StripeCustomerID *string    `json:"-"`
	LastLoginAt      *time.Time `json:"last_login_at,omitempty"`
}

// Session maps an opaque token to an authenticated user with expiry.
type Session struct {
	gorm.Model
	UserID    uint      `gorm:"index;not null" json:"user_id"`
	Token     string    `gorm:"uniqueIndex;not null" json:"-"`
	ExpiresAt time.Time `gorm:"not null" json:"expires_at"`
}

// LeagueConnection records which external league (and team within it) a user
// has connected. Reconnecting the same league overwrites, never duplicates.
type LeagueConnection struct {
	gorm.Model
	UserID           uint   `gorm:"not null;uniqueIndex:idx_user_league" json:"user_id"`
	LeagueID         string `gorm:"not null;uniqueIndex:idx_user_league" json:"league_id"`
	LeagueName       string `json:"league_name"`
	SelectedTeamID   string `json:"selected_team_id"`
	SelectedTeamName string `json:"selected_team_name"`
}

// TransactionStatus tracks the lifecycle of a checkout session.
type TransactionStatus string

const (
	TransactionPending   TransactionStatus = "pending"
	TransactionCompleted TransactionStatus = "completed"
	TransactionFailed    TransactionStatus = "failed"
)

// Transaction is one row of the payment ledger. Rows are never deleted.
type Transaction struct {
	gorm.Model
	UserID            uint              `gorm:"index;not null" json:"user_id"`
	CheckoutSessionID string            `gorm:"uniqueIndex;not null" json:"checkout_session_id"`
	AmountCents       int64             `json:"amount_cents"`
	PlanType          Plan              `json:"plan_type"`
	Status            TransactionStatus `gorm:"not null;default:pending" json:"status"`
	PaymentIntentID   string            `json:"payment_intent_id,omitempty"`
}
