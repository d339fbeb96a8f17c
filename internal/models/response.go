package models

// uniform error responses
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (e *ErrorResponse) Error() string {
	return e.Message
}

// UserResponse is the public view of an account.
type UserResponse struct {
	PublicID    string `json:"public_id"`
	Email       string `json:"email"`
	DisplayName string `json:"display_name"`
	Plan        Plan   `json:"plan"`
	TradeCount  int    `json:"trade_count"`
}

// PublicUser strips credential fields from a stored user.
func PublicUser(u *User) UserResponse {
	return UserResponse{
		PublicID:    u.PublicID,
		Email:       u.Email,
		DisplayName: u.DisplayName,
		Plan:        u.Plan,
		TradeCount:  u.TradeCount,
	}
}

type AuthResponse struct {
	Token     string       `json:"token"`
	ExpiresAt string       `json:"expires_at"`
	User      UserResponse `json:"user"`
}

type ConnectLeagueResponse struct {
	League *League `json:"league"`
}

// SuggestTradesResponse carries generated suggestions plus usage metadata.
type SuggestTradesResponse struct {
	Trades     []TradeSuggestion `json:"trades"`
	RequestID  string            `json:"request_id"`
	Plan       Plan              `json:"plan"`
	TradeCount int               `json:"trade_count"`
}

type TradeValueResponse struct {
	Result    TradeValuation `json:"result"`
	RequestID string         `json:"request_id"`
}

type CheckoutResponse struct {
	CheckoutURL string `json:"checkout_url"`
	SessionID   string `json:"session_id"`
}
