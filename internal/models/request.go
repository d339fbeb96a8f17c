package models

import (
	"strings"
)

type RegisterRequest struct {
	DisplayName string `json:"display_name"`
	Email       string `json:"email"`
	Password    string `json:"password"`
	Plan        string `json:"plan"`
}

// implements the Validator interface
func (r *RegisterRequest) Validate() error {
	r.Email = strings.ToLower(strings.TrimSpace(r.Email))
	if r.Email == "" {
		return &ErrorResponse{Code: "missing_email", Message: "Email field is required"}
	}
	if !strings.Contains(r.Email, "@") {
		return &ErrorResponse{Code: "invalid_email", Message: "Email must be a valid address"}
	}
	if r.Password == "" {
		return &ErrorResponse{Code: "missing_password", Message: "Password field is required"}
	}
	if len(r.Password) < 8 {
		return &ErrorResponse{Code: "weak_password", Message: "Password must be at least 8 characters"}
	}
	if r.Plan == "" {
		r.Plan = string(PlanFree)
	}
	if !ValidPlans[Plan(r.Plan)] {
		return &ErrorResponse{Code: "invalid_plan", Message: "Plan must be one of: free, pro"}
	}
	return nil
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (r *LoginRequest) Validate() error {
	r.Email = strings.ToLower(strings.TrimSpace(r.Email))
	if r.Email == "" {
		return &ErrorResponse{Code: "missing_email", Message: "Email field is required"}
	}
	if r.Password == "" {
		return &ErrorResponse{Code: "missing_password", Message: "Password field is required"}
	}
	return nil
}

type ConnectLeagueRequest struct {
	LeagueID string `json:"league_id"`
}

func (r *ConnectLeagueRequest) Validate() error {
	r.LeagueID = strings.TrimSpace(r.LeagueID)
	if r.LeagueID == "" {
		return &ErrorResponse{Code: "missing_league_id", Message: "League ID is required"}
	}
	return nil
}

type SelectTeamRequest struct {
	TeamID string `json:"team_id"`
}

func (r *SelectTeamRequest) Validate() error {
	r.TeamID = strings.TrimSpace(r.TeamID)
	if r.TeamID == "" {
		return &ErrorResponse{Code: "missing_team_id", Message: "Team ID is required"}
	}
	return nil
}

type SuggestTradesRequest struct {
	LeagueID        string   `json:"league_id"`
	Strategy        string   `json:"strategy"`
	RiskTolerance   string   `json:"risk_tolerance"`
	PositionNeeds   []string `json:"position_needs"`
	AdditionalNotes string   `json:"additional_notes"`
}

func (r *SuggestTradesRequest) Validate() error {
	r.LeagueID = strings.TrimSpace(r.LeagueID)
	if r.LeagueID == "" {
		return &ErrorResponse{Code: "missing_league_id", Message: "League ID is required"}
	}
	r.Strategy = strings.ToLower(strings.TrimSpace(r.Strategy))
	if r.Strategy == "" {
		r.Strategy = DefaultStrategy
	}
	if !ValidStrategies[r.Strategy] {
		return &ErrorResponse{Code: "invalid_strategy", Message: "Strategy must be one of: contend, rebuild, balanced"}
	}
	r.RiskTolerance = strings.ToLower(strings.TrimSpace(r.RiskTolerance))
	if r.RiskTolerance == "" {
		r.RiskTolerance = DefaultRiskTolerance
	}
	if !ValidRiskTolerances[r.RiskTolerance] {
		return &ErrorResponse{Code: "invalid_risk_tolerance", Message: "Risk tolerance must be one of: low, medium, high"}
	}
	return nil
}

// Preferences converts the validated request into trade preferences.
func (r *SuggestTradesRequest) Preferences() TradePreferences {
	return TradePreferences{
		Strategy:        r.Strategy,
		RiskTolerance:   r.RiskTolerance,
		PositionNeeds:   r.PositionNeeds,
		AdditionalNotes: r.AdditionalNotes,
	}
}

type TradeValueRequest struct {
	TeamAPlayers []string `json:"teamA_players"`
	TeamBPlayers []string `json:"teamB_players"`
}

func (r *TradeValueRequest) Validate() error {
	r.TeamAPlayers = trimNonEmpty(r.TeamAPlayers)
	r.TeamBPlayers = trimNonEmpty(r.TeamBPlayers)
	if len(r.TeamAPlayers) == 0 || len(r.TeamBPlayers) == 0 {
		return &ErrorResponse{Code: "missing_players", Message: "At least one player is required for each team"}
	}
	return nil
}

func trimNonEmpty(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}

type UpdatePlanRequest struct {
	Plan string `json:"plan"`
}

func (r *UpdatePlanRequest) Validate() error {
	r.Plan = strings.ToLower(strings.TrimSpace(r.Plan))
	if !ValidPlans[Plan(r.Plan)] {
		return &ErrorResponse{Code: "invalid_plan", Message: "Plan must be one of: free, pro"}
	}
	return nil
}
