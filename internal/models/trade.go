package models

// contains all valid trade strategies (in lowercase)
var ValidStrategies = map[string]bool{
	"contend":  true,
	"rebuild":  true,
	"balanced": true,
}

// contains all valid risk tolerances (in lowercase)
var ValidRiskTolerances = map[string]bool{
	"low":    true,
	"medium": true,
	"high":   true,
}

const (
	DefaultStrategy      = "balanced"
	DefaultRiskTolerance = "medium"
)

// TradePreferences captures what the user wants out of a trade. Constructed
// per request, never persisted.
type TradePreferences struct {
	Strategy        string   `json:"strategy"`
	RiskTolerance   string   `json:"risk_tolerance"`
	PositionNeeds   []string `json:"position_needs"`
	AdditionalNotes string   `json:"additional_notes"`
}

// TradeSuggestion is one proposed trade between the user and another team.
type TradeSuggestion struct {
	ID            int      `json:"id"`
	FairnessScore int      `json:"fairness_score"`
	UserGives     []string `json:"user_gives"`
	UserReceives  []string `json:"user_receives"`
	TradePartner  string   `json:"trade_partner"`
	Reasoning     string   `json:"reasoning"`
}

// TradeValuation is the fairness breakdown of a two-sided trade proposal.
type TradeValuation struct {
	TeamAValue      float64 `json:"teamA_value"`
	TeamBValue      float64 `json:"teamB_value"`
	FairnessScore   int     `json:"fairness_score"`
	Winner          string  `json:"winner"`
	Analysis        string  `json:"analysis"`
	Recommendations string  `json:"recommendations"`
}
