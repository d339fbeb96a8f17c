package trades

import (
	"context"
	"strconv"
	"strings"

	"dynastytrade/internal/llm"
	"dynastytrade/internal/metrics"
	"dynastytrade/internal/models"
	"dynastytrade/internal/prompts"

	"go.uber.org/zap"
)

const (
	suggestionTemperature     = 0.7
	suggestionMaxOutputTokens = 2000
)

// SuggestionEngine produces trade suggestions for a roster, preferring the
// generative backend and degrading to the deterministic fallback set. A nil
// provider means the backend is not configured and every request takes the
// fallback path.
type SuggestionEngine struct {
	provider llm.Provider
	prompts  prompts.PromptProvider
	logger   *zap.Logger
}

func NewSuggestionEngine(provider llm.Provider, promptManager prompts.PromptProvider, logger *zap.Logger) *SuggestionEngine {
	return &SuggestionEngine{
		provider: provider,
		prompts:  promptManager,
		logger:   logger,
	}
}

// GenerateSuggestions never fails: backend and parse errors are logged and
// absorbed by the fallback set.
func (e *SuggestionEngine) GenerateSuggestions(
	ctx context.Context,
	league *models.League,
	userRoster *models.Roster,
	catalog map[string]models.Player,
	prefs models.TradePreferences,
	maxSuggestions int,
) []models.TradeSuggestion {
	if e.provider == nil {
		metrics.RecordGeneration("suggest", "fallback")
		return filterByStrategy(fallbackTrades(), prefs.Strategy)
	}

	prompt, err := e.buildPrompt(league, userRoster, catalog, prefs, maxSuggestions)
	if err != nil {
		e.logger.Error("failed to build trade suggestion prompt", zap.Error(err))
		metrics.RecordGeneration("suggest", "fallback")
		return filterByStrategy(fallbackTrades(), prefs.Strategy)
	}

	raw, err := e.provider.GenerateText(ctx, llm.GenerateRequest{
		SystemInstruction: e.prompts.SystemInstruction("trade_suggestions"),
		Prompt:            prompt,
		MaxOutputTokens:   suggestionMaxOutputTokens,
		Temperature:       suggestionTemperature,
	})
	if err != nil {
		e.logger.Warn("trade suggestion backend failed, using fallback",
			zap.String("provider", e.provider.GetProviderName()), zap.Error(err))
		metrics.RecordGeneration("suggest", "fallback")
		return filterByStrategy(fallbackTrades(), prefs.Strategy)
	}

	suggestions, err := parseSuggestions(raw)
	if err != nil {
		e.logger.Warn("unusable trade suggestion response, using fallback", zap.Error(err))
		metrics.RecordGeneration("suggest", "fallback")
		return filterByStrategy(fallbackTrades(), prefs.Strategy)
	}

	metrics.RecordGeneration("suggest", "llm")
	if len(suggestions) > maxSuggestions {
		suggestions = suggestions[:maxSuggestions]
	}
	return suggestions
}

func (e *SuggestionEngine) buildPrompt(
	league *models.League,
	userRoster *models.Roster,
	catalog map[string]models.Player,
	prefs models.TradePreferences,
	maxSuggestions int,
) (string, error) {
	positionNeeds := "None specified"
	if len(prefs.PositionNeeds) > 0 {
		positionNeeds = strings.Join(prefs.PositionNeeds, ", ")
	}
	notes := prefs.AdditionalNotes
	if notes == "" {
		notes = "None"
	}

	return e.prompts.BuildPrompt("trade_suggestions", map[string]string{
		"MaxSuggestions":  strconv.Itoa(maxSuggestions),
		"Context":         buildTradeContext(league, userRoster, catalog),
		"Strategy":        prefs.Strategy,
		"RiskTolerance":   prefs.RiskTolerance,
		"PositionNeeds":   positionNeeds,
		"AdditionalNotes": notes,
	})
}
