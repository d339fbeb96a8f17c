package trades

import (
	"context"
	"fmt"
	"math"
	"strings"

	"dynastytrade/internal/llm"
	"dynastytrade/internal/metrics"
	"dynastytrade/internal/models"
	"dynastytrade/internal/prompts"

	"go.uber.org/zap"
)

const (
	valuationTemperature     = 0.3
	valuationMaxOutputTokens = 1000
)

// ValueCalculator compares two sides of a proposed trade. The backend path
// asks the model for value estimates; the fallback is a closed-form formula
// depending only on list lengths.
type ValueCalculator struct {
	provider llm.Provider
	prompts  prompts.PromptProvider
	logger   *zap.Logger
}

func NewValueCalculator(provider llm.Provider, promptManager prompts.PromptProvider, logger *zap.Logger) *ValueCalculator {
	return &ValueCalculator{
		provider: provider,
		prompts:  promptManager,
		logger:   logger,
	}
}

// CalculateTradeValue never fails; both sides are assumed non-empty (caller
// validation).
func (c *ValueCalculator) CalculateTradeValue(ctx context.Context, teamA, teamB []string) models.TradeValuation {
	if c.provider == nil {
		metrics.RecordGeneration("value", "fallback")
		return fallbackValuation(teamA, teamB)
	}

	prompt, err := c.prompts.BuildPrompt("trade_value", map[string]string{
		"TeamA": strings.Join(teamA, ", "),
		"TeamB": strings.Join(teamB, ", "),
	})
	if err != nil {
		c.logger.Error("failed to build trade value prompt", zap.Error(err))
		metrics.RecordGeneration("value", "fallback")
		return fallbackValuation(teamA, teamB)
	}

	raw, err := c.provider.GenerateText(ctx, llm.GenerateRequest{
		SystemInstruction: c.prompts.SystemInstruction("trade_value"),
		Prompt:            prompt,
		MaxOutputTokens:   valuationMaxOutputTokens,
		Temperature:       valuationTemperature,
	})
	if err != nil {
		c.logger.Warn("trade value backend failed, using fallback",
			zap.String("provider", c.provider.GetProviderName()), zap.Error(err))
		metrics.RecordGeneration("value", "fallback")
		return fallbackValuation(teamA, teamB)
	}

	result, err := parseValuation(raw)
	if err != nil {
		c.logger.Warn("unusable trade value response, using fallback", zap.Error(err))
		metrics.RecordGeneration("value", "fallback")
		return fallbackValuation(teamA, teamB)
	}
	metrics.RecordGeneration("value", "llm")
	return *result
}

// fallbackValuation is a pure function of the two list lengths.
func fallbackValuation(teamA, teamB []string) models.TradeValuation {
	teamAValue := float64(len(teamA)*50 + len(teamA)*10)
	teamBValue := float64(len(teamB)*55 + len(teamB)*8)

	difference := math.Abs(teamAValue - teamBValue)
	fairness := math.Max(0, 100-(difference/math.Max(teamAValue, teamBValue))*100)
	score := int(math.Round(fairness))

	var winner string
	switch {
	case fairness >= 90:
		winner = "Even"
	case teamAValue > teamBValue:
		winner = "Team A"
	default:
		winner = "Team B"
	}

	return models.TradeValuation{
		TeamAValue:    teamAValue,
		TeamBValue:    teamBValue,
		FairnessScore: score,
		Winner:        winner,
		Analysis: fmt.Sprintf(
			"Team A offers %d player(s) with estimated value of %.0f. Team B offers %d player(s) with estimated value of %.0f. The trade favors %s.",
			len(teamA), teamAValue, len(teamB), teamBValue, winner),
		Recommendations: "Consider adding draft picks or additional players to balance the trade if needed.",
	}
}
