package trades

import (
	"encoding/json"
	"errors"
	"fmt"

	"dynastytrade/internal/models"
	"dynastytrade/internal/utils"
)

// Model output is untrusted text. Both parsers strip markdown fences, pull
// out the first JSON object, and reject anything that does not match the
// requested shape; the caller routes every failure to the fallback.

var errEmptyResponse = errors.New("response contains no JSON object")

type suggestionsPayload struct {
	Trades []models.TradeSuggestion `json:"trades"`
}

func parseSuggestions(raw string) ([]models.TradeSuggestion, error) {
	text := utils.ExtractJSONObject(utils.StripFences(raw))
	if text == "" {
		return nil, errEmptyResponse
	}

	var payload suggestionsPayload
	if err := json.Unmarshal([]byte(text), &payload); err != nil {
		return nil, fmt.Errorf("malformed trades JSON: %w", err)
	}
	if len(payload.Trades) == 0 {
		return nil, errors.New("no trades in response")
	}

	for i, t := range payload.Trades {
		if len(t.UserGives) == 0 || len(t.UserReceives) == 0 {
			return nil, fmt.Errorf("trade %d is missing assets", i)
		}
		if t.TradePartner == "" || t.Reasoning == "" {
			return nil, fmt.Errorf("trade %d is missing partner or reasoning", i)
		}
		if t.FairnessScore < 0 || t.FairnessScore > 100 {
			return nil, fmt.Errorf("trade %d has fairness score out of range: %d", i, t.FairnessScore)
		}
	}
	return payload.Trades, nil
}

func parseValuation(raw string) (*models.TradeValuation, error) {
	text := utils.ExtractJSONObject(utils.StripFences(raw))
	if text == "" {
		return nil, errEmptyResponse
	}

	var result models.TradeValuation
	if err := json.Unmarshal([]byte(text), &result); err != nil {
		return nil, fmt.Errorf("malformed valuation JSON: %w", err)
	}
	if result.FairnessScore < 0 || result.FairnessScore > 100 {
		return nil, fmt.Errorf("fairness score out of range: %d", result.FairnessScore)
	}
	switch result.Winner {
	case "Team A", "Team B", "Even":
	default:
		return nil, fmt.Errorf("unexpected winner value: %q", result.Winner)
	}
	if result.Analysis == "" {
		return nil, errors.New("valuation is missing analysis")
	}
	return &result, nil
}
