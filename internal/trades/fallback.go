package trades

import (
	"strings"

	"dynastytrade/internal/models"
)

const fallbackCap = 3

// fallbackTrades is the deterministic suggestion set served when the
// generative backend is unavailable or returns unusable output.
func fallbackTrades() []models.TradeSuggestion {
	return []models.TradeSuggestion{
		{
			ID:            1,
			FairnessScore: 92,
			UserGives:     []string{"Christian McCaffrey", "2025 2nd Round Pick"},
			UserReceives:  []string{"Ja'Marr Chase", "Tony Pollard"},
			TradePartner:  "Dynasty Warriors",
			Reasoning:     "This trade helps you get younger at WR while maintaining RB depth. Chase is an elite long-term asset perfect for dynasty. You're trading peak value CMC for sustained production.",
		},
		{
			ID:            2,
			FairnessScore: 88,
			UserGives:     []string{"Travis Kelce", "Derrick Henry"},
			UserReceives:  []string{"Kyle Pitts", "Breece Hall", "2025 1st Round Pick"},
			TradePartner:  "Championship Chasers",
			Reasoning:     "Perfect rebuild move if that's your strategy. You're trading aging veterans for young talent with massive upside. Pitts could return to elite form, Hall is a stud RB.",
		},
		{
			ID:            3,
			FairnessScore: 85,
			UserGives:     []string{"Cooper Kupp", "2024 3rd Round Pick"},
			UserReceives:  []string{"DK Metcalf", "Rachaad White"},
			TradePartner:  "Fantasy Fanatics",
			Reasoning:     "Age-based swap that gives you a younger WR1 in Metcalf plus RB depth. Kupp is still elite but Metcalf has more dynasty runway ahead.",
		},
	}
}

// filterByStrategy keeps only fallback entries matching the stated strategy:
// rebuild wants reasoning mentioning "young" or "rebuild", contend wants
// "contend" or "win now". Anything else passes the full set. Capped at 3.
func filterByStrategy(suggestions []models.TradeSuggestion, strategy string) []models.TradeSuggestion {
	var keywords []string
	switch strategy {
	case "rebuild":
		keywords = []string{"young", "rebuild"}
	case "contend":
		keywords = []string{"contend", "win now"}
	default:
		return cap3(suggestions)
	}

	filtered := make([]models.TradeSuggestion, 0, len(suggestions))
	for _, s := range suggestions {
		for _, kw := range keywords {
			if strings.Contains(s.Reasoning, kw) {
				filtered = append(filtered, s)
				break
			}
		}
	}
	return cap3(filtered)
}

func cap3(suggestions []models.TradeSuggestion) []models.TradeSuggestion {
	if len(suggestions) > fallbackCap {
		return suggestions[:fallbackCap]
	}
	return suggestions
}
