package trades

import (
	"fmt"
	"strings"

	"dynastytrade/internal/models"
)

const (
	maxUserPlayersInContext = 15
	maxOtherTeamsInContext  = 5
	maxTeamPlayersInContext = 8
)

// describePlayers renders roster player ids as "Name (POS)" strings,
// skipping ids missing from the catalog.
func describePlayers(playerIDs []string, catalog map[string]models.Player, limit int) []string {
	described := make([]string, 0, limit)
	for _, id := range playerIDs {
		if len(described) >= limit {
			break
		}
		player, ok := catalog[id]
		if !ok {
			continue
		}
		described = append(described, fmt.Sprintf("%s (%s)", player.Name, player.Position))
	}
	return described
}

// buildTradeContext summarizes the user's roster and potential trade
// partners for the model. Rosters are truncated to keep the prompt bounded.
func buildTradeContext(league *models.League, userRoster *models.Roster, catalog map[string]models.Player) string {
	userPlayers := describePlayers(userRoster.Players, catalog, maxUserPlayersInContext)

	var b strings.Builder
	fmt.Fprintf(&b, "League: %s\n", league.Name)
	fmt.Fprintf(&b, "User's Current Roster: %s\n\n", strings.Join(userPlayers, ", "))
	b.WriteString("Other Teams Available for Trades:\n")

	teams := 0
	for _, roster := range league.Rosters {
		if roster.RosterID == userRoster.RosterID {
			continue
		}
		if teams >= maxOtherTeamsInContext {
			break
		}
		teamPlayers := describePlayers(roster.Players, catalog, maxTeamPlayersInContext)
		fmt.Fprintf(&b, "%s: %s\n", league.MemberName(roster.OwnerID), strings.Join(teamPlayers, ", "))
		teams++
	}
	return b.String()
}
