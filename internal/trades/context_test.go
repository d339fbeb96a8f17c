package trades

import (
	"fmt"
	"strings"
	"testing"

	"dynastytrade/internal/models"
)

func TestDescribePlayers(t *testing.T) {
	catalog := map[string]models.Player{
		"p1": {Name: "Quarterback One", Position: "QB"},
		"p2": {Name: "Receiver Two", Position: "WR"},
	}

	t.Run("renders name and position", func(t *testing.T) {
		got := describePlayers([]string{"p1", "p2"}, catalog, 10)
		if len(got) != 2 || got[0] != "Quarterback One (QB)" {
			t.Fatalf("unexpected result: %v", got)
		}
	})

	t.Run("skips unknown ids", func(t *testing.T) {
		got := describePlayers([]string{"ghost", "p1"}, catalog, 10)
		if len(got) != 1 || got[0] != "Quarterback One (QB)" {
			t.Fatalf("unexpected result: %v", got)
		}
	})

	t.Run("honors the limit", func(t *testing.T) {
		if got := describePlayers([]string{"p1", "p2"}, catalog, 1); len(got) != 1 {
			t.Fatalf("expected 1 entry, got %d", len(got))
		}
	})
}

func TestBuildTradeContext(t *testing.T) {
	catalog := make(map[string]models.Player)
	var rosters []models.Roster
	var users []models.LeagueUser
	for team := 0; team < 8; team++ {
		var players []string
		for p := 0; p < 3; p++ {
			id := fmt.Sprintf("t%dp%d", team, p)
			catalog[id] = models.Player{Name: fmt.Sprintf("Player %s", id), Position: "RB"}
			players = append(players, id)
		}
		rosters = append(rosters, models.Roster{RosterID: team + 1, OwnerID: fmt.Sprintf("o%d", team), Players: players})
		users = append(users, models.LeagueUser{UserID: fmt.Sprintf("o%d", team), DisplayName: fmt.Sprintf("Team %d", team)})
	}
	league := &models.League{Name: "Big League", Users: users, Rosters: rosters}

	ctx := buildTradeContext(league, &league.Rosters[0], catalog)

	if !strings.Contains(ctx, "League: Big League") {
		t.Fatalf("expected league name in context")
	}
	if !strings.Contains(ctx, "Player t0p0 (RB)") {
		t.Fatalf("expected user's players in context")
	}
	// the user's own team is not a trade partner
	if strings.Contains(ctx, "Team 0:") {
		t.Fatalf("user's own team listed as trade partner")
	}
	// other teams are capped
	partnerLines := 0
	for _, line := range strings.Split(ctx, "\n") {
		if strings.HasPrefix(line, "Team ") {
			partnerLines++
		}
	}
	if partnerLines != maxOtherTeamsInContext {
		t.Fatalf("expected %d partner teams, got %d", maxOtherTeamsInContext, partnerLines)
	}
}

func TestBuildTradeContext_UnknownOwner(t *testing.T) {
	league := &models.League{
		Name: "Small League",
		Rosters: []models.Roster{
			{RosterID: 1, OwnerID: "me", Players: nil},
			{RosterID: 2, OwnerID: "mystery", Players: nil},
		},
	}

	ctx := buildTradeContext(league, &league.Rosters[0], nil)
	if !strings.Contains(ctx, "Unknown Team:") {
		t.Fatalf("expected unknown owners to fall back to a default name")
	}
}
