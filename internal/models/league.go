package models

// Player is one entry of the external player catalog.
type Player struct {
	PlayerID string `json:"player_id"`
	Name     string `json:"name"`
	Position string `json:"position"`
	Team     string `json:"team"`
}

// LeagueUser is a member of an external league.
type LeagueUser struct {
	UserID      string `json:"user_id"`
	DisplayName string `json:"display_name"`
	Avatar      string `json:"avatar,omitempty"`
}

// Roster is one team's player holdings within a league.
type Roster struct {
	RosterID int      `json:"roster_id"`
	OwnerID  string   `json:"owner_id"`
	Players  []string `json:"players"`
}

// League is the assembled snapshot of an external league: metadata plus its
// members and rosters. Treated as immutable once fetched.
type League struct {
	LeagueID     string       `json:"league_id"`
	Name         string       `json:"name"`
	TotalRosters int          `json:"total_rosters"`
	Season       string       `json:"season"`
	Users        []LeagueUser `json:"users"`
	Rosters      []Roster     `json:"rosters"`
}

// RosterForOwner returns the roster owned by the given league member, or nil.
func (l *League) RosterForOwner(ownerID string) *Roster {
	for i := range l.Rosters {
		if l.Rosters[i].OwnerID == ownerID {
			return &l.Rosters[i]
		}
	}
	return nil
}

// MemberName resolves a league member's display name, defaulting to
// "Unknown Team" when the owner is not listed.
func (l *League) MemberName(ownerID string) string {
	for _, u := range l.Users {
		if u.UserID == ownerID {
			if u.DisplayName != "" {
				return u.DisplayName
			}
			break
		}
	}
	return "Unknown Team"
}
