package sleeper

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"dynastytrade/internal/metrics"
	"dynastytrade/internal/models"
)

// ErrUpstreamUnavailable covers transport failures and non-2xx responses
// from the league data provider.
var ErrUpstreamUnavailable = errors.New("league data provider unavailable")

const DefaultBaseURL = "https://api.sleeper.app/v1"

// Client is a read-only adapter for the Sleeper fantasy API.
type Client struct {
	baseURL string
	http    *http.Client
}

func NewClient(baseURL string, timeout time.Duration) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: timeout},
	}
}

func (c *Client) get(ctx context.Context, endpoint string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+endpoint, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		metrics.RecordUpstream("error")
		return fmt.Errorf("%w: %v", ErrUpstreamUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		metrics.RecordUpstream("error")
		return fmt.Errorf("%w: status %d for %s", ErrUpstreamUnavailable, resp.StatusCode, endpoint)
	}
	metrics.RecordUpstream("ok")

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUpstreamUnavailable, err)
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("%w: malformed response for %s", ErrUpstreamUnavailable, endpoint)
	}
	return nil
}

// rawLeague mirrors the provider's league payload; optional fields may be
// missing and default downstream.
type rawLeague struct {
	Name         string `json:"name"`
	TotalRosters int    `json:"total_rosters"`
	Season       string `json:"season"`
}

// GetLeague fetches league metadata.
func (c *Client) GetLeague(ctx context.Context, leagueID string) (*rawLeague, error) {
	var league rawLeague
	if err := c.get(ctx, "/league/"+leagueID, &league); err != nil {
		return nil, err
	}
	return &league, nil
}

// GetLeagueUsers fetches the league's member list.
func (c *Client) GetLeagueUsers(ctx context.Context, leagueID string) ([]models.LeagueUser, error) {
	var users []models.LeagueUser
	if err := c.get(ctx, "/league/"+leagueID+"/users", &users); err != nil {
		return nil, err
	}
	return users, nil
}

// GetLeagueRosters fetches the league's rosters.
func (c *Client) GetLeagueRosters(ctx context.Context, leagueID string) ([]models.Roster, error) {
	var rosters []models.Roster
	if err := c.get(ctx, "/league/"+leagueID+"/rosters", &rosters); err != nil {
		return nil, err
	}
	return rosters, nil
}

type rawPlayer struct {
	FullName string `json:"full_name"`
	Position string `json:"position"`
	Team     string `json:"team"`
}

// GetAllPlayers fetches the full NFL player catalog keyed by player id.
func (c *Client) GetAllPlayers(ctx context.Context) (map[string]models.Player, error) {
	var raw map[string]rawPlayer
	if err := c.get(ctx, "/players/nfl", &raw); err != nil {
		return nil, err
	}

	players := make(map[string]models.Player, len(raw))
	for id, p := range raw {
		name := p.FullName
		if name == "" {
			name = "Unknown"
		}
		position := p.Position
		if position == "" {
			position = "N/A"
		}
		players[id] = models.Player{
			PlayerID: id,
			Name:     name,
			Position: position,
			Team:     p.Team,
		}
	}
	return players, nil
}
