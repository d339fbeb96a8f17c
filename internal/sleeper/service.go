package sleeper

import (
	"context"
	"errors"
	"sync"

	"dynastytrade/internal/models"

	"go.uber.org/zap"
)

// ErrLeagueNotFound is returned when a league cannot be fully assembled.
var ErrLeagueNotFound = errors.New("league not found")

// LeagueAPI is what the service needs from the provider client.
type LeagueAPI interface {
	GetLeague(ctx context.Context, leagueID string) (*rawLeague, error)
	GetLeagueUsers(ctx context.Context, leagueID string) ([]models.LeagueUser, error)
	GetLeagueRosters(ctx context.Context, leagueID string) ([]models.Roster, error)
}

// Service assembles league snapshots and keeps the last good snapshot per
// league. Snapshots are immutable once published.
type Service struct {
	api    LeagueAPI
	logger *zap.Logger

	mu        sync.RWMutex
	snapshots map[string]*models.League
}

func NewService(api LeagueAPI, logger *zap.Logger) *Service {
	return &Service{
		api:       api,
		logger:    logger,
		snapshots: make(map[string]*models.League),
	}
}

// ConnectLeague fetches metadata, members and rosters and publishes the
// assembled snapshot. If any of the three calls fails the whole operation
// fails with ErrLeagueNotFound and nothing is cached.
func (s *Service) ConnectLeague(ctx context.Context, leagueID string) (*models.League, error) {
	meta, err := s.api.GetLeague(ctx, leagueID)
	if err != nil {
		s.logger.Error("failed to fetch league", zap.String("league_id", leagueID), zap.Error(err))
		return nil, ErrLeagueNotFound
	}

	users, err := s.api.GetLeagueUsers(ctx, leagueID)
	if err != nil {
		s.logger.Error("failed to fetch league users", zap.String("league_id", leagueID), zap.Error(err))
		return nil, ErrLeagueNotFound
	}

	rosters, err := s.api.GetLeagueRosters(ctx, leagueID)
	if err != nil {
		s.logger.Error("failed to fetch league rosters", zap.String("league_id", leagueID), zap.Error(err))
		return nil, ErrLeagueNotFound
	}

	name := meta.Name
	if name == "" {
		name = "Unknown League"
	}
	season := meta.Season
	if season == "" {
		season = "2025"
	}

	league := &models.League{
		LeagueID:     leagueID,
		Name:         name,
		TotalRosters: meta.TotalRosters,
		Season:       season,
		Users:        users,
		Rosters:      rosters,
	}

	s.mu.Lock()
	s.snapshots[leagueID] = league
	s.mu.Unlock()

	s.logger.Info("league connected",
		zap.String("league_id", leagueID),
		zap.String("name", league.Name),
		zap.Int("total_rosters", league.TotalRosters))
	return league, nil
}

// GetLeague serves the cached snapshot, reconnecting when the process has no
// snapshot for the league (fresh invocation, or the cache was never warmed).
func (s *Service) GetLeague(ctx context.Context, leagueID string) (*models.League, error) {
	s.mu.RLock()
	league, ok := s.snapshots[leagueID]
	s.mu.RUnlock()
	if ok {
		return league, nil
	}
	return s.ConnectLeague(ctx, leagueID)
}
