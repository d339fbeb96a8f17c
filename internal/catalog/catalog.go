package catalog

import (
	"context"
	"sync"
	"time"

	"dynastytrade/internal/models"

	"go.uber.org/zap"
)

// PlayerSource fetches the full player catalog from the upstream provider.
type PlayerSource interface {
	GetAllPlayers(ctx context.Context) (map[string]models.Player, error)
}

// Cache holds the process-wide player catalog with a refresh-or-serve-stale
// policy. The map is replaced wholesale on refresh, never mutated in place,
// so readers observe either the old or the fully-refreshed value.
type Cache struct {
	source PlayerSource
	ttl    time.Duration
	logger *zap.Logger

	mu        sync.RWMutex
	players   map[string]models.Player
	fetchedAt time.Time
}

func NewCache(source PlayerSource, ttl time.Duration, logger *zap.Logger) *Cache {
	if ttl <= 0 {
		ttl = time.Hour
	}
	return &Cache{
		source: source,
		ttl:    ttl,
		logger: logger,
	}
}

// Players returns the catalog, refreshing when it is absent or older than
// the TTL. A failed refresh falls back to the last good value rather than
// an empty result.
func (c *Cache) Players(ctx context.Context) map[string]models.Player {
	c.mu.RLock()
	players := c.players
	fresh := players != nil && time.Since(c.fetchedAt) < c.ttl
	c.mu.RUnlock()

	if fresh {
		return players
	}

	fetched, err := c.source.GetAllPlayers(ctx)
	if err != nil {
		c.logger.Warn("player catalog refresh failed, serving stale data", zap.Error(err))
		if players != nil {
			return players
		}
		return map[string]models.Player{}
	}

	c.mu.Lock()
	c.players = fetched
	c.fetchedAt = time.Now()
	c.mu.Unlock()

	c.logger.Info("player catalog refreshed", zap.Int("players", len(fetched)))
	return fetched
}

// Size returns the number of cached players.
func (c *Cache) Size() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.players)
}
