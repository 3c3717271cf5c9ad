package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// AlertCache de-duplicates pulse alerts. The weekly job can fire more than
// once for the same week (manual backfill, restart mid-run); only the first
// claim for a (team, weekStarting) pair wins.
type AlertCache interface {
	Claim(ctx context.Context, teamID string, weekStarting time.Time) (bool, error)
}

type alertCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewAlertCache creates a new alert de-duplication cache
func NewAlertCache(client *redis.Client) AlertCache {
	return &alertCache{
		client: client,
		ttl:    14 * 24 * time.Hour, // keep claims past the following week's run
	}
}

func (c *alertCache) key(teamID string, weekStarting time.Time) string {
	return fmt.Sprintf("team:%s:alert:%s", teamID, weekStarting.Format("2006-01-02"))
}

// Claim returns true if this caller is the first to alert for the week
func (c *alertCache) Claim(ctx context.Context, teamID string, weekStarting time.Time) (bool, error) {
	return c.client.SetNX(ctx, c.key(teamID, weekStarting), 1, c.ttl).Result()
}
