package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/scot00671234/wishwello/internal/model"
)

// AnalyticsCache holds computed analytics reports so dashboard refreshes
// don't recompute over the full response set every time. Entries are
// invalidated whenever a new response arrives for the team.
type AnalyticsCache interface {
	GetReport(ctx context.Context, teamID string) (*model.AnalyticsReport, error)
	SetReport(ctx context.Context, teamID string, report *model.AnalyticsReport) error
	Invalidate(ctx context.Context, teamID string) error
}

type analyticsCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewAnalyticsCache creates a new analytics cache
func NewAnalyticsCache(client *redis.Client) AnalyticsCache {
	return &analyticsCache{
		client: client,
		ttl:    5 * time.Minute,
	}
}

func (c *analyticsCache) key(teamID string) string {
	return fmt.Sprintf("team:%s:analytics", teamID)
}

func (c *analyticsCache) GetReport(ctx context.Context, teamID string) (*model.AnalyticsReport, error) {
	data, err := c.client.Get(ctx, c.key(teamID)).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var report model.AnalyticsReport
	if err := json.Unmarshal([]byte(data), &report); err != nil {
		return nil, err
	}
	return &report, nil
}

func (c *analyticsCache) SetReport(ctx context.Context, teamID string, report *model.AnalyticsReport) error {
	data, err := json.Marshal(report)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, c.key(teamID), data, c.ttl).Err()
}

func (c *analyticsCache) Invalidate(ctx context.Context, teamID string) error {
	return c.client.Del(ctx, c.key(teamID)).Err()
}
