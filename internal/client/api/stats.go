package api

import (
	"context"

	"github.com/dmitrijs2005/cloudsync/internal/client/models"
)

// UserStats returns the full dashboard counters.
func (c *Client) UserStats(ctx context.Context) (models.UserStats, error) {
	var s models.UserStats
	err := c.get(ctx, "/stats/user", nil, &s)
	return s, err
}

// UserQuickStats returns the cheap subset used while the full stats load.
func (c *Client) UserQuickStats(ctx context.Context) (models.UserStats, error) {
	var s models.UserStats
	err := c.get(ctx, "/stats/user/quick", nil, &s)
	return s, err
}
