package api

import (
	"context"
	"net/url"

	"github.com/dmitrijs2005/cloudsync/internal/client/models"
)

// RecentActivity lists the cross-group activity feed for the dashboard.
func (c *Client) RecentActivity(ctx context.Context) ([]models.Activity, error) {
	var as []models.Activity
	err := c.get(ctx, "/activity/recent", nil, &as)
	return as, err
}

// GroupActivity lists one group's activity feed.
func (c *Client) GroupActivity(ctx context.Context, groupID string) ([]models.Activity, error) {
	var as []models.Activity
	err := c.get(ctx, "/activity/group/"+url.PathEscape(groupID), nil, &as)
	return as, err
}
