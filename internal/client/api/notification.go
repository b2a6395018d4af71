package api

import (
	"context"
	"net/url"

	"github.com/dmitrijs2005/cloudsync/internal/client/models"
)

// Notifications lists all notifications for the current user.
func (c *Client) Notifications(ctx context.Context) ([]models.Notification, error) {
	var ns []models.Notification
	err := c.get(ctx, "/notifications", nil, &ns)
	return ns, err
}

// UnreadNotifications lists only the unread ones.
func (c *Client) UnreadNotifications(ctx context.Context) ([]models.Notification, error) {
	var ns []models.Notification
	err := c.get(ctx, "/notifications/unread", nil, &ns)
	return ns, err
}

// UnreadNotificationCount returns the unread counter shown in the header.
func (c *Client) UnreadNotificationCount(ctx context.Context) (int, error) {
	var cnt models.UnreadCount
	if err := c.get(ctx, "/notifications/count", nil, &cnt); err != nil {
		return 0, err
	}
	return cnt.Count, nil
}

// MarkNotificationRead marks one notification as read.
func (c *Client) MarkNotificationRead(ctx context.Context, id string) error {
	return c.put(ctx, "/notifications/"+url.PathEscape(id)+"/read", nil, nil, nil)
}

// MarkAllNotificationsRead marks everything as read.
func (c *Client) MarkAllNotificationsRead(ctx context.Context) error {
	return c.put(ctx, "/notifications/read-all", nil, nil, nil)
}

// DeleteNotification removes one notification.
func (c *Client) DeleteNotification(ctx context.Context, id string) error {
	return c.del(ctx, "/notifications/"+url.PathEscape(id))
}
