package api

import (
	"context"
	"net/url"

	"github.com/dmitrijs2005/cloudsync/internal/client/models"
)

// Profile fetches the current user's profile.
func (c *Client) Profile(ctx context.Context) (models.User, error) {
	var u models.User
	err := c.get(ctx, "/user/profile", nil, &u)
	return u, err
}

// UserByID fetches another user's public profile.
func (c *Client) UserByID(ctx context.Context, id string) (models.User, error) {
	var u models.User
	err := c.get(ctx, "/user/"+url.PathEscape(id), nil, &u)
	return u, err
}

// UpdateProfile sends only the changed fields and returns the server's view
// of the profile.
func (c *Client) UpdateProfile(ctx context.Context, req models.UserUpdateRequest) (models.User, error) {
	var u models.User
	err := c.put(ctx, "/user/profile", nil, req, &u)
	return u, err
}

// SearchUsers finds users by a free-text query.
func (c *Client) SearchUsers(ctx context.Context, query string) ([]models.User, error) {
	var users []models.User
	err := c.get(ctx, "/user/search", url.Values{"query": {query}}, &users)
	return users, err
}

// ChangePassword verifies the old password server-side and sets the new one.
func (c *Client) ChangePassword(ctx context.Context, oldPassword, newPassword string) error {
	q := url.Values{"oldPassword": {oldPassword}, "newPassword": {newPassword}}
	return c.post(ctx, "/user/change-password", q, nil, nil)
}
