package api

import (
	"context"
	"net/url"

	"github.com/dmitrijs2005/cloudsync/internal/client/models"
)

// CreateGroup creates a work group owned by the current user.
func (c *Client) CreateGroup(ctx context.Context, req models.GroupCreateRequest) (models.WorkGroup, error) {
	var g models.WorkGroup
	err := c.post(ctx, "/group", nil, req, &g)
	return g, err
}

// MyGroups lists the groups the current user belongs to, with member and
// file counters attached.
func (c *Client) MyGroups(ctx context.Context) ([]models.WorkGroup, error) {
	var groups []models.WorkGroup
	err := c.get(ctx, "/group/my", nil, &groups)
	return groups, err
}

// Group fetches one group, including the invite token when the caller is an
// admin.
func (c *Client) Group(ctx context.Context, id string) (models.GroupDetail, error) {
	var g models.GroupDetail
	err := c.get(ctx, "/group/"+url.PathEscape(id), nil, &g)
	return g, err
}

// UpdateGroup changes name/description and optionally rotates the invite token.
func (c *Client) UpdateGroup(ctx context.Context, id string, req models.GroupUpdateRequest) (models.WorkGroup, error) {
	var g models.WorkGroup
	err := c.put(ctx, "/group/"+url.PathEscape(id), nil, req, &g)
	return g, err
}

// DeleteGroup removes the group and everything in it.
func (c *Client) DeleteGroup(ctx context.Context, id string) error {
	return c.del(ctx, "/group/"+url.PathEscape(id))
}

// GroupInviteToken returns the group's current join token.
func (c *Client) GroupInviteToken(ctx context.Context, groupID string) (string, error) {
	var t models.InviteToken
	if err := c.get(ctx, "/group/"+url.PathEscape(groupID)+"/invite-token", nil, &t); err != nil {
		return "", err
	}
	return t.Token, nil
}

// JoinGroup joins the current user to a group through an invite token.
func (c *Client) JoinGroup(ctx context.Context, token string) error {
	return c.post(ctx, "/group/join/"+url.PathEscape(token), nil, nil, nil)
}

// GroupMembers lists the group's memberships.
func (c *Client) GroupMembers(ctx context.Context, groupID string) ([]models.Membership, error) {
	var members []models.Membership
	err := c.get(ctx, "/group/"+url.PathEscape(groupID)+"/members", nil, &members)
	return members, err
}

// AddMember adds a user to the group directly (admin operation).
func (c *Client) AddMember(ctx context.Context, groupID, userID string) error {
	return c.post(ctx, "/group/"+url.PathEscape(groupID)+"/members/"+url.PathEscape(userID), nil, nil, nil)
}

// RemoveMember removes a user from the group.
func (c *Client) RemoveMember(ctx context.Context, groupID, userID string) error {
	return c.del(ctx, "/group/"+url.PathEscape(groupID)+"/members/"+url.PathEscape(userID))
}

// ChangeMemberRole sets the member's role (see models.RoleCreator et al.).
func (c *Client) ChangeMemberRole(ctx context.Context, groupID, userID, role string) error {
	q := url.Values{"role": {role}}
	return c.put(ctx, "/group/"+url.PathEscape(groupID)+"/members/"+url.PathEscape(userID)+"/role", q, nil, nil)
}

// SearchGroups finds groups by a free-text query.
func (c *Client) SearchGroups(ctx context.Context, query string) ([]models.WorkGroup, error) {
	var groups []models.WorkGroup
	err := c.get(ctx, "/group/search", url.Values{"query": {query}}, &groups)
	return groups, err
}
