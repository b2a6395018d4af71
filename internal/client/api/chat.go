package api

import (
	"context"
	"net/url"

	"github.com/dmitrijs2005/cloudsync/internal/client/models"
)

// SendMessage posts a chat message to a group over REST. The realtime
// channel mirrors it to connected members.
func (c *Client) SendMessage(ctx context.Context, req models.ChatMessageRequest) (models.ChatMessage, error) {
	var msg models.ChatMessage
	err := c.post(ctx, "/chat/send", nil, req, &msg)
	return msg, err
}

// GroupMessages lists a group's chat history.
func (c *Client) GroupMessages(ctx context.Context, groupID string) ([]models.ChatMessage, error) {
	var msgs []models.ChatMessage
	err := c.get(ctx, "/chat/group/"+url.PathEscape(groupID), nil, &msgs)
	return msgs, err
}

// EditMessage replaces the content of an own message.
func (c *Client) EditMessage(ctx context.Context, messageID, newContent string) error {
	q := url.Values{"newContent": {newContent}}
	return c.put(ctx, "/chat/"+url.PathEscape(messageID), q, nil, nil)
}

// DeleteMessage removes an own message.
func (c *Client) DeleteMessage(ctx context.Context, messageID string) error {
	return c.del(ctx, "/chat/"+url.PathEscape(messageID))
}

// SearchMessages finds messages in a group by a free-text query.
func (c *Client) SearchMessages(ctx context.Context, groupID, query string) ([]models.ChatMessage, error) {
	var msgs []models.ChatMessage
	err := c.get(ctx, "/chat/group/"+url.PathEscape(groupID)+"/search", url.Values{"query": {query}}, &msgs)
	return msgs, err
}
