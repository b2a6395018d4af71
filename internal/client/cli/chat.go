package cli

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/dmitrijs2005/cloudsync/internal/client/format"
	"github.com/dmitrijs2005/cloudsync/internal/client/models"
	"github.com/dmitrijs2005/cloudsync/internal/client/querycache"
	"github.com/dmitrijs2005/cloudsync/internal/client/realtime"
	"github.com/dmitrijs2005/cloudsync/internal/client/validation"
)

// Chat opens a group chat: prints the history, joins the group on the
// realtime channel and mirrors incoming messages until the user types /quit.
// Outgoing messages go through REST (the authoritative path); the realtime
// channel is delivery only.
func (a *App) Chat(ctx context.Context, args []string) {
	if !a.requireAuth() {
		return
	}
	if len(args) == 0 {
		fmt.Fprintln(a.out, "Usage: chat <groupId>")
		return
	}
	groupID := args[0]

	msgs, _, err := querycache.Fetch(ctx, a.cache, querycache.Key(keyMessages, groupID),
		func(ctx context.Context) ([]models.ChatMessage, error) {
			return a.client.GroupMessages(ctx, groupID)
		})
	if err != nil {
		fmt.Fprintf(a.out, "Loading messages unsuccessful: %v\n", err)
		return
	}
	for _, m := range msgs {
		a.printMessage(m)
	}

	if a.channel.IsConnected() {
		a.channel.JoinGroup(groupID)
		defer a.channel.LeaveGroup(groupID)
	} else {
		fmt.Fprintln(a.out, "(realtime channel offline; messages from others will not appear live)")
	}

	// Mirror live messages for this group while the chat view is open.
	self, _ := a.sess.User()
	unsubscribe := a.channel.OnEvent(func(event string, data json.RawMessage) {
		if event != realtime.EventChatMessage {
			return
		}
		var m models.ChatMessage
		if err := json.Unmarshal(data, &m); err != nil {
			return
		}
		if m.Group.ID != groupID || m.Sender.ID == self.ID {
			return
		}
		a.printMessage(m)
	})
	defer unsubscribe()

	fmt.Fprintln(a.out, "Type a message and press Enter; /quit to leave")
	scanner := bufio.NewScanner(os.Stdin)
	for {
		if !scanner.Scan() {
			return
		}
		line := scanner.Text()
		if line == "/quit" {
			return
		}
		if err := validation.Message(line); err != nil {
			fmt.Fprintf(a.out, "%v\n", err)
			continue
		}

		sent, err := a.client.SendMessage(ctx, models.ChatMessageRequest{GroupID: groupID, Content: line})
		if err != nil {
			fmt.Fprintf(a.out, "Send unsuccessful: %v\n", err)
			continue
		}
		a.cache.Invalidate(querycache.Key(keyMessages, groupID))
		a.printMessage(sent)
	}
}

func (a *App) printMessage(m models.ChatMessage) {
	line := fmt.Sprintf("[%s] %s: %s", format.RelativeTime(m.Timestamp), m.Sender.Username, m.Content)
	if m.Edited {
		line += " (edited)"
	}
	if m.Attachment != nil {
		line += fmt.Sprintf(" [attachment: %s]", m.Attachment.OriginalName)
	}
	fmt.Fprintln(a.out, line)
}
