package cli

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/cloudsync/internal/client/format"
	"github.com/dmitrijs2005/cloudsync/internal/client/querycache"
)

func (a *App) ListNotifications(ctx context.Context) {
	if !a.requireAuth() {
		return
	}

	count, err := a.client.UnreadNotificationCount(ctx)
	if err == nil && count > 0 {
		fmt.Fprintf(a.out, "%d unread\n", count)
	}

	ns, _, err := querycache.Fetch(ctx, a.cache, keyNotifications, a.client.Notifications)
	if err != nil {
		fmt.Fprintf(a.out, "Loading notifications unsuccessful: %v\n", err)
		return
	}
	if len(ns) == 0 {
		fmt.Fprintln(a.out, "No notifications")
		return
	}
	for _, n := range ns {
		marker := " "
		if !n.Read {
			marker = "*"
		}
		fmt.Fprintf(a.out, "%s %s  [%s] %s — %s\n", marker, n.ID, format.RelativeTime(n.CreatedDate), n.Group.Name, n.Message)
	}
}

func (a *App) MarkRead(ctx context.Context, args []string) {
	if !a.requireAuth() {
		return
	}
	if len(args) == 0 {
		fmt.Fprintln(a.out, "Usage: read <notificationId>")
		return
	}
	if err := a.client.MarkNotificationRead(ctx, args[0]); err != nil {
		fmt.Fprintf(a.out, "Marking read unsuccessful: %v\n", err)
		return
	}
	a.cache.Invalidate(keyNotifications)
	fmt.Fprintln(a.out, "Marked as read")
}

func (a *App) MarkAllRead(ctx context.Context) {
	if !a.requireAuth() {
		return
	}
	if err := a.client.MarkAllNotificationsRead(ctx); err != nil {
		fmt.Fprintf(a.out, "Marking all read unsuccessful: %v\n", err)
		return
	}
	a.cache.Invalidate(keyNotifications)
	fmt.Fprintln(a.out, "All notifications marked as read")
}

func (a *App) DeleteNotification(ctx context.Context, args []string) {
	if !a.requireAuth() {
		return
	}
	if len(args) == 0 {
		fmt.Fprintln(a.out, "Usage: delnotif <notificationId>")
		return
	}
	if err := a.client.DeleteNotification(ctx, args[0]); err != nil {
		fmt.Fprintf(a.out, "Delete unsuccessful: %v\n", err)
		return
	}
	a.cache.Invalidate(keyNotifications)
	fmt.Fprintln(a.out, "Notification deleted")
}
