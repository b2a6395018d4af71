package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/cloudsync/internal/client/format"
	"github.com/dmitrijs2005/cloudsync/internal/client/models"
	"github.com/dmitrijs2005/cloudsync/internal/client/querycache"
	"github.com/dmitrijs2005/cloudsync/internal/client/validation"
)

func (a *App) fetchGroups(ctx context.Context) ([]models.WorkGroup, uint64, error) {
	return querycache.Fetch(ctx, a.cache, keyGroups, a.client.MyGroups)
}

func (a *App) ListGroups(ctx context.Context) {
	if !a.requireAuth() {
		return
	}
	groups, _, err := a.fetchGroups(ctx)
	if err != nil {
		fmt.Fprintf(a.out, "Loading groups unsuccessful: %v\n", err)
		return
	}
	if len(groups) == 0 {
		fmt.Fprintln(a.out, "You are not a member of any group yet; try 'create' or 'join <token>'")
		return
	}
	for _, g := range groups {
		fmt.Fprintf(a.out, "%s  %-30s  members: %-3d files: %-3d created %s by %s\n",
			g.ID, format.Truncate(g.Name, 30), g.MemberCount, g.FileCount, format.Date(g.CreationDate), g.CreatorUsername)
	}
}

// CreateGroup creates the group, appends it to the cached list as a display
// hint and invalidates the key so the next read converges on the server's
// view. The optimistic append is discarded when an authoritative fetch has
// landed in between.
func (a *App) CreateGroup(ctx context.Context) {
	if !a.requireAuth() {
		return
	}
	name, err := GetSimpleText(a.reader, "Group name", a.out)
	if err != nil {
		fmt.Fprintf(a.out, "error: %v\n", err)
		return
	}
	description, _ := GetOptionalText(a.reader, "Description", a.out)

	if err := validation.GroupCreate(name, description); err != nil {
		fmt.Fprintf(a.out, "%v\n", err)
		return
	}

	seen := a.cache.Version(keyGroups)
	group, err := a.client.CreateGroup(ctx, models.GroupCreateRequest{Name: name, Description: description})
	if err != nil {
		fmt.Fprintf(a.out, "Create unsuccessful: %v\n", err)
		return
	}

	a.cache.MutateSince(keyGroups, seen, querycache.Append(group))
	a.cache.Invalidate(keyGroups)
	a.cache.Invalidate(keyStats)

	fmt.Fprintf(a.out, "Group %q created (%s)\n", group.Name, group.ID)
}

func (a *App) ShowGroup(ctx context.Context, args []string) {
	if !a.requireAuth() {
		return
	}
	if len(args) == 0 {
		fmt.Fprintln(a.out, "Usage: group <id>")
		return
	}
	g, err := a.client.Group(ctx, args[0])
	if err != nil {
		fmt.Fprintf(a.out, "Loading group unsuccessful: %v\n", err)
		return
	}
	fmt.Fprintf(a.out, "%s\n", g.Name)
	if g.Description != "" {
		fmt.Fprintf(a.out, "  %s\n", g.Description)
	}
	fmt.Fprintf(a.out, "  created %s by %s; members: %d, files: %d\n",
		format.Date(g.CreationDate), g.CreatorUsername, g.MemberCount, g.FileCount)
	if g.InviteToken != "" {
		fmt.Fprintf(a.out, "  invite token: %s\n", g.InviteToken)
	}
}

func (a *App) UpdateGroup(ctx context.Context, args []string) {
	if !a.requireAuth() {
		return
	}
	if len(args) == 0 {
		fmt.Fprintln(a.out, "Usage: editgroup <id>")
		return
	}

	name, _ := GetOptionalText(a.reader, "New name", a.out)
	description, _ := GetOptionalText(a.reader, "New description", a.out)
	rotate, _ := GetOptionalText(a.reader, "Regenerate invite token? (y/N)", a.out)

	var req models.GroupUpdateRequest
	if name != "" {
		if err := validation.GroupCreate(name, description); err != nil {
			fmt.Fprintf(a.out, "%v\n", err)
			return
		}
		req.Name = &name
	}
	if description != "" {
		req.Description = &description
	}
	if strings.EqualFold(rotate, "y") {
		t := true
		req.RegenerateToken = &t
	}
	if req.Name == nil && req.Description == nil && req.RegenerateToken == nil {
		fmt.Fprintln(a.out, "Nothing to update")
		return
	}

	g, err := a.client.UpdateGroup(ctx, args[0], req)
	if err != nil {
		fmt.Fprintf(a.out, "Update unsuccessful: %v\n", err)
		return
	}
	a.cache.Invalidate(keyGroups)
	fmt.Fprintf(a.out, "Group %q updated\n", g.Name)
}

func (a *App) DeleteGroup(ctx context.Context, args []string) {
	if !a.requireAuth() {
		return
	}
	if len(args) == 0 {
		fmt.Fprintln(a.out, "Usage: delgroup <id>")
		return
	}
	confirm, _ := GetSimpleText(a.reader, "Delete the group and all its files? (y/N)", a.out)
	if !strings.EqualFold(confirm, "y") {
		return
	}
	if err := a.client.DeleteGroup(ctx, args[0]); err != nil {
		fmt.Fprintf(a.out, "Delete unsuccessful: %v\n", err)
		return
	}
	a.cache.Invalidate(keyGroups)
	a.cache.Invalidate(keyStats)
	a.cache.InvalidatePrefix(querycache.Key(keyFiles, args[0]))
	fmt.Fprintln(a.out, "Group deleted")
}

func (a *App) GroupMembers(ctx context.Context, args []string) {
	if !a.requireAuth() {
		return
	}
	if len(args) == 0 {
		fmt.Fprintln(a.out, "Usage: members <groupId>")
		return
	}
	members, err := a.client.GroupMembers(ctx, args[0])
	if err != nil {
		fmt.Fprintf(a.out, "Loading members unsuccessful: %v\n", err)
		return
	}
	for _, m := range members {
		fmt.Fprintf(a.out, "%s  %-20s  %-8s joined %s\n", m.User.ID, m.User.Username, m.Role, format.Date(m.JoinedDate))
	}
}

func (a *App) InviteToken(ctx context.Context, args []string) {
	if !a.requireAuth() {
		return
	}
	if len(args) == 0 {
		fmt.Fprintln(a.out, "Usage: invite <groupId>")
		return
	}
	token, err := a.client.GroupInviteToken(ctx, args[0])
	if err != nil {
		fmt.Fprintf(a.out, "Loading invite token unsuccessful: %v\n", err)
		return
	}
	fmt.Fprintf(a.out, "Invite token: %s\n", token)
}

func (a *App) JoinGroup(ctx context.Context, args []string) {
	if !a.requireAuth() {
		return
	}
	if len(args) == 0 {
		fmt.Fprintln(a.out, "Usage: join <token>")
		return
	}
	if err := a.client.JoinGroup(ctx, args[0]); err != nil {
		fmt.Fprintf(a.out, "Join unsuccessful: %v\n", err)
		return
	}
	a.cache.Invalidate(keyGroups)
	a.cache.Invalidate(keyStats)
	fmt.Fprintln(a.out, "Joined the group")
}

func (a *App) SearchGroups(ctx context.Context, args []string) {
	if !a.requireAuth() {
		return
	}
	if len(args) == 0 {
		fmt.Fprintln(a.out, "Usage: searchgroups <query>")
		return
	}
	groups, err := a.client.SearchGroups(ctx, strings.Join(args, " "))
	if err != nil {
		fmt.Fprintf(a.out, "Search unsuccessful: %v\n", err)
		return
	}
	if len(groups) == 0 {
		fmt.Fprintln(a.out, "No groups found")
		return
	}
	for _, g := range groups {
		fmt.Fprintf(a.out, "%s  %s\n", g.ID, g.Name)
	}
}
