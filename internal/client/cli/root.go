package cli

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"
)

func (a *App) status() string {
	if u, ok := a.sess.User(); ok {
		return fmt.Sprintf("(%s)", u.Username)
	}
	return ""
}

// requireAuth is the route guard: protected commands run only when the
// restore has completed and a session exists.
func (a *App) requireAuth() bool {
	if a.sess.Loading() {
		fmt.Fprintln(a.out, "Session is still restoring, try again in a moment")
		return false
	}
	if !a.sess.IsAuthenticated() {
		fmt.Fprintln(a.out, "Please login first")
		return false
	}
	return true
}

func (a *App) Root(ctx context.Context) {
	fmt.Fprintln(a.out, "Welcome to CloudSync (type 'help' for commands)")
	scanner := bufio.NewScanner(os.Stdin)

	for {
		fmt.Fprintf(a.out, "cloudsync %s> ", a.status())
		if !scanner.Scan() {
			break
		}
		parts := strings.Fields(scanner.Text())
		if len(parts) == 0 {
			continue
		}

		cmd := parts[0]
		args := parts[1:]

		switch cmd {
		case "help":
			a.help()

		// auth
		case "login":
			a.Login(ctx)
		case "register":
			a.Register(ctx)
		case "activate":
			a.Activate(ctx, args)
		case "forgot":
			a.ForgotPassword(ctx)
		case "reset":
			a.ResetPassword(ctx)
		case "logout":
			a.Logout(ctx)

		// profile
		case "whoami":
			a.ShowProfile(ctx)
		case "update":
			a.UpdateProfile(ctx)
		case "passwd":
			a.ChangePassword(ctx)
		case "searchusers":
			a.SearchUsers(ctx, args)

		// dashboard
		case "dashboard":
			a.Dashboard(ctx)

		// groups
		case "groups":
			a.ListGroups(ctx)
		case "group":
			a.ShowGroup(ctx, args)
		case "create":
			a.CreateGroup(ctx)
		case "editgroup":
			a.UpdateGroup(ctx, args)
		case "delgroup":
			a.DeleteGroup(ctx, args)
		case "members":
			a.GroupMembers(ctx, args)
		case "invite":
			a.InviteToken(ctx, args)
		case "join":
			a.JoinGroup(ctx, args)
		case "searchgroups":
			a.SearchGroups(ctx, args)

		// files
		case "files":
			a.ListFiles(ctx, args)
		case "upload":
			a.UploadFile(ctx, args)
		case "download":
			a.DownloadFile(ctx, args)
		case "rename":
			a.RenameFile(ctx, args)
		case "delfile":
			a.DeleteFile(ctx, args)
		case "history":
			a.FileHistory(ctx, args)
		case "storage":
			a.GroupStorage(ctx, args)
		case "searchfiles":
			a.SearchFiles(ctx, args)

		// chat
		case "chat":
			a.Chat(ctx, args)

		// notifications
		case "notifications":
			a.ListNotifications(ctx)
		case "read":
			a.MarkRead(ctx, args)
		case "readall":
			a.MarkAllRead(ctx)
		case "delnotif":
			a.DeleteNotification(ctx, args)

		case "exit", "quit":
			fmt.Fprintln(a.out, "Bye!")
			return
		default:
			fmt.Fprintln(a.out, "Unknown command:", cmd)
		}
	}
}

func (a *App) help() {
	if a.sess.IsAuthenticated() {
		fmt.Fprintln(a.out, `Available commands:
  dashboard                         stats and recent activity
  groups | create | group <id>      list / create / open a group
  editgroup <id> | delgroup <id>    update / delete a group
  members <id> | invite <id>        list members / show invite token
  join <token> | searchgroups <q>   join by token / search groups
  files <groupId> | upload <groupId> <path>
  download <fileId> [dest] | rename <fileId> <name> | delfile <fileId>
  history <fileId|group:groupId> | storage <groupId> | searchfiles <groupId> <q>
  chat <groupId>                    open live group chat
  notifications | read <id> | readall | delnotif <id>
  whoami | update | passwd | searchusers <q>
  logout | exit`)
	} else {
		fmt.Fprintln(a.out, "Available commands: login, register, activate <code>, forgot, reset, exit")
	}
}
