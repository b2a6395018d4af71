package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/cloudsync/internal/client/format"
	"github.com/dmitrijs2005/cloudsync/internal/client/models"
	"github.com/dmitrijs2005/cloudsync/internal/client/validation"
)

func (a *App) ShowProfile(ctx context.Context) {
	if !a.requireAuth() {
		return
	}
	u, ok := a.sess.User()
	if !ok {
		fmt.Fprintln(a.out, "No profile loaded")
		return
	}
	fmt.Fprintf(a.out, "%s <%s>\n", u.Username, u.Email)
	if u.FirstName != "" || u.LastName != "" {
		fmt.Fprintf(a.out, "  name: %s %s\n", u.FirstName, u.LastName)
	}
	fmt.Fprintf(a.out, "  registered: %s\n", format.Date(u.RegistrationDate))
	if len(u.Roles) > 0 {
		fmt.Fprintf(a.out, "  roles: %s\n", strings.Join(u.Roles, ", "))
	}
}

// UpdateProfile sends only the fields the user actually filled in; on error
// nothing is merged, so re-running the form keeps the server state intact.
func (a *App) UpdateProfile(ctx context.Context) {
	if !a.requireAuth() {
		return
	}

	firstName, _ := GetOptionalText(a.reader, "New first name", a.out)
	lastName, _ := GetOptionalText(a.reader, "New last name", a.out)
	username, _ := GetOptionalText(a.reader, "New username", a.out)

	var req models.UserUpdateRequest
	if firstName != "" {
		if err := validation.Name("firstName", firstName); err != nil {
			fmt.Fprintf(a.out, "%v\n", err)
			return
		}
		req.FirstName = &firstName
	}
	if lastName != "" {
		if err := validation.Name("lastName", lastName); err != nil {
			fmt.Fprintf(a.out, "%v\n", err)
			return
		}
		req.LastName = &lastName
	}
	if username != "" {
		if err := validation.Username(username); err != nil {
			fmt.Fprintf(a.out, "%v\n", err)
			return
		}
		req.Username = &username
	}
	if req.FirstName == nil && req.LastName == nil && req.Username == nil {
		fmt.Fprintln(a.out, "Nothing to update")
		return
	}

	u, err := a.sess.UpdateProfile(ctx, req)
	if err != nil {
		fmt.Fprintf(a.out, "Update unsuccessful: %v\n", err)
		return
	}
	fmt.Fprintf(a.out, "Profile updated: %s %s (%s)\n", u.FirstName, u.LastName, u.Username)
}

func (a *App) ChangePassword(ctx context.Context) {
	if !a.requireAuth() {
		return
	}
	oldPassword, err := GetPassword(a.out, "Current password")
	if err != nil {
		fmt.Fprintf(a.out, "error: %v\n", err)
		return
	}
	newPassword, err := GetPassword(a.out, "New password")
	if err != nil {
		fmt.Fprintf(a.out, "error: %v\n", err)
		return
	}
	if err := validation.PasswordChange(oldPassword, newPassword); err != nil {
		fmt.Fprintf(a.out, "%v\n", err)
		return
	}
	if err := a.sess.ChangePassword(ctx, oldPassword, newPassword); err != nil {
		fmt.Fprintf(a.out, "Change unsuccessful: %v\n", err)
		return
	}
	fmt.Fprintln(a.out, "Password changed")
}

func (a *App) SearchUsers(ctx context.Context, args []string) {
	if !a.requireAuth() {
		return
	}
	if len(args) == 0 {
		fmt.Fprintln(a.out, "Usage: searchusers <query>")
		return
	}
	users, err := a.client.SearchUsers(ctx, strings.Join(args, " "))
	if err != nil {
		fmt.Fprintf(a.out, "Search unsuccessful: %v\n", err)
		return
	}
	if len(users) == 0 {
		fmt.Fprintln(a.out, "No users found")
		return
	}
	for _, u := range users {
		fmt.Fprintf(a.out, "%s  %s <%s>\n", u.ID, u.Username, u.Email)
	}
}
