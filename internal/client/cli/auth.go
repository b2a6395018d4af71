package cli

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/cloudsync/internal/client/models"
	"github.com/dmitrijs2005/cloudsync/internal/client/validation"
)

func (a *App) Login(ctx context.Context) {
	emailOrUsername, err := GetSimpleText(a.reader, "Enter email or username", a.out)
	if err != nil {
		fmt.Fprintf(a.out, "error: %v\n", err)
		return
	}
	password, err := GetPassword(a.out, "Enter password")
	if err != nil {
		fmt.Fprintf(a.out, "error: %v\n", err)
		return
	}

	if err := validation.Login(emailOrUsername, password); err != nil {
		fmt.Fprintf(a.out, "%v\n", err)
		return
	}

	if err := a.sess.Login(ctx, emailOrUsername, password); err != nil {
		fmt.Fprintf(a.out, "Login unsuccessful: %v\n", err)
		return
	}
	fmt.Fprintln(a.out, "Login successful")
}

func (a *App) Register(ctx context.Context) {
	email, err := GetSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		fmt.Fprintf(a.out, "error: %v\n", err)
		return
	}
	username, err := GetSimpleText(a.reader, "Enter username", a.out)
	if err != nil {
		fmt.Fprintf(a.out, "error: %v\n", err)
		return
	}
	password, err := GetPassword(a.out, "Enter password")
	if err != nil {
		fmt.Fprintf(a.out, "error: %v\n", err)
		return
	}
	firstName, _ := GetOptionalText(a.reader, "First name", a.out)
	lastName, _ := GetOptionalText(a.reader, "Last name", a.out)

	if err := validation.Register(email, username, password); err != nil {
		fmt.Fprintf(a.out, "%v\n", err)
		return
	}

	req := models.RegisterRequest{
		Email:     email,
		Username:  username,
		Password:  password,
		FirstName: firstName,
		LastName:  lastName,
	}
	if err := a.sess.Register(ctx, req); err != nil {
		fmt.Fprintf(a.out, "Registration unsuccessful: %v\n", err)
		return
	}
	fmt.Fprintln(a.out, "Registered. Check your email for the activation code, then run: activate <code>")
}

func (a *App) Activate(ctx context.Context, args []string) {
	if len(args) == 0 {
		fmt.Fprintln(a.out, "Usage: activate <code>")
		return
	}
	if err := a.sess.Activate(ctx, args[0]); err != nil {
		fmt.Fprintf(a.out, "Activation unsuccessful: %v\n", err)
		return
	}
	fmt.Fprintln(a.out, "Account activated, you can login now")
}

func (a *App) ForgotPassword(ctx context.Context) {
	email, err := GetSimpleText(a.reader, "Enter the account email", a.out)
	if err != nil {
		fmt.Fprintf(a.out, "error: %v\n", err)
		return
	}
	if err := validation.Email(email); err != nil {
		fmt.Fprintf(a.out, "%v\n", err)
		return
	}
	if err := a.sess.ForgotPassword(ctx, email); err != nil {
		fmt.Fprintf(a.out, "Request unsuccessful: %v\n", err)
		return
	}
	fmt.Fprintln(a.out, "If the address is registered, a reset email is on its way")
}

func (a *App) ResetPassword(ctx context.Context) {
	token, err := GetSimpleText(a.reader, "Enter the reset token from the email", a.out)
	if err != nil {
		fmt.Fprintf(a.out, "error: %v\n", err)
		return
	}
	password, err := GetPassword(a.out, "Enter new password")
	if err != nil {
		fmt.Fprintf(a.out, "error: %v\n", err)
		return
	}
	if len(password) < validation.MinPasswordLen {
		fmt.Fprintf(a.out, "Password must be at least %d characters\n", validation.MinPasswordLen)
		return
	}
	if err := a.sess.ResetPassword(ctx, token, password); err != nil {
		fmt.Fprintf(a.out, "Reset unsuccessful: %v\n", err)
		return
	}
	fmt.Fprintln(a.out, "Password reset, you can login now")
}

// Logout never fails from the user's point of view; clearing the local
// session is the part that matters.
func (a *App) Logout(ctx context.Context) {
	a.sess.Logout(ctx)
	fmt.Fprintln(a.out, "Logged out")
}
