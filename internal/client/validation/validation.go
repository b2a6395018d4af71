// Package validation holds the client-side form checks that run before a
// request is sent. They mirror the server's rules closely enough to catch
// obvious mistakes locally; the server remains the authority.
package validation

import (
	"fmt"
	"net/mail"
	"strings"

	"github.com/dmitrijs2005/cloudsync/internal/common"
)

const (
	MinPasswordLen = 6
	MinUsernameLen = 3
	MaxUsernameLen = 30
	MaxNameLen     = 50

	MaxGroupNameLen        = 100
	MaxGroupDescriptionLen = 500
	MaxMessageLen          = 1000
)

// FieldError names the offending field so forms can render the message
// inline.
type FieldError struct {
	Field   string
	Message string
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Unwrap lets callers match with errors.Is(err, common.ErrValidation).
func (e *FieldError) Unwrap() error {
	return common.ErrValidation
}

func fieldErr(field, message string) error {
	return &FieldError{Field: field, Message: message}
}

// Login checks the sign-in form.
func Login(emailOrUsername, password string) error {
	if strings.TrimSpace(emailOrUsername) == "" {
		return fieldErr("emailOrUsername", "Email or username is required")
	}
	if len(password) < MinPasswordLen {
		return fieldErr("password", fmt.Sprintf("Password must be at least %d characters", MinPasswordLen))
	}
	return nil
}

// Register checks the sign-up form.
func Register(email, username, password string) error {
	if err := Email(email); err != nil {
		return err
	}
	if err := Username(username); err != nil {
		return err
	}
	if len(password) < MinPasswordLen {
		return fieldErr("password", fmt.Sprintf("Password must be at least %d characters", MinPasswordLen))
	}
	return nil
}

// Email checks address syntax.
func Email(email string) error {
	if _, err := mail.ParseAddress(email); err != nil {
		return fieldErr("email", "Invalid email address")
	}
	return nil
}

// Username checks the username length bounds.
func Username(username string) error {
	if len(username) < MinUsernameLen {
		return fieldErr("username", fmt.Sprintf("Username must be at least %d characters", MinUsernameLen))
	}
	if len(username) > MaxUsernameLen {
		return fieldErr("username", "Username is too long")
	}
	return nil
}

// Name checks an optional first/last name field.
func Name(field, name string) error {
	if len(name) > MaxNameLen {
		return fieldErr(field, "Name is too long")
	}
	return nil
}

// GroupCreate checks the create/update group form.
func GroupCreate(name, description string) error {
	if strings.TrimSpace(name) == "" {
		return fieldErr("name", "Group name is required")
	}
	if len(name) > MaxGroupNameLen {
		return fieldErr("name", "Name is too long")
	}
	if len(description) > MaxGroupDescriptionLen {
		return fieldErr("description", "Description is too long")
	}
	return nil
}

// PasswordChange checks the change-password form.
func PasswordChange(oldPassword, newPassword string) error {
	if len(oldPassword) < MinPasswordLen {
		return fieldErr("oldPassword", "Old password is required")
	}
	if len(newPassword) < MinPasswordLen {
		return fieldErr("newPassword", fmt.Sprintf("New password must be at least %d characters", MinPasswordLen))
	}
	return nil
}

// Message checks a chat message before sending.
func Message(content string) error {
	if strings.TrimSpace(content) == "" {
		return fieldErr("content", "Message cannot be empty")
	}
	if len(content) > MaxMessageLen {
		return fieldErr("content", "Message is too long")
	}
	return nil
}
