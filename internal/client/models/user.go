// Package models defines the client-side DTOs mirrored from the CloudSync
// backend. All entities are server-owned; the client treats server responses
// as the source of truth after any mutation.
package models

import "time"

// User is the profile snapshot of an account.
type User struct {
	ID               string    `json:"id"`
	Email            string    `json:"email"`
	Username         string    `json:"username"`
	FirstName        string    `json:"firstName"`
	LastName         string    `json:"lastName"`
	Enabled          bool      `json:"enabled"`
	RegistrationDate time.Time `json:"registrationDate"`
	Roles            []string  `json:"roles"`
}

// Merge overlays non-zero fields of upd onto u and returns the result.
// Server fields win on conflict; unspecified fields retain prior values.
func (u User) Merge(upd User) User {
	if upd.ID != "" {
		u.ID = upd.ID
	}
	if upd.Email != "" {
		u.Email = upd.Email
	}
	if upd.Username != "" {
		u.Username = upd.Username
	}
	if upd.FirstName != "" {
		u.FirstName = upd.FirstName
	}
	if upd.LastName != "" {
		u.LastName = upd.LastName
	}
	if !upd.RegistrationDate.IsZero() {
		u.RegistrationDate = upd.RegistrationDate
	}
	if upd.Roles != nil {
		u.Roles = upd.Roles
	}
	// A bool cannot distinguish "absent" from "false", so Enabled is only
	// taken from responses that carry a full snapshot (identified by ID).
	if upd.ID != "" {
		u.Enabled = upd.Enabled
	}
	return u
}

// UserUpdateRequest carries only the fields being changed; nil pointers are
// omitted from the request body.
type UserUpdateRequest struct {
	FirstName *string `json:"firstName,omitempty"`
	LastName  *string `json:"lastName,omitempty"`
	Username  *string `json:"username,omitempty"`
}

// AuthResponse is returned by login and register.
type AuthResponse struct {
	Token     string   `json:"token"`
	Type      string   `json:"type"`
	ID        string   `json:"id"`
	Email     string   `json:"email"`
	Username  string   `json:"username"`
	FirstName string   `json:"firstName"`
	LastName  string   `json:"lastName"`
	Roles     []string `json:"roles"`
}

type LoginRequest struct {
	EmailOrUsername string `json:"emailOrUsername"`
	Password        string `json:"password"`
}

type RegisterRequest struct {
	Email     string `json:"email"`
	Username  string `json:"username"`
	Password  string `json:"password"`
	FirstName string `json:"firstName,omitempty"`
	LastName  string `json:"lastName,omitempty"`
}

type ForgotPasswordRequest struct {
	Email string `json:"email"`
}

type ResetPasswordRequest struct {
	Token       string `json:"token"`
	NewPassword string `json:"newPassword"`
}
