package models

import "time"

// WorkGroup is a collaboration group the user belongs to, with the
// denormalized counters the backend attaches to listing responses.
type WorkGroup struct {
	ID              string    `json:"id"`
	Name            string    `json:"name"`
	Description     string    `json:"description,omitempty"`
	CreationDate    time.Time `json:"creationDate"`
	CreatorUsername string    `json:"creatorUsername"`
	MemberCount     int       `json:"memberCount"`
	FileCount       int       `json:"fileCount"`
}

// GroupDetail extends WorkGroup with the invite token, visible to admins.
type GroupDetail struct {
	WorkGroup
	InviteToken string `json:"inviteToken,omitempty"`
}

// Membership roles, ordered by privilege.
const (
	RoleCreator = "CREATOR"
	RoleAdmin   = "ADMIN"
	RoleMember  = "MEMBER"
)

type Membership struct {
	ID         string    `json:"id"`
	User       User      `json:"user"`
	Role       string    `json:"role"`
	JoinedDate time.Time `json:"joinedDate"`
}

type GroupCreateRequest struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

type GroupUpdateRequest struct {
	Name            *string `json:"name,omitempty"`
	Description     *string `json:"description,omitempty"`
	RegenerateToken *bool   `json:"regenerateToken,omitempty"`
}

// InviteToken is the join token of a group.
type InviteToken struct {
	Token string `json:"token"`
}
