package models

import "time"

// Notification types pushed by the backend.
const (
	NotificationFileAdded    = "FILE_ADDED"
	NotificationFileDeleted  = "FILE_DELETED"
	NotificationFileUpdated  = "FILE_UPDATED"
	NotificationUserJoined   = "USER_JOINED"
	NotificationUserLeft     = "USER_LEFT"
	NotificationUserRemoved  = "USER_REMOVED"
	NotificationGroupUpdated = "GROUP_UPDATED"
)

type Notification struct {
	ID          string        `json:"id"`
	Type        string        `json:"type"`
	Message     string        `json:"message"`
	CreatedDate time.Time     `json:"createdDate"`
	Read        bool          `json:"read"`
	ReadDate    time.Time     `json:"readDate,omitempty"`
	User        User          `json:"user"`
	Group       WorkGroup     `json:"group"`
	RelatedFile *FileMetadata `json:"relatedFile,omitempty"`
	RelatedUser *User         `json:"relatedUser,omitempty"`
}

// UnreadCount wraps the unread notification counter endpoint response.
type UnreadCount struct {
	Count int `json:"count"`
}
