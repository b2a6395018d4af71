package models

import "time"

// Activity is one entry of the recent-activity feed.
type Activity struct {
	ID          string    `json:"id"`
	Type        string    `json:"type"`
	Message     string    `json:"message"`
	CreatedDate time.Time `json:"createdDate"`
	GroupID     string    `json:"groupId"`
	GroupName   string    `json:"groupName"`
	UserID      string    `json:"userId"`
	UserName    string    `json:"userName"`
	FileID      string    `json:"fileId,omitempty"`
	FileName    string    `json:"fileName,omitempty"`
}
