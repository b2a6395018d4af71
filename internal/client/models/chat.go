package models

import "time"

type ChatMessage struct {
	ID            string        `json:"id"`
	Content       string        `json:"content"`
	Timestamp     time.Time     `json:"timestamp"`
	Sender        User          `json:"sender"`
	Group         WorkGroup     `json:"group"`
	Attachment    *FileMetadata `json:"attachment,omitempty"`
	Edited        bool          `json:"edited"`
	EditTimestamp time.Time     `json:"editTimestamp,omitempty"`
}

type ChatMessageRequest struct {
	Content      string `json:"content"`
	GroupID      string `json:"groupId"`
	AttachmentID string `json:"attachmentId,omitempty"`
}
