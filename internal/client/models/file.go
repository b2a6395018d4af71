package models

import "time"

// FileMetadata describes one stored file. The binary content is fetched
// separately through the download endpoint.
type FileMetadata struct {
	ID            string    `json:"id"`
	OriginalName  string    `json:"originalName"`
	StoredName    string    `json:"storedName"`
	FileSize      int64     `json:"fileSize"`
	FileType      string    `json:"fileType"`
	MimeType      string    `json:"mimeType"`
	UploadDate    time.Time `json:"uploadDate"`
	LastModified  time.Time `json:"lastModified,omitempty"`
	Uploader      User      `json:"uploader"`
	Deleted       bool      `json:"deleted"`
	FormattedSize string    `json:"formattedSize,omitempty"`
	FileExtension string    `json:"fileExtension,omitempty"`
}

// File change types recorded in the history log.
const (
	FileChangeUploaded   = "UPLOADED"
	FileChangeDeleted    = "DELETED"
	FileChangeRenamed    = "RENAMED"
	FileChangeUpdated    = "UPDATED"
	FileChangeDownloaded = "DOWNLOADED"
)

type FileHistory struct {
	ID             string       `json:"id"`
	ChangeType     string       `json:"changeType"`
	ChangeDate     time.Time    `json:"changeDate"`
	AdditionalInfo string       `json:"additionalInfo,omitempty"`
	ChangedBy      User         `json:"changedBy"`
	File           FileMetadata `json:"file"`
}

// StorageInfo reports the storage consumed by a group.
type StorageInfo struct {
	StorageUsed          int64  `json:"storageUsed"`
	StorageUsedFormatted string `json:"storageUsedFormatted"`
}
