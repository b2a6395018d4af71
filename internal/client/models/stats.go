package models

// UserStats aggregates the dashboard counters for the current user.
type UserStats struct {
	TotalGroups      int   `json:"totalGroups"`
	TotalMembers     int   `json:"totalMembers"`
	TotalFiles       int   `json:"totalFiles"`
	TotalStorageUsed int64 `json:"totalStorageUsed"`
}
