package api

import (
	"context"
	"io"
	"net/url"

	"github.com/dmitrijs2005/cloudsync/internal/client/models"
)

// UploadFile streams one file into a group as a multipart upload.
func (c *Client) UploadFile(ctx context.Context, groupID, fileName string, file io.Reader) (models.FileMetadata, error) {
	var meta models.FileMetadata
	err := c.postMultipart(ctx, "/files/upload/"+url.PathEscape(groupID), fileName, file, &meta)
	return meta, err
}

// DownloadFile fetches the raw file content.
func (c *Client) DownloadFile(ctx context.Context, fileID string) ([]byte, error) {
	return c.getBlob(ctx, "/files/download/"+url.PathEscape(fileID))
}

// GroupFiles lists a group's files. A missing collection decodes as an empty
// slice; callers never see a nil-vs-error ambiguity here.
func (c *Client) GroupFiles(ctx context.Context, groupID string) ([]models.FileMetadata, error) {
	var files []models.FileMetadata
	err := c.get(ctx, "/files/group/"+url.PathEscape(groupID), nil, &files)
	return files, err
}

// FileInfo fetches one file's metadata.
func (c *Client) FileInfo(ctx context.Context, fileID string) (models.FileMetadata, error) {
	var meta models.FileMetadata
	err := c.get(ctx, "/files/"+url.PathEscape(fileID), nil, &meta)
	return meta, err
}

// DeleteFile removes the file.
func (c *Client) DeleteFile(ctx context.Context, fileID string) error {
	return c.del(ctx, "/files/"+url.PathEscape(fileID))
}

// RenameFile changes the displayed name and returns the updated metadata.
func (c *Client) RenameFile(ctx context.Context, fileID, newName string) (models.FileMetadata, error) {
	var meta models.FileMetadata
	q := url.Values{"newName": {newName}}
	err := c.put(ctx, "/files/"+url.PathEscape(fileID)+"/rename", q, nil, &meta)
	return meta, err
}

// FileHistory lists the change log of one file.
func (c *Client) FileHistory(ctx context.Context, fileID string) ([]models.FileHistory, error) {
	var history []models.FileHistory
	err := c.get(ctx, "/files/"+url.PathEscape(fileID)+"/history", nil, &history)
	return history, err
}

// GroupFileHistory lists the change log across all files of a group.
func (c *Client) GroupFileHistory(ctx context.Context, groupID string) ([]models.FileHistory, error) {
	var history []models.FileHistory
	err := c.get(ctx, "/files/group/"+url.PathEscape(groupID)+"/history", nil, &history)
	return history, err
}

// GroupStorageInfo reports the group's storage consumption.
func (c *Client) GroupStorageInfo(ctx context.Context, groupID string) (models.StorageInfo, error) {
	var info models.StorageInfo
	err := c.get(ctx, "/files/group/"+url.PathEscape(groupID)+"/storage", nil, &info)
	return info, err
}

// SearchFiles finds files in a group by a free-text query.
func (c *Client) SearchFiles(ctx context.Context, groupID, query string) ([]models.FileMetadata, error) {
	var files []models.FileMetadata
	err := c.get(ctx, "/files/group/"+url.PathEscape(groupID)+"/search", url.Values{"query": {query}}, &files)
	return files, err
}
