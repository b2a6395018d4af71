package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/dmitrijs2005/cloudsync/internal/client/format"
	"github.com/dmitrijs2005/cloudsync/internal/client/models"
	"github.com/dmitrijs2005/cloudsync/internal/client/querycache"
)

func (a *App) ListFiles(ctx context.Context, args []string) {
	if !a.requireAuth() {
		return
	}
	if len(args) == 0 {
		fmt.Fprintln(a.out, "Usage: files <groupId>")
		return
	}
	groupID := args[0]

	files, _, err := querycache.Fetch(ctx, a.cache, querycache.Key(keyFiles, groupID),
		func(ctx context.Context) ([]models.FileMetadata, error) {
			return a.client.GroupFiles(ctx, groupID)
		})
	if err != nil {
		fmt.Fprintf(a.out, "Loading files unsuccessful: %v\n", err)
		return
	}
	if len(files) == 0 {
		fmt.Fprintln(a.out, "No files in this group")
		return
	}
	for _, f := range files {
		fmt.Fprintf(a.out, "%s  %-40s  %-10s uploaded %s by %s\n",
			f.ID, format.Truncate(f.OriginalName, 40), format.FileSize(f.FileSize),
			format.Date(f.UploadDate), f.Uploader.Username)
	}
}

// UploadFile streams a local file into the group, optimistically appends the
// returned metadata to the cached listing and invalidates it.
func (a *App) UploadFile(ctx context.Context, args []string) {
	if !a.requireAuth() {
		return
	}
	if len(args) < 2 {
		fmt.Fprintln(a.out, "Usage: upload <groupId> <path>")
		return
	}
	groupID, path := args[0], args[1]

	f, err := os.Open(path)
	if err != nil {
		fmt.Fprintf(a.out, "error: %v\n", err)
		return
	}
	defer f.Close()

	key := querycache.Key(keyFiles, groupID)
	seen := a.cache.Version(key)

	meta, err := a.client.UploadFile(ctx, groupID, filepath.Base(path), f)
	if err != nil {
		fmt.Fprintf(a.out, "Upload unsuccessful: %v\n", err)
		return
	}

	a.cache.MutateSince(key, seen, querycache.Append(meta))
	a.cache.Invalidate(key)
	a.cache.Invalidate(keyStats)

	fmt.Fprintf(a.out, "Uploaded %q (%s)\n", meta.OriginalName, format.FileSize(meta.FileSize))
}

func (a *App) DownloadFile(ctx context.Context, args []string) {
	if !a.requireAuth() {
		return
	}
	if len(args) == 0 {
		fmt.Fprintln(a.out, "Usage: download <fileId> [destination]")
		return
	}
	fileID := args[0]

	meta, err := a.client.FileInfo(ctx, fileID)
	if err != nil {
		fmt.Fprintf(a.out, "Loading file info unsuccessful: %v\n", err)
		return
	}

	dest := meta.OriginalName
	if len(args) > 1 {
		dest = args[1]
	}

	data, err := a.client.DownloadFile(ctx, fileID)
	if err != nil {
		fmt.Fprintf(a.out, "Download unsuccessful: %v\n", err)
		return
	}
	if err := os.WriteFile(dest, data, 0o600); err != nil {
		fmt.Fprintf(a.out, "Saving file unsuccessful: %v\n", err)
		return
	}
	fmt.Fprintf(a.out, "Saved %s (%s)\n", dest, format.FileSize(int64(len(data))))
}

func (a *App) RenameFile(ctx context.Context, args []string) {
	if !a.requireAuth() {
		return
	}
	if len(args) < 2 {
		fmt.Fprintln(a.out, "Usage: rename <fileId> <newName>")
		return
	}
	meta, err := a.client.RenameFile(ctx, args[0], strings.Join(args[1:], " "))
	if err != nil {
		fmt.Fprintf(a.out, "Rename unsuccessful: %v\n", err)
		return
	}
	a.cache.InvalidatePrefix(keyFiles)
	fmt.Fprintf(a.out, "Renamed to %q\n", meta.OriginalName)
}

func (a *App) DeleteFile(ctx context.Context, args []string) {
	if !a.requireAuth() {
		return
	}
	if len(args) == 0 {
		fmt.Fprintln(a.out, "Usage: delfile <fileId>")
		return
	}
	if err := a.client.DeleteFile(ctx, args[0]); err != nil {
		fmt.Fprintf(a.out, "Delete unsuccessful: %v\n", err)
		return
	}
	a.cache.InvalidatePrefix(keyFiles)
	a.cache.Invalidate(keyStats)
	fmt.Fprintln(a.out, "File deleted")
}

// FileHistory accepts either a file id or "group:<groupId>" for the whole
// group's change log.
func (a *App) FileHistory(ctx context.Context, args []string) {
	if !a.requireAuth() {
		return
	}
	if len(args) == 0 {
		fmt.Fprintln(a.out, "Usage: history <fileId> | history group:<groupId>")
		return
	}

	var history []models.FileHistory
	var err error
	if groupID, ok := strings.CutPrefix(args[0], "group:"); ok {
		history, err = a.client.GroupFileHistory(ctx, groupID)
	} else {
		history, err = a.client.FileHistory(ctx, args[0])
	}
	if err != nil {
		fmt.Fprintf(a.out, "Loading history unsuccessful: %v\n", err)
		return
	}
	if len(history) == 0 {
		fmt.Fprintln(a.out, "No history")
		return
	}
	for _, h := range history {
		line := fmt.Sprintf("%s  %-10s %s by %s", format.Date(h.ChangeDate), h.ChangeType, h.File.OriginalName, h.ChangedBy.Username)
		if h.AdditionalInfo != "" {
			line += " (" + h.AdditionalInfo + ")"
		}
		fmt.Fprintln(a.out, line)
	}
}

func (a *App) GroupStorage(ctx context.Context, args []string) {
	if !a.requireAuth() {
		return
	}
	if len(args) == 0 {
		fmt.Fprintln(a.out, "Usage: storage <groupId>")
		return
	}
	info, err := a.client.GroupStorageInfo(ctx, args[0])
	if err != nil {
		fmt.Fprintf(a.out, "Loading storage info unsuccessful: %v\n", err)
		return
	}
	used := info.StorageUsedFormatted
	if used == "" {
		used = format.FileSize(info.StorageUsed)
	}
	fmt.Fprintf(a.out, "Storage used: %s\n", used)
}

func (a *App) SearchFiles(ctx context.Context, args []string) {
	if !a.requireAuth() {
		return
	}
	if len(args) < 2 {
		fmt.Fprintln(a.out, "Usage: searchfiles <groupId> <query>")
		return
	}
	files, err := a.client.SearchFiles(ctx, args[0], strings.Join(args[1:], " "))
	if err != nil {
		fmt.Fprintf(a.out, "Search unsuccessful: %v\n", err)
		return
	}
	if len(files) == 0 {
		fmt.Fprintln(a.out, "No files found")
		return
	}
	for _, f := range files {
		fmt.Fprintf(a.out, "%s  %s (%s)\n", f.ID, f.OriginalName, format.FileSize(f.FileSize))
	}
}
