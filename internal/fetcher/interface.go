// Package fetcher acquires recordings: local files, uploaded bytes, and videos
// stored in a SharePoint/OneDrive document library via Microsoft Graph.
package fetcher

import (
	"context"
	"io"

	"github.com/nguyentantai21042004/meeting-digest/internal/meeting"
)

// LocalSource is a file on disk (Path) or uploaded bytes (Reader). Name
// carries the original file name and decides the media kind.
type LocalSource struct {
	Name   string
	Path   string
	Reader io.Reader
}

// RemoteItem is a video listed in the remote folder.
type RemoteItem struct {
	ID   string
	Name string
	Size int64
}

// Fetcher produces local recordings ready for decoding or parsing.
type Fetcher interface {
	Open(ctx context.Context, src LocalSource) (meeting.Recording, error)
	ListRemote(ctx context.Context) ([]RemoteItem, error)
	Download(ctx context.Context, item RemoteItem) (meeting.Recording, error)
}
