package fetcher

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"path/filepath"
	"strings"

	apperrors "github.com/nguyentantai21042004/meeting-digest/internal/errors"
	"github.com/nguyentantai21042004/meeting-digest/internal/meeting"
)

type driveItem struct {
	ID     string    `json:"id"`
	Name   string    `json:"name"`
	Size   int64     `json:"size"`
	Folder *struct{} `json:"folder,omitempty"`
}

type childrenPage struct {
	Value    []driveItem `json:"value"`
	NextLink string      `json:"@odata.nextLink"`
}

// ListRemote lists video files in the configured folder, following paging links.
func (f *implFetcher) ListRemote(ctx context.Context) ([]RemoteItem, error) {
	if f.opts.HTTPClient == nil {
		return nil, apperrors.Fetch("remote store is not configured", nil, false)
	}

	next := f.childrenURL()
	var items []RemoteItem

	for next != "" {
		var page childrenPage
		if err := f.getJSON(ctx, next, &page); err != nil {
			return nil, err
		}
		for _, it := range page.Value {
			if it.Folder != nil || !f.wanted(it.Name) {
				continue
			}
			items = append(items, RemoteItem{ID: it.ID, Name: it.Name, Size: it.Size})
		}
		next = page.NextLink
	}

	f.logger.Info(ctx, "Found %d remote recordings in %s", len(items), f.opts.Folder)
	return items, nil
}

// Download streams the item's content to a temp file. A failed download
// leaves no file behind.
func (f *implFetcher) Download(ctx context.Context, item RemoteItem) (meeting.Recording, error) {
	if f.opts.HTTPClient == nil {
		return meeting.Recording{}, apperrors.Fetch("remote store is not configured", nil, false)
	}

	kind, ok := meeting.KindFromName(item.Name)
	if !ok || kind != meeting.KindVideo {
		return meeting.Recording{}, apperrors.Fetch("unsupported file type: "+item.Name, nil, false)
	}

	resp, err := f.get(ctx, f.contentURL(item.ID))
	if err != nil {
		return meeting.Recording{}, err
	}
	defer resp.Body.Close()

	out, err := f.createTemp(filepath.Ext(item.Name))
	if err != nil {
		return meeting.Recording{}, apperrors.Fetch("create temp file", err, false)
	}

	f.logger.Info(ctx, "Downloading %s (%d bytes)", item.Name, item.Size)

	n, err := copyChunks(ctx, out, resp.Body, f.opts.ChunkSize)
	if cerr := out.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		f.remove(ctx, out.Name())
		return meeting.Recording{}, apperrors.Fetch("download "+item.Name, err, true)
	}

	f.logger.Info(ctx, "Downloaded %s: %d bytes", item.Name, n)

	return meeting.Recording{
		ID:        item.ID,
		Name:      item.Name,
		Path:      out.Name(),
		Kind:      kind,
		Temporary: true,
	}, nil
}

// get performs an authenticated GET. Transport and token failures are
// retryable; a response outside 2xx is not.
func (f *implFetcher) get(ctx context.Context, rawURL string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, apperrors.Fetch("build request", err, false)
	}

	resp, err := f.opts.HTTPClient.Do(req)
	if err != nil {
		return nil, apperrors.Fetch("graph request failed", err, true)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		resp.Body.Close()
		return nil, apperrors.Fetch(
			fmt.Sprintf("graph returned %d: %s", resp.StatusCode, strings.TrimSpace(string(body))), nil, false)
	}
	return resp, nil
}

func (f *implFetcher) getJSON(ctx context.Context, rawURL string, v interface{}) error {
	resp, err := f.get(ctx, rawURL)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		return apperrors.Fetch("decode graph response", err, false)
	}
	return nil
}

func (f *implFetcher) wanted(name string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	for _, e := range f.opts.Extensions {
		if e == ext {
			return true
		}
	}
	return false
}

func (f *implFetcher) driveURL() string {
	return fmt.Sprintf("%s/sites/%s/drives/%s", f.opts.GraphURL, url.PathEscape(f.opts.SiteID), url.PathEscape(f.opts.DriveID))
}

func (f *implFetcher) childrenURL() string {
	segments := strings.Split(strings.Trim(f.opts.Folder, "/"), "/")
	for i, s := range segments {
		segments[i] = url.PathEscape(s)
	}
	return fmt.Sprintf("%s/root:/%s:/children", f.driveURL(), strings.Join(segments, "/"))
}

func (f *implFetcher) contentURL(id string) string {
	return fmt.Sprintf("%s/items/%s/content", f.driveURL(), url.PathEscape(id))
}
