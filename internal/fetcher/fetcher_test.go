package fetcher

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nguyentantai21042004/meeting-digest/internal/config"
	apperrors "github.com/nguyentantai21042004/meeting-digest/internal/errors"
	"github.com/nguyentantai21042004/meeting-digest/internal/logger"
	"github.com/nguyentantai21042004/meeting-digest/internal/meeting"
)

func TestOpenPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "Call.MP4")
	require.NoError(t, os.WriteFile(path, []byte("video"), 0o644))

	f := New(Options{TempDir: t.TempDir()}, logger.Nop())
	rec, err := f.Open(context.Background(), LocalSource{Path: path})
	require.NoError(t, err)
	assert.Equal(t, meeting.KindVideo, rec.Kind)
	assert.Equal(t, path, rec.Path)
	assert.False(t, rec.Temporary)
}

func TestOpenReaderSpools(t *testing.T) {
	dir := t.TempDir()
	f := New(Options{TempDir: dir, ChunkSize: 3}, logger.Nop())

	rec, err := f.Open(context.Background(), LocalSource{Name: "notes.vtt", Reader: strings.NewReader("WEBVTT\n")})
	require.NoError(t, err)
	assert.True(t, rec.Temporary)
	assert.Equal(t, meeting.KindVTT, rec.Kind)
	assert.Equal(t, "notes.vtt", rec.Name)
	assert.Equal(t, dir, filepath.Dir(rec.Path))
	assert.Equal(t, ".vtt", filepath.Ext(rec.Path))

	data, err := os.ReadFile(rec.Path)
	require.NoError(t, err)
	assert.Equal(t, "WEBVTT\n", string(data))
}

func TestOpenErrors(t *testing.T) {
	f := New(Options{TempDir: t.TempDir()}, logger.Nop())

	_, err := f.Open(context.Background(), LocalSource{Name: "slides.pptx", Reader: strings.NewReader("x")})
	require.Error(t, err)
	assert.True(t, apperrors.IsKind(err, apperrors.KindFetch))
	assert.False(t, apperrors.IsRetryable(err))
	assert.Contains(t, err.Error(), "unsupported file type")

	_, err = f.Open(context.Background(), LocalSource{Path: "/does/not/exist.mp4"})
	assert.True(t, apperrors.IsKind(err, apperrors.KindFetch))
}

func TestCopyChunks(t *testing.T) {
	var dst bytes.Buffer
	n, err := copyChunks(context.Background(), &dst, strings.NewReader("abcdefghij"), 4)
	require.NoError(t, err)
	assert.Equal(t, int64(10), n)
	assert.Equal(t, "abcdefghij", dst.String())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = copyChunks(ctx, &dst, strings.NewReader("abc"), 4)
	assert.ErrorIs(t, err, context.Canceled)
}

// graphServer serves a token endpoint and a minimal drive API.
type graphServer struct {
	*httptest.Server
	tokenStatus int
	authHeaders []string
}

func newGraphServer(t *testing.T) *graphServer {
	t.Helper()
	gs := &graphServer{tokenStatus: http.StatusOK}
	mux := http.NewServeMux()

	mux.HandleFunc("/token", func(w http.ResponseWriter, r *http.Request) {
		assert.NoError(t, r.ParseForm())
		assert.Equal(t, "client_credentials", r.Form.Get("grant_type"))
		assert.Equal(t, graphScope, r.Form.Get("scope"))
		if gs.tokenStatus != http.StatusOK {
			w.WriteHeader(gs.tokenStatus)
			_, _ = w.Write([]byte(`{"error":"invalid_client"}`))
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"access_token":"tok-123","token_type":"Bearer","expires_in":3600}`))
	})

	mux.HandleFunc("/v1.0/sites/site-1/drives/drive-1/root:/Recordings:/children", func(w http.ResponseWriter, r *http.Request) {
		gs.authHeaders = append(gs.authHeaders, r.Header.Get("Authorization"))
		page := childrenPage{Value: []driveItem{
			{ID: "1", Name: "standup.MP4", Size: 10},
			{ID: "2", Name: "notes.docx", Size: 3},
			{ID: "3", Name: "archive", Folder: &struct{}{}},
		}}
		if r.URL.Query().Get("page") == "" {
			page.NextLink = gs.URL + r.URL.Path + "?page=2"
		} else {
			page.Value = []driveItem{{ID: "4", Name: "review.mov", Size: 20}}
		}
		_ = json.NewEncoder(w).Encode(page)
	})

	mux.HandleFunc("/v1.0/sites/site-1/drives/drive-1/items/", func(w http.ResponseWriter, r *http.Request) {
		gs.authHeaders = append(gs.authHeaders, r.Header.Get("Authorization"))
		switch r.URL.Path {
		case "/v1.0/sites/site-1/drives/drive-1/items/1/content":
			_, _ = w.Write(bytes.Repeat([]byte("v"), 100))
		default:
			http.Error(w, `{"error":{"code":"itemNotFound"}}`, http.StatusNotFound)
		}
	})

	gs.Server = httptest.NewServer(mux)
	t.Cleanup(gs.Close)
	return gs
}

func remoteConfig(t *testing.T, gs *graphServer) *config.Config {
	t.Helper()
	return &config.Config{
		Remote: config.RemoteConfig{
			Enabled:    true,
			GraphURL:   gs.URL + "/v1.0/",
			TokenURL:   gs.URL + "/token",
			Folder:     "Recordings",
			ChunkSize:  16,
			Extensions: []string{".mp4", ".MOV"},
		},
		Paths: config.PathsConfig{Temp: t.TempDir()},
		Secrets: config.Secrets{
			ClientID: "client", ClientSecret: "secret", TenantID: "tenant",
			SiteID: "site-1", DriveID: "drive-1",
		},
	}
}

func TestListRemote(t *testing.T) {
	gs := newGraphServer(t)
	f := NewFromConfig(remoteConfig(t, gs), logger.Nop())

	items, err := f.ListRemote(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []RemoteItem{
		{ID: "1", Name: "standup.MP4", Size: 10},
		{ID: "4", Name: "review.mov", Size: 20},
	}, items)

	for _, h := range gs.authHeaders {
		assert.Equal(t, "Bearer tok-123", h)
	}
}

func TestDownload(t *testing.T) {
	gs := newGraphServer(t)
	cfg := remoteConfig(t, gs)
	f := NewFromConfig(cfg, logger.Nop())

	rec, err := f.Download(context.Background(), RemoteItem{ID: "1", Name: "standup.MP4"})
	require.NoError(t, err)
	assert.True(t, rec.Temporary)
	assert.Equal(t, meeting.KindVideo, rec.Kind)
	assert.Equal(t, "1", rec.ID)

	data, err := os.ReadFile(rec.Path)
	require.NoError(t, err)
	assert.Len(t, data, 100)
}

func TestDownloadNotFoundIsNotRetryable(t *testing.T) {
	gs := newGraphServer(t)
	cfg := remoteConfig(t, gs)
	f := NewFromConfig(cfg, logger.Nop())

	_, err := f.Download(context.Background(), RemoteItem{ID: "missing", Name: "gone.mp4"})
	require.Error(t, err)
	assert.True(t, apperrors.IsKind(err, apperrors.KindFetch))
	assert.False(t, apperrors.IsRetryable(err))
	assert.Contains(t, err.Error(), "404")

	entries, _ := os.ReadDir(cfg.Paths.Temp)
	assert.Empty(t, entries)
}

func TestTokenFailureIsRetryable(t *testing.T) {
	gs := newGraphServer(t)
	gs.tokenStatus = http.StatusUnauthorized
	f := NewFromConfig(remoteConfig(t, gs), logger.Nop())

	_, err := f.ListRemote(context.Background())
	require.Error(t, err)
	assert.True(t, apperrors.IsKind(err, apperrors.KindFetch))
	assert.True(t, apperrors.IsRetryable(err))
}

func TestTransportFailureIsRetryable(t *testing.T) {
	gs := newGraphServer(t)
	cfg := remoteConfig(t, gs)
	f := NewFromConfig(cfg, logger.Nop())
	gs.Close()

	_, err := f.Download(context.Background(), RemoteItem{ID: "1", Name: "standup.mp4"})
	require.Error(t, err)
	assert.True(t, apperrors.IsRetryable(err), fmt.Sprint(err))
}

func TestRemoteDisabled(t *testing.T) {
	f := New(Options{TempDir: t.TempDir()}, logger.Nop())
	_, err := f.ListRemote(context.Background())
	assert.True(t, apperrors.IsKind(err, apperrors.KindFetch))

	_, err = f.Download(context.Background(), RemoteItem{ID: "1", Name: "a.mp4"})
	assert.True(t, apperrors.IsKind(err, apperrors.KindFetch))
}
