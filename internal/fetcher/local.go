package fetcher

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	apperrors "github.com/nguyentantai21042004/meeting-digest/internal/errors"
	"github.com/nguyentantai21042004/meeting-digest/internal/meeting"
)

// Open resolves a local recording. Paths are used in place; readers are
// spooled to the temp directory and the recording is marked temporary.
func (f *implFetcher) Open(ctx context.Context, src LocalSource) (meeting.Recording, error) {
	name := src.Name
	if name == "" {
		name = filepath.Base(src.Path)
	}

	kind, ok := meeting.KindFromName(name)
	if !ok {
		return meeting.Recording{}, apperrors.Fetch(fmt.Sprintf("unsupported file type: %s", name), nil, false)
	}

	rec := meeting.Recording{ID: name, Name: name, Kind: kind}

	if src.Reader == nil {
		info, err := os.Stat(src.Path)
		if err != nil {
			return meeting.Recording{}, apperrors.Fetch("open "+src.Path, err, false)
		}
		if info.IsDir() {
			return meeting.Recording{}, apperrors.Fetch(src.Path+" is a directory", nil, false)
		}
		rec.Path = src.Path
		return rec, nil
	}

	out, err := f.createTemp(filepath.Ext(name))
	if err != nil {
		return meeting.Recording{}, apperrors.Fetch("create temp file", err, false)
	}

	n, err := copyChunks(ctx, out, src.Reader, f.opts.ChunkSize)
	if cerr := out.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		f.remove(ctx, out.Name())
		return meeting.Recording{}, apperrors.Fetch("spool upload "+name, err, false)
	}

	f.logger.Info(ctx, "Spooled upload %s: %d bytes", name, n)

	rec.Path = out.Name()
	rec.Temporary = true
	return rec, nil
}

func (f *implFetcher) createTemp(ext string) (*os.File, error) {
	if err := os.MkdirAll(f.opts.TempDir, 0o755); err != nil {
		return nil, err
	}
	return os.CreateTemp(f.opts.TempDir, "recording-*"+ext)
}

func (f *implFetcher) remove(ctx context.Context, path string) {
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		f.logger.Warn(ctx, "Failed to cleanup temp file %s: %v", path, err)
	}
}
