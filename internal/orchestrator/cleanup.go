package orchestrator

import (
	"context"
	"errors"
	"os"

	"github.com/nguyentantai21042004/meeting-digest/internal/meeting"
)

// cleanupTempFile removes a temporary file, logs warning if it fails.
func (s *Session) cleanupTempFile(ctx context.Context, path string) {
	if path == "" {
		return
	}
	if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		s.deps.Logger.Warn(ctx, "Failed to cleanup temp file %s: %v", path, err)
		return
	}
	s.deps.Logger.Debug(ctx, "Cleaned up temp file: %s", path)
}

// discard removes a downloaded or spooled recording once its audio or text
// has been extracted. Local files selected by path are left alone.
func (s *Session) discard(ctx context.Context, rec meeting.Recording) {
	if rec.Temporary {
		s.cleanupTempFile(ctx, rec.Path)
	}
}
