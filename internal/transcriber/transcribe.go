package transcriber

import (
	"context"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	apperrors "github.com/nguyentantai21042004/meeting-digest/internal/errors"
	"github.com/nguyentantai21042004/meeting-digest/internal/meeting"
)

// Transcribe runs whisper over the whole stream and returns both the raw and
// the normalised text.
func (t *implTranscriber) Transcribe(ctx context.Context, audio meeting.AudioStream) (meeting.Transcript, error) {
	// whisper appends .txt to the prefix
	prefix := strings.TrimSuffix(audio.Path, filepath.Ext(audio.Path))
	txtPath := prefix + ".txt"

	t.logger.Info(ctx, "Starting transcription with %d threads: %s", t.cfg.Threads, audio.Path)

	// -nt: no timestamps, -otxt: plain text output
	args := []string{
		"-m", t.cfg.ModelPath,
		"-f", audio.Path,
		"-l", t.cfg.Language,
		"-t", strconv.Itoa(t.cfg.Threads),
		"-nt",
		"-otxt",
		"-of", prefix,
	}

	if _, err := t.executor.Execute(ctx, t.cfg.BinaryPath, args...); err != nil {
		t.remove(ctx, txtPath)
		return meeting.Transcript{}, apperrors.Transcription("whisper failed", err)
	}

	data, err := os.ReadFile(txtPath)
	t.remove(ctx, txtPath)
	if err != nil {
		return meeting.Transcript{}, apperrors.Transcription("read whisper output", err)
	}

	raw := strings.TrimSpace(string(data))
	if raw == "" {
		return meeting.Transcript{}, apperrors.Transcription("no speech recognised", nil)
	}

	t.logger.Info(ctx, "Transcription completed: %d characters", len(raw))

	return meeting.Transcript{
		Raw:        raw,
		Normalized: Normalize(raw),
		Source:     meeting.KindVideo,
	}, nil
}

func (t *implTranscriber) remove(ctx context.Context, path string) {
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		t.logger.Warn(ctx, "Failed to cleanup temp file %s: %v", path, err)
	}
}
