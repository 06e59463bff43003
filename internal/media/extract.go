package media

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	apperrors "github.com/nguyentantai21042004/meeting-digest/internal/errors"
	"github.com/nguyentantai21042004/meeting-digest/internal/meeting"
	"github.com/nguyentantai21042004/meeting-digest/pkg/executor"
)

// Extract runs ffmpeg against the recording. On failure no audio file is left behind.
func (e *implExtractor) Extract(ctx context.Context, rec meeting.Recording) (meeting.AudioStream, error) {
	if rec.Kind != meeting.KindVideo {
		return meeting.AudioStream{}, apperrors.Extraction(fmt.Sprintf("%s is not a video recording", rec.Name), nil)
	}

	if err := os.MkdirAll(e.tempDir, 0o755); err != nil {
		return meeting.AudioStream{}, apperrors.Extraction("create temp dir", err)
	}

	base := strings.TrimSuffix(filepath.Base(rec.Path), filepath.Ext(rec.Path))
	audioPath := filepath.Join(e.tempDir, fmt.Sprintf("%s_%s.wav", base, uuid.NewString()[:8]))

	e.logger.Info(ctx, "Extracting audio: %s", rec.Path)

	// -vn: drop video, -ar/-ac: 16kHz mono, pcm_s16le: uncompressed 16-bit
	args := []string{
		"-i", rec.Path,
		"-vn",
		"-ar", "16000",
		"-ac", "1",
		"-c:a", "pcm_s16le",
		"-y",
		audioPath,
	}

	if _, err := e.executor.Execute(ctx, e.binary, args...); err != nil {
		e.remove(ctx, audioPath)
		var cmdErr *executor.CommandError
		if errors.As(err, &cmdErr) && cmdErr.NotFound() {
			return meeting.AudioStream{}, apperrors.Extraction(fmt.Sprintf("%s not found", e.binary), err)
		}
		return meeting.AudioStream{}, apperrors.Extraction("ffmpeg failed", err)
	}

	info, err := os.Stat(audioPath)
	if err != nil || info.Size() == 0 {
		e.remove(ctx, audioPath)
		return meeting.AudioStream{}, apperrors.Extraction("no audio decoded from "+rec.Name, err)
	}

	e.logger.Info(ctx, "Audio extracted: %s", audioPath)
	return meeting.AudioStream{Path: audioPath}, nil
}

func (e *implExtractor) remove(ctx context.Context, path string) {
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		e.logger.Warn(ctx, "Failed to cleanup temp file %s: %v", path, err)
	}
}
