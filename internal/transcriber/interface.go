// Package transcriber runs whisper.cpp over an audio stream.
package transcriber

import (
	"context"

	"github.com/nguyentantai21042004/meeting-digest/internal/meeting"
)

// Transcriber converts decoded audio into a transcript in one pass.
type Transcriber interface {
	Transcribe(ctx context.Context, audio meeting.AudioStream) (meeting.Transcript, error)
}
