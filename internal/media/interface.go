// Package media decodes the audio track of a video recording for speech recognition.
package media

import (
	"context"

	"github.com/nguyentantai21042004/meeting-digest/internal/meeting"
)

// Extractor turns a video recording into a 16kHz mono PCM WAV stream.
type Extractor interface {
	Extract(ctx context.Context, rec meeting.Recording) (meeting.AudioStream, error)
}
