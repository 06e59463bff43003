// Package document extracts plain text from transcript files: Word documents
// and WebVTT caption tracks.
package document

import (
	"context"

	"github.com/nguyentantai21042004/meeting-digest/internal/meeting"
)

// Parser reads a transcript document into a Transcript. No normalisation is
// applied; Normalized carries the raw text unchanged.
type Parser interface {
	Parse(ctx context.Context, rec meeting.Recording) (meeting.Transcript, error)
}
