// Package summarizer turns a transcript into a summary bundle with two rounds
// of language-model calls: one summary, then five annotations of that summary.
package summarizer

import (
	"context"

	"github.com/nguyentantai21042004/meeting-digest/internal/meeting"
)

// Summarizer produces summary bundles. Results are memoised by content, so
// summarising the same transcript twice costs one set of model calls.
type Summarizer interface {
	// Summarize runs both stages. No bundle is returned unless every call succeeded.
	Summarize(ctx context.Context, tr meeting.Transcript) (meeting.SummaryBundle, error)
	// Annotate runs the five annotation calls concurrently and waits for all of them.
	Annotate(ctx context.Context, summary string) (map[meeting.Task]string, error)
}
