package summarizer

import (
	"context"
	"errors"
	"fmt"
	"maps"
	"sort"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/nguyentantai21042004/meeting-digest/internal/cache"
	apperrors "github.com/nguyentantai21042004/meeting-digest/internal/errors"
	"github.com/nguyentantai21042004/meeting-digest/internal/meeting"
)

const opSummary = "summary"

func (s *implSummarizer) Summarize(ctx context.Context, tr meeting.Transcript) (meeting.SummaryBundle, error) {
	summary, err := s.summary(ctx, tr.Raw)
	if err != nil {
		return meeting.SummaryBundle{}, err
	}

	results, err := s.Annotate(ctx, summary)
	if err != nil {
		return meeting.SummaryBundle{}, err
	}

	bundle := meeting.NewBundle(summary, results)
	if !bundle.Complete() {
		return meeting.SummaryBundle{}, apperrors.Summary(string(meeting.TaskPlan), "plan of action is empty", nil)
	}
	return bundle, nil
}

// summary runs the first stage, consulting the cache by transcript content.
func (s *implSummarizer) summary(ctx context.Context, transcript string) (string, error) {
	key := cache.KeyOf(transcript)
	if cached, ok := s.caches.Summaries.Lookup(key); ok {
		s.logger.Debug(ctx, "Summary cache hit: %s", key[:12])
		return cached, nil
	}

	s.logger.Info(ctx, "Summarizing transcript: %d characters", len(transcript))

	out, err := s.model.Generate(ctx, summaryRequest(transcript))
	if err == nil && strings.TrimSpace(out) == "" {
		err = errors.New("empty response")
	}
	s.metrics.ModelCall(opSummary, err)
	if err != nil {
		return "", apperrors.Summary(opSummary, "summary generation failed", err)
	}

	out = strings.TrimSpace(out)
	s.caches.Summaries.Store(key, out)
	return out, nil
}

func (s *implSummarizer) Annotate(ctx context.Context, summary string) (map[meeting.Task]string, error) {
	key := cache.KeyOf(summary)
	if cached, ok := s.caches.Annotations.Lookup(key); ok {
		s.logger.Debug(ctx, "Annotation cache hit: %s", key[:12])
		return maps.Clone(cached), nil
	}

	tasks := meeting.Tasks
	outputs := make([]string, len(tasks))
	failures := make([]error, len(tasks))

	// Goroutines never return an error so that one failure does not cancel
	// the others; each task reports through its own slot.
	var g errgroup.Group
	g.SetLimit(maxConcurrentCalls)

	for i, task := range tasks {
		g.Go(func() error {
			out, err := s.model.Generate(ctx, annotationRequest(task, summary))
			if err == nil && strings.TrimSpace(out) == "" {
				err = errors.New("empty response")
			}
			s.metrics.ModelCall(string(task), err)
			outputs[i], failures[i] = out, err
			return nil
		})
	}
	_ = g.Wait()

	var (
		failed []string
		causes []error
	)
	results := make(map[meeting.Task]string, len(tasks))
	for i, task := range tasks {
		if failures[i] != nil {
			failed = append(failed, string(task))
			causes = append(causes, fmt.Errorf("%s: %w", task, failures[i]))
			continue
		}
		results[task] = strings.TrimSpace(outputs[i])
	}

	if len(failed) > 0 {
		sort.Strings(failed)
		s.logger.Warn(ctx, "Annotation failed for %s", strings.Join(failed, ", "))
		return nil, apperrors.Summary(strings.Join(failed, ","), "annotation failed", errors.Join(causes...))
	}

	s.caches.Annotations.Store(key, maps.Clone(results))
	return results, nil
}
