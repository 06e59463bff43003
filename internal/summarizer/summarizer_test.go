package summarizer

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nguyentantai21042004/meeting-digest/internal/document"
	apperrors "github.com/nguyentantai21042004/meeting-digest/internal/errors"
	"github.com/nguyentantai21042004/meeting-digest/internal/llm"
	"github.com/nguyentantai21042004/meeting-digest/internal/logger"
	"github.com/nguyentantai21042004/meeting-digest/internal/meeting"
	"github.com/nguyentantai21042004/meeting-digest/internal/metrics"
)

// fakeModel answers by task, identified from the request prompt.
type fakeModel struct {
	mu      sync.Mutex
	calls   map[string]int
	answers map[string]string
	errs    map[string]error
	delay   map[string]time.Duration
	total   atomic.Int32
}

func newFakeModel() *fakeModel {
	return &fakeModel{
		calls: make(map[string]int),
		answers: map[string]string{
			"summary":  "The team reviewed the **roadmap**.",
			"category": "Team meeting",
			"emotion":  "Professional",
			"industry": "Technology",
			"focus":    "Setting goals",
			"plan":     "1. Finalise roadmap\n\n2. Share budget\n",
		},
		errs:  make(map[string]error),
		delay: make(map[string]time.Duration),
	}
}

func taskOf(req llm.Request) string {
	if req.System == summarySystemPrompt {
		return "summary"
	}
	for task, q := range annotationQuestions {
		if req.User == q {
			return string(task)
		}
	}
	return "unknown"
}

func (f *fakeModel) Generate(ctx context.Context, req llm.Request) (string, error) {
	task := taskOf(req)
	f.total.Add(1)

	f.mu.Lock()
	f.calls[task]++
	d, err, out := f.delay[task], f.errs[task], f.answers[task]
	f.mu.Unlock()

	if d > 0 {
		select {
		case <-time.After(d):
		case <-ctx.Done():
			return "", ctx.Err()
		}
	}
	return out, err
}

func transcript(text string) meeting.Transcript {
	return meeting.Transcript{Raw: text, Normalized: text, Source: meeting.KindVTT}
}

func TestSummarize(t *testing.T) {
	model := newFakeModel()
	s := New(model, nil, metrics.NewNop(), logger.Nop())

	bundle, err := s.Summarize(context.Background(), transcript("Hello team\nLet's begin"))
	require.NoError(t, err)

	assert.Equal(t, "The team reviewed the **roadmap**.", bundle.Summary)
	assert.Equal(t, "Team meeting", bundle.Annotations[meeting.TaskCategory])
	assert.Equal(t, "Professional", bundle.Annotations[meeting.TaskEmotion])
	assert.Equal(t, "Technology", bundle.Annotations[meeting.TaskIndustry])
	assert.Equal(t, "Setting goals", bundle.Annotations[meeting.TaskFocus])
	assert.Equal(t, []string{"1. Finalise roadmap", "2. Share budget"}, bundle.ActionPlan)
	assert.True(t, bundle.Complete())
	assert.Equal(t, int32(6), model.total.Load())
}

func TestAnnotateReturnsExactlyFiveTasks(t *testing.T) {
	model := newFakeModel()
	model.delay["industry"] = 150 * time.Millisecond
	s := New(model, nil, nil, logger.Nop())

	results, err := s.Annotate(context.Background(), "summary text")
	require.NoError(t, err)
	require.Len(t, results, 5)
	for _, task := range meeting.Tasks {
		assert.Contains(t, results, task)
	}
	// the slowest call is still part of the result
	assert.Equal(t, "Technology", results[meeting.TaskIndustry])
}

func TestAnnotateRunsConcurrently(t *testing.T) {
	model := newFakeModel()
	for _, task := range meeting.Tasks {
		model.delay[string(task)] = 100 * time.Millisecond
	}
	s := New(model, nil, nil, logger.Nop())

	start := time.Now()
	_, err := s.Annotate(context.Background(), "summary text")
	require.NoError(t, err)
	assert.Less(t, time.Since(start), 400*time.Millisecond)
}

func TestAnnotateFailureListsEveryFailedTask(t *testing.T) {
	model := newFakeModel()
	model.errs["plan"] = errors.New("quota exceeded")
	model.errs["emotion"] = errors.New("timeout")
	model.delay["category"] = 50 * time.Millisecond
	s := New(model, nil, nil, logger.Nop())

	results, err := s.Annotate(context.Background(), "summary text")
	require.Error(t, err)
	assert.Nil(t, results)

	var se *apperrors.StageError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, apperrors.KindSummary, se.Kind)
	assert.Equal(t, "emotion,plan", se.Op)
	assert.Contains(t, err.Error(), "quota exceeded")
	assert.Contains(t, err.Error(), "timeout")

	// every call finished before the error was returned
	assert.Equal(t, int32(5), model.total.Load())
}

func TestAnnotateEmptyOutputIsFailure(t *testing.T) {
	model := newFakeModel()
	model.answers["focus"] = "   "
	s := New(model, nil, nil, logger.Nop())

	_, err := s.Annotate(context.Background(), "summary text")
	var se *apperrors.StageError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, "focus", se.Op)
}

func TestSummaryFailureSkipsAnnotations(t *testing.T) {
	model := newFakeModel()
	model.errs["summary"] = errors.New("service unavailable")
	s := New(model, nil, nil, logger.Nop())

	_, err := s.Summarize(context.Background(), transcript("Hello"))
	var se *apperrors.StageError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, "summary", se.Op)
	assert.Equal(t, int32(1), model.total.Load())
}

func TestSummarizeUsesCache(t *testing.T) {
	model := newFakeModel()
	caches := NewCaches(nil)
	s := New(model, caches, nil, logger.Nop())

	first, err := s.Summarize(context.Background(), transcript("Hello team"))
	require.NoError(t, err)
	second, err := s.Summarize(context.Background(), transcript("Hello team"))
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, int32(6), model.total.Load())
	assert.Equal(t, 1, caches.Summaries.Len())
	assert.Equal(t, 1, caches.Annotations.Len())
}

func TestFailedAnnotationsAreNotCached(t *testing.T) {
	model := newFakeModel()
	model.errs["plan"] = errors.New("quota exceeded")
	caches := NewCaches(nil)
	s := New(model, caches, nil, logger.Nop())

	_, err := s.Summarize(context.Background(), transcript("Hello team"))
	require.Error(t, err)
	assert.Equal(t, 1, caches.Summaries.Len())
	assert.Equal(t, 0, caches.Annotations.Len())

	model.mu.Lock()
	delete(model.errs, "plan")
	model.mu.Unlock()

	_, err = s.Summarize(context.Background(), transcript("Hello team"))
	require.NoError(t, err)
	// summary came from cache; only the five annotations ran again
	assert.Equal(t, 1, model.calls["summary"])
	assert.Equal(t, 2, model.calls["plan"])
}

func TestCachedAnnotationsAreCopies(t *testing.T) {
	s := New(newFakeModel(), nil, nil, logger.Nop())

	first, err := s.Annotate(context.Background(), "summary text")
	require.NoError(t, err)
	first[meeting.TaskCategory] = "mutated"

	second, err := s.Annotate(context.Background(), "summary text")
	require.NoError(t, err)
	assert.Equal(t, "Team meeting", second[meeting.TaskCategory])
}

func TestWriteReport(t *testing.T) {
	s := New(newFakeModel(), nil, nil, logger.Nop())
	bundle, err := s.Summarize(context.Background(), transcript("Hello team"))
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "report.docx")
	require.NoError(t, WriteReport(bundle, "Weekly sync", path))

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	info, err := f.Stat()
	require.NoError(t, err)

	text, err := document.ParseDocx(f, info.Size())
	require.NoError(t, err)
	assert.Contains(t, text, "Weekly sync")
	assert.Contains(t, text, "Category: Team meeting")
	assert.Contains(t, text, "The team reviewed the roadmap.")
	assert.Contains(t, text, "2. Share budget")
	assert.False(t, strings.Contains(text, "**"))
}

func TestWriteReportRejectsIncompleteBundle(t *testing.T) {
	err := WriteReport(meeting.SummaryBundle{Summary: "x"}, "t", filepath.Join(t.TempDir(), "r.docx"))
	assert.Error(t, err)
}
