package summarizer

import (
	"github.com/nguyentantai21042004/meeting-digest/internal/cache"
	"github.com/nguyentantai21042004/meeting-digest/internal/llm"
	"github.com/nguyentantai21042004/meeting-digest/internal/logger"
	"github.com/nguyentantai21042004/meeting-digest/internal/meeting"
	"github.com/nguyentantai21042004/meeting-digest/internal/metrics"
)

// maxConcurrentCalls bounds the annotation fan-out.
const maxConcurrentCalls = 5

// Caches holds the memoised model output. One Caches may be shared by many sessions.
type Caches struct {
	Summaries   *cache.Cache[string]
	Annotations *cache.Cache[map[meeting.Task]string]
}

// NewCaches creates empty caches reporting to m.
func NewCaches(m *metrics.Metrics) *Caches {
	return &Caches{
		Summaries:   cache.New[string]("summary", m),
		Annotations: cache.New[map[meeting.Task]string]("annotations", m),
	}
}

type implSummarizer struct {
	model   llm.Model
	caches  *Caches
	metrics *metrics.Metrics
	logger  logger.Logger
}

// New creates a Summarizer calling model. A nil caches gets a private set.
func New(model llm.Model, caches *Caches, m *metrics.Metrics, log logger.Logger) Summarizer {
	if caches == nil {
		caches = NewCaches(m)
	}
	return &implSummarizer{
		model:   model,
		caches:  caches,
		metrics: m,
		logger:  log,
	}
}
