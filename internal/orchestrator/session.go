// Package orchestrator drives one recording through the pipeline: fetch,
// decode, transcribe or parse, summarise, then send on request.
package orchestrator

import (
	"maps"
	"sync"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"

	"github.com/nguyentantai21042004/meeting-digest/internal/distributor"
	"github.com/nguyentantai21042004/meeting-digest/internal/document"
	apperrors "github.com/nguyentantai21042004/meeting-digest/internal/errors"
	"github.com/nguyentantai21042004/meeting-digest/internal/fetcher"
	"github.com/nguyentantai21042004/meeting-digest/internal/logger"
	"github.com/nguyentantai21042004/meeting-digest/internal/media"
	"github.com/nguyentantai21042004/meeting-digest/internal/meeting"
	"github.com/nguyentantai21042004/meeting-digest/internal/metrics"
	"github.com/nguyentantai21042004/meeting-digest/internal/summarizer"
	"github.com/nguyentantai21042004/meeting-digest/internal/transcriber"
)

const tracerName = "github.com/nguyentantai21042004/meeting-digest/internal/orchestrator"

// Dependencies are the stage implementations a session calls. Extractor and
// Transcriber may be nil when only transcript documents are processed.
type Dependencies struct {
	Fetcher     fetcher.Fetcher
	Extractor   media.Extractor
	Transcriber transcriber.Transcriber
	Parser      document.Parser
	Summarizer  summarizer.Summarizer
	Distributor distributor.Distributor

	Subject string
	Metrics *metrics.Metrics
	Tracer  trace.Tracer
	Logger  logger.Logger
}

// Session holds the state of one user's pass through the pipeline. Actions
// are synchronous; starting an action while another runs fails with
// ErrInvalidState. Views may be read from any goroutine.
type Session struct {
	ID string

	deps Dependencies

	busy sync.Mutex

	mu         sync.RWMutex
	state      State
	input      Input
	transcript *meeting.Transcript
	bundle     *meeting.SummaryBundle
	err        error
	hooks      []TransitionFunc
}

// NewSession creates an idle session with a fresh id.
func NewSession(deps Dependencies) *Session {
	if deps.Tracer == nil {
		deps.Tracer = otel.Tracer(tracerName)
	}
	if deps.Logger == nil {
		deps.Logger = logger.Nop()
	}
	if deps.Subject == "" {
		deps.Subject = "Meeting Summary"
	}

	return &Session{ID: uuid.NewString(), deps: deps, state: StateIdle}
}

// OnTransition registers fn to be called after every state change.
func (s *Session) OnTransition(fn TransitionFunc) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.hooks = append(s.hooks, fn)
}

func (s *Session) State() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// Input returns the selected input, or nil.
func (s *Session) Input() Input {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.input
}

// Err returns the error that moved the session to Failed.
func (s *Session) Err() error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.err
}

// Transcript returns the transcript of the last successful run.
func (s *Session) Transcript() (meeting.Transcript, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.transcript == nil {
		return meeting.Transcript{}, false
	}
	return *s.transcript, true
}

// Bundle returns the summary bundle. It is only available in Ready and Sending.
func (s *Session) Bundle() (meeting.SummaryBundle, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.bundle == nil {
		return meeting.SummaryBundle{}, false
	}
	return cloneBundle(*s.bundle), true
}

// acquire claims the action slot and checks the current state is allowed.
func (s *Session) acquire(action string, allowed ...State) (release func(), err error) {
	if !s.busy.TryLock() {
		return nil, apperrors.InvalidStatef("%s: another action is in progress", action)
	}

	current := s.State()
	for _, st := range allowed {
		if st == current {
			return s.busy.Unlock, nil
		}
	}
	s.busy.Unlock()
	return nil, apperrors.InvalidStatef("%s is not allowed while %s", action, current)
}

func (s *Session) transition(to State) {
	s.mu.Lock()
	from := s.state
	s.state = to
	hooks := append([]TransitionFunc(nil), s.hooks...)
	s.mu.Unlock()

	if from == to {
		return
	}
	for _, fn := range hooks {
		fn(from, to)
	}
}

func cloneBundle(b meeting.SummaryBundle) meeting.SummaryBundle {
	out := b
	out.Annotations = maps.Clone(b.Annotations)
	out.ActionPlan = append([]string(nil), b.ActionPlan...)
	return out
}
