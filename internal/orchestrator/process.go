package orchestrator

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	apperrors "github.com/nguyentantai21042004/meeting-digest/internal/errors"
	"github.com/nguyentantai21042004/meeting-digest/internal/logger"
	"github.com/nguyentantai21042004/meeting-digest/internal/meeting"
)

// Select chooses the recording to process and discards any previous result.
func (s *Session) Select(in Input) error {
	if in == nil {
		return apperrors.Validationf("no input selected")
	}
	release, err := s.acquire("select", StateIdle, StateReady, StateFailed)
	if err != nil {
		return err
	}
	defer release()

	s.mu.Lock()
	s.input = in
	s.transcript = nil
	s.bundle = nil
	s.err = nil
	s.mu.Unlock()

	s.transition(StateIdle)
	return nil
}

// Process runs the selected input through every stage up to Ready. Any stage
// error moves the session to Failed and is returned unchanged.
func (s *Session) Process(ctx context.Context) error {
	release, err := s.acquire("process", StateIdle)
	if err != nil {
		return err
	}
	defer release()

	in := s.Input()
	if in == nil {
		return apperrors.InvalidStatef("process: no input selected")
	}

	ctx = logger.WithSessionID(ctx, s.ID)
	ctx, span := s.deps.Tracer.Start(ctx, "session.process", trace.WithAttributes(
		attribute.String("session.id", s.ID),
		attribute.String("input.name", in.Name()),
	))
	defer span.End()

	if s.deps.Metrics != nil {
		s.deps.Metrics.ActiveSessions.Inc()
		defer s.deps.Metrics.ActiveSessions.Dec()
	}

	s.deps.Logger.Info(ctx, "Processing %s", in.Name())
	start := time.Now()

	tr, bundle, err := s.run(ctx, in)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return s.fail(ctx, err)
	}

	s.mu.Lock()
	s.transcript = &tr
	s.bundle = &bundle
	s.mu.Unlock()
	s.transition(StateReady)

	s.deps.Logger.Info(ctx, "Summary ready for %s in %v", in.Name(), time.Since(start).Round(time.Millisecond))
	return nil
}

// Resummarize recomputes the bundle from the current transcript. Cached
// stages are not called again.
func (s *Session) Resummarize(ctx context.Context) error {
	release, err := s.acquire("resummarize", StateReady)
	if err != nil {
		return err
	}
	defer release()

	tr, ok := s.Transcript()
	if !ok {
		return apperrors.InvalidStatef("resummarize: no transcript")
	}

	ctx = logger.WithSessionID(ctx, s.ID)
	bundle, err := s.summarize(ctx, tr)
	if err != nil {
		return s.fail(ctx, err)
	}

	s.mu.Lock()
	s.bundle = &bundle
	s.mu.Unlock()
	s.transition(StateReady)
	return nil
}

// Reset returns the session to Idle with nothing selected.
func (s *Session) Reset() error {
	if !s.busy.TryLock() {
		return apperrors.InvalidStatef("reset: another action is in progress")
	}
	defer s.busy.Unlock()

	s.mu.Lock()
	s.input = nil
	s.transcript = nil
	s.bundle = nil
	s.err = nil
	s.mu.Unlock()

	s.transition(StateIdle)
	return nil
}

func (s *Session) run(ctx context.Context, in Input) (meeting.Transcript, meeting.SummaryBundle, error) {
	var rec meeting.Recording
	err := s.stage(ctx, StateFetching, "fetch", func(ctx context.Context) error {
		var err error
		rec, err = s.fetch(ctx, in)
		return err
	})
	if err != nil {
		return meeting.Transcript{}, meeting.SummaryBundle{}, err
	}

	var tr meeting.Transcript
	switch rec.Kind {
	case meeting.KindVideo:
		tr, err = s.transcribeVideo(ctx, rec)
	default:
		err = s.stage(ctx, StateExtracting, "parse", func(ctx context.Context) error {
			var err error
			tr, err = s.deps.Parser.Parse(ctx, rec)
			return err
		})
		s.discard(ctx, rec)
	}
	if err != nil {
		return meeting.Transcript{}, meeting.SummaryBundle{}, err
	}

	bundle, err := s.summarize(ctx, tr)
	if err != nil {
		return meeting.Transcript{}, meeting.SummaryBundle{}, err
	}
	return tr, bundle, nil
}

func (s *Session) fetch(ctx context.Context, in Input) (meeting.Recording, error) {
	var (
		rec meeting.Recording
		err error
	)

	switch v := in.(type) {
	case VideoFile:
		rec, err = s.deps.Fetcher.Open(ctx, v.Source)
	case DocxTranscript:
		rec, err = s.deps.Fetcher.Open(ctx, v.Source)
	case VTTTranscript:
		rec, err = s.deps.Fetcher.Open(ctx, v.Source)
	case RemoteVideo:
		rec, err = s.deps.Fetcher.Download(ctx, v.Item)
	default:
		return meeting.Recording{}, fmt.Errorf("unknown input type %T", in)
	}
	if err != nil {
		return meeting.Recording{}, err
	}

	if rec.Kind != in.expectedKind() {
		s.discard(ctx, rec)
		return meeting.Recording{}, apperrors.Fetch(
			fmt.Sprintf("%s is a %s file, expected %s", rec.Name, rec.Kind, in.expectedKind()), nil, false)
	}
	return rec, nil
}

func (s *Session) transcribeVideo(ctx context.Context, rec meeting.Recording) (meeting.Transcript, error) {
	if s.deps.Extractor == nil || s.deps.Transcriber == nil {
		s.discard(ctx, rec)
		return meeting.Transcript{}, apperrors.Extraction("video processing is not configured", nil)
	}

	var audio meeting.AudioStream
	err := s.stage(ctx, StateExtracting, "extract", func(ctx context.Context) error {
		var err error
		audio, err = s.deps.Extractor.Extract(ctx, rec)
		return err
	})
	s.discard(ctx, rec)
	if err != nil {
		return meeting.Transcript{}, err
	}
	defer s.cleanupTempFile(ctx, audio.Path)

	var tr meeting.Transcript
	err = s.stage(ctx, StateTranscribing, "transcribe", func(ctx context.Context) error {
		var err error
		tr, err = s.deps.Transcriber.Transcribe(ctx, audio)
		return err
	})
	return tr, err
}

func (s *Session) summarize(ctx context.Context, tr meeting.Transcript) (meeting.SummaryBundle, error) {
	var bundle meeting.SummaryBundle
	err := s.stage(ctx, StateSummarizing, "summarize", func(ctx context.Context) error {
		var err error
		bundle, err = s.deps.Summarizer.Summarize(ctx, tr)
		return err
	})
	return bundle, err
}

// stage moves to state, then runs fn inside a span and records its duration.
func (s *Session) stage(ctx context.Context, state State, name string, fn func(ctx context.Context) error) error {
	s.transition(state)

	ctx, span := s.deps.Tracer.Start(ctx, "stage."+name)
	defer span.End()

	start := time.Now()
	err := fn(ctx)
	elapsed := time.Since(start)

	var kind string
	if err != nil {
		kind = "unknown"
		if k, ok := apperrors.KindOf(err); ok {
			kind = string(k)
		}
		span.RecordError(err)
		span.SetStatus(codes.Error, kind)
		s.deps.Logger.Error(ctx, "Stage %s failed after %v: %v", name, elapsed.Round(time.Millisecond), err)
	} else {
		s.deps.Logger.Debug(ctx, "Stage %s done in %v", name, elapsed.Round(time.Millisecond))
	}
	s.deps.Metrics.ObserveStage(name, elapsed, kind)
	return err
}

// fail discards partial results and keeps err for display.
func (s *Session) fail(ctx context.Context, err error) error {
	s.mu.Lock()
	s.transcript = nil
	s.bundle = nil
	s.err = err
	s.mu.Unlock()
	s.transition(StateFailed)
	return err
}
