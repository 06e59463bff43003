package orchestrator

import (
	"context"

	"github.com/nguyentantai21042004/meeting-digest/internal/distributor"
	apperrors "github.com/nguyentantai21042004/meeting-digest/internal/errors"
	"github.com/nguyentantai21042004/meeting-digest/internal/logger"
)

// Send validates raw recipient input and emails the bundle. Validation
// failures leave the session untouched; otherwise the session passes through
// Sending and returns to Ready whatever the outcome.
func (s *Session) Send(ctx context.Context, raw string) error {
	release, err := s.acquire("send", StateReady)
	if err != nil {
		return err
	}
	defer release()

	recipients, err := distributor.ParseRecipients(raw)
	if err != nil {
		return err
	}

	bundle, ok := s.Bundle()
	if !ok {
		return apperrors.InvalidStatef("send: ready session has no summary")
	}

	ctx = logger.WithSessionID(ctx, s.ID)

	err = s.stage(ctx, StateSending, "send", func(ctx context.Context) error {
		return s.deps.Distributor.Send(ctx, s.deps.Subject, bundle, recipients)
	})
	s.transition(StateReady)
	return err
}
