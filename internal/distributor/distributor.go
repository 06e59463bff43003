package distributor

import (
	"context"

	apperrors "github.com/nguyentantai21042004/meeting-digest/internal/errors"
	"github.com/nguyentantai21042004/meeting-digest/internal/logger"
	"github.com/nguyentantai21042004/meeting-digest/internal/meeting"
	"github.com/nguyentantai21042004/meeting-digest/internal/metrics"
)

type implDistributor struct {
	sender    string
	transport Transport
	metrics   *metrics.Metrics
	logger    logger.Logger
}

// New creates a Distributor that sends as sender through transport.
func New(sender string, transport Transport, m *metrics.Metrics, log logger.Logger) Distributor {
	return &implDistributor{
		sender:    sender,
		transport: transport,
		metrics:   m,
		logger:    log,
	}
}

// Send submits the bundle once. Nothing is submitted for an incomplete bundle
// or an empty recipient set.
func (d *implDistributor) Send(ctx context.Context, subject string, bundle meeting.SummaryBundle, to RecipientSet) error {
	if !bundle.Complete() {
		return apperrors.Validationf("summary bundle is incomplete")
	}
	if to.Len() == 0 {
		return apperrors.Validationf("no recipients given")
	}

	body, err := FormatBody(bundle)
	if err != nil {
		return apperrors.Delivery("format message", err)
	}

	env := Envelope{
		From:     d.sender,
		Bcc:      to.Addresses(),
		Subject:  subject,
		HTMLBody: body,
	}

	d.logger.Info(ctx, "Sending summary to %d recipients", to.Len())

	err = d.transport.Submit(ctx, env)
	d.metrics.Delivery(err)
	if err != nil {
		d.logger.Error(ctx, "Summary delivery failed: %v", err)
		return apperrors.Delivery("send failed", err)
	}

	d.logger.Info(ctx, "Summary sent to %d recipients", to.Len())
	return nil
}
