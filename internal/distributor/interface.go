// Package distributor formats a summary bundle as an HTML email and submits it
// with every recipient blind-copied.
package distributor

import (
	"context"

	"github.com/nguyentantai21042004/meeting-digest/internal/meeting"
)

// Envelope is one outgoing message. Recipients are only ever placed in Bcc.
type Envelope struct {
	From     string
	To       []string
	Cc       []string
	Bcc      []string
	Subject  string
	HTMLBody string
}

// Transport submits a message. One call is one submission.
type Transport interface {
	Submit(ctx context.Context, env Envelope) error
}

// Distributor sends summary bundles.
type Distributor interface {
	Send(ctx context.Context, subject string, bundle meeting.SummaryBundle, to RecipientSet) error
}
