package distributor

import (
	"context"
	"fmt"
	"time"

	"github.com/wneessen/go-mail"
)

// SMTPConfig configures an authenticated SMTP submission.
type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	Timeout  time.Duration
}

type smtpTransport struct {
	cfg SMTPConfig
}

// NewSMTPTransport creates a Transport that dials per submission with
// mandatory STARTTLS and PLAIN auth.
func NewSMTPTransport(cfg SMTPConfig) Transport {
	if cfg.Timeout == 0 {
		cfg.Timeout = 30 * time.Second
	}
	return &smtpTransport{cfg: cfg}
}

func (t *smtpTransport) Submit(ctx context.Context, env Envelope) error {
	msg, err := buildMessage(env)
	if err != nil {
		return err
	}

	client, err := mail.NewClient(t.cfg.Host,
		mail.WithPort(t.cfg.Port),
		mail.WithTLSPolicy(mail.TLSMandatory),
		mail.WithSMTPAuth(mail.SMTPAuthPlain),
		mail.WithUsername(t.cfg.Username),
		mail.WithPassword(t.cfg.Password),
		mail.WithTimeout(t.cfg.Timeout),
	)
	if err != nil {
		return fmt.Errorf("smtp client: %w", err)
	}

	if err := client.DialAndSendWithContext(ctx, msg); err != nil {
		return fmt.Errorf("smtp send: %w", err)
	}
	return nil
}

func buildMessage(env Envelope) (*mail.Msg, error) {
	msg := mail.NewMsg()
	if err := msg.From(env.From); err != nil {
		return nil, fmt.Errorf("sender %q: %w", env.From, err)
	}
	if len(env.To) > 0 {
		if err := msg.To(env.To...); err != nil {
			return nil, fmt.Errorf("to: %w", err)
		}
	}
	if len(env.Cc) > 0 {
		if err := msg.Cc(env.Cc...); err != nil {
			return nil, fmt.Errorf("cc: %w", err)
		}
	}
	if err := msg.Bcc(env.Bcc...); err != nil {
		return nil, fmt.Errorf("bcc: %w", err)
	}
	msg.Subject(env.Subject)
	msg.SetDate()
	msg.SetMessageID()
	msg.SetBodyString(mail.TypeTextHTML, env.HTMLBody)
	return msg, nil
}
