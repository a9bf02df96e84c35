// Package mailer renders and dispatches result-summary emails. Dispatch is
// best-effort by contract: callers log and swallow errors, and a submission
// is never failed because its email was not delivered.
package mailer

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/wneessen/go-mail"

	"github.com/rohitmodi970/casual-quizing/internal/config"
)

// Mailer sends result-summary emails over SMTP.
type Mailer struct {
	client  *mail.Client
	from    string
	enabled bool
	log     zerolog.Logger
}

// New creates a Mailer from SMTP configuration. When cfg.MailEnabled is
// false the returned Mailer is a logged no-op and Send always reports
// failure (emailSent=false), which keeps the response flag honest.
func New(cfg *config.Config, log zerolog.Logger) (*Mailer, error) {
	m := &Mailer{
		from:    cfg.MailFrom,
		enabled: cfg.MailEnabled,
		log:     log.With().Str("component", "mailer").Logger(),
	}

	if !cfg.MailEnabled {
		return m, nil
	}

	opts := []mail.Option{
		mail.WithPort(cfg.SMTPPort),
		mail.WithTLSPolicy(mail.TLSOpportunistic),
	}
	if cfg.SMTPUser != "" {
		opts = append(opts,
			mail.WithSMTPAuth(mail.SMTPAuthPlain),
			mail.WithUsername(cfg.SMTPUser),
			mail.WithPassword(cfg.SMTPPass),
		)
	}

	client, err := mail.NewClient(cfg.SMTPHost, opts...)
	if err != nil {
		return nil, fmt.Errorf("create smtp client: %w", err)
	}
	m.client = client
	return m, nil
}

// Send renders and dispatches the summary to its owner. The returned error
// signals dispatch failure only; the caller decides it is non-fatal.
func (m *Mailer) Send(ctx context.Context, s Summary) error {
	if !m.enabled {
		m.log.Debug().Str("to", s.Email).Msg("Mail disabled, skipping dispatch")
		return fmt.Errorf("mail dispatch disabled")
	}

	rendered, err := Render(s)
	if err != nil {
		return err
	}

	msg := mail.NewMsg()
	if err := msg.From(m.from); err != nil {
		return fmt.Errorf("set from: %w", err)
	}
	if err := msg.To(s.Email); err != nil {
		return fmt.Errorf("set recipient: %w", err)
	}
	msg.Subject(rendered.Subject)
	msg.SetBodyString(mail.TypeTextPlain, rendered.Text)
	msg.AddAlternativeString(mail.TypeTextHTML, rendered.HTML)

	if err := m.client.DialAndSendWithContext(ctx, msg); err != nil {
		return fmt.Errorf("send mail: %w", err)
	}

	m.log.Info().Str("to", s.Email).Int("score", s.Score).Msg("Result email sent")
	return nil
}
