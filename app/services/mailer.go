package services

import (
	"context"
	"log/slog"
	"sync/atomic"
)

// Mailer delivers notifications. It logs instead of talking to a mail server.
type Mailer struct {
	from   string
	logger *slog.Logger
	sent   atomic.Int64
}

func NewMailer(logger *slog.Logger, from string) *Mailer {
	return &Mailer{from: from, logger: logger}
}

func (m *Mailer) Send(ctx context.Context, to, subject string) error {
	m.logger.InfoContext(ctx, "mail sent",
		slog.String("from", m.from),
		slog.String("to", to),
		slog.String("subject", subject))
	m.sent.Add(1)
	return nil
}

// From returns the sender address.
func (m *Mailer) From() string { return m.from }

// Sent returns how many messages were sent.
func (m *Mailer) Sent() int64 { return m.sent.Load() }
