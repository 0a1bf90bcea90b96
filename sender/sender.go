package sender

import (
	"context"
	"time"
)

type SendResult struct {
	MessageID string
	SentAt    time.Time
}

// EmailSender delivers one message. TextBody is the plain-text
// alternative; HTMLBody the formatted one.
type EmailSender interface {
	SendEmail(ctx context.Context, to, subject, textBody, htmlBody string) (SendResult, error)
}

// NoopSender drops every message. Used when SMTP is not configured so
// order placement never depends on email delivery.
type NoopSender struct{}

func (NoopSender) SendEmail(_ context.Context, _, _, _, _ string) (SendResult, error) {
	return SendResult{MessageID: "noop", SentAt: time.Now()}, nil
}
