package sender

import (
	"context"
	"time"
)

// SendResult describes a successfully dispatched message.
type SendResult struct {
	MessageID string
	SentAt    time.Time
}

// EmailSender delivers a rendered email.
type EmailSender interface {
	SendEmail(ctx context.Context, to, subject, body string) (SendResult, error)
}
