package domain

import (
	"context"

	"github.com/nfrund/authforms/internal/fields"
)

// Level classifies a notification for presentation.
type Level string

const (
	LevelSuccess Level = "success"
	LevelError   Level = "error"
)

// Notification is a single piece of user-facing feedback produced by a
// submission.
type Notification struct {
	Level   Level
	Message string
}

// Notifier receives submission feedback. Implementations must not block for
// long: the submission controller calls Notify synchronously.
type Notifier interface {
	Notify(ctx context.Context, n Notification)
}

// AuthBackend performs the actual login, registration or reset request.
// A nil error means success; any error is reported to the user as a generic
// failure.
type AuthBackend interface {
	Attempt(ctx context.Context, mode Mode, values *fields.State) error
}

// EmailSender delivers outgoing mail, such as password reset links.
type EmailSender interface {
	Send(to, subject, htmlBody string) error
}
