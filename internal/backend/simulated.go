// Package backend provides domain.AuthBackend implementations.
package backend

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/nfrund/authforms/internal/domain"
	"github.com/nfrund/authforms/internal/fields"
)

// DefaultDelay is how long a simulated attempt takes.
const DefaultDelay = 2 * time.Second

// ErrRejected is returned by a Simulated backend configured to fail.
var ErrRejected = errors.New("request rejected by simulated backend")

// Simulated stands in for a real authentication service: every attempt
// waits a fixed delay and then succeeds, unless configured to fail.
type Simulated struct {
	delay   time.Duration
	fail    bool
	mailer  domain.EmailSender
	baseURL string
	logger  *slog.Logger
}

// Option configures a Simulated backend.
type Option func(*Simulated)

// WithDelay sets the fixed delay of every attempt.
func WithDelay(d time.Duration) Option {
	return func(s *Simulated) { s.delay = d }
}

// WithFailure makes every attempt fail after the delay.
func WithFailure(fail bool) Option {
	return func(s *Simulated) { s.fail = fail }
}

// WithResetMailer sends a reset-link email on successful forgot-password
// attempts. Links point at baseURL.
func WithResetMailer(mailer domain.EmailSender, baseURL string) Option {
	return func(s *Simulated) {
		s.mailer = mailer
		s.baseURL = baseURL
	}
}

// NewSimulated creates a simulated backend.
func NewSimulated(opts ...Option) *Simulated {
	s := &Simulated{
		delay:  DefaultDelay,
		logger: slog.Default().With("component", "backend"),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Attempt implements domain.AuthBackend.
func (s *Simulated) Attempt(ctx context.Context, mode domain.Mode, values *fields.State) error {
	if s.delay > 0 {
		timer := time.NewTimer(s.delay)
		defer timer.Stop()
		select {
		case <-timer.C:
		case <-ctx.Done():
			return ctx.Err()
		}
	}

	if s.fail {
		return ErrRejected
	}

	s.logger.Debug("Form submitted", "mode", mode.String(), "fields", values.Names())

	if mode == domain.ModeForgotPassword && s.mailer != nil {
		return s.sendResetLink(values.Get("resetEmail"))
	}
	return nil
}

func (s *Simulated) sendResetLink(to string) error {
	link := s.baseURL + "/auth/reset-password?token=" + uuid.NewString()
	body := fmt.Sprintf(`<p>Click the link below to reset your password:</p><a href="%s">Reset Password</a>`, link)
	if err := s.mailer.Send(to, "Reset Your Password", body); err != nil {
		return fmt.Errorf("failed to send reset email: %w", err)
	}
	return nil
}
