// Package submission sequences validation, the busy state, the backend call
// and the resulting notification for one form instance.
package submission

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/google/uuid"
	"github.com/nfrund/authforms/internal/domain"
	"github.com/nfrund/authforms/internal/fields"
	"github.com/nfrund/authforms/internal/validation"
)

// Messages holds the user-facing texts a controller notifies with.
type Messages struct {
	Success map[domain.Mode]string
	Failure string
}

// DefaultMessages are the texts used by the tri-mode auth form.
func DefaultMessages() Messages {
	return Messages{
		Success: map[domain.Mode]string{
			domain.ModeLogin:          "Logged in successfully!",
			domain.ModeRegister:       "Account created successfully!",
			domain.ModeForgotPassword: "A password reset link has been sent to your email.",
		},
		Failure: "Something went wrong. Please try again later.",
	}
}

// RegistrationMessages are the texts used by the stand-alone registration form.
func RegistrationMessages() Messages {
	return Messages{
		Success: map[domain.Mode]string{
			domain.ModeRegister: "Account created successfully!",
		},
		Failure: "Registration failed. Please try again later.",
	}
}

// Request describes one submit click.
type Request struct {
	Mode   domain.Mode
	Rules  validation.RuleSet
	Fields *fields.State
	// Gate is an extra precondition outside the rule set, such as a terms
	// checkbox tracked separately from the field state. A closed gate blocks
	// the submission silently.
	Gate bool
}

// Outcome reports what a submit click did.
type Outcome struct {
	Errors    validation.ErrorMap
	Submitted bool
	Err       error
}

// Controller runs submissions. A single controller belongs to a single form
// instance; it does not queue or reject overlapping calls.
type Controller struct {
	engine   *validation.Engine
	backend  domain.AuthBackend
	notifier domain.Notifier
	messages Messages
	logger   *slog.Logger
	onStatus func(domain.Status)

	mu     sync.RWMutex
	status domain.Status
}

// Option configures a Controller.
type Option func(*Controller)

// WithMessages overrides the notification texts.
func WithMessages(m Messages) Option {
	return func(c *Controller) {
		c.messages = m
	}
}

// WithLogger sets the logger used for attempt tracing.
func WithLogger(l *slog.Logger) Option {
	return func(c *Controller) {
		c.logger = l
	}
}

// WithStatusHook registers a callback invoked on every status change.
func WithStatusHook(fn func(domain.Status)) Option {
	return func(c *Controller) {
		c.onStatus = fn
	}
}

// NewController creates a controller in the Idle state.
func NewController(engine *validation.Engine, backend domain.AuthBackend, notifier domain.Notifier, opts ...Option) *Controller {
	c := &Controller{
		engine:   engine,
		backend:  backend,
		notifier: notifier,
		messages: DefaultMessages(),
		logger:   slog.Default().With("component", "submission"),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Status returns the current submission status.
func (c *Controller) Status() domain.Status {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.status
}

// Busy reports whether a submission is in flight.
func (c *Controller) Busy() bool {
	return c.Status() == domain.StatusSubmitting
}

func (c *Controller) setStatus(s domain.Status) {
	c.mu.Lock()
	c.status = s
	c.mu.Unlock()
	if c.onStatus != nil {
		c.onStatus(s)
	}
}

// Submit validates req and, if it passes, performs one backend attempt.
// The ErrorMap in the outcome is always populated so callers can replace
// stale messages with it.
func (c *Controller) Submit(ctx context.Context, req Request) Outcome {
	errs := c.engine.ValidateRules(req.Fields, req.Rules)
	if !errs.Valid() || !req.Gate {
		return Outcome{Errors: errs}
	}

	attemptID := uuid.NewString()
	log := c.logger.With("attempt_id", attemptID, "mode", req.Mode.String())

	c.setStatus(domain.StatusSubmitting)
	defer c.setStatus(domain.StatusIdle)

	log.Debug("Submitting form")
	err := c.attempt(ctx, req)
	if err != nil {
		log.Warn("Submission failed", "error", err)
		c.notifier.Notify(ctx, domain.Notification{Level: domain.LevelError, Message: c.messages.Failure})
		return Outcome{Errors: errs, Submitted: true, Err: err}
	}

	log.Info("Submission succeeded")
	c.notifier.Notify(ctx, domain.Notification{Level: domain.LevelSuccess, Message: c.messages.Success[req.Mode]})
	return Outcome{Errors: errs, Submitted: true}
}

// attempt calls the backend, turning a panic into an ordinary failure so the
// form always returns to Idle with a message.
func (c *Controller) attempt(ctx context.Context, req Request) (err error) {
	defer func() {
		if p := recover(); p != nil {
			err = fmt.Errorf("%w: backend panic: %v", domain.ErrSubmissionFailed, p)
		}
	}()
	if err := c.backend.Attempt(ctx, req.Mode, req.Fields.Clone()); err != nil {
		return fmt.Errorf("%w: %w", domain.ErrSubmissionFailed, err)
	}
	return nil
}
