// Package notify provides domain.Notifier implementations that are not tied
// to an HTTP request.
package notify

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"

	"github.com/nfrund/authforms/internal/domain"
	"github.com/nfrund/authforms/internal/pubsub"
)

// LogNotifier writes notifications to a structured logger.
type LogNotifier struct {
	logger *slog.Logger
}

// NewLogNotifier creates a LogNotifier. A nil logger means slog.Default().
func NewLogNotifier(logger *slog.Logger) *LogNotifier {
	if logger == nil {
		logger = slog.Default()
	}
	return &LogNotifier{logger: logger}
}

// Notify implements domain.Notifier.
func (n *LogNotifier) Notify(ctx context.Context, note domain.Notification) {
	level := slog.LevelInfo
	if note.Level == domain.LevelError {
		level = slog.LevelWarn
	}
	n.logger.Log(ctx, level, note.Message, "level", string(note.Level))
}

// BusNotifier publishes notifications on pubsub.TopicNotifications so other
// parts of the application can react to them.
type BusNotifier struct {
	publisher pubsub.Publisher
}

// NewBusNotifier creates a BusNotifier.
func NewBusNotifier(publisher pubsub.Publisher) *BusNotifier {
	return &BusNotifier{publisher: publisher}
}

type notificationPayload struct {
	Level   string `json:"level"`
	Message string `json:"message"`
}

// Notify implements domain.Notifier. Publish errors are logged, never returned.
func (n *BusNotifier) Notify(ctx context.Context, note domain.Notification) {
	payload, err := json.Marshal(notificationPayload{Level: string(note.Level), Message: note.Message})
	if err != nil {
		slog.Error("Failed to marshal notification", "error", err)
		return
	}
	msg := pubsub.Message{
		Topic:    pubsub.TopicNotifications,
		Payload:  payload,
		Metadata: map[string]string{"level": string(note.Level)},
	}
	if err := n.publisher.Publish(ctx, msg); err != nil {
		slog.Error("Failed to publish notification", "error", err)
	}
}

// Decode turns a message published by BusNotifier back into a Notification.
func Decode(msg pubsub.Message) (domain.Notification, error) {
	var p notificationPayload
	if err := json.Unmarshal(msg.Payload, &p); err != nil {
		return domain.Notification{}, err
	}
	return domain.Notification{Level: domain.Level(p.Level), Message: p.Message}, nil
}

// Multi fans a notification out to several notifiers in order.
type Multi []domain.Notifier

// Notify implements domain.Notifier.
func (m Multi) Notify(ctx context.Context, note domain.Notification) {
	for _, n := range m {
		n.Notify(ctx, note)
	}
}

// Recorder keeps every notification it receives.
type Recorder struct {
	mu    sync.Mutex
	notes []domain.Notification
}

// Notify implements domain.Notifier.
func (r *Recorder) Notify(_ context.Context, note domain.Notification) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.notes = append(r.notes, note)
}

// Notifications returns a copy of everything recorded so far.
func (r *Recorder) Notifications() []domain.Notification {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]domain.Notification, len(r.notes))
	copy(out, r.notes)
	return out
}
