// Package notify delivers the user-facing messages produced by session and
// account operations.
package notify

import (
	"context"
	"errors"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/Dannesh12/urban-slot-finder/pkg/logger"
)

// Variant of a notification
const (
	VariantDefault     = "default"
	VariantDestructive = "destructive"
)

// Notification is one toast-style message
type Notification struct {
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Variant     string    `json:"variant"`
	UserID      string    `json:"userId,omitempty"`
	At          time.Time `json:"at"`
}

// Notifier delivers notifications
type Notifier interface {
	Notify(ctx context.Context, n Notification) error
}

// LogNotifier writes notifications to the structured log
type LogNotifier struct {
	log *logger.Logger
}

func NewLogNotifier(log *logger.Logger) *LogNotifier {
	return &LogNotifier{log: log}
}

func (l *LogNotifier) Notify(_ context.Context, n Notification) error {
	fields := []zap.Field{
		zap.String("title", n.Title),
		zap.String("description", n.Description),
		zap.String("variant", n.Variant),
		zap.String("user_id", n.UserID),
	}
	if n.Variant == VariantDestructive {
		l.log.Warn("Notification", fields...)
	} else {
		l.log.Info("Notification", fields...)
	}
	return nil
}

// Multi fans a notification out to every notifier
type Multi []Notifier

func (m Multi) Notify(ctx context.Context, n Notification) error {
	var errs []error
	for _, next := range m {
		if err := next.Notify(ctx, n); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Recorder keeps notifications in memory
type Recorder struct {
	mu    sync.RWMutex
	items []Notification
	limit int
}

// NewRecorder keeps at most limit notifications, 0 for unlimited
func NewRecorder(limit int) *Recorder {
	return &Recorder{limit: limit}
}

func (r *Recorder) Notify(_ context.Context, n Notification) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.items = append(r.items, n)
	if r.limit > 0 && len(r.items) > r.limit {
		r.items = r.items[len(r.items)-r.limit:]
	}
	return nil
}

// Last returns the most recent notification
func (r *Recorder) Last() (Notification, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if len(r.items) == 0 {
		return Notification{}, false
	}
	return r.items[len(r.items)-1], true
}

// All returns a copy of the recorded notifications, oldest first
func (r *Recorder) All() []Notification {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Notification, len(r.items))
	copy(out, r.items)
	return out
}
