package device

import (
	"log/slog"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/jmylchreest/padprofile/internal/model"
	"github.com/jmylchreest/padprofile/internal/toast"
)

// Level indicates the severity of a device notification.
type Level int

const (
	// LevelInfo is for informational messages.
	LevelInfo Level = iota
	// LevelWarning is for recoverable problems.
	LevelWarning
	// LevelError is for failed operations.
	LevelError
)

// String returns the string representation of Level.
func (l Level) String() string {
	switch l {
	case LevelInfo:
		return "info"
	case LevelWarning:
		return "warning"
	case LevelError:
		return "error"
	default:
		return "unknown"
	}
}

// DefaultMinInterval is the default window in which a repeated key is dropped.
const DefaultMinInterval = 5 * time.Second

// NotifierOption configures a Notifier.
type NotifierOption func(*Notifier)

// WithNotifierLogger sets the notifier's logger.
func WithNotifierLogger(logger *slog.Logger) NotifierOption {
	return func(n *Notifier) {
		n.logger = logger
	}
}

// WithNotifierClock sets the clock used for rate limiting.
func WithNotifierClock(clock clockwork.Clock) NotifierOption {
	return func(n *Notifier) {
		n.clock = clock
	}
}

// WithMinInterval sets the minimum interval between notifications with the
// same key.
func WithMinInterval(d time.Duration) NotifierOption {
	return func(n *Notifier) {
		n.minInterval = d
	}
}

// Notifier turns device events into toasts.
// Notifications sharing a key are rate limited.
type Notifier struct {
	mu     sync.Mutex
	queue  *toast.Queue
	logger *slog.Logger
	clock  clockwork.Clock

	lastNotifyTime map[string]time.Time
	minInterval    time.Duration
	enabled        bool
}

// NewNotifier creates a notifier that posts to queue.
func NewNotifier(queue *toast.Queue, opts ...NotifierOption) *Notifier {
	n := &Notifier{
		queue:          queue,
		logger:         slog.Default(),
		clock:          clockwork.NewRealClock(),
		lastNotifyTime: make(map[string]time.Time),
		minInterval:    DefaultMinInterval,
		enabled:        true,
	}
	for _, opt := range opts {
		opt(n)
	}
	return n
}

// SetEnabled enables or disables notifications.
func (n *Notifier) SetEnabled(enabled bool) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.enabled = enabled
}

// Attach subscribes the notifier to m's events.
func (n *Notifier) Attach(m *Manager) {
	m.OnConfigSaved(n.NotifySaved)
	m.OnSaveFailed(n.NotifySaveFailed)
	m.OnLoadFailed(n.NotifyLoadFailed)
	m.OnDisconnected(n.NotifyDisconnected)
	m.OnConfigLoaded(func(cfg *model.Config) {
		n.NotifyLoaded(len(cfg.GameModes))
	})
}

// Notify posts a toast unless the key was used within the minimum interval.
// Returns true if a toast was posted.
func (n *Notifier) Notify(key, title, description string, level Level) bool {
	n.mu.Lock()
	if !n.enabled {
		n.mu.Unlock()
		return false
	}

	now := n.clock.Now()
	if last, ok := n.lastNotifyTime[key]; ok && now.Sub(last) < n.minInterval {
		n.mu.Unlock()
		n.logger.Debug("device notification rate-limited", "key", key, "title", title)
		return false
	}
	n.lastNotifyTime[key] = now
	n.mu.Unlock()

	variant := toast.VariantDefault
	if level == LevelError {
		variant = toast.VariantDestructive
	}

	n.logger.Debug("posting device notification", "key", key, "title", title, "level", level)

	n.queue.Toast(toast.Props{
		Title:       title,
		Description: description,
		Variant:     variant,
		Fields: map[string]any{
			"key":   key,
			"level": level.String(),
		},
	})
	return true
}

// NotifySaved reports a successful save.
func (n *Notifier) NotifySaved() {
	n.Notify("config-saved", "Profile Saved", "Button mapping saved to the device.", LevelInfo)
}

// NotifySaveFailed reports a failed save.
func (n *Notifier) NotifySaveFailed(err error) {
	n.Notify("config-save-error", "Save Failed", "Failed to save profile: "+err.Error(), LevelError)
}

// NotifyLoaded reports a loaded config.
func (n *Notifier) NotifyLoaded(modes int) {
	body := "Device config loaded."
	if modes == 0 {
		body = "Device has no saved profiles, using layout defaults."
	}
	n.Notify("config-loaded", "Device Connected", body, LevelInfo)
}

// NotifyLoadFailed reports a failed load or reload.
func (n *Notifier) NotifyLoadFailed(err error) {
	n.Notify("config-load-error", "Load Failed", "Failed to load device config: "+err.Error(), LevelWarning)
}

// NotifyDisconnected reports the end of a session.
func (n *Notifier) NotifyDisconnected() {
	n.Notify("disconnected", "Device Disconnected", "Profiles were cleared.", LevelInfo)
}
