package toast

import (
	"log/slog"
	"math"
	"strconv"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
)

// DefaultLimit is the number of toasts kept in the queue.
const DefaultLimit = 5

// maxID is the ceiling at which the id counter wraps.
const maxID = math.MaxInt64

// EventType indicates the type of queue change.
type EventType int

const (
	// EventAdd indicates a toast was added.
	EventAdd EventType = iota
	// EventUpdate indicates a toast was updated.
	EventUpdate
	// EventDismiss indicates one or all toasts were closed.
	EventDismiss
	// EventRemove indicates one or all toasts were removed.
	EventRemove
)

// String returns the string representation of EventType.
func (e EventType) String() string {
	switch e {
	case EventAdd:
		return "add"
	case EventUpdate:
		return "update"
	case EventDismiss:
		return "dismiss"
	case EventRemove:
		return "remove"
	default:
		return "unknown"
	}
}

// Event signals a queue mutation. Toasts is the queue after the change.
type Event struct {
	Type   EventType
	ID     string // Empty when the change applied to every toast
	Toasts []Toast
}

// Option configures a Queue.
type Option func(*Queue)

// WithLimit sets the queue capacity. Values below 1 are ignored.
func WithLimit(limit int) Option {
	return func(q *Queue) {
		if limit > 0 {
			q.limit = limit
		}
	}
}

// WithRemoveDelay sets how long a dismissed toast stays queued.
// Zero or negative disables automatic removal.
func WithRemoveDelay(d time.Duration) Option {
	return func(q *Queue) {
		q.removeDelay = d
	}
}

// WithClock sets the clock used for removal timers.
func WithClock(clock clockwork.Clock) Option {
	return func(q *Queue) {
		q.clock = clock
	}
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(q *Queue) {
		q.logger = logger
	}
}

// Queue is an ordered, bounded list of toasts, newest first.
type Queue struct {
	mu     sync.Mutex
	toasts []Toast
	timers map[string]clockwork.Timer // toast id -> pending removal
	count  int64

	limit       int
	removeDelay time.Duration
	clock       clockwork.Clock
	logger      *slog.Logger

	subscribers []chan Event
	closed      bool
}

// New creates a new Queue.
func New(opts ...Option) *Queue {
	q := &Queue{
		toasts: make([]Toast, 0, DefaultLimit),
		timers: make(map[string]clockwork.Timer),
		limit:  DefaultLimit,
		clock:  clockwork.NewRealClock(),
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(q)
	}
	return q
}

// Toast adds a new open toast at the head of the queue, evicting the oldest
// entries beyond the limit.
func (q *Queue) Toast(props Props) Handle {
	q.mu.Lock()
	defer q.mu.Unlock()

	id := q.genID()
	h := Handle{ID: id, q: q}
	if q.closed {
		return h
	}

	variant := props.Variant
	if variant == "" {
		variant = VariantDefault
	}

	t := Toast{
		ID:          id,
		Title:       props.Title,
		Description: props.Description,
		Variant:     variant,
		Action:      props.Action,
		Fields:      props.Fields,
		Open:        true,
		CreatedAt:   q.clock.Now(),
		OnOpenChange: func(open bool) {
			if !open {
				h.Dismiss()
			}
		},
	}
	t = t.clone()

	q.toasts = append([]Toast{t}, q.toasts...)
	if len(q.toasts) > q.limit {
		q.toasts = q.toasts[:q.limit]
	}

	q.logger.Debug("toast added", "id", id, "title", t.Title)
	q.notify(EventAdd, id)

	return h
}

// Update merges p into the toast with the given id.
func (q *Queue) Update(id string, p Patch) {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.closed {
		return
	}

	idx := q.indexOf(id)
	if idx < 0 {
		return
	}

	p.apply(&q.toasts[idx])
	q.notify(EventUpdate, id)
}

// Dismiss closes the toast with the given id and schedules its removal.
func (q *Queue) Dismiss(id string) {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.closed {
		return
	}

	idx := q.indexOf(id)
	if idx < 0 {
		return
	}

	q.scheduleRemoval(id)

	if !q.toasts[idx].Open {
		return
	}
	q.toasts[idx].Open = false
	q.notify(EventDismiss, id)
}

// DismissAll closes every toast and schedules their removal.
func (q *Queue) DismissAll() {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.closed {
		return
	}

	changed := false
	for i := range q.toasts {
		q.scheduleRemoval(q.toasts[i].ID)
		if q.toasts[i].Open {
			q.toasts[i].Open = false
			changed = true
		}
	}

	if changed {
		q.notify(EventDismiss, "")
	}
}

// Remove deletes the toast with the given id.
func (q *Queue) Remove(id string) {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.closed {
		return
	}
	q.remove(id)
}

// RemoveAll clears the queue.
func (q *Queue) RemoveAll() {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.closed || len(q.toasts) == 0 {
		return
	}

	q.toasts = q.toasts[:0]
	q.notify(EventRemove, "")
}

// Toasts returns a snapshot of the queue, newest first.
func (q *Queue) Toasts() []Toast {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.snapshot()
}

// Get returns the toast with the given id.
func (q *Queue) Get(id string) (Toast, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()

	idx := q.indexOf(id)
	if idx < 0 {
		return Toast{}, false
	}
	return q.toasts[idx].clone(), true
}

// Len returns the number of queued toasts.
func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.toasts)
}

// Pending returns the number of removal timers that have not fired yet.
func (q *Queue) Pending() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.timers)
}

// Subscribe returns a channel that receives queue events.
func (q *Queue) Subscribe() <-chan Event {
	q.mu.Lock()
	defer q.mu.Unlock()

	ch := make(chan Event, 16)
	if q.closed {
		close(ch)
		return ch
	}
	q.subscribers = append(q.subscribers, ch)
	return ch
}

// Unsubscribe removes a subscription and closes its channel.
func (q *Queue) Unsubscribe(ch <-chan Event) {
	q.mu.Lock()
	defer q.mu.Unlock()

	for i, sub := range q.subscribers {
		if sub == ch {
			q.subscribers = append(q.subscribers[:i], q.subscribers[i+1:]...)
			close(sub)
			return
		}
	}
}

// Close stops pending removal timers and closes all subscriber channels.
func (q *Queue) Close() {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.closed {
		return
	}
	q.closed = true

	for id, timer := range q.timers {
		timer.Stop()
		delete(q.timers, id)
	}

	for _, ch := range q.subscribers {
		close(ch)
	}
	q.subscribers = nil
}

// scheduleRemoval arms a one-shot removal timer for id unless one is
// already pending or automatic removal is disabled.
func (q *Queue) scheduleRemoval(id string) {
	if q.removeDelay <= 0 {
		return
	}
	if _, pending := q.timers[id]; pending {
		return
	}

	q.timers[id] = q.clock.AfterFunc(q.removeDelay, func() {
		q.mu.Lock()
		defer q.mu.Unlock()

		delete(q.timers, id)
		if q.closed {
			return
		}
		q.remove(id)
	})
}

// remove deletes id from the queue. Caller must hold q.mu.
func (q *Queue) remove(id string) {
	idx := q.indexOf(id)
	if idx < 0 {
		return
	}

	q.toasts = append(q.toasts[:idx], q.toasts[idx+1:]...)
	q.logger.Debug("toast removed", "id", id)
	q.notify(EventRemove, id)
}

func (q *Queue) indexOf(id string) int {
	for i := range q.toasts {
		if q.toasts[i].ID == id {
			return i
		}
	}
	return -1
}

func (q *Queue) genID() string {
	q.count = (q.count + 1) % maxID
	return strconv.FormatInt(q.count, 10)
}

func (q *Queue) snapshot() []Toast {
	result := make([]Toast, len(q.toasts))
	for i, t := range q.toasts {
		result[i] = t.clone()
	}
	return result
}

// notify sends an event to all subscribers.
func (q *Queue) notify(typ EventType, id string) {
	if len(q.subscribers) == 0 {
		return
	}

	event := Event{Type: typ, ID: id, Toasts: q.snapshot()}
	for _, ch := range q.subscribers {
		sendLatest(ch, event)
	}
}

// sendLatest delivers event without blocking. A full channel loses its
// oldest event so the newest snapshot always lands.
func sendLatest(ch chan Event, event Event) {
	select {
	case ch <- event:
		return
	default:
	}

	select {
	case <-ch:
	default:
	}
	select {
	case ch <- event:
	default:
	}
}
