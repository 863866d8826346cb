// Package feedback provides the transient-notification manager consumed by
// the submission pipeline. A Manager is explicitly constructed and injected
// rather than process-global, so independent form surfaces (and parallel
// tests) each own their lifecycle: create -> subscribe* -> dispose.
package feedback

import (
	"sync"
	"time"

	"github.com/google/uuid"
	forma "github.com/reoring/forma"
	"github.com/reoring/forma/internal/clock"
)

// Entry is one live notification.
type Entry struct {
	ID          string
	Message     string
	Variant     forma.Variant
	AutoDismiss bool
	Duration    time.Duration
}

// EventKind discriminates listener notifications.
type EventKind int

const (
	EventAdded EventKind = iota
	EventDismissed
)

// Event is delivered to subscribers on every entry change.
type Event struct {
	Kind  EventKind
	Entry Entry
}

// Listener receives entry change events.
type Listener func(Event)

// Manager owns a set of live feedback entries and their auto-dismiss timers.
type Manager struct {
	mu        sync.Mutex
	clock     clock.Clock
	entries   []Entry
	timers    map[string]clock.Timer
	onClose   map[string]func()
	listeners map[int]Listener
	nextSub   int
	closed    bool
}

// Option customizes a Manager.
type Option func(*Manager)

// WithClock overrides the timer source, used by tests to drive auto-dismiss
// deterministically.
func WithClock(c clock.Clock) Option {
	return func(m *Manager) { m.clock = c }
}

// NewManager creates an empty Manager backed by the system clock.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		clock:     clock.System(),
		timers:    map[string]clock.Timer{},
		onClose:   map[string]func(){},
		listeners: map[int]Listener{},
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// AddFeedback implements forma.FeedbackSink.
func (m *Manager) AddFeedback(message string, opts forma.FeedbackOptions) {
	m.Add(Entry{
		Message:     message,
		Variant:     opts.Variant,
		AutoDismiss: opts.AutoDismiss,
		Duration:    opts.Duration,
	}, opts.OnClose)
}

// Add registers an entry, assigns it an ID, schedules auto-dismiss when
// requested, and notifies subscribers. It returns the assigned ID. Adding to
// a closed Manager is a no-op.
func (m *Manager) Add(e Entry, onClose func()) string {
	m.mu.Lock()
	if m.closed {
		m.mu.Unlock()
		return ""
	}
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	m.entries = append(m.entries, e)
	if onClose != nil {
		m.onClose[e.ID] = onClose
	}
	if e.AutoDismiss && e.Duration > 0 {
		id := e.ID
		m.timers[id] = m.clock.AfterFunc(e.Duration, func() { m.Dismiss(id) })
	}
	ls := m.snapshotListeners()
	m.mu.Unlock()

	for _, l := range ls {
		l(Event{Kind: EventAdded, Entry: e})
	}
	return e.ID
}

// Dismiss removes the entry with the given ID, cancels its pending timer,
// notifies subscribers, then runs the entry's OnClose hook. Unknown IDs are
// ignored.
func (m *Manager) Dismiss(id string) {
	m.mu.Lock()
	idx := -1
	for i, e := range m.entries {
		if e.ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		m.mu.Unlock()
		return
	}
	e := m.entries[idx]
	m.entries = append(m.entries[:idx], m.entries[idx+1:]...)
	if t, ok := m.timers[id]; ok {
		t.Stop()
		delete(m.timers, id)
	}
	onClose := m.onClose[id]
	delete(m.onClose, id)
	ls := m.snapshotListeners()
	m.mu.Unlock()

	for _, l := range ls {
		l(Event{Kind: EventDismissed, Entry: e})
	}
	if onClose != nil {
		onClose()
	}
}

// Entries returns a copy of the live entries in insertion order.
func (m *Manager) Entries() []Entry {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]Entry, len(m.entries))
	copy(out, m.entries)
	return out
}

// Subscribe registers a listener and returns its unsubscribe function.
// Callers must unsubscribe on teardown to avoid leaking the listener
// reference.
func (m *Manager) Subscribe(l Listener) (unsubscribe func()) {
	m.mu.Lock()
	defer m.mu.Unlock()
	id := m.nextSub
	m.nextSub++
	m.listeners[id] = l
	return func() {
		m.mu.Lock()
		defer m.mu.Unlock()
		delete(m.listeners, id)
	}
}

// Close cancels all pending auto-dismiss timers, drops entries and
// listeners, and marks the Manager unusable. Pending timers must not fire
// after Close so no callback references torn-down state.
func (m *Manager) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return
	}
	m.closed = true
	for id, t := range m.timers {
		t.Stop()
		delete(m.timers, id)
	}
	m.entries = nil
	m.onClose = map[string]func(){}
	m.listeners = map[int]Listener{}
}

func (m *Manager) snapshotListeners() []Listener {
	out := make([]Listener, 0, len(m.listeners))
	for _, l := range m.listeners {
		out = append(out, l)
	}
	return out
}

var _ forma.FeedbackSink = (*Manager)(nil)
