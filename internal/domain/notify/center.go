package notify

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/moppie/ops-console/internal/metrics"
)

// Level classifies a notification.
type Level string

const (
	LevelInfo    Level = "info"
	LevelSuccess Level = "success"
	LevelWarning Level = "warning"
	LevelError   Level = "error"
)

// Notification is one transient toast entry.
type Notification struct {
	ID        string    `json:"id"`
	Level     Level     `json:"type"`
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
	Read      bool      `json:"read"`
}

// EventType describes what happened to a notification.
type EventType int

const (
	EventAdded EventType = iota
	EventRemoved
)

// Event is delivered to subscribers on every list change.
type Event struct {
	Type         EventType
	Notification Notification
}

// Center holds the in-memory notification list, most-recent-first.
// Notifications auto-expire after the configured TTL unless dismissed first.
type Center struct {
	mu     sync.Mutex
	ttl    time.Duration
	items  []Notification
	subs   []func(Event)
	timers map[string]*time.Timer

	now func() time.Time
}

// NewCenter creates a center. A zero TTL disables auto-expiry.
func NewCenter(ttl time.Duration) *Center {
	return &Center{
		ttl:    ttl,
		timers: make(map[string]*time.Timer),
		now:    time.Now,
	}
}

// Subscribe registers a callback invoked on every add and remove.
func (c *Center) Subscribe(fn func(Event)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.subs = append(c.subs, fn)
}

// Push creates a notification and schedules its expiry.
func (c *Center) Push(level Level, message string) Notification {
	n := Notification{
		ID:        uuid.NewString(),
		Level:     level,
		Message:   message,
		Timestamp: c.now(),
	}

	c.mu.Lock()
	c.items = append([]Notification{n}, c.items...)
	if c.ttl > 0 {
		id := n.ID
		c.timers[id] = time.AfterFunc(c.ttl, func() {
			c.Dismiss(id)
		})
	}
	subs := append([]func(Event){}, c.subs...)
	c.mu.Unlock()

	metrics.RecordNotification(string(level))
	log.Debug().Str("level", string(level)).Str("message", message).Msg("notification raised")

	for _, fn := range subs {
		fn(Event{Type: EventAdded, Notification: n})
	}
	return n
}

// Info raises an info-level notification.
func (c *Center) Info(message string) Notification { return c.Push(LevelInfo, message) }

// Success raises a success-level notification.
func (c *Center) Success(message string) Notification { return c.Push(LevelSuccess, message) }

// Warning raises a warning-level notification.
func (c *Center) Warning(message string) Notification { return c.Push(LevelWarning, message) }

// Error raises an error-level notification.
func (c *Center) Error(message string) Notification { return c.Push(LevelError, message) }

// Dismiss removes a notification. Dismissing an unknown or already removed
// id is a no-op.
func (c *Center) Dismiss(id string) bool {
	c.mu.Lock()
	idx := c.indexOf(id)
	if idx < 0 {
		c.mu.Unlock()
		return false
	}
	removed := c.items[idx]
	c.items = append(c.items[:idx], c.items[idx+1:]...)
	if timer, ok := c.timers[id]; ok {
		timer.Stop()
		delete(c.timers, id)
	}
	subs := append([]func(Event){}, c.subs...)
	c.mu.Unlock()

	for _, fn := range subs {
		fn(Event{Type: EventRemoved, Notification: removed})
	}
	return true
}

// Clear removes all notifications without firing per-item events.
func (c *Center) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	for id, timer := range c.timers {
		timer.Stop()
		delete(c.timers, id)
	}
	c.items = nil
}

// MarkRead marks one notification as read.
func (c *Center) MarkRead(id string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	idx := c.indexOf(id)
	if idx < 0 {
		return false
	}
	c.items[idx].Read = true
	return true
}

// MarkAllRead marks every notification as read.
func (c *Center) MarkAllRead() {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i := range c.items {
		c.items[i].Read = true
	}
}

// List returns a copy of the notifications, most-recent-first.
func (c *Center) List() []Notification {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]Notification, len(c.items))
	copy(out, c.items)
	return out
}

// Unread returns the number of unread notifications.
func (c *Center) Unread() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	count := 0
	for _, n := range c.items {
		if !n.Read {
			count++
		}
	}
	return count
}

// indexOf must be called with c.mu held.
func (c *Center) indexOf(id string) int {
	for i, n := range c.items {
		if n.ID == id {
			return i
		}
	}
	return -1
}
