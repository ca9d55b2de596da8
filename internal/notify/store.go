// Package notify holds the in-memory queue of user-facing feedback
// messages. Notifications are transient: created by whatever action wants
// to surface feedback, dismissed individually or all at once by the user.
package notify

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// Severity classifies a notification for display.
type Severity string

const (
	SeveritySuccess Severity = "success"
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
	SeverityInfo    Severity = "info"
)

// Notification is a single user-dismissible feedback message.
type Notification struct {
	ID        string    `json:"id"`
	Severity  Severity  `json:"severity"`
	Title     string    `json:"title"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"created_at"`
}

// MaxQueued bounds the queue. When a push would exceed it, the oldest
// notifications are evicted first (insertion order).
const MaxQueued = 100

// Store is the notification queue, newest first. It owns its slice of
// state exclusively; readers get copies.
type Store struct {
	mu    sync.RWMutex
	queue []Notification
	now   func() time.Time
}

// NewStore creates an empty notification store.
func NewStore() *Store {
	return &Store{now: time.Now}
}

// Push assigns a new ID and timestamp and prepends the notification.
// It returns the stored notification.
func (s *Store) Push(sev Severity, title, message string) Notification {
	n := Notification{
		ID:        uuid.New().String(),
		Severity:  sev,
		Title:     title,
		Message:   message,
		CreatedAt: s.now().UTC(),
	}

	s.mu.Lock()
	s.queue = append([]Notification{n}, s.queue...)
	if len(s.queue) > MaxQueued {
		s.queue = s.queue[:MaxQueued]
	}
	s.mu.Unlock()

	return n
}

// Success pushes a success notification.
func (s *Store) Success(title, message string) Notification {
	return s.Push(SeveritySuccess, title, message)
}

// Error pushes an error notification.
func (s *Store) Error(title, message string) Notification {
	return s.Push(SeverityError, title, message)
}

// Remove drops the notification with the given ID. No-op if absent.
func (s *Store) Remove(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := s.queue[:0]
	for _, n := range s.queue {
		if n.ID != id {
			out = append(out, n)
		}
	}
	s.queue = out
}

// Clear empties the queue.
func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.queue = nil
}

// List returns a copy of the queue, newest first.
func (s *Store) List() []Notification {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]Notification(nil), s.queue...)
}

// Len returns the number of queued notifications.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.queue)
}
