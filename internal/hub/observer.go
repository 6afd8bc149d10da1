package hub

import (
	"time"

	"github.com/nerrad567/gray-logic-hub/internal/command"
)

// Observer receives catalog updates from the hub.
//
// Observers are compared by identity, so implementations must be
// comparable (pointer receivers are the usual choice).
type Observer interface {
	// ID returns the observer's identifier, used for logging and audit.
	ID() string

	// Update replaces the observer's view of the catalog. The slice is
	// shared with the hub and every other observer; it must not be modified.
	Update(catalog command.Catalog)
}

// EventType names a hub lifecycle event.
type EventType string

// Event types.
const (
	EventCommandRegistered EventType = "command_registered"
	EventCommandRejected   EventType = "command_rejected"
	EventObserverAttached  EventType = "observer_attached"
	EventObserverDetached  EventType = "observer_detached"
	EventCatalogNotified   EventType = "catalog_notified"
)

// Event is one thing that happened in the hub.
type Event struct {
	Type       EventType
	Command    string
	Category   command.Category
	Index      int // catalog index for registered commands, -1 otherwise
	ObserverID string
	Observers  int // observers reached, for notify events
	Err        error
	Timestamp  time.Time
}

// EventSink receives hub events as they happen. It is called
// synchronously with no hub lock held.
type EventSink interface {
	RecordEvent(e Event)
}

// CatalogPublisher pushes a snapshot of the catalog to an external
// transport after every Notify.
type CatalogPublisher interface {
	PublishCatalog(entries []command.Entry) error
}

// Logger is the logging interface used by the hub.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}

// noopLogger is a logger that does nothing.
type noopLogger struct{}

func (noopLogger) Debug(string, ...any) {}
func (noopLogger) Info(string, ...any)  {}
func (noopLogger) Warn(string, ...any)  {}
func (noopLogger) Error(string, ...any) {}
