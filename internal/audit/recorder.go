package audit

import (
	"context"
	"time"

	"github.com/nerrad567/gray-logic-hub/internal/hub"
)

// sourceHub is the Source of entries written by Recorder.
const sourceHub = "hub"

// writeTimeout bounds a single audit insert.
const writeTimeout = 5 * time.Second

// Logger is the logging interface used by the recorder.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}

type noopLogger struct{}

func (noopLogger) Debug(string, ...any) {}
func (noopLogger) Info(string, ...any)  {}
func (noopLogger) Warn(string, ...any)  {}
func (noopLogger) Error(string, ...any) {}

// Recorder writes hub events to the audit trail. It implements
// hub.EventSink. Write failures are logged and otherwise ignored so a
// broken database never blocks registration or notification.
type Recorder struct {
	repo   Repository
	logger Logger
}

// NewRecorder creates a recorder writing through repo.
func NewRecorder(repo Repository) *Recorder {
	return &Recorder{repo: repo, logger: noopLogger{}}
}

// SetLogger sets the logger used for write failures.
func (r *Recorder) SetLogger(l Logger) {
	if l != nil {
		r.logger = l
	}
}

// RecordEvent implements hub.EventSink.
func (r *Recorder) RecordEvent(e hub.Event) {
	log := FromEvent(e)
	if log == nil {
		r.logger.Debug("ignoring unknown hub event", "type", e.Type)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), writeTimeout)
	defer cancel()
	if err := r.repo.Create(ctx, log); err != nil {
		r.logger.Error("writing audit log", "action", log.Action, "entity_id", log.EntityID, "error", err)
	}
}

// FromEvent converts a hub event to an audit entry. It returns nil for
// event types it does not know.
func FromEvent(e hub.Event) *AuditLog {
	log := &AuditLog{
		Source:    sourceHub,
		CreatedAt: e.Timestamp,
	}

	switch e.Type {
	case hub.EventCommandRegistered:
		log.Action = ActionRegister
		log.EntityType = EntityCommand
		log.EntityID = e.Command
		log.Details = map[string]any{"category": string(e.Category), "index": e.Index}
	case hub.EventCommandRejected:
		log.Action = ActionReject
		log.EntityType = EntityCommand
		log.EntityID = e.Command
		log.Details = map[string]any{"category": string(e.Category)}
		if e.Err != nil {
			log.Details["error"] = e.Err.Error()
		}
	case hub.EventObserverAttached:
		log.Action = ActionAttach
		log.EntityType = EntityObserver
		log.EntityID = e.ObserverID
		log.UserID = e.ObserverID
	case hub.EventObserverDetached:
		log.Action = ActionDetach
		log.EntityType = EntityObserver
		log.EntityID = e.ObserverID
		log.UserID = e.ObserverID
	case hub.EventCatalogNotified:
		log.Action = ActionNotify
		log.EntityType = EntityCatalog
		log.Details = map[string]any{"observers": e.Observers}
	default:
		return nil
	}
	return log
}
