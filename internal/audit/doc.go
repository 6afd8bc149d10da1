// Package audit records the hub's lifecycle events in the audit_logs table
// and lists them back for the HTTP API.
//
// # Architecture
//
//	┌──────────┐  RecordEvent   ┌──────────┐  Create   ┌────────────┐
//	│   Hub    │───────────────▶│ Recorder │──────────▶│ audit_logs │
//	└──────────┘                └──────────┘           └─────┬──────┘
//	                                                         │ List
//	                                                   ┌─────▼──────┐
//	                                                   │ GET /audit │
//	                                                   └────────────┘
//
// # Key Types
//
//   - AuditLog: one audit trail entry
//   - Filter: action, entity and pagination filter for List
//   - SQLiteRepository: persistence over the history database
//   - Recorder: hub.EventSink that turns hub events into audit entries
//
// # Thread Safety
//
// SQLiteRepository is safe for concurrent use. Recorder writes
// synchronously and holds no state beyond its repository and logger.
package audit
