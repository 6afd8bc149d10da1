// Package strategy provides the observer-side Strategy Builder.
//
// A User subscribes to a hub, keeps a replica of the latest catalog it was
// sent, and builds a strategy: an ordered list of catalog indices. Running
// the strategy executes the referenced commands in order against the live
// devices.
//
// State machine:
//
//	┌────────────┐   Finish() / Finish pick   ┌────────────┐   run    ┌────────┐
//	│ Collecting │ ──────────────────────────▶│ Executing  │ ───────▶ │  Done  │
//	└────────────┘                            └────────────┘          └────────┘
//	   ▲     │ Select(i)
//	   └─────┘
//
// Collecting accepts Select calls. Termination is an explicit signal
// (Finish, or the Finish pick in RunAll), never a catalog index, so every
// catalog slot remains a real command. Done is terminal.
//
// Run executes the recorded strategy without terminating it, so a user can
// try a partial strategy and keep adding to it.
//
// # Key Types
//
//   - User: the observer and strategy builder
//   - Pick: one step of a RunAll script (Add(i) or FinishPick())
//   - Execution: record of one strategy run, persisted by SQLiteRepository
//   - IDGenerator: explicit source of observer and execution identifiers
//
// # Thread Safety
//
// A User is not safe for concurrent use. The hub calls Update from the
// goroutine that calls Notify.
package strategy
