// Package device provides the Device Catalog for Gray Logic Hub.
//
// The catalog is the fixed set of appliances a hub owns for its whole
// lifetime. Each variant keeps its own private state and exposes the
// operations that make sense for it; there is no shared "set property"
// surface and no persistence.
//
// # Architecture
//
//	┌──────────────────────────────────────────────────────────────────┐
//	│                          Device Catalog                           │
//	│                                                                   │
//	│  Socket   Light   FireAlarm   SecurityAlarm   CoffeeMachine       │
//	│  AudioPlayer                                   Control (reflexive)│
//	│      │                                              │             │
//	│      ▼                                              ▼             │
//	│  ┌────────────────────┐                 ┌─────────────────────┐   │
//	│  │  Visitor dispatch  │◀────────────────│  Source.Devices()   │   │
//	│  │   (visitor.go)     │                 │  (hub device set)   │   │
//	│  │ • VersionVisitor   │                 └─────────────────────┘   │
//	│  │ • OperationsVisitor│                                           │
//	│  └────────────────────┘                                           │
//	└──────────────────────────────────────────────────────────────────┘
//
// # Key Types
//
//   - Device: the interface every variant implements
//   - Kind: the variant tag (socket, light, fire_alarm, ...)
//   - Version: immutable identifier/version tag reported by a device
//   - Report: informational outcome of operations that may not be ready
//   - State: read-only snapshot of a device's state for telemetry
//
// # Queries
//
// Version and capability queries use double dispatch. A visitor calls the
// device's Accept method for its query kind, passing itself, and the
// device answers by calling back into the visitor. Adding a variant means
// implementing the Accept methods; the visitors never change.
//
//	var versions device.VersionVisitor
//	v := versions.Visit(light)      // "Smart light v.3.11"
//
//	var ops device.OperationsVisitor
//	names := ops.Visit(light)       // ["on(level)", "off()", ...]
//
// # Thread Safety
//
// Devices are not safe for concurrent use. The hub owns every device and
// mutates them from a single goroutine.
package device
