// Package hub provides the smart-home Hub: the owner of the device set,
// the command catalog, and the observer list.
//
// Architecture:
//
//	┌──────────────────────────────────────────────────────────────┐
//	│                          Hub (hub.go)                         │
//	│                                                               │
//	│  devices: [0 Control, 1 Socket, 2 Light, 3 Fire, 4 Security,  │
//	│            5 Coffee, 6 Audio]                                 │
//	│                                                               │
//	│  Register(cmd) ──▶ Scope(hub, Category) ──▶ cmd.Bind(scoped)   │
//	│        │                                   │                  │
//	│        │ ok                                │ error            │
//	│        ▼                                   ▼                  │
//	│  catalog = append(catalog, cmd)     ErrRejectedCommand        │
//	│                                                               │
//	│  Notify() ──▶ observer[0].Update(catalog)                      │
//	│           ──▶ observer[1].Update(catalog) ...                  │
//	│           ──▶ CatalogPublisher (MQTT snapshot, optional)       │
//	│                                                               │
//	│  EventSink (audit trail, optional) sees every hub event       │
//	└──────────────────────────────────────────────────────────────┘
//
// # Key Types
//
//   - Hub: device set, append-only catalog, observers
//   - Observer: anything that wants catalog updates
//   - Event: a hub lifecycle event delivered to an EventSink
//   - DeviceInfo: read-only view of one device for adapters
//
// # Thread Safety
//
// The catalog and observer list are guarded by a RWMutex so read-only
// adapters (the HTTP API) can inspect the hub from other goroutines.
// Device state and the control device's visitors are guarded by a separate
// mutex; commands mutate devices through Execute, which holds it.
// Notify calls observers without holding any lock, so an observer may read
// the hub from inside Update.
package hub
