// Package command provides the Command Binding Layer for Gray Logic Hub.
//
// A command is a first-class, parameterised operation on exactly one
// device. Commands are created unbound, handed to the hub, and bound by the
// hub to the device their family targets. After binding a command can be
// executed any number of times; it never changes target.
//
// Architecture:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│                       Hub.Register(cmd)                      │
//	│  Scope(hub, cmd.Category()) ──▶ cmd.Bind(scoped)             │
//	│                                  │                           │
//	│          ┌───────────────────────┼───────────────────────┐   │
//	│          ▼                       ▼                       ▼   │
//	│   SocketCommand            LightCommand      ...    Macro   │
//	│   resolver.Socket()        resolver.Light()    (binds each  │
//	│                                                   child)     │
//	│          │                       │                       │   │
//	│          ▼                       ▼                       ▼   │
//	│      Execute() ──▶ Result{status, message, state}            │
//	└─────────────────────────────────────────────────────────────┘
//
// # Key Types
//
//   - Command: the interface every command implements
//   - Category: the family tag the hub routes on
//   - Resolver: typed access to the hub's devices, one accessor per family
//   - Result: what an execution did, returned instead of printed
//   - Catalog: the ordered, append-only list of registered commands
//   - Spec: declarative command description used by the config catalog
//
// # Binding
//
// Each family's Bind picks its own device from the Resolver, so routing
// never inspects the concrete command type. Scope hands a command a
// resolver holding only its category's device; a command that reaches for
// another family gets nil and fails with ErrNoDevice. Binding twice returns
// ErrAlreadyBound. Executing a command that was never bound is a
// programming error and panics.
//
// # Thread Safety
//
// Commands share their device with every other command of the same family
// and are not safe for concurrent execution.
package command
