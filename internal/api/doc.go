// Package api implements the hub's read-only HTTP introspection server.
//
// Other processes on the host can inspect the hub without joining it as
// observers: device versions, operations and state, the current command
// catalog, persisted strategy executions and the audit trail.
//
//	GET /api/v1/health                      hub + component status
//	GET /api/v1/devices                     every device, slot order
//	GET /api/v1/devices/{index}             one device
//	GET /api/v1/devices/{index}/operations  operation names
//	GET /api/v1/catalog                     registered commands
//	GET /api/v1/executions?observer=&limit= strategy history
//	GET /api/v1/executions/{id}             one execution with step results
//	GET /api/v1/audit?action=&entity_type=  hub audit trail
//
// There are no mutating routes; any other method answers 405.
//
// # Lifecycle
//
//	server, err := api.New(deps)
//	server.Start(ctx)
//	defer server.Close()
//
// # Thread Safety
//
// Handlers run on net/http goroutines. Device reads go through the hub's
// query methods, which serialise with command execution.
package api
