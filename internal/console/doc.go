// Package console is the interactive terminal adapter for one strategy user.
//
//	terminal ──readline──▶ Console.Exec ──▶ strategy.User ──▶ hub.Execute
//	                            │
//	                            └──▶ hub queries (devices, ops)
//
// The console owns all terminal I/O; the hub and strategy packages never
// print. Output text follows the hub's historical console wording
// ("Adding command: ...", "Command #n does not exist!").
//
// # Thread Safety
//
// A Console is used from a single goroutine. The strategy.User it drives
// must not be shared with another goroutine.
package console
