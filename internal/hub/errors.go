package hub

import "errors"

// Domain errors for the hub package.
//
// These errors can be checked using errors.Is() for error handling:
//
//	if errors.Is(err, hub.ErrRejectedCommand) {
//	    // catalog is unchanged
//	}
var (
	// ErrRejectedCommand is returned by Register when a command has no
	// route or cannot be bound. The cause is wrapped alongside it.
	ErrRejectedCommand = errors.New("hub: command rejected")

	// errNilCommand is the cause for Register(nil).
	errNilCommand = errors.New("nil command")
)
