package device

import "errors"

// Domain errors for the device package.
//
// These errors can be checked using errors.Is() for error handling:
//
//	if errors.Is(err, device.ErrIndexOutOfRange) {
//	    // ask for another index
//	}
var (
	// ErrIndexOutOfRange is returned when a reflexive query names a device
	// index outside the hub's device set.
	ErrIndexOutOfRange = errors.New("device: index out of range")

	// ErrNoSource is returned when the control device has no device set to
	// forward queries to.
	ErrNoSource = errors.New("device: control device has no source")
)
