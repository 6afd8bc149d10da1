package command

import "errors"

// Domain errors for the command package.
//
// These errors can be checked using errors.Is() for error handling:
//
//	if errors.Is(err, command.ErrAlreadyBound) {
//	    // command was registered twice
//	}
var (
	// ErrAlreadyBound is returned when Bind is called on a bound command.
	ErrAlreadyBound = errors.New("command: already bound")

	// ErrNoDevice is returned when the resolver has no device for the
	// command's family.
	ErrNoDevice = errors.New("command: no device for category")

	// ErrNoRoute is returned when a command's category targets no device
	// family.
	ErrNoRoute = errors.New("command: no route for category")

	// ErrDuplicateStep is returned when a macro contains the same command
	// instance more than once.
	ErrDuplicateStep = errors.New("command: step appears twice")

	// ErrEmptyMacro is returned when a macro with no children is bound.
	ErrEmptyMacro = errors.New("command: macro has no steps")

	// ErrUnknownCommand is returned by Build for an unrecognised command key.
	ErrUnknownCommand = errors.New("command: unknown command")

	// ErrInvalidSpec is returned by Build when a spec is missing a required
	// parameter or carries an unusable one.
	ErrInvalidSpec = errors.New("command: invalid spec")
)
