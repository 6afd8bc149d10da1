package device

// Device is a single appliance owned by the hub.
//
// Each variant answers the two metadata queries through its Accept
// methods, which call back into the visitor with the variant-specific
// response. State returns a snapshot for telemetry; it never exposes the
// device's internals for mutation.
type Device interface {
	// Kind returns the variant tag.
	Kind() Kind

	// AcceptVersion reports the device's version to the visitor.
	AcceptVersion(v *VersionVisitor)

	// AcceptOperations reports the device's operation names to the visitor.
	AcceptOperations(v *OperationsVisitor)

	// State returns a copy of the device's current state.
	State() State
}

// Kind identifies a device variant.
type Kind string

// Kind constants.
const (
	KindControl       Kind = "control"
	KindSocket        Kind = "socket"
	KindLight         Kind = "light"
	KindFireAlarm     Kind = "fire_alarm"
	KindSecurityAlarm Kind = "security_alarm"
	KindCoffeeMachine Kind = "coffee_machine"
	KindAudioPlayer   Kind = "audio_player"
)

// AllKinds returns every device kind in hub slot order.
func AllKinds() []Kind {
	return []Kind{
		KindControl,
		KindSocket,
		KindLight,
		KindFireAlarm,
		KindSecurityAlarm,
		KindCoffeeMachine,
		KindAudioPlayer,
	}
}

// Version is the identifier/version tag a device reports.
// It is fixed when the device is constructed.
type Version struct {
	Device string `json:"device"`
	Tag    string `json:"tag"`
}

// String renders the version as "<device> v.<tag>".
func (v Version) String() string {
	return v.Device + " v." + v.Tag
}

// State holds a device state snapshot as a JSON map.
//
// Examples:
//   - Light: {"level": 75}
//   - Coffee machine: {"regime": "latte"}
//   - Audio player: {"on": true, "song": "Roots to Branches"}
type State map[string]any

// Status is the outcome of an operation that reports back to the caller.
type Status string

// Status constants.
const (
	// StatusOK means the operation did what was asked.
	StatusOK Status = "ok"

	// StatusNotReady means the device could not act in its current state
	// (machine off, player off, no song). It is informational, not a failure.
	StatusNotReady Status = "not_ready"
)

// Report is the informational outcome of a device operation.
type Report struct {
	Status  Status `json:"status"`
	Message string `json:"message,omitempty"`
}

// Ready reports whether the device acted on the operation.
func (r Report) Ready() bool {
	return r.Status == StatusOK
}

func ok(msg string) Report {
	return Report{Status: StatusOK, Message: msg}
}

func notReady(msg string) Report {
	return Report{Status: StatusNotReady, Message: msg}
}

// wrap normalises n into [0, size). Negative inputs wrap from the top.
func wrap(n, size int) int {
	return ((n % size) + size) % size
}
