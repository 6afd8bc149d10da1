package device

// socketVersion is the firmware tag of the smart socket.
const socketVersion = "13"

// Socket is a switchable power socket. It starts powered on.
type Socket struct {
	on bool
}

// NewSocket creates a socket in the on position.
func NewSocket() *Socket {
	return &Socket{on: true}
}

// TurnOn powers the socket.
func (s *Socket) TurnOn() { s.on = true }

// TurnOff cuts power to the socket.
func (s *Socket) TurnOff() { s.on = false }

// Toggle flips the socket between on and off.
func (s *Socket) Toggle() { s.on = !s.on }

// IsOn reports whether the socket is powered.
func (s *Socket) IsOn() bool { return s.on }

// Kind implements Device.
func (s *Socket) Kind() Kind { return KindSocket }

// State implements Device.
func (s *Socket) State() State {
	return State{"on": s.on}
}

// AcceptVersion implements Device.
func (s *Socket) AcceptVersion(v *VersionVisitor) {
	v.report(Version{Device: "Smart socket", Tag: socketVersion})
}

// AcceptOperations implements Device.
func (s *Socket) AcceptOperations(v *OperationsVisitor) {
	v.report("turnOn()", "turnOff()", "toggle()")
}
