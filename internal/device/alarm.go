package device

const (
	fireAlarmVersion     = "11f"
	securityAlarmVersion = "1-12s"
)

// alarm is the on/off flag shared by both alarm systems.
type alarm struct {
	armed bool
}

// On raises the alarm flag.
func (a *alarm) On() { a.armed = true }

// Off clears the alarm flag.
func (a *alarm) Off() { a.armed = false }

// IsOn reports whether the alarm flag is set.
func (a *alarm) IsOn() bool { return a.armed }

func (a *alarm) state() State {
	return State{"alarm": a.armed}
}

func (a *alarm) operations(v *OperationsVisitor) {
	v.report("on()", "off()")
}

// FireAlarm is the fire alarm system. It starts off.
type FireAlarm struct {
	alarm
}

// NewFireAlarm creates a fire alarm that is off.
func NewFireAlarm() *FireAlarm {
	return &FireAlarm{}
}

// Kind implements Device.
func (f *FireAlarm) Kind() Kind { return KindFireAlarm }

// State implements Device.
func (f *FireAlarm) State() State { return f.state() }

// AcceptVersion implements Device.
func (f *FireAlarm) AcceptVersion(v *VersionVisitor) {
	v.report(Version{Device: "Fire alarm system", Tag: fireAlarmVersion})
}

// AcceptOperations implements Device.
func (f *FireAlarm) AcceptOperations(v *OperationsVisitor) { f.operations(v) }

// SecurityAlarm is the intruder alarm system. It behaves exactly like
// FireAlarm and differs only in identity.
type SecurityAlarm struct {
	alarm
}

// NewSecurityAlarm creates a security alarm that is off.
func NewSecurityAlarm() *SecurityAlarm {
	return &SecurityAlarm{}
}

// Kind implements Device.
func (s *SecurityAlarm) Kind() Kind { return KindSecurityAlarm }

// State implements Device.
func (s *SecurityAlarm) State() State { return s.state() }

// AcceptVersion implements Device.
func (s *SecurityAlarm) AcceptVersion(v *VersionVisitor) {
	v.report(Version{Device: "Security alarm system", Tag: securityAlarmVersion})
}

// AcceptOperations implements Device.
func (s *SecurityAlarm) AcceptOperations(v *OperationsVisitor) { s.operations(v) }
