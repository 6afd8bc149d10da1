package device

const (
	lightVersion = "3.11"

	// MaxLevel is the brightest light level.
	MaxLevel = 100

	// levelRange is the number of distinct light levels (0..MaxLevel).
	levelRange = MaxLevel + 1

	// DefaultLevel is the level On uses when the caller has no preference.
	DefaultLevel = 50

	// DefaultStep is the increment Increase and Decrease use by default.
	DefaultStep = 1
)

// Light is a dimmable light. Its level is always within [0, MaxLevel].
//
// Out-of-range inputs are normalised rather than rejected: On and Increase
// wrap modulo 101, Decrease floors at zero.
type Light struct {
	level int
}

// NewLight creates a light that is off (level 0).
func NewLight() *Light {
	return &Light{}
}

// On sets the level to level mod 101.
func (l *Light) On(level int) {
	l.level = wrap(level, levelRange)
}

// Off sets the level to zero.
func (l *Light) Off() {
	l.level = 0
}

// Increase raises the level by d, wrapping past MaxLevel back through zero.
func (l *Light) Increase(d int) {
	l.level = wrap(l.level+d, levelRange)
}

// Decrease lowers the level by d and never goes below zero.
// A negative d raises the level as Increase would.
func (l *Light) Decrease(d int) {
	if d < 0 {
		l.Increase(-d)
		return
	}
	if l.level <= d {
		l.level = 0
		return
	}
	l.level -= d
}

// Level returns the current brightness.
func (l *Light) Level() int { return l.level }

// Kind implements Device.
func (l *Light) Kind() Kind { return KindLight }

// State implements Device.
func (l *Light) State() State {
	return State{"level": l.level}
}

// AcceptVersion implements Device.
func (l *Light) AcceptVersion(v *VersionVisitor) {
	v.report(Version{Device: "Smart light", Tag: lightVersion})
}

// AcceptOperations implements Device.
func (l *Light) AcceptOperations(v *OperationsVisitor) {
	v.report("on(level)", "off()", "increase(by)", "decrease(by)")
}
