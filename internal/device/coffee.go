package device

import "fmt"

const coffeeMachineVersion = "5.55"

// Regime is a coffee machine brewing mode.
type Regime int

// Regime constants, in the order SetRegime counts them.
const (
	RegimeOff Regime = iota
	RegimeLatte
	RegimeCappucino
	RegimeEspresso
	RegimeRistretto

	// regimeCount is the number of defined regimes.
	regimeCount
)

// AllRegimes returns every regime in numeric order.
func AllRegimes() []Regime {
	return []Regime{RegimeOff, RegimeLatte, RegimeCappucino, RegimeEspresso, RegimeRistretto}
}

// String returns the lower-case regime name.
func (r Regime) String() string {
	switch r {
	case RegimeOff:
		return "off"
	case RegimeLatte:
		return "latte"
	case RegimeCappucino:
		return "cappucino"
	case RegimeEspresso:
		return "espresso"
	case RegimeRistretto:
		return "ristretto"
	default:
		return fmt.Sprintf("regime(%d)", int(r))
	}
}

// ParseRegime converts a regime name to a Regime.
func ParseRegime(s string) (Regime, bool) {
	for _, r := range AllRegimes() {
		if r.String() == s {
			return r, true
		}
	}
	return RegimeOff, false
}

// CoffeeMachine is a multi-regime beverage machine. It starts off.
type CoffeeMachine struct {
	regime Regime
}

// NewCoffeeMachine creates a coffee machine in the off regime.
func NewCoffeeMachine() *CoffeeMachine {
	return &CoffeeMachine{regime: RegimeOff}
}

// SetRegime selects regime r mod 5, so the regime is always a defined one.
func (c *CoffeeMachine) SetRegime(r int) {
	c.regime = Regime(wrap(r, int(regimeCount)))
}

// Off returns the machine to the off regime.
func (c *CoffeeMachine) Off() {
	c.regime = RegimeOff
}

// Regime returns the current regime.
func (c *CoffeeMachine) Regime() Regime { return c.regime }

// Brew makes a drink in the current regime.
//
// When the machine is off it reports StatusNotReady and changes nothing.
func (c *CoffeeMachine) Brew() Report {
	if c.regime == RegimeOff {
		return notReady("machine is off")
	}
	return ok(fmt.Sprintf("making %s... done", c.regime))
}

// Kind implements Device.
func (c *CoffeeMachine) Kind() Kind { return KindCoffeeMachine }

// State implements Device.
func (c *CoffeeMachine) State() State {
	return State{"regime": c.regime.String()}
}

// AcceptVersion implements Device.
func (c *CoffeeMachine) AcceptVersion(v *VersionVisitor) {
	v.report(Version{Device: "Coffee machine", Tag: coffeeMachineVersion})
}

// AcceptOperations implements Device.
func (c *CoffeeMachine) AcceptOperations(v *OperationsVisitor) {
	v.report("setRegime(regime)", "off()", "makeCoffee()")
}
