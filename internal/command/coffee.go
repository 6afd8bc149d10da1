package command

import (
	"strings"

	"github.com/nerrad567/gray-logic-hub/internal/device"
)

// CoffeeCommand operates the coffee machine.
//
// A brewing command sets its regime and brews in one step. Brewing in the
// OFF regime is allowed and reports not-ready, the same as the device does.
type CoffeeCommand struct {
	off     bool
	regime  device.Regime
	machine slot[device.CoffeeMachine]
}

// CoffeeOff returns a command that switches the machine off.
func CoffeeOff() *CoffeeCommand { return &CoffeeCommand{off: true} }

// MakeCoffee returns a command that selects regime and brews.
func MakeCoffee(regime device.Regime) *CoffeeCommand {
	return &CoffeeCommand{regime: regime}
}

// Name implements Command.
func (c *CoffeeCommand) Name() string {
	if c.off {
		return "Turn the coffee machine off"
	}
	r := c.regime.String()
	return "Make " + strings.ToUpper(r[:1]) + r[1:] + " in the coffee machine"
}

// Category implements Command.
func (c *CoffeeCommand) Category() Category { return CategoryCoffeeMachine }

// Bind implements Command.
func (c *CoffeeCommand) Bind(r Resolver) error { return c.machine.bind(r.CoffeeMachine()) }

// Bound implements Command.
func (c *CoffeeCommand) Bound() bool { return c.machine.bound() }

func (c *CoffeeCommand) unbind() { c.machine.reset() }

// Execute implements Command.
func (c *CoffeeCommand) Execute() Result {
	m := c.machine.get(c.Name())
	if c.off {
		m.Off()
		return result(c, m, done)
	}
	m.SetRegime(int(c.regime))
	return result(c, m, m.Brew())
}
