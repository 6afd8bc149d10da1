package command

import (
	"fmt"

	"github.com/nerrad567/gray-logic-hub/internal/device"
)

type lightAction int

const (
	lightOn lightAction = iota
	lightOff
	lightIncrease
	lightDecrease
)

// LightCommand operates the dimmable light. The level or step is fixed
// when the command is created.
type LightCommand struct {
	action lightAction
	arg    int
	light  slot[device.Light]
}

// LightOn returns a command that sets the light to level (mod 101).
func LightOn(level int) *LightCommand {
	return &LightCommand{action: lightOn, arg: level}
}

// LightOff returns a command that sets the light level to zero.
func LightOff() *LightCommand { return &LightCommand{action: lightOff} }

// LightIncrease returns a command that raises the level by `by`, wrapping
// past the maximum.
func LightIncrease(by int) *LightCommand {
	return &LightCommand{action: lightIncrease, arg: by}
}

// LightDecrease returns a command that lowers the level by `by`, flooring
// at zero.
func LightDecrease(by int) *LightCommand {
	return &LightCommand{action: lightDecrease, arg: by}
}

// Name implements Command.
func (c *LightCommand) Name() string {
	switch c.action {
	case lightOn:
		if c.arg == device.DefaultLevel {
			return "Turn Smart Light on"
		}
		return fmt.Sprintf("Turn Smart Light on at %d", c.arg)
	case lightOff:
		return "Turn Smart Light off"
	case lightIncrease:
		return fmt.Sprintf("Increase light by %d", c.arg)
	default:
		return fmt.Sprintf("Decrease light by %d", c.arg)
	}
}

// Category implements Command.
func (c *LightCommand) Category() Category { return CategoryLight }

// Bind implements Command.
func (c *LightCommand) Bind(r Resolver) error { return c.light.bind(r.Light()) }

// Bound implements Command.
func (c *LightCommand) Bound() bool { return c.light.bound() }

func (c *LightCommand) unbind() { c.light.reset() }

// Execute implements Command.
func (c *LightCommand) Execute() Result {
	l := c.light.get(c.Name())
	switch c.action {
	case lightOn:
		l.On(c.arg)
	case lightOff:
		l.Off()
	case lightIncrease:
		l.Increase(c.arg)
	case lightDecrease:
		l.Decrease(c.arg)
	}
	return result(c, l, done)
}
