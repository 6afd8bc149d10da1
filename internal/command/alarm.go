package command

import "github.com/nerrad567/gray-logic-hub/internal/device"

// FireAlarmCommand arms or disarms the fire alarm.
type FireAlarmCommand struct {
	on    bool
	alarm slot[device.FireAlarm]
}

// FireAlarmOn returns a command that raises the fire alarm.
func FireAlarmOn() *FireAlarmCommand { return &FireAlarmCommand{on: true} }

// FireAlarmOff returns a command that clears the fire alarm.
func FireAlarmOff() *FireAlarmCommand { return &FireAlarmCommand{} }

// Name implements Command.
func (c *FireAlarmCommand) Name() string {
	if c.on {
		return "Set fire alarm on"
	}
	return "Set fire alarm off"
}

// Category implements Command.
func (c *FireAlarmCommand) Category() Category { return CategoryFireAlarm }

// Bind implements Command.
func (c *FireAlarmCommand) Bind(r Resolver) error { return c.alarm.bind(r.FireAlarm()) }

// Bound implements Command.
func (c *FireAlarmCommand) Bound() bool { return c.alarm.bound() }

func (c *FireAlarmCommand) unbind() { c.alarm.reset() }

// Execute implements Command.
func (c *FireAlarmCommand) Execute() Result {
	a := c.alarm.get(c.Name())
	if c.on {
		a.On()
	} else {
		a.Off()
	}
	return result(c, a, done)
}

// SecurityAlarmCommand arms or disarms the security alarm.
type SecurityAlarmCommand struct {
	on    bool
	alarm slot[device.SecurityAlarm]
}

// SecurityAlarmOn returns a command that raises the security alarm.
func SecurityAlarmOn() *SecurityAlarmCommand { return &SecurityAlarmCommand{on: true} }

// SecurityAlarmOff returns a command that clears the security alarm.
func SecurityAlarmOff() *SecurityAlarmCommand { return &SecurityAlarmCommand{} }

// Name implements Command.
func (c *SecurityAlarmCommand) Name() string {
	if c.on {
		return "Set security alarm on"
	}
	return "Set security alarm off"
}

// Category implements Command.
func (c *SecurityAlarmCommand) Category() Category { return CategorySecurityAlarm }

// Bind implements Command.
func (c *SecurityAlarmCommand) Bind(r Resolver) error {
	return c.alarm.bind(r.SecurityAlarm())
}

// Bound implements Command.
func (c *SecurityAlarmCommand) Bound() bool { return c.alarm.bound() }

func (c *SecurityAlarmCommand) unbind() { c.alarm.reset() }

// Execute implements Command.
func (c *SecurityAlarmCommand) Execute() Result {
	a := c.alarm.get(c.Name())
	if c.on {
		a.On()
	} else {
		a.Off()
	}
	return result(c, a, done)
}
