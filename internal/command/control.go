package command

import "github.com/nerrad567/gray-logic-hub/internal/device"

// DescribeDevicesCommand asks the hub's control device for the version of
// every device. It changes no device state.
type DescribeDevicesCommand struct {
	control slot[device.Control]
}

// DescribeDevices returns the meta command that lists device versions.
func DescribeDevices() *DescribeDevicesCommand { return &DescribeDevicesCommand{} }

// Name implements Command.
func (c *DescribeDevicesCommand) Name() string { return "Describe all devices" }

// Category implements Command.
func (c *DescribeDevicesCommand) Category() Category { return CategoryControl }

// Bind implements Command.
func (c *DescribeDevicesCommand) Bind(r Resolver) error { return c.control.bind(r.Control()) }

// Bound implements Command.
func (c *DescribeDevicesCommand) Bound() bool { return c.control.bound() }

func (c *DescribeDevicesCommand) unbind() { c.control.reset() }

// Execute implements Command.
func (c *DescribeDevicesCommand) Execute() Result {
	ctrl := c.control.get(c.Name())
	res := result(c, ctrl, done)
	res.Versions = ctrl.DescribeAll()
	return res
}
