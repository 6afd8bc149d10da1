package command

import "github.com/nerrad567/gray-logic-hub/internal/device"

type socketAction int

const (
	socketOn socketAction = iota
	socketOff
	socketToggle
)

// SocketCommand operates the smart socket.
type SocketCommand struct {
	action socketAction
	socket slot[device.Socket]
}

// SocketOn returns a command that switches the socket on.
func SocketOn() *SocketCommand { return &SocketCommand{action: socketOn} }

// SocketOff returns a command that switches the socket off.
func SocketOff() *SocketCommand { return &SocketCommand{action: socketOff} }

// SocketToggle returns a command that flips the socket.
func SocketToggle() *SocketCommand { return &SocketCommand{action: socketToggle} }

// Name implements Command.
func (c *SocketCommand) Name() string {
	switch c.action {
	case socketOn:
		return "Turn Smart Socket on"
	case socketOff:
		return "Turn Smart Socket off"
	default:
		return "Toggle Smart Socket"
	}
}

// Category implements Command.
func (c *SocketCommand) Category() Category { return CategorySocket }

// Bind implements Command.
func (c *SocketCommand) Bind(r Resolver) error { return c.socket.bind(r.Socket()) }

// Bound implements Command.
func (c *SocketCommand) Bound() bool { return c.socket.bound() }

func (c *SocketCommand) unbind() { c.socket.reset() }

// Execute implements Command.
func (c *SocketCommand) Execute() Result {
	s := c.socket.get(c.Name())
	switch c.action {
	case socketOn:
		s.TurnOn()
	case socketOff:
		s.TurnOff()
	case socketToggle:
		s.Toggle()
	}
	return result(c, s, done)
}
