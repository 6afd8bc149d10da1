package command

import "github.com/nerrad567/gray-logic-hub/internal/device"

type audioAction int

const (
	audioOn audioAction = iota
	audioOff
	audioPlay
)

// AudioCommand operates the music centre.
type AudioCommand struct {
	action audioAction
	song   string
	player slot[device.AudioPlayer]
}

// AudioOn returns a command that powers the music centre.
func AudioOn() *AudioCommand { return &AudioCommand{action: audioOn} }

// AudioOff returns a command that cuts power to the music centre.
func AudioOff() *AudioCommand { return &AudioCommand{action: audioOff} }

// PlaySong returns a command that selects title and plays it.
func PlaySong(title string) *AudioCommand {
	return &AudioCommand{action: audioPlay, song: title}
}

// Name implements Command.
func (c *AudioCommand) Name() string {
	switch c.action {
	case audioOn:
		return "Turn music center on"
	case audioOff:
		return "Turn music center off"
	default:
		return "Play \"" + c.song + "\" with the Music center"
	}
}

// Category implements Command.
func (c *AudioCommand) Category() Category { return CategoryAudioPlayer }

// Bind implements Command.
func (c *AudioCommand) Bind(r Resolver) error { return c.player.bind(r.AudioPlayer()) }

// Bound implements Command.
func (c *AudioCommand) Bound() bool { return c.player.bound() }

func (c *AudioCommand) unbind() { c.player.reset() }

// Execute implements Command.
func (c *AudioCommand) Execute() Result {
	p := c.player.get(c.Name())
	switch c.action {
	case audioOn:
		p.TurnOn()
	case audioOff:
		p.TurnOff()
	case audioPlay:
		p.SetSong(c.song)
		return result(c, p, p.Play())
	}
	return result(c, p, done)
}
