package command

import (
	"github.com/nerrad567/gray-logic-hub/internal/device"
)

// Command is a parameterised operation bound to exactly one device.
type Command interface {
	// Name returns a human-readable label, e.g. "Increase light by 50".
	Name() string

	// Category returns the family tag the hub routes on.
	Category() Category

	// Bind attaches the command to its device through the resolver.
	// It returns ErrAlreadyBound on a second call.
	Bind(r Resolver) error

	// Bound reports whether Bind has succeeded.
	Bound() bool

	// Execute performs the operation and reports what happened.
	// It panics if the command was never bound.
	Execute() Result
}

// Category identifies a command family.
type Category string

// Category constants.
const (
	CategorySocket        Category = "socket"
	CategoryLight         Category = "light"
	CategoryFireAlarm     Category = "fire_alarm"
	CategorySecurityAlarm Category = "security_alarm"
	CategoryCoffeeMachine Category = "coffee_machine"
	CategoryAudioPlayer   Category = "audio_player"
	CategoryControl       Category = "control"
	CategoryComposite     Category = "composite"
)

// Resolver gives commands typed access to the hub's devices.
//
// Each accessor returns the hub's single device of that family, or nil if
// the hub has none.
type Resolver interface {
	Socket() *device.Socket
	Light() *device.Light
	FireAlarm() *device.FireAlarm
	SecurityAlarm() *device.SecurityAlarm
	CoffeeMachine() *device.CoffeeMachine
	AudioPlayer() *device.AudioPlayer
	Control() *device.Control
}

// Scope narrows r to the single device a category targets. Every other
// accessor of the returned resolver yields nil, so a command that reaches
// for a device outside its family fails to bind with ErrNoDevice.
// CategoryComposite gets r unchanged. ok is false for an unknown category.
func Scope(r Resolver, c Category) (scoped Resolver, ok bool) {
	var s scopedResolver
	switch c {
	case CategorySocket:
		s.socket = r.Socket()
	case CategoryLight:
		s.light = r.Light()
	case CategoryFireAlarm:
		s.fire = r.FireAlarm()
	case CategorySecurityAlarm:
		s.security = r.SecurityAlarm()
	case CategoryCoffeeMachine:
		s.coffee = r.CoffeeMachine()
	case CategoryAudioPlayer:
		s.audio = r.AudioPlayer()
	case CategoryControl:
		s.control = r.Control()
	case CategoryComposite:
		return r, true
	default:
		return nil, false
	}
	return s, true
}

type scopedResolver struct {
	socket   *device.Socket
	light    *device.Light
	fire     *device.FireAlarm
	security *device.SecurityAlarm
	coffee   *device.CoffeeMachine
	audio    *device.AudioPlayer
	control  *device.Control
}

func (s scopedResolver) Socket() *device.Socket               { return s.socket }
func (s scopedResolver) Light() *device.Light                 { return s.light }
func (s scopedResolver) FireAlarm() *device.FireAlarm         { return s.fire }
func (s scopedResolver) SecurityAlarm() *device.SecurityAlarm { return s.security }
func (s scopedResolver) CoffeeMachine() *device.CoffeeMachine { return s.coffee }
func (s scopedResolver) AudioPlayer() *device.AudioPlayer     { return s.audio }
func (s scopedResolver) Control() *device.Control             { return s.control }

// Result describes one execution of a command.
type Result struct {
	Command  string           `json:"command"`
	Category Category         `json:"category"`
	Device   device.Kind      `json:"device,omitempty"`
	Status   device.Status    `json:"status"`
	Message  string           `json:"message,omitempty"`
	State    device.State     `json:"state,omitempty"`
	Versions []device.Version `json:"versions,omitempty"`
	Children []Result         `json:"children,omitempty"`
}

// Ready reports whether the command completed without a not-ready report.
func (r Result) Ready() bool {
	return r.Status == device.StatusOK
}

// Catalog is the ordered list of registered commands.
//
// The hub only ever appends to it. Observers receive the hub's catalog by
// value; the backing array is shared and must be treated as read-only.
type Catalog []Command

// Len returns the number of commands.
func (c Catalog) Len() int { return len(c) }

// At returns the command at index i, or false if i is out of range.
func (c Catalog) At(i int) (Command, bool) {
	if i < 0 || i >= len(c) {
		return nil, false
	}
	return c[i], true
}

// Names returns the command names in catalog order.
func (c Catalog) Names() []string {
	names := make([]string, len(c))
	for i, cmd := range c {
		names[i] = cmd.Name()
	}
	return names
}

// Entry is the serialisable view of one catalog slot.
type Entry struct {
	Index    int      `json:"index"`
	Name     string   `json:"name"`
	Category Category `json:"category"`
}

// Entries returns the catalog as serialisable entries.
func (c Catalog) Entries() []Entry {
	out := make([]Entry, len(c))
	for i, cmd := range c {
		out[i] = Entry{Index: i, Name: cmd.Name(), Category: cmd.Category()}
	}
	return out
}

// slot holds the device a command is bound to.
type slot[D any] struct {
	dev *D
}

func (s *slot[D]) bind(d *D) error {
	if s.dev != nil {
		return ErrAlreadyBound
	}
	if d == nil {
		return ErrNoDevice
	}
	s.dev = d
	return nil
}

func (s *slot[D]) bound() bool { return s.dev != nil }

func (s *slot[D]) reset() { s.dev = nil }

// unbinder is implemented by this package's commands so a macro can undo
// the bindings of earlier steps when a later one fails.
type unbinder interface {
	unbind()
}

// get returns the bound device. Executing an unbound command is a
// programming error, so it panics rather than returning an error.
func (s *slot[D]) get(name string) *D {
	if s.dev == nil {
		panic("command: " + name + " executed before binding")
	}
	return s.dev
}

// result builds the Result for a single-device command.
func result(c Command, d device.Device, rep device.Report) Result {
	return Result{
		Command:  c.Name(),
		Category: c.Category(),
		Device:   d.Kind(),
		Status:   rep.Status,
		Message:  rep.Message,
		State:    d.State(),
	}
}

// done is the report for operations that always succeed silently.
var done = device.Report{Status: device.StatusOK}
