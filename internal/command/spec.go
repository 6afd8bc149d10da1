package command

import (
	"fmt"

	"github.com/nerrad567/gray-logic-hub/internal/device"
)

// Command keys accepted by Build.
const (
	KeySocketOn         = "socket_on"
	KeySocketOff        = "socket_off"
	KeySocketToggle     = "socket_toggle"
	KeyLightOn          = "light_on"
	KeyLightOff         = "light_off"
	KeyLightIncrease    = "light_increase"
	KeyLightDecrease    = "light_decrease"
	KeyFireAlarmOn      = "fire_alarm_on"
	KeyFireAlarmOff     = "fire_alarm_off"
	KeySecurityAlarmOn  = "security_alarm_on"
	KeySecurityAlarmOff = "security_alarm_off"
	KeyCoffeeOff        = "coffee_off"
	KeyMakeCoffee       = "make_coffee"
	KeyAudioOn          = "audio_on"
	KeyAudioOff         = "audio_off"
	KeyPlaySong         = "play_song"
	KeyDescribeDevices  = "describe_devices"
	KeyMacro            = "macro"
)

// Spec is a declarative description of one command.
//
// Only the fields the command key needs are read:
//   - light_on: Level (default device.DefaultLevel)
//   - light_increase, light_decrease: By (default device.DefaultStep)
//   - make_coffee: Regime (latte, cappucino, espresso, ristretto)
//   - play_song: Song
//   - macro: Name and Children
type Spec struct {
	Command  string
	Level    *int
	By       *int
	Regime   string
	Song     string
	Name     string
	Children []Spec
}

// Build creates an unbound command from spec.
func Build(spec Spec) (Command, error) {
	switch spec.Command {
	case KeySocketOn:
		return SocketOn(), nil
	case KeySocketOff:
		return SocketOff(), nil
	case KeySocketToggle:
		return SocketToggle(), nil
	case KeyLightOn:
		return LightOn(intOr(spec.Level, device.DefaultLevel)), nil
	case KeyLightOff:
		return LightOff(), nil
	case KeyLightIncrease:
		return LightIncrease(intOr(spec.By, device.DefaultStep)), nil
	case KeyLightDecrease:
		return LightDecrease(intOr(spec.By, device.DefaultStep)), nil
	case KeyFireAlarmOn:
		return FireAlarmOn(), nil
	case KeyFireAlarmOff:
		return FireAlarmOff(), nil
	case KeySecurityAlarmOn:
		return SecurityAlarmOn(), nil
	case KeySecurityAlarmOff:
		return SecurityAlarmOff(), nil
	case KeyCoffeeOff:
		return CoffeeOff(), nil
	case KeyMakeCoffee:
		r, ok := device.ParseRegime(spec.Regime)
		if !ok || r == device.RegimeOff {
			return nil, fmt.Errorf("%w: make_coffee regime %q", ErrInvalidSpec, spec.Regime)
		}
		return MakeCoffee(r), nil
	case KeyAudioOn:
		return AudioOn(), nil
	case KeyAudioOff:
		return AudioOff(), nil
	case KeyPlaySong:
		if spec.Song == "" {
			return nil, fmt.Errorf("%w: play_song needs a song", ErrInvalidSpec)
		}
		return PlaySong(spec.Song), nil
	case KeyDescribeDevices:
		return DescribeDevices(), nil
	case KeyMacro:
		return buildMacro(spec)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownCommand, spec.Command)
	}
}

func buildMacro(spec Spec) (Command, error) {
	if spec.Name == "" {
		return nil, fmt.Errorf("%w: macro needs a name", ErrInvalidSpec)
	}
	if len(spec.Children) == 0 {
		return nil, fmt.Errorf("%w: macro %q has no children", ErrInvalidSpec, spec.Name)
	}
	children := make([]Command, 0, len(spec.Children))
	for i, cs := range spec.Children {
		child, err := Build(cs)
		if err != nil {
			return nil, fmt.Errorf("macro %q step %d: %w", spec.Name, i, err)
		}
		children = append(children, child)
	}
	return Macro(spec.Name, children...), nil
}

// BuildAll creates commands for every spec, in order.
func BuildAll(specs []Spec) ([]Command, error) {
	out := make([]Command, 0, len(specs))
	for i, s := range specs {
		cmd, err := Build(s)
		if err != nil {
			return nil, fmt.Errorf("catalog entry %d: %w", i, err)
		}
		out = append(out, cmd)
	}
	return out, nil
}

// DefaultSpecs returns the stock catalog a hub registers when no catalog is
// configured.
func DefaultSpecs() []Spec {
	fifty := 50
	return []Spec{
		{Command: KeySocketOn},
		{Command: KeySocketOff},
		{Command: KeyLightOn},
		{Command: KeyLightOff},
		{Command: KeyLightIncrease, By: &fifty},
		{Command: KeyLightDecrease, By: &fifty},
		{Command: KeyFireAlarmOn},
		{Command: KeyFireAlarmOff},
		{Command: KeySecurityAlarmOn},
		{Command: KeySecurityAlarmOff},
		{Command: KeyMakeCoffee, Regime: "latte"},
		{Command: KeyMakeCoffee, Regime: "cappucino"},
		{Command: KeyMakeCoffee, Regime: "espresso"},
		{Command: KeyMakeCoffee, Regime: "ristretto"},
		{Command: KeyCoffeeOff},
		{Command: KeyAudioOn},
		{Command: KeyAudioOff},
		{Command: KeyPlaySong, Song: "Pink Floyd - Shine on you crazy diamond"},
		{Command: KeyPlaySong, Song: "Jethro Tull - Roots to Branches"},
		{Command: KeyPlaySong, Song: "Mumford and Sons - Little Lion Man"},
	}
}

func intOr(p *int, def int) int {
	if p == nil {
		return def
	}
	return *p
}
