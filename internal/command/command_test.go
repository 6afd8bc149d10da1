package command

import (
	"errors"
	"strings"
	"testing"

	"github.com/nerrad567/gray-logic-hub/internal/device"
)

// fakeResolver is a hand-built device set. Nil fields model a hub that has
// no device of that family.
type fakeResolver struct {
	socket   *device.Socket
	light    *device.Light
	fire     *device.FireAlarm
	security *device.SecurityAlarm
	coffee   *device.CoffeeMachine
	audio    *device.AudioPlayer
	control  *device.Control
}

func newFakeResolver() *fakeResolver {
	return &fakeResolver{
		socket:   device.NewSocket(),
		light:    device.NewLight(),
		fire:     device.NewFireAlarm(),
		security: device.NewSecurityAlarm(),
		coffee:   device.NewCoffeeMachine(),
		audio:    device.NewAudioPlayer(),
	}
}

func (f *fakeResolver) Socket() *device.Socket               { return f.socket }
func (f *fakeResolver) Light() *device.Light                 { return f.light }
func (f *fakeResolver) FireAlarm() *device.FireAlarm         { return f.fire }
func (f *fakeResolver) SecurityAlarm() *device.SecurityAlarm { return f.security }
func (f *fakeResolver) CoffeeMachine() *device.CoffeeMachine { return f.coffee }
func (f *fakeResolver) AudioPlayer() *device.AudioPlayer     { return f.audio }
func (f *fakeResolver) Control() *device.Control             { return f.control }

func (f *fakeResolver) Devices() []device.Device {
	return []device.Device{f.control, f.socket, f.light, f.fire, f.security, f.coffee, f.audio}
}

func mustBind(t *testing.T, c Command, r Resolver) {
	t.Helper()
	if err := c.Bind(r); err != nil {
		t.Fatalf("Bind(%s) error = %v", c.Name(), err)
	}
}

func TestCommands_Category(t *testing.T) {
	tests := []struct {
		cmd  Command
		want Category
	}{
		{SocketOn(), CategorySocket},
		{SocketToggle(), CategorySocket},
		{LightOn(10), CategoryLight},
		{LightDecrease(1), CategoryLight},
		{FireAlarmOn(), CategoryFireAlarm},
		{SecurityAlarmOff(), CategorySecurityAlarm},
		{CoffeeOff(), CategoryCoffeeMachine},
		{MakeCoffee(device.RegimeLatte), CategoryCoffeeMachine},
		{AudioOn(), CategoryAudioPlayer},
		{PlaySong("x"), CategoryAudioPlayer},
		{DescribeDevices(), CategoryControl},
		{Macro("m", SocketOn()), CategoryComposite},
	}

	for _, tt := range tests {
		t.Run(tt.cmd.Name(), func(t *testing.T) {
			if got := tt.cmd.Category(); got != tt.want {
				t.Errorf("Category() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestCommands_Names(t *testing.T) {
	tests := []struct {
		cmd  Command
		want string
	}{
		{SocketOn(), "Turn Smart Socket on"},
		{SocketOff(), "Turn Smart Socket off"},
		{LightOn(device.DefaultLevel), "Turn Smart Light on"},
		{LightOn(75), "Turn Smart Light on at 75"},
		{LightIncrease(50), "Increase light by 50"},
		{LightDecrease(50), "Decrease light by 50"},
		{FireAlarmOn(), "Set fire alarm on"},
		{SecurityAlarmOff(), "Set security alarm off"},
		{MakeCoffee(device.RegimeEspresso), "Make Espresso in the coffee machine"},
		{CoffeeOff(), "Turn the coffee machine off"},
		{PlaySong("Jethro Tull - Roots to Branches"), "Play \"Jethro Tull - Roots to Branches\" with the Music center"},
	}

	for _, tt := range tests {
		if got := tt.cmd.Name(); got != tt.want {
			t.Errorf("Name() = %q, want %q", got, tt.want)
		}
	}
}

func TestBind_Twice(t *testing.T) {
	r := newFakeResolver()
	cmd := LightOff()

	mustBind(t, cmd, r)
	if !cmd.Bound() {
		t.Fatal("Bound() = false after Bind")
	}
	if err := cmd.Bind(r); !errors.Is(err, ErrAlreadyBound) {
		t.Errorf("second Bind() error = %v, want ErrAlreadyBound", err)
	}
}

func TestBind_NoDevice(t *testing.T) {
	r := newFakeResolver()
	r.audio = nil

	cmd := AudioOn()
	if err := cmd.Bind(r); !errors.Is(err, ErrNoDevice) {
		t.Errorf("Bind() error = %v, want ErrNoDevice", err)
	}
	if cmd.Bound() {
		t.Error("Bound() = true after failed Bind")
	}
}

func TestExecute_Unbound(t *testing.T) {
	for _, cmd := range []Command{SocketOn(), LightOn(1), CoffeeOff(), Macro("m", SocketOff())} {
		t.Run(cmd.Name(), func(t *testing.T) {
			defer func() {
				r := recover()
				if r == nil {
					t.Fatal("Execute() on unbound command did not panic")
				}
				if msg, _ := r.(string); !strings.Contains(msg, "before binding") {
					t.Errorf("panic = %v", r)
				}
			}()
			cmd.Execute()
		})
	}
}

func TestSocketCommands(t *testing.T) {
	r := newFakeResolver()
	on, off, toggle := SocketOn(), SocketOff(), SocketToggle()
	for _, c := range []Command{on, off, toggle} {
		mustBind(t, c, r)
	}

	off.Execute()
	if r.socket.IsOn() {
		t.Error("SocketOff left socket on")
	}

	res := toggle.Execute()
	if !r.socket.IsOn() {
		t.Error("SocketToggle from off did not turn on")
	}
	if res.Device != device.KindSocket || res.State["on"] != true {
		t.Errorf("Result = %+v", res)
	}

	on.Execute()
	if !r.socket.IsOn() {
		t.Error("SocketOn left socket off")
	}
}

func TestLightCommands(t *testing.T) {
	r := newFakeResolver()
	steps := []struct {
		cmd  Command
		want int
	}{
		{LightOn(150), 49},
		{LightIncrease(60), 8},
		{LightDecrease(10), 0},
		{LightOn(device.DefaultLevel), 50},
		{LightDecrease(20), 30},
		{LightOff(), 0},
	}

	for _, s := range steps {
		mustBind(t, s.cmd, r)
		res := s.cmd.Execute()
		if got := r.light.Level(); got != s.want {
			t.Errorf("%s: level = %d, want %d", s.cmd.Name(), got, s.want)
		}
		if res.State["level"] != s.want {
			t.Errorf("%s: State = %v", s.cmd.Name(), res.State)
		}
	}
}

func TestAlarmCommands(t *testing.T) {
	r := newFakeResolver()
	fireOn, secOn, fireOff := FireAlarmOn(), SecurityAlarmOn(), FireAlarmOff()
	for _, c := range []Command{fireOn, secOn, fireOff} {
		mustBind(t, c, r)
	}

	fireOn.Execute()
	secOn.Execute()
	fireOff.Execute()

	if r.fire.IsOn() {
		t.Error("fire alarm should be off")
	}
	if !r.security.IsOn() {
		t.Error("security alarm should be on")
	}
}

func TestCoffeeCommands(t *testing.T) {
	r := newFakeResolver()
	latte, off := MakeCoffee(device.RegimeLatte), CoffeeOff()
	mustBind(t, latte, r)
	mustBind(t, off, r)

	res := latte.Execute()
	if !res.Ready() || res.Message != "making latte... done" {
		t.Errorf("MakeCoffee(latte) = %+v", res)
	}
	if r.coffee.Regime() != device.RegimeLatte {
		t.Errorf("regime = %v", r.coffee.Regime())
	}

	res = off.Execute()
	if !res.Ready() || res.State["regime"] != "off" {
		t.Errorf("CoffeeOff = %+v", res)
	}

	brewOff := MakeCoffee(device.RegimeOff)
	mustBind(t, brewOff, r)
	res = brewOff.Execute()
	if res.Status != device.StatusNotReady || res.Message != "machine is off" {
		t.Errorf("MakeCoffee(off) = %+v", res)
	}
}

func TestAudioCommands(t *testing.T) {
	r := newFakeResolver()
	play, on, off := PlaySong("Little Lion Man"), AudioOn(), AudioOff()
	for _, c := range []Command{play, on, off} {
		mustBind(t, c, r)
	}

	res := play.Execute()
	if res.Status != device.StatusNotReady || res.Message != "off" {
		t.Errorf("PlaySong while off = %+v", res)
	}

	on.Execute()
	res = play.Execute()
	if !res.Ready() || res.Message != "playing Little Lion Man" {
		t.Errorf("PlaySong while on = %+v", res)
	}

	off.Execute()
	if r.audio.IsOn() {
		t.Error("AudioOff left player on")
	}
}

func TestDescribeDevices(t *testing.T) {
	r := newFakeResolver()
	r.control = device.NewControl(nil, "1.0.0")
	r.control.SetSource(r)

	cmd := DescribeDevices()
	mustBind(t, cmd, r)

	before := r.light.Level()
	res := cmd.Execute()
	if len(res.Versions) != 7 {
		t.Fatalf("Versions = %v, want 7 entries", res.Versions)
	}
	if res.Versions[1].String() != "Smart socket v.13" {
		t.Errorf("Versions[1] = %v", res.Versions[1])
	}
	if r.light.Level() != before {
		t.Error("DescribeDevices changed device state")
	}
}

func TestMacro(t *testing.T) {
	r := newFakeResolver()
	m := Macro("Evening",
		SocketOff(),
		LightOn(30),
		PlaySong("Shine on"),
		MakeCoffee(device.RegimeEspresso),
	)
	mustBind(t, m, r)

	for i, step := range m.Steps() {
		if !step.Bound() {
			t.Errorf("step %d not bound", i)
		}
	}

	res := m.Execute()
	if len(res.Children) != 4 {
		t.Fatalf("Children = %d, want 4", len(res.Children))
	}
	if r.socket.IsOn() || r.light.Level() != 30 {
		t.Errorf("macro did not run every step: socket=%v light=%d", r.socket.IsOn(), r.light.Level())
	}
	if r.coffee.Regime() != device.RegimeEspresso {
		t.Error("step after not-ready step did not run")
	}
	if res.Status != device.StatusNotReady {
		t.Errorf("Status = %q, want not_ready from the audio step", res.Status)
	}
	if !strings.HasPrefix(res.Message, "Play ") {
		t.Errorf("Message = %q, want first not-ready step", res.Message)
	}
}

func TestMacro_BindErrors(t *testing.T) {
	if err := Macro("empty").Bind(newFakeResolver()); !errors.Is(err, ErrEmptyMacro) {
		t.Errorf("empty macro Bind() error = %v, want ErrEmptyMacro", err)
	}

	ok := Macro("ok", SocketOn())
	mustBind(t, ok, newFakeResolver())
	if err := ok.Bind(newFakeResolver()); !errors.Is(err, ErrAlreadyBound) {
		t.Errorf("second Bind() error = %v, want ErrAlreadyBound", err)
	}
}

func TestMacro_RejectedLeavesStepsUnbound(t *testing.T) {
	boundOff := LightOff()
	mustBind(t, boundOff, newFakeResolver())
	twice := SocketToggle()

	tests := []struct {
		name    string
		resolve func() Resolver
		steps   func() []Command
		want    error
	}{
		{
			name:    "missing device",
			resolve: func() Resolver { r := newFakeResolver(); r.fire = nil; return r },
			steps:   func() []Command { return []Command{SocketOn(), LightOn(20), FireAlarmOn()} },
			want:    ErrNoDevice,
		},
		{
			name:    "bound step",
			resolve: func() Resolver { return newFakeResolver() },
			steps:   func() []Command { return []Command{SocketOn(), boundOff} },
			want:    ErrAlreadyBound,
		},
		{
			name:    "same instance twice",
			resolve: func() Resolver { return newFakeResolver() },
			steps:   func() []Command { return []Command{twice, LightOn(5), twice} },
			want:    ErrDuplicateStep,
		},
		{
			name:    "nested empty macro",
			resolve: func() Resolver { return newFakeResolver() },
			steps:   func() []Command { return []Command{SocketOn(), Macro("inner")} },
			want:    ErrEmptyMacro,
		},
		{
			name:    "nested missing device",
			resolve: func() Resolver { r := newFakeResolver(); r.audio = nil; return r },
			steps: func() []Command {
				return []Command{SocketOff(), Macro("inner", LightOn(1), PlaySong("x"))}
			},
			want: ErrNoDevice,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			steps := tt.steps()
			m := Macro("m", steps...)
			if err := m.Bind(tt.resolve()); !errors.Is(err, tt.want) {
				t.Fatalf("Bind() error = %v, want %v", err, tt.want)
			}
			if m.Bound() {
				t.Error("macro Bound() = true after rejection")
			}
			for i, step := range steps {
				if step == boundOff {
					continue
				}
				if step.Bound() {
					t.Errorf("step %d (%s) still bound after rejection", i, step.Name())
				}
			}

			// The first step is reusable on its own.
			if steps[0] != boundOff {
				mustBind(t, steps[0], newFakeResolver())
			}
		})
	}
}

// crossedCommand claims the socket category but binds to the light.
type crossedCommand struct{ light *device.Light }

func (c *crossedCommand) Name() string       { return "crossed" }
func (c *crossedCommand) Category() Category { return CategorySocket }
func (c *crossedCommand) Bound() bool        { return c.light != nil }
func (c *crossedCommand) Execute() Result    { return Result{} }

func (c *crossedCommand) Bind(r Resolver) error {
	if c.light = r.Light(); c.light == nil {
		return ErrNoDevice
	}
	return nil
}

func TestScope(t *testing.T) {
	r := newFakeResolver()
	r.control = device.NewControl(r, "1.0.0")

	present := func(s Resolver) map[string]bool {
		return map[string]bool{
			"socket":   s.Socket() != nil,
			"light":    s.Light() != nil,
			"fire":     s.FireAlarm() != nil,
			"security": s.SecurityAlarm() != nil,
			"coffee":   s.CoffeeMachine() != nil,
			"audio":    s.AudioPlayer() != nil,
			"control":  s.Control() != nil,
		}
	}

	tests := []struct {
		category Category
		only     string
	}{
		{CategorySocket, "socket"},
		{CategoryLight, "light"},
		{CategoryFireAlarm, "fire"},
		{CategorySecurityAlarm, "security"},
		{CategoryCoffeeMachine, "coffee"},
		{CategoryAudioPlayer, "audio"},
		{CategoryControl, "control"},
	}
	for _, tt := range tests {
		t.Run(string(tt.category), func(t *testing.T) {
			s, ok := Scope(r, tt.category)
			if !ok {
				t.Fatal("Scope() ok = false")
			}
			for name, has := range present(s) {
				if has != (name == tt.only) {
					t.Errorf("%s accessor non-nil = %v", name, has)
				}
			}
		})
	}

	t.Run("composite sees everything", func(t *testing.T) {
		s, ok := Scope(r, CategoryComposite)
		if !ok || s != Resolver(r) {
			t.Errorf("Scope(composite) = %v, %v; want the resolver itself", s, ok)
		}
	})

	t.Run("unknown category", func(t *testing.T) {
		if _, ok := Scope(r, "teleporter"); ok {
			t.Error("Scope() ok = true for unknown category")
		}
	})

	t.Run("cross-family bind fails", func(t *testing.T) {
		s, _ := Scope(r, CategorySocket)
		if err := (&crossedCommand{}).Bind(s); !errors.Is(err, ErrNoDevice) {
			t.Errorf("Bind() error = %v, want ErrNoDevice", err)
		}
	})

	t.Run("cross-family macro step fails", func(t *testing.T) {
		on := SocketOn()
		m := Macro("m", on, &crossedCommand{})
		if err := m.Bind(r); !errors.Is(err, ErrNoDevice) {
			t.Errorf("Bind() error = %v, want ErrNoDevice", err)
		}
		if on.Bound() {
			t.Error("earlier step left bound")
		}
	})
}

func TestCatalog(t *testing.T) {
	cat := Catalog{SocketOn(), SocketOff()}

	if cat.Len() != 2 {
		t.Errorf("Len() = %d", cat.Len())
	}
	if _, ok := cat.At(2); ok {
		t.Error("At(2) ok on two-entry catalog")
	}
	if _, ok := cat.At(-1); ok {
		t.Error("At(-1) ok")
	}
	if c, ok := cat.At(1); !ok || c.Name() != "Turn Smart Socket off" {
		t.Errorf("At(1) = %v, %v", c, ok)
	}

	entries := cat.Entries()
	if entries[1].Index != 1 || entries[1].Category != CategorySocket {
		t.Errorf("Entries()[1] = %+v", entries[1])
	}
}
