package hub

import (
	"fmt"
	"sync"
	"time"

	"github.com/nerrad567/gray-logic-hub/internal/command"
	"github.com/nerrad567/gray-logic-hub/internal/device"
)

// Device slot indices, as used by the reflexive queries.
const (
	SlotControl = iota
	SlotSocket
	SlotLight
	SlotFireAlarm
	SlotSecurityAlarm
	SlotCoffeeMachine
	SlotAudioPlayer
)

// Hub owns a fixed device set, the command catalog, and the observers.
type Hub struct {
	version string

	control  *device.Control
	socket   *device.Socket
	light    *device.Light
	fire     *device.FireAlarm
	security *device.SecurityAlarm
	coffee   *device.CoffeeMachine
	audio    *device.AudioPlayer
	devices  []device.Device

	mu        sync.RWMutex // protects catalog, observers
	catalog   command.Catalog
	observers []Observer

	devMu sync.Mutex // protects device state and the control device's visitors

	publisher CatalogPublisher
	events    EventSink
	logger    Logger
	now       func() time.Time
}

// New creates a hub with the standard device set in its initial state:
// socket on, light at zero, alarms off, coffee machine off, audio player
// off with no song.
//
// Parameters:
//   - version: the hub version, reported by the control device
func New(version string) *Hub {
	h := &Hub{
		version:  version,
		socket:   device.NewSocket(),
		light:    device.NewLight(),
		fire:     device.NewFireAlarm(),
		security: device.NewSecurityAlarm(),
		coffee:   device.NewCoffeeMachine(),
		audio:    device.NewAudioPlayer(),
		logger:   noopLogger{},
		now:      time.Now,
	}
	h.control = device.NewControl(h, version)
	h.devices = []device.Device{
		SlotControl:       h.control,
		SlotSocket:        h.socket,
		SlotLight:         h.light,
		SlotFireAlarm:     h.fire,
		SlotSecurityAlarm: h.security,
		SlotCoffeeMachine: h.coffee,
		SlotAudioPlayer:   h.audio,
	}
	return h
}

// SetLogger sets the logger for the hub.
func (h *Hub) SetLogger(logger Logger) {
	h.logger = logger
}

// SetPublisher sets the catalog publisher Notify pushes snapshots to.
// Nil disables publishing.
func (h *Hub) SetPublisher(p CatalogPublisher) {
	h.publisher = p
}

// SetEventSink sets the sink that receives hub events. Nil disables it.
func (h *Hub) SetEventSink(s EventSink) {
	h.events = s
}

// Version returns the hub version.
func (h *Hub) Version() string { return h.version }

// Register binds cmd to the device its category targets and appends it to
// the catalog. The command only sees that one device: a command that binds
// to a device outside its category fails with command.ErrNoDevice.
// Composite commands see every device and scope each step in turn.
//
// A command with an unknown category, or one whose Bind fails, is rejected
// with an error wrapping ErrRejectedCommand and the cause; the catalog is
// left unchanged.
func (h *Hub) Register(cmd command.Command) error {
	if cmd == nil {
		return h.reject(nil, errNilCommand)
	}

	var err error
	if r, ok := command.Scope(h, cmd.Category()); ok {
		err = cmd.Bind(r)
	} else {
		err = fmt.Errorf("%w %q", command.ErrNoRoute, cmd.Category())
	}
	if err != nil {
		return h.reject(cmd, err)
	}

	h.mu.Lock()
	h.catalog = append(h.catalog, cmd)
	index := len(h.catalog) - 1
	h.mu.Unlock()

	h.logger.Debug("command registered", "index", index, "command", cmd.Name(), "category", cmd.Category())
	h.emit(Event{Type: EventCommandRegistered, Command: cmd.Name(), Category: cmd.Category(), Index: index})
	return nil
}

func (h *Hub) reject(cmd command.Command, cause error) error {
	ev := Event{Type: EventCommandRejected, Index: -1, Err: cause}
	if cmd != nil {
		ev.Command = cmd.Name()
		ev.Category = cmd.Category()
	}
	h.logger.Warn("command rejected", "command", ev.Command, "category", ev.Category, "error", cause)
	h.emit(ev)
	return fmt.Errorf("%w: %q: %w", ErrRejectedCommand, ev.Command, cause)
}

// Attach subscribes o to catalog updates. Attaching an observer that is
// already subscribed does nothing. Nil is ignored.
func (h *Hub) Attach(o Observer) {
	if o == nil {
		return
	}

	h.mu.Lock()
	for _, existing := range h.observers {
		if existing == o {
			h.mu.Unlock()
			return
		}
	}
	h.observers = append(h.observers, o)
	h.mu.Unlock()

	h.logger.Info("observer attached", "observer", o.ID())
	h.emit(Event{Type: EventObserverAttached, ObserverID: o.ID(), Index: -1})
}

// Detach unsubscribes o. Detaching an observer that is not subscribed does
// nothing.
func (h *Hub) Detach(o Observer) {
	if o == nil {
		return
	}

	h.mu.Lock()
	found := false
	for i, existing := range h.observers {
		if existing == o {
			h.observers = append(h.observers[:i:i], h.observers[i+1:]...)
			found = true
			break
		}
	}
	h.mu.Unlock()

	if !found {
		return
	}
	h.logger.Info("observer detached", "observer", o.ID())
	h.emit(Event{Type: EventObserverDetached, ObserverID: o.ID(), Index: -1})
}

// Notify delivers the current catalog to every observer, in subscription
// order, and returns once every Update has returned. All observers receive
// the same catalog.
//
// If a publisher is set, the catalog snapshot is published afterwards;
// a publish failure is logged and does not affect the observers.
func (h *Hub) Notify() {
	h.mu.RLock()
	catalog := h.catalog[:len(h.catalog):len(h.catalog)]
	observers := make([]Observer, len(h.observers))
	copy(observers, h.observers)
	h.mu.RUnlock()

	for _, o := range observers {
		o.Update(catalog)
	}

	if h.publisher != nil {
		if err := h.publisher.PublishCatalog(catalog.Entries()); err != nil {
			h.logger.Warn("catalog publish failed", "error", err)
		}
	}

	h.logger.Debug("catalog notified", "observers", len(observers), "commands", len(catalog))
	h.emit(Event{Type: EventCatalogNotified, Observers: len(observers), Index: -1})
}

// Catalog returns the current catalog. The slice must not be modified.
func (h *Hub) Catalog() command.Catalog {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.catalog[:len(h.catalog):len(h.catalog)]
}

// ObserverCount returns the number of subscribed observers.
func (h *Hub) ObserverCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.observers)
}

// Execute runs a bound command while holding the device lock.
func (h *Hub) Execute(cmd command.Command) command.Result {
	h.devMu.Lock()
	defer h.devMu.Unlock()
	return cmd.Execute()
}

func (h *Hub) emit(e Event) {
	if h.events == nil {
		return
	}
	e.Timestamp = h.now().UTC()
	h.events.RecordEvent(e)
}

// Devices implements device.Source. The returned slice is a copy, in slot
// order.
func (h *Hub) Devices() []device.Device {
	out := make([]device.Device, len(h.devices))
	copy(out, h.devices)
	return out
}

// Socket implements command.Resolver.
func (h *Hub) Socket() *device.Socket { return h.socket }

// Light implements command.Resolver.
func (h *Hub) Light() *device.Light { return h.light }

// FireAlarm implements command.Resolver.
func (h *Hub) FireAlarm() *device.FireAlarm { return h.fire }

// SecurityAlarm implements command.Resolver.
func (h *Hub) SecurityAlarm() *device.SecurityAlarm { return h.security }

// CoffeeMachine implements command.Resolver.
func (h *Hub) CoffeeMachine() *device.CoffeeMachine { return h.coffee }

// AudioPlayer implements command.Resolver.
func (h *Hub) AudioPlayer() *device.AudioPlayer { return h.audio }

// Control implements command.Resolver.
func (h *Hub) Control() *device.Control { return h.control }
