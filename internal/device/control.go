package device

import "fmt"

// Source is the device set the control device introspects.
// The hub implements it; Devices must return devices in slot order.
type Source interface {
	Devices() []Device
}

// Control is the hub-reflexive meta-device.
//
// It owns no appliance state. Its operations forward version and listing
// queries to devices picked by index from the hub's device set, so every
// metadata query the hub answers goes through the same visitors.
type Control struct {
	source  Source
	version string

	versions   VersionVisitor
	operations OperationsVisitor
}

// NewControl creates the control device for the given device set.
//
// Parameters:
//   - source: the hub's device set (may be nil until SetSource is called)
//   - version: the hub version the control device reports for itself
func NewControl(source Source, version string) *Control {
	return &Control{source: source, version: version}
}

// SetSource attaches the device set after construction. The hub needs this
// because the control device is itself slot 0 of the set it describes.
func (c *Control) SetSource(source Source) {
	c.source = source
}

// DescribeDevice returns the version of the device at index.
func (c *Control) DescribeDevice(index int) (Version, error) {
	d, err := c.lookup(index)
	if err != nil {
		return Version{}, err
	}
	return c.versions.Visit(d), nil
}

// ListOperations returns the operation names of the device at index.
func (c *Control) ListOperations(index int) ([]string, error) {
	d, err := c.lookup(index)
	if err != nil {
		return nil, err
	}
	return c.operations.Visit(d), nil
}

// DescribeAll returns the version of every device, in slot order.
func (c *Control) DescribeAll() []Version {
	if c.source == nil {
		return nil
	}
	devices := c.source.Devices()
	out := make([]Version, 0, len(devices))
	for _, d := range devices {
		out = append(out, c.versions.Visit(d))
	}
	return out
}

func (c *Control) lookup(index int) (Device, error) {
	if c.source == nil {
		return nil, ErrNoSource
	}
	devices := c.source.Devices()
	if index < 0 || index >= len(devices) {
		return nil, fmt.Errorf("%w: %d not in [0, %d)", ErrIndexOutOfRange, index, len(devices))
	}
	return devices[index], nil
}

// Kind implements Device.
func (c *Control) Kind() Kind { return KindControl }

// State implements Device.
func (c *Control) State() State {
	n := 0
	if c.source != nil {
		n = len(c.source.Devices())
	}
	return State{"devices": n}
}

// AcceptVersion implements Device.
func (c *Control) AcceptVersion(v *VersionVisitor) {
	v.report(Version{Device: "Hub control", Tag: c.version})
}

// AcceptOperations implements Device.
func (c *Control) AcceptOperations(v *OperationsVisitor) {
	v.report("describeDevice(index)", "listOperations(index)", "describeAllDevices()")
}
