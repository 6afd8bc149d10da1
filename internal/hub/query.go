package hub

import (
	"github.com/nerrad567/gray-logic-hub/internal/device"
)

// DeviceInfo is a read-only view of one device.
type DeviceInfo struct {
	Index      int            `json:"index"`
	Kind       device.Kind    `json:"kind"`
	Version    device.Version `json:"version"`
	Operations []string       `json:"operations"`
	State      device.State   `json:"state"`
}

// DescribeDevice returns the version of the device at index, asked through
// the control device. An index outside the device set returns an error
// wrapping device.ErrIndexOutOfRange.
func (h *Hub) DescribeDevice(index int) (device.Version, error) {
	h.devMu.Lock()
	defer h.devMu.Unlock()
	return h.control.DescribeDevice(index)
}

// ListOperations returns the operation names of the device at index.
func (h *Hub) ListOperations(index int) ([]string, error) {
	h.devMu.Lock()
	defer h.devMu.Unlock()
	return h.control.ListOperations(index)
}

// DescribeAllDevices returns the version of every device, in slot order.
func (h *Hub) DescribeAllDevices() []device.Version {
	h.devMu.Lock()
	defer h.devMu.Unlock()
	return h.control.DescribeAll()
}

// DeviceInfo returns the full view of the device at index.
func (h *Hub) DeviceInfo(index int) (DeviceInfo, error) {
	h.devMu.Lock()
	defer h.devMu.Unlock()
	return h.deviceInfoLocked(index)
}

// DeviceInfos returns the full view of every device, in slot order.
func (h *Hub) DeviceInfos() []DeviceInfo {
	h.devMu.Lock()
	defer h.devMu.Unlock()

	out := make([]DeviceInfo, 0, len(h.devices))
	for i := range h.devices {
		info, err := h.deviceInfoLocked(i)
		if err != nil {
			continue
		}
		out = append(out, info)
	}
	return out
}

// DeviceState returns a state snapshot of the device of kind k.
func (h *Hub) DeviceState(k device.Kind) (device.State, bool) {
	h.devMu.Lock()
	defer h.devMu.Unlock()
	for _, d := range h.devices {
		if d.Kind() == k {
			return d.State(), true
		}
	}
	return nil, false
}

func (h *Hub) deviceInfoLocked(index int) (DeviceInfo, error) {
	v, err := h.control.DescribeDevice(index)
	if err != nil {
		return DeviceInfo{}, err
	}
	ops, err := h.control.ListOperations(index)
	if err != nil {
		return DeviceInfo{}, err
	}
	d := h.devices[index]
	return DeviceInfo{
		Index:      index,
		Kind:       d.Kind(),
		Version:    v,
		Operations: ops,
		State:      d.State(),
	}, nil
}
