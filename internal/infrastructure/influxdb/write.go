package influxdb

import (
	"time"

	"github.com/influxdata/influxdb-client-go/v2/api/write"

	"github.com/nerrad567/gray-logic-hub/internal/device"
)

// measurementDeviceState is the measurement holding device state points.
const measurementDeviceState = "device_state"

// PublishState implements strategy.StateSink: it queues one device_state
// point tagged with the hub and device kind. It never blocks and returns
// ErrNotConnected only when the client is closed.
func (c *Client) PublishState(kind device.Kind, state device.State, at time.Time) error {
	if !c.IsConnected() {
		return ErrNotConnected
	}
	p := statePoint(c.hubID, kind, state, at)
	if p == nil {
		return nil
	}
	c.writeAPI.WritePoint(p)
	return nil
}

// statePoint builds the device_state point for a state snapshot, or nil
// when the snapshot has no field InfluxDB can store.
func statePoint(hubID string, kind device.Kind, state device.State, at time.Time) *write.Point {
	fields := stateFields(state)
	if len(fields) == 0 {
		return nil
	}
	return write.NewPoint(measurementDeviceState,
		map[string]string{
			"hub_id": hubID,
			"device": string(kind),
		},
		fields,
		at,
	)
}

// stateFields converts a state snapshot to point fields. Booleans become
// 0/1 integers so they can be graphed alongside levels; strings are kept
// as string fields; empty strings and other types are dropped.
func stateFields(state device.State) map[string]any {
	fields := make(map[string]any, len(state))
	for k, v := range state {
		switch val := v.(type) {
		case bool:
			if val {
				fields[k] = 1
			} else {
				fields[k] = 0
			}
		case int:
			fields[k] = val
		case int64:
			fields[k] = val
		case float64:
			fields[k] = val
		case string:
			if val != "" {
				fields[k] = val
			}
		}
	}
	return fields
}
