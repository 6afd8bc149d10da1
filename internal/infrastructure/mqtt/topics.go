package mqtt

import "github.com/nerrad567/gray-logic-hub/internal/device"

// TopicRoot is the first level of every hub topic.
const TopicRoot = "grayhub"

// Topics builds the MQTT topics of one hub. Every topic lives under
// grayhub/{hub_id}/ so several hubs can share a broker.
//
//	t := mqtt.NewTopics("hub-001")
//	t.Catalog()                        // grayhub/hub-001/catalog
//	t.DeviceState(device.KindLight)    // grayhub/hub-001/state/light
type Topics struct {
	base string
}

// NewTopics returns the topic builder for hubID.
func NewTopics(hubID string) Topics {
	return Topics{base: TopicRoot + "/" + hubID}
}

// Catalog is the retained topic holding the current command catalog.
func (t Topics) Catalog() string { return t.base + "/catalog" }

// DeviceState is the retained topic holding a device's latest state.
func (t Topics) DeviceState(kind device.Kind) string {
	return t.base + "/state/" + string(kind)
}

// SystemStatus carries the hub's online/offline status and its LWT.
func (t Topics) SystemStatus() string { return t.base + "/system/status" }
