package mqtt

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/nerrad567/gray-logic-hub/internal/command"
	"github.com/nerrad567/gray-logic-hub/internal/device"
)

// RetainedPublisher publishes retained messages. *Client implements it.
type RetainedPublisher interface {
	PublishRetained(topic string, payload []byte) error
}

// CatalogMessage is the retained payload on grayhub/{hub_id}/catalog.
type CatalogMessage struct {
	HubID       string          `json:"hub_id"`
	Commands    []command.Entry `json:"commands"`
	PublishedAt string          `json:"published_at"`
}

// StateMessage is the retained payload on grayhub/{hub_id}/state/{device}.
type StateMessage struct {
	HubID     string       `json:"hub_id"`
	Device    device.Kind  `json:"device"`
	State     device.State `json:"state"`
	Timestamp string       `json:"timestamp"`
}

// HubPublisher mirrors the hub onto MQTT. It implements
// hub.CatalogPublisher (the catalog snapshot after every notify) and
// strategy.StateSink (device state after every executed command).
type HubPublisher struct {
	pub    RetainedPublisher
	hubID  string
	topics Topics
}

// NewHubPublisher creates a publisher for hubID writing through pub.
func NewHubPublisher(pub RetainedPublisher, hubID string) *HubPublisher {
	return &HubPublisher{pub: pub, hubID: hubID, topics: NewTopics(hubID)}
}

// PublishCatalog implements hub.CatalogPublisher.
func (p *HubPublisher) PublishCatalog(entries []command.Entry) error {
	if entries == nil {
		entries = []command.Entry{}
	}
	return p.publish(p.topics.Catalog(), CatalogMessage{
		HubID:       p.hubID,
		Commands:    entries,
		PublishedAt: time.Now().UTC().Format(time.RFC3339),
	})
}

// PublishState implements strategy.StateSink.
func (p *HubPublisher) PublishState(kind device.Kind, state device.State, at time.Time) error {
	return p.publish(p.topics.DeviceState(kind), StateMessage{
		HubID:     p.hubID,
		Device:    kind,
		State:     state,
		Timestamp: at.UTC().Format(time.RFC3339),
	})
}

func (p *HubPublisher) publish(topic string, msg any) error {
	payload, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("encoding %s: %w", topic, err)
	}
	if err := p.pub.PublishRetained(topic, payload); err != nil {
		return fmt.Errorf("publishing %s: %w", topic, err)
	}
	return nil
}
