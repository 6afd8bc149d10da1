// Package mqtt mirrors the hub onto an MQTT broker.
//
// The hub publishes; it never subscribes. Three retained topics live under
// grayhub/{hub_id}/:
//
//	catalog             command catalog snapshot, after every notify
//	state/{device}      device state, after every executed command
//	system/status       online / offline (graceful or Last Will)
//
// # Architecture
//
//	┌──────────┐ PublishCatalog ┌──────────────┐ PublishRetained ┌────────┐
//	│   Hub    │───────────────▶│              │────────────────▶│        │
//	└──────────┘                │ HubPublisher │                 │ Client │──▶ broker
//	┌──────────┐ PublishState   │              │                 │        │
//	│   User   │───────────────▶│              │                 │        │
//	└──────────┘                └──────────────┘                 └────────┘
//
// # Key Types
//
//   - Client: paho connection with auto-reconnect, LWT and health check
//   - HubPublisher: hub.CatalogPublisher and strategy.StateSink adapter
//   - Topics: topic builder for one hub
//
// # Usage
//
//	client, err := mqtt.Connect(cfg.MQTT, cfg.Hub.ID)
//	if err != nil {
//	    return err
//	}
//	defer client.Close()
//
//	pub := mqtt.NewHubPublisher(client, cfg.Hub.ID)
//	h.SetPublisher(pub)
//	user := strategy.NewUser(ids, strategy.WithStateSink(pub))
package mqtt
