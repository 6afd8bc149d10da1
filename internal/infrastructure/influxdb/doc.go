// Package influxdb records device state telemetry in InfluxDB.
//
// After every executed strategy step the strategy builder hands the
// touched device's state to each configured StateSink; Client is one of
// them and writes a point per state:
//
//	device_state,hub_id=hub-001,device=light level=75i
//	device_state,hub_id=hub-001,device=socket on=1i
//	device_state,hub_id=hub-001,device=coffee_machine regime="latte"
//
// # Usage
//
//	client, err := influxdb.Connect(cfg.InfluxDB, cfg.Hub.ID)
//	if err != nil {
//	    return err
//	}
//	defer client.Close()
//	user := strategy.NewUser(ids, strategy.WithStateSink(client))
//
// # Thread Safety
//
// All methods are safe for concurrent use. Writes are batched according
// to batch_size and flush_interval; write failures are reported through
// SetOnError rather than returned.
package influxdb
