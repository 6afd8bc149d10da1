// Package config handles loading and validating Gray Logic Hub configuration.
//
// This package manages:
//   - Loading configuration from YAML files
//   - Overriding with GRAYHUB_* environment variables
//   - Validation of required fields
//   - The startup command catalog
//
// Secrets (MQTT password, InfluxDB token) should be set through the
// environment rather than the file.
//
// Usage:
//
//	cfg, err := config.LoadDefault() // GRAYHUB_CONFIG or configs/config.yaml
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(cfg.Hub.Name)
package config
