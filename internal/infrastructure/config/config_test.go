package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}
	return path
}

func TestLoad_ValidConfig(t *testing.T) {
	path := writeConfig(t, `
hub:
  id: "kitchen-hub"
  name: "Kitchen"
database:
  path: "/tmp/grayhub-test.db"
mqtt:
  enabled: true
  broker:
    host: "broker.local"
    port: 1884
  qos: 0
api:
  port: 9090
catalog:
  - command: socket_on
  - command: light_on
    level: 75
  - command: macro
    name: "Morning"
    children:
      - command: make_coffee
        regime: latte
      - command: play_song
        song: "Roots to Branches"
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Hub.ID != "kitchen-hub" || cfg.Hub.Name != "Kitchen" {
		t.Errorf("Hub = %+v", cfg.Hub)
	}
	if cfg.Database.Path != "/tmp/grayhub-test.db" {
		t.Errorf("Database.Path = %q", cfg.Database.Path)
	}
	if !cfg.Database.WALMode {
		t.Error("WALMode default lost when database section is partial")
	}
	if !cfg.MQTT.Enabled || cfg.MQTT.Broker.Host != "broker.local" || cfg.MQTT.Broker.Port != 1884 || cfg.MQTT.QoS != 0 {
		t.Errorf("MQTT = %+v", cfg.MQTT)
	}
	if cfg.API.Port != 9090 || !cfg.API.Enabled {
		t.Errorf("API = %+v", cfg.API)
	}

	if len(cfg.Catalog) != 3 {
		t.Fatalf("len(Catalog) = %d, want 3", len(cfg.Catalog))
	}
	if lvl := cfg.Catalog[1].Level; lvl == nil || *lvl != 75 {
		t.Errorf("Catalog[1].Level = %v", lvl)
	}
	if cfg.Catalog[0].Level != nil {
		t.Error("Catalog[0].Level should be unset")
	}
	macro := cfg.Catalog[2]
	if macro.Name != "Morning" || len(macro.Children) != 2 || macro.Children[1].Song != "Roots to Branches" {
		t.Errorf("macro entry = %+v", macro)
	}
}

func TestLoad_MissingFile(t *testing.T) {
	if _, err := Load("/nonexistent/path/config.yaml"); err == nil {
		t.Error("Load() expected error for missing file, got nil")
	}
}

func TestLoad_InvalidYAML(t *testing.T) {
	path := writeConfig(t, "invalid: [yaml: content")
	if _, err := Load(path); err == nil {
		t.Error("Load() expected error for invalid YAML, got nil")
	}
}

func TestLoad_ValidationFailure(t *testing.T) {
	path := writeConfig(t, `
hub:
  id: ""
database:
  path: ""
mqtt:
  qos: 3
catalog:
  - level: 10
`)

	_, err := Load(path)
	if err == nil {
		t.Fatal("Load() expected validation error, got nil")
	}
	for _, want := range []string{"hub.id", "database.path", "mqtt.qos", "catalog[0]: command is required"} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("error %q does not mention %q", err, want)
		}
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	path := writeConfig(t, `
hub:
  id: "from-file"
api:
  port: 8080
`)

	t.Setenv("GRAYHUB_HUB_ID", "from-env")
	t.Setenv("GRAYHUB_API_PORT", "9191")
	t.Setenv("GRAYHUB_MQTT_ENABLED", "true")
	t.Setenv("GRAYHUB_MQTT_PASSWORD", "secret")
	t.Setenv("GRAYHUB_LOG_LEVEL", "debug")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Hub.ID != "from-env" {
		t.Errorf("Hub.ID = %q, want from-env", cfg.Hub.ID)
	}
	if cfg.API.Port != 9191 {
		t.Errorf("API.Port = %d, want 9191", cfg.API.Port)
	}
	if !cfg.MQTT.Enabled || cfg.MQTT.Auth.Password != "secret" {
		t.Errorf("MQTT = %+v", cfg.MQTT)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("Logging.Level = %q", cfg.Logging.Level)
	}
	if cfg.Database.Path != Default().Database.Path {
		t.Errorf("unset env var changed Database.Path to %q", cfg.Database.Path)
	}
}

func TestLoad_BadEnvValue(t *testing.T) {
	path := writeConfig(t, "hub:\n  id: x\n")
	t.Setenv("GRAYHUB_API_PORT", "not-a-number")

	if _, err := Load(path); err == nil {
		t.Error("Load() expected error for malformed GRAYHUB_API_PORT")
	}
}

func TestLoadDefault(t *testing.T) {
	t.Run("missing file falls back to defaults", func(t *testing.T) {
		t.Setenv(EnvConfigPath, filepath.Join(t.TempDir(), "absent.yaml"))
		t.Setenv("GRAYHUB_DATABASE_PATH", "/tmp/env.db")

		cfg, err := LoadDefault()
		if err != nil {
			t.Fatalf("LoadDefault() error = %v", err)
		}
		if cfg.Hub.ID != "hub-001" || cfg.Database.Path != "/tmp/env.db" {
			t.Errorf("cfg = %+v", cfg)
		}
	})

	t.Run("reads the named file", func(t *testing.T) {
		t.Setenv(EnvConfigPath, writeConfig(t, "hub:\n  id: named\n"))

		cfg, err := LoadDefault()
		if err != nil {
			t.Fatalf("LoadDefault() error = %v", err)
		}
		if cfg.Hub.ID != "named" {
			t.Errorf("Hub.ID = %q, want named", cfg.Hub.ID)
		}
	})
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{name: "defaults are valid", mutate: func(*Config) {}},
		{
			name:    "mqtt enabled without host",
			mutate:  func(c *Config) { c.MQTT.Enabled = true; c.MQTT.Broker.Host = "" },
			wantErr: "mqtt.broker.host",
		},
		{
			name:    "mqtt disabled ignores broker",
			mutate:  func(c *Config) { c.MQTT.Broker.Port = 0 },
			wantErr: "",
		},
		{
			name:    "influx enabled without bucket",
			mutate:  func(c *Config) { c.InfluxDB.Enabled = true; c.InfluxDB.Bucket = "" },
			wantErr: "influxdb.bucket",
		},
		{
			name:    "api port out of range",
			mutate:  func(c *Config) { c.API.Port = 70000 },
			wantErr: "api.port",
		},
		{
			name:    "api disabled ignores port",
			mutate:  func(c *Config) { c.API.Enabled = false; c.API.Port = 0 },
			wantErr: "",
		},
		{
			name: "nested catalog child without command",
			mutate: func(c *Config) {
				c.Catalog = []CatalogEntry{{Command: "macro", Name: "m", Children: []CatalogEntry{{}}}}
			},
			wantErr: "catalog[0]: children[0]: command is required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("Validate() error = %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Validate() error = %v, want mention of %q", err, tt.wantErr)
			}
		})
	}
}

func TestTimeouts(t *testing.T) {
	cfg := Default()
	if got := cfg.GetReadTimeout().Seconds(); got != 30 {
		t.Errorf("GetReadTimeout() = %vs", got)
	}
	if got := cfg.GetWriteTimeout().Seconds(); got != 30 {
		t.Errorf("GetWriteTimeout() = %vs", got)
	}
	if got := cfg.GetIdleTimeout().Seconds(); got != 60 {
		t.Errorf("GetIdleTimeout() = %vs", got)
	}
}
