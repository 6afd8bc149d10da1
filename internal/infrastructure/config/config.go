package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"
)

// EnvConfigPath names the environment variable that selects the config file.
const EnvConfigPath = "GRAYHUB_CONFIG"

// DefaultPath is the config file used when GRAYHUB_CONFIG is unset.
const DefaultPath = "configs/config.yaml"

// Config is the root configuration structure for the Gray Logic Hub.
// All configuration is loaded from YAML and can be overridden by environment variables.
type Config struct {
	Hub      HubConfig      `yaml:"hub"`
	Database DatabaseConfig `yaml:"database"`
	MQTT     MQTTConfig     `yaml:"mqtt"`
	InfluxDB InfluxDBConfig `yaml:"influxdb"`
	API      APIConfig      `yaml:"api"`
	Logging  LoggingConfig  `yaml:"logging"`

	// Catalog lists the commands registered at startup, in catalog order.
	// When empty the built-in default catalog is used.
	Catalog []CatalogEntry `yaml:"catalog"`
}

// HubConfig identifies this hub instance.
type HubConfig struct {
	ID   string `yaml:"id"`
	Name string `yaml:"name"`
}

// DatabaseConfig contains SQLite database settings.
type DatabaseConfig struct {
	Path        string `yaml:"path"`
	WALMode     bool   `yaml:"wal_mode"`
	BusyTimeout int    `yaml:"busy_timeout"`
}

// MQTTConfig contains MQTT broker connection settings.
type MQTTConfig struct {
	Enabled   bool                `yaml:"enabled"`
	Broker    MQTTBrokerConfig    `yaml:"broker"`
	Auth      MQTTAuthConfig      `yaml:"auth"`
	QoS       int                 `yaml:"qos"`
	Reconnect MQTTReconnectConfig `yaml:"reconnect"`
}

// MQTTBrokerConfig contains MQTT broker connection details.
type MQTTBrokerConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	TLS      bool   `yaml:"tls"`
	ClientID string `yaml:"client_id"`
}

// MQTTAuthConfig contains MQTT authentication credentials.
type MQTTAuthConfig struct {
	Username string `yaml:"username"`
	Password string `yaml:"password"`
}

// MQTTReconnectConfig contains MQTT reconnection settings, in seconds.
type MQTTReconnectConfig struct {
	InitialDelay int `yaml:"initial_delay"`
	MaxDelay     int `yaml:"max_delay"`
}

// InfluxDBConfig contains InfluxDB connection settings.
type InfluxDBConfig struct {
	Enabled       bool   `yaml:"enabled"`
	URL           string `yaml:"url"`
	Token         string `yaml:"token"`
	Org           string `yaml:"org"`
	Bucket        string `yaml:"bucket"`
	BatchSize     int    `yaml:"batch_size"`
	FlushInterval int    `yaml:"flush_interval"` // seconds
}

// APIConfig contains the read-only HTTP API settings.
type APIConfig struct {
	Enabled  bool             `yaml:"enabled"`
	Host     string           `yaml:"host"`
	Port     int              `yaml:"port"`
	Timeouts APITimeoutConfig `yaml:"timeouts"`
}

// APITimeoutConfig contains HTTP timeout settings, in seconds.
type APITimeoutConfig struct {
	Read  int `yaml:"read"`
	Write int `yaml:"write"`
	Idle  int `yaml:"idle"`
}

// LoggingConfig contains logging settings.
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
	Output string `yaml:"output"`
}

// CatalogEntry describes one command to register. Which fields apply
// depends on Command; see command.Spec.
type CatalogEntry struct {
	Command  string         `yaml:"command"`
	Level    *int           `yaml:"level,omitempty"`
	By       *int           `yaml:"by,omitempty"`
	Regime   string         `yaml:"regime,omitempty"`
	Song     string         `yaml:"song,omitempty"`
	Name     string         `yaml:"name,omitempty"`
	Children []CatalogEntry `yaml:"children,omitempty"`
}

// envOverrides holds the values that may be set from the environment.
// Unset variables leave the pointer nil and the file value untouched.
type envOverrides struct {
	HubID         *string `env:"GRAYHUB_HUB_ID"`
	DatabasePath  *string `env:"GRAYHUB_DATABASE_PATH"`
	MQTTEnabled   *bool   `env:"GRAYHUB_MQTT_ENABLED"`
	MQTTHost      *string `env:"GRAYHUB_MQTT_HOST"`
	MQTTPort      *int    `env:"GRAYHUB_MQTT_PORT"`
	MQTTUsername  *string `env:"GRAYHUB_MQTT_USERNAME"`
	MQTTPassword  *string `env:"GRAYHUB_MQTT_PASSWORD"`
	InfluxEnabled *bool   `env:"GRAYHUB_INFLUXDB_ENABLED"`
	InfluxURL     *string `env:"GRAYHUB_INFLUXDB_URL"`
	InfluxToken   *string `env:"GRAYHUB_INFLUXDB_TOKEN"`
	APIEnabled    *bool   `env:"GRAYHUB_API_ENABLED"`
	APIHost       *string `env:"GRAYHUB_API_HOST"`
	APIPort       *int    `env:"GRAYHUB_API_PORT"`
	LogLevel      *string `env:"GRAYHUB_LOG_LEVEL"`
	LogFormat     *string `env:"GRAYHUB_LOG_FORMAT"`
	LogOutput     *string `env:"GRAYHUB_LOG_OUTPUT"`
}

// Load reads configuration from a YAML file and applies environment variable overrides.
//
// The configuration loading order is:
//  1. Default values (hardcoded)
//  2. YAML file values (override defaults)
//  3. Environment variables (override file values)
//
// Environment variables follow the pattern GRAYHUB_SECTION_KEY, for
// example GRAYHUB_DATABASE_PATH or GRAYHUB_API_PORT.
//
// Parameters:
//   - path: Path to the YAML configuration file
//
// Returns:
//   - *Config: Loaded and validated configuration
//   - error: If file cannot be read, parsed, or validation fails
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	if err := applyEnvOverrides(cfg); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}
	return cfg, nil
}

// LoadDefault loads the file named by GRAYHUB_CONFIG, or DefaultPath. A
// missing file is not an error: defaults plus environment overrides are
// used instead.
func LoadDefault() (*Config, error) {
	path := os.Getenv(EnvConfigPath)
	if path == "" {
		path = DefaultPath
	}
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		cfg := Default()
		if err := applyEnvOverrides(cfg); err != nil {
			return nil, err
		}
		if err := cfg.Validate(); err != nil {
			return nil, fmt.Errorf("validating config: %w", err)
		}
		return cfg, nil
	}
	return Load(path)
}

// Default returns a Config with sensible defaults. MQTT and InfluxDB are
// disabled; the HTTP API is enabled on localhost.
func Default() *Config {
	return &Config{
		Hub: HubConfig{
			ID:   "hub-001",
			Name: "Gray Logic Hub",
		},
		Database: DatabaseConfig{
			Path:        "./data/grayhub.db",
			WALMode:     true,
			BusyTimeout: 5,
		},
		MQTT: MQTTConfig{
			Broker: MQTTBrokerConfig{
				Host:     "localhost",
				Port:     1883,
				ClientID: "grayhub",
			},
			QoS: 1,
			Reconnect: MQTTReconnectConfig{
				InitialDelay: 1,
				MaxDelay:     60,
			},
		},
		InfluxDB: InfluxDBConfig{
			URL:           "http://localhost:8086",
			Org:           "graylogic",
			Bucket:        "grayhub",
			BatchSize:     100,
			FlushInterval: 10,
		},
		API: APIConfig{
			Enabled: true,
			Host:    "127.0.0.1",
			Port:    8080,
			Timeouts: APITimeoutConfig{
				Read:  30,
				Write: 30,
				Idle:  60,
			},
		},
		Logging: LoggingConfig{
			Level:  "warn",
			Format: "text",
			Output: "stderr",
		},
	}
}

// applyEnvOverrides applies GRAYHUB_* environment variables to cfg.
func applyEnvOverrides(cfg *Config) error {
	var o envOverrides
	if err := env.Parse(&o); err != nil {
		return fmt.Errorf("parsing environment: %w", err)
	}

	set(&cfg.Hub.ID, o.HubID)
	set(&cfg.Database.Path, o.DatabasePath)
	set(&cfg.MQTT.Enabled, o.MQTTEnabled)
	set(&cfg.MQTT.Broker.Host, o.MQTTHost)
	set(&cfg.MQTT.Broker.Port, o.MQTTPort)
	set(&cfg.MQTT.Auth.Username, o.MQTTUsername)
	set(&cfg.MQTT.Auth.Password, o.MQTTPassword)
	set(&cfg.InfluxDB.Enabled, o.InfluxEnabled)
	set(&cfg.InfluxDB.URL, o.InfluxURL)
	set(&cfg.InfluxDB.Token, o.InfluxToken)
	set(&cfg.API.Enabled, o.APIEnabled)
	set(&cfg.API.Host, o.APIHost)
	set(&cfg.API.Port, o.APIPort)
	set(&cfg.Logging.Level, o.LogLevel)
	set(&cfg.Logging.Format, o.LogFormat)
	set(&cfg.Logging.Output, o.LogOutput)
	return nil
}

func set[T any](dst *T, v *T) {
	if v != nil {
		*dst = *v
	}
}

// Validate checks the configuration and reports every problem found.
//
// Returns:
//   - error: All validation failures joined, or nil if valid
func (c *Config) Validate() error {
	var errs []error

	if c.Hub.ID == "" {
		errs = append(errs, errors.New("hub.id is required"))
	}
	if c.Database.Path == "" {
		errs = append(errs, errors.New("database.path is required"))
	}

	if c.MQTT.Enabled {
		if c.MQTT.Broker.Host == "" {
			errs = append(errs, errors.New("mqtt.broker.host is required when mqtt is enabled"))
		}
		if !validPort(c.MQTT.Broker.Port) {
			errs = append(errs, errors.New("mqtt.broker.port must be between 1 and 65535"))
		}
	}
	if c.MQTT.QoS < 0 || c.MQTT.QoS > 2 {
		errs = append(errs, errors.New("mqtt.qos must be 0, 1, or 2"))
	}

	if c.InfluxDB.Enabled {
		if c.InfluxDB.URL == "" {
			errs = append(errs, errors.New("influxdb.url is required when influxdb is enabled"))
		}
		if c.InfluxDB.Bucket == "" {
			errs = append(errs, errors.New("influxdb.bucket is required when influxdb is enabled"))
		}
	}

	if c.API.Enabled && !validPort(c.API.Port) {
		errs = append(errs, errors.New("api.port must be between 1 and 65535"))
	}

	for i, e := range c.Catalog {
		if err := e.validate(); err != nil {
			errs = append(errs, fmt.Errorf("catalog[%d]: %w", i, err))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuration errors: %w", errors.Join(errs...))
	}
	return nil
}

// validate checks the shape of an entry. Command-specific checks happen
// when the entry is built into a command.
func (e CatalogEntry) validate() error {
	if e.Command == "" {
		return errors.New("command is required")
	}
	for i, child := range e.Children {
		if err := child.validate(); err != nil {
			return fmt.Errorf("children[%d]: %w", i, err)
		}
	}
	return nil
}

func validPort(p int) bool { return p >= 1 && p <= 65535 }

// GetReadTimeout returns the API read timeout as a Duration.
func (c *Config) GetReadTimeout() time.Duration {
	return time.Duration(c.API.Timeouts.Read) * time.Second
}

// GetWriteTimeout returns the API write timeout as a Duration.
func (c *Config) GetWriteTimeout() time.Duration {
	return time.Duration(c.API.Timeouts.Write) * time.Second
}

// GetIdleTimeout returns the API idle timeout as a Duration.
func (c *Config) GetIdleTimeout() time.Duration {
	return time.Duration(c.API.Timeouts.Idle) * time.Second
}
