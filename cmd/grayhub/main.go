// Gray Logic Hub - smart-home command hub
//
// This is the main entry point for the hub. It loads the configuration,
// opens the history database, registers the command catalog, attaches a
// strategy user and serves it through an interactive console, with an
// optional read-only HTTP API and MQTT/InfluxDB mirrors of hub activity.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	_ "github.com/nerrad567/gray-logic-hub/migrations"

	"github.com/nerrad567/gray-logic-hub/internal/api"
	"github.com/nerrad567/gray-logic-hub/internal/audit"
	"github.com/nerrad567/gray-logic-hub/internal/command"
	"github.com/nerrad567/gray-logic-hub/internal/console"
	"github.com/nerrad567/gray-logic-hub/internal/hub"
	"github.com/nerrad567/gray-logic-hub/internal/infrastructure/config"
	"github.com/nerrad567/gray-logic-hub/internal/infrastructure/database"
	"github.com/nerrad567/gray-logic-hub/internal/infrastructure/influxdb"
	"github.com/nerrad567/gray-logic-hub/internal/infrastructure/logging"
	"github.com/nerrad567/gray-logic-hub/internal/infrastructure/mqtt"
	"github.com/nerrad567/gray-logic-hub/internal/strategy"
)

// Version information - set at build time via ldflags
// Example: go build -ldflags "-X main.version=1.0.0 -X main.commit=abc123"
var (
	version = "dev"     // Semantic version, also reported by the control device
	commit  = "unknown" // Git commit hash
	date    = "unknown" // Build date
)

// options are the command-line flags.
type options struct {
	configPath string // empty: GRAYHUB_CONFIG or configs/config.yaml
	headless   bool   // no console; run until signalled
}

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	opts, err := parseFlags(os.Args[1:], os.Stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return
		}
		os.Exit(2)
	}

	if err := run(ctx, opts); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func parseFlags(args []string, stderr io.Writer) (options, error) {
	var opts options
	fs := flag.NewFlagSet("grayhub", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&opts.configPath, "config", "", "Configuration file path (default $"+config.EnvConfigPath+" or "+config.DefaultPath+")")
	fs.BoolVar(&opts.headless, "headless", false, "Run without the interactive console")
	if err := fs.Parse(args); err != nil {
		return options{}, err
	}
	return opts, nil
}

// run is the application logic, separated from main for testability.
//
// Returns:
//   - error: nil on clean shutdown, or error describing failure
func run(ctx context.Context, opts options) error {
	log := logging.Default()

	cfg, err := loadConfig(opts.configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	var con *console.Console
	if !opts.headless {
		con, err = console.New()
		if err != nil {
			return fmt.Errorf("starting console: %w", err)
		}
		defer con.Close()
	}

	log = newLogger(cfg.Logging, promptWriter(con))
	log.Info("starting Gray Logic Hub",
		"hub_id", cfg.Hub.ID,
		"version", version,
		"commit", commit,
		"build_date", date,
	)

	db, err := database.Open(database.Config{
		Path:        cfg.Database.Path,
		WALMode:     cfg.Database.WALMode,
		BusyTimeout: cfg.Database.BusyTimeout,
	})
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer func() {
		log.Info("closing database")
		if closeErr := db.Close(); closeErr != nil {
			log.Error("error closing database", "error", closeErr)
		}
	}()
	if migrateErr := db.Migrate(ctx); migrateErr != nil {
		return fmt.Errorf("running migrations: %w", migrateErr)
	}
	log.Info("database ready", "path", db.Path())

	executions := strategy.NewSQLiteRepository(db.DB)
	auditRepo := audit.NewSQLiteRepository(db.DB)
	checks := map[string]api.HealthChecker{"database": db}

	h := hub.New(version)
	h.SetLogger(log.With("component", "hub"))
	recorder := audit.NewRecorder(auditRepo)
	recorder.SetLogger(log.With("component", "audit"))
	h.SetEventSink(recorder)

	var sinks []strategy.StateSink

	if cfg.MQTT.Enabled {
		mqttClient, mqttErr := mqtt.Connect(cfg.MQTT, cfg.Hub.ID)
		if mqttErr != nil {
			return fmt.Errorf("connecting to MQTT: %w", mqttErr)
		}
		defer func() {
			log.Info("disconnecting from MQTT")
			if closeErr := mqttClient.Close(); closeErr != nil {
				log.Error("error closing MQTT", "error", closeErr)
			}
		}()
		mqttClient.SetLogger(log.With("component", "mqtt"))

		publisher := mqtt.NewHubPublisher(mqttClient, cfg.Hub.ID)
		h.SetPublisher(publisher)
		sinks = append(sinks, publisher)
		checks["mqtt"] = mqttClient
		log.Info("MQTT connected",
			"broker", fmt.Sprintf("%s:%d", cfg.MQTT.Broker.Host, cfg.MQTT.Broker.Port),
			"client_id", cfg.MQTT.Broker.ClientID,
		)
	} else {
		log.Info("MQTT disabled")
	}

	if cfg.InfluxDB.Enabled {
		influxClient, influxErr := influxdb.Connect(cfg.InfluxDB, cfg.Hub.ID)
		if influxErr != nil {
			return fmt.Errorf("connecting to InfluxDB: %w", influxErr)
		}
		defer func() {
			log.Info("closing InfluxDB connection")
			if closeErr := influxClient.Close(); closeErr != nil {
				log.Error("error closing InfluxDB", "error", closeErr)
			}
		}()
		influxClient.SetOnError(func(err error) {
			log.Error("InfluxDB write error", "error", err)
		})

		sinks = append(sinks, influxClient)
		checks["influxdb"] = influxClient
		log.Info("InfluxDB connected",
			"url", cfg.InfluxDB.URL,
			"org", cfg.InfluxDB.Org,
			"bucket", cfg.InfluxDB.Bucket,
		)
	} else {
		log.Info("InfluxDB disabled")
	}

	if regErr := registerCatalog(h, catalogSpecs(cfg.Catalog)); regErr != nil {
		return regErr
	}
	log.Info("catalog registered", "commands", h.Catalog().Len())

	user := newUser(h, executions, sinks, log)
	h.Attach(user)
	h.Notify()

	if cfg.API.Enabled {
		server, apiErr := api.New(api.Deps{
			Config:     cfg.API,
			Logger:     log.With("component", "api"),
			Hub:        h,
			Executions: executions,
			Audit:      auditRepo,
			Checks:     checks,
			Version:    version,
		})
		if apiErr != nil {
			return fmt.Errorf("creating API server: %w", apiErr)
		}
		if startErr := server.Start(ctx); startErr != nil {
			return fmt.Errorf("starting API server: %w", startErr)
		}
		defer func() {
			if closeErr := server.Close(); closeErr != nil {
				log.Error("error closing API server", "error", closeErr)
			}
		}()
	} else {
		log.Info("HTTP API disabled")
	}

	runCtx, runCancel := context.WithCancel(ctx)
	defer runCancel()

	if opts.headless {
		log.Info("running headless, waiting for shutdown signal")
	} else {
		con.SetUser(h, user)
		go con.Run(runCtx, runCancel)
	}

	<-runCtx.Done()

	log.Info("shutting down")
	h.Detach(user)
	return nil
}

// promptWriter returns the console's prompt-aware writer, or nil when
// running headless.
func promptWriter(con *console.Console) io.Writer {
	if con == nil {
		return nil
	}
	return con.Stdout()
}

// newLogger builds the process logger. With a console prompt open, log
// lines bound for the terminal are written through the prompt so they do
// not garble the input line; "discard" stays discarded.
func newLogger(cfg config.LoggingConfig, prompt io.Writer) *logging.Logger {
	if prompt == nil || strings.EqualFold(cfg.Output, "discard") || strings.EqualFold(cfg.Output, "none") {
		return logging.New(cfg, version)
	}
	return logging.NewWithWriter(cfg, version, prompt)
}

// loadConfig reads path when given, otherwise falls back to
// GRAYHUB_CONFIG, the default path, or built-in defaults.
func loadConfig(path string) (*config.Config, error) {
	if path != "" {
		return config.Load(path)
	}
	return config.LoadDefault()
}

// catalogSpecs converts configured catalog entries to command specs. An
// empty catalog yields the built-in default catalog.
func catalogSpecs(entries []config.CatalogEntry) []command.Spec {
	if len(entries) == 0 {
		return command.DefaultSpecs()
	}
	return toSpecs(entries)
}

func toSpecs(entries []config.CatalogEntry) []command.Spec {
	if len(entries) == 0 {
		return nil
	}
	specs := make([]command.Spec, len(entries))
	for i, e := range entries {
		specs[i] = command.Spec{
			Command:  e.Command,
			Level:    e.Level,
			By:       e.By,
			Regime:   e.Regime,
			Song:     e.Song,
			Name:     e.Name,
			Children: toSpecs(e.Children),
		}
	}
	return specs
}

// registerCatalog builds every spec and registers the commands in order.
func registerCatalog(h *hub.Hub, specs []command.Spec) error {
	cmds, err := command.BuildAll(specs)
	if err != nil {
		return fmt.Errorf("building catalog: %w", err)
	}
	for _, cmd := range cmds {
		if err := h.Register(cmd); err != nil {
			return fmt.Errorf("registering %q: %w", cmd.Name(), err)
		}
	}
	return nil
}

// newUser creates the console's strategy user, executing through the hub
// and recording executions and device state to every configured sink.
func newUser(h *hub.Hub, rec strategy.Recorder, sinks []strategy.StateSink, log *logging.Logger) *strategy.User {
	opts := []strategy.Option{
		strategy.WithExecutor(h),
		strategy.WithRecorder(rec),
		strategy.WithLogger(log.With("component", "strategy")),
	}
	for _, s := range sinks {
		opts = append(opts, strategy.WithStateSink(s))
	}
	return strategy.NewUser(strategy.UUIDGenerator{}, opts...)
}
