// msiecd - MSI Embedded Controller daemon
//
// msiecd exposes the laptop's EC feature registers (shift mode, fan
// mode, battery charge thresholds, cooler boost, keyboard backlight
// and friends) over a local REST API, MQTT and WebSocket, with every
// write validated against the model's hardware profile and recorded
// in an audit trail.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	_ "github.com/openlaptop/msiec-core/migrations"

	"github.com/openlaptop/msiec-core/internal/api"
	"github.com/openlaptop/msiec-core/internal/attr"
	"github.com/openlaptop/msiec-core/internal/audit"
	"github.com/openlaptop/msiec-core/internal/bridge"
	"github.com/openlaptop/msiec-core/internal/ec"
	"github.com/openlaptop/msiec-core/internal/infrastructure/config"
	"github.com/openlaptop/msiec-core/internal/infrastructure/database"
	"github.com/openlaptop/msiec-core/internal/infrastructure/influxdb"
	"github.com/openlaptop/msiec-core/internal/infrastructure/logging"
	"github.com/openlaptop/msiec-core/internal/infrastructure/mqtt"
	"github.com/openlaptop/msiec-core/internal/profile"
	"github.com/openlaptop/msiec-core/internal/telemetry"
)

// Version information - set at build time via ldflags
// Example: go build -ldflags "-X main.version=1.0.0 -X main.commit=abc123"
var (
	version = "dev"     // Semantic version (e.g., "1.0.0")
	commit  = "unknown" // Git commit hash
	date    = "unknown" // Build date
)

// Default configuration file path
const defaultConfigPath = "configs/config.yaml"

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// run is the actual application logic, separated from main for testability.
// Returning an error allows main to handle exit codes consistently.
//
// Parameters:
//   - ctx: Context for cancellation and shutdown signals
//
// Returns:
//   - error: nil on clean shutdown, or error describing failure
func run(ctx context.Context) error {
	// Use default logger until config is loaded
	log := logging.Default()
	log.Info("starting msiecd",
		"version", version,
		"commit", commit,
		"build_date", date,
	)

	// Load configuration
	configPath := getConfigPath()
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	log.Info("configuration loaded", "path", configPath)

	// Reinitialise logger with config settings
	log = logging.New(cfg.Logging, version)
	log.Info("logger initialised",
		"level", cfg.Logging.Level,
		"format", cfg.Logging.Format,
	)

	// Open the EC register file
	transport, err := ec.OpenFile(cfg.EC.IOPath)
	if err != nil {
		return fmt.Errorf("opening EC register file: %w", err)
	}
	defer func() {
		if closeErr := transport.Close(); closeErr != nil {
			log.Error("error closing EC register file", "error", closeErr)
		}
	}()
	controller := ec.New(transport)
	log.Info("EC register file opened", "path", cfg.EC.IOPath)

	// Resolve the hardware profile from the firmware version
	resolver := profile.NewResolver(log.Logger,
		profile.WithFirmwareOverride(cfg.EC.FirmwareOverride),
		profile.WithDebug(cfg.EC.Debug),
	)
	prof, firmware, err := resolver.Resolve(controller)
	if err != nil {
		return fmt.Errorf("resolving hardware profile: %w", err)
	}
	log.Info("hardware profile resolved", "profile", prof.Name, "firmware", firmware)

	// Build the attribute registry over the resolved profile
	registry := attr.NewRegistry(controller, prof)
	log.Info("attribute registry built", "attributes", len(registry.List()))

	var debug *attr.Debug
	if cfg.EC.Debug {
		debug = attr.NewDebug(controller)
		log.Warn("debug mode active, raw register access is exposed")
	}

	// Open database and run migrations
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
	log.Info("database ready", "path", cfg.Database.Path)

	auditRepo := audit.NewSQLiteRepository(db.DB)

	// Connect to MQTT broker (optional)
	var mqttClient *mqtt.Client
	var mqttBridge *bridge.Bridge
	if cfg.MQTT.Enabled {
		mqttClient, err = mqtt.Connect(cfg.MQTT)
		if err != nil {
			return fmt.Errorf("connecting to MQTT: %w", err)
		}
		defer func() {
			log.Info("disconnecting from MQTT")
			if closeErr := mqttClient.Close(); closeErr != nil {
				log.Error("error closing MQTT", "error", closeErr)
			}
		}()
		mqttClient.SetLogger(log)
		log.Info("MQTT connected",
			"broker", fmt.Sprintf("%s:%d", cfg.MQTT.Broker.Host, cfg.MQTT.Broker.Port),
			"client_id", cfg.MQTT.Broker.ClientID,
		)

		mqttBridge = bridge.New(mqttClient, registry, auditRepo, log, byte(cfg.MQTT.QoS))
		if err := mqttBridge.Start(); err != nil {
			return fmt.Errorf("starting MQTT bridge: %w", err)
		}
		log.Info("MQTT bridge started")
	} else {
		log.Info("MQTT disabled")
	}

	// Connect to InfluxDB (optional)
	var influxClient *influxdb.Client
	if cfg.InfluxDB.Enabled {
		influxClient, err = influxdb.Connect(cfg.InfluxDB)
		if err != nil {
			return fmt.Errorf("connecting to InfluxDB: %w", err)
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
		log.Info("InfluxDB connected",
			"url", cfg.InfluxDB.URL,
			"org", cfg.InfluxDB.Org,
			"bucket", cfg.InfluxDB.Bucket,
		)
	} else {
		log.Info("InfluxDB disabled")
	}

	// WebSocket hub is shared between the API server and the sampler
	hub := api.NewHub(cfg.WebSocket, log)
	go hub.Run(ctx)

	// Start the API server
	var state api.StateBroadcaster
	if mqttBridge != nil {
		state = mqttBridge
	}
	server, err := api.New(api.Deps{
		Config:   cfg.API,
		WS:       cfg.WebSocket,
		Security: cfg.Security,
		Logger:   log,
		Registry: registry,
		Profile:  prof,
		Audit:    auditRepo,
		Debug:    debug,
		State:    state,
		Hub:      hub,
		Version:  version,
	})
	if err != nil {
		return fmt.Errorf("creating API server: %w", err)
	}
	if err := server.Start(ctx); err != nil {
		return fmt.Errorf("starting API server: %w", err)
	}
	defer func() {
		if closeErr := server.Close(); closeErr != nil {
			log.Error("error closing API server", "error", closeErr)
		}
	}()

	// Start the telemetry sampler
	if cfg.Telemetry.Enabled {
		sampler := telemetry.NewSampler(registry, cfg.GetTelemetryInterval(), log, hub)
		if mqttBridge != nil {
			sampler.AddSink(mqttBridge)
		}
		if influxClient != nil {
			sampler.AddSink(influxSink(influxClient))
		}
		go sampler.Run(ctx)
		log.Info("telemetry sampler started", "interval", cfg.GetTelemetryInterval())
	} else {
		log.Info("telemetry disabled")
	}

	// Verify all connections are healthy
	if err := healthCheck(ctx, db, mqttClient, influxClient, server); err != nil {
		return fmt.Errorf("health check failed: %w", err)
	}
	log.Info("all health checks passed")

	log.Info("initialisation complete, waiting for shutdown signal")
	<-ctx.Done()

	log.Info("shutdown signal received, cleaning up")

	// Deferred Close() calls run in reverse order:
	// 1. API server
	// 2. InfluxDB (if enabled)
	// 3. MQTT (if enabled)
	// 4. Database
	// 5. EC register file

	log.Info("msiecd stopped")
	return nil
}

// influxSink adapts the InfluxDB client to the telemetry sink interface.
func influxSink(client *influxdb.Client) telemetry.Sink {
	return telemetry.SinkFunc(func(s telemetry.Sample) {
		if s.CPUTemperature != nil {
			client.WriteThermal("cpu", float64(*s.CPUTemperature))
		}
		if s.GPUTemperature != nil {
			client.WriteThermal("gpu", float64(*s.GPUTemperature))
		}
		if s.CPUFanSpeed != nil {
			client.WriteFanSpeed("cpu", float64(*s.CPUFanSpeed), "percent")
		}
		if s.GPUFanSpeedRaw != nil {
			client.WriteFanSpeed("gpu", float64(*s.GPUFanSpeedRaw), "raw")
		}
	})
}

// getConfigPath returns the configuration file path.
// Uses MSIEC_CONFIG environment variable if set, otherwise default.
func getConfigPath() string {
	if path := os.Getenv("MSIEC_CONFIG"); path != "" {
		return path
	}
	return defaultConfigPath
}

// healthCheck verifies all infrastructure connections are healthy.
//
// Parameters:
//   - ctx: Context for timeout/cancellation
//   - db: Database connection to check
//   - mqttClient: MQTT client to check (may be nil if disabled)
//   - influxClient: InfluxDB client to check (may be nil if disabled)
//   - server: API server to check
//
// Returns:
//   - error: First health check failure, or nil if all healthy
func healthCheck(ctx context.Context, db *database.DB, mqttClient *mqtt.Client, influxClient *influxdb.Client, server *api.Server) error {
	if err := db.HealthCheck(ctx); err != nil {
		return fmt.Errorf("database: %w", err)
	}

	if mqttClient != nil {
		if err := mqttClient.HealthCheck(ctx); err != nil {
			return fmt.Errorf("mqtt: %w", err)
		}
	}

	if influxClient != nil {
		if err := influxClient.HealthCheck(ctx); err != nil {
			return fmt.Errorf("influxdb: %w", err)
		}
	}

	if err := server.HealthCheck(ctx); err != nil {
		return fmt.Errorf("api: %w", err)
	}

	return nil
}
