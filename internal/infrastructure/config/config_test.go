package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeTempConfig(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("writing temp config: %v", err)
	}
	return path
}

func TestLoadDefaults(t *testing.T) {
	path := writeTempConfig(t, "ec:\n  io_path: /tmp/ec-io\n")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.EC.IOPath != "/tmp/ec-io" {
		t.Errorf("EC.IOPath = %q, want /tmp/ec-io", cfg.EC.IOPath)
	}
	if cfg.API.Port != 8925 {
		t.Errorf("API.Port default = %d, want 8925", cfg.API.Port)
	}
	if cfg.API.Host != "127.0.0.1" {
		t.Errorf("API.Host default = %q, want 127.0.0.1", cfg.API.Host)
	}
	if !cfg.Telemetry.Enabled || cfg.Telemetry.Interval != 5 {
		t.Errorf("Telemetry defaults = %+v, want enabled with 5s interval", cfg.Telemetry)
	}
	if cfg.MQTT.Enabled {
		t.Error("MQTT should be disabled by default")
	}
	if cfg.EC.Debug {
		t.Error("EC.Debug should be false by default")
	}
}

func TestLoadFileValues(t *testing.T) {
	path := writeTempConfig(t, `
ec:
  io_path: /sys/kernel/debug/ec/ec0/io
  firmware_override: "16S6EMS1.111"
  debug: true
api:
  port: 9000
mqtt:
  enabled: true
  broker:
    host: broker.local
telemetry:
  interval: 30
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.EC.FirmwareOverride != "16S6EMS1.111" {
		t.Errorf("FirmwareOverride = %q", cfg.EC.FirmwareOverride)
	}
	if !cfg.EC.Debug {
		t.Error("EC.Debug = false, want true")
	}
	if cfg.API.Port != 9000 {
		t.Errorf("API.Port = %d, want 9000", cfg.API.Port)
	}
	if cfg.MQTT.Broker.Host != "broker.local" {
		t.Errorf("MQTT.Broker.Host = %q", cfg.MQTT.Broker.Host)
	}
	if cfg.Telemetry.Interval != 30 {
		t.Errorf("Telemetry.Interval = %d, want 30", cfg.Telemetry.Interval)
	}
}

func TestEnvOverrides(t *testing.T) {
	path := writeTempConfig(t, "ec:\n  io_path: /tmp/ec-io\n")

	t.Setenv("MSIEC_EC_FIRMWARE", "17F2EMS1.104")
	t.Setenv("MSIEC_EC_DEBUG", "true")
	t.Setenv("MSIEC_DATABASE_PATH", "/tmp/msiec-test.db")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.EC.FirmwareOverride != "17F2EMS1.104" {
		t.Errorf("FirmwareOverride = %q, want env value", cfg.EC.FirmwareOverride)
	}
	if !cfg.EC.Debug {
		t.Error("EC.Debug = false, want true from env")
	}
	if cfg.Database.Path != "/tmp/msiec-test.db" {
		t.Errorf("Database.Path = %q, want env value", cfg.Database.Path)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{
			name:   "valid defaults",
			mutate: func(_ *Config) {},
		},
		{
			name:    "missing io path",
			mutate:  func(c *Config) { c.EC.IOPath = "" },
			wantErr: "ec.io_path",
		},
		{
			name:    "bad qos",
			mutate:  func(c *Config) { c.MQTT.QoS = 3 },
			wantErr: "mqtt.qos",
		},
		{
			name:    "bad port",
			mutate:  func(c *Config) { c.API.Port = 0 },
			wantErr: "api.port",
		},
		{
			name:    "zero telemetry interval",
			mutate:  func(c *Config) { c.Telemetry.Interval = 0 },
			wantErr: "telemetry.interval",
		},
		{
			name:    "auth without secret",
			mutate:  func(c *Config) { c.Security.AuthEnabled = true },
			wantErr: "security.jwt.secret",
		},
		{
			name: "auth with short secret",
			mutate: func(c *Config) {
				c.Security.AuthEnabled = true
				c.Security.JWT.Secret = "short"
			},
			wantErr: "at least 32 characters",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)

			err := cfg.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("Validate() error = %v, want nil", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Fatalf("Validate() error = %v, want containing %q", err, tt.wantErr)
			}
		})
	}
}
