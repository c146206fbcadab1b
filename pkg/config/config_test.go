package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/unklstewy/gcs-pfd/pkg/format"
	"github.com/unklstewy/gcs-pfd/pkg/pfd"
)

// TestDefaultConfig verifies that DefaultConfig returns valid defaults.
func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	// Server defaults
	if cfg.Server.Port != "8080" {
		t.Errorf("Expected default port 8080, got %s", cfg.Server.Port)
	}
	if cfg.Server.Host != "0.0.0.0" {
		t.Errorf("Expected default host 0.0.0.0, got %s", cfg.Server.Host)
	}
	if cfg.Server.TLSEnabled {
		t.Error("Expected TLS disabled by default")
	}

	// Database defaults
	if cfg.Database.Driver != "postgres" {
		t.Errorf("Expected postgres driver, got %s", cfg.Database.Driver)
	}
	if cfg.Database.Port != 5432 {
		t.Errorf("Expected default postgres port 5432, got %d", cfg.Database.Port)
	}
	if cfg.Database.MaxOpenConns != 25 {
		t.Errorf("Expected max open conns 25, got %d", cfg.Database.MaxOpenConns)
	}

	// Telemetry defaults
	if cfg.Telemetry.Source != "database" {
		t.Errorf("Expected database source, got %s", cfg.Telemetry.Source)
	}
	if cfg.Telemetry.RefreshInterval() != 200*time.Millisecond {
		t.Errorf("Expected 200ms refresh, got %v", cfg.Telemetry.RefreshInterval())
	}

	// Auth defaults
	if cfg.Auth.TokenDuration() != 12*time.Hour {
		t.Errorf("Expected 12h tokens, got %v", cfg.Auth.TokenDuration())
	}

	if err := cfg.Validate(); err != nil {
		t.Errorf("Expected defaults to validate, got %v", err)
	}
}

// TestLoadNonExistentFile tests that Load returns default config when file doesn't exist.
func TestLoadNonExistentFile(t *testing.T) {
	cfg, err := Load("/nonexistent/path/config.json")
	if err != nil {
		t.Fatalf("Expected no error for non-existent file, got: %v", err)
	}
	if cfg.Server.Port != "8080" {
		t.Errorf("Expected default port, got %s", cfg.Server.Port)
	}
}

// TestLoadValidConfig tests loading a JSON config and a YAML config.
func TestLoadValidConfig(t *testing.T) {
	tmpDir := t.TempDir()

	t.Run("JSON", func(t *testing.T) {
		configPath := filepath.Join(tmpDir, "config.json")
		content := `{
			"server": {"port": "9090", "host": "127.0.0.1"},
			"database": {"driver": "sqlite3", "path": "/var/lib/pfd.db"},
			"display": {"speed_unit": "km/h", "altitude_unit": "ft"},
			"telemetry": {"source": "database", "vehicle_id": "uav-7", "refresh_interval_millis": 500}
		}`
		if err := os.WriteFile(configPath, []byte(content), 0644); err != nil {
			t.Fatalf("Failed to write test config: %v", err)
		}

		cfg, err := Load(configPath)
		if err != nil {
			t.Fatalf("Failed to load config: %v", err)
		}
		if cfg.Server.Port != "9090" {
			t.Errorf("Expected port 9090, got %s", cfg.Server.Port)
		}
		if cfg.Database.Driver != "sqlite3" || cfg.Database.Path != "/var/lib/pfd.db" {
			t.Errorf("Expected sqlite3 at /var/lib/pfd.db, got %s %s", cfg.Database.Driver, cfg.Database.Path)
		}
		if cfg.Telemetry.VehicleID != "uav-7" {
			t.Errorf("Expected vehicle uav-7, got %s", cfg.Telemetry.VehicleID)
		}
		// Omitted fields keep their defaults
		if cfg.Database.MaxOpenConns != 25 {
			t.Errorf("Expected default max open conns, got %d", cfg.Database.MaxOpenConns)
		}
	})

	t.Run("YAML", func(t *testing.T) {
		configPath := filepath.Join(tmpDir, "config.yaml")
		content := `
server:
  port: "8181"
display:
  fallback_latitude: 45.5
  fallback_longitude: -73.6
  time_mode: predefined
  date_time: "2016-03-01T12:00:00Z"
telemetry:
  source: file
  file: flight.json
  refresh_interval_millis: 100
`
		if err := os.WriteFile(configPath, []byte(content), 0644); err != nil {
			t.Fatalf("Failed to write test config: %v", err)
		}

		cfg, err := Load(configPath)
		if err != nil {
			t.Fatalf("Failed to load config: %v", err)
		}
		if cfg.Server.Port != "8181" {
			t.Errorf("Expected port 8181, got %s", cfg.Server.Port)
		}
		if cfg.Telemetry.Source != "file" || cfg.Telemetry.File != "flight.json" {
			t.Errorf("Expected file source flight.json, got %s %s", cfg.Telemetry.Source, cfg.Telemetry.File)
		}
		if cfg.Display.FallbackLatitude != 45.5 {
			t.Errorf("Expected fallback latitude 45.5, got %f", cfg.Display.FallbackLatitude)
		}
	})
}

// TestLoadInvalidConfig tests that parse and validation errors are reported.
func TestLoadInvalidConfig(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		content string
	}{
		{"Invalid JSON", "config.json", `{"server": {"port": }`},
		{"Invalid YAML", "config.yml", "server: [unclosed"},
		{"Unknown driver", "config.json", `{"database": {"driver": "mysql"}}`},
		{"File source without file", "config.json", `{"telemetry": {"source": "file"}}`},
		{"Unknown source", "config.json", `{"telemetry": {"source": "mavlink"}}`},
		{"Zero refresh", "config.json", `{"telemetry": {"refresh_interval_millis": 0}}`},
		{"Unknown speed unit", "config.json", `{"display": {"speed_unit": "furlongs"}}`},
		{"Predefined without date", "config.json", `{"display": {"time_mode": "predefined"}}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			configPath := filepath.Join(t.TempDir(), tt.file)
			if err := os.WriteFile(configPath, []byte(tt.content), 0644); err != nil {
				t.Fatalf("Failed to write test config: %v", err)
			}
			if _, err := Load(configPath); err == nil {
				t.Error("Expected error, got nil")
			}
		})
	}
}

// TestSaveConfig tests saving configuration to file.
func TestSaveConfig(t *testing.T) {
	tmpDir := t.TempDir()

	t.Run("JSON", func(t *testing.T) {
		configPath := filepath.Join(tmpDir, "config.json")
		cfg := DefaultConfig()
		cfg.Server.Port = "9999"

		if err := cfg.Save(configPath); err != nil {
			t.Fatalf("Failed to save config: %v", err)
		}

		data, err := os.ReadFile(configPath)
		if err != nil {
			t.Fatalf("Failed to read saved config: %v", err)
		}
		var loaded Config
		if err := json.Unmarshal(data, &loaded); err != nil {
			t.Fatalf("Saved config is not valid JSON: %v", err)
		}
		if loaded.Server.Port != "9999" {
			t.Errorf("Expected port 9999, got %s", loaded.Server.Port)
		}
	})

	t.Run("YAML", func(t *testing.T) {
		configPath := filepath.Join(tmpDir, "config.yaml")
		if err := DefaultConfig().Save(configPath); err != nil {
			t.Fatalf("Failed to save config: %v", err)
		}
		data, err := os.ReadFile(configPath)
		if err != nil {
			t.Fatalf("Failed to read saved config: %v", err)
		}
		if !strings.Contains(string(data), "refresh_interval_millis: 200") {
			t.Errorf("Expected YAML output, got:\n%s", data)
		}
	})
}

// TestSaveConfigCreatesDirectory tests that Save creates parent directories.
func TestSaveConfigCreatesDirectory(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "subdir", "nested", "config.json")

	if err := DefaultConfig().Save(configPath); err != nil {
		t.Fatalf("Failed to save config: %v", err)
	}
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		t.Error("Config file was not created")
	}
}

// TestEnvironmentOverrides tests environment variable overrides.
func TestEnvironmentOverrides(t *testing.T) {
	t.Setenv("GCS_PFD_PORT", "7777")
	t.Setenv("GCS_PFD_DB_PASSWORD", "env-password")
	t.Setenv("GCS_PFD_JWT_SECRET", "env-secret")
	t.Setenv("GCS_PFD_VEHICLE_ID", "env-vehicle")
	t.Setenv("GCS_PFD_REFRESH_MILLIS", "250")

	configPath := filepath.Join(t.TempDir(), "config.json")
	testCfg := DefaultConfig()
	testCfg.Database.Password = "original-password"
	if err := testCfg.Save(configPath); err != nil {
		t.Fatalf("Failed to save config: %v", err)
	}

	cfg, err := Load(configPath)
	if err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}

	if cfg.Server.Port != "7777" {
		t.Errorf("Expected port 7777 from env, got %s", cfg.Server.Port)
	}
	if cfg.Database.Password != "env-password" {
		t.Errorf("Expected env-password from env, got %s", cfg.Database.Password)
	}
	if cfg.Auth.JWTSecret != "env-secret" {
		t.Errorf("Expected env-secret from env, got %s", cfg.Auth.JWTSecret)
	}
	if cfg.Telemetry.VehicleID != "env-vehicle" {
		t.Errorf("Expected env-vehicle from env, got %s", cfg.Telemetry.VehicleID)
	}
	if cfg.Telemetry.RefreshIntervalMillis != 250 {
		t.Errorf("Expected refresh 250 from env, got %d", cfg.Telemetry.RefreshIntervalMillis)
	}
}

// TestDisplayContext tests conversion of display preferences into a derivation context.
func TestDisplayContext(t *testing.T) {
	t.Run("Defaults", func(t *testing.T) {
		ctx, err := DefaultConfig().Display.Context()
		if err != nil {
			t.Fatalf("Context failed: %v", err)
		}
		if ctx.TimeMode != format.TimeLocal {
			t.Errorf("Expected local time mode, got %v", ctx.TimeMode)
		}
		if ctx.SpeedFactor != pfd.SpeedFactorMetersPerSecond || ctx.AltitudeUnit != "m" {
			t.Errorf("Expected metric units, got %+v", ctx)
		}
	})

	t.Run("Imperial predefined", func(t *testing.T) {
		d := DisplayConfig{
			FallbackLatitude:  45.5,
			FallbackLongitude: -73.6,
			FallbackAltitude:  30,
			TimeMode:          "Predefined",
			DateTime:          "2016-03-01T12:00:00Z",
			SpeedUnit:         "knots",
			AltitudeUnit:      "ft",
		}
		ctx, err := d.Context()
		if err != nil {
			t.Fatalf("Context failed: %v", err)
		}
		if ctx.TimeMode != format.TimePredefined {
			t.Errorf("Expected predefined time mode, got %v", ctx.TimeMode)
		}
		want := time.Date(2016, 3, 1, 12, 0, 0, 0, time.UTC)
		if !ctx.DateTime.Equal(want) {
			t.Errorf("Expected %v, got %v", want, ctx.DateTime)
		}
		if ctx.SpeedFactor != pfd.SpeedFactorKnots || ctx.SpeedUnit != "knots" {
			t.Errorf("Expected knots, got %f %s", ctx.SpeedFactor, ctx.SpeedUnit)
		}
		if ctx.AltitudeFactor != pfd.AltitudeFactorFeet {
			t.Errorf("Expected feet, got %f", ctx.AltitudeFactor)
		}
		if ctx.Fallback.Latitude != 45.5 || ctx.Fallback.Longitude != -73.6 || ctx.Fallback.Altitude != 30 {
			t.Errorf("Unexpected fallback %+v", ctx.Fallback)
		}
	})

	t.Run("Bad time mode", func(t *testing.T) {
		if _, err := (DisplayConfig{TimeMode: "utc"}).Context(); err == nil {
			t.Error("Expected error for unknown time mode")
		}
	})
}

// TestTelemetryRetry tests the backoff settings derived from the telemetry section.
func TestTelemetryRetry(t *testing.T) {
	tc := TelemetryConfig{MaxRetries: 5, RetryDelayMillis: 50}
	rc := tc.Retry()
	if rc.MaxRetries != 5 {
		t.Errorf("Expected 5 retries, got %d", rc.MaxRetries)
	}
	if rc.InitialDelay != 50*time.Millisecond {
		t.Errorf("Expected 50ms initial delay, got %v", rc.InitialDelay)
	}
	if rc.MaxDelay != 2*time.Second {
		t.Errorf("Expected default max delay, got %v", rc.MaxDelay)
	}

	// Zero delay keeps the default
	if got := (TelemetryConfig{}).Retry().InitialDelay; got != 100*time.Millisecond {
		t.Errorf("Expected default initial delay, got %v", got)
	}
}

// TestConfigRoundTrip tests saving and loading config preserves data.
func TestConfigRoundTrip(t *testing.T) {
	for _, name := range []string{"roundtrip.json", "roundtrip.yaml"} {
		t.Run(name, func(t *testing.T) {
			configPath := filepath.Join(t.TempDir(), name)

			original := DefaultConfig()
			original.Server.Port = "3000"
			original.Server.TLSEnabled = true
			original.Display.FallbackLatitude = 35.1234
			original.Display.SpeedUnit = "mph"
			original.Auth.Operators = []OperatorConfig{
				{Username: "pilot", PasswordHash: "$2a$10$abc", Role: "operator"},
			}

			if err := original.Save(configPath); err != nil {
				t.Fatalf("Failed to save: %v", err)
			}
			loaded, err := Load(configPath)
			if err != nil {
				t.Fatalf("Failed to load: %v", err)
			}

			if loaded.Server.Port != original.Server.Port {
				t.Error("Port not preserved in round trip")
			}
			if loaded.Server.TLSEnabled != original.Server.TLSEnabled {
				t.Error("TLS setting not preserved in round trip")
			}
			if loaded.Display.FallbackLatitude != original.Display.FallbackLatitude {
				t.Error("Fallback latitude not preserved in round trip")
			}
			if loaded.Display.SpeedUnit != "mph" {
				t.Error("Speed unit not preserved in round trip")
			}
			if len(loaded.Auth.Operators) != 1 || loaded.Auth.Operators[0].Role != "operator" {
				t.Error("Operators not preserved in round trip")
			}
		})
	}
}
