package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/unklstewy/gcs-pfd/pkg/coordinates"
	"github.com/unklstewy/gcs-pfd/pkg/format"
	"github.com/unklstewy/gcs-pfd/pkg/pfd"
	"github.com/unklstewy/gcs-pfd/pkg/telemetry"
)

// Config represents the complete ground station configuration.
type Config struct {
	Server    ServerConfig    `json:"server" yaml:"server"`
	Database  DatabaseConfig  `json:"database" yaml:"database"`
	Display   DisplayConfig   `json:"display" yaml:"display"`
	Telemetry TelemetryConfig `json:"telemetry" yaml:"telemetry"`
	Auth      AuthConfig      `json:"auth" yaml:"auth"`
}

// ServerConfig contains HTTP server configuration.
type ServerConfig struct {
	// Port is the HTTP server port (default: 8080)
	Port string `json:"port" yaml:"port"`

	// Host is the server bind address (default: "0.0.0.0")
	Host string `json:"host" yaml:"host"`

	// TLSEnabled determines if HTTPS should be used
	TLSEnabled bool `json:"tls_enabled" yaml:"tls_enabled"`

	// TLSCertFile is the path to the TLS certificate
	TLSCertFile string `json:"tls_cert_file" yaml:"tls_cert_file"`

	// TLSKeyFile is the path to the TLS private key
	TLSKeyFile string `json:"tls_key_file" yaml:"tls_key_file"`

	// AllowedOrigins lists the browser origins allowed by CORS
	AllowedOrigins []string `json:"allowed_origins" yaml:"allowed_origins"`
}

// DatabaseConfig contains snapshot store connection settings.
type DatabaseConfig struct {
	// Driver is the database driver: "postgres" or "sqlite3"
	Driver string `json:"driver" yaml:"driver"`

	// Path is the database file for sqlite3
	Path string `json:"path" yaml:"path"`

	// Host is the database server hostname
	Host string `json:"host" yaml:"host"`

	// Port is the database server port
	Port int `json:"port" yaml:"port"`

	// Database is the database name
	Database string `json:"database" yaml:"database"`

	// Username for database authentication
	Username string `json:"username" yaml:"username"`

	// Password for database authentication (should be loaded from environment)
	Password string `json:"password" yaml:"password"`

	// SSLMode for PostgreSQL connections (disable, require, verify-ca, verify-full)
	SSLMode string `json:"ssl_mode" yaml:"ssl_mode"`

	// MaxOpenConns is the maximum number of open connections
	MaxOpenConns int `json:"max_open_conns" yaml:"max_open_conns"`

	// MaxIdleConns is the maximum number of idle connections
	MaxIdleConns int `json:"max_idle_conns" yaml:"max_idle_conns"`

	// RetentionHours is how long stored snapshots are kept (0 = forever)
	RetentionHours int `json:"retention_hours" yaml:"retention_hours"`
}

// DisplayConfig holds the operator preferences of the flight display.
type DisplayConfig struct {
	// Fallback position shown when there is neither a GPS fix nor a home
	// location. Decimal degrees and meters MSL.
	FallbackLatitude  float64 `json:"fallback_latitude" yaml:"fallback_latitude"`
	FallbackLongitude float64 `json:"fallback_longitude" yaml:"fallback_longitude"`
	FallbackAltitude  float64 `json:"fallback_altitude" yaml:"fallback_altitude"`

	// TimeMode is "local" (wall clock) or "predefined" (DateTime)
	TimeMode string `json:"time_mode" yaml:"time_mode"`

	// DateTime is the RFC 3339 instant shown in predefined mode
	DateTime string `json:"date_time" yaml:"date_time"`

	// SpeedUnit is one of "m/s", "km/h", "mph", "knots"
	SpeedUnit string `json:"speed_unit" yaml:"speed_unit"`

	// AltitudeUnit is "m" or "ft"
	AltitudeUnit string `json:"altitude_unit" yaml:"altitude_unit"`
}

// TelemetryConfig selects where snapshots come from and how often the
// display is refreshed.
type TelemetryConfig struct {
	// Source is "database" or "file"
	Source string `json:"source" yaml:"source"`

	// File is the JSON/YAML recording replayed when Source is "file"
	File string `json:"file" yaml:"file"`

	// VehicleID selects the vehicle read from the database
	VehicleID string `json:"vehicle_id" yaml:"vehicle_id"`

	// RefreshIntervalMillis is the display refresh period
	RefreshIntervalMillis int `json:"refresh_interval_millis" yaml:"refresh_interval_millis"`

	// MaxRetries is how many times a failed source read is retried per tick
	MaxRetries int `json:"max_retries" yaml:"max_retries"`

	// RetryDelayMillis is the first retry delay; later delays double
	RetryDelayMillis int `json:"retry_delay_millis" yaml:"retry_delay_millis"`
}

// AuthConfig holds operator authentication settings.
type AuthConfig struct {
	// JWTSecret signs session tokens (should be loaded from environment)
	JWTSecret string `json:"jwt_secret" yaml:"jwt_secret"`

	// TokenHours is how long a session token is valid
	TokenHours int `json:"token_hours" yaml:"token_hours"`

	// Operators are the accounts allowed to log in
	Operators []OperatorConfig `json:"operators" yaml:"operators"`
}

// OperatorConfig is one ground station account.
type OperatorConfig struct {
	Username string `json:"username" yaml:"username"`

	// PasswordHash is a bcrypt hash, never the plaintext password
	PasswordHash string `json:"password_hash" yaml:"password_hash"`

	// Role is "admin", "operator" or "viewer"
	Role string `json:"role" yaml:"role"`
}

var speedUnits = map[string]float64{
	"m/s":   pfd.SpeedFactorMetersPerSecond,
	"km/h":  pfd.SpeedFactorKilometersHour,
	"mph":   pfd.SpeedFactorMilesHour,
	"knots": pfd.SpeedFactorKnots,
}

var altitudeUnits = map[string]float64{
	"m":  pfd.AltitudeFactorMeters,
	"ft": pfd.AltitudeFactorFeet,
}

// Load reads configuration from a JSON or YAML file (chosen by extension).
// If the file doesn't exist, returns a default configuration.
func Load(path string) (*Config, error) {
	// Check if file exists
	if _, err := os.Stat(path); os.IsNotExist(err) {
		cfg := DefaultConfig()
		cfg.applyEnvironmentOverrides()
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	// Start from defaults so omitted sections keep sensible values
	cfg := DefaultConfig()
	if isYAML(path) {
		err = yaml.Unmarshal(data, cfg)
	} else {
		err = json.Unmarshal(data, cfg)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	// Override with environment variables
	cfg.applyEnvironmentOverrides()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config file %s: %w", path, err)
	}

	return cfg, nil
}

// Save writes the configuration to a JSON or YAML file (chosen by extension).
func (c *Config) Save(path string) error {
	// Create directory if it doesn't exist
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	var (
		data []byte
		err  error
	)
	if isYAML(path) {
		data, err = yaml.Marshal(c)
	} else {
		data, err = json.MarshalIndent(c, "", "  ")
	}
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// DefaultConfig returns a configuration with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Port:           "8080",
			Host:           "0.0.0.0",
			TLSEnabled:     false,
			AllowedOrigins: []string{"http://localhost:*"},
		},
		Database: DatabaseConfig{
			Driver:         "postgres",
			Path:           "gcs-pfd.db",
			Host:           "localhost",
			Port:           5432,
			Database:       "gcspfd",
			Username:       "gcspfd",
			SSLMode:        "disable",
			MaxOpenConns:   25,
			MaxIdleConns:   5,
			RetentionHours: 72,
		},
		Display: DisplayConfig{
			TimeMode:     "local",
			SpeedUnit:    "m/s",
			AltitudeUnit: "m",
		},
		Telemetry: TelemetryConfig{
			Source:                "database",
			VehicleID:             "default",
			RefreshIntervalMillis: 200,
			MaxRetries:            3,
			RetryDelayMillis:      100,
		},
		Auth: AuthConfig{
			TokenHours: 12,
		},
	}
}

// Validate checks the values Load cannot fix up on its own.
func (c *Config) Validate() error {
	switch c.Database.Driver {
	case "postgres", "sqlite3":
	default:
		return fmt.Errorf("unsupported database driver %q", c.Database.Driver)
	}

	switch c.Telemetry.Source {
	case "database":
	case "file":
		if c.Telemetry.File == "" {
			return fmt.Errorf("telemetry source \"file\" needs telemetry.file")
		}
	default:
		return fmt.Errorf("unknown telemetry source %q", c.Telemetry.Source)
	}

	if c.Telemetry.RefreshIntervalMillis <= 0 {
		return fmt.Errorf("refresh_interval_millis must be positive, got %d", c.Telemetry.RefreshIntervalMillis)
	}

	if _, err := c.Display.Context(); err != nil {
		return err
	}
	return nil
}

// Context builds the derivation context from the display preferences.
func (d DisplayConfig) Context() (pfd.Context, error) {
	ctx := pfd.DefaultContext()
	ctx.Fallback = coordinates.Geographic{
		Latitude:  d.FallbackLatitude,
		Longitude: d.FallbackLongitude,
		Altitude:  d.FallbackAltitude,
	}

	if d.TimeMode != "" {
		mode, err := format.ParseTimeMode(d.TimeMode)
		if err != nil {
			return ctx, err
		}
		ctx.TimeMode = mode
	}
	if ctx.TimeMode == format.TimePredefined {
		t, err := time.Parse(time.RFC3339, d.DateTime)
		if err != nil {
			return ctx, fmt.Errorf("invalid date_time for predefined time mode: %w", err)
		}
		ctx.DateTime = t
	}

	if d.SpeedUnit != "" {
		factor, ok := speedUnits[d.SpeedUnit]
		if !ok {
			return ctx, fmt.Errorf("unknown speed unit %q", d.SpeedUnit)
		}
		ctx.SpeedFactor, ctx.SpeedUnit = factor, d.SpeedUnit
	}
	if d.AltitudeUnit != "" {
		factor, ok := altitudeUnits[d.AltitudeUnit]
		if !ok {
			return ctx, fmt.Errorf("unknown altitude unit %q", d.AltitudeUnit)
		}
		ctx.AltitudeFactor, ctx.AltitudeUnit = factor, d.AltitudeUnit
	}

	return ctx, nil
}

// RefreshInterval returns the display refresh period.
func (t TelemetryConfig) RefreshInterval() time.Duration {
	return time.Duration(t.RefreshIntervalMillis) * time.Millisecond
}

// Retry returns the backoff settings for source reads.
func (t TelemetryConfig) Retry() telemetry.RetryConfig {
	cfg := telemetry.DefaultRetryConfig()
	cfg.MaxRetries = t.MaxRetries
	if t.RetryDelayMillis > 0 {
		cfg.InitialDelay = time.Duration(t.RetryDelayMillis) * time.Millisecond
	}
	return cfg
}

// TokenDuration returns how long session tokens stay valid.
func (a AuthConfig) TokenDuration() time.Duration {
	return time.Duration(a.TokenHours) * time.Hour
}

// applyEnvironmentOverrides applies environment variable overrides to the config.
// This allows sensitive data like passwords to be kept out of config files.
func (c *Config) applyEnvironmentOverrides() {
	if port := os.Getenv("GCS_PFD_PORT"); port != "" {
		c.Server.Port = port
	}
	if driver := os.Getenv("GCS_PFD_DB_DRIVER"); driver != "" {
		c.Database.Driver = driver
	}
	if dbPassword := os.Getenv("GCS_PFD_DB_PASSWORD"); dbPassword != "" {
		c.Database.Password = dbPassword
	}
	if secret := os.Getenv("GCS_PFD_JWT_SECRET"); secret != "" {
		c.Auth.JWTSecret = secret
	}
	if vehicle := os.Getenv("GCS_PFD_VEHICLE_ID"); vehicle != "" {
		c.Telemetry.VehicleID = vehicle
	}
	if interval := os.Getenv("GCS_PFD_REFRESH_MILLIS"); interval != "" {
		if ms, err := strconv.Atoi(interval); err == nil {
			c.Telemetry.RefreshIntervalMillis = ms
		}
	}
}

func isYAML(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return true
	}
	return false
}
