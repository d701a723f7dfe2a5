package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"os"
	"path/filepath"
	"strconv"
	"time"
)

const (
	// ConfigFileName is the name of the configuration file.
	ConfigFileName = "ibtws.json"

	// DefaultHost is the default gateway host.
	DefaultHost = "127.0.0.1"

	// DefaultPort is the default TWS API port. IB Gateway listens on 4001.
	DefaultPort = 7496

	// DefaultBridgeAddr is the default listen address of the event bridge.
	DefaultBridgeAddr = "127.0.0.1:8089"

	// DefaultFakeAddr is the default listen address of the fake gateway.
	DefaultFakeAddr = "127.0.0.1:7497"
)

// Environment variables that override file settings.
const (
	EnvHost     = "IBTWS_HOST"
	EnvPort     = "IBTWS_PORT"
	EnvClientID = "IBTWS_CLIENT_ID"
)

var (
	// ErrNotFound is returned when no configuration file exists.
	ErrNotFound = errors.New("config: " + ConfigFileName + " not found")

	// ErrInvalid is wrapped by every Validate failure.
	ErrInvalid = errors.New("config: invalid")
)

// Config represents the complete ibtws.json configuration.
type Config struct {
	// Gateway is the TWS or IB Gateway to connect to.
	Gateway GatewayConfig `json:"gateway"`

	// Reconnect controls the supervisor's backoff.
	Reconnect ReconnectConfig `json:"reconnect"`

	// Bridge configures the websocket event bridge.
	Bridge BridgeConfig `json:"bridge"`

	// Archive configures report archiving to S3. Empty bucket disables it.
	Archive ArchiveConfig `json:"archive,omitempty"`

	// Fake configures the scripted test gateway.
	Fake FakeConfig `json:"fake,omitempty"`

	// Log configures the slog handler used by the CLI.
	Log LogConfig `json:"log"`

	configPath string
}

// GatewayConfig contains connection settings.
type GatewayConfig struct {
	Host     string `json:"host,omitempty"`
	Port     int    `json:"port,omitempty"`
	ClientID int    `json:"clientId"`

	// ExtraAuth defers START_API until the verify exchange completes.
	ExtraAuth bool `json:"extraAuth,omitempty"`

	// ConnectTimeout bounds dial plus handshake, e.g. "10s".
	ConnectTimeout string `json:"connectTimeout,omitempty"`
}

// ReconnectConfig contains supervisor settings.
type ReconnectConfig struct {
	Enabled         bool   `json:"enabled"`
	InitialInterval string `json:"initialInterval,omitempty"`
	MaxInterval     string `json:"maxInterval,omitempty"`
}

// BridgeConfig contains event bridge settings.
type BridgeConfig struct {
	Addr string `json:"addr,omitempty"`

	// AllowedOrigins lists websocket origins; empty allows same-origin only.
	AllowedOrigins []string `json:"allowedOrigins,omitempty"`

	// SubscriberBuffer is the per-subscriber queue length.
	SubscriberBuffer int `json:"subscriberBuffer,omitempty"`
}

// ArchiveConfig contains S3 archive settings.
type ArchiveConfig struct {
	Bucket string `json:"bucket,omitempty"`
	Prefix string `json:"prefix,omitempty"`
	Region string `json:"region,omitempty"`
}

// FakeConfig contains fake gateway settings.
type FakeConfig struct {
	Addr          string `json:"addr,omitempty"`
	ServerVersion int    `json:"serverVersion,omitempty"`
}

// LogConfig contains logging settings.
type LogConfig struct {
	// Level is debug, info, warn or error.
	Level string `json:"level,omitempty"`

	// JSON selects slog.JSONHandler over slog.TextHandler.
	JSON bool `json:"json,omitempty"`
}

// New creates a new Config with default values.
func New() *Config {
	cfg := &Config{
		Reconnect: ReconnectConfig{Enabled: true},
	}
	cfg.applyDefaults()
	return cfg
}

// Load reads configuration from ibtws.json in dir.
func Load(dir string) (*Config, error) {
	return LoadFile(filepath.Join(dir, ConfigFileName))
}

// LoadFile reads configuration from the specified file path and applies
// environment overrides.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w in %s", ErrNotFound, filepath.Dir(path))
		}
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}

	cfg := New()
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("config: parse %s: %w", path, err)
	}

	cfg.configPath = path
	cfg.applyDefaults()
	if err := cfg.ApplyEnv(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadOrDefault loads ibtws.json from dir, falling back to defaults plus
// environment overrides when the file does not exist.
func LoadOrDefault(dir string) (*Config, error) {
	cfg, err := Load(dir)
	if errors.Is(err, ErrNotFound) {
		cfg = New()
		return cfg, cfg.ApplyEnv()
	}
	return cfg, err
}

// Save writes the configuration to the file it was loaded from.
func (c *Config) Save() error {
	if c.configPath == "" {
		return errors.New("config: no config path set")
	}
	return c.SaveTo(c.configPath)
}

// SaveTo writes the configuration to the specified path.
func (c *Config) SaveTo(path string) error {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("config: encode: %w", err)
	}
	data = append(data, '\n')

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("config: write %s: %w", path, err)
	}
	c.configPath = path
	return nil
}

// Path returns the path where the config was loaded from.
func (c *Config) Path() string {
	return c.configPath
}

func (c *Config) applyDefaults() {
	if c.Gateway.Host == "" {
		c.Gateway.Host = DefaultHost
	}
	if c.Gateway.Port == 0 {
		c.Gateway.Port = DefaultPort
	}
	if c.Gateway.ConnectTimeout == "" {
		c.Gateway.ConnectTimeout = "10s"
	}
	if c.Reconnect.InitialInterval == "" {
		c.Reconnect.InitialInterval = "1s"
	}
	if c.Reconnect.MaxInterval == "" {
		c.Reconnect.MaxInterval = "1m"
	}
	if c.Bridge.Addr == "" {
		c.Bridge.Addr = DefaultBridgeAddr
	}
	if c.Bridge.SubscriberBuffer == 0 {
		c.Bridge.SubscriberBuffer = 256
	}
	if c.Fake.Addr == "" {
		c.Fake.Addr = DefaultFakeAddr
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
}

// ApplyEnv overrides gateway settings from IBTWS_HOST, IBTWS_PORT and
// IBTWS_CLIENT_ID.
func (c *Config) ApplyEnv() error {
	if v := os.Getenv(EnvHost); v != "" {
		c.Gateway.Host = v
	}
	if v := os.Getenv(EnvPort); v != "" {
		p, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%w: %s=%q is not a number", ErrInvalid, EnvPort, v)
		}
		c.Gateway.Port = p
	}
	if v := os.Getenv(EnvClientID); v != "" {
		id, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%w: %s=%q is not a number", ErrInvalid, EnvClientID, v)
		}
		c.Gateway.ClientID = id
	}
	return nil
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.Gateway.Port <= 0 || c.Gateway.Port > 65535 {
		return fmt.Errorf("%w: gateway port must be between 1 and 65535", ErrInvalid)
	}
	for name, s := range map[string]string{
		"gateway.connectTimeout":    c.Gateway.ConnectTimeout,
		"reconnect.initialInterval": c.Reconnect.InitialInterval,
		"reconnect.maxInterval":     c.Reconnect.MaxInterval,
	} {
		if _, err := time.ParseDuration(s); err != nil {
			return fmt.Errorf("%w: %s: %v", ErrInvalid, name, err)
		}
	}
	if _, _, err := net.SplitHostPort(c.Bridge.Addr); err != nil {
		return fmt.Errorf("%w: bridge.addr: %v", ErrInvalid, err)
	}
	if c.Bridge.SubscriberBuffer < 0 {
		return fmt.Errorf("%w: bridge.subscriberBuffer must not be negative", ErrInvalid)
	}
	if _, err := c.Log.SlogLevel(); err != nil {
		return fmt.Errorf("%w: log.level: %v", ErrInvalid, err)
	}
	return nil
}

// Address returns the gateway host:port.
func (c *Config) Address() string {
	return net.JoinHostPort(c.Gateway.Host, strconv.Itoa(c.Gateway.Port))
}

// ConnectTimeout returns the parsed connect timeout, or 10s when unset or
// malformed.
func (c *Config) ConnectTimeout() time.Duration {
	return durationOr(c.Gateway.ConnectTimeout, 10*time.Second)
}

// Backoff returns the parsed reconnect intervals.
func (c *Config) Backoff() (initial, max time.Duration) {
	return durationOr(c.Reconnect.InitialInterval, time.Second),
		durationOr(c.Reconnect.MaxInterval, time.Minute)
}

// ArchiveEnabled reports whether an archive bucket is configured.
func (c *Config) ArchiveEnabled() bool {
	return c.Archive.Bucket != ""
}

// SlogLevel parses Level.
func (l LogConfig) SlogLevel() (slog.Level, error) {
	var lv slog.Level
	err := lv.UnmarshalText([]byte(l.Level))
	return lv, err
}

func durationOr(s string, def time.Duration) time.Duration {
	d, err := time.ParseDuration(s)
	if err != nil || d <= 0 {
		return def
	}
	return d
}

// Exists checks if a config file exists in the given directory.
func Exists(dir string) bool {
	_, err := os.Stat(filepath.Join(dir, ConfigFileName))
	return err == nil
}

// FindProjectRoot walks up from startDir to the first directory holding
// ibtws.json.
func FindProjectRoot(startDir string) (string, error) {
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", err
	}

	for {
		if Exists(dir) {
			return dir, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", fmt.Errorf("%w in %s or any parent directory", ErrNotFound, startDir)
		}
		dir = parent
	}
}
