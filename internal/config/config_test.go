package config

import (
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestNew(t *testing.T) {
	cfg := New()

	if cfg.Gateway.Host != DefaultHost {
		t.Errorf("Gateway.Host = %q, want %q", cfg.Gateway.Host, DefaultHost)
	}
	if cfg.Gateway.Port != DefaultPort {
		t.Errorf("Gateway.Port = %d, want %d", cfg.Gateway.Port, DefaultPort)
	}
	if cfg.Bridge.Addr != DefaultBridgeAddr {
		t.Errorf("Bridge.Addr = %q, want %q", cfg.Bridge.Addr, DefaultBridgeAddr)
	}
	if !cfg.Reconnect.Enabled {
		t.Error("Reconnect.Enabled = false, want true")
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate() = %v, want nil", err)
	}
}

func TestLoad(t *testing.T) {
	tmpDir := t.TempDir()

	if _, err := Load(tmpDir); !errors.Is(err, ErrNotFound) {
		t.Errorf("Load() error = %v, want ErrNotFound", err)
	}

	configJSON := `{
  "gateway": {"host": "10.0.0.5", "port": 4001, "clientId": 7, "extraAuth": true},
  "reconnect": {"enabled": false, "maxInterval": "30s"},
  "archive": {"bucket": "reports", "prefix": "tws/"},
  "log": {"level": "debug", "json": true}
}
`
	if err := os.WriteFile(filepath.Join(tmpDir, ConfigFileName), []byte(configJSON), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(tmpDir)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Address() != "10.0.0.5:4001" {
		t.Errorf("Address() = %q, want 10.0.0.5:4001", cfg.Address())
	}
	if cfg.Gateway.ClientID != 7 || !cfg.Gateway.ExtraAuth {
		t.Errorf("Gateway = %+v, want clientId 7 with extraAuth", cfg.Gateway)
	}
	if cfg.Reconnect.Enabled {
		t.Error("Reconnect.Enabled = true, want false")
	}
	initial, max := cfg.Backoff()
	if initial != time.Second || max != 30*time.Second {
		t.Errorf("Backoff() = %v, %v; want 1s, 30s", initial, max)
	}
	if !cfg.ArchiveEnabled() {
		t.Error("ArchiveEnabled() = false, want true")
	}
	if lv, _ := cfg.Log.SlogLevel(); lv != slog.LevelDebug {
		t.Errorf("SlogLevel() = %v, want debug", lv)
	}
	if cfg.Path() != filepath.Join(tmpDir, ConfigFileName) {
		t.Errorf("Path() = %q", cfg.Path())
	}
}

func TestLoadInvalidJSON(t *testing.T) {
	tmpDir := t.TempDir()
	if err := os.WriteFile(filepath.Join(tmpDir, ConfigFileName), []byte("{"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(tmpDir); err == nil || errors.Is(err, ErrNotFound) {
		t.Errorf("Load() error = %v, want parse error", err)
	}
}

func TestApplyEnv(t *testing.T) {
	t.Setenv(EnvHost, "gw.internal")
	t.Setenv(EnvPort, "4002")
	t.Setenv(EnvClientID, "42")

	cfg, err := LoadOrDefault(t.TempDir())
	if err != nil {
		t.Fatalf("LoadOrDefault() error = %v", err)
	}
	if cfg.Address() != "gw.internal:4002" {
		t.Errorf("Address() = %q, want gw.internal:4002", cfg.Address())
	}
	if cfg.Gateway.ClientID != 42 {
		t.Errorf("ClientID = %d, want 42", cfg.Gateway.ClientID)
	}

	t.Setenv(EnvPort, "seventy")
	if err := New().ApplyEnv(); !errors.Is(err, ErrInvalid) {
		t.Errorf("ApplyEnv() error = %v, want ErrInvalid", err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"defaults", func(*Config) {}, false},
		{"port zero", func(c *Config) { c.Gateway.Port = 0 }, true},
		{"port too large", func(c *Config) { c.Gateway.Port = 70000 }, true},
		{"bad timeout", func(c *Config) { c.Gateway.ConnectTimeout = "soon" }, true},
		{"bad bridge addr", func(c *Config) { c.Bridge.Addr = "nocolon" }, true},
		{"bad level", func(c *Config) { c.Log.Level = "loud" }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := New()
			tt.mutate(cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, ErrInvalid) {
				t.Errorf("Validate() error = %v, want ErrInvalid", err)
			}
		})
	}
}

func TestSaveRoundTrip(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, ConfigFileName)

	cfg := New()
	cfg.Gateway.ClientID = 3
	if err := cfg.SaveTo(path); err != nil {
		t.Fatalf("SaveTo() error = %v", err)
	}

	loaded, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile() error = %v", err)
	}
	if loaded.Gateway.ClientID != 3 {
		t.Errorf("ClientID = %d, want 3", loaded.Gateway.ClientID)
	}
	if err := (&Config{}).Save(); err == nil {
		t.Error("Save() without path should fail")
	}
}

func TestFindProjectRoot(t *testing.T) {
	root := t.TempDir()
	nested := filepath.Join(root, "a", "b")
	if err := os.MkdirAll(nested, 0755); err != nil {
		t.Fatal(err)
	}
	if _, err := FindProjectRoot(nested); !errors.Is(err, ErrNotFound) {
		t.Errorf("FindProjectRoot() error = %v, want ErrNotFound", err)
	}

	if err := New().SaveTo(filepath.Join(root, ConfigFileName)); err != nil {
		t.Fatal(err)
	}
	got, err := FindProjectRoot(nested)
	if err != nil {
		t.Fatalf("FindProjectRoot() error = %v", err)
	}
	want, _ := filepath.Abs(root)
	if got != want {
		t.Errorf("FindProjectRoot() = %q, want %q", got, want)
	}
}
