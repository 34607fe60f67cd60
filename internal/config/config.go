// Package config loads the bridge's process-level immutable configuration
// (spec §4.9, §6, component C9) from environment variables, with an
// optional YAML file supplying defaults underneath them.
package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/spkane/freecad-mcp-bridge/internal/wire"
)

// Mode selects which bridge client implementation the MCP adapter uses.
type Mode string

const (
	ModeXMLRPC   Mode = "xmlrpc"
	ModeSocket   Mode = "socket"
	ModeEmbedded Mode = "embedded"
)

// Config is loaded once at startup and never mutated afterward.
type Config struct {
	Mode        Mode
	Host        string
	XMLRPCPort  int
	SocketPort  int
	TimeoutMS   int
	RuntimePath string

	ReturnSlot         string
	MaxCaptureBytes    int
	HealthcheckMS      int
	AllowNonLoopback   bool
	HTTPAddr           string // empty disables the HTTP MCP transport
}

// fileOverlay mirrors the subset of Config that may be supplied by an
// optional YAML file (--config / CONFIG_FILE), read before env vars are
// applied so env vars always win.
type fileOverlay struct {
	Mode             string `yaml:"mode"`
	Host             string `yaml:"host"`
	XMLRPCPort       int    `yaml:"xmlrpc_port"`
	SocketPort       int    `yaml:"socket_port"`
	TimeoutMS        int    `yaml:"timeout_ms"`
	RuntimePath      string `yaml:"runtime_path"`
	ReturnSlot       string `yaml:"return_slot"`
	MaxCaptureBytes  int    `yaml:"max_capture_bytes"`
	HealthcheckMS    int    `yaml:"healthcheck_interval_ms"`
	AllowNonLoopback bool   `yaml:"allow_non_loopback"`
	HTTPAddr         string `yaml:"http_addr"`
}

// Defaults returns the spec §6 default configuration.
func Defaults() *Config {
	return &Config{
		Mode:            ModeXMLRPC,
		Host:            "localhost",
		XMLRPCPort:      9875,
		SocketPort:      9876,
		TimeoutMS:       wire.DefaultTimeoutMS,
		ReturnSlot:      "_result_",
		MaxCaptureBytes: 1 << 20,
		HealthcheckMS:   5000,
	}
}

// Load builds a Config from an optional YAML file overlay (configPath, may
// be empty) followed by environment variables, which always take
// precedence. It returns a *wire.ConfigError describing the first
// validation failure.
func Load(configPath string) (*Config, error) {
	cfg := Defaults()

	if configPath != "" {
		if err := applyFile(cfg, configPath); err != nil {
			return nil, err
		}
	}

	applyEnv(cfg)

	if err := validate(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

func applyFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return &wire.ConfigError{Detail: fmt.Sprintf("read config file %s: %v", path, err)}
	}

	var overlay fileOverlay
	if err := yaml.Unmarshal(data, &overlay); err != nil {
		return &wire.ConfigError{Detail: fmt.Sprintf("parse config file %s: %v", path, err)}
	}

	if overlay.Mode != "" {
		cfg.Mode = Mode(overlay.Mode)
	}

	if overlay.Host != "" {
		cfg.Host = overlay.Host
	}

	if overlay.XMLRPCPort != 0 {
		cfg.XMLRPCPort = overlay.XMLRPCPort
	}

	if overlay.SocketPort != 0 {
		cfg.SocketPort = overlay.SocketPort
	}

	if overlay.TimeoutMS != 0 {
		cfg.TimeoutMS = overlay.TimeoutMS
	}

	if overlay.RuntimePath != "" {
		cfg.RuntimePath = overlay.RuntimePath
	}

	if overlay.ReturnSlot != "" {
		cfg.ReturnSlot = overlay.ReturnSlot
	}

	if overlay.MaxCaptureBytes != 0 {
		cfg.MaxCaptureBytes = overlay.MaxCaptureBytes
	}

	if overlay.HealthcheckMS != 0 {
		cfg.HealthcheckMS = overlay.HealthcheckMS
	}

	cfg.AllowNonLoopback = overlay.AllowNonLoopback
	cfg.HTTPAddr = overlay.HTTPAddr

	return nil
}

func applyEnv(cfg *Config) {
	if v, ok := os.LookupEnv("MODE"); ok {
		cfg.Mode = Mode(v)
	}

	if v, ok := os.LookupEnv("HOST"); ok {
		cfg.Host = v
	}

	if v, ok := envInt("XMLRPC_PORT"); ok {
		cfg.XMLRPCPort = v
	}

	if v, ok := envInt("SOCKET_PORT"); ok {
		cfg.SocketPort = v
	}

	if v, ok := envInt("TIMEOUT_MS"); ok {
		cfg.TimeoutMS = v
	}

	if v, ok := os.LookupEnv("RUNTIME_PATH"); ok {
		cfg.RuntimePath = v
	}

	if v, ok := os.LookupEnv("RETURN_SLOT"); ok {
		cfg.ReturnSlot = v
	}

	if v, ok := envInt("MAX_CAPTURE_BYTES"); ok {
		cfg.MaxCaptureBytes = v
	}

	if v, ok := envInt("HEALTHCHECK_INTERVAL_MS"); ok {
		cfg.HealthcheckMS = v
	}

	if v, ok := os.LookupEnv("MCP_HTTP_ADDR"); ok {
		cfg.HTTPAddr = v
	}

	if _, ok := os.LookupEnv("ALLOW_NON_LOOPBACK"); ok {
		cfg.AllowNonLoopback = true
	}
}

func envInt(name string) (int, bool) {
	v, ok := os.LookupEnv(name)
	if !ok || v == "" {
		return 0, false
	}

	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, false
	}

	return n, true
}

func validate(cfg *Config) error {
	switch cfg.Mode {
	case ModeXMLRPC, ModeSocket, ModeEmbedded:
	default:
		return &wire.ConfigError{Detail: fmt.Sprintf("MODE must be one of xmlrpc|socket|embedded, got %q", cfg.Mode)}
	}

	if cfg.XMLRPCPort <= 0 || cfg.XMLRPCPort > 65535 {
		return &wire.ConfigError{Detail: fmt.Sprintf("XMLRPC_PORT out of range: %d", cfg.XMLRPCPort)}
	}

	if cfg.SocketPort <= 0 || cfg.SocketPort > 65535 {
		return &wire.ConfigError{Detail: fmt.Sprintf("SOCKET_PORT out of range: %d", cfg.SocketPort)}
	}

	if cfg.TimeoutMS <= 0 {
		return &wire.ConfigError{Detail: fmt.Sprintf("TIMEOUT_MS must be positive: %d", cfg.TimeoutMS)}
	}

	if cfg.Mode == ModeEmbedded && cfg.RuntimePath == "" {
		// Auto-detect is allowed; absence is only fatal once the embedded
		// client actually tries to load the shared library (spec §4.5).
		return nil
	}

	return nil
}

// LifecycleState is the process-level state machine from spec §4.9.
type LifecycleState string

const (
	StateNotStarted LifecycleState = "NotStarted"
	StateConnecting LifecycleState = "Connecting"
	StateReady      LifecycleState = "Ready"
	StateDraining   LifecycleState = "Draining"
	StateStopped    LifecycleState = "Stopped"
	StateFailed     LifecycleState = "Failed"
	StateDegraded   LifecycleState = "Degraded"
)
