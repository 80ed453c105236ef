// Package config provides centralized configuration management. Defaults
// live here; environment variables override them at load time.
package config

import (
	"os"
	"strconv"
)

// SimConfig holds simulation pacing settings.
type SimConfig struct {
	TickRate     int    // simulation steps per second
	Seed         int64  // 0 means per-room clock seed
	EventLogPath string // empty disables the match event log
}

// DefaultSim returns the default simulation configuration.
func DefaultSim() SimConfig {
	return SimConfig{
		TickRate: 60,
	}
}

// SimFromEnv returns simulation configuration with environment overrides.
func SimFromEnv() SimConfig {
	cfg := DefaultSim()

	if tr := getEnvInt("TICK_RATE", 0); tr > 0 {
		cfg.TickRate = tr
	}
	if s := getEnvInt("MATCH_SEED", 0); s != 0 {
		cfg.Seed = int64(s)
	}
	if p := os.Getenv("EVENT_LOG_PATH"); p != "" {
		cfg.EventLogPath = p
	}

	return cfg
}

// NetConfig holds the host/client sync settings.
type NetConfig struct {
	StateRateHz      float64 // authoritative State broadcasts per second
	ConnectTimeoutMs int     // client wait for the Init handshake
	InputTimeoutMs   int     // host tolerance for a silent remote seat
}

// DefaultNet returns the default network configuration.
func DefaultNet() NetConfig {
	return NetConfig{
		StateRateHz:      20,
		ConnectTimeoutMs: 5000,
		InputTimeoutMs:   10000,
	}
}

// NetFromEnv returns network configuration with environment overrides.
func NetFromEnv() NetConfig {
	cfg := DefaultNet()

	if hz := getEnvFloat("STATE_RATE_HZ", 0); hz > 0 {
		cfg.StateRateHz = hz
	}
	if ms := getEnvInt("CONNECT_TIMEOUT_MS", 0); ms > 0 {
		cfg.ConnectTimeoutMs = ms
	}
	if ms := getEnvInt("INPUT_TIMEOUT_MS", 0); ms > 0 {
		cfg.InputTimeoutMs = ms
	}

	return cfg
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port           int
	DebugPort      int // localhost-only pprof/metrics server
	AllowedOrigins []string
}

// DefaultServer returns the default server configuration.
func DefaultServer() ServerConfig {
	return ServerConfig{
		Port:           3000,
		DebugPort:      6060,
		AllowedOrigins: []string{"http://localhost:5173", "http://localhost:3000"},
	}
}

// ServerFromEnv returns server configuration with environment overrides.
func ServerFromEnv() ServerConfig {
	cfg := DefaultServer()

	if p := getEnvInt("PORT", 0); p > 0 {
		cfg.Port = p
	}
	if p := getEnvInt("DEBUG_PORT", 0); p > 0 {
		cfg.DebugPort = p
	}
	if origin := os.Getenv("ALLOWED_ORIGIN"); origin != "" {
		cfg.AllowedOrigins = []string{origin}
	}

	return cfg
}

// LimitsConfig controls abuse protection on the public surface.
type LimitsConfig struct {
	RequestsPerMinute int // per-IP HTTP request allowance
	MaxRooms          int // hard cap on concurrent matches
}

// DefaultLimits returns the default limits.
func DefaultLimits() LimitsConfig {
	return LimitsConfig{
		RequestsPerMinute: 120,
		MaxRooms:          64,
	}
}

// LimitsFromEnv returns limits with environment overrides.
func LimitsFromEnv() LimitsConfig {
	cfg := DefaultLimits()

	if r := getEnvInt("REQUESTS_PER_MINUTE", 0); r > 0 {
		cfg.RequestsPerMinute = r
	}
	if r := getEnvInt("MAX_ROOMS", 0); r > 0 {
		cfg.MaxRooms = r
	}

	return cfg
}

// AppConfig holds the complete application configuration.
type AppConfig struct {
	Sim    SimConfig
	Net    NetConfig
	Server ServerConfig
	Limits LimitsConfig
}

// Load returns the complete configuration with environment overrides.
func Load() AppConfig {
	return AppConfig{
		Sim:    SimFromEnv(),
		Net:    NetFromEnv(),
		Server: ServerFromEnv(),
		Limits: LimitsFromEnv(),
	}
}

func getEnvInt(key string, defaultVal int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return defaultVal
}

func getEnvFloat(key string, defaultVal float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return defaultVal
}
