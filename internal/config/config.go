// Package config loads runtime configuration for the example server binary
// (cmd/reactorctl) that wires the core library to transport/ws,
// transport/grpcstream, and recorder. The core library itself (reactor,
// subject, combine, switching, timing, buffering, ops) is configuration-free;
// nothing it does depends on this package.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

const (
	// DefaultAddr is the default TCP address reactorctl listens on.
	DefaultAddr = ":43127"
	// DefaultPingInterval controls the keepalive cadence for WebSocket connections.
	DefaultPingInterval = 30 * time.Second
	// DefaultMaxPayloadBytes limits inbound WebSocket frame size.
	DefaultMaxPayloadBytes int64 = 1 << 20
	// DefaultMaxClients is the default for Config.MaxClients, the configured
	// cap on concurrent WebSocket connections (zero means no cap). The value
	// is only loaded and validated: transport/ws.Sink has no connection cap
	// and cmd/reactorctl does not apply it.
	DefaultMaxClients = 256

	// DefaultReplayCap is the default for Config.ReplayCap, which
	// cmd/reactorctl applies as the recorder cleaner's MaxBundles limit.
	DefaultReplayCap = 256

	// DefaultLogLevel controls verbosity for reactorctl logs.
	DefaultLogLevel = "info"
	// DefaultLogPath is where structured logs are written.
	DefaultLogPath = "reactorctl.log"
	// DefaultLogMaxSizeMB caps the size of a single log file before rotation.
	DefaultLogMaxSizeMB = 100
	// DefaultLogMaxBackups limits retained rotated log files.
	DefaultLogMaxBackups = 10
	// DefaultLogMaxAgeDays controls how long rotated log files are kept on disk.
	DefaultLogMaxAgeDays = 7
	// DefaultLogCompress toggles gzip compression for rotated log files.
	DefaultLogCompress = true

	// DefaultRecorderFlushInterval controls how often the recorder's window
	// buffer is flushed to disk when non-empty.
	DefaultRecorderFlushInterval = 30 * time.Second
)

// Config captures all runtime tunables for the reactorctl example server.
type Config struct {
	Address         string
	AllowedOrigins  []string
	MaxPayloadBytes int64
	PingInterval    time.Duration
	MaxClients      int
	TLSCertPath     string
	TLSKeyPath      string
	AdminToken      string
	ReplayCap       int
	Logging         LoggingConfig

	RecorderDir           string
	RecorderFlushInterval time.Duration
}

// LoggingConfig captures structured logging configuration options.
type LoggingConfig struct {
	Level      string
	Path       string
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
	Compress   bool
}

// Load reads reactorctl's configuration from environment variables, applying
// sane defaults and returning descriptive errors for invalid overrides.
func Load() (*Config, error) {
	cfg := &Config{
		Address:         getString("REACTOR_ADDR", DefaultAddr),
		AllowedOrigins:  parseList(os.Getenv("REACTOR_ALLOWED_ORIGINS")),
		MaxPayloadBytes: DefaultMaxPayloadBytes,
		PingInterval:    DefaultPingInterval,
		MaxClients:      DefaultMaxClients,
		TLSCertPath:     strings.TrimSpace(os.Getenv("REACTOR_TLS_CERT")),
		TLSKeyPath:      strings.TrimSpace(os.Getenv("REACTOR_TLS_KEY")),
		AdminToken:      strings.TrimSpace(os.Getenv("REACTOR_ADMIN_TOKEN")),
		ReplayCap:       DefaultReplayCap,
		Logging: LoggingConfig{
			Level:      strings.TrimSpace(getString("REACTOR_LOG_LEVEL", DefaultLogLevel)),
			Path:       strings.TrimSpace(getString("REACTOR_LOG_PATH", DefaultLogPath)),
			MaxSizeMB:  DefaultLogMaxSizeMB,
			MaxBackups: DefaultLogMaxBackups,
			MaxAgeDays: DefaultLogMaxAgeDays,
			Compress:   DefaultLogCompress,
		},
		RecorderDir:           strings.TrimSpace(getString("REACTOR_RECORDER_DIR", "recordings")),
		RecorderFlushInterval: DefaultRecorderFlushInterval,
	}

	var problems []string

	if raw := strings.TrimSpace(os.Getenv("REACTOR_MAX_PAYLOAD_BYTES")); raw != "" {
		value, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || value <= 0 {
			problems = append(problems, fmt.Sprintf("REACTOR_MAX_PAYLOAD_BYTES must be a positive integer, got %q", raw))
		} else {
			cfg.MaxPayloadBytes = value
		}
	}

	if raw := strings.TrimSpace(os.Getenv("REACTOR_PING_INTERVAL")); raw != "" {
		duration, err := time.ParseDuration(raw)
		if err != nil || duration <= 0 {
			problems = append(problems, fmt.Sprintf("REACTOR_PING_INTERVAL must be a positive duration, got %q", raw))
		} else {
			cfg.PingInterval = duration
		}
	}

	if raw := strings.TrimSpace(os.Getenv("REACTOR_MAX_CLIENTS")); raw != "" {
		value, err := strconv.Atoi(raw)
		if err != nil || value < 0 {
			problems = append(problems, fmt.Sprintf("REACTOR_MAX_CLIENTS must be a non-negative integer, got %q", raw))
		} else {
			cfg.MaxClients = value
		}
	}

	if raw := strings.TrimSpace(os.Getenv("REACTOR_REPLAY_CAP")); raw != "" {
		value, err := strconv.Atoi(raw)
		if err != nil || value < 0 {
			problems = append(problems, fmt.Sprintf("REACTOR_REPLAY_CAP must be a non-negative integer, got %q", raw))
		} else {
			cfg.ReplayCap = value
		}
	}

	if raw := strings.TrimSpace(os.Getenv("REACTOR_LOG_MAX_SIZE_MB")); raw != "" {
		value, err := strconv.Atoi(raw)
		if err != nil || value <= 0 {
			problems = append(problems, fmt.Sprintf("REACTOR_LOG_MAX_SIZE_MB must be a positive integer, got %q", raw))
		} else {
			cfg.Logging.MaxSizeMB = value
		}
	}

	if raw := strings.TrimSpace(os.Getenv("REACTOR_LOG_MAX_BACKUPS")); raw != "" {
		value, err := strconv.Atoi(raw)
		if err != nil || value < 0 {
			problems = append(problems, fmt.Sprintf("REACTOR_LOG_MAX_BACKUPS must be a non-negative integer, got %q", raw))
		} else {
			cfg.Logging.MaxBackups = value
		}
	}

	if raw := strings.TrimSpace(os.Getenv("REACTOR_LOG_MAX_AGE_DAYS")); raw != "" {
		value, err := strconv.Atoi(raw)
		if err != nil || value < 0 {
			problems = append(problems, fmt.Sprintf("REACTOR_LOG_MAX_AGE_DAYS must be a non-negative integer, got %q", raw))
		} else {
			cfg.Logging.MaxAgeDays = value
		}
	}

	if raw := strings.TrimSpace(os.Getenv("REACTOR_LOG_COMPRESS")); raw != "" {
		value, err := strconv.ParseBool(raw)
		if err != nil {
			problems = append(problems, fmt.Sprintf("REACTOR_LOG_COMPRESS must be a boolean value, got %q", raw))
		} else {
			cfg.Logging.Compress = value
		}
	}

	if raw := strings.TrimSpace(os.Getenv("REACTOR_RECORDER_FLUSH_INTERVAL")); raw != "" {
		duration, err := time.ParseDuration(raw)
		if err != nil || duration <= 0 {
			problems = append(problems, fmt.Sprintf("REACTOR_RECORDER_FLUSH_INTERVAL must be a positive duration, got %q", raw))
		} else {
			cfg.RecorderFlushInterval = duration
		}
	}

	if (cfg.TLSCertPath == "") != (cfg.TLSKeyPath == "") {
		problems = append(problems, "REACTOR_TLS_CERT and REACTOR_TLS_KEY must be provided together")
	}

	if len(problems) > 0 {
		return nil, fmt.Errorf(strings.Join(problems, "; "))
	}

	return cfg, nil
}

func getString(key, fallback string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return fallback
}

func parseList(raw string) []string {
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	values := make([]string, 0, len(parts))
	for _, part := range parts {
		if item := strings.TrimSpace(part); item != "" {
			values = append(values, item)
		}
	}
	return values
}
