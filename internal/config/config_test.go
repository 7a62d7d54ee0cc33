package config

import (
	"os"
	"strings"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("REACTOR_ADDR", "")
	t.Setenv("REACTOR_ALLOWED_ORIGINS", "")
	t.Setenv("REACTOR_MAX_PAYLOAD_BYTES", "")
	t.Setenv("REACTOR_PING_INTERVAL", "")
	t.Setenv("REACTOR_MAX_CLIENTS", "")
	t.Setenv("REACTOR_TLS_CERT", "")
	t.Setenv("REACTOR_TLS_KEY", "")
	t.Setenv("REACTOR_LOG_LEVEL", "")
	t.Setenv("REACTOR_LOG_PATH", "")
	t.Setenv("REACTOR_LOG_MAX_SIZE_MB", "")
	t.Setenv("REACTOR_LOG_MAX_BACKUPS", "")
	t.Setenv("REACTOR_LOG_MAX_AGE_DAYS", "")
	t.Setenv("REACTOR_LOG_COMPRESS", "")
	t.Setenv("REACTOR_ADMIN_TOKEN", "")
	t.Setenv("REACTOR_REPLAY_CAP", "")
	t.Setenv("REACTOR_RECORDER_DIR", "")
	t.Setenv("REACTOR_RECORDER_FLUSH_INTERVAL", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() returned error: %v", err)
	}

	if cfg.Address != DefaultAddr {
		t.Fatalf("expected default addr %q, got %q", DefaultAddr, cfg.Address)
	}
	if cfg.AllowedOrigins != nil {
		t.Fatalf("expected no allowed origins, got %#v", cfg.AllowedOrigins)
	}
	if cfg.MaxPayloadBytes != DefaultMaxPayloadBytes {
		t.Fatalf("expected default max payload %d, got %d", DefaultMaxPayloadBytes, cfg.MaxPayloadBytes)
	}
	if cfg.PingInterval != DefaultPingInterval {
		t.Fatalf("expected default ping interval %v, got %v", DefaultPingInterval, cfg.PingInterval)
	}
	if cfg.MaxClients != DefaultMaxClients {
		t.Fatalf("expected default max clients %d, got %d", DefaultMaxClients, cfg.MaxClients)
	}
	if cfg.TLSCertPath != "" || cfg.TLSKeyPath != "" {
		t.Fatalf("expected TLS paths to be empty, got cert=%q key=%q", cfg.TLSCertPath, cfg.TLSKeyPath)
	}
	if cfg.AdminToken != "" {
		t.Fatalf("expected admin token to be empty by default")
	}
	if cfg.ReplayCap != DefaultReplayCap {
		t.Fatalf("expected default replay cap %d, got %d", DefaultReplayCap, cfg.ReplayCap)
	}
	if cfg.RecorderDir != "recordings" {
		t.Fatalf("expected default recorder dir, got %q", cfg.RecorderDir)
	}
	if cfg.RecorderFlushInterval != DefaultRecorderFlushInterval {
		t.Fatalf("expected default recorder flush interval %v, got %v", DefaultRecorderFlushInterval, cfg.RecorderFlushInterval)
	}
	if cfg.Logging.Level != DefaultLogLevel {
		t.Fatalf("expected default log level %q, got %q", DefaultLogLevel, cfg.Logging.Level)
	}
	if cfg.Logging.Path != DefaultLogPath {
		t.Fatalf("expected default log path %q, got %q", DefaultLogPath, cfg.Logging.Path)
	}
	if cfg.Logging.MaxSizeMB != DefaultLogMaxSizeMB {
		t.Fatalf("expected default log max size %d, got %d", DefaultLogMaxSizeMB, cfg.Logging.MaxSizeMB)
	}
	if cfg.Logging.MaxBackups != DefaultLogMaxBackups {
		t.Fatalf("expected default log max backups %d, got %d", DefaultLogMaxBackups, cfg.Logging.MaxBackups)
	}
	if cfg.Logging.MaxAgeDays != DefaultLogMaxAgeDays {
		t.Fatalf("expected default log max age %d, got %d", DefaultLogMaxAgeDays, cfg.Logging.MaxAgeDays)
	}
	if cfg.Logging.Compress != DefaultLogCompress {
		t.Fatalf("expected default log compress %t, got %t", DefaultLogCompress, cfg.Logging.Compress)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("REACTOR_ADDR", "127.0.0.1:9000")
	t.Setenv("REACTOR_ALLOWED_ORIGINS", "https://example.com, https://demo.local")
	t.Setenv("REACTOR_MAX_PAYLOAD_BYTES", "2048")
	t.Setenv("REACTOR_PING_INTERVAL", "45s")
	t.Setenv("REACTOR_MAX_CLIENTS", "12")
	t.Setenv("REACTOR_TLS_CERT", "/tmp/cert.pem")
	t.Setenv("REACTOR_TLS_KEY", "/tmp/key.pem")
	t.Setenv("REACTOR_LOG_LEVEL", "debug")
	t.Setenv("REACTOR_LOG_PATH", "/var/log/reactorctl.log")
	t.Setenv("REACTOR_LOG_MAX_SIZE_MB", "512")
	t.Setenv("REACTOR_LOG_MAX_BACKUPS", "4")
	t.Setenv("REACTOR_LOG_MAX_AGE_DAYS", "2")
	t.Setenv("REACTOR_LOG_COMPRESS", "false")
	t.Setenv("REACTOR_ADMIN_TOKEN", "s3cret")
	t.Setenv("REACTOR_REPLAY_CAP", "64")
	t.Setenv("REACTOR_RECORDER_DIR", "/var/run/recordings")
	t.Setenv("REACTOR_RECORDER_FLUSH_INTERVAL", "15s")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() returned error: %v", err)
	}

	if cfg.Address != "127.0.0.1:9000" {
		t.Fatalf("unexpected address: %q", cfg.Address)
	}
	if len(cfg.AllowedOrigins) != 2 || cfg.AllowedOrigins[0] != "https://example.com" || cfg.AllowedOrigins[1] != "https://demo.local" {
		t.Fatalf("unexpected allowed origins: %#v", cfg.AllowedOrigins)
	}
	if cfg.MaxPayloadBytes != 2048 {
		t.Fatalf("expected overridden max payload, got %d", cfg.MaxPayloadBytes)
	}
	if cfg.PingInterval.String() != "45s" {
		t.Fatalf("expected ping interval 45s, got %v", cfg.PingInterval)
	}
	if cfg.MaxClients != 12 {
		t.Fatalf("expected max clients 12, got %d", cfg.MaxClients)
	}
	if cfg.TLSCertPath != "/tmp/cert.pem" || cfg.TLSKeyPath != "/tmp/key.pem" {
		t.Fatalf("unexpected TLS paths cert=%q key=%q", cfg.TLSCertPath, cfg.TLSKeyPath)
	}
	if cfg.Logging.Level != "debug" {
		t.Fatalf("expected overridden log level debug, got %q", cfg.Logging.Level)
	}
	if cfg.Logging.Path != "/var/log/reactorctl.log" {
		t.Fatalf("unexpected log path %q", cfg.Logging.Path)
	}
	if cfg.Logging.MaxSizeMB != 512 {
		t.Fatalf("expected log max size 512, got %d", cfg.Logging.MaxSizeMB)
	}
	if cfg.Logging.MaxBackups != 4 {
		t.Fatalf("expected log max backups 4, got %d", cfg.Logging.MaxBackups)
	}
	if cfg.Logging.MaxAgeDays != 2 {
		t.Fatalf("expected log max age 2, got %d", cfg.Logging.MaxAgeDays)
	}
	if cfg.Logging.Compress {
		t.Fatalf("expected log compression disabled")
	}
	if cfg.AdminToken != "s3cret" {
		t.Fatalf("expected overridden admin token, got %q", cfg.AdminToken)
	}
	if cfg.ReplayCap != 64 {
		t.Fatalf("expected replay cap 64, got %d", cfg.ReplayCap)
	}
	if cfg.RecorderDir != "/var/run/recordings" {
		t.Fatalf("expected recorder dir override, got %q", cfg.RecorderDir)
	}
	if cfg.RecorderFlushInterval != 15*time.Second {
		t.Fatalf("expected recorder flush interval 15s, got %v", cfg.RecorderFlushInterval)
	}
}

func TestLoadReturnsValidationErrors(t *testing.T) {
	t.Setenv("REACTOR_MAX_PAYLOAD_BYTES", "-5")
	t.Setenv("REACTOR_PING_INTERVAL", "abc")
	t.Setenv("REACTOR_MAX_CLIENTS", "-1")
	t.Setenv("REACTOR_TLS_CERT", "/tmp/cert.pem")
	t.Setenv("REACTOR_TLS_KEY", "")
	t.Setenv("REACTOR_LOG_MAX_SIZE_MB", "-1")
	t.Setenv("REACTOR_LOG_MAX_BACKUPS", "-2")
	t.Setenv("REACTOR_LOG_MAX_AGE_DAYS", "-3")
	t.Setenv("REACTOR_LOG_COMPRESS", "notabool")
	t.Setenv("REACTOR_REPLAY_CAP", "-1")
	t.Setenv("REACTOR_RECORDER_FLUSH_INTERVAL", "-1s")

	_, err := Load()
	if err == nil {
		t.Fatal("expected error from invalid configuration, got nil")
	}

	for _, want := range []string{
		"REACTOR_MAX_PAYLOAD_BYTES",
		"REACTOR_PING_INTERVAL",
		"REACTOR_MAX_CLIENTS",
		"REACTOR_TLS_CERT",
		"REACTOR_LOG_MAX_SIZE_MB",
		"REACTOR_LOG_MAX_BACKUPS",
		"REACTOR_LOG_MAX_AGE_DAYS",
		"REACTOR_LOG_COMPRESS",
		"REACTOR_REPLAY_CAP",
		"REACTOR_RECORDER_FLUSH_INTERVAL",
	} {
		if !strings.Contains(err.Error(), want) {
			t.Fatalf("expected error to mention %s, got %q", want, err.Error())
		}
	}
}

func TestLoadIgnoresEmptyAllowedOrigins(t *testing.T) {
	t.Setenv("REACTOR_ALLOWED_ORIGINS", " , ,https://ok.example, ")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() returned error: %v", err)
	}

	if len(cfg.AllowedOrigins) != 1 || cfg.AllowedOrigins[0] != "https://ok.example" {
		t.Fatalf("expected single cleaned origin, got %#v", cfg.AllowedOrigins)
	}
}

func TestLoadAllowsUnlimitedClients(t *testing.T) {
	t.Setenv("REACTOR_MAX_CLIENTS", "0")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() returned error: %v", err)
	}

	if cfg.MaxClients != 0 {
		t.Fatalf("expected zero to disable limit, got %d", cfg.MaxClients)
	}
}

func TestLoadWithCustomTLSPair(t *testing.T) {
	certFile := createTempFile(t)
	keyFile := createTempFile(t)

	t.Setenv("REACTOR_TLS_CERT", certFile)
	t.Setenv("REACTOR_TLS_KEY", keyFile)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() returned error: %v", err)
	}
	if cfg.TLSCertPath != certFile || cfg.TLSKeyPath != keyFile {
		t.Fatalf("unexpected TLS pair cert=%q key=%q", cfg.TLSCertPath, cfg.TLSKeyPath)
	}
}

func createTempFile(t *testing.T) string {
	t.Helper()
	f, err := os.CreateTemp("", "reactorctl-config-test-*")
	if err != nil {
		t.Fatalf("CreateTemp: %v", err)
	}
	name := f.Name()
	f.Close()
	t.Cleanup(func() { _ = os.Remove(name) })
	return name
}
