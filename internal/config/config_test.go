package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadFile_DefaultsWhenMissing(t *testing.T) {
	cfg, err := LoadFile(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if cfg.Port != 8080 || cfg.Mode != "release" {
		t.Fatalf("port=%d mode=%s, want 8080 release", cfg.Port, cfg.Mode)
	}
	if cfg.PingPeriod != 54*time.Second || cfg.RateLimit.Interval != time.Second {
		t.Fatalf("durations not decoded: ping=%s interval=%s", cfg.PingPeriod, cfg.RateLimit.Interval)
	}
	if cfg.ReadLimit != 1<<20 {
		t.Fatalf("read_limit=%d, want 1 MiB", cfg.ReadLimit)
	}
	if cfg.Store.Mode != StoreMemory || cfg.SlowClient != "drop" {
		t.Fatalf("store=%s slow=%s", cfg.Store.Mode, cfg.SlowClient)
	}
	servers := cfg.WebRTCICEServers()
	if len(servers) != 1 || servers[0].URLs[0] != "stun:stun.l.google.com:19302" {
		t.Fatalf("ice servers=%+v", servers)
	}
}

func TestLoadFile_ReadsYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.test.yaml")
	body := `
mode: debug
port: 9000
allowed_origins: ["http://localhost:5173"]
slow_client_policy: kick
rate_limit:
  events: 5
  interval: 2s
signal:
  require_shared_voice_room: true
store:
  mode: none
ice_servers:
  - urls: ["turn:turn.example.com:3478"]
    username: u
    credential: p
`
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	cfg, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if cfg.Mode != "debug" || cfg.Port != 9000 {
		t.Fatalf("mode=%s port=%d", cfg.Mode, cfg.Port)
	}
	if len(cfg.AllowedOrigins) != 1 || cfg.AllowedOrigins[0] != "http://localhost:5173" {
		t.Fatalf("origins=%v", cfg.AllowedOrigins)
	}
	if cfg.RateLimit.Events != 5 || cfg.RateLimit.Interval != 2*time.Second {
		t.Fatalf("rate limit=%+v", cfg.RateLimit)
	}
	if !cfg.Signal.RequireSharedVoiceRoom || cfg.Store.Mode != StoreNone || cfg.SlowClient != "kick" {
		t.Fatalf("cfg=%+v", cfg)
	}
	servers := cfg.WebRTCICEServers()
	if len(servers) != 1 || servers[0].Username != "u" || servers[0].Credential != "p" {
		t.Fatalf("ice servers=%+v", servers)
	}
}

func TestLoadFile_EnvOverride(t *testing.T) {
	t.Setenv("CANVAS_PORT", "7070")
	t.Setenv("CANVAS_STORE_MODE", "none")

	cfg, err := LoadFile(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if cfg.Port != 7070 || cfg.Store.Mode != StoreNone {
		t.Fatalf("port=%d store=%s, want 7070 none", cfg.Port, cfg.Store.Mode)
	}
}

func TestLoadFile_RejectsInvalidValues(t *testing.T) {
	t.Setenv("CANVAS_SLOW_CLIENT_POLICY", "explode")
	if _, err := LoadFile(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Fatal("expected validation error")
	}
}

func TestLoadFile_BrokenYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.yaml")
	if err := os.WriteFile(path, []byte("port: [unterminated"), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	if _, err := LoadFile(path); err == nil {
		t.Fatal("expected parse error")
	}
}
