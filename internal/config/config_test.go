package config

import (
	"log/slog"
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	for _, k := range []string{"PORT", "OUTLINE_API_KEY", "WORKER_COUNT", "OUTLINE_HEADERS", "TAB_WIDTH", "DB_PATH", "LOG_LEVEL", "PATHSTORE_URL"} {
		t.Setenv(k, "")
	}
	cfg := Load()

	if cfg.Port != "8090" {
		t.Errorf("expected port 8090, got %q", cfg.Port)
	}
	if cfg.WorkerCount != 4 {
		t.Errorf("expected 4 workers, got %d", cfg.WorkerCount)
	}
	if len(cfg.Headers) != 2 || cfg.Headers[0] != "Title" || cfg.Headers[1] != "Summary" {
		t.Errorf("expected default headers, got %v", cfg.Headers)
	}
	if cfg.TabWidth != 0 {
		t.Errorf("expected tab width 0, got %d", cfg.TabWidth)
	}
	if cfg.OutlineTTL != time.Hour {
		t.Errorf("expected 1h ttl, got %v", cfg.OutlineTTL)
	}
	if cfg.LogLevel != slog.LevelInfo {
		t.Errorf("expected info level, got %v", cfg.LogLevel)
	}
	if cfg.MirrorEnabled() {
		t.Error("expected mirror disabled without PATHSTORE_URL")
	}
}

func TestLoad_FromEnv(t *testing.T) {
	t.Setenv("PORT", "9000")
	t.Setenv("WORKER_COUNT", "-3")
	t.Setenv("OUTLINE_HEADERS", " Name , , Owner,Due ")
	t.Setenv("TAB_WIDTH", "4")
	t.Setenv("OUTLINE_TTL", "30m")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("DB_PATH", "/tmp/outlines.db")
	t.Setenv("PDF_FALLBACK_PDFTOTEXT", "false")
	cfg := Load()

	if cfg.Port != "9000" {
		t.Errorf("expected port 9000, got %q", cfg.Port)
	}
	if cfg.WorkerCount != 4 {
		t.Errorf("expected non-positive worker count to fall back to 4, got %d", cfg.WorkerCount)
	}
	want := []string{"Name", "Owner", "Due"}
	if len(cfg.Headers) != len(want) {
		t.Fatalf("expected headers %v, got %v", want, cfg.Headers)
	}
	for i := range want {
		if cfg.Headers[i] != want[i] {
			t.Errorf("header %d: expected %q, got %q", i, want[i], cfg.Headers[i])
		}
	}
	if cfg.TabWidth != 4 {
		t.Errorf("expected tab width 4, got %d", cfg.TabWidth)
	}
	if cfg.OutlineTTL != 30*time.Minute {
		t.Errorf("expected 30m ttl, got %v", cfg.OutlineTTL)
	}
	if cfg.LogLevel != slog.LevelDebug {
		t.Errorf("expected debug level, got %v", cfg.LogLevel)
	}
	if cfg.DBPath != "/tmp/outlines.db" {
		t.Errorf("expected db path, got %q", cfg.DBPath)
	}
	if cfg.PDFFallbackPdftotext {
		t.Error("expected pdftotext fallback disabled")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{"missing api key", Config{}, true},
		{"api key only", Config{OutlineAPIKey: "k"}, false},
		{"mirror without key", Config{OutlineAPIKey: "k", PathstoreURL: "http://ps"}, true},
		{"mirror with key", Config{OutlineAPIKey: "k", PathstoreURL: "http://ps", PathstoreAPIKey: "p"}, false},
	}
	for _, tt := range tests {
		err := tt.cfg.Validate()
		if (err != nil) != tt.wantErr {
			t.Errorf("%s: expected error=%v, got %v", tt.name, tt.wantErr, err)
		}
	}
}
