package server

import (
	"flag"
	"testing"
)

func TestParseConfigDefaults(t *testing.T) {
	fs := flag.NewFlagSet("server", flag.ContinueOnError)
	cfg, err := ParseConfig(fs, nil)
	if err != nil {
		t.Fatalf("parse config: %v", err)
	}
	if cfg.HTTPAddr != "localhost:8080" {
		t.Fatalf("HTTPAddr = %q, want %q", cfg.HTTPAddr, "localhost:8080")
	}
	if cfg.DBPath != "tracker.db" {
		t.Fatalf("DBPath = %q, want %q", cfg.DBPath, "tracker.db")
	}
	if cfg.Timezone != "" {
		t.Fatalf("Timezone = %q, want empty", cfg.Timezone)
	}
}

func TestParseConfigFlagOverrides(t *testing.T) {
	fs := flag.NewFlagSet("server", flag.ContinueOnError)
	cfg, err := ParseConfig(fs, []string{"-http-addr", "127.0.0.1:9090", "-db", "/tmp/t.db"})
	if err != nil {
		t.Fatalf("parse config: %v", err)
	}
	if cfg.HTTPAddr != "127.0.0.1:9090" {
		t.Fatalf("HTTPAddr = %q, want %q", cfg.HTTPAddr, "127.0.0.1:9090")
	}
	if cfg.DBPath != "/tmp/t.db" {
		t.Fatalf("DBPath = %q, want %q", cfg.DBPath, "/tmp/t.db")
	}
}

func TestParseConfigEnvOverride(t *testing.T) {
	t.Setenv("TASKTRACKER_HTTP_ADDR", "0.0.0.0:8088")

	fs := flag.NewFlagSet("server", flag.ContinueOnError)
	cfg, err := ParseConfig(fs, nil)
	if err != nil {
		t.Fatalf("parse config: %v", err)
	}
	if cfg.HTTPAddr != "0.0.0.0:8088" {
		t.Fatalf("HTTPAddr = %q, want %q", cfg.HTTPAddr, "0.0.0.0:8088")
	}
}

func TestRunRejectsBadTimezone(t *testing.T) {
	cfg := Config{HTTPAddr: "localhost:0", DBPath: "unused.db", Timezone: "Not/AZone"}
	if err := Run(t.Context(), cfg); err == nil {
		t.Fatal("expected error for invalid timezone")
	}
}
