package main

import (
	"log/slog"
	"testing"
)

func TestParseLogLevel(t *testing.T) {
	cases := []struct {
		raw  string
		want slog.Level
	}{
		{"", slog.LevelInfo},
		{"debug", slog.LevelDebug},
		{"INFO", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"warning", slog.LevelWarn},
		{"error", slog.LevelError},
		{"-4", slog.LevelDebug},
	}

	for _, tc := range cases {
		level, err := parseLogLevel(tc.raw)
		if err != nil {
			t.Fatalf("parseLogLevel(%q): %v", tc.raw, err)
		}
		if level != tc.want {
			t.Fatalf("parseLogLevel(%q) = %v, want %v", tc.raw, level, tc.want)
		}
	}

	if _, err := parseLogLevel("loud"); err == nil {
		t.Fatal("expected error for unknown level")
	}
}

func TestSelectedLogLevel(t *testing.T) {
	if level, source := selectedLogLevel("debug", "warn"); level != "debug" || source != "flag" {
		t.Fatalf("flag should win: %s %s", level, source)
	}
	if level, source := selectedLogLevel("", "warn"); level != "warn" || source != "env" {
		t.Fatalf("env should win without flag: %s %s", level, source)
	}
	if level, source := selectedLogLevel("", ""); level != "" || source != "default" {
		t.Fatalf("expected default: %s %s", level, source)
	}
}
