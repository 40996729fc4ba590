package logging

import (
	"context"
	"log/slog"
	"testing"
)

func TestNewLoggerNotNil(t *testing.T) {
	logger := NewLogger(Config{})
	if logger == nil {
		t.Fatal("expected logger to be non-nil")
	}
}

func TestNewLoggerUsesTextHandlerWithInfoLevel(t *testing.T) {
	logger := NewLogger(Config{Format: "text", Level: "info"})

	if enabled := logger.Enabled(context.Background(), slog.LevelInfo); !enabled {
		t.Fatal("expected info level to be enabled")
	}

	if enabled := logger.Enabled(context.Background(), slog.LevelDebug); enabled {
		t.Fatal("expected debug level to be disabled")
	}
}

func TestNewLoggerHonorsDebugLevel(t *testing.T) {
	logger := NewLogger(Config{Level: "debug"})
	if enabled := logger.Enabled(context.Background(), slog.LevelDebug); !enabled {
		t.Fatal("expected debug level to be enabled")
	}
}

func TestNewLoggerJSONFormat(t *testing.T) {
	logger := NewLogger(Config{Format: "json", Service: "stadium", Version: "dev"})
	if logger == nil {
		t.Fatal("expected logger to be non-nil")
	}
}

func TestParseLevelFallsBackToInfo(t *testing.T) {
	if got := parseLevel("nope"); got != slog.LevelInfo {
		t.Fatalf("expected info fallback, got %v", got)
	}
	if got := parseLevel("WARN"); got != slog.LevelWarn {
		t.Fatalf("expected warn, got %v", got)
	}
	if got := parseLevel("error"); got != slog.LevelError {
		t.Fatalf("expected error, got %v", got)
	}
}
