package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/zap"
)

func TestNewLoggerWithoutFileDiscards(t *testing.T) {
	logger, err := NewLogger(LoggingConfig{Level: "debug"})
	if err != nil {
		t.Fatal(err)
	}
	if logger.Core().Enabled(zap.ErrorLevel) {
		t.Error("logger without file should be a no-op")
	}
}

func TestNewLoggerWritesFile(t *testing.T) {
	for _, format := range []string{"console", "json"} {
		t.Run(format, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "spritz.log")
			logger, err := NewLogger(LoggingConfig{Level: "warn", Format: format, File: path})
			if err != nil {
				t.Fatal(err)
			}
			logger.Info("hidden below level")
			logger.Warn("burst dropped", zap.Int("slots", 7))
			_ = logger.Sync()

			data, err := os.ReadFile(path)
			if err != nil {
				t.Fatal(err)
			}
			out := string(data)
			if !strings.Contains(out, "burst dropped") {
				t.Errorf("log missing warn entry: %q", out)
			}
			if strings.Contains(out, "hidden below level") {
				t.Errorf("info written at warn level: %q", out)
			}
		})
	}
}

func TestNewLoggerBadLevelFallsBackToInfo(t *testing.T) {
	path := filepath.Join(t.TempDir(), "spritz.log")
	logger, err := NewLogger(LoggingConfig{Level: "loud", File: path})
	if err != nil {
		t.Fatal(err)
	}
	if !logger.Core().Enabled(zap.InfoLevel) || logger.Core().Enabled(zap.DebugLevel) {
		t.Error("unparseable level should fall back to info")
	}
}
