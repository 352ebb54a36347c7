package logging

import (
	"path/filepath"
	"testing"

	"go.uber.org/zap/zapcore"

	"github.com/example/launchpad/internal/config"
)

func TestNew_Levels(t *testing.T) {
	tests := []struct {
		level     string
		wantLevel zapcore.Level
		wantErr   bool
	}{
		{"", zapcore.InfoLevel, false},
		{"debug", zapcore.DebugLevel, false},
		{"warn", zapcore.WarnLevel, false},
		{"loud", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			logger, err := New(config.LoggingConfig{Level: tt.level})
			if tt.wantErr {
				if err == nil {
					t.Error("expected error for invalid level")
				}
				return
			}
			if err != nil {
				t.Fatalf("New failed: %v", err)
			}
			if !logger.Core().Enabled(tt.wantLevel) {
				t.Errorf("expected level %v enabled", tt.wantLevel)
			}
			if tt.wantLevel > zapcore.DebugLevel && logger.Core().Enabled(zapcore.DebugLevel) {
				t.Error("debug should be disabled")
			}
		})
	}
}

func TestNew_JSONWithFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "launchpad.log")
	logger, err := New(config.LoggingConfig{Level: "info", JSON: true, File: path})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	logger.Info("phase advanced")
	_ = logger.Sync()
}

func TestOrNop(t *testing.T) {
	if OrNop(nil) == nil {
		t.Error("expected no-op logger")
	}
}
