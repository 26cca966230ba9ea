package logging

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/zap/zapcore"
)

func TestNewLevels(t *testing.T) {
	tests := []struct {
		opts  Options
		debug bool
	}{
		{opts: Options{}, debug: false},
		{opts: Options{Format: FormatHuman, Debug: true}, debug: true},
		{opts: Options{Format: FormatJSON}, debug: false},
		{opts: Options{Format: "JSON", Debug: true}, debug: true},
	}
	for _, tt := range tests {
		logger, err := New(tt.opts)
		if err != nil {
			t.Fatalf("%+v: %v", tt.opts, err)
		}
		if got := logger.Core().Enabled(zapcore.DebugLevel); got != tt.debug {
			t.Fatalf("%+v: debug enabled=%v, want %v", tt.opts, got, tt.debug)
		}
	}
}

func TestNewUnknownFormat(t *testing.T) {
	if _, err := New(Options{Format: "xml"}); err == nil {
		t.Fatalf("expected error for unknown format")
	}
}

func TestNewJSONToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "gen.log")
	logger, err := New(Options{Format: FormatJSON, OutputPaths: []string{path}})
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	logger.Info("wrote file")
	_ = logger.Sync()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	if !strings.Contains(string(data), `"msg":"wrote file"`) {
		t.Fatalf("expected json log line, got %q", data)
	}
}
