package logger

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestNewQuietIsNop(t *testing.T) {
	l := New(false)
	if l.Core().Enabled(-1) {
		t.Error("quiet logger should not enable debug level")
	}
}

func TestNewVerboseEnablesDebug(t *testing.T) {
	l := New(true)
	defer l.Sync()
	if !l.Core().Enabled(-1) {
		t.Error("verbose logger should enable debug level")
	}
}

func TestNewProductionRejectsBadLevel(t *testing.T) {
	if _, err := NewProduction("loud"); err == nil {
		t.Error("expected error for unknown level")
	}
	l, err := NewProduction("warn")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if l.Core().Enabled(0) {
		t.Error("warn-level logger should not enable info")
	}
}

func TestOrNop(t *testing.T) {
	if OrNop(nil) == nil {
		t.Error("OrNop(nil) should return a logger")
	}
}

func TestNewFileWritesToPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "slots.log")
	l, err := NewFile(path)
	if err != nil {
		t.Fatalf("NewFile() error: %v", err)
	}
	l.Named("Test").Info("hello")
	_ = l.Sync()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log file: %v", err)
	}
	if !strings.Contains(string(data), "hello") {
		t.Errorf("log file %q does not contain the message", data)
	}
}
