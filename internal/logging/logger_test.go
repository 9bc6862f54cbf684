package logging

import (
	"os"
	"testing"

	"go.uber.org/zap/zapcore"
)

func TestNew_ConsoleOnly(t *testing.T) {
	log, err := New(Options{})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer func() { _ = log.Sync() }()

	log.Info("console_only_test_message")
}

func TestNew_CreatesLogDir(t *testing.T) {
	dir := t.TempDir() + "/nested"
	log, err := New(Options{LogDir: dir})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer func() { _ = log.Sync() }()

	if _, err := os.Stat(dir); err != nil {
		t.Fatalf("log dir missing: %v", err)
	}

	// Write once; just ensuring no panic / basic functionality.
	log.Info("test_message_from_logging_test")

	// Best-effort: a file might not be flushed immediately; don't fail on it.
	if entries, _ := os.ReadDir(dir); len(entries) == 0 {
		t.Logf("no files yet in %s (ok; async writers may delay)", dir)
	}
}

func TestNew_QuietStillLogsErrors(t *testing.T) {
	log, err := New(Options{Quiet: true})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer func() { _ = log.Sync() }()

	if log.Core().Enabled(zapcore.InfoLevel) {
		t.Fatalf("quiet mode should suppress info")
	}
	if !log.Core().Enabled(zapcore.ErrorLevel) {
		t.Fatalf("quiet mode must never suppress errors")
	}
}
