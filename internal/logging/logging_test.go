package logging

import (
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestOpenWritesJSONLines(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "teleprompt.log")
	logger, closer, err := Open(path, slog.LevelInfo)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	logger.Info("loaded slides", "count", 3)
	logger.Debug("hidden")
	if err := closer.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	out := string(data)
	if !strings.Contains(out, `"msg":"loaded slides"`) || !strings.Contains(out, `"count":3`) {
		t.Fatalf("unexpected log output: %s", out)
	}
	if strings.Contains(out, "hidden") {
		t.Fatalf("debug line should be filtered: %s", out)
	}
}

func TestOpenDisabled(t *testing.T) {
	for _, path := range []string{"", "none", "OFF"} {
		logger, closer, err := Open(path, slog.LevelInfo)
		if err != nil || logger == nil || closer == nil {
			t.Fatalf("path %q: unexpected result %v %v %v", path, logger, closer, err)
		}
	}
}

func TestParseLevel(t *testing.T) {
	if ParseLevel("debug") != slog.LevelDebug || ParseLevel("WARN") != slog.LevelWarn {
		t.Fatal("unexpected level parse")
	}
	if ParseLevel("loud") != slog.LevelInfo {
		t.Fatal("expected info fallback")
	}
}
