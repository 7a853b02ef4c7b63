package update

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestRuntimeConfigDefaults(t *testing.T) {
	cfg := DefaultRuntimeConfig()
	if cfg.Backend != BackendJSON || cfg.StatusResetMS != 2000 {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
	if cfg.IdleStatus != "Ready" || cfg.Watch {
		t.Fatalf("unexpected status defaults: %+v", cfg)
	}
	if filepath.Base(cfg.DataDir) != "teleprompt" {
		t.Fatalf("unexpected data dir: %q", cfg.DataDir)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("defaults should validate: %v", err)
	}
}

func TestRuntimeConfigFromEnv(t *testing.T) {
	t.Setenv("TELEPROMPT_DATA_DIR", "/tmp/prompt-data")
	t.Setenv("TELEPROMPT_BACKEND", "SQLite")
	t.Setenv("TELEPROMPT_LOG_FILE", "none")
	t.Setenv("TELEPROMPT_STATUS_RESET_MS", "500")
	t.Setenv("TELEPROMPT_IDLE_STATUS", "Protected")
	t.Setenv("TELEPROMPT_WATCH", "yes")

	cfg := RuntimeConfigFromEnv(DefaultRuntimeConfig())
	if cfg.DataDir != "/tmp/prompt-data" || cfg.Backend != BackendSQLite {
		t.Fatalf("unexpected overrides: %+v", cfg)
	}
	if cfg.StatusReset() != 500*time.Millisecond || cfg.IdleStatus != "Protected" || !cfg.Watch {
		t.Fatalf("unexpected status overrides: %+v", cfg)
	}
	if cfg.LogPath() != "none" {
		t.Fatalf("expected disabled log path, got %q", cfg.LogPath())
	}
	if cfg.ScriptsPath() != "/tmp/prompt-data/scripts.json" {
		t.Fatalf("unexpected scripts path: %q", cfg.ScriptsPath())
	}
}

func TestLoadRuntimeConfigFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	body := "backend: sqlite\nstatus_reset_ms: 1500\nscripts_file: /abs/scripts.json\n"
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	base := DefaultRuntimeConfig()
	base.DataDir = dir

	cfg, err := LoadRuntimeConfigFile(path, base, false)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Backend != BackendSQLite || cfg.StatusResetMS != 1500 {
		t.Fatalf("unexpected file overrides: %+v", cfg)
	}
	if cfg.ScriptsPath() != "/abs/scripts.json" || cfg.IdleStatus != "Ready" {
		t.Fatalf("unexpected merged config: %+v", cfg)
	}

	if err := os.WriteFile(path, []byte("backend: \" SQLite \"\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	cfg, err = LoadRuntimeConfigFile(path, base, false)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Backend != BackendSQLite || cfg.Validate() != nil {
		t.Fatalf("expected backend normalized, got %q", cfg.Backend)
	}

	if _, err := LoadRuntimeConfigFile(filepath.Join(dir, "missing.yaml"), base, true); err != nil {
		t.Fatalf("optional missing file should be fine: %v", err)
	}
	if _, err := LoadRuntimeConfigFile(filepath.Join(dir, "missing.yaml"), base, false); err == nil {
		t.Fatal("expected error for required missing file")
	}
}

func TestRuntimeConfigValidate(t *testing.T) {
	cfg := DefaultRuntimeConfig()
	cfg.Backend = "postgres"
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected unknown backend error")
	}
	cfg = DefaultRuntimeConfig()
	cfg.StatusResetMS = 0
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected status reset error")
	}
}
