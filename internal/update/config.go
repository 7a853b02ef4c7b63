package update

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	BackendJSON   = "json"
	BackendSQLite = "sqlite"
)

type RuntimeConfig struct {
	DataDir       string `yaml:"data_dir"`
	Backend       string `yaml:"backend"`
	ScriptsFile   string `yaml:"scripts_file"`
	DatabaseFile  string `yaml:"database_file"`
	LogFile       string `yaml:"log_file"`
	LogLevel      string `yaml:"log_level"`
	StatusResetMS int    `yaml:"status_reset_ms"`
	IdleStatus    string `yaml:"idle_status"`
	Watch         bool   `yaml:"watch"`
}

func DefaultRuntimeConfig() RuntimeConfig {
	return RuntimeConfig{
		DataDir:       DefaultDataDir(),
		Backend:       BackendJSON,
		ScriptsFile:   "scripts.json",
		DatabaseFile:  "teleprompt.db",
		LogFile:       "teleprompt.log",
		LogLevel:      "info",
		StatusResetMS: 2000,
		IdleStatus:    "Ready",
		Watch:         false,
	}
}

func DefaultDataDir() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		dir = os.TempDir()
	}
	return filepath.Join(dir, "teleprompt")
}

// LoadRuntimeConfigFile overlays the YAML file at path on base. A missing file
// is not an error when optional is set.
func LoadRuntimeConfigFile(path string, base RuntimeConfig, optional bool) (RuntimeConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if optional && errors.Is(err, os.ErrNotExist) {
			return base, nil
		}
		return base, fmt.Errorf("read config: %w", err)
	}
	cfg := base
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return base, fmt.Errorf("parse config: %w", err)
	}
	cfg.Backend = strings.ToLower(strings.TrimSpace(cfg.Backend))
	return cfg, nil
}

func RuntimeConfigFromEnv(base RuntimeConfig) RuntimeConfig {
	cfg := base
	if v := strings.TrimSpace(os.Getenv("TELEPROMPT_DATA_DIR")); v != "" {
		cfg.DataDir = v
	}
	if v := strings.TrimSpace(os.Getenv("TELEPROMPT_BACKEND")); v != "" {
		cfg.Backend = strings.ToLower(v)
	}
	if v := strings.TrimSpace(os.Getenv("TELEPROMPT_LOG_FILE")); v != "" {
		cfg.LogFile = v
	}
	if v := strings.TrimSpace(os.Getenv("TELEPROMPT_LOG_LEVEL")); v != "" {
		cfg.LogLevel = v
	}
	if v, ok := getEnvInt("TELEPROMPT_STATUS_RESET_MS"); ok && v > 0 {
		cfg.StatusResetMS = v
	}
	if v := strings.TrimSpace(os.Getenv("TELEPROMPT_IDLE_STATUS")); v != "" {
		cfg.IdleStatus = v
	}
	if v, ok := getEnvBool("TELEPROMPT_WATCH"); ok {
		cfg.Watch = v
	}
	return cfg
}

func (c RuntimeConfig) Validate() error {
	switch c.Backend {
	case BackendJSON, BackendSQLite:
	default:
		return fmt.Errorf("config: unknown backend %q (want %s or %s)", c.Backend, BackendJSON, BackendSQLite)
	}
	if strings.TrimSpace(c.DataDir) == "" {
		return errors.New("config: data_dir is required")
	}
	if c.StatusResetMS <= 0 {
		return errors.New("config: status_reset_ms must be positive")
	}
	return nil
}

func (c RuntimeConfig) ScriptsPath() string  { return c.resolve(c.ScriptsFile) }
func (c RuntimeConfig) DatabasePath() string { return c.resolve(c.DatabaseFile) }

// LogPath keeps the "none"/"off" markers as they are.
func (c RuntimeConfig) LogPath() string {
	switch strings.ToLower(strings.TrimSpace(c.LogFile)) {
	case "", "none", "off":
		return c.LogFile
	}
	return c.resolve(c.LogFile)
}

func (c RuntimeConfig) ConfigPath() string { return c.resolve("config.yaml") }

func (c RuntimeConfig) StatusReset() time.Duration {
	return time.Duration(c.StatusResetMS) * time.Millisecond
}

func (c RuntimeConfig) resolve(name string) string {
	if filepath.IsAbs(name) {
		return name
	}
	return filepath.Join(c.DataDir, name)
}

func getEnvInt(name string) (int, bool) {
	raw := strings.TrimSpace(os.Getenv(name))
	if raw == "" {
		return 0, false
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, false
	}
	return v, true
}

func getEnvBool(name string) (bool, bool) {
	raw := strings.TrimSpace(strings.ToLower(os.Getenv(name)))
	if raw == "" {
		return false, false
	}
	switch raw {
	case "1", "true", "yes", "y", "on":
		return true, true
	case "0", "false", "no", "n", "off":
		return false, true
	default:
		return false, false
	}
}
